// Package habit caches habits with their completion logs and streaks.
// Streak computation is server-side and not reproducible here, so log
// mutations force a full refetch instead of attempting an optimistic
// merge.
package habit

import (
	"context"
	"sync"

	"ticked/internal/api"
	"ticked/internal/model"
)

type Store struct {
	api *api.Client

	mu      sync.RWMutex
	habits  []model.Habit
	loading bool
	err     error
}

func NewStore(client *api.Client) *Store {
	return &Store{api: client}
}

func (s *Store) Habits() []model.Habit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Habit, len(s.habits))
	copy(out, s.habits)
	return out
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Get looks a habit up by id in the cache.
func (s *Store) Get(id string) (model.Habit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.habits {
		if h.ID == id {
			return h, true
		}
	}
	return model.Habit{}, false
}

// Fetch replaces the whole collection.
func (s *Store) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.err = nil
	s.mu.Unlock()

	habits, err := s.api.Habits(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err
		return err
	}
	s.habits = habits
	return nil
}

func (s *Store) Create(ctx context.Context, draft api.HabitDraft) (model.Habit, error) {
	h, err := s.api.CreateHabit(ctx, draft)
	if err != nil {
		s.recordErr(err)
		return model.Habit{}, err
	}
	s.mu.Lock()
	s.habits = append(s.habits, h)
	s.mu.Unlock()
	return h, nil
}

// Update replaces the cached habit with the server's response entity;
// edits can shift streaks, so the local patch is not trusted.
func (s *Store) Update(ctx context.Context, id string, patch model.HabitPatch) error {
	updated, err := s.api.UpdateHabit(ctx, id, patch)
	if err != nil {
		s.recordErr(err)
		return err
	}
	s.mu.Lock()
	for i := range s.habits {
		if s.habits[i].ID == id {
			s.habits[i] = updated
		}
	}
	s.mu.Unlock()
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteHabit(ctx, id); err != nil {
		s.recordErr(err)
		return err
	}
	s.mu.Lock()
	kept := s.habits[:0]
	for _, h := range s.habits {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	s.habits = kept
	s.mu.Unlock()
	return nil
}

// LogCompletion writes one completion log, then refetches the entire
// collection so streaks and logs reflect the server's computation.
// date is "2006-01-02"; nil means today (server-side default).
func (s *Store) LogCompletion(ctx context.Context, habitID string, date, notes *string) error {
	if err := s.api.LogHabit(ctx, habitID, date, notes); err != nil {
		s.recordErr(err)
		return err
	}
	return s.Fetch(ctx)
}

// RemoveLog deletes the log for one calendar date, then refetches.
func (s *Store) RemoveLog(ctx context.Context, habitID, date string) error {
	if err := s.api.RemoveHabitLog(ctx, habitID, date); err != nil {
		s.recordErr(err)
		return err
	}
	return s.Fetch(ctx)
}

func (s *Store) recordErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

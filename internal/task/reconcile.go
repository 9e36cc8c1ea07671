package task

import (
	"context"

	"ticked/internal/model"
)

// Real-time reconciliation entry points. These are invoked by the event
// bridge, never by UI code, and are the canonical place the three-pool
// partition is enforced for server-originated changes. Incoming payloads
// are applied last-write-wins against whatever local state holds; no
// revision check exists, so a stale event can overwrite a newer local
// edit until the next fetch.

// OnCreated inserts a new task at the head of the active pool. If the id
// is already cached (the local quick-add raced the event), the cached
// entry is replaced in place instead. A task that arrives already
// completed is additionally upserted into the completed pool.
func (s *Store) OnCreated(ctx context.Context, t model.Task) {
	s.refreshLists(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := findByID(s.active, t.ID); exists {
		replaceInPlace(s.active, t)
		return
	}
	s.active = prepend(s.active, t)
	if t.CompletedAt != nil {
		s.completed = upsertHead(s.completed, t)
	}
}

// OnUpdated fully replaces the task by id, using the incoming lifecycle
// stamps to pick the single destination pool and removing the id from the
// other two.
func (s *Store) OnUpdated(ctx context.Context, t model.Task) {
	s.refreshLists(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case t.DeletedAt != nil:
		s.active = removeByID(s.active, t.ID)
		s.completed = removeByID(s.completed, t.ID)
		s.trashed = upsertHead(s.trashed, t)
	case t.CompletedAt != nil:
		s.active = removeByID(s.active, t.ID)
		s.completed = upsertHead(s.completed, t)
		s.trashed = removeByID(s.trashed, t.ID)
	default:
		s.active = upsertHead(s.active, t)
		s.completed = removeByID(s.completed, t.ID)
		s.trashed = removeByID(s.trashed, t.ID)
	}
}

// OnCompleted replaces the task in place in the active and trashed pools
// and upserts it at the head of the completed pool.
func (s *Store) OnCompleted(ctx context.Context, t model.Task) {
	s.refreshLists(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	replaceInPlace(s.active, t)
	s.completed = upsertHead(s.completed, t)
	replaceInPlace(s.trashed, t)
}

// OnDeleted is the hard-delete signal: the id is dropped from all three
// pools unconditionally.
func (s *Store) OnDeleted(ctx context.Context, id model.TaskID) {
	s.refreshLists(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = removeByID(s.active, id)
	s.completed = removeByID(s.completed, id)
	s.trashed = removeByID(s.trashed, id)
}

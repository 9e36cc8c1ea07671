// Package task holds the client-side task cache: three lifecycle pools
// (active, completed, trashed) kept consistent under local mutations and
// server-originated real-time events.
//
// Pool membership rules follow the server's rendering contract: a
// completed task keeps its stamped copy in the active pool (views filter
// on the completion stamp), while soft deletion and restoration move the
// entry between pools outright.
package task

import (
	"context"
	"io"
	"sync"
	"time"

	"ticked/internal/api"
	"ticked/internal/model"
)

// ListRefresher is asked to refetch list metadata after any task mutation
// that can change per-list counts. Errors are deliberately dropped; count
// staleness is tolerated until the next fetch.
type ListRefresher interface {
	RefreshLists(ctx context.Context) error
}

// ListRefresherFunc adapts a plain function to the ListRefresher interface.
type ListRefresherFunc func(ctx context.Context) error

func (f ListRefresherFunc) RefreshLists(ctx context.Context) error { return f(ctx) }

type Store struct {
	api   *api.Client
	lists ListRefresher // optional

	mu        sync.RWMutex
	active    []model.Task
	completed []model.Task
	trashed   []model.Task
	loading   bool
	err       error
}

func NewStore(client *api.Client, lists ListRefresher) *Store {
	return &Store{api: client, lists: lists}
}

// Active returns a copy of the active pool. The head of the slice is the
// most recently inserted task. Note a completed task's stamped copy stays
// here until the next fetch; filter with view.IsActive for rendering.
func (s *Store) Active() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTasks(s.active)
}

func (s *Store) Completed() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTasks(s.completed)
}

func (s *Store) Trashed() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTasks(s.trashed)
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last recorded operation error, nil after any
// successful fetch.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// FetchActive replaces the active pool wholesale with the server's
// current view. Last write wins; no merge.
func (s *Store) FetchActive(ctx context.Context) error {
	return s.fetchInto(ctx, func(ctx context.Context) ([]model.Task, error) {
		return s.api.Tasks(ctx)
	}, &s.active)
}

// FetchByList replaces the active pool with the tasks of one list.
func (s *Store) FetchByList(ctx context.Context, listID string) error {
	return s.fetchInto(ctx, func(ctx context.Context) ([]model.Task, error) {
		return s.api.TasksByList(ctx, listID)
	}, &s.active)
}

func (s *Store) FetchCompleted(ctx context.Context) error {
	return s.fetchInto(ctx, func(ctx context.Context) ([]model.Task, error) {
		return s.api.CompletedTasks(ctx)
	}, &s.completed)
}

func (s *Store) FetchTrashed(ctx context.Context) error {
	return s.fetchInto(ctx, func(ctx context.Context) ([]model.Task, error) {
		return s.api.TrashedTasks(ctx)
	}, &s.trashed)
}

func (s *Store) fetchInto(ctx context.Context, fetch func(context.Context) ([]model.Task, error), pool *[]model.Task) error {
	s.mu.Lock()
	s.loading = true
	s.err = nil
	s.mu.Unlock()

	tasks, err := fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err
		return err
	}
	*pool = tasks
	return nil
}

// QuickAdd sends raw text for server-side parsing and head-inserts the
// resulting task into the active pool, deduplicating by id in case the
// real-time feed delivered it first.
func (s *Store) QuickAdd(ctx context.Context, input string, listID *string) (model.Task, error) {
	t, err := s.api.QuickAdd(ctx, input, listID)
	if err != nil {
		s.recordErr(err)
		return model.Task{}, err
	}

	s.mu.Lock()
	s.active = prepend(removeByID(s.active, t.ID), t)
	s.mu.Unlock()

	s.refreshLists(ctx)
	return t, nil
}

// Create is the explicit structured creation path; same
// head-insert-with-dedup contract as QuickAdd.
func (s *Store) Create(ctx context.Context, draft api.TaskDraft) (model.Task, error) {
	t, err := s.api.CreateTask(ctx, draft)
	if err != nil {
		s.recordErr(err)
		return model.Task{}, err
	}

	s.mu.Lock()
	s.active = prepend(removeByID(s.active, t.ID), t)
	s.mu.Unlock()

	s.refreshLists(ctx)
	return t, nil
}

// Update merges the patch into the task wherever it currently lives —
// edits are allowed from any view that exposes an editor.
func (s *Store) Update(ctx context.Context, id model.TaskID, patch model.TaskPatch) error {
	if err := s.api.UpdateTask(ctx, id, patch); err != nil {
		s.recordErr(err)
		return err
	}

	s.mu.Lock()
	patchInPlace(s.active, id, patch)
	patchInPlace(s.completed, id, patch)
	patchInPlace(s.trashed, id, patch)
	s.mu.Unlock()

	s.refreshLists(ctx)
	return nil
}

// Complete stamps completedAt with the current client time. The active
// pool's copy is stamped in place rather than removed, and a stamped
// duplicate is head-inserted into the completed pool; active views are
// expected to filter on the stamp.
func (s *Store) Complete(ctx context.Context, id model.TaskID) error {
	if err := s.api.CompleteTask(ctx, id); err != nil {
		s.recordErr(err)
		return err
	}

	now := time.Now()
	s.mu.Lock()
	src, found := findByID(s.active, id)
	if !found {
		src, found = findByID(s.completed, id)
	}
	for i := range s.active {
		if s.active[i].ID == id {
			s.active[i].CompletedAt = &now
		}
	}
	if found {
		src.CompletedAt = &now
		s.completed = prepend(removeByID(s.completed, id), src)
	}
	s.mu.Unlock()

	s.refreshLists(ctx)
	return nil
}

// Uncomplete clears the stamp in the active pool's copy and drops the
// task from the completed pool.
func (s *Store) Uncomplete(ctx context.Context, id model.TaskID) error {
	if err := s.api.UncompleteTask(ctx, id); err != nil {
		s.recordErr(err)
		return err
	}

	s.mu.Lock()
	for i := range s.active {
		if s.active[i].ID == id {
			s.active[i].CompletedAt = nil
		}
	}
	s.completed = removeByID(s.completed, id)
	s.mu.Unlock()

	s.refreshLists(ctx)
	return nil
}

// SoftDelete stamps deletedAt and moves the task out of the active and
// completed pools into the trash.
func (s *Store) SoftDelete(ctx context.Context, id model.TaskID) error {
	if err := s.api.SoftDeleteTask(ctx, id); err != nil {
		s.recordErr(err)
		return err
	}

	now := time.Now()
	s.mu.Lock()
	t, found := findByID(s.active, id)
	if !found {
		t, found = findByID(s.completed, id)
	}
	s.active = removeByID(s.active, id)
	s.completed = removeByID(s.completed, id)
	if found {
		t.DeletedAt = &now
		s.trashed = prepend(s.trashed, t)
	}
	s.mu.Unlock()

	s.refreshLists(ctx)
	return nil
}

// Restore clears deletedAt and moves the task from the trash back into
// the active pool.
func (s *Store) Restore(ctx context.Context, id model.TaskID) error {
	if err := s.api.RestoreTask(ctx, id); err != nil {
		s.recordErr(err)
		return err
	}

	s.mu.Lock()
	t, found := findByID(s.trashed, id)
	s.trashed = removeByID(s.trashed, id)
	if found {
		t.DeletedAt = nil
		s.active = prepend(s.active, t)
	}
	s.mu.Unlock()

	s.refreshLists(ctx)
	return nil
}

// PermanentDelete removes the task from all three pools unconditionally.
func (s *Store) PermanentDelete(ctx context.Context, id model.TaskID) error {
	if err := s.api.PermanentDeleteTask(ctx, id); err != nil {
		s.recordErr(err)
		return err
	}

	s.mu.Lock()
	s.active = removeByID(s.active, id)
	s.completed = removeByID(s.completed, id)
	s.trashed = removeByID(s.trashed, id)
	s.mu.Unlock()

	s.refreshLists(ctx)
	return nil
}

// ClearTrash empties the trash pool after requesting bulk deletion.
func (s *Store) ClearTrash(ctx context.Context) error {
	if err := s.api.ClearTrash(ctx); err != nil {
		s.recordErr(err)
		return err
	}

	s.mu.Lock()
	s.trashed = nil
	s.mu.Unlock()

	s.refreshLists(ctx)
	return nil
}

// MoveToList updates listId in place in the active and completed pools.
// A task cannot be moved while trashed.
func (s *Store) MoveToList(ctx context.Context, id model.TaskID, listID *string) error {
	if err := s.api.MoveTask(ctx, id, listID); err != nil {
		s.recordErr(err)
		return err
	}

	s.mu.Lock()
	setListID(s.active, id, listID)
	setListID(s.completed, id, listID)
	s.mu.Unlock()

	s.refreshLists(ctx)
	return nil
}

// UploadAttachment mirrors the new attachment into the task's cached
// attachment list in whichever pools currently hold it.
func (s *Store) UploadAttachment(ctx context.Context, id model.TaskID, filename string, r io.Reader) (model.Attachment, error) {
	att, err := s.api.UploadAttachment(ctx, id, filename, r)
	if err != nil {
		s.recordErr(err)
		return model.Attachment{}, err
	}

	s.mu.Lock()
	appendAttachment(s.active, id, att)
	appendAttachment(s.completed, id, att)
	appendAttachment(s.trashed, id, att)
	s.mu.Unlock()
	return att, nil
}

func (s *Store) DeleteAttachment(ctx context.Context, id model.TaskID, attachmentID string) error {
	if err := s.api.DeleteAttachment(ctx, attachmentID); err != nil {
		s.recordErr(err)
		return err
	}

	s.mu.Lock()
	dropAttachment(s.active, id, attachmentID)
	dropAttachment(s.completed, id, attachmentID)
	dropAttachment(s.trashed, id, attachmentID)
	s.mu.Unlock()
	return nil
}

// FetchAttachments replaces the cached attachment list for one task.
func (s *Store) FetchAttachments(ctx context.Context, id model.TaskID) ([]model.Attachment, error) {
	atts, err := s.api.TaskAttachments(ctx, id)
	if err != nil {
		s.recordErr(err)
		return nil, err
	}

	s.mu.Lock()
	setAttachments(s.active, id, atts)
	setAttachments(s.completed, id, atts)
	setAttachments(s.trashed, id, atts)
	s.mu.Unlock()
	return atts, nil
}

func (s *Store) recordErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *Store) refreshLists(ctx context.Context) {
	if s.lists == nil {
		return
	}
	_ = s.lists.RefreshLists(ctx)
}

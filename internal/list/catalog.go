// Package list caches list metadata and the server's per-list task
// counts. There is no real-time feed for lists; counts go stale between
// task mutations and the next Fetch, which the task cache triggers after
// every mutating operation.
package list

import (
	"context"
	"sync"

	"ticked/internal/api"
	"ticked/internal/model"
)

type Catalog struct {
	api *api.Client

	mu       sync.RWMutex
	lists    []model.List
	activeID string
	loading  bool
}

func NewCatalog(client *api.Client) *Catalog {
	return &Catalog{api: client}
}

func (c *Catalog) Lists() []model.List {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.List, len(c.lists))
	copy(out, c.lists)
	return out
}

func (c *Catalog) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// ActiveID returns the currently selected list id, empty when none.
func (c *Catalog) ActiveID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.activeID
}

func (c *Catalog) SetActive(id string) {
	c.mu.Lock()
	c.activeID = id
	c.mu.Unlock()
}

// Get looks a list up by id in the cache.
func (c *Catalog) Get(id string) (model.List, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, l := range c.lists {
		if l.ID == id {
			return l, true
		}
	}
	return model.List{}, false
}

// Fetch replaces the whole collection with the server's current view,
// counts included.
func (c *Catalog) Fetch(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	lists, err := c.api.Lists(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		return err
	}
	c.lists = lists
	return nil
}

// RefreshLists satisfies the task cache's ListRefresher collaborator.
func (c *Catalog) RefreshLists(ctx context.Context) error {
	return c.Fetch(ctx)
}

func (c *Catalog) Create(ctx context.Context, draft api.ListDraft) (model.List, error) {
	l, err := c.api.CreateList(ctx, draft)
	if err != nil {
		return model.List{}, err
	}
	c.mu.Lock()
	c.lists = append(c.lists, l)
	c.mu.Unlock()
	return l, nil
}

// Update merges the patch locally after the server accepts it. Counts
// are not recomputed; a Fetch is needed for those.
func (c *Catalog) Update(ctx context.Context, id string, patch model.ListPatch) error {
	if err := c.api.UpdateList(ctx, id, patch); err != nil {
		return err
	}
	c.mu.Lock()
	for i := range c.lists {
		if c.lists[i].ID == id {
			patch.Apply(&c.lists[i])
		}
	}
	c.mu.Unlock()
	return nil
}

// Delete removes the list and deselects it if it was the active one.
// Orphaned tasks fall back to the default list server-side.
func (c *Catalog) Delete(ctx context.Context, id string) error {
	if err := c.api.DeleteList(ctx, id); err != nil {
		return err
	}
	c.mu.Lock()
	kept := c.lists[:0]
	for _, l := range c.lists {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	c.lists = kept
	if c.activeID == id {
		c.activeID = ""
	}
	c.mu.Unlock()
	return nil
}

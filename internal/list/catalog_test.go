package list

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticked/internal/api"
	"ticked/internal/model"
)

func count(n int) *model.ListCount { return &model.ListCount{Tasks: n} }

func TestFetch_ReplacesCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lists", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]model.List{
			{ID: "l1", Name: "Work", Count: count(4)},
			{ID: "l2", Name: "Home", Count: count(1)},
		})
	}))
	defer srv.Close()

	c := NewCatalog(api.New(srv.URL))
	c.lists = []model.List{{ID: "stale", Name: "gone"}}

	require.NoError(t, c.Fetch(context.Background()))
	lists := c.Lists()
	require.Len(t, lists, 2)
	assert.Equal(t, "Work", lists[0].Name)
	assert.Equal(t, 4, lists[0].TaskCount())
	assert.False(t, c.Loading())
}

func TestFetch_ErrorKeepsCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewCatalog(api.New(srv.URL))
	c.lists = []model.List{{ID: "l1", Name: "kept"}}

	require.Error(t, c.Fetch(context.Background()))
	assert.Equal(t, "kept", c.Lists()[0].Name)
}

// Moving a task between lists leaves both counts stale until the
// refetch the task cache triggers lands.
func TestRefreshLists_PicksUpRecountedTotals(t *testing.T) {
	fetches := 0
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		fetches++
		n := fetches
		mu.Unlock()
		if n == 1 {
			_ = json.NewEncoder(w).Encode([]model.List{
				{ID: "l1", Count: count(3)},
				{ID: "l2", Count: count(0)},
			})
			return
		}
		_ = json.NewEncoder(w).Encode([]model.List{
			{ID: "l1", Count: count(2)},
			{ID: "l2", Count: count(1)},
		})
	}))
	defer srv.Close()

	c := NewCatalog(api.New(srv.URL))
	ctx := context.Background()
	require.NoError(t, c.Fetch(ctx))
	l1, _ := c.Get("l1")
	assert.Equal(t, 3, l1.TaskCount())

	require.NoError(t, c.RefreshLists(ctx))
	l1, _ = c.Get("l1")
	l2, _ := c.Get("l2")
	assert.Equal(t, 2, l1.TaskCount())
	assert.Equal(t, 1, l2.TaskCount())
}

func TestCreate_Appends(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/lists", r.URL.Path)
		_ = json.NewEncoder(w).Encode(model.List{ID: "l2", Name: "Errands"})
	}))
	defer srv.Close()

	c := NewCatalog(api.New(srv.URL))
	c.lists = []model.List{{ID: "l1", Name: "Work"}}

	l, err := c.Create(context.Background(), api.ListDraft{Name: "Errands"})
	require.NoError(t, err)
	assert.Equal(t, "l2", l.ID)
	lists := c.Lists()
	require.Len(t, lists, 2)
	assert.Equal(t, "Errands", lists[1].Name)
}

func TestUpdate_PatchesLocallyWithoutTouchingCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/lists/l1", r.URL.Path)
	}))
	defer srv.Close()

	c := NewCatalog(api.New(srv.URL))
	c.lists = []model.List{{ID: "l1", Name: "Work", Color: "#fff", Count: count(7)}}

	name := "Job"
	require.NoError(t, c.Update(context.Background(), "l1", model.ListPatch{Name: &name}))
	got, ok := c.Get("l1")
	require.True(t, ok)
	assert.Equal(t, "Job", got.Name)
	assert.Equal(t, "#fff", got.Color)
	assert.Equal(t, 7, got.TaskCount())
}

func TestDelete_RemovesAndDeselects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/lists/l1", r.URL.Path)
	}))
	defer srv.Close()

	c := NewCatalog(api.New(srv.URL))
	c.lists = []model.List{{ID: "l1"}, {ID: "l2"}}
	c.SetActive("l1")

	require.NoError(t, c.Delete(context.Background(), "l1"))
	lists := c.Lists()
	require.Len(t, lists, 1)
	assert.Equal(t, "l2", lists[0].ID)
	assert.Empty(t, c.ActiveID())
}

func TestDelete_InactiveListKeepsSelection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	c := NewCatalog(api.New(srv.URL))
	c.lists = []model.List{{ID: "l1"}, {ID: "l2"}}
	c.SetActive("l2")

	require.NoError(t, c.Delete(context.Background(), "l1"))
	assert.Equal(t, "l2", c.ActiveID())
}

package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticked/internal/model"
)

// recorder captures dispatched events in order.
type recorder struct {
	mu      sync.Mutex
	entries []string
}

func (r *recorder) add(kind, id string) {
	r.mu.Lock()
	r.entries = append(r.entries, kind+":"+id)
	r.mu.Unlock()
}

func (r *recorder) OnCreated(ctx context.Context, t model.Task)   { r.add("created", t.ID) }
func (r *recorder) OnUpdated(ctx context.Context, t model.Task)   { r.add("updated", t.ID) }
func (r *recorder) OnCompleted(ctx context.Context, t model.Task) { r.add("completed", t.ID) }
func (r *recorder) OnDeleted(ctx context.Context, id model.TaskID) {
	r.add("deleted", id)
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.entries))
	copy(out, r.entries)
	return out
}

var upgrader = websocket.Upgrader{}

// newEventServer upgrades /tasks, asserts the bearer header, pushes the
// given frames, then closes normally.
func newEventServer(t *testing.T, wantToken string, frames []string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tasks", r.URL.Path)
		assert.Equal(t, "Bearer "+wantToken, r.Header.Get("Authorization"))
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()
		for _, f := range frames {
			require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(f)))
		}
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func frame(t *testing.T, event string, data any) string {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	out, err := json.Marshal(map[string]json.RawMessage{
		"event": json.RawMessage(`"` + event + `"`),
		"data":  raw,
	})
	require.NoError(t, err)
	return string(out)
}

func TestRun_DispatchesLifecycleEvents(t *testing.T) {
	rec := &recorder{}
	srv := newEventServer(t, "tok", []string{
		frame(t, EventTaskCreated, model.Task{ID: "t1", Title: "a"}),
		frame(t, EventTaskUpdated, model.Task{ID: "t1", Title: "a2"}),
		frame(t, EventTaskCompleted, model.Task{ID: "t1"}),
		frame(t, EventTaskDeleted, map[string]string{"id": "t1"}),
	})

	b := New(wsURL(srv), func() string { return "tok" }, rec)
	require.NoError(t, b.Run(context.Background()))

	assert.Equal(t, []string{
		"created:t1",
		"updated:t1",
		"completed:t1",
		"deleted:t1",
	}, rec.all())
}

func TestRun_MovedAndReorderedReconcileAsUpdates(t *testing.T) {
	rec := &recorder{}
	srv := newEventServer(t, "tok", []string{
		frame(t, EventTaskMoved, model.Task{ID: "t1"}),
		frame(t, EventTaskReordered, model.Task{ID: "t2"}),
	})

	b := New(wsURL(srv), func() string { return "tok" }, rec)
	require.NoError(t, b.Run(context.Background()))

	assert.Equal(t, []string{"updated:t1", "updated:t2"}, rec.all())
}

func TestRun_SkipsMalformedFrames(t *testing.T) {
	rec := &recorder{}
	srv := newEventServer(t, "tok", []string{
		"{not json",
		frame(t, "task:unknown", map[string]string{}),
		`{"event":"task:deleted","data":{}}`,
		frame(t, EventTaskCreated, model.Task{ID: "t1"}),
	})

	b := New(wsURL(srv), func() string { return "tok" }, rec)
	require.NoError(t, b.Run(context.Background()))

	// Only the last, well-formed frame got through.
	assert.Equal(t, []string{"created:t1"}, rec.all())
}

func TestRun_RefusesWithoutCredential(t *testing.T) {
	b := New("ws://localhost:0", func() string { return "" }, &recorder{})
	err := b.Run(context.Background())
	require.ErrorIs(t, err, ErrNoCredential)
}

func TestRun_ContextCancelTearsDownCleanly(t *testing.T) {
	connected := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()
		close(connected)
		// Hold the connection open; the client side will close it.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	b := New(wsURL(srv), func() string { return "tok" }, &recorder{})

	errc := make(chan error, 1)
	go func() { errc <- b.Run(ctx) }()

	select {
	case <-connected:
	case <-time.After(2 * time.Second):
		t.Fatal("bridge never connected")
	}
	cancel()

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("bridge did not shut down after cancel")
	}
}

func TestRun_DialFailureSurfacesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	b := New(wsURL(srv), func() string { return "expired" }, &recorder{})
	err := b.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

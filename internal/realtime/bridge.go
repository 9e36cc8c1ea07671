// Package realtime maintains the live subscription to the server's task
// event channel and feeds incoming events into the task cache's
// reconciliation entry points.
//
// Exactly one subscription exists per authenticated session. There is no
// buffering of missed events; after a reconnect the caller is expected
// to refetch the active pool.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"ticked/internal/model"
)

var ErrNoCredential = errors.New("realtime: no session credential")

// TaskEvents is the reconciliation surface of the task cache. The bridge
// goes through these entry points only, the same ones optimistic code
// uses, so the pool partition stays enforced in one place.
type TaskEvents interface {
	OnCreated(ctx context.Context, t model.Task)
	OnUpdated(ctx context.Context, t model.Task)
	OnCompleted(ctx context.Context, t model.Task)
	OnDeleted(ctx context.Context, id model.TaskID)
}

type Bridge struct {
	url    string
	token  func() string
	events TaskEvents
	log    *slog.Logger
	dialer *websocket.Dialer
}

type Option func(*Bridge)

func WithLogger(l *slog.Logger) Option {
	return func(b *Bridge) { b.log = l }
}

func WithDialer(d *websocket.Dialer) Option {
	return func(b *Bridge) { b.dialer = d }
}

// New builds a bridge against the tasks namespace of socketURL.
// token is consulted at connect time; events receives every dispatched
// payload.
func New(socketURL string, token func() string, events TaskEvents, opts ...Option) *Bridge {
	b := &Bridge{
		url:    strings.TrimRight(socketURL, "/") + "/tasks",
		token:  token,
		events: events,
		log:    slog.Default(),
		dialer: websocket.DefaultDialer,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run connects and dispatches events until ctx is cancelled or the
// connection drops. Cancellation returns nil; a dropped connection
// returns the read error so a supervisor can decide whether to redial.
// Without a credential it refuses to connect.
func (b *Bridge) Run(ctx context.Context) error {
	tok := b.token()
	if tok == "" {
		return ErrNoCredential
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+tok)

	conn, resp, err := b.dialer.DialContext(ctx, b.url, header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("realtime: dial %s: status %d: %w", b.url, resp.StatusCode, err)
		}
		return fmt.Errorf("realtime: dial %s: %w", b.url, err)
	}
	defer conn.Close()

	b.log.Debug("realtime connected", "url", b.url)

	// Unblock ReadMessage when the context is cancelled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				b.log.Debug("realtime closed", "reason", "context cancelled")
				return nil
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				b.log.Debug("realtime closed by server")
				return nil
			}
			return fmt.Errorf("realtime: read: %w", err)
		}
		b.dispatch(ctx, raw)
	}
}

func (b *Bridge) dispatch(ctx context.Context, raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		b.log.Warn("realtime: bad frame", "err", err)
		return
	}

	switch env.Event {
	case EventTaskCreated:
		t, ok := b.decodeTask(env)
		if ok {
			b.events.OnCreated(ctx, t)
		}
	case EventTaskCompleted:
		t, ok := b.decodeTask(env)
		if ok {
			b.events.OnCompleted(ctx, t)
		}
	case EventTaskUpdated, EventTaskMoved, EventTaskReordered:
		// moved and reordered carry a full task and reconcile the same
		// way an update does.
		t, ok := b.decodeTask(env)
		if ok {
			b.events.OnUpdated(ctx, t)
		}
	case EventTaskDeleted:
		var payload struct {
			ID model.TaskID `json:"id"`
		}
		if err := json.Unmarshal(env.Data, &payload); err != nil || payload.ID == "" {
			b.log.Warn("realtime: bad delete payload", "err", err)
			return
		}
		b.events.OnDeleted(ctx, payload.ID)
	default:
		b.log.Debug("realtime: ignoring event", "event", env.Event)
	}
}

func (b *Bridge) decodeTask(env envelope) (model.Task, bool) {
	var t model.Task
	if err := json.Unmarshal(env.Data, &t); err != nil {
		b.log.Warn("realtime: bad task payload", "event", env.Event, "err", err)
		return model.Task{}, false
	}
	return t, true
}

package realtime

import "encoding/json"

// Task lifecycle event names as the server emits them on the tasks
// channel.
const (
	EventTaskCreated   = "task:created"
	EventTaskUpdated   = "task:updated"
	EventTaskCompleted = "task:completed"
	EventTaskDeleted   = "task:deleted"
	EventTaskMoved     = "task:moved"
	EventTaskReordered = "task:reordered"
)

// envelope is the wire shape of one event.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

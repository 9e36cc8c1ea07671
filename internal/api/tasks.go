package api

import (
	"context"
	"net/http"
	"net/url"

	"ticked/internal/model"
)

// TaskDraft is the body of an explicit structured creation.
type TaskDraft struct {
	Title          string  `json:"title"`
	Description    string  `json:"description,omitempty"`
	Priority       int     `json:"priority,omitempty"`
	DueDate        *string `json:"dueDate,omitempty"`
	DueTime        *string `json:"dueTime,omitempty"`
	EndTime        *string `json:"endTime,omitempty"`
	RecurrenceRule *string `json:"recurrenceRule,omitempty"`
	ListID         *string `json:"listId,omitempty"`
	EstimatedPomos int     `json:"estimatedPomos,omitempty"`
	Tags           string  `json:"tags,omitempty"`
}

type quickAddRequest struct {
	Input  string  `json:"input"`
	ListID *string `json:"listId,omitempty"`
}

type moveRequest struct {
	ListID *string `json:"listId"`
}

func (c *Client) Tasks(ctx context.Context) ([]model.Task, error) {
	var out []model.Task
	err := c.do(ctx, http.MethodGet, "/tasks", nil, &out)
	return out, err
}

func (c *Client) TasksByList(ctx context.Context, listID string) ([]model.Task, error) {
	var out []model.Task
	err := c.do(ctx, http.MethodGet, "/tasks/list/"+url.PathEscape(listID), nil, &out)
	return out, err
}

func (c *Client) CompletedTasks(ctx context.Context) ([]model.Task, error) {
	var out []model.Task
	err := c.do(ctx, http.MethodGet, "/tasks/completed", nil, &out)
	return out, err
}

func (c *Client) TrashedTasks(ctx context.Context) ([]model.Task, error) {
	var out []model.Task
	err := c.do(ctx, http.MethodGet, "/tasks/trash", nil, &out)
	return out, err
}

// QuickAdd sends raw text for server-side parsing (dates, tags, priority)
// and returns the created task.
func (c *Client) QuickAdd(ctx context.Context, input string, listID *string) (model.Task, error) {
	var out model.Task
	err := c.do(ctx, http.MethodPost, "/tasks/quick-add", quickAddRequest{Input: input, ListID: listID}, &out)
	return out, err
}

func (c *Client) CreateTask(ctx context.Context, draft TaskDraft) (model.Task, error) {
	var out model.Task
	err := c.do(ctx, http.MethodPost, "/tasks", draft, &out)
	return out, err
}

func (c *Client) UpdateTask(ctx context.Context, id model.TaskID, patch model.TaskPatch) error {
	return c.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(id), patch, nil)
}

func (c *Client) CompleteTask(ctx context.Context, id model.TaskID) error {
	return c.do(ctx, http.MethodPost, "/tasks/"+url.PathEscape(id)+"/complete", nil, nil)
}

func (c *Client) UncompleteTask(ctx context.Context, id model.TaskID) error {
	return c.do(ctx, http.MethodPost, "/tasks/"+url.PathEscape(id)+"/uncomplete", nil, nil)
}

// SoftDeleteTask moves a task to the trash server-side.
func (c *Client) SoftDeleteTask(ctx context.Context, id model.TaskID) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil)
}

func (c *Client) RestoreTask(ctx context.Context, id model.TaskID) error {
	return c.do(ctx, http.MethodPost, "/tasks/"+url.PathEscape(id)+"/restore", nil, nil)
}

func (c *Client) PermanentDeleteTask(ctx context.Context, id model.TaskID) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id)+"/permanent", nil, nil)
}

func (c *Client) ClearTrash(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/tasks/trash/clear", nil, nil)
}

// MoveTask reassigns a task's list; nil listID moves it to the default
// (inbox) list.
func (c *Client) MoveTask(ctx context.Context, id model.TaskID, listID *string) error {
	return c.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(id)+"/move", moveRequest{ListID: listID}, nil)
}

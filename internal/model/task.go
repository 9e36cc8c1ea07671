package model

import "time"

type TaskID = string

// ListRef is the denormalized list summary the server attaches to a task
// for display purposes.
type ListRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Task is a server-owned task entity as cached on the client.
//
// Lifecycle is encoded by two stamps: a task is active while both
// CompletedAt and DeletedAt are unset, completed once CompletedAt is set,
// and trashed once DeletedAt is set (regardless of completion).
type Task struct {
	ID          TaskID `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// Priority runs 0 (none) to 3 (urgent).
	Priority int `json:"priority"`

	// DueDate is a calendar date, "2006-01-02", optionally with a time
	// suffix the server appends for all-day handling. DueTime and EndTime
	// are clock strings like "09:30".
	DueDate *string `json:"dueDate,omitempty"`
	DueTime *string `json:"dueTime,omitempty"`
	EndTime *string `json:"endTime,omitempty"`

	CompletedAt *time.Time `json:"completedAt,omitempty"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`

	RecurrenceRule *string `json:"recurrenceRule,omitempty"`

	ListID *string  `json:"listId,omitempty"`
	List   *ListRef `json:"list,omitempty"`

	EstimatedPomos int `json:"estimatedPomos"`
	CompletedPomos int `json:"completedPomos"`

	// Tags is comma-separated, as the server stores it.
	Tags string `json:"tags"`

	Attachments []Attachment `json:"attachments,omitempty"`
}

// TaskPatch is a partial task update.
// nil pointer => "no change"
// pointer to zero value => set to that value (empty string clears
// optional fields server-side)
type TaskPatch struct {
	Title          *string    `json:"title,omitempty"`
	Description    *string    `json:"description,omitempty"`
	Priority       *int       `json:"priority,omitempty"`
	DueDate        *string    `json:"dueDate,omitempty"`
	DueTime        *string    `json:"dueTime,omitempty"`
	EndTime        *string    `json:"endTime,omitempty"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	RecurrenceRule *string    `json:"recurrenceRule,omitempty"`
	ListID         *string    `json:"listId,omitempty"`
	EstimatedPomos *int       `json:"estimatedPomos,omitempty"`
	Tags           *string    `json:"tags,omitempty"`
}

// Apply merges the patch into t, field by field.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		if *p.DueDate == "" {
			t.DueDate = nil
		} else {
			t.DueDate = p.DueDate
		}
	}
	if p.DueTime != nil {
		if *p.DueTime == "" {
			t.DueTime = nil
		} else {
			t.DueTime = p.DueTime
		}
	}
	if p.EndTime != nil {
		if *p.EndTime == "" {
			t.EndTime = nil
		} else {
			t.EndTime = p.EndTime
		}
	}
	if p.CompletedAt != nil {
		t.CompletedAt = p.CompletedAt
	}
	if p.RecurrenceRule != nil {
		if *p.RecurrenceRule == "" {
			t.RecurrenceRule = nil
		} else {
			t.RecurrenceRule = p.RecurrenceRule
		}
	}
	if p.ListID != nil {
		if *p.ListID == "" {
			t.ListID = nil
		} else {
			t.ListID = p.ListID
		}
	}
	if p.EstimatedPomos != nil {
		t.EstimatedPomos = *p.EstimatedPomos
	}
	if p.Tags != nil {
		t.Tags = *p.Tags
	}
}

// Attachment belongs to exactly one task.
type Attachment struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	MimeType  string    `json:"mimeType"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

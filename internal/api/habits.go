package api

import (
	"context"
	"net/http"
	"net/url"

	"ticked/internal/model"
)

type HabitDraft struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Color       string `json:"color,omitempty"`
	Frequency   string `json:"frequency,omitempty"`
	TargetDays  string `json:"targetDays,omitempty"`
	TargetCount int    `json:"targetCount,omitempty"`
}

type habitLogRequest struct {
	Date  *string `json:"date,omitempty"`
	Notes *string `json:"notes,omitempty"`
}

func (c *Client) Habits(ctx context.Context) ([]model.Habit, error) {
	var out []model.Habit
	err := c.do(ctx, http.MethodGet, "/habits", nil, &out)
	return out, err
}

func (c *Client) CreateHabit(ctx context.Context, draft HabitDraft) (model.Habit, error) {
	var out model.Habit
	err := c.do(ctx, http.MethodPost, "/habits", draft, &out)
	return out, err
}

// UpdateHabit returns the server's view of the habit; streaks may shift
// on any edit, so callers replace their copy with the response.
func (c *Client) UpdateHabit(ctx context.Context, id string, patch model.HabitPatch) (model.Habit, error) {
	var out model.Habit
	err := c.do(ctx, http.MethodPut, "/habits/"+url.PathEscape(id), patch, &out)
	return out, err
}

func (c *Client) DeleteHabit(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/habits/"+url.PathEscape(id), nil, nil)
}

// LogHabit writes one completion log. date defaults to today server-side.
func (c *Client) LogHabit(ctx context.Context, habitID string, date, notes *string) error {
	return c.do(ctx, http.MethodPost, "/habits/"+url.PathEscape(habitID)+"/log", habitLogRequest{Date: date, Notes: notes}, nil)
}

func (c *Client) RemoveHabitLog(ctx context.Context, habitID, date string) error {
	return c.do(ctx, http.MethodDelete, "/habits/"+url.PathEscape(habitID)+"/log/"+url.PathEscape(date), nil, nil)
}

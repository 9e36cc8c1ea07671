// Package view holds the derived-view selectors: pure functions over the
// task and habit caches plus the current time. Nothing here caches or
// invalidates; callers recompute on every read.
package view

import (
	"sort"
	"strings"
	"time"

	"ticked/internal/model"
)

const dateLayout = "2006-01-02"

// IsActive reports whether a task should render in active views. Pool
// membership alone is not enough: a completed task's stamped copy stays
// in the active pool, so views filter on the stamps.
func IsActive(t model.Task) bool {
	return t.CompletedAt == nil && t.DeletedAt == nil
}

// DueOn parses the task's due date, tolerating a time suffix after the
// calendar date.
func DueOn(t model.Task) (time.Time, bool) {
	if t.DueDate == nil {
		return time.Time{}, false
	}
	raw, _, _ := strings.Cut(*t.DueDate, "T")
	d, err := time.ParseInLocation(dateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// SmartCounts are the sidebar badge numbers.
type SmartCounts struct {
	Inbox     int
	Today     int
	Next7Days int
	Completed int
}

func Counts(tasks []model.Task, now time.Time) SmartCounts {
	var c SmartCounts
	today := startOfDay(now)
	horizon := today.AddDate(0, 0, 7)

	for _, t := range tasks {
		if t.DeletedAt != nil {
			continue
		}
		if t.CompletedAt != nil {
			c.Completed++
			continue
		}
		c.Inbox++
		due, ok := DueOn(t)
		if !ok {
			continue
		}
		if due.Equal(today) {
			c.Today++
		}
		if !due.Before(today) && due.Before(horizon.AddDate(0, 0, 1)) {
			c.Next7Days++
		}
	}
	return c
}

// DueToday returns the active tasks due on the current calendar day.
func DueToday(tasks []model.Task, now time.Time) []model.Task {
	today := startOfDay(now)
	var out []model.Task
	for _, t := range tasks {
		if !IsActive(t) {
			continue
		}
		if due, ok := DueOn(t); ok && due.Equal(today) {
			out = append(out, t)
		}
	}
	return out
}

// DueWithin returns the active tasks due between today and today+days,
// inclusive on both ends.
func DueWithin(tasks []model.Task, now time.Time, days int) []model.Task {
	today := startOfDay(now)
	horizon := today.AddDate(0, 0, days)
	var out []model.Task
	for _, t := range tasks {
		if !IsActive(t) {
			continue
		}
		due, ok := DueOn(t)
		if !ok {
			continue
		}
		if !due.Before(today) && !due.After(horizon) {
			out = append(out, t)
		}
	}
	return out
}

// Quadrants is the Eisenhower matrix partition of the active tasks,
// keyed purely on priority.
type Quadrants struct {
	UrgentImportant       []model.Task // priority 3
	NotUrgentImportant    []model.Task // priority 2
	UrgentNotImportant    []model.Task // priority 1
	NotUrgentNotImportant []model.Task // priority 0
}

func Matrix(tasks []model.Task) Quadrants {
	var q Quadrants
	for _, t := range tasks {
		if !IsActive(t) {
			continue
		}
		switch t.Priority {
		case 3:
			q.UrgentImportant = append(q.UrgentImportant, t)
		case 2:
			q.NotUrgentImportant = append(q.NotUrgentImportant, t)
		case 1:
			q.UrgentNotImportant = append(q.UrgentNotImportant, t)
		default:
			q.NotUrgentNotImportant = append(q.NotUrgentNotImportant, t)
		}
	}
	return q
}

// Tagged returns the tasks carrying the given tag. Tags are stored
// comma-separated on the task.
func Tagged(tasks []model.Task, tag string) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if hasTag(t, tag) {
			out = append(out, t)
		}
	}
	return out
}

// Tags returns the unique tags across all tasks, sorted.
func Tags(tasks []model.Task) []string {
	seen := map[string]bool{}
	for _, t := range tasks {
		for _, tag := range splitTags(t.Tags) {
			seen[tag] = true
		}
	}
	out := make([]string, 0, len(seen))
	for tag := range seen {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// ByDate buckets tasks by their due calendar date ("2006-01-02") for
// calendar rendering. Tasks without a due date are absent.
func ByDate(tasks []model.Task) map[string][]model.Task {
	out := map[string][]model.Task{}
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		key, _, _ := strings.Cut(*t.DueDate, "T")
		out[key] = append(out[key], t)
	}
	return out
}

// OccupiedDays maps calendar dates to completion for habit heatmap
// rendering.
func OccupiedDays(logs []model.HabitLog) map[string]bool {
	out := map[string]bool{}
	for _, l := range logs {
		key, _, _ := strings.Cut(l.Date, "T")
		out[key] = true
	}
	return out
}

func hasTag(t model.Task, tag string) bool {
	for _, have := range splitTags(t.Tags) {
		if have == tag {
			return true
		}
	}
	return false
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

package model

// Habit is a server-owned habit with its completion logs and streaks.
// Streaks are computed server-side; the client treats them as opaque.
type Habit struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`

	// Frequency is a descriptor like "daily" or "weekly"; TargetDays
	// narrows it to specific weekdays. Both are opaque to the client.
	Frequency   string `json:"frequency"`
	TargetDays  string `json:"targetDays"`
	TargetCount int    `json:"targetCount"`

	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`

	Logs []HabitLog `json:"logs,omitempty"`
}

// HabitLog records one completion. The server enforces at most one log
// per habit per calendar date.
type HabitLog struct {
	ID      string `json:"id"`
	HabitID string `json:"habitId"`
	Date    string `json:"date"`
	Count   int    `json:"count"`
	Notes   string `json:"notes,omitempty"`
}

// HabitPatch is a partial habit update.
type HabitPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Color       *string `json:"color,omitempty"`
	Frequency   *string `json:"frequency,omitempty"`
	TargetDays  *string `json:"targetDays,omitempty"`
	TargetCount *int    `json:"targetCount,omitempty"`
}

package model

// List is list metadata plus the server's denormalized task count.
type List struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Color    string  `json:"color"`
	Icon     *string `json:"icon,omitempty"`
	Position int     `json:"position"`

	// Count mirrors the server's `_count` aggregation. The client never
	// recomputes it; correct counts require a fresh fetch.
	Count *ListCount `json:"_count,omitempty"`
}

type ListCount struct {
	Tasks int `json:"tasks"`
}

// TaskCount returns the denormalized count, zero when absent.
func (l List) TaskCount() int {
	if l.Count == nil {
		return 0
	}
	return l.Count.Tasks
}

// ListPatch is a partial list update.
type ListPatch struct {
	Name     *string `json:"name,omitempty"`
	Color    *string `json:"color,omitempty"`
	Icon     *string `json:"icon,omitempty"`
	Position *int    `json:"position,omitempty"`
}

func (p ListPatch) Apply(l *List) {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Color != nil {
		l.Color = *p.Color
	}
	if p.Icon != nil {
		if *p.Icon == "" {
			l.Icon = nil
		} else {
			l.Icon = p.Icon
		}
	}
	if p.Position != nil {
		l.Position = *p.Position
	}
}

package model

// Task is a single to-do item belonging to exactly one board.
type Task struct {
	// ID is assigned at creation and never changes.
	ID string `json:"id"`

	// Title is never empty after trimming.
	Title string `json:"title"`

	Done bool `json:"done"`

	// CreatedAt is milliseconds since the Unix epoch.
	CreatedAt int64 `json:"createdAt"`

	// Day is only meaningful while the owning board has day-mode on.
	Day *Day `json:"day"`
}

// HasDay reports whether the task is tagged with d.
func (t Task) HasDay(d Day) bool {
	return t.Day != nil && *t.Day == d
}

// DayPtr returns a pointer to a copy of d.
func DayPtr(d Day) *Day {
	return &d
}

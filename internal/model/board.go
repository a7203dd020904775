package model

// StatusFilter restricts the visible tasks by completion state.
type StatusFilter string

const (
	StatusAll  StatusFilter = "all"
	StatusOpen StatusFilter = "open"
	StatusDone StatusFilter = "done"
)

// StatusFilters lists the filters in display order.
var StatusFilters = []StatusFilter{StatusAll, StatusOpen, StatusDone}

// Valid reports whether f is a recognized status filter.
func (f StatusFilter) Valid() bool {
	return f == StatusAll || f == StatusOpen || f == StatusDone
}

// Matches reports whether a task with the given done flag passes the filter.
// Unrecognized values behave like StatusAll.
func (f StatusFilter) Matches(done bool) bool {
	switch f {
	case StatusOpen:
		return !done
	case StatusDone:
		return done
	default:
		return true
	}
}

// DayFilter is either DayFilterAll or one of the Days.
type DayFilter string

// DayFilterAll disables day filtering.
const DayFilterAll DayFilter = "all"

// Valid reports whether f is "all" or a recognized day.
func (f DayFilter) Valid() bool {
	return f == DayFilterAll || Day(f).Valid()
}

// DayFilterFor converts a day into the matching filter value.
func DayFilterFor(d Day) DayFilter {
	return DayFilter(d)
}

// Default titles used when synthesizing boards.
const (
	DefaultBoardTitle = "My Tasks"
	NewBoardTitle     = "New Board"
)

// Board is a named collection of tasks with its own filter settings.
type Board struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	// Tasks are stored newest first.
	Tasks []Task `json:"todos"`

	StatusFilter StatusFilter `json:"statusFilter"`
	DayFilter    DayFilter    `json:"dayFilter"`

	// UseDays enables day tagging and day filtering for this board.
	UseDays bool `json:"useDays"`
}

// NewBoard returns a board with default settings and no tasks.
func NewBoard(id, title string) Board {
	return Board{
		ID:           id,
		Title:        title,
		Tasks:        []Task{},
		StatusFilter: StatusAll,
		DayFilter:    DayFilterAll,
	}
}

// Visible reports whether t passes the board's status and day filters.
func (b Board) Visible(t Task) bool {
	if !b.StatusFilter.Matches(t.Done) {
		return false
	}
	if !b.UseDays || b.DayFilter == DayFilterAll {
		return true
	}
	return t.HasDay(Day(b.DayFilter))
}

// VisibleTasks returns the filtered tasks in stored order.
func (b Board) VisibleTasks() []Task {
	visible := make([]Task, 0, len(b.Tasks))
	for _, t := range b.Tasks {
		if b.Visible(t) {
			visible = append(visible, t)
		}
	}
	return visible
}

// OpenCount returns the number of tasks not yet done.
func (b Board) OpenCount() int {
	n := 0
	for _, t := range b.Tasks {
		if !t.Done {
			n++
		}
	}
	return n
}

// TaskIndex returns the position of the task with the given id, or -1.
func (b Board) TaskIndex(id string) int {
	for i, t := range b.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of b.
func (b Board) Clone() Board {
	out := b
	out.Tasks = make([]Task, len(b.Tasks))
	for i, t := range b.Tasks {
		out.Tasks[i] = t
		if t.Day != nil {
			out.Tasks[i].Day = DayPtr(*t.Day)
		}
	}
	return out
}

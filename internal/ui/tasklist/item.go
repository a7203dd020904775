package tasklist

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/glassboard/internal/model"
	"github.com/nhle/glassboard/internal/theme"
)

// TaskItem wraps a model.Task so it can be used in a bubbles/list.
type TaskItem struct {
	Task model.Task
}

// FilterValue returns the string used for fuzzy filtering.
func (i TaskItem) FilterValue() string { return i.Task.Title }

// Title returns the task title for the list.
func (i TaskItem) Title() string { return i.Task.Title }

// Description returns a short summary line for the list.
func (i TaskItem) Description() string {
	return relativeTime(time.UnixMilli(i.Task.CreatedAt), time.Now())
}

// TaskDelegate implements list.ItemDelegate for rendering board tasks.
type TaskDelegate struct {
	// showDays is shared by reference with the Model so the delegate tracks
	// the active board's day mode.
	showDays *bool
}

// Height returns the number of lines each item takes.
func (d TaskDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d TaskDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused for now).
func (d TaskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single list item line.
func (d TaskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TaskItem)
	if !ok {
		return
	}
	fmt.Fprint(w, renderLine(ti.Task, d.showDays != nil && *d.showDays, index == m.Index(), time.Now()))
}

// renderLine builds the display line for a task.
func renderLine(t model.Task, showDays, selected bool, now time.Time) string {
	prefix := "○"
	if t.Done {
		prefix = "✓"
	}

	badge := ""
	if showDays && t.Day != nil && t.Day.Valid() {
		badge = " " + theme.DayBadgeStyle.Render(t.Day.Short())
	}

	age := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render(relativeTime(time.UnixMilli(t.CreatedAt), now))

	title := t.Title
	if t.Done {
		title = theme.DimmedStyle.Render(title)
	}

	line := fmt.Sprintf("%s %s%s  %s", prefix, title, badge, age)

	if selected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

// relativeTime returns a human-friendly relative time string.
func relativeTime(t, now time.Time) string {
	if t.IsZero() || t.UnixMilli() == 0 {
		return ""
	}

	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return fmt.Sprintf("%dw ago", int(d.Hours()/24/7))
	}
}

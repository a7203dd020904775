package tasklist

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/glassboard/internal/model"
	"github.com/nhle/glassboard/internal/theme"
)

// Model is the list of the active board's visible tasks.
type Model struct {
	list     list.Model
	showDays *bool
	filtered bool
	width    int
	height   int
}

// New creates a new task list model.
func New(width, height int) Model {
	showDays := new(bool)
	l := list.New([]list.Item{}, TaskDelegate{showDays: showDays}, width, height)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return Model{
		list:     l,
		showDays: showDays,
		width:    width,
		height:   height,
	}
}

// SetBoard replaces the list contents with b's visible tasks, keeping the
// cursor in range.
func (m *Model) SetBoard(b model.Board) {
	*m.showDays = b.UseDays
	m.filtered = b.StatusFilter != model.StatusAll ||
		(b.UseDays && b.DayFilter != model.DayFilterAll)

	visible := b.VisibleTasks()
	items := make([]list.Item, len(visible))
	for i, t := range visible {
		items[i] = TaskItem{Task: t}
	}

	idx := m.list.Index()
	m.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
}

// SelectedTask returns the task under the cursor.
func (m Model) SelectedTask() (model.Task, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return model.Task{}, false
	}
	return item.Task, true
}

// Len returns the number of visible tasks.
func (m Model) Len() int {
	return len(m.list.Items())
}

// ResetCursor moves the cursor to the first task.
func (m *Model) ResetCursor() {
	m.list.ResetSelected()
}

// Update delegates cursor movement to the underlying list.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the task list.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}
	return m.list.View()
}

// renderEmptyState shows guidance text when no tasks are visible.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.filtered {
		return style.Render("No matching tasks.\nPress f or g to change the filters.")
	}
	return style.Render("No tasks yet.\n\nPress n to add one.")
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height)
}

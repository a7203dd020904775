package taskform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/glassboard/internal/model"
	"github.com/nhle/glassboard/internal/theme"
)

// Mode selects what the form edits.
type Mode int

const (
	ModeCreateTask Mode = iota
	ModeEditTask
	ModeRenameBoard
)

// noDay is the select value for "no day tag".
const noDay = ""

// SubmittedMsg is dispatched when the user completes the form.
type SubmittedMsg struct {
	Mode    Mode
	BoardID string
	TaskID  string
	Title   string
	Day     *model.Day
}

// CancelMsg is dispatched when the user aborts the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title string
	day   string
}

// Model is the Bubble Tea model for the task and board title forms.
type Model struct {
	form    *huh.Form
	fb      *formBindings
	mode    Mode
	boardID string
	taskID  string
	width   int
	height  int
}

// New creates a new form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Mode reports which form is currently shown.
func (m Model) Mode() Mode {
	return m.mode
}

// StartCreate initializes the form for adding a task to board b. The day
// picker is only offered when the board is in day mode.
func (m *Model) StartCreate(b model.Board, day *model.Day) tea.Cmd {
	m.mode = ModeCreateTask
	m.boardID = b.ID
	m.taskID = ""
	m.fb.title = ""
	m.fb.day = noDay
	if day != nil {
		m.fb.day = string(*day)
	}

	fields := []huh.Field{m.titleField("New task", true)}
	if b.UseDays {
		fields = append(fields, m.dayField())
	}
	m.form = m.build(fields...)
	return m.form.Init()
}

// StartEdit initializes the form for retitling task t. Submitting an empty
// title deletes the task.
func (m *Model) StartEdit(boardID string, t model.Task) tea.Cmd {
	m.mode = ModeEditTask
	m.boardID = boardID
	m.taskID = t.ID
	m.fb.title = t.Title
	m.fb.day = noDay
	m.form = m.build(m.titleField("Edit task", false).
		Description("Leave empty to delete the task."))
	return m.form.Init()
}

// StartRename initializes the form for renaming board b.
func (m *Model) StartRename(b model.Board) tea.Cmd {
	m.mode = ModeRenameBoard
	m.boardID = b.ID
	m.taskID = ""
	m.fb.title = b.Title
	m.fb.day = noDay
	m.form = m.build(m.titleField("Board name", true))
	return m.form.Init()
}

// Update handles messages for the form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		out := m.handleSubmit()
		m.form = nil
		return m, func() tea.Msg { return out }
	case huh.StateAborted:
		m.form = nil
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1).
		Render(m.heading())

	content := lipgloss.JoinVertical(lipgloss.Left, title, m.form.View())
	return theme.PanelStyle.
		Width(formWidth(m.width)).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.form != nil {
		m.form = m.form.WithWidth(formWidth(width) - 4).WithHeight(formHeight(height))
	}
}

func (m Model) heading() string {
	switch m.mode {
	case ModeEditTask:
		return "Edit Task"
	case ModeRenameBoard:
		return "Rename Board"
	default:
		return "New Task"
	}
}

func (m *Model) build(fields ...huh.Field) *huh.Form {
	return huh.NewForm(huh.NewGroup(fields...)).
		WithShowHelp(true).
		WithWidth(formWidth(m.width) - 4).
		WithHeight(formHeight(m.height))
}

func (m *Model) titleField(label string, required bool) *huh.Input {
	in := huh.NewInput().
		Title(label).
		Placeholder("What needs doing?").
		CharLimit(200).
		Value(&m.fb.title)
	if required {
		in = in.Validate(validateRequired(label))
	}
	return in
}

func (m *Model) dayField() *huh.Select[string] {
	opts := []huh.Option[string]{huh.NewOption("No day", noDay)}
	for _, d := range model.Days {
		opts = append(opts, huh.NewOption(d.Label(), string(d)))
	}
	return huh.NewSelect[string]().
		Title("Day").
		Options(opts...).
		Value(&m.fb.day)
}

func (m Model) handleSubmit() SubmittedMsg {
	out := SubmittedMsg{
		Mode:    m.mode,
		BoardID: m.boardID,
		TaskID:  m.taskID,
		Title:   strings.TrimSpace(m.fb.title),
	}
	if d, ok := model.ParseDay(m.fb.day); ok {
		out.Day = model.DayPtr(d)
	}
	return out
}

// formWidth clamps the form panel width to a readable range.
func formWidth(w int) int {
	switch {
	case w < 40:
		return 40
	case w > 80:
		return 80
	default:
		return w
	}
}

func formHeight(h int) int {
	if h < 10 {
		return 10
	}
	return h - 4
}

// validateRequired returns a validator that rejects blank input.
func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}


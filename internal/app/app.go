package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/nhle/glassboard/internal/board"
	"github.com/nhle/glassboard/internal/model"
	"github.com/nhle/glassboard/internal/theme"
	"github.com/nhle/glassboard/internal/ui"
	"github.com/nhle/glassboard/internal/ui/command"
	"github.com/nhle/glassboard/internal/ui/detail"
	helpview "github.com/nhle/glassboard/internal/ui/help"
	"github.com/nhle/glassboard/internal/ui/taskform"
	"github.com/nhle/glassboard/internal/ui/tasklist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewHelp
	ViewCommand
	ViewForm
	ViewDetail
)

// Model is the root Bubble Tea model that manages view routing,
// layout, and access to the board store.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	store        *board.Store
	log          logrus.FieldLogger
	keys         *KeyMap
	taskList     tasklist.Model
	helpView     helpview.Model
	commandView  command.Model
	formView     taskform.Model
	detail       detail.Model
	activeID     string
	status       string
	bgPending    int
	ready        bool
}

// New creates a new root application model over s.
func New(s *board.Store, log logrus.FieldLogger) Model {
	keys := DefaultKeyMap()
	if log == nil {
		log = logrus.StandardLogger()
	}

	m := Model{
		currentView: ViewList,
		layout:      ui.NewLayout(80, 24),
		store:       s,
		log:         log,
		keys:        keys,
		taskList:    tasklist.New(80, 21),
		helpView:    helpview.New(keys, 80, 21),
		commandView: command.New(80, 21),
		formView:    taskform.New(80, 21),
		detail:      detail.New(keys, 80, 21),
	}
	if boards := s.Boards(); len(boards) > 0 {
		m.activeID = boards[0].ID
	}
	m.refresh()
	return m
}

// Init sets the terminal title.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("glassboard")
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.taskList.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		m.formView.SetSize(contentWidth, contentHeight)
		m.detail.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case taskform.SubmittedMsg:
		m.currentView = ViewList
		m.applyForm(msg)
		return m, nil

	case taskform.CancelMsg:
		m.currentView = ViewList
		return m, nil

	case detail.BackMsg:
		m.currentView = ViewList
		return m, nil

	case command.CommandMsg:
		m.currentView = ViewList
		return m, m.executeCommand(string(msg))

	case command.CancelMsg:
		m.currentView = ViewList
		return m, nil

	case backgroundResolvedMsg:
		m.applyBackground(msg)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.currentView {
		case ViewList:
			if handled, cmd := m.handleListKey(msg); handled {
				return m, cmd
			}
		case ViewHelp:
			if key.Matches(msg, m.keys.Help, m.keys.Back, m.keys.Quit) {
				m.currentView = m.previousView
				return m, nil
			}
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// handleListKey runs the list-view shortcuts. It reports false for keys
// the task list should handle itself.
func (m *Model) handleListKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	b := m.activeBoard()
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return true, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return true, nil

	case key.Matches(msg, m.keys.Command):
		m.previousView = m.currentView
		m.currentView = ViewCommand
		m.commandView.Prefill("")
		return true, m.commandView.Focus()

	case key.Matches(msg, m.keys.SetBackground):
		m.previousView = m.currentView
		m.currentView = ViewCommand
		m.commandView.Prefill("bg ")
		return true, m.commandView.Focus()

	case key.Matches(msg, m.keys.NextBoard):
		m.switchBoard(1)
	case key.Matches(msg, m.keys.PrevBoard):
		m.switchBoard(-1)

	case key.Matches(msg, m.keys.NewBoard):
		m.addBoard("")

	case key.Matches(msg, m.keys.RenameBoard):
		m.currentView = ViewForm
		return true, m.formView.StartRename(b)

	case key.Matches(msg, m.keys.DeleteBoard):
		m.deleteBoard()

	case key.Matches(msg, m.keys.ToggleDays):
		m.store.ToggleUseDays(b.ID)

	case key.Matches(msg, m.keys.CycleStatus):
		m.store.SetStatusFilter(b.ID, nextStatusFilter(b.StatusFilter))

	case key.Matches(msg, m.keys.CycleDay):
		if !b.UseDays {
			m.status = "day mode is off (press w)"
			return true, nil
		}
		m.store.SetDayFilter(b.ID, nextDayFilter(b.DayFilter))

	case key.Matches(msg, m.keys.CyclePreset):
		m.store.SetBackgroundPreset(nextPreset(m.store.Root().BackgroundPreset))

	case key.Matches(msg, m.keys.NewTask):
		var day *model.Day
		if b.UseDays && b.DayFilter != model.DayFilterAll {
			day = model.DayPtr(model.Day(b.DayFilter))
		}
		m.currentView = ViewForm
		return true, m.formView.StartCreate(b, day)

	case key.Matches(msg, m.keys.EditTask):
		t, ok := m.taskList.SelectedTask()
		if !ok {
			return true, nil
		}
		m.currentView = ViewForm
		return true, m.formView.StartEdit(b.ID, t)

	case key.Matches(msg, m.keys.Details):
		t, ok := m.taskList.SelectedTask()
		if !ok {
			return true, nil
		}
		m.detail.SetTask(b, t)
		m.currentView = ViewDetail
		return true, nil

	case key.Matches(msg, m.keys.ToggleTask):
		if t, ok := m.taskList.SelectedTask(); ok {
			m.store.ToggleTask(b.ID, t.ID)
		}

	case key.Matches(msg, m.keys.DeleteTask):
		if t, ok := m.taskList.SelectedTask(); ok {
			m.store.DeleteTask(b.ID, t.ID)
		}

	case key.Matches(msg, m.keys.ClearDone):
		m.clearDone()

	default:
		return false, nil
	}

	m.refresh()
	return true, nil
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.taskList, cmd = m.taskList.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewForm:
		m.formView, cmd = m.formView.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	b := m.activeBoard()
	root := m.store.Root()

	status := fmt.Sprintf("%d open · %s", m.store.OpenCount(b.ID), root.BackgroundPreset)
	if root.BackgroundURL != "" {
		status += " · image"
	}
	if m.bgPending > 0 {
		status += " · loading image"
	}
	header := m.layout.RenderHeader("Glassboard", status, root.BackgroundPreset)

	titles := make([]string, 0, len(root.Boards))
	active := 0
	for i, rb := range root.Boards {
		if rb.ID == b.ID {
			active = i
		}
		titles = append(titles, rb.Title)
	}
	tabs := m.layout.RenderTabs(titles, active, filterSummary(b))

	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header+"\n"+tabs, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		return m.taskList.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewForm:
		return m.formView.View()
	case ViewDetail:
		return m.detail.View()
	default:
		return ""
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	// Persistence failures take priority over everything else.
	if err := m.store.LastSaveErr(); err != nil && m.currentView == ViewList {
		return "⚠ not saved: " + err.Error()
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | esc back"
	case ViewForm:
		return "enter submit | esc cancel"
	case ViewDetail:
		return "esc back | j/k scroll"
	default:
		if m.status != "" {
			return m.status
		}
		return "q quit | ? help | n new | x done | tab board | f status | g day | : command"
	}
}

// filterSummary renders the active board's filters as chips.
func filterSummary(b model.Board) string {
	out := theme.FilterStyle(b.StatusFilter != model.StatusAll).Render(string(b.StatusFilter))
	if b.UseDays {
		label := "all days"
		if d := model.Day(b.DayFilter); d.Valid() {
			label = d.Label()
		}
		out += theme.FilterStyle(b.DayFilter != model.DayFilterAll).Render(label)
	}
	return out
}

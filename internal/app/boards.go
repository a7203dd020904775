package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/glassboard/internal/background"
	"github.com/nhle/glassboard/internal/model"
	"github.com/nhle/glassboard/internal/ui/command"
	"github.com/nhle/glassboard/internal/ui/taskform"
)

// backgroundResolvedMsg carries the outcome of a background ingest.
type backgroundResolvedMsg struct {
	input string
	url   string
	err   error
}

// activeBoard returns the board shown in the list. It falls back to the
// first board when the active one no longer exists.
func (m *Model) activeBoard() model.Board {
	if b, ok := m.store.Board(m.activeID); ok {
		return b
	}
	boards := m.store.Boards()
	if len(boards) == 0 {
		return model.Board{}
	}
	m.activeID = boards[0].ID
	return boards[0]
}

// refresh reloads the task list from the store.
func (m *Model) refresh() {
	m.taskList.SetBoard(m.activeBoard())
}

// activeIndex returns the position of the active board.
func (m *Model) activeIndex() int {
	return m.store.Root().BoardIndex(m.activeBoard().ID)
}

// switchBoard moves the active board by delta, wrapping around.
func (m *Model) switchBoard(delta int) {
	boards := m.store.Boards()
	if len(boards) == 0 {
		return
	}
	i := (m.activeIndex() + delta + len(boards)) % len(boards)
	m.activeID = boards[i].ID
	m.taskList.ResetCursor()
}

// addBoard creates a board, optionally titles it, and makes it active.
func (m *Model) addBoard(title string) {
	b := m.store.AddBoard()
	if title != "" {
		m.store.RenameBoard(b.ID, title)
	}
	m.activeID = b.ID
	m.taskList.ResetCursor()
}

// deleteBoard removes the active board and activates its neighbour.
func (m *Model) deleteBoard() {
	i := m.activeIndex()
	if !m.store.DeleteBoard(m.activeID) {
		m.status = "the last board cannot be deleted"
		return
	}
	boards := m.store.Boards()
	if i >= len(boards) {
		i = len(boards) - 1
	}
	m.activeID = boards[i].ID
	m.taskList.ResetCursor()
}

func (m *Model) clearDone() {
	if n, ok := m.store.ClearDone(m.activeID); ok {
		m.status = fmt.Sprintf("cleared %d done", n)
	}
}

// applyForm routes a submitted form to the matching store mutation.
func (m *Model) applyForm(msg taskform.SubmittedMsg) {
	switch msg.Mode {
	case taskform.ModeCreateTask:
		m.store.AddTask(msg.BoardID, msg.Title, msg.Day)
	case taskform.ModeEditTask:
		m.store.EditTaskTitle(msg.BoardID, msg.TaskID, msg.Title)
	case taskform.ModeRenameBoard:
		m.store.RenameBoard(msg.BoardID, msg.Title)
	}
	m.refresh()
}

// executeCommand handles a line from the command palette.
func (m *Model) executeCommand(line string) tea.Cmd {
	cmd, err := command.Parse(line)
	if err != nil {
		m.status = err.Error()
		return nil
	}

	b := m.activeBoard()
	switch cmd.Kind {
	case command.KindNewBoard:
		m.addBoard(cmd.Arg)
	case command.KindDeleteBoard:
		m.deleteBoard()
	case command.KindRenameBoard:
		m.store.RenameBoard(b.ID, cmd.Arg)
	case command.KindToggleDays:
		m.store.ToggleUseDays(b.ID)
	case command.KindStatusFilter:
		m.store.SetStatusFilter(b.ID, model.StatusFilter(cmd.Arg))
	case command.KindDayFilter:
		m.store.SetDayFilter(b.ID, model.DayFilter(cmd.Arg))
	case command.KindClearDone:
		m.clearDone()
	case command.KindPreset:
		m.store.SetBackgroundPreset(model.BackgroundPreset(cmd.Arg))
	case command.KindBackground:
		m.bgPending++
		return ingestBackground(cmd.Arg)
	case command.KindQuit:
		return tea.Quit
	}

	m.refresh()
	return nil
}

// ingestBackground resolves a URL or image path off the update loop.
func ingestBackground(input string) tea.Cmd {
	return func() tea.Msg {
		url, err := background.Resolve(input)
		return backgroundResolvedMsg{input: input, url: url, err: err}
	}
}

// applyBackground stores a resolved background. Completions apply in
// arrival order.
func (m *Model) applyBackground(msg backgroundResolvedMsg) {
	if m.bgPending > 0 {
		m.bgPending--
	}
	if msg.err != nil {
		m.log.WithError(msg.err).WithField("input", msg.input).Warn("background rejected")
		m.status = "background: " + msg.err.Error()
		return
	}
	m.store.SetBackgroundURL(msg.url)
	if msg.url == "" {
		m.status = "background cleared"
	} else {
		m.status = "background updated"
	}
}

func nextStatusFilter(f model.StatusFilter) model.StatusFilter {
	for i, s := range model.StatusFilters {
		if s == f {
			return model.StatusFilters[(i+1)%len(model.StatusFilters)]
		}
	}
	return model.StatusAll
}

// nextDayFilter cycles all → monday … sunday → all.
func nextDayFilter(f model.DayFilter) model.DayFilter {
	if f == model.DayFilterAll {
		return model.DayFilterFor(model.Days[0])
	}
	for i, d := range model.Days {
		if model.DayFilterFor(d) == f {
			if i+1 < len(model.Days) {
				return model.DayFilterFor(model.Days[i+1])
			}
			return model.DayFilterAll
		}
	}
	return model.DayFilterAll
}

func nextPreset(p model.BackgroundPreset) model.BackgroundPreset {
	for i, q := range model.Presets {
		if q == p {
			return model.Presets[(i+1)%len(model.Presets)]
		}
	}
	return model.DefaultPreset
}

package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Boards
	NextBoard     key.Binding
	PrevBoard     key.Binding
	NewBoard      key.Binding
	RenameBoard   key.Binding
	DeleteBoard   key.Binding
	ToggleDays    key.Binding
	CycleStatus   key.Binding
	CycleDay      key.Binding
	CyclePreset   key.Binding
	SetBackground key.Binding

	// Tasks
	NewTask    key.Binding
	EditTask   key.Binding
	Details    key.Binding
	ToggleTask key.Binding
	DeleteTask key.Binding
	ClearDone  key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Command palette
	Command key.Binding

	// Help toggle
	Help key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		NextBoard: key.NewBinding(
			key.WithKeys("tab", "l", "right"),
			key.WithHelp("tab/l", "next board"),
		),
		PrevBoard: key.NewBinding(
			key.WithKeys("shift+tab", "h", "left"),
			key.WithHelp("S-tab/h", "prev board"),
		),
		NewBoard: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "new board"),
		),
		RenameBoard: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "rename board"),
		),
		DeleteBoard: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "delete board"),
		),
		ToggleDays: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "week mode"),
		),
		CycleStatus: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "status filter"),
		),
		CycleDay: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "day filter"),
		),
		CyclePreset: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "background preset"),
		),
		SetBackground: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "background image"),
		),
		NewTask: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new task"),
		),
		EditTask: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit task"),
		),
		Details: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "task details"),
		),
		ToggleTask: key.NewBinding(
			key.WithKeys("x", " "),
			key.WithHelp("x/space", "toggle done"),
		),
		DeleteTask: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete task"),
		),
		ClearDone: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear done"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command palette"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.NewTask, k.ToggleTask, k.EditTask, k.NextBoard,
		k.Quit, k.Help,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextBoard, k.PrevBoard},
		{k.NewTask, k.EditTask, k.Details, k.ToggleTask, k.DeleteTask, k.ClearDone},
		{k.NewBoard, k.RenameBoard, k.DeleteBoard, k.ToggleDays},
		{k.CycleStatus, k.CycleDay, k.CyclePreset, k.SetBackground},
		{k.Command, k.Help, k.Back, k.Quit},
	}
}

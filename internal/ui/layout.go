package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/glassboard/internal/model"
	"github.com/nhle/glassboard/internal/theme"
)

// Layout manages the multi-panel terminal layout dimensions.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// The header spans the title bar and the board tabs.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    2,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area,
// accounting for the header, tab row and status bar.
func (l Layout) ContentHeight() int {
	return l.Height - l.HeaderHeight - l.StatusBarHeight
}

// RenderHeader renders the top header bar tinted for the background
// preset, with a title on the left and a status on the right.
func (l Layout) RenderHeader(title, status string, preset model.BackgroundPreset) string {
	style := theme.HeaderStyle(preset)
	titleRendered := style.Render(title)

	statusRendered := style.
		Align(lipgloss.Right).
		Render(status)

	gap := l.Width -
		lipgloss.Width(titleRendered) -
		lipgloss.Width(statusRendered)
	if gap < 0 {
		gap = 0
	}

	filler := style.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(style.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		filler,
		statusRendered,
	)
}

// RenderStatusBar renders the bottom status bar with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	rendered := theme.StatusBarStyle.Render(hints)

	gap := l.Width - lipgloss.Width(rendered)
	if gap < 0 {
		gap = 0
	}

	filler := theme.StatusBarStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.StatusBarStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, content area, and status bar.
func (l Layout) RenderWithFrame(
	header string,
	content string,
	statusBar string,
) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		statusBar,
	)
}

// RenderTabs renders one tab per board with the active tab highlighted and
// an optional right-aligned summary.
func (l Layout) RenderTabs(titles []string, active int, summary string) string {
	tabs := make([]string, len(titles))
	for i, t := range titles {
		if i == active {
			tabs[i] = theme.ActiveTabStyle.Render(t)
		} else {
			tabs[i] = theme.TabStyle.Render(t)
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	gap := l.Width - lipgloss.Width(row) - lipgloss.Width(summary)
	if gap < 1 {
		return row
	}
	return row + strings.Repeat(" ", gap) + summary
}

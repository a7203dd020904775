package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/glassboard/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorIndigo  = lipgloss.AdaptiveColor{Dark: "#5C5FD6", Light: "#3C366B"}
	ColorPurple  = lipgloss.AdaptiveColor{Dark: "#9C4DCC", Light: "#553C9A"}
	ColorEmerald = lipgloss.AdaptiveColor{Dark: "#2F9E77", Light: "#22543D"}
	ColorSlate   = lipgloss.AdaptiveColor{Dark: "#1E293B", Light: "#E2E8F0"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// PresetColor maps a background preset to the header accent color.
func PresetColor(p model.BackgroundPreset) lipgloss.AdaptiveColor {
	switch p {
	case model.Preset1:
		return ColorIndigo
	case model.Preset2:
		return ColorPurple
	case model.Preset3:
		return ColorEmerald
	default:
		return ColorSlate
	}
}

// HeaderStyle returns the header bar style tinted for the preset.
func HeaderStyle(p model.BackgroundPreset) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorWhite).
		Background(PresetColor(p)).
		Padding(0, 1)
}

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// PanelStyle wraps overlays such as help and the command palette.
var PanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// DimmedStyle renders completed tasks.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Strikethrough(true)

// TabStyle and ActiveTabStyle render board tabs.
var (
	TabStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Padding(0, 1)
	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite).
			Underline(true).
			Padding(0, 1)
)

// DayBadgeStyle renders a task's day tag.
var DayBadgeStyle = lipgloss.NewStyle().
	Foreground(ColorYellow).
	Bold(true)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// FilterStyle returns a style for a filter chip, highlighted when active.
func FilterStyle(active bool) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1)
	if active {
		return base.Bold(true).Foreground(ColorWhite).Background(ColorBlue)
	}
	return base.Foreground(ColorGray)
}

// Apply selects the palette variant named by the display.theme setting.
// "dark" and "light" pin the adaptive colors; anything else keeps terminal
// detection.
func Apply(name string) {
	switch name {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}
}

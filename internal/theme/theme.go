package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/myslennya/taskpanel/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// NotificationStyle wraps a rendered notification block.
var NotificationStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// DoneStyle renders completed tasks.
var DoneStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Strikethrough(true)

// BadgeStyle renders inline labels such as projects and tags.
var BadgeStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// DueBadgeStyle renders a deadline that has not yet passed.
var DueBadgeStyle = lipgloss.NewStyle().
	Foreground(ColorGreen)

// OverdueBadgeStyle renders a deadline that has passed.
var OverdueBadgeStyle = lipgloss.NewStyle().
	Foreground(ColorRed).
	Bold(true)

// SnoozedBadgeStyle renders an active snooze marker.
var SnoozedBadgeStyle = lipgloss.NewStyle().
	Foreground(ColorYellow)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// ModeStyle returns a color-coded style for the given reminder mode.
func ModeStyle(mode model.Mode) lipgloss.Style {
	switch mode {
	case model.ModeLead:
		return lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	case model.ModeDue:
		return lipgloss.NewStyle().Foreground(ColorOrange).Bold(true)
	case model.ModeOverdue:
		return lipgloss.NewStyle().Foreground(ColorRed).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(ColorWhite)
	}
}

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/stefanpenner/focusone/pkg/goal"
)

// Palette. Category, priority and status colors come from goal metadata.
var (
	ColorAccent    = lipgloss.Color("#38BDF8")
	ColorText      = lipgloss.Color("#E2E8F0")
	ColorSubtle    = lipgloss.Color("#CBD5E1")
	ColorMuted     = lipgloss.Color("#94A3B8")
	ColorDim       = lipgloss.Color("#475569")
	ColorSelection = lipgloss.Color("#1E293B")
	ColorKey       = lipgloss.Color("#818CF8")
	ColorOK        = lipgloss.Color("#4ADE80")
	ColorDanger    = lipgloss.Color("#F43F5E")
	ColorMatchBg   = lipgloss.Color("#0C4A6E")
)

var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	MutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	FooterStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	ErrorStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorDanger)

	KPILabelStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	KPIValueStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorText)
)

// Preset tabs
var (
	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSelection).
			Background(ColorAccent).
			Padding(0, 1)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Padding(0, 1)
)

// Goal list
var (
	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorSelection)

	ItemStyle = lipgloss.NewStyle().Foreground(ColorSubtle)

	OverdueStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Italic(true)

	SectionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent)

	ItemIndent = "  "
)

// Timeline
var (
	AxisStyle     = lipgloss.NewStyle().Foreground(ColorMuted)
	GridStyle     = lipgloss.NewStyle().Foreground(ColorDim)
	TodayStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorDanger)
	RowLabelStyle = lipgloss.NewStyle().Foreground(ColorSubtle)
)

// Modals and inputs
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(1, 2)

	ModalTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	InputPromptStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)

	SearchBarStyle   = lipgloss.NewStyle().Foreground(ColorText)
	SearchCountStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	SearchCharStyle  = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent).
				Background(ColorMatchBg)
)

const (
	IconDone       = "✓"
	IconInProgress = "◐"
	IconBlocked    = "✗"
	IconOpen       = "○"
	IconExpanded   = "▼"
	IconCollapsed  = "▶"
	IconOverdue    = "!"
)

// Timeline glyphs
const (
	GlyphBar       = '█'
	GlyphBarMedium = '▓'
	GlyphBarLight  = '▒'
	GlyphBarDone   = '░'
	GlyphPoint     = '◆'
	GlyphWindow    = '═'
	GlyphGrid      = '┊'
	GlyphToday     = '│'
)

var statusIcons = map[goal.Status]string{
	goal.StatusOpen:       IconOpen,
	goal.StatusInProgress: IconInProgress,
	goal.StatusBlocked:    IconBlocked,
	goal.StatusDone:       IconDone,
}

// statusIcon returns the icon for s in the status color.
func statusIcon(s goal.Status) (string, lipgloss.Style) {
	icon, ok := statusIcons[s]
	if !ok {
		icon = IconOpen
	}
	return icon, lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color()))
}

func categoryStyle(c goal.Category) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color()))
}

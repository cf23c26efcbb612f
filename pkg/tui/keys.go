package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the TUI.
type KeyMap struct {
	Up             key.Binding
	Down           key.Binding
	Enter          key.Binding
	Space          key.Binding
	Tab            key.Binding
	InlineEdit     key.Binding
	ExternalEdit   key.Binding
	Add            key.Binding
	Delete         key.Binding
	Rename         key.Binding
	Dates          key.Binding
	Milestone      key.Binding
	Category       key.Binding
	PriorityUp     key.Binding
	PriorityDown   key.Binding
	Preset         key.Binding
	Density        key.Binding
	Mode           key.Binding
	Group          key.Binding
	FilterCategory key.Binding
	HideDone       key.Binding
	ResetFilters   key.Binding
	Reload         key.Binding
	Help           key.Binding
	Search         key.Binding
	Quit           key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "collapse section"),
		),
		Space: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "cycle status"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		InlineEdit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit notes"),
		),
		ExternalEdit: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "$EDITOR"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add goal"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename goal"),
		),
		Dates: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "set dates"),
		),
		Milestone: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "set milestone"),
		),
		Category: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cycle category"),
		),
		PriorityUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "raise priority"),
		),
		PriorityDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "lower priority"),
		),
		Preset: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "next range preset"),
		),
		Density: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "cycle density"),
		),
		Mode: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "lanes / flat"),
		),
		Group: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "cycle grouping"),
		),
		FilterCategory: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "toggle category filter"),
		),
		HideDone: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "toggle done filter"),
		),
		ResetFilters: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reset filters"),
		),
		Reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the footer help text.
func (k KeyMap) ShortHelp() string {
	return "↑↓ nav  a add  r rename  t dates  space status  p preset  v mode  / search  1-5 filter  ? help"
}

// FullHelp returns all key bindings for the help modal.
func (k KeyMap) FullHelp() [][]string {
	return [][]string{
		{"↑/k", "Move up"},
		{"↓/j", "Move down"},
		{"enter", "Collapse / expand section"},
		{"tab", "Switch pane (list / notes)"},
		{"a", "Add goal"},
		{"r", "Rename goal"},
		{"t", "Set start and end dates"},
		{"M", "Set milestone (point / window / none)"},
		{"space", "Cycle status"},
		{"c", "Cycle category"},
		{"+ / -", "Raise / lower priority"},
		{"e", "Edit notes inline"},
		{"E", "Edit notes in $EDITOR"},
		{"d", "Delete goal (with confirmation)"},
		{"p", "Next range preset"},
		{"z", "Cycle density"},
		{"v", "Toggle lanes / flat rows"},
		{"g", "Group list by status / priority / flow"},
		{"/", "Search title, notes, category"},
		{"1-5", "Toggle category filter"},
		{"o", "Toggle done filter"},
		{"x", "Reset filters"},
		{"R", "Reload from storage"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
}

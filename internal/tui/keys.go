package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all table key bindings with built-in help text.
type KeyMap struct {
	// Global
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
	Escape    key.Binding

	// Rows
	Up   key.Binding
	Down key.Binding

	// Pages
	FirstPage key.Binding
	PrevPage  key.Binding
	NextPage  key.Binding
	LastPage  key.Binding
	JumpPage  key.Binding

	// Actions
	Search     key.Binding
	Select     key.Binding
	SelectAll  key.Binding
	Edit       key.Binding
	Delete     key.Binding
	BulkDelete key.Binding
	Roles      key.Binding

	// Edit row
	NextField key.Binding
	PrevField key.Binding
	Save      key.Binding
	Cancel    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("escape", "esc"),
			key.WithHelp("esc", "clear search"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),

		FirstPage: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h", "pgup"),
			key.WithHelp("←/h", "previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l", "pgdown"),
			key.WithHelp("→/l", "next page"),
		),
		LastPage: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last page"),
		),
		JumpPage: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "go to page"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Select: key.NewBinding(
			key.WithKeys("x", " "),
			key.WithHelp("x/space", "select row"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("a", "A"),
			key.WithHelp("A", "select page"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit row"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete row"),
		),
		BulkDelete: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete selected"),
		),
		Roles: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "role summary"),
		),

		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Save: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("escape", "esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// BrowseHelp returns the bindings listed in the status line and help modal.
func (k KeyMap) BrowseHelp() []key.Binding {
	return []key.Binding{
		k.Search, k.Up, k.Down, k.PrevPage, k.NextPage, k.FirstPage, k.LastPage, k.JumpPage,
		k.Select, k.SelectAll, k.Edit, k.Delete, k.BulkDelete, k.Roles, k.Help, k.Quit,
	}
}

// EditHelp returns the bindings active while a row is being edited.
func (k KeyMap) EditHelp() []key.Binding {
	return []key.Binding{k.NextField, k.PrevField, k.Save, k.Cancel}
}

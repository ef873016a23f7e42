package tui

import tea "github.com/charmbracelet/bubbletea"

// Action identifies what a modal wants the table to do.
type Action int

const (
	ActionSetSearchTerm Action = iota
	ActionPushModal
)

// ActionMsg is returned by modals to communicate with the table
// without mutating it directly.
type ActionMsg struct {
	Action  Action
	Payload any
}

// actionMsg wraps ActionMsg as a tea.Cmd.
func actionMsg(a ActionMsg) tea.Cmd {
	return func() tea.Msg { return a }
}

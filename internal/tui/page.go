package tui

import tea "github.com/charmbracelet/bubbletea"

// Page represents a top-level screen in the TUI.
type Page interface {
	ID() string
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(width, height int) string
}

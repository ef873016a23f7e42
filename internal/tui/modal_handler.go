package tui

import tea "github.com/charmbracelet/bubbletea"

// Modal is a self-contained modal that owns its own Update/View lifecycle.
// Modals are managed via a stack on TableModel; the topmost modal
// receives all input and renders full-screen.
type Modal interface {
	// ID returns a unique identifier used to deduplicate pushes.
	ID() string
	// Update processes a message. Return pop=true to close the modal.
	Update(msg tea.Msg) (pop bool, cmd tea.Cmd)
	// View renders the modal content for the given terminal dimensions.
	View(width, height int) string
}

// InlineHandler handles key events for an inline input mode (search bar or
// row editor). These are part of the table layout, not modals.
type InlineHandler interface {
	// HandleKey processes a key press. Return handled=true if consumed.
	HandleKey(m *TableModel, msg tea.KeyMsg) (handled bool, cmd tea.Cmd)
}

// inlineHandlerEntry pairs an activation predicate with an inline handler.
type inlineHandlerEntry struct {
	isActive func(m *TableModel) bool
	handler  InlineHandler
}

package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyPress dispatches key events: modal stack first, then inline
// handlers (row editor, search), then global table shortcuts.
func (m *TableModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	// Modal on stack gets the event first.
	if modal := m.TopModal(); modal != nil {
		pop, cmd := modal.Update(msg)
		if pop {
			m.PopModal()
		}
		return m, cmd
	}

	for _, entry := range m.inlineHandlers {
		if entry.isActive(m) {
			handled, cmd := entry.handler.HandleKey(m, msg)
			if handled {
				return m, cmd
			}
			break
		}
	}

	return m.handleGlobalKeys(msg)
}

// handleGlobalKeys handles table-level shortcuts.
// Only reached when no modal is on the stack and no inline handler is active.
func (m *TableModel) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	pager := m.store.Snapshot().Pager

	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Help):
		m.PushModal(NewHelpModal(k))

	case key.Matches(msg, k.Escape):
		if m.searchInput.Value() != "" {
			m.searchInput.SetValue("")
			m.applySearchTerm("")
		}

	case key.Matches(msg, k.Search):
		m.searchActive = true
		return m, m.searchInput.Focus()

	case key.Matches(msg, k.Up):
		m.moveCursor(-1)

	case key.Matches(msg, k.Down):
		m.moveCursor(1)

	case key.Matches(msg, k.FirstPage):
		if !pager.FirstDisabled {
			m.gotoPage(1)
		}

	case key.Matches(msg, k.PrevPage):
		if !pager.PrevDisabled {
			m.gotoPage(pager.Page - 1)
		}

	case key.Matches(msg, k.NextPage):
		if !pager.NextDisabled {
			m.gotoPage(pager.Page + 1)
		}

	case key.Matches(msg, k.LastPage):
		if !pager.LastDisabled {
			m.gotoPage(pager.TotalPages)
		}

	case key.Matches(msg, k.JumpPage):
		if len(msg.Runes) == 1 {
			if page := int(msg.Runes[0] - '0'); page <= pager.TotalPages {
				m.gotoPage(page)
			}
		}

	case key.Matches(msg, k.Select):
		if r, ok := m.cursorRecord(); ok {
			m.store.ToggleRowSelection(r.ID)
		}

	case key.Matches(msg, k.SelectAll):
		m.store.ToggleSelectAll()

	case key.Matches(msg, k.Edit):
		if r, ok := m.cursorRecord(); ok {
			return m, m.beginEdit(r)
		}

	case key.Matches(msg, k.Delete):
		if r, ok := m.cursorRecord(); ok {
			if m.store.DeleteRecord(r.ID) {
				m.status = fmt.Sprintf("Deleted record %d", r.ID)
			}
			m.clampCursor()
		}

	case key.Matches(msg, k.BulkDelete):
		removed := m.store.BulkDelete()
		m.status = fmt.Sprintf("Deleted %d selected records", removed)
		m.cursor = 0

	case key.Matches(msg, k.Roles):
		m.PushModal(NewRolesModal(m.store.Filtered()))
	}

	return m, nil
}

// gotoPage moves the engine to page and puts the cursor on its first row.
func (m *TableModel) gotoPage(page int) {
	m.store.ChangePage(page)
	m.cursor = 0
}

package tui

import tea "github.com/charmbracelet/bubbletea"

// searchInputHandler feeds keys to the search bar. Every change to the text
// is applied to the engine immediately.
type searchInputHandler struct{}

func (h searchInputHandler) HandleKey(m *TableModel, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "escape", "esc":
		m.searchActive = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.applySearchTerm("")
		return true, nil
	case "enter":
		m.searchActive = false
		m.searchInput.Blur()
		return true, nil
	default:
		before := m.searchInput.Value()
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		if after := m.searchInput.Value(); after != before {
			m.applySearchTerm(after)
		}
		return true, cmd
	}
}

package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// View renders the table
func (m *TableModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Initializing table..."
	}

	// If a modal is on the stack, render it full-screen.
	if modal := m.TopModal(); modal != nil {
		return modal.View(m.width, m.height)
	}

	return m.renderTable()
}

// renderTable renders the main layout: header, search bar, rows, footer and
// status line.
func (m *TableModel) renderTable() string {
	if m.height < 10 || m.width < 50 {
		return "Terminal too small. Resize to at least 50x10."
	}

	snap := m.store.Snapshot()
	cols := layoutColumns(m.width)

	sections := []string{
		m.renderHeader(snap.Total),
		m.renderSearchBar(),
		renderColumnHeader(cols, snap.AllOnPageSelected),
	}

	// Fixed rows: header, search, column header, footer, status line.
	bodyHeight := m.height - 5
	if m.loading {
		sections = append(sections, renderLoadingPlaceholder(m.spinner.View(), m.width, bodyHeight))
	} else if len(snap.Records) == 0 {
		sections = append(sections, renderEmptyPlaceholder(snap.Total, m.width, bodyHeight))
	} else {
		rows := make([]string, 0, len(snap.Records))
		for i, r := range snap.Records {
			rows = append(rows, m.renderRow(cols, r, i == m.cursor, snap.IsSelected(r.ID)))
		}
		body := lipgloss.JoinVertical(lipgloss.Left, rows...)
		sections = append(sections, lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body))
	}

	sections = append(sections,
		renderFooter(snap, m.width),
		m.renderStatusLine(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

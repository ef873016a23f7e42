package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/tinytelemetry/memberdesk/internal/model"
)

// columnLayout holds the width of every table column. Columns are separated
// by a single space.
type columnLayout struct {
	check   int
	id      int
	name    int
	email   int
	role    int
	actions int
}

func layoutColumns(width int) columnLayout {
	cols := columnLayout{check: 5, id: 6, role: 12, actions: 16}
	flex := width - cols.check - cols.id - cols.role - cols.actions - 5
	if flex < 16 {
		flex = 16
	}
	cols.name = flex * 2 / 5
	cols.email = flex - cols.name
	return cols
}

// cell pads or truncates s to exactly w cells.
func cell(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Width(w).Render(ansi.Truncate(s, w, "…"))
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

func joinCells(cells ...string) string {
	return strings.Join(cells, " ")
}

// renderHeader renders the title bar.
func (m *TableModel) renderHeader(total int) string {
	title := lipgloss.NewStyle().
		Background(ColorNavy).
		Foreground(ColorBlue).
		Bold(true).
		Render(" Members ")

	count := lipgloss.NewStyle().
		Background(ColorNavy).
		Foreground(ColorWhite).
		Render(fmt.Sprintf("%d records ", total))

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(count)
	if gap < 0 {
		gap = 0
	}
	filler := lipgloss.NewStyle().Background(ColorNavy).Render(strings.Repeat(" ", gap))
	return title + filler + count
}

// renderSearchBar renders the search input, or a hint when idle and empty.
func (m *TableModel) renderSearchBar() string {
	style := lipgloss.NewStyle().Padding(0, 1)

	if m.searchActive {
		return style.Foreground(ColorGreen).Render(m.searchInput.View())
	}
	if term := m.searchInput.Value(); term != "" {
		return style.Foreground(ColorGreen).Render(fmt.Sprintf("/ %s", term))
	}
	return style.Foreground(ColorGray).Render("/ to search")
}

// renderColumnHeader renders column titles and the select-all checkbox.
func renderColumnHeader(cols columnLayout, allSelected bool) string {
	line := joinCells(
		cell("  "+checkbox(allSelected), cols.check),
		cell("ID", cols.id),
		cell("Name", cols.name),
		cell("Email", cols.email),
		cell("Role", cols.role),
		cell("Actions", cols.actions),
	)
	return lipgloss.NewStyle().
		Foreground(ColorGray).
		Bold(true).
		Underline(true).
		Render(line)
}

// renderRow renders one record, or the inline editor when r is being edited.
func (m *TableModel) renderRow(cols columnLayout, r model.Record, cursor, selected bool) string {
	marker := "  "
	if cursor {
		marker = "▸ "
	}

	name, email, role := r.Name, r.Email, r.Role
	actions := "e edit · d del"
	editing := m.edit.IsEditing(r.ID)
	if editing {
		values := make([]string, len(m.editInputs))
		widths := []int{cols.name, cols.email, cols.role}
		for i := range m.editInputs {
			in := m.editInputs[i]
			if in.Value() == "" {
				// An emptied field shows, and saves, the original value.
				values[i] = lipgloss.NewStyle().Faint(true).Render(m.edit.Value(model.EditableFields[i], r))
				continue
			}
			in.Width = max(1, widths[i]-1)
			values[i] = in.View()
		}
		if len(values) == 3 {
			name, email, role = values[0], values[1], values[2]
		}
		actions = "⏎ save · esc"
	}

	line := joinCells(
		cell(marker+checkbox(selected), cols.check),
		cell(strconv.Itoa(r.ID), cols.id),
		cell(name, cols.name),
		cell(email, cols.email),
		cell(role, cols.role),
		cell(actions, cols.actions),
	)

	style := lipgloss.NewStyle().Foreground(ColorWhite)
	switch {
	case editing:
		style = style.Foreground(ColorOrange)
	case selected:
		style = style.Background(ColorSelect).Foreground(lipgloss.Color("0"))
	}
	if cursor {
		style = style.Bold(true)
	}
	return style.Render(line)
}

// renderEmptyPlaceholder renders the table body when the page slice is empty.
func renderEmptyPlaceholder(total, width, height int) string {
	text := "No results."
	if total == 0 {
		text = "No records."
	}
	msg := lipgloss.NewStyle().
		Foreground(ColorGray).
		Italic(true).
		Render(text)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}

// renderFooter renders the selection count, page indicator and pagination
// controls.
func renderFooter(snap model.Snapshot, width int) string {
	left := lipgloss.NewStyle().
		Foreground(ColorGray).
		Render(fmt.Sprintf(" %d out of %d rows selected", len(snap.Selected), len(snap.Records)))

	right := fmt.Sprintf("Page %d of %d  %s ", snap.Pager.Page, snap.Pager.TotalPages, renderPagerControls(snap.Pager))

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		right = ansi.Truncate(right, max(0, width-lipgloss.Width(left)-1), "…")
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderPagerControls renders « ‹ 1..N › » with disabled controls dimmed and
// the active page highlighted.
func renderPagerControls(p model.Pager) string {
	enabled := lipgloss.NewStyle().Foreground(ColorBlue)
	disabled := lipgloss.NewStyle().Foreground(ColorGray).Faint(true)
	current := lipgloss.NewStyle().Background(ColorBlue).Foreground(ColorWhite).Bold(true)

	control := func(label string, off bool) string {
		if off {
			return disabled.Render(label)
		}
		return enabled.Render(label)
	}

	parts := []string{control("«", p.FirstDisabled), control("‹", p.PrevDisabled)}
	for _, n := range p.Pages() {
		label := strconv.Itoa(n)
		if n == p.Page {
			parts = append(parts, current.Render(" "+label+" "))
		} else {
			parts = append(parts, enabled.Render(label))
		}
	}
	parts = append(parts, control("›", p.NextDisabled), control("»", p.LastDisabled))
	return strings.Join(parts, " ")
}

// renderStatusLine renders the status/help line at the bottom of the screen
func (m *TableModel) renderStatusLine() string {
	baseStyle := lipgloss.NewStyle().
		Background(ColorNavy).
		Foreground(ColorWhite)

	w := m.width
	narrow := w < 80

	var leftText string
	switch {
	case m.currentError() != "":
		leftText = lipgloss.NewStyle().
			Background(ColorNavy).
			Foreground(ColorRed).
			Render(m.currentError())
	case m.status != "":
		leftText = m.status
	}

	var statusText string
	_, editing := m.edit.Editing()
	switch {
	case editing:
		statusText = "Tab: Next field • Enter: Save • ESC: Cancel"
	case m.searchActive:
		statusText = "Type search term • Enter: Keep • ESC: Clear"
	case narrow:
		statusText = "?: Help • /: Search • x: Select • e: Edit • q: Quit"
	default:
		statusText = "?: Help • /: Search • ←→: Page • x: Select • A: Page • e: Edit • d: Delete • D: Bulk • r: Roles • q: Quit"
	}

	leftWidth := min(lipgloss.Width(leftText)+2, w/3)
	centerWidth := max(0, w-leftWidth)

	leftPart := baseStyle.Align(lipgloss.Left).Width(leftWidth).Render(ansi.Truncate(leftText, max(0, leftWidth-1), "…"))
	centerPart := baseStyle.Align(lipgloss.Right).Width(centerWidth).Render(ansi.Truncate(statusText, max(0, centerWidth-1), "…"))

	return lipgloss.JoinHorizontal(lipgloss.Top, leftPart, centerPart)
}

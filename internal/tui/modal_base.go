package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// modalSize returns the outer and content dimensions for a full-screen modal.
func modalSize(width, height int) (modalWidth, modalHeight, contentWidth, contentHeight int) {
	modalWidth = width - 8   // 4 chars margin on each side
	modalHeight = height - 4 // 2 lines margin top and bottom

	contentWidth = max(1, modalWidth-4)   // Modal borders
	contentHeight = max(1, modalHeight-4) // Header + status
	return
}

// renderModalFrame wraps body with a title, a status bar and a rounded
// border, centred on screen.
func renderModalFrame(title, body string, statusItems []string, width, height int) string {
	modalWidth, modalHeight, contentWidth, contentHeight := modalSize(width, height)

	contentPane := lipgloss.NewStyle().
		Width(contentWidth).
		Height(contentHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorGray).
		Render(body)

	header := lipgloss.NewStyle().
		Width(contentWidth).
		Foreground(ColorBlue).
		Bold(true).
		Render(title)

	statusBar := lipgloss.NewStyle().
		Foreground(ColorGray).
		Render(strings.Join(statusItems, " | "))

	modal := lipgloss.JoinVertical(lipgloss.Left, header, contentPane, statusBar)

	finalModal := lipgloss.NewStyle().
		Width(modalWidth).
		Height(modalHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBlue).
		Render(modal)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, finalModal)
}

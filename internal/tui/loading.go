package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// renderLoadingPlaceholder renders the spinner frame centred in the table body.
func renderLoadingPlaceholder(frame string, width, height int) string {
	loadingStyle := lipgloss.NewStyle().
		Foreground(ColorGray).
		Italic(true)

	text := frame + loadingStyle.Render(" Loading members...")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, text)
}

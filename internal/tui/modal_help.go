package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// HelpModal lists every key binding in a scrollable viewport.
type HelpModal struct {
	viewport viewport.Model
	content  string
}

func NewHelpModal(keys KeyMap) *HelpModal {
	return &HelpModal{
		viewport: viewport.New(80, 20),
		content:  renderHelpContent(keys),
	}
}

func (h *HelpModal) ID() string { return "help" }

func (h *HelpModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}
	switch keyMsg.String() {
	case "up", "k":
		h.viewport.ScrollUp(1)
		return false, nil
	case "down", "j":
		h.viewport.ScrollDown(1)
		return false, nil
	case "pgup":
		h.viewport.HalfPageUp()
		return false, nil
	case "pgdown":
		h.viewport.HalfPageDown()
		return false, nil
	case "?", "q", "escape", "esc":
		return true, nil
	}
	var cmd tea.Cmd
	h.viewport, cmd = h.viewport.Update(keyMsg)
	return false, cmd
}

func (h *HelpModal) View(width, height int) string {
	_, _, contentWidth, contentHeight := modalSize(width, height)
	h.viewport.Width = contentWidth
	h.viewport.Height = contentHeight
	h.viewport.SetContent(h.content)

	return renderModalFrame("Help", h.viewport.View(),
		[]string{"up/down: Scroll", "PgUp/PgDn: Page", "?/ESC: Close"}, width, height)
}

func renderHelpContent(keys KeyMap) string {
	var b strings.Builder
	b.WriteString("Member table\n\n")
	writeBindings(&b, "TABLE", keys.BrowseHelp())
	b.WriteString("\n")
	writeBindings(&b, "EDITING A ROW", keys.EditHelp())
	b.WriteString(`
NOTES:
  Search matches any column, ignoring case, and returns to page 1.
  Select page (A) clears the selection when the whole page is already
  selected, otherwise it selects exactly the rows on this page.
  An emptied field keeps its original value when saved.
  Changes live in memory only and are lost on exit.
`)
	return b.String()
}

func writeBindings(b *strings.Builder, title string, bindings []key.Binding) {
	b.WriteString(title + ":\n")
	for _, binding := range bindings {
		help := binding.Help()
		fmt.Fprintf(b, "  %-12s - %s\n", help.Key, help.Desc)
	}
}

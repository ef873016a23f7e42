package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/memberdesk/internal/model"
)

// roleCount is the number of filtered records sharing one role.
type roleCount struct {
	Role  string
	Count int
}

// countRoles tallies records by role, largest first, ties by name.
func countRoles(records []model.Record) []roleCount {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Role]++
	}
	out := make([]roleCount, 0, len(counts))
	for role, n := range counts {
		out = append(out, roleCount{Role: role, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Role < out[j].Role
	})
	return out
}

// RolesModal charts how many filtered records hold each role. Enter searches
// for the highlighted role.
type RolesModal struct {
	roles  []roleCount
	cursor int
}

func NewRolesModal(records []model.Record) *RolesModal {
	return &RolesModal{roles: countRoles(records)}
}

func (r *RolesModal) ID() string { return "roles" }

func (r *RolesModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}
	switch keyMsg.String() {
	case "up", "k", "left", "h":
		if r.cursor > 0 {
			r.cursor--
		}
	case "down", "j", "right", "l":
		if r.cursor < len(r.roles)-1 {
			r.cursor++
		}
	case "enter":
		if r.cursor < len(r.roles) && r.roles[r.cursor].Role != "" {
			return true, actionMsg(ActionMsg{Action: ActionSetSearchTerm, Payload: r.roles[r.cursor].Role})
		}
	case "?":
		return false, actionMsg(ActionMsg{Action: ActionPushModal, Payload: NewHelpModal(DefaultKeyMap())})
	case "r", "q", "escape", "esc":
		return true, nil
	}
	return false, nil
}

func (r *RolesModal) View(width, height int) string {
	_, _, contentWidth, contentHeight := modalSize(width, height)

	var body string
	if len(r.roles) == 0 {
		body = lipgloss.NewStyle().Foreground(ColorGray).Italic(true).Render("No records.")
	} else {
		legend := r.renderLegend()
		chartWidth := max(10, contentWidth-lipgloss.Width(legend)-2)
		body = lipgloss.JoinHorizontal(lipgloss.Top, r.renderChart(chartWidth, contentHeight), "  ", legend)
	}

	return renderModalFrame("Roles", body,
		[]string{"up/down: Move", "Enter: Search role", "?: Help", "ESC: Close"}, width, height)
}

func (r *RolesModal) renderChart(width, height int) string {
	bc := barchart.New(width, height,
		barchart.WithBarGap(1),
		barchart.WithBarWidth(max(1, min(6, width/max(1, 2*len(r.roles))))),
		barchart.WithNoAxis(),
	)

	for i, rc := range r.roles {
		color := ColorGray
		if i == r.cursor {
			color = ColorBlue
		}
		bc.Push(barchart.BarData{
			Label: "",
			Values: []barchart.BarValue{
				{Name: rc.Role, Value: float64(rc.Count), Style: lipgloss.NewStyle().Foreground(color).Background(color)},
			},
		})
	}

	bc.Draw()
	return bc.View()
}

func (r *RolesModal) renderLegend() string {
	lines := make([]string, 0, len(r.roles)+2)
	total := 0
	for i, rc := range r.roles {
		total += rc.Count
		name := rc.Role
		if name == "" {
			name = "(none)"
		}
		style := lipgloss.NewStyle().Foreground(ColorWhite)
		prefix := "  "
		if i == r.cursor {
			style = style.Foreground(ColorBlue).Bold(true)
			prefix = "▸ "
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s%-12s %5d", prefix, name, rc.Count)))
	}
	lines = append(lines,
		lipgloss.NewStyle().Foreground(ColorGray).Render(strings.Repeat("─", 21)),
		fmt.Sprintf("  %-12s %5d", "TOTAL", total),
	)
	return strings.Join(lines, "\n")
}

package tui

import tea "github.com/charmbracelet/bubbletea"

// App is the top-level Bubble Tea model that routes between pages.
type App struct {
	pages      map[string]Page
	order      []string
	activePage string
	width      int
	height     int
}

// NewApp creates a new App with the given pages. The first page is the default.
func NewApp(pages ...Page) *App {
	a := &App{pages: make(map[string]Page, len(pages))}
	for _, p := range pages {
		a.pages[p.ID()] = p
		a.order = append(a.order, p.ID())
	}
	if len(a.order) > 0 {
		a.activePage = a.order[0]
	}
	return a
}

func (a *App) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(a.order))
	for _, id := range a.order {
		cmds = append(cmds, a.pages[id].Init())
	}
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, a.broadcast(msg)
	case EngineChangedMsg:
		// Every page renders from the same store.
		return a, a.broadcast(msg)
	}

	p, ok := a.pages[a.activePage]
	if !ok {
		return a, nil
	}

	return a, p.Update(msg)
}

func (a *App) broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(a.order))
	for _, id := range a.order {
		cmds = append(cmds, a.pages[id].Update(msg))
	}
	return tea.Batch(cmds...)
}

func (a *App) View() string {
	if p, ok := a.pages[a.activePage]; ok {
		return p.View(a.width, a.height)
	}
	return "No active page"
}

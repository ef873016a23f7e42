package tui

import (
	"context"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinytelemetry/memberdesk/internal/model"
)

// recordsLoadedMsg carries the result of the startup fetch.
type recordsLoadedMsg struct {
	records []model.Record
	err     error
}

// EngineChangedMsg is sent when the store changes outside the event loop,
// for example through the HTTP API.
type EngineChangedMsg struct{}

// fetchRecordsCmd fetches the record list once. There is no retry.
func fetchRecordsCmd(src model.RecordSource) tea.Cmd {
	return func() tea.Msg {
		records, err := src.Fetch(context.Background())
		return recordsLoadedMsg{records: records, err: err}
	}
}

// Update handles messages
func (m *TableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case ActionMsg:
		switch msg.Action {
		case ActionSetSearchTerm:
			if term, ok := msg.Payload.(string); ok {
				m.searchInput.SetValue(term)
				m.applySearchTerm(term)
			}
		case ActionPushModal:
			if modal, ok := msg.Payload.(Modal); ok {
				m.PushModal(modal)
			}
		}
		return m, nil

	case recordsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			log.Printf("tui: fetching records: %v", msg.err)
			m.setError(fmt.Sprintf("fetch failed: %v", msg.err))
			return m, nil
		}
		m.store.Load(msg.records)
		m.cursor = 0
		return m, nil

	case EngineChangedMsg:
		m.clampCursor()
		m.dropStaleEdit()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// applySearchTerm stores term in the engine, which returns to page 1.
func (m *TableModel) applySearchTerm(term string) {
	m.store.SetSearchTerm(term)
	m.cursor = 0
}

// dropStaleEdit cancels the row editor when its row no longer exists.
func (m *TableModel) dropStaleEdit() {
	id, ok := m.edit.Editing()
	if !ok {
		return
	}
	if _, found := m.recordByID(id); !found {
		m.cancelEdit()
	}
}

func (m *TableModel) recordByID(id int) (model.Record, bool) {
	for _, r := range m.store.Records() {
		if r.ID == id {
			return r, true
		}
	}
	return model.Record{}, false
}

package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinytelemetry/memberdesk/internal/model"
)

// editRowHandler feeds keys to the inline row editor.
type editRowHandler struct{}

func (h editRowHandler) HandleKey(m *TableModel, msg tea.KeyMsg) (bool, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Cancel):
		m.cancelEdit()
		return true, nil
	case key.Matches(msg, k.Save):
		m.saveEdit()
		return true, nil
	case key.Matches(msg, k.NextField):
		return true, m.focusField(m.editFocus + 1)
	case key.Matches(msg, k.PrevField):
		return true, m.focusField(m.editFocus - 1)
	}

	if m.editFocus < 0 || m.editFocus >= len(m.editInputs) {
		return true, nil
	}
	var cmd tea.Cmd
	m.editInputs[m.editFocus], cmd = m.editInputs[m.editFocus].Update(msg)
	m.edit.Set(model.EditableFields[m.editFocus], m.editInputs[m.editFocus].Value())
	return true, cmd
}

// beginEdit opens the row editor on r, replacing any previous draft.
func (m *TableModel) beginEdit(r model.Record) tea.Cmd {
	m.edit.Begin(r)
	m.editInputs = make([]textinput.Model, len(model.EditableFields))
	for i, f := range model.EditableFields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 256
		ti.SetValue(r.Get(f))
		m.editInputs[i] = ti
	}
	m.editFocus = -1
	return m.focusField(0)
}

// focusField moves input focus to field i, wrapping around.
func (m *TableModel) focusField(i int) tea.Cmd {
	n := len(m.editInputs)
	if n == 0 {
		return nil
	}
	i = ((i % n) + n) % n
	if m.editFocus >= 0 && m.editFocus < n {
		m.editInputs[m.editFocus].Blur()
	}
	m.editFocus = i
	return m.editInputs[i].Focus()
}

// saveEdit commits the draft to the engine. Emptied fields keep their
// original values.
func (m *TableModel) saveEdit() {
	id, ok := m.edit.Editing()
	if !ok {
		return
	}
	orig, found := m.recordByID(id)
	if !found {
		m.cancelEdit()
		m.setError(fmt.Sprintf("record %d no longer exists", id))
		return
	}

	_, patch, _ := m.edit.Commit(orig)
	m.editInputs = nil
	m.editFocus = 0
	if m.store.EditRecord(id, patch) {
		m.status = fmt.Sprintf("Saved record %d", id)
	}
	m.clampCursor()
}

// cancelEdit discards the draft.
func (m *TableModel) cancelEdit() {
	m.edit.Cancel()
	m.editInputs = nil
	m.editFocus = 0
}

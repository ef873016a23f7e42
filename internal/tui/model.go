package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/memberdesk/internal/model"
	"github.com/tinytelemetry/memberdesk/internal/roster"
)

// Store is the engine surface the table reads from and writes to.
type Store interface {
	model.RecordStore
	Load(records []model.Record)
	Records() []model.Record
	Filtered() []model.Record
}

// errorTTL is how long a fetch or save error stays in the status line.
const errorTTL = 30 * time.Second

// ModalStackState holds the modal stack that replaces boolean flag explosion.
type ModalStackState struct {
	modalStack []Modal
}

// EditRowState holds the inline row editor: the draft and one input per
// editable field.
type EditRowState struct {
	edit       roster.EditState
	editInputs []textinput.Model
	editFocus  int
}

// TableModel is the member table: search bar, one page of rows, footer and
// pagination controls. All table state lives in the store; the model only
// keeps cursor, input, and modal state.
type TableModel struct {
	ModalStackState
	EditRowState

	store  Store
	source model.RecordSource
	keys   KeyMap

	searchInput  textinput.Model
	searchActive bool

	// Row cursor within the current page slice.
	cursor int

	spinner spinner.Model
	loading bool

	lastError   string
	lastErrorAt time.Time
	status      string

	width  int
	height int

	// Inline handlers for search and row edit input (not modals).
	inlineHandlers []inlineHandlerEntry
}

// NewTableModel creates the table over store. When source is non-nil, Init
// fetches records from it and the table shows a spinner until they arrive.
func NewTableModel(store Store, source model.RecordSource) *TableModel {
	searchInput := textinput.New()
	searchInput.Placeholder = "Search by name, email or role..."
	searchInput.Prompt = "/ "
	searchInput.CharLimit = 256
	searchInput.SetValue(store.Snapshot().SearchTerm)

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(ColorGray)

	m := &TableModel{
		store:       store,
		source:      source,
		keys:        DefaultKeyMap(),
		searchInput: searchInput,
		spinner:     sp,
		loading:     source != nil,
	}

	m.inlineHandlers = []inlineHandlerEntry{
		{isActive: (*TableModel).isEditing, handler: editRowHandler{}},
		{isActive: func(m *TableModel) bool { return m.searchActive }, handler: searchInputHandler{}},
	}

	return m
}

// Init starts the record fetch.
func (m *TableModel) Init() tea.Cmd {
	if m.source == nil {
		return nil
	}
	return tea.Batch(m.spinner.Tick, fetchRecordsCmd(m.source))
}

// PushModal pushes a modal onto the stack. Deduplicates by ID.
func (m *TableModel) PushModal(modal Modal) {
	for _, existing := range m.modalStack {
		if existing.ID() == modal.ID() {
			return
		}
	}
	m.modalStack = append(m.modalStack, modal)
}

// PopModal removes the topmost modal from the stack.
func (m *TableModel) PopModal() {
	if len(m.modalStack) > 0 {
		m.modalStack = m.modalStack[:len(m.modalStack)-1]
	}
}

// TopModal returns the topmost modal, or nil if the stack is empty.
func (m *TableModel) TopModal() Modal {
	if len(m.modalStack) == 0 {
		return nil
	}
	return m.modalStack[len(m.modalStack)-1]
}

// HasModal returns true if any modal is on the stack.
func (m *TableModel) HasModal() bool {
	return len(m.modalStack) > 0
}

func (m *TableModel) isEditing() bool {
	_, ok := m.edit.Editing()
	return ok
}

func (m *TableModel) setError(msg string) {
	m.lastError = msg
	m.lastErrorAt = time.Now()
}

// currentError returns the last error if it is still fresh.
func (m *TableModel) currentError() string {
	if m.lastError == "" || time.Since(m.lastErrorAt) > errorTTL {
		return ""
	}
	return m.lastError
}

// cursorRecord returns the row under the cursor on the current page.
func (m *TableModel) cursorRecord() (model.Record, bool) {
	records := m.store.Snapshot().Records
	if m.cursor < 0 || m.cursor >= len(records) {
		return model.Record{}, false
	}
	return records[m.cursor], true
}

func (m *TableModel) clampCursor() {
	n := len(m.store.Snapshot().Records)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *TableModel) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

// TablePage adapts TableModel to the Page interface.
type TablePage struct {
	m *TableModel
}

// NewTablePage wraps m as the "table" page.
func NewTablePage(m *TableModel) *TablePage {
	return &TablePage{m: m}
}

func (p *TablePage) ID() string { return "table" }

func (p *TablePage) Init() tea.Cmd { return p.m.Init() }

func (p *TablePage) Update(msg tea.Msg) tea.Cmd {
	_, cmd := p.m.Update(msg)
	return cmd
}

func (p *TablePage) View(width, height int) string {
	p.m.width = width
	p.m.height = height
	return p.m.View()
}

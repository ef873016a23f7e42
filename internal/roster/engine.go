package roster

import (
	"log"
	"sort"
	"sync"

	"github.com/tinytelemetry/memberdesk/internal/model"
)

// Engine owns the canonical record list and the table state derived from it.
// Filtered lists and page slices are recomputed on every read.
type Engine struct {
	mu         sync.RWMutex
	records    []model.Record
	searchTerm string
	page       int
	pageSize   int
	selected   map[int]struct{}

	listenersMu sync.Mutex
	listeners   []func()
}

var _ model.RecordStore = (*Engine)(nil)

// NewEngine creates an empty engine using the fixed page size.
func NewEngine() *Engine {
	return &Engine{
		page:     1,
		pageSize: model.PageSize,
		selected: make(map[int]struct{}),
	}
}

// OnChange registers fn to run after every state change.
// Listeners run outside the engine lock and may read from it.
func (e *Engine) OnChange(fn func()) {
	e.listenersMu.Lock()
	defer e.listenersMu.Unlock()
	e.listeners = append(e.listeners, fn)
}

func (e *Engine) notify() {
	e.listenersMu.Lock()
	listeners := append([]func(){}, e.listeners...)
	e.listenersMu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// Load replaces the canonical list with records and returns to page 1.
func (e *Engine) Load(records []model.Record) {
	e.mu.Lock()
	e.records = make([]model.Record, len(records))
	for i, r := range records {
		e.records[i] = r.Clone()
	}
	e.page = 1
	e.mu.Unlock()

	log.Printf("roster: loaded %d records", len(records))
	e.notify()
}

// SetSearchTerm stores term and resets to page 1. Selection is kept as is.
func (e *Engine) SetSearchTerm(term string) {
	e.mu.Lock()
	e.searchTerm = term
	e.page = 1
	e.mu.Unlock()
	e.notify()
}

// ChangePage moves to page without bounds checking.
func (e *Engine) ChangePage(page int) {
	e.mu.Lock()
	e.page = page
	e.mu.Unlock()
	e.notify()
}

// ToggleRowSelection adds id to the selection, or removes it if present.
func (e *Engine) ToggleRowSelection(id int) {
	e.mu.Lock()
	if _, ok := e.selected[id]; ok {
		delete(e.selected, id)
	} else {
		e.selected[id] = struct{}{}
	}
	e.mu.Unlock()
	e.notify()
}

// ToggleSelectAllOnPage clears the selection when every id in pageIDs is
// already selected, otherwise replaces the selection with exactly pageIDs.
func (e *Engine) ToggleSelectAllOnPage(pageIDs []int) {
	e.mu.Lock()
	e.toggleSelectAllLocked(pageIDs)
	e.mu.Unlock()
	e.notify()
}

// ToggleSelectAll applies ToggleSelectAllOnPage to the current page slice.
func (e *Engine) ToggleSelectAll() {
	e.mu.Lock()
	e.toggleSelectAllLocked(recordIDs(e.pageSliceLocked()))
	e.mu.Unlock()
	e.notify()
}

func (e *Engine) toggleSelectAllLocked(pageIDs []int) {
	if e.coversLocked(pageIDs) {
		e.selected = make(map[int]struct{})
		return
	}
	e.selected = make(map[int]struct{}, len(pageIDs))
	for _, id := range pageIDs {
		e.selected[id] = struct{}{}
	}
}

// BulkDelete removes every selected record, clears the selection and returns
// the number of records removed.
func (e *Engine) BulkDelete() int {
	e.mu.Lock()
	kept := e.records[:0:0]
	for _, r := range e.records {
		if _, ok := e.selected[r.ID]; !ok {
			kept = append(kept, r)
		}
	}
	removed := len(e.records) - len(kept)
	e.records = kept
	e.selected = make(map[int]struct{})
	e.page = 1
	e.mu.Unlock()

	log.Printf("roster: bulk delete removed %d records", removed)
	e.notify()
	return removed
}

// EditRecord merges patch into the record with the given id.
// It reports false and changes nothing when no such record exists.
func (e *Engine) EditRecord(id int, patch model.Patch) bool {
	e.mu.Lock()
	idx := e.indexLocked(id)
	if idx < 0 {
		e.mu.Unlock()
		return false
	}
	e.records[idx] = e.records[idx].Apply(patch)
	e.page = 1
	e.mu.Unlock()

	e.notify()
	return true
}

// DeleteRecord removes the record with the given id. The selection set is not
// touched, so a deleted id may remain selected.
func (e *Engine) DeleteRecord(id int) bool {
	e.mu.Lock()
	idx := e.indexLocked(id)
	if idx < 0 {
		e.mu.Unlock()
		return false
	}
	e.records = append(e.records[:idx:idx], e.records[idx+1:]...)
	e.page = 1
	e.mu.Unlock()

	e.notify()
	return true
}

// Len returns the size of the canonical list.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.records)
}

// Records returns a copy of the canonical list.
func (e *Engine) Records() []model.Record {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return cloneRecords(e.records)
}

// SearchTerm returns the active search term.
func (e *Engine) SearchTerm() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.searchTerm
}

// Page returns the active 1-based page index.
func (e *Engine) Page() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.page
}

// Filtered returns the canonical list restricted by the search term.
func (e *Engine) Filtered() []model.Record {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return cloneRecords(Filter(e.records, e.searchTerm))
}

// TotalPages returns the number of pages in the filtered list.
func (e *Engine) TotalPages() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return PageCount(len(Filter(e.records, e.searchTerm)), e.pageSize)
}

// PageSlice returns the records shown on the active page.
func (e *Engine) PageSlice() []model.Record {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return cloneRecords(e.pageSliceLocked())
}

// Pager returns the pagination control state for the active page.
func (e *Engine) Pager() model.Pager {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return BuildPager(e.page, e.pageSize, len(Filter(e.records, e.searchTerm)))
}

// IsSelected reports whether id is in the selection set.
func (e *Engine) IsSelected(id int) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.selected[id]
	return ok
}

// Selected returns the selection set in ascending id order.
func (e *Engine) Selected() []int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.selectedLocked()
}

// AllOnPageSelected reports whether the active page is non-empty and every
// row on it is selected.
func (e *Engine) AllOnPageSelected() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.coversLocked(recordIDs(e.pageSliceLocked()))
}

// Snapshot returns a consistent view of the table for one render.
func (e *Engine) Snapshot() model.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	filtered := Filter(e.records, e.searchTerm)
	slice := Paginate(filtered, e.page, e.pageSize)
	return model.Snapshot{
		SearchTerm:        e.searchTerm,
		Records:           cloneRecords(slice),
		Pager:             BuildPager(e.page, e.pageSize, len(filtered)),
		Selected:          e.selectedLocked(),
		AllOnPageSelected: e.coversLocked(recordIDs(slice)),
		Total:             len(e.records),
	}
}

func (e *Engine) pageSliceLocked() []model.Record {
	return Paginate(Filter(e.records, e.searchTerm), e.page, e.pageSize)
}

func (e *Engine) coversLocked(ids []int) bool {
	if len(ids) == 0 {
		return false
	}
	for _, id := range ids {
		if _, ok := e.selected[id]; !ok {
			return false
		}
	}
	return true
}

func (e *Engine) selectedLocked() []int {
	ids := make([]int, 0, len(e.selected))
	for id := range e.selected {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (e *Engine) indexLocked(id int) int {
	for i, r := range e.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func cloneRecords(records []model.Record) []model.Record {
	out := make([]model.Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}

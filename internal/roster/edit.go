package roster

import "github.com/tinytelemetry/memberdesk/internal/model"

// EditState is the single optional row edit: either idle or editing one row
// with a draft of field values. The zero value is idle.
type EditState struct {
	editing bool
	rowID   int
	draft   model.Patch
}

// Begin starts editing r, capturing its current values as the draft.
// Any draft for another row is abandoned.
func (s *EditState) Begin(r model.Record) {
	s.editing = true
	s.rowID = r.ID
	s.draft = make(model.Patch, len(model.EditableFields))
	for _, f := range model.EditableFields {
		s.draft[f] = r.Get(f)
	}
}

// Editing returns the row being edited, if any.
func (s *EditState) Editing() (int, bool) {
	return s.rowID, s.editing
}

// IsEditing reports whether row id is the one being edited.
func (s *EditState) IsEditing(id int) bool {
	return s.editing && s.rowID == id
}

// Set records a new draft value for f. It is ignored when idle.
func (s *EditState) Set(f model.Field, value string) {
	if !s.editing {
		return
	}
	s.draft[f] = value
}

// Value returns the draft value for f, falling back to orig when the draft
// value is empty.
func (s *EditState) Value(f model.Field, orig model.Record) string {
	if v := s.draft[f]; v != "" {
		return v
	}
	return orig.Get(f)
}

// Commit ends the edit and returns the patch to apply to orig. An emptied
// field resolves to its original value, so no field can be saved empty.
func (s *EditState) Commit(orig model.Record) (int, model.Patch, bool) {
	if !s.editing {
		return 0, nil, false
	}
	patch := make(model.Patch, len(s.draft))
	for f := range s.draft {
		patch[f] = s.Value(f, orig)
	}
	id := s.rowID
	s.Cancel()
	return id, patch, true
}

// Cancel discards the draft.
func (s *EditState) Cancel() {
	s.editing = false
	s.rowID = 0
	s.draft = nil
}

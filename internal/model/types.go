package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Field names a record column that the table can display or edit.
type Field string

const (
	FieldID    Field = "id"
	FieldName  Field = "name"
	FieldEmail Field = "email"
	FieldRole  Field = "role"
)

// EditableFields lists the columns exposed in the edit row, in display order.
var EditableFields = []Field{FieldName, FieldEmail, FieldRole}

// Record represents a single member entry.
// It is the canonical type for the feed, the engine, the HTTP API, and display.
type Record struct {
	ID    int
	Name  string
	Email string
	Role  string
	Extra map[string]any // passthrough fields from the feed
}

// Patch holds field values to merge into a record.
// Keys outside the known columns are written to Extra.
type Patch map[Field]string

// Get returns the string form of a field, or "" when the record lacks it.
func (r Record) Get(f Field) string {
	switch f {
	case FieldID:
		return strconv.Itoa(r.ID)
	case FieldName:
		return r.Name
	case FieldEmail:
		return r.Email
	case FieldRole:
		return r.Role
	}
	if v, ok := r.Extra[string(f)]; ok {
		return stringify(v)
	}
	return ""
}

// Clone returns a copy that shares no mutable state with r.
func (r Record) Clone() Record {
	out := r
	if r.Extra != nil {
		out.Extra = make(map[string]any, len(r.Extra))
		for k, v := range r.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// Apply returns a copy of r with the patch merged in. The id is never patched.
func (r Record) Apply(p Patch) Record {
	out := r.Clone()
	for f, v := range p {
		switch f {
		case FieldID:
		case FieldName:
			out.Name = v
		case FieldEmail:
			out.Email = v
		case FieldRole:
			out.Role = v
		default:
			if out.Extra == nil {
				out.Extra = make(map[string]any)
			}
			out.Extra[string(f)] = v
		}
	}
	return out
}

// SearchFields returns the searchable string form of every field:
// id, name, email, role, then passthrough fields in key order.
func (r Record) SearchFields() []string {
	fields := make([]string, 0, 4+len(r.Extra))
	fields = append(fields, strconv.Itoa(r.ID), r.Name, r.Email, r.Role)
	for _, k := range r.extraKeys() {
		fields = append(fields, stringify(r.Extra[k]))
	}
	return fields
}

// Matches reports whether any field contains term, ignoring case.
func (r Record) Matches(term string) bool {
	needle := strings.ToLower(term)
	for _, v := range r.SearchFields() {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

func (r Record) extraKeys() []string {
	keys := make([]string, 0, len(r.Extra))
	for k := range r.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UnmarshalJSON decodes a feed entry. Ids may be numbers or numeric strings;
// missing fields stay empty and unknown fields land in Extra.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = Record{}
	for k, v := range raw {
		switch Field(k) {
		case FieldID:
			id, err := decodeID(v)
			if err != nil {
				return fmt.Errorf("decoding id: %w", err)
			}
			r.ID = id
		case FieldName:
			r.Name = decodeText(v)
		case FieldEmail:
			r.Email = decodeText(v)
		case FieldRole:
			r.Role = decodeText(v)
		default:
			var val any
			if err := json.Unmarshal(v, &val); err != nil {
				return fmt.Errorf("decoding %s: %w", k, err)
			}
			if r.Extra == nil {
				r.Extra = make(map[string]any)
			}
			r.Extra[k] = val
		}
	}
	return nil
}

// MarshalJSON encodes the record with its passthrough fields inlined.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, 4+len(r.Extra))
	for k, v := range r.Extra {
		out[k] = v
	}
	out[string(FieldID)] = r.ID
	out[string(FieldName)] = r.Name
	out[string(FieldEmail)] = r.Email
	out[string(FieldRole)] = r.Role
	return json.Marshal(out)
}

func decodeID(raw json.RawMessage) (int, error) {
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, err
	}
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(strings.TrimSpace(s))
}

func decodeText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	return stringify(v)
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// Pager describes the pagination controls for the current filtered list.
type Pager struct {
	Page          int  `json:"page"`
	PageSize      int  `json:"page_size"`
	TotalPages    int  `json:"total_pages"`
	TotalFiltered int  `json:"total_filtered"`
	FirstDisabled bool `json:"first_disabled"`
	PrevDisabled  bool `json:"prev_disabled"`
	NextDisabled  bool `json:"next_disabled"`
	LastDisabled  bool `json:"last_disabled"`
}

// Pages returns the reachable page numbers 1..TotalPages.
func (p Pager) Pages() []int {
	pages := make([]int, p.TotalPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// Snapshot is a consistent read of the working set for one render.
type Snapshot struct {
	SearchTerm        string   `json:"search_term"`
	Records           []Record `json:"records"` // current page slice
	Pager             Pager    `json:"pager"`
	Selected          []int    `json:"selected"`
	AllOnPageSelected bool     `json:"all_on_page_selected"`
	Total             int      `json:"total"` // canonical list size
}

// IsSelected reports whether id is in the selection set.
func (s Snapshot) IsSelected(id int) bool {
	for _, sel := range s.Selected {
		if sel == id {
			return true
		}
	}
	return false
}

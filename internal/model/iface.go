package model

import "context"

// RecordSource provides the initial record list.
type RecordSource interface {
	Fetch(ctx context.Context) ([]Record, error)
}

// RecordReader provides read-only views over the working set.
type RecordReader interface {
	Snapshot() Snapshot
	Len() int
}

// RecordWriter provides the mutating operations issued by the table controls.
type RecordWriter interface {
	SetSearchTerm(term string)
	ChangePage(page int)
	ToggleRowSelection(id int)
	ToggleSelectAll()
	BulkDelete() int
	EditRecord(id int, patch Patch) bool
	DeleteRecord(id int) bool
}

// RecordStore is the unified contract for control surfaces (TUI and HTTP).
type RecordStore interface {
	RecordReader
	RecordWriter
}

package store

import (
	"context"
	"errors"
)

// Row is a single record addressed by external column names. Column names
// come from the sheet headers of the backing store and may contain spaces;
// repositories own the mapping between struct fields and these names.
type Row map[string]string

// Tabular is the external store collaborator. The backing store has no
// secondary indices and no transactions; every lookup is a full scan and
// multi-step writes rely on idempotent re-entry rather than atomicity.
type Tabular interface {
	// AppendRow appends a row and returns its index within the table.
	AppendRow(ctx context.Context, table string, row Row) (int, error)
	// ScanRows returns every row of the table in append order.
	ScanRows(ctx context.Context, table string) ([]Row, error)
	// UpdateRow overwrites the row at rowIndex.
	UpdateRow(ctx context.Context, table string, rowIndex int, row Row) error
	// DeleteRow removes the row at rowIndex; later rows shift down.
	DeleteRow(ctx context.Context, table string, rowIndex int) error
}

var ErrRowNotFound = errors.New("row not found")

// Clone copies a row so callers can mutate the copy without aliasing
// whatever the store implementation hands back.
func Clone(row Row) Row {
	out := make(Row, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

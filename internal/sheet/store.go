// Package sheet implements the append-only tabular stores the webhook writes
// to. A sheet has a name, a header row written once on first use, and ordered
// data rows appended after it. Headers are never altered once written.
package sheet

import "context"

// Stats describes one sheet for the status endpoint.
type Stats struct {
	Name     string `json:"name"`
	Exists   bool   `json:"exists"`
	RowCount int64  `json:"rowCount"`
}

// Store is the destination-store capability the record writers depend on.
// Row numbers are 1-based; row 1 is the header. Columns are 1-based.
type Store interface {
	// EnsureSheet creates the sheet and writes its header row if either is
	// missing. Calling it again once the header exists is a no-op. Returns
	// true when the header row was written by this call.
	EnsureSheet(ctx context.Context, name string, headers []string) (bool, error)

	// AppendRow appends one data row and returns its row number.
	AppendRow(ctx context.Context, name string, cells []any) (int64, error)

	// SetCell overwrites a single cell of an existing row.
	SetCell(ctx context.Context, name string, row int64, col int, value any) error

	// SetRowHeight records a presentation height in pixels for one row.
	SetRowHeight(ctx context.Context, name string, row int64, pixels int) error

	// SetColumnWidth records a presentation width in pixels for one column.
	SetColumnWidth(ctx context.Context, name string, col int, pixels int) error

	// Stats reports existence and row count (header included) for a sheet.
	// It never mutates the store.
	Stats(ctx context.Context, name string) (Stats, error)

	// ClearData deletes every data row, keeping the header. Returns the
	// number of rows removed.
	ClearData(ctx context.Context, name string) (int64, error)
}

//go:generate mockgen -source ./store.go -destination=./mocks/store.go -package=mock_sheets
package sheets

import (
	"context"
	"errors"
)

// ErrRowNotFound is returned by FindRow when no row in the column holds the key.
var ErrRowNotFound = errors.New("row not found")

// Cell addresses one value to write. Row is 1-based, as in A1 notation.
type Cell struct {
	Column Column
	Row    int
	Value  string
}

// ListStore abstracts the tabular store the bot keeps order records in. Lists
// are named sheets; existence is checked per call and never cached, so an
// operator deleting or renaming a sheet is observed on the next command.
type ListStore interface {
	// ListExists reports whether a sheet with the given title exists.
	ListExists(ctx context.Context, list string) (bool, error)

	// ListNames returns the titles of all sheets in the spreadsheet.
	ListNames(ctx context.Context) ([]string, error)

	// ReadColumn returns the column's values from the top down to the last
	// occupied row; rows that are empty in this column yield "".
	ReadColumn(ctx context.Context, list string, col Column) ([]string, error)

	// WriteCells applies all cell writes in one batched update.
	WriteCells(ctx context.Context, list string, cells []Cell) error

	// ClearRow wipes the full record-width range of the row. The row itself
	// stays in place; later scans skip it because its cells no longer match.
	ClearRow(ctx context.Context, list string, row int) error

	// FindRow returns the 1-based position of the first exact match of key in
	// the column, or ErrRowNotFound.
	FindRow(ctx context.Context, list string, col Column, key string) (int, error)
}

// findInColumn is the scan behind FindRow: first exact match, 1-based, or 0.
func findInColumn(values []string, key string) int {
	for i, v := range values {
		if v == key {
			return i + 1
		}
	}
	return 0
}

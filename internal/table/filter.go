package table

import (
	"github.com/hoshif/heron/internal/errors"
)

// Row is a borrowed read-only view of one table row, handed to filter
// predicates. It holds no copies; values are read straight from the parent
// table's columns.
type Row struct {
	t   *Table
	idx int
}

// Index returns the row's position in the parent table.
func (r Row) Index() int {
	return r.idx
}

// Get returns the row's value in the named column, or the empty string when
// the column does not exist.
func (r Row) Get(column string) string {
	values, exists := r.t.columns[column]
	if !exists {
		return ""
	}
	return values[r.idx]
}

// Value returns the row's value in the named column and whether the column
// exists.
func (r Row) Value(column string) (string, bool) {
	values, exists := r.t.columns[column]
	if !exists {
		return "", false
	}
	return values[r.idx], true
}

// FilterByMask returns a new Table containing only the rows where mask is
// true. The mask length must equal the table's row count; a mismatch fails
// with a shape error naming both lengths, never silently truncated or padded.
func (t *Table) FilterByMask(mask []bool) (*Table, error) {
	if len(mask) != t.Len() {
		return nil, errors.NewShapeMismatchError("Filter", len(mask), t.Len())
	}

	indices := make([]int, 0, len(mask))
	for i, keep := range mask {
		if keep {
			indices = append(indices, i)
		}
	}
	return t.take(indices), nil
}

// Filter returns a new Table containing only the rows for which pred returns
// true. The predicate is evaluated once per row, in row order; kept rows
// retain their original relative order and all columns.
func (t *Table) Filter(pred func(Row) bool) *Table {
	rows := t.Len()
	indices := make([]int, 0, rows)
	for i := 0; i < rows; i++ {
		if pred(Row{t: t, idx: i}) {
			indices = append(indices, i)
		}
	}
	return t.take(indices)
}

package table

import (
	"fmt"
	"strings"

	"github.com/hoshif/heron/internal/errors"
)

// Table is a column-oriented store of text cells. Column order is tracked
// separately from the name→values mapping and is authoritative for iteration.
// A Table is never mutated after construction.
type Table struct {
	columns map[string][]string
	order   []string
}

// New creates a Table from a list of Series. Every series must have a unique
// name, and all series must have the same length.
func New(series ...*Series) (*Table, error) {
	columns := make(map[string][]string, len(series))
	order := make([]string, 0, len(series))

	for _, s := range series {
		if _, exists := columns[s.name]; exists {
			return nil, errors.NewInvalidInputError("New",
				fmt.Sprintf("duplicate column name %q", s.name))
		}
		if len(order) > 0 && len(s.values) != len(columns[order[0]]) {
			return nil, errors.NewInvalidInputError("New",
				fmt.Sprintf("column %q has %d rows, want %d", s.name, len(s.values), len(columns[order[0]])))
		}
		columns[s.name] = s.values
		order = append(order, s.name)
	}

	return &Table{columns: columns, order: order}, nil
}

// Columns returns the names of all columns in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.order...)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if len(t.order) == 0 {
		return 0
	}
	return len(t.columns[t.order[0]])
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return len(t.order)
}

// Shape returns (row count, column count).
func (t *Table) Shape() (int, int) {
	return t.Len(), t.Width()
}

// HasColumn checks if a column exists
func (t *Table) HasColumn(name string) bool {
	_, exists := t.columns[name]
	return exists
}

// Column returns a read-only view over the named column. The view borrows the
// table's storage and is valid for the table's lifetime.
func (t *Table) Column(name string) (*Series, error) {
	values, exists := t.columns[name]
	if !exists {
		return nil, errors.NewColumnNotFoundError("Column", name)
	}
	return &Series{name: name, values: values}, nil
}

// Head returns a new Table with the first n rows and all columns. An n larger
// than the row count returns all rows; a non-positive n returns zero rows.
func (t *Table) Head(n int) *Table {
	if n < 0 {
		n = 0
	}
	if n > t.Len() {
		n = t.Len()
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return t.take(indices)
}

// Export returns the table as a plain column-name→values structure for
// display layers. The returned map holds copies; mutating it cannot reach the
// table.
func (t *Table) Export() map[string][]string {
	out := make(map[string][]string, len(t.order))
	for _, name := range t.order {
		values := make([]string, len(t.columns[name]))
		copy(values, t.columns[name])
		out[name] = values
	}
	return out
}

// String returns a string representation of the Table
func (t *Table) String() string {
	if len(t.order) == 0 {
		return "Table[empty]"
	}

	parts := []string{fmt.Sprintf("Table[%dx%d]", t.Len(), t.Width())}
	for _, name := range t.order {
		parts = append(parts, fmt.Sprintf("  %s", name))
	}
	return strings.Join(parts, "\n")
}

// take builds a fresh Table containing the given row positions, in the given
// order. Positions must be in range.
func (t *Table) take(indices []int) *Table {
	columns := make(map[string][]string, len(t.order))
	for _, name := range t.order {
		src := t.columns[name]
		values := make([]string, len(indices))
		for i, idx := range indices {
			values[i] = src[idx]
		}
		columns[name] = values
	}
	return &Table{columns: columns, order: append([]string(nil), t.order...)}
}

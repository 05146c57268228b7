package table

import (
	"fmt"

	"github.com/hoshif/heron/internal/errors"
)

// Project returns a new Table with exactly the requested columns, in the
// requested order, with all rows preserved. Requested names must be distinct,
// since column names are unique within a Table. When any requested name is
// missing the error lists every missing name at once.
func (t *Table) Project(names ...string) (*Table, error) {
	if err := t.requireColumns("Project", names); err != nil {
		return nil, err
	}

	columns := make(map[string][]string, len(names))
	order := make([]string, 0, len(names))
	for _, name := range names {
		if _, dup := columns[name]; dup {
			return nil, errors.NewInvalidInputError("Project",
				fmt.Sprintf("duplicate column name %q", name))
		}
		// column storage is immutable, sharing the slice is safe
		columns[name] = t.columns[name]
		order = append(order, name)
	}

	return &Table{columns: columns, order: order}, nil
}

// requireColumns verifies that every name exists in the table, collecting all
// missing names into a single error.
func (t *Table) requireColumns(op string, names []string) error {
	var missing []string
	for _, name := range names {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return errors.NewColumnsNotFoundError(op, missing)
	}
	return nil
}

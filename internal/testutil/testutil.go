// Package testutil provides common testing utilities to reduce duplication
// across test files: fixture table builders, CSV literals and column
// assertions.
package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoshif/heron/internal/csv"
	"github.com/hoshif/heron/internal/table"
)

// Column is an ordered (name, values) pair used to build fixture tables.
type Column struct {
	Name   string
	Values []string
}

// NewTable builds a Table from ordered columns, failing the test on error.
func NewTable(tb testing.TB, columns ...Column) *table.Table {
	tb.Helper()

	series := make([]*table.Series, len(columns))
	for i, c := range columns {
		series[i] = table.NewSeries(c.Name, c.Values)
	}

	t, err := table.New(series...)
	require.NoError(tb, err)
	return t
}

// ParseString parses a CSV literal into a Table, failing the test on error.
// Leading and trailing newlines are trimmed so fixtures can be written as raw
// string literals.
func ParseString(tb testing.TB, src string) *table.Table {
	tb.Helper()

	t, err := csv.Read(strings.NewReader(strings.Trim(src, "\n")))
	require.NoError(tb, err)
	return t
}

// People returns the small fixture table shared by engine tests.
func People(tb testing.TB) *table.Table {
	tb.Helper()

	return NewTable(tb,
		Column{Name: "ID", Values: []string{"1", "2", "3", "4", "5"}},
		Column{Name: "Name", Values: []string{"Ann", "Bob", "Cid", "Dee", "Eli"}},
		Column{Name: "Sex", Values: []string{"Female", "Male", "Male", "Female", "Male"}},
		Column{Name: "Age", Values: []string{"34", "81", "", "90", "not recorded"}},
	)
}

// AssertColumn asserts that the named column holds exactly the wanted values.
func AssertColumn(tb testing.TB, t *table.Table, name string, want []string) {
	tb.Helper()

	col, err := t.Column(name)
	require.NoError(tb, err)
	assert.Equal(tb, want, col.Values(), "column %q", name)
}

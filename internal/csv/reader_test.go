package csv_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoshif/heron/internal/csv"
	"github.com/hoshif/heron/internal/errors"
)

func TestReadBasic(t *testing.T) {
	input := "Name,Age,City\nAnn,34,Oslo\nBob,81,Kyoto\n"

	tbl, err := csv.Read(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Age", "City"}, tbl.Columns())
	assert.Equal(t, 2, tbl.Len())

	name, err := tbl.Column("Name")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann", "Bob"}, name.Values())
}

func TestReadQuotedDelimiter(t *testing.T) {
	// A quoted delimiter stays inside the field; quotes never reach the cell.
	input := "Name,Note\nAnn,\"likes tea, not coffee\"\n"

	tbl, err := csv.Read(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 1, tbl.Len())
	note, err := tbl.Column("Note")
	require.NoError(t, err)
	assert.Equal(t, "likes tea, not coffee", note.Value(0))
}

func TestReadFieldCleaning(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"surrounding whitespace", "Col\n  padded  \n", "padded"},
		{"wrapped quotes", "Col\n\"quoted\"\n", "quoted"},
		{"whitespace then quotes", "Col\n  \"quoted\"  \n", "quoted"},
		{"interior whitespace kept", "Col\na b c\n", "a b c"},
		{"empty field", "Col\n\"\"\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := csv.Read(strings.NewReader(tt.input))
			require.NoError(t, err)

			col, err := tbl.Column("Col")
			require.NoError(t, err)
			assert.Equal(t, tt.want, col.Value(0))
		})
	}
}

func TestReadSkipsBlankLines(t *testing.T) {
	input := "\n\nName,Age\n\nAnn,34\n   \nBob,81\n\n\n"

	tbl, err := csv.Read(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 2, tbl.Len())
	name, err := tbl.Column("Name")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann", "Bob"}, name.Values())
}

func TestReadSchemaError(t *testing.T) {
	input := "Name,Age,City\nAnn,34,Oslo\nBob,81\n"

	_, err := csv.Read(strings.NewReader(input))
	require.Error(t, err)
	assert.Equal(t, errors.KindSchema, errors.KindOf(err))
	assert.Contains(t, err.Error(), "expected 3 columns, found 2")
	// The physical line number, counting the header as line 1.
	assert.Contains(t, err.Error(), "row 3")
}

func TestReadSchemaErrorLineNumberSkipsBlanks(t *testing.T) {
	input := "Name,Age\n\nAnn,34\n\nBob\n"

	_, err := csv.Read(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 5")
}

func TestReadEmptyInput(t *testing.T) {
	tbl, err := csv.Read(strings.NewReader(""))
	require.NoError(t, err)

	assert.Equal(t, 0, tbl.Len())
	assert.Equal(t, 0, tbl.Width())
}

func TestReadHeaderOnly(t *testing.T) {
	tbl, err := csv.Read(strings.NewReader("Name,Age\n"))
	require.NoError(t, err)

	assert.Equal(t, 0, tbl.Len())
	assert.Equal(t, []string{"Name", "Age"}, tbl.Columns())
}

func TestReadCustomDelimiter(t *testing.T) {
	input := "Name;Age\nAnn;34\n"

	tbl, err := csv.Read(strings.NewReader(input), csv.WithDelimiter(';'))
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Age"}, tbl.Columns())
	age, err := tbl.Column("Age")
	require.NoError(t, err)
	assert.Equal(t, "34", age.Value(0))
}

func TestReadNoTypeInference(t *testing.T) {
	input := "A,B\n007,1.50\n"

	tbl, err := csv.Read(strings.NewReader(input))
	require.NoError(t, err)

	a, err := tbl.Column("A")
	require.NoError(t, err)
	assert.Equal(t, "007", a.Value(0))
	b, err := tbl.Column("B")
	require.NoError(t, err)
	assert.Equal(t, "1.50", b.Value(0))
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "people.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Age\nAnn,34\n"), 0o600))

	tbl, err := csv.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())
}

func TestReadFileNotFound(t *testing.T) {
	_, err := csv.ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.Equal(t, errors.KindNotFound, errors.KindOf(err))
}

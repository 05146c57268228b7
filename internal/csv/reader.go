// Package csv reads and writes the delimited-text dialect understood by the
// table engine. The dialect differs from RFC 4180: a quote character toggles
// an "inside quotes" state, the delimiter only separates fields outside
// quotes, and each parsed field is trimmed of surrounding whitespace plus one
// layer of wrapping quotes. Blank lines are skipped anywhere in the input.
package csv

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hoshif/heron/internal/errors"
	"github.com/hoshif/heron/internal/table"
)

const quoteChar = '"'

type options struct {
	delimiter rune
}

// Option configures reading and writing.
type Option func(*options)

// WithDelimiter sets the field delimiter. The default is a comma.
func WithDelimiter(d rune) Option {
	return func(o *options) {
		o.delimiter = d
	}
}

func buildOptions(opts []Option) options {
	o := options{delimiter: ','}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ReadFile parses the delimited file at path into a Table. A missing path
// fails with a not-found error, distinguishable from schema errors.
func ReadFile(path string, opts ...Option) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("Parse", path, err)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return Read(f, opts...)
}

// Read parses delimited text into a Table. The first non-blank line is the
// header; every data row must have exactly as many fields as the header, or
// parsing aborts with a schema error carrying the offending 1-based line
// number. An empty source yields a zero-column, zero-row table. All cells are
// stored as text; no type inference happens at parse time.
func Read(r io.Reader, opts ...Option) (*table.Table, error) {
	o := buildOptions(opts)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var header []string
	var rows [][]string
	line := 0

	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		fields := tokenize(text, o.delimiter)
		if header == nil {
			header = fields
			continue
		}

		if len(fields) != len(header) {
			return nil, errors.NewSchemaError("Parse", line, len(header), len(fields))
		}
		rows = append(rows, fields)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	if header == nil {
		return table.New()
	}

	series := make([]*table.Series, len(header))
	for col, name := range header {
		values := make([]string, len(rows))
		for i, row := range rows {
			values[i] = row[col]
		}
		series[col] = table.NewSeries(name, values)
	}

	return table.New(series...)
}

// tokenize splits one line into fields, character by character. A quote
// toggles the in-quote state and is never part of the field text; the
// delimiter separates fields only outside quotes.
func tokenize(line string, delimiter rune) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, ch := range line {
		switch {
		case ch == quoteChar:
			inQuotes = !inQuotes
		case ch == delimiter && !inQuotes:
			fields = append(fields, cleanField(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, cleanField(current.String()))

	return fields
}

// cleanField strips surrounding whitespace and one layer of wrapping quotes.
func cleanField(field string) string {
	field = strings.TrimSpace(field)
	if len(field) >= 2 && field[0] == quoteChar && field[len(field)-1] == quoteChar {
		field = field[1 : len(field)-1]
	}
	return field
}

package csv

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/hoshif/heron/internal/table"
)

// Writer serializes a Table back to delimited text: one header line followed
// by one line per row. Fields containing the delimiter are wrapped in quotes
// so they survive a round trip through Read.
type Writer struct {
	w    io.Writer
	opts options
}

// NewWriter creates a Writer targeting w.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	return &Writer{w: w, opts: buildOptions(opts)}
}

// Write serializes the table.
func (w *Writer) Write(t *table.Table) error {
	bw := bufio.NewWriter(w.w)

	if err := w.writeRecord(bw, t.Columns()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	cols := t.Columns()
	data := t.Export()
	record := make([]string, len(cols))
	for i := 0; i < t.Len(); i++ {
		for j, name := range cols {
			record[j] = data[name][i]
		}
		if err := w.writeRecord(bw, record); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	return bw.Flush()
}

func (w *Writer) writeRecord(bw *bufio.Writer, fields []string) error {
	for i, field := range fields {
		if i > 0 {
			if _, err := bw.WriteRune(w.opts.delimiter); err != nil {
				return err
			}
		}
		if strings.ContainsRune(field, w.opts.delimiter) {
			field = string(quoteChar) + field + string(quoteChar)
		}
		if _, err := bw.WriteString(field); err != nil {
			return err
		}
	}
	return bw.WriteByte('\n')
}

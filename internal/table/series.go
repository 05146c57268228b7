// Package table provides an immutable in-memory column store for text cells
// and the relational operations built on it: filtering, projection, grouped
// aggregation and inner hash-join. Every operation returns a fresh Table;
// source tables are never mutated, so independent call chains may read the
// same table concurrently.
package table

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/hoshif/heron/internal/config"
	"github.com/hoshif/heron/internal/errors"
)

// Series is a read-only view over one column of a Table. It does not own its
// values; it borrows the parent table's slice and is only valid for that
// table's lifetime.
type Series struct {
	name   string
	values []string
}

// NewSeries creates a standalone Series from a slice of values. The input is
// copied so later mutation by the caller cannot reach into a Table built from
// the series.
func NewSeries(name string, values []string) *Series {
	copied := make([]string, len(values))
	copy(copied, values)
	return &Series{name: name, values: copied}
}

// Name returns the column name
func (s *Series) Name() string {
	return s.name
}

// Len returns the length of the series
func (s *Series) Len() int {
	return len(s.values)
}

// Values returns a copy of the column's values.
func (s *Series) Values() []string {
	copied := make([]string, len(s.values))
	copy(copied, s.values)
	return copied
}

// Value returns the value at the given index, or the empty string when the
// index is out of bounds.
func (s *Series) Value(index int) string {
	if index < 0 || index >= len(s.values) {
		return ""
	}
	return s.values[index]
}

// IsNull reports whether the cell at index holds the null marker. A text-only
// store has a single null representation: the empty string.
func (s *Series) IsNull(index int) bool {
	return s.Value(index) == ""
}

// String returns a string representation of the series
func (s *Series) String() string {
	return fmt.Sprintf("Series: %s (len=%d)", s.name, len(s.values))
}

// CompareOp identifies an ordered comparison against a numeric scalar.
type CompareOp int

const (
	// OpGt is the > comparison.
	OpGt CompareOp = iota
	// OpGe is the >= comparison.
	OpGe
	// OpLt is the < comparison.
	OpLt
	// OpLe is the <= comparison.
	OpLe
)

// String returns the operator symbol.
func (op CompareOp) String() string {
	switch op {
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	default:
		return "?"
	}
}

// Eq compares every element against value and returns a same-length mask.
func (s *Series) Eq(value string) []bool {
	mask := make([]bool, len(s.values))
	for i, v := range s.values {
		mask[i] = v == value
	}
	return mask
}

// Ne compares every element against value and returns a same-length mask.
func (s *Series) Ne(value string) []bool {
	mask := make([]bool, len(s.values))
	for i, v := range s.values {
		mask[i] = v != value
	}
	return mask
}

// Gt returns the mask of elements numerically greater than x. Null cells and
// cells that fail numeric coercion yield false (permissive policy).
func (s *Series) Gt(x float64) []bool {
	mask, _ := s.compare(OpGt, x, false)
	return mask
}

// Ge returns the mask of elements numerically greater than or equal to x.
func (s *Series) Ge(x float64) []bool {
	mask, _ := s.compare(OpGe, x, false)
	return mask
}

// Lt returns the mask of elements numerically less than x.
func (s *Series) Lt(x float64) []bool {
	mask, _ := s.compare(OpLt, x, false)
	return mask
}

// Le returns the mask of elements numerically less than or equal to x.
func (s *Series) Le(x float64) []bool {
	mask, _ := s.compare(OpLe, x, false)
	return mask
}

// Compare evaluates the ordered comparison of every element against x. The
// permissive policy (non-null, non-coercible cell compares false) is the
// default; when StrictComparisons is enabled in the global configuration the
// first non-coercible cell fails the whole comparison instead.
func (s *Series) Compare(op CompareOp, x float64) ([]bool, error) {
	return s.compare(op, x, config.GetGlobalConfig().StrictComparisons)
}

func (s *Series) compare(op CompareOp, x float64, strict bool) ([]bool, error) {
	mask := make([]bool, len(s.values))
	failures := 0

	for i, v := range s.values {
		if v == "" {
			// null cells compare false, never error
			continue
		}

		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			if strict {
				return nil, errors.NewInvalidInputError("Compare",
					fmt.Sprintf("cell %q at row %d of column %q is not numeric", v, i, s.name))
			}
			failures++
			continue
		}

		switch op {
		case OpGt:
			mask[i] = f > x
		case OpGe:
			mask[i] = f >= x
		case OpLt:
			mask[i] = f < x
		case OpLe:
			mask[i] = f <= x
		}
	}

	if failures > 0 && config.GetGlobalConfig().LogCoercionFailures {
		slog.Debug("numeric coercion failed for some cells during comparison",
			"column", s.name,
			"op", op.String(),
			"failed_cells", failures,
			"total_cells", len(s.values))
	}

	return mask, nil
}

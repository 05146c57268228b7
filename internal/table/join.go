package table

import (
	"fmt"

	"github.com/hoshif/heron/internal/errors"
)

// JoinType represents the type of join operation
type JoinType int

const (
	// InnerJoin keeps only key-matched row pairs. It is the only supported type.
	InnerJoin JoinType = iota
	// LeftJoin is declared for completeness but not supported.
	LeftJoin
	// RightJoin is declared for completeness but not supported.
	RightJoin
	// FullOuterJoin is declared for completeness but not supported.
	FullOuterJoin
)

// String returns the conventional name of the join type.
func (jt JoinType) String() string {
	switch jt {
	case InnerJoin:
		return "inner"
	case LeftJoin:
		return "left"
	case RightJoin:
		return "right"
	case FullOuterJoin:
		return "outer"
	default:
		return "unknown"
	}
}

// JoinOptions specifies parameters for join operations.
type JoinOptions struct {
	Type     JoinType
	LeftKey  string
	RightKey string
}

// Suffixes applied to colliding non-key column names in join results.
const (
	leftSuffix  = "_left"
	rightSuffix = "_right"
)

// Join computes the inner hash-join of t (left) and right on one key column
// per side. A hash index over the right table maps each right-key value to
// the ordered row positions sharing it, built in one O(R) pass; the left
// table is then scanned once in row order, emitting one result row per
// matching right row and preserving the right bucket's order. Left rows
// without a match contribute nothing. This yields the full Cartesian product
// of matches per key value, so 1:1, 1:many and many:many cardinalities are
// all handled in O(L + R + M).
//
// The result schema holds all left columns in original order, then all right
// columns in original order; the right key column is dropped only when both
// key names are equal. Names present on both sides, key columns included, are
// disambiguated with _left and _right suffixes so result column names stay
// unique. Zero-row inputs produce a zero-row result with the full schema.
func (t *Table) Join(right *Table, opts *JoinOptions) (*Table, error) {
	if opts == nil {
		return nil, errInvalidJoin("join options are nil")
	}
	if opts.Type != InnerJoin {
		return nil, errUnsupportedJoin(opts.Type.String())
	}
	if right == nil {
		return nil, errInvalidJoin("right table is nil")
	}
	if opts.LeftKey == "" || opts.RightKey == "" {
		return nil, errInvalidJoin("join keys must be non-empty column names")
	}
	if !t.HasColumn(opts.LeftKey) {
		return nil, errJoinKeyNotFound("left", opts.LeftKey)
	}
	if !right.HasColumn(opts.RightKey) {
		return nil, errJoinKeyNotFound("right", opts.RightKey)
	}

	sameKey := opts.LeftKey == opts.RightKey

	// Right columns carried into the result.
	rightCols := make([]string, 0, len(right.order))
	for _, name := range right.order {
		if sameKey && name == opts.RightKey {
			continue
		}
		rightCols = append(rightCols, name)
	}

	// Any carried right column whose name exists on the left collides and
	// gets suffixed on both sides, key columns included. The right key is
	// exempt only when it is dropped (sameKey), in which case it never
	// reaches rightCols.
	shared := make(map[string]bool)
	for _, name := range rightCols {
		if t.HasColumn(name) {
			shared[name] = true
		}
	}

	// Build the index over the right table, then scan the left table once.
	index := newJoinIndex(right.Len())
	rightKeyValues := right.columns[opts.RightKey]
	for i, v := range rightKeyValues {
		index.Put(v, i)
	}

	var leftRows, rightRows []int
	for i, v := range t.columns[opts.LeftKey] {
		bucket, ok := index.Get(v)
		if !ok {
			continue
		}
		for _, r := range bucket {
			leftRows = append(leftRows, i)
			rightRows = append(rightRows, r)
		}
	}

	columns := make(map[string][]string, len(t.order)+len(rightCols))
	order := make([]string, 0, len(t.order)+len(rightCols))

	for _, name := range t.order {
		out := name
		if shared[name] {
			out = name + leftSuffix
		}
		columns[out] = gather(t.columns[name], leftRows)
		order = append(order, out)
	}
	for _, name := range rightCols {
		out := name
		if shared[name] {
			out = name + rightSuffix
		}
		columns[out] = gather(right.columns[name], rightRows)
		order = append(order, out)
	}

	return &Table{columns: columns, order: order}, nil
}

func errInvalidJoin(message string) error {
	return errors.NewInvalidInputError("Join", message)
}

func errUnsupportedJoin(kind string) error {
	return errors.NewUnsupportedJoinTypeError("Join", kind)
}

func errJoinKeyNotFound(side, key string) error {
	return &errors.TableError{
		Kind:    errors.KindColumnNotFound,
		Op:      "Join",
		Column:  key,
		Message: fmt.Sprintf("%s key column does not exist", side),
	}
}

// gather copies the values at the given row positions, in order.
func gather(values []string, rows []int) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = values[r]
	}
	return out
}

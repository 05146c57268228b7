// Package heron provides a small column-oriented table engine for delimited
// text data. This package is the sole public API for the library.
package heron

import (
	"io"

	"github.com/hoshif/heron/internal/csv"
	"github.com/hoshif/heron/internal/errors"
	"github.com/hoshif/heron/internal/table"
)

// Table is the public type for an immutable column-store table.
// It wraps the internal table.Table to hide implementation details.
type Table struct {
	t *table.Table
}

// Series is the public type for one named column of text cells.
type Series struct {
	s *table.Series
}

// GroupBy is the public type for a table partitioned by a key column.
type GroupBy struct {
	gb *table.GroupBy
}

// Row is a read-only view of one table row handed to filter predicates.
type Row struct {
	r table.Row
}

// JoinType represents the type of join operation.
type JoinType = table.JoinType

// Join types. Only InnerJoin is supported.
const (
	InnerJoin     = table.InnerJoin
	LeftJoin      = table.LeftJoin
	RightJoin     = table.RightJoin
	FullOuterJoin = table.FullOuterJoin
)

// JoinOptions specifies parameters for join operations.
type JoinOptions struct {
	Type     JoinType
	LeftKey  string
	RightKey string
}

// AggRule pairs a target column with an aggregation function name.
type AggRule = table.AggRule

// Supported aggregation function names.
const (
	AggMax   = table.AggMax
	AggMin   = table.AggMin
	AggMean  = table.AggMean
	AggCount = table.AggCount
)

// CompareOp selects the ordered comparison applied by Series.Compare.
type CompareOp = table.CompareOp

// Ordered comparison operators.
const (
	OpGt = table.OpGt
	OpGe = table.OpGe
	OpLt = table.OpLt
	OpLe = table.OpLe
)

// CSVOption configures CSV reading and writing.
type CSVOption = csv.Option

// WithDelimiter sets the CSV field delimiter. The default is a comma.
func WithDelimiter(d rune) CSVOption {
	return csv.WithDelimiter(d)
}

// NewTable creates a Table from Series. All series must have distinct names
// and equal lengths.
func NewTable(series ...*Series) (*Table, error) {
	internal := make([]*table.Series, len(series))
	for i, s := range series {
		internal[i] = s.s
	}
	t, err := table.New(internal...)
	if err != nil {
		return nil, err
	}
	return &Table{t: t}, nil
}

// NewSeries creates a named column from values. The slice is copied.
func NewSeries(name string, values []string) *Series {
	return &Series{s: table.NewSeries(name, values)}
}

// ReadCSV parses the delimited file at path into a Table.
func ReadCSV(path string, opts ...CSVOption) (*Table, error) {
	t, err := csv.ReadFile(path, opts...)
	if err != nil {
		return nil, err
	}
	return &Table{t: t}, nil
}

// ParseCSV parses delimited text from r into a Table.
func ParseCSV(r io.Reader, opts ...CSVOption) (*Table, error) {
	t, err := csv.Read(r, opts...)
	if err != nil {
		return nil, err
	}
	return &Table{t: t}, nil
}

// WriteCSV serializes the table as delimited text to w.
func WriteCSV(w io.Writer, t *Table, opts ...CSVOption) error {
	return csv.NewWriter(w, opts...).Write(t.t)
}

// Table methods

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	return t.t.Columns()
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return t.t.Len()
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return t.t.Width()
}

// Shape returns the row and column counts.
func (t *Table) Shape() (int, int) {
	return t.t.Shape()
}

// HasColumn returns true if the table has the given column.
func (t *Table) HasColumn(name string) bool {
	return t.t.HasColumn(name)
}

// Column returns the column with the given name.
func (t *Table) Column(name string) (*Series, error) {
	s, err := t.t.Column(name)
	if err != nil {
		return nil, err
	}
	return &Series{s: s}, nil
}

// Head returns a new Table with at most n leading rows.
func (t *Table) Head(n int) *Table {
	return &Table{t: t.t.Head(n)}
}

// Export returns a deep copy of the table contents keyed by column name.
func (t *Table) Export() map[string][]string {
	return t.t.Export()
}

// String returns a short description of the table.
func (t *Table) String() string {
	return t.t.String()
}

// Project returns a new Table with only the named columns, in the given order.
func (t *Table) Project(names ...string) (*Table, error) {
	result, err := t.t.Project(names...)
	if err != nil {
		return nil, err
	}
	return &Table{t: result}, nil
}

// FilterByMask returns a new Table keeping the rows whose mask entry is true.
// The mask length must equal the row count.
func (t *Table) FilterByMask(mask []bool) (*Table, error) {
	result, err := t.t.FilterByMask(mask)
	if err != nil {
		return nil, err
	}
	return &Table{t: result}, nil
}

// Filter returns a new Table keeping the rows for which pred returns true.
func (t *Table) Filter(pred func(Row) bool) *Table {
	result := t.t.Filter(func(r table.Row) bool {
		return pred(Row{r: r})
	})
	return &Table{t: result}
}

// GroupBy partitions the table by the values of the key column.
func (t *Table) GroupBy(key string) (*GroupBy, error) {
	gb, err := t.t.GroupBy(key)
	if err != nil {
		return nil, err
	}
	return &GroupBy{gb: gb}, nil
}

// Join performs a join operation with another Table.
func (t *Table) Join(right *Table, options *JoinOptions) (*Table, error) {
	// Nil right or options pass through so the engine reports its usual
	// invalid-input errors.
	var internalRight *table.Table
	if right != nil {
		internalRight = right.t
	}
	var internalOptions *table.JoinOptions
	if options != nil {
		internalOptions = &table.JoinOptions{
			Type:     options.Type,
			LeftKey:  options.LeftKey,
			RightKey: options.RightKey,
		}
	}
	result, err := t.t.Join(internalRight, internalOptions)
	if err != nil {
		return nil, err
	}
	return &Table{t: result}, nil
}

// Series methods

// Name returns the column name.
func (s *Series) Name() string {
	return s.s.Name()
}

// Len returns the number of cells.
func (s *Series) Len() int {
	return s.s.Len()
}

// Values returns a copy of the cell values.
func (s *Series) Values() []string {
	return s.s.Values()
}

// Value returns the cell at index, or the empty string when out of range.
func (s *Series) Value(index int) string {
	return s.s.Value(index)
}

// IsNull reports whether the cell at index is the null marker.
func (s *Series) IsNull(index int) bool {
	return s.s.IsNull(index)
}

// String returns a short description of the series.
func (s *Series) String() string {
	return s.s.String()
}

// Eq returns a boolean mask marking cells equal to value.
func (s *Series) Eq(value string) []bool {
	return s.s.Eq(value)
}

// Ne returns a boolean mask marking cells not equal to value.
func (s *Series) Ne(value string) []bool {
	return s.s.Ne(value)
}

// Gt returns a boolean mask marking cells numerically greater than x.
func (s *Series) Gt(x float64) []bool {
	return s.s.Gt(x)
}

// Ge returns a boolean mask marking cells numerically greater than or equal to x.
func (s *Series) Ge(x float64) []bool {
	return s.s.Ge(x)
}

// Lt returns a boolean mask marking cells numerically less than x.
func (s *Series) Lt(x float64) []bool {
	return s.s.Lt(x)
}

// Le returns a boolean mask marking cells numerically less than or equal to x.
func (s *Series) Le(x float64) []bool {
	return s.s.Le(x)
}

// Compare returns a boolean mask for the given ordered comparison, honoring
// the configured strict-comparison policy.
func (s *Series) Compare(op CompareOp, x float64) ([]bool, error) {
	return s.s.Compare(op, x)
}

// GroupBy methods

// Key returns the grouping column name.
func (g *GroupBy) Key() string {
	return g.gb.Key()
}

// Keys returns the distinct key values in sorted order.
func (g *GroupBy) Keys() []string {
	return g.gb.Keys()
}

// Group returns the partition for one key value.
func (g *GroupBy) Group(key string) (*Table, bool) {
	t, ok := g.gb.Group(key)
	if !ok {
		return nil, false
	}
	return &Table{t: t}, true
}

// Agg computes one result row per group, applying each rule to its column.
func (g *GroupBy) Agg(rules ...AggRule) (*Table, error) {
	result, err := g.gb.Agg(rules...)
	if err != nil {
		return nil, err
	}
	return &Table{t: result}, nil
}

// Row methods

// Index returns the row's position in its table.
func (r Row) Index() int {
	return r.r.Index()
}

// Get returns the cell in the named column, or the empty string when the
// column does not exist.
func (r Row) Get(column string) string {
	return r.r.Get(column)
}

// Value returns the cell in the named column and whether the column exists.
func (r Row) Value(column string) (string, bool) {
	return r.r.Value(column)
}

// Error classification helpers

// IsNotFound reports whether err stems from a missing input file.
func IsNotFound(err error) bool {
	return errors.KindOf(err) == errors.KindNotFound
}

// IsSchemaError reports whether err stems from a malformed input row.
func IsSchemaError(err error) bool {
	return errors.KindOf(err) == errors.KindSchema
}

// IsColumnNotFound reports whether err names a missing column.
func IsColumnNotFound(err error) bool {
	return errors.KindOf(err) == errors.KindColumnNotFound
}

// IsShapeMismatch reports whether err stems from a mask/row-count mismatch.
func IsShapeMismatch(err error) bool {
	return errors.KindOf(err) == errors.KindShapeMismatch
}

// IsInvalidInput reports whether err stems from invalid operation inputs.
func IsInvalidInput(err error) bool {
	return errors.KindOf(err) == errors.KindInvalidInput
}

// IsUnsupportedJoinType reports whether err names a join type other than inner.
func IsUnsupportedJoinType(err error) bool {
	return errors.KindOf(err) == errors.KindUnsupportedJoinType
}

// IsUnsupportedAggregation reports whether err names an unknown aggregation
// function.
func IsUnsupportedAggregation(err error) bool {
	return errors.KindOf(err) == errors.KindUnsupportedAggregation
}

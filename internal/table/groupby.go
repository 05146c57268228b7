package table

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"golang.org/x/exp/constraints"

	"github.com/hoshif/heron/internal/config"
	"github.com/hoshif/heron/internal/errors"
)

// Aggregation function names accepted by Agg.
const (
	AggMax   = "max"
	AggMin   = "min"
	AggMean  = "mean"
	AggCount = "count"
)

// AggRule binds a target column to one aggregation function. Rules are
// applied in slice order, which fixes the output column order.
type AggRule struct {
	Column string
	Func   string
}

// GroupBy holds the partitioning of a table by the distinct values of one key
// column. Partitions are disjoint sub-tables whose row counts sum to the
// source row count; keys are kept in ascending order so aggregation output is
// deterministic.
type GroupBy struct {
	source *Table
	key    string
	keys   []string
	groups map[string]*Table
}

// GroupBy partitions the table by the distinct values of the key column.
// Only single-column grouping is supported.
func (t *Table) GroupBy(key string) (*GroupBy, error) {
	keyCol, err := t.Column(key)
	if err != nil {
		return nil, errors.NewColumnNotFoundError("GroupBy", key)
	}

	seen := make(map[string]struct{})
	keys := make([]string, 0)
	for _, v := range keyCol.values {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			keys = append(keys, v)
		}
	}
	sortKeys(keys)

	groups := make(map[string]*Table, len(keys))
	for _, k := range keys {
		// partitioning goes through the filter engine with an equality mask
		sub, err := t.FilterByMask(keyCol.Eq(k))
		if err != nil {
			return nil, err
		}
		groups[k] = sub
	}

	return &GroupBy{source: t, key: key, keys: keys, groups: groups}, nil
}

// Key returns the grouping column name.
func (g *GroupBy) Key() string {
	return g.key
}

// Keys returns the distinct key values in their sorted order.
func (g *GroupBy) Keys() []string {
	return append([]string(nil), g.keys...)
}

// Group returns the partition for the given key value.
func (g *GroupBy) Group(key string) (*Table, bool) {
	t, ok := g.groups[key]
	return t, ok
}

// Agg computes one summary column per rule, over every partition in sorted
// key order. The result's first column is the group key, followed by one
// `<column>_<func>` column per rule. max/min/mean coerce cells to numbers and
// silently exclude cells that fail coercion; a partition with no coercible
// cell yields the null marker. count is the partition row count regardless of
// nulls.
func (g *GroupBy) Agg(rules ...AggRule) (*Table, error) {
	seen := make(map[AggRule]struct{}, len(rules))
	for _, rule := range rules {
		switch rule.Func {
		case AggMax, AggMin, AggMean, AggCount:
		default:
			return nil, errors.NewUnsupportedAggregationError("Agg", rule.Func)
		}
		if !g.source.HasColumn(rule.Column) {
			return nil, errors.NewColumnNotFoundError("Agg", rule.Column)
		}
		if _, dup := seen[rule]; dup {
			return nil, errors.NewInvalidInputError("Agg",
				fmt.Sprintf("duplicate rule %s(%s)", rule.Func, rule.Column))
		}
		seen[rule] = struct{}{}
	}

	result := make([]*Series, 0, len(rules)+1)
	result = append(result, NewSeries(g.key, g.keys))

	for _, rule := range rules {
		values := make([]string, len(g.keys))
		for i, key := range g.keys {
			values[i] = g.aggregate(g.groups[key], rule)
		}
		result = append(result, NewSeries(rule.Column+"_"+rule.Func, values))
	}

	return New(result...)
}

// aggregate computes one rule over one partition, returning the cell text.
func (g *GroupBy) aggregate(part *Table, rule AggRule) string {
	if rule.Func == AggCount {
		return strconv.Itoa(part.Len())
	}

	nums, failed := coerceNumeric(part.columns[rule.Column])
	if failed > 0 && config.GetGlobalConfig().LogCoercionFailures {
		slog.Debug("numeric coercion failed for some cells during aggregation",
			"column", rule.Column,
			"func", rule.Func,
			"failed_cells", failed)
	}
	if len(nums) == 0 {
		// no coercible values: null marker, not an error
		return ""
	}

	var v float64
	switch rule.Func {
	case AggMax:
		v = maxOf(nums)
	case AggMin:
		v = minOf(nums)
	case AggMean:
		sum := 0.0
		for _, n := range nums {
			sum += n
		}
		v = sum / float64(len(nums))
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// coerceNumeric parses every cell as a float, returning the parsed values and
// the number of non-null cells that failed to parse. Null cells are excluded
// without counting as failures.
func coerceNumeric(values []string) ([]float64, int) {
	nums := make([]float64, 0, len(values))
	failed := 0
	for _, v := range values {
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			failed++
			continue
		}
		nums = append(nums, f)
	}
	return nums, failed
}

// sortKeys orders key values ascending: numerically when every key is
// coercible, lexicographically otherwise.
func sortKeys(keys []string) {
	numeric := make(map[string]float64, len(keys))
	allNumeric := true
	for _, k := range keys {
		f, err := strconv.ParseFloat(k, 64)
		if err != nil {
			allNumeric = false
			break
		}
		numeric[k] = f
	}

	if allNumeric && len(keys) > 0 {
		sort.Slice(keys, func(i, j int) bool { return numeric[keys[i]] < numeric[keys[j]] })
		return
	}
	sort.Strings(keys)
}

func maxOf[T constraints.Ordered](values []T) T {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf[T constraints.Ordered](values []T) T {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

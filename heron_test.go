package heron_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	heron "github.com/hoshif/heron"
)

const peopleCSV = `ID,Name,Sex,Age
1,Ann,Female,34
2,Bob,Male,81
3,Cid,Male,
4,Dee,Female,90
5,Eli,Male,not recorded
`

func parsePeople(t *testing.T) *heron.Table {
	t.Helper()
	tbl, err := heron.ParseCSV(strings.NewReader(peopleCSV))
	require.NoError(t, err)
	return tbl
}

func TestParseCSV(t *testing.T) {
	tbl := parsePeople(t)

	rows, cols := tbl.Shape()
	assert.Equal(t, 5, rows)
	assert.Equal(t, 4, cols)
	assert.Equal(t, []string{"ID", "Name", "Sex", "Age"}, tbl.Columns())
}

func TestParseCSVSchemaError(t *testing.T) {
	_, err := heron.ParseCSV(strings.NewReader("A,B\n1\n"))
	require.Error(t, err)
	assert.True(t, heron.IsSchemaError(err))
}

func TestReadCSVNotFound(t *testing.T) {
	_, err := heron.ReadCSV("/nonexistent/people.csv")
	require.Error(t, err)
	assert.True(t, heron.IsNotFound(err))
}

func TestNewTableFromSeries(t *testing.T) {
	tbl, err := heron.NewTable(
		heron.NewSeries("City", []string{"Oslo", "Kyoto"}),
		heron.NewSeries("Pop", []string{"700000", "1460000"}),
	)
	require.NoError(t, err)

	assert.Equal(t, 2, tbl.Len())
	city, err := tbl.Column("City")
	require.NoError(t, err)
	assert.Equal(t, "Kyoto", city.Value(1))
}

func TestFilterProjectPipeline(t *testing.T) {
	tbl := parsePeople(t)

	age, err := tbl.Column("Age")
	require.NoError(t, err)
	adults, err := tbl.FilterByMask(age.Gt(40))
	require.NoError(t, err)

	// Non-numeric and null ages never match.
	assert.Equal(t, 2, adults.Len())

	names, err := adults.Project("Name")
	require.NoError(t, err)
	assert.Equal(t, []string{"Name"}, names.Columns())
	assert.Equal(t, []string{"Bob", "Dee"}, names.Export()["Name"])
}

func TestFilterPredicate(t *testing.T) {
	tbl := parsePeople(t)

	males := tbl.Filter(func(r heron.Row) bool {
		return r.Get("Sex") == "Male"
	})
	assert.Equal(t, 3, males.Len())
}

func TestGroupByAgg(t *testing.T) {
	tbl := parsePeople(t)

	gb, err := tbl.GroupBy("Sex")
	require.NoError(t, err)
	assert.Equal(t, []string{"Female", "Male"}, gb.Keys())

	result, err := gb.Agg(
		heron.AggRule{Column: "Age", Func: heron.AggMean},
		heron.AggRule{Column: "ID", Func: heron.AggCount},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"Sex", "Age_mean", "ID_count"}, result.Columns())
	data := result.Export()
	assert.Equal(t, []string{"62", "81"}, data["Age_mean"])
	assert.Equal(t, []string{"2", "3"}, data["ID_count"])
}

func TestGroupByAggUnsupportedFunction(t *testing.T) {
	tbl := parsePeople(t)

	gb, err := tbl.GroupBy("Sex")
	require.NoError(t, err)
	_, err = gb.Agg(heron.AggRule{Column: "Age", Func: "median"})
	require.Error(t, err)
	assert.True(t, heron.IsUnsupportedAggregation(err))
}

func TestJoin(t *testing.T) {
	people := parsePeople(t)
	scores, err := heron.ParseCSV(strings.NewReader("ID,Score\n1,90\n2,75\n2,80\n9,10\n"))
	require.NoError(t, err)

	result, err := people.Join(scores, &heron.JoinOptions{
		Type:     heron.InnerJoin,
		LeftKey:  "ID",
		RightKey: "ID",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Len())
	assert.Equal(t, []string{"ID", "Name", "Sex", "Age", "Score"}, result.Columns())
	assert.Equal(t, []string{"90", "75", "80"}, result.Export()["Score"])
}

func TestJoinUnsupportedType(t *testing.T) {
	people := parsePeople(t)

	_, err := people.Join(people, &heron.JoinOptions{
		Type:     heron.LeftJoin,
		LeftKey:  "ID",
		RightKey: "ID",
	})
	require.Error(t, err)
	assert.True(t, heron.IsUnsupportedJoinType(err))
}

func TestJoinNilInputs(t *testing.T) {
	people := parsePeople(t)

	_, err := people.Join(nil, &heron.JoinOptions{Type: heron.InnerJoin, LeftKey: "ID", RightKey: "ID"})
	require.Error(t, err)
	assert.True(t, heron.IsInvalidInput(err))

	_, err = people.Join(people, nil)
	require.Error(t, err)
	assert.True(t, heron.IsInvalidInput(err))
}

func TestHead(t *testing.T) {
	tbl := parsePeople(t)

	head := tbl.Head(2)
	assert.Equal(t, 2, head.Len())
	assert.Equal(t, tbl.Columns(), head.Columns())

	assert.Equal(t, 5, tbl.Head(100).Len())
}

func TestWriteCSVRoundTrip(t *testing.T) {
	tbl := parsePeople(t)

	var buf bytes.Buffer
	require.NoError(t, heron.WriteCSV(&buf, tbl))

	reparsed, err := heron.ParseCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, tbl.Export(), reparsed.Export())
}

func TestErrorHelpers(t *testing.T) {
	tbl := parsePeople(t)

	_, err := tbl.Column("Missing")
	require.Error(t, err)
	assert.True(t, heron.IsColumnNotFound(err))
	assert.False(t, heron.IsSchemaError(err))

	_, err = tbl.FilterByMask([]bool{true})
	require.Error(t, err)
	assert.True(t, heron.IsShapeMismatch(err))

	_, err = tbl.Project("Name", "Missing", "AlsoMissing")
	require.Error(t, err)
	assert.True(t, heron.IsColumnNotFound(err))
	assert.Contains(t, err.Error(), "Missing")
	assert.Contains(t, err.Error(), "AlsoMissing")
}

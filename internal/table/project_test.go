package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoshif/heron/internal/errors"
	"github.com/hoshif/heron/internal/testutil"
)

func TestProject(t *testing.T) {
	tbl := testutil.People(t)

	result, err := tbl.Project("Name", "Age")
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Age"}, result.Columns())
	assert.Equal(t, tbl.Len(), result.Len(), "all rows are preserved")
	testutil.AssertColumn(t, result, "Name", []string{"Ann", "Bob", "Cid", "Dee", "Eli"})
}

func TestProjectRequestedOrder(t *testing.T) {
	tbl := testutil.People(t)

	result, err := tbl.Project("Age", "ID")
	require.NoError(t, err)

	assert.Equal(t, []string{"Age", "ID"}, result.Columns())
}

func TestProjectMissingColumnsListedTogether(t *testing.T) {
	tbl := testutil.People(t)

	tests := []struct {
		name        string
		request     []string
		wantMissing []string
	}{
		{
			name:        "mixed valid and invalid",
			request:     []string{"ID", "InvalidColumn", "Sex", "AnotherInvalidColumn"},
			wantMissing: []string{"InvalidColumn", "AnotherInvalidColumn"},
		},
		{
			name:        "all invalid",
			request:     []string{"FakeCol1", "FakeCol2", "FakeCol3"},
			wantMissing: []string{"FakeCol1", "FakeCol2", "FakeCol3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tbl.Project(tt.request...)
			require.Error(t, err)
			assert.Equal(t, errors.KindColumnNotFound, errors.KindOf(err))
			for _, missing := range tt.wantMissing {
				assert.Contains(t, err.Error(), missing)
			}
		})
	}
}

func TestProjectRejectsDuplicateNames(t *testing.T) {
	tbl := testutil.People(t)

	_, err := tbl.Project("Name", "Name")
	require.Error(t, err)
	assert.Equal(t, errors.KindInvalidInput, errors.KindOf(err))
	assert.Contains(t, err.Error(), "Name")
}

func TestProjectChainedWithFilter(t *testing.T) {
	tbl := testutil.People(t)

	sex, err := tbl.Column("Sex")
	require.NoError(t, err)
	filtered, err := tbl.FilterByMask(sex.Eq("Female"))
	require.NoError(t, err)

	result, err := filtered.Project("ID", "Age")
	require.NoError(t, err)

	assert.Equal(t, []string{"ID", "Age"}, result.Columns())
	testutil.AssertColumn(t, result, "ID", []string{"1", "4"})
	assert.False(t, result.HasColumn("Sex"))
}

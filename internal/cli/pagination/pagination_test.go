package pagination

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pipewatch/internal/table"
)

func TestParseSort(t *testing.T) {
	tests := []struct {
		name      string
		sortStr   string
		wantField string
		wantDir   table.Direction
		wantErr   error
	}{
		{name: "empty", sortStr: "", wantDir: table.DirectionNone},
		{name: "blank", sortStr: "   ", wantDir: table.DirectionNone},
		{name: "field only", sortStr: "throughput", wantField: "throughput", wantDir: table.DirectionAsc},
		{name: "field and asc", sortStr: "name:asc", wantField: "name", wantDir: table.DirectionAsc},
		{name: "field and desc", sortStr: "errors:desc", wantField: "errors", wantDir: table.DirectionDesc},
		{name: "order is case insensitive", sortStr: " name : DESC ", wantField: "name", wantDir: table.DirectionDesc},
		{name: "invalid format", sortStr: "a:b:c", wantErr: ErrInvalidSortFormat},
		{name: "empty field", sortStr: ":asc", wantErr: ErrEmptySortField},
		{name: "invalid order", sortStr: "name:up", wantErr: ErrInvalidSortOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, dir, err := ParseSort(tt.sortStr)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantDir, dir)
		})
	}
}

func TestParams_Validate(t *testing.T) {
	valid := []string{"id", "name", "throughput"}

	tests := []struct {
		name    string
		params  Params
		wantErr error
	}{
		{name: "zero value", params: Params{}},
		{name: "all set", params: Params{Page: 2, PageSize: 20, Sort: "name:desc"}},
		{name: "negative page", params: Params{Page: -1}, wantErr: ErrInvalidPage},
		{name: "negative page size", params: Params{PageSize: -5}, wantErr: ErrInvalidPageSize},
		{name: "unknown field", params: Params{Sort: "color"}, wantErr: ErrInvalidSortField},
		{name: "bad order", params: Params{Sort: "name:sideways"}, wantErr: ErrInvalidSortOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate(valid)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParams_ValidateListsFields(t *testing.T) {
	err := Params{Sort: "color"}.Validate([]string{"id", "name"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id, name")
}

type row struct {
	N int
}

func rowFields() table.Fields[row] {
	return table.Fields[row]{"n": func(r row) any { return r.N }}
}

func rows(n int) []row {
	out := make([]row, n)
	for i := range out {
		out[i] = row{N: i + 1}
	}
	return out
}

func TestParams_Apply(t *testing.T) {
	ctrl := table.New(rows(25), rowFields())

	err := Params{Page: 2, PageSize: 5, Sort: "n:desc"}.Apply(ctrl)
	require.NoError(t, err)

	meta := ctrl.PaginationConfig()
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 5, meta.PageSize)
	assert.Equal(t, table.SortSpec{Key: "n", Direction: table.DirectionDesc}, ctrl.SortConfig())
	assert.Equal(t, []row{{20}, {19}, {18}, {17}, {16}}, ctrl.CurrentPageRows())
}

func TestParams_ApplyZeroKeepsDefaults(t *testing.T) {
	ctrl := table.New(rows(25), rowFields(), table.WithPageSize(7))

	require.NoError(t, Params{}.Apply(ctrl))

	meta := ctrl.PaginationConfig()
	assert.Equal(t, 1, meta.CurrentPage)
	assert.Equal(t, 7, meta.PageSize)
	assert.False(t, ctrl.SortConfig().Active())
}

func TestParams_ApplyInvalidSort(t *testing.T) {
	ctrl := table.New(rows(3), rowFields())
	err := Params{Sort: "n:nope"}.Apply(ctrl)
	assert.ErrorIs(t, err, ErrInvalidSortOrder)
}

func TestAddFlags(t *testing.T) {
	var p Params
	cmd := &cobra.Command{Use: "list"}
	AddFlags(cmd, &p, "id, name")

	require.NoError(t, cmd.ParseFlags([]string{"--page", "3", "--page-size", "15", "--sort", "name:desc", "--all"}))
	assert.Equal(t, Params{Page: 3, PageSize: 15, Sort: "name:desc", All: true}, p)
}

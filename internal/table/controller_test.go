package table_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pipewatch/internal/table"
)

type item struct {
	ID   int
	Name string
}

var itemFields = table.Fields[item]{ //nolint:gochecknoglobals // Shared test fixture.
	"id":   func(i item) any { return i.ID },
	"name": func(i item) any { return i.Name },
}

func makeItems(n int) []item {
	items := make([]item, n)
	for i := range items {
		items[i] = item{ID: i + 1, Name: string(rune('a' + i%26))}
	}
	return items
}

func ids(items []item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestNew_Defaults(t *testing.T) {
	ctrl := table.New(makeItems(3), itemFields)

	assert.Equal(t, table.SortSpec{}, ctrl.SortConfig())
	meta := ctrl.PaginationConfig()
	assert.Equal(t, 1, meta.CurrentPage)
	assert.Equal(t, table.DefaultPageSize, meta.PageSize)
	assert.Equal(t, 3, meta.TotalItems)
	assert.Equal(t, 1, meta.TotalPages)
}

func TestNew_Options(t *testing.T) {
	tests := []struct {
		name     string
		opts     []table.Option
		wantSize int
		wantSort table.SortSpec
	}{
		{
			name:     "page size",
			opts:     []table.Option{table.WithPageSize(25)},
			wantSize: 25,
		},
		{
			name:     "invalid page size keeps default",
			opts:     []table.Option{table.WithPageSize(0)},
			wantSize: table.DefaultPageSize,
		},
		{
			name:     "sort defaults to ascending",
			opts:     []table.Option{table.WithSort("name", table.DirectionNone)},
			wantSize: table.DefaultPageSize,
			wantSort: table.SortSpec{Key: "name", Direction: table.DirectionAsc},
		},
		{
			name:     "explicit descending sort",
			opts:     []table.Option{table.WithSort("id", table.DirectionDesc)},
			wantSize: table.DefaultPageSize,
			wantSort: table.SortSpec{Key: "id", Direction: table.DirectionDesc},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := table.New(makeItems(1), itemFields, tt.opts...)
			assert.Equal(t, tt.wantSize, ctrl.PaginationConfig().PageSize)
			assert.Equal(t, tt.wantSort, ctrl.SortConfig())
		})
	}
}

func TestController_ToggleCycle(t *testing.T) {
	data := []item{{ID: 3, Name: "c"}, {ID: 1, Name: "a"}, {ID: 2, Name: "b"}}
	ctrl := table.New(data, itemFields)

	ctrl.ToggleSort("name")
	assert.Equal(t, []int{1, 2, 3}, ids(ctrl.CurrentPageRows()))

	ctrl.ToggleSort("name")
	assert.Equal(t, []int{3, 2, 1}, ids(ctrl.CurrentPageRows()))

	ctrl.ToggleSort("name")
	assert.Equal(t, table.SortSpec{}, ctrl.SortConfig())
	assert.Equal(t, []int{3, 1, 2}, ids(ctrl.CurrentPageRows()))

	ctrl.ToggleSort("name")
	assert.Equal(t, table.SortSpec{Key: "name", Direction: table.DirectionAsc}, ctrl.SortConfig())
}

func TestController_ToggleResetsPage(t *testing.T) {
	ctrl := table.New(makeItems(30), itemFields, table.WithPageSize(5))
	ctrl.SetPage(4)
	require.Equal(t, 4, ctrl.PaginationConfig().CurrentPage)

	ctrl.ToggleSort("id")
	assert.Equal(t, 1, ctrl.PaginationConfig().CurrentPage)
}

func TestController_SetSort(t *testing.T) {
	ctrl := table.New(makeItems(30), itemFields, table.WithPageSize(5))
	ctrl.SetPage(3)

	ctrl.SetSort(table.SortSpec{Key: "id", Direction: table.DirectionDesc})
	assert.Equal(t, 1, ctrl.PaginationConfig().CurrentPage)
	assert.Equal(t, []int{30, 29, 28, 27, 26}, ids(ctrl.CurrentPageRows()))

	ctrl.SetSort(table.SortSpec{Key: "id"})
	assert.Equal(t, table.SortSpec{}, ctrl.SortConfig())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(ctrl.CurrentPageRows()))
}

func TestController_LastPage(t *testing.T) {
	ctrl := table.New(makeItems(5), itemFields, table.WithPageSize(2))

	meta := ctrl.PaginationConfig()
	assert.Equal(t, 3, meta.TotalPages)

	ctrl.GoToLastPage()
	meta = ctrl.PaginationConfig()
	assert.Equal(t, 3, meta.CurrentPage)
	assert.Len(t, ctrl.CurrentPageRows(), 1)
	assert.Equal(t, []int{5}, ids(ctrl.CurrentPageRows()))
	assert.False(t, ctrl.CanGoNext())
	assert.True(t, ctrl.CanGoPrevious())
}

func TestController_Navigation(t *testing.T) {
	ctrl := table.New(makeItems(25), itemFields, table.WithPageSize(10))

	assert.False(t, ctrl.CanGoPrevious())
	assert.True(t, ctrl.CanGoNext())

	ctrl.GoToPreviousPage()
	assert.Equal(t, 1, ctrl.PaginationConfig().CurrentPage)

	ctrl.GoToNextPage()
	assert.Equal(t, 2, ctrl.PaginationConfig().CurrentPage)
	assert.Equal(t, 11, ctrl.CurrentPageRows()[0].ID)

	ctrl.GoToNextPage()
	ctrl.GoToNextPage()
	ctrl.GoToNextPage()
	assert.Equal(t, 3, ctrl.PaginationConfig().CurrentPage)
	assert.Len(t, ctrl.CurrentPageRows(), 5)

	ctrl.GoToFirstPage()
	assert.Equal(t, 1, ctrl.PaginationConfig().CurrentPage)
}

func TestController_SetPageClampsOnRead(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		wantPage  int
		wantFirst int
	}{
		{name: "beyond last", page: 99, wantPage: 3, wantFirst: 21},
		{name: "zero", page: 0, wantPage: 1, wantFirst: 1},
		{name: "negative", page: -4, wantPage: 1, wantFirst: 1},
		{name: "in range", page: 2, wantPage: 2, wantFirst: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := table.New(makeItems(25), itemFields, table.WithPageSize(10))
			ctrl.SetPage(tt.page)

			assert.Equal(t, tt.wantPage, ctrl.PaginationConfig().CurrentPage)
			rows := ctrl.CurrentPageRows()
			require.NotEmpty(t, rows)
			assert.Equal(t, tt.wantFirst, rows[0].ID)
		})
	}
}

func TestController_PreviousFromOutOfRangePage(t *testing.T) {
	ctrl := table.New(makeItems(25), itemFields, table.WithPageSize(10))
	ctrl.SetPage(50)

	ctrl.GoToPreviousPage()
	assert.Equal(t, 2, ctrl.PaginationConfig().CurrentPage)
}

func TestController_SetPageSize(t *testing.T) {
	ctrl := table.New(makeItems(25), itemFields, table.WithPageSize(10))
	ctrl.SetPage(3)

	ctrl.SetPageSize(4)
	meta := ctrl.PaginationConfig()
	assert.Equal(t, 1, meta.CurrentPage)
	assert.Equal(t, 4, meta.PageSize)
	assert.Equal(t, 7, meta.TotalPages)

	ctrl.SetPageSize(0)
	assert.Equal(t, table.MinPageSize, ctrl.PaginationConfig().PageSize)
}

func TestController_Empty(t *testing.T) {
	ctrl := table.New[item](nil, itemFields, table.WithPageSize(3))

	meta := ctrl.PaginationConfig()
	assert.Equal(t, 0, meta.TotalItems)
	assert.Equal(t, 0, meta.TotalPages)
	assert.Equal(t, 1, meta.CurrentPage)
	assert.Empty(t, ctrl.CurrentPageRows())
	assert.Empty(t, ctrl.AllSortedRows())
	assert.False(t, ctrl.CanGoNext())
	assert.False(t, ctrl.CanGoPrevious())

	ctrl.GoToLastPage()
	ctrl.GoToNextPage()
	assert.Equal(t, 1, ctrl.PaginationConfig().CurrentPage)
}

func TestController_PageSizeBounds(t *testing.T) {
	for _, size := range []int{1, 2, 3, 7, 10} {
		for _, n := range []int{0, 1, 9, 10, 11, 23} {
			ctrl := table.New(makeItems(n), itemFields, table.WithPageSize(size))
			meta := ctrl.PaginationConfig()
			assert.Equal(t, (n+size-1)/size, meta.TotalPages, "n=%d size=%d", n, size)

			seen := 0
			for page := 1; page <= meta.TotalPages; page++ {
				ctrl.SetPage(page)
				rows := ctrl.CurrentPageRows()
				assert.LessOrEqual(t, len(rows), size)
				if page < meta.TotalPages {
					assert.Len(t, rows, size)
				}
				seen += len(rows)
			}
			assert.Equal(t, n, seen, "n=%d size=%d", n, size)
		}
	}
}

func TestController_HugePageSize(t *testing.T) {
	ctrl := table.New(makeItems(5), itemFields)
	ctrl.SetPageSize(math.MaxInt)

	meta := ctrl.PaginationConfig()
	assert.Equal(t, 1, meta.TotalPages)
	assert.Equal(t, 1, meta.CurrentPage)
	assert.False(t, meta.HasNext)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(ctrl.CurrentPageRows()))

	ctrl.GoToLastPage()
	assert.Equal(t, 1, ctrl.PaginationConfig().CurrentPage)
	assert.Len(t, ctrl.CurrentPageRows(), 5)
}

func TestController_SetDataKeepsSortAndClampsPage(t *testing.T) {
	ctrl := table.New(makeItems(30), itemFields, table.WithPageSize(10), table.WithSort("id", table.DirectionDesc))
	ctrl.GoToLastPage()
	require.Equal(t, 3, ctrl.PaginationConfig().CurrentPage)

	ctrl.SetData(makeItems(12))
	assert.Equal(t, 2, ctrl.PaginationConfig().CurrentPage)
	assert.Equal(t, []int{2, 1}, ids(ctrl.CurrentPageRows()))
	assert.Equal(t, 12, ctrl.AllSortedRows()[0].ID)
}

func TestController_AllSortedRowsBypassesPagination(t *testing.T) {
	ctrl := table.New(makeItems(15), itemFields, table.WithPageSize(4), table.WithSort("id", table.DirectionDesc))

	all := ctrl.AllSortedRows()
	require.Len(t, all, 15)
	assert.Equal(t, 15, all[0].ID)
	assert.Equal(t, 1, all[14].ID)
	assert.Len(t, ctrl.CurrentPageRows(), 4)
}

func TestPaginate(t *testing.T) {
	data := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, table.Paginate(data, 1, 2))
	assert.Equal(t, []int{5}, table.Paginate(data, 3, 2))
	assert.Equal(t, []int{5}, table.Paginate(data, 10, 2))
	assert.Equal(t, []int{1}, table.Paginate(data, 1, 0))
	assert.Empty(t, table.Paginate([]int{}, 1, 2))
}

func data5() []int { return []int{1, 2, 3, 4, 5} }

func TestNewPaginationMeta(t *testing.T) {
	meta := table.NewPaginationMeta(5, 7, 2)
	assert.Equal(t, table.PaginationMeta{
		CurrentPage: 3,
		PageSize:    2,
		TotalPages:  3,
		TotalItems:  5,
		HasPrevious: true,
		HasNext:     false,
	}, meta)

	assert.Equal(t, 1, table.NewPaginationMeta(5, 1, math.MaxInt).TotalPages)
	assert.Equal(t, 1, table.TotalPages(math.MaxInt, math.MaxInt))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, table.Paginate(data5(), 1, math.MaxInt))

	empty := table.NewPaginationMeta(0, 4, 10)
	assert.Equal(t, 0, empty.TotalPages)
	assert.Equal(t, 1, empty.CurrentPage)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrevious)
}

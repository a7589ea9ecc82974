package query

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raymond9734/customer-dashboard-backend/internal/models"
)

func int64Ptr(v int64) *int64 { return &v }

func sampleCustomers() []models.Customer {
	return []models.Customer{
		{ID: "1", Name: "Odis Rhinehart", Level: models.LevelWarga, FavoriteMenu: "Chicken & Ribs Combo", TotalTransaction: 194700, CreatedAt: "2023-01-15"},
		{ID: "2", Name: "Kris Roher", Level: models.LevelWarga, FavoriteMenu: "Surf & Turf Gift Basket", TotalTransaction: 651200, CreatedAt: "2023-02-20"},
		{ID: "3", Name: "Serenity Fisher", Level: models.LevelJuragan, FavoriteMenu: "Fried Chicken Dinner", TotalTransaction: 1040920, CreatedAt: "2023-03-10"},
		{ID: "4", Name: "brooklyn Warren", Level: models.LevelSultan, FavoriteMenu: "Surf & Turf Gift Basket", TotalTransaction: 750500, CreatedAt: "2023-04-05"},
		{ID: "5", Name: "Franco Delort", Level: models.LevelJuragan, FavoriteMenu: "Chicken & Ribs Combo", TotalTransaction: 96000, CreatedAt: "2023-05-12"},
		{ID: "6", Name: "Calvin Steward", Level: models.LevelKonglomerat, FavoriteMenu: "BBQ Rib Dinner", TotalTransaction: 467500, CreatedAt: "2023-09-08"},
		{ID: "7", Name: "Calvin Steward", Level: models.LevelKonglomerat, FavoriteMenu: "BBQ Rib Dinner", TotalTransaction: 467500, CreatedAt: "2023-10-03"},
	}
}

func ids(customers []models.Customer) []string {
	out := make([]string, len(customers))
	for i, c := range customers {
		out[i] = c.ID
	}
	return out
}

func generated(n int) []models.Customer {
	out := make([]models.Customer, n)
	for i := range out {
		out[i] = models.Customer{
			ID:               fmt.Sprint(i + 1),
			Name:             fmt.Sprintf("Customer %02d", i+1),
			Level:            models.Levels[i%len(models.Levels)],
			FavoriteMenu:     "Soto Betawi",
			TotalTransaction: int64((i * 7919) % 1000),
			CreatedAt:        fmt.Sprintf("2023-%02d-%02d", i%12+1, i%28+1),
		}
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		search   string
		opts     *models.FilterOptions
		expected []string
	}{
		{name: "no criteria", expected: []string{"1", "2", "3", "4", "5", "6", "7"}},
		{name: "search is case-insensitive", search: "BROOKLYN", expected: []string{"4"}},
		{name: "search matches substrings", search: "steward", expected: []string{"6", "7"}},
		{name: "search only looks at name", search: "chicken", expected: []string{}},
		{name: "level any-of", opts: &models.FilterOptions{Level: []models.Level{models.LevelSultan, models.LevelKonglomerat}}, expected: []string{"4", "6", "7"}},
		{name: "min bound inclusive", opts: &models.FilterOptions{MinTransaction: int64Ptr(651200)}, expected: []string{"2", "3", "4"}},
		{name: "max bound inclusive", opts: &models.FilterOptions{MaxTransaction: int64Ptr(194700)}, expected: []string{"1", "5"}},
		{name: "max zero excludes everything positive", opts: &models.FilterOptions{MaxTransaction: int64Ptr(0)}, expected: []string{}},
		{name: "date range inclusive", opts: &models.FilterOptions{StartDate: "2023-02-20", EndDate: "2023-04-05"}, expected: []string{"2", "3", "4"}},
		{name: "menu substring case-insensitive", opts: &models.FilterOptions{FavoriteMenu: "chicken"}, expected: []string{"1", "3", "5"}},
		{name: "criteria combine with and", search: "o", opts: &models.FilterOptions{Level: []models.Level{models.LevelWarga}, MinTransaction: int64Ptr(200000)}, expected: []string{"2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(sampleCustomers(), tt.search, tt.opts)
			assert.Equal(t, tt.expected, ids(got))
		})
	}
}

func TestFilter_MinTransactionScenario(t *testing.T) {
	customers := []models.Customer{
		{ID: "a", Name: "A", TotalTransaction: 100},
		{ID: "b", Name: "B", TotalTransaction: 500},
		{ID: "c", Name: "C", TotalTransaction: 900},
	}

	got := Filter(customers, "", &models.FilterOptions{MinTransaction: int64Ptr(200)})
	require.Len(t, got, 2)
	assert.Equal(t, int64(500), got[0].TotalTransaction)
	assert.Equal(t, int64(900), got[1].TotalTransaction)
}

func TestFilter_Monotonic(t *testing.T) {
	all := generated(40)
	opts := []*models.FilterOptions{
		{Level: []models.Level{models.LevelJuragan}},
		{MinTransaction: int64Ptr(300), MaxTransaction: int64Ptr(600)},
		{StartDate: "2023-03-01", EndDate: "2023-08-31"},
		{FavoriteMenu: "nasi"},
	}

	for i, o := range opts {
		state, err := models.NewQueryState(10).WithFilterOptions(*o)
		require.NoError(t, err, "case %d", i)

		filtered := FilterAndSort(all, state)
		assert.LessOrEqual(t, len(filtered), len(all))

		cleared := FilterAndSort(all, state.WithoutFilters())
		assert.Len(t, cleared, len(all))
	}
}

func TestSort(t *testing.T) {
	tests := []struct {
		name     string
		field    models.SortField
		order    models.SortOrder
		expected []string
	}{
		{name: "no field keeps order", field: "", order: models.SortAsc, expected: []string{"1", "2", "3", "4", "5", "6", "7"}},
		{name: "name asc ignores case", field: models.SortByName, order: models.SortAsc, expected: []string{"4", "6", "7", "5", "2", "1", "3"}},
		{name: "name desc keeps ties in input order", field: models.SortByName, order: models.SortDesc, expected: []string{"3", "1", "2", "5", "6", "7", "4"}},
		{name: "total asc is numeric", field: models.SortByTotalTransaction, order: models.SortAsc, expected: []string{"5", "1", "6", "7", "2", "4", "3"}},
		{name: "total desc", field: models.SortByTotalTransaction, order: models.SortDesc, expected: []string{"3", "4", "2", "6", "7", "1", "5"}},
		{name: "created desc", field: models.SortByCreatedAt, order: models.SortDesc, expected: []string{"7", "6", "5", "4", "3", "2", "1"}},
		{name: "level is alphabetical", field: models.SortByLevel, order: models.SortAsc, expected: []string{"3", "5", "6", "7", "4", "1", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := sampleCustomers()
			got := Sort(input, tt.field, tt.order)
			assert.Equal(t, tt.expected, ids(got))
			assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7"}, ids(input), "input must not be reordered")
		})
	}
}

func TestSort_Idempotent(t *testing.T) {
	all := generated(40)
	fields := []models.SortField{
		models.SortByID, models.SortByName, models.SortByLevel,
		models.SortByFavoriteMenu, models.SortByTotalTransaction, models.SortByCreatedAt,
	}

	for _, f := range fields {
		for _, o := range []models.SortOrder{models.SortAsc, models.SortDesc} {
			once := Sort(all, f, o)
			twice := Sort(once, f, o)
			assert.Equal(t, once, twice, "%s %s", f, o)
		}
	}
}

func TestPaginate(t *testing.T) {
	all := generated(40)

	tests := []struct {
		name      string
		page      int
		pageSize  int
		wantLen   int
		wantFirst string
		wantPages int
	}{
		{name: "first page", page: 1, pageSize: 10, wantLen: 10, wantFirst: "1", wantPages: 4},
		{name: "last page", page: 4, pageSize: 10, wantLen: 10, wantFirst: "31", wantPages: 4},
		{name: "past the end", page: 5, pageSize: 10, wantLen: 0, wantPages: 4},
		{name: "partial page", page: 3, pageSize: 15, wantLen: 10, wantFirst: "31", wantPages: 3},
		{name: "invalid size falls back", page: 1, pageSize: 0, wantLen: 10, wantFirst: "1", wantPages: 4},
		{name: "largest page", page: math.MaxInt, pageSize: 10, wantLen: 0, wantPages: 4},
		{name: "largest page and size", page: math.MaxInt, pageSize: math.MaxInt, wantLen: 0, wantPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Paginate(all, tt.page, tt.pageSize)
			require.Len(t, res.Data, tt.wantLen)
			assert.Equal(t, tt.wantPages, res.Pagination.TotalPages)
			assert.Equal(t, int64(40), res.Pagination.TotalCount)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.wantFirst, res.Data[0].ID)
			}
		})
	}
}

func TestPaginate_Coverage(t *testing.T) {
	all := Sort(generated(37), models.SortByTotalTransaction, models.SortDesc)

	for _, size := range []int{1, 3, 10, 36, 37, 100} {
		first := Paginate(all, 1, size)
		var joined []models.Customer
		for p := 1; p <= first.Pagination.TotalPages; p++ {
			joined = append(joined, Paginate(all, p, size).Data...)
		}
		assert.Equal(t, all, joined, "page size %d", size)
	}
}

func TestRun(t *testing.T) {
	state := models.NewQueryState(2)
	state, err := state.WithFilterOptions(models.FilterOptions{Level: []models.Level{models.LevelJuragan, models.LevelKonglomerat}})
	require.NoError(t, err)
	state, err = state.WithSorting(models.SortByTotalTransaction, models.SortDesc)
	require.NoError(t, err)
	state, err = state.WithCurrentPage(2)
	require.NoError(t, err)

	res := Run(sampleCustomers(), state)

	// Juragan and Konglomerat by total desc: 3, 6, 7, 5
	assert.Equal(t, []string{"7", "5"}, ids(res.Data))
	assert.Equal(t, 2, res.Pagination.TotalPages)
	assert.Equal(t, 3, res.Pagination.From)
	assert.Equal(t, 4, res.Pagination.To)
}

func TestRun_HugePage(t *testing.T) {
	state, err := models.NewQueryState(10).WithCurrentPage(math.MaxInt)
	require.NoError(t, err)

	var res Result
	require.NotPanics(t, func() { res = Run(generated(40), state) })

	assert.NotNil(t, res.Data)
	assert.Empty(t, res.Data)
	assert.Equal(t, 4, res.Pagination.TotalPages)
	assert.Equal(t, 0, res.Pagination.From)
	assert.Equal(t, 0, res.Pagination.To)
}

func TestRun_TotalPagesScenario(t *testing.T) {
	all := generated(40)
	state := models.NewQueryState(10)

	res := Run(all, state)
	assert.Equal(t, 4, res.Pagination.TotalPages)

	state, err := state.WithCurrentPage(5)
	require.NoError(t, err)
	res = Run(all, state)
	assert.Empty(t, res.Data)
}

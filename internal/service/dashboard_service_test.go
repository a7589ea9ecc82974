package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raymond9734/customer-dashboard-backend/internal/models"
	"github.com/Raymond9734/customer-dashboard-backend/internal/session"
)

func newTestDashboard(t *testing.T, seeded int) (DashboardService, CustomerService, string) {
	t.Helper()
	customers, _ := newTestCustomerService(t, seeded)
	dash := NewDashboardService(customers, session.NewMemoryStore(time.Hour), 10, discardLogger())

	res, err := dash.NewSession(context.Background())
	require.NoError(t, err)
	return dash, customers, res.SessionID
}

func TestDashboardService_NewSession(t *testing.T) {
	dash, _, sid := newTestDashboard(t, 0)

	state, err := dash.GetState(context.Background(), sid)
	require.NoError(t, err)
	assert.Equal(t, models.NewQueryState(10), state)
}

func TestDashboardService_ViewPaginates(t *testing.T) {
	ctx := context.Background()
	dash, _, sid := newTestDashboard(t, 40)

	view, err := dash.View(ctx, sid)
	require.NoError(t, err)
	assert.Len(t, view.Data, 10)
	assert.Equal(t, 4, view.Pagination.TotalPages)

	_, err = dash.SetCurrentPage(ctx, sid, 5)
	require.NoError(t, err)

	view, err = dash.View(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, view.Data)
	assert.Equal(t, 5, view.State.CurrentPage)
}

func TestDashboardService_SettersResetPage(t *testing.T) {
	ctx := context.Background()
	dash, _, sid := newTestDashboard(t, 40)

	reset := []struct {
		name  string
		apply func() (models.QueryState, error)
	}{
		{name: "search", apply: func() (models.QueryState, error) { return dash.SetSearchTerm(ctx, sid, "customer 1") }},
		{name: "page size", apply: func() (models.QueryState, error) { return dash.SetItemsPerPage(ctx, sid, 5) }},
		{name: "filter", apply: func() (models.QueryState, error) {
			return dash.SetFilterOptions(ctx, sid, models.FilterOptions{Level: []models.Level{models.LevelSultan}})
		}},
		{name: "clear filters", apply: func() (models.QueryState, error) { return dash.ClearFilters(ctx, sid) }},
	}

	for _, tt := range reset {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dash.SetCurrentPage(ctx, sid, 3)
			require.NoError(t, err)

			state, err := tt.apply()
			require.NoError(t, err)
			assert.Equal(t, 1, state.CurrentPage)

			stored, err := dash.GetState(ctx, sid)
			require.NoError(t, err)
			assert.Equal(t, state, stored)
		})
	}
}

func TestDashboardService_RejectedSetterKeepsState(t *testing.T) {
	ctx := context.Background()
	dash, _, sid := newTestDashboard(t, 10)

	before, err := dash.SetSearchTerm(ctx, sid, "x")
	require.NoError(t, err)

	tests := []struct {
		name  string
		apply func() (models.QueryState, error)
	}{
		{name: "page zero", apply: func() (models.QueryState, error) { return dash.SetCurrentPage(ctx, sid, 0) }},
		{name: "page size too large", apply: func() (models.QueryState, error) { return dash.SetItemsPerPage(ctx, sid, 1000) }},
		{name: "unknown sort field", apply: func() (models.QueryState, error) { return dash.SetSorting(ctx, sid, "email", models.SortAsc) }},
		{name: "unknown sort order", apply: func() (models.QueryState, error) { return dash.SetSorting(ctx, sid, models.SortByName, "sideways") }},
		{name: "bad filter", apply: func() (models.QueryState, error) {
			return dash.SetFilterOptions(ctx, sid, models.FilterOptions{StartDate: "yesterday"})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.apply()
			assert.True(t, models.IsInvalidInput(err))

			stored, err := dash.GetState(ctx, sid)
			require.NoError(t, err)
			assert.Equal(t, before, stored)
		})
	}
}

func TestDashboardService_ToggleSort(t *testing.T) {
	ctx := context.Background()
	dash, _, sid := newTestDashboard(t, 5)

	state, err := dash.ToggleSort(ctx, sid, models.SortByTotalTransaction)
	require.NoError(t, err)
	assert.Equal(t, models.SortAsc, state.SortOrder)

	state, err = dash.ToggleSort(ctx, sid, models.SortByTotalTransaction)
	require.NoError(t, err)
	assert.Equal(t, models.SortDesc, state.SortOrder)

	view, err := dash.View(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, "5", view.Data[0].ID)
}

func TestDashboardService_ViewSeesMutations(t *testing.T) {
	ctx := context.Background()
	dash, customers, sid := newTestDashboard(t, 3)

	c, err := customers.AddCustomer(ctx, models.CustomerFields{Name: "Newest", FavoriteMenu: "Kopi"})
	require.NoError(t, err)

	view, err := dash.View(ctx, sid)
	require.NoError(t, err)
	require.Len(t, view.Data, 4)
	assert.Equal(t, c.ID, view.Data[0].ID, "new customers are listed first")

	require.NoError(t, customers.DeleteCustomer(ctx, c.ID))
	view, err = dash.View(ctx, sid)
	require.NoError(t, err)
	assert.Len(t, view.Data, 3)
}

func TestDashboardService_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	dash, _, a := newTestDashboard(t, 20)

	res, err := dash.NewSession(ctx)
	require.NoError(t, err)
	b := res.SessionID

	_, err = dash.SetSearchTerm(ctx, a, "Customer 01")
	require.NoError(t, err)

	viewA, err := dash.View(ctx, a)
	require.NoError(t, err)
	viewB, err := dash.View(ctx, b)
	require.NoError(t, err)

	assert.Len(t, viewA.Data, 1)
	assert.Len(t, viewB.Data, 10)
}

func TestDashboardService_Matching(t *testing.T) {
	ctx := context.Background()
	dash, _, sid := newTestDashboard(t, 40)

	_, err := dash.SetFilterOptions(ctx, sid, models.FilterOptions{Level: []models.Level{models.LevelWarga}})
	require.NoError(t, err)
	_, err = dash.SetSorting(ctx, sid, models.SortByTotalTransaction, models.SortDesc)
	require.NoError(t, err)

	all, state, err := dash.Matching(ctx, sid)
	require.NoError(t, err)
	assert.Len(t, all, 10, "export ignores pagination")
	assert.Equal(t, models.SortDesc, state.SortOrder)
	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].TotalTransaction, all[i].TotalTransaction)
	}
}

func TestDashboardService_Refresh(t *testing.T) {
	ctx := context.Background()
	dash, customers, sid := newTestDashboard(t, 6)

	_, err := customers.AddCustomer(ctx, models.CustomerFields{Name: "Extra", FavoriteMenu: "X"})
	require.NoError(t, err)
	_, err = dash.SetSearchTerm(ctx, sid, "extra")
	require.NoError(t, err)

	res, err := dash.Refresh(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, 6, res.Customers)
	assert.Equal(t, models.NewQueryState(10), res.State)

	view, err := dash.View(ctx, sid)
	require.NoError(t, err)
	assert.Len(t, view.Data, 6)
}

func TestDashboardService_UnknownSession(t *testing.T) {
	ctx := context.Background()
	dash, _, sid := newTestDashboard(t, 1)

	_, err := dash.View(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = dash.SetSearchTerm(ctx, "missing", "x")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = dash.Refresh(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)

	require.NoError(t, dash.EndSession(ctx, sid))
	_, err = dash.GetState(ctx, sid)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Raymond9734/customer-dashboard-backend/internal/metrics"
	"github.com/Raymond9734/customer-dashboard-backend/internal/models"
	"github.com/Raymond9734/customer-dashboard-backend/internal/query"
	"github.com/Raymond9734/customer-dashboard-backend/internal/session"
)

// DashboardService handles the per-session query state and computes views
type DashboardService interface {
	NewSession(ctx context.Context) (*SessionResult, error)
	GetState(ctx context.Context, sessionID string) (models.QueryState, error)
	EndSession(ctx context.Context, sessionID string) error

	SetSearchTerm(ctx context.Context, sessionID, term string) (models.QueryState, error)
	SetSorting(ctx context.Context, sessionID string, field models.SortField, order models.SortOrder) (models.QueryState, error)
	ToggleSort(ctx context.Context, sessionID string, field models.SortField) (models.QueryState, error)
	SetCurrentPage(ctx context.Context, sessionID string, page int) (models.QueryState, error)
	SetItemsPerPage(ctx context.Context, sessionID string, n int) (models.QueryState, error)
	SetFilterOptions(ctx context.Context, sessionID string, opts models.FilterOptions) (models.QueryState, error)
	ClearFilters(ctx context.Context, sessionID string) (models.QueryState, error)

	View(ctx context.Context, sessionID string) (*ViewResult, error)
	Matching(ctx context.Context, sessionID string) ([]models.Customer, models.QueryState, error)
	Refresh(ctx context.Context, sessionID string) (*RefreshResult, error)
}

type dashboardService struct {
	customers    CustomerService
	sessions     session.Store
	itemsPerPage int
	logger       *slog.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	customers CustomerService,
	sessions session.Store,
	itemsPerPage int,
	logger *slog.Logger,
) DashboardService {
	return &dashboardService{
		customers:    customers,
		sessions:     sessions,
		itemsPerPage: itemsPerPage,
		logger:       logger,
	}
}

// NewSession starts a session with the default query state
func (s *dashboardService) NewSession(ctx context.Context) (*SessionResult, error) {
	state := models.NewQueryState(s.itemsPerPage)

	id, err := s.sessions.Create(ctx, state)
	if err != nil {
		s.logger.Error("failed to create session", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("session started", slog.String("session_id", id))

	return &SessionResult{SessionID: id, State: state}, nil
}

// GetState returns the query state of a session
func (s *dashboardService) GetState(ctx context.Context, sessionID string) (models.QueryState, error) {
	return s.sessions.Get(ctx, sessionID)
}

// EndSession drops a session
func (s *dashboardService) EndSession(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

// SetSearchTerm replaces the search term and returns to page 1
func (s *dashboardService) SetSearchTerm(ctx context.Context, sessionID, term string) (models.QueryState, error) {
	return s.update(ctx, sessionID, "set_search_term", func(q models.QueryState) (models.QueryState, error) {
		return q.WithSearchTerm(term), nil
	})
}

// SetSorting replaces sort key and direction
func (s *dashboardService) SetSorting(ctx context.Context, sessionID string, field models.SortField, order models.SortOrder) (models.QueryState, error) {
	return s.update(ctx, sessionID, "set_sorting", func(q models.QueryState) (models.QueryState, error) {
		return q.WithSorting(field, order)
	})
}

// ToggleSort flips the direction of the sorted column or sorts a new one ascending
func (s *dashboardService) ToggleSort(ctx context.Context, sessionID string, field models.SortField) (models.QueryState, error) {
	return s.update(ctx, sessionID, "toggle_sort", func(q models.QueryState) (models.QueryState, error) {
		return q.ToggleSort(field)
	})
}

// SetCurrentPage moves to a page
func (s *dashboardService) SetCurrentPage(ctx context.Context, sessionID string, page int) (models.QueryState, error) {
	return s.update(ctx, sessionID, "set_current_page", func(q models.QueryState) (models.QueryState, error) {
		return q.WithCurrentPage(page)
	})
}

// SetItemsPerPage replaces the page size and returns to page 1
func (s *dashboardService) SetItemsPerPage(ctx context.Context, sessionID string, n int) (models.QueryState, error) {
	return s.update(ctx, sessionID, "set_items_per_page", func(q models.QueryState) (models.QueryState, error) {
		return q.WithItemsPerPage(n)
	})
}

// SetFilterOptions replaces the active filter and returns to page 1
func (s *dashboardService) SetFilterOptions(ctx context.Context, sessionID string, opts models.FilterOptions) (models.QueryState, error) {
	return s.update(ctx, sessionID, "set_filter_options", func(q models.QueryState) (models.QueryState, error) {
		return q.WithFilterOptions(opts)
	})
}

// ClearFilters drops the active filter and returns to page 1
func (s *dashboardService) ClearFilters(ctx context.Context, sessionID string) (models.QueryState, error) {
	return s.update(ctx, sessionID, "clear_filters", func(q models.QueryState) (models.QueryState, error) {
		return q.WithoutFilters(), nil
	})
}

// View computes the current page of the session
func (s *dashboardService) View(ctx context.Context, sessionID string) (*ViewResult, error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	customers, err := s.customers.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}

	result := query.Run(customers, state)
	metrics.ObserveView()

	return &ViewResult{
		State:      state,
		Data:       result.Data,
		Pagination: result.Pagination,
	}, nil
}

// Matching returns every customer matching the session's search and filter, sorted, unpaginated
func (s *dashboardService) Matching(ctx context.Context, sessionID string) ([]models.Customer, models.QueryState, error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, models.QueryState{}, err
	}

	customers, err := s.customers.ListCustomers(ctx)
	if err != nil {
		return nil, models.QueryState{}, err
	}

	return query.FilterAndSort(customers, state), state, nil
}

// Refresh regenerates the collection and resets the session, like a page reload
func (s *dashboardService) Refresh(ctx context.Context, sessionID string) (*RefreshResult, error) {
	if _, err := s.sessions.Get(ctx, sessionID); err != nil {
		return nil, err
	}

	count, err := s.customers.Reseed(ctx)
	if err != nil {
		return nil, err
	}

	state := models.NewQueryState(s.itemsPerPage)
	if err := s.sessions.Save(ctx, sessionID, state); err != nil {
		return nil, fmt.Errorf("failed to reset session: %w", err)
	}

	s.logger.Info("dashboard refreshed",
		slog.String("session_id", sessionID),
		slog.Int("customers", count),
	)

	return &RefreshResult{Customers: count, State: state}, nil
}

// update loads the session state, applies one reducer and saves the result.
// A rejected reducer leaves the stored state untouched.
func (s *dashboardService) update(
	ctx context.Context,
	sessionID, action string,
	reduce func(models.QueryState) (models.QueryState, error),
) (models.QueryState, error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return models.QueryState{}, err
	}

	next, err := reduce(state)
	if err != nil {
		return models.QueryState{}, err
	}

	if err := s.sessions.Save(ctx, sessionID, next); err != nil {
		s.logger.Error("failed to save session state",
			slog.String("session_id", sessionID),
			slog.String("action", action),
			slog.String("error", err.Error()),
		)
		return models.QueryState{}, fmt.Errorf("failed to save session state: %w", err)
	}

	s.logger.Debug("session state updated",
		slog.String("session_id", sessionID),
		slog.String("action", action),
		slog.Int("current_page", next.CurrentPage),
	)

	return next, nil
}

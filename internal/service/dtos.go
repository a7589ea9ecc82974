package service

import (
	"github.com/Raymond9734/customer-dashboard-backend/internal/models"
)

// SessionResult represents a newly started dashboard session
type SessionResult struct {
	SessionID string            `json:"session_id"`
	State     models.QueryState `json:"state"`
}

// ViewResult represents one computed page of the customer list
type ViewResult struct {
	State      models.QueryState       `json:"state"`
	Data       []models.Customer       `json:"data"`
	Pagination models.PaginationResult `json:"pagination"`
}

// RefreshResult represents the outcome of a dashboard refresh
type RefreshResult struct {
	Customers int               `json:"customers"`
	State     models.QueryState `json:"state"`
}

// SearchRequest represents a request to change the search term
type SearchRequest struct {
	SearchTerm string `json:"search_term"`
}

// SortRequest represents a request to change the sorting
type SortRequest struct {
	SortBy    models.SortField `json:"sort_by"`
	SortOrder models.SortOrder `json:"sort_order"`
}

// Validate performs validation on the sort request
func (r *SortRequest) Validate() error {
	if r.SortBy == "" {
		return models.ErrInvalidInput("sort_by is required")
	}
	if r.SortOrder == "" {
		r.SortOrder = models.SortAsc
	}
	return nil
}

// ToggleSortRequest represents a click on a sortable column
type ToggleSortRequest struct {
	SortBy models.SortField `json:"sort_by"`
}

// PageRequest represents a request to move to a page
type PageRequest struct {
	Page int `json:"page"`
}

// PageSizeRequest represents a request to change the page size
type PageSizeRequest struct {
	ItemsPerPage int `json:"items_per_page"`
}

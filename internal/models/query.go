package models

import (
	"fmt"
	"strings"
)

// SortField names a customer field the list can be ordered by
type SortField string

// Sortable fields
const (
	SortByID               SortField = "id"
	SortByName             SortField = "name"
	SortByLevel            SortField = "level"
	SortByFavoriteMenu     SortField = "favorite_menu"
	SortByTotalTransaction SortField = "total_transaction"
	SortByCreatedAt        SortField = "created_at"
)

// SortOrder is the direction of a sort
type SortOrder string

// Sort directions
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Page size bounds accepted by SetItemsPerPage
const (
	DefaultItemsPerPage = 10
	MaxItemsPerPage     = 100
)

// IsValidSortField checks if the field can be sorted on
func IsValidSortField(field SortField) bool {
	switch field {
	case SortByID, SortByName, SortByLevel, SortByFavoriteMenu, SortByTotalTransaction, SortByCreatedAt:
		return true
	default:
		return false
	}
}

// IsValidSortOrder checks if the order is asc or desc
func IsValidSortOrder(order SortOrder) bool {
	return order == SortAsc || order == SortDesc
}

// FilterOptions narrows the displayed customer set.
// Nil bounds and empty strings mean "unrestricted".
type FilterOptions struct {
	Level          []Level `json:"level"`
	MinTransaction *int64  `json:"min_transaction,omitempty"`
	MaxTransaction *int64  `json:"max_transaction,omitempty"`
	StartDate      string  `json:"start_date,omitempty"`
	EndDate        string  `json:"end_date,omitempty"`
	FavoriteMenu   string  `json:"favorite_menu,omitempty"`
}

// Validate checks every criterion of the filter
func (f *FilterOptions) Validate() error {
	for _, l := range f.Level {
		if !IsValidLevel(l) {
			return ErrInvalidInput(fmt.Sprintf("invalid level: %s", l))
		}
	}
	if f.MinTransaction != nil && *f.MinTransaction < 0 {
		return ErrInvalidInput("min_transaction cannot be negative")
	}
	if f.MaxTransaction != nil && *f.MaxTransaction < 0 {
		return ErrInvalidInput("max_transaction cannot be negative")
	}
	if f.MinTransaction != nil && f.MaxTransaction != nil && *f.MinTransaction > *f.MaxTransaction {
		return ErrInvalidInput("min_transaction cannot exceed max_transaction")
	}
	if f.StartDate != "" {
		if _, err := ParseDate(f.StartDate); err != nil {
			return ErrInvalidInput(fmt.Sprintf("invalid start_date: %s (expected YYYY-MM-DD)", f.StartDate))
		}
	}
	if f.EndDate != "" {
		if _, err := ParseDate(f.EndDate); err != nil {
			return ErrInvalidInput(fmt.Sprintf("invalid end_date: %s (expected YYYY-MM-DD)", f.EndDate))
		}
	}
	if f.StartDate != "" && f.EndDate != "" && f.StartDate > f.EndDate {
		return ErrInvalidInput("start_date cannot be after end_date")
	}
	return nil
}

// HasLevel reports whether level passes the level criterion
func (f *FilterOptions) HasLevel(level Level) bool {
	if len(f.Level) == 0 {
		return true
	}
	for _, l := range f.Level {
		if l == level {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the filter
func (f *FilterOptions) Clone() *FilterOptions {
	if f == nil {
		return nil
	}
	c := *f
	c.Level = append([]Level(nil), f.Level...)
	if f.MinTransaction != nil {
		v := *f.MinTransaction
		c.MinTransaction = &v
	}
	if f.MaxTransaction != nil {
		v := *f.MaxTransaction
		c.MaxTransaction = &v
	}
	return &c
}

// QueryState is the per-session view state of the customer list
type QueryState struct {
	SearchTerm    string         `json:"search_term"`
	SortBy        SortField      `json:"sort_by,omitempty"`
	SortOrder     SortOrder      `json:"sort_order"`
	CurrentPage   int            `json:"current_page"`
	ItemsPerPage  int            `json:"items_per_page"`
	FilterOptions *FilterOptions `json:"filter_options,omitempty"`
}

// NewQueryState returns the initial view state
func NewQueryState(itemsPerPage int) QueryState {
	if itemsPerPage < 1 || itemsPerPage > MaxItemsPerPage {
		itemsPerPage = DefaultItemsPerPage
	}
	return QueryState{
		SortOrder:    SortAsc,
		CurrentPage:  1,
		ItemsPerPage: itemsPerPage,
	}
}

// WithSearchTerm replaces the search term and returns to the first page
func (q QueryState) WithSearchTerm(term string) QueryState {
	q.SearchTerm = term
	q.CurrentPage = 1
	return q
}

// WithSorting replaces the sort key and direction, keeping the page
func (q QueryState) WithSorting(field SortField, order SortOrder) (QueryState, error) {
	if !IsValidSortField(field) {
		return q, ErrInvalidInput(fmt.Sprintf("invalid sort_by: %s", field))
	}
	if !IsValidSortOrder(order) {
		return q, ErrInvalidInput(fmt.Sprintf("invalid sort_order: %s (must be 'asc' or 'desc')", order))
	}
	q.SortBy = field
	q.SortOrder = order
	return q, nil
}

// ToggleSort flips to desc when the field is already sorted asc,
// otherwise sorts the field asc
func (q QueryState) ToggleSort(field SortField) (QueryState, error) {
	order := SortAsc
	if q.SortBy == field && q.SortOrder == SortAsc {
		order = SortDesc
	}
	return q.WithSorting(field, order)
}

// WithCurrentPage moves to page. Pages past the end are allowed and show nothing.
func (q QueryState) WithCurrentPage(page int) (QueryState, error) {
	if page < 1 {
		return q, ErrInvalidInput(fmt.Sprintf("invalid page: %d (must be >= 1)", page))
	}
	q.CurrentPage = page
	return q, nil
}

// WithItemsPerPage replaces the page size and returns to the first page
func (q QueryState) WithItemsPerPage(n int) (QueryState, error) {
	if n < 1 || n > MaxItemsPerPage {
		return q, ErrInvalidInput(fmt.Sprintf("invalid items_per_page: %d (must be between 1 and %d)", n, MaxItemsPerPage))
	}
	q.ItemsPerPage = n
	q.CurrentPage = 1
	return q, nil
}

// WithFilterOptions replaces the active filter and returns to the first page
func (q QueryState) WithFilterOptions(opts FilterOptions) (QueryState, error) {
	if err := opts.Validate(); err != nil {
		return q, err
	}
	opts.FavoriteMenu = strings.TrimSpace(opts.FavoriteMenu)
	q.FilterOptions = opts.Clone()
	q.CurrentPage = 1
	return q, nil
}

// WithoutFilters drops the active filter and returns to the first page
func (q QueryState) WithoutFilters() QueryState {
	q.FilterOptions = nil
	q.CurrentPage = 1
	return q
}

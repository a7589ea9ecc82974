// Package query computes the customer list view: filter, then sort, then paginate.
// Every function is pure; nothing is cached between calls.
package query

import (
	"cmp"
	"slices"
	"strings"

	"github.com/Raymond9734/customer-dashboard-backend/internal/models"
)

// Result is one computed page of the customer list
type Result struct {
	Data       []models.Customer       `json:"data"`
	Pagination models.PaginationResult `json:"pagination"`
}

// Run applies the full pipeline for state over customers
func Run(customers []models.Customer, state models.QueryState) Result {
	sorted := FilterAndSort(customers, state)
	return Paginate(sorted, state.CurrentPage, state.ItemsPerPage)
}

// FilterAndSort returns every matching customer in display order, unpaginated
func FilterAndSort(customers []models.Customer, state models.QueryState) []models.Customer {
	filtered := Filter(customers, state.SearchTerm, state.FilterOptions)
	return Sort(filtered, state.SortBy, state.SortOrder)
}

// Filter keeps the customers matching the search term and the filter options.
// The input slice is not modified.
func Filter(customers []models.Customer, searchTerm string, opts *models.FilterOptions) []models.Customer {
	term := strings.ToLower(searchTerm)
	var menu string
	if opts != nil {
		menu = strings.ToLower(opts.FavoriteMenu)
	}

	out := make([]models.Customer, 0, len(customers))
	for _, c := range customers {
		if !strings.Contains(strings.ToLower(c.Name), term) {
			continue
		}
		if opts != nil && !matches(c, opts, menu) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matches(c models.Customer, opts *models.FilterOptions, menu string) bool {
	if !opts.HasLevel(c.Level) {
		return false
	}
	if opts.MinTransaction != nil && c.TotalTransaction < *opts.MinTransaction {
		return false
	}
	if opts.MaxTransaction != nil && c.TotalTransaction > *opts.MaxTransaction {
		return false
	}
	// created_at and the bounds share the YYYY-MM-DD layout, so string order is date order
	if opts.StartDate != "" && c.CreatedAt < opts.StartDate {
		return false
	}
	if opts.EndDate != "" && c.CreatedAt > opts.EndDate {
		return false
	}
	if menu != "" && !strings.Contains(strings.ToLower(c.FavoriteMenu), menu) {
		return false
	}
	return true
}

// Sort orders a copy of customers by field. An empty field keeps the input order.
// Ties keep their input order.
func Sort(customers []models.Customer, field models.SortField, order models.SortOrder) []models.Customer {
	out := slices.Clone(customers)
	if field == "" {
		return out
	}

	compare := comparator(field)
	slices.SortStableFunc(out, func(a, b models.Customer) int {
		if order == models.SortDesc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return out
}

func comparator(field models.SortField) func(a, b models.Customer) int {
	switch field {
	case models.SortByTotalTransaction:
		return func(a, b models.Customer) int {
			return cmp.Compare(a.TotalTransaction, b.TotalTransaction)
		}
	case models.SortByCreatedAt:
		return func(a, b models.Customer) int {
			return strings.Compare(a.CreatedAt, b.CreatedAt)
		}
	default:
		key := stringKey(field)
		return func(a, b models.Customer) int {
			return strings.Compare(strings.ToLower(key(a)), strings.ToLower(key(b)))
		}
	}
}

func stringKey(field models.SortField) func(models.Customer) string {
	switch field {
	case models.SortByName:
		return func(c models.Customer) string { return c.Name }
	case models.SortByLevel:
		return func(c models.Customer) string { return string(c.Level) }
	case models.SortByFavoriteMenu:
		return func(c models.Customer) string { return c.FavoriteMenu }
	default:
		return func(c models.Customer) string { return c.ID }
	}
}

// Paginate slices out the 1-based page. Pages outside the range are empty.
func Paginate(customers []models.Customer, page, pageSize int) Result {
	if pageSize < 1 {
		pageSize = models.DefaultItemsPerPage
	}
	if page < 1 {
		page = 1
	}

	total := len(customers)
	result := Result{
		Data:       []models.Customer{},
		Pagination: models.NewPaginationResult(page, pageSize, int64(total)),
	}
	if !models.PageInRange(page, result.Pagination.TotalPages) {
		return result
	}

	start := models.CalculateOffset(page, pageSize)
	end := min(start+pageSize, total)
	result.Data = slices.Clone(customers[start:end])
	return result
}

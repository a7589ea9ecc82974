package models

// PaginationResult holds pagination metadata
type PaginationResult struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

// NewPaginationResult creates a pagination result.
// From and To are the 1-based positions shown on the page, both 0 when it is empty.
func NewPaginationResult(page, pageSize int, totalCount int64) PaginationResult {
	totalPages := CalculateTotalPages(int(totalCount), pageSize)

	result := PaginationResult{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}

	if PageInRange(page, totalPages) {
		offset := CalculateOffset(page, pageSize)
		result.From = offset + 1
		result.To = min(offset+pageSize, int(totalCount))
	}

	return result
}

// CalculateTotalPages returns the number of pages needed for total items
func CalculateTotalPages(total, pageSize int) int {
	pages := total / pageSize
	if total%pageSize > 0 {
		pages++
	}
	return pages
}

// PageInRange reports whether page holds any items. It never multiplies,
// so any page number is safe to test.
func PageInRange(page, totalPages int) bool {
	return page >= 1 && page-1 < totalPages
}

// CalculateOffset calculates the slice offset of a page.
// Only call it for pages within PageInRange.
func CalculateOffset(page, pageSize int) int {
	return (page - 1) * pageSize
}

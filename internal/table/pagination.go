package table

// PaginationMeta describes the page a controller currently shows.
// CurrentPage is always the clamped page, never the raw stored value.
//
//nolint:revive // PaginationMeta is the canonical name for this exported type.
type PaginationMeta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewPaginationMeta derives pagination metadata from a total item count and the raw page state.
func NewPaginationMeta(totalItems, page, pageSize int) PaginationMeta {
	pageSize = normalizePageSize(pageSize)
	totalPages := TotalPages(totalItems, pageSize)
	currentPage := ClampPage(page, totalPages)

	return PaginationMeta{
		CurrentPage: currentPage,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		HasPrevious: currentPage > 1,
		HasNext:     currentPage < totalPages,
	}
}

// TotalPages returns ceil(totalItems / pageSize), or 0 for an empty collection.
func TotalPages(totalItems, pageSize int) int {
	if totalItems <= 0 {
		return 0
	}
	pageSize = normalizePageSize(pageSize)
	return (totalItems-1)/pageSize + 1
}

// ClampPage forces page into [1, max(totalPages, 1)].
func ClampPage(page, totalPages int) int {
	return min(max(1, page), max(totalPages, 1))
}

// Paginate returns the slice of sorted that belongs on page. The page is clamped first,
// so an out-of-range page yields the last page instead of an empty or invalid slice.
// The result shares its backing array with sorted.
func Paginate[T any](sorted []T, page, pageSize int) []T {
	pageSize = normalizePageSize(pageSize)
	page = ClampPage(page, TotalPages(len(sorted), pageSize))

	start := (page - 1) * pageSize
	if start >= len(sorted) {
		return sorted[len(sorted):]
	}
	end := start + min(pageSize, len(sorted)-start)
	return sorted[start:end]
}

// normalizePageSize maps anything below MinPageSize to MinPageSize.
func normalizePageSize(pageSize int) int {
	if pageSize < MinPageSize {
		return MinPageSize
	}
	return pageSize
}

package table

import (
	"golang.org/x/text/language"
)

// Page size limits and defaults.
const (
	DefaultPageSize = 10
	MinPageSize     = 1
)

// Option configures a Controller at construction time.
type Option func(*settings)

type settings struct {
	pageSize int
	sort     SortSpec
	locale   language.Tag
}

// WithPageSize sets the initial page size. Values below MinPageSize fall back to DefaultPageSize.
func WithPageSize(size int) Option {
	return func(s *settings) {
		if size >= MinPageSize {
			s.pageSize = size
		}
	}
}

// WithSort sets the initial sort. An empty direction means ascending.
func WithSort(key string, direction Direction) Option {
	return func(s *settings) {
		if direction == DirectionNone {
			direction = DirectionAsc
		}
		s.sort = SortSpec{Key: key, Direction: direction}
	}
}

// WithLocale sets the collation locale used for string comparison.
func WithLocale(tag language.Tag) Option {
	return func(s *settings) {
		s.locale = tag
	}
}

// Controller holds sort and page state for one collection and derives the sorted and paged views.
type Controller[T any] struct {
	data   []T
	fields Fields[T]
	locale language.Tag

	spec     SortSpec
	page     int
	pageSize int

	// sorted caches Sort(data, spec); nil after any change that invalidates it.
	sorted []T
	valid  bool
}

// New creates a controller over data. The controller never modifies data or its records.
func New[T any](data []T, fields Fields[T], opts ...Option) *Controller[T] {
	s := settings{
		pageSize: DefaultPageSize,
		locale:   language.English,
	}
	for _, opt := range opts {
		opt(&s)
	}

	return &Controller[T]{
		data:     data,
		fields:   fields,
		locale:   s.locale,
		spec:     s.sort,
		page:     1,
		pageSize: s.pageSize,
	}
}

// SetData replaces the collection. The current page is kept and clamped on the next read.
func (c *Controller[T]) SetData(data []T) {
	c.data = data
	c.invalidate()
}

// Fields returns the field extractors the controller sorts with.
func (c *Controller[T]) Fields() Fields[T] {
	return c.fields
}

// SortConfig returns the active sort.
func (c *Controller[T]) SortConfig() SortSpec {
	return c.spec
}

// ToggleSort cycles the sort for key (see SortSpec.Toggle) and returns to the first page.
func (c *Controller[T]) ToggleSort(key string) {
	c.spec = c.spec.Toggle(key)
	c.page = 1
	c.invalidate()
}

// SetSort replaces the sort outright and returns to the first page. A spec with an
// empty key or no direction clears sorting.
func (c *Controller[T]) SetSort(spec SortSpec) {
	if !spec.Active() {
		spec = SortSpec{}
	}
	c.spec = spec
	c.page = 1
	c.invalidate()
}

// AllSortedRows returns the whole collection in sort order, ignoring pagination.
// Callers must not modify the returned slice.
func (c *Controller[T]) AllSortedRows() []T {
	if !c.valid {
		c.sorted = Sort(c.data, c.fields, c.spec, c.locale)
		c.valid = true
	}
	return c.sorted
}

// CurrentPageRows returns the rows on the current (clamped) page.
// Callers must not modify the returned slice.
func (c *Controller[T]) CurrentPageRows() []T {
	return Paginate(c.AllSortedRows(), c.page, c.pageSize)
}

// PaginationConfig returns the derived pagination metadata.
func (c *Controller[T]) PaginationConfig() PaginationMeta {
	return NewPaginationMeta(len(c.data), c.page, c.pageSize)
}

// CanGoNext reports whether a page follows the current one.
func (c *Controller[T]) CanGoNext() bool {
	return c.PaginationConfig().HasNext
}

// CanGoPrevious reports whether a page precedes the current one.
func (c *Controller[T]) CanGoPrevious() bool {
	return c.PaginationConfig().HasPrevious
}

// GoToFirstPage moves to page 1.
func (c *Controller[T]) GoToFirstPage() {
	c.page = 1
}

// GoToLastPage moves to the last page. With no rows this stores 0, which reads back as page 1.
func (c *Controller[T]) GoToLastPage() {
	c.page = c.totalPages()
}

// GoToNextPage advances one page, stopping at the last page.
func (c *Controller[T]) GoToNextPage() {
	c.page = min(c.currentPage()+1, c.totalPages())
}

// GoToPreviousPage goes back one page, stopping at page 1.
func (c *Controller[T]) GoToPreviousPage() {
	c.page = max(c.currentPage()-1, 1)
}

// SetPage stores page as-is. Out-of-range values are clamped when read.
func (c *Controller[T]) SetPage(page int) {
	c.page = page
}

// SetPageSize changes the page size and returns to the first page.
// Values below MinPageSize are raised to MinPageSize.
func (c *Controller[T]) SetPageSize(size int) {
	c.pageSize = normalizePageSize(size)
	c.page = 1
}

func (c *Controller[T]) currentPage() int {
	return ClampPage(c.page, c.totalPages())
}

func (c *Controller[T]) totalPages() int {
	return TotalPages(len(c.data), c.pageSize)
}

func (c *Controller[T]) invalidate() {
	c.sorted = nil
	c.valid = false
}

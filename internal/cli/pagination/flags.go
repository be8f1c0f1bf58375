package pagination

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/pipewatch/internal/table"
)

// Sort orders accepted after the colon in --sort.
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"

	sortPartsMax = 2
)

// Validation errors.
var (
	ErrInvalidPage       = errors.New("page must be >= 1")
	ErrInvalidPageSize   = errors.New("page-size must be >= 1")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'throughput:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrInvalidSortField  = errors.New("invalid sort field")
)

// Params holds the listing flags. Zero Page or PageSize means "not set".
type Params struct {
	Page     int
	PageSize int
	Sort     string
	All      bool
}

// Controller is the subset of table.Controller that Apply drives.
type Controller interface {
	SetPageSize(size int)
	SetSort(spec table.SortSpec)
	SetPage(page int)
}

// AddFlags registers the listing flags on cmd, bound to p.
func AddFlags(cmd *cobra.Command, p *Params, sortHelp string) {
	cmd.Flags().IntVar(&p.Page, "page", 0, "page number to show (1-based)")
	cmd.Flags().IntVar(&p.PageSize, "page-size", 0, "rows per page (default from config)")
	cmd.Flags().StringVar(&p.Sort, "sort", "", "sort as field or field:asc|desc ("+sortHelp+")")
	cmd.Flags().BoolVar(&p.All, "all", false, "show every row, ignoring pagination")
}

// ParseSort parses "field" or "field:order". An empty string means unsorted and
// returns table.DirectionNone.
//
//nolint:nonamedreturns // Named returns document the pair.
func ParseSort(sortStr string) (field string, direction table.Direction, err error) {
	if strings.TrimSpace(sortStr) == "" {
		return "", table.DirectionNone, nil
	}

	order := SortOrderAsc
	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", table.DirectionNone, fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", table.DirectionNone, ErrEmptySortField
	}

	switch order {
	case SortOrderAsc:
		return field, table.DirectionAsc, nil
	case SortOrderDesc:
		return field, table.DirectionDesc, nil
	default:
		return "", table.DirectionNone, fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}
}

// Validate checks bounds and that the sort field is one of validFields.
func (p Params) Validate(validFields []string) error {
	if p.Page < 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidPage, p.Page)
	}
	if p.PageSize < 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidPageSize, p.PageSize)
	}

	field, _, err := ParseSort(p.Sort)
	if err != nil {
		return err
	}
	if field == "" {
		return nil
	}
	for _, valid := range validFields {
		if field == valid {
			return nil
		}
	}
	return fmt.Errorf("%w %q: valid fields are %s", ErrInvalidSortField, field, strings.Join(validFields, ", "))
}

// Apply configures ctrl from p: page size first, then sort, then page, since the
// first two reset the page.
func (p Params) Apply(ctrl Controller) error {
	field, direction, err := ParseSort(p.Sort)
	if err != nil {
		return err
	}

	if p.PageSize > 0 {
		ctrl.SetPageSize(p.PageSize)
	}
	if field != "" {
		ctrl.SetSort(table.SortSpec{Key: field, Direction: direction})
	}
	if p.Page > 0 {
		ctrl.SetPage(p.Page)
	}
	return nil
}

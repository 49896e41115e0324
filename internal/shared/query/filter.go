// Package query holds the paging and sorting parts shared by repository filters.
package query

import (
	"strings"

	"github.com/licensehub/licensehub/internal/shared/constants"
)

type PageFilter struct {
	Page     int
	PageSize int
}

func (f PageFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

func (f PageFilter) Limit() int {
	if f.PageSize <= 0 {
		return constants.DefaultPageSize
	}
	if f.PageSize > constants.MaxPageSize {
		return constants.MaxPageSize
	}
	return f.PageSize
}

type SortFilter struct {
	SortBy    string
	SortOrder string
}

func (f SortFilter) IsDescending() bool {
	return strings.EqualFold(f.SortOrder, "desc")
}

// Direction returns "ASC" or "DESC", descending unless asc was asked for.
func (f SortFilter) Direction() string {
	if strings.EqualFold(f.SortOrder, "asc") {
		return "ASC"
	}
	return "DESC"
}

type BaseFilter struct {
	PageFilter
	SortFilter
}

type FilterOption func(*BaseFilter)

func WithPage(page, pageSize int) FilterOption {
	return func(f *BaseFilter) {
		f.Page = page
		f.PageSize = pageSize
	}
}

func WithSort(sortBy, sortOrder string) FilterOption {
	return func(f *BaseFilter) {
		f.SortBy = sortBy
		f.SortOrder = sortOrder
	}
}

func NewBaseFilter(opts ...FilterOption) BaseFilter {
	f := BaseFilter{
		PageFilter: PageFilter{Page: constants.DefaultPage, PageSize: constants.DefaultPageSize},
		SortFilter: SortFilter{SortOrder: "desc"},
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

package data

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPagination marks pagination values the constructor refuses.
var ErrInvalidPagination = errors.New("invalid pagination")

const (
	SortAscending  = "asc"
	SortDescending = "desc"
)

// BookFilter holds the normalized listing predicates. Title and Author are
// trimmed substrings where the empty string means "unspecified"; Genre is the
// zero genre when unspecified. Active is tri-state: nil disables the active
// predicate entirely, which is how callers opt in to seeing soft-deleted rows.
type BookFilter struct {
	Title  string
	Author string
	Genre  BookGenre
	Active *bool
}

// NewBookFilter normalizes the free-text components. Normalization is
// idempotent: whitespace-only input collapses to unspecified.
func NewBookFilter(title, author string, genre BookGenre, active *bool) BookFilter {
	return BookFilter{
		Title:  strings.TrimSpace(title),
		Author: strings.TrimSpace(author),
		Genre:  genre,
		Active: active,
	}
}

// PaginationQuery selects a deterministic window over the filtered set.
// Page is 0-based at this layer; delivery adapters own any external 1-based
// convention. SortBy names an external field, checked against the store's
// whitelist when the query runs.
type PaginationQuery struct {
	Page          int
	PageSize      int
	SortBy        string
	SortDirection string
}

// NewPaginationQuery validates the window and back-fills blanks with defaults
// (sortBy "title", direction "asc"). Direction is case-insensitive.
func NewPaginationQuery(page, pageSize int, sortBy, sortDirection string) (PaginationQuery, error) {
	if page < 0 {
		return PaginationQuery{}, fmt.Errorf("%w: page number cannot be negative", ErrInvalidPagination)
	}
	if pageSize < 1 {
		return PaginationQuery{}, fmt.Errorf("%w: page size must be at least 1", ErrInvalidPagination)
	}
	if strings.TrimSpace(sortBy) == "" {
		sortBy = "title"
	}
	sortDirection = strings.ToLower(strings.TrimSpace(sortDirection))
	if sortDirection == "" {
		sortDirection = SortAscending
	}
	if sortDirection != SortAscending && sortDirection != SortDescending {
		return PaginationQuery{}, fmt.Errorf("%w: sort direction must be asc or desc", ErrInvalidPagination)
	}
	return PaginationQuery{
		Page:          page,
		PageSize:      pageSize,
		SortBy:        sortBy,
		SortDirection: sortDirection,
	}, nil
}

// Limit returns the maximum number of rows for the window.
func (q PaginationQuery) Limit() int {
	return q.PageSize
}

// Offset returns the number of rows to skip before the window.
func (q PaginationQuery) Offset() int {
	return q.Page * q.PageSize
}

// PaginatedResult is the returned window plus the total count over the whole
// filtered set. Page and PageSize echo the query that produced it.
type PaginatedResult[T any] struct {
	Content       []T
	TotalElements int64
	Page          int
	PageSize      int
}

// TotalPages derives the page count from the total; zero when nothing matched.
func (r PaginatedResult[T]) TotalPages() int {
	if r.TotalElements == 0 {
		return 0
	}
	pages := r.TotalElements / int64(r.PageSize)
	if r.TotalElements%int64(r.PageSize) != 0 {
		pages++
	}
	return int(pages)
}

package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jvillodre/librarium/data"
	"github.com/jvillodre/librarium/data/dto"
)

// toBookResponse maps a domain record to its API representation with
// hypermedia links. The deactivate link only appears while the record is
// still active; deactivating twice is legal but pointless.
func toBookResponse(book *data.Book) dto.BookResponse {
	links := []dto.Link{
		{Rel: "self", Href: fmt.Sprintf("/v1/books/%d", book.ID), Method: http.MethodGet},
		{Rel: "update", Href: fmt.Sprintf("/v1/books/%d", book.ID), Method: http.MethodPut},
	}
	if book.Active {
		links = append(links, dto.Link{Rel: "deactivate", Href: fmt.Sprintf("/v1/books/%d", book.ID), Method: http.MethodDelete})
	}
	return dto.BookResponse{
		ID:              book.ID,
		Title:           book.Title,
		Author:          book.Author,
		BookGenre:       book.Genre.DisplayName(),
		Pages:           book.Pages,
		PublicationYear: book.PublicationYear,
		EditorialID:     book.EditorialID,
		Active:          book.Active,
		CreatedAt:       utcTimestamp(book.CreatedAt),
		UpdatedAt:       utcTimestamp(book.UpdatedAt),
		Links:           links,
	}
}

// toBooksResponse maps a result window to the listing envelope. All page
// numbers on this surface, both in the pagination block and in the navigation
// links, are 1-based.
func toBooksResponse(result data.PaginatedResult[data.Book]) dto.BooksResponse {
	books := make([]dto.BookResponse, 0, len(result.Content))
	for i := range result.Content {
		books = append(books, toBookResponse(&result.Content[i]))
	}

	page := result.Page + 1
	totalPages := result.TotalPages()

	listHref := func(p int) string {
		return fmt.Sprintf("/v1/books?page=%d&pageSize=%d", p, result.PageSize)
	}
	links := []dto.Link{
		{Rel: "self", Href: listHref(page), Method: http.MethodGet},
		{Rel: "first", Href: listHref(1), Method: http.MethodGet},
	}
	if totalPages > 0 {
		links = append(links, dto.Link{Rel: "last", Href: listHref(totalPages), Method: http.MethodGet})
	}
	if page < totalPages {
		links = append(links, dto.Link{Rel: "next", Href: listHref(page + 1), Method: http.MethodGet})
	}
	if page > 1 {
		links = append(links, dto.Link{Rel: "prev", Href: listHref(page - 1), Method: http.MethodGet})
	}

	return dto.BooksResponse{
		Books: books,
		Pagination: dto.Pagination{
			Number:        page,
			Size:          result.PageSize,
			TotalElements: result.TotalElements,
			TotalPages:    totalPages,
			Timestamp:     utcTimestamp(time.Now()),
		},
		Links: links,
	}
}

package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jvillodre/librarium/data"
	"github.com/jvillodre/librarium/data/dto"
	"github.com/jvillodre/librarium/internal/validator"
	"github.com/jvillodre/librarium/service"
)

// bookFromRequest maps a request body onto a domain record and validates it.
// On failure the validation response has already been written.
func (h *Handler) bookFromRequest(w http.ResponseWriter, r *http.Request, req *dto.BookRequest) (*data.Book, bool) {
	v := validator.New()
	genre, err := data.ParseBookGenre(req.BookGenre)
	if err != nil {
		v.AddError("bookGenre", "must be a valid genre")
	}
	book := &data.Book{
		Title:           req.Title,
		Author:          req.Author,
		Genre:           genre,
		Pages:           req.Pages,
		PublicationYear: req.PublicationYear,
		EditorialID:     req.EditorialID,
	}
	if data.ValidateBook(v, book); !v.Valid() {
		h.failedValidationResponse(w, r, v.Errors)
		return nil, false
	}
	return book, true
}

// createBookHandler handles POST /v1/books. A new record always starts active.
func (h *Handler) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var req dto.BookRequest
	err := h.decodeJSON(w, r, &req)
	if err != nil {
		h.invalidJSONResponse(w, r, err)
		return
	}
	book, ok := h.bookFromRequest(w, r, &req)
	if !ok {
		return
	}
	book, err = h.service.SaveBook(book)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidArgument):
			h.invalidCriteriaResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/books/%d", book.ID))
	err = h.encodeJSON(w, http.StatusCreated, toBookResponse(book), headers)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// showBookHandler handles GET /v1/books/:id. Soft-deleted records read as absent.
func (h *Handler) showBookHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := h.readIDParam(r)
	if err != nil {
		h.invalidParameterResponse(w, r, "id", h.rawParam(r, "id"))
		return
	}
	book, err := h.service.GetActiveBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.bookNotFoundResponse(w, r, bookID)
		case errors.Is(err, service.ErrInvalidArgument):
			h.invalidCriteriaResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, toBookResponse(book), nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// updateBookHandler handles PUT /v1/books/:id as a full replacement. The path
// id is authoritative; any id in the body is ignored.
func (h *Handler) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := h.readIDParam(r)
	if err != nil {
		h.invalidParameterResponse(w, r, "id", h.rawParam(r, "id"))
		return
	}
	var req dto.BookRequest
	err = h.decodeJSON(w, r, &req)
	if err != nil {
		h.invalidJSONResponse(w, r, err)
		return
	}
	book, ok := h.bookFromRequest(w, r, &req)
	if !ok {
		return
	}
	book.ID = bookID
	book, err = h.service.UpdateBook(book)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.bookNotFoundResponse(w, r, bookID)
		case errors.Is(err, service.ErrInvalidArgument):
			h.invalidCriteriaResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, toBookResponse(book), nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// deleteBookHandler handles DELETE /v1/books/:id. Deletion is a soft delete
// and is idempotent on already-inactive records.
func (h *Handler) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := h.readIDParam(r)
	if err != nil {
		h.invalidParameterResponse(w, r, "id", h.rawParam(r, "id"))
		return
	}
	err = h.service.DeactivateBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.bookNotFoundResponse(w, r, bookID)
		case errors.Is(err, service.ErrInvalidArgument):
			h.invalidCriteriaResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listBooksHandler handles GET /v1/books. The page parameter is 1-based on
// this surface and translated to the 0-based window used internally.
func (h *Handler) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	page, err := h.readInt(qs, "page", 1)
	if err != nil {
		h.invalidParameterResponse(w, r, "page", qs.Get("page"))
		return
	}
	pageSize, err := h.readInt(qs, "pageSize", 10)
	if err != nil {
		h.invalidParameterResponse(w, r, "pageSize", qs.Get("pageSize"))
		return
	}
	sortBy := h.readString(qs, "sortBy", "id")
	sortDirection := h.readString(qs, "sortDirection", "ASC")

	genre, err := data.ParseBookGenre(h.readString(qs, "genre", ""))
	if err != nil {
		h.invalidCriteriaResponse(w, r, err)
		return
	}
	active, err := h.readActive(qs, "active")
	if err != nil {
		h.invalidParameterResponse(w, r, "active", qs.Get("active"))
		return
	}
	filter := data.NewBookFilter(h.readString(qs, "title", ""), h.readString(qs, "author", ""), genre, active)

	if page < 1 {
		h.invalidCriteriaResponse(w, r, errors.New("invalid pagination: page number must be at least 1"))
		return
	}
	pagination, err := data.NewPaginationQuery(page-1, pageSize, sortBy, sortDirection)
	if err != nil {
		h.invalidCriteriaResponse(w, r, err)
		return
	}

	result, err := h.service.ListBooks(filter, pagination)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidArgument):
			h.invalidCriteriaResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, toBooksResponse(result), nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

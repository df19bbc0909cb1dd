package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/jvillodre/librarium/data"
	"github.com/jvillodre/librarium/internal/validator"
	"github.com/jvillodre/librarium/service"
)

// bookForm carries raw form input back to the template along with any
// validation messages, so the user never loses what they typed.
type bookForm struct {
	ID              int64
	Title           string
	Author          string
	Genre           string
	Pages           string
	PublicationYear string
	EditorialID     string
	Errors          map[string]string
}

type bookFormPage struct {
	Form       bookForm
	IsNew      bool
	Genres     []data.BookGenre
	Editorials []data.Editorial
}

type bookListPage struct {
	Books          []data.Book
	Page           int
	PageDisplay    int
	PageSize       int
	TotalElements  int64
	TotalPages     int
	HasPrev        bool
	HasNext        bool
	PrevPage       int
	NextPage       int
	Title          string
	Author         string
	Genre          string
	Active         string
	SortBy         string
	SortDirection  string
	FilterQuery    string
	Genres         []data.BookGenre
	SuccessMessage string
}

type bookDetailPage struct {
	Book      *data.Book
	Editorial *data.Editorial
}

type errorPage struct {
	Status  int
	Message string
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.render(w, r, status, "error", errorPage{Status: status, Message: message})
}

// redirectWithMessage sends the post-mutation redirect back to the listing
// with a flash message in the query string.
func (h *Handler) redirectWithMessage(w http.ResponseWriter, r *http.Request, message string) {
	http.Redirect(w, r, "/ui/books?successMessage="+url.QueryEscape(message), http.StatusSeeOther)
}

// listBooksPage handles GET /ui/books. Unlike the JSON API, the page
// parameter on this surface is 0-based and passes straight through.
func (h *Handler) listBooksPage(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	page, err := h.readInt(qs, "page", 0)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "The page parameter must be an integer")
		return
	}
	pageSize, err := h.readInt(qs, "pageSize", 10)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "The pageSize parameter must be an integer")
		return
	}
	sortBy := h.readString(qs, "sortBy", "id")
	sortDirection := h.readString(qs, "sortDirection", "asc")

	rawGenre := h.readString(qs, "genre", "")
	genre, err := data.ParseBookGenre(rawGenre)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, fmt.Sprintf("Unknown genre %q", rawGenre))
		return
	}
	active, err := h.readActive(qs, "active")
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "The active parameter must be true, false or all")
		return
	}
	filter := data.NewBookFilter(h.readString(qs, "title", ""), h.readString(qs, "author", ""), genre, active)

	pagination, err := data.NewPaginationQuery(page, pageSize, sortBy, sortDirection)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.ListBooks(filter, pagination)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidArgument):
			h.renderError(w, r, http.StatusBadRequest, err.Error())
		default:
			h.logError(r, err)
			h.renderError(w, r, http.StatusInternalServerError, "An unexpected error occurred while processing the request")
		}
		return
	}

	// Query fragment re-applied by the pagination and sort links so the
	// current filters survive navigation.
	fq := url.Values{}
	if filter.Title != "" {
		fq.Set("title", filter.Title)
	}
	if filter.Author != "" {
		fq.Set("author", filter.Author)
	}
	if filter.Genre != "" {
		fq.Set("genre", string(filter.Genre))
	}
	activeValue := qs.Get("active")
	if activeValue != "" {
		fq.Set("active", activeValue)
	}
	filterQuery := fq.Encode()
	if filterQuery != "" {
		filterQuery = "&" + filterQuery
	}

	h.render(w, r, http.StatusOK, "list", bookListPage{
		Books:          result.Content,
		Page:           result.Page,
		PageDisplay:    result.Page + 1,
		PageSize:       result.PageSize,
		TotalElements:  result.TotalElements,
		TotalPages:     result.TotalPages(),
		HasPrev:        result.Page > 0,
		HasNext:        result.Page+1 < result.TotalPages(),
		PrevPage:       result.Page - 1,
		NextPage:       result.Page + 1,
		Title:          filter.Title,
		Author:         filter.Author,
		Genre:          string(filter.Genre),
		Active:         activeValue,
		SortBy:         pagination.SortBy,
		SortDirection:  pagination.SortDirection,
		FilterQuery:    filterQuery,
		Genres:         data.Genres(),
		SuccessMessage: qs.Get("successMessage"),
	})
}

// showBookPage handles GET /ui/books/:id. The "new" segment is dispatched
// here as well because the router cannot hold it next to the :id route.
func (h *Handler) showBookPage(w http.ResponseWriter, r *http.Request) {
	if h.rawParam(r, "id") == "new" {
		h.newBookPage(w, r)
		return
	}
	bookID, err := h.readIDParam(r)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "The book id must be a positive integer")
		return
	}
	book, err := h.service.GetActiveBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.renderError(w, r, http.StatusNotFound, fmt.Sprintf("Book with id %d not found", bookID))
		default:
			h.logError(r, err)
			h.renderError(w, r, http.StatusInternalServerError, "An unexpected error occurred while processing the request")
		}
		return
	}
	page := bookDetailPage{Book: book}
	if book.EditorialID != 0 {
		editorial, err := h.service.GetEditorial(book.EditorialID)
		if err == nil {
			page.Editorial = editorial
		}
	}
	h.render(w, r, http.StatusOK, "detail", page)
}

// newBookPage renders the empty creation form.
func (h *Handler) newBookPage(w http.ResponseWriter, r *http.Request) {
	editorials, err := h.service.ListEditorials()
	if err != nil {
		h.logError(r, err)
		h.renderError(w, r, http.StatusInternalServerError, "An unexpected error occurred while processing the request")
		return
	}
	h.render(w, r, http.StatusOK, "form", bookFormPage{
		Form:       bookForm{Errors: map[string]string{}},
		IsNew:      true,
		Genres:     data.Genres(),
		Editorials: editorials,
	})
}

// editBookPage handles GET /ui/books/:id/edit with the form prefilled from
// the stored record.
func (h *Handler) editBookPage(w http.ResponseWriter, r *http.Request) {
	bookID, err := h.readIDParam(r)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "The book id must be a positive integer")
		return
	}
	book, err := h.service.GetActiveBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.renderError(w, r, http.StatusNotFound, fmt.Sprintf("Book with id %d not found", bookID))
		default:
			h.logError(r, err)
			h.renderError(w, r, http.StatusInternalServerError, "An unexpected error occurred while processing the request")
		}
		return
	}
	editorials, err := h.service.ListEditorials()
	if err != nil {
		h.logError(r, err)
		h.renderError(w, r, http.StatusInternalServerError, "An unexpected error occurred while processing the request")
		return
	}
	form := bookForm{
		ID:     book.ID,
		Title:  book.Title,
		Author: book.Author,
		Genre:  string(book.Genre),
		Errors: map[string]string{},
	}
	if book.Pages != 0 {
		form.Pages = strconv.Itoa(int(book.Pages))
	}
	if book.PublicationYear != 0 {
		form.PublicationYear = strconv.Itoa(int(book.PublicationYear))
	}
	if book.EditorialID != 0 {
		form.EditorialID = strconv.FormatInt(book.EditorialID, 10)
	}
	h.render(w, r, http.StatusOK, "form", bookFormPage{
		Form:       form,
		IsNew:      false,
		Genres:     data.Genres(),
		Editorials: editorials,
	})
}

// bookFromForm parses and validates the submitted form. The raw input comes
// back in the form struct so failed submissions re-render with it intact.
func (h *Handler) bookFromForm(r *http.Request) (*data.Book, bookForm, *validator.Validator) {
	form := bookForm{
		Title:           strings.TrimSpace(r.PostFormValue("title")),
		Author:          strings.TrimSpace(r.PostFormValue("author")),
		Genre:           r.PostFormValue("genre"),
		Pages:           strings.TrimSpace(r.PostFormValue("pages")),
		PublicationYear: strings.TrimSpace(r.PostFormValue("publicationYear")),
		EditorialID:     r.PostFormValue("editorialId"),
		Errors:          map[string]string{},
	}
	v := validator.New()

	genre, err := data.ParseBookGenre(form.Genre)
	if err != nil {
		v.AddError("genre", "must be a valid genre")
	}
	book := &data.Book{
		Title:  form.Title,
		Author: form.Author,
		Genre:  genre,
	}
	if form.Pages != "" {
		pages, err := strconv.ParseInt(form.Pages, 10, 32)
		if err != nil {
			v.AddError("pages", "must be an integer")
		} else {
			book.Pages = int32(pages)
		}
	}
	if form.PublicationYear != "" {
		year, err := strconv.ParseInt(form.PublicationYear, 10, 32)
		if err != nil {
			v.AddError("publicationYear", "must be an integer")
		} else {
			book.PublicationYear = int32(year)
		}
	}
	if form.EditorialID != "" {
		editorialID, err := strconv.ParseInt(form.EditorialID, 10, 64)
		if err != nil {
			v.AddError("editorialId", "must be an integer")
		} else {
			book.EditorialID = editorialID
		}
	}
	data.ValidateBook(v, book)
	form.Errors = v.Errors
	return book, form, v
}

// rerenderForm shows the form again with validation messages.
func (h *Handler) rerenderForm(w http.ResponseWriter, r *http.Request, form bookForm, isNew bool) {
	editorials, err := h.service.ListEditorials()
	if err != nil {
		h.logError(r, err)
		h.renderError(w, r, http.StatusInternalServerError, "An unexpected error occurred while processing the request")
		return
	}
	h.render(w, r, http.StatusUnprocessableEntity, "form", bookFormPage{
		Form:       form,
		IsNew:      isNew,
		Genres:     data.Genres(),
		Editorials: editorials,
	})
}

// createBookForm handles POST /ui/books.
func (h *Handler) createBookForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "The submitted form could not be parsed")
		return
	}
	book, form, v := h.bookFromForm(r)
	if !v.Valid() {
		h.rerenderForm(w, r, form, true)
		return
	}
	_, err := h.service.SaveBook(book)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidArgument):
			form.Errors["editorialId"] = err.Error()
			h.rerenderForm(w, r, form, true)
		default:
			h.logError(r, err)
			h.renderError(w, r, http.StatusInternalServerError, "An unexpected error occurred while processing the request")
		}
		return
	}
	h.redirectWithMessage(w, r, "Book created successfully")
}

// updateBookForm handles POST /ui/books/:id. The path id wins over anything
// in the form body.
func (h *Handler) updateBookForm(w http.ResponseWriter, r *http.Request) {
	bookID, err := h.readIDParam(r)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "The book id must be a positive integer")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "The submitted form could not be parsed")
		return
	}
	book, form, v := h.bookFromForm(r)
	form.ID = bookID
	if !v.Valid() {
		h.rerenderForm(w, r, form, false)
		return
	}
	book.ID = bookID
	_, err = h.service.UpdateBook(book)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.renderError(w, r, http.StatusNotFound, fmt.Sprintf("Book with id %d not found", bookID))
		case errors.Is(err, service.ErrInvalidArgument):
			form.Errors["editorialId"] = err.Error()
			h.rerenderForm(w, r, form, false)
		default:
			h.logError(r, err)
			h.renderError(w, r, http.StatusInternalServerError, "An unexpected error occurred while processing the request")
		}
		return
	}
	h.redirectWithMessage(w, r, "Book updated successfully")
}

// deleteBookForm handles POST /ui/books/:id/delete.
func (h *Handler) deleteBookForm(w http.ResponseWriter, r *http.Request) {
	bookID, err := h.readIDParam(r)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "The book id must be a positive integer")
		return
	}
	err = h.service.DeactivateBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.renderError(w, r, http.StatusNotFound, fmt.Sprintf("Book with id %d not found", bookID))
		default:
			h.logError(r, err)
			h.renderError(w, r, http.StatusInternalServerError, "An unexpected error occurred while processing the request")
		}
		return
	}
	h.redirectWithMessage(w, r, "Book deactivated successfully")
}

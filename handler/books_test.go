package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/jvillodre/librarium/config"
	"github.com/jvillodre/librarium/data"
	"github.com/jvillodre/librarium/data/dto"
	"github.com/jvillodre/librarium/internal/jsonlog"
	"github.com/jvillodre/librarium/service"
)

// stubService scripts the service layer per test.
type stubService struct {
	saveBook       func(book *data.Book) (*data.Book, error)
	getActiveBook  func(bookID int64) (*data.Book, error)
	updateBook     func(book *data.Book) (*data.Book, error)
	deactivateBook func(bookID int64) error
	listBooks      func(filter data.BookFilter, pagination data.PaginationQuery) (data.PaginatedResult[data.Book], error)
	getEditorial   func(editorialID int64) (*data.Editorial, error)
	listEditorials func() ([]data.Editorial, error)
}

func (s *stubService) SaveBook(book *data.Book) (*data.Book, error) { return s.saveBook(book) }
func (s *stubService) GetActiveBook(bookID int64) (*data.Book, error) {
	return s.getActiveBook(bookID)
}
func (s *stubService) UpdateBook(book *data.Book) (*data.Book, error) { return s.updateBook(book) }
func (s *stubService) DeactivateBook(bookID int64) error              { return s.deactivateBook(bookID) }
func (s *stubService) ListBooks(filter data.BookFilter, pagination data.PaginationQuery) (data.PaginatedResult[data.Book], error) {
	return s.listBooks(filter, pagination)
}
func (s *stubService) GetEditorial(editorialID int64) (*data.Editorial, error) {
	return s.getEditorial(editorialID)
}
func (s *stubService) ListEditorials() ([]data.Editorial, error) {
	if s.listEditorials == nil {
		return []data.Editorial{}, nil
	}
	return s.listEditorials()
}

func newTestHandler(svc service.Service) *Handler {
	var cfg config.Config
	cfg.Server.Env = "test"
	limiters := ttlcache.New(ttlcache.WithTTL[string, *rate.Limiter](time.Minute))
	return New(cfg, jsonlog.New(io.Discard, jsonlog.LevelOff), limiters, svc)
}

func doRequest(t *testing.T, h *Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.Error {
	t.Helper()
	var envelope dto.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func sampleBook() *data.Book {
	created := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	return &data.Book{
		ID:              1,
		Author:          "Frank Herbert",
		Title:           "Dune",
		Genre:           data.GenreScienceFiction,
		Pages:           412,
		PublicationYear: 1965,
		CreatedAt:       created,
		UpdatedAt:       created,
		Active:          true,
	}
}

func TestCreateBookHandler(t *testing.T) {
	t.Run("creates the book and points at it", func(t *testing.T) {
		svc := &stubService{
			saveBook: func(book *data.Book) (*data.Book, error) {
				assert.Equal(t, "Frank Herbert", book.Author)
				assert.Equal(t, data.GenreScienceFiction, book.Genre)
				saved := *book
				saved.ID = 1
				saved.Active = true
				saved.CreatedAt = time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
				saved.UpdatedAt = saved.CreatedAt
				return &saved, nil
			},
		}
		rec := doRequest(t, newTestHandler(svc), http.MethodPost, "/v1/books",
			`{"title": "Dune", "author": "Frank Herbert", "bookGenre": "SCIENCE_FICTION"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "/v1/books/1", rec.Header().Get("Location"))

		var book dto.BookResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &book))
		assert.Equal(t, int64(1), book.ID)
		assert.True(t, book.Active)
		assert.Equal(t, "SCIENCE_FICTION", book.BookGenre)
		assert.Equal(t, book.CreatedAt, book.UpdatedAt)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := doRequest(t, newTestHandler(&stubService{}), http.MethodPost, "/v1/books", `{"title": `)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		envelope := decodeError(t, rec)
		assert.Equal(t, dto.CodeInvalidJSON, envelope.Code)
		assert.NotEmpty(t, envelope.Timestamp)
	})

	t.Run("validation failure lists the fields", func(t *testing.T) {
		rec := doRequest(t, newTestHandler(&stubService{}), http.MethodPost, "/v1/books",
			`{"title": "Dune", "bookGenre": "POETRY", "pages": -5}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		envelope := decodeError(t, rec)
		assert.Equal(t, dto.CodeValidationError, envelope.Code)
		fieldErrors, ok := envelope.Details["fieldErrors"].(map[string]interface{})
		require.True(t, ok)
		assert.Contains(t, fieldErrors, "author")
		assert.Contains(t, fieldErrors, "bookGenre")
		assert.Contains(t, fieldErrors, "pages")
	})
}

func TestShowBookHandler(t *testing.T) {
	t.Run("returns the book with links", func(t *testing.T) {
		svc := &stubService{
			getActiveBook: func(bookID int64) (*data.Book, error) {
				assert.Equal(t, int64(1), bookID)
				return sampleBook(), nil
			},
		}
		rec := doRequest(t, newTestHandler(svc), http.MethodGet, "/v1/books/1", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var book dto.BookResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &book))
		assert.Equal(t, "2024-05-20T12:00:00Z", book.CreatedAt)
		rels := map[string]string{}
		for _, link := range book.Links {
			rels[link.Rel] = link.Method
		}
		assert.Equal(t, http.MethodGet, rels["self"])
		assert.Equal(t, http.MethodPut, rels["update"])
		assert.Equal(t, http.MethodDelete, rels["deactivate"])
	})

	t.Run("inactive links omit deactivate", func(t *testing.T) {
		svc := &stubService{
			getActiveBook: func(bookID int64) (*data.Book, error) {
				book := sampleBook()
				book.Active = false
				return book, nil
			},
		}
		rec := doRequest(t, newTestHandler(svc), http.MethodGet, "/v1/books/1", "")
		var book dto.BookResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &book))
		for _, link := range book.Links {
			assert.NotEqual(t, "deactivate", link.Rel)
		}
	})

	t.Run("missing book", func(t *testing.T) {
		svc := &stubService{
			getActiveBook: func(bookID int64) (*data.Book, error) {
				return nil, service.ErrRecordNotFound
			},
		}
		rec := doRequest(t, newTestHandler(svc), http.MethodGet, "/v1/books/42", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		envelope := decodeError(t, rec)
		assert.Equal(t, dto.CodeNotFound, envelope.Code)
		assert.Equal(t, "Book with id 42 not found", envelope.Message)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		rec := doRequest(t, newTestHandler(&stubService{}), http.MethodGet, "/v1/books/abc", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		envelope := decodeError(t, rec)
		assert.Equal(t, dto.CodeInvalidParameter, envelope.Code)
		assert.Equal(t, "abc", envelope.Details["providedValue"])
	})
}

func TestUpdateBookHandler(t *testing.T) {
	t.Run("path id wins over the body", func(t *testing.T) {
		svc := &stubService{
			updateBook: func(book *data.Book) (*data.Book, error) {
				assert.Equal(t, int64(7), book.ID)
				updated := *book
				updated.Active = true
				return &updated, nil
			},
		}
		rec := doRequest(t, newTestHandler(svc), http.MethodPut, "/v1/books/7",
			`{"id": 99, "title": "Dune Messiah", "author": "Frank Herbert"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing book", func(t *testing.T) {
		svc := &stubService{
			updateBook: func(book *data.Book) (*data.Book, error) {
				return nil, service.ErrRecordNotFound
			},
		}
		rec := doRequest(t, newTestHandler(svc), http.MethodPut, "/v1/books/7",
			`{"author": "Frank Herbert"}`)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeleteBookHandler(t *testing.T) {
	t.Run("deactivates and returns no content", func(t *testing.T) {
		var got int64
		svc := &stubService{
			deactivateBook: func(bookID int64) error {
				got = bookID
				return nil
			},
		}
		rec := doRequest(t, newTestHandler(svc), http.MethodDelete, "/v1/books/3", "")
		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, int64(3), got)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("missing book", func(t *testing.T) {
		svc := &stubService{
			deactivateBook: func(bookID int64) error { return service.ErrRecordNotFound },
		}
		rec := doRequest(t, newTestHandler(svc), http.MethodDelete, "/v1/books/3", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListBooksHandler(t *testing.T) {
	t.Run("defaults translate to the first window", func(t *testing.T) {
		svc := &stubService{
			listBooks: func(filter data.BookFilter, pagination data.PaginationQuery) (data.PaginatedResult[data.Book], error) {
				assert.Equal(t, 0, pagination.Page)
				assert.Equal(t, 10, pagination.PageSize)
				assert.Equal(t, "id", pagination.SortBy)
				assert.Equal(t, data.SortAscending, pagination.SortDirection)
				require.NotNil(t, filter.Active)
				assert.True(t, *filter.Active)
				return data.PaginatedResult[data.Book]{Content: []data.Book{}, Page: 0, PageSize: 10}, nil
			},
		}
		rec := doRequest(t, newTestHandler(svc), http.MethodGet, "/v1/books", "")
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("filters and window pass through 1-based translation", func(t *testing.T) {
		svc := &stubService{
			listBooks: func(filter data.BookFilter, pagination data.PaginationQuery) (data.PaginatedResult[data.Book], error) {
				assert.Equal(t, 2, pagination.Page)
				assert.Equal(t, 5, pagination.PageSize)
				assert.Equal(t, "dune", filter.Title)
				assert.Equal(t, data.GenreScienceFiction, filter.Genre)
				assert.Nil(t, filter.Active)
				return data.PaginatedResult[data.Book]{
					Content:       []data.Book{*sampleBook()},
					TotalElements: 11,
					Page:          2,
					PageSize:      5,
				}, nil
			},
		}
		rec := doRequest(t, newTestHandler(svc), http.MethodGet,
			"/v1/books?page=3&pageSize=5&title=dune&genre=science_fiction&active=all", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var response dto.BooksResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, 3, response.Pagination.Number)
		assert.Equal(t, int64(11), response.Pagination.TotalElements)
		assert.Equal(t, 3, response.Pagination.TotalPages)

		hrefs := map[string]string{}
		for _, link := range response.Links {
			hrefs[link.Rel] = link.Href
		}
		assert.Equal(t, "/v1/books?page=3&pageSize=5", hrefs["self"])
		assert.Equal(t, "/v1/books?page=1&pageSize=5", hrefs["first"])
		assert.Equal(t, "/v1/books?page=3&pageSize=5", hrefs["last"])
		assert.Equal(t, "/v1/books?page=2&pageSize=5", hrefs["prev"])
		assert.NotContains(t, hrefs, "next")
	})

	t.Run("page past the end keeps the true total", func(t *testing.T) {
		svc := &stubService{
			listBooks: func(filter data.BookFilter, pagination data.PaginationQuery) (data.PaginatedResult[data.Book], error) {
				assert.Equal(t, 10, pagination.Page)
				return data.PaginatedResult[data.Book]{
					Content:       []data.Book{},
					TotalElements: 15,
					Page:          10,
					PageSize:      5,
				}, nil
			},
		}
		rec := doRequest(t, newTestHandler(svc), http.MethodGet, "/v1/books?page=11&pageSize=5", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var response dto.BooksResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Empty(t, response.Books)
		assert.Equal(t, int64(15), response.Pagination.TotalElements)
		assert.Equal(t, 3, response.Pagination.TotalPages)
		assert.Equal(t, 11, response.Pagination.Number)

		hrefs := map[string]string{}
		for _, link := range response.Links {
			hrefs[link.Rel] = link.Href
		}
		assert.Equal(t, "/v1/books?page=3&pageSize=5", hrefs["last"])
		assert.NotContains(t, hrefs, "next")
		assert.Equal(t, "/v1/books?page=10&pageSize=5", hrefs["prev"])
	})

	t.Run("unknown genre", func(t *testing.T) {
		rec := doRequest(t, newTestHandler(&stubService{}), http.MethodGet, "/v1/books?genre=POETRY", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, dto.CodeInvalidCriteria, decodeError(t, rec).Code)
	})

	t.Run("page below one", func(t *testing.T) {
		rec := doRequest(t, newTestHandler(&stubService{}), http.MethodGet, "/v1/books?page=0", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, dto.CodeInvalidCriteria, decodeError(t, rec).Code)
	})

	t.Run("non-numeric page size", func(t *testing.T) {
		rec := doRequest(t, newTestHandler(&stubService{}), http.MethodGet, "/v1/books?pageSize=lots", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		envelope := decodeError(t, rec)
		assert.Equal(t, dto.CodeInvalidParameter, envelope.Code)
		assert.Equal(t, "lots", envelope.Details["providedValue"])
	})

	t.Run("bad active value", func(t *testing.T) {
		rec := doRequest(t, newTestHandler(&stubService{}), http.MethodGet, "/v1/books?active=maybe", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, dto.CodeInvalidParameter, decodeError(t, rec).Code)
	})

	t.Run("unknown sort field surfaces as invalid criteria", func(t *testing.T) {
		svc := &stubService{
			listBooks: func(filter data.BookFilter, pagination data.PaginationQuery) (data.PaginatedResult[data.Book], error) {
				return data.PaginatedResult[data.Book]{}, service.ErrInvalidArgument
			},
		}
		rec := doRequest(t, newTestHandler(svc), http.MethodGet, "/v1/books?sortBy=genre", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, dto.CodeInvalidCriteria, decodeError(t, rec).Code)
	})
}

func TestMethodNotAllowed(t *testing.T) {
	rec := doRequest(t, newTestHandler(&stubService{}), http.MethodPatch, "/v1/books/1", "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	envelope := decodeError(t, rec)
	assert.Equal(t, "METHOD_NOT_ALLOWED", envelope.Code)
}

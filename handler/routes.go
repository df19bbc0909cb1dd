package handler

import (
	"expvar"
	"net/http"

	"github.com/julienschmidt/httprouter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Routes returns the router wrapped with the standard middleware chain.
func (h *Handler) Routes() http.Handler {
	router := httprouter.New()
	router.NotFound = http.HandlerFunc(h.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(h.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", h.healthcheckHandler)

	router.HandlerFunc(http.MethodPost, "/v1/books", h.createBookHandler)
	router.HandlerFunc(http.MethodGet, "/v1/books", h.listBooksHandler)
	router.HandlerFunc(http.MethodGet, "/v1/books/:id", h.showBookHandler)
	router.HandlerFunc(http.MethodPut, "/v1/books/:id", h.updateBookHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/books/:id", h.deleteBookHandler)

	// httprouter cannot register /ui/books/new next to /ui/books/:id, so the
	// :id handler dispatches the "new" segment to the create form.
	router.HandlerFunc(http.MethodGet, "/ui/books", h.listBooksPage)
	router.HandlerFunc(http.MethodGet, "/ui/books/:id", h.showBookPage)
	router.HandlerFunc(http.MethodGet, "/ui/books/:id/edit", h.editBookPage)
	router.HandlerFunc(http.MethodPost, "/ui/books", h.createBookForm)
	router.HandlerFunc(http.MethodPost, "/ui/books/:id", h.updateBookForm)
	router.HandlerFunc(http.MethodPost, "/ui/books/:id/delete", h.deleteBookForm)

	router.HandlerFunc(http.MethodGet, "/spec", h.swaggerFileHandler)
	router.Handler(http.MethodGet, "/docs/*any", httpSwagger.Handler(httpSwagger.URL("/spec")))

	router.HandlerFunc(http.MethodGet, "/debug/vars", h.basicAuth(expvar.Handler().ServeHTTP))

	return h.recoverPanic(h.enableCORS(h.rateLimit(h.metrics(router))))
}

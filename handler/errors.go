package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jvillodre/librarium/data/dto"
)

// logError logs the error alongside the request method and url.
func (h *Handler) logError(r *http.Request, err error) {
	h.logger.PrintError(err, map[string]string{
		"request_method": r.Method,
		"request_url":    r.URL.String(),
	})
}

// errorResponse sends the JSON error envelope with a given status code.
func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]any) {
	envelope := dto.Error{
		Code:      code,
		Message:   message,
		Timestamp: utcTimestamp(time.Now()),
		Details:   details,
	}
	err := h.encodeJSON(w, status, envelope, nil)
	if err != nil {
		h.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// serverErrorResponse logs the detailed error and sends a generic 500 so
// internals never leak to the client.
func (h *Handler) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	h.logError(r, err)
	message := "An unexpected error occurred while processing the request"
	h.errorResponse(w, r, http.StatusInternalServerError, dto.CodeInternalError, message, nil)
}

func (h *Handler) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "The requested resource could not be found"
	h.errorResponse(w, r, http.StatusNotFound, dto.CodeNotFound, message, nil)
}

func (h *Handler) bookNotFoundResponse(w http.ResponseWriter, r *http.Request, bookID int64) {
	message := fmt.Sprintf("Book with id %d not found", bookID)
	h.errorResponse(w, r, http.StatusNotFound, dto.CodeNotFound, message, nil)
}

func (h *Handler) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("The %s method is not supported for this resource", r.Method)
	h.errorResponse(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", message, nil)
}

// invalidCriteriaResponse reports rejected search or sort criteria: unknown
// genre, unknown sort field, bad direction, out-of-range pagination.
func (h *Handler) invalidCriteriaResponse(w http.ResponseWriter, r *http.Request, err error) {
	h.errorResponse(w, r, http.StatusBadRequest, dto.CodeInvalidCriteria, err.Error(), nil)
}

// invalidParameterResponse reports a query or path parameter that failed to parse.
func (h *Handler) invalidParameterResponse(w http.ResponseWriter, r *http.Request, parameter, value string) {
	message := fmt.Sprintf("Invalid value for parameter %q", parameter)
	details := map[string]any{
		"parameter":     parameter,
		"providedValue": value,
	}
	h.errorResponse(w, r, http.StatusBadRequest, dto.CodeInvalidParameter, message, details)
}

// failedValidationResponse reports body validation failures with per-field messages.
func (h *Handler) failedValidationResponse(w http.ResponseWriter, r *http.Request, errors map[string]string) {
	details := map[string]any{"fieldErrors": errors}
	h.errorResponse(w, r, http.StatusBadRequest, dto.CodeValidationError, "Invalid request data", details)
}

func (h *Handler) invalidJSONResponse(w http.ResponseWriter, r *http.Request, err error) {
	details := map[string]any{"issue": err.Error()}
	message := "Invalid JSON format or missing required fields"
	h.errorResponse(w, r, http.StatusBadRequest, dto.CodeInvalidJSON, message, details)
}

func (h *Handler) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	message := "Rate limit exceeded"
	h.errorResponse(w, r, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", message, nil)
}

func (h *Handler) invalidCredentialsResponse(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", `Basic realm="restricted"`)
	message := "Invalid or missing credentials"
	h.errorResponse(w, r, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

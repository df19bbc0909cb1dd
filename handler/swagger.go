package handler

import "net/http"

// swaggerFileHandler serves the OpenAPI document rendered by the /docs UI.
func (h *Handler) swaggerFileHandler(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, "./docs/swagger.json")
}

package handler

import "net/http"

// healthcheckHandler reports the operational status of the service.
func (h *Handler) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status": "available",
		"system_info": map[string]string{
			"environment": h.config.Server.Env,
			"version":     "1.0.0",
		},
	}
	err := h.encodeJSON(w, http.StatusOK, health, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

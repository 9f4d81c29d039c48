package handlers

import (
	"net/http"

	"orderdesk/pkg/logging"
)

// NewHealthHandler reports server liveness.
func NewHealthHandler(logger *logging.ZapLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"}, logger)
	}
}

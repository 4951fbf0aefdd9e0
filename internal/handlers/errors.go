package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"minutes-tracker/internal/repo"
)

// JSONError sends a JSON error response with a single "error" field.
func JSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// ServiceError maps a service failure to an HTTP response: not-found ids get
// 404, everything else gets 400 with the error message as the body, matching
// the blanket error contract of the API. Full detail is logged server-side;
// the client only sees the message text.
func ServiceError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)

	status := http.StatusBadRequest
	if errors.Is(err, repo.ErrNotFound) {
		status = http.StatusNotFound
	}
	JSONError(w, err.Error(), status)
}

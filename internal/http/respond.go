package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// mutationResponse is the body of every successful POST/PATCH.
type mutationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// errorResponse is the body of every non-2xx response. Details carries the
// field-level message for validation errors and stays empty for upstream
// failures, which log the full error server-side and surface a generic
// message only.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeSuccess(w http.ResponseWriter, status int, message, id string) {
	writeJSON(w, status, mutationResponse{Success: true, Message: message, ID: id})
}

func writeError(w http.ResponseWriter, status int, msg, details string) {
	writeJSON(w, status, errorResponse{Error: msg, Details: details})
}

func writeValidationError(w http.ResponseWriter, details string) {
	writeError(w, http.StatusBadRequest, "invalid request", details)
}

// writeUpstreamError is the 500 path: generic body, full error in the log.
func writeUpstreamError(w http.ResponseWriter, r *http.Request, op string, err error) {
	slog.ErrorContext(r.Context(), "Upstream store failure",
		"operation", op,
		"error", err,
		"method", r.Method,
		"url", r.URL.Path)
	writeError(w, http.StatusInternalServerError, "internal error", "")
}

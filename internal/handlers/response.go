package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/canteen/internal/middleware"
)

// ErrorResponse is the failure body every endpoint answers with. Clients
// show Error to the user; RequestID matches the server log line.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// WriteJSON writes data as the JSON response body with the given status
func WriteJSON(w http.ResponseWriter, status int, data any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", "status", status, "error", err)
	}
}

// WriteError answers {"error": message}, tagged with the request id the
// logging middleware assigned
func WriteError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	WriteJSON(w, status, ErrorResponse{
		Error:     message,
		RequestID: w.Header().Get(middleware.RequestIDHeader),
	}, logger)
}

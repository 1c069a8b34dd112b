package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/roach88/nysm/internal/obfuscate"
	"github.com/roach88/nysm/internal/records"
	"github.com/roach88/nysm/internal/store"
	"github.com/roach88/nysm/pkg/api"
)

// sendJSON writes an envelope with the given status.
func sendJSON(logger *slog.Logger, w http.ResponseWriter, status int, resp api.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}

// sendSuccess writes a 200 envelope with data and message.
func sendSuccess(logger *slog.Logger, w http.ResponseWriter, data any, message string) {
	sendJSON(logger, w, http.StatusOK, api.Response{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// sendError writes a failure envelope with the given status.
func sendError(logger *slog.Logger, w http.ResponseWriter, status int, message string) {
	sendJSON(logger, w, status, api.Response{
		Success: false,
		Message: message,
	})
}

// statusForError maps error kinds to HTTP status codes. Expected business
// outcomes map to client errors; everything else is a server error.
func statusForError(err error) int {
	switch {
	case errors.Is(err, store.ErrValidation),
		errors.Is(err, records.ErrInsufficientFunds),
		errors.Is(err, obfuscate.ErrFormat):
		return http.StatusBadRequest
	case errors.Is(err, records.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// sendServiceError logs the error and writes the mapped failure envelope.
// Internal details are not leaked for server-side failures.
func sendServiceError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error, operation string) {
	status := statusForError(err)
	message := err.Error()
	if status >= 500 {
		message = "internal server error"
		logger.ErrorContext(r.Context(), operation+" failed", slog.Any("error", err))
	} else {
		logger.WarnContext(r.Context(), operation+" rejected", slog.Any("error", err))
	}
	sendError(logger, w, status, message)
}

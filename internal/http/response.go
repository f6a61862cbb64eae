package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"outlay/internal/core"
)

// apiResponse is the uniform JSON envelope every endpoint returns.
type apiResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"statusCode"`
	Message   string    `json:"message"`
	Data      any       `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	body := apiResponse{
		Timestamp: time.Now(),
		Status:    status,
		Message:   message,
		Data:      data,
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps domain errors onto HTTP statuses: missing entities are 404,
// ownership violations 403, bad input 400, everything else 500.
func writeError(w http.ResponseWriter, err error) {
	var notFound *core.NotFoundError
	if errors.As(err, &notFound) {
		writeJSON(w, http.StatusNotFound, notFound.Error(), nil)
		return
	}

	var ownership *core.OwnershipError
	if errors.As(err, &ownership) {
		writeJSON(w, http.StatusForbidden, ownership.Error(), nil)
		return
	}

	var invalid *badRequestError
	if errors.As(err, &invalid) {
		writeJSON(w, http.StatusBadRequest, invalid.Error(), nil)
		return
	}

	slog.Error("Request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, "internal server error", nil)
}

// badRequestError marks client input that could not be parsed or validated.
type badRequestError struct {
	msg string
}

func (e *badRequestError) Error() string {
	return e.msg
}

func badRequestf(format string, args ...any) *badRequestError {
	return &badRequestError{msg: fmt.Sprintf(format, args...)}
}

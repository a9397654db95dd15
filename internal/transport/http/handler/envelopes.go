package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AadiZee/car-system-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// CarListEnvelope wraps full-inventory responses.
type CarListEnvelope struct {
	Message string       `json:"message,omitempty"`
	Data    []domain.Car `json:"data"`
}

// PhotoEnvelope carries a time-limited download URL for a car photo.
type PhotoEnvelope struct {
	URL string `json:"url"`
}

// statusFor is the single error-kind to HTTP-status table. Handlers never
// pick status codes ad hoc; update_password's 404 on an unknown email is the
// one endpoint-level exception, kept for API compatibility.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// writeDomainError maps a flow error through the central status table.
// Unexpected errors get a generic message so store internals never leak.
func writeDomainError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

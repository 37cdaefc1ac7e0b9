package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ammerola/invoices-be/internal/core/domain"
)

// responder writes JSON bodies and maps domain errors to status codes.
type responder struct {
	legacy bool
	logger *slog.Logger
}

func (rs responder) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		rs.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (rs responder) respondMessage(w http.ResponseWriter, status int, message string) {
	rs.respondJSON(w, status, map[string]string{"message": message})
}

// respondError writes {"error": message}. In legacy mode every failure is a 500.
func (rs responder) respondError(w http.ResponseWriter, status int, message string) {
	if rs.legacy {
		status = http.StatusInternalServerError
	}
	rs.respondJSON(w, status, map[string]string{"error": message})
}

// statusFor maps err onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateInvoice), errors.Is(err, domain.ErrDuplicateBatch):
		return http.StatusConflict
	case errors.Is(err, domain.ErrMissingData),
		errors.Is(err, domain.ErrNoBatches),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidAttribute),
		errors.Is(err, domain.ErrInvalidValue):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

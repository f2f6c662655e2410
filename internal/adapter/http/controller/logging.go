package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/api-sage/retail-bank-core/internal/commons"
	"github.com/api-sage/retail-bank-core/internal/logger"
)

func logRequest(r *http.Request, payload any) {
	logger.Info("http request", logger.Fields{
		"method":  r.Method,
		"path":    r.URL.Path,
		"query":   r.URL.RawQuery,
		"payload": logger.SanitizePayload(payload),
	})
}

func logResponse(r *http.Request, status int, payload any, start time.Time) {
	logger.Info("http response", logger.Fields{
		"method":     r.Method,
		"path":       r.URL.Path,
		"status":     status,
		"durationMs": time.Since(start).Milliseconds(),
		"response":   logger.SanitizePayload(payload),
	})
}

func logError(r *http.Request, err error, extra logger.Fields) {
	fields := logger.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"query":  r.URL.RawQuery,
	}
	for k, v := range extra {
		fields[k] = v
	}
	logger.Error("http handler error", err, fields)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// statusFromError translates the business-error taxonomy into HTTP statuses.
// Anything outside the taxonomy is treated as an infrastructure failure.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, commons.ErrRecordNotFound),
		errors.Is(err, commons.ErrTariffNotFound):
		return http.StatusNotFound
	case errors.Is(err, commons.ErrSameAccount):
		return http.StatusBadRequest
	case errors.Is(err, commons.ErrAccountOwnership),
		errors.Is(err, commons.ErrBankSelfDealing),
		errors.Is(err, commons.ErrInvalidPIN):
		return http.StatusForbidden
	case errors.Is(err, commons.ErrInsufficientBalance),
		errors.Is(err, commons.ErrBankInsolvency),
		errors.Is(err, commons.ErrCreditLimitReached),
		errors.Is(err, commons.ErrDuplicateTariff):
		return http.StatusUnprocessableEntity
	case errors.Is(err, commons.ErrPaymentLocked),
		errors.Is(err, commons.ErrSenderNotAssigned):
		return http.StatusConflict
	case commons.IsBusinessError(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// errorStatus picks the status for a failed service call: validation problems
// come back as plain errors with a "validation failed" message, business
// errors map through the taxonomy.
func errorStatus(message string, err error) int {
	if message == "validation failed" || message == "invalid request body" {
		return http.StatusBadRequest
	}
	return statusFromError(err)
}

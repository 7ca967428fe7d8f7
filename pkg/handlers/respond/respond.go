// Package respond writes JSON answers and maps domain errors to HTTP statuses
// for the points handlers.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/chris/behavior-points/pkg/api"
	"github.com/chris/behavior-points/pkg/models"
	"github.com/chris/behavior-points/pkg/points"
	log "github.com/sirupsen/logrus"
)

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("failed to write response")
	}
}

// Scoped marks degraded answers before the body is written.
func Scoped(w http.ResponseWriter, scope points.Scope) {
	if scope.Degraded {
		w.Header().Set(api.ScopeHeader, "self")
	}
}

// Status maps a domain error to its HTTP status.
func Status(err error) int {
	switch {
	case errors.Is(err, models.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrInvalidAmount), errors.Is(err, models.ErrInvalidSign):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrLedgerWriteFailed):
		return http.StatusBadGateway
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as a plain text failure for the named action.
func Error(w http.ResponseWriter, action string, err error) {
	status := Status(err)
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	if status >= http.StatusInternalServerError {
		log.WithError(err).WithField("action", action).Error("request failed")
	}
	http.Error(w, fmt.Sprintf("Failed to %s: %v", action, err), status)
}

// Decode reads a JSON body into dst and validates it. It writes the 400 answer itself
// and returns false when the body is unusable.
func Decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return false
	}
	if err := api.Validate.Struct(dst); err != nil {
		fields := api.FieldErrors(err)
		if fields == nil {
			http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
			return false
		}
		JSON(w, http.StatusBadRequest, api.ValidationError{Error: "validation failed", Fields: fields})
		return false
	}
	return true
}

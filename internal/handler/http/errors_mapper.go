package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-account-keeper/internal/account"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/service"
	"github.com/MKhiriev/go-account-keeper/internal/store"
)

// errorStatusMap is checked in order; the first match wins. Account
// errors carry both a kind and a cause, so the kinds come first.
var errorStatusMap = []struct {
	err    error
	status int
}{
	{ErrInvalidJSON, http.StatusBadRequest},

	{service.ErrWrongCredentials, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrInteractionExpired, http.StatusGone},
	{service.ErrTokenCreationFailed, http.StatusInternalServerError},

	{account.ErrValidation, http.StatusBadRequest},
	{account.ErrArgument, http.StatusBadRequest},
	{account.ErrInteraction, http.StatusBadRequest},
	{account.ErrDuplicateUsername, http.StatusConflict},
	{account.ErrDuplicateEmail, http.StatusConflict},
	{account.ErrAccountState, http.StatusForbidden},
	{account.ErrPersistence, http.StatusInternalServerError},

	{store.ErrAccountNotFound, http.StatusNotFound},
	{store.ErrUsernameTaken, http.StatusConflict},
	{store.ErrEmailTaken, http.StatusConflict},
}

// statusFromError maps err to an HTTP status. Transient store failures
// are answered with 503 regardless of their kind.
func (h *Handler) statusFromError(err error) int {
	if h.isRetryable != nil && h.isRetryable(err) {
		return http.StatusServiceUnavailable
	}
	for _, entry := range errorStatusMap {
		if errors.Is(err, entry.err) {
			return entry.status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err and answers with the mapped status. The body is msg
// for client errors and the bare status text otherwise.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log := logger.FromRequest(r)
	status := h.statusFromError(err)

	if status >= http.StatusInternalServerError || msg == "" {
		msg = http.StatusText(status)
	}
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Warn().Err(err).Int("status", status).Msg(msg)
	}

	http.Error(w, msg, status)
}

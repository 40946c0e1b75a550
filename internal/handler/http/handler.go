package http

import (
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/service"
)

type Handler struct {
	services *service.Services

	// adminToken guards /api/admin. Admin routes answer 404 while empty.
	adminToken string

	// isRetryable reports transient store failures, answered with 503.
	isRetryable func(error) bool

	logger *logger.Logger
}

// Option configures a [Handler].
type Option func(*Handler)

// WithAdminToken enables the administrative endpoints.
func WithAdminToken(token string) Option {
	return func(h *Handler) {
		h.adminToken = token
	}
}

// WithRetryClassifier sets the predicate used to answer transient store
// failures with 503 Service Unavailable.
func WithRetryClassifier(isRetryable func(error) bool) Option {
	return func(h *Handler) {
		h.isRetryable = isRetryable
	}
}

func NewHandler(services *service.Services, logger *logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		services: services,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(h)
	}

	logger.Info().Bool("admin", h.adminToken != "").Msg("http handler created")
	return h
}

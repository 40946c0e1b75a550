package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// withLogging writes one access-log entry per request. Matched requests are
// logged by route pattern so confirmation codes in the path never reach the
// log. Server errors are logged at error level, client errors at warn.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		start := time.Now()

		lw := &responseWriter{
			ResponseWriter: w,
		}

		next.ServeHTTP(lw, r)

		uri := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			uri = rc.RoutePattern()
		}

		level := zerolog.InfoLevel
		switch status := lw.Status(); {
		case status >= http.StatusInternalServerError:
			level = zerolog.ErrorLevel
		case status >= http.StatusBadRequest:
			level = zerolog.WarnLevel
		}

		log.Logger.WithLevel(level).
			Str("uri", uri).
			Str("method", r.Method).
			Int("status", lw.Status()).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Send()
	})
}

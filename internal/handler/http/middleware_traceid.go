package http

import (
	"net/http"

	"github.com/MKhiriev/go-account-keeper/internal/utils"
	"github.com/rs/zerolog"
)

const traceIDHeader = "X-Trace-ID"

// withTraceID reuses a well-formed X-Trace-ID from the caller or issues a
// UUIDv7, echoes it in the response and attaches a child logger carrying
// trace_id.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := utils.TraceIDOrNew(r.Header.Get(traceIDHeader))

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})

		ctx := utils.WithTraceID(r.Context(), traceID)
		r = r.WithContext(l.WithContext(ctx))

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r)
	})
}

package http

import (
	"net/http"

	"github.com/MKhiriev/go-account-keeper/internal/cache"
)

// withIdentityCache gives every request its own empty identity cache.
func (h *Handler) withIdentityCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := cache.WithIdentity(r.Context(), cache.New())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

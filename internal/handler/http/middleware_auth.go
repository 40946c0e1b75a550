package http

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/utils"
)

const adminTokenHeader = "X-Admin-Token"

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header, validates
// it via [service.AuthService.ParseToken] and stores the account id in the
// request context under [utils.AccountIDCtxKey]. Any failure is answered
// with 401 Unauthorized.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		ctx = utils.WithAccountID(ctx, token.AccountID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the token of an "Authorization: Bearer
// <token>" header value.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}

// adminOnly admits requests carrying the configured X-Admin-Token. Without
// a configured token the admin routes do not exist.
func (h *Handler) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.adminToken == "" {
			http.NotFound(w, r)
			return
		}

		given := r.Header.Get(adminTokenHeader)
		if subtle.ConstantTimeCompare([]byte(given), []byte(h.adminToken)) != 1 {
			logger.FromRequest(r).Warn().Err(ErrInvalidAdminToken).Str("remote", r.RemoteAddr).Send()
			http.Error(w, ErrInvalidAdminToken.Error(), http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

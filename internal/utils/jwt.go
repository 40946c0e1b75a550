package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-account-keeper/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	errInvalidTokenParams = errors.New("invalid params for generating JWT token")
	errNotAnAccountID     = errors.New("token subject is not an account id")
)

// GenerateJWTToken signs an HS256 token for accountID with iss, sub, iat,
// exp and a random jti.
func GenerateJWTToken(issuer string, accountID int64, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration <= 0 || signKey == "" {
		return models.Token{}, errInvalidTokenParams
	}
	if accountID <= 0 {
		return models.Token{}, fmt.Errorf("%w: %d", errNotAnAccountID, accountID)
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    issuer,
		Subject:   strconv.FormatInt(accountID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{Token: token, SignedString: tokenString, AccountID: accountID}, nil
}

// ValidateAndParseJWTToken verifies signature, issuer and expiry of
// tokenString and returns it with AccountID taken from the subject. Only
// HS256 is accepted and exp is mandatory.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	claims := &models.Token{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	accountID, err := claims.GetAccountID()
	if err != nil {
		return models.Token{}, err
	}
	if accountID <= 0 {
		return models.Token{}, fmt.Errorf("%w: %d", errNotAnAccountID, accountID)
	}

	claims.Token = token
	claims.SignedString = tokenString
	claims.AccountID = accountID
	return *claims, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authorizationHeader), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errors.New("invalid authorization header")
	}
	return strings.TrimSpace(token), nil
}

// TokenInfo is what a client can learn from its own token offline.
type TokenInfo struct {
	AccountID int64
	ExpiresAt time.Time
}

// Expired reports whether the token is past its exp claim at now. A token
// without exp never expires here; the server decides.
func (i TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

// InspectJWT reads subject and expiry of tokenString without verifying the
// signature. Only for clients that hold a token issued to them.
func InspectJWT(tokenString string) (TokenInfo, error) {
	claims := &models.Token{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return TokenInfo{}, err
	}

	accountID, err := claims.GetAccountID()
	if err != nil {
		return TokenInfo{}, err
	}

	info := TokenInfo{AccountID: accountID}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}

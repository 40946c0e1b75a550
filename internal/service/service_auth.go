package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-account-keeper/internal/account"
	"github.com/MKhiriev/go-account-keeper/internal/config"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/utils"
	"github.com/MKhiriev/go-account-keeper/models"
)

// authService is the concrete implementation of AuthService.
// It issues and verifies the JWT tokens handed out after a successful
// login.
type authService struct {
	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService populated with the token
// parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

// CreateToken issues a signed JWT whose subject is the account id.
//
// Returns ErrTokenCreationFailed for an unsaved account or when signing
// fails.
func (a *authService) CreateToken(ctx context.Context, acc *account.Account) (models.Token, error) {
	if acc == nil || acc.IsNew() {
		return models.Token{}, fmt.Errorf("%w: account is not stored", ErrTokenCreationFailed)
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, acc.ID(), a.tokenDuration, a.tokenSignKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "authService.CreateToken").Int64("id", acc.ID()).Msg("cannot sign token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect
// low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

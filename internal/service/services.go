package service

import (
	"fmt"

	"github.com/MKhiriev/go-account-keeper/internal/account"
	"github.com/MKhiriev/go-account-keeper/internal/config"
	"github.com/MKhiriev/go-account-keeper/internal/crypto"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/store"
)

type Services struct {
	AccountService AccountService
	AuthService    AuthService
	AppInfoService AppInfoService
}

// NewServices wires the services of the server. The account policy is built
// from cfg.App: the password minimum and the interaction code secret.
func NewServices(accountStore store.AccountStore, outbox Outbox, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	policy, err := NewPolicy(cfg.App)
	if err != nil {
		return nil, err
	}

	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AccountService: NewAccountService(accountStore, outbox, policy, cfg, logger),
		AuthService:    NewAuthService(cfg.App, logger),
		AppInfoService: appInfoService,
	}, nil
}

// NewPolicy builds the account policy configured by cfg.
func NewPolicy(cfg config.App) (account.Policy, error) {
	codes, err := crypto.NewCodeGenerator(cfg.InteractionSecret)
	if err != nil {
		return account.Policy{}, fmt.Errorf("error creating interaction code generator: %w", err)
	}

	return account.Policy{
		Codec:             crypto.NewPasswordCodec(),
		Codes:             codes,
		MinPasswordLength: cfg.PasswordMinLength,
	}, nil
}

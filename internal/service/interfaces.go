package service

import (
	"context"

	"github.com/MKhiriev/go-account-keeper/internal/account"
	"github.com/MKhiriev/go-account-keeper/internal/cache"
	"github.com/MKhiriev/go-account-keeper/models"
)

// AccountService drives the account lifecycle against the store.
//
// Every operation takes the request's identity cache explicitly; a nil
// cache disables caching. Mutations that may make the cached identity stale
// invalidate it before they are applied.
type AccountService interface {
	// NewAccount returns an unsaved account carrying the service's policy.
	NewAccount(username, email string) (*account.Account, error)

	Create(ctx context.Context, c *cache.Identity, a *account.Account, opts CreateOptions) error
	Store(ctx context.Context, c *cache.Identity, a *account.Account) error
	ResetPassword(ctx context.Context, c *cache.Identity, a *account.Account, opts ResetOptions) error

	Delete(ctx context.Context, c *cache.Identity, selector models.Selector, opts DeleteOptions) error
	ConfirmDelete(ctx context.Context, c *cache.Identity, selector models.Selector) error
	Suspend(ctx context.Context, c *cache.Identity, selector models.Selector, n *Notification) (int64, error)

	Fetch(ctx context.Context, c *cache.Identity, selector models.Selector) (*account.Account, bool, error)
	FetchByID(ctx context.Context, c *cache.Identity, id int64) (*account.Account, bool, error)
	FetchByInteractionCode(ctx context.Context, c *cache.Identity, code string) (*account.Account, bool, error)
	Exists(ctx context.Context, selector models.Selector) (bool, error)

	// SendMessage e-mails the account. Delivery failures are recorded and
	// never returned.
	SendMessage(ctx context.Context, a *account.Account, n Notification)

	Confirm(ctx context.Context, c *cache.Identity, kind account.InteractionKind, code string) (*account.Account, error)
	RequestCode(ctx context.Context, c *cache.Identity, kind account.InteractionKind, email string) error
	Login(ctx context.Context, c *cache.Identity, username, password string) (*account.Account, error)
}

type AuthService interface {
	CreateToken(ctx context.Context, a *account.Account) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	// GetAppInfo reports the version together with process start time and
	// uptime.
	GetAppInfo(ctx context.Context) models.AppInfoResponse
}

package http

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-account-keeper/internal/account"
	"github.com/MKhiriev/go-account-keeper/internal/cache"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/service"
	"github.com/MKhiriev/go-account-keeper/models"
)

var errNotStubbed = errors.New("not stubbed")

// fakeAccountService answers through its func fields; unset methods fail.
type fakeAccountService struct {
	newAccount    func(username, email string) (*account.Account, error)
	create        func(ctx context.Context, c *cache.Identity, a *account.Account, opts service.CreateOptions) error
	resetPassword func(ctx context.Context, c *cache.Identity, a *account.Account, opts service.ResetOptions) error
	delete        func(ctx context.Context, c *cache.Identity, selector models.Selector, opts service.DeleteOptions) error
	suspend       func(ctx context.Context, c *cache.Identity, selector models.Selector, n *service.Notification) (int64, error)
	fetchByID     func(ctx context.Context, c *cache.Identity, id int64) (*account.Account, bool, error)
	confirm       func(ctx context.Context, c *cache.Identity, kind account.InteractionKind, code string) (*account.Account, error)
	requestCode   func(ctx context.Context, c *cache.Identity, kind account.InteractionKind, email string) error
	login         func(ctx context.Context, c *cache.Identity, username, password string) (*account.Account, error)
}

func (f *fakeAccountService) NewAccount(username, email string) (*account.Account, error) {
	if f.newAccount != nil {
		return f.newAccount(username, email)
	}
	return account.New(username, email)
}

func (f *fakeAccountService) Create(ctx context.Context, c *cache.Identity, a *account.Account, opts service.CreateOptions) error {
	if f.create == nil {
		return errNotStubbed
	}
	return f.create(ctx, c, a, opts)
}

func (f *fakeAccountService) Store(context.Context, *cache.Identity, *account.Account) error {
	return errNotStubbed
}

func (f *fakeAccountService) ResetPassword(ctx context.Context, c *cache.Identity, a *account.Account, opts service.ResetOptions) error {
	if f.resetPassword == nil {
		return errNotStubbed
	}
	return f.resetPassword(ctx, c, a, opts)
}

func (f *fakeAccountService) Delete(ctx context.Context, c *cache.Identity, selector models.Selector, opts service.DeleteOptions) error {
	if f.delete == nil {
		return errNotStubbed
	}
	return f.delete(ctx, c, selector, opts)
}

func (f *fakeAccountService) ConfirmDelete(context.Context, *cache.Identity, models.Selector) error {
	return errNotStubbed
}

func (f *fakeAccountService) Suspend(ctx context.Context, c *cache.Identity, selector models.Selector, n *service.Notification) (int64, error) {
	if f.suspend == nil {
		return 0, errNotStubbed
	}
	return f.suspend(ctx, c, selector, n)
}

func (f *fakeAccountService) Fetch(context.Context, *cache.Identity, models.Selector) (*account.Account, bool, error) {
	return nil, false, errNotStubbed
}

func (f *fakeAccountService) FetchByID(ctx context.Context, c *cache.Identity, id int64) (*account.Account, bool, error) {
	if f.fetchByID == nil {
		return nil, false, errNotStubbed
	}
	return f.fetchByID(ctx, c, id)
}

func (f *fakeAccountService) FetchByInteractionCode(context.Context, *cache.Identity, string) (*account.Account, bool, error) {
	return nil, false, errNotStubbed
}

func (f *fakeAccountService) Exists(context.Context, models.Selector) (bool, error) {
	return false, errNotStubbed
}

func (f *fakeAccountService) SendMessage(context.Context, *account.Account, service.Notification) {}

func (f *fakeAccountService) Confirm(ctx context.Context, c *cache.Identity, kind account.InteractionKind, code string) (*account.Account, error) {
	if f.confirm == nil {
		return nil, errNotStubbed
	}
	return f.confirm(ctx, c, kind, code)
}

func (f *fakeAccountService) RequestCode(ctx context.Context, c *cache.Identity, kind account.InteractionKind, email string) error {
	if f.requestCode == nil {
		return errNotStubbed
	}
	return f.requestCode(ctx, c, kind, email)
}

func (f *fakeAccountService) Login(ctx context.Context, c *cache.Identity, username, password string) (*account.Account, error) {
	if f.login == nil {
		return nil, errNotStubbed
	}
	return f.login(ctx, c, username, password)
}

// fakeAuthService accepts the token "valid-token" for accountID.
type fakeAuthService struct {
	accountID int64
	createErr error
}

func (f *fakeAuthService) CreateToken(_ context.Context, a *account.Account) (models.Token, error) {
	if f.createErr != nil {
		return models.Token{}, f.createErr
	}
	return models.Token{SignedString: "valid-token", AccountID: a.ID()}, nil
}

func (f *fakeAuthService) ParseToken(_ context.Context, tokenString string) (models.Token, error) {
	if tokenString != "valid-token" {
		return models.Token{}, service.ErrTokenIsExpiredOrInvalid
	}
	return models.Token{AccountID: f.accountID}, nil
}

type fakeAppInfoService struct {
	version string
}

func (f fakeAppInfoService) GetAppVersion(context.Context) string {
	if f.version == "" {
		return "test-version"
	}
	return f.version
}

func (f fakeAppInfoService) GetAppInfo(ctx context.Context) models.AppInfoResponse {
	return models.AppInfoResponse{
		Version:       f.GetAppVersion(ctx),
		StartedAt:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		UptimeSeconds: 42,
	}
}

func newTestHandler(accounts *fakeAccountService, opts ...Option) *Handler {
	return NewHandler(&service.Services{
		AccountService: accounts,
		AuthService:    &fakeAuthService{accountID: 7},
		AppInfoService: fakeAppInfoService{},
	}, logger.Nop(), opts...)
}

// storedAccount returns an active account with id 7.
func storedAccount() *account.Account {
	a, err := account.FromRecord(models.AccountRecord{
		ID:       7,
		Username: "alice",
		Email:    "alice@example.com",
		Password: "salt$digest",
		Active:   true,
	})
	if err != nil {
		panic(err)
	}
	return a
}

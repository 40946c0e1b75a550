// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-account-keeper/internal/account"
	"github.com/MKhiriev/go-account-keeper/internal/cache"
	"github.com/MKhiriev/go-account-keeper/internal/config"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/notify"
	"github.com/MKhiriev/go-account-keeper/internal/store"
	"github.com/MKhiriev/go-account-keeper/internal/validators"
	"github.com/MKhiriev/go-account-keeper/models"
)

// deadlines bound how long an interaction code may be confirmed.
type deadlines map[account.InteractionKind]time.Duration

// accountService is the concrete implementation of [AccountService].
type accountService struct {
	store     store.AccountStore
	mailer    *mailer
	validator validators.Validator
	policy    account.Policy
	deadlines deadlines

	logger *logger.Logger
}

// NewAccountService constructs an [AccountService] over accountStore.
// Accounts it creates or loads carry policy; e-mails go to outbox.
func NewAccountService(accountStore store.AccountStore, outbox Outbox, policy account.Policy, cfg config.StructuredConfig, logger *logger.Logger) AccountService {
	return &accountService{
		store:     accountStore,
		mailer:    newMailer(outbox, cfg.Mail),
		validator: validators.NewSelectorValidator(),
		policy:    policy,
		deadlines: deadlines{
			account.InteractionActivate: cfg.App.ActivationDeadline,
			account.InteractionReset:    cfg.App.ResetDeadline,
			account.InteractionDelete:   cfg.App.DeleteDeadline,
		},
		logger: logger,
	}
}

// NewAccount implements [AccountService].
func (s *accountService) NewAccount(username, email string) (*account.Account, error) {
	return account.New(username, email, account.WithPolicy(s.policy))
}

// Create inserts a new account.
//
// Both uniqueness checks and the insert run in one transaction. A password
// is generated when none was set. With opts.Notify an activation code is
// issued and e-mailed together with the clear-text password once the
// transaction has committed. On failure a is left as it was passed in.
func (s *accountService) Create(ctx context.Context, c *cache.Identity, a *account.Account, opts CreateOptions) error {
	const op = "AccountService.Create"
	log := logger.FromContext(ctx)

	if a == nil {
		return account.NewError(op, account.ErrArgument, "no account given", nil)
	}
	if !a.IsNew() {
		return account.NewError(op, account.ErrAccountState,
			fmt.Sprintf("account for %s (%s) is not new", a.Username(), a.Email()), nil)
	}

	if c.Matches(a.Username(), a.Email()) {
		c.Invalidate()
	}

	var mail *pendingMail
	var id int64
	var registeredAt time.Time

	before := a.Snapshot()
	err := s.store.WithinTx(ctx, func(ctx context.Context, repo store.AccountRepository) error {
		taken, err := repo.ExistsAny(ctx, models.ByUsername(a.Username()))
		if err != nil {
			return account.NewError(op, account.ErrPersistence, "checking username", err)
		}
		if taken {
			return account.NewError(op, account.ErrDuplicateUsername,
				fmt.Sprintf("username %q already exists", a.Username()), nil)
		}

		taken, err = repo.ExistsAny(ctx, models.ByEmail(a.Email()))
		if err != nil {
			return account.NewError(op, account.ErrPersistence, "checking e-mail", err)
		}
		if taken {
			return account.NewError(op, account.ErrDuplicateEmail,
				fmt.Sprintf("e-mail %q already exists", a.Email()), nil)
		}

		if a.PasswordHash() == "" {
			password, err := a.GeneratePassword()
			if err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
			if err = a.SetPassword(password); err != nil {
				return err
			}
		}

		if opts.Activated {
			a.Activate()
		}

		if opts.Notify != nil {
			code, err := a.SetActivation()
			if err != nil {
				return err
			}
			mail = s.mailer.compose(a, mailActivation, *opts.Notify, notify.Vars{
				notify.VarPassword: a.ClearTextPassword(),
				notify.VarURL:      code,
			})
		}

		id, registeredAt, err = repo.Insert(ctx, a.Record())
		if err != nil {
			return persistenceError(op, err)
		}
		return nil
	})
	if err != nil {
		a.Restore(before)
		log.Err(err).Str("func", "accountService.Create").Str("username", a.Username()).Msg("account was not created")
		return err
	}

	a.MarkInserted(id, registeredAt)
	s.mailer.deliver(ctx, mail)

	log.Info().Str("func", "accountService.Create").Int64("id", id).Str("username", a.Username()).Msg("account created")
	return nil
}

// Store persists a: new accounts are inserted, existing ones get a
// partial update of their changed columns. Nothing happens when nothing
// changed. The changed-field set is cleared only after commit.
func (s *accountService) Store(ctx context.Context, c *cache.Identity, a *account.Account) error {
	const op = "AccountService.Store"
	log := logger.FromContext(ctx)

	if a == nil {
		return account.NewError(op, account.ErrArgument, "no account given", nil)
	}
	if !a.IsDirty() {
		return nil
	}
	if a.IsNew() && a.PasswordHash() == "" {
		return account.NewError(op, account.ErrAccountState, "password cannot be blank", nil)
	}

	if c.Matches(a.Username(), a.Email()) || identityChanged(a) {
		c.Invalidate()
	}

	var id int64
	var registeredAt time.Time

	err := s.store.WithinTx(ctx, func(ctx context.Context, repo store.AccountRepository) error {
		var err error
		if a.IsNew() {
			id, registeredAt, err = repo.Insert(ctx, a.Record())
		} else {
			columns, values := a.Changes()
			err = repo.UpdatePartial(ctx, a.ID(), columns, values)
		}
		if err != nil {
			return persistenceError(op, err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "accountService.Store").Int64("id", a.ID()).Msg("account was not stored")
		return err
	}

	if a.IsNew() {
		a.MarkInserted(id, registeredAt)
	} else {
		a.MarkStored()
	}
	return nil
}

// identityChanged reports whether a's username or e-mail is among its
// changed fields.
func identityChanged(a *account.Account) bool {
	for _, f := range a.DirtyFields() {
		if f == account.FieldUsername || f == account.FieldEmail {
			return true
		}
	}
	return false
}

// ResetPassword sets a new password, either immediately or pending a
// confirmed reset, and stores the account.
func (s *accountService) ResetPassword(ctx context.Context, c *cache.Identity, a *account.Account, opts ResetOptions) error {
	const op = "AccountService.ResetPassword"

	if a == nil {
		return account.NewError(op, account.ErrArgument, "no account given", nil)
	}

	password := opts.Password
	if password == "" {
		generated, err := a.GeneratePassword()
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		password = generated
	}

	var err error
	var code string
	if opts.confirmation() {
		if err = a.SetPendingPassword(password); err != nil {
			return err
		}
		if code, err = a.SetReset(); err != nil {
			return err
		}
	} else if err = a.SetPassword(password); err != nil {
		return err
	}

	var mail *pendingMail
	if opts.Notify != nil {
		mail = s.mailer.compose(a, mailReset, *opts.Notify, notify.Vars{
			notify.VarPassword: password,
			notify.VarURL:      code,
		})
	}

	if err = s.Store(ctx, c, a); err != nil {
		return err
	}

	s.mailer.deliver(ctx, mail)
	return nil
}

// Delete removes the accounts matching selector.
//
// With confirmation (the default when opts.Notify is set) the account is
// kept and a delete code is stored instead. The code is e-mailed only when
// opts.Notify is set. Without confirmation opts.Notify sends a notice once
// the removal has committed.
func (s *accountService) Delete(ctx context.Context, c *cache.Identity, selector models.Selector, opts DeleteOptions) error {
	const op = "AccountService.Delete"
	log := logger.FromContext(ctx)

	if selector.IsEmpty() {
		return account.NewError(op, account.ErrAccountState, "no user information for deletion", nil)
	}

	if c.Matches(selector.Username, selector.Email) {
		c.Invalidate()
	}

	confirm := opts.confirmation()

	var a *account.Account
	if confirm || opts.Notify != nil {
		var found bool
		var err error
		a, found, err = s.Fetch(ctx, c, firstKey(selector))
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}
	}

	if confirm {
		code, err := a.SetDelete()
		if err != nil {
			return err
		}

		var mail *pendingMail
		if opts.Notify != nil {
			mail = s.mailer.compose(a, mailDelete, *opts.Notify, notify.Vars{notify.VarURL: code})
		}

		if err = s.Store(ctx, c, a); err != nil {
			return err
		}
		s.mailer.deliver(ctx, mail)
		return nil
	}

	var mail *pendingMail
	if opts.Notify != nil {
		mail = s.mailer.compose(a, mailDelete, *opts.Notify, notify.Vars{notify.VarURL: ""})
	}

	var removed int64
	err := s.store.WithinTx(ctx, func(ctx context.Context, repo store.AccountRepository) error {
		var err error
		removed, err = repo.DeleteWhere(ctx, selector)
		if err != nil {
			return persistenceError(op, err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "accountService.Delete").Msg("account was not deleted")
		return err
	}

	c.Invalidate()
	s.mailer.deliver(ctx, mail)
	log.Info().Str("func", "accountService.Delete").Int64("removed", removed).Msg("accounts deleted")
	return nil
}

// ConfirmDelete removes the matching accounts immediately.
func (s *accountService) ConfirmDelete(ctx context.Context, c *cache.Identity, selector models.Selector) error {
	return s.Delete(ctx, c, selector, DeleteOptions{})
}

// Suspend deactivates the matching accounts and returns how many were
// affected. With n the account found by the first selector key is e-mailed
// after the update.
func (s *accountService) Suspend(ctx context.Context, c *cache.Identity, selector models.Selector, n *Notification) (int64, error) {
	const op = "AccountService.Suspend"
	log := logger.FromContext(ctx)

	if selector.IsEmpty() {
		return 0, account.NewError(op, account.ErrAccountState, "no information for account suspension", nil)
	}

	var mail *pendingMail
	if n != nil {
		a, found, err := s.Fetch(ctx, c, firstKey(selector))
		if err != nil {
			return 0, err
		}
		if found {
			mail = s.mailer.compose(a, mailSuspend, *n, nil)
		}
	}

	c.Invalidate()

	var suspended int64
	err := s.store.WithinTx(ctx, func(ctx context.Context, repo store.AccountRepository) error {
		var err error
		suspended, err = repo.SuspendWhere(ctx, selector)
		if err != nil {
			return persistenceError(op, err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "accountService.Suspend").Msg("account was not suspended")
		return 0, err
	}

	if suspended > 0 {
		s.mailer.deliver(ctx, mail)
	}
	log.Info().Str("func", "accountService.Suspend").Int64("suspended", suspended).Msg("accounts suspended")
	return suspended, nil
}

// Fetch returns the account matching every non-empty selector field.
// found is false when there is none; that is not an error.
func (s *accountService) Fetch(ctx context.Context, c *cache.Identity, selector models.Selector) (*account.Account, bool, error) {
	const op = "AccountService.Fetch"

	if selector.IsEmpty() {
		return nil, false, account.NewError(op, account.ErrAccountState, "no user account information to look for", nil)
	}
	if err := s.validator.Validate(ctx, selector, validators.FieldUsername, validators.FieldEmail); err != nil {
		return nil, false, account.NewError(op, account.ErrValidation, "malformed lookup key", err)
	}

	if a, ok := cachedBySelector(c, selector); ok {
		return a, true, nil
	}

	record, err := s.store.FindBySelector(ctx, selector)
	return s.load(ctx, op, c, record, err)
}

// cachedBySelector returns the cached account when it equals every
// non-empty selector field.
func cachedBySelector(c *cache.Identity, selector models.Selector) (*account.Account, bool) {
	var a *account.Account
	var ok bool
	if selector.Username != "" {
		a, ok = c.ByUsername(selector.Username)
	} else {
		a, ok = c.ByEmail(selector.Email)
	}
	if !ok {
		return nil, false
	}
	if selector.Email != "" && a.Email() != selector.Email {
		return nil, false
	}
	return a, true
}

// FetchByID returns the account with the given id.
func (s *accountService) FetchByID(ctx context.Context, c *cache.Identity, id int64) (*account.Account, bool, error) {
	const op = "AccountService.FetchByID"

	if id <= 0 {
		return nil, false, account.NewError(op, account.ErrArgument, "account id must be positive", nil)
	}

	record, err := s.store.FindByID(ctx, id)
	return s.load(ctx, op, c, record, err)
}

// FetchByInteractionCode returns the account with the outstanding
// interaction code.
func (s *accountService) FetchByInteractionCode(ctx context.Context, c *cache.Identity, code string) (*account.Account, bool, error) {
	const op = "AccountService.FetchByInteractionCode"

	if !validators.ValidInteractionCode(code) {
		return nil, false, account.NewError(op, account.ErrValidation, "interaction code is not the right format", validators.ErrInvalidInteractionCode)
	}

	if a, ok := c.ByCode(code); ok {
		return a, true, nil
	}

	record, err := s.store.FindByInteractionCode(ctx, code)
	return s.load(ctx, op, c, record, err)
}

// load turns a store lookup result into an account and caches it. A miss
// empties the cache.
func (s *accountService) load(ctx context.Context, op string, c *cache.Identity, record models.AccountRecord, err error) (*account.Account, bool, error) {
	if errors.Is(err, store.ErrAccountNotFound) {
		c.Invalidate()
		return nil, false, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", op).Msg("account lookup failed")
		return nil, false, account.NewError(op, account.ErrPersistence, "account lookup failed", err)
	}

	a, err := account.FromRecord(record, account.WithPolicy(s.policy))
	if err != nil {
		return nil, false, err
	}

	c.Put(a)
	return a, true, nil
}

// Exists reports whether an account has the username OR the e-mail.
func (s *accountService) Exists(ctx context.Context, selector models.Selector) (bool, error) {
	const op = "AccountService.Exists"

	if selector.IsEmpty() {
		return false, account.NewError(op, account.ErrArgument, "username or e-mail is required", nil)
	}

	exists, err := s.store.ExistsAny(ctx, selector)
	if err != nil {
		return false, account.NewError(op, account.ErrPersistence, "existence check failed", err)
	}
	return exists, nil
}

// SendMessage implements [AccountService]. Variables default to sender,
// username, email and base.
func (s *accountService) SendMessage(ctx context.Context, a *account.Account, n Notification) {
	if a == nil {
		return
	}
	s.mailer.deliver(ctx, s.mailer.compose(a, mailCustom, n, nil))
}

// firstKey narrows selector to its username, or its e-mail when there is
// no username.
func firstKey(selector models.Selector) models.Selector {
	if selector.Username != "" {
		return models.ByUsername(selector.Username)
	}
	return models.ByEmail(selector.Email)
}

// persistenceError classifies a store failure. Uniqueness violations keep
// their duplicate kind; everything else is ErrPersistence.
func persistenceError(op string, err error) error {
	switch {
	case errors.Is(err, store.ErrUsernameTaken):
		return account.NewError(op, account.ErrDuplicateUsername, "username already exists", err)
	case errors.Is(err, store.ErrEmailTaken):
		return account.NewError(op, account.ErrDuplicateEmail, "e-mail already exists", err)
	default:
		return account.NewError(op, account.ErrPersistence, "transaction rolled back", err)
	}
}

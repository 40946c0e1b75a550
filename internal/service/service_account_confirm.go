package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-account-keeper/internal/account"
	"github.com/MKhiriev/go-account-keeper/internal/cache"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/notify"
	"github.com/MKhiriev/go-account-keeper/models"
)

// Confirm completes the interaction identified by code.
//
// The outstanding interaction must be of kind and within its configured
// deadline. Activation activates and stores the account, reset promotes the
// pending password, delete removes the account. The confirmed account is
// returned.
func (s *accountService) Confirm(ctx context.Context, c *cache.Identity, kind account.InteractionKind, code string) (*account.Account, error) {
	const op = "AccountService.Confirm"
	log := logger.FromContext(ctx)

	if !kind.Valid() {
		return nil, account.NewError(op, account.ErrValidation, "unknown interaction kind", nil)
	}

	a, found, err := s.FetchByInteractionCode(ctx, c, code)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	timely, err := a.IsInteractionTimely(kind, s.deadlines[kind])
	if err != nil {
		return nil, err
	}
	if !timely {
		log.Info().Str("func", "accountService.Confirm").Str("kind", kind.String()).Int64("id", a.ID()).Msg("interaction code expired")
		return nil, fmt.Errorf("%s: %w", op, ErrInteractionExpired)
	}

	switch kind {
	case account.InteractionActivate:
		a.Activate()
		err = s.Store(ctx, c, a)
	case account.InteractionReset:
		if err = a.ConfirmReset(); err != nil {
			return nil, err
		}
		err = s.Store(ctx, c, a)
	case account.InteractionDelete:
		err = s.ConfirmDelete(ctx, c, models.ByUsername(a.Username()))
	}
	if err != nil {
		return nil, err
	}

	log.Info().Str("func", "accountService.Confirm").Str("kind", kind.String()).Int64("id", a.ID()).Msg("interaction confirmed")
	return a, nil
}

// RequestCode issues a fresh interaction code of kind for the account with
// the given e-mail and mails it. A reset request also generates a new
// pending password, since the clear text of an older one is not known.
func (s *accountService) RequestCode(ctx context.Context, c *cache.Identity, kind account.InteractionKind, email string) error {
	const op = "AccountService.RequestCode"

	if !kind.Valid() {
		return account.NewError(op, account.ErrValidation, "unknown interaction kind", nil)
	}

	a, found, err := s.Fetch(ctx, c, models.ByEmail(email))
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	if kind == account.InteractionReset {
		return s.ResetPassword(ctx, c, a, ResetOptions{
			RequireConfirmation: Bool(true),
			Notify:              &Notification{},
		})
	}

	code, err := a.SetInteraction(kind)
	if err != nil {
		return err
	}

	mk := mailActivation
	if kind == account.InteractionDelete {
		mk = mailDelete
	}
	mail := s.mailer.compose(a, mk, Notification{}, notify.Vars{notify.VarURL: code})

	if err = s.Store(ctx, c, a); err != nil {
		return err
	}

	s.mailer.deliver(ctx, mail)
	return nil
}

// Login authenticates username with password. An unknown username, a
// malformed one and a wrong password all yield ErrWrongCredentials; an
// inactive account yields ErrAccountState.
func (s *accountService) Login(ctx context.Context, c *cache.Identity, username, password string) (*account.Account, error) {
	const op = "AccountService.Login"
	log := logger.FromContext(ctx)

	a, found, err := s.Fetch(ctx, c, models.ByUsername(username))
	if errors.Is(err, account.ErrValidation) || errors.Is(err, account.ErrAccountState) {
		return nil, fmt.Errorf("%s: %w", op, ErrWrongCredentials)
	}
	if err != nil {
		return nil, err
	}
	if !found {
		log.Info().Str("func", "accountService.Login").Str("username", username).Msg("unknown username")
		return nil, fmt.Errorf("%s: %w", op, ErrWrongCredentials)
	}

	ok, err := a.Authenticate(password)
	if err != nil {
		return nil, err
	}
	if !ok {
		log.Info().Str("func", "accountService.Login").Int64("id", a.ID()).Msg("wrong password")
		return nil, fmt.Errorf("%s: %w", op, ErrWrongCredentials)
	}

	return a, nil
}

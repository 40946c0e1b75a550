// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-account-keeper/internal/logger"
)

// accountStore is an [AccountStore] over a [DB]. Its embedded repository
// runs statements on the pool; WithinTx hands fn a repository bound to a
// transaction.
type accountStore struct {
	*accountRepository
	db     *DB
	logger *logger.Logger
}

// NewAccountStore constructs the [AccountStore] used by the account service.
func NewAccountStore(db *DB, logger *logger.Logger) AccountStore {
	logger.Debug().Str("dialect", string(db.dialect)).Msg("creating account storage")
	return &accountStore{
		accountRepository: newAccountRepository(db.DB, db, logger),
		db:                db,
		logger:            logger,
	}
}

// WithinTx runs fn in one transaction.
func (s *accountStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repo AccountRepository) error) error {
	log := logger.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "accountStore.WithinTx").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	repo := newAccountRepository(tx, s.db, s.logger)
	repo.now = s.now

	if err = fn(ctx, repo); err != nil {
		log.Debug().Err(err).Str("func", "accountStore.WithinTx").Msg("rolling back transaction")
		return err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "accountStore.WithinTx").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/models"
)

// querier is satisfied by both *sql.DB and *sql.Tx, so one repository
// implementation serves pooled and transactional access.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// accountRepository is the database/sql implementation of [AccountRepository].
//
// All methods obtain a context-scoped logger via [logger.FromContext].
type accountRepository struct {
	q          querier
	ph         sq.PlaceholderFormat
	classifier ErrorClassificator
	now        func() time.Time
	logger     *logger.Logger
}

// NewAccountRepository constructs an [AccountRepository] that runs every
// statement directly on the connection pool.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return newAccountRepository(db.DB, db, logger)
}

func newAccountRepository(q querier, db *DB, logger *logger.Logger) *accountRepository {
	classifier := db.errorClassificator
	if classifier == nil {
		classifier = NewPostgresErrorClassifier()
	}
	return &accountRepository{
		q:          q,
		ph:         db.dialect.placeholder(),
		classifier: classifier,
		now:        time.Now,
		logger:     logger,
	}
}

func (r *accountRepository) FindByID(ctx context.Context, id int64) (models.AccountRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectByIDQuery(r.ph, id)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.FindByID").Msg("error building query")
		return models.AccountRecord{}, err
	}

	return r.findOne(ctx, "accountRepository.FindByID", query, args)
}

func (r *accountRepository) FindByUsername(ctx context.Context, username string) (models.AccountRecord, error) {
	return r.FindBySelector(ctx, models.ByUsername(username))
}

func (r *accountRepository) FindByEmail(ctx context.Context, email string) (models.AccountRecord, error) {
	return r.FindBySelector(ctx, models.ByEmail(email))
}

// FindBySelector returns the row equal to every non-empty selector field.
func (r *accountRepository) FindBySelector(ctx context.Context, selector models.Selector) (models.AccountRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectBySelectorQuery(r.ph, selector)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.FindBySelector").Msg("error building query")
		return models.AccountRecord{}, err
	}

	return r.findOne(ctx, "accountRepository.FindBySelector", query, args)
}

func (r *accountRepository) FindByInteractionCode(ctx context.Context, code string) (models.AccountRecord, error) {
	log := logger.FromContext(ctx)

	if code == "" {
		return models.AccountRecord{}, ErrAccountNotFound
	}

	query, args, err := buildSelectByCodeQuery(r.ph, code)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.FindByInteractionCode").Msg("error building query")
		return models.AccountRecord{}, err
	}

	return r.findOne(ctx, "accountRepository.FindByInteractionCode", query, args)
}

func (r *accountRepository) findOne(ctx context.Context, fn, query string, args []any) (models.AccountRecord, error) {
	log := logger.FromContext(ctx)

	var record models.AccountRecord
	err := r.q.QueryRowContext(ctx, query, args...).Scan(
		&record.ID,
		&record.Username,
		&record.Email,
		&record.Password,
		&record.PendingPassword,
		&record.ActCode,
		&record.ActTime,
		&record.ActType,
		&record.RegisteredAt,
		&record.Active,
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.AccountRecord{}, ErrAccountNotFound
	case err != nil:
		log.Err(err).Str("func", fn).Msg("error querying account")
		return models.AccountRecord{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return record, nil
}

// ExistsAny reports whether a row has the username OR the e-mail.
func (r *accountRepository) ExistsAny(ctx context.Context, selector models.Selector) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildExistsQuery(r.ph, selector)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.ExistsAny").Msg("error building query")
		return false, err
	}

	var count int64
	if err = r.q.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).Str("func", "accountRepository.ExistsAny").Msg("error counting accounts")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count > 0, nil
}

// Insert stores record and returns the generated id and registration time.
func (r *accountRepository) Insert(ctx context.Context, record models.AccountRecord) (int64, time.Time, error) {
	log := logger.FromContext(ctx)

	registeredAt := r.now().UTC()
	query, args, err := buildInsertQuery(r.ph, record, registeredAt)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.Insert").Msg("error building query")
		return 0, time.Time{}, err
	}

	var id int64
	if err = r.q.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		log.Err(err).Str("func", "accountRepository.Insert").Str("username", record.Username).Msg("error inserting account")
		return 0, time.Time{}, r.writeError(err)
	}

	return id, registeredAt, nil
}

// UpdatePartial writes the listed columns of row id.
func (r *accountRepository) UpdatePartial(ctx context.Context, id int64, columns []string, values map[string]any) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateQuery(r.ph, id, columns, values)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.UpdatePartial").Int64("id", id).Msg("error building query")
		return err
	}

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.UpdatePartial").Int64("id", id).Strs("columns", columns).Msg("error updating account")
		return r.writeError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

func (r *accountRepository) DeleteWhere(ctx context.Context, selector models.Selector) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteQuery(r.ph, selector)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.DeleteWhere").Msg("error building query")
		return 0, err
	}

	return r.exec(ctx, "accountRepository.DeleteWhere", query, args)
}

func (r *accountRepository) SuspendWhere(ctx context.Context, selector models.Selector) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSuspendQuery(r.ph, selector)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.SuspendWhere").Msg("error building query")
		return 0, err
	}

	return r.exec(ctx, "accountRepository.SuspendWhere", query, args)
}

func (r *accountRepository) exec(ctx context.Context, fn, query string, args []any) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error executing statement")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	log.Debug().Str("func", fn).Int64("rows", affected).Msg("statement executed")
	return affected, nil
}

// writeError maps uniqueness violations to ErrUsernameTaken/ErrEmailTaken.
func (r *accountRepository) writeError(err error) error {
	column, ok := r.classifier.UniqueViolation(err)
	if !ok {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	switch column {
	case "username":
		return fmt.Errorf("%w: %w", ErrUsernameTaken, err)
	case "email":
		return fmt.Errorf("%w: %w", ErrEmailTaken, err)
	default:
		return fmt.Errorf("%w: unique violation: %w", ErrExecutingStatement, err)
	}
}

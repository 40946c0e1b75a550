// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store persists accounts in a relational database.
//
// PostgreSQL (through pgx's database/sql driver) and SQLite (go-sqlite3)
// are supported; the dialect is chosen from the DSN. Queries are built with
// squirrel. Every write path of the account service runs inside
// [AccountStore.WithinTx].
package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-account-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// AccountRepository reads and writes rows of the accounts table.
//
// Selectors with both username and e-mail match rows where both are
// equal, except for ExistsAny, which matches either.
type AccountRepository interface {
	FindByID(ctx context.Context, id int64) (models.AccountRecord, error)
	FindByUsername(ctx context.Context, username string) (models.AccountRecord, error)
	FindByEmail(ctx context.Context, email string) (models.AccountRecord, error)
	FindBySelector(ctx context.Context, selector models.Selector) (models.AccountRecord, error)
	FindByInteractionCode(ctx context.Context, code string) (models.AccountRecord, error)

	// ExistsAny reports whether a row matches the username OR the e-mail.
	ExistsAny(ctx context.Context, selector models.Selector) (bool, error)

	// Insert stores a new row and returns its id and registration time.
	Insert(ctx context.Context, record models.AccountRecord) (int64, time.Time, error)

	// UpdatePartial writes only the given columns of row id.
	UpdatePartial(ctx context.Context, id int64, columns []string, values map[string]any) error

	// DeleteWhere removes matching rows and returns how many were removed.
	DeleteWhere(ctx context.Context, selector models.Selector) (int64, error)

	// SuspendWhere sets active=false on matching rows.
	SuspendWhere(ctx context.Context, selector models.Selector) (int64, error)
}

// AccountStore is an AccountRepository bound to the connection pool that
// can also run a group of operations in one transaction.
type AccountStore interface {
	AccountRepository

	// WithinTx runs fn inside a transaction. The transaction is committed
	// when fn returns nil and rolled back otherwise; fn's error is returned
	// unchanged.
	WithinTx(ctx context.Context, fn func(ctx context.Context, repo AccountRepository) error) error
}

// ErrorClassificator interprets driver errors of one database dialect.
type ErrorClassificator interface {
	// Classify reports whether the failed operation may be retried.
	Classify(err error) ErrorClassification

	// UniqueViolation reports whether err is a uniqueness violation and,
	// if so, which column ("username" or "email") caused it. The column is
	// "" when it cannot be determined.
	UniqueViolation(err error) (column string, ok bool)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-account-keeper/internal/config"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/migrations"
)

// Dialect names a supported SQL dialect.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

// placeholder returns the bind-variable format of the dialect.
func (d Dialect) placeholder() sq.PlaceholderFormat {
	if d == DialectSQLite {
		return sq.Question
	}
	return sq.Dollar
}

// DB is an open connection pool together with its dialect and the
// classifier of its driver errors.
type DB struct {
	*sql.DB
	dialect            Dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// DialectFromDSN picks the dialect for dsn. It returns the dialect and the
// data source name as the driver expects it.
func DialectFromDSN(dsn string) (Dialect, string, error) {
	switch {
	case strings.HasPrefix(dsn, "sqlite3://"):
		return DialectSQLite, strings.TrimPrefix(dsn, "sqlite3://"), nil
	case strings.HasPrefix(dsn, "file:"):
		return DialectSQLite, dsn, nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"),
		strings.Contains(dsn, "host="):
		return DialectPostgres, dsn, nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedDSN, redactDSN(dsn))
	}
}

// NewConnect opens the database selected by cfg.DSN.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	dialect, dsn, err := DialectFromDSN(cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnect").Msg("cannot choose database driver")
		return nil, err
	}

	switch dialect {
	case DialectSQLite:
		return NewConnectSQLite(ctx, dsn, log)
	default:
		return NewConnectPostgres(ctx, dsn, log)
	}
}

// Dialect returns the SQL dialect of the connection.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Migrate applies all pending schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, string(db.dialect))
}

// IsRetryable reports whether err, returned by a store operation, is a
// transient driver failure.
func (db *DB) IsRetryable(err error) bool {
	return db.errorClassificator.Classify(err) == Retryable
}

func redactDSN(dsn string) string {
	if i := strings.Index(dsn, "@"); i >= 0 {
		if j := strings.Index(dsn, "://"); j >= 0 && j < i {
			return dsn[:j+3] + "***" + dsn[i:]
		}
	}
	return dsn
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-account-keeper/internal/logger"
)

func NewConnectSQLite(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	// sqlite serialises writers; one connection avoids SQLITE_BUSY on
	// concurrent transactions
	conn.SetMaxOpenConns(1)

	// ping database
	err = conn.PingContext(ctx)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		conn.Close()
		return nil, err
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	// construct a DB struct
	db := &DB{
		DB:                 conn,
		dialect:            DialectSQLite,
		logger:             log,
		errorClassificator: NewSQLiteErrorClassifier(),
	}

	return db, nil
}

// SQLiteErrorClassifier implements [ErrorClassificator] for go-sqlite3.
type SQLiteErrorClassifier struct{}

func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify treats busy and locked databases as retryable.
func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked:
			return Retryable
		}
	}
	return NonRetryable
}

// UniqueViolation recognises SQLITE_CONSTRAINT_UNIQUE. The column is taken
// from the error message ("UNIQUE constraint failed: accounts.email").
func (c *SQLiteErrorClassifier) UniqueViolation(err error) (string, bool) {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.ExtendedCode != sqlite3.ErrConstraintUnique {
		return "", false
	}
	return columnFromMessage(err.Error()), true
}

func columnFromMessage(msg string) string {
	switch {
	case strings.Contains(msg, "username"):
		return "username"
	case strings.Contains(msg, "email"):
		return "email"
	default:
		return ""
	}
}

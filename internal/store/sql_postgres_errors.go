package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells whether a failed database operation may succeed
// when attempted again.
type ErrorClassification int

const (
	// NonRetryable is the default for unknown errors, constraint violations
	// and data exceptions.
	NonRetryable ErrorClassification = iota

	// Retryable marks transient failures: lost connections, serialization
	// failures, deadlocks and a server that is starting or shutting down.
	Retryable
)

func (c ErrorClassification) String() string {
	if c == Retryable {
		return "retryable"
	}
	return "non-retryable"
}

// retryablePgCodes lists the SQLSTATE codes worth retrying.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
var retryablePgCodes = map[string]struct{}{
	pgerrcode.ConnectionException:    {}, // 08000
	pgerrcode.ConnectionDoesNotExist: {}, // 08003
	pgerrcode.ConnectionFailure:      {}, // 08006
	pgerrcode.TransactionRollback:    {}, // 40000
	pgerrcode.SerializationFailure:   {}, // 40001
	pgerrcode.DeadlockDetected:       {}, // 40P01
	pgerrcode.TooManyConnections:     {}, // 53300
	pgerrcode.LockNotAvailable:       {}, // 55P03
	pgerrcode.AdminShutdown:          {}, // 57P01
	pgerrcode.CannotConnectNow:       {}, // 57P03
}

// PostgresErrorClassifier implements [ErrorClassificator] over pgx errors.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify unwraps err to a *pgconn.PgError and looks its code up. Anything
// else is [NonRetryable].
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return NonRetryable
	}
	if _, ok := retryablePgCodes[pgErr.Code]; ok {
		return Retryable
	}
	return NonRetryable
}

// UniqueViolation reports the column behind a unique_violation, derived from
// the constraint name (accounts_username_key, accounts_email_key) or, failing
// that, from the error detail.
func (c *PostgresErrorClassifier) UniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return "", false
	}

	column := columnFromMessage(pgErr.ConstraintName)
	if column == "" {
		column = columnFromMessage(pgErr.Detail)
	}
	return column, true
}

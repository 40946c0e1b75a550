package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameTaken is returned when an INSERT or UPDATE violates the
	// uniqueness of the username column.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrEmailTaken is returned when an INSERT or UPDATE violates the
	// uniqueness of the email column.
	ErrEmailTaken = errors.New("email already exists")

	// ErrAccountNotFound is returned when a lookup or update matches no row.
	ErrAccountNotFound = errors.New("account was not found")

	// ErrEmptySelector is returned when a selector carries neither username
	// nor e-mail, so the statement would match every row.
	ErrEmptySelector = errors.New("selector is empty")

	// ErrNothingToUpdate is returned by UpdatePartial without columns.
	ErrNothingToUpdate = errors.New("no columns to update")

	// ErrUnsupportedDSN is returned when the DSN selects no known driver.
	ErrUnsupportedDSN = errors.New("unsupported database DSN")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan account row")
)

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/models"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return &DB{
		DB:                 conn,
		dialect:            DialectPostgres,
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             logger.Nop(),
	}, mock
}

func newTestAccountRepo(t *testing.T) (*accountRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t)
	repo := newAccountRepository(db.DB, db, logger.Nop())
	repo.now = func() time.Time { return testNow }
	return repo, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func accountRows() *sqlmock.Rows {
	return sqlmock.NewRows(accountColumns)
}

func TestFindByUsername_Success(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery(`SELECT id, username, email, .* FROM accounts WHERE username = \$1 LIMIT 1`).
		WithArgs("alice").
		WillReturnRows(accountRows().AddRow(1, "alice", "a@example.com", "hash", nil, "code", testNow, "a", testNow, false))

	record, err := repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, int64(1), record.ID)
	assert.Equal(t, "alice", record.Username)
	assert.Equal(t, "a@example.com", record.Email)
	assert.False(t, record.PendingPassword.Valid)
	assert.Equal(t, sql.NullString{String: "code", Valid: true}, record.ActCode)
	assert.True(t, record.ActTime.Valid)
	assert.Equal(t, "a", record.ActType.String)
	assert.False(t, record.Active)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery(`FROM accounts WHERE id = \$1 LIMIT 1`).
		WithArgs(42).
		WillReturnRows(accountRows().AddRow(42, "alice", "a@example.com", "hash", nil, nil, nil, nil, testNow, true))

	record, err := repo.FindByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "alice", record.Username)
	assert.False(t, record.ActCode.Valid)
	assert.False(t, record.ActTime.Valid)
	assert.True(t, record.Active)
}

func TestFindByEmail_NotFound(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery(`FROM accounts WHERE email = \$1`).
		WithArgs("nobody@example.com").
		WillReturnRows(accountRows())

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestFindBySelector_QueryError(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery(`FROM accounts WHERE`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("network down"))

	_, err := repo.FindBySelector(context.Background(), models.Selector{Username: "alice", Email: "a@example.com"})
	require.ErrorIs(t, err, ErrExecutingQuery)
	assert.NotErrorIs(t, err, ErrAccountNotFound)
}

func TestFindBySelector_EmptySelector(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	_, err := repo.FindBySelector(context.Background(), models.Selector{})
	require.ErrorIs(t, err, ErrEmptySelector)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByInteractionCode(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery(`FROM accounts WHERE act_code = \$1`).
		WithArgs("xyz").
		WillReturnRows(accountRows().AddRow(5, "bob", "b@example.com", "hash", "pending", "xyz", testNow, "r", testNow, true))

	record, err := repo.FindByInteractionCode(context.Background(), "xyz")
	require.NoError(t, err)
	assert.Equal(t, int64(5), record.ID)
	assert.Equal(t, "pending", record.PendingPassword.String)

	_, err = repo.FindByInteractionCode(context.Background(), "")
	require.ErrorIs(t, err, ErrAccountNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExistsAny(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  bool
	}{
		{name: "exists", count: 1, want: true},
		{name: "absent", count: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestAccountRepo(t)

			mock.ExpectQuery(`SELECT COUNT\(\*\) FROM accounts WHERE \(username = \$1 OR email = \$2\)`).
				WithArgs("alice", "a@example.com").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))

			got, err := repo.ExistsAny(context.Background(), models.Selector{Username: "alice", Email: "a@example.com"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInsert_Success(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	record := models.AccountRecord{
		Username: "alice",
		Email:    "a@example.com",
		Password: "hash",
		ActCode:  sql.NullString{String: "code", Valid: true},
		ActTime:  sql.NullTime{Time: testNow, Valid: true},
		ActType:  sql.NullString{String: "a", Valid: true},
	}

	mock.ExpectQuery(`INSERT INTO accounts .* RETURNING id`).
		WithArgs("alice", "a@example.com", "hash", nil, "code", testNow, "a", testNow, false).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	id, registeredAt, err := repo.Insert(context.Background(), record)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, testNow, registeredAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_UniqueViolation(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		detail     string
		want       error
	}{
		{name: "username by constraint", constraint: "accounts_username_key", want: ErrUsernameTaken},
		{name: "email by constraint", constraint: "accounts_email_key", want: ErrEmailTaken},
		{name: "email by detail", detail: "Key (email)=(a@example.com) already exists.", want: ErrEmailTaken},
		{name: "unknown column", want: ErrExecutingStatement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestAccountRepo(t)

			mock.ExpectQuery(`INSERT INTO accounts`).
				WillReturnError(&pgconn.PgError{
					Code:           pgerrcode.UniqueViolation,
					ConstraintName: tt.constraint,
					Detail:         tt.detail,
				})

			_, _, err := repo.Insert(context.Background(), models.AccountRecord{Username: "alice", Email: "a@example.com"})
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestInsert_OtherError(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery(`INSERT INTO accounts`).
		WillReturnError(pgError(pgerrcode.ConnectionFailure))

	_, _, err := repo.Insert(context.Background(), models.AccountRecord{Username: "alice"})
	require.ErrorIs(t, err, ErrExecutingStatement)
	assert.NotErrorIs(t, err, ErrUsernameTaken)
}

func TestUpdatePartial(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock := newTestAccountRepo(t)

		mock.ExpectExec(`UPDATE accounts SET active = \$1, act_code = \$2 WHERE id = \$3`).
			WithArgs(true, nil, 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdatePartial(context.Background(), 3,
			[]string{"active", "act_code"},
			map[string]any{"active": true, "act_code": nil})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		repo, mock := newTestAccountRepo(t)

		mock.ExpectExec(`UPDATE accounts`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdatePartial(context.Background(), 3, []string{"active"}, map[string]any{"active": true})
		require.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo, mock := newTestAccountRepo(t)

		mock.ExpectExec(`UPDATE accounts`).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "accounts_email_key"})

		err := repo.UpdatePartial(context.Background(), 3, []string{"email"}, map[string]any{"email": "b@example.com"})
		require.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("nothing to update", func(t *testing.T) {
		repo, mock := newTestAccountRepo(t)

		err := repo.UpdatePartial(context.Background(), 3, nil, nil)
		require.ErrorIs(t, err, ErrNothingToUpdate)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteWhere(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectExec(`DELETE FROM accounts WHERE username = \$1`).
		WithArgs("alice").
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.DeleteWhere(context.Background(), models.ByUsername("alice"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.DeleteWhere(context.Background(), models.Selector{})
	require.ErrorIs(t, err, ErrEmptySelector)
}

func TestSuspendWhere(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectExec(`UPDATE accounts SET active = \$1 WHERE`).
		WithArgs(false, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.SuspendWhere(context.Background(), models.Selector{Username: "alice", Email: "a@example.com"})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSuspendWhere_ExecError(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectExec(`UPDATE accounts`).
		WillReturnError(fmt.Errorf("boom"))

	_, err := repo.SuspendWhere(context.Background(), models.ByEmail("a@example.com"))
	require.ErrorIs(t, err, ErrExecutingStatement)
}

func TestWithinTx_Commit(t *testing.T) {
	db, mock := newTestDB(t)
	s := NewAccountStore(db, logger.Nop())

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE accounts SET active = \$1 WHERE id = \$2`).
		WithArgs(true, 9).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.WithinTx(context.Background(), func(ctx context.Context, repo AccountRepository) error {
		return repo.UpdatePartial(ctx, 9, []string{"active"}, map[string]any{"active": true})
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	db, mock := newTestDB(t)
	s := NewAccountStore(db, logger.Nop())

	sentinel := errors.New("abort")
	mock.ExpectBegin()
	mock.ExpectRollback()

	err := s.WithinTx(context.Background(), func(ctx context.Context, repo AccountRepository) error {
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_BeginError(t *testing.T) {
	db, mock := newTestDB(t)
	s := NewAccountStore(db, logger.Nop())

	mock.ExpectBegin().WillReturnError(errors.New("no connection"))

	called := false
	err := s.WithinTx(context.Background(), func(ctx context.Context, repo AccountRepository) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, ErrBeginningTransaction)
	assert.False(t, called)
}

func TestWithinTx_CommitError(t *testing.T) {
	db, mock := newTestDB(t)
	s := NewAccountStore(db, logger.Nop())

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("commit failed"))

	err := s.WithinTx(context.Background(), func(ctx context.Context, repo AccountRepository) error {
		return nil
	})
	require.ErrorIs(t, err, ErrCommitingTransaction)
}

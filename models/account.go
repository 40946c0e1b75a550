package models

import (
	"database/sql"
	"time"
)

// AccountRecord is the persisted row of the accounts table.
//
// Nullable interaction and pending-password columns are NULL whenever the
// account has no outstanding interaction or pending reset.
type AccountRecord struct {
	// ID is the store-assigned identifier. Zero until the row is inserted.
	ID int64 `db:"id"`

	// Username is unique across all rows.
	Username string `db:"username"`

	// Email is unique across all rows.
	Email string `db:"email"`

	// Password is the salt$hexdigest hash of the current password.
	// Empty for accounts that never had a password set.
	Password string `db:"password"`

	// PendingPassword is the hash awaiting reset confirmation.
	PendingPassword sql.NullString `db:"pending_pwd"`

	// ActCode is the outstanding interaction code.
	ActCode sql.NullString `db:"act_code"`

	// ActTime is the instant ActCode was issued.
	ActTime sql.NullTime `db:"act_time"`

	// ActType is the single-character interaction kind: 'a', 'd' or 'r'.
	ActType sql.NullString `db:"act_type"`

	// RegisteredAt is set by the store on insert.
	RegisteredAt time.Time `db:"registered_at"`

	// Active reports whether the account is activated and not suspended.
	Active bool `db:"active"`
}

// TableName returns the name of the database table
// associated with the AccountRecord model.
func (AccountRecord) TableName() string {
	return "accounts"
}

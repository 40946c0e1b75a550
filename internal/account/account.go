// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package account

import (
	"database/sql"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/go-account-keeper/internal/crypto"
	"github.com/MKhiriev/go-account-keeper/internal/validators"
	"github.com/MKhiriev/go-account-keeper/models"
)

// DefaultMinPasswordLength is used when no explicit minimum is configured.
const DefaultMinPasswordLength = 4

// Policy carries the collaborators and limits every account mutation
// depends on.
type Policy struct {
	Codec             crypto.PasswordCodec
	Codes             crypto.CodeGenerator
	MinPasswordLength int
	Now               func() time.Time
}

// Option adjusts the [Policy] of an account.
type Option func(*Policy)

// WithPolicy replaces the whole policy. Zero-valued members fall back to
// defaults.
func WithPolicy(p Policy) Option {
	return func(dst *Policy) {
		if p.Codec != nil {
			dst.Codec = p.Codec
		}
		if p.Codes != nil {
			dst.Codes = p.Codes
		}
		if p.MinPasswordLength > 0 {
			dst.MinPasswordLength = p.MinPasswordLength
		}
		if p.Now != nil {
			dst.Now = p.Now
		}
	}
}

func WithCodec(c crypto.PasswordCodec) Option {
	return func(p *Policy) { p.Codec = c }
}

func WithCodeGenerator(g crypto.CodeGenerator) Option {
	return func(p *Policy) { p.Codes = g }
}

func WithMinPasswordLength(n int) Option {
	return func(p *Policy) { p.MinPasswordLength = n }
}

func WithClock(now func() time.Time) Option {
	return func(p *Policy) { p.Now = now }
}

func newPolicy(opts ...Option) Policy {
	p := Policy{MinPasswordLength: DefaultMinPasswordLength, Now: time.Now}
	for _, opt := range opts {
		opt(&p)
	}
	if p.Codec == nil {
		p.Codec = crypto.NewPasswordCodec()
	}
	if p.Codes == nil {
		// an empty secret never fails
		p.Codes, _ = crypto.NewCodeGenerator("")
	}
	if p.MinPasswordLength <= 0 {
		p.MinPasswordLength = DefaultMinPasswordLength
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	return p
}

// Account is an in-memory user account with validated fields and a record
// of the fields changed since it was loaded or last stored.
//
// An Account is not safe for concurrent use.
type Account struct {
	id           int64
	username     string
	email        string
	password     string
	pending      string
	active       bool
	registeredAt time.Time
	interaction  *Interaction

	// clear-text of the most recent SetPassword, for the outgoing e-mail
	// only; never persisted.
	clearText string

	dirty  dirtySet
	policy Policy
}

// New returns a new, not yet persisted account. Both username and e-mail
// are validated and recorded as changed.
func New(username, email string, opts ...Option) (*Account, error) {
	a := &Account{policy: newPolicy(opts...)}
	if err := a.SetUsername(username); err != nil {
		return nil, err
	}
	if err := a.SetEmail(email); err != nil {
		return nil, err
	}
	return a, nil
}

// FromRecord rebuilds an account from a stored row. The result has no
// changed fields.
func FromRecord(rec models.AccountRecord, opts ...Option) (*Account, error) {
	const op = "account.FromRecord"

	if !validators.ValidUsername(rec.Username) {
		return nil, NewError(op, ErrAccountState, "stored username is malformed", validators.ErrInvalidUsername)
	}
	if !validators.ValidEmail(rec.Email) {
		return nil, NewError(op, ErrAccountState, "stored e-mail is malformed", validators.ErrInvalidEmail)
	}

	a := &Account{
		id:           rec.ID,
		username:     rec.Username,
		email:        rec.Email,
		password:     rec.Password,
		active:       rec.Active,
		registeredAt: rec.RegisteredAt,
		policy:       newPolicy(opts...),
	}
	if rec.PendingPassword.Valid {
		a.pending = rec.PendingPassword.String
	}
	if rec.ActCode.Valid && rec.ActType.Valid {
		kind, ok := KindFromCode(rec.ActType.String)
		if !ok {
			return nil, NewError(op, ErrAccountState, fmt.Sprintf("unknown interaction type %q", rec.ActType.String), nil)
		}
		a.interaction = &Interaction{Kind: kind, Code: rec.ActCode.String}
		if rec.ActTime.Valid {
			a.interaction.IssuedAt = rec.ActTime.Time
		}
	}
	return a, nil
}

func (a *Account) ID() int64               { return a.id }
func (a *Account) Username() string        { return a.username }
func (a *Account) Email() string           { return a.email }
func (a *Account) PasswordHash() string    { return a.password }
func (a *Account) PendingPassword() string { return a.pending }
func (a *Account) Active() bool            { return a.active }
func (a *Account) RegisteredAt() time.Time { return a.registeredAt }

// IsNew reports whether the account has never been inserted.
func (a *Account) IsNew() bool { return a.id == 0 }

// ClearTextPassword returns the clear text of the most recent SetPassword
// call, or "" when the password was not set through this value.
func (a *Account) ClearTextPassword() string { return a.clearText }

// Interaction returns the outstanding interaction, if any.
func (a *Account) Interaction() (Interaction, bool) {
	if a.interaction == nil {
		return Interaction{}, false
	}
	return *a.interaction, true
}

// DirtyFields returns the changed fields in the order they were first
// changed.
func (a *Account) DirtyFields() []Field {
	out := make([]Field, len(a.dirty))
	copy(out, a.dirty)
	return out
}

// IsDirty reports whether any field changed since load or the last
// MarkStored.
func (a *Account) IsDirty() bool { return len(a.dirty) > 0 }

// SetUsername validates and assigns the username.
//
// Stored password hashes are bound to the username at hashing time, so a
// renamed account needs a new password before it can authenticate again.
func (a *Account) SetUsername(username string) error {
	if !validators.ValidUsername(username) {
		return NewError("account.SetUsername", ErrValidation, "invalid username", validators.ErrInvalidUsername)
	}
	a.username = username
	a.dirty.mark(FieldUsername)
	return nil
}

// SetEmail validates and assigns the e-mail address.
func (a *Account) SetEmail(email string) error {
	if !validators.ValidEmail(email) {
		return NewError("account.SetEmail", ErrValidation, "invalid e-mail", validators.ErrInvalidEmail)
	}
	a.email = email
	a.dirty.mark(FieldEmail)
	return nil
}

// SetPassword hashes and assigns a new password. The clear text is kept
// on the value for the outgoing notification.
func (a *Account) SetPassword(cleartext string) error {
	hash, err := a.hashPassword("account.SetPassword", cleartext)
	if err != nil {
		return err
	}
	a.password = hash
	a.clearText = cleartext
	a.dirty.mark(FieldPassword)
	return nil
}

// SetPendingPassword hashes a password that becomes current only after the
// reset is confirmed.
func (a *Account) SetPendingPassword(cleartext string) error {
	hash, err := a.hashPassword("account.SetPendingPassword", cleartext)
	if err != nil {
		return err
	}
	a.pending = hash
	a.clearText = cleartext
	a.dirty.mark(FieldPendingPassword)
	return nil
}

// GeneratePassword returns a random password suitable for SetPassword.
func (a *Account) GeneratePassword() (string, error) {
	return a.policy.Codec.GeneratePassword()
}

func (a *Account) hashPassword(op, cleartext string) (string, error) {
	if utf8.RuneCountInString(cleartext) < a.policy.MinPasswordLength {
		return "", NewError(op, ErrValidation,
			fmt.Sprintf("password must be at least %d characters long", a.policy.MinPasswordLength), nil)
	}
	hash, err := a.policy.Codec.Hash(a.username, cleartext)
	if err != nil {
		return "", fmt.Errorf("%s: hashing password: %w", op, err)
	}
	return hash, nil
}

// SetActive assigns the active flag.
func (a *Account) SetActive(active bool) {
	a.active = active
	a.dirty.mark(FieldActive)
}

// SetInteraction starts a new interaction of the given kind, replacing any
// outstanding one, and returns the issued code.
func (a *Account) SetInteraction(kind InteractionKind) (string, error) {
	const op = "account.SetInteraction"

	if !kind.Valid() {
		return "", NewError(op, ErrValidation, "interaction kind must be 'activate', 'delete', or 'reset'", nil)
	}
	code, issuedAt, err := a.policy.Codes.Issue(a.username)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	a.interaction = &Interaction{Kind: kind, Code: code, IssuedAt: issuedAt}
	a.dirty.mark(FieldInteractionCode, FieldInteractionTime, FieldInteractionKind)
	return code, nil
}

func (a *Account) SetActivation() (string, error) { return a.SetInteraction(InteractionActivate) }
func (a *Account) SetDelete() (string, error)     { return a.SetInteraction(InteractionDelete) }
func (a *Account) SetReset() (string, error)      { return a.SetInteraction(InteractionReset) }

// ClearInteraction removes the outstanding interaction. It is a no-op
// when there is none.
func (a *Account) ClearInteraction() {
	if a.interaction == nil {
		return
	}
	a.interaction = nil
	a.dirty.mark(FieldInteractionCode, FieldInteractionTime, FieldInteractionKind)
}

// IsInteractionTimely reports whether the outstanding interaction of the
// given kind is still within deadline of its issue time.
//
// ErrInteraction is returned when there is no outstanding interaction or
// it is of another kind.
func (a *Account) IsInteractionTimely(kind InteractionKind, deadline time.Duration) (bool, error) {
	const op = "account.IsInteractionTimely"

	if a.interaction == nil {
		return false, NewError(op, ErrInteraction, "no outstanding interaction", nil)
	}
	if a.interaction.Kind != kind {
		return false, NewError(op, ErrInteraction,
			fmt.Sprintf("outstanding interaction is %s, not %s", a.interaction.Kind, kind), nil)
	}
	return crypto.IsTimely(a.interaction.IssuedAt, deadline, a.policy.Now()), nil
}

// Activate clears the outstanding interaction and marks the account
// active.
func (a *Account) Activate() {
	a.ClearInteraction()
	a.SetActive(true)
}

// Authenticate reports whether cleartext matches the current password.
// Inactive accounts are rejected with ErrAccountState.
func (a *Account) Authenticate(cleartext string) (bool, error) {
	if !a.active {
		return false, NewError("account.Authenticate", ErrAccountState, "account is not active", nil)
	}
	return a.policy.Codec.Verify(a.username, cleartext, a.password), nil
}

// ConfirmReset promotes the pending password to the current one and
// clears the outstanding interaction.
func (a *Account) ConfirmReset() error {
	if a.pending == "" {
		return NewError("account.ConfirmReset", ErrAccountState, "no pending password", nil)
	}
	a.ClearInteraction()
	a.password = a.pending
	a.pending = ""
	a.dirty.mark(FieldPassword, FieldPendingPassword)
	return nil
}

// MarkInserted records the identity assigned by the store on insert and
// clears the changed-field set.
func (a *Account) MarkInserted(id int64, registeredAt time.Time) {
	a.id = id
	a.registeredAt = registeredAt
	a.dirty.clear()
}

// MarkStored clears the changed-field set after a successful update.
func (a *Account) MarkStored() {
	a.dirty.clear()
}

// Snapshot is a copy of an account's state taken by [Account.Snapshot].
type Snapshot struct {
	state Account
}

// Snapshot captures the current state so that a failed multi-step
// mutation can be rolled back with Restore.
func (a *Account) Snapshot() Snapshot {
	s := Snapshot{state: *a}
	s.state.dirty = append(dirtySet(nil), a.dirty...)
	if a.interaction != nil {
		in := *a.interaction
		s.state.interaction = &in
	}
	return s
}

// Restore resets the account to the state captured by s.
func (a *Account) Restore(s Snapshot) {
	*a = s.state
	a.dirty = append(dirtySet(nil), s.state.dirty...)
	if s.state.interaction != nil {
		in := *s.state.interaction
		a.interaction = &in
	}
}

// Record returns the full row representation of the account.
func (a *Account) Record() models.AccountRecord {
	rec := models.AccountRecord{
		ID:              a.id,
		Username:        a.username,
		Email:           a.email,
		Password:        a.password,
		PendingPassword: nullString(a.pending),
		RegisteredAt:    a.registeredAt,
		Active:          a.active,
	}
	if a.interaction != nil {
		rec.ActCode = nullString(a.interaction.Code)
		rec.ActTime = sql.NullTime{Time: a.interaction.IssuedAt, Valid: true}
		rec.ActType = nullString(a.interaction.Kind.Code())
	}
	return rec
}

// Changes maps the column of every changed field to its new value, in
// changed-field order. Cleared nullable columns map to nil.
func (a *Account) Changes() ([]string, map[string]any) {
	rec := a.Record()
	columns := make([]string, 0, len(a.dirty))
	values := make(map[string]any, len(a.dirty))

	for _, f := range a.dirty {
		columns = append(columns, f.Column)
		switch f {
		case FieldUsername:
			values[f.Column] = rec.Username
		case FieldEmail:
			values[f.Column] = rec.Email
		case FieldPassword:
			values[f.Column] = rec.Password
		case FieldPendingPassword:
			values[f.Column] = nullable(rec.PendingPassword.String, rec.PendingPassword.Valid)
		case FieldActive:
			values[f.Column] = rec.Active
		case FieldInteractionCode:
			values[f.Column] = nullable(rec.ActCode.String, rec.ActCode.Valid)
		case FieldInteractionTime:
			if rec.ActTime.Valid {
				values[f.Column] = rec.ActTime.Time
			} else {
				values[f.Column] = nil
			}
		case FieldInteractionKind:
			values[f.Column] = nullable(rec.ActType.String, rec.ActType.Valid)
		}
	}
	return columns, values
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullable(s string, valid bool) any {
	if !valid {
		return nil
	}
	return s
}

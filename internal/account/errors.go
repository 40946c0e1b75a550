// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package account

import (
	"errors"
	"fmt"
)

// Error kinds. Every error produced by this package and by the account
// service matches exactly one of them via [errors.Is].
var (
	// ErrValidation reports a malformed username, e-mail, password,
	// interaction kind or interaction code. Caller-fixable; no state changed.
	ErrValidation = errors.New("validation error")

	// ErrDuplicateUsername reports a username uniqueness violation on create.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrDuplicateEmail reports an e-mail uniqueness violation on create.
	ErrDuplicateEmail = errors.New("e-mail already exists")

	// ErrAccountState reports an operation that is invalid for the current
	// lifecycle state of the account.
	ErrAccountState = errors.New("invalid account state")

	// ErrInteraction reports a missing outstanding interaction or a kind
	// mismatch.
	ErrInteraction = errors.New("interaction error")

	// ErrPersistence reports a failed store transaction. The transaction is
	// always rolled back.
	ErrPersistence = errors.New("persistence error")

	// ErrArgument reports a call made without any of its required arguments.
	ErrArgument = errors.New("invalid argument")
)

// Error is a typed operation error with a stable Op + Kind contract.
//
// Kind is one of the sentinel kinds above. Err optionally carries the
// underlying cause (a validator sentinel, a store error) and is matched by
// [errors.Is] as well. Msg never contains secrets.
type Error struct {
	Op   string
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Op, e.Kind)
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to [errors.Is] and [errors.As].
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewError builds an [*Error].
func NewError(op string, kind error, msg string, cause error) error {
	return &Error{Op: op, Kind: kind, Msg: msg, Err: cause}
}

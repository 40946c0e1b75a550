// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// account keeper HTTP handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidUsernameOrEmail is returned when a registration carries a
	// malformed username or e-mail address.
	MsgInvalidUsernameOrEmail = "invalid username or e-mail"

	// MsgPasswordTooShort is returned when a new password is shorter than
	// the configured minimum.
	MsgPasswordTooShort = "password is too short"

	// MsgAccountAlreadyExists is returned when a registration is rejected
	// because the username or the e-mail address is taken.
	MsgAccountAlreadyExists = "username or e-mail already exists"

	// MsgInvalidLoginPassword is returned when the credentials do not match
	// an active account.
	MsgInvalidLoginPassword = "invalid username/password or inactive account"

	// MsgUnknownInteractionKind is returned when a code is requested for a
	// kind other than activate, delete or reset.
	MsgUnknownInteractionKind = "unknown interaction kind"

	// MsgInvalidEmail is returned when a code or password reset is requested
	// for a malformed e-mail address.
	MsgInvalidEmail = "invalid e-mail"

	// MsgInvalidConfirmationCode is returned when a confirmation link is
	// unknown, expired or of the wrong kind.
	MsgInvalidConfirmationCode = "invalid or expired confirmation code"

	// MsgAccountGone is returned when the account of a valid token was
	// deleted in the meantime.
	MsgAccountGone = "account no longer exists"

	// MsgSelectorRequired is returned when an administrative request names
	// neither a username nor an e-mail address.
	MsgSelectorRequired = "username or e-mail is required"
)

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto holds the credential primitives of the account core: the
// password codec that produces and verifies salted password hashes, and the
// generator of one-time interaction codes used by the activation, reset and
// delete confirmation flows.
//
// Neither component knows anything about storage, transport or accounts; they
// operate on plain strings and timestamps.
package crypto

import "time"

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// PasswordCodec salts, hashes and verifies clear-text passwords.
//
// Stored hashes have the form:
//
//	salt$hexdigest
//
// where salt is 16 characters from [a-z0-9] and hexdigest is the hex-encoded
// SHA-256 of username || salt || cleartext.
type PasswordCodec interface {
	// Hash returns a freshly salted hash of cleartext bound to username.
	Hash(username, cleartext string) (string, error)

	// Verify reports whether cleartext matches stored for username.
	// A malformed stored hash never verifies.
	Verify(username, cleartext, stored string) bool

	// GeneratePassword returns a random 8-character password drawn from an
	// alphabet without visually ambiguous characters.
	GeneratePassword() (string, error)
}

// CodeGenerator issues one-time interaction codes.
type CodeGenerator interface {
	// Issue returns a 64-character lowercase hex code for username together
	// with the instant it was generated.
	Issue(username string) (code string, issuedAt time.Time, err error)
}

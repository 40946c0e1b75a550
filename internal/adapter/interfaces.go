// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the account keeper HTTP API.
//
// The primary abstraction is [AccountAdapter], which decouples the command
// line client from the underlying protocol. Error values defined in
// errors.go are mapped from HTTP status codes by mapHTTPError so that
// callers can use [errors.Is] (e.g. [ErrConflict] for 409, [ErrUnauthorized]
// for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-account-keeper/models"
)

// AccountAdapter talks to the account keeper server. Implementations keep
// the bearer token returned by Login and attach it to the authenticated
// calls.
type AccountAdapter interface {
	// SetToken stores the bearer token used by subsequent authenticated
	// requests.
	SetToken(token string)

	// Token returns the stored bearer token, or "" before Login.
	Token() string

	// Register creates an inactive account. The activation link is e-mailed
	// by the server.
	Register(ctx context.Context, req models.RegisterRequest) (models.AccountResponse, error)

	// Login authenticates and stores the returned bearer token.
	Login(ctx context.Context, req models.LoginRequest) (models.AccountResponse, error)

	// Confirm redeems an interaction code. kind is the one-letter code
	// ("a", "d" or "r") found in the e-mailed link.
	Confirm(ctx context.Context, kind, code string) (models.AccountResponse, error)

	// RequestCode asks for a fresh interaction code for email.
	RequestCode(ctx context.Context, kind, email string) error

	// ResetPassword asks for a generated password to be mailed to email.
	ResetPassword(ctx context.Context, email string) error

	// Me returns the account of the stored token.
	Me(ctx context.Context) (models.AccountResponse, error)

	// ChangePassword requests a password change, confirmed by e-mail.
	ChangePassword(ctx context.Context, password string) error

	// DeleteAccount requests deletion of the own account, confirmed by
	// e-mail.
	DeleteAccount(ctx context.Context) error

	// Suspend deactivates the accounts matching selector. adminToken is the
	// server's configured administrator token.
	Suspend(ctx context.Context, adminToken string, selector models.Selector) (int64, error)

	// Version returns the server version.
	Version(ctx context.Context) (string, error)
}

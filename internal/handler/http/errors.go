// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the "Authorization" header contains the
	// expected scheme prefix but the token value itself is an empty string.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")

	// ErrInvalidAdminToken is returned by the admin middleware for a missing
	// or wrong X-Admin-Token header.
	ErrInvalidAdminToken = errors.New("invalid `X-Admin-Token` header")

	// ErrInvalidJSON is returned for request bodies that do not decode.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrNoAccountInContext means the auth middleware did not run.
	ErrNoAccountInContext = errors.New("no account id in request context")
)

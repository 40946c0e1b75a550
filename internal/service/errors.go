package service

import "errors"

var (
	// ErrNotFound is returned when an operation needs an existing account
	// and none matches.
	ErrNotFound = errors.New("account not found")

	// ErrInteractionExpired is returned when a confirmation code is used
	// after its deadline.
	ErrInteractionExpired = errors.New("interaction code has expired")

	// ErrWrongCredentials covers both an unknown username and a wrong
	// password.
	ErrWrongCredentials = errors.New("wrong username or password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

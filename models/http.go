package models

import "time"

// RegisterRequest is the body of POST /api/account/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`

	// Password is optional; a random one is generated and mailed when empty.
	Password string `json:"password,omitempty"`
}

// LoginRequest is the body of POST /api/account/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ResetPasswordRequest is the body of POST /api/account/reset-password.
type ResetPasswordRequest struct {
	Email string `json:"email"`
}

// RequestCodeRequest is the body of POST /api/account/confirm/request-code.
// Kind is "activate", "delete" or "reset" (or the short codes a, d, r).
type RequestCodeRequest struct {
	Kind  string `json:"kind"`
	Email string `json:"email"`
}

// ChangePasswordRequest is the body of PUT /api/account/password.
type ChangePasswordRequest struct {
	Password string `json:"password"`
}

// AccountResponse is the public view of an account. Password hashes and
// interaction codes are never exposed.
type AccountResponse struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Active       bool      `json:"active"`
	RegisteredAt time.Time `json:"registered_at"`
}

// SuspendResponse is returned by POST /api/admin/account/suspend.
type SuspendResponse struct {
	Suspended int64 `json:"suspended"`
}

// AppInfoResponse is returned by GET /api/info.
type AppInfoResponse struct {
	Version       string    `json:"version"`
	StartedAt     time.Time `json:"started_at"`
	UptimeSeconds int64     `json:"uptime_seconds"`
}

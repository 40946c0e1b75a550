// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-account-keeper server. It aggregates all sub-configurations and is
// populated by merging values from a .env file, environment variables,
// command-line flags, and an optional JSON or YAML file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds account-policy settings: password rules, interaction
	// deadlines, token parameters, and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds the relational database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Mail holds the outgoing e-mail relay and message subjects.
	Mail Mail `envPrefix:"MAIL_"`

	// Adapter holds the settings of the HTTP API client used by cmd/client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// FilePath is the optional path to a JSON or YAML configuration file.
	// The format is chosen by extension (.yaml / .yml, anything else is JSON).
	// Populated via the CONFIG environment variable or the -c / -config flag.
	FilePath string `env:"CONFIG"`

	// DotEnvPath is the .env file loaded before the environment is parsed.
	// A missing file is not an error.
	// Env: DOTENV
	DotEnvPath string `env:"DOTENV"`
}

// App holds account-policy and token settings.
type App struct {
	// PasswordMinLength is the minimum number of characters of a clear-text
	// password.
	// Env: APP_PASSWORD_MIN_LENGTH
	PasswordMinLength int `env:"PASSWORD_MIN_LENGTH"`

	// InteractionSecret keys the interaction-code generator. When empty,
	// codes are plain SHA-256 digests over random input.
	// Env: APP_INTERACTION_SECRET
	InteractionSecret string `env:"INTERACTION_SECRET"`

	// ActivationDeadline bounds the validity of an activation code.
	// Env: APP_ACTIVATION_DEADLINE
	ActivationDeadline time.Duration `env:"ACTIVATION_DEADLINE"`

	// ResetDeadline bounds the validity of a password-reset code.
	// Env: APP_RESET_DEADLINE
	ResetDeadline time.Duration `env:"RESET_DEADLINE"`

	// DeleteDeadline bounds the validity of an account-removal code.
	// Env: APP_DELETE_DEADLINE
	DeleteDeadline time.Duration `env:"DELETE_DEADLINE"`

	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is exposed via the /api/version/ endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// AdminToken guards the administrative endpoints (X-Admin-Token).
	// Administrative endpoints are disabled while it is empty.
	// Env: APP_ADMIN_TOKEN
	AdminToken string `env:"ADMIN_TOKEN"`
}

// Storage groups the configuration for the storage backend.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the database connection string. A "postgres://" URL selects
	// PostgreSQL; a "sqlite3://" or "file:" prefix selects SQLite.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Mail holds the outgoing e-mail settings. Without an SMTP host messages
// are written to the log.
type Mail struct {
	SMTPHost string `env:"SMTP_HOST"`
	SMTPPort int    `env:"SMTP_PORT"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`

	// Sender is the From address and the $sender template variable.
	Sender string `env:"SENDER"`

	ActivationSubject string `env:"ACTIVATION_SUBJECT"`
	ResetSubject      string `env:"RESET_SUBJECT"`
	DeleteSubject     string `env:"DELETE_SUBJECT"`
	SuspendSubject    string `env:"SUSPEND_SUBJECT"`

	// ConfirmBaseURL prefixes confirmation links ($base).
	ConfirmBaseURL string `env:"CONFIRM_BASE_URL"`

	// Async hands messages to a background dispatcher with a queue of
	// QueueSize messages.
	Async     bool `env:"ASYNC"`
	QueueSize int  `env:"QUEUE_SIZE"`
}

// Adapter holds the settings of the outbound API client.
type Adapter struct {
	// HTTPAddress is the base URL of the server (e.g. "http://localhost:8080").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// GetStructuredConfig loads, merges, and validates the server configuration
// from all available sources in the following priority order (later
// sources override earlier non-zero fields):
//  1. .env file
//  2. Environment variables
//  3. Command-line flags
//  4. JSON or YAML file (path resolved from sources 1 to 3)
//
// Defaults fill the fields that are still zero afterwards.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv().
		withEnv().
		withFlags().
		withFile().
		build()
}

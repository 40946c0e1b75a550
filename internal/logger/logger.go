// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the account keeper binaries.
//
// Long-lived components receive a *Logger at construction. Request-scoped
// code takes the logger attached by the HTTP middleware (it carries
// trace_id) through FromContext or FromRequest.
package logger

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger embeds zerolog.Logger so the full zerolog API is available.
type Logger struct {
	zerolog.Logger
}

// NewLogger returns a JSON logger on stdout tagged with role. Every entry
// carries a timestamp and the calling function under "func". The global
// level is set to debug; use WithLevel to raise it.
func NewLogger(role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"

	return &Logger{zerolog.New(os.Stdout).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()}
}

// WithLevel returns a copy of l that emits only entries at or above the
// named level ("debug", "info", "warn", ...). An empty name keeps the
// current level.
func (l *Logger) WithLevel(name string) (*Logger, error) {
	if name == "" {
		return l, nil
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return l, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return &Logger{l.Level(level)}, nil
}

// Nop discards everything. Meant for tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a copy of l that can be given extra context fields
// without touching l.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// FromRequest is FromContext for r's context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached to ctx with zerolog's WithContext.
// Without one it falls back to zerolog's default logger, never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}

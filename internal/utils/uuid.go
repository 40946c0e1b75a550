package utils

import (
	"unicode"

	"github.com/google/uuid"
)

// maxTraceIDLen bounds trace ids accepted from callers.
const maxTraceIDLen = 128

// NewTraceID returns a time-ordered UUIDv7. A random UUIDv4 is returned if
// the v7 clock source fails.
func NewTraceID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v7.String()
}

// TraceIDOrNew returns candidate when it is a usable trace id and a fresh
// one otherwise. Usable means non-empty, at most 128 characters and free of
// spaces and control characters, so it can be echoed in headers and logs.
func TraceIDOrNew(candidate string) string {
	if candidate == "" || len(candidate) > maxTraceIDLen {
		return NewTraceID()
	}
	for _, r := range candidate {
		if unicode.IsSpace(r) || unicode.IsControl(r) || r > unicode.MaxASCII {
			return NewTraceID()
		}
	}
	return candidate
}

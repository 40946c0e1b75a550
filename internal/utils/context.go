// Package utils holds small helpers shared by the server and the client:
// request context values, JSON request and response bodies, JWT handling,
// trace identifiers and the resty client factory.
package utils

import (
	"context"
)

// contextKey keeps this package's context keys distinct from plain strings.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

var (
	// AccountIDCtxKey holds the int64 id of the authenticated account. The
	// JWT middleware sets it.
	AccountIDCtxKey = contextKey("accountID")

	// TraceIDCtxKey holds the per-request trace identifier.
	TraceIDCtxKey = contextKey("traceID")
)

// WithAccountID returns a copy of ctx carrying the authenticated account id.
func WithAccountID(ctx context.Context, accountID int64) context.Context {
	return context.WithValue(ctx, AccountIDCtxKey, accountID)
}

// GetAccountIDFromContext returns the authenticated account id. ok is false
// when the value is missing, has another type or is not a positive id.
func GetAccountIDFromContext(ctx context.Context) (int64, bool) {
	accountID, ok := ctx.Value(AccountIDCtxKey).(int64)
	if !ok || accountID <= 0 {
		return 0, false
	}
	return accountID, true
}

// WithTraceID returns a copy of ctx carrying traceID.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDCtxKey, traceID)
}

// GetTraceIDFromContext returns the trace identifier of the request, or ""
// when there is none.
func GetTraceIDFromContext(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDCtxKey).(string)
	return traceID
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cache provides the request-scoped identity cache: a single slot
// remembering the last account fetched during one request, addressable by
// username, e-mail or outstanding interaction code.
//
// An Identity is created per request (see [WithIdentity]) and passed
// explicitly into service calls. It is never shared between requests and is
// therefore not synchronised.
package cache

import (
	"context"

	"github.com/MKhiriev/go-account-keeper/internal/account"
)

// Identity holds at most one account together with the keys it was cached
// under. A nil *Identity is valid and behaves as an always-empty cache.
type Identity struct {
	acc      *account.Account
	username string
	email    string
	code     string
}

// New returns an empty identity cache.
func New() *Identity {
	return &Identity{}
}

// Put caches acc under its current username, e-mail and interaction code,
// replacing whatever was cached before. Putting nil empties the cache.
func (c *Identity) Put(acc *account.Account) {
	if c == nil {
		return
	}
	if acc == nil {
		c.Invalidate()
		return
	}
	c.acc = acc
	c.username = acc.Username()
	c.email = acc.Email()
	c.code = ""
	if in, ok := acc.Interaction(); ok {
		c.code = in.Code
	}
}

// Invalidate empties the cache.
func (c *Identity) Invalidate() {
	if c == nil {
		return
	}
	*c = Identity{}
}

// Empty reports whether nothing is cached.
func (c *Identity) Empty() bool {
	return c == nil || c.acc == nil
}

func (c *Identity) ByUsername(username string) (*account.Account, bool) {
	if c.Empty() || username == "" || c.username != username {
		return nil, false
	}
	return c.acc, true
}

func (c *Identity) ByEmail(email string) (*account.Account, bool) {
	if c.Empty() || email == "" || c.email != email {
		return nil, false
	}
	return c.acc, true
}

func (c *Identity) ByCode(code string) (*account.Account, bool) {
	if c.Empty() || code == "" || c.code != code {
		return nil, false
	}
	return c.acc, true
}

// Matches reports whether the cached identity shares the username or the
// e-mail given. Empty arguments never match.
func (c *Identity) Matches(username, email string) bool {
	if c.Empty() {
		return false
	}
	return (username != "" && c.username == username) || (email != "" && c.email == email)
}

type ctxKey struct{}

// WithIdentity returns a copy of ctx carrying c.
func WithIdentity(ctx context.Context, c *Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext returns the identity cache attached to ctx, or nil.
func FromContext(ctx context.Context) *Identity {
	c, _ := ctx.Value(ctxKey{}).(*Identity)
	return c
}

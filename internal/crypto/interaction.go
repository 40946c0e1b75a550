// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"time"

	"golang.org/x/crypto/hkdf"
)

const (
	// CodeLength is the length of an interaction code in hex characters.
	CodeLength = sha256.Size * 2

	codeEntropyBytes = 32
	codeKeyInfo      = "go-account-keeper interaction code v1"
)

// codeGenerator is the default [CodeGenerator].
type codeGenerator struct {
	// key is the HMAC key derived from the server secret. When nil the code
	// is a plain SHA-256 digest.
	key []byte

	now     func() time.Time
	entropy io.Reader
}

// CodeGeneratorOption customises a [CodeGenerator] built by
// [NewCodeGenerator].
type CodeGeneratorOption func(*codeGenerator)

// WithClock overrides the time source used for issuedAt.
func WithClock(now func() time.Time) CodeGeneratorOption {
	return func(g *codeGenerator) {
		g.now = now
	}
}

// WithEntropy overrides the random source mixed into every code.
func WithEntropy(r io.Reader) CodeGeneratorOption {
	return func(g *codeGenerator) {
		g.entropy = r
	}
}

// NewCodeGenerator constructs a [CodeGenerator].
//
// Every code mixes username, the issue instant and 32 bytes from the
// CSPRNG. When secret is non-empty the digest is an HMAC-SHA256 keyed with a
// 32-byte key derived from secret via HKDF-SHA256, so codes cannot be
// recomputed without the server secret.
func NewCodeGenerator(secret string, opts ...CodeGeneratorOption) (CodeGenerator, error) {
	g := &codeGenerator{
		now:     time.Now,
		entropy: rand.Reader,
	}

	if secret != "" {
		key := make([]byte, sha256.Size)
		kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte(codeKeyInfo))
		if _, err := io.ReadFull(kdf, key); err != nil {
			return nil, fmt.Errorf("error deriving interaction code key: %w", err)
		}
		g.key = key
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// Issue implements [CodeGenerator].
func (g *codeGenerator) Issue(username string) (string, time.Time, error) {
	issuedAt := g.now()

	nonce := make([]byte, codeEntropyBytes)
	if _, err := io.ReadFull(g.entropy, nonce); err != nil {
		return "", time.Time{}, fmt.Errorf("error reading interaction code entropy: %w", err)
	}

	var h hash.Hash
	if g.key != nil {
		h = hmac.New(sha256.New, g.key)
	} else {
		h = sha256.New()
	}

	h.Write([]byte(username))
	h.Write([]byte(issuedAt.UTC().Format(time.RFC3339Nano)))
	h.Write(nonce)

	return hex.EncodeToString(h.Sum(nil)), issuedAt, nil
}

// IsTimely reports whether now is strictly before issuedAt + deadline.
func IsTimely(issuedAt time.Time, deadline time.Duration, now time.Time) bool {
	return now.Before(issuedAt.Add(deadline))
}

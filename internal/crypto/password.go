// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

const (
	// SaltLength is the number of characters in a password salt.
	SaltLength = 16

	// GeneratedPasswordLength is the length of passwords produced by
	// [PasswordCodec.GeneratePassword].
	GeneratedPasswordLength = 8

	// HashLength is the length of a stored password hash: salt, separator
	// and a hex-encoded SHA-256 digest.
	HashLength = SaltLength + 1 + sha256.Size*2

	saltAlphabet     = "abcdefghijklmnopqrstuvwxyz0123456789"
	passwordAlphabet = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	hashSeparator    = "$"
)

// sha256Codec is the default [PasswordCodec].
type sha256Codec struct{}

// NewPasswordCodec constructs the SHA-256 salted [PasswordCodec].
func NewPasswordCodec() PasswordCodec {
	return &sha256Codec{}
}

// Hash implements [PasswordCodec].
func (c *sha256Codec) Hash(username, cleartext string) (string, error) {
	salt, err := randomString(saltAlphabet, SaltLength)
	if err != nil {
		return "", fmt.Errorf("error generating password salt: %w", err)
	}

	return salt + hashSeparator + passwordDigest(username, salt, cleartext), nil
}

// Verify implements [PasswordCodec]. The digest comparison runs in constant
// time.
func (c *sha256Codec) Verify(username, cleartext, stored string) bool {
	salt, digest, ok := SplitHash(stored)
	if !ok {
		return false
	}

	expected := passwordDigest(username, salt, cleartext)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(digest)) == 1
}

// GeneratePassword implements [PasswordCodec].
func (c *sha256Codec) GeneratePassword() (string, error) {
	password, err := randomString(passwordAlphabet, GeneratedPasswordLength)
	if err != nil {
		return "", fmt.Errorf("error generating password: %w", err)
	}

	return password, nil
}

// SplitHash breaks a stored hash into its salt and digest parts. ok is false
// when stored is not a well-formed salt$hexdigest value.
func SplitHash(stored string) (salt, digest string, ok bool) {
	salt, digest, found := strings.Cut(stored, hashSeparator)
	if !found || len(salt) != SaltLength || len(digest) != sha256.Size*2 {
		return "", "", false
	}

	for _, r := range salt {
		if !strings.ContainsRune(saltAlphabet, r) {
			return "", "", false
		}
	}

	if _, err := hex.DecodeString(digest); err != nil {
		return "", "", false
	}

	return salt, digest, true
}

// IsHash reports whether s looks like a stored password hash.
func IsHash(s string) bool {
	_, _, ok := SplitHash(s)
	return ok
}

func passwordDigest(username, salt, cleartext string) string {
	sum := sha256.Sum256([]byte(username + salt + cleartext))
	return hex.EncodeToString(sum[:])
}

// randomString draws n characters uniformly from alphabet using crypto/rand.
func randomString(alphabet string, n int) (string, error) {
	max := big.NewInt(int64(len(alphabet)))

	var b strings.Builder
	b.Grow(n)
	for range n {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(alphabet[idx.Int64()])
	}

	return b.String(), nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_Format(t *testing.T) {
	codec := NewPasswordCodec()

	stored, err := codec.Hash("alice", "secret")
	require.NoError(t, err)

	assert.Len(t, stored, HashLength)

	salt, digest, ok := SplitHash(stored)
	require.True(t, ok)
	assert.Len(t, salt, SaltLength)
	for _, r := range salt {
		assert.True(t, strings.ContainsRune(saltAlphabet, r), "unexpected salt char %q", r)
	}

	sum := sha256.Sum256([]byte("alice" + salt + "secret"))
	assert.Equal(t, hex.EncodeToString(sum[:]), digest)
}

func TestHash_FreshSaltEveryCall(t *testing.T) {
	codec := NewPasswordCodec()

	h1, err := codec.Hash("alice", "secret")
	require.NoError(t, err)
	h2, err := codec.Hash("alice", "secret")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestVerify_RoundTrip(t *testing.T) {
	codec := NewPasswordCodec()

	passwords := []string{"abcd", "correct horse battery staple", "пароль-1", "$$$$"}
	for _, p := range passwords {
		t.Run(p, func(t *testing.T) {
			stored, err := codec.Hash("alice", p)
			require.NoError(t, err)

			assert.True(t, codec.Verify("alice", p, stored))
			assert.False(t, codec.Verify("alice", p+"x", stored))
			assert.False(t, codec.Verify("bob", p, stored), "hash is bound to username")
		})
	}
}

func TestVerify_MalformedFailsClosed(t *testing.T) {
	codec := NewPasswordCodec()

	tests := []struct {
		name   string
		stored string
	}{
		{name: "empty", stored: ""},
		{name: "no separator", stored: strings.Repeat("a", HashLength)},
		{name: "short salt", stored: "abc$" + strings.Repeat("0", 64)},
		{name: "uppercase salt", stored: "ABCDEFGHIJKLMNOP$" + strings.Repeat("0", 64)},
		{name: "short digest", stored: "abcdefghijklmnop$abcdef"},
		{name: "non-hex digest", stored: "abcdefghijklmnop$" + strings.Repeat("z", 64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, codec.Verify("alice", "anything", tt.stored))
			assert.False(t, IsHash(tt.stored))
		})
	}
}

func TestGeneratePassword(t *testing.T) {
	codec := NewPasswordCodec()

	seen := make(map[string]struct{})
	for range 50 {
		p, err := codec.GeneratePassword()
		require.NoError(t, err)
		require.Len(t, p, GeneratedPasswordLength)

		for _, r := range p {
			assert.True(t, strings.ContainsRune(passwordAlphabet, r), "unexpected char %q", r)
			assert.NotContains(t, "0OIl1", string(r))
		}
		seen[p] = struct{}{}
	}

	assert.Greater(t, len(seen), 45, "generated passwords should practically never repeat")
}

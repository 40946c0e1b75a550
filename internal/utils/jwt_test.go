package utils

import (
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signClaims signs claims with HS256 and key, bypassing GenerateJWTToken's
// parameter checks.
func signClaims(t *testing.T, claims jwt.Claims, key string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func TestGenerateJWTToken(t *testing.T) {
	token, err := GenerateJWTToken("account-keeper", 123, time.Hour, "secret-key")
	require.NoError(t, err)

	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, int64(123), token.AccountID)

	claims, ok := token.Token.Claims.(*jwt.RegisteredClaims)
	require.True(t, ok)
	assert.Equal(t, "account-keeper", claims.Issuer)
	assert.Equal(t, "123", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)

	other, err := GenerateJWTToken("account-keeper", 123, time.Hour, "secret-key")
	require.NoError(t, err)
	assert.NotEqual(t, token.SignedString, other.SignedString, "jti must differ")
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name      string
		issuer    string
		accountID int64
		duration  time.Duration
		key       string
	}{
		{"empty issuer", "", 1, time.Hour, "key"},
		{"zero duration", "iss", 1, 0, "key"},
		{"negative duration", "iss", 1, -time.Second, "key"},
		{"empty key", "iss", 1, time.Hour, ""},
		{"unsaved account", "iss", 0, time.Hour, "key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.accountID, tt.duration, tt.key)
			assert.Error(t, err)
		})
	}
}

func TestValidateAndParseJWTToken(t *testing.T) {
	token, err := GenerateJWTToken("iss", 456, 5*time.Minute, "key")
	require.NoError(t, err)

	parsed, err := ValidateAndParseJWTToken(token.SignedString, "key", "iss")
	require.NoError(t, err)

	assert.Equal(t, int64(456), parsed.AccountID)
	assert.Equal(t, token.SignedString, parsed.String())
	assert.Equal(t, "456", parsed.Subject)
}

func TestValidateAndParseJWTToken_Rejects(t *testing.T) {
	now := time.Now()
	valid := func(sub string, exp *jwt.NumericDate) jwt.RegisteredClaims {
		return jwt.RegisteredClaims{Issuer: "iss", Subject: sub, ExpiresAt: exp}
	}
	inAnHour := jwt.NewNumericDate(now.Add(time.Hour))

	hs384, err := jwt.NewWithClaims(jwt.SigningMethodHS384, valid("1", inAnHour)).SignedString([]byte("key"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{name: "wrong key", token: signClaims(t, valid("1", inAnHour), "other")},
		{name: "expired", token: signClaims(t, valid("1", jwt.NewNumericDate(now.Add(-time.Second))), "key"), want: jwt.ErrTokenExpired},
		{name: "no expiry", token: signClaims(t, valid("1", nil), "key"), want: jwt.ErrTokenRequiredClaimMissing},
		{name: "wrong issuer", token: signClaims(t, jwt.RegisteredClaims{Issuer: "fake", Subject: "1", ExpiresAt: inAnHour}, "key"), want: jwt.ErrTokenInvalidIssuer},
		{name: "other algorithm", token: hs384},
		{name: "zero subject", token: signClaims(t, valid("0", inAnHour), "key"), want: errNotAnAccountID},
		{name: "non-numeric subject", token: signClaims(t, valid("alice", inAnHour), "key"), want: strconv.ErrSyntax},
		{name: "malformed", token: "not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAndParseJWTToken(tt.token, "key", "iss")
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"lowercase scheme", "bearer abc", "abc", false},
		{"surrounding spaces", "  Bearer abc  ", "abc", false},
		{"missing token", "Bearer ", "", true},
		{"wrong scheme", "Basic abc", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInspectJWT(t *testing.T) {
	token, err := GenerateJWTToken("iss", 77, time.Hour, "key")
	require.NoError(t, err)

	info, err := InspectJWT(token.SignedString)
	require.NoError(t, err)

	assert.Equal(t, int64(77), info.AccountID)
	assert.False(t, info.Expired(time.Now()))
	assert.True(t, info.Expired(time.Now().Add(2*time.Hour)))

	_, err = InspectJWT("garbage")
	assert.Error(t, err)
}

func TestTokenInfo_NoExpiry(t *testing.T) {
	info, err := InspectJWT(signClaims(t, jwt.RegisteredClaims{Subject: "5"}, "key"))
	require.NoError(t, err)

	assert.Equal(t, int64(5), info.AccountID)
	assert.False(t, info.Expired(time.Now().Add(100*365*24*time.Hour)))
}

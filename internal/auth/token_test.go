package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestGenerateAndParseAccessToken(t *testing.T) {
	token, err := GenerateAccessToken("librarian", time.Now().Add(time.Hour), secret)
	require.NoError(t, err)

	subject, err := ParseAccessToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "librarian", subject)
}

func TestTokenWithoutExpiry(t *testing.T) {
	token, err := GenerateAccessToken("cli", time.Time{}, secret)
	require.NoError(t, err)

	subject, err := ParseAccessToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "cli", subject)
}

func TestParseAccessTokenRejects(t *testing.T) {
	expired, err := GenerateAccessToken("librarian", time.Now().Add(-time.Hour), secret)
	require.NoError(t, err)
	_, err = ParseAccessToken(expired, secret)
	assert.Error(t, err)

	valid, err := GenerateAccessToken("librarian", time.Now().Add(time.Hour), secret)
	require.NoError(t, err)
	_, err = ParseAccessToken(valid, []byte("other-secret"))
	assert.Error(t, err)

	_, err = ParseAccessToken("", secret)
	assert.Error(t, err)

	// Right secret, wrong key id.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &ClaimsMessage{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: Issuer, Audience: jwt.ClaimStrings{AccessTokenAudienceName}},
	})
	token.Header["kid"] = "v0"
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	_, err = ParseAccessToken(signed, secret)
	assert.Error(t, err)
}

func TestGenerateAccessTokenNeedsSecret(t *testing.T) {
	_, err := GenerateAccessToken("librarian", time.Time{}, nil)
	assert.Error(t, err)
}

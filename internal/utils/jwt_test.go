package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT(42, "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.NotEmpty(t, claims.ID)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestParseJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT(42, "secret")
	require.NoError(t, err)

	_, err = ParseJWT(token, "wrong")
	assert.Error(t, err)
}

func TestParseJWT_Garbage(t *testing.T) {
	_, err := ParseJWT("garbage", "secret")
	assert.Error(t, err)
}

func TestGenerateJWT_UniqueTokenIDs(t *testing.T) {
	a, err := GenerateJWT(1, "secret")
	require.NoError(t, err)
	b, err := GenerateJWT(1, "secret")
	require.NoError(t, err)

	ca, err := ParseJWT(a, "secret")
	require.NoError(t, err)
	cb, err := ParseJWT(b, "secret")
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

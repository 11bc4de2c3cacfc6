package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, version, err := HashPassword("secret-password")
	require.NoError(t, err)

	assert.Equal(t, HashVersionBcrypt, version)
	assert.NotEmpty(t, hash)

	// The stored representation must never equal the plaintext.
	assert.NotEqual(t, "secret-password", hash)
}

func TestHashPassword_TooShort(t *testing.T) {
	_, _, err := HashPassword("short")
	require.Error(t, err)
}

func TestVerifyPassword(t *testing.T) {
	hash, _, err := HashPassword("correct horse battery")
	require.NoError(t, err)

	assert.NoError(t, VerifyPassword(hash, "correct horse battery"))
	assert.Error(t, VerifyPassword(hash, "correct horse batterx"))
	assert.Error(t, VerifyPassword(hash, ""))
}

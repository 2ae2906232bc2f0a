package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "secret123", hash)
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	hash1, err := HashPassword("secret123")
	require.NoError(t, err)

	hash2, err := HashPassword("secret123")
	require.NoError(t, err)

	// bcrypt salts per call, so equal passwords never share a hash
	assert.NotEqual(t, hash1, hash2)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	assert.True(t, CheckPassword("secret123", hash))
	assert.False(t, CheckPassword("wrong-password", hash))
	assert.False(t, CheckPassword("", hash))
	assert.False(t, CheckPassword("secret123", "not-a-bcrypt-hash"))
}

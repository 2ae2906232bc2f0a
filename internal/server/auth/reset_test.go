package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResetToken(t *testing.T) {
	token, tokenHash, expiresAt, err := NewResetToken(15 * time.Minute)
	require.NoError(t, err)

	assert.NotEmpty(t, token)
	assert.NotEmpty(t, tokenHash)
	assert.NotEqual(t, token, tokenHash)

	// Hash stored server-side must match what verification recomputes.
	assert.Equal(t, tokenHash, HashResetToken(token))

	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)
}

func TestNewResetToken_Unique(t *testing.T) {
	token1, _, _, err := NewResetToken(time.Minute)
	require.NoError(t, err)

	token2, _, _, err := NewResetToken(time.Minute)
	require.NoError(t, err)

	assert.NotEqual(t, token1, token2)
}

func TestHashResetToken_Deterministic(t *testing.T) {
	assert.Equal(t, HashResetToken("abc"), HashResetToken("abc"))
	assert.NotEqual(t, HashResetToken("abc"), HashResetToken("abd"))

	// hex(sha256) is always 64 characters
	assert.Len(t, HashResetToken("anything"), 64)
}

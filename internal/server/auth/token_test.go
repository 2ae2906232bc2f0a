package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Secret:         []byte("test-secret-key"),
		AccessTokenTTL: time.Hour,
	}
}

func TestGenerateAccessToken(t *testing.T) {
	cfg := testConfig()

	token, expiresIn, err := GenerateAccessToken(cfg, "user-123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, int64(3600), expiresIn)
}

func TestValidateAccessToken(t *testing.T) {
	cfg := testConfig()

	token, _, err := GenerateAccessToken(cfg, "user-123")
	require.NoError(t, err)

	claims, err := ValidateAccessToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "donelist", claims.Issuer)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	cfg := Config{
		Secret:         []byte("test-secret-key"),
		AccessTokenTTL: -time.Minute,
	}

	token, _, err := GenerateAccessToken(cfg, "user-123")
	require.NoError(t, err)

	_, err = ValidateAccessToken(testConfig(), token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	token, _, err := GenerateAccessToken(testConfig(), "user-123")
	require.NoError(t, err)

	other := Config{
		Secret:         []byte("a-different-secret"),
		AccessTokenTTL: time.Hour,
	}
	_, err = ValidateAccessToken(other, token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateAccessToken_Malformed(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9.broken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAccessToken(cfg, tt.token)
			assert.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}

func TestValidateAccessToken_EmptyUserID(t *testing.T) {
	cfg := testConfig()

	token, _, err := GenerateAccessToken(cfg, "")
	require.NoError(t, err)

	_, err = ValidateAccessToken(cfg, token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"
)

// resetTokenBytes is the entropy of a reset token before encoding.
const resetTokenBytes = 32

// NewResetToken generates an opaque password-reset token. The raw token
// is returned exactly once, for embedding in the reset URL; only its
// SHA-256 hash and the expiry are meant to be persisted. The token
// already carries full random entropy, so a fast hash is sufficient.
func NewResetToken(ttl time.Duration) (token, tokenHash string, expiresAt time.Time, err error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", time.Time{}, fmt.Errorf("failed to generate random token: %w", err)
	}

	token = base64.RawURLEncoding.EncodeToString(buf)
	return token, HashResetToken(token), time.Now().Add(ttl), nil
}

// HashResetToken returns the stored form of a reset token: the hex
// encoding of its SHA-256 hash. Used on lookup so the raw token never
// touches the database.
func HashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

package models

import "time"

// User represents an account record.
//
// PasswordHash is a bcrypt hash and is never serialized. ResetTokenHash
// and ResetTokenExpiresAt are either both nil or both set; they hold the
// SHA-256 hash of an outstanding password-reset token and its expiry.
type User struct {
	ID                  string     `json:"id"`
	Fullname            string     `json:"fullname"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"-"`
	ProfileImageURL     string     `json:"profileImageUrl,omitempty"`
	ResetTokenHash      *string    `json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

package storage

import (
	"context"
	"time"

	"github.com/donelist/donelist/internal/models"
)

// UserStorage defines the interface for user persistence.
//
// The password hash is excluded from reads by default; the *WithPassword
// variants select it explicitly for credential checks.
type UserStorage interface {
	// CreateUser creates a new user.
	// Returns ErrUserAlreadyExists if the email is already taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves a user by ID without the password hash.
	// Returns ErrUserNotFound if the user doesn't exist.
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// GetUserByIDWithPassword retrieves a user by ID including the
	// password hash. Returns ErrUserNotFound if the user doesn't exist.
	GetUserByIDWithPassword(ctx context.Context, userID string) (*models.User, error)

	// GetUserByEmail retrieves a user by normalized email including the
	// password hash. Returns ErrUserNotFound if the user doesn't exist.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByResetToken retrieves the user whose stored reset-token
	// hash matches tokenHash and whose expiry is after now.
	// Returns ErrUserNotFound when there is no live match.
	GetUserByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error)

	// UpdateProfile updates fullname, email and profile image URL.
	// Returns ErrUserAlreadyExists if the new email is taken and
	// ErrUserNotFound if the user doesn't exist.
	UpdateProfile(ctx context.Context, user *models.User) error

	// UpdatePassword replaces the password hash and clears any
	// outstanding reset token. Returns ErrUserNotFound if missing.
	UpdatePassword(ctx context.Context, userID, passwordHash string) error

	// SetResetToken stores the reset-token hash and expiry. This is a
	// partial update: no other field is touched or re-validated.
	SetResetToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error

	// ClearResetToken nulls out the reset-token hash and expiry.
	ClearResetToken(ctx context.Context, userID string) error

	// DeleteUser deletes a user; owned todos cascade.
	// Returns ErrUserNotFound if the user doesn't exist.
	DeleteUser(ctx context.Context, userID string) error
}

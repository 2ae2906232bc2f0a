package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/donelist/donelist/internal/models"
	"github.com/donelist/donelist/internal/server/storage"
)

// CreateUser creates a new user. The UNIQUE index on email is the
// authoritative duplicate check, so a race between two registrations
// still surfaces as ErrUserAlreadyExists.
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, fullname, email, password_hash, profile_image_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Fullname,
		user.Email,
		user.PasswordHash,
		user.ProfileImageURL,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return storage.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by ID. The password hash is not selected.
func (s *Storage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	query := `
		SELECT id, fullname, email, profile_image_url, reset_token_hash, reset_token_expires_at, created_at, updated_at
		FROM users
		WHERE id = ?
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, userID), false)
}

// GetUserByIDWithPassword retrieves a user by ID including the password
// hash, for credential checks.
func (s *Storage) GetUserByIDWithPassword(ctx context.Context, userID string) (*models.User, error) {
	query := `
		SELECT id, fullname, email, profile_image_url, reset_token_hash, reset_token_expires_at, created_at, updated_at, password_hash
		FROM users
		WHERE id = ?
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, userID), true)
}

// GetUserByEmail retrieves a user by normalized email including the
// password hash, for the login flow.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, fullname, email, profile_image_url, reset_token_hash, reset_token_expires_at, created_at, updated_at, password_hash
		FROM users
		WHERE email = ?
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, email), true)
}

// GetUserByResetToken retrieves the user holding an unexpired reset
// token with the given hash. Expiry is checked in the query so an
// expired token behaves exactly like an unknown one.
func (s *Storage) GetUserByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	query := `
		SELECT id, fullname, email, profile_image_url, reset_token_hash, reset_token_expires_at, created_at, updated_at
		FROM users
		WHERE reset_token_hash = ? AND reset_token_expires_at > ?
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, tokenHash, now), false)
}

// UpdateProfile updates fullname, email and profile image URL.
func (s *Storage) UpdateProfile(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET fullname = ?, email = ?, profile_image_url = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		user.Fullname,
		user.Email,
		user.ProfileImageURL,
		time.Now(),
		user.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return storage.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	return requireRow(result)
}

// UpdatePassword replaces the password hash and clears any outstanding
// reset token, making it single-use.
func (s *Storage) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = ?, reset_token_hash = NULL, reset_token_expires_at = NULL, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query, passwordHash, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return requireRow(result)
}

// SetResetToken stores the reset-token hash and expiry. Deliberately a
// partial update: no other column is touched.
func (s *Storage) SetResetToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	query := `
		UPDATE users
		SET reset_token_hash = ?, reset_token_expires_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query, tokenHash, expiresAt, userID)
	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}

	return requireRow(result)
}

// ClearResetToken nulls out the reset-token hash and expiry.
func (s *Storage) ClearResetToken(ctx context.Context, userID string) error {
	query := `
		UPDATE users
		SET reset_token_hash = NULL, reset_token_expires_at = NULL
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to clear reset token: %w", err)
	}

	return requireRow(result)
}

// DeleteUser deletes a user; todos cascade via the foreign key.
func (s *Storage) DeleteUser(ctx context.Context, userID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return requireRow(result)
}

func (s *Storage) scanUser(row *sql.Row, withPassword bool) (*models.User, error) {
	user := &models.User{}
	var resetHash sql.NullString
	var resetExpires sql.NullTime

	dest := []any{
		&user.ID,
		&user.Fullname,
		&user.Email,
		&user.ProfileImageURL,
		&resetHash,
		&resetExpires,
		&user.CreatedAt,
		&user.UpdatedAt,
	}
	if withPassword {
		dest = append(dest, &user.PasswordHash)
	}

	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if resetHash.Valid {
		user.ResetTokenHash = &resetHash.String
	}
	if resetExpires.Valid {
		user.ResetTokenExpiresAt = &resetExpires.Time
	}

	return user, nil
}

// requireRow maps zero affected rows to ErrUserNotFound.
func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrUserNotFound
	}
	return nil
}

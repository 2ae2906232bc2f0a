// Package storage defines the client-side session persistence contract.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound indicates that no session is stored (not logged in).
var ErrSessionNotFound = errors.New("session not found")

// Session holds the saved login state of the CLI.
type Session struct {
	Token    string    `json:"token"`
	UserID   string    `json:"user_id"`
	Email    string    `json:"email"`
	Fullname string    `json:"fullname"`
	SavedAt  time.Time `json:"saved_at"`
}

// SessionStorage persists the CLI session between invocations.
type SessionStorage interface {
	// SaveSession stores the session, replacing any previous one.
	SaveSession(ctx context.Context, session *Session) error

	// GetSession retrieves the stored session.
	// Returns ErrSessionNotFound when not logged in.
	GetSession(ctx context.Context) (*Session, error)

	// DeleteSession removes the stored session (logout).
	// Returns ErrSessionNotFound when nothing is stored.
	DeleteSession(ctx context.Context) error
}

package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that no matching user exists
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that a user with this email already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrTodoNotFound indicates that no matching todo exists for the user
	ErrTodoNotFound = errors.New("todo not found")
)

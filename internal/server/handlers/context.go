package handlers

import (
	"context"

	"github.com/donelist/donelist/internal/models"
)

type contextKey string

// UserKey is the request-context key under which the auth middleware
// stores the authenticated user (password hash excluded).
const UserKey contextKey = "user"

// UserFromContext returns the authenticated user attached by the auth
// middleware, or nil when the request is unauthenticated.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserKey).(*models.User)
	return user
}

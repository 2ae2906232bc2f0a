package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/donelist/donelist/internal/server/auth"
	"github.com/donelist/donelist/internal/server/handlers"
	"github.com/donelist/donelist/internal/server/storage"
)

// unauthorizedMessage is deliberately uniform: missing header, bad
// scheme, bad token and deleted user all read the same from outside.
const unauthorizedMessage = "Not authorized to access this route"

// Authenticate creates the bearer-token guard for protected routes. It
// verifies the Authorization header, loads the identified user (password
// hash excluded) and attaches it to the request context.
func Authenticate(logger *slog.Logger, users storage.UserStorage, jwtConfig auth.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("missing Authorization header", "path", r.URL.Path)
				handlers.RespondError(w, http.StatusUnauthorized, unauthorizedMessage)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Warn("invalid Authorization header format", "path", r.URL.Path)
				handlers.RespondError(w, http.StatusUnauthorized, unauthorizedMessage)
				return
			}

			claims, err := auth.ValidateAccessToken(jwtConfig, parts[1])
			if err != nil {
				logger.Warn("invalid access token", "error", err)
				handlers.RespondError(w, http.StatusUnauthorized, unauthorizedMessage)
				return
			}

			// The account may be gone even though the token still
			// verifies; treat that as unauthorized too.
			user, err := users.GetUserByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, storage.ErrUserNotFound) {
					logger.Warn("token for missing user", "user_id", claims.UserID)
					handlers.RespondError(w, http.StatusUnauthorized, unauthorizedMessage)
					return
				}
				logger.Error("failed to load user", "error", err)
				handlers.RespondError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), handlers.UserKey, user)

			logger.Debug("user authenticated", "user_id", user.ID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/donelist/donelist/internal/server/storage"
	"github.com/donelist/donelist/internal/validation"
	"github.com/donelist/donelist/pkg/api"
)

// UserHandler handles profile management. All routes sit behind the
// auth middleware.
type UserHandler struct {
	logger *slog.Logger
	users  storage.UserStorage
}

// NewUserHandler creates the user handler.
func NewUserHandler(logger *slog.Logger, users storage.UserStorage) *UserHandler {
	return &UserHandler{
		logger: logger,
		users:  users,
	}
}

// Profile handles GET /api/users/profile.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		RespondError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	RespondJSON(w, http.StatusOK, api.Response{
		Success: true,
		Data:    publicUser(user),
	})
}

// UpdateProfile handles PUT /api/users/profile as a partial update.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)
	if user == nil {
		RespondError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	var req api.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode update-profile request", slog.Any("error", err))
		RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := validation.ValidateUpdateProfile(&req); len(errs) > 0 {
		RespondValidationErrors(w, errs)
		return
	}

	// Fast-path uniqueness check when the email changes; the UNIQUE
	// index still backs this up on write.
	if req.Email != nil && *req.Email != user.Email {
		if _, err := h.users.GetUserByEmail(ctx, *req.Email); err == nil {
			RespondError(w, http.StatusBadRequest, "Email is already taken")
			return
		} else if !errors.Is(err, storage.ErrUserNotFound) {
			h.logger.ErrorContext(ctx, "failed to check email", slog.Any("error", err))
			RespondError(w, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	if req.Fullname != nil {
		user.Fullname = *req.Fullname
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.ProfileImageURL != nil {
		user.ProfileImageURL = *req.ProfileImageURL
	}

	if err := h.users.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			RespondError(w, http.StatusBadRequest, "Email is already taken")
			return
		}
		h.logger.ErrorContext(ctx, "failed to update profile", slog.Any("error", err))
		RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.InfoContext(ctx, "profile updated", slog.String("user_id", user.ID))

	RespondJSON(w, http.StatusOK, api.Response{
		Success: true,
		Message: "Profile updated successfully",
		Data:    publicUser(user),
	})
}

// DeleteProfile handles DELETE /api/users/profile. Owned todos cascade.
func (h *UserHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)
	if user == nil {
		RespondError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	if err := h.users.DeleteUser(ctx, user.ID); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			RespondError(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete user", slog.Any("error", err))
		RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.InfoContext(ctx, "account deleted", slog.String("user_id", user.ID))

	RespondJSON(w, http.StatusOK, api.Response{
		Success: true,
		Message: "Account deleted successfully",
	})
}

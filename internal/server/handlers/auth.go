package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/donelist/donelist/internal/models"
	"github.com/donelist/donelist/internal/server/auth"
	"github.com/donelist/donelist/internal/server/mail"
	"github.com/donelist/donelist/internal/server/storage"
	"github.com/donelist/donelist/internal/validation"
	"github.com/donelist/donelist/pkg/api"
)

// AuthHandler handles registration, login and the password flows.
type AuthHandler struct {
	logger      *slog.Logger
	users       storage.UserStorage
	mailer      mail.Mailer
	jwtConfig   auth.Config
	resetTTL    time.Duration
	frontendURL string
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(
	logger *slog.Logger,
	users storage.UserStorage,
	mailer mail.Mailer,
	jwtConfig auth.Config,
	resetTTL time.Duration,
	frontendURL string,
) *AuthHandler {
	return &AuthHandler{
		logger:      logger,
		users:       users,
		mailer:      mailer,
		jwtConfig:   jwtConfig,
		resetTTL:    resetTTL,
		frontendURL: frontendURL,
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode register request", slog.Any("error", err))
		RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := validation.ValidateRegister(&req); len(errs) > 0 {
		RespondValidationErrors(w, errs)
		return
	}

	// Fast-path duplicate check. The UNIQUE index on email is the real
	// guarantee; a losing race still comes back as ErrUserAlreadyExists
	// from CreateUser below.
	if _, err := h.users.GetUserByEmail(ctx, req.Email); err == nil {
		h.logger.WarnContext(ctx, "registration with existing email", slog.String("email", req.Email))
		RespondError(w, http.StatusBadRequest, "User with this email already exists")
		return
	} else if !errors.Is(err, storage.ErrUserNotFound) {
		h.logger.ErrorContext(ctx, "failed to check existing user", slog.Any("error", err))
		RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	now := time.Now()
	user := &models.User{
		ID:              uuid.New().String(),
		Fullname:        req.Fullname,
		Email:           req.Email,
		PasswordHash:    passwordHash,
		ProfileImageURL: req.ProfileImageURL,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := h.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			h.logger.WarnContext(ctx, "registration race on email", slog.String("email", req.Email))
			RespondError(w, http.StatusBadRequest, "User with this email already exists")
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	token, _, err := auth.GenerateAccessToken(h.jwtConfig, user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate access token", slog.Any("error", err))
		RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email))

	RespondJSON(w, http.StatusCreated, api.Response{
		Success: true,
		Message: "User registered successfully",
		Data:    api.AuthData{User: publicUser(user), Token: token},
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode login request", slog.Any("error", err))
		RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := validation.ValidateLogin(&req); len(errs) > 0 {
		RespondValidationErrors(w, errs)
		return
	}

	// Unknown email and wrong password produce the same response, so the
	// endpoint cannot be used to enumerate accounts.
	user, err := h.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "login failed: user not found", slog.String("email", req.Email))
			RespondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		h.logger.WarnContext(ctx, "login failed: password mismatch", slog.String("user_id", user.ID))
		RespondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, _, err := auth.GenerateAccessToken(h.jwtConfig, user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate access token", slog.Any("error", err))
		RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID))

	RespondJSON(w, http.StatusOK, api.Response{
		Success: true,
		Message: "Login successful",
		Data:    api.AuthData{User: publicUser(user), Token: token},
	})
}

// Me handles GET /api/auth/me. The auth middleware has already loaded
// the user; no additional lookup happens here.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		RespondError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	RespondJSON(w, http.StatusOK, api.Response{
		Success: true,
		Data:    api.MeData{User: publicUser(user)},
	})
}

// ForgotPassword handles POST /api/auth/forgot-password.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode forgot-password request", slog.Any("error", err))
		RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := validation.ValidateForgotPassword(&req); len(errs) > 0 {
		RespondValidationErrors(w, errs)
		return
	}

	user, err := h.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			RespondError(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	token, tokenHash, expiresAt, err := auth.NewResetToken(h.resetTTL)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate reset token", slog.Any("error", err))
		RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// Partial update: only the reset-token fields change, nothing else
	// on the record is re-validated.
	if err := h.users.SetResetToken(ctx, user.ID, tokenHash, expiresAt); err != nil {
		h.logger.ErrorContext(ctx, "failed to store reset token", slog.Any("error", err))
		RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", h.frontendURL, token)
	body := fmt.Sprintf("You are receiving this email because you (or someone else) has requested the reset of a password. Please make a PUT request to:\n\n%s", resetURL)

	if err := h.mailer.Send(ctx, user.Email, "Password reset token", body); err != nil {
		h.logger.ErrorContext(ctx, "failed to send reset email", slog.Any("error", err))

		// A failed send must not leave a usable token behind.
		if clearErr := h.users.ClearResetToken(ctx, user.ID); clearErr != nil {
			h.logger.ErrorContext(ctx, "failed to clear reset token after send failure", slog.Any("error", clearErr))
		}

		RespondError(w, http.StatusInternalServerError, "Email could not be sent")
		return
	}

	h.logger.InfoContext(ctx, "reset email sent", slog.String("user_id", user.ID))

	// The raw token goes out only in the email, never in the response.
	RespondJSON(w, http.StatusOK, api.Response{
		Success: true,
		Message: "Email sent",
	})
}

// ResetPassword handles PUT /api/auth/reset-password/{resettoken}.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode reset-password request", slog.Any("error", err))
		RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := validation.ValidateResetPassword(&req); len(errs) > 0 {
		RespondValidationErrors(w, errs)
		return
	}

	tokenHash := auth.HashResetToken(chi.URLParam(r, "resettoken"))

	user, err := h.users.GetUserByResetToken(ctx, tokenHash, time.Now())
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			RespondError(w, http.StatusBadRequest, "Invalid or expired reset token")
			return
		}
		h.logger.ErrorContext(ctx, "failed to look up reset token", slog.Any("error", err))
		RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// UpdatePassword clears the reset-token fields, so the token cannot
	// be replayed.
	if err := h.users.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		h.logger.ErrorContext(ctx, "failed to update password", slog.Any("error", err))
		RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	token, _, err := auth.GenerateAccessToken(h.jwtConfig, user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate access token", slog.Any("error", err))
		RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.InfoContext(ctx, "password reset", slog.String("user_id", user.ID))

	RespondJSON(w, http.StatusOK, api.Response{
		Success: true,
		Message: "Password reset successful",
		Data:    api.AuthData{User: publicUser(user), Token: token},
	})
}

// ChangePassword handles PUT /api/auth/change-password. Requires auth.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	current := UserFromContext(ctx)
	if current == nil {
		RespondError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	var req api.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode change-password request", slog.Any("error", err))
		RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := validation.ValidateChangePassword(&req); len(errs) > 0 {
		RespondValidationErrors(w, errs)
		return
	}

	// Reload with the password hash; the guard strips it.
	user, err := h.users.GetUserByIDWithPassword(ctx, current.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if !auth.CheckPassword(req.CurrentPassword, user.PasswordHash) {
		RespondError(w, http.StatusBadRequest, "Current password is incorrect")
		return
	}

	passwordHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := h.users.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		h.logger.ErrorContext(ctx, "failed to update password", slog.Any("error", err))
		RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.InfoContext(ctx, "password changed", slog.String("user_id", user.ID))

	// The existing bearer token stays valid; no new token is issued.
	RespondJSON(w, http.StatusOK, api.Response{
		Success: true,
		Message: "Password changed successfully",
	})
}

// publicUser builds the public projection of a user record.
func publicUser(user *models.User) api.UserPayload {
	return api.UserPayload{
		ID:              user.ID,
		Fullname:        user.Fullname,
		Email:           user.Email,
		ProfileImageURL: user.ProfileImageURL,
	}
}

package api

// RegisterRequest represents a request to create a new account.
type RegisterRequest struct {
	Fullname        string `json:"fullname"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

// LoginRequest represents an authentication request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest asks for a password-reset email.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest carries the new password; the reset token itself
// travels in the URL path.
type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// ChangePasswordRequest rotates the password of an authenticated user.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UserPayload is the public projection of a user record.
// It never carries the password hash or reset-token fields.
type UserPayload struct {
	ID              string `json:"id"`
	Fullname        string `json:"fullname"`
	Email           string `json:"email"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

// AuthData is the data section returned by register, login and
// reset-password: the public user projection plus a bearer token.
type AuthData struct {
	User  UserPayload `json:"user"`
	Token string      `json:"token"`
}

// AuthResponse is the typed envelope for endpoints returning AuthData.
// Used by the CLI client to decode responses.
type AuthResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    AuthData `json:"data"`
}

// MeData is the data section of GET /api/auth/me.
type MeData struct {
	User UserPayload `json:"user"`
}

// MeResponse is the typed envelope for GET /api/auth/me.
type MeResponse struct {
	Success bool   `json:"success"`
	Data    MeData `json:"data"`
}

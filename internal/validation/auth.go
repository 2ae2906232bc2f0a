// Package validation implements explicit per-field validators. Each
// Validate* function normalizes its request in place and returns the
// full list of field errors rather than stopping at the first one.
package validation

import (
	"regexp"
	"strings"

	"github.com/donelist/donelist/pkg/api"
)

// EmailPattern defines the accepted email format: a local part and a
// domain with at least one dot, no whitespace.
var EmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const (
	// MinFullnameLen is the minimum full name length.
	MinFullnameLen = 2
	// MaxFullnameLen is the maximum full name length.
	MaxFullnameLen = 100
	// MinPasswordLen is the minimum password length.
	MinPasswordLen = 6
)

// NormalizeEmail lowercases and trims an email address. Emails are
// normalized on every write so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkFullname(fullname string) string {
	switch {
	case fullname == "":
		return "Full name is required"
	case len(fullname) < MinFullnameLen:
		return "Full name must be at least 2 characters long"
	case len(fullname) > MaxFullnameLen:
		return "Full name cannot exceed 100 characters"
	}
	return ""
}

func checkEmail(email string) string {
	if email == "" {
		return "Email is required"
	}
	if !EmailPattern.MatchString(email) {
		return "Please provide a valid email address"
	}
	return ""
}

func checkPassword(password string) string {
	switch {
	case password == "":
		return "Password is required"
	case len(password) < MinPasswordLen:
		return "Password must be at least 6 characters long"
	}
	return ""
}

func checkProfileImageURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	if !isValidURL(rawURL) {
		return "Profile image URL must be a valid URL"
	}
	return ""
}

// ValidateRegister normalizes and validates a registration request.
func ValidateRegister(req *api.RegisterRequest) []api.FieldError {
	req.Fullname = strings.TrimSpace(req.Fullname)
	req.Email = NormalizeEmail(req.Email)

	var errs []api.FieldError
	if msg := checkFullname(req.Fullname); msg != "" {
		errs = append(errs, api.FieldError{Field: "fullname", Message: msg})
	}
	if msg := checkEmail(req.Email); msg != "" {
		errs = append(errs, api.FieldError{Field: "email", Message: msg})
	}
	if msg := checkPassword(req.Password); msg != "" {
		errs = append(errs, api.FieldError{Field: "password", Message: msg})
	}
	if msg := checkProfileImageURL(req.ProfileImageURL); msg != "" {
		errs = append(errs, api.FieldError{Field: "profileImageUrl", Message: msg})
	}
	return errs
}

// ValidateLogin normalizes and validates a login request. Password here
// is only checked for presence; length rules apply at registration.
func ValidateLogin(req *api.LoginRequest) []api.FieldError {
	req.Email = NormalizeEmail(req.Email)

	var errs []api.FieldError
	if msg := checkEmail(req.Email); msg != "" {
		errs = append(errs, api.FieldError{Field: "email", Message: msg})
	}
	if req.Password == "" {
		errs = append(errs, api.FieldError{Field: "password", Message: "Password is required"})
	}
	return errs
}

// ValidateForgotPassword normalizes and validates a forgot-password request.
func ValidateForgotPassword(req *api.ForgotPasswordRequest) []api.FieldError {
	req.Email = NormalizeEmail(req.Email)

	var errs []api.FieldError
	if msg := checkEmail(req.Email); msg != "" {
		errs = append(errs, api.FieldError{Field: "email", Message: msg})
	}
	return errs
}

// ValidateResetPassword validates the new password of a reset request.
func ValidateResetPassword(req *api.ResetPasswordRequest) []api.FieldError {
	var errs []api.FieldError
	if msg := checkPassword(req.Password); msg != "" {
		errs = append(errs, api.FieldError{Field: "password", Message: msg})
	}
	return errs
}

// ValidateChangePassword validates a change-password request.
func ValidateChangePassword(req *api.ChangePasswordRequest) []api.FieldError {
	var errs []api.FieldError
	if req.CurrentPassword == "" {
		errs = append(errs, api.FieldError{Field: "currentPassword", Message: "Current password is required"})
	}
	switch {
	case req.NewPassword == "":
		errs = append(errs, api.FieldError{Field: "newPassword", Message: "New password is required"})
	case len(req.NewPassword) < MinPasswordLen:
		errs = append(errs, api.FieldError{Field: "newPassword", Message: "New password must be at least 6 characters long"})
	}
	return errs
}

// ValidateUpdateProfile validates a partial profile update. Only fields
// present in the request are checked.
func ValidateUpdateProfile(req *api.UpdateProfileRequest) []api.FieldError {
	var errs []api.FieldError
	if req.Fullname != nil {
		*req.Fullname = strings.TrimSpace(*req.Fullname)
		if len(*req.Fullname) < MinFullnameLen || len(*req.Fullname) > MaxFullnameLen {
			errs = append(errs, api.FieldError{Field: "fullname", Message: "Full name must be between 2 and 100 characters"})
		}
	}
	if req.Email != nil {
		*req.Email = NormalizeEmail(*req.Email)
		if msg := checkEmail(*req.Email); msg != "" {
			errs = append(errs, api.FieldError{Field: "email", Message: msg})
		}
	}
	if req.ProfileImageURL != nil && *req.ProfileImageURL != "" {
		if !isValidURL(*req.ProfileImageURL) {
			errs = append(errs, api.FieldError{Field: "profileImageUrl", Message: "Profile image URL must be a valid URL"})
		}
	}
	return errs
}

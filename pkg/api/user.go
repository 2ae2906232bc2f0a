package api

// UpdateProfileRequest is a partial profile update; nil fields are left
// unchanged. ProfileImageURL may be set to the empty string to clear it.
type UpdateProfileRequest struct {
	Fullname        *string `json:"fullname,omitempty"`
	Email           *string `json:"email,omitempty"`
	ProfileImageURL *string `json:"profileImageUrl,omitempty"`
}

// ProfileResponse is the typed envelope for profile endpoints.
type ProfileResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    UserPayload `json:"data"`
}

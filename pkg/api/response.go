package api

// Response is the common JSON envelope for all endpoints.
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError reports a single validation failure tagged with the
// offending request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

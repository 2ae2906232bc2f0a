package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/donelist/donelist/pkg/api"
)

// RespondJSON writes v as a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// RespondError writes the failure envelope with a single message.
func RespondError(w http.ResponseWriter, statusCode int, message string) {
	RespondJSON(w, statusCode, api.Response{
		Success: false,
		Message: message,
	})
}

// RespondValidationErrors writes the failure envelope carrying every
// collected field error.
func RespondValidationErrors(w http.ResponseWriter, errs []api.FieldError) {
	RespondJSON(w, http.StatusBadRequest, api.Response{
		Success: false,
		Message: "Validation error",
		Errors:  errs,
	})
}

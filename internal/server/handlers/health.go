package handlers

import (
	"log/slog"
	"net/http"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	logger  *slog.Logger
	version string
}

// NewHealthHandler creates a new handler for health checks.
func NewHealthHandler(logger *slog.Logger, version string) *HealthHandler {
	return &HealthHandler{
		logger:  logger,
		version: version,
	}
}

// HealthResponse represents the health check payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// Health handles GET /healthz.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: h.version,
	})
}

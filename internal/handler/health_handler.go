package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// HealthChecker reports whether a backing service is reachable
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	sessions HealthChecker
	backend  string
	logger   *slog.Logger
}

// NewHealthHandler creates a new health handler. backend names the session
// store in the response.
func NewHealthHandler(sessions HealthChecker, backend string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		sessions: sessions,
		backend:  backend,
		logger:   logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response := HealthResponse{
		Status: "healthy",
		Services: map[string]string{
			"customers": "healthy",
		},
	}

	key := "sessions_" + h.backend
	if err := h.sessions.Health(ctx); err != nil {
		h.logger.Error("session store health check failed",
			slog.String("backend", h.backend),
			slog.String("error", err.Error()),
		)
		response.Status = "unhealthy"
		response.Services[key] = "unhealthy"
	} else {
		response.Services[key] = "healthy"
	}

	if response.Status == "healthy" {
		respondSuccess(w, response)
	} else {
		respondJSON(w, http.StatusServiceUnavailable, response)
	}
}

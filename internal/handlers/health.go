package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/infinite-realms/engine/internal/services"
	"github.com/infinite-realms/engine/internal/storage"
)

// HealthHandler reports storage and narrator readiness.
type HealthHandler struct {
	storage  storage.Storage
	narrator services.NarratorService
	logger   *slog.Logger
}

type healthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

func NewHealthHandler(st storage.Storage, narrator services.NarratorService, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		storage:  st,
		narrator: narrator,
		logger:   logger,
	}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only GET is supported.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	resp := healthResponse{
		Status:   "ok",
		Services: map[string]string{"storage": "ok", "narrator": "ok"},
	}
	status := http.StatusOK

	if err := h.storage.Ping(ctx); err != nil {
		h.logger.Error("Storage health check failed", "error", err)
		resp.Services["storage"] = "unavailable"
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	if err := h.narrator.Ping(ctx); err != nil {
		h.logger.Warn("Narrator health check failed", "error", err)
		resp.Services["narrator"] = "unavailable"
		resp.Status = "degraded"
	}

	respondJSON(w, h.logger, status, resp)
}

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/venturelink/backend/internal/services"
	"github.com/venturelink/backend/internal/storage"
)

type HealthHandler struct {
	store storage.Store
}

func NewHealthHandler(store storage.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

type healthResponse struct {
	Status string `json:"status"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		services.SendJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "storage_unreachable"})
		return
	}
	services.SendJSON(w, http.StatusOK, healthResponse{Status: "healthy"})
}

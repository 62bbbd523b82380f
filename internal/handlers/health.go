package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/vidtube/backend/internal/content"
)

// HealthChecker reports whether a backing service is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler responds with service health information.
type HealthHandler struct {
	Store HealthChecker
}

// Handle implements GET /healthz.
func (h HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.Store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.Store.Ping(ctx); err != nil {
			respondError(w, r, content.Internal("Store unavailable", err))
			return
		}
	}
	respond(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

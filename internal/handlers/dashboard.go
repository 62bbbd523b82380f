package handlers

import (
	"net/http"

	"github.com/vidtube/backend/internal/content"
)

// DashboardHandler serves the caller's channel statistics.
type DashboardHandler struct {
	Dashboard *content.DashboardService
}

// Stats handles GET /dashboard/stats.
func (h DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user, ok := requireCaller(w, r)
	if !ok {
		return
	}
	stats, err := h.Dashboard.Stats(r.Context(), user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(r.Context(), w, http.StatusOK, stats, "Channel stats fetched successfully")
}

// Videos handles GET /dashboard/videos.
func (h DashboardHandler) Videos(w http.ResponseWriter, r *http.Request) {
	user, ok := requireCaller(w, r)
	if !ok {
		return
	}
	videos, err := h.Dashboard.Videos(r.Context(), user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(r.Context(), w, http.StatusOK, videos, "Channel videos fetched successfully")
}

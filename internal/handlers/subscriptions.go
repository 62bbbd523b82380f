package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vidtube/backend/internal/content"
	"github.com/vidtube/backend/internal/models"
)

// SubscriptionHandler implements channel subscription endpoints.
type SubscriptionHandler struct {
	Subscriptions *content.SubscriptionService
}

// Toggle handles POST /subscriptions/c/{channelId}.
func (h SubscriptionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user, ok := requireCaller(w, r)
	if !ok {
		return
	}
	result, err := h.Subscriptions.Toggle(r.Context(), user.ID, chi.URLParam(r, "channelId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	message := "Unsubscribed successfully"
	if result.State == models.ToggleCreated {
		message = "Subscribed successfully"
	}
	respond(r.Context(), w, http.StatusOK, result, message)
}

// Subscribers handles GET /subscriptions/c/{channelId}.
func (h SubscriptionHandler) Subscribers(w http.ResponseWriter, r *http.Request) {
	members, err := h.Subscriptions.Subscribers(r.Context(), chi.URLParam(r, "channelId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(r.Context(), w, http.StatusOK, members, "Subscribers fetched successfully")
}

// SubscribedChannels handles GET /subscriptions/u/{subscriberId}.
func (h SubscriptionHandler) SubscribedChannels(w http.ResponseWriter, r *http.Request) {
	user, ok := requireCaller(w, r)
	if !ok {
		return
	}
	members, err := h.Subscriptions.SubscribedChannels(r.Context(), user.ID, chi.URLParam(r, "subscriberId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(r.Context(), w, http.StatusOK, members, "Subscribed channels fetched successfully")
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vidtube/backend/internal/content"
)

// TweetHandler implements the channel post endpoints.
type TweetHandler struct {
	Tweets *content.TweetService
}

type tweetRequest struct {
	Content string `json:"content" validate:"notblank,max=500"`
}

// Create handles POST /tweets.
func (h TweetHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req tweetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	tweet, err := h.Tweets.Create(r.Context(), user.ID, req.Content)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(r.Context(), w, http.StatusCreated, tweet, "Tweet created successfully")
}

// ListByUser handles GET /tweets/user/{userId}.
func (h TweetHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	page, err := h.Tweets.ListByUser(r.Context(), chi.URLParam(r, "userId"), listParams(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(r.Context(), w, http.StatusOK, page, "Tweets fetched successfully")
}

// Update handles PATCH /tweets/{tweetId}.
func (h TweetHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req tweetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	tweet, err := h.Tweets.Update(r.Context(), user.ID, chi.URLParam(r, "tweetId"), req.Content)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(r.Context(), w, http.StatusOK, tweet, "Tweet updated successfully")
}

// Delete handles DELETE /tweets/{tweetId}.
func (h TweetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := requireCaller(w, r)
	if !ok {
		return
	}
	if err := h.Tweets.Delete(r.Context(), user.ID, chi.URLParam(r, "tweetId")); err != nil {
		respondError(w, r, err)
		return
	}
	respond(r.Context(), w, http.StatusOK, struct{}{}, "Tweet deleted successfully")
}

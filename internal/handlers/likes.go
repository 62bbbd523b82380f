package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vidtube/backend/internal/content"
	"github.com/vidtube/backend/internal/models"
)

// LikeHandler implements the like toggles and the liked videos listing.
type LikeHandler struct {
	Likes *content.LikeService
}

type toggleFunc func(ctx context.Context, callerID, targetID string) (models.ToggleResult, error)

func (h LikeHandler) toggle(param, label string, fn toggleFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := requireCaller(w, r)
		if !ok {
			return
		}
		result, err := fn(r.Context(), user.ID, chi.URLParam(r, param))
		if err != nil {
			respondError(w, r, err)
			return
		}
		message := label + " like removed"
		if result.State == models.ToggleCreated {
			message = label + " liked"
		}
		respond(r.Context(), w, http.StatusOK, result, message)
	}
}

// ToggleVideo handles POST /likes/toggle/v/{videoId}.
func (h LikeHandler) ToggleVideo() http.HandlerFunc {
	return h.toggle("videoId", "Video", h.Likes.ToggleVideoLike)
}

// ToggleComment handles POST /likes/toggle/c/{commentId}.
func (h LikeHandler) ToggleComment() http.HandlerFunc {
	return h.toggle("commentId", "Comment", h.Likes.ToggleCommentLike)
}

// ToggleTweet handles POST /likes/toggle/t/{tweetId}.
func (h LikeHandler) ToggleTweet() http.HandlerFunc {
	return h.toggle("tweetId", "Tweet", h.Likes.ToggleTweetLike)
}

// LikedVideos handles GET /likes/videos.
func (h LikeHandler) LikedVideos(w http.ResponseWriter, r *http.Request) {
	user, ok := requireCaller(w, r)
	if !ok {
		return
	}
	videos, err := h.Likes.LikedVideos(r.Context(), user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(r.Context(), w, http.StatusOK, videos, "Liked videos fetched successfully")
}

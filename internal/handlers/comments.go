package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vidtube/backend/internal/content"
)

// CommentHandler implements the comment endpoints.
type CommentHandler struct {
	Comments *content.CommentService
}

type commentRequest struct {
	Content string `json:"content" validate:"notblank,max=2000"`
}

// List handles GET /comments/{videoId}.
func (h CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := requireCaller(w, r)
	if !ok {
		return
	}
	page, err := h.Comments.List(r.Context(), user.ID, chi.URLParam(r, "videoId"), listParams(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(r.Context(), w, http.StatusOK, page, "Comments fetched successfully")
}

// Add handles POST /comments/{videoId}.
func (h CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	user, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req commentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	comment, err := h.Comments.Add(r.Context(), user.ID, chi.URLParam(r, "videoId"), req.Content)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(r.Context(), w, http.StatusCreated, comment, "Comment added successfully")
}

// Update handles PATCH /comments/c/{commentId}.
func (h CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req commentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	comment, err := h.Comments.Update(r.Context(), user.ID, chi.URLParam(r, "commentId"), req.Content)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(r.Context(), w, http.StatusOK, comment, "Comment updated successfully")
}

// Delete handles DELETE /comments/c/{commentId}.
func (h CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := requireCaller(w, r)
	if !ok {
		return
	}
	if err := h.Comments.Delete(r.Context(), user.ID, chi.URLParam(r, "commentId")); err != nil {
		respondError(w, r, err)
		return
	}
	respond(r.Context(), w, http.StatusOK, struct{}{}, "Comment deleted successfully")
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := decodeJSON(r, req); err != nil {
		respondError(w, r, err)
		return false
	}
	if err := validateRequest(req); err != nil {
		respondError(w, r, err)
		return false
	}
	return true
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vidtube/backend/internal/content"
)

// PlaylistHandler implements the playlist endpoints.
type PlaylistHandler struct {
	Playlists *content.PlaylistService
}

type createPlaylistRequest struct {
	Name        string `json:"name" validate:"notblank,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

type updatePlaylistRequest struct {
	Name        *string `json:"name" validate:"omitnil,notblank,max=100"`
	Description *string `json:"description" validate:"omitnil,max=1000"`
}

// Create handles POST /playlists.
func (h PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req createPlaylistRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	playlist, err := h.Playlists.Create(r.Context(), user.ID, req.Name, req.Description)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(r.Context(), w, http.StatusCreated, playlist, "Playlist created successfully")
}

// Get handles GET /playlists/{playlistId}.
func (h PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	playlist, err := h.Playlists.Get(r.Context(), chi.URLParam(r, "playlistId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(r.Context(), w, http.StatusOK, playlist, "Playlist fetched successfully")
}

// Update handles PATCH /playlists/{playlistId}.
func (h PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req updatePlaylistRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	playlist, err := h.Playlists.Update(r.Context(), user.ID, chi.URLParam(r, "playlistId"), req.Name, req.Description)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(r.Context(), w, http.StatusOK, playlist, "Playlist updated successfully")
}

// Delete handles DELETE /playlists/{playlistId}.
func (h PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := requireCaller(w, r)
	if !ok {
		return
	}
	if err := h.Playlists.Delete(r.Context(), user.ID, chi.URLParam(r, "playlistId")); err != nil {
		respondError(w, r, err)
		return
	}
	respond(r.Context(), w, http.StatusOK, struct{}{}, "Playlist deleted successfully")
}

// AddVideo handles PATCH /playlists/add/{videoId}/{playlistId}.
func (h PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	user, ok := requireCaller(w, r)
	if !ok {
		return
	}
	playlist, err := h.Playlists.AddVideo(r.Context(), user.ID, chi.URLParam(r, "videoId"), chi.URLParam(r, "playlistId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(r.Context(), w, http.StatusOK, playlist, "Video added to playlist")
}

// RemoveVideo handles PATCH /playlists/remove/{videoId}/{playlistId}.
func (h PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	user, ok := requireCaller(w, r)
	if !ok {
		return
	}
	playlist, err := h.Playlists.RemoveVideo(r.Context(), user.ID, chi.URLParam(r, "videoId"), chi.URLParam(r, "playlistId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(r.Context(), w, http.StatusOK, playlist, "Video removed from playlist")
}

// UserPlaylists handles GET /playlists/user/{userId}.
func (h PlaylistHandler) UserPlaylists(w http.ResponseWriter, r *http.Request) {
	playlists, err := h.Playlists.UserPlaylists(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(r.Context(), w, http.StatusOK, playlists, "Playlists fetched successfully")
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vidtube/backend/internal/content"
)

// VideoHandler implements the video catalogue endpoints.
type VideoHandler struct {
	Videos  *content.VideoService
	Uploads Uploads
}

type publishVideoRequest struct {
	Title       string `form:"title" validate:"notblank,max=200"`
	Description string `form:"description" validate:"notblank,max=5000"`
}

type updateVideoRequest struct {
	Title       *string `form:"title" validate:"omitnil,notblank,max=200"`
	Description *string `form:"description" validate:"omitnil,max=5000"`
}

func listParams(r *http.Request) content.ListParams {
	q := r.URL.Query()
	return content.ListParams{
		Page:     q.Get("page"),
		Limit:    q.Get("limit"),
		Query:    q.Get("query"),
		SortBy:   q.Get("sortBy"),
		SortType: q.Get("sortType"),
		UserID:   q.Get("userId"),
	}
}

// List handles GET /videos.
func (h VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := requireCaller(w, r)
	if !ok {
		return
	}
	page, err := h.Videos.List(r.Context(), user.ID, listParams(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(r.Context(), w, http.StatusOK, page, "Videos fetched successfully")
}

// Publish handles POST /videos.
func (h VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	user, ok := requireCaller(w, r)
	if !ok {
		return
	}
	f, err := h.Uploads.parse(w, r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	defer f.cleanup()

	req := publishVideoRequest{Title: f.value("title"), Description: f.value("description")}
	if err := validateRequest(req); err != nil {
		respondError(w, r, err)
		return
	}
	videoFile, err := f.file("videoFile")
	if err != nil {
		respondError(w, r, err)
		return
	}
	thumbnail, err := f.file("thumbnail")
	if err != nil {
		respondError(w, r, err)
		return
	}

	video, err := h.Videos.Publish(r.Context(), user.ID, content.PublishVideoInput{
		Title:       req.Title,
		Description: req.Description,
		VideoFile:   videoFile,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(r.Context(), w, http.StatusCreated, video, "Video published successfully")
}

// Get handles GET /videos/{videoId}.
func (h VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := requireCaller(w, r)
	if !ok {
		return
	}
	video, err := h.Videos.Get(r.Context(), user.ID, chi.URLParam(r, "videoId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(r.Context(), w, http.StatusOK, video, "Video fetched successfully")
}

// Update handles PATCH /videos/{videoId}.
func (h VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := requireCaller(w, r)
	if !ok {
		return
	}
	f, err := h.Uploads.parse(w, r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	defer f.cleanup()

	req := updateVideoRequest{Title: f.optionalValue("title"), Description: f.optionalValue("description")}
	if err := validateRequest(req); err != nil {
		respondError(w, r, err)
		return
	}
	thumbnail, err := f.file("thumbnail")
	if err != nil {
		respondError(w, r, err)
		return
	}

	video, err := h.Videos.Update(r.Context(), user.ID, chi.URLParam(r, "videoId"), content.UpdateVideoInput{
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(r.Context(), w, http.StatusOK, video, "Video updated successfully")
}

// Delete handles DELETE /videos/{videoId}.
func (h VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := requireCaller(w, r)
	if !ok {
		return
	}
	if err := h.Videos.Delete(r.Context(), user.ID, chi.URLParam(r, "videoId")); err != nil {
		respondError(w, r, err)
		return
	}
	respond(r.Context(), w, http.StatusOK, struct{}{}, "Video deleted successfully")
}

// TogglePublish handles PATCH /videos/toggle/publish/{videoId}.
func (h VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	user, ok := requireCaller(w, r)
	if !ok {
		return
	}
	video, err := h.Videos.TogglePublish(r.Context(), user.ID, chi.URLParam(r, "videoId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(r.Context(), w, http.StatusOK, video, "Publish status toggled successfully")
}

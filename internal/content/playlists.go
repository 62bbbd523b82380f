package content

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/repositories"
)

// PlaylistService manages ordered, duplicate free video collections.
type PlaylistService struct {
	playlists repositories.PlaylistRepository
	videos    repositories.VideoRepository
	users     repositories.UserRepository
	now       func() time.Time
}

// NewPlaylistService constructs a PlaylistService.
func NewPlaylistService(playlists repositories.PlaylistRepository, videos repositories.VideoRepository, users repositories.UserRepository) *PlaylistService {
	return &PlaylistService{playlists: playlists, videos: videos, users: users, now: utcNow}
}

// Create stores an empty playlist owned by the caller.
func (s *PlaylistService) Create(ctx context.Context, callerID, name, description string) (models.PlaylistDetails, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.PlaylistDetails{}, InvalidArgument("Playlist name is required")
	}

	now := s.now()
	playlist := models.Playlist{
		ID:          models.NewID(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Owner:       callerID,
		Videos:      []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.playlists.Create(ctx, playlist); err != nil {
		return models.PlaylistDetails{}, Internal("Failed to create playlist", err)
	}

	stored, err := s.playlists.FindByID(ctx, playlist.ID)
	if err != nil {
		return models.PlaylistDetails{}, Internal("Playlist was saved but could not be loaded", err)
	}
	return s.details(ctx, stored)
}

// Get returns a playlist with its video count and owner.
func (s *PlaylistService) Get(ctx context.Context, playlistID string) (models.PlaylistDetails, error) {
	if err := ValidateID("Playlist", playlistID); err != nil {
		return models.PlaylistDetails{}, err
	}
	playlist, err := s.playlists.FindByID(ctx, playlistID)
	if err != nil {
		return models.PlaylistDetails{}, lookupError(err, "Playlist")
	}
	return s.details(ctx, playlist)
}

func (s *PlaylistService) details(ctx context.Context, playlist models.Playlist) (models.PlaylistDetails, error) {
	summary, err := ownerSummary(ctx, s.users, playlist.Owner)
	if err != nil {
		return models.PlaylistDetails{}, Internal("Failed to load playlist owner", err)
	}
	if playlist.Videos == nil {
		playlist.Videos = []string{}
	}
	return models.PlaylistDetails{Playlist: playlist, TotalVideos: len(playlist.Videos), OwnerDetails: summary}, nil
}

// Update changes the name and/or description of a playlist the caller owns.
func (s *PlaylistService) Update(ctx context.Context, callerID, playlistID string, name, description *string) (models.PlaylistDetails, error) {
	if err := ValidateID("Playlist", playlistID); err != nil {
		return models.PlaylistDetails{}, err
	}
	if name == nil && description == nil {
		return models.PlaylistDetails{}, InvalidArgument("At least one of name or description is required")
	}

	playlist, err := s.owned(ctx, callerID, playlistID, "update this playlist")
	if err != nil {
		return models.PlaylistDetails{}, err
	}
	if name != nil {
		if playlist.Name = strings.TrimSpace(*name); playlist.Name == "" {
			return models.PlaylistDetails{}, InvalidArgument("Playlist name cannot be empty")
		}
	}
	if description != nil {
		playlist.Description = strings.TrimSpace(*description)
	}

	playlist.UpdatedAt = s.now()
	if err := s.playlists.Update(ctx, playlist); err != nil {
		return models.PlaylistDetails{}, Internal("Failed to update playlist", err)
	}
	return s.details(ctx, playlist)
}

// Delete removes a playlist the caller owns. The videos themselves are untouched.
func (s *PlaylistService) Delete(ctx context.Context, callerID, playlistID string) error {
	if err := ValidateID("Playlist", playlistID); err != nil {
		return err
	}
	if _, err := s.owned(ctx, callerID, playlistID, "delete this playlist"); err != nil {
		return err
	}
	if err := s.playlists.Delete(ctx, playlistID); err != nil {
		return Internal("Failed to delete playlist", err)
	}
	return nil
}

// AddVideo appends an existing video to a playlist the caller owns.
func (s *PlaylistService) AddVideo(ctx context.Context, callerID, videoID, playlistID string) (models.PlaylistDetails, error) {
	if err := s.validatePair(videoID, playlistID); err != nil {
		return models.PlaylistDetails{}, err
	}
	if _, err := s.owned(ctx, callerID, playlistID, "modify this playlist"); err != nil {
		return models.PlaylistDetails{}, err
	}
	if _, err := visibleVideo(ctx, s.videos, callerID, videoID); err != nil {
		return models.PlaylistDetails{}, err
	}

	switch err := s.playlists.AddVideo(ctx, playlistID, videoID); {
	case errors.Is(err, repositories.ErrConflict):
		return models.PlaylistDetails{}, InvalidArgument("Video is already in the playlist")
	case errors.Is(err, repositories.ErrNotFound):
		return models.PlaylistDetails{}, NotFound("Playlist not found")
	case err != nil:
		return models.PlaylistDetails{}, Internal("Failed to add video to playlist", err)
	}
	return s.Get(ctx, playlistID)
}

// RemoveVideo drops a video from a playlist the caller owns.
func (s *PlaylistService) RemoveVideo(ctx context.Context, callerID, videoID, playlistID string) (models.PlaylistDetails, error) {
	if err := s.validatePair(videoID, playlistID); err != nil {
		return models.PlaylistDetails{}, err
	}
	if _, err := s.owned(ctx, callerID, playlistID, "modify this playlist"); err != nil {
		return models.PlaylistDetails{}, err
	}

	switch err := s.playlists.RemoveVideo(ctx, playlistID, videoID); {
	case errors.Is(err, repositories.ErrNotFound):
		return models.PlaylistDetails{}, InvalidArgument("Video is not in the playlist")
	case err != nil:
		return models.PlaylistDetails{}, Internal("Failed to remove video from playlist", err)
	}
	return s.Get(ctx, playlistID)
}

// UserPlaylists lists every playlist of a user with the total counted for that same user.
func (s *PlaylistService) UserPlaylists(ctx context.Context, userID string) (models.UserPlaylists, error) {
	if err := ValidateID("User", userID); err != nil {
		return models.UserPlaylists{}, err
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return models.UserPlaylists{}, lookupError(err, "User")
	}

	playlists, err := s.playlists.ListByOwner(ctx, userID)
	if err != nil {
		return models.UserPlaylists{}, Internal("Failed to fetch playlists", err)
	}
	if playlists == nil {
		playlists = []models.PlaylistDetails{}
	}
	total, err := s.playlists.CountByOwner(ctx, userID)
	if err != nil {
		return models.UserPlaylists{}, Internal("Failed to count playlists", err)
	}
	return models.UserPlaylists{Playlists: playlists, Total: total}, nil
}

func (s *PlaylistService) validatePair(videoID, playlistID string) error {
	if err := ValidateID("Video", videoID); err != nil {
		return err
	}
	return ValidateID("Playlist", playlistID)
}

func (s *PlaylistService) owned(ctx context.Context, callerID, playlistID, action string) (models.Playlist, error) {
	playlist, err := s.playlists.FindByID(ctx, playlistID)
	if err != nil {
		return models.Playlist{}, lookupError(err, "Playlist")
	}
	if err := RequireOwner(playlist, callerID, action); err != nil {
		return models.Playlist{}, err
	}
	return playlist, nil
}

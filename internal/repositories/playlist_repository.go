package repositories

import (
	"context"

	"github.com/vidtube/backend/internal/models"
)

// PlaylistRepository exposes data access for playlists.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist models.Playlist) error
	FindByID(ctx context.Context, id string) (models.Playlist, error)
	// Update replaces name, description and updatedAt.
	Update(ctx context.Context, playlist models.Playlist) error
	Delete(ctx context.Context, id string) error
	// AddVideo appends a video, returning ErrConflict when it is already present.
	AddVideo(ctx context.Context, playlistID, videoID string) error
	// RemoveVideo drops a video, returning ErrNotFound when it is not present.
	RemoveVideo(ctx context.Context, playlistID, videoID string) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.PlaylistDetails, error)
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
}

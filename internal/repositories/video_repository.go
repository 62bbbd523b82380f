package repositories

import (
	"context"

	"github.com/vidtube/backend/internal/models"
)

// VideoRepository exposes data access for uploaded videos.
type VideoRepository interface {
	Create(ctx context.Context, video models.Video) error
	FindByID(ctx context.Context, id string) (models.Video, error)
	FindDetails(ctx context.Context, id string) (models.VideoDetails, error)
	// Update replaces the mutable fields: title, description, thumbnail, isPublished and updatedAt.
	Update(ctx context.Context, video models.Video) error
	// Delete removes the video together with its likes, comments and playlist memberships.
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	List(ctx context.Context, q models.ListQuery) ([]models.VideoDetails, error)
	Count(ctx context.Context, q models.ListQuery) (int64, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.ChannelVideo, error)
}

// DashboardRepository computes per-channel aggregates.
type DashboardRepository interface {
	ChannelStats(ctx context.Context, ownerID string) (models.ChannelStats, error)
}

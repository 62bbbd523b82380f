package content

import (
	"context"

	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/repositories"
)

// DashboardService reports aggregates for the caller's own channel.
type DashboardService struct {
	dashboard repositories.DashboardRepository
	videos    repositories.VideoRepository
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(dashboard repositories.DashboardRepository, videos repositories.VideoRepository) *DashboardService {
	return &DashboardService{dashboard: dashboard, videos: videos}
}

// Stats returns subscriber, video, like and view totals. A channel without videos reports zeros.
func (s *DashboardService) Stats(ctx context.Context, callerID string) (models.ChannelStats, error) {
	stats, err := s.dashboard.ChannelStats(ctx, callerID)
	if err != nil {
		return models.ChannelStats{}, Internal("Failed to fetch channel stats", err)
	}
	return stats, nil
}

// Videos lists every video on the caller's channel in its reduced dashboard shape.
func (s *DashboardService) Videos(ctx context.Context, callerID string) (models.ChannelVideos, error) {
	videos, err := s.videos.ListByOwner(ctx, callerID)
	if err != nil {
		return models.ChannelVideos{}, Internal("Failed to fetch channel videos", err)
	}
	if videos == nil {
		videos = []models.ChannelVideo{}
	}
	return models.ChannelVideos{Videos: videos, Total: len(videos)}, nil
}

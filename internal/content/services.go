package content

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/vidtube/backend/internal/logging"
	"github.com/vidtube/backend/internal/media"
	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/repositories"
)

// MediaHost stores uploaded files and removes them again.
type MediaHost interface {
	Upload(ctx context.Context, file media.StagedFile, kind media.Kind) (media.Asset, error)
	Delete(ctx context.Context, location string) error
}

// Services groups every domain service over one store and media host.
type Services struct {
	Accounts      *AccountService
	Videos        *VideoService
	Comments      *CommentService
	Tweets        *TweetService
	Likes         *LikeService
	Subscriptions *SubscriptionService
	Playlists     *PlaylistService
	Dashboard     *DashboardService
}

// NewServices wires the domain services onto store.
func NewServices(store repositories.Store, host MediaHost, sessions SessionManager) Services {
	return Services{
		Accounts:      NewAccountService(store.Users, sessions, host),
		Videos:        NewVideoService(store.Videos, store.Users, store.Likes, host),
		Comments:      NewCommentService(store.Comments, store.Videos),
		Tweets:        NewTweetService(store.Tweets, store.Users),
		Likes:         NewLikeService(store.Likes, store.Videos, store.Comments, store.Tweets),
		Subscriptions: NewSubscriptionService(store.Subscriptions, store.Users),
		Playlists:     NewPlaylistService(store.Playlists, store.Videos, store.Users),
		Dashboard:     NewDashboardService(store.Dashboard, store.Videos),
	}
}

func utcNow() time.Time { return time.Now().UTC() }

// lookupError maps a store read failure for resource, e.g. "Video", onto NotFound or Internal.
func lookupError(err error, resource string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return NotFound(resource + " not found")
	}
	return Internal("Failed to load "+strings.ToLower(resource), err)
}

// visibleVideo loads a video the caller may see. Unpublished videos exist only for their owner.
func visibleVideo(ctx context.Context, videos repositories.VideoRepository, callerID, videoID string) (models.Video, error) {
	video, err := videos.FindByID(ctx, videoID)
	if err != nil {
		return models.Video{}, lookupError(err, "Video")
	}
	if !video.IsPublished && video.Owner != callerID {
		return models.Video{}, NotFound("Video not found")
	}
	return video, nil
}

// ownerSummary joins the public fields of a resource's owner. A deleted owner keeps only its id.
func ownerSummary(ctx context.Context, users repositories.UserRepository, ownerID string) (models.OwnerSummary, error) {
	owner, err := users.FindByID(ctx, ownerID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return models.OwnerSummary{}, err
	}
	summary := owner.Summary()
	summary.ID = ownerID
	return summary, nil
}

// discardAssets removes uploaded media after a failed write. Failures are logged, not retried.
func discardAssets(ctx context.Context, host MediaHost, locations ...string) {
	for _, location := range locations {
		if location == "" {
			continue
		}
		if err := host.Delete(ctx, location); err != nil {
			logging.FromContext(ctx).Warn("discard uploaded media", slog.String("url", location), slog.Any("error", err))
		}
	}
}

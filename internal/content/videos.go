package content

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/vidtube/backend/internal/logging"
	"github.com/vidtube/backend/internal/media"
	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/repositories"
)

// PublishVideoInput carries a new upload. Both files must already be staged on local disk.
type PublishVideoInput struct {
	Title       string
	Description string
	VideoFile   *media.StagedFile
	Thumbnail   *media.StagedFile
}

// UpdateVideoInput carries a partial update. Nil fields are left unchanged.
type UpdateVideoInput struct {
	Title       *string
	Description *string
	Thumbnail   *media.StagedFile
}

// VideoService implements publishing, reading, editing and removing videos.
type VideoService struct {
	videos repositories.VideoRepository
	users  repositories.UserRepository
	likes  repositories.LikeRepository
	media  MediaHost
	now    func() time.Time
}

// NewVideoService constructs a VideoService.
func NewVideoService(videos repositories.VideoRepository, users repositories.UserRepository, likes repositories.LikeRepository, host MediaHost) *VideoService {
	return &VideoService{videos: videos, users: users, likes: likes, media: host, now: utcNow}
}

// List returns one page of the public feed. Unpublished videos appear only when the
// feed is scoped to the caller's own channel.
func (s *VideoService) List(ctx context.Context, callerID string, params ListParams) (models.Page[models.VideoDetails], error) {
	q, err := NewListQuery(params)
	if err != nil {
		return models.Page[models.VideoDetails]{}, err
	}
	q.PublishedOnly = callerID == "" || q.OwnerID != callerID
	return Paginate(ctx, q, s.videos.Count, s.videos.List)
}

// Publish uploads the media, stores the video and returns it joined with its owner.
// Uploaded assets are removed again if any later step fails.
func (s *VideoService) Publish(ctx context.Context, callerID string, in PublishVideoInput) (models.VideoDetails, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || description == "" {
		return models.VideoDetails{}, InvalidArgument("Title and description are required")
	}
	if in.VideoFile == nil {
		return models.VideoDetails{}, InvalidArgument("Video file is required")
	}
	if in.Thumbnail == nil {
		return models.VideoDetails{}, InvalidArgument("Thumbnail file is required")
	}

	ctx, span := logging.StartSpan(ctx, "videos.publish")
	defer span.End()

	videoAsset, err := s.media.Upload(ctx, *in.VideoFile, media.KindVideo)
	if err != nil {
		span.Fail(err)
		return models.VideoDetails{}, Internal("Failed to upload video file", err)
	}
	thumbAsset, err := s.media.Upload(ctx, *in.Thumbnail, media.KindImage)
	if err != nil {
		span.Fail(err)
		discardAssets(ctx, s.media, videoAsset.URL)
		return models.VideoDetails{}, Internal("Failed to upload thumbnail", err)
	}

	now := s.now()
	video := models.Video{
		ID:          models.NewID(),
		Owner:       callerID,
		Title:       title,
		Description: description,
		VideoFile:   videoAsset.URL,
		Thumbnail:   thumbAsset.URL,
		Duration:    videoAsset.Duration,
		IsPublished: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.videos.Create(ctx, video); err != nil {
		span.Fail(err)
		discardAssets(ctx, s.media, videoAsset.URL, thumbAsset.URL)
		return models.VideoDetails{}, Internal("Failed to save video", err)
	}

	details, err := s.videos.FindDetails(ctx, video.ID)
	if err != nil {
		span.Fail(err)
		return models.VideoDetails{}, Internal("Video was saved but could not be loaded", err)
	}
	logging.FromContext(ctx).Info("video published", slog.String("video_id", video.ID), slog.Int64("duration", video.Duration))
	return details, nil
}

// Get returns a video with its like count, counting the read as a view and recording it in the
// caller's watch history. Unpublished videos are only visible to their owner.
func (s *VideoService) Get(ctx context.Context, callerID, videoID string) (models.VideoView, error) {
	if err := ValidateID("Video", videoID); err != nil {
		return models.VideoView{}, err
	}

	details, err := s.videos.FindDetails(ctx, videoID)
	if err != nil {
		return models.VideoView{}, lookupError(err, "Video")
	}
	if !details.IsPublished && details.Owner != callerID {
		return models.VideoView{}, NotFound("Video not found")
	}

	if err := s.videos.IncrementViews(ctx, videoID); err != nil {
		return models.VideoView{}, Internal("Failed to record view", err)
	}
	details.Views++

	if err := s.users.RecordWatch(ctx, callerID, videoID, s.now()); err != nil {
		logging.FromContext(ctx).Warn("record watch history", slog.String("video_id", videoID), slog.Any("error", err))
	}

	likes, err := s.likes.Count(ctx, models.Target{Kind: models.TargetVideo, ID: videoID})
	if err != nil {
		return models.VideoView{}, Internal("Failed to count likes", err)
	}
	return models.VideoView{VideoDetails: details, TotalLikes: likes}, nil
}

// Update applies a partial update. A new thumbnail replaces the old one, which is deleted only
// after the record update succeeds.
func (s *VideoService) Update(ctx context.Context, callerID, videoID string, in UpdateVideoInput) (models.VideoDetails, error) {
	if err := ValidateID("Video", videoID); err != nil {
		return models.VideoDetails{}, err
	}
	if in.Title == nil && in.Description == nil && in.Thumbnail == nil {
		return models.VideoDetails{}, InvalidArgument("At least one of title, description or thumbnail is required")
	}

	video, err := s.videos.FindByID(ctx, videoID)
	if err != nil {
		return models.VideoDetails{}, lookupError(err, "Video")
	}
	if err := RequireOwner(video, callerID, "update this video"); err != nil {
		return models.VideoDetails{}, err
	}

	if in.Title != nil {
		if video.Title = strings.TrimSpace(*in.Title); video.Title == "" {
			return models.VideoDetails{}, InvalidArgument("Title cannot be empty")
		}
	}
	if in.Description != nil {
		if video.Description = strings.TrimSpace(*in.Description); video.Description == "" {
			return models.VideoDetails{}, InvalidArgument("Description cannot be empty")
		}
	}

	previousThumbnail := ""
	if in.Thumbnail != nil {
		asset, err := s.media.Upload(ctx, *in.Thumbnail, media.KindImage)
		if err != nil {
			return models.VideoDetails{}, Internal("Failed to upload thumbnail", err)
		}
		previousThumbnail = video.Thumbnail
		video.Thumbnail = asset.URL
	}

	video.UpdatedAt = s.now()
	if err := s.videos.Update(ctx, video); err != nil {
		if previousThumbnail != "" {
			discardAssets(ctx, s.media, video.Thumbnail)
		}
		return models.VideoDetails{}, Internal("Failed to update video", err)
	}
	discardAssets(ctx, s.media, previousThumbnail)

	details, err := s.videos.FindDetails(ctx, videoID)
	if err != nil {
		return models.VideoDetails{}, Internal("Video was updated but could not be loaded", err)
	}
	return details, nil
}

// Delete removes the video's media assets and then the record with everything attached to it.
func (s *VideoService) Delete(ctx context.Context, callerID, videoID string) error {
	if err := ValidateID("Video", videoID); err != nil {
		return err
	}

	video, err := s.videos.FindByID(ctx, videoID)
	if err != nil {
		return lookupError(err, "Video")
	}
	if err := RequireOwner(video, callerID, "delete this video"); err != nil {
		return err
	}

	ctx, span := logging.StartSpan(ctx, "videos.delete")
	defer span.End()

	for _, location := range []string{video.VideoFile, video.Thumbnail} {
		if err := s.media.Delete(ctx, location); err != nil {
			span.Fail(err)
			return Internal("Failed to delete video media", err)
		}
	}
	if err := s.videos.Delete(ctx, videoID); err != nil {
		span.Fail(err)
		return Internal("Failed to delete video", err)
	}
	return nil
}

// TogglePublish flips the publication flag of a video the caller owns.
func (s *VideoService) TogglePublish(ctx context.Context, callerID, videoID string) (models.Video, error) {
	if err := ValidateID("Video", videoID); err != nil {
		return models.Video{}, err
	}

	video, err := s.videos.FindByID(ctx, videoID)
	if err != nil {
		return models.Video{}, lookupError(err, "Video")
	}
	if err := RequireOwner(video, callerID, "change this video"); err != nil {
		return models.Video{}, err
	}

	video.IsPublished = !video.IsPublished
	video.UpdatedAt = s.now()
	if err := s.videos.Update(ctx, video); err != nil {
		return models.Video{}, Internal("Failed to toggle publish status", err)
	}
	return video, nil
}

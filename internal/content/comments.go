package content

import (
	"context"
	"strings"
	"time"

	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/repositories"
)

// CommentService manages comments left on videos.
type CommentService struct {
	comments repositories.CommentRepository
	videos   repositories.VideoRepository
	now      func() time.Time
}

// NewCommentService constructs a CommentService.
func NewCommentService(comments repositories.CommentRepository, videos repositories.VideoRepository) *CommentService {
	return &CommentService{comments: comments, videos: videos, now: utcNow}
}

// List returns one page of a video's comments, newest first unless sorted otherwise.
func (s *CommentService) List(ctx context.Context, callerID, videoID string, params ListParams) (models.Page[models.CommentDetails], error) {
	if err := ValidateID("Video", videoID); err != nil {
		return models.Page[models.CommentDetails]{}, err
	}
	q, err := newTimelineQuery(params)
	if err != nil {
		return models.Page[models.CommentDetails]{}, err
	}
	if _, err := visibleVideo(ctx, s.videos, callerID, videoID); err != nil {
		return models.Page[models.CommentDetails]{}, err
	}
	q.VideoID = videoID
	return Paginate(ctx, q, s.comments.Count, s.comments.List)
}

// Add stores a comment from the caller on an existing video.
func (s *CommentService) Add(ctx context.Context, callerID, videoID, text string) (models.CommentDetails, error) {
	if err := ValidateID("Video", videoID); err != nil {
		return models.CommentDetails{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return models.CommentDetails{}, InvalidArgument("Comment content is required")
	}
	if _, err := visibleVideo(ctx, s.videos, callerID, videoID); err != nil {
		return models.CommentDetails{}, err
	}

	now := s.now()
	comment := models.Comment{ID: models.NewID(), Content: text, VideoID: videoID, Owner: callerID, CreatedAt: now, UpdatedAt: now}
	if err := s.comments.Create(ctx, comment); err != nil {
		return models.CommentDetails{}, Internal("Failed to add comment", err)
	}

	details, err := s.comments.FindDetails(ctx, comment.ID)
	if err != nil {
		return models.CommentDetails{}, Internal("Comment was saved but could not be loaded", err)
	}
	return details, nil
}

// Update replaces the content of a comment the caller wrote.
func (s *CommentService) Update(ctx context.Context, callerID, commentID, text string) (models.CommentDetails, error) {
	if err := ValidateID("Comment", commentID); err != nil {
		return models.CommentDetails{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return models.CommentDetails{}, InvalidArgument("Comment content is required")
	}

	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return models.CommentDetails{}, lookupError(err, "Comment")
	}
	if err := RequireOwner(comment, callerID, "update this comment"); err != nil {
		return models.CommentDetails{}, err
	}

	comment.Content = text
	comment.UpdatedAt = s.now()
	if err := s.comments.Update(ctx, comment); err != nil {
		return models.CommentDetails{}, Internal("Failed to update comment", err)
	}

	details, err := s.comments.FindDetails(ctx, commentID)
	if err != nil {
		return models.CommentDetails{}, Internal("Comment was updated but could not be loaded", err)
	}
	return details, nil
}

// Delete removes a comment the caller wrote, along with its likes.
func (s *CommentService) Delete(ctx context.Context, callerID, commentID string) error {
	if err := ValidateID("Comment", commentID); err != nil {
		return err
	}
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return lookupError(err, "Comment")
	}
	if err := RequireOwner(comment, callerID, "delete this comment"); err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, commentID); err != nil {
		return Internal("Failed to delete comment", err)
	}
	return nil
}

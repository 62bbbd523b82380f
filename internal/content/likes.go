package content

import (
	"context"
	"errors"

	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/repositories"
)

// LikeService toggles likes on videos, comments and tweets.
type LikeService struct {
	toggler  Toggler
	likes    repositories.LikeRepository
	videos   repositories.VideoRepository
	comments repositories.CommentRepository
	tweets   repositories.TweetRepository
}

// NewLikeService constructs a LikeService.
func NewLikeService(likes repositories.LikeRepository, videos repositories.VideoRepository, comments repositories.CommentRepository, tweets repositories.TweetRepository) *LikeService {
	return &LikeService{
		toggler:  NewToggler(likeInteractions{likes: likes}),
		likes:    likes,
		videos:   videos,
		comments: comments,
		tweets:   tweets,
	}
}

// ToggleVideoLike likes or unlikes a video for the caller.
func (s *LikeService) ToggleVideoLike(ctx context.Context, callerID, videoID string) (models.ToggleResult, error) {
	return s.toggle(ctx, callerID, models.Target{Kind: models.TargetVideo, ID: videoID}, "Video", func(ctx context.Context) error {
		_, err := visibleVideo(ctx, s.videos, callerID, videoID)
		return err
	})
}

// ToggleCommentLike likes or unlikes a comment for the caller.
func (s *LikeService) ToggleCommentLike(ctx context.Context, callerID, commentID string) (models.ToggleResult, error) {
	return s.toggle(ctx, callerID, models.Target{Kind: models.TargetComment, ID: commentID}, "Comment", func(ctx context.Context) error {
		_, err := s.comments.FindByID(ctx, commentID)
		return err
	})
}

// ToggleTweetLike likes or unlikes a tweet for the caller.
func (s *LikeService) ToggleTweetLike(ctx context.Context, callerID, tweetID string) (models.ToggleResult, error) {
	return s.toggle(ctx, callerID, models.Target{Kind: models.TargetTweet, ID: tweetID}, "Tweet", func(ctx context.Context) error {
		_, err := s.tweets.FindByID(ctx, tweetID)
		return err
	})
}

func (s *LikeService) toggle(ctx context.Context, callerID string, target models.Target, label string, exists func(context.Context) error) (models.ToggleResult, error) {
	if err := ValidateID(label, target.ID); err != nil {
		return models.ToggleResult{}, err
	}
	if err := exists(ctx); err != nil {
		var svcErr *Error
		if errors.As(err, &svcErr) {
			return models.ToggleResult{}, err
		}
		return models.ToggleResult{}, lookupError(err, label)
	}
	return s.toggler.Toggle(ctx, target, callerID)
}

// LikedVideos lists every video the caller liked.
func (s *LikeService) LikedVideos(ctx context.Context, callerID string) (models.LikedVideos, error) {
	videos, err := s.likes.LikedVideos(ctx, callerID)
	if err != nil {
		return models.LikedVideos{}, Internal("Failed to fetch liked videos", err)
	}
	if videos == nil {
		videos = []models.LikedVideo{}
	}
	return models.LikedVideos{Videos: videos, Total: len(videos)}, nil
}

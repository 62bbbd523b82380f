package repositories

import (
	"context"

	"github.com/vidtube/backend/internal/models"
)

// CommentRepository exposes data access for video comments.
type CommentRepository interface {
	Create(ctx context.Context, comment models.Comment) error
	FindByID(ctx context.Context, id string) (models.Comment, error)
	FindDetails(ctx context.Context, id string) (models.CommentDetails, error)
	Update(ctx context.Context, comment models.Comment) error
	Delete(ctx context.Context, id string) error
	// List and Count honour q.VideoID.
	List(ctx context.Context, q models.ListQuery) ([]models.CommentDetails, error)
	Count(ctx context.Context, q models.ListQuery) (int64, error)
}

// TweetRepository exposes data access for tweets.
type TweetRepository interface {
	Create(ctx context.Context, tweet models.Tweet) error
	FindByID(ctx context.Context, id string) (models.Tweet, error)
	Update(ctx context.Context, tweet models.Tweet) error
	Delete(ctx context.Context, id string) error
	// List and Count honour q.OwnerID.
	List(ctx context.Context, q models.ListQuery) ([]models.Tweet, error)
	Count(ctx context.Context, q models.ListQuery) (int64, error)
}

package repositories

import (
	"context"
	"time"

	"github.com/vidtube/backend/internal/models"
)

// UserRepository defines the data access contract for users.
type UserRepository interface {
	Create(ctx context.Context, user models.User) error
	FindByID(ctx context.Context, id string) (models.User, error)
	// FindByLogin matches either the username or the email.
	FindByLogin(ctx context.Context, username, email string) (models.User, error)
	RecordWatch(ctx context.Context, userID, videoID string, at time.Time) error
	WatchHistory(ctx context.Context, userID string) ([]models.WatchedVideo, error)
}

// watchHistoryLimit caps how many distinct videos a user's history keeps.
const watchHistoryLimit = 100

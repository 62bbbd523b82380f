package repositories

import (
	"context"

	"github.com/vidtube/backend/internal/models"
)

// LikeRepository stores likes. At most one like exists per (actor, target).
type LikeRepository interface {
	// Remove deletes the actor's like on target and reports whether one existed.
	Remove(ctx context.Context, target models.Target, actorID string) (bool, error)
	// Add inserts a like, returning ErrConflict when one already exists.
	Add(ctx context.Context, like models.Like) error
	Count(ctx context.Context, target models.Target) (int64, error)
	LikedVideos(ctx context.Context, actorID string) ([]models.LikedVideo, error)
}

// SubscriptionRepository stores channel subscriptions. At most one exists per (channel, subscriber).
type SubscriptionRepository interface {
	Remove(ctx context.Context, channelID, subscriberID string) (bool, error)
	// Add inserts a subscription, returning ErrConflict when one already exists.
	Add(ctx context.Context, sub models.Subscription) error
	CountSubscribers(ctx context.Context, channelID string) (int64, error)
	Subscribers(ctx context.Context, channelID string) ([]models.ChannelMember, error)
	SubscribedChannels(ctx context.Context, subscriberID string) ([]models.ChannelMember, error)
}

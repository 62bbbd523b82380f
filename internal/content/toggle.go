package content

import (
	"context"
	"errors"
	"time"

	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/repositories"
)

// InteractionStore is the storage contract behind every toggle: at most one record per (target, actor).
type InteractionStore interface {
	Remove(ctx context.Context, target models.Target, actorID string) (bool, error)
	// Add returns repositories.ErrConflict when the record already exists.
	Add(ctx context.Context, target models.Target, actorID string, at time.Time) error
	Count(ctx context.Context, target models.Target) (int64, error)
}

// Toggler flips the presence of an interaction record and reports the fresh count.
type Toggler struct {
	store InteractionStore
	now   func() time.Time
}

// NewToggler constructs a Toggler over store.
func NewToggler(store InteractionStore) Toggler {
	return Toggler{store: store, now: func() time.Time { return time.Now().UTC() }}
}

// Toggle deletes the actor's record on target if it exists, otherwise creates it.
// An insert that loses a race to a concurrent insert still reports created.
func (t Toggler) Toggle(ctx context.Context, target models.Target, actorID string) (models.ToggleResult, error) {
	removed, err := t.store.Remove(ctx, target, actorID)
	if err != nil {
		return models.ToggleResult{}, Internal("Failed to toggle "+string(target.Kind), err)
	}

	state := models.ToggleDeleted
	if !removed {
		state = models.ToggleCreated
		if err := t.store.Add(ctx, target, actorID, t.now()); err != nil && !errors.Is(err, repositories.ErrConflict) {
			return models.ToggleResult{}, Internal("Failed to toggle "+string(target.Kind), err)
		}
	}

	count, err := t.store.Count(ctx, target)
	if err != nil {
		return models.ToggleResult{}, Internal("Failed to count "+string(target.Kind)+" interactions", err)
	}
	return models.ToggleResult{State: state, Count: count}, nil
}

type likeInteractions struct {
	likes repositories.LikeRepository
}

func (l likeInteractions) Remove(ctx context.Context, target models.Target, actorID string) (bool, error) {
	return l.likes.Remove(ctx, target, actorID)
}

func (l likeInteractions) Add(ctx context.Context, target models.Target, actorID string, at time.Time) error {
	like := models.Like{ID: models.NewID(), LikedBy: actorID, CreatedAt: at}
	switch target.Kind {
	case models.TargetVideo:
		like.VideoID = target.ID
	case models.TargetComment:
		like.CommentID = target.ID
	case models.TargetTweet:
		like.TweetID = target.ID
	default:
		return errors.New("unsupported like target " + string(target.Kind))
	}
	return l.likes.Add(ctx, like)
}

func (l likeInteractions) Count(ctx context.Context, target models.Target) (int64, error) {
	return l.likes.Count(ctx, target)
}

type subscriptionInteractions struct {
	subscriptions repositories.SubscriptionRepository
}

func (s subscriptionInteractions) Remove(ctx context.Context, target models.Target, actorID string) (bool, error) {
	return s.subscriptions.Remove(ctx, target.ID, actorID)
}

func (s subscriptionInteractions) Add(ctx context.Context, target models.Target, actorID string, at time.Time) error {
	return s.subscriptions.Add(ctx, models.Subscription{
		ID:           models.NewID(),
		ChannelID:    target.ID,
		SubscriberID: actorID,
		CreatedAt:    at,
	})
}

func (s subscriptionInteractions) Count(ctx context.Context, target models.Target) (int64, error) {
	return s.subscriptions.CountSubscribers(ctx, target.ID)
}

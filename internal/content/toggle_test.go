package content

import (
	"context"
	"testing"
	"time"

	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/repositories"
)

func TestToggleVideoLikeRoundTrip(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	fan := f.user(t, "fan")
	video := f.video(t, owner.ID, "clip", true, time.Now().UTC())
	ctx := context.Background()

	first, err := f.services.Likes.ToggleVideoLike(ctx, fan.ID, video.ID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if first.State != models.ToggleCreated || first.Count != 1 {
		t.Fatalf("unexpected first toggle %+v", first)
	}

	second, err := f.services.Likes.ToggleVideoLike(ctx, fan.ID, video.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if second.State != models.ToggleDeleted || second.Count != 0 {
		t.Fatalf("unexpected second toggle %+v", second)
	}
}

func TestToggleLikeKinds(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	fan := f.user(t, "fan")
	ctx := context.Background()
	video := f.video(t, owner.ID, "clip", true, time.Now().UTC())
	comment, err := f.services.Comments.Add(ctx, owner.ID, video.ID, "first")
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	tweet, err := f.services.Tweets.Create(ctx, owner.ID, "hello")
	if err != nil {
		t.Fatalf("create tweet: %v", err)
	}

	if res, err := f.services.Likes.ToggleCommentLike(ctx, fan.ID, comment.ID); err != nil || res.Count != 1 {
		t.Fatalf("comment like = %+v, %v", res, err)
	}
	if res, err := f.services.Likes.ToggleTweetLike(ctx, fan.ID, tweet.ID); err != nil || res.Count != 1 {
		t.Fatalf("tweet like = %+v, %v", res, err)
	}
	if n, _ := f.store.Likes.Count(ctx, models.Target{Kind: models.TargetVideo, ID: video.ID}); n != 0 {
		t.Fatalf("likes leaked onto the video: %d", n)
	}
}

func TestToggleRejectsMalformedTargetWithoutMutation(t *testing.T) {
	f := newFixture(t)
	fan := f.user(t, "fan")
	ctx := context.Background()

	checks := []struct {
		name   string
		toggle func() error
	}{
		{"video", func() error { _, err := f.services.Likes.ToggleVideoLike(ctx, fan.ID, "not-an-id"); return err }},
		{"comment", func() error { _, err := f.services.Likes.ToggleCommentLike(ctx, fan.ID, "123"); return err }},
		{"tweet", func() error { _, err := f.services.Likes.ToggleTweetLike(ctx, fan.ID, ""); return err }},
		{"channel", func() error { _, err := f.services.Subscriptions.Toggle(ctx, fan.ID, "zzz"); return err }},
	}
	for _, c := range checks {
		t.Run(c.name, func(t *testing.T) {
			requireKind(t, c.toggle(), KindInvalidArgument)
		})
	}

	liked, err := f.store.Likes.LikedVideos(ctx, fan.ID)
	if err != nil || len(liked) != 0 {
		t.Fatalf("expected no likes, got %v, %v", liked, err)
	}
	channels, err := f.store.Subscriptions.SubscribedChannels(ctx, fan.ID)
	if err != nil || len(channels) != 0 {
		t.Fatalf("expected no subscriptions, got %v, %v", channels, err)
	}
}

func TestToggleMissingTarget(t *testing.T) {
	f := newFixture(t)
	fan := f.user(t, "fan")

	_, err := f.services.Likes.ToggleVideoLike(context.Background(), fan.ID, models.NewID())
	requireKind(t, err, KindNotFound)

	_, err = f.services.Subscriptions.Toggle(context.Background(), fan.ID, models.NewID())
	requireKind(t, err, KindNotFound)
}

type racingStore struct {
	count int64
}

func (r *racingStore) Remove(context.Context, models.Target, string) (bool, error) { return false, nil }

func (r *racingStore) Add(context.Context, models.Target, string, time.Time) error {
	r.count = 1
	return repositories.ErrConflict
}

func (r *racingStore) Count(context.Context, models.Target) (int64, error) { return r.count, nil }

func TestToggleTreatsConcurrentInsertAsCreated(t *testing.T) {
	toggler := NewToggler(&racingStore{})

	res, err := toggler.Toggle(context.Background(), models.Target{Kind: models.TargetVideo, ID: models.NewID()}, models.NewID())
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if res.State != models.ToggleCreated || res.Count != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestSubscriptionToggle(t *testing.T) {
	f := newFixture(t)
	channel := f.user(t, "channel")
	fan := f.user(t, "fan")
	ctx := context.Background()

	res, err := f.services.Subscriptions.Toggle(ctx, fan.ID, channel.ID)
	if err != nil || res.State != models.ToggleCreated || res.Count != 1 {
		t.Fatalf("subscribe = %+v, %v", res, err)
	}

	subscribers, err := f.services.Subscriptions.Subscribers(ctx, channel.ID)
	if err != nil || subscribers.Total != 1 || subscribers.Members[0].ID != fan.ID {
		t.Fatalf("subscribers = %+v, %v", subscribers, err)
	}

	channels, err := f.services.Subscriptions.SubscribedChannels(ctx, fan.ID, fan.ID)
	if err != nil || channels.Total != 1 || channels.Members[0].ID != channel.ID {
		t.Fatalf("subscribed channels = %+v, %v", channels, err)
	}

	_, err = f.services.Subscriptions.SubscribedChannels(ctx, channel.ID, fan.ID)
	requireKind(t, err, KindPermissionDenied)

	res, err = f.services.Subscriptions.Toggle(ctx, fan.ID, channel.ID)
	if err != nil || res.State != models.ToggleDeleted || res.Count != 0 {
		t.Fatalf("unsubscribe = %+v, %v", res, err)
	}
}

func TestSelfSubscribeRejected(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "solo")
	ctx := context.Background()

	_, err := f.services.Subscriptions.Toggle(ctx, user.ID, user.ID)
	requireKind(t, err, KindInvalidArgument)

	// A stale self subscription record must not change the outcome.
	if err := f.store.Subscriptions.Add(ctx, models.Subscription{ID: models.NewID(), ChannelID: user.ID, SubscriberID: user.ID}); err != nil {
		t.Fatalf("seed self subscription: %v", err)
	}
	_, err = f.services.Subscriptions.Toggle(ctx, user.ID, user.ID)
	requireKind(t, err, KindInvalidArgument)

	if n, _ := f.store.Subscriptions.CountSubscribers(ctx, user.ID); n != 1 {
		t.Fatalf("expected no mutation, got %d subscriptions", n)
	}
}

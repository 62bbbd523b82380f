package content

import (
	"context"
	"strings"
	"time"

	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/repositories"
)

// TweetService manages short text posts on a channel.
type TweetService struct {
	tweets repositories.TweetRepository
	users  repositories.UserRepository
	now    func() time.Time
}

// NewTweetService constructs a TweetService.
func NewTweetService(tweets repositories.TweetRepository, users repositories.UserRepository) *TweetService {
	return &TweetService{tweets: tweets, users: users, now: utcNow}
}

// Create posts a tweet on the caller's channel.
func (s *TweetService) Create(ctx context.Context, callerID, text string) (models.TweetDetails, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.TweetDetails{}, InvalidArgument("Tweet content is required")
	}

	now := s.now()
	tweet := models.Tweet{ID: models.NewID(), Content: text, Owner: callerID, CreatedAt: now, UpdatedAt: now}
	if err := s.tweets.Create(ctx, tweet); err != nil {
		return models.TweetDetails{}, Internal("Failed to create tweet", err)
	}

	stored, err := s.tweets.FindByID(ctx, tweet.ID)
	if err != nil {
		return models.TweetDetails{}, Internal("Tweet was saved but could not be loaded", err)
	}
	owner, err := ownerSummary(ctx, s.users, stored.Owner)
	if err != nil {
		return models.TweetDetails{}, Internal("Failed to load tweet owner", err)
	}
	return models.TweetDetails{Tweet: stored, OwnerDetails: owner}, nil
}

// ListByUser returns one page of a user's tweets.
func (s *TweetService) ListByUser(ctx context.Context, userID string, params ListParams) (models.Page[models.Tweet], error) {
	if err := ValidateID("User", userID); err != nil {
		return models.Page[models.Tweet]{}, err
	}
	q, err := newTimelineQuery(params)
	if err != nil {
		return models.Page[models.Tweet]{}, err
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return models.Page[models.Tweet]{}, lookupError(err, "User")
	}
	q.OwnerID = userID
	return Paginate(ctx, q, s.tweets.Count, s.tweets.List)
}

// Update replaces the content of a tweet the caller posted.
func (s *TweetService) Update(ctx context.Context, callerID, tweetID, text string) (models.Tweet, error) {
	if err := ValidateID("Tweet", tweetID); err != nil {
		return models.Tweet{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Tweet{}, InvalidArgument("Tweet content is required")
	}

	tweet, err := s.tweets.FindByID(ctx, tweetID)
	if err != nil {
		return models.Tweet{}, lookupError(err, "Tweet")
	}
	if err := RequireOwner(tweet, callerID, "update this tweet"); err != nil {
		return models.Tweet{}, err
	}

	tweet.Content = text
	tweet.UpdatedAt = s.now()
	if err := s.tweets.Update(ctx, tweet); err != nil {
		return models.Tweet{}, Internal("Failed to update tweet", err)
	}
	return tweet, nil
}

// Delete removes a tweet the caller posted, along with its likes.
func (s *TweetService) Delete(ctx context.Context, callerID, tweetID string) error {
	if err := ValidateID("Tweet", tweetID); err != nil {
		return err
	}
	tweet, err := s.tweets.FindByID(ctx, tweetID)
	if err != nil {
		return lookupError(err, "Tweet")
	}
	if err := RequireOwner(tweet, callerID, "delete this tweet"); err != nil {
		return err
	}
	if err := s.tweets.Delete(ctx, tweetID); err != nil {
		return Internal("Failed to delete tweet", err)
	}
	return nil
}

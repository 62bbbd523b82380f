package content

import (
	"context"

	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/repositories"
)

// subject lets a bare user id pass through RequireOwner.
type subject string

func (s subject) OwnerID() string { return string(s) }

// SubscriptionService toggles and lists channel subscriptions.
type SubscriptionService struct {
	toggler       Toggler
	subscriptions repositories.SubscriptionRepository
	users         repositories.UserRepository
}

// NewSubscriptionService constructs a SubscriptionService.
func NewSubscriptionService(subscriptions repositories.SubscriptionRepository, users repositories.UserRepository) *SubscriptionService {
	return &SubscriptionService{
		toggler:       NewToggler(subscriptionInteractions{subscriptions: subscriptions}),
		subscriptions: subscriptions,
		users:         users,
	}
}

// Toggle subscribes the caller to a channel, or unsubscribes when already subscribed.
func (s *SubscriptionService) Toggle(ctx context.Context, callerID, channelID string) (models.ToggleResult, error) {
	if err := ValidateID("Channel", channelID); err != nil {
		return models.ToggleResult{}, err
	}
	if channelID == callerID {
		return models.ToggleResult{}, InvalidArgument("You cannot subscribe to your own channel")
	}
	if _, err := s.users.FindByID(ctx, channelID); err != nil {
		return models.ToggleResult{}, lookupError(err, "Channel")
	}
	return s.toggler.Toggle(ctx, models.Target{Kind: models.TargetChannel, ID: channelID}, callerID)
}

// Subscribers lists the users subscribed to a channel.
func (s *SubscriptionService) Subscribers(ctx context.Context, channelID string) (models.ChannelMembers, error) {
	if err := ValidateID("Channel", channelID); err != nil {
		return models.ChannelMembers{}, err
	}
	if _, err := s.users.FindByID(ctx, channelID); err != nil {
		return models.ChannelMembers{}, lookupError(err, "Channel")
	}
	members, err := s.subscriptions.Subscribers(ctx, channelID)
	if err != nil {
		return models.ChannelMembers{}, Internal("Failed to fetch subscribers", err)
	}
	return channelMembers(members), nil
}

// SubscribedChannels lists the channels a user subscribes to. Only the user may see the list.
func (s *SubscriptionService) SubscribedChannels(ctx context.Context, callerID, subscriberID string) (models.ChannelMembers, error) {
	if err := ValidateID("Subscriber", subscriberID); err != nil {
		return models.ChannelMembers{}, err
	}
	if err := RequireOwner(subject(subscriberID), callerID, "view these subscriptions"); err != nil {
		return models.ChannelMembers{}, err
	}
	members, err := s.subscriptions.SubscribedChannels(ctx, subscriberID)
	if err != nil {
		return models.ChannelMembers{}, Internal("Failed to fetch subscribed channels", err)
	}
	return channelMembers(members), nil
}

func channelMembers(members []models.ChannelMember) models.ChannelMembers {
	if members == nil {
		members = []models.ChannelMember{}
	}
	return models.ChannelMembers{Members: members, Total: int64(len(members))}
}

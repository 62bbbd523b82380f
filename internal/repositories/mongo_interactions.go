package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vidtube/backend/internal/models"
)

var likeTargetFields = map[models.TargetKind]string{
	models.TargetVideo:   "video",
	models.TargetComment: "comment",
	models.TargetTweet:   "tweet",
}

// likeFilter matches the actor's like on target. An empty actor matches every like on target.
func likeFilter(target models.Target, actorID string) (bson.D, error) {
	field, ok := likeTargetFields[target.Kind]
	if !ok {
		return nil, fmt.Errorf("unsupported like target %q", target.Kind)
	}
	oid, err := objectID(target.ID)
	if err != nil {
		return nil, err
	}
	filter := bson.D{{Key: field, Value: oid}}
	if actorID != "" {
		actor, err := objectID(actorID)
		if err != nil {
			return nil, err
		}
		filter = append(bson.D{{Key: "likedBy", Value: actor}}, filter...)
	}
	return filter, nil
}

type likeDocument struct {
	ID        primitive.ObjectID  `bson:"_id"`
	LikedBy   primitive.ObjectID  `bson:"likedBy"`
	Video     *primitive.ObjectID `bson:"video,omitempty"`
	Comment   *primitive.ObjectID `bson:"comment,omitempty"`
	Tweet     *primitive.ObjectID `bson:"tweet,omitempty"`
	CreatedAt time.Time           `bson:"createdAt"`
}

type likedVideoDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description"`
	VideoFile    string             `bson:"videoFile"`
	Thumbnail    string             `bson:"thumbnail"`
	Duration     int64              `bson:"duration"`
	CreatedAt    time.Time          `bson:"createdAt"`
	LikedAt      time.Time          `bson:"likedAt"`
	OwnerDetails ownerDocument      `bson:"ownerDetails"`
}

// MongoLikeRepository provides MongoDB-backed persistence for likes.
type MongoLikeRepository struct {
	db *mongo.Database
}

func (r *MongoLikeRepository) coll() *mongo.Collection { return r.db.Collection(likesCollection) }

// Remove deletes the actor's like on the target.
func (r *MongoLikeRepository) Remove(ctx context.Context, target models.Target, actorID string) (bool, error) {
	filter, err := likeFilter(target, actorID)
	if err != nil {
		return false, nil
	}
	res, err := r.coll().DeleteOne(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("delete like: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// Add inserts a like. The partial unique indexes turn a concurrent duplicate into ErrConflict.
func (r *MongoLikeRepository) Add(ctx context.Context, like models.Like) error {
	id, err := objectID(like.ID)
	if err != nil {
		return fmt.Errorf("insert like: invalid id %q", like.ID)
	}
	actor, err := objectID(like.LikedBy)
	if err != nil {
		return err
	}
	doc := likeDocument{ID: id, LikedBy: actor, CreatedAt: like.CreatedAt}
	if doc.Video, err = optionalObjectID(like.VideoID); err != nil {
		return err
	}
	if doc.Comment, err = optionalObjectID(like.CommentID); err != nil {
		return err
	}
	if doc.Tweet, err = optionalObjectID(like.TweetID); err != nil {
		return err
	}
	if _, err := r.coll().InsertOne(ctx, doc); err != nil {
		return translateMongoWriteError(err, "insert like")
	}
	return nil
}

// Count returns how many likes the target has.
func (r *MongoLikeRepository) Count(ctx context.Context, target models.Target) (int64, error) {
	filter, err := likeFilter(target, "")
	if err != nil {
		return 0, nil
	}
	total, err := r.coll().CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return total, nil
}

// LikedVideos returns every video the actor liked, most recent like first.
func (r *MongoLikeRepository) LikedVideos(ctx context.Context, actorID string) ([]models.LikedVideo, error) {
	actor, err := objectID(actorID)
	if err != nil {
		return []models.LikedVideo{}, nil
	}
	var docs []likedVideoDocument
	if err := aggregateAll(ctx, r.coll(), likedVideosPipeline(actor), &docs, "aggregate liked videos"); err != nil {
		return nil, err
	}
	videos := make([]models.LikedVideo, 0, len(docs))
	for _, d := range docs {
		videos = append(videos, models.LikedVideo{
			ID:           d.ID.Hex(),
			Title:        d.Title,
			Description:  d.Description,
			VideoFile:    d.VideoFile,
			Thumbnail:    d.Thumbnail,
			Duration:     d.Duration,
			CreatedAt:    d.CreatedAt,
			LikedAt:      d.LikedAt,
			OwnerDetails: d.OwnerDetails.model(),
		})
	}
	return videos, nil
}

type subscriptionDocument struct {
	ID         primitive.ObjectID `bson:"_id"`
	Channel    primitive.ObjectID `bson:"channel"`
	Subscriber primitive.ObjectID `bson:"subscriber"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

type memberDocument struct {
	ownerDocument `bson:",inline"`
	SubscribedAt  time.Time `bson:"subscribedAt"`
}

// MongoSubscriptionRepository provides MongoDB-backed persistence for subscriptions.
type MongoSubscriptionRepository struct {
	db *mongo.Database
}

func (r *MongoSubscriptionRepository) coll() *mongo.Collection {
	return r.db.Collection(subscriptionsCollection)
}

func subscriptionPair(channelID, subscriberID string) (bson.D, error) {
	channel, err := objectID(channelID)
	if err != nil {
		return nil, err
	}
	subscriber, err := objectID(subscriberID)
	if err != nil {
		return nil, err
	}
	return bson.D{{Key: "channel", Value: channel}, {Key: "subscriber", Value: subscriber}}, nil
}

// Remove deletes the subscription if present.
func (r *MongoSubscriptionRepository) Remove(ctx context.Context, channelID, subscriberID string) (bool, error) {
	filter, err := subscriptionPair(channelID, subscriberID)
	if err != nil {
		return false, nil
	}
	res, err := r.coll().DeleteOne(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("delete subscription: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// Add inserts a subscription. The unique (channel, subscriber) index turns a concurrent duplicate into ErrConflict.
func (r *MongoSubscriptionRepository) Add(ctx context.Context, sub models.Subscription) error {
	id, err := objectID(sub.ID)
	if err != nil {
		return fmt.Errorf("insert subscription: invalid id %q", sub.ID)
	}
	channel, err := objectID(sub.ChannelID)
	if err != nil {
		return err
	}
	subscriber, err := objectID(sub.SubscriberID)
	if err != nil {
		return err
	}
	doc := subscriptionDocument{ID: id, Channel: channel, Subscriber: subscriber, CreatedAt: sub.CreatedAt}
	if _, err := r.coll().InsertOne(ctx, doc); err != nil {
		return translateMongoWriteError(err, "insert subscription")
	}
	return nil
}

// CountSubscribers returns how many users subscribe to the channel.
func (r *MongoSubscriptionRepository) CountSubscribers(ctx context.Context, channelID string) (int64, error) {
	channel, err := objectID(channelID)
	if err != nil {
		return 0, nil
	}
	total, err := r.coll().CountDocuments(ctx, bson.D{{Key: "channel", Value: channel}})
	if err != nil {
		return 0, fmt.Errorf("count subscribers: %w", err)
	}
	return total, nil
}

// Subscribers lists the users subscribed to a channel.
func (r *MongoSubscriptionRepository) Subscribers(ctx context.Context, channelID string) ([]models.ChannelMember, error) {
	return r.members(ctx, "channel", "subscriber", channelID)
}

// SubscribedChannels lists the channels a user subscribes to.
func (r *MongoSubscriptionRepository) SubscribedChannels(ctx context.Context, subscriberID string) ([]models.ChannelMember, error) {
	return r.members(ctx, "subscriber", "channel", subscriberID)
}

func (r *MongoSubscriptionRepository) members(ctx context.Context, matchField, memberField, id string) ([]models.ChannelMember, error) {
	oid, err := objectID(id)
	if err != nil {
		return []models.ChannelMember{}, nil
	}
	var docs []memberDocument
	if err := aggregateAll(ctx, r.coll(), membersPipeline(matchField, memberField, oid), &docs, "aggregate subscriptions"); err != nil {
		return nil, err
	}
	members := make([]models.ChannelMember, 0, len(docs))
	for _, d := range docs {
		members = append(members, models.ChannelMember{OwnerSummary: d.ownerDocument.model(), SubscribedAt: d.SubscribedAt})
	}
	return members, nil
}

var _ LikeRepository = (*MongoLikeRepository)(nil)
var _ SubscriptionRepository = (*MongoSubscriptionRepository)(nil)

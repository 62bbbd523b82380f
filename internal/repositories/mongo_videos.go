package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vidtube/backend/internal/models"
)

type videoDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Owner       primitive.ObjectID `bson:"owner"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	VideoFile   string             `bson:"videoFile"`
	Thumbnail   string             `bson:"thumbnail"`
	Duration    int64              `bson:"duration"`
	Views       int64              `bson:"views"`
	IsPublished bool               `bson:"isPublished"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d videoDocument) model() models.Video {
	return models.Video{
		ID:          d.ID.Hex(),
		Owner:       d.Owner.Hex(),
		Title:       d.Title,
		Description: d.Description,
		VideoFile:   d.VideoFile,
		Thumbnail:   d.Thumbnail,
		Duration:    d.Duration,
		Views:       d.Views,
		IsPublished: d.IsPublished,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type videoDetailsDocument struct {
	videoDocument `bson:",inline"`
	OwnerDetails  ownerDocument `bson:"ownerDetails"`
}

func (d videoDetailsDocument) model() models.VideoDetails {
	return models.VideoDetails{Video: d.videoDocument.model(), OwnerDetails: d.OwnerDetails.model()}
}

// MongoVideoRepository provides MongoDB-backed persistence for videos.
type MongoVideoRepository struct {
	db *mongo.Database
}

func (r *MongoVideoRepository) coll() *mongo.Collection { return r.db.Collection(videosCollection) }

// Create stores a new video document.
func (r *MongoVideoRepository) Create(ctx context.Context, video models.Video) error {
	id, err := objectID(video.ID)
	if err != nil {
		return fmt.Errorf("insert video: invalid id %q", video.ID)
	}
	owner, err := objectID(video.Owner)
	if err != nil {
		return err
	}
	doc := videoDocument{
		ID:          id,
		Owner:       owner,
		Title:       video.Title,
		Description: video.Description,
		VideoFile:   video.VideoFile,
		Thumbnail:   video.Thumbnail,
		Duration:    video.Duration,
		Views:       video.Views,
		IsPublished: video.IsPublished,
		CreatedAt:   video.CreatedAt,
		UpdatedAt:   video.UpdatedAt,
	}
	if _, err := r.coll().InsertOne(ctx, doc); err != nil {
		return translateMongoWriteError(err, "insert video")
	}
	return nil
}

// FindByID fetches a video document.
func (r *MongoVideoRepository) FindByID(ctx context.Context, id string) (models.Video, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.Video{}, err
	}
	var doc videoDocument
	if err := r.coll().FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return models.Video{}, translateMongoReadError(err, "find video")
	}
	return doc.model(), nil
}

// FindDetails fetches a video joined with its owner.
func (r *MongoVideoRepository) FindDetails(ctx context.Context, id string) (models.VideoDetails, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.VideoDetails{}, err
	}
	var docs []videoDetailsDocument
	if err := aggregateAll(ctx, r.coll(), videoDetailsPipeline(oid), &docs, "aggregate video"); err != nil {
		return models.VideoDetails{}, err
	}
	if len(docs) == 0 {
		return models.VideoDetails{}, ErrNotFound
	}
	return docs[0].model(), nil
}

// Update replaces the mutable fields of a video.
func (r *MongoVideoRepository) Update(ctx context.Context, video models.Video) error {
	oid, err := objectID(video.ID)
	if err != nil {
		return err
	}
	res, err := r.coll().UpdateByID(ctx, oid, bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: video.Title},
		{Key: "description", Value: video.Description},
		{Key: "thumbnail", Value: video.Thumbnail},
		{Key: "isPublished", Value: video.IsPublished},
		{Key: "updatedAt", Value: video.UpdatedAt},
	}}})
	if err != nil {
		return fmt.Errorf("update video: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a video then cleans up likes, comments, comment likes, playlist entries and history.
func (r *MongoVideoRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll().DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	comments := r.db.Collection(commentsCollection)
	commentIDs, err := comments.Distinct(ctx, "_id", bson.D{{Key: "video", Value: oid}})
	if err != nil {
		return fmt.Errorf("list video comments: %w", err)
	}

	likes := r.db.Collection(likesCollection)
	if _, err := likes.DeleteMany(ctx, bson.D{{Key: "video", Value: oid}}); err != nil {
		return fmt.Errorf("delete video likes: %w", err)
	}
	if len(commentIDs) > 0 {
		if _, err := likes.DeleteMany(ctx, bson.D{{Key: "comment", Value: bson.D{{Key: "$in", Value: commentIDs}}}}); err != nil {
			return fmt.Errorf("delete comment likes: %w", err)
		}
	}
	if _, err := comments.DeleteMany(ctx, bson.D{{Key: "video", Value: oid}}); err != nil {
		return fmt.Errorf("delete video comments: %w", err)
	}
	if _, err := r.db.Collection(playlistsCollection).UpdateMany(ctx,
		bson.D{{Key: "videos", Value: oid}},
		bson.D{{Key: "$pull", Value: bson.D{{Key: "videos", Value: oid}}}}); err != nil {
		return fmt.Errorf("pull video from playlists: %w", err)
	}
	if _, err := r.db.Collection(usersCollection).UpdateMany(ctx,
		bson.D{{Key: "watchHistory.video", Value: oid}},
		bson.D{{Key: "$pull", Value: bson.D{{Key: "watchHistory", Value: bson.D{{Key: "video", Value: oid}}}}}}); err != nil {
		return fmt.Errorf("pull video from watch history: %w", err)
	}
	return nil
}

// IncrementViews bumps the view counter by one.
func (r *MongoVideoRepository) IncrementViews(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll().UpdateByID(ctx, oid, bson.D{{Key: "$inc", Value: bson.D{{Key: "views", Value: 1}}}})
	if err != nil {
		return fmt.Errorf("increment video views: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func listOwner(q models.ListQuery) (primitive.ObjectID, error) {
	if q.OwnerID == "" {
		return primitive.NilObjectID, nil
	}
	return objectID(q.OwnerID)
}

// List returns one page of videos joined with their owners.
func (r *MongoVideoRepository) List(ctx context.Context, q models.ListQuery) ([]models.VideoDetails, error) {
	owner, err := listOwner(q)
	if err != nil {
		return []models.VideoDetails{}, nil
	}
	var docs []videoDetailsDocument
	if err := aggregateAll(ctx, r.coll(), videoListPipeline(q, owner), &docs, "aggregate videos"); err != nil {
		return nil, err
	}
	videos := make([]models.VideoDetails, 0, len(docs))
	for _, d := range docs {
		videos = append(videos, d.model())
	}
	return videos, nil
}

// Count returns how many videos match the listing filter.
func (r *MongoVideoRepository) Count(ctx context.Context, q models.ListQuery) (int64, error) {
	owner, err := listOwner(q)
	if err != nil {
		return 0, nil
	}
	total, err := r.coll().CountDocuments(ctx, videoMatch(q, owner))
	if err != nil {
		return 0, fmt.Errorf("count videos: %w", err)
	}
	return total, nil
}

// ListByOwner returns the reduced dashboard shape of every video on a channel.
func (r *MongoVideoRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.ChannelVideo, error) {
	owner, err := objectID(ownerID)
	if err != nil {
		return []models.ChannelVideo{}, nil
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetProjection(bson.D{{Key: "videoFile", Value: 0}, {Key: "owner", Value: 0}})
	cursor, err := r.coll().Find(ctx, bson.D{{Key: "owner", Value: owner}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find channel videos: %w", err)
	}
	var docs []videoDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode channel videos: %w", err)
	}
	videos := make([]models.ChannelVideo, 0, len(docs))
	for _, d := range docs {
		videos = append(videos, models.ChannelVideo{
			ID:          d.ID.Hex(),
			Title:       d.Title,
			Description: d.Description,
			Thumbnail:   d.Thumbnail,
			Duration:    d.Duration,
			Views:       d.Views,
			IsPublished: d.IsPublished,
			CreatedAt:   d.CreatedAt,
		})
	}
	return videos, nil
}

// MongoDashboardRepository computes channel aggregates in MongoDB.
type MongoDashboardRepository struct {
	db *mongo.Database
}

// ChannelStats returns subscriber, video, like and view totals for a channel.
func (r *MongoDashboardRepository) ChannelStats(ctx context.Context, ownerID string) (models.ChannelStats, error) {
	owner, err := objectID(ownerID)
	if err != nil {
		return models.ChannelStats{}, nil
	}

	var stats models.ChannelStats
	stats.TotalSubscribers, err = r.db.Collection(subscriptionsCollection).CountDocuments(ctx, bson.D{{Key: "channel", Value: owner}})
	if err != nil {
		return models.ChannelStats{}, fmt.Errorf("count subscribers: %w", err)
	}

	videos := r.db.Collection(videosCollection)
	var totals []struct {
		TotalVideos int64 `bson:"totalVideos"`
		TotalViews  int64 `bson:"totalViews"`
	}
	if err := aggregateAll(ctx, videos, channelVideoTotalsPipeline(owner), &totals, "aggregate channel videos"); err != nil {
		return models.ChannelStats{}, err
	}
	if len(totals) > 0 {
		stats.TotalVideos = totals[0].TotalVideos
		stats.TotalViews = totals[0].TotalViews
	}

	var likes []struct {
		TotalVideoLikes int64 `bson:"totalVideoLikes"`
	}
	if err := aggregateAll(ctx, videos, channelLikeTotalsPipeline(owner), &likes, "aggregate channel likes"); err != nil {
		return models.ChannelStats{}, err
	}
	if len(likes) > 0 {
		stats.TotalVideoLikes = likes[0].TotalVideoLikes
	}

	return stats, nil
}

var _ VideoRepository = (*MongoVideoRepository)(nil)
var _ DashboardRepository = (*MongoDashboardRepository)(nil)

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

type playlistDocument struct {
	ID          primitive.ObjectID   `bson:"_id"`
	Name        string               `bson:"name"`
	Description string               `bson:"description"`
	Owner       primitive.ObjectID   `bson:"owner"`
	Videos      []primitive.ObjectID `bson:"videos"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}

func (d playlistDocument) model() models.Playlist {
	videos := make([]string, 0, len(d.Videos))
	for _, v := range d.Videos {
		videos = append(videos, v.Hex())
	}
	return models.Playlist{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Owner:       d.Owner.Hex(),
		Videos:      videos,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type playlistDetailsDocument struct {
	playlistDocument `bson:",inline"`
	TotalVideos      int           `bson:"totalVideos"`
	OwnerDetails     ownerDocument `bson:"ownerDetails"`
}

// MongoPlaylistRepository provides MongoDB-backed persistence for playlists.
// Video membership lives in an ordered array on the playlist document.
type MongoPlaylistRepository struct {
	db *mongo.Database
}

func (r *MongoPlaylistRepository) coll() *mongo.Collection {
	return r.db.Collection(playlistsCollection)
}

// Create stores a new playlist document.
func (r *MongoPlaylistRepository) Create(ctx context.Context, playlist models.Playlist) error {
	id, err := objectID(playlist.ID)
	if err != nil {
		return fmt.Errorf("insert playlist: invalid id %q", playlist.ID)
	}
	owner, err := objectID(playlist.Owner)
	if err != nil {
		return err
	}
	videos := make([]primitive.ObjectID, 0, len(playlist.Videos))
	for _, v := range playlist.Videos {
		oid, err := objectID(v)
		if err != nil {
			return err
		}
		videos = append(videos, oid)
	}
	doc := playlistDocument{
		ID:          id,
		Name:        playlist.Name,
		Description: playlist.Description,
		Owner:       owner,
		Videos:      videos,
		CreatedAt:   playlist.CreatedAt,
		UpdatedAt:   playlist.UpdatedAt,
	}
	if _, err := r.coll().InsertOne(ctx, doc); err != nil {
		return translateMongoWriteError(err, "insert playlist")
	}
	return nil
}

// FindByID fetches a playlist document.
func (r *MongoPlaylistRepository) FindByID(ctx context.Context, id string) (models.Playlist, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.Playlist{}, err
	}
	var doc playlistDocument
	if err := r.coll().FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return models.Playlist{}, translateMongoReadError(err, "find playlist")
	}
	return doc.model(), nil
}

// Update replaces the playlist name and description.
func (r *MongoPlaylistRepository) Update(ctx context.Context, playlist models.Playlist) error {
	oid, err := objectID(playlist.ID)
	if err != nil {
		return err
	}
	res, err := r.coll().UpdateByID(ctx, oid, bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: playlist.Name},
		{Key: "description", Value: playlist.Description},
		{Key: "updatedAt", Value: playlist.UpdatedAt},
	}}})
	if err != nil {
		return fmt.Errorf("update playlist: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a playlist.
func (r *MongoPlaylistRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll().DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoPlaylistRepository) exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := r.coll().CountDocuments(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return false, fmt.Errorf("count playlist: %w", err)
	}
	return n > 0, nil
}

// AddVideo appends the video unless it is already present.
func (r *MongoPlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID string) error {
	pid, err := objectID(playlistID)
	if err != nil {
		return err
	}
	vid, err := objectID(videoID)
	if err != nil {
		return err
	}
	res, err := r.coll().UpdateOne(ctx,
		bson.D{{Key: "_id", Value: pid}, {Key: "videos", Value: bson.D{{Key: "$ne", Value: vid}}}},
		bson.D{
			{Key: "$push", Value: bson.D{{Key: "videos", Value: vid}}},
			{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}},
		})
	if err != nil {
		return fmt.Errorf("add playlist video: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}
	found, err := r.exists(ctx, pid)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return ErrConflict
}

// RemoveVideo pulls the video out of the playlist.
func (r *MongoPlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID string) error {
	pid, err := objectID(playlistID)
	if err != nil {
		return err
	}
	vid, err := objectID(videoID)
	if err != nil {
		return err
	}
	res, err := r.coll().UpdateOne(ctx,
		bson.D{{Key: "_id", Value: pid}, {Key: "videos", Value: vid}},
		bson.D{
			{Key: "$pull", Value: bson.D{{Key: "videos", Value: vid}}},
			{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}},
		})
	if err != nil {
		return fmt.Errorf("remove playlist video: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByOwner returns every playlist of a user with its video count and owner.
func (r *MongoPlaylistRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.PlaylistDetails, error) {
	owner, err := objectID(ownerID)
	if err != nil {
		return []models.PlaylistDetails{}, nil
	}
	var docs []playlistDetailsDocument
	if err := aggregateAll(ctx, r.coll(), playlistsByOwnerPipeline(owner), &docs, "aggregate playlists"); err != nil {
		return nil, err
	}
	playlists := make([]models.PlaylistDetails, 0, len(docs))
	for _, d := range docs {
		playlists = append(playlists, models.PlaylistDetails{
			Playlist:     d.playlistDocument.model(),
			TotalVideos:  d.TotalVideos,
			OwnerDetails: d.OwnerDetails.model(),
		})
	}
	return playlists, nil
}

// CountByOwner returns how many playlists a user has.
func (r *MongoPlaylistRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	owner, err := objectID(ownerID)
	if err != nil {
		return 0, nil
	}
	total, err := r.coll().CountDocuments(ctx, bson.D{{Key: "owner", Value: owner}})
	if err != nil {
		return 0, fmt.Errorf("count playlists: %w", err)
	}
	return total, nil
}

var _ PlaylistRepository = (*MongoPlaylistRepository)(nil)

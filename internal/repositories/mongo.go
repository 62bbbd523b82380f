package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vidtube/backend/internal/auth"
	"github.com/vidtube/backend/internal/models"
)

// NewMongoStore wires every MongoDB-backed repository onto one database.
func NewMongoStore(database *mongo.Database) Store {
	return Store{
		Users:         &MongoUserRepository{db: database},
		Sessions:      &MongoSessionStore{db: database},
		Videos:        &MongoVideoRepository{db: database},
		Dashboard:     &MongoDashboardRepository{db: database},
		Comments:      &MongoCommentRepository{db: database},
		Tweets:        &MongoTweetRepository{db: database},
		Likes:         &MongoLikeRepository{db: database},
		Subscriptions: &MongoSubscriptionRepository{db: database},
		Playlists:     &MongoPlaylistRepository{db: database},
	}
}

// EnsureMongoIndexes creates the indexes every Mongo repository relies on, including the
// unique indexes that make like and subscription toggles race free.
func EnsureMongoIndexes(ctx context.Context, database *mongo.Database) error {
	partialExists := func(field string) *options.IndexOptions {
		return options.Index().SetUnique(true).SetPartialFilterExpression(bson.D{{Key: field, Value: bson.D{{Key: "$exists", Value: true}}}})
	}

	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		sessionsCollection: {
			{Keys: bson.D{{Key: "user", Value: 1}}},
			{Keys: bson.D{{Key: "expiresAt", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
		},
		videosCollection: {
			{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		commentsCollection: {
			{Keys: bson.D{{Key: "video", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		tweetsCollection: {
			{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		likesCollection: {
			{Keys: bson.D{{Key: "likedBy", Value: 1}, {Key: "video", Value: 1}}, Options: partialExists("video")},
			{Keys: bson.D{{Key: "likedBy", Value: 1}, {Key: "comment", Value: 1}}, Options: partialExists("comment")},
			{Keys: bson.D{{Key: "likedBy", Value: 1}, {Key: "tweet", Value: 1}}, Options: partialExists("tweet")},
			{Keys: bson.D{{Key: "video", Value: 1}}},
		},
		subscriptionsCollection: {
			{Keys: bson.D{{Key: "channel", Value: 1}, {Key: "subscriber", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "subscriber", Value: 1}}},
		},
		playlistsCollection: {
			{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}

	for collection, specs := range indexes {
		if _, err := database.Collection(collection).Indexes().CreateMany(ctx, specs); err != nil {
			return fmt.Errorf("create %s indexes: %w", collection, err)
		}
	}
	return nil
}

// objectID parses a hex id. Malformed ids cannot match any document.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

func optionalObjectID(id string) (*primitive.ObjectID, error) {
	if id == "" {
		return nil, nil
	}
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return &oid, nil
}

func hexOrEmpty(id *primitive.ObjectID) string {
	if id == nil || id.IsZero() {
		return ""
	}
	return id.Hex()
}

func translateMongoWriteError(err error, op string) error {
	if mongo.IsDuplicateKeyError(err) {
		return ErrConflict
	}
	return fmt.Errorf("%s: %w", op, err)
}

func translateMongoReadError(err error, op string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// aggregateAll runs a pipeline and decodes every result into out.
func aggregateAll(ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline, out any, op string) error {
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("%s: decode: %w", op, err)
	}
	return nil
}

type ownerDocument struct {
	ID       primitive.ObjectID `bson:"_id"`
	Username string             `bson:"username"`
	FullName string             `bson:"fullName"`
	Avatar   string             `bson:"avatar"`
}

func (d ownerDocument) model() models.OwnerSummary {
	return models.OwnerSummary{ID: d.ID.Hex(), Username: d.Username, FullName: d.FullName, Avatar: d.Avatar}
}

type watchDocument struct {
	Video     primitive.ObjectID `bson:"video"`
	WatchedAt time.Time          `bson:"watchedAt"`
}

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	FullName     string             `bson:"fullName"`
	Avatar       string             `bson:"avatar"`
	CoverImage   string             `bson:"coverImage,omitempty"`
	Password     string             `bson:"password"`
	WatchHistory []watchDocument    `bson:"watchHistory"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func (d userDocument) model() models.User {
	return models.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		FullName:     d.FullName,
		Avatar:       d.Avatar,
		CoverImage:   d.CoverImage,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// MongoUserRepository provides MongoDB-backed persistence for users.
type MongoUserRepository struct {
	db *mongo.Database
}

func (r *MongoUserRepository) coll() *mongo.Collection { return r.db.Collection(usersCollection) }

// Create persists a new user document.
func (r *MongoUserRepository) Create(ctx context.Context, user models.User) error {
	id, err := objectID(user.ID)
	if err != nil {
		return fmt.Errorf("insert user: invalid id %q", user.ID)
	}
	doc := userDocument{
		ID:           id,
		Username:     user.Username,
		Email:        user.Email,
		FullName:     user.FullName,
		Avatar:       user.Avatar,
		CoverImage:   user.CoverImage,
		Password:     user.PasswordHash,
		WatchHistory: []watchDocument{},
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	if _, err := r.coll().InsertOne(ctx, doc); err != nil {
		return translateMongoWriteError(err, "insert user")
	}
	return nil
}

// FindByID fetches a user by identifier.
func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.User{}, err
	}
	var doc userDocument
	if err := r.coll().FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return models.User{}, translateMongoReadError(err, "find user")
	}
	return doc.model(), nil
}

// FindByLogin fetches a user by username or email.
func (r *MongoUserRepository) FindByLogin(ctx context.Context, username, email string) (models.User, error) {
	var or bson.A
	if username != "" {
		or = append(or, bson.D{{Key: "username", Value: username}})
	}
	if email != "" {
		or = append(or, bson.D{{Key: "email", Value: email}})
	}
	if len(or) == 0 {
		return models.User{}, ErrNotFound
	}

	var doc userDocument
	if err := r.coll().FindOne(ctx, bson.D{{Key: "$or", Value: or}}).Decode(&doc); err != nil {
		return models.User{}, translateMongoReadError(err, "find user by login")
	}
	return doc.model(), nil
}

// RecordWatch moves the video to the front of the user's watch history.
func (r *MongoUserRepository) RecordWatch(ctx context.Context, userID, videoID string, at time.Time) error {
	uid, err := objectID(userID)
	if err != nil {
		return err
	}
	vid, err := objectID(videoID)
	if err != nil {
		return err
	}

	filter := bson.D{{Key: "_id", Value: uid}}
	res, err := r.coll().UpdateOne(ctx, filter, bson.D{{Key: "$pull", Value: bson.D{
		{Key: "watchHistory", Value: bson.D{{Key: "video", Value: vid}}},
	}}})
	if err != nil {
		return fmt.Errorf("pull watch history: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	_, err = r.coll().UpdateOne(ctx, filter, bson.D{{Key: "$push", Value: bson.D{
		{Key: "watchHistory", Value: bson.D{
			{Key: "$each", Value: bson.A{watchDocument{Video: vid, WatchedAt: at}}},
			{Key: "$position", Value: 0},
			{Key: "$slice", Value: watchHistoryLimit},
		}},
	}}})
	if err != nil {
		return fmt.Errorf("push watch history: %w", err)
	}
	return nil
}

type watchedVideoDocument struct {
	videoDetailsDocument `bson:",inline"`
	WatchedAt            time.Time `bson:"watchedAt"`
}

// WatchHistory returns the user's watched videos, most recent first.
func (r *MongoUserRepository) WatchHistory(ctx context.Context, userID string) ([]models.WatchedVideo, error) {
	uid, err := objectID(userID)
	if err != nil {
		return nil, err
	}
	var docs []watchedVideoDocument
	if err := aggregateAll(ctx, r.coll(), watchHistoryPipeline(uid), &docs, "aggregate watch history"); err != nil {
		return nil, err
	}
	watched := make([]models.WatchedVideo, 0, len(docs))
	for _, d := range docs {
		watched = append(watched, models.WatchedVideo{VideoDetails: d.model(), WatchedAt: d.WatchedAt})
	}
	return watched, nil
}

type sessionDocument struct {
	TokenHash string             `bson:"_id"`
	User      primitive.ObjectID `bson:"user"`
	ExpiresAt time.Time          `bson:"expiresAt"`
}

// MongoSessionStore persists refresh token digests to MongoDB. Expired sessions are
// reaped by a TTL index on expiresAt.
type MongoSessionStore struct {
	db *mongo.Database
}

func (s *MongoSessionStore) coll() *mongo.Collection { return s.db.Collection(sessionsCollection) }

// Save stores or updates a session record.
func (s *MongoSessionStore) Save(ctx context.Context, session auth.Session) error {
	uid, err := objectID(session.UserID)
	if err != nil {
		return fmt.Errorf("save session: invalid user id %q", session.UserID)
	}
	doc := sessionDocument{TokenHash: session.TokenHash, User: uid, ExpiresAt: session.ExpiresAt.UTC()}
	_, err = s.coll().ReplaceOne(ctx, bson.D{{Key: "_id", Value: session.TokenHash}}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

// Find loads a session by its refresh token digest.
func (s *MongoSessionStore) Find(ctx context.Context, tokenHash string) (auth.Session, error) {
	var doc sessionDocument
	if err := s.coll().FindOne(ctx, bson.D{{Key: "_id", Value: tokenHash}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return auth.Session{}, auth.ErrSessionNotFound
		}
		return auth.Session{}, fmt.Errorf("find session: %w", err)
	}
	return auth.Session{TokenHash: doc.TokenHash, UserID: doc.User.Hex(), ExpiresAt: doc.ExpiresAt.UTC()}, nil
}

// Delete removes a session by its refresh token digest.
func (s *MongoSessionStore) Delete(ctx context.Context, tokenHash string) error {
	res, err := s.coll().DeleteOne(ctx, bson.D{{Key: "_id", Value: tokenHash}})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if res.DeletedCount == 0 {
		return auth.ErrSessionNotFound
	}
	return nil
}

// DeleteForUser removes every session held by the user.
func (s *MongoSessionStore) DeleteForUser(ctx context.Context, userID string) error {
	uid, err := objectID(userID)
	if err != nil {
		return nil
	}
	if _, err := s.coll().DeleteMany(ctx, bson.D{{Key: "user", Value: uid}}); err != nil {
		return fmt.Errorf("delete user sessions: %w", err)
	}
	return nil
}

var _ UserRepository = (*MongoUserRepository)(nil)
var _ auth.SessionStore = (*MongoSessionStore)(nil)

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

type commentDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Content   string             `bson:"content"`
	Video     primitive.ObjectID `bson:"video"`
	Owner     primitive.ObjectID `bson:"owner"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d commentDocument) model() models.Comment {
	return models.Comment{
		ID:        d.ID.Hex(),
		Content:   d.Content,
		VideoID:   d.Video.Hex(),
		Owner:     d.Owner.Hex(),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type commentDetailsDocument struct {
	commentDocument `bson:",inline"`
	OwnerDetails    ownerDocument `bson:"ownerDetails"`
}

func (d commentDetailsDocument) model() models.CommentDetails {
	return models.CommentDetails{Comment: d.commentDocument.model(), OwnerDetails: d.OwnerDetails.model()}
}

// MongoCommentRepository provides MongoDB-backed persistence for comments.
type MongoCommentRepository struct {
	db *mongo.Database
}

func (r *MongoCommentRepository) coll() *mongo.Collection { return r.db.Collection(commentsCollection) }

// Create stores a new comment document.
func (r *MongoCommentRepository) Create(ctx context.Context, comment models.Comment) error {
	id, err := objectID(comment.ID)
	if err != nil {
		return fmt.Errorf("insert comment: invalid id %q", comment.ID)
	}
	video, err := objectID(comment.VideoID)
	if err != nil {
		return err
	}
	owner, err := objectID(comment.Owner)
	if err != nil {
		return err
	}
	doc := commentDocument{
		ID:        id,
		Content:   comment.Content,
		Video:     video,
		Owner:     owner,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
	if _, err := r.coll().InsertOne(ctx, doc); err != nil {
		return translateMongoWriteError(err, "insert comment")
	}
	return nil
}

// FindByID fetches a comment document.
func (r *MongoCommentRepository) FindByID(ctx context.Context, id string) (models.Comment, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.Comment{}, err
	}
	var doc commentDocument
	if err := r.coll().FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return models.Comment{}, translateMongoReadError(err, "find comment")
	}
	return doc.model(), nil
}

// FindDetails fetches a comment joined with its author.
func (r *MongoCommentRepository) FindDetails(ctx context.Context, id string) (models.CommentDetails, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.CommentDetails{}, err
	}
	var docs []commentDetailsDocument
	if err := aggregateAll(ctx, r.coll(), commentDetailsPipeline(oid), &docs, "aggregate comment"); err != nil {
		return models.CommentDetails{}, err
	}
	if len(docs) == 0 {
		return models.CommentDetails{}, ErrNotFound
	}
	return docs[0].model(), nil
}

// Update replaces the comment content.
func (r *MongoCommentRepository) Update(ctx context.Context, comment models.Comment) error {
	oid, err := objectID(comment.ID)
	if err != nil {
		return err
	}
	res, err := r.coll().UpdateByID(ctx, oid, bson.D{{Key: "$set", Value: bson.D{
		{Key: "content", Value: comment.Content},
		{Key: "updatedAt", Value: comment.UpdatedAt},
	}}})
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a comment and the likes pointing at it.
func (r *MongoCommentRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll().DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	if _, err := r.db.Collection(likesCollection).DeleteMany(ctx, bson.D{{Key: "comment", Value: oid}}); err != nil {
		return fmt.Errorf("delete comment likes: %w", err)
	}
	return nil
}

// List returns one page of a video's comments joined with their authors.
func (r *MongoCommentRepository) List(ctx context.Context, q models.ListQuery) ([]models.CommentDetails, error) {
	video, err := objectID(q.VideoID)
	if err != nil {
		return []models.CommentDetails{}, nil
	}
	var docs []commentDetailsDocument
	if err := aggregateAll(ctx, r.coll(), commentListPipeline(q, video), &docs, "aggregate comments"); err != nil {
		return nil, err
	}
	comments := make([]models.CommentDetails, 0, len(docs))
	for _, d := range docs {
		comments = append(comments, d.model())
	}
	return comments, nil
}

// Count returns how many comments the video has.
func (r *MongoCommentRepository) Count(ctx context.Context, q models.ListQuery) (int64, error) {
	video, err := objectID(q.VideoID)
	if err != nil {
		return 0, nil
	}
	total, err := r.coll().CountDocuments(ctx, bson.D{{Key: "video", Value: video}})
	if err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return total, nil
}

type tweetDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Content   string             `bson:"content"`
	Owner     primitive.ObjectID `bson:"owner"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d tweetDocument) model() models.Tweet {
	return models.Tweet{
		ID:        d.ID.Hex(),
		Content:   d.Content,
		Owner:     d.Owner.Hex(),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// MongoTweetRepository provides MongoDB-backed persistence for tweets.
type MongoTweetRepository struct {
	db *mongo.Database
}

func (r *MongoTweetRepository) coll() *mongo.Collection { return r.db.Collection(tweetsCollection) }

// Create stores a new tweet document.
func (r *MongoTweetRepository) Create(ctx context.Context, tweet models.Tweet) error {
	id, err := objectID(tweet.ID)
	if err != nil {
		return fmt.Errorf("insert tweet: invalid id %q", tweet.ID)
	}
	owner, err := objectID(tweet.Owner)
	if err != nil {
		return err
	}
	doc := tweetDocument{ID: id, Content: tweet.Content, Owner: owner, CreatedAt: tweet.CreatedAt, UpdatedAt: tweet.UpdatedAt}
	if _, err := r.coll().InsertOne(ctx, doc); err != nil {
		return translateMongoWriteError(err, "insert tweet")
	}
	return nil
}

// FindByID fetches a tweet document.
func (r *MongoTweetRepository) FindByID(ctx context.Context, id string) (models.Tweet, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.Tweet{}, err
	}
	var doc tweetDocument
	if err := r.coll().FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return models.Tweet{}, translateMongoReadError(err, "find tweet")
	}
	return doc.model(), nil
}

// Update replaces the tweet content.
func (r *MongoTweetRepository) Update(ctx context.Context, tweet models.Tweet) error {
	oid, err := objectID(tweet.ID)
	if err != nil {
		return err
	}
	res, err := r.coll().UpdateByID(ctx, oid, bson.D{{Key: "$set", Value: bson.D{
		{Key: "content", Value: tweet.Content},
		{Key: "updatedAt", Value: tweet.UpdatedAt},
	}}})
	if err != nil {
		return fmt.Errorf("update tweet: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a tweet and the likes pointing at it.
func (r *MongoTweetRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll().DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("delete tweet: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	if _, err := r.db.Collection(likesCollection).DeleteMany(ctx, bson.D{{Key: "tweet", Value: oid}}); err != nil {
		return fmt.Errorf("delete tweet likes: %w", err)
	}
	return nil
}

// List returns one page of a user's tweets.
func (r *MongoTweetRepository) List(ctx context.Context, q models.ListQuery) ([]models.Tweet, error) {
	owner, err := objectID(q.OwnerID)
	if err != nil {
		return []models.Tweet{}, nil
	}
	opts := options.Find().
		SetSort(sortStage(q)[0].Value).
		SetSkip(int64(q.Skip())).
		SetLimit(int64(q.Limit))
	cursor, err := r.coll().Find(ctx, bson.D{{Key: "owner", Value: owner}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find tweets: %w", err)
	}
	var docs []tweetDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tweets: %w", err)
	}
	tweets := make([]models.Tweet, 0, len(docs))
	for _, d := range docs {
		tweets = append(tweets, d.model())
	}
	return tweets, nil
}

// Count returns how many tweets the user has posted.
func (r *MongoTweetRepository) Count(ctx context.Context, q models.ListQuery) (int64, error) {
	owner, err := objectID(q.OwnerID)
	if err != nil {
		return 0, nil
	}
	total, err := r.coll().CountDocuments(ctx, bson.D{{Key: "owner", Value: owner}})
	if err != nil {
		return 0, fmt.Errorf("count tweets: %w", err)
	}
	return total, nil
}

var _ CommentRepository = (*MongoCommentRepository)(nil)
var _ TweetRepository = (*MongoTweetRepository)(nil)

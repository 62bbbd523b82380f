package repositories

import (
	"context"
	"fmt"

	"github.com/vidtube/backend/internal/db"
	"github.com/vidtube/backend/internal/models"
)

var likeTargetColumns = map[models.TargetKind]string{
	models.TargetVideo:   "video_id",
	models.TargetComment: "comment_id",
	models.TargetTweet:   "tweet_id",
}

func likeTargetColumn(kind models.TargetKind) (string, error) {
	column, ok := likeTargetColumns[kind]
	if !ok {
		return "", fmt.Errorf("unsupported like target %q", kind)
	}
	return column, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// PostgresLikeRepository provides PostgreSQL-backed persistence for likes.
type PostgresLikeRepository struct {
	pool db.Pool
}

// NewPostgresLikeRepository constructs a like repository backed by PostgreSQL.
func NewPostgresLikeRepository(pool db.Pool) *PostgresLikeRepository {
	return &PostgresLikeRepository{pool: pool}
}

// Remove deletes the actor's like on the target.
func (r *PostgresLikeRepository) Remove(ctx context.Context, target models.Target, actorID string) (bool, error) {
	column, err := likeTargetColumn(target.Kind)
	if err != nil {
		return false, err
	}

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return false, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `DELETE FROM likes WHERE liked_by = $1 AND `+column+` = $2`, actorID, target.ID)
	if err != nil {
		return false, fmt.Errorf("delete like: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Add inserts a like. A concurrent duplicate surfaces as ErrConflict.
func (r *PostgresLikeRepository) Add(ctx context.Context, like models.Like) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        INSERT INTO likes (id, liked_by, video_id, comment_id, tweet_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT DO NOTHING
    `, like.ID, like.LikedBy, nullable(like.VideoID), nullable(like.CommentID), nullable(like.TweetID), like.CreatedAt)
	if err != nil {
		return translateWriteError(err, "insert like")
	}
	if tag.RowsAffected() == 0 {
		return ErrConflict
	}
	return nil
}

// Count returns how many likes the target has.
func (r *PostgresLikeRepository) Count(ctx context.Context, target models.Target) (int64, error) {
	column, err := likeTargetColumn(target.Kind)
	if err != nil {
		return 0, err
	}

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var total int64
	if err := conn.QueryRow(ctx, `SELECT COUNT(*) FROM likes WHERE `+column+` = $1`, target.ID).Scan(&total); err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return total, nil
}

// LikedVideos returns every video the actor liked, most recent like first.
func (r *PostgresLikeRepository) LikedVideos(ctx context.Context, actorID string) ([]models.LikedVideo, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT v.id, v.title, v.description, v.video_file, v.thumbnail, v.duration, v.created_at, l.created_at,
               u.id, u.username, u.full_name, u.avatar
        FROM likes l
        JOIN videos v ON v.id = l.video_id
        JOIN users u ON u.id = v.owner_id
        WHERE l.liked_by = $1 AND l.video_id IS NOT NULL AND (v.is_published OR v.owner_id = $1)
        ORDER BY l.created_at DESC
    `, actorID)
	if err != nil {
		return nil, fmt.Errorf("query liked videos: %w", err)
	}
	defer rows.Close()

	videos := []models.LikedVideo{}
	for rows.Next() {
		var v models.LikedVideo
		if err := rows.Scan(&v.ID, &v.Title, &v.Description, &v.VideoFile, &v.Thumbnail, &v.Duration, &v.CreatedAt, &v.LikedAt,
			&v.OwnerDetails.ID, &v.OwnerDetails.Username, &v.OwnerDetails.FullName, &v.OwnerDetails.Avatar); err != nil {
			return nil, fmt.Errorf("scan liked video: %w", err)
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate liked videos: %w", err)
	}
	return videos, nil
}

// PostgresSubscriptionRepository provides PostgreSQL-backed persistence for subscriptions.
type PostgresSubscriptionRepository struct {
	pool db.Pool
}

// NewPostgresSubscriptionRepository constructs a subscription repository backed by PostgreSQL.
func NewPostgresSubscriptionRepository(pool db.Pool) *PostgresSubscriptionRepository {
	return &PostgresSubscriptionRepository{pool: pool}
}

// Remove deletes the subscription if present.
func (r *PostgresSubscriptionRepository) Remove(ctx context.Context, channelID, subscriberID string) (bool, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return false, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `DELETE FROM subscriptions WHERE channel_id = $1 AND subscriber_id = $2`, channelID, subscriberID)
	if err != nil {
		return false, fmt.Errorf("delete subscription: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Add inserts a subscription. A concurrent duplicate surfaces as ErrConflict.
func (r *PostgresSubscriptionRepository) Add(ctx context.Context, sub models.Subscription) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        INSERT INTO subscriptions (id, channel_id, subscriber_id, created_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT DO NOTHING
    `, sub.ID, sub.ChannelID, sub.SubscriberID, sub.CreatedAt)
	if err != nil {
		return translateWriteError(err, "insert subscription")
	}
	if tag.RowsAffected() == 0 {
		return ErrConflict
	}
	return nil
}

// CountSubscribers returns how many users subscribe to the channel.
func (r *PostgresSubscriptionRepository) CountSubscribers(ctx context.Context, channelID string) (int64, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var total int64
	if err := conn.QueryRow(ctx, `SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1`, channelID).Scan(&total); err != nil {
		return 0, fmt.Errorf("count subscribers: %w", err)
	}
	return total, nil
}

// Subscribers lists the users subscribed to a channel.
func (r *PostgresSubscriptionRepository) Subscribers(ctx context.Context, channelID string) ([]models.ChannelMember, error) {
	return r.members(ctx, `
        SELECT u.id, u.username, u.full_name, u.avatar, s.created_at
        FROM subscriptions s
        JOIN users u ON u.id = s.subscriber_id
        WHERE s.channel_id = $1
        ORDER BY s.created_at DESC
    `, channelID)
}

// SubscribedChannels lists the channels a user subscribes to.
func (r *PostgresSubscriptionRepository) SubscribedChannels(ctx context.Context, subscriberID string) ([]models.ChannelMember, error) {
	return r.members(ctx, `
        SELECT u.id, u.username, u.full_name, u.avatar, s.created_at
        FROM subscriptions s
        JOIN users u ON u.id = s.channel_id
        WHERE s.subscriber_id = $1
        ORDER BY s.created_at DESC
    `, subscriberID)
}

func (r *PostgresSubscriptionRepository) members(ctx context.Context, query, id string) ([]models.ChannelMember, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("query subscriptions: %w", err)
	}
	defer rows.Close()

	members := []models.ChannelMember{}
	for rows.Next() {
		var m models.ChannelMember
		if err := rows.Scan(&m.ID, &m.Username, &m.FullName, &m.Avatar, &m.SubscribedAt); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscriptions: %w", err)
	}
	return members, nil
}

var _ LikeRepository = (*PostgresLikeRepository)(nil)
var _ SubscriptionRepository = (*PostgresSubscriptionRepository)(nil)

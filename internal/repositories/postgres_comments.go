package repositories

import (
	"context"
	"fmt"

	"github.com/vidtube/backend/internal/db"
	"github.com/vidtube/backend/internal/models"
)

const commentDetailsColumns = `c.id, c.content, c.video_id, c.owner_id, c.created_at, c.updated_at,
        u.id, u.username, u.full_name, u.avatar`

func commentDetailsTargets(d *models.CommentDetails) []any {
	return []any{&d.ID, &d.Content, &d.VideoID, &d.Owner, &d.CreatedAt, &d.UpdatedAt,
		&d.OwnerDetails.ID, &d.OwnerDetails.Username, &d.OwnerDetails.FullName, &d.OwnerDetails.Avatar}
}

var commentSortColumns = map[string]string{
	models.SortCreatedAt: "c.created_at",
	models.SortUpdatedAt: "c.updated_at",
}

// PostgresCommentRepository provides PostgreSQL-backed persistence for comments.
type PostgresCommentRepository struct {
	pool db.Pool
}

// NewPostgresCommentRepository constructs a comment repository backed by PostgreSQL.
func NewPostgresCommentRepository(pool db.Pool) *PostgresCommentRepository {
	return &PostgresCommentRepository{pool: pool}
}

// Create stores a new comment.
func (r *PostgresCommentRepository) Create(ctx context.Context, comment models.Comment) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO comments (id, content, video_id, owner_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `, comment.ID, comment.Content, comment.VideoID, comment.Owner, comment.CreatedAt, comment.UpdatedAt)
	if err != nil {
		return translateWriteError(err, "insert comment")
	}
	return nil
}

// FindByID fetches a comment without joins.
func (r *PostgresCommentRepository) FindByID(ctx context.Context, id string) (models.Comment, error) {
	details, err := r.FindDetails(ctx, id)
	if err != nil {
		return models.Comment{}, err
	}
	return details.Comment, nil
}

// FindDetails fetches a comment joined with its author.
func (r *PostgresCommentRepository) FindDetails(ctx context.Context, id string) (models.CommentDetails, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.CommentDetails{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var details models.CommentDetails
	err = conn.QueryRow(ctx, `
        SELECT `+commentDetailsColumns+`
        FROM comments c
        JOIN users u ON u.id = c.owner_id
        WHERE c.id = $1
    `, id).Scan(commentDetailsTargets(&details)...)
	if err != nil {
		return models.CommentDetails{}, translateReadError(err, "select comment")
	}
	return details, nil
}

// Update replaces the comment content.
func (r *PostgresCommentRepository) Update(ctx context.Context, comment models.Comment) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `UPDATE comments SET content = $2, updated_at = $3 WHERE id = $1`,
		comment.ID, comment.Content, comment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a comment and, through cascades, its likes.
func (r *PostgresCommentRepository) Delete(ctx context.Context, id string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns one page of a video's comments joined with their authors.
func (r *PostgresCommentRepository) List(ctx context.Context, q models.ListQuery) ([]models.CommentDetails, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	page, args := pageClause(q, []any{q.VideoID})
	rows, err := conn.Query(ctx, fmt.Sprintf(`
        SELECT %s
        FROM comments c
        JOIN users u ON u.id = c.owner_id
        WHERE c.video_id = $1
        %s
        %s
    `, commentDetailsColumns, orderClause(q, commentSortColumns, "c.id"), page), args...)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	comments := []models.CommentDetails{}
	for rows.Next() {
		var details models.CommentDetails
		if err := rows.Scan(commentDetailsTargets(&details)...); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, details)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return comments, nil
}

// Count returns how many comments a video has.
func (r *PostgresCommentRepository) Count(ctx context.Context, q models.ListQuery) (int64, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var total int64
	if err := conn.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE video_id = $1`, q.VideoID).Scan(&total); err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return total, nil
}

var tweetSortColumns = map[string]string{
	models.SortCreatedAt: "created_at",
	models.SortUpdatedAt: "updated_at",
}

// PostgresTweetRepository provides PostgreSQL-backed persistence for tweets.
type PostgresTweetRepository struct {
	pool db.Pool
}

// NewPostgresTweetRepository constructs a tweet repository backed by PostgreSQL.
func NewPostgresTweetRepository(pool db.Pool) *PostgresTweetRepository {
	return &PostgresTweetRepository{pool: pool}
}

// Create stores a new tweet.
func (r *PostgresTweetRepository) Create(ctx context.Context, tweet models.Tweet) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO tweets (id, content, owner_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
    `, tweet.ID, tweet.Content, tweet.Owner, tweet.CreatedAt, tweet.UpdatedAt)
	if err != nil {
		return translateWriteError(err, "insert tweet")
	}
	return nil
}

// FindByID fetches a tweet.
func (r *PostgresTweetRepository) FindByID(ctx context.Context, id string) (models.Tweet, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Tweet{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var t models.Tweet
	err = conn.QueryRow(ctx, `SELECT id, content, owner_id, created_at, updated_at FROM tweets WHERE id = $1`, id).
		Scan(&t.ID, &t.Content, &t.Owner, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return models.Tweet{}, translateReadError(err, "select tweet")
	}
	return t, nil
}

// Update replaces the tweet content.
func (r *PostgresTweetRepository) Update(ctx context.Context, tweet models.Tweet) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `UPDATE tweets SET content = $2, updated_at = $3 WHERE id = $1`,
		tweet.ID, tweet.Content, tweet.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update tweet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a tweet and, through cascades, its likes.
func (r *PostgresTweetRepository) Delete(ctx context.Context, id string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `DELETE FROM tweets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tweet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns one page of a user's tweets.
func (r *PostgresTweetRepository) List(ctx context.Context, q models.ListQuery) ([]models.Tweet, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	page, args := pageClause(q, []any{q.OwnerID})
	rows, err := conn.Query(ctx, fmt.Sprintf(`
        SELECT id, content, owner_id, created_at, updated_at
        FROM tweets
        WHERE owner_id = $1
        %s
        %s
    `, orderClause(q, tweetSortColumns, "id"), page), args...)
	if err != nil {
		return nil, fmt.Errorf("query tweets: %w", err)
	}
	defer rows.Close()

	tweets := []models.Tweet{}
	for rows.Next() {
		var t models.Tweet
		if err := rows.Scan(&t.ID, &t.Content, &t.Owner, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan tweet: %w", err)
		}
		tweets = append(tweets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tweets: %w", err)
	}
	return tweets, nil
}

// Count returns how many tweets a user has posted.
func (r *PostgresTweetRepository) Count(ctx context.Context, q models.ListQuery) (int64, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var total int64
	if err := conn.QueryRow(ctx, `SELECT COUNT(*) FROM tweets WHERE owner_id = $1`, q.OwnerID).Scan(&total); err != nil {
		return 0, fmt.Errorf("count tweets: %w", err)
	}
	return total, nil
}

var _ CommentRepository = (*PostgresCommentRepository)(nil)
var _ TweetRepository = (*PostgresTweetRepository)(nil)

package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/vidtube/backend/internal/db"
	"github.com/vidtube/backend/internal/models"
)

const videoDetailsColumns = `v.id, v.owner_id, v.title, v.description, v.video_file, v.thumbnail, v.duration, v.views,
        v.is_published, v.created_at, v.updated_at, u.id, u.username, u.full_name, u.avatar`

func videoDetailsTargets(d *models.VideoDetails) []any {
	return []any{&d.ID, &d.Owner, &d.Title, &d.Description, &d.VideoFile, &d.Thumbnail, &d.Duration, &d.Views,
		&d.IsPublished, &d.CreatedAt, &d.UpdatedAt,
		&d.OwnerDetails.ID, &d.OwnerDetails.Username, &d.OwnerDetails.FullName, &d.OwnerDetails.Avatar}
}

var videoSortColumns = map[string]string{
	models.SortCreatedAt: "v.created_at",
	models.SortUpdatedAt: "v.updated_at",
	models.SortTitle:     "v.title",
	models.SortViews:     "v.views",
	models.SortDuration:  "v.duration",
}

// videoFilter renders the WHERE clause for a video listing.
func videoFilter(q models.ListQuery) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if q.OwnerID != "" {
		args = append(args, q.OwnerID)
		clauses = append(clauses, fmt.Sprintf("v.owner_id = $%d", len(args)))
	}
	if q.PublishedOnly {
		clauses = append(clauses, "v.is_published")
	}
	if q.TextQuery != "" {
		args = append(args, "%"+escapeLike(q.TextQuery)+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(v.title ILIKE $%d OR v.description ILIKE $%d)", n, n))
	}
	if len(clauses) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

// orderClause renders ORDER BY from a whitelisted column map, with the id as tie breaker.
func orderClause(q models.ListQuery, columns map[string]string, idColumn string) string {
	column, ok := columns[q.SortField]
	if !ok {
		column = columns[models.SortCreatedAt]
	}
	dir := "DESC"
	if q.SortDirection == models.SortAscending {
		dir = "ASC"
	}
	return fmt.Sprintf("ORDER BY %s %s, %s %s", column, dir, idColumn, dir)
}

// pageClause appends limit and offset arguments and renders their placeholders.
func pageClause(q models.ListQuery, args []any) (string, []any) {
	args = append(args, q.Limit, q.Skip())
	return fmt.Sprintf("LIMIT $%d OFFSET $%d", len(args)-1, len(args)), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// PostgresVideoRepository provides PostgreSQL-backed persistence for videos.
type PostgresVideoRepository struct {
	pool db.Pool
}

// NewPostgresVideoRepository constructs a video repository backed by PostgreSQL.
func NewPostgresVideoRepository(pool db.Pool) *PostgresVideoRepository {
	return &PostgresVideoRepository{pool: pool}
}

// Create stores a new video record.
func (r *PostgresVideoRepository) Create(ctx context.Context, video models.Video) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO videos (id, owner_id, title, description, video_file, thumbnail, duration, views, is_published, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `, video.ID, video.Owner, video.Title, video.Description, video.VideoFile, video.Thumbnail, video.Duration,
		video.Views, video.IsPublished, video.CreatedAt, video.UpdatedAt)
	if err != nil {
		return translateWriteError(err, "insert video")
	}

	return nil
}

// FindByID fetches a video without joins.
func (r *PostgresVideoRepository) FindByID(ctx context.Context, id string) (models.Video, error) {
	details, err := r.FindDetails(ctx, id)
	if err != nil {
		return models.Video{}, err
	}
	return details.Video, nil
}

// FindDetails fetches a video joined with its owner.
func (r *PostgresVideoRepository) FindDetails(ctx context.Context, id string) (models.VideoDetails, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.VideoDetails{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var details models.VideoDetails
	err = conn.QueryRow(ctx, `
        SELECT `+videoDetailsColumns+`
        FROM videos v
        JOIN users u ON u.id = v.owner_id
        WHERE v.id = $1
    `, id).Scan(videoDetailsTargets(&details)...)
	if err != nil {
		return models.VideoDetails{}, translateReadError(err, "select video")
	}
	return details, nil
}

// Update replaces the mutable fields of a video.
func (r *PostgresVideoRepository) Update(ctx context.Context, video models.Video) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        UPDATE videos
        SET title = $2, description = $3, thumbnail = $4, is_published = $5, updated_at = $6
        WHERE id = $1
    `, video.ID, video.Title, video.Description, video.Thumbnail, video.IsPublished, video.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update video: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a video. Likes, comments, history and playlist entries cascade.
func (r *PostgresVideoRepository) Delete(ctx context.Context, id string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// IncrementViews bumps the view counter by one.
func (r *PostgresVideoRepository) IncrementViews(ctx context.Context, id string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `UPDATE videos SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment video views: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// List returns one page of videos joined with their owners.
func (r *PostgresVideoRepository) List(ctx context.Context, q models.ListQuery) ([]models.VideoDetails, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	where, args := videoFilter(q)
	page, args := pageClause(q, args)

	rows, err := conn.Query(ctx, fmt.Sprintf(`
        SELECT %s
        FROM videos v
        JOIN users u ON u.id = v.owner_id
        %s
        %s
        %s
    `, videoDetailsColumns, where, orderClause(q, videoSortColumns, "v.id"), page), args...)
	if err != nil {
		return nil, fmt.Errorf("query videos: %w", err)
	}
	defer rows.Close()

	videos := []models.VideoDetails{}
	for rows.Next() {
		var details models.VideoDetails
		if err := rows.Scan(videoDetailsTargets(&details)...); err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, details)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}

	return videos, nil
}

// Count returns how many videos match the listing filter.
func (r *PostgresVideoRepository) Count(ctx context.Context, q models.ListQuery) (int64, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	where, args := videoFilter(q)
	var total int64
	if err := conn.QueryRow(ctx, `SELECT COUNT(*) FROM videos v `+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count videos: %w", err)
	}
	return total, nil
}

// ListByOwner returns the reduced dashboard shape of every video on a channel.
func (r *PostgresVideoRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.ChannelVideo, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT id, title, description, thumbnail, duration, views, is_published, created_at
        FROM videos
        WHERE owner_id = $1
        ORDER BY created_at DESC, id DESC
    `, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query channel videos: %w", err)
	}
	defer rows.Close()

	videos := []models.ChannelVideo{}
	for rows.Next() {
		var v models.ChannelVideo
		if err := rows.Scan(&v.ID, &v.Title, &v.Description, &v.Thumbnail, &v.Duration, &v.Views, &v.IsPublished, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan channel video: %w", err)
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate channel videos: %w", err)
	}

	return videos, nil
}

// PostgresDashboardRepository computes channel aggregates in PostgreSQL.
type PostgresDashboardRepository struct {
	pool db.Pool
}

// NewPostgresDashboardRepository constructs a dashboard repository backed by PostgreSQL.
func NewPostgresDashboardRepository(pool db.Pool) *PostgresDashboardRepository {
	return &PostgresDashboardRepository{pool: pool}
}

// ChannelStats returns subscriber, video, like and view totals for a channel.
func (r *PostgresDashboardRepository) ChannelStats(ctx context.Context, ownerID string) (models.ChannelStats, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.ChannelStats{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var stats models.ChannelStats
	err = conn.QueryRow(ctx, `
        SELECT
            (SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1),
            (SELECT COUNT(*) FROM videos WHERE owner_id = $1),
            (SELECT COUNT(*) FROM likes l JOIN videos v ON v.id = l.video_id WHERE v.owner_id = $1),
            (SELECT COALESCE(SUM(views), 0)::BIGINT FROM videos WHERE owner_id = $1)
    `, ownerID).Scan(&stats.TotalSubscribers, &stats.TotalVideos, &stats.TotalVideoLikes, &stats.TotalViews)
	if err != nil {
		return models.ChannelStats{}, fmt.Errorf("select channel stats: %w", err)
	}
	return stats, nil
}

var _ VideoRepository = (*PostgresVideoRepository)(nil)
var _ DashboardRepository = (*PostgresDashboardRepository)(nil)

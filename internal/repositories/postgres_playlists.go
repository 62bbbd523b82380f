package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidtube/backend/internal/db"
	"github.com/vidtube/backend/internal/models"
)

// PostgresPlaylistRepository provides PostgreSQL-backed persistence for playlists.
type PostgresPlaylistRepository struct {
	pool db.Pool
}

// NewPostgresPlaylistRepository constructs a playlist repository backed by PostgreSQL.
func NewPostgresPlaylistRepository(pool db.Pool) *PostgresPlaylistRepository {
	return &PostgresPlaylistRepository{pool: pool}
}

// Create stores a new, empty playlist.
func (r *PostgresPlaylistRepository) Create(ctx context.Context, playlist models.Playlist) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO playlists (id, name, description, owner_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `, playlist.ID, playlist.Name, playlist.Description, playlist.Owner, playlist.CreatedAt, playlist.UpdatedAt)
	if err != nil {
		return translateWriteError(err, "insert playlist")
	}
	return nil
}

// FindByID fetches a playlist with its ordered video ids.
func (r *PostgresPlaylistRepository) FindByID(ctx context.Context, id string) (models.Playlist, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Playlist{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var p models.Playlist
	err = conn.QueryRow(ctx, `
        SELECT id, name, description, owner_id, created_at, updated_at
        FROM playlists
        WHERE id = $1
    `, id).Scan(&p.ID, &p.Name, &p.Description, &p.Owner, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.Playlist{}, translateReadError(err, "select playlist")
	}

	videos, err := playlistVideos(ctx, conn, []string{p.ID})
	if err != nil {
		return models.Playlist{}, err
	}
	p.Videos = videos[p.ID]
	if p.Videos == nil {
		p.Videos = []string{}
	}
	return p, nil
}

func playlistVideos(ctx context.Context, conn *pgxpool.Conn, playlistIDs []string) (map[string][]string, error) {
	rows, err := conn.Query(ctx, `
        SELECT playlist_id, video_id
        FROM playlist_videos
        WHERE playlist_id = ANY($1)
        ORDER BY playlist_id, position
    `, playlistIDs)
	if err != nil {
		return nil, fmt.Errorf("query playlist videos: %w", err)
	}
	defer rows.Close()

	videos := make(map[string][]string, len(playlistIDs))
	for rows.Next() {
		var playlistID, videoID string
		if err := rows.Scan(&playlistID, &videoID); err != nil {
			return nil, fmt.Errorf("scan playlist video: %w", err)
		}
		videos[playlistID] = append(videos[playlistID], videoID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlist videos: %w", err)
	}
	return videos, nil
}

// Update replaces name and description.
func (r *PostgresPlaylistRepository) Update(ctx context.Context, playlist models.Playlist) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `UPDATE playlists SET name = $2, description = $3, updated_at = $4 WHERE id = $1`,
		playlist.ID, playlist.Name, playlist.Description, playlist.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update playlist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a playlist and its membership rows.
func (r *PostgresPlaylistRepository) Delete(ctx context.Context, id string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AddVideo appends a video at the end of the playlist.
func (r *PostgresPlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	now := time.Now().UTC()
	tag, err := conn.Exec(ctx, `
        INSERT INTO playlist_videos (playlist_id, video_id, position, added_at)
        SELECT $1, $2, COALESCE(MAX(position), 0) + 1, $3
        FROM playlist_videos
        WHERE playlist_id = $1
        ON CONFLICT DO NOTHING
    `, playlistID, videoID, now)
	if err != nil {
		return translateWriteError(err, "insert playlist video")
	}
	if tag.RowsAffected() == 0 {
		return ErrConflict
	}

	if _, err := conn.Exec(ctx, `UPDATE playlists SET updated_at = $2 WHERE id = $1`, playlistID, now); err != nil {
		return fmt.Errorf("touch playlist: %w", err)
	}
	return nil
}

// RemoveVideo drops a video from the playlist.
func (r *PostgresPlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2`, playlistID, videoID)
	if err != nil {
		return fmt.Errorf("delete playlist video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := conn.Exec(ctx, `UPDATE playlists SET updated_at = $2 WHERE id = $1`, playlistID, time.Now().UTC()); err != nil {
		return fmt.Errorf("touch playlist: %w", err)
	}
	return nil
}

// ListByOwner returns an owner's playlists with video counts and owner details.
func (r *PostgresPlaylistRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.PlaylistDetails, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT p.id, p.name, p.description, p.owner_id, p.created_at, p.updated_at,
               u.id, u.username, u.full_name, u.avatar
        FROM playlists p
        JOIN users u ON u.id = p.owner_id
        WHERE p.owner_id = $1
        ORDER BY p.created_at DESC, p.id DESC
    `, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query playlists: %w", err)
	}

	playlists := []models.PlaylistDetails{}
	var ids []string
	for rows.Next() {
		var p models.PlaylistDetails
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Owner, &p.CreatedAt, &p.UpdatedAt,
			&p.OwnerDetails.ID, &p.OwnerDetails.Username, &p.OwnerDetails.FullName, &p.OwnerDetails.Avatar); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		playlists = append(playlists, p)
		ids = append(ids, p.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlists: %w", err)
	}

	if len(ids) == 0 {
		return playlists, nil
	}

	videos, err := playlistVideos(ctx, conn, ids)
	if err != nil {
		return nil, err
	}
	for i := range playlists {
		playlists[i].Videos = videos[playlists[i].ID]
		if playlists[i].Videos == nil {
			playlists[i].Videos = []string{}
		}
		playlists[i].TotalVideos = len(playlists[i].Videos)
	}
	return playlists, nil
}

// CountByOwner returns how many playlists an owner has.
func (r *PostgresPlaylistRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var total int64
	if err := conn.QueryRow(ctx, `SELECT COUNT(*) FROM playlists WHERE owner_id = $1`, ownerID).Scan(&total); err != nil {
		return 0, fmt.Errorf("count playlists: %w", err)
	}
	return total, nil
}

var _ PlaylistRepository = (*PostgresPlaylistRepository)(nil)

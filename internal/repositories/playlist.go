package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/ytdb/internal/models"
	"github.com/desertthunder/ytdb/internal/shared"
)

// PlaylistRepository persists [models.Playlist] rows and maintains the
// playlist_videos membership table.
type PlaylistRepository struct {
	db *sql.DB
}

// NewPlaylistRepository creates a new PlaylistRepository with the given database connection
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Create inserts a new playlist. The owning channel row must already exist.
func (r *PlaylistRepository) Create(playlist *models.Playlist) error {
	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if playlist.CreatedAt.IsZero() {
		playlist.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO playlists (id, channel_id, title, description, item_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		playlist.ID,
		playlist.ChannelID,
		playlist.Title,
		playlist.Description,
		playlist.ItemCount,
		playlist.CreatedAt,
	)
	return wrapInsertErr(err, models.KindPlaylist, playlist.ID)
}

// GetByKey retrieves a playlist by its remote id.
func (r *PlaylistRepository) GetByKey(id string) (*models.Playlist, error) {
	query := `
		SELECT id, channel_id, title, description, item_count, created_at
		FROM playlists
		WHERE id = ?
	`

	playlist, err := r.scan(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: playlist", shared.ErrNotFound)
	}
	return playlist, err
}

// Update is a contract placeholder: the sync engine never mutates imported rows.
func (r *PlaylistRepository) Update(*models.Playlist) error {
	return shared.ErrNotImplemented
}

// AddVideo records playlist membership for a video at the given position.
// Re-adding an existing member is a no-op.
func (r *PlaylistRepository) AddVideo(playlistID, videoID string, position int) error {
	query := `
		INSERT OR IGNORE INTO playlist_videos (playlist_id, video_id, position)
		VALUES (?, ?, ?)
	`

	if _, err := r.db.Exec(query, playlistID, videoID, position); err != nil {
		return fmt.Errorf("failed to link video %q to playlist %q: %w", videoID, playlistID, err)
	}
	return nil
}

// VideoIDs returns the member video ids of a playlist in position order.
func (r *PlaylistRepository) VideoIDs(playlistID string) ([]string, error) {
	query := `
		SELECT video_id FROM playlist_videos
		WHERE playlist_id = ?
		ORDER BY position, video_id
	`

	rows, err := r.db.Query(query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to load playlist members: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan playlist member: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// List retrieves playlists matching the given criteria.
//
// Supported criteria: "channel_id".
func (r *PlaylistRepository) List(criteria map[string]any) ([]*models.Playlist, error) {
	query := `
		SELECT id, channel_id, title, description, item_count, created_at
		FROM playlists
		WHERE 1 = 1
	`

	args := []any{}

	if channelID, ok := criteria["channel_id"].(string); ok && channelID != "" {
		query += " AND channel_id = ?"
		args = append(args, channelID)
	}

	query += " ORDER BY title"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	defer rows.Close()

	var playlists []*models.Playlist
	for rows.Next() {
		playlist, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, playlist)
	}

	return playlists, rows.Err()
}

func (r *PlaylistRepository) scan(row rowScanner) (*models.Playlist, error) {
	var playlist models.Playlist

	err := row.Scan(
		&playlist.ID,
		&playlist.ChannelID,
		&playlist.Title,
		&playlist.Description,
		&playlist.ItemCount,
		&playlist.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan playlist: %w", err)
	}

	return &playlist, nil
}

package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/ytdb/internal/models"
	"github.com/desertthunder/ytdb/internal/shared"
)

// VideoRepository persists [models.Video] rows together with their video_tags
// junction rows.
type VideoRepository struct {
	db *sql.DB
}

// NewVideoRepository creates a new VideoRepository with the given database connection
func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// Create inserts a video and its tag links in a single transaction.
//
// Tag rows themselves must already exist: the engine resolves every tag before
// persisting the video, so a missing tag here is a foreign key violation.
func (r *VideoRepository) Create(video *models.Video) error {
	if err := video.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if video.CreatedAt.IsZero() {
		video.CreatedAt = time.Now()
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO videos (id, channel_id, title, description, published_at, duration, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = tx.Exec(query,
		video.ID,
		video.ChannelID,
		video.Title,
		video.Description,
		nullTime(video.PublishedAt),
		video.Duration,
		video.CreatedAt,
	)
	if err != nil {
		return wrapInsertErr(err, models.KindVideo, video.ID)
	}

	for _, tag := range video.Tags {
		_, err = tx.Exec("INSERT OR IGNORE INTO video_tags (video_id, tag) VALUES (?, ?)", video.ID, tag)
		if err != nil {
			return wrapInsertErr(err, models.KindVideo, video.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit video insert: %w", err)
	}

	return nil
}

// GetByKey retrieves a video by its remote id, including its tag strings.
func (r *VideoRepository) GetByKey(id string) (*models.Video, error) {
	query := `
		SELECT id, channel_id, title, description, published_at, duration, created_at
		FROM videos
		WHERE id = ?
	`

	video, err := r.scan(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: video", shared.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if video.Tags, err = r.tagsFor(id); err != nil {
		return nil, err
	}

	return video, nil
}

// Update is a contract placeholder: the sync engine never mutates imported rows.
func (r *VideoRepository) Update(*models.Video) error {
	return shared.ErrNotImplemented
}

// List retrieves videos matching the given criteria, ordered by publish date.
//
// Supported criteria: "channel_id" and "tag".
func (r *VideoRepository) List(criteria map[string]any) ([]*models.Video, error) {
	query := `
		SELECT v.id, v.channel_id, v.title, v.description, v.published_at, v.duration, v.created_at
		FROM videos v
	`

	args := []any{}

	if tag, ok := criteria["tag"].(string); ok && tag != "" {
		query += " JOIN video_tags vt ON vt.video_id = v.id AND vt.tag = ?"
		args = append(args, tag)
	}

	query += " WHERE 1 = 1"

	if channelID, ok := criteria["channel_id"].(string); ok && channelID != "" {
		query += " AND v.channel_id = ?"
		args = append(args, channelID)
	}

	query += " ORDER BY v.published_at, v.id"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	var videos []*models.Video
	for rows.Next() {
		video, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, video)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, video := range videos {
		if video.Tags, err = r.tagsFor(video.ID); err != nil {
			return nil, err
		}
	}

	return videos, nil
}

func (r *VideoRepository) scan(row rowScanner) (*models.Video, error) {
	var video models.Video
	var publishedAt sql.NullTime

	err := row.Scan(
		&video.ID,
		&video.ChannelID,
		&video.Title,
		&video.Description,
		&publishedAt,
		&video.Duration,
		&video.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan video: %w", err)
	}

	if publishedAt.Valid {
		video.PublishedAt = publishedAt.Time
	}

	return &video, nil
}

func (r *VideoRepository) tagsFor(videoID string) ([]string, error) {
	rows, err := r.db.Query("SELECT tag FROM video_tags WHERE video_id = ? ORDER BY tag", videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to load video tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("failed to scan video tag: %w", err)
		}
		tags = append(tags, tag)
	}

	return tags, rows.Err()
}

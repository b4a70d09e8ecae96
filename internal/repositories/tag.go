package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/ytdb/internal/models"
	"github.com/desertthunder/ytdb/internal/shared"
)

// TagRepository persists [models.Tag] rows. A tag's primary key is its text.
type TagRepository struct {
	db *sql.DB
}

// NewTagRepository creates a new TagRepository with the given database connection
func NewTagRepository(db *sql.DB) *TagRepository {
	return &TagRepository{db: db}
}

// Create inserts a new tag keyed by its text.
func (r *TagRepository) Create(tag *models.Tag) error {
	if err := tag.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if tag.CreatedAt.IsZero() {
		tag.CreatedAt = time.Now()
	}

	_, err := r.db.Exec("INSERT INTO tags (string, created_at) VALUES (?, ?)", tag.String, tag.CreatedAt)
	return wrapInsertErr(err, models.KindTag, tag.String)
}

// GetByKey retrieves a tag by its text.
func (r *TagRepository) GetByKey(text string) (*models.Tag, error) {
	var tag models.Tag

	err := r.db.QueryRow("SELECT string, created_at FROM tags WHERE string = ?", text).
		Scan(&tag.String, &tag.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: tag", shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan tag: %w", err)
	}

	return &tag, nil
}

// Update is a contract placeholder: tag rows are immutable once created.
func (r *TagRepository) Update(*models.Tag) error {
	return shared.ErrNotImplemented
}

// List retrieves all tags, optionally filtered to those attached to a video.
func (r *TagRepository) List(criteria map[string]any) ([]*models.Tag, error) {
	query := "SELECT string, created_at FROM tags"
	args := []any{}

	if videoID, ok := criteria["video_id"].(string); ok && videoID != "" {
		query = `
			SELECT t.string, t.created_at
			FROM tags t
			JOIN video_tags vt ON vt.tag = t.string
			WHERE vt.video_id = ?
		`
		args = append(args, videoID)
	}

	query += " ORDER BY string"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	var tags []*models.Tag
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.String, &tag.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, &tag)
	}

	return tags, rows.Err()
}

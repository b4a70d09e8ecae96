package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/ytdb/internal/models"
	"github.com/desertthunder/ytdb/internal/shared"
)

// ChannelRepository persists [models.Channel] rows, the root of the catalog's
// ownership graph: playlists and videos reference channels by id.
type ChannelRepository struct {
	db *sql.DB
}

// NewChannelRepository creates a new ChannelRepository with the given database connection
func NewChannelRepository(db *sql.DB) *ChannelRepository {
	return &ChannelRepository{db: db}
}

// Create inserts a new channel. The remote channel id is the primary key; a
// duplicate insert surfaces as [shared.ErrConflict].
func (r *ChannelRepository) Create(channel *models.Channel) error {
	if err := channel.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if channel.CreatedAt.IsZero() {
		channel.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO channels (id, name, description, url, published_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		channel.ID,
		channel.Name,
		channel.Description,
		channel.URL,
		nullTime(channel.PublishedAt),
		channel.CreatedAt,
	)
	return wrapInsertErr(err, models.KindChannel, channel.ID)
}

// GetByKey retrieves a channel by its remote id.
func (r *ChannelRepository) GetByKey(id string) (*models.Channel, error) {
	query := `
		SELECT id, name, description, url, published_at, created_at
		FROM channels
		WHERE id = ?
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// Update is a contract placeholder: the sync engine never mutates imported rows.
func (r *ChannelRepository) Update(*models.Channel) error {
	return shared.ErrNotImplemented
}

// List retrieves all channels matching the given criteria, ordered by name.
func (r *ChannelRepository) List(criteria map[string]any) ([]*models.Channel, error) {
	query := `
		SELECT id, name, description, url, published_at, created_at
		FROM channels
		WHERE 1 = 1
	`

	args := []any{}

	if name, ok := criteria["name"].(string); ok && name != "" {
		query += " AND name = ?"
		args = append(args, name)
	}

	query += " ORDER BY name"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	defer rows.Close()

	var channels []*models.Channel
	for rows.Next() {
		channel, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		channels = append(channels, channel)
	}

	return channels, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *ChannelRepository) scan(row rowScanner) (*models.Channel, error) {
	var channel models.Channel
	var publishedAt sql.NullTime

	err := row.Scan(
		&channel.ID,
		&channel.Name,
		&channel.Description,
		&channel.URL,
		&publishedAt,
		&channel.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan channel: %w", err)
	}

	if publishedAt.Valid {
		channel.PublishedAt = publishedAt.Time
	}

	return &channel, nil
}

func (r *ChannelRepository) scanOne(row *sql.Row) (*models.Channel, error) {
	channel, err := r.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: channel", shared.ErrNotFound)
	}
	return channel, err
}

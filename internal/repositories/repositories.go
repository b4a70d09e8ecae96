package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/ytdb/internal/models"
	"github.com/desertthunder/ytdb/internal/shared"
	"github.com/mattn/go-sqlite3"
)

// Store bundles the per-kind repositories over a single database connection.
// It is opened once at startup and held for the process lifetime.
type Store struct {
	db        *sql.DB
	Channels  *ChannelRepository
	Playlists *PlaylistRepository
	Tags      *TagRepository
	Videos    *VideoRepository
}

// NewStore creates a Store over an open database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:        db,
		Channels:  NewChannelRepository(db),
		Playlists: NewPlaylistRepository(db),
		Tags:      NewTagRepository(db),
		Videos:    NewVideoRepository(db),
	}
}

// GetByKey looks up an entity of the given kind by its primary key.
func (s *Store) GetByKey(kind models.Kind, key string) (models.Entity, error) {
	switch kind {
	case models.KindChannel:
		return s.Channels.GetByKey(key)
	case models.KindPlaylist:
		return s.Playlists.GetByKey(key)
	case models.KindTag:
		return s.Tags.GetByKey(key)
	case models.KindVideo:
		return s.Videos.GetByKey(key)
	}
	return nil, fmt.Errorf("%w: %q", shared.ErrUnknownKind, kind)
}

// Create persists an entity of the given kind.
func (s *Store) Create(entity models.Entity) error {
	switch e := entity.(type) {
	case *models.Channel:
		return s.Channels.Create(e)
	case *models.Playlist:
		return s.Playlists.Create(e)
	case *models.Tag:
		return s.Tags.Create(e)
	case *models.Video:
		return s.Videos.Create(e)
	}
	return fmt.Errorf("%w: %T", shared.ErrUnknownKind, entity)
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// nullTime converts a zero [time.Time] into a NULL column value.
func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

// wrapInsertErr maps sqlite constraint violations onto [shared.ErrConflict] so
// the engine can treat a racing duplicate insert as "not created".
func wrapInsertErr(err error, kind models.Kind, key string) error {
	if err == nil {
		return nil
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%w: %s %q", shared.ErrConflict, kind, key)
	}
	return fmt.Errorf("failed to insert %s %q: %w", kind, key, err)
}

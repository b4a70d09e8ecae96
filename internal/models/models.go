package models

import (
	"fmt"
	"time"

	"github.com/desertthunder/ytdb/internal/shared"
)

// Entity is implemented by every persisted catalog record.
type Entity interface {
	Kind() Kind         // Kind returns the entity category
	PrimaryKey() string // PrimaryKey returns the value of the kind's key field
	Validate() error    // Validate checks required fields before persistence
}

// Channel is a remote content channel that owns playlists and videos.
type Channel struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url,omitempty"`
	PublishedAt time.Time `json:"published_at,omitzero"`
	CreatedAt   time.Time `json:"created_at"`
}

func (c *Channel) Kind() Kind { return KindChannel }
func (c *Channel) PrimaryKey() string { return c.ID }

func (c *Channel) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: channel id", shared.ErrMissingArgument)
	}
	if c.Name == "" {
		return fmt.Errorf("%w: channel name", shared.ErrMissingArgument)
	}
	return nil
}

// Playlist is an ordered collection of videos belonging to one channel.
type Playlist struct {
	ID          string    `json:"id"`
	ChannelID   string    `json:"channel_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ItemCount   int       `json:"item_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p *Playlist) Kind() Kind { return KindPlaylist }
func (p *Playlist) PrimaryKey() string { return p.ID }

func (p *Playlist) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}
	if p.Title == "" {
		return fmt.Errorf("%w: playlist title", shared.ErrMissingArgument)
	}
	if p.ChannelID == "" {
		return fmt.Errorf("%w: playlist channel", shared.ErrMissingArgument)
	}
	return nil
}

// Tag is a free-form label shared across videos. Its primary key is the text
// itself, never a synthetic id.
type Tag struct {
	String    string    `json:"string"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *Tag) Kind() Kind { return KindTag }
func (t *Tag) PrimaryKey() string { return t.String }

func (t *Tag) Validate() error {
	if t.String == "" {
		return fmt.Errorf("%w: tag string", shared.ErrMissingArgument)
	}
	return nil
}

// Video belongs to one channel and carries the tag strings resolved during
// import. Playlist membership lives in the playlist_videos junction table.
type Video struct {
	ID          string    `json:"id"`
	ChannelID   string    `json:"channel_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	PublishedAt time.Time `json:"published_at,omitzero"`
	Duration    int       `json:"duration"` // seconds
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (v *Video) Kind() Kind { return KindVideo }
func (v *Video) PrimaryKey() string { return v.ID }

func (v *Video) Validate() error {
	if v.ID == "" {
		return fmt.Errorf("%w: video id", shared.ErrMissingArgument)
	}
	if v.Title == "" {
		return fmt.Errorf("%w: video title", shared.ErrMissingArgument)
	}
	if v.ChannelID == "" {
		return fmt.Errorf("%w: video channel", shared.ErrMissingArgument)
	}
	return nil
}

package services

import (
	"context"

	"github.com/desertthunder/ytdb/internal/models"
)

// Provider is the remote data source the sync engine pulls from.
type Provider interface {
	// Get fetches the attribute mapping for a single item. A nil mapping with
	// a nil error means the provider has no data for the key.
	Get(ctx context.Context, kind models.Kind, key string) (models.Attrs, error)

	// GetChannelItems fetches the ordered listing of videos and playlists
	// belonging to a channel.
	GetChannelItems(ctx context.Context, channelKey string) ([]ItemPayload, error)

	// Name returns the provider name for logging.
	Name() string
}

// ItemPayload is one entry of a channel listing, tagged with its kind.
type ItemPayload struct {
	ItemKind string       `json:"itemKind"`
	Attrs    models.Attrs `json:"attrs"`
}

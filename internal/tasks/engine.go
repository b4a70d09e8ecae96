package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytdb/internal/models"
	"github.com/desertthunder/ytdb/internal/repositories"
	"github.com/desertthunder/ytdb/internal/services"
	"github.com/desertthunder/ytdb/internal/shared"
)

// ListingMetrics aggregates the outcome of a bulk channel import.
type ListingMetrics struct {
	Found  int `json:"found"`  // imported or already present
	Failed int `json:"failed"` // skipped after a recorded or soft failure
}

// Engine orchestrates lookup-or-create synchronization of catalog entities.
// It holds the open store, the remote provider and the loaded error log for
// the process lifetime; all writes are serialized through it.
type Engine struct {
	store    *repositories.Store
	provider services.Provider
	errlog   *repositories.ErrorLog
	logger   *log.Logger
}

// NewEngine creates an Engine over an open store, a provider and a loaded
// error log.
func NewEngine(store *repositories.Store, provider services.Provider, errlog *repositories.ErrorLog, logger *log.Logger) *Engine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Engine{
		store:    store,
		provider: provider,
		errlog:   errlog,
		logger:   shared.WithLogger(logger, "component", "sync"),
	}
}

// ErrorLog exposes the engine's durable failure record.
func (e *Engine) ErrorLog() *repositories.ErrorLog {
	return e.errlog
}

// Store exposes the engine's local store for read-side callers.
func (e *Engine) Store() *repositories.Store {
	return e.store
}

// Close releases the engine's store connection.
func (e *Engine) Close() error {
	return e.store.Close()
}

// Ensure is the engine's idempotent lookup-or-create entry point.
//
// The kind accepts plural aliases. A local hit returns immediately with no
// network access or write. On a miss the remote representation is fetched
// (tags are never fetched: the key text is the representation) and imported
// with its dependencies. A provider miss is recorded to the error log and
// reported as (nil, nil); only caller-contract violations return an error.
func (e *Engine) Ensure(ctx context.Context, kindName, key string) (models.Entity, error) {
	kind, err := models.ParseKind(kindName)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, fmt.Errorf("%w: empty key for kind %q", shared.ErrPrimaryKey, kind)
	}

	existing, err := e.store.GetByKey(kind, key)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	var attrs models.Attrs
	if kind == models.KindTag {
		attrs = models.Attrs{"string": key}
	} else {
		attrs, err = e.provider.Get(ctx, kind, key)
		if err != nil {
			e.recordError(kind, key, "ensure", err.Error(), models.Attrs{"key": key}, nil)
			return nil, nil
		}
	}

	if len(attrs) == 0 {
		e.recordError(kind, key, "ensure", "provider returned no data", models.Attrs{"key": key}, attrs)
		return nil, nil
	}

	return e.importAttrs(ctx, kind, attrs, nil)
}

// EnsureAttrs is the lookup-or-create arm for an already-fetched attribute
// mapping: no provider call is ever made for the item itself.
//
// A mapping with no resolvable primary key is a caller-contract violation and
// returns [shared.ErrPrimaryKey].
func (e *Engine) EnsureAttrs(ctx context.Context, kindName string, raw models.Attrs) (models.Entity, error) {
	kind, err := models.ParseKind(kindName)
	if err != nil {
		return nil, err
	}

	key := models.ParseEntityArgs(kind, raw).String(kind.PrimaryKeyField())
	if key == "" {
		return nil, fmt.Errorf("%w: no %q attribute for kind %q", shared.ErrPrimaryKey, kind.PrimaryKeyField(), kind)
	}

	existing, err := e.store.GetByKey(kind, key)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	return e.importAttrs(ctx, kind, raw, nil)
}

// importAttrs normalizes raw attributes, resolves the kind's dependencies,
// re-validates and persists.
//
// fallback carries attributes from the surrounding context (the raw payload
// or an already-resolved channel during a listing import) consulted when the
// normalized attributes lack a required reference.
func (e *Engine) importAttrs(ctx context.Context, kind models.Kind, raw, fallback models.Attrs) (models.Entity, error) {
	clean := models.ParseEntityArgs(kind, raw)
	key := clean.String(kind.PrimaryKeyField())

	switch kind {
	case models.KindVideo, models.KindPlaylist:
		channelID := clean.String("channelId")
		if channelID == "" {
			channelID = raw.String("channelId")
		}
		if channelID == "" {
			channelID = fallback.String("channelId")
		}
		if channelID == "" {
			e.recordError(kind, key, "import", "could not find the channelId", raw, nil)
			return nil, nil
		}

		channel, err := e.Ensure(ctx, "channel", channelID)
		if err != nil {
			return nil, err
		}
		if channel == nil {
			// Already recorded by Ensure; the dependent item is skipped.
			return nil, nil
		}
		clean["channelId"] = channel.PrimaryKey()

		if kind == models.KindVideo {
			tags := clean.StringSlice("tags")
			resolved := make([]string, 0, len(tags))
			for _, text := range tags {
				tag, err := e.Ensure(ctx, "tag", text)
				if err != nil {
					return nil, err
				}
				if tag != nil {
					resolved = append(resolved, tag.PrimaryKey())
				}
			}
			clean["tags"] = resolved
		}
	}

	// Re-validation is distinct from normalization: a rejected item is a
	// normal "did not import" outcome, not a system error.
	if !models.ValidateEntity(kind, clean) {
		e.logger.Debug("validation rejected", "kind", kind, "key", key)
		return nil, nil
	}

	entity := entityFromAttrs(kind, clean)

	if err := e.store.Create(entity); err != nil {
		if errors.Is(err, shared.ErrConflict) {
			// A racing importer won; observe its row instead of failing.
			if existing, getErr := e.store.GetByKey(kind, entity.PrimaryKey()); getErr == nil {
				return existing, nil
			}
			return nil, nil
		}
		e.recordError(kind, entity.PrimaryKey(), "import", err.Error(), clean, nil)
		return nil, nil
	}

	e.logger.Debug("imported", "kind", kind, "key", entity.PrimaryKey())
	return entity, nil
}

// ImportListing imports the videos and playlists belonging to a channel.
//
// The channel itself is resolved first; if it cannot be, the whole listing
// fails. Individual item failures are recorded and counted but never abort
// the traversal.
func (e *Engine) ImportListing(ctx context.Context, channelKey string, progress chan<- ProgressUpdate) (*ListingMetrics, error) {
	channel, err := e.Ensure(ctx, "channel", channelKey)
	if err != nil {
		return nil, err
	}
	if channel == nil {
		return nil, fmt.Errorf("%w: could not find channel %q", shared.ErrNotFound, channelKey)
	}

	name := channelKey
	if ch, ok := channel.(*models.Channel); ok && ch.Name != "" {
		name = ch.Name
	}
	e.sendProgress(progress, resolveChannelUpdate(name))

	items, err := e.provider.GetChannelItems(ctx, channelKey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channel listing: %w", err)
	}
	e.sendProgress(progress, fetchListingUpdate(len(items)))

	metrics := &ListingMetrics{}
	fallback := models.Attrs{"channelId": channel.PrimaryKey()}

	for i, item := range items {
		e.sendProgress(progress, importItemUpdate(i+1, len(items), item.ItemKind))

		kind, err := models.ParseKind(item.ItemKind)
		if err != nil || (kind != models.KindVideo && kind != models.KindPlaylist) {
			e.recordError(models.Kind(item.ItemKind), "", "import_listing", "unexpected item kind in listing", item.Attrs, nil)
			metrics.Failed++
			continue
		}

		entity := e.importListingItem(ctx, kind, item.Attrs, fallback)
		if entity == nil {
			metrics.Failed++
			continue
		}
		metrics.Found++

		if playlist, ok := entity.(*models.Playlist); ok {
			e.linkPlaylistItems(ctx, playlist, item.Attrs)
		}
	}

	e.sendProgress(progress, listingDoneUpdate(metrics))
	e.logger.Info("listing import complete", "channel", name, "found", metrics.Found, "failed", metrics.Failed)
	return metrics, nil
}

// importListingItem runs one listing entry through lookup-or-import,
// containing every per-item failure. The resolved channel rides along as a
// fallback so items missing an inline channelId do not trigger a refetch.
func (e *Engine) importListingItem(ctx context.Context, kind models.Kind, raw, fallback models.Attrs) models.Entity {
	key := models.ParseEntityArgs(kind, raw).String(kind.PrimaryKeyField())
	if key == "" {
		e.recordError(kind, "", "import_listing", "listing item has no primary key", raw, nil)
		return nil
	}

	existing, err := e.store.GetByKey(kind, key)
	if err == nil {
		return existing
	}
	if !errors.Is(err, shared.ErrNotFound) {
		e.recordError(kind, key, "import_listing", err.Error(), raw, nil)
		return nil
	}

	entity, err := e.importAttrs(ctx, kind, raw, fallback)
	if err != nil {
		e.recordError(kind, key, "import_listing", err.Error(), raw, nil)
		return nil
	}
	return entity
}

// linkPlaylistItems ensures a playlist payload's video entries exist and
// records their membership. Non-video entries are skipped.
func (e *Engine) linkPlaylistItems(ctx context.Context, playlist *models.Playlist, raw models.Attrs) {
	entries, ok := raw["items"].([]any)
	if !ok {
		return
	}

	position := 0
	for _, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		item := models.Attrs(m)

		// Listing payloads tag entries like "youtube#video".
		entryKind := item.String("kind")
		if idx := strings.Index(entryKind, "#"); idx >= 0 {
			entryKind = entryKind[idx+1:]
		}
		if entryKind != "" && entryKind != "video" {
			continue
		}

		videoID := item.String("videoId")
		if videoID == "" {
			videoID = item.String("id")
		}
		if videoID == "" {
			continue
		}

		video, err := e.Ensure(ctx, "video", videoID)
		if err != nil || video == nil {
			continue
		}

		if err := e.store.Playlists.AddVideo(playlist.ID, video.PrimaryKey(), position); err != nil {
			e.logger.Warn("failed to link playlist member", "playlist", playlist.ID, "video", video.PrimaryKey(), "error", err)
		}
		position++
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// recordError appends a structured failure to the durable error log. A log
// write failure is itself only logged; it must never fail the import path.
func (e *Engine) recordError(kind models.Kind, key, operation, message string, input, response models.Attrs) {
	rec := repositories.ErrorRecord{
		ItemType:         string(kind),
		ItemID:           key,
		Operation:        operation,
		Message:          message,
		InputParameters:  input,
		ProviderResponse: response,
	}

	e.logger.Warn("sync failure", "kind", kind, "key", key, "operation", operation, "message", message)

	if err := e.errlog.Record(rec); err != nil {
		e.logger.Error("failed to persist error log", "error", err)
	}
}

// entityFromAttrs builds the typed entity for a kind from clean attributes.
func entityFromAttrs(kind models.Kind, attrs models.Attrs) models.Entity {
	switch kind {
	case models.KindChannel:
		return models.ChannelFromAttrs(attrs)
	case models.KindPlaylist:
		return models.PlaylistFromAttrs(attrs)
	case models.KindTag:
		return models.TagFromAttrs(attrs)
	case models.KindVideo:
		return models.VideoFromAttrs(attrs)
	}
	return nil
}

// Package repositories implements persistence for all catalog entities.
//
// Each SQLite repository exposes the store contract the sync engine relies on:
// Create (duplicate primary keys surface as [shared.ErrConflict]), GetByKey
// (misses surface as [shared.ErrNotFound]) and criteria-filtered List queries.
// Primary keys are the remote identifiers, so there is no sequence or UUID
// generation here; a tag row is keyed by the tag text itself.
//
// Key Implementations:
//   - [ChannelRepository] : channel rows, the root of the ownership graph
//   - [PlaylistRepository] : playlist rows plus playlist_videos membership
//   - [TagRepository] : tag rows keyed by text
//   - [VideoRepository] : video rows plus video_tags junction rows
//   - [ErrorLog] : append-only JSON file recording failed imports
//
// Update methods are contract placeholders returning [shared.ErrNotImplemented];
// the engine creates entities exactly once and never mutates them.
package repositories

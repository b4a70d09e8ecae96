// Package tasks implements the entity synchronization engine.
//
// The core abstraction is [Engine], which guarantees each remote item is
// imported at most once: every lookup goes to the local store first, remote
// fetches happen only on a miss, and an item's dependencies (a video's owning
// channel and tags, a playlist's channel) are resolved and persisted before
// the item itself.
//
// Failure containment is the engine's second job. During a bulk listing
// import, a single bad item never aborts the traversal: provider misses,
// missing channel references and persistence failures are appended to the
// durable [repositories.ErrorLog] and the item yields no entity. Only
// caller-contract violations (unknown kinds, lookups with no resolvable
// primary key) propagate as errors.
//
// Operations emit progress updates via channels for non-blocking status
// reporting to CLI/UI layers.
package tasks

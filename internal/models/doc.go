// Package models defines the domain entities of the catalog and the pure
// attribute pipeline the sync engine runs before persistence.
//
// The package contains three categories of types:
//
// 1. The kind registry: [Kind] plus a per-kind descriptor table mapping each
// kind to its primary-key field and accepted plural alias. [ParseKind] is the
// only place plural forms are folded to singular.
//
// 2. Entities: [Channel], [Playlist], [Tag] and [Video], all implementing the
// [Entity] interface. Primary keys are the remote identifiers; a tag's key is
// its text.
//
// 3. The attribute pipeline: [Attrs] payloads from the provider are projected
// onto the canonical per-kind field set by [ParseEntityArgs] (idempotent, no
// I/O) and checked by [ValidateEntity] after dependency resolution. Both are
// pure functions; everything stateful lives in repositories and tasks.
package models

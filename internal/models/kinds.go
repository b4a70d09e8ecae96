package models

import (
	"fmt"

	"github.com/desertthunder/ytdb/internal/shared"
)

// Kind identifies one of the four entity categories in the catalog.
type Kind string

const (
	KindChannel  Kind = "channel"
	KindPlaylist Kind = "playlist"
	KindTag      Kind = "tag"
	KindVideo    Kind = "video"
)

// kindSpec describes the storage conventions for a single kind.
type kindSpec struct {
	primaryKeyField string
	plural          string
}

// kindSpecs is the explicit per-kind descriptor table. Tag rows are keyed by
// the tag text itself, everything else by the remote id.
var kindSpecs = map[Kind]kindSpec{
	KindChannel:  {primaryKeyField: "id", plural: "channels"},
	KindPlaylist: {primaryKeyField: "id", plural: "playlists"},
	KindTag:      {primaryKeyField: "string", plural: "tags"},
	KindVideo:    {primaryKeyField: "id", plural: "videos"},
}

// ParseKind normalizes a kind name, accepting the plural alias of each kind.
// Unknown names return [shared.ErrUnknownKind].
func ParseKind(name string) (Kind, error) {
	for kind, spec := range kindSpecs {
		if name == string(kind) || name == spec.plural {
			return kind, nil
		}
	}
	return "", fmt.Errorf("%w: %q", shared.ErrUnknownKind, name)
}

// Plural returns the kind's plural alias, which is also the provider's
// collection path segment.
func (k Kind) Plural() string {
	return kindSpecs[k].plural
}

// PrimaryKeyField returns the attribute name holding the kind's primary key.
func (k Kind) PrimaryKeyField() string {
	return kindSpecs[k].primaryKeyField
}

// Valid reports whether the kind is one of the registered catalog kinds.
func (k Kind) Valid() bool {
	_, ok := kindSpecs[k]
	return ok
}

func (k Kind) String() string {
	return string(k)
}

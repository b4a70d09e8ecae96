package models

// canonicalFields lists the attribute names each kind carries after
// normalization. Anything outside this set is dropped.
var canonicalFields = map[Kind][]string{
	KindChannel:  {"id", "name", "description", "url", "publishedAt"},
	KindPlaylist: {"id", "title", "description", "channelId", "itemCount"},
	KindTag:      {"string"},
	KindVideo:    {"id", "title", "description", "channelId", "publishedAt", "duration", "tags"},
}

// fieldAliases folds provider field names onto the canonical names, per kind.
// Canonical names always win over their aliases when both are present.
var fieldAliases = map[Kind]map[string]string{
	KindChannel: {
		"channelId": "id",
		"title":     "name",
	},
	KindPlaylist: {
		"playlistId": "id",
		"name":       "title",
		"count":      "itemCount",
	},
	KindTag: {
		"tag":  "string",
		"name": "string",
	},
	KindVideo: {
		"videoId":         "id",
		"name":            "title",
		"durationSeconds": "duration",
	},
}

// ParseEntityArgs projects a raw provider payload (or caller-supplied
// attributes) onto the canonical attribute set for the kind.
//
// The function is pure and idempotent: it performs no I/O, never mutates its
// input, and normalizing already-normalized attributes returns an equal
// mapping. Missing fields stay missing; presence checks belong to
// [ValidateEntity].
func ParseEntityArgs(kind Kind, raw Attrs) Attrs {
	if raw == nil {
		return Attrs{}
	}

	clean := make(Attrs, len(canonicalFields[kind]))

	for alias, canonical := range fieldAliases[kind] {
		if raw.Has(alias) {
			clean[canonical] = raw[alias]
		}
	}

	// Canonical names take precedence over aliases.
	for _, field := range canonicalFields[kind] {
		if raw.Has(field) {
			clean[field] = raw[field]
		}
	}

	return clean
}

// ValidateEntity checks the required fields for a kind after normalization and
// dependency substitution. A false result is a soft rejection: the item is not
// imported and no error is recorded.
func ValidateEntity(kind Kind, attrs Attrs) bool {
	switch kind {
	case KindChannel:
		return attrs.String("id") != "" && attrs.String("name") != ""
	case KindPlaylist:
		return attrs.String("id") != "" && attrs.String("title") != "" && attrs.String("channelId") != ""
	case KindTag:
		return attrs.String("string") != ""
	case KindVideo:
		return attrs.String("id") != "" && attrs.String("title") != "" && attrs.String("channelId") != ""
	}
	return false
}

// ChannelFromAttrs builds a Channel from normalized attributes.
func ChannelFromAttrs(attrs Attrs) *Channel {
	return &Channel{
		ID:          attrs.String("id"),
		Name:        attrs.String("name"),
		Description: attrs.String("description"),
		URL:         attrs.String("url"),
		PublishedAt: attrs.Time("publishedAt"),
	}
}

// PlaylistFromAttrs builds a Playlist from normalized attributes.
func PlaylistFromAttrs(attrs Attrs) *Playlist {
	return &Playlist{
		ID:          attrs.String("id"),
		ChannelID:   attrs.String("channelId"),
		Title:       attrs.String("title"),
		Description: attrs.String("description"),
		ItemCount:   attrs.Int("itemCount"),
	}
}

// TagFromAttrs builds a Tag from normalized attributes.
func TagFromAttrs(attrs Attrs) *Tag {
	return &Tag{String: attrs.String("string")}
}

// VideoFromAttrs builds a Video from normalized attributes.
func VideoFromAttrs(attrs Attrs) *Video {
	return &Video{
		ID:          attrs.String("id"),
		ChannelID:   attrs.String("channelId"),
		Title:       attrs.String("title"),
		Description: attrs.String("description"),
		PublishedAt: attrs.Time("publishedAt"),
		Duration:    attrs.Int("duration"),
		Tags:        attrs.StringSlice("tags"),
	}
}

package models

import "time"

// Attrs is a raw or normalized attribute mapping for a single catalog item,
// as returned by the provider or supplied by a caller.
type Attrs map[string]any

// String returns the named attribute as a string, or "" when absent or not a string.
func (a Attrs) String(key string) string {
	if v, ok := a[key].(string); ok {
		return v
	}
	return ""
}

// Int returns the named attribute as an int, tolerating the float64 values
// encoding/json produces for numbers.
func (a Attrs) Int(key string) int {
	switch v := a[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// Time returns the named attribute as a [time.Time], parsing RFC 3339 strings.
func (a Attrs) Time(key string) time.Time {
	switch v := a[key].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

// StringSlice returns the named attribute as a slice of strings. JSON decoding
// yields []any, so both representations are accepted.
func (a Attrs) StringSlice(key string) []string {
	switch v := a[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Has reports whether the named attribute is present.
func (a Attrs) Has(key string) bool {
	_, ok := a[key]
	return ok
}

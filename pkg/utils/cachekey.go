package utils

import (
	"sort"
	"strings"
)

// CacheKey builds a deterministic cache key from a prefix and normalized
// query parameters. Parts are sorted by name and empty values are excluded,
// so equivalent requests collide on the same key.
func CacheKey(prefix string, parts map[string]string) string {
	names := make([]string, 0, len(parts))
	for name, value := range parts {
		if value == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(prefix)
	for _, name := range names {
		b.WriteString(":")
		b.WriteString(name)
		b.WriteString("=")
		b.WriteString(parts[name])
	}
	return b.String()
}

// Package tags derives the tag vocabulary from loaded bookmarks and applies
// the active tag filter.
package tags

import (
	"sort"
	"strings"

	"github.com/killallgit/fieldguide-api/internal/models"
)

// Normalize returns the stored form of a tag: trimmed and lowercased
func Normalize(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// NormalizeAll normalizes tags, dropping empties and duplicates while
// keeping first-seen order
func NormalizeAll(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, t := range in {
		n := Normalize(t)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// AllTags returns the sorted distinct tags used across bookmarks
func AllTags(bookmarks []models.Bookmark) []string {
	seen := make(map[string]struct{})
	for i := range bookmarks {
		for _, t := range bookmarks[i].Tags {
			seen[t.Tag] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

package tags

import (
	"sort"

	"github.com/killallgit/fieldguide-api/internal/models"
)

// Filter is the set of tags currently restricting the visible bookmarks.
// The zero value is an empty filter. Filter is not safe for concurrent use;
// the owning workspace serializes access.
type Filter struct {
	active map[string]struct{}
}

// Toggle adds tag when absent and removes it when present.
// It reports whether the tag is active afterwards.
func (f *Filter) Toggle(tag string) bool {
	if f.Has(tag) {
		f.Remove(tag)
		return false
	}
	f.Add(tag)
	return true
}

// Add activates tag. Adding an active tag is a no-op.
func (f *Filter) Add(tag string) {
	if tag == "" {
		return
	}
	if f.active == nil {
		f.active = make(map[string]struct{})
	}
	f.active[tag] = struct{}{}
}

// Remove deactivates tag. Removing an inactive tag is a no-op.
func (f *Filter) Remove(tag string) {
	delete(f.active, tag)
}

// Clear deactivates every tag
func (f *Filter) Clear() {
	f.active = nil
}

// Has reports whether tag is active
func (f *Filter) Has(tag string) bool {
	_, ok := f.active[tag]
	return ok
}

// Empty reports whether no tag is active
func (f *Filter) Empty() bool {
	return len(f.active) == 0
}

// Active returns the active tags in sorted order
func (f *Filter) Active() []string {
	out := make([]string, 0, len(f.active))
	for t := range f.active {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Apply returns the bookmarks visible under the filter. With no active tags
// the input slice is returned as is; otherwise a bookmark is kept when any
// of its tags is active, in input order.
func (f *Filter) Apply(bookmarks []models.Bookmark) []models.Bookmark {
	if f.Empty() {
		return bookmarks
	}
	out := make([]models.Bookmark, 0, len(bookmarks))
	for i := range bookmarks {
		if bookmarks[i].HasAnyTag(f.active) {
			out = append(out, bookmarks[i])
		}
	}
	return out
}

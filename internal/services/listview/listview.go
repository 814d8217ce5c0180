// Package listview renders the bookmark list and computes drag-and-drop
// reorders.
package listview

import (
	"github.com/killallgit/fieldguide-api/internal/models"
	"github.com/killallgit/fieldguide-api/internal/services/tags"
)

// Chip is a clickable tag on a list row
type Chip struct {
	Tag    string `json:"tag"`
	Active bool   `json:"active"`
}

// Row is one visible bookmark
type Row struct {
	ID           string  `json:"id"`
	Position     int     `json:"position"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
	Placeholder  string  `json:"placeholder"`
	BorderColor  string  `json:"border_color"`
	Weight       int     `json:"weight"`
	Chips        []Chip  `json:"chips"`
	Selected     bool    `json:"selected"`
}

// Rows builds one row per bookmark in the given order, marking chips that
// are in the active filter
func Rows(bookmarks []models.Bookmark, filter *tags.Filter, selectedID string) []Row {
	rows := make([]Row, 0, len(bookmarks))
	for i := range bookmarks {
		b := &bookmarks[i]
		chips := make([]Chip, 0, len(b.Tags))
		for _, t := range b.Tags {
			chips = append(chips, Chip{Tag: t.Tag, Active: filter != nil && filter.Has(t.Tag)})
		}
		rows = append(rows, Row{
			ID:           b.ID,
			Position:     i,
			Name:         b.Name,
			Description:  b.Description,
			ThumbnailURL: b.ThumbnailURL,
			Placeholder:  models.Initial(b.Name),
			BorderColor:  b.DisplayColor(),
			Weight:       b.Weight,
			Chips:        chips,
			Selected:     b.ID == selectedID,
		})
	}
	return rows
}

// Drop moves the bookmark activeID to the position of overID and returns
// the new full order. ok is false when the drop is a no-op: dropped on
// itself, outside any row, or either id is unknown.
func Drop(bookmarks []models.Bookmark, activeID, overID string) (reordered []models.Bookmark, ok bool) {
	if overID == "" || activeID == overID {
		return nil, false
	}
	from, to := indexOf(bookmarks, activeID), indexOf(bookmarks, overID)
	if from < 0 || to < 0 {
		return nil, false
	}
	return Move(bookmarks, from, to), true
}

// Move returns a copy of items with the element at from moved to to
func Move[T any](items []T, from, to int) []T {
	out := make([]T, 0, len(items))
	out = append(out, items[:from]...)
	out = append(out, items[from+1:]...)

	moved := items[from]
	out = append(out[:to], append([]T{moved}, out[to:]...)...)
	return out
}

func indexOf(bookmarks []models.Bookmark, id string) int {
	for i := range bookmarks {
		if bookmarks[i].ID == id {
			return i
		}
	}
	return -1
}

package listview

import (
	"testing"

	"github.com/killallgit/fieldguide-api/internal/models"
	"github.com/killallgit/fieldguide-api/internal/services/tags"
	"github.com/stretchr/testify/assert"
)

func sample() []models.Bookmark {
	return []models.Bookmark{
		{ID: "a", Name: "Lighthouse", Weight: 0, Tags: []models.BookmarkTag{{Tag: "coast"}, {Tag: "view"}}},
		{ID: "b", Name: "Tide Pools", Weight: 10, Tags: []models.BookmarkTag{{Tag: "coast"}}},
		{ID: "c", Name: "", Weight: 20},
	}
}

func ids(bookmarks []models.Bookmark) []string {
	out := make([]string, len(bookmarks))
	for i, b := range bookmarks {
		out[i] = b.ID
	}
	return out
}

func TestRows(t *testing.T) {
	var filter tags.Filter
	filter.Add("view")

	rows := Rows(sample(), &filter, "b")
	if assert.Len(t, rows, 3) {
		assert.Equal(t, "a", rows[0].ID)
		assert.Equal(t, 0, rows[0].Position)
		assert.Equal(t, "L", rows[0].Placeholder)
		assert.Equal(t, "#000000", rows[0].BorderColor)
		assert.Equal(t, []Chip{{Tag: "coast"}, {Tag: "view", Active: true}}, rows[0].Chips)

		assert.True(t, rows[1].Selected)
		assert.Equal(t, 2, rows[2].Position)
		assert.Equal(t, "?", rows[2].Placeholder)
		assert.Empty(t, rows[2].Chips)
	}

	assert.Empty(t, Rows(nil, nil, ""))
}

func TestDrop(t *testing.T) {
	tests := []struct {
		name     string
		activeID string
		overID   string
		want     []string
		wantOK   bool
	}{
		{name: "move up", activeID: "b", overID: "a", want: []string{"b", "a", "c"}, wantOK: true},
		{name: "move down", activeID: "a", overID: "c", want: []string{"b", "c", "a"}, wantOK: true},
		{name: "last to first", activeID: "c", overID: "a", want: []string{"c", "a", "b"}, wantOK: true},
		{name: "dropped on itself", activeID: "a", overID: "a"},
		{name: "outside any row", activeID: "a", overID: ""},
		{name: "unknown target", activeID: "a", overID: "zzz"},
		{name: "unknown item", activeID: "zzz", overID: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := sample()
			got, ok := Drop(input, tt.activeID, tt.overID)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.want, ids(got))
			assert.Equal(t, []string{"a", "b", "c"}, ids(input))
		})
	}
}

func TestMove(t *testing.T) {
	assert.Equal(t, []int{2, 1, 3}, Move([]int{1, 2, 3}, 1, 0))
	assert.Equal(t, []int{2, 3, 1}, Move([]int{1, 2, 3}, 0, 2))
	assert.Equal(t, []int{1, 2, 3}, Move([]int{1, 2, 3}, 1, 1))
}

package mapview

import "github.com/killallgit/fieldguide-api/internal/models"

// PinBorderColor is the border of every bookmark pin
const PinBorderColor = "#333333"

// Marker is one bookmark pin on the map
type Marker struct {
	BookmarkID  string `json:"bookmark_id"`
	Name        string `json:"name"`
	Position    LatLng `json:"position"`
	Background  string `json:"background"`
	GlyphColor  string `json:"glyph_color"`
	BorderColor string `json:"border_color"`
	Selected    bool   `json:"selected"`
}

// Markers returns one marker per bookmark that has both coordinates, in
// list order
func Markers(bookmarks []models.Bookmark, selectedID string) []Marker {
	markers := make([]Marker, 0, len(bookmarks))
	for i := range bookmarks {
		b := &bookmarks[i]
		if !b.HasLocation() {
			continue
		}
		color := b.DisplayColor()
		markers = append(markers, Marker{
			BookmarkID:  b.ID,
			Name:        b.Name,
			Position:    LatLng{Lat: *b.Latitude, Lng: *b.Longitude},
			Background:  color,
			GlyphColor:  color,
			BorderColor: PinBorderColor,
			Selected:    b.ID == selectedID,
		})
	}
	return markers
}

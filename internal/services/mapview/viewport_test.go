package mapview

import (
	"testing"

	"github.com/killallgit/fieldguide-api/internal/models"
	"github.com/killallgit/fieldguide-api/pkg/config"
	"github.com/stretchr/testify/assert"
)

func ptr(f float64) *float64 { return &f }

func TestDefaultsFromConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MapConfig
		want Defaults
	}{
		{
			name: "empty config",
			want: DefaultDefaults(),
		},
		{
			name: "overrides",
			cfg:  config.MapConfig{CenterLat: 48.1, CenterLng: -123.4, Zoom: 9, MapTypeID: "terrain", MapID: "abc", SelectedZoom: 15},
			want: Defaults{Center: LatLng{48.1, -123.4}, Zoom: 9, MapTypeID: "terrain", MapID: "abc", SelectedZoom: 15},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultsFromConfig(tt.cfg))
		})
	}
}

func TestViewport_SelectAndRestore(t *testing.T) {
	v := NewViewport(DefaultDefaults())

	v.Idle(LatLng{Lat: 48.0, Lng: -123.0}, 9)
	v.Idle(LatLng{Lat: 48.2, Lng: -123.1}, 10)

	b := &models.Bookmark{ID: "b1", Latitude: ptr(47.6), Longitude: ptr(-122.3)}
	v.SelectBookmark(b)

	state := v.State()
	assert.Equal(t, SelectionBookmark, state.Selection)
	assert.Equal(t, "b1", state.BookmarkID)
	assert.Equal(t, LatLng{Lat: 47.6, Lng: -122.3}, state.Center)
	assert.Equal(t, 14, state.Zoom)

	// idle after the programmatic zoom is not the "previous view"
	v.Idle(LatLng{Lat: 47.6, Lng: -122.3}, 14)

	v.ClearSelection()
	state = v.State()
	assert.Equal(t, SelectionNone, state.Selection)
	assert.Empty(t, state.BookmarkID)
	assert.Equal(t, LatLng{Lat: 48.2, Lng: -123.1}, state.Center)
	assert.Equal(t, 10, state.Zoom)
}

func TestViewport_RestoreWithoutIdleUsesDefaults(t *testing.T) {
	v := NewViewport(DefaultDefaults())
	v.SelectBookmark(&models.Bookmark{ID: "b1", Latitude: ptr(46), Longitude: ptr(-121)})
	v.ClearSelection()

	assert.Equal(t, LatLng{Lat: 47.5, Lng: -122.0}, v.State().Center)
	assert.Equal(t, 7, v.State().Zoom)
}

func TestViewport_SelectBookmarkWithoutCoordinates(t *testing.T) {
	v := NewViewport(DefaultDefaults())
	v.Idle(LatLng{Lat: 48, Lng: -123}, 8)

	v.SelectBookmark(&models.Bookmark{ID: "b2"})
	state := v.State()
	assert.Equal(t, SelectionBookmark, state.Selection)
	assert.Equal(t, LatLng{Lat: 48, Lng: -123}, state.Center)
	assert.Equal(t, 8, state.Zoom)
}

func TestViewport_SelectionsAreExclusive(t *testing.T) {
	v := NewViewport(DefaultDefaults())

	v.SelectBookmark(&models.Bookmark{ID: "b1", Latitude: ptr(47), Longitude: ptr(-122)})
	v.SelectPOI("poi-1")
	state := v.State()
	assert.Equal(t, SelectionPOI, state.Selection)
	assert.Empty(t, state.BookmarkID)
	assert.Equal(t, "poi-1", state.PlaceID)
	assert.Empty(t, v.SelectedBookmark())

	v.SelectBookmark(&models.Bookmark{ID: "b2"})
	state = v.State()
	assert.Equal(t, SelectionBookmark, state.Selection)
	assert.Empty(t, state.PlaceID)
}

func TestMarkers(t *testing.T) {
	bookmarks := []models.Bookmark{
		{ID: "a", Name: "Lighthouse", Color: "#ff0000", Latitude: ptr(48.4), Longitude: ptr(-124.7)},
		{ID: "b", Name: "No coords", Color: "#00ff00"},
		{ID: "c", Name: "Half coords", Latitude: ptr(47)},
		{ID: "d", Name: "No color", Latitude: ptr(47.1), Longitude: ptr(-122.1)},
	}

	markers := Markers(bookmarks, "d")
	if assert.Len(t, markers, 2) {
		assert.Equal(t, Marker{
			BookmarkID:  "a",
			Name:        "Lighthouse",
			Position:    LatLng{Lat: 48.4, Lng: -124.7},
			Background:  "#ff0000",
			GlyphColor:  "#ff0000",
			BorderColor: "#333333",
		}, markers[0])
		assert.Equal(t, "#000000", markers[1].Background)
		assert.Equal(t, "#000000", markers[1].GlyphColor)
		assert.True(t, markers[1].Selected)
	}

	assert.Empty(t, Markers(nil, ""))
}

func TestViewport_IdleRecordsWhilePOISelected(t *testing.T) {
	v := NewViewport(DefaultDefaults())
	v.SelectPOI("poi-1")
	v.Idle(LatLng{Lat: 49, Lng: -123}, 11)

	v.SelectBookmark(&models.Bookmark{ID: "b1", Latitude: ptr(47), Longitude: ptr(-122)})
	v.ClearSelection()
	assert.Equal(t, LatLng{Lat: 49, Lng: -123}, v.State().Center)
	assert.Equal(t, 11, v.State().Zoom)
}

func TestViewport_POIAfterBookmarkRestoresView(t *testing.T) {
	v := NewViewport(DefaultDefaults())
	v.Idle(LatLng{Lat: 48.5, Lng: -123.5}, 9)

	v.SelectBookmark(&models.Bookmark{ID: "b1", Latitude: ptr(47), Longitude: ptr(-122)})
	v.SelectPOI("poi-1")
	assert.Equal(t, LatLng{Lat: 48.5, Lng: -123.5}, v.State().Center)
	assert.Equal(t, 9, v.State().Zoom)

	// the map settles where it was restored to, so the recorded view is unchanged
	v.Idle(v.State().Center, v.State().Zoom)
	v.ClearSelection()

	v.SelectBookmark(&models.Bookmark{ID: "b1", Latitude: ptr(47), Longitude: ptr(-122)})
	v.ClearSelection()
	assert.Equal(t, LatLng{Lat: 48.5, Lng: -123.5}, v.State().Center)
	assert.Equal(t, 9, v.State().Zoom)
}

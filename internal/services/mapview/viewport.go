// Package mapview holds the map surface's state: the viewport and its
// selection, bookmark markers, and the point-of-interest popup.
package mapview

import (
	"github.com/killallgit/fieldguide-api/internal/models"
	"github.com/killallgit/fieldguide-api/pkg/config"
)

// LatLng is a map coordinate
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Defaults is the initial map render configuration
type Defaults struct {
	Center       LatLng `json:"center"`
	Zoom         int    `json:"zoom"`
	MapTypeID    string `json:"map_type_id"`
	MapID        string `json:"map_id,omitempty"`
	SelectedZoom int    `json:"selected_zoom"`
}

// DefaultDefaults matches a fresh config with no map section
func DefaultDefaults() Defaults {
	return Defaults{
		Center:       LatLng{Lat: 47.5, Lng: -122.0},
		Zoom:         7,
		MapTypeID:    "hybrid",
		SelectedZoom: 14,
	}
}

// DefaultsFromConfig builds Defaults, falling back per field
func DefaultsFromConfig(cfg config.MapConfig) Defaults {
	d := DefaultDefaults()
	if cfg.CenterLat != 0 || cfg.CenterLng != 0 {
		d.Center = LatLng{Lat: cfg.CenterLat, Lng: cfg.CenterLng}
	}
	if cfg.Zoom > 0 {
		d.Zoom = cfg.Zoom
	}
	if cfg.MapTypeID != "" {
		d.MapTypeID = cfg.MapTypeID
	}
	if cfg.SelectedZoom > 0 {
		d.SelectedZoom = cfg.SelectedZoom
	}
	d.MapID = cfg.MapID
	return d
}

// Selection is what the map currently has selected
type Selection string

const (
	SelectionNone     Selection = "none"
	SelectionBookmark Selection = "bookmark"
	SelectionPOI      Selection = "poi"
)

// ViewportState is a snapshot of the viewport for rendering
type ViewportState struct {
	Center     LatLng    `json:"center"`
	Zoom       int       `json:"zoom"`
	Selection  Selection `json:"selection"`
	BookmarkID string    `json:"bookmark_id,omitempty"`
	PlaceID    string    `json:"place_id,omitempty"`
}

// Viewport tracks the camera and the selection. It is not safe for
// concurrent use; the owning workspace serializes access.
type Viewport struct {
	defaults Defaults

	center LatLng
	zoom   int

	// last view recorded on idle while no bookmark was selected
	prevCenter LatLng
	prevZoom   int

	selection  Selection
	bookmarkID string
	placeID    string
}

// NewViewport starts at the default center and zoom with no selection
func NewViewport(d Defaults) *Viewport {
	return &Viewport{
		defaults:   d,
		center:     d.Center,
		zoom:       d.Zoom,
		prevCenter: d.Center,
		prevZoom:   d.Zoom,
		selection:  SelectionNone,
	}
}

// Idle records where the user left the map. The previous view is only
// captured while no bookmark is selected so programmatic zooms never count.
func (v *Viewport) Idle(center LatLng, zoom int) {
	v.center = center
	v.zoom = zoom
	if v.selection != SelectionBookmark {
		v.prevCenter = center
		v.prevZoom = zoom
	}
}

// SelectBookmark selects b and, when it has coordinates, pans to it at
// the selected zoom level
func (v *Viewport) SelectBookmark(b *models.Bookmark) {
	v.selection = SelectionBookmark
	v.bookmarkID = b.ID
	v.placeID = ""
	if b.HasLocation() {
		v.center = LatLng{Lat: *b.Latitude, Lng: *b.Longitude}
		v.zoom = v.defaults.SelectedZoom
	}
}

// SelectPOI marks a point of interest as selected. Dropping a bookmark
// selection restores the last recorded view, as ClearSelection does.
func (v *Viewport) SelectPOI(placeID string) {
	if v.selection == SelectionBookmark {
		v.center = v.prevCenter
		v.zoom = v.prevZoom
	}
	v.selection = SelectionPOI
	v.bookmarkID = ""
	v.placeID = placeID
}

// ClearSelection deselects and restores the last recorded view
func (v *Viewport) ClearSelection() {
	wasBookmark := v.selection == SelectionBookmark
	v.selection = SelectionNone
	v.bookmarkID = ""
	v.placeID = ""
	if wasBookmark {
		v.center = v.prevCenter
		v.zoom = v.prevZoom
	}
}

// SelectedBookmark returns the selected bookmark id, or ""
func (v *Viewport) SelectedBookmark() string {
	return v.bookmarkID
}

// State returns a snapshot of the viewport
func (v *Viewport) State() ViewportState {
	return ViewportState{
		Center:     v.center,
		Zoom:       v.zoom,
		Selection:  v.selection,
		BookmarkID: v.bookmarkID,
		PlaceID:    v.placeID,
	}
}

package workspace

import (
	"time"

	"github.com/killallgit/fieldguide-api/internal/models"
	"github.com/killallgit/fieldguide-api/internal/services/detail"
	"github.com/killallgit/fieldguide-api/internal/services/editor"
	"github.com/killallgit/fieldguide-api/internal/services/listview"
	"github.com/killallgit/fieldguide-api/internal/services/mapview"
	"github.com/killallgit/fieldguide-api/internal/services/tags"
)

// BookmarksState is the loaded list and its filter
type BookmarksState struct {
	Bookmarks  []models.Bookmark `json:"bookmarks"`
	Visible    []models.Bookmark `json:"visible"`
	AllTags    []string          `json:"all_tags"`
	ActiveTags []string          `json:"active_tags"`
	Loading    bool              `json:"loading"`
	LoadError  string            `json:"load_error,omitempty"`
	LoadedAt   *time.Time        `json:"loaded_at,omitempty"`
}

// ListState is the rendered list surface
type ListState struct {
	Rows       []listview.Row `json:"rows"`
	ActiveTags []string       `json:"active_tags"`
	Empty      bool           `json:"empty"`
}

// MapState is the rendered map surface
type MapState struct {
	Defaults mapview.Defaults      `json:"defaults"`
	Viewport mapview.ViewportState `json:"viewport"`
	Markers  []mapview.Marker      `json:"markers"`
	Popup    mapview.PopupState    `json:"popup"`
}

// EditorState is the open form with its derived display values
type EditorState struct {
	Form         *editor.Form `json:"form"`
	ColorPreview string       `json:"color_preview"`
	ActivePreset string       `json:"active_preset,omitempty"`
	Presets      []string     `json:"presets"`
	Placeholder  string       `json:"placeholder"`
	Suggestions  []string     `json:"suggestions"`
	CanSubmit    bool         `json:"can_submit"`
}

// DetailState is the open detail card, if any
type DetailState struct {
	Open bool         `json:"open"`
	Card *detail.Card `json:"card,omitempty"`
}

// Bookmarks returns a snapshot of the loaded list
func (w *Workspace) Bookmarks() BookmarksState {
	w.mu.RLock()
	defer w.mu.RUnlock()

	state := BookmarksState{
		Bookmarks:  cloneBookmarks(w.bookmarks),
		Visible:    cloneBookmarks(w.visible()),
		AllTags:    tags.AllTags(w.bookmarks),
		ActiveTags: w.filter.Active(),
		Loading:    w.loading,
	}
	if w.loadErr != nil {
		state.LoadError = w.loadErr.Error()
	}
	if !w.loadedAt.IsZero() {
		at := w.loadedAt
		state.LoadedAt = &at
	}
	return state
}

// List renders the visible rows
func (w *Workspace) List() ListState {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return ListState{
		Rows:       listview.Rows(w.visible(), &w.filter, w.viewport.SelectedBookmark()),
		ActiveTags: w.filter.Active(),
		Empty:      len(w.bookmarks) == 0,
	}
}

// Map renders the map surface. Markers follow the tag filter.
func (w *Workspace) Map() MapState {
	w.mu.RLock()
	defer w.mu.RUnlock()

	viewport := w.viewport.State()
	popup := w.popup.State()
	// a popup dropped after a failed fetch leaves nothing selected
	if viewport.Selection == mapview.SelectionPOI && popup.Status == mapview.PopupClosed {
		viewport.Selection = mapview.SelectionNone
		viewport.PlaceID = ""
	}
	return MapState{
		Defaults: w.deps.MapDefaults,
		Viewport: viewport,
		Markers:  mapview.Markers(w.visible(), w.viewport.SelectedBookmark()),
		Popup:    popup,
	}
}

// Editor renders the open form, or nil when none is open
func (w *Workspace) Editor() *EditorState {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.editorState()
}

// editorState requires mu to be held
func (w *Workspace) editorState() *EditorState {
	if w.form == nil {
		return nil
	}
	return &EditorState{
		Form:         w.form.Clone(),
		ColorPreview: w.form.ColorPreview(),
		ActivePreset: w.form.ActivePreset(),
		Presets:      editor.PresetColors,
		Placeholder:  w.form.Placeholder(),
		Suggestions:  w.form.Suggestions(tags.AllTags(w.bookmarks)),
		CanSubmit:    w.form.CanSubmit(),
	}
}

// Detail renders the detail view
func (w *Workspace) Detail() DetailState {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.detailState()
}

// detailState requires mu to be held
func (w *Workspace) detailState() DetailState {
	if !w.detail.IsOpen() {
		return DetailState{}
	}
	b := w.find(w.detail.BookmarkID())
	if b == nil {
		return DetailState{}
	}
	clone := cloneBookmark(*b)
	card := w.detail.Render(&clone)
	return DetailState{Open: true, Card: &card}
}

func cloneBookmarks(in []models.Bookmark) []models.Bookmark {
	out := make([]models.Bookmark, len(in))
	for i := range in {
		out[i] = cloneBookmark(in[i])
	}
	return out
}

func cloneBookmark(b models.Bookmark) models.Bookmark {
	b.Tags = append([]models.BookmarkTag{}, b.Tags...)
	return b
}

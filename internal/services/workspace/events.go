package workspace

import (
	"context"

	"github.com/killallgit/fieldguide-api/internal/models"
	"github.com/killallgit/fieldguide-api/internal/services/bookmarks"
	"github.com/killallgit/fieldguide-api/internal/services/editor"
	"github.com/killallgit/fieldguide-api/internal/services/mapview"
	"github.com/killallgit/fieldguide-api/internal/services/places"
)

// ToggleTag flips tag in the active filter and reports whether it is now active
func (w *Workspace) ToggleTag(tag string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.filter.Toggle(tag)
}

// ClearTags empties the active filter
func (w *Workspace) ClearTags() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.filter.Clear()
}

// MapIdle records the camera position after the user moved the map
func (w *Workspace) MapIdle(center mapview.LatLng, zoom int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.viewport.Idle(center, zoom)
}

// SelectBookmark handles a click on a list row or a marker: the map zooms
// to the bookmark, any POI popup closes and the detail view opens
func (w *Workspace) SelectBookmark(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	b := w.find(id)
	if b == nil {
		return bookmarks.ErrBookmarkNotFound
	}
	w.popup.Close()
	w.viewport.SelectBookmark(b)
	w.detail.Open(id)
	return nil
}

// ClearSelection deselects, closing the detail view and restoring the
// previous map view
func (w *Workspace) ClearSelection() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.detail.Close()
	w.viewport.ClearSelection()
}

// ClickPOI opens the popup for a point of interest and starts fetching its
// details. Any bookmark selection and its detail view are dropped.
func (w *Workspace) ClickPOI(ctx context.Context, placeID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.detail.Close()
	w.viewport.SelectPOI(placeID)
	w.popup.Click(ctx, placeID)
}

// ClosePOI dismisses the popup
func (w *Workspace) ClosePOI() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.popup.Close()
	if w.viewport.State().Selection == mapview.SelectionPOI {
		w.viewport.ClearSelection()
	}
}

// AddPOIToGuide opens the add form pre-filled from the resolved popup
func (w *Workspace) AddPOIToGuide() (*EditorState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	place, err := w.popup.AddToGuide()
	if err != nil {
		return nil, err
	}
	w.viewport.ClearSelection()
	w.form = editor.NewAdd(place)
	return w.editorState(), nil
}

// WaitPOI blocks until pending POI fetches have finished
func (w *Workspace) WaitPOI() {
	w.popup.Wait()
}

// Suggest returns search box predictions
func (w *Workspace) Suggest(ctx context.Context, query string) ([]places.Suggestion, error) {
	return w.search.Suggest(ctx, query)
}

// SelectPlace resolves a search suggestion and opens the add form with it
func (w *Workspace) SelectPlace(ctx context.Context, placeID string) (*EditorState, error) {
	place, err := w.search.Select(ctx, placeID)
	if err != nil {
		return nil, err
	}
	return w.OpenAdd(place), nil
}

// OpenAdd opens an add form, pre-filled when place is not nil
func (w *Workspace) OpenAdd(place *models.PlaceSelection) *EditorState {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form = editor.NewAdd(place)
	return w.editorState()
}

// OpenEdit opens the edit form for a loaded bookmark
func (w *Workspace) OpenEdit(id string) (*EditorState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.openEdit(id)
}

// openEdit requires mu to be held
func (w *Workspace) openEdit(id string) (*EditorState, error) {
	b := w.find(id)
	if b == nil {
		return nil, bookmarks.ErrBookmarkNotFound
	}
	w.form = editor.NewEdit(b)
	return w.editorState(), nil
}

// EditForm applies fn to the open form
func (w *Workspace) EditForm(fn func(f *editor.Form)) (*EditorState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.form == nil {
		return nil, ErrNoForm
	}
	fn(w.form)
	return w.editorState(), nil
}

// CancelForm closes the form without saving
func (w *Workspace) CancelForm() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form = nil
}

// SubmitForm saves the open form through Create or Update. The form closes
// once the bookmark row is saved, even if its tags were not.
func (w *Workspace) SubmitForm(ctx context.Context) (*bookmarks.WriteResult, error) {
	w.ops.Lock()
	defer w.ops.Unlock()

	w.mu.Lock()
	form := w.form
	if form == nil {
		w.mu.Unlock()
		return nil, ErrNoForm
	}
	values, err := form.Begin()
	mode, id := form.Mode, form.BookmarkID
	w.mu.Unlock()
	if err != nil {
		return nil, err
	}

	var result *bookmarks.WriteResult
	if mode == editor.ModeEdit {
		result, err = w.update(ctx, id, values)
	} else {
		result, err = w.create(ctx, values)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	form.Finish()
	if err != nil {
		return nil, err
	}
	if w.form == form {
		w.form = nil
	}
	return result, nil
}

// OpenDetail expands a bookmark; same as selecting it
func (w *Workspace) OpenDetail(id string) (DetailState, error) {
	if err := w.SelectBookmark(id); err != nil {
		return DetailState{}, err
	}
	return w.Detail(), nil
}

// CloseDetail collapses the detail view and clears the map selection
func (w *Workspace) CloseDetail() {
	w.ClearSelection()
}

// RequestDelete shows the delete confirmation
func (w *Workspace) RequestDelete() (DetailState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.detail.RequestDelete(); err != nil {
		return DetailState{}, err
	}
	return w.detailState(), nil
}

// CancelDelete hides the delete confirmation
func (w *Workspace) CancelDelete() DetailState {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.detail.CancelDelete()
	return w.detailState()
}

// ConfirmDelete deletes the open bookmark after RequestDelete
func (w *Workspace) ConfirmDelete(ctx context.Context) error {
	w.ops.Lock()
	defer w.ops.Unlock()

	w.mu.Lock()
	id, err := w.detail.ConfirmDelete()
	w.mu.Unlock()
	if err != nil {
		return err
	}
	return w.delete(ctx, id)
}

// EditFromDetail opens the editor for the bookmark in the detail view
func (w *Workspace) EditFromDetail() (*EditorState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	id, err := w.detail.Editing()
	if err != nil {
		return nil, err
	}
	return w.openEdit(id)
}

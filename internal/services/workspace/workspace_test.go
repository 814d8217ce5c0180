package workspace

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/killallgit/fieldguide-api/internal/database"
	"github.com/killallgit/fieldguide-api/internal/models"
	"github.com/killallgit/fieldguide-api/internal/services/bookmarks"
	"github.com/killallgit/fieldguide-api/internal/services/detail"
	"github.com/killallgit/fieldguide-api/internal/services/editor"
	"github.com/killallgit/fieldguide-api/internal/services/mapview"
	"github.com/killallgit/fieldguide-api/internal/services/places"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyRepository wraps the gorm repository with switchable failures
type flakyRepository struct {
	bookmarks.Repository
	failList       atomic.Bool
	failInsertTags atomic.Bool
}

func (r *flakyRepository) ListBookmarks(ctx context.Context, userID string) ([]models.Bookmark, error) {
	if r.failList.Load() {
		return nil, errors.New("network down")
	}
	return r.Repository.ListBookmarks(ctx, userID)
}

func (r *flakyRepository) InsertTags(ctx context.Context, tags []models.BookmarkTag) error {
	if r.failInsertTags.Load() {
		return errors.New("tag insert rejected")
	}
	return r.Repository.InsertTags(ctx, tags)
}

type stubPlaces struct {
	places map[string]*models.PlaceSelection
}

func (s *stubPlaces) Resolve(ctx context.Context, placeID string) (*models.PlaceSelection, error) {
	return s.ResolveInSession(ctx, placeID, "")
}

func (s *stubPlaces) ResolveInSession(_ context.Context, placeID, _ string) (*models.PlaceSelection, error) {
	if p, ok := s.places[placeID]; ok {
		return p, nil
	}
	return nil, places.ErrPlaceNotFound
}

func (s *stubPlaces) Autocomplete(_ context.Context, input, _ string, _ places.Bounds) ([]places.Suggestion, error) {
	var out []places.Suggestion
	for id, p := range s.places {
		if p.Name == input {
			out = append(out, places.Suggestion{PlaceID: id, Text: p.Name})
		}
	}
	return out, nil
}

type fixture struct {
	manager *Manager
	repo    *flakyRepository
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Initialize("", false)
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })

	repo := &flakyRepository{Repository: bookmarks.NewRepository(db.DB)}
	stub := &stubPlaces{places: map[string]*models.PlaceSelection{
		"p-lh": {PlaceID: "p-lh", Name: "Lighthouse", Address: "4902 Beacon Ln", Summary: "Historic light station", Lat: 48.39, Lng: -124.73},
		"p-tp": {PlaceID: "p-tp", Name: "Tide Pools", Address: "1 Beach Rd", Lat: 47.6, Lng: -122.4},
	}}

	return &fixture{
		repo: repo,
		manager: NewManager(Dependencies{
			Bookmarks:   bookmarks.NewService(repo),
			Details:     stub,
			Completer:   stub,
			Resolver:    stub,
			MapDefaults: mapview.DefaultDefaults(),
		}),
	}
}

func names(list []models.Bookmark) []string {
	out := make([]string, len(list))
	for i, b := range list {
		out[i] = b.Name
	}
	return out
}

func addBookmark(t *testing.T, w *Workspace, name string, tags ...string) string {
	t.Helper()
	lat, lng := 47.0, -122.0
	result, err := w.Create(context.Background(), models.BookmarkForm{Name: name, Latitude: &lat, Longitude: &lng, Tags: tags})
	require.NoError(t, err)
	return result.Bookmark.ID
}

func TestManager_ForAndDrop(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	w := f.manager.For(ctx, "u1")
	assert.Same(t, w, f.manager.For(ctx, "u1"))
	assert.NotSame(t, w, f.manager.For(ctx, "u2"))
	assert.Equal(t, 2, f.manager.Len())

	state := w.Bookmarks()
	assert.Empty(t, state.Bookmarks)
	assert.NotNil(t, state.LoadedAt)

	f.manager.Drop("u1")
	assert.Equal(t, 1, f.manager.Len())
	assert.NotSame(t, w, f.manager.For(ctx, "u1"))
}

func TestManager_Sweep(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	stale := f.manager.For(ctx, "stale")
	f.manager.For(ctx, "fresh")
	stale.lastUsed.Store(time.Now().Add(-3 * time.Hour).UnixNano())

	assert.Equal(t, 1, f.manager.Sweep(time.Now(), 2*time.Hour))
	assert.Equal(t, 1, f.manager.Len())
	assert.NotSame(t, stale, f.manager.For(ctx, "stale"))

	assert.Equal(t, 0, f.manager.Sweep(time.Now(), 2*time.Hour))
}

func TestWorkspace_LighthouseScenario(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	w := f.manager.For(ctx, "u1")

	_, err := w.EditForm(func(*editor.Form) {})
	assert.ErrorIs(t, err, ErrNoForm)

	w.OpenAdd(nil)
	_, err = w.EditForm(func(form *editor.Form) { form.Name = "Lighthouse" })
	require.NoError(t, err)
	_, err = w.SubmitForm(ctx)
	require.NoError(t, err)
	assert.Nil(t, w.Editor())

	rows := w.List().Rows
	require.Len(t, rows, 1)
	assert.Equal(t, "Lighthouse", rows[0].Name)
	assert.Equal(t, 0, rows[0].Position)

	w.OpenAdd(nil)
	_, err = w.EditForm(func(form *editor.Form) { form.Name = "Tide Pools" })
	require.NoError(t, err)
	_, err = w.SubmitForm(ctx)
	require.NoError(t, err)

	list := w.Bookmarks().Bookmarks
	assert.Equal(t, []string{"Lighthouse", "Tide Pools"}, names(list))

	moved, err := w.Drop(ctx, list[1].ID, list[0].ID)
	require.NoError(t, err)
	assert.True(t, moved)

	list = w.Bookmarks().Bookmarks
	assert.Equal(t, []string{"Tide Pools", "Lighthouse"}, names(list))
	assert.Equal(t, 0, list[0].Weight)
	assert.Equal(t, 10, list[1].Weight)

	moved, err = w.Drop(ctx, list[0].ID, list[0].ID)
	require.NoError(t, err)
	assert.False(t, moved)
}

func TestWorkspace_ReloadFailureKeepsPreviousList(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	w := f.manager.For(ctx, "u1")
	addBookmark(t, w, "Lighthouse")

	f.repo.failList.Store(true)
	err := w.Reload(ctx)
	assert.Error(t, err)

	state := w.Bookmarks()
	assert.Equal(t, []string{"Lighthouse"}, names(state.Bookmarks))
	assert.Equal(t, "network down", state.LoadError)
	assert.False(t, state.Loading)

	f.repo.failList.Store(false)
	require.NoError(t, w.Reload(ctx))
	assert.Empty(t, w.Bookmarks().LoadError)
}

func TestWorkspace_FirstLoadFailureIsRecorded(t *testing.T) {
	f := setup(t)
	f.repo.failList.Store(true)

	w := f.manager.For(context.Background(), "u1")
	state := w.Bookmarks()
	assert.Empty(t, state.Bookmarks)
	assert.Equal(t, "network down", state.LoadError)
}

func TestWorkspace_TagFilterDrivesListAndMap(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	w := f.manager.For(ctx, "u1")
	addBookmark(t, w, "Lighthouse", "coast")
	addBookmark(t, w, "Cabin", "woods")
	addBookmark(t, w, "Tide Pools", "coast", "kids")

	assert.Equal(t, []string{"coast", "kids", "woods"}, w.Bookmarks().AllTags)

	assert.True(t, w.ToggleTag("coast"))
	state := w.Bookmarks()
	assert.Equal(t, []string{"Lighthouse", "Tide Pools"}, names(state.Visible))
	assert.Len(t, state.Bookmarks, 3)
	assert.Len(t, w.Map().Markers, 2)

	rows := w.List().Rows
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Chips[0].Active)

	assert.False(t, w.ToggleTag("coast"))
	assert.Len(t, w.List().Rows, 3)

	w.ToggleTag("woods")
	w.ToggleTag("kids")
	assert.Equal(t, []string{"Cabin", "Tide Pools"}, names(w.Bookmarks().Visible))
	w.ClearTags()
	assert.Empty(t, w.Bookmarks().ActiveTags)
}

func TestWorkspace_SelectionEvents(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	w := f.manager.For(ctx, "u1")
	id := addBookmark(t, w, "Lighthouse")

	w.MapIdle(mapview.LatLng{Lat: 48.5, Lng: -123.5}, 9)

	require.NoError(t, w.SelectBookmark(id))
	m := w.Map()
	assert.Equal(t, mapview.SelectionBookmark, m.Viewport.Selection)
	assert.Equal(t, 14, m.Viewport.Zoom)
	assert.True(t, m.Markers[0].Selected)
	assert.True(t, w.Detail().Open)
	assert.True(t, w.List().Rows[0].Selected)

	// a POI click drops the bookmark selection and its detail view
	w.ClickPOI(ctx, "p-lh")
	w.WaitPOI()
	assert.False(t, w.Detail().Open)
	m = w.Map()
	assert.Equal(t, mapview.SelectionPOI, m.Viewport.Selection)
	assert.Equal(t, mapview.PopupResolved, m.Popup.Status)

	// and a bookmark click closes the popup
	require.NoError(t, w.SelectBookmark(id))
	assert.Equal(t, mapview.PopupClosed, w.Map().Popup.Status)

	w.CloseDetail()
	m = w.Map()
	assert.False(t, w.Detail().Open)
	assert.Equal(t, mapview.SelectionNone, m.Viewport.Selection)
	assert.Equal(t, mapview.LatLng{Lat: 48.5, Lng: -123.5}, m.Viewport.Center)
	assert.Equal(t, 9, m.Viewport.Zoom)

	assert.ErrorIs(t, w.SelectBookmark("missing"), bookmarks.ErrBookmarkNotFound)
}

func TestWorkspace_POIClickDoesNotRecordZoomedView(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	w := f.manager.For(ctx, "u1")
	id := addBookmark(t, w, "Lighthouse")

	w.MapIdle(mapview.LatLng{Lat: 48.5, Lng: -123.5}, 9)
	require.NoError(t, w.SelectBookmark(id))

	w.ClickPOI(ctx, "p-lh")
	w.WaitPOI()
	w.MapIdle(w.Map().Viewport.Center, w.Map().Viewport.Zoom)
	w.ClosePOI()

	require.NoError(t, w.SelectBookmark(id))
	w.CloseDetail()

	vp := w.Map().Viewport
	assert.Equal(t, mapview.SelectionNone, vp.Selection)
	assert.Equal(t, mapview.LatLng{Lat: 48.5, Lng: -123.5}, vp.Center)
	assert.Equal(t, 9, vp.Zoom)
}

func TestWorkspace_POIFailureClearsSelection(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	w := f.manager.For(ctx, "u1")

	w.ClickPOI(ctx, "unknown-place")
	w.WaitPOI()

	m := w.Map()
	assert.Equal(t, mapview.PopupClosed, m.Popup.Status)
	assert.Equal(t, mapview.SelectionNone, m.Viewport.Selection)
}

func TestWorkspace_AddPOIToGuide(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	w := f.manager.For(ctx, "u1")

	_, err := w.AddPOIToGuide()
	assert.ErrorIs(t, err, mapview.ErrPopupNotResolved)

	w.ClickPOI(ctx, "p-lh")
	w.WaitPOI()

	state, err := w.AddPOIToGuide()
	require.NoError(t, err)
	assert.Equal(t, editor.ModeAdd, state.Form.Mode)
	assert.Equal(t, "Lighthouse", state.Form.Name)
	assert.Equal(t, "Historic light station", state.Form.Description)
	assert.Equal(t, 48.39, *state.Form.Latitude)
	assert.Equal(t, mapview.PopupClosed, w.Map().Popup.Status)

	w.ClosePOI()
	assert.NotNil(t, w.Editor())
}

func TestWorkspace_SearchSelectOpensAddForm(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	w := f.manager.For(ctx, "u1")

	suggestions, err := w.Suggest(ctx, "Tide Pools")
	require.NoError(t, err)
	require.Len(t, suggestions, 1)

	state, err := w.SelectPlace(ctx, suggestions[0].PlaceID)
	require.NoError(t, err)
	assert.Equal(t, "Tide Pools", state.Form.Name)
	assert.Equal(t, "1 Beach Rd", state.Form.Description)

	_, err = w.SelectPlace(ctx, "nope")
	assert.ErrorIs(t, err, places.ErrPlaceNotFound)
}

func TestWorkspace_EditFromDetailReplacesTags(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	w := f.manager.For(ctx, "u1")
	id := addBookmark(t, w, "Trailhead", "hike", "dog-friendly")
	addBookmark(t, w, "Beach", "sand")

	_, err := w.EditFromDetail()
	assert.ErrorIs(t, err, detail.ErrNotOpen)

	_, err = w.OpenDetail(id)
	require.NoError(t, err)
	state, err := w.EditFromDetail()
	require.NoError(t, err)
	assert.Equal(t, editor.ModeEdit, state.Form.Mode)
	assert.ElementsMatch(t, []string{"hike", "dog-friendly"}, state.Form.Tags)
	assert.Equal(t, []string{"sand"}, state.Suggestions)

	_, err = w.EditForm(func(form *editor.Form) { form.RemoveTag("dog-friendly") })
	require.NoError(t, err)
	result, err := w.SubmitForm(ctx)
	require.NoError(t, err)
	assert.True(t, result.TagsSaved)

	card := w.Detail().Card
	require.NotNil(t, card)
	assert.Equal(t, []string{"hike"}, card.Tags)
}

func TestWorkspace_PartialWrite(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	w := f.manager.For(ctx, "u1")

	f.repo.failInsertTags.Store(true)
	w.OpenAdd(nil)
	_, err := w.EditForm(func(form *editor.Form) {
		form.Name = "Cabin"
		form.TypeTagInput("woods,")
	})
	require.NoError(t, err)

	result, err := w.SubmitForm(ctx)
	require.NoError(t, err)
	assert.True(t, result.Partial())
	assert.Nil(t, w.Editor())

	list := w.Bookmarks().Bookmarks
	require.Len(t, list, 1)
	assert.Empty(t, list[0].Tags)
}

func TestWorkspace_SubmitFailureKeepsForm(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	w := f.manager.For(ctx, "u1")

	w.OpenAdd(nil)
	_, err := w.SubmitForm(ctx)
	assert.ErrorIs(t, err, editor.ErrSubmitBlocked)

	_, err = w.OpenEdit("missing")
	assert.ErrorIs(t, err, bookmarks.ErrBookmarkNotFound)

	id := addBookmark(t, w, "Lighthouse")
	_, err = w.OpenEdit(id)
	require.NoError(t, err)
	require.NoError(t, w.Delete(ctx, id))

	_, err = w.SubmitForm(ctx)
	assert.ErrorIs(t, err, bookmarks.ErrBookmarkNotFound)
	state := w.Editor()
	require.NotNil(t, state)
	assert.False(t, state.Form.Saving)

	w.CancelForm()
	assert.Nil(t, w.Editor())
	_, err = w.SubmitForm(ctx)
	assert.ErrorIs(t, err, ErrNoForm)
}

func TestWorkspace_TwoStepDelete(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	w := f.manager.For(ctx, "u1")
	id := addBookmark(t, w, "Lighthouse", "coast")

	_, err := w.OpenDetail(id)
	require.NoError(t, err)

	assert.ErrorIs(t, w.ConfirmDelete(ctx), detail.ErrDeleteNotRequested)

	state, err := w.RequestDelete()
	require.NoError(t, err)
	assert.True(t, state.Card.Confirming)
	assert.False(t, w.CancelDelete().Card.Confirming)

	_, err = w.RequestDelete()
	require.NoError(t, err)
	require.NoError(t, w.ConfirmDelete(ctx))

	assert.False(t, w.Detail().Open)
	assert.Empty(t, w.Bookmarks().Bookmarks)
	assert.Equal(t, mapview.SelectionNone, w.Map().Viewport.Selection)
}

func TestWorkspace_ReorderByIDs(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	w := f.manager.For(ctx, "u1")
	a := addBookmark(t, w, "A")
	b := addBookmark(t, w, "B")
	c := addBookmark(t, w, "C")

	require.NoError(t, w.Reorder(ctx, []string{c, a, b}))
	list := w.Bookmarks().Bookmarks
	assert.Equal(t, []string{"C", "A", "B"}, names(list))
	assert.Equal(t, []int{0, 10, 20}, []int{list[0].Weight, list[1].Weight, list[2].Weight})

	assert.ErrorIs(t, w.Reorder(ctx, []string{a, "missing"}), bookmarks.ErrBookmarkNotFound)
}

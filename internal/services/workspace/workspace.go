package workspace

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/killallgit/fieldguide-api/internal/models"
	"github.com/killallgit/fieldguide-api/internal/services/bookmarks"
	"github.com/killallgit/fieldguide-api/internal/services/detail"
	"github.com/killallgit/fieldguide-api/internal/services/editor"
	"github.com/killallgit/fieldguide-api/internal/services/listview"
	"github.com/killallgit/fieldguide-api/internal/services/mapview"
	"github.com/killallgit/fieldguide-api/internal/services/search"
	"github.com/killallgit/fieldguide-api/internal/services/tags"
	"github.com/rs/zerolog"
)

// ErrNoForm is returned by editor actions when no form is open
var ErrNoForm = errors.New("no bookmark form is open")

// Workspace is one user's session state. Remote calls are serialized by
// ops; mu guards the state itself and is never held across a remote call,
// so snapshots stay available while a request is outstanding.
type Workspace struct {
	userID string
	deps   Dependencies
	logger zerolog.Logger

	ops      sync.Mutex
	lastUsed atomic.Int64

	mu        sync.RWMutex
	loaded    bool
	bookmarks []models.Bookmark
	loading   bool
	loadErr   error
	loadedAt  time.Time
	filter    tags.Filter
	viewport  *mapview.Viewport
	form      *editor.Form
	detail    detail.View

	popup  *mapview.POIPopup
	search *search.Service
}

func newWorkspace(userID string, deps Dependencies, logger zerolog.Logger) *Workspace {
	return &Workspace{
		userID:    userID,
		deps:      deps,
		logger:    logger,
		bookmarks: []models.Bookmark{},
		viewport:  mapview.NewViewport(deps.MapDefaults),
		popup:     mapview.NewPOIPopup(deps.Details, logger),
		search:    search.NewService(deps.Completer, deps.Resolver, deps.SearchBias),
	}
}

// UserID returns the workspace owner
func (w *Workspace) UserID() string {
	return w.userID
}

func (w *Workspace) ensureLoaded(ctx context.Context) {
	w.ops.Lock()
	defer w.ops.Unlock()

	w.mu.RLock()
	loaded := w.loaded
	w.mu.RUnlock()
	if !loaded {
		_ = w.reload(ctx)
	}
}

// Reload replaces the bookmark list with a fresh read. On failure the
// previous list is kept and the error recorded.
func (w *Workspace) Reload(ctx context.Context) error {
	w.ops.Lock()
	defer w.ops.Unlock()
	return w.reload(ctx)
}

// reload requires ops to be held
func (w *Workspace) reload(ctx context.Context) error {
	w.mu.Lock()
	w.loading = true
	w.mu.Unlock()

	list, err := w.deps.Bookmarks.List(ctx, w.userID)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.loading = false
	w.loaded = true
	if err != nil {
		w.loadErr = err
		w.logger.Error().Err(err).Msg("Failed to load bookmarks, keeping previous list")
		return err
	}
	w.bookmarks = list
	w.loadErr = nil
	w.loadedAt = time.Now()

	// a selected bookmark that disappeared closes the detail view
	if id := w.detail.BookmarkID(); id != "" && w.find(id) == nil {
		w.detail.Close()
		w.viewport.ClearSelection()
	}
	return nil
}

// Create saves a new bookmark and reloads the list
func (w *Workspace) Create(ctx context.Context, form models.BookmarkForm) (*bookmarks.WriteResult, error) {
	w.ops.Lock()
	defer w.ops.Unlock()
	return w.create(ctx, form)
}

func (w *Workspace) create(ctx context.Context, form models.BookmarkForm) (*bookmarks.WriteResult, error) {
	result, err := w.deps.Bookmarks.Create(ctx, w.userID, form)
	if err != nil {
		return nil, err
	}
	_ = w.reload(ctx)
	return result, nil
}

// Update saves an edited bookmark and reloads the list
func (w *Workspace) Update(ctx context.Context, id string, form models.BookmarkForm) (*bookmarks.WriteResult, error) {
	w.ops.Lock()
	defer w.ops.Unlock()
	return w.update(ctx, id, form)
}

func (w *Workspace) update(ctx context.Context, id string, form models.BookmarkForm) (*bookmarks.WriteResult, error) {
	result, err := w.deps.Bookmarks.Update(ctx, w.userID, id, form)
	if err != nil {
		return nil, err
	}
	_ = w.reload(ctx)
	return result, nil
}

// Delete removes a bookmark, closing its detail view, and reloads the list
func (w *Workspace) Delete(ctx context.Context, id string) error {
	w.ops.Lock()
	defer w.ops.Unlock()
	return w.delete(ctx, id)
}

func (w *Workspace) delete(ctx context.Context, id string) error {
	if err := w.deps.Bookmarks.Delete(ctx, w.userID, id); err != nil {
		return err
	}

	w.mu.Lock()
	if w.detail.BookmarkID() == id {
		w.detail.Close()
		w.viewport.ClearSelection()
	}
	w.mu.Unlock()

	_ = w.reload(ctx)
	return nil
}

// Reorder persists ids as the new display order. Every id must name a
// loaded bookmark.
func (w *Workspace) Reorder(ctx context.Context, ids []string) error {
	w.ops.Lock()
	defer w.ops.Unlock()

	w.mu.RLock()
	ordered := make([]models.Bookmark, 0, len(ids))
	for _, id := range ids {
		b := w.find(id)
		if b == nil {
			w.mu.RUnlock()
			return bookmarks.ErrBookmarkNotFound
		}
		ordered = append(ordered, *b)
	}
	w.mu.RUnlock()

	return w.reorder(ctx, ordered)
}

// Drop applies a drag-and-drop on the visible list. moved is false when
// the drop was a no-op.
func (w *Workspace) Drop(ctx context.Context, activeID, overID string) (moved bool, err error) {
	w.ops.Lock()
	defer w.ops.Unlock()

	w.mu.RLock()
	reordered, ok := listview.Drop(w.visible(), activeID, overID)
	w.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return true, w.reorder(ctx, reordered)
}

// reorder reloads even after a partial failure so the list shows what was
// actually written
func (w *Workspace) reorder(ctx context.Context, ordered []models.Bookmark) error {
	err := w.deps.Bookmarks.Reorder(ctx, w.userID, ordered)
	_ = w.reload(ctx)
	return err
}

// find requires mu to be held
func (w *Workspace) find(id string) *models.Bookmark {
	for i := range w.bookmarks {
		if w.bookmarks[i].ID == id {
			return &w.bookmarks[i]
		}
	}
	return nil
}

// visible requires mu to be held
func (w *Workspace) visible() []models.Bookmark {
	return w.filter.Apply(w.bookmarks)
}

// Package workspace composes one user's field guide: the bookmark read
// replica, tag filter, map, search box, editor and detail view, and the
// events that pass between them.
package workspace

import (
	"context"
	"sync"
	"time"

	"github.com/killallgit/fieldguide-api/internal/services/bookmarks"
	"github.com/killallgit/fieldguide-api/internal/services/mapview"
	"github.com/killallgit/fieldguide-api/internal/services/places"
	"github.com/killallgit/fieldguide-api/internal/services/search"
	"github.com/killallgit/fieldguide-api/pkg/logging"
	"github.com/rs/zerolog"
)

// Dependencies are the services shared by every workspace
type Dependencies struct {
	Bookmarks   bookmarks.Service
	Details     mapview.DetailFetcher
	Completer   search.Autocompleter
	Resolver    search.PlaceResolver
	SearchBias  places.Bounds
	MapDefaults mapview.Defaults
}

// Manager hands out one workspace per signed-in user
type Manager struct {
	deps   Dependencies
	logger zerolog.Logger

	mu         sync.Mutex
	workspaces map[string]*Workspace
}

// NewManager creates an empty manager
func NewManager(deps Dependencies) *Manager {
	return &Manager{
		deps:       deps,
		logger:     logging.Component("workspace"),
		workspaces: make(map[string]*Workspace),
	}
}

// For returns the user's workspace, creating it and loading the bookmark
// list on first use. A failed first load is recorded on the workspace.
func (m *Manager) For(ctx context.Context, userID string) *Workspace {
	m.mu.Lock()
	w, ok := m.workspaces[userID]
	if !ok {
		w = newWorkspace(userID, m.deps, m.logger.With().Str("user_id", userID).Logger())
		m.workspaces[userID] = w
	}
	w.lastUsed.Store(time.Now().UnixNano())
	m.mu.Unlock()

	w.ensureLoaded(ctx)
	return w
}

// Drop discards the user's workspace, typically on sign-out
func (m *Manager) Drop(userID string) {
	m.mu.Lock()
	w, ok := m.workspaces[userID]
	delete(m.workspaces, userID)
	m.mu.Unlock()

	if ok {
		w.popup.Close()
	}
}

// Len returns the number of live workspaces
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.workspaces)
}

// Sweep drops workspaces not handed out by For within maxIdle of now and
// returns how many were dropped. A dropped user gets a fresh workspace,
// reloaded from the store, on their next request.
func (m *Manager) Sweep(now time.Time, maxIdle time.Duration) int {
	var idle []*Workspace

	m.mu.Lock()
	for userID, w := range m.workspaces {
		if now.Sub(time.Unix(0, w.lastUsed.Load())) > maxIdle {
			delete(m.workspaces, userID)
			idle = append(idle, w)
		}
	}
	m.mu.Unlock()

	for _, w := range idle {
		w.popup.Close()
	}
	if len(idle) > 0 {
		m.logger.Debug().Int("dropped", len(idle)).Msg("Dropped idle workspaces")
	}
	return len(idle)
}

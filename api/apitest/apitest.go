// Package apitest builds handler dependencies backed by an in-memory
// sqlite database and a canned places provider.
package apitest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/fieldguide-api/api/types"
	"github.com/killallgit/fieldguide-api/internal/database"
	"github.com/killallgit/fieldguide-api/internal/models"
	"github.com/killallgit/fieldguide-api/internal/services/auth"
	"github.com/killallgit/fieldguide-api/internal/services/bookmarks"
	"github.com/killallgit/fieldguide-api/internal/services/mapview"
	"github.com/killallgit/fieldguide-api/internal/services/places"
	"github.com/killallgit/fieldguide-api/internal/services/preferences"
	"github.com/killallgit/fieldguide-api/internal/services/workspace"
	"github.com/stretchr/testify/require"
)

// UserID owns everything created through Router
const UserID = "user-1"

// Places is a canned places provider keyed by place id
type Places struct {
	mu     sync.Mutex
	places map[string]*models.PlaceSelection
}

// NewPlaces returns a provider that knows the Lighthouse and Tide Pools
func NewPlaces() *Places {
	return &Places{places: map[string]*models.PlaceSelection{
		"p-lh": {PlaceID: "p-lh", Name: "Lighthouse", Address: "4902 Beacon Ln", Summary: "Historic light station", Lat: 48.39, Lng: -124.73, PhotoURL: "https://photos.example/lh.jpg"},
		"p-tp": {PlaceID: "p-tp", Name: "Tide Pools", Address: "1 Beach Rd", Lat: 47.6, Lng: -122.4},
	}}
}

// Resolve implements mapview.DetailFetcher
func (p *Places) Resolve(ctx context.Context, placeID string) (*models.PlaceSelection, error) {
	return p.ResolveInSession(ctx, placeID, "")
}

// ResolveInSession implements search.PlaceResolver
func (p *Places) ResolveInSession(_ context.Context, placeID, _ string) (*models.PlaceSelection, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if place, ok := p.places[placeID]; ok {
		clone := *place
		return &clone, nil
	}
	return nil, places.ErrPlaceNotFound
}

// Autocomplete matches names by case-insensitive prefix
func (p *Places) Autocomplete(_ context.Context, input, _ string, _ places.Bounds) ([]places.Suggestion, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, places.ErrEmptyQuery
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	out := []places.Suggestion{}
	for id, place := range p.places {
		if strings.HasPrefix(strings.ToLower(place.Name), strings.ToLower(input)) {
			out = append(out, places.Suggestion{PlaceID: id, Text: place.Name + ", " + place.Address, MainText: place.Name})
		}
	}
	return out, nil
}

// NewDependencies wires every handler dependency over a fresh database
func NewDependencies(t *testing.T) *types.Dependencies {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Initialize("", false)
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })

	validator, err := auth.NewValidator(auth.ValidatorOptions{DevAuthToken: "dev-token"})
	require.NoError(t, err)

	stub := NewPlaces()
	return &types.Dependencies{
		DB:        db,
		Validator: validator,
		Workspaces: workspace.NewManager(workspace.Dependencies{
			Bookmarks:   bookmarks.NewService(bookmarks.NewRepository(db.DB)),
			Details:     stub,
			Completer:   stub,
			Resolver:    stub,
			MapDefaults: mapview.DefaultDefaults(),
		}),
		Preferences: preferences.NewService(preferences.NewRepository(db.DB), preferences.DefaultVolume),
	}
}

// Authenticate stands in for the auth middleware, signing every request
// in as userID
func Authenticate(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Request = c.Request.WithContext(auth.WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

// Router returns an engine with an authenticated /api/v1 group handed to
// register
func Router(register func(v1 *gin.RouterGroup)) *gin.Engine {
	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.Use(Authenticate(UserID))
	register(v1)
	return router
}

// Do sends a JSON request through router
func Do(router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// Decode unmarshals a response body into T
func Decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// Workspace returns the workspace Router's requests operate on
func Workspace(deps *types.Dependencies) *workspace.Workspace {
	return deps.Workspaces.For(context.Background(), UserID)
}

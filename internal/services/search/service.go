// Package search backs the place search box: autocomplete suggestions
// biased to the configured region, and selection of one suggestion.
package search

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/killallgit/fieldguide-api/internal/models"
	"github.com/killallgit/fieldguide-api/internal/services/places"
)

// Autocompleter returns predictions for a query
type Autocompleter interface {
	Autocomplete(ctx context.Context, input, sessionToken string, bias places.Bounds) ([]places.Suggestion, error)
}

// PlaceResolver turns a suggestion's place id into a selection
type PlaceResolver interface {
	ResolveInSession(ctx context.Context, placeID, sessionToken string) (*models.PlaceSelection, error)
}

// Service is one user's search box. Suggest calls share a session token
// until Select closes the session.
type Service struct {
	completer Autocompleter
	resolver  PlaceResolver
	bias      places.Bounds

	mu      sync.Mutex
	session string
}

// NewService creates a search box biased to bias
func NewService(completer Autocompleter, resolver PlaceResolver, bias places.Bounds) *Service {
	return &Service{completer: completer, resolver: resolver, bias: bias}
}

// Suggest returns predictions for query. A blank query returns no
// suggestions without calling the provider.
func (s *Service) Suggest(ctx context.Context, query string) ([]places.Suggestion, error) {
	if strings.TrimSpace(query) == "" {
		return []places.Suggestion{}, nil
	}
	return s.completer.Autocomplete(ctx, query, s.sessionToken(), s.bias)
}

// Select resolves placeID into a PlaceSelection and ends the current session
func (s *Service) Select(ctx context.Context, placeID string) (*models.PlaceSelection, error) {
	if placeID == "" {
		return nil, places.ErrPlaceNotFound
	}

	s.mu.Lock()
	token := s.session
	s.session = ""
	s.mu.Unlock()

	return s.resolver.ResolveInSession(ctx, placeID, token)
}

func (s *Service) sessionToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == "" {
		s.session = uuid.NewString()
	}
	return s.session
}

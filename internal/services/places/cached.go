package places

import (
	"context"
	"time"

	"github.com/killallgit/fieldguide-api/internal/models"
	"github.com/killallgit/fieldguide-api/internal/services/cache"
)

// CachedResolver keeps resolved places for ttl so repeated POI clicks and
// search picks on the same place skip the details and photo calls.
type CachedResolver struct {
	*Resolver
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedResolver wraps r with c
func NewCachedResolver(r *Resolver, c cache.Cache, ttl time.Duration) *CachedResolver {
	return &CachedResolver{Resolver: r, cache: c, ttl: ttl}
}

func cacheKey(placeID string) string {
	return "place:" + placeID
}

// Resolve serves from the cache when it can
func (cr *CachedResolver) Resolve(ctx context.Context, placeID string) (*models.PlaceSelection, error) {
	var sel models.PlaceSelection
	if cache.GetJSON(ctx, cr.cache, cacheKey(placeID), &sel) {
		return &sel, nil
	}
	return cr.ResolveInSession(ctx, placeID, "")
}

// ResolveInSession always calls the API when a session token is given, so
// the autocomplete session is closed by a details request, then refreshes
// the cached copy.
func (cr *CachedResolver) ResolveInSession(ctx context.Context, placeID, sessionToken string) (*models.PlaceSelection, error) {
	if sessionToken == "" {
		var sel models.PlaceSelection
		if cache.GetJSON(ctx, cr.cache, cacheKey(placeID), &sel) {
			return &sel, nil
		}
	}

	sel, err := cr.Resolver.ResolveInSession(ctx, placeID, sessionToken)
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, cr.cache, cacheKey(placeID), sel, cr.ttl); err != nil {
		cr.logger.Warn().Err(err).Str("place_id", placeID).Msg("Could not cache place")
	}
	return sel, nil
}

package places

import (
	"context"
	"errors"

	"github.com/killallgit/fieldguide-api/internal/models"
	"github.com/killallgit/fieldguide-api/pkg/logging"
	"github.com/rs/zerolog"
)

// API is the subset of Client the resolver and search surface use
type API interface {
	Autocomplete(ctx context.Context, input, sessionToken string, bias Bounds) ([]Suggestion, error)
	GetPlace(ctx context.Context, placeID, sessionToken string) (*Place, error)
	PhotoURL(ctx context.Context, photoName string, maxHeight int) (string, error)
}

// Resolver turns a place id into the PlaceSelection that pre-fills the
// editor. Search results and map POI clicks both go through it.
type Resolver struct {
	api            API
	photoMaxHeight int
	logger         zerolog.Logger
}

// NewResolver creates a resolver; photoMaxHeight <= 0 means 400px
func NewResolver(api API, photoMaxHeight int) *Resolver {
	if photoMaxHeight <= 0 {
		photoMaxHeight = 400
	}
	return &Resolver{
		api:            api,
		photoMaxHeight: photoMaxHeight,
		logger:         logging.Component("places"),
	}
}

// Resolve fetches a place outside any autocomplete session
func (r *Resolver) Resolve(ctx context.Context, placeID string) (*models.PlaceSelection, error) {
	return r.ResolveInSession(ctx, placeID, "")
}

// ResolveInSession fetches a place, closing the given autocomplete session.
// A photo that cannot be resolved leaves PhotoURL empty.
func (r *Resolver) ResolveInSession(ctx context.Context, placeID, sessionToken string) (*models.PlaceSelection, error) {
	place, err := r.api.GetPlace(ctx, placeID, sessionToken)
	if err != nil {
		return nil, err
	}

	sel := &models.PlaceSelection{
		PlaceID: place.ID,
		Name:    place.DisplayName.Text,
		Address: place.FormattedAddress,
		Summary: place.EditorialSummary.Text,
	}
	if sel.PlaceID == "" {
		sel.PlaceID = placeID
	}
	if place.Location != nil {
		sel.Lat = place.Location.Latitude
		sel.Lng = place.Location.Longitude
	}

	if name := place.FirstPhoto(); name != "" {
		photoURL, err := r.api.PhotoURL(ctx, name, r.photoMaxHeight)
		switch {
		case err == nil:
			sel.PhotoURL = photoURL
		case errors.Is(err, context.Canceled):
			return nil, err
		default:
			r.logger.Warn().Err(err).Str("place_id", placeID).Msg("Could not resolve place photo")
		}
	}

	return sel, nil
}

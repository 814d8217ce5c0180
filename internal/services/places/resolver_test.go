package places

import (
	"context"
	"errors"
	"testing"

	"github.com/killallgit/fieldguide-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAPI is a mock implementation of API
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) Autocomplete(ctx context.Context, input, sessionToken string, bias Bounds) ([]Suggestion, error) {
	args := m.Called(ctx, input, sessionToken, bias)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Suggestion), args.Error(1)
}

func (m *MockAPI) GetPlace(ctx context.Context, placeID, sessionToken string) (*Place, error) {
	args := m.Called(ctx, placeID, sessionToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Place), args.Error(1)
}

func (m *MockAPI) PhotoURL(ctx context.Context, photoName string, maxHeight int) (string, error) {
	args := m.Called(ctx, photoName, maxHeight)
	return args.String(0), args.Error(1)
}

func lighthouse() *Place {
	return &Place{
		ID:               "p-lh",
		DisplayName:      localizedText{Text: "Lighthouse"},
		FormattedAddress: "4902 Beacon Ln",
		EditorialSummary: localizedText{Text: "Historic light station"},
		Location:         &latLng{Latitude: 48.39, Longitude: -124.73},
		Photos:           []photo{{Name: "places/p-lh/photos/1"}},
	}
}

func TestResolver_Resolve(t *testing.T) {
	api := new(MockAPI)
	api.On("GetPlace", mock.Anything, "p-lh", "").Return(lighthouse(), nil)
	api.On("PhotoURL", mock.Anything, "places/p-lh/photos/1", 400).Return("https://img/lh.jpg", nil)

	sel, err := NewResolver(api, 0).Resolve(context.Background(), "p-lh")
	require.NoError(t, err)
	assert.Equal(t, &models.PlaceSelection{
		PlaceID:  "p-lh",
		Name:     "Lighthouse",
		Address:  "4902 Beacon Ln",
		Summary:  "Historic light station",
		Lat:      48.39,
		Lng:      -124.73,
		PhotoURL: "https://img/lh.jpg",
	}, sel)
	api.AssertExpectations(t)
}

func TestResolver_ResolveInSession(t *testing.T) {
	api := new(MockAPI)
	place := lighthouse()
	place.Photos = nil
	api.On("GetPlace", mock.Anything, "p-lh", "sess-9").Return(place, nil)

	sel, err := NewResolver(api, 200).ResolveInSession(context.Background(), "p-lh", "sess-9")
	require.NoError(t, err)
	assert.Empty(t, sel.PhotoURL)
	api.AssertNotCalled(t, "PhotoURL", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolver_PhotoFailureLeavesURLEmpty(t *testing.T) {
	api := new(MockAPI)
	api.On("GetPlace", mock.Anything, "p-lh", "").Return(lighthouse(), nil)
	api.On("PhotoURL", mock.Anything, "places/p-lh/photos/1", 400).Return("", errors.New("boom"))

	sel, err := NewResolver(api, 400).Resolve(context.Background(), "p-lh")
	require.NoError(t, err)
	assert.Equal(t, "Lighthouse", sel.Name)
	assert.Empty(t, sel.PhotoURL)
}

func TestResolver_MissingFields(t *testing.T) {
	api := new(MockAPI)
	api.On("GetPlace", mock.Anything, "p-bare", "").Return(&Place{}, nil)

	sel, err := NewResolver(api, 400).Resolve(context.Background(), "p-bare")
	require.NoError(t, err)
	assert.Equal(t, "p-bare", sel.PlaceID)
	assert.Empty(t, sel.Name)
	assert.Zero(t, sel.Lat)
	assert.Zero(t, sel.Lng)
}

func TestResolver_DetailsError(t *testing.T) {
	api := new(MockAPI)
	api.On("GetPlace", mock.Anything, "p-x", "").Return(nil, &APIError{StatusCode: 404})

	sel, err := NewResolver(api, 400).Resolve(context.Background(), "p-x")
	assert.Nil(t, sel)
	assert.ErrorIs(t, err, ErrPlaceNotFound)
}

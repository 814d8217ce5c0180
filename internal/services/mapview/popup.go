package mapview

import (
	"context"
	"errors"
	"sync"

	"github.com/killallgit/fieldguide-api/internal/models"
	"github.com/rs/zerolog"
)

// ErrPopupNotResolved is returned by AddToGuide when no resolved place is showing
var ErrPopupNotResolved = errors.New("point of interest details are not loaded")

// DetailFetcher resolves a point of interest into a place selection
type DetailFetcher interface {
	Resolve(ctx context.Context, placeID string) (*models.PlaceSelection, error)
}

// PopupStatus is the popup's display state
type PopupStatus string

const (
	PopupClosed   PopupStatus = "closed"
	PopupLoading  PopupStatus = "loading"
	PopupResolved PopupStatus = "resolved"
)

// PopupState is a snapshot of the popup for rendering
type PopupState struct {
	Status  PopupStatus            `json:"status"`
	PlaceID string                 `json:"place_id,omitempty"`
	Place   *models.PlaceSelection `json:"place,omitempty"`
}

// POIPopup is the info window shown for a clicked point of interest.
// Every Click takes a new request token; a fetch that completes after its
// token was replaced is discarded.
type POIPopup struct {
	fetcher DetailFetcher
	logger  zerolog.Logger

	mu      sync.Mutex
	token   uint64
	placeID string
	status  PopupStatus
	place   *models.PlaceSelection

	// fetches not yet completed; idle is signalled when it drops to zero
	pending int
	idle    *sync.Cond
}

// NewPOIPopup creates a closed popup
func NewPOIPopup(fetcher DetailFetcher, logger zerolog.Logger) *POIPopup {
	p := &POIPopup{fetcher: fetcher, logger: logger, status: PopupClosed}
	p.idle = sync.NewCond(&p.mu)
	return p
}

// Click shows a loading popup for placeID and fetches its details in the
// background. ctx must outlive the request; it is not cancelled when a
// newer click supersedes this one.
func (p *POIPopup) Click(ctx context.Context, placeID string) {
	p.mu.Lock()
	p.token++
	token := p.token
	p.placeID = placeID
	p.status = PopupLoading
	p.place = nil
	p.pending++
	p.mu.Unlock()

	go func() {
		place, err := p.fetcher.Resolve(ctx, placeID)
		p.complete(token, placeID, place, err)
	}()
}

func (p *POIPopup) complete(token uint64, placeID string, place *models.PlaceSelection, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pending--
	if p.pending == 0 {
		p.idle.Broadcast()
	}

	if token != p.token {
		p.logger.Debug().Str("place_id", placeID).Msg("Discarding stale place details")
		return
	}
	if err != nil {
		p.logger.Error().Err(err).Str("place_id", placeID).Msg("Failed to fetch place details")
		p.reset()
		return
	}
	p.status = PopupResolved
	p.place = place
}

// Close hides the popup and invalidates any pending fetch
func (p *POIPopup) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token++
	p.reset()
}

// AddToGuide returns the resolved place and closes the popup
func (p *POIPopup) AddToGuide() (*models.PlaceSelection, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.status != PopupResolved || p.place == nil {
		return nil, ErrPopupNotResolved
	}
	place := p.place
	p.token++
	p.reset()
	return place, nil
}

// State returns a snapshot of the popup
func (p *POIPopup) State() PopupState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PopupState{Status: p.status, PlaceID: p.placeID, Place: p.place}
}

// Open reports whether the popup is showing
func (p *POIPopup) Open() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status != PopupClosed
}

// Wait blocks until every started fetch has completed. Clicks made while
// waiting extend the wait.
func (p *POIPopup) Wait() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.pending > 0 {
		p.idle.Wait()
	}
}

func (p *POIPopup) reset() {
	p.status = PopupClosed
	p.placeID = ""
	p.place = nil
}

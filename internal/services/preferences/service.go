// Package preferences stores the music player's settings per user.
package preferences

import (
	"context"

	"github.com/killallgit/fieldguide-api/internal/models"
)

// DefaultVolume is used when no volume was ever saved
const DefaultVolume = 0.5

// ServiceImpl implements the Service interface
type ServiceImpl struct {
	repository    Repository
	defaultVolume float64
}

// NewService creates a preferences service. A default volume outside
// [0,1] falls back to DefaultVolume.
func NewService(repository Repository, defaultVolume float64) Service {
	if defaultVolume < 0 || defaultVolume > 1 {
		defaultVolume = DefaultVolume
	}
	return &ServiceImpl{repository: repository, defaultVolume: defaultVolume}
}

// Get returns the user's preferences, or the defaults when none are stored
func (s *ServiceImpl) Get(ctx context.Context, userID string) (*models.Preference, error) {
	pref, err := s.repository.Find(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pref == nil {
		pref = &models.Preference{UserID: userID, Volume: s.defaultVolume}
	}
	return pref, nil
}

// SetMusicStopped records that the user stopped (true) or restarted (false)
// the music, which controls autoplay on the next visit
func (s *ServiceImpl) SetMusicStopped(ctx context.Context, userID string, stopped bool) (*models.Preference, error) {
	pref, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	pref.MusicStopped = stopped
	if err := s.repository.Save(ctx, pref); err != nil {
		return nil, err
	}
	return pref, nil
}

// SetVolume stores volume clamped to [0,1]
func (s *ServiceImpl) SetVolume(ctx context.Context, userID string, volume float64) (*models.Preference, error) {
	pref, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	pref.Volume = Clamp(volume)
	if err := s.repository.Save(ctx, pref); err != nil {
		return nil, err
	}
	return pref, nil
}

// Clamp limits a volume to [0,1]
func Clamp(volume float64) float64 {
	switch {
	case volume < 0:
		return 0
	case volume > 1:
		return 1
	}
	return volume
}

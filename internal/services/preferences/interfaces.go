package preferences

import (
	"context"

	"github.com/killallgit/fieldguide-api/internal/models"
)

// Repository defines data access for the preferences table
type Repository interface {
	Find(ctx context.Context, userID string) (*models.Preference, error)
	Save(ctx context.Context, pref *models.Preference) error
}

// Service defines operations on a user's UI preferences
type Service interface {
	Get(ctx context.Context, userID string) (*models.Preference, error)
	SetMusicStopped(ctx context.Context, userID string, stopped bool) (*models.Preference, error)
	SetVolume(ctx context.Context, userID string, volume float64) (*models.Preference, error)
}

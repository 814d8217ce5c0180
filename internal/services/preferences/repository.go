package preferences

import (
	"context"
	"errors"
	"fmt"

	"github.com/killallgit/fieldguide-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RepositoryImpl implements Repository over gorm
type RepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new preferences repository
func NewRepository(db *gorm.DB) Repository {
	return &RepositoryImpl{db: db}
}

// Find returns the stored row, or nil when the user has none yet
func (r *RepositoryImpl) Find(ctx context.Context, userID string) (*models.Preference, error) {
	var pref models.Preference
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding preferences: %w", err)
	}
	return &pref, nil
}

// Save upserts the row keyed by user id
func (r *RepositoryImpl) Save(ctx context.Context, pref *models.Preference) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"music_stopped", "volume", "updated_at"}),
	}).Create(pref).Error
	if err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}
	return nil
}

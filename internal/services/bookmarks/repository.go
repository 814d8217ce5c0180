package bookmarks

import (
	"context"
	"fmt"

	"github.com/killallgit/fieldguide-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RepositoryImpl implements Repository over a gorm database
type RepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new gorm-backed bookmark repository
func NewRepository(db *gorm.DB) Repository {
	return &RepositoryImpl{db: db}
}

// ListBookmarks returns the user's bookmarks in display order
func (r *RepositoryImpl) ListBookmarks(ctx context.Context, userID string) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("weight ASC").
		Order("created_at ASC").
		Find(&bookmarks).Error; err != nil {
		return nil, fmt.Errorf("listing bookmarks: %w", err)
	}
	return bookmarks, nil
}

// ListTags returns every tag row belonging to the given bookmarks
func (r *RepositoryImpl) ListTags(ctx context.Context, bookmarkIDs []string) ([]models.BookmarkTag, error) {
	if len(bookmarkIDs) == 0 {
		return nil, nil
	}
	var tags []models.BookmarkTag
	if err := r.db.WithContext(ctx).
		Where("bookmark_id IN ?", bookmarkIDs).
		Order("tag ASC").
		Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	return tags, nil
}

// InsertBookmark inserts one bookmark row; tags are written separately
func (r *RepositoryImpl) InsertBookmark(ctx context.Context, bookmark *models.Bookmark) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(bookmark).Error; err != nil {
		return fmt.Errorf("inserting bookmark: %w", err)
	}
	return nil
}

// UpdateBookmark replaces every editable field of the user's bookmark
func (r *RepositoryImpl) UpdateBookmark(ctx context.Context, userID string, bookmark *models.Bookmark) error {
	result := r.db.WithContext(ctx).
		Model(&models.Bookmark{}).
		Where("id = ? AND user_id = ?", bookmark.ID, userID).
		Updates(map[string]any{
			"name":          bookmark.Name,
			"description":   bookmark.Description,
			"latitude":      bookmark.Latitude,
			"longitude":     bookmark.Longitude,
			"color":         bookmark.Color,
			"thumbnail_url": bookmark.ThumbnailURL,
			"weight":        bookmark.Weight,
		})
	if result.Error != nil {
		return fmt.Errorf("updating bookmark: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBookmarkNotFound
	}
	return nil
}

// UpdateWeight sets only the sort weight of the user's bookmark
func (r *RepositoryImpl) UpdateWeight(ctx context.Context, userID, id string, weight int) error {
	result := r.db.WithContext(ctx).
		Model(&models.Bookmark{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("weight", weight)
	if result.Error != nil {
		return fmt.Errorf("updating weight: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBookmarkNotFound
	}
	return nil
}

// DeleteBookmark deletes the user's bookmark and its tag rows
func (r *RepositoryImpl) DeleteBookmark(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Bookmark{})
		if result.Error != nil {
			return fmt.Errorf("deleting bookmark: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrBookmarkNotFound
		}
		// Drivers without foreign key enforcement leave tag rows behind
		if err := tx.Where("bookmark_id = ?", id).Delete(&models.BookmarkTag{}).Error; err != nil {
			return fmt.Errorf("deleting tags: %w", err)
		}
		return nil
	})
}

// InsertTags inserts tag rows in one statement
func (r *RepositoryImpl) InsertTags(ctx context.Context, tags []models.BookmarkTag) error {
	if len(tags) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&tags).Error; err != nil {
		return fmt.Errorf("inserting tags: %w", err)
	}
	return nil
}

// DeleteTags deletes every tag row of a bookmark
func (r *RepositoryImpl) DeleteTags(ctx context.Context, bookmarkID string) error {
	if err := r.db.WithContext(ctx).
		Where("bookmark_id = ?", bookmarkID).
		Delete(&models.BookmarkTag{}).Error; err != nil {
		return fmt.Errorf("deleting tags: %w", err)
	}
	return nil
}

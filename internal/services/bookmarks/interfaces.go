package bookmarks

import (
	"context"

	"github.com/killallgit/fieldguide-api/internal/models"
)

// Repository defines data access for the bookmarks and bookmark_tags tables
type Repository interface {
	// Read operations
	ListBookmarks(ctx context.Context, userID string) ([]models.Bookmark, error)
	ListTags(ctx context.Context, bookmarkIDs []string) ([]models.BookmarkTag, error)

	// Write operations on bookmarks
	InsertBookmark(ctx context.Context, bookmark *models.Bookmark) error
	UpdateBookmark(ctx context.Context, userID string, bookmark *models.Bookmark) error
	UpdateWeight(ctx context.Context, userID, id string, weight int) error
	DeleteBookmark(ctx context.Context, userID, id string) error

	// Write operations on tags
	InsertTags(ctx context.Context, tags []models.BookmarkTag) error
	DeleteTags(ctx context.Context, bookmarkID string) error
}

// Service defines the bookmark store's business operations
type Service interface {
	List(ctx context.Context, userID string) ([]models.Bookmark, error)
	Create(ctx context.Context, userID string, form models.BookmarkForm) (*WriteResult, error)
	Update(ctx context.Context, userID, id string, form models.BookmarkForm) (*WriteResult, error)
	Delete(ctx context.Context, userID, id string) error
	Reorder(ctx context.Context, userID string, ordered []models.Bookmark) error
}

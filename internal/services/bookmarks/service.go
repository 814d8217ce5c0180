package bookmarks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/killallgit/fieldguide-api/internal/models"
	"github.com/killallgit/fieldguide-api/internal/services/tags"
	"github.com/killallgit/fieldguide-api/pkg/logging"
	"github.com/rs/zerolog"
)

// WeightStep is the gap left between neighbouring weights after a reorder
const WeightStep = 10

// WriteResult reports both steps of a create or update. The bookmark row is
// always saved when a WriteResult is returned; TagsSaved is false when the
// tag step failed afterwards, with the cause in TagsErr.
type WriteResult struct {
	Bookmark  *models.Bookmark `json:"bookmark"`
	TagsSaved bool             `json:"tags_saved"`
	TagsErr   error            `json:"-"`
}

// Partial reports whether the row was saved but its tags were not
func (r *WriteResult) Partial() bool {
	return r != nil && !r.TagsSaved
}

// ServiceImpl implements the Service interface
type ServiceImpl struct {
	repository Repository
	validate   *validator.Validate
	logger     zerolog.Logger
}

// NewService creates a new bookmark service
func NewService(repository Repository) Service {
	return &ServiceImpl{
		repository: repository,
		validate:   validator.New(),
		logger:     logging.Component("bookmarks"),
	}
}

// List returns the user's bookmarks in display order with tags attached.
// A failed tag fetch is logged and leaves every bookmark with no tags.
func (s *ServiceImpl) List(ctx context.Context, userID string) ([]models.Bookmark, error) {
	bookmarks, err := s.repository.ListBookmarks(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(bookmarks))
	for i := range bookmarks {
		bookmarks[i].Tags = []models.BookmarkTag{}
		ids = append(ids, bookmarks[i].ID)
	}
	if len(ids) == 0 {
		return bookmarks, nil
	}

	rows, err := s.repository.ListTags(ctx, ids)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to load bookmark tags")
		return bookmarks, nil
	}

	index := make(map[string]int, len(bookmarks))
	for i := range bookmarks {
		index[bookmarks[i].ID] = i
	}
	for _, row := range rows {
		if i, ok := index[row.BookmarkID]; ok {
			bookmarks[i].Tags = append(bookmarks[i].Tags, row)
		}
	}
	return bookmarks, nil
}

// Create inserts a bookmark, then its tags
func (s *ServiceImpl) Create(ctx context.Context, userID string, form models.BookmarkForm) (*WriteResult, error) {
	form, err := s.prepare(form)
	if err != nil {
		return nil, err
	}

	bookmark := &models.Bookmark{UserID: userID}
	form.Apply(bookmark)
	if err := s.repository.InsertBookmark(ctx, bookmark); err != nil {
		return nil, err
	}

	result := &WriteResult{Bookmark: bookmark, TagsSaved: true}
	if len(form.Tags) > 0 {
		s.saveTags(ctx, result, form.Tags)
	}
	return result, nil
}

// Update replaces every field of a bookmark, then replaces its tag set
func (s *ServiceImpl) Update(ctx context.Context, userID, id string, form models.BookmarkForm) (*WriteResult, error) {
	if id == "" {
		return nil, ErrBookmarkNotFound
	}
	form, err := s.prepare(form)
	if err != nil {
		return nil, err
	}

	bookmark := &models.Bookmark{ID: id, UserID: userID}
	form.Apply(bookmark)
	if err := s.repository.UpdateBookmark(ctx, userID, bookmark); err != nil {
		return nil, err
	}

	// the insert is still attempted when the delete fails; the result is
	// partial either way
	result := &WriteResult{Bookmark: bookmark, TagsSaved: true}
	if err := s.repository.DeleteTags(ctx, id); err != nil {
		s.tagFailure(result, err)
	}
	if len(form.Tags) > 0 {
		s.saveTags(ctx, result, form.Tags)
	}
	return result, nil
}

// Delete removes a bookmark; its tags go with it
func (s *ServiceImpl) Delete(ctx context.Context, userID, id string) error {
	if id == "" {
		return ErrBookmarkNotFound
	}
	return s.repository.DeleteBookmark(ctx, userID, id)
}

// Reorder assigns weight index*WeightStep to each bookmark in the given
// order, one update at a time. It stops at the first failure, leaving the
// earlier updates in place.
func (s *ServiceImpl) Reorder(ctx context.Context, userID string, ordered []models.Bookmark) error {
	for i := range ordered {
		if err := s.repository.UpdateWeight(ctx, userID, ordered[i].ID, i*WeightStep); err != nil {
			s.logger.Error().Err(err).
				Str("bookmark_id", ordered[i].ID).
				Int("position", i).
				Msg("Reorder stopped")
			return ReorderError{Updated: i, Total: len(ordered), Err: err}
		}
	}
	return nil
}

// prepare trims and validates a form and normalizes its tags
func (s *ServiceImpl) prepare(form models.BookmarkForm) (models.BookmarkForm, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Description = strings.TrimSpace(form.Description)
	form.ThumbnailURL = strings.TrimSpace(form.ThumbnailURL)
	form.Color = strings.TrimSpace(form.Color)
	form.Tags = tags.NormalizeAll(form.Tags)

	if form.Name == "" {
		return form, ErrNameRequired
	}
	if err := s.validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return form, ValidationError{
				Field:   verrs[0].Field(),
				Message: fmt.Sprintf("failed %q check", verrs[0].Tag()),
			}
		}
		return form, fmt.Errorf("validating bookmark: %w", err)
	}
	return form, nil
}

func (s *ServiceImpl) saveTags(ctx context.Context, result *WriteResult, names []string) {
	rows := make([]models.BookmarkTag, 0, len(names))
	for _, name := range names {
		rows = append(rows, models.BookmarkTag{BookmarkID: result.Bookmark.ID, Tag: name})
	}
	if err := s.repository.InsertTags(ctx, rows); err != nil {
		s.tagFailure(result, err)
		return
	}
	if result.TagsSaved {
		result.Bookmark.Tags = rows
	}
}

func (s *ServiceImpl) tagFailure(result *WriteResult, err error) {
	result.TagsSaved = false
	if result.TagsErr != nil {
		err = errors.Join(result.TagsErr, err)
	}
	result.TagsErr = err
	s.logger.Error().Err(err).
		Str("bookmark_id", result.Bookmark.ID).
		Msg("Bookmark saved but tags were not")
}

package bookmarks

import (
	"context"
	"errors"
	"testing"

	"github.com/killallgit/fieldguide-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListBookmarks(ctx context.Context, userID string) ([]models.Bookmark, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Bookmark), args.Error(1)
}

func (m *MockRepository) ListTags(ctx context.Context, bookmarkIDs []string) ([]models.BookmarkTag, error) {
	args := m.Called(ctx, bookmarkIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BookmarkTag), args.Error(1)
}

func (m *MockRepository) InsertBookmark(ctx context.Context, bookmark *models.Bookmark) error {
	args := m.Called(ctx, bookmark)
	return args.Error(0)
}

func (m *MockRepository) UpdateBookmark(ctx context.Context, userID string, bookmark *models.Bookmark) error {
	args := m.Called(ctx, userID, bookmark)
	return args.Error(0)
}

func (m *MockRepository) UpdateWeight(ctx context.Context, userID, id string, weight int) error {
	args := m.Called(ctx, userID, id, weight)
	return args.Error(0)
}

func (m *MockRepository) DeleteBookmark(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockRepository) InsertTags(ctx context.Context, tags []models.BookmarkTag) error {
	args := m.Called(ctx, tags)
	return args.Error(0)
}

func (m *MockRepository) DeleteTags(ctx context.Context, bookmarkID string) error {
	args := m.Called(ctx, bookmarkID)
	return args.Error(0)
}

func assignID(id string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		args.Get(1).(*models.Bookmark).ID = id
	}
}

func TestServiceImpl_List(t *testing.T) {
	ctx := context.Background()

	t.Run("attaches tags to their bookmarks", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		mockRepo.On("ListBookmarks", ctx, "user-1").Return([]models.Bookmark{
			{ID: "a", Name: "Lighthouse"},
			{ID: "b", Name: "Tide Pools"},
		}, nil)
		mockRepo.On("ListTags", ctx, []string{"a", "b"}).Return([]models.BookmarkTag{
			{BookmarkID: "b", Tag: "coast"},
			{BookmarkID: "a", Tag: "hike"},
			{BookmarkID: "b", Tag: "tidepool"},
			{BookmarkID: "zzz", Tag: "orphan"},
		}, nil)

		got, err := service.List(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, []string{"hike"}, got[0].TagNames())
		assert.Equal(t, []string{"coast", "tidepool"}, got[1].TagNames())
		mockRepo.AssertExpectations(t)
	})

	t.Run("tag failure leaves bookmarks without tags", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		mockRepo.On("ListBookmarks", ctx, "user-1").Return([]models.Bookmark{{ID: "a", Name: "Lighthouse"}}, nil)
		mockRepo.On("ListTags", ctx, []string{"a"}).Return(nil, errors.New("boom"))

		got, err := service.List(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.NotNil(t, got[0].Tags)
		assert.Empty(t, got[0].Tags)
	})

	t.Run("empty list skips tag fetch", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		mockRepo.On("ListBookmarks", ctx, "user-1").Return([]models.Bookmark{}, nil)

		got, err := service.List(ctx, "user-1")
		require.NoError(t, err)
		assert.Empty(t, got)
		mockRepo.AssertNotCalled(t, "ListTags", mock.Anything, mock.Anything)
	})

	t.Run("bookmark failure is returned", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		mockRepo.On("ListBookmarks", ctx, "user-1").Return(nil, errors.New("offline"))

		_, err := service.List(ctx, "user-1")
		assert.EqualError(t, err, "offline")
	})
}

func TestServiceImpl_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("no tags skips the tag insert", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		mockRepo.On("InsertBookmark", ctx, mock.AnythingOfType("*models.Bookmark")).
			Run(func(args mock.Arguments) {
				b := args.Get(1).(*models.Bookmark)
				assert.Equal(t, "Lighthouse", b.Name)
				assert.Equal(t, "user-1", b.UserID)
				assert.Equal(t, models.DefaultColor, b.Color)
				assert.Nil(t, b.Description)
				b.ID = "new-id"
			}).
			Return(nil)

		result, err := service.Create(ctx, "user-1", models.BookmarkForm{Name: "  Lighthouse "})
		require.NoError(t, err)
		assert.True(t, result.TagsSaved)
		assert.False(t, result.Partial())
		assert.Equal(t, "new-id", result.Bookmark.ID)
		mockRepo.AssertNotCalled(t, "InsertTags", mock.Anything, mock.Anything)
	})

	t.Run("tags are normalized before insert", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		mockRepo.On("InsertBookmark", ctx, mock.AnythingOfType("*models.Bookmark")).Run(assignID("b1")).Return(nil)
		mockRepo.On("InsertTags", ctx, []models.BookmarkTag{
			{BookmarkID: "b1", Tag: "cabin"},
			{BookmarkID: "b1", Tag: "hike"},
		}).Return(nil)

		result, err := service.Create(ctx, "user-1", models.BookmarkForm{
			Name: "Cabin",
			Tags: []string{"Cabin", " cabin ", "", "HIKE"},
		})
		require.NoError(t, err)
		assert.True(t, result.TagsSaved)
		assert.Equal(t, []string{"cabin", "hike"}, result.Bookmark.TagNames())
		mockRepo.AssertExpectations(t)
	})

	t.Run("tag failure is a partial result", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		tagErr := errors.New("tags table unavailable")
		mockRepo.On("InsertBookmark", ctx, mock.AnythingOfType("*models.Bookmark")).Run(assignID("b1")).Return(nil)
		mockRepo.On("InsertTags", ctx, mock.Anything).Return(tagErr)

		result, err := service.Create(ctx, "user-1", models.BookmarkForm{Name: "Cabin", Tags: []string{"cabin"}})
		require.NoError(t, err)
		assert.True(t, result.Partial())
		assert.ErrorIs(t, result.TagsErr, tagErr)
		assert.Equal(t, "b1", result.Bookmark.ID)
	})

	t.Run("bookmark failure aborts", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		mockRepo.On("InsertBookmark", ctx, mock.Anything).Return(errors.New("insert failed"))

		result, err := service.Create(ctx, "user-1", models.BookmarkForm{Name: "Cabin", Tags: []string{"cabin"}})
		assert.Error(t, err)
		assert.Nil(t, result)
		mockRepo.AssertNotCalled(t, "InsertTags", mock.Anything, mock.Anything)
	})

	t.Run("validates form", func(t *testing.T) {
		lat := 123.0
		tests := []struct {
			name string
			form models.BookmarkForm
			want error
		}{
			{name: "empty name", form: models.BookmarkForm{}, want: ErrNameRequired},
			{name: "whitespace name", form: models.BookmarkForm{Name: "   "}, want: ErrNameRequired},
			{name: "latitude out of range", form: models.BookmarkForm{Name: "x", Latitude: &lat}, want: ErrInvalidInput},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				mockRepo := new(MockRepository)
				service := NewService(mockRepo)

				_, err := service.Create(ctx, "user-1", tt.form)
				assert.ErrorIs(t, err, tt.want)
				mockRepo.AssertNotCalled(t, "InsertBookmark", mock.Anything, mock.Anything)
			})
		}
	})
}

func TestServiceImpl_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces all tags", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		mockRepo.On("UpdateBookmark", ctx, "user-1", mock.MatchedBy(func(b *models.Bookmark) bool {
			return b.ID == "b1" && b.Name == "Trail"
		})).Return(nil)
		mockRepo.On("DeleteTags", ctx, "b1").Return(nil)
		mockRepo.On("InsertTags", ctx, []models.BookmarkTag{{BookmarkID: "b1", Tag: "hike"}}).Return(nil)

		result, err := service.Update(ctx, "user-1", "b1", models.BookmarkForm{Name: "Trail", Tags: []string{"hike"}})
		require.NoError(t, err)
		assert.True(t, result.TagsSaved)
		mockRepo.AssertExpectations(t)
	})

	t.Run("clearing tags only deletes", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		mockRepo.On("UpdateBookmark", ctx, "user-1", mock.Anything).Return(nil)
		mockRepo.On("DeleteTags", ctx, "b1").Return(nil)

		result, err := service.Update(ctx, "user-1", "b1", models.BookmarkForm{Name: "Trail"})
		require.NoError(t, err)
		assert.True(t, result.TagsSaved)
		mockRepo.AssertNotCalled(t, "InsertTags", mock.Anything, mock.Anything)
	})

	t.Run("tag delete failure still inserts", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		denied := errors.New("denied")
		mockRepo.On("UpdateBookmark", ctx, "user-1", mock.Anything).Return(nil)
		mockRepo.On("DeleteTags", ctx, "b1").Return(denied)
		mockRepo.On("InsertTags", ctx, []models.BookmarkTag{{BookmarkID: "b1", Tag: "hike"}}).Return(nil)

		result, err := service.Update(ctx, "user-1", "b1", models.BookmarkForm{Name: "Trail", Tags: []string{"hike"}})
		require.NoError(t, err)
		assert.True(t, result.Partial())
		assert.ErrorIs(t, result.TagsErr, denied)
		mockRepo.AssertExpectations(t)
	})

	t.Run("tag delete and insert both fail", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		denied, dup := errors.New("denied"), errors.New("duplicate tag")
		mockRepo.On("UpdateBookmark", ctx, "user-1", mock.Anything).Return(nil)
		mockRepo.On("DeleteTags", ctx, "b1").Return(denied)
		mockRepo.On("InsertTags", ctx, mock.Anything).Return(dup)

		result, err := service.Update(ctx, "user-1", "b1", models.BookmarkForm{Name: "Trail", Tags: []string{"hike"}})
		require.NoError(t, err)
		assert.False(t, result.TagsSaved)
		assert.ErrorIs(t, result.TagsErr, denied)
		assert.ErrorIs(t, result.TagsErr, dup)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		mockRepo.On("UpdateBookmark", ctx, "user-1", mock.Anything).Return(ErrBookmarkNotFound)

		_, err := service.Update(ctx, "user-1", "b1", models.BookmarkForm{Name: "Trail"})
		assert.ErrorIs(t, err, ErrBookmarkNotFound)
		mockRepo.AssertNotCalled(t, "DeleteTags", mock.Anything, mock.Anything)
	})

	t.Run("empty id", func(t *testing.T) {
		service := NewService(new(MockRepository))
		_, err := service.Update(ctx, "user-1", "", models.BookmarkForm{Name: "Trail"})
		assert.ErrorIs(t, err, ErrBookmarkNotFound)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	mockRepo.On("DeleteBookmark", ctx, "user-1", "b1").Return(nil)
	require.NoError(t, service.Delete(ctx, "user-1", "b1"))
	assert.ErrorIs(t, service.Delete(ctx, "user-1", ""), ErrBookmarkNotFound)
	mockRepo.AssertExpectations(t)
}

func TestServiceImpl_Reorder(t *testing.T) {
	ctx := context.Background()
	ordered := []models.Bookmark{{ID: "c"}, {ID: "a"}, {ID: "b"}}

	t.Run("assigns weights in steps of ten", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		var calls []string
		record := func(args mock.Arguments) { calls = append(calls, args.String(2)) }
		mockRepo.On("UpdateWeight", ctx, "user-1", "c", 0).Run(record).Return(nil)
		mockRepo.On("UpdateWeight", ctx, "user-1", "a", 10).Run(record).Return(nil)
		mockRepo.On("UpdateWeight", ctx, "user-1", "b", 20).Run(record).Return(nil)

		require.NoError(t, service.Reorder(ctx, "user-1", ordered))
		assert.Equal(t, []string{"c", "a", "b"}, calls)
		mockRepo.AssertExpectations(t)
	})

	t.Run("stops at first failure", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)

		cause := errors.New("timeout")
		mockRepo.On("UpdateWeight", ctx, "user-1", "c", 0).Return(nil)
		mockRepo.On("UpdateWeight", ctx, "user-1", "a", 10).Return(cause)

		err := service.Reorder(ctx, "user-1", ordered)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrReorderIncomplete)
		assert.ErrorIs(t, err, cause)

		var reorderErr ReorderError
		require.ErrorAs(t, err, &reorderErr)
		assert.Equal(t, 1, reorderErr.Updated)
		assert.Equal(t, 3, reorderErr.Total)
		mockRepo.AssertNotCalled(t, "UpdateWeight", ctx, "user-1", "b", 20)
	})

	t.Run("empty order is a no-op", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo)
		require.NoError(t, service.Reorder(ctx, "user-1", nil))
		mockRepo.AssertNotCalled(t, "UpdateWeight", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

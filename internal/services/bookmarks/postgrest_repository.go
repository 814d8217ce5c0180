package bookmarks

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/killallgit/fieldguide-api/internal/models"
	"github.com/supabase-community/postgrest-go"
)

const (
	bookmarksTable = "bookmarks"
	tagsTable      = "bookmark_tags"
)

// TokenFunc extracts the caller's access token from a request context
type TokenFunc func(ctx context.Context) string

// PostgrestRepository implements Repository against the Supabase REST API.
// Every call runs as the signed-in user so row level security applies.
type PostgrestRepository struct {
	restURL string
	apiKey  string
	schema  string
	token   TokenFunc
}

// NewPostgrestRepository creates a repository for the project at supabaseURL
func NewPostgrestRepository(supabaseURL, apiKey, schema string, token TokenFunc) Repository {
	if schema == "" {
		schema = "public"
	}
	return &PostgrestRepository{
		restURL: strings.TrimRight(supabaseURL, "/") + "/rest/v1",
		apiKey:  apiKey,
		schema:  schema,
		token:   token,
	}
}

// bookmarkRow is the writable column set of the bookmarks table
type bookmarkRow struct {
	ID           string   `json:"id,omitempty"`
	UserID       string   `json:"user_id,omitempty"`
	Weight       int      `json:"weight"`
	Name         string   `json:"name"`
	Description  *string  `json:"description"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Color        string   `json:"color"`
	ThumbnailURL *string  `json:"thumbnail_url"`
}

type bookmarkUpdate struct {
	bookmarkRow
	UpdatedAt time.Time `json:"updated_at"`
}

func toRow(b *models.Bookmark) bookmarkRow {
	return bookmarkRow{
		ID:           b.ID,
		UserID:       b.UserID,
		Weight:       b.Weight,
		Name:         b.Name,
		Description:  b.Description,
		Latitude:     b.Latitude,
		Longitude:    b.Longitude,
		Color:        b.Color,
		ThumbnailURL: b.ThumbnailURL,
	}
}

func (r *PostgrestRepository) client(ctx context.Context) *postgrest.Client {
	headers := map[string]string{"apikey": r.apiKey}
	token := r.apiKey
	if r.token != nil {
		if t := r.token(ctx); t != "" {
			token = t
		}
	}
	headers["Authorization"] = "Bearer " + token
	client := postgrest.NewClient(r.restURL, r.schema, headers)
	client.Transport.Parent = contextTransport{ctx: ctx, base: http.DefaultTransport}
	return client
}

// contextTransport binds outgoing requests to ctx. The postgrest client
// builds its requests without one, so cancellation is applied here.
type contextTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.base.RoundTrip(req.WithContext(t.ctx))
}

// ListBookmarks returns the user's bookmarks in display order
func (r *PostgrestRepository) ListBookmarks(ctx context.Context, userID string) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	_, err := r.client(ctx).From(bookmarksTable).
		Select("*", "", false).
		Eq("user_id", userID).
		Order("weight", &postgrest.OrderOpts{Ascending: true}).
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		ExecuteTo(&bookmarks)
	if err != nil {
		return nil, fmt.Errorf("listing bookmarks: %w", err)
	}
	return bookmarks, nil
}

// ListTags returns every tag row belonging to the given bookmarks
func (r *PostgrestRepository) ListTags(ctx context.Context, bookmarkIDs []string) ([]models.BookmarkTag, error) {
	if len(bookmarkIDs) == 0 {
		return nil, nil
	}
	var tags []models.BookmarkTag
	_, err := r.client(ctx).From(tagsTable).
		Select("*", "", false).
		In("bookmark_id", bookmarkIDs).
		ExecuteTo(&tags)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	return tags, nil
}

// InsertBookmark inserts one row and copies the stored representation back
func (r *PostgrestRepository) InsertBookmark(ctx context.Context, bookmark *models.Bookmark) error {
	if err := bookmark.BeforeCreate(nil); err != nil {
		return err
	}
	var rows []models.Bookmark
	_, err := r.client(ctx).From(bookmarksTable).
		Insert(toRow(bookmark), false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return fmt.Errorf("inserting bookmark: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("inserting bookmark: no row returned")
	}
	stored := rows[0]
	stored.Tags = bookmark.Tags
	*bookmark = stored
	return nil
}

// UpdateBookmark replaces every editable field of the user's bookmark
func (r *PostgrestRepository) UpdateBookmark(ctx context.Context, userID string, bookmark *models.Bookmark) error {
	row := toRow(bookmark)
	row.ID, row.UserID = "", ""
	var rows []models.Bookmark
	_, err := r.client(ctx).From(bookmarksTable).
		Update(bookmarkUpdate{bookmarkRow: row, UpdatedAt: time.Now().UTC()}, "representation", "").
		Eq("id", bookmark.ID).
		Eq("user_id", userID).
		ExecuteTo(&rows)
	if err != nil {
		return fmt.Errorf("updating bookmark: %w", err)
	}
	if len(rows) == 0 {
		return ErrBookmarkNotFound
	}
	return nil
}

// UpdateWeight sets only the sort weight of the user's bookmark
func (r *PostgrestRepository) UpdateWeight(ctx context.Context, userID, id string, weight int) error {
	var rows []models.Bookmark
	_, err := r.client(ctx).From(bookmarksTable).
		Update(map[string]any{"weight": weight}, "representation", "").
		Eq("id", id).
		Eq("user_id", userID).
		ExecuteTo(&rows)
	if err != nil {
		return fmt.Errorf("updating weight: %w", err)
	}
	if len(rows) == 0 {
		return ErrBookmarkNotFound
	}
	return nil
}

// DeleteBookmark deletes the user's bookmark; tag rows cascade in the database
func (r *PostgrestRepository) DeleteBookmark(ctx context.Context, userID, id string) error {
	var rows []models.Bookmark
	_, err := r.client(ctx).From(bookmarksTable).
		Delete("representation", "").
		Eq("id", id).
		Eq("user_id", userID).
		ExecuteTo(&rows)
	if err != nil {
		return fmt.Errorf("deleting bookmark: %w", err)
	}
	if len(rows) == 0 {
		return ErrBookmarkNotFound
	}
	return nil
}

type tagRow struct {
	BookmarkID string `json:"bookmark_id"`
	Tag        string `json:"tag"`
}

// InsertTags inserts tag rows in one request
func (r *PostgrestRepository) InsertTags(ctx context.Context, tags []models.BookmarkTag) error {
	if len(tags) == 0 {
		return nil
	}
	rows := make([]tagRow, 0, len(tags))
	for _, t := range tags {
		rows = append(rows, tagRow{BookmarkID: t.BookmarkID, Tag: t.Tag})
	}
	if _, _, err := r.client(ctx).From(tagsTable).
		Insert(rows, false, "", "minimal", "").
		Execute(); err != nil {
		return fmt.Errorf("inserting tags: %w", err)
	}
	return nil
}

// DeleteTags deletes every tag row of a bookmark
func (r *PostgrestRepository) DeleteTags(ctx context.Context, bookmarkID string) error {
	if _, _, err := r.client(ctx).From(tagsTable).
		Delete("minimal", "").
		Eq("bookmark_id", bookmarkID).
		Execute(); err != nil {
		return fmt.Errorf("deleting tags: %w", err)
	}
	return nil
}

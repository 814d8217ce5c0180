package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultColor is the pin color given to bookmarks created without one
const DefaultColor = "#ffffff"

// Bookmark is one saved place in a user's field guide
type Bookmark struct {
	ID           string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt    time.Time     `json:"created_at" gorm:"index"`
	UpdatedAt    time.Time     `json:"updated_at"`
	Weight       int           `json:"weight" gorm:"not null;default:0;index"`
	Name         string        `json:"name" gorm:"not null"`
	Description  *string       `json:"description"`
	Latitude     *float64      `json:"latitude"`
	Longitude    *float64      `json:"longitude"`
	Color        string        `json:"color" gorm:"not null;default:'#ffffff'"`
	ThumbnailURL *string       `json:"thumbnail_url"`
	UserID       string        `json:"user_id" gorm:"not null;index"`
	Tags         []BookmarkTag `json:"tags" gorm:"foreignKey:BookmarkID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate generates an ID before creating a new bookmark
func (b *Bookmark) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.Color == "" {
		b.Color = DefaultColor
	}
	return nil
}

// TableName returns the table name for the Bookmark model
func (Bookmark) TableName() string {
	return "bookmarks"
}

// HasLocation reports whether both coordinates are set
func (b *Bookmark) HasLocation() bool {
	return b.Latitude != nil && b.Longitude != nil
}

// TagNames returns the bookmark's tag strings in stored order
func (b *Bookmark) TagNames() []string {
	names := make([]string, 0, len(b.Tags))
	for _, t := range b.Tags {
		names = append(names, t.Tag)
	}
	return names
}

// HasAnyTag reports whether one of the bookmark's tags is in set
func (b *Bookmark) HasAnyTag(set map[string]struct{}) bool {
	for _, t := range b.Tags {
		if _, ok := set[t.Tag]; ok {
			return true
		}
	}
	return false
}

// BookmarkTag is a free-form label attached to a bookmark
type BookmarkTag struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	BookmarkID string `json:"bookmark_id" gorm:"not null;index;uniqueIndex:idx_bookmark_tag"`
	Tag        string `json:"tag" gorm:"not null;uniqueIndex:idx_bookmark_tag"`
}

// BeforeCreate generates an ID before creating a new tag row
func (t *BookmarkTag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// TableName returns the table name for the BookmarkTag model
func (BookmarkTag) TableName() string {
	return "bookmark_tags"
}

// BookmarkForm is the editor's submission shape, shared by add and edit
type BookmarkForm struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description"`
	Latitude     *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude    *float64 `json:"longitude" validate:"omitempty,longitude"`
	Color        string   `json:"color"`
	ThumbnailURL string   `json:"thumbnail_url"`
	Weight       int      `json:"weight"`
	Tags         []string `json:"tags"`
}

// Apply copies the form's fields (tags excluded) onto b
func (f BookmarkForm) Apply(b *Bookmark) {
	b.Name = f.Name
	b.Description = optionalString(f.Description)
	b.Latitude = f.Latitude
	b.Longitude = f.Longitude
	b.Color = f.Color
	if b.Color == "" {
		b.Color = DefaultColor
	}
	b.ThumbnailURL = optionalString(f.ThumbnailURL)
	b.Weight = f.Weight
}

// FormFromBookmark builds the edit-mode form for an existing bookmark
func FormFromBookmark(b *Bookmark) BookmarkForm {
	form := BookmarkForm{
		Name:      b.Name,
		Latitude:  b.Latitude,
		Longitude: b.Longitude,
		Color:     b.Color,
		Weight:    b.Weight,
		Tags:      b.TagNames(),
	}
	if b.Description != nil {
		form.Description = *b.Description
	}
	if b.ThumbnailURL != nil {
		form.ThumbnailURL = *b.ThumbnailURL
	}
	return form
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Initial is the placeholder letter for a bookmark without a thumbnail
func Initial(name string) string {
	for _, r := range name {
		return strings.ToUpper(string(r))
	}
	return "?"
}

// FallbackDisplayColor is drawn for bookmarks stored without a color
const FallbackDisplayColor = "#000000"

// DisplayColor is the pin and thumbnail border color
func (b *Bookmark) DisplayColor() string {
	if b.Color == "" {
		return FallbackDisplayColor
	}
	return b.Color
}

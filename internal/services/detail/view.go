// Package detail is the single-bookmark view with its two-step delete.
package detail

import (
	"errors"

	"github.com/killallgit/fieldguide-api/internal/models"
)

var (
	// ErrNotOpen is returned by actions that need an open detail view
	ErrNotOpen = errors.New("no bookmark is open")

	// ErrDeleteNotRequested is returned by ConfirmDelete without a prior RequestDelete
	ErrDeleteNotRequested = errors.New("delete was not requested")
)

// View tracks which bookmark is expanded and whether a delete is awaiting
// confirmation. The zero value is closed.
type View struct {
	bookmarkID string
	confirming bool
}

// Open expands id, dropping any pending delete confirmation
func (v *View) Open(id string) {
	v.bookmarkID = id
	v.confirming = false
}

// Close collapses the view
func (v *View) Close() {
	v.bookmarkID = ""
	v.confirming = false
}

// IsOpen reports whether a bookmark is expanded
func (v *View) IsOpen() bool {
	return v.bookmarkID != ""
}

// BookmarkID returns the open bookmark's id, or ""
func (v *View) BookmarkID() string {
	return v.bookmarkID
}

// Confirming reports whether the delete confirmation is showing
func (v *View) Confirming() bool {
	return v.confirming
}

// RequestDelete shows the confirmation step
func (v *View) RequestDelete() error {
	if !v.IsOpen() {
		return ErrNotOpen
	}
	v.confirming = true
	return nil
}

// CancelDelete hides the confirmation step
func (v *View) CancelDelete() {
	v.confirming = false
}

// ConfirmDelete returns the id to delete. The view stays open until the
// caller closes it after the delete succeeds.
func (v *View) ConfirmDelete() (string, error) {
	if !v.IsOpen() {
		return "", ErrNotOpen
	}
	if !v.confirming {
		return "", ErrDeleteNotRequested
	}
	v.confirming = false
	return v.bookmarkID, nil
}

// Editing returns the id to open in the editor
func (v *View) Editing() (string, error) {
	if !v.IsOpen() {
		return "", ErrNotOpen
	}
	return v.bookmarkID, nil
}

// Card is the rendered detail view
type Card struct {
	Bookmark    *models.Bookmark `json:"bookmark"`
	Tags        []string         `json:"tags"`
	Placeholder string           `json:"placeholder"`
	BorderColor string           `json:"border_color"`
	Confirming  bool             `json:"confirming_delete"`
}

// Render builds the card for b
func (v *View) Render(b *models.Bookmark) Card {
	return Card{
		Bookmark:    b,
		Tags:        b.TagNames(),
		Placeholder: models.Initial(b.Name),
		BorderColor: b.DisplayColor(),
		Confirming:  v.confirming,
	}
}

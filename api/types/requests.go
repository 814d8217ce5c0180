package types

import (
	"strings"

	"github.com/killallgit/fieldguide-api/internal/models"
)

// PasswordSignInRequest signs in with email and password
type PasswordSignInRequest struct {
	Email    string `json:"email" binding:"required,email" example:"hiker@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"correct-horse"`
}

// Normalize trims the email so pasted addresses validate
func (r *PasswordSignInRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

// MagicLinkRequest asks for a one-time sign-in link
type MagicLinkRequest struct {
	Email string `json:"email" binding:"required,email" example:"hiker@example.com"`
}

// Normalize trims the email so pasted addresses validate
func (r *MagicLinkRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

// ReorderRequest lists every bookmark id in the new display order
type ReorderRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// DropRequest is a drag-and-drop of one list row onto another
type DropRequest struct {
	ActiveID string `json:"active_id" binding:"required"`
	OverID   string `json:"over_id"` // empty when dropped outside the list
}

// MapIdleRequest reports where the camera came to rest
type MapIdleRequest struct {
	Lat  float64 `json:"lat" binding:"latitude" example:"47.6"`
	Lng  float64 `json:"lng" binding:"longitude" example:"-122.3"`
	Zoom int     `json:"zoom" binding:"min=0,max=22" example:"9"`
}

// SearchSelectRequest picks one autocomplete suggestion
type SearchSelectRequest struct {
	PlaceID string `json:"place_id" binding:"required" example:"ChIJ-bfVTh8VkFQRDZLQnmioK9s"`
}

// OpenAddRequest opens the add form, optionally pre-filled from a place
type OpenAddRequest struct {
	Place *models.PlaceSelection `json:"place"`
}

// TagRequest commits one tag to the open form
type TagRequest struct {
	Tag string `json:"tag" binding:"required" example:"coast"`
}

// TagInputRequest is typed text for the form's tag input. Commit adds
// whatever remains in the input, as pressing Enter does.
type TagInputRequest struct {
	Text   string `json:"text" example:"coast,"`
	Commit bool   `json:"commit" example:"false"`
}

// PreferencesRequest updates either preference; nil fields are left alone
type PreferencesRequest struct {
	MusicStopped *bool    `json:"music_stopped" example:"true"`
	Volume       *float64 `json:"volume" example:"0.4"`
}

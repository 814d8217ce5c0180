package types

import (
	"github.com/killallgit/fieldguide-api/internal/models"
	"github.com/killallgit/fieldguide-api/internal/services/auth"
	"github.com/killallgit/fieldguide-api/internal/services/bookmarks"
	"github.com/killallgit/fieldguide-api/internal/services/mapview"
	"github.com/killallgit/fieldguide-api/internal/services/places"
	"github.com/killallgit/fieldguide-api/internal/services/workspace"
)

// Status constants for API responses
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusPartial = "partial"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`  // One of the Status constants above
	Message string `json:"message"` // Human-readable message
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`   // Error code/type
	Details interface{} `json:"details,omitempty"` // Additional error details
}

// SessionResponse is returned after a password sign-in
type SessionResponse struct {
	BaseResponse
	Session *auth.Session `json:"session"`
}

// BookmarksResponse is the loaded list with its filter
type BookmarksResponse struct {
	BaseResponse
	workspace.BookmarksState
}

// PartialMessage reports a bookmark whose tags failed to save
const PartialMessage = "bookmark saved, tags not saved"

// BookmarkWriteResponse reports a create or update. Partial is set when the
// bookmark was saved but its tags were not.
type BookmarkWriteResponse struct {
	BaseResponse
	Bookmark  *models.Bookmark `json:"bookmark"`
	Partial   bool             `json:"partial,omitempty"`
	TagsError string           `json:"tags_error,omitempty"`
}

// NewBookmarkWriteResponse reports result, switching to the partial
// status when the tag step failed
func NewBookmarkWriteResponse(result *bookmarks.WriteResult, message string) BookmarkWriteResponse {
	resp := BookmarkWriteResponse{
		BaseResponse: OK(message),
		Bookmark:     result.Bookmark,
	}
	if result.Partial() {
		resp.Status = StatusPartial
		resp.Message = PartialMessage
		resp.Partial = true
		if result.TagsErr != nil {
			resp.TagsError = result.TagsErr.Error()
		}
	}
	return resp
}

// ListResponse is the rendered list
type ListResponse struct {
	BaseResponse
	workspace.ListState
}

// DropResponse is the list after a drag-and-drop
type DropResponse struct {
	BaseResponse
	Moved bool `json:"moved"`
	workspace.ListState
}

// TagsResponse lists every tag and the active filter
type TagsResponse struct {
	BaseResponse
	AllTags    []string `json:"all_tags"`
	ActiveTags []string `json:"active_tags"`
}

// TagToggleResponse reports a filter toggle
type TagToggleResponse struct {
	TagsResponse
	Tag    string `json:"tag"`
	Active bool   `json:"active"`
}

// MapResponse is the rendered map
type MapResponse struct {
	BaseResponse
	workspace.MapState
}

// PopupResponse is the point of interest popup
type PopupResponse struct {
	BaseResponse
	Popup mapview.PopupState `json:"popup"`
}

// SuggestionsResponse for the search box
type SuggestionsResponse struct {
	BaseResponse
	Query       string              `json:"query"`
	Suggestions []places.Suggestion `json:"suggestions"`
	Count       int                 `json:"count"`
}

// EditorResponse is the open form; Editor is nil when no form is open
type EditorResponse struct {
	BaseResponse
	Editor *workspace.EditorState `json:"editor"`
}

// DetailResponse is the detail card
type DetailResponse struct {
	BaseResponse
	workspace.DetailState
}

// PreferencesResponse for the user's settings
type PreferencesResponse struct {
	BaseResponse
	Preferences *models.Preference `json:"preferences"`
}

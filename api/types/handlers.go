package types

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/fieldguide-api/internal/services/auth"
	"github.com/killallgit/fieldguide-api/internal/services/bookmarks"
	"github.com/killallgit/fieldguide-api/internal/services/detail"
	"github.com/killallgit/fieldguide-api/internal/services/editor"
	"github.com/killallgit/fieldguide-api/internal/services/mapview"
	"github.com/killallgit/fieldguide-api/internal/services/places"
	"github.com/killallgit/fieldguide-api/internal/services/workspace"
	"github.com/killallgit/fieldguide-api/pkg/logging"
)

// Handler utility functions to reduce duplication across handlers

// BindJSONOrError attempts to bind JSON request body to target struct
// Returns false and sends error response if binding fails
func BindJSONOrError(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Status:  StatusError,
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return false
	}
	return true
}

// SendBadRequest sends a standardized bad request response
func SendBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Status: StatusError, Message: message})
}

// SendNotFound sends a standardized not found response
func SendNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Status: StatusError, Message: message})
}

// SendUnauthorized sends a standardized unauthorized response
func SendUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, ErrorResponse{Status: StatusError, Message: message})
}

// SendUnavailable sends a standardized service unavailable response
func SendUnavailable(c *gin.Context, message string) {
	c.JSON(http.StatusServiceUnavailable, ErrorResponse{Status: StatusError, Message: message})
}

// SendInternalError sends a standardized internal server error response
func SendInternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, ErrorResponse{Status: StatusError, Message: message})
}

// SendSuccess sends a standardized success response with data
func SendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// SendCreated sends a standardized created response with data
func SendCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// OK builds a successful BaseResponse
func OK(message string) BaseResponse {
	return BaseResponse{Status: StatusOK, Message: message}
}

// StatusFor maps a service error to an HTTP status code
func StatusFor(err error) int {
	switch {
	case errors.Is(err, bookmarks.ErrBookmarkNotFound),
		errors.Is(err, places.ErrPlaceNotFound):
		return http.StatusNotFound
	case errors.Is(err, bookmarks.ErrNameRequired),
		errors.Is(err, bookmarks.ErrInvalidInput),
		errors.Is(err, places.ErrEmptyQuery),
		errors.Is(err, editor.ErrSubmitBlocked),
		errors.Is(err, auth.ErrEmailRequired):
		return http.StatusBadRequest
	case errors.Is(err, workspace.ErrNoForm),
		errors.Is(err, detail.ErrNotOpen),
		errors.Is(err, detail.ErrDeleteNotRequested),
		errors.Is(err, mapview.ErrPopupNotResolved):
		return http.StatusConflict
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrRateLimited),
		errors.Is(err, places.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, auth.ErrProviderUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	var apiErr *places.APIError
	if errors.As(err, &apiErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// SendError sends the response matching a service error. Server-side
// failures are logged and reported without their cause.
func SendError(c *gin.Context, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		logger := logging.Component("api")
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Msg("Request failed")
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}
	c.JSON(status, ErrorResponse{Status: StatusError, Message: message})
}

// UserID returns the signed-in user's id set by the auth middleware
func UserID(c *gin.Context) string {
	return c.GetString("user_id")
}

// CurrentWorkspace returns the signed-in user's workspace. It sends the
// error response itself and returns false when there is none.
func CurrentWorkspace(c *gin.Context, deps *Dependencies) (*workspace.Workspace, bool) {
	if deps == nil || deps.Workspaces == nil {
		SendUnavailable(c, "Bookmark store not configured")
		return nil, false
	}
	userID := UserID(c)
	if userID == "" {
		SendUnauthorized(c, "Authentication required")
		return nil, false
	}
	return deps.Workspaces.For(c.Request.Context(), userID), true
}

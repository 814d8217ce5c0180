package places

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrRateLimited indicates the Places API quota was exceeded
	ErrRateLimited = errors.New("places api rate limit exceeded")

	// ErrPlaceNotFound indicates the place id is unknown
	ErrPlaceNotFound = errors.New("place not found")

	// ErrEmptyQuery indicates an autocomplete call without input
	ErrEmptyQuery = errors.New("search query cannot be empty")

	// ErrNoPhoto indicates the place has no photo to resolve
	ErrNoPhoto = errors.New("place has no photo")
)

// APIError is a non-2xx response from the Places API
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("places api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("places api returned status %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	case ErrPlaceNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

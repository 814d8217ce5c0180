package auth

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidCredentials  = errors.New("invalid login credentials")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrJWKSFetch           = errors.New("failed to fetch JWKS")
	ErrEmailRequired       = errors.New("email is required")
	ErrRateLimited         = errors.New("too many requests")
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)

// ProviderError is a non-2xx answer from the identity provider
type ProviderError struct {
	Status  int
	Message string
}

func (e ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("identity provider returned status %d", e.Status)
	}
	return e.Message
}

func (e ProviderError) Is(target error) bool {
	switch target {
	case ErrInvalidCredentials:
		return e.Status == http.StatusBadRequest || e.Status == http.StatusUnauthorized ||
			e.Status == http.StatusUnprocessableEntity
	case ErrInvalidToken:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrRateLimited:
		return e.Status == http.StatusTooManyRequests
	case ErrProviderUnavailable:
		return e.Status >= 500
	}
	return false
}

package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/killallgit/fieldguide-api/api/types"
	"github.com/killallgit/fieldguide-api/internal/services/auth"
	"github.com/killallgit/fieldguide-api/internal/services/workspace"
	"github.com/killallgit/fieldguide-api/pkg/logging"
	"github.com/rs/zerolog"
)

// MagicLinkMessage is shown after a sign-in link was sent
const MagicLinkMessage = "Check your email for a login link!"

// Handler manages auth endpoints
type Handler struct {
	validator  *auth.Validator
	identity   auth.IdentityProvider
	workspaces *workspace.Manager
	logger     zerolog.Logger
}

// NewHandler creates a new auth handler
func NewHandler(deps *types.Dependencies) *Handler {
	h := &Handler{logger: logging.Component("auth")}
	if deps != nil {
		h.validator = deps.Validator
		h.identity = deps.Identity
		h.workspaces = deps.Workspaces
	}
	return h
}

type normalizer interface {
	Normalize()
}

// bindNormalized decodes the JSON body, normalizes it and only then runs
// the binding validation, so surrounding whitespace never fails "email"
func bindNormalized(c *gin.Context, req normalizer) error {
	if c.Request.Body == nil {
		return errors.New("empty request body")
	}
	if err := json.NewDecoder(c.Request.Body).Decode(req); err != nil {
		return err
	}
	req.Normalize()
	return binding.Validator.ValidateStruct(req)
}

// SignInPassword signs in with email and password
// @Summary Sign in with password
// @Description Exchange email and password for a Supabase session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body types.PasswordSignInRequest true "Credentials"
// @Success 200 {object} types.SessionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/v1/auth/password [post]
func (h *Handler) SignInPassword(c *gin.Context) {
	if h.identity == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Sign-in is not configured"})
		return
	}

	var req types.PasswordSignInRequest
	if err := bindNormalized(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email and a password of at least 6 characters are required"})
		return
	}

	session, err := h.identity.SignInWithPassword(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.inlineError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.SessionResponse{
		BaseResponse: types.OK("Signed in"),
		Session:      session,
	})
}

// MagicLink emails a one-time sign-in link
// @Summary Send magic link
// @Description Email a passwordless sign-in link to an existing user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body types.MagicLinkRequest true "Email address"
// @Success 200 {object} types.BaseResponse
// @Failure 400 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/v1/auth/magic-link [post]
func (h *Handler) MagicLink(c *gin.Context) {
	if h.identity == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Sign-in is not configured"})
		return
	}

	var req types.MagicLinkRequest
	if err := bindNormalized(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required"})
		return
	}

	if err := h.identity.SendMagicLink(c.Request.Context(), req.Email); err != nil {
		h.inlineError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.OK(MagicLinkMessage))
}

// Logout ends the session and discards the user's workspace
// @Summary Sign out
// @Description Revoke the session's refresh tokens and drop server-side state
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} types.BaseResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	userID := types.UserID(c)
	token := c.GetString("access_token")

	if h.identity != nil && token != "" {
		err := h.identity.SignOut(c.Request.Context(), token)
		// an already revoked token still signs the user out locally
		if err != nil && !errors.Is(err, auth.ErrInvalidToken) {
			h.inlineError(c, err)
			return
		}
	}

	if h.workspaces != nil && userID != "" {
		h.workspaces.Drop(userID)
	}
	h.logger.Info().Str("user_id", userID).Msg("Signed out")
	c.JSON(http.StatusOK, types.OK("Signed out"))
}

// Me returns current user info from JWT
// @Summary Get current user
// @Description Get current user information from Supabase JWT token
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} auth.UserInfo
// @Failure 401 {object} map[string]string
// @Router /api/v1/me [get]
func (h *Handler) Me(c *gin.Context) {
	// Get claims from context (set by auth middleware)
	claims, exists := c.Get("claims")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	authClaims := claims.(*auth.Claims)
	c.JSON(http.StatusOK, auth.GetUserInfo(authClaims))
}

// AuthMiddleware validates Supabase JWT tokens
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.validator == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Authentication is not configured"})
			c.Abort()
			return
		}

		// Get token from Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Check Bearer prefix
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := h.validator.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			}
			c.Abort()
			return
		}

		// Store claims in context
		c.Set("claims", claims)
		c.Set("user_id", claims.Sub)
		c.Set("email", claims.Email)

		ctx := auth.WithUserID(c.Request.Context(), claims.Sub)
		// the dev token is not a Supabase JWT and must not reach PostgREST
		if !(h.validator.DevAuthEnabled() && claims.Sub == auth.DevUserID) {
			c.Set("access_token", parts[1])
			ctx = auth.WithAccessToken(ctx, parts[1])
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// inlineError reports an identity provider failure next to the sign-in form
func (h *Handler) inlineError(c *gin.Context, err error) {
	status := types.StatusFor(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Msg("Identity provider request failed")
		message = "Sign-in is temporarily unavailable"
	}
	c.JSON(status, gin.H{"error": message})
}

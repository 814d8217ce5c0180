package auth

import (
	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes registers the sign-in routes, which need no token
func RegisterPublicRoutes(router *gin.RouterGroup, h *Handler) {
	router.POST("/password", h.SignInPassword)
	router.POST("/magic-link", h.MagicLink)
}

// RegisterRoutes registers the routes for a signed-in user
func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	router.POST("/auth/logout", h.Logout)
	router.GET("/me", h.Me)
}

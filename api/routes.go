package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/killallgit/fieldguide-api/api/auth"
	"github.com/killallgit/fieldguide-api/api/bookmarks"
	"github.com/killallgit/fieldguide-api/api/detail"
	"github.com/killallgit/fieldguide-api/api/editor"
	"github.com/killallgit/fieldguide-api/api/health"
	"github.com/killallgit/fieldguide-api/api/list"
	"github.com/killallgit/fieldguide-api/api/maps"
	"github.com/killallgit/fieldguide-api/api/preferences"
	"github.com/killallgit/fieldguide-api/api/search"
	"github.com/killallgit/fieldguide-api/api/tags"
	"github.com/killallgit/fieldguide-api/api/types"
	"github.com/killallgit/fieldguide-api/api/version"
	_ "github.com/killallgit/fieldguide-api/docs/swagger"
	"github.com/killallgit/fieldguide-api/pkg/config"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	if deps == nil {
		deps = &types.Dependencies{}
	}
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.Config{}
	}

	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine)

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	limit := func(rps, burst int) gin.HandlerFunc {
		if !cfg.RateLimiting.Enabled {
			return func(c *gin.Context) { c.Next() }
		}
		return PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, rps, burst)
	}
	rps, burst := cfg.RateLimiting.RPS, cfg.RateLimiting.Burst
	if rps <= 0 {
		rps, burst = 10, 20
	}

	// API v1 routes
	v1 := engine.Group("/api/v1")
	authHandler := auth.NewHandler(deps)

	// Sign-in is throttled hardest (1 req/s, burst of 5)
	auth.RegisterPublicRoutes(v1.Group("/auth", limit(1, 5)), authHandler)

	protected := v1.Group("", authHandler.AuthMiddleware(), limit(rps, burst))
	auth.RegisterRoutes(protected, authHandler)

	bookmarks.RegisterRoutes(protected.Group("/bookmarks"), deps)
	list.RegisterRoutes(protected.Group("/list"), deps)
	tags.RegisterRoutes(protected.Group("/tags"), deps)
	maps.RegisterRoutes(protected.Group("/map"), deps)
	editor.RegisterRoutes(protected.Group("/editor"), deps)
	detail.RegisterRoutes(protected.Group("/detail"), deps)
	preferences.RegisterRoutes(protected.Group("/preferences"), deps)

	// Search spends the Places quota (5 req/s, burst of 10)
	search.RegisterRoutes(protected.Group("/search", limit(5, 10)), deps)

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}

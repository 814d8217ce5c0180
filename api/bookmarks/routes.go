package bookmarks

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/fieldguide-api/api/types"
)

// RegisterRoutes registers bookmark store routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", Get(deps))
	router.POST("", Post(deps))
	router.POST("/reload", PostReload(deps))
	router.PUT("/order", PutOrder(deps))
	router.PUT("/:id", Put(deps))
	router.DELETE("/:id", Delete(deps))
}

package tags

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/fieldguide-api/api/types"
)

// RegisterRoutes registers tag filter routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", Get(deps))
	router.POST("/:tag/toggle", PostToggle(deps))
	router.DELETE("/active", DeleteActive(deps))
}

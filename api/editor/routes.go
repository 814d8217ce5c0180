package editor

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/fieldguide-api/api/types"
)

// RegisterRoutes registers bookmark form routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", Get(deps))
	router.PATCH("", Patch(deps))
	router.DELETE("", Delete(deps))
	router.POST("/add", PostAdd(deps))
	router.POST("/edit/:id", PostEdit(deps))
	router.POST("/submit", PostSubmit(deps))
	router.POST("/tags", PostTag(deps))
	router.POST("/tags/input", PostTagInput(deps))
	router.DELETE("/tags/:tag", DeleteTag(deps))
}

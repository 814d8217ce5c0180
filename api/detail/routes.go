package detail

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/fieldguide-api/api/types"
)

// RegisterRoutes registers detail view routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", Get(deps))
	router.DELETE("", Delete(deps))
	router.POST("/delete", PostDelete(deps))
	router.POST("/delete/confirm", PostDeleteConfirm(deps))
	router.POST("/delete/cancel", PostDeleteCancel(deps))
	router.POST("/edit", PostEdit(deps))
	router.POST("/:id", Post(deps))
}

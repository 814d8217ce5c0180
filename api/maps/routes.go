package maps

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/fieldguide-api/api/types"
)

// RegisterRoutes registers map surface routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", Get(deps))
	router.POST("/idle", PostIdle(deps))
	router.POST("/select/:id", PostSelect(deps))
	router.DELETE("/selection", DeleteSelection(deps))

	router.GET("/poi", GetPOI(deps))
	router.DELETE("/poi", DeletePOI(deps))
	router.POST("/poi/add", PostPOIAdd(deps))
	router.POST("/poi/:placeId", PostPOI(deps))
}

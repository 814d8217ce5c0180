package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Version is overridden at build time with -ldflags
var Version = "1.0.0"

// Get handles version requests
// @Summary      Service info
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       / [get]
func Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Field Guide API",
			"version":     Version,
			"description": "Backend for a personal map of bookmarked places",
			"status":      "running",
		})
	}
}

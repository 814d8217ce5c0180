package maps

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/fieldguide-api/api/types"
	"github.com/killallgit/fieldguide-api/internal/services/mapview"
)

// Get renders the map
// @Summary      Get map
// @Description  Camera position, selection, one marker per visible bookmark with coordinates, and the point of interest popup
// @Tags         map
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} types.MapResponse
// @Failure      401 {object} types.ErrorResponse
// @Router       /api/v1/map [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}
		types.SendSuccess(c, types.MapResponse{
			BaseResponse: types.OK("Map rendered"),
			MapState:     ws.Map(),
		})
	}
}

// PostIdle records the camera position
// @Summary      Report camera idle
// @Description  Record where the camera came to rest; the view is restored here when a bookmark selection is cleared
// @Tags         map
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body types.MapIdleRequest true "Camera position"
// @Success      200 {object} types.MapResponse
// @Failure      400 {object} types.ErrorResponse
// @Router       /api/v1/map/idle [post]
func PostIdle(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}

		var req types.MapIdleRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		ws.MapIdle(mapview.LatLng{Lat: req.Lat, Lng: req.Lng}, req.Zoom)
		types.SendSuccess(c, types.MapResponse{
			BaseResponse: types.OK("Camera recorded"),
			MapState:     ws.Map(),
		})
	}
}

// PostSelect selects a bookmark
// @Summary      Select bookmark
// @Description  Select a bookmark from a marker or list row: the camera pans and zooms to it, the popup closes and the detail view opens
// @Tags         map
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Bookmark ID"
// @Success      200 {object} types.MapResponse
// @Failure      404 {object} types.ErrorResponse
// @Router       /api/v1/map/select/{id} [post]
func PostSelect(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}
		if err := ws.SelectBookmark(c.Param("id")); err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, types.MapResponse{
			BaseResponse: types.OK("Bookmark selected"),
			MapState:     ws.Map(),
		})
	}
}

// DeleteSelection clears the selection
// @Summary      Clear selection
// @Description  Deselect, close the detail view and restore the camera recorded before the bookmark was selected
// @Tags         map
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} types.MapResponse
// @Router       /api/v1/map/selection [delete]
func DeleteSelection(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}
		ws.ClearSelection()
		types.SendSuccess(c, types.MapResponse{
			BaseResponse: types.OK("Selection cleared"),
			MapState:     ws.Map(),
		})
	}
}

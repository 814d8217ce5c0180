package maps

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/fieldguide-api/api/types"
)

// PostPOI opens the popup for a point of interest
// @Summary      Click point of interest
// @Description  Open the popup for a base-map point of interest and start fetching its details. Only the latest click is shown; a failed fetch closes the popup.
// @Tags         map
// @Security     BearerAuth
// @Produce      json
// @Param        placeId path string true "Google place ID"
// @Success      202 {object} types.PopupResponse
// @Router       /api/v1/map/poi/{placeId} [post]
func PostPOI(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}

		// the fetch outlives this request
		ws.ClickPOI(context.WithoutCancel(c.Request.Context()), c.Param("placeId"))
		c.JSON(http.StatusAccepted, types.PopupResponse{
			BaseResponse: types.OK("Loading place details"),
			Popup:        ws.Map().Popup,
		})
	}
}

// GetPOI returns the popup
// @Summary      Get point of interest popup
// @Description  Current popup state. With wait=true the call returns once pending detail fetches have finished.
// @Tags         map
// @Security     BearerAuth
// @Produce      json
// @Param        wait query bool false "Wait for pending fetches"
// @Success      200 {object} types.PopupResponse
// @Router       /api/v1/map/poi [get]
func GetPOI(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}
		if wait, _ := strconv.ParseBool(c.Query("wait")); wait {
			ws.WaitPOI()
		}
		types.SendSuccess(c, types.PopupResponse{
			BaseResponse: types.OK("Popup state"),
			Popup:        ws.Map().Popup,
		})
	}
}

// DeletePOI closes the popup
// @Summary      Close point of interest popup
// @Description  Dismiss the popup; a fetch still in flight is discarded
// @Tags         map
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} types.PopupResponse
// @Router       /api/v1/map/poi [delete]
func DeletePOI(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}
		ws.ClosePOI()
		types.SendSuccess(c, types.PopupResponse{
			BaseResponse: types.OK("Popup closed"),
			Popup:        ws.Map().Popup,
		})
	}
}

// PostPOIAdd turns the popup into an add form
// @Summary      Add point of interest to guide
// @Description  Open the add form pre-filled with the resolved popup's name, notes, coordinates and photo
// @Tags         map
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} types.EditorResponse
// @Failure      409 {object} types.ErrorResponse "Popup details are not loaded"
// @Router       /api/v1/map/poi/add [post]
func PostPOIAdd(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}
		state, err := ws.AddPOIToGuide()
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, types.EditorResponse{
			BaseResponse: types.OK("Add form opened"),
			Editor:       state,
		})
	}
}

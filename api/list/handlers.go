package list

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/fieldguide-api/api/types"
)

// Get renders the bookmark list
// @Summary      Get list
// @Description  Render the visible bookmarks as list rows with tag chips, thumbnail placeholders and the selected row
// @Tags         list
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} types.ListResponse
// @Failure      401 {object} types.ErrorResponse
// @Router       /api/v1/list [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}
		types.SendSuccess(c, types.ListResponse{
			BaseResponse: types.OK("List rendered"),
			ListState:    ws.List(),
		})
	}
}

// PostDrop applies a drag-and-drop
// @Summary      Drop a list row
// @Description  Move the dragged row to the position of the row it was dropped on and persist the new order. Dropping on itself or outside the list changes nothing.
// @Tags         list
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body types.DropRequest true "Dragged and target row"
// @Success      200 {object} types.DropResponse
// @Failure      400 {object} types.ErrorResponse
// @Failure      500 {object} types.ErrorResponse
// @Router       /api/v1/list/drop [post]
func PostDrop(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}

		var req types.DropRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		moved, err := ws.Drop(c.Request.Context(), req.ActiveID, req.OverID)
		if err != nil {
			types.SendError(c, err)
			return
		}

		message := "Order unchanged"
		if moved {
			message = "Order saved"
		}
		types.SendSuccess(c, types.DropResponse{
			BaseResponse: types.OK(message),
			Moved:        moved,
			ListState:    ws.List(),
		})
	}
}

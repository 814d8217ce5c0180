package detail

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/fieldguide-api/api/types"
	"github.com/killallgit/fieldguide-api/internal/services/workspace"
)

func sendDetail(c *gin.Context, state workspace.DetailState, message string) {
	types.SendSuccess(c, types.DetailResponse{
		BaseResponse: types.OK(message),
		DetailState:  state,
	})
}

// Get returns the detail card
// @Summary      Get detail view
// @Description  The expanded card for the selected bookmark, including whether a delete is awaiting confirmation
// @Tags         detail
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} types.DetailResponse
// @Router       /api/v1/detail [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}
		sendDetail(c, ws.Detail(), "Detail state")
	}
}

// Post opens the detail view for a bookmark
// @Summary      Open detail view
// @Description  Expand a bookmark; this also selects it on the map
// @Tags         detail
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Bookmark ID"
// @Success      200 {object} types.DetailResponse
// @Failure      404 {object} types.ErrorResponse
// @Router       /api/v1/detail/{id} [post]
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}
		state, err := ws.OpenDetail(c.Param("id"))
		if err != nil {
			types.SendError(c, err)
			return
		}
		sendDetail(c, state, "Detail opened")
	}
}

// Delete closes the detail view
// @Summary      Close detail view
// @Description  Collapse the card and clear the map selection
// @Tags         detail
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} types.DetailResponse
// @Router       /api/v1/detail [delete]
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}
		ws.CloseDetail()
		sendDetail(c, ws.Detail(), "Detail closed")
	}
}

// PostDelete asks for delete confirmation
// @Summary      Request delete
// @Description  Show the delete confirmation for the open bookmark; nothing is deleted yet
// @Tags         detail
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} types.DetailResponse
// @Failure      409 {object} types.ErrorResponse "No bookmark is open"
// @Router       /api/v1/detail/delete [post]
func PostDelete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}
		state, err := ws.RequestDelete()
		if err != nil {
			types.SendError(c, err)
			return
		}
		sendDetail(c, state, "Confirm delete")
	}
}

// PostDeleteConfirm deletes the open bookmark
// @Summary      Confirm delete
// @Description  Delete the open bookmark after a delete request, then close the detail view
// @Tags         detail
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} types.DetailResponse
// @Failure      409 {object} types.ErrorResponse "Delete was not requested"
// @Failure      500 {object} types.ErrorResponse
// @Router       /api/v1/detail/delete/confirm [post]
func PostDeleteConfirm(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}
		if err := ws.ConfirmDelete(c.Request.Context()); err != nil {
			types.SendError(c, err)
			return
		}
		sendDetail(c, ws.Detail(), "Bookmark deleted")
	}
}

// PostDeleteCancel dismisses the confirmation
// @Summary      Cancel delete
// @Description  Hide the delete confirmation
// @Tags         detail
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} types.DetailResponse
// @Router       /api/v1/detail/delete/cancel [post]
func PostDeleteCancel(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}
		sendDetail(c, ws.CancelDelete(), "Delete cancelled")
	}
}

// PostEdit opens the edit form for the open bookmark
// @Summary      Edit from detail view
// @Description  Open the edit form for the bookmark shown in the detail view
// @Tags         detail
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} types.EditorResponse
// @Failure      409 {object} types.ErrorResponse "No bookmark is open"
// @Router       /api/v1/detail/edit [post]
func PostEdit(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}
		state, err := ws.EditFromDetail()
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, types.EditorResponse{
			BaseResponse: types.OK("Edit form opened"),
			Editor:       state,
		})
	}
}

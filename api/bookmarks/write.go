package bookmarks

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/fieldguide-api/api/types"
	"github.com/killallgit/fieldguide-api/internal/models"
)

// Post creates a bookmark
// @Summary      Create bookmark
// @Description  Insert a bookmark, then its tags. When only the tag step fails the bookmark is kept and the response is marked partial.
// @Tags         bookmarks
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body models.BookmarkForm true "Bookmark fields"
// @Success      201 {object} types.BookmarkWriteResponse
// @Failure      400 {object} types.ErrorResponse
// @Failure      401 {object} types.ErrorResponse
// @Failure      500 {object} types.ErrorResponse
// @Router       /api/v1/bookmarks [post]
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}

		var form models.BookmarkForm
		if !types.BindJSONOrError(c, &form) {
			return
		}

		result, err := ws.Create(c.Request.Context(), form)
		if err != nil {
			types.SendError(c, err)
			return
		}
		c.JSON(http.StatusCreated, types.NewBookmarkWriteResponse(result, "Bookmark created"))
	}
}

// Put replaces a bookmark and its tag set
// @Summary      Update bookmark
// @Description  Replace every field of a bookmark, then replace its tags
// @Tags         bookmarks
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "Bookmark ID"
// @Param        request body models.BookmarkForm true "Bookmark fields"
// @Success      200 {object} types.BookmarkWriteResponse
// @Failure      400 {object} types.ErrorResponse
// @Failure      404 {object} types.ErrorResponse
// @Failure      500 {object} types.ErrorResponse
// @Router       /api/v1/bookmarks/{id} [put]
func Put(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}

		var form models.BookmarkForm
		if !types.BindJSONOrError(c, &form) {
			return
		}

		result, err := ws.Update(c.Request.Context(), c.Param("id"), form)
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, types.NewBookmarkWriteResponse(result, "Bookmark updated"))
	}
}

// Delete removes a bookmark
// @Summary      Delete bookmark
// @Description  Delete a bookmark and its tags
// @Tags         bookmarks
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Bookmark ID"
// @Success      200 {object} types.BaseResponse
// @Failure      404 {object} types.ErrorResponse
// @Failure      500 {object} types.ErrorResponse
// @Router       /api/v1/bookmarks/{id} [delete]
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}
		if err := ws.Delete(c.Request.Context(), c.Param("id")); err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, types.OK("Bookmark deleted"))
	}
}

// PutOrder renumbers the list in the given order
// @Summary      Reorder bookmarks
// @Description  Assign weight index*10 to each bookmark in the given order, one update at a time. A failure stops the remaining updates and the list is reloaded either way.
// @Tags         bookmarks
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body types.ReorderRequest true "Bookmark IDs in display order"
// @Success      200 {object} types.BookmarksResponse
// @Failure      400 {object} types.ErrorResponse
// @Failure      404 {object} types.ErrorResponse
// @Failure      500 {object} types.ErrorResponse
// @Router       /api/v1/bookmarks/order [put]
func PutOrder(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}

		var req types.ReorderRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		if err := ws.Reorder(c.Request.Context(), req.IDs); err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, types.BookmarksResponse{
			BaseResponse:   types.OK("Bookmarks reordered"),
			BookmarksState: ws.Bookmarks(),
		})
	}
}

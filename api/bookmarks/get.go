package bookmarks

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/fieldguide-api/api/types"
)

// Get returns the signed-in user's bookmarks
// @Summary      List bookmarks
// @Description  Return every bookmark in display order with the tag filter applied to visible. A failed load keeps the previous list and reports load_error.
// @Tags         bookmarks
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} types.BookmarksResponse
// @Failure      401 {object} types.ErrorResponse
// @Router       /api/v1/bookmarks [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}
		types.SendSuccess(c, types.BookmarksResponse{
			BaseResponse:   types.OK("Bookmarks loaded"),
			BookmarksState: ws.Bookmarks(),
		})
	}
}

// PostReload re-reads the list from the store
// @Summary      Reload bookmarks
// @Description  Replace the loaded list with a fresh read from the bookmark store
// @Tags         bookmarks
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} types.BookmarksResponse
// @Failure      401 {object} types.ErrorResponse
// @Failure      500 {object} types.ErrorResponse
// @Router       /api/v1/bookmarks/reload [post]
func PostReload(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}
		if err := ws.Reload(c.Request.Context()); err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, types.BookmarksResponse{
			BaseResponse:   types.OK("Bookmarks reloaded"),
			BookmarksState: ws.Bookmarks(),
		})
	}
}

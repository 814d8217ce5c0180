package tags

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/fieldguide-api/api/types"
	"github.com/killallgit/fieldguide-api/internal/services/workspace"
)

// Get lists every tag and the active filter
// @Summary      Get tags
// @Description  Every tag used by the user's bookmarks, sorted, plus the tags currently filtering the list and map
// @Tags         tags
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} types.TagsResponse
// @Failure      401 {object} types.ErrorResponse
// @Router       /api/v1/tags [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}
		types.SendSuccess(c, tagsResponse(ws, "Tags loaded"))
	}
}

// PostToggle flips one tag in the filter
// @Summary      Toggle tag filter
// @Description  Add the tag to the active filter, or remove it when already active. Bookmarks with any active tag stay visible.
// @Tags         tags
// @Security     BearerAuth
// @Produce      json
// @Param        tag path string true "Tag"
// @Success      200 {object} types.TagToggleResponse
// @Failure      400 {object} types.ErrorResponse
// @Router       /api/v1/tags/{tag}/toggle [post]
func PostToggle(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}

		tag := c.Param("tag")
		if tag == "" {
			types.SendBadRequest(c, "Tag is required")
			return
		}

		active := ws.ToggleTag(tag)
		types.SendSuccess(c, types.TagToggleResponse{
			TagsResponse: tagsResponse(ws, "Filter updated"),
			Tag:          tag,
			Active:       active,
		})
	}
}

// DeleteActive clears the filter
// @Summary      Clear tag filter
// @Description  Deactivate every tag so all bookmarks are visible
// @Tags         tags
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} types.TagsResponse
// @Router       /api/v1/tags/active [delete]
func DeleteActive(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}
		ws.ClearTags()
		types.SendSuccess(c, tagsResponse(ws, "Filter cleared"))
	}
}

func tagsResponse(ws *workspace.Workspace, message string) types.TagsResponse {
	state := ws.Bookmarks()
	return types.TagsResponse{
		BaseResponse: types.OK(message),
		AllTags:      state.AllTags,
		ActiveTags:   state.ActiveTags,
	}
}

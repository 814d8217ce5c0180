package editor

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/killallgit/fieldguide-api/api/types"
	"github.com/killallgit/fieldguide-api/internal/services/editor"
	"github.com/killallgit/fieldguide-api/internal/services/workspace"
)

var validate = validator.New()

// Get returns the open form
// @Summary      Get editor
// @Description  The open add or edit form with its color preview, presets, tag suggestions and submit state. editor is null when no form is open.
// @Tags         editor
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} types.EditorResponse
// @Router       /api/v1/editor [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}
		types.SendSuccess(c, types.EditorResponse{
			BaseResponse: types.OK("Editor state"),
			Editor:       ws.Editor(),
		})
	}
}

// PostAdd opens an add form
// @Summary      Open add form
// @Description  Open an empty add form, or one pre-filled from a place
// @Tags         editor
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body types.OpenAddRequest false "Optional place to pre-fill from"
// @Success      200 {object} types.EditorResponse
// @Failure      400 {object} types.ErrorResponse
// @Router       /api/v1/editor/add [post]
func PostAdd(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}

		var req types.OpenAddRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			types.SendBadRequest(c, "Invalid request body")
			return
		}

		types.SendSuccess(c, types.EditorResponse{
			BaseResponse: types.OK("Add form opened"),
			Editor:       ws.OpenAdd(req.Place),
		})
	}
}

// PostEdit opens the edit form for a bookmark
// @Summary      Open edit form
// @Description  Open the edit form pre-filled from a loaded bookmark
// @Tags         editor
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Bookmark ID"
// @Success      200 {object} types.EditorResponse
// @Failure      404 {object} types.ErrorResponse
// @Router       /api/v1/editor/edit/{id} [post]
func PostEdit(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}
		state, err := ws.OpenEdit(c.Param("id"))
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

// Patch changes form fields
// @Summary      Edit form fields
// @Description  Set any of the form's fields. A color without a leading # gets one; clear_latitude and clear_longitude empty a coordinate.
// @Tags         editor
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body editor.Patch true "Fields to change"
// @Success      200 {object} types.EditorResponse
// @Failure      400 {object} types.ErrorResponse
// @Failure      409 {object} types.ErrorResponse "No form is open"
// @Router       /api/v1/editor [patch]
func Patch(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}

		var patch editor.Patch
		if !types.BindJSONOrError(c, &patch) {
			return
		}
		if err := validate.Struct(patch); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Invalid field value",
				Details: err.Error(),
			})
			return
		}

		editForm(c, ws.EditForm, patch.Apply, "Form updated")
	}
}

// PostTag adds a tag
// @Summary      Add tag
// @Description  Add a tag to the form, as clicking a suggestion does. Tags are lowercased and kept unique.
// @Tags         editor
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body types.TagRequest true "Tag"
// @Success      200 {object} types.EditorResponse
// @Failure      409 {object} types.ErrorResponse "No form is open"
// @Router       /api/v1/editor/tags [post]
func PostTag(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}

		var req types.TagRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		editForm(c, ws.EditForm, func(f *editor.Form) { f.AddSuggestion(req.Tag) }, "Tag added")
	}
}

// PostTagInput types into the tag input
// @Summary      Type tag input
// @Description  Append text to the tag input; a comma or newline commits the tag before it. commit adds what remains.
// @Tags         editor
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body types.TagInputRequest true "Typed text"
// @Success      200 {object} types.EditorResponse
// @Failure      409 {object} types.ErrorResponse "No form is open"
// @Router       /api/v1/editor/tags/input [post]
func PostTagInput(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}

		var req types.TagInputRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		editForm(c, ws.EditForm, func(f *editor.Form) {
			f.TypeTagInput(req.Text)
			if req.Commit {
				f.AddTag()
			}
		}, "Tag input updated")
	}
}

// DeleteTag removes a tag
// @Summary      Remove tag
// @Description  Remove a tag from the form
// @Tags         editor
// @Security     BearerAuth
// @Produce      json
// @Param        tag path string true "Tag"
// @Success      200 {object} types.EditorResponse
// @Failure      409 {object} types.ErrorResponse "No form is open"
// @Router       /api/v1/editor/tags/{tag} [delete]
func DeleteTag(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}
		tag := c.Param("tag")
		editForm(c, ws.EditForm, func(f *editor.Form) { f.RemoveTag(tag) }, "Tag removed")
	}
}

// PostSubmit saves the form
// @Summary      Submit form
// @Description  Create or update the bookmark from the open form. The form closes once the bookmark is saved, even when its tags were not.
// @Tags         editor
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} types.BookmarkWriteResponse
// @Failure      400 {object} types.ErrorResponse "Name is empty or a save is in progress"
// @Failure      409 {object} types.ErrorResponse "No form is open"
// @Failure      500 {object} types.ErrorResponse
// @Router       /api/v1/editor/submit [post]
func PostSubmit(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}
		result, err := ws.SubmitForm(c.Request.Context())
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, types.NewBookmarkWriteResponse(result, "Bookmark saved"))
	}
}

// Delete closes the form without saving
// @Summary      Cancel form
// @Description  Close the open form without saving
// @Tags         editor
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} types.EditorResponse
// @Router       /api/v1/editor [delete]
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}
		ws.CancelForm()
		types.SendSuccess(c, types.EditorResponse{BaseResponse: types.OK("Form closed")})
	}
}

// editForm applies fn through the workspace and sends the resulting form
func editForm(c *gin.Context, edit func(func(*editor.Form)) (*workspace.EditorState, error), fn func(*editor.Form), message string) {
	state, err := edit(fn)
	if err != nil {
		types.SendError(c, err)
		return
	}
	types.SendSuccess(c, types.EditorResponse{
		BaseResponse: types.OK(message),
		Editor:       state,
	})
}

package search

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/fieldguide-api/api/types"
	"github.com/killallgit/fieldguide-api/internal/services/places"
)

// searchTimeout bounds one autocomplete or details lookup
const searchTimeout = 15 * time.Second

// Get returns search box predictions
// @Summary      Search places
// @Description  Autocomplete predictions for the search box, biased to the configured region. A blank query returns no predictions.
// @Tags         search
// @Security     BearerAuth
// @Produce      json
// @Param        q query string false "Text typed so far"
// @Success      200 {object} types.SuggestionsResponse
// @Failure      429 {object} types.ErrorResponse
// @Failure      502 {object} types.ErrorResponse
// @Failure      504 {object} types.ErrorResponse "Gateway timeout - search request timed out"
// @Router       /api/v1/search [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}

		query := c.Query("q")
		ctx, cancel := context.WithTimeout(c.Request.Context(), searchTimeout)
		defer cancel()

		suggestions, err := ws.Suggest(ctx, query)
		if err != nil {
			types.SendError(c, err)
			return
		}
		if suggestions == nil {
			suggestions = []places.Suggestion{}
		}

		types.SendSuccess(c, types.SuggestionsResponse{
			BaseResponse: types.OK("Search completed"),
			Query:        strings.TrimSpace(query),
			Suggestions:  suggestions,
			Count:        len(suggestions),
		})
	}
}

// PostSelect resolves a prediction and opens the add form with it
// @Summary      Select search result
// @Description  Fetch the chosen place's details and open the add form pre-filled with its name, notes, coordinates and photo
// @Tags         search
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body types.SearchSelectRequest true "Chosen prediction"
// @Success      200 {object} types.EditorResponse
// @Failure      400 {object} types.ErrorResponse
// @Failure      404 {object} types.ErrorResponse
// @Failure      502 {object} types.ErrorResponse
// @Router       /api/v1/search/select [post]
func PostSelect(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, ok := types.CurrentWorkspace(c, deps)
		if !ok {
			return
		}

		var req types.SearchSelectRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), searchTimeout)
		defer cancel()

		state, err := ws.SelectPlace(ctx, req.PlaceID)
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

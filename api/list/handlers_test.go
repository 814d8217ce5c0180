package list

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/fieldguide-api/api/apitest"
	"github.com/killallgit/fieldguide-api/api/types"
	"github.com/killallgit/fieldguide-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowNames(state types.ListResponse) []string {
	out := make([]string, len(state.Rows))
	for i, r := range state.Rows {
		out[i] = r.Name
	}
	return out
}

func TestList(t *testing.T) {
	deps := apitest.NewDependencies(t)
	router := apitest.Router(func(v1 *gin.RouterGroup) {
		RegisterRoutes(v1.Group("/list"), deps)
	})
	ws := apitest.Workspace(deps)
	ctx := context.Background()

	w := apitest.Do(router, http.MethodGet, "/api/v1/list", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, apitest.Decode[types.ListResponse](t, w).Empty)

	ids := map[string]string{}
	for _, name := range []string{"Alpha", "bravo", "Charlie"} {
		result, err := ws.Create(ctx, models.BookmarkForm{Name: name, Tags: []string{"x"}})
		require.NoError(t, err)
		ids[name] = result.Bookmark.ID
	}

	w = apitest.Do(router, http.MethodGet, "/api/v1/list", nil)
	state := apitest.Decode[types.ListResponse](t, w)
	assert.False(t, state.Empty)
	assert.Equal(t, []string{"Alpha", "bravo", "Charlie"}, rowNames(state))
	assert.Equal(t, "B", state.Rows[1].Placeholder)

	t.Run("drop moves a row", func(t *testing.T) {
		w := apitest.Do(router, http.MethodPost, "/api/v1/list/drop", types.DropRequest{ActiveID: ids["Charlie"], OverID: ids["Alpha"]})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := apitest.Decode[types.DropResponse](t, w)
		assert.True(t, resp.Moved)
		assert.Equal(t, []string{"Charlie", "Alpha", "bravo"}, []string{resp.Rows[0].Name, resp.Rows[1].Name, resp.Rows[2].Name})
	})

	t.Run("drop on itself is a no-op", func(t *testing.T) {
		w := apitest.Do(router, http.MethodPost, "/api/v1/list/drop", types.DropRequest{ActiveID: ids["Alpha"], OverID: ids["Alpha"]})
		require.Equal(t, http.StatusOK, w.Code)
		assert.False(t, apitest.Decode[types.DropResponse](t, w).Moved)
	})

	t.Run("drop outside the list is a no-op", func(t *testing.T) {
		w := apitest.Do(router, http.MethodPost, "/api/v1/list/drop", types.DropRequest{ActiveID: ids["Alpha"]})
		require.Equal(t, http.StatusOK, w.Code)
		assert.False(t, apitest.Decode[types.DropResponse](t, w).Moved)
	})

	t.Run("missing active id", func(t *testing.T) {
		w := apitest.Do(router, http.MethodPost, "/api/v1/list/drop", map[string]string{"over_id": ids["Alpha"]})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

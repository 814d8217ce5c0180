package preferences

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/fieldguide-api/api/types"
	"github.com/killallgit/fieldguide-api/internal/models"
)

func service(c *gin.Context, deps *types.Dependencies) bool {
	if deps.Preferences == nil {
		types.SendUnavailable(c, "Preferences are not configured")
		return false
	}
	if types.UserID(c) == "" {
		types.SendUnauthorized(c, "Authentication required")
		return false
	}
	return true
}

// Get returns the user's music settings
// @Summary      Get preferences
// @Description  Music autoplay and volume; defaults are returned when nothing is stored
// @Tags         preferences
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} types.PreferencesResponse
// @Router       /api/v1/preferences [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !service(c, deps) {
			return
		}
		pref, err := deps.Preferences.Get(c.Request.Context(), types.UserID(c))
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, types.PreferencesResponse{
			BaseResponse: types.OK("Preferences"),
			Preferences:  pref,
		})
	}
}

// Put updates the user's music settings
// @Summary      Update preferences
// @Description  Set music_stopped, volume or both. Volume is clamped to [0,1].
// @Tags         preferences
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body types.PreferencesRequest true "Settings to change"
// @Success      200 {object} types.PreferencesResponse
// @Failure      400 {object} types.ErrorResponse
// @Router       /api/v1/preferences [put]
func Put(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !service(c, deps) {
			return
		}
		var req types.PreferencesRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}
		if req.MusicStopped == nil && req.Volume == nil {
			types.SendBadRequest(c, "Nothing to update")
			return
		}

		ctx, userID := c.Request.Context(), types.UserID(c)
		var (
			pref *models.Preference
			err  error
		)
		if req.MusicStopped != nil {
			if pref, err = deps.Preferences.SetMusicStopped(ctx, userID, *req.MusicStopped); err != nil {
				types.SendError(c, err)
				return
			}
		}
		if req.Volume != nil {
			if pref, err = deps.Preferences.SetVolume(ctx, userID, *req.Volume); err != nil {
				types.SendError(c, err)
				return
			}
		}
		types.SendSuccess(c, types.PreferencesResponse{
			BaseResponse: types.OK("Preferences updated"),
			Preferences:  pref,
		})
	}
}

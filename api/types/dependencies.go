package types

import (
	"github.com/killallgit/fieldguide-api/internal/database"
	"github.com/killallgit/fieldguide-api/internal/services/auth"
	"github.com/killallgit/fieldguide-api/internal/services/cache"
	"github.com/killallgit/fieldguide-api/internal/services/preferences"
	"github.com/killallgit/fieldguide-api/internal/services/workspace"
	"github.com/killallgit/fieldguide-api/pkg/config"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB          *database.DB
	Validator   *auth.Validator
	Identity    auth.IdentityProvider
	Workspaces  *workspace.Manager
	Preferences preferences.Service
	PlaceCache  cache.StatsProvider
	Config      *config.Config
}

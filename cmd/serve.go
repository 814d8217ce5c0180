package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/killallgit/fieldguide-api/api"
	"github.com/killallgit/fieldguide-api/api/types"
	apiversion "github.com/killallgit/fieldguide-api/api/version"
	"github.com/killallgit/fieldguide-api/internal/database"
	"github.com/killallgit/fieldguide-api/internal/services/auth"
	"github.com/killallgit/fieldguide-api/internal/services/bookmarks"
	"github.com/killallgit/fieldguide-api/internal/services/cache"
	"github.com/killallgit/fieldguide-api/internal/services/cleanup"
	"github.com/killallgit/fieldguide-api/internal/services/mapview"
	"github.com/killallgit/fieldguide-api/internal/services/places"
	"github.com/killallgit/fieldguide-api/internal/services/preferences"
	"github.com/killallgit/fieldguide-api/internal/services/search"
	"github.com/killallgit/fieldguide-api/internal/services/workspace"
	"github.com/killallgit/fieldguide-api/pkg/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long: `Start the Field Guide API server with the configured settings.

The database schema is migrated on startup. Bookmarks are stored in the
configured database, or in Supabase when store.backend is "supabase".

Example:
  fieldguide serve
  fieldguide serve --port 9090
  fieldguide serve --host 0.0.0.0 --port 8080`,
		RunE: runServer,
	}

	serveCmd.Flags().String("host", "", "server host (overrides config)")
	serveCmd.Flags().Int("port", 0, "server port (overrides config)")
	return serveCmd
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}
	if host, _ := cmd.Flags().GetString("host"); host != "" {
		cfg.Server.Host = host
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Server.Port = port
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if Version != "dev" {
		apiversion.Version = Version
	}

	deps, err := buildDependencies(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if c, ok := deps.PlaceCache.(*cache.MemoryCache); ok {
			c.Stop()
		}
		if err := deps.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close database")
		}
	}()

	if cfg.Workspaces.IdleTTL > 0 {
		sweeper := cleanup.NewService(deps.Workspaces, cfg.Workspaces.IdleTTL, cfg.Workspaces.SweepInterval)
		sweeper.Start(context.Background())
		defer sweeper.Stop()
	}

	server := api.NewServer(cfg)
	server.SetDependencies(deps)
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	// Channel to listen for interrupt signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Channel to receive server errors
	serverErr := make(chan error, 1)

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	log.Info().
		Str("addr", server.Addr()).
		Str("store", cfg.Store.Backend).
		Str("database", cfg.Database.Driver).
		Msg("Field Guide API server started")

	var runErr error
	select {
	case <-stop:
		log.Info().Msg("Shutting down server")
	case runErr = <-serverErr:
		log.Error().Err(runErr).Msg("Server failed, shutting down")
	}

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return err
	}

	log.Info().Msg("Server gracefully stopped")
	return runErr
}

// buildDependencies opens and migrates the database and wires every
// service the handlers use
func buildDependencies(cfg *config.Config) (*types.Dependencies, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	var repo bookmarks.Repository
	switch cfg.Store.Backend {
	case "supabase":
		repo = bookmarks.NewPostgrestRepository(cfg.Supabase.URL, cfg.Supabase.AnonKey, cfg.Supabase.Schema, auth.AccessToken)
	default:
		repo = bookmarks.NewRepository(db.DB)
	}

	client := places.NewClient(places.Config{
		APIKey:            cfg.Places.APIKey,
		BaseURL:           cfg.Places.BaseURL,
		LanguageCode:      cfg.Places.LanguageCode,
		Timeout:           cfg.Places.Timeout,
		RequestsPerMinute: cfg.Places.RequestsPerMinute,
	})
	var resolver interface {
		mapview.DetailFetcher
		search.PlaceResolver
	} = places.NewResolver(client, cfg.Places.PhotoMaxHeight)
	var placeCache *cache.MemoryCache
	if cfg.Places.CacheTTL > 0 {
		placeCache = cache.NewMemoryCache(cfg.Places.CacheEntries, cfg.Places.CacheTTL)
		resolver = places.NewCachedResolver(places.NewResolver(client, cfg.Places.PhotoMaxHeight), placeCache, cfg.Places.CacheTTL)
	}

	deps := &types.Dependencies{
		DB:     db,
		Config: cfg,
		Workspaces: workspace.NewManager(workspace.Dependencies{
			Bookmarks:   bookmarks.NewService(repo),
			Details:     resolver,
			Completer:   client,
			Resolver:    resolver,
			SearchBias:  places.Bounds(cfg.Places.Bias),
			MapDefaults: mapview.DefaultsFromConfig(cfg.Map),
		}),
		Preferences: preferences.NewService(preferences.NewRepository(db.DB), cfg.Preferences.DefaultVolume),
	}
	if placeCache != nil {
		deps.PlaceCache = placeCache
	}

	sb := cfg.Supabase
	if sb.JWKSURL != "" || sb.JWTSecret != "" || sb.DevAuthToken != "" {
		validator, err := auth.NewValidator(auth.ValidatorOptions{
			JWKSURL:      sb.JWKSURL,
			JWTSecret:    sb.JWTSecret,
			DevAuthToken: sb.DevAuthToken,
		})
		if err != nil {
			if placeCache != nil {
				placeCache.Stop()
			}
			_ = db.Close()
			return nil, fmt.Errorf("failed to create token validator: %w", err)
		}
		deps.Validator = validator
		if validator.DevAuthEnabled() {
			log.Warn().Str("user_id", auth.DevUserID).Msg("Dev auth token is enabled")
		}
	} else {
		log.Warn().Msg("No token validation configured; signed-in routes will return 503")
	}

	if sb.URL != "" {
		deps.Identity = auth.NewGoTrueProvider(sb.URL, sb.AnonKey, cfg.Places.Timeout)
	} else {
		log.Warn().Msg("supabase.url is not set; sign-in routes will return 503")
	}

	return deps, nil
}

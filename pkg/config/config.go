package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var (
	once    sync.Once
	initErr error
)

// EnvPrefix is the prefix for environment variable overrides (FIELDGUIDE_SERVER_PORT, ...)
const EnvPrefix = "FIELDGUIDE"

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		initErr = load()
	})

	return initErr
}

// Reset clears the loaded configuration so Init can run again (tests only)
func Reset() {
	viper.Reset()
	once = sync.Once{}
	initErr = nil
}

func load() error {
	// .env is optional; values already in the environment win
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("Failed to load .env file, using existing environment variables")
	}

	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	configPath := filepath.Clean("./config/settings.yaml")
	viper.SetConfigFile(configPath)

	if err := viper.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
	}

	if err := validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	switch viper.GetString("database.driver") {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver: %q", viper.GetString("database.driver"))
	}

	switch viper.GetString("store.backend") {
	case "database":
	case "supabase":
		if viper.GetString("supabase.url") == "" {
			return fmt.Errorf("store.backend=supabase requires supabase.url")
		}
	default:
		return fmt.Errorf("unsupported store backend: %q", viper.GetString("store.backend"))
	}

	env := viper.GetString("environment")
	isProduction := env == "production" || env == "prod"
	if isPlaceholder(viper.GetString("places.api_key")) {
		if isProduction {
			return fmt.Errorf("invalid Places API key: cannot use placeholder values in production")
		}
		log.Warn().Msg("Places API key is not configured; search and POI details will fail")
	}

	if v := viper.GetFloat64("preferences.default_volume"); v < 0 || v > 1 {
		viper.Set("preferences.default_volume", 0.5)
	}

	return nil
}

func isPlaceholder(v string) bool {
	switch v {
	case "", "YOUR_KEY_HERE", "YOUR_API_KEY", "changeme", "CHANGEME":
		return true
	}
	return false
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Store.Backend == "supabase" && c.Supabase.URL == "" {
		return fmt.Errorf("store.backend=supabase requires supabase.url")
	}
	if c.Database.Driver == "postgres" && c.Database.DSN == "" {
		return fmt.Errorf("database.driver=postgres requires database.dsn")
	}
	if c.Preferences.DefaultVolume < 0 || c.Preferences.DefaultVolume > 1 {
		c.Preferences.DefaultVolume = 0.5
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)
	viper.SetDefault("server.max_body_bytes", 1048576)

	// Database defaults
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.path", "./data/fieldguide.db")
	viper.SetDefault("database.dsn", "")
	viper.SetDefault("database.max_connections", 10)
	viper.SetDefault("database.max_idle_connections", 5)
	viper.SetDefault("database.connection_max_lifetime", 30*time.Minute)
	viper.SetDefault("database.log_queries", false)

	// Store defaults
	viper.SetDefault("store.backend", "database")

	// Supabase defaults
	viper.SetDefault("supabase.url", "")
	viper.SetDefault("supabase.anon_key", "")
	viper.SetDefault("supabase.jwks_url", "")
	viper.SetDefault("supabase.jwt_secret", "")
	viper.SetDefault("supabase.schema", "public")
	viper.SetDefault("supabase.dev_auth_token", "")

	// Places defaults
	viper.SetDefault("places.api_key", "")
	viper.SetDefault("places.base_url", "https://places.googleapis.com/v1")
	viper.SetDefault("places.timeout", 10*time.Second)
	viper.SetDefault("places.requests_per_minute", 120)
	viper.SetDefault("places.photo_max_height", 400)
	viper.SetDefault("places.language_code", "en")
	viper.SetDefault("places.cache_ttl", time.Hour)
	viper.SetDefault("places.cache_entries", 500)

	viper.SetDefault("workspaces.idle_ttl", 2*time.Hour)
	viper.SetDefault("workspaces.sweep_interval", 5*time.Minute)
	viper.SetDefault("places.bias.north", 51.0)
	viper.SetDefault("places.bias.south", 45.5)
	viper.SetDefault("places.bias.west", -125.5)
	viper.SetDefault("places.bias.east", -118.0)

	// Map defaults
	viper.SetDefault("map.center_lat", 47.5)
	viper.SetDefault("map.center_lng", -122.0)
	viper.SetDefault("map.zoom", 7)
	viper.SetDefault("map.map_type", "hybrid")
	viper.SetDefault("map.map_id", "")
	viper.SetDefault("map.selected_zoom", 14)

	// Preferences defaults
	viper.SetDefault("preferences.default_volume", 0.5)

	// Rate limiting defaults
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.rps", 10)
	viper.SetDefault("rate_limiting.burst", 20)

	// Security defaults
	viper.SetDefault("security.enable_cors", true)
	viper.SetDefault("security.cors_origins", []string{"*"})
	viper.SetDefault("security.cors_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	viper.SetDefault("security.cors_headers", []string{"Content-Type", "Authorization"})

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
}

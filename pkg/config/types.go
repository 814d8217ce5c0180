package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment  string            `mapstructure:"environment"`
	Server       ServerConfig      `mapstructure:"server"`
	Database     DatabaseConfig    `mapstructure:"database"`
	Store        StoreConfig       `mapstructure:"store"`
	Supabase     SupabaseConfig    `mapstructure:"supabase"`
	Places       PlacesConfig      `mapstructure:"places"`
	Map          MapConfig         `mapstructure:"map"`
	Preferences  PreferencesConfig `mapstructure:"preferences"`
	Workspaces   WorkspacesConfig  `mapstructure:"workspaces"`
	RateLimiting RateLimitConfig   `mapstructure:"rate_limiting"`
	Security     SecurityConfig    `mapstructure:"security"`
	Logging      LoggingConfig     `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Driver                string        `mapstructure:"driver"` // sqlite | postgres
	Path                  string        `mapstructure:"path"`   // sqlite file
	DSN                   string        `mapstructure:"dsn"`    // postgres connection string
	MaxConnections        int           `mapstructure:"max_connections"`
	MaxIdleConnections    int           `mapstructure:"max_idle_connections"`
	ConnectionMaxLifetime time.Duration `mapstructure:"connection_max_lifetime"`
	LogQueries            bool          `mapstructure:"log_queries"`
}

// StoreConfig selects where bookmark rows live
type StoreConfig struct {
	Backend string `mapstructure:"backend"` // database | supabase
}

// SupabaseConfig contains the backend-as-a-service project settings
type SupabaseConfig struct {
	URL          string `mapstructure:"url"`
	AnonKey      string `mapstructure:"anon_key"`
	JWKSURL      string `mapstructure:"jwks_url"`
	JWTSecret    string `mapstructure:"jwt_secret"`
	Schema       string `mapstructure:"schema"`
	DevAuthToken string `mapstructure:"dev_auth_token"`
}

// PlacesConfig contains Google Places API settings
type PlacesConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	PhotoMaxHeight    int           `mapstructure:"photo_max_height"`
	LanguageCode      string        `mapstructure:"language_code"`
	Bias              BoundsConfig  `mapstructure:"bias"`
	CacheTTL          time.Duration `mapstructure:"cache_ttl"` // 0 disables the details cache
	CacheEntries      int           `mapstructure:"cache_entries"`
}

// BoundsConfig is a lat/lng rectangle
type BoundsConfig struct {
	North float64 `mapstructure:"north"`
	South float64 `mapstructure:"south"`
	West  float64 `mapstructure:"west"`
	East  float64 `mapstructure:"east"`
}

// MapConfig contains default viewport settings for the map surface
type MapConfig struct {
	CenterLat    float64 `mapstructure:"center_lat"`
	CenterLng    float64 `mapstructure:"center_lng"`
	Zoom         int     `mapstructure:"zoom"`
	MapTypeID    string  `mapstructure:"map_type"`
	MapID        string  `mapstructure:"map_id"`
	SelectedZoom int     `mapstructure:"selected_zoom"`
}

// PreferencesConfig contains UI preference defaults
type PreferencesConfig struct {
	DefaultVolume float64 `mapstructure:"default_volume"`
}

// WorkspacesConfig controls how long idle per-user state is kept in memory
type WorkspacesConfig struct {
	IdleTTL       time.Duration `mapstructure:"idle_ttl"` // 0 keeps workspaces until sign-out
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// RateLimitConfig contains rate limiting settings
type RateLimitConfig struct {
	Enabled bool `mapstructure:"enabled"`
	RPS     int  `mapstructure:"rps"`
	Burst   int  `mapstructure:"burst"`
}

// SecurityConfig contains security settings
type SecurityConfig struct {
	EnableCORS  bool     `mapstructure:"enable_cors"`
	CORSOrigins []string `mapstructure:"cors_origins"`
	CORSMethods []string `mapstructure:"cors_methods"`
	CORSHeaders []string `mapstructure:"cors_headers"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json | console
}

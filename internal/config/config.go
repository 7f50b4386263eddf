// Package config defines service configuration and loading.
package config

// Store backend names accepted by the Store key.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Store selects the record store backend: memory or postgres.
	Store string `koanf:"store"`

	// DatabaseURL is the Postgres connection string; required when Store
	// is postgres.
	DatabaseURL string `koanf:"database_url"`

	// JWTSecret signs issued bearer tokens.
	JWTSecret string `koanf:"jwt_secret"`

	// AuthEnabled guards the API behind bearer tokens when true.
	AuthEnabled bool `koanf:"auth_enabled"`

	// DefaultPageSize applies when a list request omits limit.
	DefaultPageSize int `koanf:"default_page_size"`

	// MaxPageSize caps the limit query parameter.
	MaxPageSize int `koanf:"max_page_size"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":8080",
		Store:           StoreMemory,
		AuthEnabled:     true,
		DefaultPageSize: 10,
		MaxPageSize:     100,
	}
}

package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the meal tracking service.
// Environment variables are automatically parsed from the MEALTRACK_ prefix.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Database Configuration. DBDriver selects the backing store: sqlite,
	// postgres, or auto (postgres when a DSN is set, sqlite otherwise).
	DBDriver    string `envconfig:"DB_DRIVER" default:"auto"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"meals.db"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// Food catalog used for local nutrition lookups.
	CatalogPath string `envconfig:"CATALOG_PATH" default:"indian_foods.json"`

	// ResolverMode selects how meal text is resolved to nutrition facts:
	// local (catalog only), remote (Nutritionix only), or auto (catalog
	// first, Nutritionix fallback when credentials are configured).
	ResolverMode string `envconfig:"RESOLVER_MODE" default:"auto"`

	// Nutritionix Configuration
	NutritionixBaseURL string `envconfig:"NUTRITIONIX_BASE_URL" default:"https://trackapi.nutritionix.com"`
	NutritionixAppID   string `envconfig:"NUTRITIONIX_APP_ID" default:""`
	NutritionixAppKey  string `envconfig:"NUTRITIONIX_APP_KEY" default:""`

	// OpenAI reply formatting (optional; deterministic template when unset)
	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY" default:""`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com"`
	OpenAIModel   string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`

	// Timeouts (seconds)
	RemoteTimeoutSeconds    int `envconfig:"REMOTE_TIMEOUT_SECONDS" default:"15"`
	StoreTimeoutSeconds     int `envconfig:"STORE_TIMEOUT_SECONDS" default:"5"`
	BootstrapTimeoutSeconds int `envconfig:"BOOTSTRAP_TIMEOUT_SECONDS" default:"5"`

	// Health checking
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"5"`
}

// ResolveDefaults derives DBDriver when set to "auto" or empty and validates
// enum-valued fields.
func (c *Config) ResolveDefaults() error {
	if c.DBDriver == "" || c.DBDriver == "auto" {
		if c.PostgresDSN != "" {
			c.DBDriver = "postgres"
		} else {
			c.DBDriver = "sqlite"
		}
	}

	allowedDB := map[string]bool{"sqlite": true, "postgres": true}
	if !allowedDB[c.DBDriver] {
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	if c.DBDriver == "postgres" && c.PostgresDSN == "" {
		return fmt.Errorf("DB_DRIVER is postgres but POSTGRES_DSN is empty")
	}

	allowedMode := map[string]bool{"local": true, "remote": true, "auto": true}
	if !allowedMode[c.ResolverMode] {
		return fmt.Errorf("unsupported RESOLVER_MODE: %s", c.ResolverMode)
	}
	return nil
}

// New creates a new Config by parsing environment variables.
// Environment variables should be prefixed with MEALTRACK_
// Example: MEALTRACK_HTTP_PORT, MEALTRACK_DB_DRIVER
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("MEALTRACK", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Str("db_driver", cfg.DBDriver).
		Int("port", cfg.HTTPPort).
		Str("catalog_path", cfg.CatalogPath).
		Str("resolver_mode", cfg.ResolverMode).
		Bool("nutritionix_creds_present", cfg.HasNutritionixCredentials()).
		Bool("openai_key_present", cfg.OpenAIAPIKey != "").
		Bool("postgres_dsn_present", cfg.PostgresDSN != "").
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing
func NewForTesting() *Config {
	cfg := &Config{
		Environment: EnvTesting,
	}

	cfg.HTTPPort = 8080
	cfg.DBDriver = "sqlite"
	cfg.SQLitePath = "mealtrack_test.db"
	cfg.CatalogPath = "indian_foods.json"
	cfg.ResolverMode = "local"

	cfg.NutritionixBaseURL = "https://trackapi.nutritionix.com"
	cfg.OpenAIBaseURL = "https://api.openai.com"
	cfg.OpenAIModel = "gpt-4o-mini"

	cfg.RemoteTimeoutSeconds = 15
	cfg.StoreTimeoutSeconds = 5
	cfg.BootstrapTimeoutSeconds = 5
	cfg.HealthIntervalSeconds = 30
	cfg.HealthProbeTimeoutSeconds = 5

	return cfg
}

// HasNutritionixCredentials reports whether both Nutritionix headers are set.
func (c *Config) HasNutritionixCredentials() bool {
	return c.NutritionixAppID != "" && c.NutritionixAppKey != ""
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

package config

import (
	"os"
	"testing"
)

func TestConfigLoad_Defaults(t *testing.T) {
	// clear env vars
	_ = os.Unsetenv("MEALTRACK_DB_DRIVER")
	_ = os.Unsetenv("MEALTRACK_POSTGRES_DSN")
	_ = os.Unsetenv("MEALTRACK_RESOLVER_MODE")
	_ = os.Unsetenv("MEALTRACK_CATALOG_PATH")

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.DBDriver != "sqlite" || cfg.SQLitePath != "meals.db" || cfg.ResolverMode != "auto" {
		t.Fatalf("unexpected default config: %+v", cfg)
	}
	if cfg.CatalogPath != "indian_foods.json" {
		t.Fatalf("unexpected default catalog path: %s", cfg.CatalogPath)
	}
}

func TestConfigLoad_EnvOverride(t *testing.T) {
	_ = os.Setenv("MEALTRACK_CATALOG_PATH", "alt_catalog.json")
	defer func() { _ = os.Unsetenv("MEALTRACK_CATALOG_PATH") }()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.CatalogPath != "alt_catalog.json" {
		t.Fatalf("catalog path env override failed, got %s", cfg.CatalogPath)
	}
}

func TestConfigLoad_AutoDriverDerivesPostgres(t *testing.T) {
	_ = os.Setenv("MEALTRACK_POSTGRES_DSN", "postgres://u:p@localhost:5432/meals")
	defer func() { _ = os.Unsetenv("MEALTRACK_POSTGRES_DSN") }()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.DBDriver != "postgres" {
		t.Fatalf("auto driver derivation failed, got %s", cfg.DBDriver)
	}
}

func TestConfigLoad_PostgresWithoutDSNFails(t *testing.T) {
	_ = os.Setenv("MEALTRACK_DB_DRIVER", "postgres")
	_ = os.Unsetenv("MEALTRACK_POSTGRES_DSN")
	defer func() { _ = os.Unsetenv("MEALTRACK_DB_DRIVER") }()

	if _, err := New(); err == nil {
		t.Fatalf("expected error for postgres driver without DSN")
	}
}

func TestConfigLoad_RejectsUnknownResolverMode(t *testing.T) {
	_ = os.Setenv("MEALTRACK_RESOLVER_MODE", "psychic")
	defer func() { _ = os.Unsetenv("MEALTRACK_RESOLVER_MODE") }()

	if _, err := New(); err == nil {
		t.Fatalf("expected error for unknown resolver mode")
	}
}

func TestConfigLoad_RemoteTimeoutDefault(t *testing.T) {
	_ = os.Unsetenv("MEALTRACK_REMOTE_TIMEOUT_SECONDS")

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.RemoteTimeoutSeconds != 15 {
		t.Fatalf("unexpected default remote timeout: %d", cfg.RemoteTimeoutSeconds)
	}
}

func TestConfigLoad_RemoteTimeoutEnvOverride(t *testing.T) {
	_ = os.Setenv("MEALTRACK_REMOTE_TIMEOUT_SECONDS", "30")
	defer func() { _ = os.Unsetenv("MEALTRACK_REMOTE_TIMEOUT_SECONDS") }()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.RemoteTimeoutSeconds != 30 {
		t.Fatalf("remote timeout env override failed, got %d", cfg.RemoteTimeoutSeconds)
	}
}

package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Port)
	}
	if cfg.RegistryFile != ".env.ports" {
		t.Errorf("Expected default registry file .env.ports, got %s", cfg.RegistryFile)
	}
	if cfg.DBHost != "" {
		t.Errorf("Expected DB host unset by default, got %s", cfg.DBHost)
	}
	if cfg.ContainerFilter != "free-deep-research" {
		t.Errorf("Expected default container filter, got %s", cfg.ContainerFilter)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FDR_STATUS_PORT", "9090")
	t.Setenv("DB_HOST", "database")
	t.Setenv("SERPAPI_API_KEY", "key-123")

	cfg := Load()
	if cfg.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Port)
	}
	if cfg.DBHost != "database" {
		t.Errorf("Expected DB host database, got %s", cfg.DBHost)
	}
	if cfg.ExternalAPIKeys["serpapi"] != "key-123" {
		t.Errorf("Expected serpapi key to be picked up, got %q", cfg.ExternalAPIKeys["serpapi"])
	}
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("FDR_STATUS_PORT", "not-a-number")
	if cfg := Load(); cfg.Port != 8080 {
		t.Errorf("Expected fallback port 8080 on invalid value, got %d", cfg.Port)
	}
}

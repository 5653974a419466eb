// Package config loads the process-wide configuration from the environment.
package config

import (
	"log"
	"os"
	"strconv"
)

// Config is read once at process start and immutable afterwards.
type Config struct {
	// Port the status server listens on.
	Port int

	// RegistryFile is the KEY=VALUE port-assignment file, re-read per request.
	RegistryFile string

	// PostgreSQL connection parameters. An empty Host disables the check.
	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string

	// SQLitePath is the embedded fallback store.
	SQLitePath string

	// ContainerFilter selects deployment containers in runtime listings.
	ContainerFilter string

	// ServiceTableFile optionally overrides the built-in service table (YAML).
	ServiceTableFile string

	// ExternalAPIKeys maps external API names to configured credentials.
	ExternalAPIKeys map[string]string
}

// Load reads configuration from the environment. Defaults mirror the
// docker-compose deployment this daemon observes.
func Load() Config {
	return Config{
		Port:             envInt("FDR_STATUS_PORT", 8080),
		RegistryFile:     envStr("PORT_REGISTRY_FILE", ".env.ports"),
		DBHost:           os.Getenv("DB_HOST"),
		DBPort:           envInt("DB_PORT", 5432),
		DBName:           envStr("DB_NAME", "free_deep_research"),
		DBUser:           envStr("DB_USER", "fdr_user"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		SQLitePath:       envStr("SQLITE_DB_PATH", "/app/data/research.db"),
		ContainerFilter:  envStr("CONTAINER_NAME_FILTER", "free-deep-research"),
		ServiceTableFile: os.Getenv("SERVICE_TABLE_FILE"),
		ExternalAPIKeys: map[string]string{
			"openrouter": os.Getenv("OPENROUTER_API_KEY"),
			"serpapi":    os.Getenv("SERPAPI_API_KEY"),
			"jina":       os.Getenv("JINA_API_KEY"),
			"firecrawl":  os.Getenv("FIRECRAWL_API_KEY"),
			"tavily":     os.Getenv("TAVILY_API_KEY"),
			"exa":        os.Getenv("EXA_API_KEY"),
		},
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("WARN: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

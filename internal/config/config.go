// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/ingest.
//
// Every value has a default, so a bare environment reproduces the stock
// ingestion run: 15 workers, a 1000 second request timeout and the
// nba_player_career_stats.csv output file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Defaults
// --------------------------------------------------------------------------

const (
	DefaultStatsBaseURL      = "https://stats.nba.com/stats"
	DefaultRequestTimeout    = 1000 * time.Second
	DefaultRequestsPerSecond = 2.0
	DefaultWorkers           = 15
	DefaultOutputPath        = "nba_player_career_stats.csv"
)

// --------------------------------------------------------------------------
// Table names — single source of truth, matches db.EnsureSchema
// --------------------------------------------------------------------------

const (
	CareerSummariesTable = "career_summaries"
	CareerRunsTable      = "career_runs"
)

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Remote statistics service
	StatsBaseURL      string
	RequestTimeout    time.Duration
	RequestsPerSecond float64

	// Ingestion
	Workers     int
	OutputPath  string
	CatalogPath string // empty = full league index; "embedded" = bundled sample
	ActiveOnly  bool

	// Database (optional; only required for --persist and the API)
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting (API)
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Cache
	CacheEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		StatsBaseURL:      strings.TrimRight(envOr("NBA_STATS_BASE_URL", DefaultStatsBaseURL), "/"),
		RequestTimeout:    time.Duration(envInt("NBA_STATS_TIMEOUT_SECONDS", int(DefaultRequestTimeout/time.Second))) * time.Second,
		RequestsPerSecond: envFloat("NBA_STATS_REQUESTS_PER_SECOND", DefaultRequestsPerSecond),

		Workers:     envInt("INGEST_WORKERS", DefaultWorkers),
		OutputPath:  envOr("INGEST_OUTPUT_PATH", DefaultOutputPath),
		CatalogPath: envOr("PLAYER_CATALOG_PATH", ""),
		ActiveOnly:  envBool("INGEST_ACTIVE_ONLY", false),

		DatabaseURL:    envOr("DATABASE_URL", ""),
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 1),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		CacheEnabled: envBool("CACHE_ENABLED", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the ingestion settings that have no usable zero value.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("INGEST_WORKERS must be at least 1, got %d", c.Workers)
	}
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("NBA_STATS_REQUESTS_PER_SECOND must be positive, got %g", c.RequestsPerSecond)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("NBA_STATS_TIMEOUT_SECONDS must be positive")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("INGEST_OUTPUT_PATH must not be empty")
	}
	return nil
}

// RequireDatabase returns an error when no database URL is configured.
func (c *Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must be set")
	}
	return nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

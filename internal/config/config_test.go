package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"NBA_STATS_BASE_URL", "NBA_STATS_TIMEOUT_SECONDS", "NBA_STATS_REQUESTS_PER_SECOND",
		"INGEST_WORKERS", "INGEST_OUTPUT_PATH", "PLAYER_CATALOG_PATH", "DATABASE_URL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Workers != 15 {
		t.Errorf("Workers = %d, want 15", cfg.Workers)
	}
	if cfg.RequestTimeout != 1000*time.Second {
		t.Errorf("RequestTimeout = %v, want 1000s", cfg.RequestTimeout)
	}
	if cfg.OutputPath != "nba_player_career_stats.csv" {
		t.Errorf("OutputPath = %q", cfg.OutputPath)
	}
	if cfg.StatsBaseURL != DefaultStatsBaseURL {
		t.Errorf("StatsBaseURL = %q", cfg.StatsBaseURL)
	}
	if err := cfg.RequireDatabase(); err == nil {
		t.Error("expected RequireDatabase to fail without DATABASE_URL")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("NBA_STATS_BASE_URL", "http://localhost:9999/stats/")
	t.Setenv("INGEST_WORKERS", "4")
	t.Setenv("NBA_STATS_REQUESTS_PER_SECOND", "0.5")
	t.Setenv("CORS_ALLOW_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StatsBaseURL != "http://localhost:9999/stats" {
		t.Errorf("StatsBaseURL = %q, want trailing slash trimmed", cfg.StatsBaseURL)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if cfg.RequestsPerSecond != 0.5 {
		t.Errorf("RequestsPerSecond = %g, want 0.5", cfg.RequestsPerSecond)
	}
	if len(cfg.CORSAllowOrigins) != 2 || cfg.CORSAllowOrigins[1] != "https://b.example" {
		t.Errorf("CORSAllowOrigins = %v", cfg.CORSAllowOrigins)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"zero workers", func(c *Config) { c.Workers = 0 }, true},
		{"negative rate", func(c *Config) { c.RequestsPerSecond = -1 }, true},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }, true},
		{"empty output", func(c *Config) { c.OutputPath = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{
				Workers:           DefaultWorkers,
				RequestsPerSecond: DefaultRequestsPerSecond,
				RequestTimeout:    DefaultRequestTimeout,
				OutputPath:        DefaultOutputPath,
			}
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

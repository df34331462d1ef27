// Command ingest is the career statistics ingestion CLI.
//
// Usage:
//
//	careers-ingest run
//	careers-ingest run --workers 4 --output careers.csv --active-only
//	careers-ingest run --limit 10 --persist
//	careers-ingest run --catalog embedded
//	careers-ingest catalog --active-only
//	careers-ingest catalog sync --out players.json
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/scoracle-careers/internal/catalog"
	"github.com/albapepper/scoracle-careers/internal/config"
	"github.com/albapepper/scoracle-careers/internal/db"
	"github.com/albapepper/scoracle-careers/internal/export"
	"github.com/albapepper/scoracle-careers/internal/provider"
	"github.com/albapepper/scoracle-careers/internal/provider/nbastats"
	"github.com/albapepper/scoracle-careers/internal/seed"
)

// previewCount is how many summaries are logged after a run.
const previewCount = 5

var (
	logLevel = new(slog.LevelVar)
	logger   = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:          "careers-ingest",
		Short:        "NBA career statistics ingestion CLI",
		SilenceUsage: true,
	}

	root.AddCommand(runCmd())
	root.AddCommand(catalogCmd())

	if err := root.Execute(); err != nil {
		logger.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// run command
// --------------------------------------------------------------------------

func runCmd() *cobra.Command {
	var (
		workers     int
		output      string
		catalogPath string
		activeOnly  bool
		limit       int
		persist     bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch every catalog player's career, aggregate and write the CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			// Flags override the environment only when given.
			flags := cmd.Flags()
			if flags.Changed("workers") {
				cfg.Workers = workers
			}
			if flags.Changed("output") {
				cfg.OutputPath = output
			}
			if flags.Changed("catalog") {
				cfg.CatalogPath = catalogPath
			}
			if flags.Changed("active-only") {
				cfg.ActiveOnly = activeOnly
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			client := nbastats.NewClient(cfg.StatsBaseURL, cfg.RequestTimeout, cfg.RequestsPerSecond, logger)

			players, err := selectPlayers(ctx, cfg, client, limit)
			if err != nil {
				return err
			}

			if !persist {
				_, err := runPipeline(ctx, cfg, players, client, logger)
				return err
			}

			pool, err := db.New(ctx, cfg)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer pool.Close()

			runID := uuid.New()
			if err := seed.StartRun(ctx, pool.Pool, runID, len(players)); err != nil {
				return err
			}
			logger.Info("Run started", "run_id", runID, "players", len(players))

			result, pipelineErr := runPipeline(ctx, cfg, players, client, logger)

			// The batch context may already be cancelled; recording the run
			// still needs a live one.
			persistCtx, persistCancel := context.WithTimeout(context.WithoutCancel(ctx), time.Minute)
			defer persistCancel()
			return completeRun(persistCtx, pgRunStore{pool: pool}, runID, result, cfg.OutputPath, pipelineErr)
		},
	}
	cmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "Maximum concurrent career fetches")
	cmd.Flags().StringVar(&output, "output", config.DefaultOutputPath, "CSV output path (overwritten)")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", `Player catalog JSON file, or "embedded" for the bundled sample; empty = full league index`)
	cmd.Flags().BoolVar(&activeOnly, "active-only", false, "Only process players flagged active")
	cmd.Flags().IntVar(&limit, "limit", 0, "Process only the first N players; 0 = all")
	cmd.Flags().BoolVar(&persist, "persist", false, "Also upsert summaries into Postgres (requires DATABASE_URL)")
	return cmd
}

// selectPlayers resolves the configured catalog source and applies the
// filters. An unset source means the league's full player index.
func selectPlayers(ctx context.Context, cfg *config.Config, index catalog.PlayerIndex, limit int) ([]provider.Player, error) {
	players, err := catalog.Resolve(ctx, cfg.CatalogPath, index, nbastats.SeasonString(time.Now()))
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if cfg.ActiveOnly {
		players = catalog.ActiveOnly(players)
	}
	return catalog.Limit(players, limit), nil
}

// runPipeline collects every player's career, writes the CSV and logs a
// preview. Per-player failures are logged and excluded; only a CSV write
// failure is returned.
func runPipeline(
	ctx context.Context,
	cfg *config.Config,
	players []provider.Player,
	fetcher seed.CareerFetcher,
	logger *slog.Logger,
) (seed.RunResult, error) {
	start := time.Now()
	result := seed.CollectCareers(ctx, players, fetcher, cfg.Workers, logger)

	if err := export.WriteCSV(cfg.OutputPath, result.Summaries); err != nil {
		return result, fmt.Errorf("write csv: %w", err)
	}
	logger.Info("Career stats written",
		"path", cfg.OutputPath,
		"count", len(result.Summaries),
		"duration", time.Since(start).Round(time.Millisecond),
		"summary", result.Summary())

	for i, s := range result.Summaries {
		if i == previewCount {
			break
		}
		logger.Info("Career",
			"player", s.Name,
			"gp", s.GamesPlayed,
			"pts", s.PointsPerGame,
			"reb", s.ReboundsPerGame,
			"ast", s.AssistsPerGame)
	}
	return result, nil
}

// runStore records the end of a persisted run.
type runStore interface {
	Persist(ctx context.Context, runID uuid.UUID, result seed.RunResult, outputPath string) error
	Finish(ctx context.Context, runID uuid.UUID, result seed.RunResult, outputPath string) error
}

type pgRunStore struct {
	pool *db.Pool
}

func (s pgRunStore) Persist(ctx context.Context, runID uuid.UUID, result seed.RunResult, outputPath string) error {
	return seed.PersistRun(ctx, s.pool.Pool, runID, result, outputPath, logger)
}

func (s pgRunStore) Finish(ctx context.Context, runID uuid.UUID, result seed.RunResult, outputPath string) error {
	return seed.FinishRun(ctx, s.pool.Pool, runID, result, outputPath)
}

// completeRun persists a successful run. When the pipeline failed (no CSV was
// written) the run row is still closed with its counts and no output path,
// and the pipeline error is returned.
func completeRun(
	ctx context.Context,
	store runStore,
	runID uuid.UUID,
	result seed.RunResult,
	outputPath string,
	pipelineErr error,
) error {
	if pipelineErr != nil {
		if err := store.Finish(ctx, runID, result, ""); err != nil {
			logger.Warn("Failed to close run after pipeline error", "run_id", runID, "error", err)
		}
		return pipelineErr
	}
	return store.Persist(ctx, runID, result, outputPath)
}

// --------------------------------------------------------------------------
// catalog command
// --------------------------------------------------------------------------

func catalogCmd() *cobra.Command {
	var (
		catalogPath string
		activeOnly  bool
	)
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the players a run would process",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("catalog") {
				cfg.CatalogPath = catalogPath
			}
			cfg.ActiveOnly = activeOnly

			client := nbastats.NewClient(cfg.StatsBaseURL, cfg.RequestTimeout, cfg.RequestsPerSecond, logger)
			players, err := selectPlayers(ctx, cfg, client, 0)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d players\n", len(players))
			for _, p := range players {
				status := "inactive"
				if p.IsActive {
					status = "active"
				}
				fmt.Fprintf(out, "%8d  %-30s %s\n", p.ID, p.FullName, status)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", `Player catalog JSON file, or "embedded" for the bundled sample; empty = full league index`)
	cmd.Flags().BoolVar(&activeOnly, "active-only", false, "Only list players flagged active")
	cmd.AddCommand(catalogSyncCmd())
	return cmd
}

func catalogSyncCmd() *cobra.Command {
	var (
		out    string
		season string
	)
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Rebuild a catalog file from the league's player index",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if season == "" {
				season = nbastats.SeasonString(time.Now())
			}

			client := nbastats.NewClient(cfg.StatsBaseURL, cfg.RequestTimeout, cfg.RequestsPerSecond, logger)
			players, err := client.GetAllPlayers(ctx, season)
			if err != nil {
				return err
			}
			if len(players) == 0 {
				return catalog.ErrEmptyCatalog
			}
			if err := catalog.Save(out, players); err != nil {
				return err
			}
			logger.Info("Catalog written", "path", out, "count", len(players), "season", season)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "players.json", "Catalog output path")
	cmd.Flags().StringVar(&season, "season", "", "Season label, e.g. 2025-26; empty = current")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// loadConfig reads the environment and applies the log level.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.Debug {
		logLevel.Set(slog.LevelDebug)
	}
	return cfg, nil
}

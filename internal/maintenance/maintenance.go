// Package maintenance runs periodic background tasks for the API server as Go
// tickers: pruning old run records and catching ingestion runs whose NOTIFY
// was missed while the listener was disconnected.
package maintenance

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/albapepper/scoracle-careers/internal/config"
	"github.com/albapepper/scoracle-careers/internal/db"
)

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	PruneInterval   time.Duration // Old career_runs rows
	CatchUpInterval time.Duration // Runs finished without a delivered NOTIFY
	RunRetention    time.Duration // Age after which unreferenced runs are pruned
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		PruneInterval:   6 * time.Hour,
		CatchUpInterval: 5 * time.Minute,
		RunRetention:    90 * 24 * time.Hour,
	}
}

// Store is the database surface the tasks need. *db.Pool implements it.
type Store interface {
	db.Execer
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Invalidator drops cached API responses. *cache.Cache implements it.
type Invalidator interface {
	Clear()
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, store Store, inv Invalidator, cfg Config, logger *slog.Logger) {
	logger.Info("Maintenance tickers started",
		"prune", cfg.PruneInterval,
		"catchup", cfg.CatchUpInterval,
		"retention", cfg.RunRetention)

	tickers := make([]*time.Ticker, 0, 2)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	if cfg.PruneInterval > 0 && cfg.RunRetention > 0 {
		t := time.NewTicker(cfg.PruneInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { pruneRuns(ctx, store, cfg.RunRetention, logger) })
	}

	if cfg.CatchUpInterval > 0 {
		sweep := &catchUp{}
		// Baseline so the first tick only reacts to runs finished after startup.
		sweep.check(ctx, store, nil, logger)

		t := time.NewTicker(cfg.CatchUpInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { sweep.check(ctx, store, inv, logger) })
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// --------------------------------------------------------------------------
// Task implementations
// --------------------------------------------------------------------------

// pruneRuns removes finished runs older than retention that no stored
// summary points at any more.
func pruneRuns(ctx context.Context, store db.Execer, retention time.Duration, logger *slog.Logger) {
	tag, err := store.Exec(ctx, `
		DELETE FROM `+config.CareerRunsTable+` r
		WHERE r.finished_at IS NOT NULL
		  AND r.finished_at < $1
		  AND NOT EXISTS (SELECT 1 FROM `+config.CareerSummariesTable+` s WHERE s.run_id = r.id)`,
		time.Now().Add(-retention))
	if err != nil {
		logger.Warn("Prune: failed to delete old runs", "error", err)
		return
	}
	if tag.RowsAffected() > 0 {
		logger.Info("Prune: deleted old runs", "count", tag.RowsAffected())
	}
}

// catchUp remembers the newest finished run it has seen. Only the ticker
// goroutine touches it.
type catchUp struct {
	lastFinished time.Time
}

// check clears the cache when a run finished after the last one seen. A nil
// inv only records the baseline.
func (c *catchUp) check(ctx context.Context, store Store, inv Invalidator, logger *slog.Logger) {
	var finished *time.Time
	err := store.QueryRow(ctx, "SELECT MAX(finished_at) FROM "+config.CareerRunsTable).Scan(&finished)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Warn("Catch-up sweep: failed", "error", err)
		return
	}
	if finished == nil || !finished.After(c.lastFinished) {
		return
	}

	c.lastFinished = *finished
	if inv == nil {
		return
	}
	inv.Clear()
	logger.Info("Catch-up sweep: cache cleared for missed run", "finished_at", finished.UTC())
}

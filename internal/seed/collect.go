package seed

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/albapepper/scoracle-careers/internal/career"
	"github.com/albapepper/scoracle-careers/internal/provider"
)

var (
	outcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "careers_fetch_total",
		Help: "Players processed by outcome (success, empty, failed)",
	}, []string{"outcome"})

	inflightFetches = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "careers_inflight_fetches",
		Help: "Career fetches currently in flight",
	})
)

// CareerFetcher retrieves a player's per-season totals.
type CareerFetcher interface {
	FetchCareer(ctx context.Context, player provider.Player) ([]provider.SeasonTotals, error)
}

// CollectCareers fetches and aggregates every player with at most workers
// fetches in flight. It returns once every player has an outcome; a failing
// player never stops the others.
func CollectCareers(
	ctx context.Context,
	players []provider.Player,
	fetcher CareerFetcher,
	workers int,
	logger *slog.Logger,
) RunResult {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()
	result := RunResult{Players: len(players)}

	if len(players) == 0 {
		logger.Info("No players to collect")
		return result
	}

	// Worker pool: one channel of players, N workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(players) {
		workers = len(players)
	}

	ch := make(chan provider.Player, len(players))
	for _, p := range players {
		ch <- p
	}
	close(ch)

	logger.Info("Collecting careers", "players", len(players), "workers", workers)

	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range ch {
				out := processPlayer(ctx, fetcher, p, logger)

				mu.Lock()
				result.Record(out)
				processed := result.Processed()
				mu.Unlock()

				if processed%50 == 0 {
					logger.Info("Career collection progress", "processed", processed, "total", len(players))
				}
			}
		}()
	}

	wg.Wait()
	result.Duration = time.Since(start)

	logger.Info("Career collection complete", "summary", result.Summary())
	return result
}

// processPlayer runs fetch then aggregate for one player. Panics are turned
// into a failed outcome.
func processPlayer(ctx context.Context, fetcher CareerFetcher, player provider.Player, logger *slog.Logger) (out career.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = career.Failed(player, fmt.Errorf("panic: %v", r))
		}
		if out.Kind == career.OutcomeFailed {
			logger.Warn("Career fetch failed",
				"player_id", player.ID, "player", player.FullName, "error", out.Err)
		}
		outcomesTotal.WithLabelValues(out.Kind.String()).Inc()
	}()

	inflightFetches.Inc()
	defer inflightFetches.Dec()

	seasons, err := fetcher.FetchCareer(ctx, player)
	if err != nil {
		return career.Failed(player, err)
	}
	return career.Aggregate(player, seasons)
}

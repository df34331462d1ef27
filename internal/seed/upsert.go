package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/scoracle-careers/internal/config"
	"github.com/albapepper/scoracle-careers/internal/provider"
)

// UpdatedChannel is the NOTIFY channel signalled after a persisted run.
const UpdatedChannel = "careers_updated"

// UpdatedEvent is the JSON payload sent on UpdatedChannel.
type UpdatedEvent struct {
	RunID     string `json:"run_id"`
	Succeeded int    `json:"succeeded"`
}

// StartRun records the beginning of a run.
func StartRun(ctx context.Context, pool *pgxpool.Pool, runID uuid.UUID, players int) error {
	_, err := pool.Exec(ctx, `
		INSERT INTO `+config.CareerRunsTable+` (id, started_at, players)
		VALUES ($1::uuid, NOW(), $2)`,
		runID.String(), players,
	)
	if err != nil {
		return fmt.Errorf("start run %s: %w", runID, err)
	}
	return nil
}

// UpsertCareers writes every summary in one transaction, tagging rows with
// runID. Returns the number of rows written.
func UpsertCareers(ctx context.Context, pool *pgxpool.Pool, runID uuid.UUID, summaries []provider.CareerSummary) (int, error) {
	if len(summaries) == 0 {
		return 0, nil
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, s := range summaries {
		batch.Queue(`
			INSERT INTO `+config.CareerSummariesTable+` (
				player_id, name, games_played,
				points_per_game, rebounds_per_game, assists_per_game,
				steals_per_game, blocks_per_game, turnovers_per_game,
				field_goal_pct, three_point_pct, free_throw_pct,
				run_id, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13::uuid,NOW())
			ON CONFLICT (player_id) DO UPDATE SET
				name = EXCLUDED.name,
				games_played = EXCLUDED.games_played,
				points_per_game = EXCLUDED.points_per_game,
				rebounds_per_game = EXCLUDED.rebounds_per_game,
				assists_per_game = EXCLUDED.assists_per_game,
				steals_per_game = EXCLUDED.steals_per_game,
				blocks_per_game = EXCLUDED.blocks_per_game,
				turnovers_per_game = EXCLUDED.turnovers_per_game,
				field_goal_pct = EXCLUDED.field_goal_pct,
				three_point_pct = EXCLUDED.three_point_pct,
				free_throw_pct = EXCLUDED.free_throw_pct,
				run_id = EXCLUDED.run_id,
				updated_at = NOW()`,
			s.PlayerID, s.Name, s.GamesPlayed,
			s.PointsPerGame, s.ReboundsPerGame, s.AssistsPerGame,
			s.StealsPerGame, s.BlocksPerGame, s.TurnoversPerGame,
			s.FieldGoalPct, s.ThreePointPct, s.FreeThrowPct,
			runID.String(),
		)
	}

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return 0, fmt.Errorf("upsert career %d: %w", summaries[i].PlayerID, err)
		}
	}
	if err := br.Close(); err != nil {
		return 0, fmt.Errorf("close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(summaries), nil
}

// FinishRun stores the final counts of a run.
func FinishRun(ctx context.Context, pool *pgxpool.Pool, runID uuid.UUID, result RunResult, outputPath string) error {
	_, err := pool.Exec(ctx, `
		UPDATE `+config.CareerRunsTable+`
		SET finished_at = NOW(),
			succeeded = $2,
			empty = $3,
			failed = $4,
			output_path = $5
		WHERE id = $1::uuid`,
		runID.String(), result.Succeeded, result.Empty, result.Failed, outputPath,
	)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", runID, err)
	}
	return nil
}

// NotifyUpdated signals API listeners that stored careers changed.
func NotifyUpdated(ctx context.Context, pool *pgxpool.Pool, runID uuid.UUID, succeeded int) error {
	payload, err := json.Marshal(UpdatedEvent{RunID: runID.String(), Succeeded: succeeded})
	if err != nil {
		return fmt.Errorf("encode notify payload: %w", err)
	}
	if _, err := pool.Exec(ctx, "SELECT pg_notify($1, $2)", UpdatedChannel, string(payload)); err != nil {
		return fmt.Errorf("notify %s: %w", UpdatedChannel, err)
	}
	return nil
}

// PersistRun writes a finished run: summaries, final counts, then a NOTIFY.
// The run row must already exist (see StartRun).
func PersistRun(ctx context.Context, pool *pgxpool.Pool, runID uuid.UUID, result RunResult, outputPath string, logger *slog.Logger) error {
	n, err := UpsertCareers(ctx, pool, runID, result.Summaries)
	if err != nil {
		return err
	}
	if err := FinishRun(ctx, pool, runID, result, outputPath); err != nil {
		return err
	}
	logger.Info("Careers persisted", "run_id", runID, "count", n)

	if err := NotifyUpdated(ctx, pool, runID, n); err != nil {
		logger.Warn("Career update notification failed", "run_id", runID, "error", err)
	}
	return nil
}

package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/albapepper/scoracle-careers/internal/config"
	"github.com/albapepper/scoracle-careers/internal/provider"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

const summaryColumns = `player_id, name, games_played,
	points_per_game, rebounds_per_game, assists_per_game,
	steals_per_game, blocks_per_game, turnovers_per_game,
	field_goal_pct, three_point_pct, free_throw_pct`

const runColumns = `id::text, started_at, finished_at, players, succeeded, empty, failed, COALESCE(output_path, '')`

// SortColumns whitelists the columns the career list may be ordered by.
var SortColumns = map[string]string{
	"points_per_game":    "points_per_game",
	"rebounds_per_game":  "rebounds_per_game",
	"assists_per_game":   "assists_per_game",
	"steals_per_game":    "steals_per_game",
	"blocks_per_game":    "blocks_per_game",
	"turnovers_per_game": "turnovers_per_game",
	"games_played":       "games_played",
	"field_goal_pct":     "field_goal_pct",
	"three_point_pct":    "three_point_pct",
	"free_throw_pct":     "free_throw_pct",
	"name":               "name",
}

// Run is one recorded ingestion run.
type Run struct {
	ID         string     `json:"id"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Players    int        `json:"players"`
	Succeeded  int        `json:"succeeded"`
	Empty      int        `json:"empty"`
	Failed     int        `json:"failed"`
	OutputPath string     `json:"output_path,omitempty"`
}

// GetCareer returns the stored summary for one player.
func (p *Pool) GetCareer(ctx context.Context, playerID int) (*provider.CareerSummary, error) {
	s, err := scanSummary(p.QueryRow(ctx, "career_by_player", playerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("career %d: %w", playerID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get career %d: %w", playerID, err)
	}
	return &s, nil
}

// ListCareers returns up to limit summaries ordered by sortKey descending
// (ascending for name). sortKey must be a SortColumns key.
func (p *Pool) ListCareers(ctx context.Context, sortKey string, limit int) ([]provider.CareerSummary, error) {
	col, ok := SortColumns[sortKey]
	if !ok {
		return nil, fmt.Errorf("unsupported sort key %q", sortKey)
	}
	dir := "DESC NULLS LAST"
	if col == "name" {
		dir = "ASC"
	}

	rows, err := p.Query(ctx,
		"SELECT "+summaryColumns+" FROM "+config.CareerSummariesTable+
			" ORDER BY "+col+" "+dir+", player_id LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("list careers: %w", err)
	}
	defer rows.Close()

	var out []provider.CareerSummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan career: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// LatestRun returns the most recently started run.
func (p *Pool) LatestRun(ctx context.Context) (*Run, error) {
	var r Run
	err := p.QueryRow(ctx, "latest_run").Scan(
		&r.ID, &r.StartedAt, &r.FinishedAt,
		&r.Players, &r.Succeeded, &r.Empty, &r.Failed, &r.OutputPath,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("latest run: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("latest run: %w", err)
	}
	return &r, nil
}

func scanSummary(row pgx.Row) (provider.CareerSummary, error) {
	var s provider.CareerSummary
	err := row.Scan(
		&s.PlayerID, &s.Name, &s.GamesPlayed,
		&s.PointsPerGame, &s.ReboundsPerGame, &s.AssistsPerGame,
		&s.StealsPerGame, &s.BlocksPerGame, &s.TurnoversPerGame,
		&s.FieldGoalPct, &s.ThreePointPct, &s.FreeThrowPct,
	)
	return s, err
}

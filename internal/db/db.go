// Package db provides a pgxpool-based connection pool with prepared statement
// registration, schema bootstrap and the read queries behind the API.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/scoracle-careers/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool. The career schema is
// created first over a one-off connection, since prepared statements can
// only be registered once the tables exist.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	if err := cfg.RequireDatabase(); err != nil {
		return nil, err
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	conn, err := pgx.ConnectConfig(ctx, poolCfg.ConnConfig.Copy())
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	err = EnsureSchema(ctx, conn)
	conn.Close(context.Background())
	if err != nil {
		return nil, err
	}

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = registerPreparedStatements

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// Execer is satisfied by *pgx.Conn, *pgxpool.Pool and pgx.Tx.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// EnsureSchema creates the career tables if they do not exist.
func EnsureSchema(ctx context.Context, db Execer) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ` + config.CareerRunsTable + ` (
			id          UUID PRIMARY KEY,
			started_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			finished_at TIMESTAMPTZ,
			players     INTEGER NOT NULL DEFAULT 0,
			succeeded   INTEGER NOT NULL DEFAULT 0,
			empty       INTEGER NOT NULL DEFAULT 0,
			failed      INTEGER NOT NULL DEFAULT 0,
			output_path TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS ` + config.CareerSummariesTable + ` (
			player_id          INTEGER PRIMARY KEY,
			name               TEXT NOT NULL,
			games_played       INTEGER NOT NULL,
			points_per_game    DOUBLE PRECISION NOT NULL,
			rebounds_per_game  DOUBLE PRECISION NOT NULL,
			assists_per_game   DOUBLE PRECISION NOT NULL,
			steals_per_game    DOUBLE PRECISION NOT NULL,
			blocks_per_game    DOUBLE PRECISION NOT NULL,
			turnovers_per_game DOUBLE PRECISION NOT NULL,
			field_goal_pct     DOUBLE PRECISION,
			three_point_pct    DOUBLE PRECISION,
			free_throw_pct     DOUBLE PRECISION,
			run_id             UUID REFERENCES ` + config.CareerRunsTable + `(id),
			updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, sql := range stmts {
		if _, err := db.Exec(ctx, sql); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// registerPreparedStatements registers the statements the API and ingestion
// layers use.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// API: careers
		"career_by_player": "SELECT " + summaryColumns + " FROM " + config.CareerSummariesTable + " WHERE player_id = $1",
		"latest_run":       "SELECT " + runColumns + " FROM " + config.CareerRunsTable + " ORDER BY started_at DESC LIMIT 1",
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}

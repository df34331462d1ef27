// Package listener provides a Postgres LISTEN/NOTIFY consumer that keeps the
// API cache in step with ingestion. It holds a dedicated pgx connection (not
// from the pool) listening on the `careers_updated` channel.
//
// When an ingestion run is persisted, the ingest command fires pg_notify and
// this consumer drops every cached response so the next request reads the
// new career lines.
package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/albapepper/scoracle-careers/internal/seed"
)

const (
	reconnectBackoff = 5 * time.Second
	maxReconnect     = 30 * time.Second
)

// Invalidator is anything that can drop cached state. *cache.Cache implements it.
type Invalidator interface {
	Clear()
}

// Start opens a dedicated connection and listens on the careers_updated
// channel. It reconnects automatically on connection loss. Blocks until ctx
// is cancelled. Intended to be called with `go`.
func Start(ctx context.Context, dbURL string, inv Invalidator, logger *slog.Logger) {
	backoff := reconnectBackoff

	for {
		err := listenLoop(ctx, dbURL, inv, logger)
		if ctx.Err() != nil {
			logger.Info("Careers listener stopped (context cancelled)")
			return
		}

		logger.Error("Careers listener disconnected, reconnecting...",
			"error", err, "backoff", backoff)

		select {
		case <-time.After(backoff):
			backoff = min(backoff*2, maxReconnect)
		case <-ctx.Done():
			return
		}
	}
}

// listenLoop runs a single listen session. Returns when the connection drops
// or the context is cancelled.
func listenLoop(ctx context.Context, dbURL string, inv Invalidator, logger *slog.Logger) error {
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	_, err = conn.Exec(ctx, "LISTEN "+seed.UpdatedChannel)
	if err != nil {
		return fmt.Errorf("LISTEN %s: %w", seed.UpdatedChannel, err)
	}
	logger.Info("Careers listener connected", "channel", seed.UpdatedChannel)

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}
		handlePayload(notification.Payload, inv, logger)
	}
}

// handlePayload clears the cache for every notification. A malformed payload
// still invalidates; it only loses the log detail.
func handlePayload(payload string, inv Invalidator, logger *slog.Logger) {
	inv.Clear()

	var event seed.UpdatedEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		logger.Warn("Failed to parse careers event", "payload", payload, "error", err)
		return
	}
	logger.Info("Careers updated, cache cleared",
		"run_id", event.RunID,
		"succeeded", event.Succeeded)
}

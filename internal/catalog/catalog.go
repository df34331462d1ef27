// Package catalog supplies the list of players an ingestion run processes.
// By default that is the league's full player index (every current and
// historical player), fetched at startup. A JSON catalog file can pin the
// list (see `careers-ingest catalog sync`), and a small sample of well-known
// players is embedded in the binary for offline smoke runs.
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/albapepper/scoracle-careers/internal/provider"
)

//go:embed players.json
var embeddedPlayers []byte

// ErrEmptyCatalog is returned when a catalog decodes to zero players.
var ErrEmptyCatalog = errors.New("catalog contains no players")

// Default returns the embedded sample catalog.
func Default() ([]provider.Player, error) {
	return decode(embeddedPlayers, "embedded catalog")
}

// Load reads a catalog from path. An empty path returns the embedded one.
func Load(path string) ([]provider.Player, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return decode(data, path)
}

// Save writes players to path as an indented JSON catalog, sorted by ID.
func Save(path string, players []provider.Player) error {
	sorted := make([]provider.Player, len(players))
	copy(sorted, players)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	data, err := json.MarshalIndent(sorted, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create catalog dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog %s: %w", path, err)
	}
	return nil
}

// ActiveOnly returns the players flagged as currently active.
func ActiveOnly(players []provider.Player) []provider.Player {
	out := make([]provider.Player, 0, len(players))
	for _, p := range players {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out
}

// Limit returns the first n players; n <= 0 returns all of them.
func Limit(players []provider.Player, n int) []provider.Player {
	if n <= 0 || n >= len(players) {
		return players
	}
	return players[:n]
}

func decode(data []byte, source string) ([]provider.Player, error) {
	var players []provider.Player
	if err := json.Unmarshal(data, &players); err != nil {
		return nil, fmt.Errorf("decode %s: %w", source, err)
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrEmptyCatalog)
	}

	seen := make(map[int]struct{}, len(players))
	for i, p := range players {
		if p.ID <= 0 {
			return nil, fmt.Errorf("%s: entry %d has invalid id %d", source, i, p.ID)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("%s: duplicate player id %d", source, p.ID)
		}
		seen[p.ID] = struct{}{}
		if p.FullName == "" {
			players[i].FullName = fmt.Sprintf("Player %d", p.ID)
		}
	}
	return players, nil
}

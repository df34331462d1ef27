package catalog

import (
	"context"
	"fmt"

	"github.com/albapepper/scoracle-careers/internal/provider"
)

// Embedded selects the bundled sample catalog instead of a file.
const Embedded = "embedded"

// PlayerIndex lists every player the league has on record.
// *nbastats.Client implements it.
type PlayerIndex interface {
	GetAllPlayers(ctx context.Context, season string) ([]provider.Player, error)
}

// Resolve returns the players named by source: "" is the full league index
// for season, Embedded is the bundled sample, anything else a catalog file.
func Resolve(ctx context.Context, source string, index PlayerIndex, season string) ([]provider.Player, error) {
	switch source {
	case "":
		players, err := index.GetAllPlayers(ctx, season)
		if err != nil {
			return nil, fmt.Errorf("league index: %w", err)
		}
		if len(players) == 0 {
			return nil, fmt.Errorf("league index: %w", ErrEmptyCatalog)
		}
		return players, nil
	case Embedded:
		return Default()
	default:
		return Load(source)
	}
}

// Package career reduces a player's per-season totals into a single career
// summary and reports each player's result as a typed Outcome.
package career

import (
	"errors"
	"fmt"

	"github.com/albapepper/scoracle-careers/internal/provider"
)

// ErrNoGamesPlayed is returned when every season reports zero games, which
// leaves the per-game averages undefined. Such players are excluded.
var ErrNoGamesPlayed = errors.New("no games played across career")

// Kind classifies an Outcome.
type Kind int

const (
	// OutcomeSuccess carries a CareerSummary.
	OutcomeSuccess Kind = iota
	// OutcomeEmpty means the provider returned no seasons. Not an error.
	OutcomeEmpty
	// OutcomeFailed carries the error that excluded the player.
	OutcomeFailed
)

func (k Kind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Outcome is the result of processing one player.
type Outcome struct {
	Kind    Kind
	Player  provider.Player
	Summary provider.CareerSummary // valid when Kind == OutcomeSuccess
	Err     error                  // set when Kind == OutcomeFailed
}

// Success wraps a summary.
func Success(p provider.Player, s provider.CareerSummary) Outcome {
	return Outcome{Kind: OutcomeSuccess, Player: p, Summary: s}
}

// Empty reports a player with no data.
func Empty(p provider.Player) Outcome {
	return Outcome{Kind: OutcomeEmpty, Player: p}
}

// Failed reports a player excluded by err.
func Failed(p provider.Player, err error) Outcome {
	return Outcome{Kind: OutcomeFailed, Player: p, Err: err}
}

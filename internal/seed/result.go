// Package seed runs the career ingestion batch: a bounded worker pool that
// fetches and aggregates every catalog player, plus the Postgres upserts for
// persisting the summaries.
package seed

import (
	"fmt"
	"time"

	"github.com/albapepper/scoracle-careers/internal/career"
	"github.com/albapepper/scoracle-careers/internal/provider"
)

// RunResult tracks counts, summaries and errors from a collection run.
// Summaries are in completion order, not catalog order.
type RunResult struct {
	Players   int
	Succeeded int
	Empty     int
	Failed    int
	Summaries []provider.CareerSummary
	Errors    []string
	Duration  time.Duration
}

// Record folds one player's outcome into the result.
func (r *RunResult) Record(out career.Outcome) {
	switch out.Kind {
	case career.OutcomeSuccess:
		r.Succeeded++
		r.Summaries = append(r.Summaries, out.Summary)
	case career.OutcomeEmpty:
		r.Empty++
	default:
		r.Failed++
		r.AddErrorf("player %d (%s): %v", out.Player.ID, out.Player.FullName, out.Err)
	}
}

// Processed returns how many players reached a terminal outcome.
func (r *RunResult) Processed() int {
	return r.Succeeded + r.Empty + r.Failed
}

// AddErrorf records a formatted error message.
func (r *RunResult) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the run.
func (r *RunResult) Summary() string {
	return fmt.Sprintf(
		"players=%d succeeded=%d empty=%d failed=%d dur=%s",
		r.Players, r.Succeeded, r.Empty, r.Failed,
		r.Duration.Round(time.Millisecond),
	)
}

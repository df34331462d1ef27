package career

import "github.com/albapepper/scoracle-careers/internal/provider"

// Aggregate reduces a player's seasons to career per-game averages.
//
// Per-game metrics divide career totals by career games. Shooting
// percentages are the plain mean of the seasons that report one.
func Aggregate(player provider.Player, seasons []provider.SeasonTotals) Outcome {
	if len(seasons) == 0 {
		return Empty(player)
	}

	var (
		games         int
		pts, reb, ast float64
		stl, blk, tov float64
		fg, fg3, ft   mean
	)
	for _, s := range seasons {
		games += s.GamesPlayed
		pts += s.Points
		reb += s.Rebounds
		ast += s.Assists
		stl += s.Steals
		blk += s.Blocks
		tov += s.Turnovers
		fg.add(s.FieldGoalPct)
		fg3.add(s.ThreePointPct)
		ft.add(s.FreeThrowPct)
	}

	if games <= 0 {
		return Failed(player, ErrNoGamesPlayed)
	}

	g := float64(games)
	return Success(player, provider.CareerSummary{
		PlayerID:         player.ID,
		Name:             player.FullName,
		GamesPlayed:      games,
		PointsPerGame:    pts / g,
		ReboundsPerGame:  reb / g,
		AssistsPerGame:   ast / g,
		StealsPerGame:    stl / g,
		BlocksPerGame:    blk / g,
		TurnoversPerGame: tov / g,
		FieldGoalPct:     fg.value(),
		ThreePointPct:    fg3.value(),
		FreeThrowPct:     ft.value(),
	})
}

// mean accumulates an average that skips missing values.
type mean struct {
	sum float64
	n   int
}

func (m *mean) add(v *float64) {
	if v == nil {
		return
	}
	m.sum += *v
	m.n++
}

func (m *mean) value() *float64 {
	if m.n == 0 {
		return nil
	}
	v := m.sum / float64(m.n)
	return &v
}

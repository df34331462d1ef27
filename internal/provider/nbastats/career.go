package nbastats

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/albapepper/scoracle-careers/internal/provider"
)

const seasonTotalsRegularSeason = "SeasonTotalsRegularSeason"

var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "careers_fetch_duration_seconds",
	Help:    "Duration of stats.nba.com requests by endpoint and result",
	Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
}, []string{"endpoint", "result"})

var careerColumns = []string{
	"SEASON_ID", "GP", "PTS", "REB", "AST", "STL", "BLK", "TOV",
	"FG_PCT", "FG3_PCT", "FT_PCT",
}

// FetchCareer returns the regular-season totals for every season the player
// appeared in. A player with no seasons yields an empty slice and no error.
func (c *Client) FetchCareer(ctx context.Context, player provider.Player) ([]provider.SeasonTotals, error) {
	params := url.Values{
		"PlayerID": {strconv.Itoa(player.ID)},
		"PerMode":  {"Totals"},
		"LeagueID": {"00"},
	}

	start := time.Now()
	resp, err := c.get(ctx, "playercareerstats", params)
	if err != nil {
		requestDuration.WithLabelValues("playercareerstats", "error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("fetch career %d: %w", player.ID, err)
	}
	requestDuration.WithLabelValues("playercareerstats", "ok").Observe(time.Since(start).Seconds())

	seasons, err := parseSeasonTotals(resp)
	if err != nil {
		return nil, fmt.Errorf("parse career %d: %w", player.ID, err)
	}

	c.logger.Debug("Fetched career", "player_id", player.ID, "player", player.FullName, "seasons", len(seasons))
	return seasons, nil
}

func parseSeasonTotals(resp *statsResponse) ([]provider.SeasonTotals, error) {
	rs, err := resp.resultSet(seasonTotalsRegularSeason)
	if err != nil {
		return nil, err
	}
	col, err := rs.columns(careerColumns...)
	if err != nil {
		return nil, err
	}
	teamCol, hasTeam := col["TEAM_ABBREVIATION"]

	seasons := make([]provider.SeasonTotals, 0, len(rs.RowSet))
	for i, row := range rs.RowSet {
		if len(row) != len(rs.Headers) {
			return nil, fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(rs.Headers))
		}
		cells := rowReader{row: row, col: col, index: i}

		s := provider.SeasonTotals{
			SeasonID:      provider.ExtractString(row[col["SEASON_ID"]]),
			GamesPlayed:   int(cells.counting("GP")),
			Points:        cells.counting("PTS"),
			Rebounds:      cells.counting("REB"),
			Assists:       cells.counting("AST"),
			Steals:        cells.counting("STL"),
			Blocks:        cells.counting("BLK"),
			Turnovers:     cells.counting("TOV"),
			FieldGoalPct:  cells.optional("FG_PCT"),
			ThreePointPct: cells.optional("FG3_PCT"),
			FreeThrowPct:  cells.optional("FT_PCT"),
		}
		if cells.err != nil {
			return nil, cells.err
		}
		if hasTeam {
			s.TeamAbbreviation = provider.ExtractString(row[teamCol])
		}
		seasons = append(seasons, s)
	}
	return seasons, nil
}

// rowReader reads numeric cells of one row and keeps the first malformed one.
type rowReader struct {
	row   []interface{}
	col   map[string]int
	index int
	err   error
}

// counting reads a totals cell; nulls (steals, blocks and turnovers were not
// tracked before 1973-74) count as zero.
func (r *rowReader) counting(name string) float64 {
	if v := r.optional(name); v != nil {
		return *v
	}
	return 0
}

// optional reads a nullable cell. A non-null value that is not a number
// marks the row malformed.
func (r *rowReader) optional(name string) *float64 {
	cell := r.row[r.col[name]]
	if cell == nil {
		return nil
	}
	f, ok := provider.ExtractValue(cell)
	if !ok {
		if r.err == nil {
			r.err = fmt.Errorf("row %d column %s value %v: %w", r.index, name, cell, ErrMalformedCell)
		}
		return nil
	}
	return &f
}

package nbastats

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/albapepper/scoracle-careers/internal/provider"
)

// GetAllPlayers fetches every player the league has on record (historical
// and current) for building a catalog file.
func (c *Client) GetAllPlayers(ctx context.Context, season string) ([]provider.Player, error) {
	params := url.Values{
		"LeagueID":            {"00"},
		"Season":              {season},
		"IsOnlyCurrentSeason": {"0"},
	}

	resp, err := c.get(ctx, "commonallplayers", params)
	if err != nil {
		return nil, fmt.Errorf("fetch all players: %w", err)
	}

	rs, err := resp.resultSet("CommonAllPlayers")
	if err != nil {
		return nil, err
	}
	col, err := rs.columns("PERSON_ID", "DISPLAY_FIRST_LAST", "ROSTERSTATUS")
	if err != nil {
		return nil, err
	}
	lastFirstCol, hasLastFirst := col["DISPLAY_LAST_COMMA_FIRST"]

	players := make([]provider.Player, 0, len(rs.RowSet))
	for i, row := range rs.RowSet {
		if len(row) != len(rs.Headers) {
			return nil, fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(rs.Headers))
		}
		id, ok := provider.ExtractValue(row[col["PERSON_ID"]])
		if !ok || id <= 0 {
			continue
		}
		status, _ := provider.ExtractValue(row[col["ROSTERSTATUS"]])

		p := provider.Player{
			ID:       int(id),
			FullName: strings.TrimSpace(provider.ExtractString(row[col["DISPLAY_FIRST_LAST"]])),
			IsActive: status == 1,
		}
		if hasLastFirst {
			p.LastName, p.FirstName = splitLastFirst(provider.ExtractString(row[lastFirstCol]))
		}
		players = append(players, p)
	}

	c.logger.Info("Fetched player index", "season", season, "count", len(players))
	return players, nil
}

// splitLastFirst splits "James, LeBron" into ("James", "LeBron"). Single
// names ("Nenê") come back as a last name only.
func splitLastFirst(s string) (last, first string) {
	last, first, _ = strings.Cut(s, ",")
	return strings.TrimSpace(last), strings.TrimSpace(first)
}

// SeasonString formats the league season containing t, e.g. "2025-26".
// Seasons roll over in October.
func SeasonString(t time.Time) string {
	year := t.Year()
	if t.Month() < time.October {
		year--
	}
	return fmt.Sprintf("%d-%02d", year, (year+1)%100)
}

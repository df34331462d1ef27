// Package provider defines canonical data types that the stats client
// normalizes into. These structs are the contract between the remote
// provider, the career aggregator and the sinks (CSV, Postgres, API).
package provider

// Player is one catalog entry. Loaded once at startup and never mutated.
type Player struct {
	ID        int    `json:"id"`
	FullName  string `json:"full_name"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	IsActive  bool   `json:"is_active"`
}

// SeasonTotals is one regular-season row of a player's career totals.
// Counting stats that the provider leaves null are stored as 0; the
// shooting percentages stay nil so averages can skip them.
type SeasonTotals struct {
	SeasonID         string   `json:"season_id"`
	TeamAbbreviation string   `json:"team_abbreviation,omitempty"`
	GamesPlayed      int      `json:"gp"`
	Points           float64  `json:"pts"`
	Rebounds         float64  `json:"reb"`
	Assists          float64  `json:"ast"`
	Steals           float64  `json:"stl"`
	Blocks           float64  `json:"blk"`
	Turnovers        float64  `json:"tov"`
	FieldGoalPct     *float64 `json:"fg_pct"`
	ThreePointPct    *float64 `json:"fg3_pct"`
	FreeThrowPct     *float64 `json:"ft_pct"`
}

// CareerSummary is the per-player career line written to every sink.
// Percentages are nil when no season reported a value.
type CareerSummary struct {
	PlayerID         int      `json:"player_id"`
	Name             string   `json:"name"`
	GamesPlayed      int      `json:"games_played"`
	PointsPerGame    float64  `json:"points_per_game"`
	ReboundsPerGame  float64  `json:"rebounds_per_game"`
	AssistsPerGame   float64  `json:"assists_per_game"`
	StealsPerGame    float64  `json:"steals_per_game"`
	BlocksPerGame    float64  `json:"blocks_per_game"`
	TurnoversPerGame float64  `json:"turnovers_per_game"`
	FieldGoalPct     *float64 `json:"field_goal_pct"`
	ThreePointPct    *float64 `json:"three_point_pct"`
	FreeThrowPct     *float64 `json:"free_throw_pct"`
}

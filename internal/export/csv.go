// Package export writes career summaries as a CSV table.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/albapepper/scoracle-careers/internal/provider"
)

// Columns is the fixed header row, in output order.
var Columns = []string{
	"name",
	"games_played",
	"points_per_game",
	"rebounds_per_game",
	"assists_per_game",
	"steals_per_game",
	"blocks_per_game",
	"turnovers_per_game",
	"field_goal_pct",
	"three_point_pct",
	"free_throw_pct",
}

// Encode writes the header and one row per summary, in the given order.
func Encode(w io.Writer, summaries []provider.CareerSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, s := range summaries {
		if err := cw.Write(Row(s)); err != nil {
			return fmt.Errorf("write row for %s: %w", s.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Row renders one summary in Columns order. Missing percentages are empty.
func Row(s provider.CareerSummary) []string {
	return []string{
		s.Name,
		strconv.Itoa(s.GamesPlayed),
		formatFloat(s.PointsPerGame),
		formatFloat(s.ReboundsPerGame),
		formatFloat(s.AssistsPerGame),
		formatFloat(s.StealsPerGame),
		formatFloat(s.BlocksPerGame),
		formatFloat(s.TurnoversPerGame),
		formatOptional(s.FieldGoalPct),
		formatOptional(s.ThreePointPct),
		formatOptional(s.FreeThrowPct),
	}
}

// WriteCSV replaces path with the rendered table. The file is written to a
// temporary sibling first and renamed into place, so a failed run never
// leaves a truncated table behind.
func WriteCSV(path string, summaries []provider.CareerSummary) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if err := Encode(tmp, summaries); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// formatFloat renders the shortest round-trip form, keeping a ".0" on whole
// numbers so float columns read as floats (20.0, not 20).
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if math.IsInf(v, 0) || math.IsNaN(v) || strings.ContainsRune(s, '.') {
		return s
	}
	return s + ".0"
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

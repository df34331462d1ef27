package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/albapepper/scoracle-careers/internal/provider"
)

func pct(v float64) *float64 { return &v }

const header = "name,games_played,points_per_game,rebounds_per_game,assists_per_game,steals_per_game,blocks_per_game,turnovers_per_game,field_goal_pct,three_point_pct,free_throw_pct"

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, []provider.CareerSummary{
		{Name: "Player A", GamesPlayed: 10, PointsPerGame: 20, ReboundsPerGame: 5, AssistsPerGame: 3,
			StealsPerGame: 0.5, BlocksPerGame: 0.2, TurnoversPerGame: 1.5,
			FieldGoalPct: pct(0.45), ThreePointPct: pct(0.35), FreeThrowPct: pct(0.8)},
		{Name: "O'Neal, \"Shaq\"", GamesPlayed: 1, PointsPerGame: 1.0 / 3.0},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[0] != header {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "Player A,10,20.0,5.0,3.0,0.5,0.2,1.5,0.45,0.35,0.8" {
		t.Errorf("row = %q", lines[1])
	}

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	second := records[2]
	if second[0] != "O'Neal, \"Shaq\"" {
		t.Errorf("name did not round-trip: %q", second[0])
	}
	if second[2] != "0.3333333333333333" {
		t.Errorf("expected shortest round-trip float, got %q", second[2])
	}
	if second[8] != "" || second[9] != "" || second[10] != "" {
		t.Errorf("nil percentages should render empty, got %v", second[8:])
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{20, "20.0"},
		{0, "0.0"},
		{1.5, "1.5"},
		{0.8, "0.8"},
		{27.123456789, "27.123456789"},
		{-3, "-3.0"},
	}
	for _, tt := range tests {
		if got := formatFloat(tt.in); got != tt.want {
			t.Errorf("formatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteCSV_EmptyProducesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteCSV(path, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != header+"\n" {
		t.Errorf("expected header-only file, got %q", data)
	}
}

func TestWriteCSV_Overwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	if err := os.WriteFile(path, []byte("stale,content\nfrom,last run\nmore,rows\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := WriteCSV(path, []provider.CareerSummary{{Name: "Fresh", GamesPlayed: 2, PointsPerGame: 4}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "stale") {
		t.Errorf("expected prior output replaced, got %q", data)
	}
	if !strings.HasPrefix(string(data), header+"\nFresh,2,4.0,") {
		t.Errorf("unexpected content %q", data)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected temp file cleaned up, dir has %d entries", len(entries))
	}
}

func TestWriteCSV_MissingDirFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.csv")
	if err := WriteCSV(path, nil); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

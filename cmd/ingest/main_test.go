package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/albapepper/scoracle-careers/internal/catalog"
	"github.com/albapepper/scoracle-careers/internal/config"
	"github.com/albapepper/scoracle-careers/internal/provider"
	"github.com/albapepper/scoracle-careers/internal/provider/nbastats"
	"github.com/albapepper/scoracle-careers/internal/seed"
)

const careerHeaders = `["SEASON_ID","TEAM_ABBREVIATION","GP","PTS","REB","AST","STL","BLK","TOV","FG_PCT","FG3_PCT","FT_PCT"]`

// statsServer serves one season for player 1, no seasons for player 2 and a
// server error for player 3.
func statsServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var rows string
		switch r.URL.Query().Get("PlayerID") {
		case "1":
			rows = `[["2020-21","AAA",10,200,50,30,5,2,15,0.45,0.35,0.80]]`
		case "2":
			rows = `[]`
		default:
			http.Error(w, "upstream unavailable", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"resource":"playercareerstats","resultSets":[{"name":"SeasonTotalsRegularSeason","headers":` +
			careerHeaders + `,"rowSet":` + rows + `}]}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRunPipeline_WritesOnlySuccessfulPlayers(t *testing.T) {
	srv := statsServer(t)
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	out := filepath.Join(t.TempDir(), "careers.csv")
	cfg := &config.Config{Workers: 3, OutputPath: out}
	players := []provider.Player{
		{ID: 1, FullName: "A"},
		{ID: 2, FullName: "B"},
		{ID: 3, FullName: "C"},
	}
	client := nbastats.NewClient(srv.URL, 5*time.Second, 0, quiet)

	result, err := runPipeline(context.Background(), cfg, players, client, quiet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Succeeded != 1 || result.Empty != 1 || result.Failed != 1 {
		t.Errorf("summary = %s", result.Summary())
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "name,games_played,points_per_game,rebounds_per_game,assists_per_game," +
		"steals_per_game,blocks_per_game,turnovers_per_game,field_goal_pct,three_point_pct,free_throw_pct\n" +
		"A,10,20.0,5.0,3.0,0.5,0.2,1.5,0.45,0.35,0.8\n"
	if string(data) != want {
		t.Errorf("csv =\n%s\nwant\n%s", data, want)
	}
}

func TestRunPipeline_CSVWriteFailureIsFatal(t *testing.T) {
	srv := statsServer(t)
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{Workers: 1, OutputPath: filepath.Join(t.TempDir(), "missing", "careers.csv")}
	client := nbastats.NewClient(srv.URL, 5*time.Second, 0, quiet)

	_, err := runPipeline(context.Background(), cfg, []provider.Player{{ID: 1, FullName: "A"}}, client, quiet)
	if err == nil || !strings.Contains(err.Error(), "write csv") {
		t.Fatalf("expected write csv error, got %v", err)
	}
}

type fakeIndex struct {
	players []provider.Player
	calls   int
}

func (f *fakeIndex) GetAllPlayers(ctx context.Context, season string) ([]provider.Player, error) {
	f.calls++
	return f.players, nil
}

func TestSelectPlayers(t *testing.T) {
	ctx := context.Background()

	league := &fakeIndex{players: []provider.Player{
		{ID: 76003, FullName: "Kareem Abdul-Jabbar"},
		{ID: 2544, FullName: "LeBron James", IsActive: true},
		{ID: 893, FullName: "Michael Jordan"},
	}}
	all, err := selectPlayers(ctx, &config.Config{}, league, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 || league.calls != 1 {
		t.Errorf("default source: got %d players after %d index calls, want the full index", len(all), league.calls)
	}

	active, err := selectPlayers(ctx, &config.Config{ActiveOnly: true}, league, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(active) != 1 || active[0].ID != 2544 {
		t.Errorf("active-only = %+v", active)
	}

	limited, err := selectPlayers(ctx, &config.Config{CatalogPath: catalog.Embedded}, &fakeIndex{}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("len = %d, want 2", len(limited))
	}

	missing := &config.Config{CatalogPath: filepath.Join(t.TempDir(), "nope.json")}
	if _, err := selectPlayers(ctx, missing, &fakeIndex{}, 0); err == nil {
		t.Error("expected error for missing catalog file")
	}
	if _, err := selectPlayers(ctx, &config.Config{}, &fakeIndex{}, 0); err == nil {
		t.Error("expected error for an empty league index")
	}
}

func TestRunPipeline_MalformedSeasonIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"resultSets":[{"name":"SeasonTotalsRegularSeason","headers":` + careerHeaders +
			`,"rowSet":[["1999-00","AAA","x",100,0,0,0,0,0,null,null,null],["2000-01","AAA",10,100,0,0,0,0,0,null,null,null]]}]}`))
	}))
	defer srv.Close()
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{Workers: 1, OutputPath: filepath.Join(t.TempDir(), "careers.csv")}
	client := nbastats.NewClient(srv.URL, 5*time.Second, 0, quiet)

	result, err := runPipeline(context.Background(), cfg, []provider.Player{{ID: 1, FullName: "A"}}, client, quiet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Failed != 1 || len(result.Summaries) != 0 {
		t.Errorf("summary = %s, want the malformed player failed", result.Summary())
	}
}

type fakeRunStore struct {
	persisted, finished bool
	finishedOutput      string
	finishErr           error
}

func (f *fakeRunStore) Persist(ctx context.Context, runID uuid.UUID, result seed.RunResult, outputPath string) error {
	f.persisted = true
	return nil
}

func (f *fakeRunStore) Finish(ctx context.Context, runID uuid.UUID, result seed.RunResult, outputPath string) error {
	f.finished = true
	f.finishedOutput = outputPath
	return f.finishErr
}

func TestCompleteRun(t *testing.T) {
	ctx := context.Background()
	result := seed.RunResult{Players: 3, Succeeded: 1, Empty: 1, Failed: 1}

	ok := &fakeRunStore{}
	if err := completeRun(ctx, ok, uuid.New(), result, "careers.csv", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok.persisted || ok.finished {
		t.Errorf("success: persisted=%v finished=%v, want persist only", ok.persisted, ok.finished)
	}

	pipelineErr := errors.New("write csv: disk full")
	failed := &fakeRunStore{finishErr: errors.New("db gone")}
	err := completeRun(ctx, failed, uuid.New(), result, "careers.csv", pipelineErr)
	if !errors.Is(err, pipelineErr) {
		t.Fatalf("err = %v, want the pipeline error", err)
	}
	if failed.persisted || !failed.finished {
		t.Errorf("failure: persisted=%v finished=%v, want the run closed without persisting", failed.persisted, failed.finished)
	}
	if failed.finishedOutput != "" {
		t.Errorf("output path = %q, want empty when no CSV was written", failed.finishedOutput)
	}
}

package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/albapepper/scoracle-careers/internal/provider"
)

type fakeIndex struct {
	players   []provider.Player
	err       error
	calls     int
	gotSeason string
}

func (f *fakeIndex) GetAllPlayers(ctx context.Context, season string) ([]provider.Player, error) {
	f.calls++
	f.gotSeason = season
	return f.players, f.err
}

func leagueIndex(n int) []provider.Player {
	players := make([]provider.Player, n)
	for i := range players {
		players[i] = provider.Player{ID: i + 1, FullName: "Player", IsActive: i%10 == 0}
	}
	return players
}

func TestResolve_DefaultIsLeagueIndex(t *testing.T) {
	index := &fakeIndex{players: leagueIndex(5000)}

	players, err := Resolve(context.Background(), "", index, "2025-26")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(players) != 5000 {
		t.Errorf("len = %d, want the whole index", len(players))
	}
	if index.calls != 1 || index.gotSeason != "2025-26" {
		t.Errorf("index called %d times with season %q", index.calls, index.gotSeason)
	}
}

func TestResolve_Sources(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "players.json")
	if err := Save(path, []provider.Player{{ID: 9, FullName: "Filed Player"}}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		source  string
		index   *fakeIndex
		wantLen int // -1 skips the length check
		wantErr bool
	}{
		{"embedded sample", Embedded, &fakeIndex{}, -1, false},
		{"file", path, &fakeIndex{}, 1, false},
		{"empty index", "", &fakeIndex{}, 0, true},
		{"index failure", "", &fakeIndex{err: errors.New("503")}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			players, err := Resolve(context.Background(), tt.source, tt.index, "2025-26")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantLen >= 0 && len(players) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(players), tt.wantLen)
			}
			if tt.index.calls != 0 {
				t.Error("league index should not be queried for explicit sources")
			}
		})
	}
}

func TestResolve_EmptyIndexIsEmptyCatalog(t *testing.T) {
	_, err := Resolve(context.Background(), "", &fakeIndex{}, "2025-26")
	if !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("err = %v, want ErrEmptyCatalog", err)
	}
}

package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/match"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleResult(id string, mode match.Mode, winner string) match.Result {
	return match.Result{
		MatchID:   match.MatchID(id),
		Mode:      mode,
		MapID:     "default",
		Seed:      42,
		Reason:    match.EndCompleted,
		Winner:    winner,
		Ticks:     1234,
		Duration:  2.05,
		StartedAt: time.UnixMilli(1_700_000_000_000),
		Players: []match.PlayerResult{
			{Slot: core.Player1, Name: "Blue", Kills: 1, Alive: winner == "Blue", DiedAt: 0},
			{Slot: core.Player2, Name: "Red", Bot: true, Kills: 0, Alive: winner == "Red", DiedAt: 1234},
		},
		Kills: []match.Kill{
			{Tick: 1234, Killer: "Blue", Victim: "Red", Weapon: "bullet"},
		},
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSaveAndLoadMatch(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	r := sampleResult("m-1", match.ModeVsBot, "Blue")
	if _, err := store.SaveMatch(ctx, r); err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}

	m, err := store.MatchByID(ctx, "m-1")
	if err != nil || m == nil {
		t.Fatalf("MatchByID() = %v, %v", m, err)
	}
	if m.Mode != "bot" || m.MapID != "default" || m.Seed != 42 || m.Winner != "Blue" ||
		m.EndReason != "completed" || m.Ticks != 1234 || m.Duration != 2.05 {
		t.Errorf("match = %+v", m)
	}
	if !m.StartedAt.Equal(r.StartedAt) {
		t.Errorf("StartedAt = %v, expected %v", m.StartedAt, r.StartedAt)
	}
	if len(m.Players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(m.Players))
	}
	red := m.Players[1]
	if red.Slot != 2 || red.Name != "Red" || !red.Bot || red.Alive || red.DiedAt != 1234 {
		t.Errorf("player = %+v", red)
	}

	kills, err := store.KillsForMatch(ctx, "m-1")
	if err != nil {
		t.Fatalf("KillsForMatch() failed: %v", err)
	}
	if len(kills) != 1 || kills[0] != (KillRecord{Tick: 1234, Killer: "Blue", Victim: "Red", Weapon: "bullet"}) {
		t.Errorf("kills = %+v", kills)
	}
}

func TestDrawAndSuicide(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	r := sampleResult("draw", match.ModeDuel, "")
	r.Kills = []match.Kill{{Tick: 10, Victim: "Blue", Weapon: "particle"}}
	if err := store.SaveResult(ctx, r); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}

	m, _ := store.MatchByID(ctx, "draw")
	if m.Winner != "" {
		t.Errorf("draw stored winner %q", m.Winner)
	}
	kills, _ := store.KillsForMatch(ctx, "draw")
	if len(kills) != 1 || kills[0].Killer != "" {
		t.Errorf("kills = %+v", kills)
	}
}

func TestDuplicateMatchRejected(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.SaveMatch(ctx, sampleResult("dup", match.ModeDuel, "Blue")); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveMatch(ctx, sampleResult("dup", match.ModeDuel, "Red")); err == nil {
		t.Error("expected error saving the same match twice")
	}

	// The failed save must not leave partial rows behind
	kills, _ := store.KillsForMatch(ctx, "dup")
	if len(kills) != 1 {
		t.Errorf("expected 1 kill after rollback, got %d", len(kills))
	}
}

func TestMatchByIDMissing(t *testing.T) {
	store := openTestStore(t)
	m, err := store.MatchByID(context.Background(), "nope")
	if err != nil || m != nil {
		t.Errorf("MatchByID() = %v, %v; expected nil, nil", m, err)
	}
}

func TestRecentMatches(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if _, err := store.SaveMatch(ctx, sampleResult(id, match.ModeDuel, "Blue")); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := store.SaveMatch(ctx, sampleResult("d", match.ModeBrawl, "Red")); err != nil {
		t.Fatal(err)
	}

	recent, err := store.RecentMatches(ctx, "", 3)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(recent) != 3 || recent[0].MatchID != "d" || recent[2].MatchID != "b" {
		t.Errorf("recent = %+v", recent)
	}
	if len(recent[0].Players) != 2 {
		t.Error("players not loaded")
	}

	duels, err := store.RecentMatches(ctx, "duel", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(duels) != 3 {
		t.Errorf("expected 3 duels, got %d", len(duels))
	}
}

func TestLeaderboard(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	results := []match.Result{
		sampleResult("1", match.ModeDuel, "Blue"),
		sampleResult("2", match.ModeDuel, "Blue"),
		sampleResult("3", match.ModeDuel, "Red"),
		sampleResult("4", match.ModeBrawl, "Red"),
	}
	results[2].Players[1].Kills = 3
	for _, r := range results {
		if _, err := store.SaveMatch(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	board, err := store.Leaderboard(ctx, "duel", 10)
	if err != nil {
		t.Fatalf("Leaderboard() failed: %v", err)
	}
	expected := []LeaderboardEntry{
		{Name: "Blue", Matches: 3, Wins: 2, Kills: 3},
		{Name: "Red", Matches: 3, Wins: 1, Kills: 3},
	}
	if len(board) != 2 || board[0] != expected[0] || board[1] != expected[1] {
		t.Errorf("duel leaderboard = %+v", board)
	}

	all, err := store.Leaderboard(ctx, "", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[0].Matches != 4 {
		t.Errorf("overall leaderboard = %+v", all)
	}
}

func TestClearMatches(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i, mode := range []match.Mode{match.ModeDuel, match.ModeDuel, match.ModeTrio} {
		if _, err := store.SaveMatch(ctx, sampleResult(string(rune('a'+i)), mode, "Blue")); err != nil {
			t.Fatal(err)
		}
	}

	n, err := store.ClearMatches(ctx, "duel")
	if err != nil || n != 2 {
		t.Fatalf("ClearMatches(duel) = %d, %v", n, err)
	}
	if kills, _ := store.KillsForMatch(ctx, "a"); len(kills) != 0 {
		t.Error("kills of cleared matches should be removed")
	}
	if remaining, _ := store.RecentMatches(ctx, "", 0); len(remaining) != 1 || remaining[0].Mode != "trio" {
		t.Errorf("remaining = %+v", remaining)
	}

	if n, err := store.ClearMatches(ctx, ""); err != nil || n != 1 {
		t.Errorf("ClearMatches(all) = %d, %v", n, err)
	}
}

package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/match"
	"github.com/vovakirdan/tui-jumper/internal/storage"

	// Register the modes
	_ "github.com/vovakirdan/tui-jumper/internal/games/jumper"
)

func menuUpdate(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(MenuModel)
}

func TestMenuListsModes(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig())

	if len(m.items) != len(match.Modes()) {
		t.Fatalf("expected %d items, got %d", len(match.Modes()), len(m.items))
	}
	view := m.View()
	for _, mode := range match.Modes() {
		if !strings.Contains(view, mode.Title()) {
			t.Errorf("menu should list %q", mode.Title())
		}
	}
	if !strings.Contains(view, "1 player + 1 bot") {
		t.Error("vs bot mode should describe its seats")
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig())

	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	res := m.resultOf()
	if res.Quit || res.WantsScoreboard {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.Mode != match.Modes()[1] {
		t.Errorf("selected %v, expected %v", res.Mode, match.Modes()[1])
	}
}

func TestMenuCursorBounds(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig())

	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor = %d, expected 0", m.cursor)
	}
	for i := 0; i < 10; i++ {
		m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != len(m.items)-1 {
		t.Errorf("cursor = %d, expected %d", m.cursor, len(m.items)-1)
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := menuUpdate(t, NewMenuModel(core.DefaultConfig()), tea.KeyMsg{Type: tea.KeyTab})
	if !m.resultOf().WantsScoreboard {
		t.Error("tab should open the history screen")
	}

	m = menuUpdate(t, NewMenuModel(core.DefaultConfig()), runeKey('q'))
	if !m.resultOf().Quit || m.View() != "" {
		t.Error("q should quit")
	}
}

// stubHistory serves canned records and remembers the last mode asked for.
type stubHistory struct {
	matches  []storage.MatchRecord
	leaders  []storage.LeaderboardEntry
	err      error
	lastMode string
}

func (s *stubHistory) RecentMatches(_ context.Context, mode string, _ int) ([]storage.MatchRecord, error) {
	s.lastMode = mode
	return s.matches, s.err
}

func (s *stubHistory) Leaderboard(_ context.Context, mode string, _ int) ([]storage.LeaderboardEntry, error) {
	s.lastMode = mode
	return s.leaders, s.err
}

func boardUpdate(t *testing.T, m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(ScoreboardModel)
}

func TestScoreboardViews(t *testing.T) {
	src := &stubHistory{
		leaders: []storage.LeaderboardEntry{{Name: "Blue", Matches: 3, Wins: 2, Kills: 4}},
		matches: []storage.MatchRecord{{
			Mode: "duel", MapID: "default", Winner: "", Ticks: 900,
			StartedAt: time.Date(2024, 1, 2, 15, 4, 0, 0, time.UTC),
		}},
	}
	m := NewScoreboardModel(src, 100, 30)

	view := m.View()
	if !strings.Contains(view, "LEADERBOARD") || !strings.Contains(view, "Blue") {
		t.Errorf("leaderboard view missing data:\n%s", view)
	}

	m = boardUpdate(t, m, runeKey('v'))
	view = m.View()
	if !strings.Contains(view, "MATCH HISTORY") || !strings.Contains(view, "draw") {
		t.Errorf("history view missing data:\n%s", view)
	}
}

func TestScoreboardModeTabs(t *testing.T) {
	src := &stubHistory{}
	m := NewScoreboardModel(src, 60, 30)
	if src.lastMode != "" {
		t.Errorf("first tab should list all modes, asked for %q", src.lastMode)
	}

	m = boardUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if src.lastMode != match.Modes()[0].String() {
		t.Errorf("lastMode = %q, expected %q", src.lastMode, match.Modes()[0])
	}

	m = boardUpdate(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = boardUpdate(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	last := match.Modes()[len(match.Modes())-1]
	if src.lastMode != last.String() {
		t.Errorf("wrap around: lastMode = %q, expected %q", src.lastMode, last)
	}
	if !strings.Contains(m.View(), "No matches recorded yet") {
		t.Error("empty store should explain itself")
	}
}

func TestScoreboardErrors(t *testing.T) {
	m := NewScoreboardModel(&stubHistory{err: errors.New("disk on fire")}, 100, 30)
	if !strings.Contains(m.View(), "disk on fire") {
		t.Error("load error should be shown")
	}

	m = NewScoreboardModel(nil, 100, 30)
	if !strings.Contains(m.View(), "disabled") {
		t.Error("nil source should show history as disabled")
	}
}

func TestScoreboardBack(t *testing.T) {
	m := boardUpdate(t, NewScoreboardModel(nil, 80, 24), tea.KeyMsg{Type: tea.KeyEsc})
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("esc should go back to the menu")
	}
}

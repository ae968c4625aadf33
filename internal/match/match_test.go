package match

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-jumper/internal/bot"
	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/maps"
	"github.com/vovakirdan/tui-jumper/internal/world"
)

func TestParseMode(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if got, err := ParseMode("BRAWL"); err != nil || got != ModeBrawl {
		t.Errorf("ParseMode should ignore case, got %v, %v", got, err)
	}
	if _, err := ParseMode("solo"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestSeats(t *testing.T) {
	players := config.DefaultSimulationConfig().Players
	tests := []struct {
		mode Mode
		bots []bool
	}{
		{ModeDuel, []bool{false, false}},
		{ModeTrio, []bool{false, false, false}},
		{ModeVsBot, []bool{false, true}},
		{ModeBrawl, []bool{true, true, true}},
	}

	for _, tc := range tests {
		t.Run(tc.mode.String(), func(t *testing.T) {
			seats := tc.mode.Seats(players)
			if len(seats) != len(tc.bots) {
				t.Fatalf("got %d seats, expected %d", len(seats), len(tc.bots))
			}
			for i, s := range seats {
				if s.Slot != core.PlayerID(i+1) || s.Name != players[i].Name || s.Bot != tc.bots[i] {
					t.Errorf("seat %d = %+v", i, s)
				}
			}
		})
	}

	// Fewer configured players than the mode wants
	if seats := ModeTrio.Seats(players[:2]); len(seats) != 2 {
		t.Errorf("expected seats capped at 2, got %d", len(seats))
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[MatchID]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if len(id) != 36 || seen[id] {
			t.Fatalf("bad or duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestNewWorld(t *testing.T) {
	cfg := config.DefaultSimulationConfig()
	mp, err := maps.Default(cfg.Map)
	if err != nil {
		t.Fatal(err)
	}
	m := New(ModeTrio, mp.ID, 1, ModeTrio.Seats(cfg.Players))

	w, err := NewWorld(cfg, mp, m)
	if err != nil {
		t.Fatalf("NewWorld() error: %v", err)
	}
	for _, slot := range []core.PlayerID{core.Player1, core.Player2, core.Player3} {
		p, ok := w.PlayerBySlot(slot)
		if !ok {
			t.Fatalf("slot %d not seated", slot)
		}
		if p.Body.Pos != mp.Spawns[slot] {
			t.Errorf("slot %d spawned at %v, expected %v", slot, p.Body.Pos, mp.Spawns[slot])
		}
	}

	// Slots missing from the map use the configured spawn
	mp.Spawns = nil
	w, err = NewWorld(cfg, mp, m)
	if err != nil {
		t.Fatalf("NewWorld() error: %v", err)
	}
	p, _ := w.PlayerBySlot(core.Player2)
	if p.Body.Pos != core.V(1400, 50) {
		t.Errorf("fallback spawn = %v", p.Body.Pos)
	}

	bad := &maps.Map{ID: "empty"}
	if _, err := NewWorld(cfg, bad, m); !errors.Is(err, maps.ErrInvalidMap) {
		t.Errorf("expected ErrInvalidMap, got %v", err)
	}
}

func shootoutMap() *maps.Map {
	return &maps.Map{
		ID:        "shootout",
		Platforms: []core.AABB{core.Box(1000, 100, 100, 15)},
		Spawns: map[core.PlayerID]core.Vec2{
			core.Player1: core.V(100, 780),
			core.Player2: core.V(300, 780),
		},
	}
}

func idleBot() bot.Controller {
	return bot.ControllerFunc(func(bot.Observer, core.PlayerID) core.InputFrame {
		return core.NewInputFrame()
	})
}

func newShootout(t *testing.T, seed int64) *Runner {
	t.Helper()
	cfg := config.DefaultSimulationConfig()
	m := New(ModeBrawl, "shootout", seed, ModeBrawl.Seats(cfg.Players)[:2])
	w, err := NewWorld(cfg, shootoutMap(), m)
	if err != nil {
		t.Fatal(err)
	}
	return &Runner{
		Match: m,
		World: w,
		Controllers: map[core.PlayerID]bot.Controller{
			core.Player1: bot.NewChaser(cfg.Bot),
			core.Player2: idleBot(),
		},
		MaxTicks: 10000,
	}
}

func TestRunnerCompletes(t *testing.T) {
	r := newShootout(t, 3)
	var kills int
	r.OnEvent = func(ev world.Event) {
		if ev.Kind == world.EventKill {
			kills++
		}
	}

	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if res.Reason != EndCompleted || res.Winner != "Blue" {
		t.Fatalf("result = %+v", res)
	}
	if kills != 1 || len(res.Kills) != 1 {
		t.Fatalf("kills: events %d, recorded %d", kills, len(res.Kills))
	}
	k := res.Kills[0]
	if k.Killer != "Blue" || k.Victim != "Red" || k.Weapon != "bullet" {
		t.Errorf("kill = %+v", k)
	}
	if len(res.Players) != 2 || res.Players[0].Kills != 1 || res.Players[1].Alive || !res.Players[1].Bot {
		t.Errorf("players = %+v", res.Players)
	}
	if res.MatchID != r.Match.ID() || res.MapID != "shootout" || res.Mode != ModeBrawl || res.Ticks == 0 {
		t.Errorf("metadata = %+v", res)
	}
}

func TestRunnerTickLimit(t *testing.T) {
	r := newShootout(t, 3)
	r.Controllers[core.Player1] = idleBot()
	r.MaxTicks = 50

	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if res.Reason != EndTickLimit || res.Ticks != 50 || res.Winner != "" {
		t.Errorf("result = %+v", res)
	}
}

func TestRunnerCancelled(t *testing.T) {
	r := newShootout(t, 3)
	r.Controllers[core.Player1] = idleBot()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := r.Run(ctx)
	if !errors.Is(err, context.Canceled) || res.Reason != EndAborted {
		t.Errorf("Run() = %v, %v", res.Reason, err)
	}
}

func TestRunnerStalled(t *testing.T) {
	r := newShootout(t, 3)
	r.Source = core.NewScriptedSteps()

	if _, err := r.Run(context.Background()); !errors.Is(err, ErrStalled) {
		t.Errorf("expected ErrStalled, got %v", err)
	}
}

func TestRunnerDeterministic(t *testing.T) {
	run := func() Result {
		cfg := config.DefaultSimulationConfig()
		mp, err := maps.Default(cfg.Map)
		if err != nil {
			t.Fatal(err)
		}
		m := New(ModeBrawl, mp.ID, 11, ModeBrawl.Seats(cfg.Players))
		w, err := NewWorld(cfg, mp, m)
		if err != nil {
			t.Fatal(err)
		}
		controllers, err := Controllers(m, func(core.PlayerID) (bot.Controller, error) {
			return bot.NewChaser(cfg.Bot), nil
		})
		if err != nil {
			t.Fatal(err)
		}
		res, err := (&Runner{Match: m, World: w, Controllers: controllers, MaxTicks: 6000}).Run(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		return res
	}

	a, b := run(), run()
	if a.Ticks != b.Ticks || a.Winner != b.Winner || a.Reason != b.Reason {
		t.Errorf("runs diverged: %d/%q/%v vs %d/%q/%v", a.Ticks, a.Winner, a.Reason, b.Ticks, b.Winner, b.Reason)
	}
	if !reflect.DeepEqual(a.Players, b.Players) || !reflect.DeepEqual(a.Kills, b.Kills) {
		t.Error("runs diverged in players or kills")
	}
}

func TestControllersOnlyForBots(t *testing.T) {
	cfg := config.DefaultSimulationConfig()
	m := New(ModeVsBot, "default", 1, ModeVsBot.Seats(cfg.Players))
	cs, err := Controllers(m, func(core.PlayerID) (bot.Controller, error) { return idleBot(), nil })
	if err != nil {
		t.Fatal(err)
	}
	if len(cs) != 1 || cs[core.Player2] == nil {
		t.Errorf("controllers = %v", cs)
	}

	boom := errors.New("boom")
	if _, err := Controllers(m, func(core.PlayerID) (bot.Controller, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Errorf("expected factory error, got %v", err)
	}
}

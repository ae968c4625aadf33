// Package jumper adapts the platformer world to the registry Game
// interface: it seats humans and bots for a mode, runs several fixed
// physics steps per rendered frame and draws the result to a Screen.
package jumper

import (
	"context"

	"github.com/vovakirdan/tui-jumper/internal/bot"
	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/maps"
	"github.com/vovakirdan/tui-jumper/internal/match"
	"github.com/vovakirdan/tui-jumper/internal/registry"
	"github.com/vovakirdan/tui-jumper/internal/world"
)

// Game implements registry.Game for one match mode.
type Game struct {
	mode  match.Mode
	setup registry.Setup

	runtime     core.RuntimeConfig
	match       *match.Match
	world       *world.World
	rec         *match.Recorder
	controllers map[core.PlayerID]bot.Controller

	dt       float64 // Seconds per physics step
	substeps int     // Physics steps per rendered frame

	paused  bool
	result  *match.Result
	saveErr error
	err     error
}

// New creates a game for mode. The setup is checked by building one
// throwaway match, so a bad map or config fails here rather than in Reset.
func New(mode match.Mode, s registry.Setup) (*Game, error) {
	if s.Map == nil {
		mp, err := maps.Default(s.Config.Map)
		if err != nil {
			return nil, err
		}
		s.Map = mp
	}
	if s.NewBot == nil {
		cfg := s.Config.Bot
		s.NewBot = func(core.PlayerID) (bot.Controller, error) {
			return bot.NewChaser(cfg), nil
		}
	}

	g := &Game{
		mode:     mode,
		setup:    s,
		dt:       s.Config.Tick.DT(),
		substeps: max(1, s.Config.Tick.UpdatesPerFrame),
	}
	if err := g.build(1); err != nil {
		return nil, err
	}
	return g, nil
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return g.mode.String()
}

// Title returns the display name for this mode.
func (g *Game) Title() string {
	return g.mode.Title()
}

// Reset starts a new match with the runtime seed.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.paused = false
	g.result = nil
	g.saveErr = nil
	g.err = g.build(runtime.Seed)
}

func (g *Game) build(seed int64) error {
	cfg := g.setup.Config
	m := match.New(g.mode, g.setup.Map.ID, seed, g.mode.Seats(cfg.Players))

	w, err := match.NewWorld(cfg, g.setup.Map, m)
	if err != nil {
		return err
	}
	controllers, err := match.Controllers(m, g.setup.NewBot)
	if err != nil {
		return err
	}

	g.match = m
	g.world = w
	g.rec = match.NewRecorder(m)
	g.controllers = controllers
	return nil
}

// Step advances the match by one rendered frame.
func (g *Game) Step(in core.MultiInputFrame) core.StepResult {
	if g.err != nil {
		return core.StepResult{State: g.State()}
	}

	if in.Any(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.world.Over() {
		return core.StepResult{State: g.State()}
	}

	for i := 0; i < g.substeps && !g.world.Over(); i++ {
		frame := in.Clone()
		bot.Drive(g.world, g.controllers, &frame)

		res := g.world.Step(frame, g.dt)
		g.rec.Observe(g.world, res)
		if g.setup.OnEvent != nil {
			for _, ev := range res.Events {
				g.setup.OnEvent(g.match.ID(), ev)
			}
		}
	}

	if g.world.Over() && g.result == nil {
		g.finish(match.EndCompleted)
	}
	return core.StepResult{State: g.State()}
}

// finish freezes the result and hands it to the saver.
func (g *Game) finish(reason match.EndReason) {
	res := g.rec.Result(g.world, reason)
	g.result = &res
	if g.setup.Saver != nil {
		g.saveErr = g.setup.Saver.SaveResult(context.Background(), res)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.err != nil {
		return core.GameState{GameOver: true}
	}
	st := core.GameState{
		Tick:     g.world.Tick(),
		Alive:    len(g.world.Players()),
		GameOver: g.world.Over(),
		Paused:   g.paused,
	}
	if g.world.Over() && g.world.Winner() != world.NoEntity {
		st.Winner = g.world.PlayerName(g.world.Winner())
	}
	return st
}

// Snapshot returns the world as the renderer sees it.
func (g *Game) Snapshot() world.Snapshot {
	return g.world.Snapshot()
}

// Match returns the metadata of the running match.
func (g *Game) Match() *match.Match {
	return g.match
}

// Result returns the outcome once the match has ended.
func (g *Game) Result() (match.Result, bool) {
	if g.result == nil {
		return match.Result{}, false
	}
	return *g.result, true
}

// SaveErr returns the error from saving the last result, if any.
func (g *Game) SaveErr() error {
	return g.saveErr
}

// Err returns the error from the last Reset, if any.
func (g *Game) Err() error {
	return g.err
}

// Register every mode with the registry
func init() {
	for _, m := range match.Modes() {
		mode := m
		registry.Register(mode.String(), mode.Title(), func(s registry.Setup) (registry.Game, error) {
			g, err := New(mode, s)
			if err != nil {
				return nil, err
			}
			return g, nil
		})
	}
}

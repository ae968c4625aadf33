package match

import (
	"context"
	"errors"

	"github.com/vovakirdan/tui-jumper/internal/bot"
	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/world"
)

// ErrStalled is returned when the tick source stops advancing the world.
var ErrStalled = errors.New("match: tick source produced no step")

// Runner plays a match to the end without a terminal, driving every seat
// from a controller. The same match, seed and controllers always produce
// the same result.
type Runner struct {
	Match       *Match
	World       *world.World
	Controllers map[core.PlayerID]bot.Controller
	Source      core.TickSource
	MaxTicks    uint64            // 0 means no limit
	OnEvent     func(world.Event) // Optional, called for every event in order
}

// Run steps the world until the match ends, the tick budget runs out or
// ctx is cancelled.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	rec := NewRecorder(r.Match)
	source := r.Source
	if source == nil {
		source = core.FixedRate(r.World.Config().Tick.UPS)
	}

	for !r.World.Over() {
		if r.MaxTicks > 0 && r.World.Tick() >= r.MaxTicks {
			return rec.Result(r.World, EndTickLimit), nil
		}
		// Cancellation is checked every 1000 ticks
		if r.World.Tick()%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return rec.Result(r.World, EndAborted), err
			}
		}

		inputs := core.NewMultiInputFrame()
		bot.Drive(r.World, r.Controllers, &inputs)

		before := r.World.Tick()
		res := r.World.Step(inputs, source.Next())
		if res.Tick == before {
			return rec.Result(r.World, EndAborted), ErrStalled
		}
		rec.Observe(r.World, res)
		if r.OnEvent != nil {
			for _, ev := range res.Events {
				r.OnEvent(ev)
			}
		}
	}
	return rec.Result(r.World, EndCompleted), nil
}

// Controllers builds a controller for every bot seat in m using newBot.
func Controllers(m *Match, newBot func(slot core.PlayerID) (bot.Controller, error)) (map[core.PlayerID]bot.Controller, error) {
	out := make(map[core.PlayerID]bot.Controller)
	for _, s := range m.Seats {
		if !s.Bot {
			continue
		}
		c, err := newBot(s.Slot)
		if err != nil {
			return nil, err
		}
		out[s.Slot] = c
	}
	return out, nil
}

package bot

import (
	"math"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
)

// Chaser hunts the nearest player: it walks toward the target until it is
// KeepAway player widths away, jumps whenever the target sits on another
// level and shoots whenever the two are roughly level.
type Chaser struct {
	ChaseRadius float64 // Targets further away are ignored; 0 means half the world diagonal
	KeepAway    float64 // Preferred horizontal gap, in player widths
}

// NewChaser builds a chaser from the bot section of the config.
func NewChaser(cfg config.BotConfig) *Chaser {
	return &Chaser{ChaseRadius: cfg.ChaseRadius, KeepAway: cfg.KeepAway}
}

// Decide implements Controller.
func (c *Chaser) Decide(obs Observer, slot core.PlayerID) core.InputFrame {
	frame := core.NewInputFrame()

	self, ok := obs.PlayerBySlot(slot)
	if !ok {
		return frame
	}
	target, ok := nearest(self, obs.Players())
	if !ok {
		return frame
	}

	pc := obs.Config().Player
	d := self.Body.Pos.Sub(target.Body.Pos)

	radius := c.ChaseRadius
	if radius <= 0 {
		radius = obs.Bounds().Size.Length() / 2
	}
	if d.Length() < radius {
		gap := c.KeepAway * pc.Width
		switch {
		case d.X < -gap:
			frame.Set(core.ActionRight)
		case d.X > gap:
			frame.Set(core.ActionLeft)
		}
		if math.Abs(d.Y) > pc.Height/2 && self.Body.Grounded() {
			frame.Set(core.ActionJump)
		}
	}

	if math.Abs(d.Y) < pc.Height {
		frame.Set(core.ActionShoot)
	}
	return frame
}

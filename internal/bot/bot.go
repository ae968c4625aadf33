// Package bot provides computer-controlled players. A Controller looks at
// the world once per tick and answers with the same input frame a human
// would produce, so the simulation cannot tell bots and keyboards apart.
package bot

import (
	"math"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/world"
)

// Observer is the read-only view of a world that controllers need.
// *world.World satisfies it.
type Observer interface {
	PlayerBySlot(slot core.PlayerID) (world.Entity, bool)
	Players() []world.Entity
	Bounds() core.AABB
	Config() config.SimulationConfig
}

// Controller decides the input of one player slot for the next tick.
type Controller interface {
	Decide(obs Observer, slot core.PlayerID) core.InputFrame
}

// ControllerFunc adapts a plain function to Controller.
type ControllerFunc func(obs Observer, slot core.PlayerID) core.InputFrame

// Decide calls f.
func (f ControllerFunc) Decide(obs Observer, slot core.PlayerID) core.InputFrame {
	return f(obs, slot)
}

// Drive asks every controller for its slot's input and stores it in
// inputs, replacing whatever the keyboard produced for that slot.
// Slots are visited in ascending order.
func Drive(obs Observer, controllers map[core.PlayerID]Controller, inputs *core.MultiInputFrame) {
	for slot := core.Player1; slot <= core.MaxPlayers; slot++ {
		c, ok := controllers[slot]
		if !ok || c == nil {
			continue
		}
		inputs.SetPlayer(slot, c.Decide(obs, slot))
	}
}

// nearest returns the live player closest to self, measured between
// top-left corners. Ties keep the lower ID.
func nearest(self world.Entity, players []world.Entity) (world.Entity, bool) {
	var best world.Entity
	bestDist := math.Inf(1)
	for _, p := range players {
		if p.ID == self.ID {
			continue
		}
		if d := self.Body.Pos.Distance(p.Body.Pos); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best, !math.IsInf(bestDist, 1)
}

package match

import (
	"fmt"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/maps"
	"github.com/vovakirdan/tui-jumper/internal/world"
)

// NewWorld builds the world for m on mp and seats every player.
// Spawn points come from the map, falling back to the configured slot.
func NewWorld(cfg config.SimulationConfig, mp *maps.Map, m *Match) (*world.World, error) {
	size := core.V(cfg.Player.Width, cfg.Player.Height)
	if err := mp.Validate(cfg.Bounds(), size); err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}

	w, err := world.New(cfg, mp.Platforms, world.WithSeed(m.Seed))
	if err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}
	for _, s := range m.Seats {
		var fallback core.Vec2
		if i := int(s.Slot) - 1; i >= 0 && i < len(cfg.Players) {
			fallback = core.V(cfg.Players[i].SpawnX, cfg.Players[i].SpawnY)
		}
		if _, err := w.AddPlayer(s.Slot, s.Name, s.Color, mp.Spawn(s.Slot, fallback)); err != nil {
			return nil, fmt.Errorf("match: seat %s: %w", s.Name, err)
		}
	}
	return w, nil
}

package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-jumper/internal/core"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks the configuration and reports the first problem found.
func (c SimulationConfig) Validate() error {
	checks := []struct {
		name string
		v    float64
	}{
		{"world.width", c.World.Width},
		{"world.height", c.World.Height},
		{"player.width", c.Player.Width},
		{"player.height", c.Player.Height},
		{"bullet.size", c.Bullet.Size},
		{"bomb.size", c.Bomb.Size},
		{"rocket.size", c.Rocket.Size},
		{"particle.size", c.Particle.Size},
		{"map.cell_w", c.Map.CellW},
		{"map.cell_h", c.Map.CellH},
		{"map.platform_height", c.Map.PlatformHeight},
	}
	for _, ch := range checks {
		if !(ch.v > 0) || math.IsInf(ch.v, 0) {
			return invalid("%s must be a positive number, got %v", ch.name, ch.v)
		}
	}

	nonNegative := []struct {
		name string
		v    float64
	}{
		{"player.speed", c.Player.Speed},
		{"player.gravity", c.Player.Gravity},
		{"player.jump", c.Player.Jump},
		{"bullet.speed", c.Bullet.Speed},
		{"bullet.gravity", c.Bullet.Gravity},
		{"bullet.cooldown", c.Bullet.Cooldown},
		{"bomb.speed", c.Bomb.Speed},
		{"bomb.gravity", c.Bomb.Gravity},
		{"bomb.fuse", c.Bomb.Fuse},
		{"bomb.cooldown", c.Bomb.Cooldown},
		{"rocket.speed", c.Rocket.Speed},
		{"rocket.gravity", c.Rocket.Gravity},
		{"rocket.turn_rate", c.Rocket.TurnRate},
		{"rocket.cooldown", c.Rocket.Cooldown},
		{"particle.speed", c.Particle.Speed},
		{"particle.gravity", c.Particle.Gravity},
		{"particle.lifetime", c.Particle.Lifetime},
		{"bot.chase_radius", c.Bot.ChaseRadius},
		{"bot.keep_away", c.Bot.KeepAway},
	}
	for _, ch := range nonNegative {
		if !(ch.v >= 0) || math.IsInf(ch.v, 0) {
			return invalid("%s must be a non-negative number, got %v", ch.name, ch.v)
		}
	}

	if math.IsNaN(c.Bullet.AngleDeg) || math.Abs(c.Bullet.AngleDeg) >= 90 {
		return invalid("bullet.angle_deg must be within (-90, 90), got %v", c.Bullet.AngleDeg)
	}
	if c.Tick.UPS <= 0 {
		return invalid("tick.ups must be positive, got %d", c.Tick.UPS)
	}
	if c.Tick.UpdatesPerFrame <= 0 || c.Tick.UpdatesPerFrame > c.Tick.UPS {
		return invalid("tick.updates_per_frame must be in [1, ups], got %d", c.Tick.UpdatesPerFrame)
	}
	if c.Particle.Count < 0 {
		return invalid("particle.count must be non-negative, got %d", c.Particle.Count)
	}
	if len([]rune(c.Map.Marker)) != 1 {
		return invalid("map.marker must be a single character, got %q", c.Map.Marker)
	}
	if c.Player.Width > c.World.Width || c.Player.Height > c.World.Height {
		return invalid("player %vx%v does not fit in world %vx%v",
			c.Player.Width, c.Player.Height, c.World.Width, c.World.Height)
	}

	if len(c.Players) < 2 || len(c.Players) > core.MaxPlayers {
		return invalid("players must list 2 to %d slots, got %d", core.MaxPlayers, len(c.Players))
	}
	for i, p := range c.Players {
		if p.Name == "" {
			return invalid("players[%d].name is empty", i)
		}
		if _, ok := core.ParseColor(p.Color); !ok {
			return invalid("players[%d].color %q is not a known color", i, p.Color)
		}
	}

	colors := []struct{ name, v string }{
		{"bullet.color", c.Bullet.Color},
		{"bomb.color", c.Bomb.Color},
		{"rocket.color", c.Rocket.Color},
		{"particle.color", c.Particle.Color},
		{"map.color", c.Map.Color},
	}
	for _, col := range colors {
		if _, ok := core.ParseColor(col.v); !ok {
			return invalid("%s %q is not a known color", col.name, col.v)
		}
	}
	return nil
}

// Bounds returns the world rectangle.
func (c SimulationConfig) Bounds() core.AABB {
	return core.Box(0, 0, c.World.Width, c.World.Height)
}

// ColorOf resolves a configured color name, falling back to the default.
func ColorOf(name string) core.Color {
	col, _ := core.ParseColor(name)
	return col
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("config: %w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

package config

import (
	_ "embed"
)

//go:embed defaults/jumper.yaml
var defaultJumperYAML []byte

// DefaultSimulationConfig returns the built-in configuration.
// It mirrors defaults/jumper.yaml and is used when the embedded file
// cannot be parsed.
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		World: WorldConfig{
			Width:  1500,
			Height: 800,
		},
		Tick: TickConfig{
			UPS:             600,
			UpdatesPerFrame: 10,
		},
		Player: PlayerConfig{
			Width:   14,
			Height:  20,
			Speed:   300,
			Gravity: 2000,
			Jump:    700,
		},
		Players: []PlayerSlot{
			{Name: "Blue", Color: "bright_blue", SpawnX: 0, SpawnY: 0},
			{Name: "Red", Color: "bright_red", SpawnX: 1400, SpawnY: 50},
			{Name: "Green", Color: "bright_green", SpawnX: 600, SpawnY: 750},
		},
		Bullet: BulletConfig{
			Size:     5,
			Speed:    1000,
			Gravity:  300,
			AngleDeg: 2,
			Cooldown: 0.7,
			Color:    "bright_yellow",
		},
		Bomb: BombConfig{
			Size:     6,
			Speed:    100,
			Gravity:  500,
			Fuse:     0,
			Cooldown: 0.7,
			Color:    "white",
		},
		Rocket: RocketConfig{
			Size:     5,
			Speed:    450,
			Gravity:  0,
			TurnRate: 3,
			Cooldown: 2.5,
			Color:    "magenta",
		},
		Particle: ParticleConfig{
			Size:     4,
			Speed:    250,
			Gravity:  500,
			Count:    8,
			Lifetime: 2,
			Color:    "orange",
		},
		Map: MapConfig{
			CellW:          150,
			CellH:          80,
			PlatformHeight: 15,
			Marker:         "-",
			Color:          "yellow",
		},
		Bot: BotConfig{
			ChaseRadius: 0,
			KeepAway:    5,
		},
	}
}

package config

import (
	"fmt"
	"strings"
)

// ParsePreset converts a preset name to a Preset.
// An empty name selects PresetClassic.
func ParsePreset(name string) (Preset, error) {
	switch Preset(strings.ToLower(strings.TrimSpace(name))) {
	case "", PresetClassic:
		return PresetClassic, nil
	case PresetLowGrav:
		return PresetLowGrav, nil
	case PresetArcade:
		return PresetArcade, nil
	default:
		return "", fmt.Errorf("config: unknown preset %q", name)
	}
}

// ApplyPreset modifies the config based on a physics preset.
// Classic leaves the loaded values untouched.
func ApplyPreset(cfg *SimulationConfig, preset Preset) {
	switch preset {
	case PresetLowGrav:
		cfg.Player.Gravity *= 0.4
		cfg.Player.Jump *= 0.7
		cfg.Bullet.Gravity *= 0.4
		cfg.Bomb.Gravity *= 0.4
		cfg.Particle.Gravity *= 0.4
		cfg.Rocket.Gravity *= 0.4
	case PresetArcade:
		cfg.Player.Speed *= 1.5
		cfg.Bullet.Cooldown *= 0.5
		cfg.Bomb.Cooldown *= 0.5
		cfg.Rocket.Cooldown *= 0.5
		cfg.Rocket.TurnRate *= 1.5
		cfg.Particle.Count *= 2
	}
}

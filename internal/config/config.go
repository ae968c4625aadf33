// Package config provides YAML-based simulation tuning for the jumper:
// world size, timing, player and projectile physics, and map geometry.
package config

// SimulationConfig contains every tunable of a match.
// It is loaded once, validated, and then treated as immutable.
type SimulationConfig struct {
	World    WorldConfig    `yaml:"world"`
	Tick     TickConfig     `yaml:"tick"`
	Player   PlayerConfig   `yaml:"player"`
	Players  []PlayerSlot   `yaml:"players"`
	Bullet   BulletConfig   `yaml:"bullet"`
	Bomb     BombConfig     `yaml:"bomb"`
	Rocket   RocketConfig   `yaml:"rocket"`
	Particle ParticleConfig `yaml:"particle"`
	Map      MapConfig      `yaml:"map"`
	Bot      BotConfig      `yaml:"bot"`
}

// WorldConfig defines the playfield in world units (+Y down).
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// TickConfig defines the fixed simulation rate and how many simulation
// steps run per rendered frame.
type TickConfig struct {
	UPS             int `yaml:"ups"`               // Simulation updates per second
	UpdatesPerFrame int `yaml:"updates_per_frame"` // Steps per rendered frame
}

// DT returns the fixed timestep in seconds.
func (t TickConfig) DT() float64 {
	if t.UPS <= 0 {
		return 0
	}
	return 1.0 / float64(t.UPS)
}

// FPS returns the render rate implied by UPS and UpdatesPerFrame.
func (t TickConfig) FPS() int {
	if t.UpdatesPerFrame <= 0 {
		return t.UPS
	}
	return t.UPS / t.UpdatesPerFrame
}

// PlayerConfig defines player body and movement parameters.
type PlayerConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Speed   float64 `yaml:"speed"`   // Horizontal run speed
	Gravity float64 `yaml:"gravity"` // Downward acceleration
	Jump    float64 `yaml:"jump"`    // Upward launch speed
}

// PlayerSlot describes one seat: display name, color and default spawn.
type PlayerSlot struct {
	Name   string  `yaml:"name"`
	Color  string  `yaml:"color"`
	SpawnX float64 `yaml:"spawn_x"`
	SpawnY float64 `yaml:"spawn_y"`
}

// BulletConfig defines the straight-shot weapon.
type BulletConfig struct {
	Size     float64 `yaml:"size"`
	Speed    float64 `yaml:"speed"`
	Gravity  float64 `yaml:"gravity"`
	AngleDeg float64 `yaml:"angle_deg"` // Upward tilt of the shot
	Cooldown float64 `yaml:"cooldown"`  // Seconds before the next shot
	Color    string  `yaml:"color"`
}

// BombConfig defines the dropped explosive.
type BombConfig struct {
	Size     float64 `yaml:"size"`
	Speed    float64 `yaml:"speed"` // Initial upward toss
	Gravity  float64 `yaml:"gravity"`
	Fuse     float64 `yaml:"fuse"` // Seconds a resting bomb waits; 0 detonates on landing
	Cooldown float64 `yaml:"cooldown"`
	Color    string  `yaml:"color"`
}

// RocketConfig defines the homing missile.
type RocketConfig struct {
	Size     float64 `yaml:"size"`
	Speed    float64 `yaml:"speed"`
	Gravity  float64 `yaml:"gravity"`
	TurnRate float64 `yaml:"turn_rate"` // Radians per second
	Cooldown float64 `yaml:"cooldown"`
	Color    string  `yaml:"color"`
}

// ParticleConfig defines explosion fragments.
type ParticleConfig struct {
	Size     float64 `yaml:"size"`
	Speed    float64 `yaml:"speed"`
	Gravity  float64 `yaml:"gravity"`
	Count    int     `yaml:"count"`
	Lifetime float64 `yaml:"lifetime"` // Seconds; 0 lives until contact
	Color    string  `yaml:"color"`
}

// MapConfig defines how text maps translate to world geometry.
type MapConfig struct {
	CellW          float64 `yaml:"cell_w"`
	CellH          float64 `yaml:"cell_h"`
	PlatformHeight float64 `yaml:"platform_height"`
	Marker         string  `yaml:"marker"`
	Color          string  `yaml:"color"`
}

// BotConfig tunes the built-in chaser AI.
type BotConfig struct {
	ChaseRadius float64 `yaml:"chase_radius"` // 0 means half the world diagonal
	KeepAway    float64 `yaml:"keep_away"`    // Horizontal gap in player widths before running
}

// Preset represents a named physics variant.
type Preset string

const (
	PresetClassic Preset = "classic"
	PresetLowGrav Preset = "lowgrav"
	PresetArcade  Preset = "arcade"
)

// Presets lists the known presets in display order.
func Presets() []Preset {
	return []Preset{PresetClassic, PresetLowGrav, PresetArcade}
}

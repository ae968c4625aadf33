package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	embedded, err := Parse(defaultJumperYAML)
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if !reflect.DeepEqual(embedded, DefaultSimulationConfig()) {
		t.Errorf("embedded YAML and DefaultSimulationConfig differ:\n%+v\n%+v", embedded, DefaultSimulationConfig())
	}
	if err := embedded.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestDefaultTiming(t *testing.T) {
	cfg := DefaultSimulationConfig()
	if cfg.Tick.FPS() != 60 {
		t.Errorf("FPS() = %d, expected 60", cfg.Tick.FPS())
	}
	if cfg.Tick.DT() != 1.0/600 {
		t.Errorf("DT() = %f, expected 1/600", cfg.Tick.DT())
	}
	if b := cfg.Bounds(); b.Right() != 1500 || b.Bottom() != 800 {
		t.Errorf("Bounds() = %+v", b)
	}
}

func TestLoadCustomPathOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte("player:\n  jump: 900\nparticle:\n  count: 3\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Player.Jump != 900 || cfg.Particle.Count != 3 {
		t.Errorf("overrides not applied: jump=%v count=%d", cfg.Player.Jump, cfg.Particle.Count)
	}
	// Untouched keys keep their defaults
	if cfg.Player.Speed != 300 || len(cfg.Players) != 3 {
		t.Errorf("defaults lost: speed=%v players=%d", cfg.Player.Speed, len(cfg.Players))
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("world: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error")
	}

	invalidPath := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalidPath, []byte("world:\n  width: -5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(invalidPath)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SimulationConfig)
	}{
		{"zero world", func(c *SimulationConfig) { c.World.Width = 0 }},
		{"negative player size", func(c *SimulationConfig) { c.Player.Height = -1 }},
		{"negative gravity", func(c *SimulationConfig) { c.Bomb.Gravity = -10 }},
		{"zero ups", func(c *SimulationConfig) { c.Tick.UPS = 0 }},
		{"too many updates per frame", func(c *SimulationConfig) { c.Tick.UpdatesPerFrame = 1000 }},
		{"steep bullet angle", func(c *SimulationConfig) { c.Bullet.AngleDeg = 90 }},
		{"long marker", func(c *SimulationConfig) { c.Map.Marker = "--" }},
		{"one player", func(c *SimulationConfig) { c.Players = c.Players[:1] }},
		{"unknown color", func(c *SimulationConfig) { c.Players[0].Color = "mauve" }},
		{"unnamed player", func(c *SimulationConfig) { c.Players[1].Name = "" }},
		{"bad projectile color", func(c *SimulationConfig) { c.Rocket.Color = "" }},
		{"player larger than world", func(c *SimulationConfig) { c.Player.Width = 2000 }},
		{"negative particle count", func(c *SimulationConfig) { c.Particle.Count = -1 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultSimulationConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestPresets(t *testing.T) {
	for _, p := range Presets() {
		got, err := ParsePreset(string(p))
		if err != nil || got != p {
			t.Errorf("ParsePreset(%q) = %q, %v", p, got, err)
		}
	}
	if got, _ := ParsePreset(""); got != PresetClassic {
		t.Errorf("empty preset should be classic, got %q", got)
	}
	if _, err := ParsePreset("moon"); err == nil {
		t.Error("expected error for unknown preset")
	}

	classic := DefaultSimulationConfig()
	ApplyPreset(&classic, PresetClassic)
	if !reflect.DeepEqual(classic, DefaultSimulationConfig()) {
		t.Error("classic preset should not change the config")
	}

	low := DefaultSimulationConfig()
	ApplyPreset(&low, PresetLowGrav)
	if low.Player.Gravity >= classic.Player.Gravity {
		t.Errorf("lowgrav gravity %v should be below %v", low.Player.Gravity, classic.Player.Gravity)
	}

	arcade := DefaultSimulationConfig()
	ApplyPreset(&arcade, PresetArcade)
	if arcade.Bullet.Cooldown >= classic.Bullet.Cooldown || arcade.Particle.Count <= classic.Particle.Count {
		t.Error("arcade preset should shorten cooldowns and add particles")
	}

	for _, cfg := range []SimulationConfig{low, arcade} {
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset result should validate: %v", err)
		}
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultSimulationConfig()
	ApplyPreset(&cfg, PresetArcade)

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if !reflect.DeepEqual(back, cfg) {
		t.Error("marshalled config does not parse back to the same value")
	}
}

package maps

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
)

// YAMLMap represents the YAML structure for a map file.
type YAMLMap struct {
	ID        string         `yaml:"id"`
	Name      string         `yaml:"name"`
	Platforms []YAMLPlatform `yaml:"platforms"`
	Spawns    []YAMLSpawn    `yaml:"spawns,omitempty"`
}

// YAMLPlatform is one platform in world units.
// Height defaults to the configured platform height.
type YAMLPlatform struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h,omitempty"`
}

// YAMLSpawn is a spawn point; list position gives the slot (first = player 1).
type YAMLSpawn struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ParseYAML parses a YAML map file.
func ParseYAML(data []byte, cfg config.MapConfig) (*Map, error) {
	var ym YAMLMap
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return nil, fmt.Errorf("maps: yaml unmarshal: %w", err)
	}
	if len(ym.Spawns) > core.MaxPlayers {
		return nil, fmt.Errorf("maps: %d spawns listed, at most %d supported", len(ym.Spawns), core.MaxPlayers)
	}

	m := &Map{
		ID:        ym.ID,
		Name:      ym.Name,
		Platforms: make([]core.AABB, 0, len(ym.Platforms)),
		Spawns:    make(map[core.PlayerID]core.Vec2, len(ym.Spawns)),
	}
	for _, p := range ym.Platforms {
		h := p.H
		if h == 0 {
			h = cfg.PlatformHeight
		}
		m.Platforms = append(m.Platforms, core.Box(p.X, p.Y, p.W, h))
	}
	for i, s := range ym.Spawns {
		m.Spawns[core.PlayerID(i+1)] = core.V(s.X, s.Y)
	}
	return m, nil
}

// MarshalYAML encodes a map in the YAML map format.
func MarshalYAML(m *Map) ([]byte, error) {
	ym := YAMLMap{ID: m.ID, Name: m.Name}
	for _, p := range m.Platforms {
		ym.Platforms = append(ym.Platforms, YAMLPlatform{X: p.Pos.X, Y: p.Pos.Y, W: p.Size.X, H: p.Size.Y})
	}
	for _, slot := range m.Slots() {
		if int(slot) != len(ym.Spawns)+1 {
			return nil, fmt.Errorf("maps: spawn slots must be contiguous from 1, missing %d", len(ym.Spawns)+1)
		}
		p := m.Spawns[slot]
		ym.Spawns = append(ym.Spawns, YAMLSpawn{X: p.X, Y: p.Y})
	}
	return yaml.Marshal(ym)
}

// Package maps loads arenas: the static platforms of a match and the
// player spawn points. Maps come from text grids (one glyph per cell) or
// YAML files, and are validated against the world before use.
package maps

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
)

//go:embed defaults/default.map
var defaultMap []byte

// DefaultID is the ID of the embedded map.
const DefaultID = "default"

// ErrInvalidMap is wrapped by every map validation failure.
var ErrInvalidMap = errors.New("invalid map")

// Map is a parsed arena.
type Map struct {
	ID        string
	Name      string
	Platforms []core.AABB
	Spawns    map[core.PlayerID]core.Vec2
	FilePath  string
}

// Default returns the embedded map laid out with the given cell geometry.
func Default(cfg config.MapConfig) (*Map, error) {
	m, err := ParseText(defaultMap, cfg)
	if err != nil {
		return nil, fmt.Errorf("maps: embedded default: %w", err)
	}
	m.ID = DefaultID
	m.Name = "Default"
	return m, nil
}

// Spawn returns the map's spawn point for slot, or fallback when the map
// does not define one.
func (m *Map) Spawn(slot core.PlayerID, fallback core.Vec2) core.Vec2 {
	if p, ok := m.Spawns[slot]; ok {
		return p
	}
	return fallback
}

// Slots returns the slots with a spawn point, in ascending order.
func (m *Map) Slots() []core.PlayerID {
	slots := make([]core.PlayerID, 0, len(m.Spawns))
	for s := range m.Spawns {
		slots = append(slots, s)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })
	return slots
}

// Validate checks that every platform is a finite, non-empty box inside
// bounds and that a player of the given size fits at every spawn point
// without overlapping a platform.
func (m *Map) Validate(bounds core.AABB, player core.Vec2) error {
	if len(m.Platforms) == 0 {
		return invalid(m, "no platforms")
	}
	for i, p := range m.Platforms {
		if !p.Pos.IsFinite() || !p.Size.IsFinite() {
			return invalid(m, "platform %d has non-finite geometry", i)
		}
		if p.Size.X <= 0 || p.Size.Y <= 0 {
			return invalid(m, "platform %d has empty size %vx%v", i, p.Size.X, p.Size.Y)
		}
		if !bounds.Contains(p) {
			return invalid(m, "platform %d at (%v, %v) lies outside the world", i, p.Pos.X, p.Pos.Y)
		}
	}

	for _, slot := range m.Slots() {
		pos := m.Spawns[slot]
		box := core.AABB{Pos: pos, Size: player}
		if !pos.IsFinite() || !bounds.Contains(box) {
			return invalid(m, "spawn %d at (%v, %v) lies outside the world", slot, pos.X, pos.Y)
		}
		for i, p := range m.Platforms {
			if box.Overlaps(p) {
				return invalid(m, "spawn %d overlaps platform %d", slot, i)
			}
		}
	}
	return nil
}

// Extent returns the bounding box of all platforms.
func (m *Map) Extent() core.AABB {
	if len(m.Platforms) == 0 {
		return core.AABB{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range m.Platforms {
		minX = math.Min(minX, p.Left())
		minY = math.Min(minY, p.Top())
		maxX = math.Max(maxX, p.Right())
		maxY = math.Max(maxY, p.Bottom())
	}
	return core.Box(minX, minY, maxX-minX, maxY-minY)
}

func invalid(m *Map, format string, args ...any) error {
	name := m.ID
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Errorf("maps: %s: %w: %s", name, ErrInvalidMap, fmt.Sprintf(format, args...))
}

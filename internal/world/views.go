package world

import (
	"github.com/vovakirdan/tui-jumper/internal/core"
)

// Entity returns a copy of the entity with the given ID.
func (w *World) Entity(id EntityID) (Entity, bool) {
	e, ok := w.byID[id]
	if !ok {
		return Entity{}, false
	}
	return e.view(), true
}

// Players returns copies of the live players in ID order.
func (w *World) Players() []Entity {
	var out []Entity
	for _, e := range w.entities {
		if e.Kind == KindPlayer && !e.dead {
			out = append(out, e.view())
		}
	}
	return out
}

// PlayerBySlot returns the live player seated in slot.
func (w *World) PlayerBySlot(slot core.PlayerID) (Entity, bool) {
	for _, e := range w.roster {
		if e.Player.Slot == slot && !e.dead {
			return e.view(), true
		}
	}
	return Entity{}, false
}

// Projectiles returns copies of the live projectiles in ID order.
func (w *World) Projectiles() []Entity {
	var out []Entity
	for _, e := range w.entities {
		if e.IsProjectile() && !e.dead {
			out = append(out, e.view())
		}
	}
	return out
}

// Platforms returns the static platforms.
func (w *World) Platforms() []core.AABB {
	return append([]core.AABB(nil), w.platforms...)
}

// Roster returns every player that took part in the match, in ID order.
func (w *World) Roster() []PlayerRecord {
	out := make([]PlayerRecord, 0, len(w.roster))
	for _, e := range w.roster {
		out = append(out, PlayerRecord{
			ID:     e.ID,
			Slot:   e.Player.Slot,
			Name:   e.Player.Name,
			Color:  e.Color,
			Kills:  e.Player.Kills,
			Alive:  !e.dead,
			DiedAt: e.Player.DiedAt,
		})
	}
	return out
}

// view copies an entity so callers cannot mutate the registry.
func (e *Entity) view() Entity {
	c := *e
	if e.Player != nil {
		ps := *e.Player
		c.Player = &ps
	}
	c.behaviors = nil
	return c
}

// Sprite is the render hand-off for one entity.
type Sprite struct {
	ID     EntityID
	Kind   Kind
	Pos    core.Vec2
	Size   core.Vec2
	Color  core.Color
	Facing int    // Players only
	Name   string // Players only
}

// Snapshot is an immutable picture of the world for renderers.
type Snapshot struct {
	Tick      uint64
	Time      float64
	Bounds    core.AABB
	Platforms []core.AABB
	Sprites   []Sprite // Players first, then projectiles, each in ID order
	Over      bool
	Winner    EntityID
}

// Snapshot captures the current state for rendering.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Tick:      w.tick,
		Time:      w.time,
		Bounds:    w.bounds,
		Platforms: w.Platforms(),
		Over:      w.over,
		Winner:    w.winner,
	}
	for _, e := range w.entities {
		if e.Kind == KindPlayer && !e.dead {
			s.Sprites = append(s.Sprites, Sprite{
				ID: e.ID, Kind: e.Kind, Pos: e.Body.Pos, Size: e.Body.Size, Color: e.Color,
				Facing: e.Player.Facing, Name: e.Player.Name,
			})
		}
	}
	for _, e := range w.entities {
		if e.IsProjectile() && !e.dead {
			s.Sprites = append(s.Sprites, Sprite{
				ID: e.ID, Kind: e.Kind, Pos: e.Body.Pos, Size: e.Body.Size, Color: e.Color,
			})
		}
	}
	return s
}

// PlayerName returns the name of a roster player, or "" if unknown.
func (w *World) PlayerName(id EntityID) string {
	for _, e := range w.roster {
		if e.ID == id {
			return e.Player.Name
		}
	}
	return ""
}

package world

import (
	"fmt"

	"github.com/vovakirdan/tui-jumper/internal/core"
)

// EventKind classifies a world event.
type EventKind int

const (
	EventSpawn EventKind = iota
	EventKill
	EventDetonate
	EventDespawn
	EventMatchOver
)

// String returns the event name used in logs.
func (k EventKind) String() string {
	switch k {
	case EventSpawn:
		return "spawn"
	case EventKill:
		return "kill"
	case EventDetonate:
		return "detonate"
	case EventDespawn:
		return "despawn"
	case EventMatchOver:
		return "match_over"
	default:
		return "unknown"
	}
}

// Event records something that happened during a tick.
// Fields not relevant to the kind are zero.
type Event struct {
	Kind   EventKind
	Tick   uint64
	Entity EntityID // Spawned, despawned or detonated entity
	Of     Kind     // Kind of Entity
	Pos    core.Vec2

	Killer EntityID // EventKill: credited player, NoEntity if none
	Victim EntityID // EventKill
	Weapon Kind     // EventKill: kind of the entity that hit

	Winner EntityID // EventMatchOver: NoEntity on a draw
}

// String formats the event for logs.
func (e Event) String() string {
	switch e.Kind {
	case EventKill:
		return fmt.Sprintf("tick %d: %d killed %d with %s", e.Tick, e.Killer, e.Victim, e.Weapon)
	case EventMatchOver:
		return fmt.Sprintf("tick %d: match over, winner %d", e.Tick, e.Winner)
	default:
		return fmt.Sprintf("tick %d: %s %s %d at (%.1f, %.1f)", e.Tick, e.Kind, e.Of, e.Entity, e.Pos.X, e.Pos.Y)
	}
}

// KeyVals returns the event as alternating key/value pairs for
// structured loggers.
func (e Event) KeyVals() []any {
	kv := []any{"event", e.Kind.String(), "tick", e.Tick}
	switch e.Kind {
	case EventKill:
		kv = append(kv, "killer", e.Killer, "victim", e.Victim, "weapon", e.Weapon.String())
	case EventMatchOver:
		kv = append(kv, "winner", e.Winner)
	default:
		kv = append(kv, "entity", e.Entity, "kind", e.Of.String(), "x", e.Pos.X, "y", e.Pos.Y)
	}
	return kv
}

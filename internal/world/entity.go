package world

import (
	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/physics"
)

// EntityID is a stable handle into the entity registry.
// IDs increase monotonically and are never reused within a World.
type EntityID uint64

// NoEntity is the zero ID, used for "no owner" and "no winner".
const NoEntity EntityID = 0

// Kind classifies an entity.
type Kind int

const (
	KindPlayer Kind = iota
	KindBullet
	KindBomb
	KindRocket
	KindParticle
)

// String returns the lowercase kind name used in logs and storage.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindBullet:
		return "bullet"
	case KindBomb:
		return "bomb"
	case KindRocket:
		return "rocket"
	case KindParticle:
		return "particle"
	default:
		return "unknown"
	}
}

// Entity is one dynamic object: a player or a projectile.
type Entity struct {
	ID    EntityID
	Kind  Kind
	Body  physics.Body
	Color core.Color

	// Owner is excluded from this entity's kill checks. NoEntity means
	// the entity can hit anyone.
	Owner EntityID
	// Credit receives the kill when this entity eliminates a player.
	Credit EntityID

	CanLie    bool // Survives touching an edge or platform
	IsKilling bool // Eliminates players it overlaps

	Age    float64      // Seconds since spawn
	Player *PlayerState // Non-nil for players

	behaviors []Behavior
	dead      bool
	detonated bool
}

// Alive reports whether the entity has not been flagged for removal.
func (e *Entity) Alive() bool {
	return !e.dead
}

// AABB returns the entity's bounding box.
func (e *Entity) AABB() core.AABB {
	return e.Body.AABB()
}

// IsProjectile reports whether the entity is anything but a player.
func (e *Entity) IsProjectile() bool {
	return e.Kind != KindPlayer
}

// PlayerState is the per-player part of an entity.
type PlayerState struct {
	Slot          core.PlayerID
	Name          string
	Facing        int     // +1 right, -1 left
	CooldownUntil float64 // Simulated time at which the next weapon is ready
	Kills         int
	DiedAt        uint64 // Tick of elimination, 0 while alive
}

// PlayerRecord summarizes a player for match results.
type PlayerRecord struct {
	ID     EntityID
	Slot   core.PlayerID
	Name   string
	Color  core.Color
	Kills  int
	Alive  bool
	DiedAt uint64
}

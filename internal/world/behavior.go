package world

import (
	"math"

	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/physics"
)

// Behavior customizes a projectile. AfterAdvance runs once per tick right
// after the entity's own physics step; OnOverlap runs during the broad
// phase for every snapshot player the entity overlaps, except its owner.
// Behaviors run in the order they were attached and stop once the entity
// is flagged dead, except OnOverlap which still runs for entities that
// died earlier in the same tick.
type Behavior interface {
	AfterAdvance(w *World, e *Entity, res physics.Result, dt float64)
	OnOverlap(w *World, e *Entity, victim *Entity)
}

// breakOnContact destroys the entity on any edge or platform contact.
type breakOnContact struct{}

func (breakOnContact) AfterAdvance(w *World, e *Entity, res physics.Result, _ float64) {
	if !e.CanLie && res.Collided() {
		w.remove(e)
	}
}

func (breakOnContact) OnOverlap(*World, *Entity, *Entity) {}

// killOnOverlap eliminates every non-owner player the entity touches.
type killOnOverlap struct{}

func (killOnOverlap) AfterAdvance(*World, *Entity, physics.Result, float64) {}

func (killOnOverlap) OnOverlap(w *World, e *Entity, victim *Entity) {
	w.kill(victim, e)
}

// detonateOnContact explodes once the entity has touched something.
// With a positive fuse only resting counts: the explosion comes after the
// entity has spent fuse seconds standing on a surface, and grazing a wall
// or ceiling on the way down does not start the clock.
type detonateOnContact struct {
	fuse    float64
	elapsed float64
}

func (d *detonateOnContact) AfterAdvance(w *World, e *Entity, res physics.Result, dt float64) {
	if d.fuse <= 0 {
		if res.Contact != physics.ContactNone || res.EdgeContact {
			w.detonate(e, res.Contact)
		}
		return
	}
	if !res.Contact.Grounded() {
		return
	}
	d.elapsed += dt
	if d.elapsed >= d.fuse {
		w.detonate(e, res.Contact)
	}
}

func (*detonateOnContact) OnOverlap(*World, *Entity, *Entity) {}

// detonateOnOverlap explodes when the entity touches a non-owner player.
type detonateOnOverlap struct{}

func (detonateOnOverlap) AfterAdvance(*World, *Entity, physics.Result, float64) {}

func (detonateOnOverlap) OnOverlap(w *World, e *Entity, _ *Entity) {
	if !e.detonated {
		w.detonate(e, physics.ContactNone)
	}
}

// expire removes the entity after a fixed lifetime.
type expire struct {
	lifetime float64
}

func (x expire) AfterAdvance(w *World, e *Entity, _ physics.Result, _ float64) {
	if e.Age >= x.lifetime {
		w.remove(e)
	}
}

func (expire) OnOverlap(*World, *Entity, *Entity) {}

// homing steers the velocity toward the nearest player other than the
// owner, turning at most turnRate radians per second and never past the
// target bearing.
type homing struct {
	turnRate float64
}

func (h homing) AfterAdvance(w *World, e *Entity, _ physics.Result, dt float64) {
	if e.Body.Vel == (core.Vec2{}) {
		return
	}
	target, ok := nearestTarget(e, w.tickPlayers)
	if !ok {
		return
	}
	bearing := target.Center().Sub(e.AABB().Center())
	if bearing == (core.Vec2{}) {
		return
	}
	errAngle := e.Body.Vel.AngleTo(bearing)
	maxTurn := h.turnRate * dt
	turn := core.ClampF(errAngle, -maxTurn, maxTurn)
	e.Body.Vel = e.Body.Vel.Rotate(turn)
}

func (homing) OnOverlap(*World, *Entity, *Entity) {}

// headingError returns the signed angle between a projectile's velocity
// and the bearing to its nearest target, and false when there is none.
func (w *World) headingError(id EntityID) (float64, bool) {
	e, ok := w.byID[id]
	if !ok || e.Body.Vel == (core.Vec2{}) {
		return 0, false
	}
	target, ok := nearestTarget(e, w.snapshotPlayers())
	if !ok {
		return 0, false
	}
	return e.Body.Vel.AngleTo(target.Center().Sub(e.AABB().Center())), true
}

// nearestTarget picks the closest of players, excluding the owner.
// Ties keep the lower ID.
func nearestTarget(e *Entity, players []playerSnap) (core.AABB, bool) {
	best := math.Inf(1)
	var found core.AABB
	ok := false
	center := e.AABB().Center()
	for _, p := range players {
		if p.id == e.Owner {
			continue
		}
		d := center.Distance(p.box.Center())
		if d < best {
			best, found, ok = d, p.box, true
		}
	}
	return found, ok
}

// Package physics implements the per-tick kinematic step shared by every
// dynamic entity: integrate under constant gravity, clamp to the world
// bounds, resolve axis-separated collisions against static platforms, and
// classify the resulting contact.
//
// The step is pure apart from mutating the Body it is called on. It never
// allocates platforms, performs I/O or reads the clock, so a World built on
// it is deterministic for a given sequence of timesteps.
package physics

import (
	"math"

	"github.com/vovakirdan/tui-jumper/internal/core"
)

// ContactDirection names the side of a body that was blocked during the
// last Advance.
type ContactDirection int

const (
	ContactNone   ContactDirection = iota
	ContactTop                     // Hit a ceiling or the underside of a platform
	ContactBottom                  // Landed on the floor or a platform
	ContactLeft                    // Blocked while moving left
	ContactRight                   // Blocked while moving right
)

// String returns a human-readable name for the contact.
func (c ContactDirection) String() string {
	switch c {
	case ContactNone:
		return "none"
	case ContactTop:
		return "top"
	case ContactBottom:
		return "bottom"
	case ContactLeft:
		return "left"
	case ContactRight:
		return "right"
	default:
		return "unknown"
	}
}

// Grounded reports whether the contact means the body is standing on something.
func (c ContactDirection) Grounded() bool {
	return c == ContactBottom
}

// Normal returns the unit surface normal pointing away from the touched
// surface, in screen coordinates (+Y down). ContactNone has no normal.
func (c ContactDirection) Normal() core.Vec2 {
	switch c {
	case ContactBottom:
		return core.V(0, -1)
	case ContactTop:
		return core.V(0, 1)
	case ContactLeft:
		return core.V(1, 0)
	case ContactRight:
		return core.V(-1, 0)
	default:
		return core.Vec2{}
	}
}

// Sign returns -1, 0 or +1 according to the sign of x.
func Sign(x float64) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	default:
		return 0
	}
}

// Body is an axis-aligned kinematic body.
// It is owned by exactly one entity and mutated only by Advance and by
// velocity writes the owner makes before calling Advance.
type Body struct {
	Pos     core.Vec2 // Top-left corner
	Vel     core.Vec2 // Units per second
	Size    core.Vec2
	Gravity float64 // Downward acceleration, units per second squared

	Contact     ContactDirection // Result of the last Advance
	EdgeContact bool             // Whether the last Advance touched a world edge
}

// NewBody creates a body at rest.
func NewBody(pos, size core.Vec2, gravity float64) Body {
	return Body{Pos: pos, Size: size, Gravity: gravity}
}

// AABB returns the body's current bounding box.
func (b *Body) AABB() core.AABB {
	return core.AABB{Pos: b.Pos, Size: b.Size}
}

// Grounded reports whether the last Advance ended standing on a surface.
func (b *Body) Grounded() bool {
	return b.Contact.Grounded()
}

// Result describes what happened during one Advance.
type Result struct {
	Contact     ContactDirection
	EdgeContact bool
	BlockedX    bool
	BlockedY    bool
	Hits        []int // Indices of platforms that were resolved against, in slice order
}

// Collided reports whether anything (edge or platform) blocked the body.
func (r Result) Collided() bool {
	return r.BlockedX || r.BlockedY || r.EdgeContact
}

// Advance moves the body forward by dt seconds.
//
// Position integrates exactly under constant gravity: the tentative position
// is Pos + Vel*dt plus g*dt²/2 on Y. World edges are clamped independently.
// Platforms are tested in slice order; a platform is resolved only when the
// tentative box overlaps it on both axes, and the axis is chosen by the
// direction of travel together with the previous box's overlap on the
// other axis. A blocked axis keeps the clamped or snapped coordinate and
// loses its velocity. Landing (ContactBottom) stops the body entirely.
//
// onCollide, if non-nil, is called with the index of every resolved platform.
// A non-positive or non-finite dt leaves the body untouched.
func (b *Body) Advance(dt float64, platforms []core.AABB, bounds core.AABB, onCollide func(i int)) Result {
	if !(dt > 0) || math.IsInf(dt, 1) {
		return Result{Contact: b.Contact, EdgeContact: b.EdgeContact}
	}

	var res Result
	var sideX, sideY ContactDirection

	g := b.Gravity
	sizeX, sizeY := b.Size.X, b.Size.Y
	newPos := b.Pos.Add(b.Vel.Scale(dt))
	newVel := b.Vel
	newVel.Y += g * dt
	newPos.Y += g * dt * dt / 2

	// World edges
	if newPos.Y+sizeY > bounds.Bottom() {
		newPos.Y = bounds.Bottom() - sizeY
		res.EdgeContact = true
		res.BlockedY = true
		sideY = ContactBottom
	}
	if newPos.Y < bounds.Top() {
		newPos.Y = bounds.Top()
		res.EdgeContact = true
		res.BlockedY = true
		sideY = ContactTop
	}
	if newPos.X+sizeX > bounds.Right() {
		newPos.X = bounds.Right() - sizeX
		res.EdgeContact = true
		res.BlockedX = true
		sideX = ContactRight
	}
	if newPos.X < bounds.Left() {
		newPos.X = bounds.Left()
		res.EdgeContact = true
		res.BlockedX = true
		sideX = ContactLeft
	}

	dirX := Sign(newPos.X - b.Pos.X)
	dirY := Sign(newPos.Y - b.Pos.Y)

	old := b.AABB()
	next := core.AABB{Pos: newPos, Size: b.Size}
	for i, p := range platforms {
		if !next.Overlaps(p) {
			continue
		}

		oldX := old.OverlapsX(p)
		oldY := old.OverlapsY(p)
		resolved := false

		if dirY > 0 && oldX {
			newPos.Y = p.Top() - sizeY
			res.BlockedY, sideY, resolved = true, ContactBottom, true
		}
		if dirY < 0 && oldX {
			newPos.Y = p.Bottom()
			res.BlockedY, sideY, resolved = true, ContactTop, true
		}
		if dirX < 0 && oldY {
			newPos.X = p.Right()
			res.BlockedX, sideX, resolved = true, ContactLeft, true
		}
		if dirX > 0 && oldY {
			newPos.X = p.Left() - sizeX
			res.BlockedX, sideX, resolved = true, ContactRight, true
		}

		// Corner entry: the previous box was clear on both axes.
		if !resolved && !oldX && !oldY {
			switch {
			case dirY > 0:
				newPos.Y = p.Top() - sizeY
				res.BlockedY, sideY, resolved = true, ContactBottom, true
			case dirY < 0:
				newPos.Y = p.Bottom()
				res.BlockedY, sideY, resolved = true, ContactTop, true
			case dirX < 0:
				newPos.X = p.Right()
				res.BlockedX, sideX, resolved = true, ContactLeft, true
			case dirX > 0:
				newPos.X = p.Left() - sizeX
				res.BlockedX, sideX, resolved = true, ContactRight, true
			}
		}

		if resolved {
			res.Hits = append(res.Hits, i)
			if onCollide != nil {
				onCollide(i)
			}
		}
	}

	// Commit per axis
	if res.BlockedX {
		b.Vel.X = 0
	} else {
		b.Vel.X = newVel.X
	}
	b.Pos.X = newPos.X

	if res.BlockedY {
		b.Vel.Y = 0
	} else {
		b.Vel.Y = newVel.Y
	}
	b.Pos.Y = newPos.Y

	switch {
	case res.BlockedY:
		res.Contact = sideY
	case res.BlockedX:
		res.Contact = sideX
	default:
		res.Contact = ContactNone
	}
	if res.Contact == ContactBottom {
		b.Vel = core.Vec2{}
	}

	b.Contact = res.Contact
	b.EdgeContact = res.EdgeContact
	return res
}

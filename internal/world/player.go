package world

import (
	"math"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/physics"
)

// applyInput turns one player's input into velocity changes and spawns.
// It runs before physics, so jumping depends on the previous tick's contact.
func (w *World) applyInput(e *Entity, in core.InputFrame, now float64) {
	p := e.Player
	pc := w.cfg.Player

	if in.Has(core.ActionJump) && e.Body.Grounded() {
		e.Body.Vel.Y = -pc.Jump
	}

	left, right := in.Has(core.ActionLeft), in.Has(core.ActionRight)
	switch {
	case right && !left:
		e.Body.Vel.X = pc.Speed
	case left && !right:
		e.Body.Vel.X = -pc.Speed
	}

	if s := physics.Sign(e.Body.Vel.X); s != 0 {
		p.Facing = s
	}

	if in.Has(core.ActionShoot) && now >= p.CooldownUntil {
		w.fireBullet(e)
		p.CooldownUntil = now + w.cfg.Bullet.Cooldown
	}
	if in.Has(core.ActionBomb) && now >= p.CooldownUntil {
		w.dropBomb(e)
		p.CooldownUntil = now + w.cfg.Bomb.Cooldown
	}
	if in.Has(core.ActionRocket) && now >= p.CooldownUntil {
		w.launchRocket(e)
		p.CooldownUntil = now + w.cfg.Rocket.Cooldown
	}
}

// muzzle returns the spawn point of a side-fired projectile of the given
// width: one unit past the shooter's leading edge, level with its top.
func muzzle(shooter *Entity, width float64) core.Vec2 {
	box := shooter.AABB()
	if shooter.Player.Facing < 0 {
		return core.V(box.Left()-width-1, box.Top())
	}
	return core.V(box.Right()+1, box.Top())
}

// aim returns a horizontal launch velocity tilted upward by angleDeg.
// Screen Y points down, so the tilt is applied against the facing.
func aim(speed, angleDeg float64, facing int) core.Vec2 {
	f := float64(facing)
	return core.V(speed*f, 0).Rotate(angleDeg * -f * math.Pi / 180)
}

func (w *World) fireBullet(shooter *Entity) *Entity {
	bc := w.cfg.Bullet
	b := w.spawn(KindBullet, muzzle(shooter, bc.Size), core.V(bc.Size, bc.Size), bc.Gravity, config.ColorOf(bc.Color))
	b.Body.Vel = aim(bc.Speed, bc.AngleDeg, shooter.Player.Facing)
	b.Owner = shooter.ID
	b.Credit = shooter.ID
	b.IsKilling = true
	b.behaviors = []Behavior{breakOnContact{}, killOnOverlap{}}
	return b
}

func (w *World) dropBomb(dropper *Entity) *Entity {
	bc := w.cfg.Bomb
	b := w.spawn(KindBomb, dropper.Body.Pos, core.V(bc.Size, bc.Size), bc.Gravity, config.ColorOf(bc.Color))
	b.Body.Vel = core.V(0, -bc.Speed)
	b.Owner = dropper.ID
	b.Credit = dropper.ID
	b.CanLie = true
	b.behaviors = []Behavior{&detonateOnContact{fuse: bc.Fuse}}
	return b
}

func (w *World) launchRocket(shooter *Entity) *Entity {
	rc := w.cfg.Rocket
	r := w.spawn(KindRocket, muzzle(shooter, rc.Size), core.V(rc.Size, rc.Size), rc.Gravity, config.ColorOf(rc.Color))
	r.Body.Vel = core.V(rc.Speed*float64(shooter.Player.Facing), 0)
	r.Owner = shooter.ID
	r.Credit = shooter.ID
	r.IsKilling = true
	r.behaviors = []Behavior{
		homing{turnRate: rc.TurnRate},
		&detonateOnContact{},
		killOnOverlap{},
		detonateOnOverlap{},
	}
	return r
}

// detonate destroys an explosive and scatters particles away from the
// surface it touched. Without a contact the scatter covers the full circle.
// Particles have no owner, so they can hit whoever dropped the explosive.
func (w *World) detonate(e *Entity, contact physics.ContactDirection) {
	if e.detonated {
		return
	}
	e.detonated = true
	w.remove(e)
	w.emit(Event{Kind: EventDetonate, Entity: e.ID, Of: e.Kind, Pos: e.Body.Pos})

	pc := w.cfg.Particle
	normal := contact.Normal()
	origin := e.Body.Pos.Add(normal.Scale(e.Body.Size.Y))
	for i := 0; i < pc.Count; i++ {
		var dir core.Vec2
		if normal == (core.Vec2{}) {
			dir = core.V(1, 0).Rotate(w.rng.Float64() * 2 * math.Pi)
		} else {
			dir = normal.Rotate((w.rng.Float64() - 0.5) * math.Pi)
		}
		p := w.spawn(KindParticle, origin, core.V(pc.Size, pc.Size), pc.Gravity, config.ColorOf(pc.Color))
		p.Body.Vel = dir.Scale(pc.Speed)
		p.Credit = e.Credit
		p.IsKilling = true
		p.behaviors = []Behavior{breakOnContact{}, killOnOverlap{}}
		if pc.Lifetime > 0 {
			p.behaviors = append(p.behaviors, expire{lifetime: pc.Lifetime})
		}
	}
}

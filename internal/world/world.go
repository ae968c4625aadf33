// Package world runs a match: it owns the entity registry, applies player
// input, advances every body once per tick, resolves projectile hits and
// decides when the match is over.
//
// A World is not safe for concurrent use; a single goroutine owns it.
package world

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/physics"
)

// ErrInvalidWorld is wrapped by construction and AddPlayer failures.
var ErrInvalidWorld = errors.New("invalid world")

// World is the simulation state of one match.
type World struct {
	cfg       config.SimulationConfig
	bounds    core.AABB
	platforms []core.AABB
	rng       *rand.Rand

	entities []*Entity // Ordered by ID
	byID     map[EntityID]*Entity
	nextID   EntityID
	roster   []*Entity // Every player ever added, in ID order

	tick    uint64
	time    float64
	over    bool
	winner  EntityID
	sandbox bool

	tickPlayers []playerSnap // Players at the start of the current tick
	events      []Event
}

// playerSnap is a player as seen at the start of a tick.
type playerSnap struct {
	id  EntityID
	box core.AABB
}

// Option configures a World.
type Option func(*World)

// WithSeed seeds the RNG used for explosion scatter.
func WithSeed(seed int64) Option {
	return func(w *World) {
		w.rng = rand.New(rand.NewSource(seed))
	}
}

// WithSandbox keeps a world running while fewer than two players have
// joined, for trying out movement alone. Once a second player joins the
// usual end rule applies.
func WithSandbox() Option {
	return func(w *World) {
		w.sandbox = true
	}
}

// StepResult reports the outcome of one Step.
type StepResult struct {
	Tick   uint64
	Time   float64
	Events []Event
	Over   bool
	Winner EntityID
}

// New creates a world for cfg with the given static platforms.
// The config and every platform are validated up front.
func New(cfg config.SimulationConfig, platforms []core.AABB, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("world: %w", err)
	}

	bounds := cfg.Bounds()
	for i, p := range platforms {
		if !p.Pos.IsFinite() || !p.Size.IsFinite() {
			return nil, fmt.Errorf("world: %w: platform %d is not finite", ErrInvalidWorld, i)
		}
		if p.Size.X < 0 || p.Size.Y < 0 {
			return nil, fmt.Errorf("world: %w: platform %d has negative size", ErrInvalidWorld, i)
		}
		if !bounds.Contains(p) {
			return nil, fmt.Errorf("world: %w: platform %d lies outside the world", ErrInvalidWorld, i)
		}
	}

	w := &World{
		cfg:       cfg,
		bounds:    bounds,
		platforms: append([]core.AABB(nil), platforms...),
		byID:      make(map[EntityID]*Entity),
		nextID:    1,
	}
	WithSeed(1)(w)
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Config returns the simulation config the world was built with.
func (w *World) Config() config.SimulationConfig {
	return w.cfg
}

// Bounds returns the world rectangle.
func (w *World) Bounds() core.AABB {
	return w.bounds
}

// Tick returns the number of steps taken.
func (w *World) Tick() uint64 {
	return w.tick
}

// Time returns the simulated seconds elapsed.
func (w *World) Time() float64 {
	return w.time
}

// Over reports whether the match has ended.
func (w *World) Over() bool {
	return w.over
}

// Winner returns the last player standing, or NoEntity.
func (w *World) Winner() EntityID {
	return w.winner
}

// AddPlayer places a player for slot at spawn.
func (w *World) AddPlayer(slot core.PlayerID, name string, color core.Color, spawn core.Vec2) (EntityID, error) {
	if slot <= core.PlayerNone {
		return NoEntity, fmt.Errorf("world: %w: bad player slot %d", ErrInvalidWorld, slot)
	}
	for _, p := range w.roster {
		if p.Player.Slot == slot {
			return NoEntity, fmt.Errorf("world: %w: slot %d already taken", ErrInvalidWorld, slot)
		}
	}
	size := core.V(w.cfg.Player.Width, w.cfg.Player.Height)
	if !spawn.IsFinite() || !w.bounds.Contains(core.AABB{Pos: spawn, Size: size}) {
		return NoEntity, fmt.Errorf("world: %w: spawn (%v, %v) lies outside the world", ErrInvalidWorld, spawn.X, spawn.Y)
	}

	e := w.spawn(KindPlayer, spawn, size, w.cfg.Player.Gravity, color)
	e.CanLie = true
	e.Player = &PlayerState{Slot: slot, Name: name, Facing: 1}
	w.roster = append(w.roster, e)
	return e.ID, nil
}

// Step advances the world by dt seconds.
//
// Order within a tick: snapshot the live players, apply input, advance
// every body once in ID order with its behaviors, resolve projectile hits
// against the snapshot, remove dead entities, then check for the end of
// the match. Once the match is over Step does nothing.
func (w *World) Step(inputs core.MultiInputFrame, dt float64) StepResult {
	if w.over || !(dt > 0) || math.IsInf(dt, 1) {
		return w.result(nil)
	}

	w.tick++
	now := w.time
	w.tickPlayers = w.snapshotPlayers()

	// Input
	for _, e := range w.entities {
		if e.Player != nil && !e.dead {
			w.applyInput(e, inputs.Player(e.Player.Slot), now)
		}
	}

	// Physics, in ID order. Entities spawned from here on wait for the next tick.
	moving := append([]*Entity(nil), w.entities...)
	for _, e := range moving {
		if e.dead {
			continue
		}
		res := e.Body.Advance(dt, w.platforms, w.bounds, nil)
		e.Age += dt
		for _, b := range e.behaviors {
			if e.dead {
				break
			}
			b.AfterAdvance(w, e, res, dt)
		}
	}

	w.broadPhase()
	w.sweep()
	w.checkMatchOver()

	w.time += dt
	events := w.events
	w.events = nil
	return w.result(events)
}

func (w *World) result(events []Event) StepResult {
	return StepResult{
		Tick:   w.tick,
		Time:   w.time,
		Events: events,
		Over:   w.over,
		Winner: w.winner,
	}
}

// broadPhase tests every projectile against the tick-start players.
func (w *World) broadPhase() {
	for _, e := range w.entities {
		if !e.IsProjectile() || len(e.behaviors) == 0 {
			continue
		}
		box := e.AABB()
		for _, p := range w.tickPlayers {
			if p.id == e.Owner {
				continue
			}
			victim := w.byID[p.id]
			if victim == nil || victim.dead || !box.Overlaps(p.box) {
				continue
			}
			for _, b := range e.behaviors {
				b.OnOverlap(w, e, victim)
			}
		}
	}
}

// sweep drops every entity flagged dead this tick.
func (w *World) sweep() {
	kept := w.entities[:0]
	for _, e := range w.entities {
		if e.dead {
			w.emit(Event{Kind: EventDespawn, Entity: e.ID, Of: e.Kind, Pos: e.Body.Pos})
			delete(w.byID, e.ID)
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(w.entities); i++ {
		w.entities[i] = nil
	}
	w.entities = kept
}

// checkMatchOver ends the match once fewer than two players remain.
func (w *World) checkMatchOver() {
	if w.sandbox && len(w.roster) < 2 {
		return
	}
	alive := 0
	var last EntityID
	for _, p := range w.roster {
		if !p.dead {
			alive++
			last = p.ID
		}
	}
	if alive >= 2 {
		return
	}
	w.over = true
	if alive == 1 {
		w.winner = last
	}
	w.emit(Event{Kind: EventMatchOver, Winner: w.winner})
}

// spawn registers a new entity. The caller fills in the kind-specific fields.
func (w *World) spawn(kind Kind, pos, size core.Vec2, gravity float64, color core.Color) *Entity {
	e := &Entity{
		ID:    w.nextID,
		Kind:  kind,
		Body:  physics.NewBody(pos, size, gravity),
		Color: color,
	}
	w.nextID++
	w.entities = append(w.entities, e)
	w.byID[e.ID] = e
	w.emit(Event{Kind: EventSpawn, Entity: e.ID, Of: kind, Pos: pos})
	return e
}

// remove flags an entity for removal at the end of the tick.
func (w *World) remove(e *Entity) {
	e.dead = true
}

// kill eliminates victim, crediting whoever is responsible for by.
func (w *World) kill(victim, by *Entity) {
	if victim.dead {
		return
	}
	victim.dead = true
	victim.Player.DiedAt = w.tick

	killer := by.Credit
	if killer != NoEntity && killer != victim.ID {
		for _, p := range w.roster {
			if p.ID == killer {
				p.Player.Kills++
			}
		}
	}
	w.emit(Event{Kind: EventKill, Killer: killer, Victim: victim.ID, Weapon: by.Kind, Pos: victim.Body.Pos})
}

// Detonate explodes a live bomb or rocket immediately.
// It reports false if id is not a live explosive.
func (w *World) Detonate(id EntityID) bool {
	e, ok := w.byID[id]
	if !ok || e.dead || (e.Kind != KindBomb && e.Kind != KindRocket) {
		return false
	}
	w.detonate(e, e.Body.Contact)
	return true
}

func (w *World) emit(ev Event) {
	ev.Tick = w.tick
	w.events = append(w.events, ev)
}

// snapshotPlayers captures the live players in ID order.
func (w *World) snapshotPlayers() []playerSnap {
	snaps := make([]playerSnap, 0, len(w.roster))
	for _, p := range w.roster {
		if !p.dead {
			snaps = append(snaps, playerSnap{id: p.ID, box: p.AABB()})
		}
	}
	return snaps
}

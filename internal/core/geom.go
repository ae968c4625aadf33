// Package core provides fundamental types and utilities for the jumper engine.
// It contains no Bubble Tea dependencies to keep the simulation pure and
// testable; vector arithmetic is delegated to the chipmunk vector type.
package core

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Vec2 is a 2D float vector in world units (pixels, +Y pointing down).
// Values are immutable by convention: every operation returns a new Vec2.
type Vec2 cp.Vector

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) vec() cp.Vector {
	return cp.Vector(v)
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2(v.vec().Add(o.vec()))
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2(v.vec().Sub(o.vec()))
}

// Scale multiplies both components by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2(v.vec().Mult(s))
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.vec().Dot(o.vec())
}

// Rotate rotates v by angle radians using the standard rotation matrix.
// Positive angles are counter-clockwise in math convention; with +Y down
// on screen that reads as clockwise, which callers account for.
func (v Vec2) Rotate(angle float64) Vec2 {
	return Vec2(v.vec().Rotate(cp.ForAngle(angle)))
}

// Length returns the Euclidean length of v.
func (v Vec2) Length() float64 {
	return v.vec().Length()
}

// Normalized returns the unit vector in the direction of v.
// The zero vector normalizes to itself.
func (v Vec2) Normalized() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return v.Scale(1 / l)
}

// Angle returns the heading of v in radians, in (-π, π].
func (v Vec2) Angle() float64 {
	if v.X == 0 && v.Y == 0 {
		return 0
	}
	return v.vec().ToAngle()
}

// AngleTo returns the signed angle that rotates v onto o, in (-π, π].
func (v Vec2) AngleTo(o Vec2) float64 {
	return math.Atan2(v.vec().Cross(o.vec()), v.Dot(o))
}

// Distance returns the Euclidean distance between v and o.
func (v Vec2) Distance(o Vec2) float64 {
	return v.vec().Distance(o.vec())
}

// IsFinite reports whether both components are finite numbers.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// AABB is an axis-aligned bounding box given by its top-left corner and size.
type AABB struct {
	Pos  Vec2 // Top-left corner
	Size Vec2 // Width and height, never negative
}

// Box creates an AABB from position and size components.
func Box(x, y, w, h float64) AABB {
	return AABB{Pos: V(x, y), Size: V(w, h)}
}

// Left returns the x-coordinate of the left edge.
func (b AABB) Left() float64 { return b.Pos.X }

// Right returns the x-coordinate of the right edge.
func (b AABB) Right() float64 { return b.Pos.X + b.Size.X }

// Top returns the y-coordinate of the top edge.
func (b AABB) Top() float64 { return b.Pos.Y }

// Bottom returns the y-coordinate of the bottom edge.
func (b AABB) Bottom() float64 { return b.Pos.Y + b.Size.Y }

// Center returns the center point of the box.
func (b AABB) Center() Vec2 {
	return b.Pos.Add(b.Size.Scale(0.5))
}

// OverlapsX reports whether the horizontal extents overlap.
// Touching edges do not count as overlap.
func (b AABB) OverlapsX(o AABB) bool {
	return b.Left() < o.Right() && b.Right() > o.Left()
}

// OverlapsY reports whether the vertical extents overlap.
func (b AABB) OverlapsY(o AABB) bool {
	return b.Top() < o.Bottom() && b.Bottom() > o.Top()
}

// Overlaps reports whether the boxes overlap on both axes.
func (b AABB) Overlaps(o AABB) bool {
	return b.OverlapsX(o) && b.OverlapsY(o)
}

// Contains reports whether o lies entirely inside b (edges inclusive).
func (b AABB) Contains(o AABB) bool {
	return o.Left() >= b.Left() && o.Right() <= b.Right() &&
		o.Top() >= b.Top() && o.Bottom() <= b.Bottom()
}

// Rect represents an integer cell rectangle on a Screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

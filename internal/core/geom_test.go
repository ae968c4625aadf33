package core

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestVecArithmetic(t *testing.T) {
	a := V(3, 4)
	b := V(1, -2)

	if got := a.Add(b); got != V(4, 2) {
		t.Errorf("Add() = %v, expected (4, 2)", got)
	}
	if got := a.Sub(b); got != V(2, 6) {
		t.Errorf("Sub() = %v, expected (2, 6)", got)
	}
	if got := a.Scale(2); got != V(6, 8) {
		t.Errorf("Scale() = %v, expected (6, 8)", got)
	}
	if got := a.Length(); !near(got, 5) {
		t.Errorf("Length() = %f, expected 5", got)
	}
	if got := a.Dot(b); !near(got, -5) {
		t.Errorf("Dot() = %f, expected -5", got)
	}

	// Operations must not mutate the receiver
	if a != V(3, 4) {
		t.Errorf("receiver mutated: %v", a)
	}
}

func TestVecRotate(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec2
		angle    float64
		expected Vec2
	}{
		{"quarter turn", V(1, 0), math.Pi / 2, V(0, 1)},
		{"half turn", V(1, 0), math.Pi, V(-1, 0)},
		{"negative quarter", V(1, 0), -math.Pi / 2, V(0, -1)},
		{"full turn", V(2, 3), 2 * math.Pi, V(2, 3)},
		{"zero angle", V(-5, 7), 0, V(-5, 7)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.v.Rotate(tc.angle)
			if !near(got.X, tc.expected.X) || !near(got.Y, tc.expected.Y) {
				t.Errorf("Rotate(%f) = %v, expected %v", tc.angle, got, tc.expected)
			}
			if !near(got.Length(), tc.v.Length()) {
				t.Errorf("Rotate changed length: %f -> %f", tc.v.Length(), got.Length())
			}
		})
	}
}

func TestVecNormalized(t *testing.T) {
	n := V(0, -8).Normalized()
	if !near(n.X, 0) || !near(n.Y, -1) {
		t.Errorf("Normalized() = %v, expected (0, -1)", n)
	}

	zero := Vec2{}.Normalized()
	if zero != (Vec2{}) || !zero.IsFinite() {
		t.Errorf("zero vector should normalize to zero, got %v", zero)
	}
}

func TestVecAngles(t *testing.T) {
	if got := V(0, 1).Angle(); !near(got, math.Pi/2) {
		t.Errorf("Angle() = %f, expected π/2", got)
	}

	// Signed angle from +X to +Y is positive (counter-clockwise in math convention)
	if got := V(1, 0).AngleTo(V(0, 1)); !near(got, math.Pi/2) {
		t.Errorf("AngleTo() = %f, expected π/2", got)
	}
	if got := V(0, 1).AngleTo(V(1, 0)); !near(got, -math.Pi/2) {
		t.Errorf("AngleTo() = %f, expected -π/2", got)
	}

	if got := V(0, 0).Distance(V(6, 8)); !near(got, 10) {
		t.Errorf("Distance() = %f, expected 10", got)
	}
}

func TestAABBOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     AABB
		x, y     bool
		expected bool
	}{
		{
			name: "overlapping boxes",
			a:    Box(0, 0, 10, 10), b: Box(5, 5, 10, 10),
			x: true, y: true, expected: true,
		},
		{
			name: "touching horizontally",
			a:    Box(0, 0, 10, 10), b: Box(10, 0, 10, 10),
			x: false, y: true, expected: false,
		},
		{
			name: "touching vertically",
			a:    Box(0, 0, 10, 10), b: Box(0, 10, 10, 10),
			x: true, y: false, expected: false,
		},
		{
			name: "beside on x only",
			a:    Box(0, 0, 10, 10), b: Box(2, 30, 4, 4),
			x: true, y: false, expected: false,
		},
		{
			name: "contained",
			a:    Box(0, 0, 20, 20), b: Box(5, 5, 5, 5),
			x: true, y: true, expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.OverlapsX(tc.b); got != tc.x {
				t.Errorf("OverlapsX() = %v, expected %v", got, tc.x)
			}
			if got := tc.a.OverlapsY(tc.b); got != tc.y {
				t.Errorf("OverlapsY() = %v, expected %v", got, tc.y)
			}
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestAABBEdges(t *testing.T) {
	b := Box(5, 10, 20, 15)

	if b.Left() != 5 || b.Right() != 25 || b.Top() != 10 || b.Bottom() != 25 {
		t.Errorf("edges = %f %f %f %f", b.Left(), b.Right(), b.Top(), b.Bottom())
	}
	if c := b.Center(); c != V(15, 17.5) {
		t.Errorf("Center() = %v, expected (15, 17.5)", c)
	}
	if !Box(0, 0, 100, 100).Contains(b) {
		t.Error("Contains() should be true for inner box")
	}
	if Box(0, 0, 20, 20).Contains(b) {
		t.Error("Contains() should be false for box sticking out")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}

	if got := ClampF(-5.5, 0, 10); got != 0 {
		t.Errorf("ClampF() = %f, expected 0", got)
	}
}

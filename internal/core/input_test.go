package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if !f.Empty() || f.Has(ActionJump) {
		t.Fatal("zero frame should be empty")
	}

	f.Set(ActionJump)
	f.Set(ActionLeft)
	if !f.Has(ActionJump) || !f.Has(ActionLeft) || f.Has(ActionRight) {
		t.Errorf("unexpected actions: %v", f.Actions)
	}

	clone := f.Clone()
	f.Clear()
	if !f.Empty() {
		t.Error("Clear should empty the frame")
	}
	if !clone.Has(ActionJump) {
		t.Error("Clone should not share storage with the original")
	}
}

func TestMultiInputFrame(t *testing.T) {
	m := NewMultiInputFrame()
	m.Press(Player2, ActionShoot)
	m.Press(Player2, ActionRight)

	if !m.Player(Player2).Has(ActionShoot) || !m.Player(Player2).Has(ActionRight) {
		t.Errorf("Player2 frame = %v", m.Player(Player2).Actions)
	}
	if !m.Player(Player1).Empty() {
		t.Error("missing player should yield an empty frame")
	}
	if !m.Any(ActionShoot) || m.Any(ActionBomb) {
		t.Error("Any() mismatch")
	}

	var zero MultiInputFrame
	if !zero.Player(Player3).Empty() {
		t.Error("zero MultiInputFrame should yield empty frames")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		a        Action
		expected string
	}{
		{ActionRocket, "Rocket"},
		{ActionBomb, "Bomb"},
		{Action(99), "Unknown"},
	}
	for _, tc := range tests {
		if got := tc.a.String(); got != tc.expected {
			t.Errorf("%d.String() = %q, expected %q", tc.a, got, tc.expected)
		}
	}
}

func TestParseColor(t *testing.T) {
	if c, ok := ParseColor(" Bright_Red "); !ok || c != ColorBrightRed {
		t.Errorf("ParseColor = %v, %v", c, ok)
	}
	if _, ok := ParseColor("mauve"); ok {
		t.Error("unknown color should not parse")
	}
	if ColorOrange.String() != "orange" {
		t.Errorf("String() = %q", ColorOrange.String())
	}
}

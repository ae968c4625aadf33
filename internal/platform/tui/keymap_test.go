package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-jumper/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected Binding
		quit     bool
	}{
		{"p1 left", runeKey('a'), Binding{core.Player1, core.ActionLeft}, false},
		{"p1 bomb", runeKey('q'), Binding{core.Player1, core.ActionBomb}, false},
		{"p1 rocket", runeKey('s'), Binding{core.Player1, core.ActionRocket}, false},
		{"p2 jump", tea.KeyMsg{Type: tea.KeyUp}, Binding{core.Player2, core.ActionJump}, false},
		{"p2 shoot", tea.KeyMsg{Type: tea.KeyDown}, Binding{core.Player2, core.ActionShoot}, false},
		{"p2 bomb", runeKey('.'), Binding{core.Player2, core.ActionBomb}, false},
		{"p3 right", runeKey('j'), Binding{core.Player3, core.ActionRight}, false},
		{"p3 bomb", runeKey(' '), Binding{core.Player3, core.ActionBomb}, false},
		{"pause", runeKey('p'), Binding{core.PlayerNone, core.ActionPause}, false},
		{"restart", tea.KeyMsg{Type: tea.KeyEnter}, Binding{core.PlayerNone, core.ActionRestart}, false},
		{"escape quits", tea.KeyMsg{Type: tea.KeyEsc}, Binding{core.PlayerNone, core.ActionQuit}, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, Binding{core.PlayerNone, core.ActionQuit}, true},
		{"unbound", runeKey('z'), Binding{core.PlayerNone, core.ActionNone}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, quit := km.MapKey(tc.msg)
			if got != tc.expected {
				t.Errorf("MapKey(%q) = %+v, expected %+v", tc.msg.String(), got, tc.expected)
			}
			if quit != tc.quit {
				t.Errorf("MapKey(%q) quit = %v, expected %v", tc.msg.String(), quit, tc.quit)
			}
		})
	}
}

func TestBindingsCoverEveryPlayer(t *testing.T) {
	km := NewKeyMapper()
	actions := []core.Action{
		core.ActionLeft, core.ActionRight, core.ActionJump,
		core.ActionShoot, core.ActionBomb, core.ActionRocket,
	}

	for p := core.Player1; p <= core.MaxPlayers; p++ {
		b := km.Bindings(p)
		for _, a := range actions {
			if _, ok := b[a]; !ok {
				t.Errorf("player %d has no key for %s", p, a)
			}
		}
	}
}

func TestHeldInputHoldsMovement(t *testing.T) {
	h := NewHeldInput(3)
	h.Press(Binding{core.Player1, core.ActionRight})

	for i := 0; i < 3; i++ {
		f := h.Frame()
		if !f.Player(core.Player1).Has(core.ActionRight) {
			t.Fatalf("frame %d: right should still be held", i)
		}
	}
	if f := h.Frame(); f.Any(core.ActionRight) {
		t.Error("right should be released after the hold window")
	}
}

func TestHeldInputOneShot(t *testing.T) {
	h := NewHeldInput(5)
	h.Press(Binding{core.Player2, core.ActionJump})
	h.Press(Binding{core.Player2, core.ActionShoot})

	f := h.Frame()
	if !f.Player(core.Player2).Has(core.ActionJump) || !f.Player(core.Player2).Has(core.ActionShoot) {
		t.Fatal("jump and shoot should fire on the first frame")
	}
	if f := h.Frame(); !f.Player(core.Player2).Empty() {
		t.Error("one-shot actions should not repeat")
	}
}

func TestHeldInputOppositeDirection(t *testing.T) {
	h := NewHeldInput(10)
	h.Press(Binding{core.Player1, core.ActionLeft})
	h.Press(Binding{core.Player1, core.ActionRight})

	f := h.Frame().Player(core.Player1)
	if f.Has(core.ActionLeft) || !f.Has(core.ActionRight) {
		t.Errorf("expected only right held, got %v", f.Actions)
	}

	// Other players are unaffected
	h.Press(Binding{core.Player2, core.ActionLeft})
	h.Press(Binding{core.Player1, core.ActionLeft})
	if !h.Frame().Player(core.Player2).Has(core.ActionLeft) {
		t.Error("player 2 left should be held")
	}
}

func TestHeldInputReset(t *testing.T) {
	h := NewHeldInput(10)
	h.Press(Binding{core.Player1, core.ActionLeft})
	h.Reset()

	if f := h.Frame(); f.Any(core.ActionLeft) {
		t.Error("Reset should release held keys")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}

	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %d, expected %d", tc.msg.String(), got, tc.expected)
		}
	}
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-jumper/internal/core"
)

// DefaultHoldFrames is how many rendered frames a key press stays held.
// Terminals only report presses (and auto-repeat), never releases, so a
// pressed direction is kept down until the repeat stream dries up.
const DefaultHoldFrames = 6

// Binding is a player action bound to a key.
type Binding struct {
	Player core.PlayerID
	Action core.Action
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	bindings map[string]Binding
}

// NewKeyMapper creates a new key mapper with default bindings for three
// players sharing one keyboard.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{bindings: map[string]Binding{
		// Player 1: left hand
		"a": {core.Player1, core.ActionLeft},
		"d": {core.Player1, core.ActionRight},
		"w": {core.Player1, core.ActionJump},
		"e": {core.Player1, core.ActionShoot},
		"q": {core.Player1, core.ActionBomb},
		"s": {core.Player1, core.ActionRocket},

		// Player 2: arrow cluster
		"left":  {core.Player2, core.ActionLeft},
		"right": {core.Player2, core.ActionRight},
		"up":    {core.Player2, core.ActionJump},
		"down":  {core.Player2, core.ActionShoot},
		".":     {core.Player2, core.ActionBomb},
		",":     {core.Player2, core.ActionRocket},

		// Player 3: middle of the keyboard
		"g": {core.Player3, core.ActionLeft},
		"j": {core.Player3, core.ActionRight},
		"y": {core.Player3, core.ActionJump},
		"h": {core.Player3, core.ActionShoot},
		" ": {core.Player3, core.ActionBomb},
		"b": {core.Player3, core.ActionRocket},
	}}
}

// MapKey translates a key message to a player action.
// Global keys (quit, pause, restart) come back with PlayerNone.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (b Binding, isQuit bool) {
	key := msg.String()

	switch key {
	case "ctrl+c", "esc":
		return Binding{Action: core.ActionQuit}, true
	case "p":
		return Binding{Action: core.ActionPause}, false
	case "enter":
		return Binding{Action: core.ActionRestart}, false
	}

	if b, ok := km.bindings[key]; ok {
		return b, false
	}
	return Binding{Action: core.ActionNone}, false
}

// Bindings returns the key bound to each player action, for help screens.
func (km *KeyMapper) Bindings(player core.PlayerID) map[core.Action]string {
	out := make(map[core.Action]string)
	for key, b := range km.bindings {
		if b.Player == player {
			out[b.Action] = key
		}
	}
	return out
}

// HeldInput turns a stream of key presses into per-frame held actions.
// Movement stays down for the hold window; one-shot actions (jump and the
// weapons) fire on the frame after the press only.
type HeldInput struct {
	holdFrames int
	held       map[Binding]int // Frames left before release
}

// NewHeldInput creates a tracker that holds movement keys for holdFrames.
func NewHeldInput(holdFrames int) *HeldInput {
	if holdFrames < 1 {
		holdFrames = 1
	}
	return &HeldInput{
		holdFrames: holdFrames,
		held:       make(map[Binding]int),
	}
}

// Press records a key press. Pressing the opposite direction releases the
// current one immediately.
func (h *HeldInput) Press(b Binding) {
	if b.Action == core.ActionNone {
		return
	}
	switch b.Action {
	case core.ActionLeft:
		delete(h.held, Binding{b.Player, core.ActionRight})
	case core.ActionRight:
		delete(h.held, Binding{b.Player, core.ActionLeft})
	}

	frames := 1
	if b.Action == core.ActionLeft || b.Action == core.ActionRight {
		frames = h.holdFrames
	}
	if frames > h.held[b] {
		h.held[b] = frames
	}
}

// Frame returns the actions held this frame and ages the hold window.
func (h *HeldInput) Frame() core.MultiInputFrame {
	frame := core.NewMultiInputFrame()
	for b, left := range h.held {
		frame.Press(b.Player, b.Action)
		if left <= 1 {
			delete(h.held, b)
		} else {
			h.held[b] = left - 1
		}
	}
	return frame
}

// Reset releases every held key.
func (h *HeldInput) Reset() {
	for b := range h.held {
		delete(h.held, b)
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}

// Package match describes one round of jumper from the outside: who plays
// which slot, which map and seed it runs on, and how it ended. Games
// receive a Match to know their context without managing its lifecycle.
package match

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
)

// MatchID uniquely identifies a match across runs.
type MatchID string

// NewID returns a fresh random match ID.
func NewID() MatchID {
	return MatchID(uuid.NewString())
}

// Mode defines who sits in which slot.
type Mode int

const (
	// ModeDuel is two humans sharing a keyboard.
	ModeDuel Mode = iota

	// ModeTrio is three humans sharing a keyboard.
	ModeTrio

	// ModeVsBot is one human against a computer player.
	ModeVsBot

	// ModeBrawl is three bots fighting each other. Runs headless.
	ModeBrawl
)

// Modes returns every mode in menu order.
func Modes() []Mode {
	return []Mode{ModeDuel, ModeTrio, ModeVsBot, ModeBrawl}
}

// String returns the mode's identifier as used on the command line and in storage.
func (m Mode) String() string {
	switch m {
	case ModeDuel:
		return "duel"
	case ModeTrio:
		return "trio"
	case ModeVsBot:
		return "bot"
	case ModeBrawl:
		return "brawl"
	default:
		return "unknown"
	}
}

// Title returns a human-readable name for the mode.
func (m Mode) Title() string {
	switch m {
	case ModeDuel:
		return "Duel"
	case ModeTrio:
		return "Trio"
	case ModeVsBot:
		return "vs Bot"
	case ModeBrawl:
		return "Bot Brawl"
	default:
		return "Unknown"
	}
}

// ParseMode converts a mode identifier back into a Mode.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes() {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("match: unknown mode %q (valid: duel, trio, bot, brawl)", s)
}

// Seat is one player slot in a match.
type Seat struct {
	Slot  core.PlayerID
	Name  string
	Color core.Color
	Bot   bool
}

// Seats lays out the roster for mode using the configured player slots.
func (m Mode) Seats(players []config.PlayerSlot) []Seat {
	var count int
	var bots func(core.PlayerID) bool
	switch m {
	case ModeTrio:
		count, bots = 3, func(core.PlayerID) bool { return false }
	case ModeVsBot:
		count, bots = 2, func(s core.PlayerID) bool { return s != core.Player1 }
	case ModeBrawl:
		count, bots = 3, func(core.PlayerID) bool { return true }
	default:
		count, bots = 2, func(core.PlayerID) bool { return false }
	}
	if count > len(players) {
		count = len(players)
	}

	seats := make([]Seat, 0, count)
	for i := 0; i < count; i++ {
		slot := core.PlayerID(i + 1)
		seats = append(seats, Seat{
			Slot:  slot,
			Name:  players[i].Name,
			Color: config.ColorOf(players[i].Color),
			Bot:   bots(slot),
		})
	}
	return seats
}

// HasHumans reports whether anyone needs a keyboard.
func (m Mode) HasHumans() bool {
	return m != ModeBrawl
}

// MatchHandle provides access to match metadata.
type MatchHandle interface {
	// ID returns the unique identifier for this match.
	ID() MatchID

	// Mode returns how this match is seated.
	Mode() Mode
}

// Match is a concrete implementation of MatchHandle.
type Match struct {
	id   MatchID
	mode Mode

	MapID     string
	Seed      int64
	Seats     []Seat
	StartedAt time.Time
}

// New creates a match with a fresh ID.
func New(mode Mode, mapID string, seed int64, seats []Seat) *Match {
	return &Match{
		id:        NewID(),
		mode:      mode,
		MapID:     mapID,
		Seed:      seed,
		Seats:     seats,
		StartedAt: time.Now(),
	}
}

// ID returns the match identifier.
func (m *Match) ID() MatchID {
	return m.id
}

// Mode returns the match mode.
func (m *Match) Mode() Mode {
	return m.mode
}

// Seat returns the seat for slot.
func (m *Match) Seat(slot core.PlayerID) (Seat, bool) {
	for _, s := range m.Seats {
		if s.Slot == slot {
			return s, true
		}
	}
	return Seat{}, false
}

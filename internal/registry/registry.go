// Package registry provides a global registry for match-mode factories.
// Modes register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-jumper/internal/bot"
	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/maps"
	"github.com/vovakirdan/tui-jumper/internal/match"
	"github.com/vovakirdan/tui-jumper/internal/world"
)

// Game is the interface the platform drives once per rendered frame.
// Games contain pure logic with no Bubble Tea dependencies; the platform
// handles input mapping, timing, and rendering.
type Game interface {
	// ID returns the mode identifier (e.g., "duel", "bot").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a fresh match.
	// Called once at start and again when restarting after a match ends.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one rendered frame.
	// Input is keyed by player slot; bot seats are filled in by the game.
	Step(in core.MultiInputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// Setup is everything a factory needs to build a game.
type Setup struct {
	Config config.SimulationConfig
	Map    *maps.Map

	// NewBot builds the controller for a bot seat. Nil means the default chaser.
	NewBot func(slot core.PlayerID) (bot.Controller, error)

	// Saver receives finished matches. Optional.
	Saver match.ResultSaver

	// OnEvent is called for every world event. Optional.
	OnEvent func(match.MatchID, world.Event)
}

// GameInfo contains metadata about a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory builds a game for a setup.
type Factory func(s Setup) (Game, error)

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a factory to the registry.
// Typically called from an init() function.
// Panics if the ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", id))
	}

	factories[id] = f
	titles[id] = title
}

// List returns information about all registered modes, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create builds a game for the mode with the given ID.
// Returns an error if the ID is not registered or the setup is unusable.
func Create(id string, s Setup) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %q", id)
	}
	return f(s)
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

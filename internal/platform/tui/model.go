package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/maps"
	"github.com/vovakirdan/tui-jumper/internal/registry"
)

// Options holds the optional collaborators of a Model.
type Options struct {
	// Logger receives reload and screenshot diagnostics. Nil discards them.
	Logger *log.Logger

	// Watcher reports edited map files. Requires Reload.
	Watcher *maps.Watcher

	// Reload rebuilds the game after a map file changed.
	// Returning a nil game keeps the current one running.
	Reload func(path string) (registry.Game, error)

	// ScreenshotDir is where ctrl+s dumps the screen. Defaults to ~/.jumper/screenshots.
	ScreenshotDir string

	// HoldFrames is the movement hold window. Defaults to DefaultHoldFrames.
	HoldFrames int
}

// Model is the Bubble Tea model for running a match.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	config    core.RuntimeConfig
	opts      Options
	keys      *KeyMapper
	input     *HeldInput
	gameState core.GameState
	restart   bool
	quitting  bool
}

// mapChangedMsg carries the path of an edited map file.
type mapChangedMsg struct {
	path string
}

// watchErrMsg carries a watcher failure.
type watchErrMsg struct {
	err error
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.HoldFrames == 0 {
		opts.HoldFrames = DefaultHoldFrames
	}

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config: cfg,
		opts:   opts,
		keys:   NewKeyMapper(),
		input:  NewHeldInput(opts.HoldFrames),
	}
}

// Init initializes the model and starts the match.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if m.opts.Watcher != nil && m.opts.Reload != nil {
		cmds = append(cmds, waitForMapChange(m.opts.Watcher))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case mapChangedMsg:
		return m.handleMapChange(msg.path)

	case watchErrMsg:
		m.opts.Logger.Warn("map watcher", "err", msg.err)
		return m, waitForMapChange(m.opts.Watcher)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if path, err := m.saveScreenshot(); err != nil {
			m.opts.Logger.Warn("screenshot failed", "err", err)
		} else {
			m.opts.Logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	b, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch b.Action {
	case core.ActionNone:
	case core.ActionRestart:
		m.restart = m.gameState.GameOver
	default:
		m.input.Press(b)
	}
	return m, nil
}

// handleResize processes window resize events.
// The renderer scales the world to whatever screen it gets, so the match
// keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick advances the match by one rendered frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.restart && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.restart = false
		m.input.Reset()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.input.Frame())
	m.gameState = result.State

	return m, tickCmd(m.config.TickRate)
}

// handleMapChange swaps in a game built from the edited map.
func (m Model) handleMapChange(path string) (tea.Model, tea.Cmd) {
	next := waitForMapChange(m.opts.Watcher)

	game, err := m.opts.Reload(path)
	if err != nil {
		m.opts.Logger.Warn("map reload failed, keeping current map", "path", path, "err", err)
		return m, next
	}
	if game == nil {
		return m, next
	}

	m.game = game
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.restart = false
	m.input.Reset()
	m.opts.Logger.Info("map reloaded", "path", path)
	return m, next
}

// waitForMapChange blocks on the watcher and turns its next event into a message.
func waitForMapChange(w *maps.Watcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			return mapChangedMsg{path: path}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return watchErrMsg{err: err}
		}
	}
}

// saveScreenshot saves the current screen to a text file.
func (m Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".jumper", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}

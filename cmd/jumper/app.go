package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-jumper/internal/bot"
	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/maps"
	"github.com/vovakirdan/tui-jumper/internal/match"
	"github.com/vovakirdan/tui-jumper/internal/settings"
	"github.com/vovakirdan/tui-jumper/internal/storage"
	"github.com/vovakirdan/tui-jumper/internal/world"
)

// appState is what every command needs once flags are parsed.
type appState struct {
	settings settings.Settings
	sim      config.SimulationConfig
	logger   *log.Logger
	logFile  *os.File
	store    *storage.Store
}

var app appState

// loadApp resolves settings, logging and the simulation config.
func loadApp(cmd *cobra.Command) error {
	loader := settings.NewLoader()
	if err := loader.BindFlags(cmd.Flags()); err != nil {
		return err
	}
	s, err := loader.Load(flagSettings)
	if err != nil {
		return err
	}
	app.settings = s

	var w io.Writer = os.Stderr
	if s.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(s.LogFile), 0o755); err != nil {
			return fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		app.logFile = f
		w = f
	}
	app.logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "jumper",
		Level:           s.Level(),
	})

	sim, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	preset, err := config.ParsePreset(s.Preset)
	if err != nil {
		return err
	}
	config.ApplyPreset(&sim, preset)
	if err := sim.Validate(); err != nil {
		return err
	}
	app.sim = sim

	app.logger.Debug("settings loaded",
		"data_dir", s.DataDir, "db", s.DBPath, "maps", s.MapsDir, "preset", preset)
	return nil
}

// close releases whatever the command opened.
func (a *appState) close() {
	if a.store != nil {
		a.store.Close()
		a.store = nil
	}
	if a.logFile != nil {
		a.logFile.Close()
		a.logFile = nil
	}
}

// openStore opens the history database on first use.
func (a *appState) openStore() (*storage.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	store, err := storage.Open(a.settings.DBPath)
	if err != nil {
		return nil, err
	}
	a.store = store
	return store, nil
}

// tuiLogger returns a logger that is safe to use while the terminal is
// owned by Bubble Tea: logs go to the log file, or nowhere.
func (a *appState) tuiLogger() *log.Logger {
	if a.logFile != nil {
		return a.logger
	}
	return log.New(io.Discard)
}

// mapLoader resolves map references against the maps directory.
func (a *appState) mapLoader() *maps.Loader {
	return maps.NewLoader(a.settings.MapsDir, a.sim.Map)
}

// seed returns the configured seed, or a fresh one.
func (a *appState) seed() int64 {
	if a.settings.Seed != 0 {
		return a.settings.Seed
	}
	return time.Now().UnixNano()
}

// runtimeConfig builds the render config from the terminal size.
func (a *appState) runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = a.sim.Tick.FPS()
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = a.settings.Seed
	return cfg
}

// botFactory returns a constructor for bot seats. An empty script selects
// the built-in chaser; otherwise script is a builtin name or a file path.
// The script is compiled once up front so errors surface before a match.
// Script failures during play are logged to logger.
func botFactory(script string, cfg config.BotConfig, logger *log.Logger) (func(core.PlayerID) (bot.Controller, error), error) {
	if script == "" {
		return func(core.PlayerID) (bot.Controller, error) {
			return bot.NewChaser(cfg), nil
		}, nil
	}

	compile := func() (*bot.ScriptController, error) {
		if slices.Contains(bot.BuiltinScripts(), script) {
			return bot.BuiltinScript(script)
		}
		return bot.LoadScript(script)
	}
	if _, err := compile(); err != nil {
		return nil, err
	}

	// Each seat gets its own compiled copy so script state is per bot
	return func(slot core.PlayerID) (bot.Controller, error) {
		c, err := compile()
		if err != nil {
			return nil, err
		}
		c.OnError(func(err error) {
			logger.Warn("bot script failed, seat idles", "slot", int(slot), "err", err)
		})
		return c, nil
	}, nil
}

// logEvent writes one world event as a structured log line.
func logEvent(logger *log.Logger, id match.MatchID, ev world.Event) {
	kv := append([]any{"match", id}, ev.KeyVals()...)
	switch ev.Kind {
	case world.EventKill, world.EventMatchOver:
		logger.Info("event", kv...)
	default:
		logger.Debug("event", kv...)
	}
}

// fail prints an error the way every command does and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	app.close()
	os.Exit(1)
}

package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jumper/internal/bot"
	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/maps"
	"github.com/vovakirdan/tui-jumper/internal/match"
	"github.com/vovakirdan/tui-jumper/internal/platform/tui"
	"github.com/vovakirdan/tui-jumper/internal/registry"
	"github.com/vovakirdan/tui-jumper/internal/storage"
	"github.com/vovakirdan/tui-jumper/internal/world"
)

var (
	flagMap       string
	flagWatch     bool
	flagBotScript string
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a match",
	Long: `Start a match in the given mode.

Modes:
  duel   - Two players on one keyboard
  trio   - Three players on one keyboard
  bot    - One player against a bot
  brawl  - Watch three bots fight

Controls:
  Player 1   A/D move, W jump, E shoot, Q bomb, S rocket
  Player 2   Left/Right move, Up jump, Down shoot, . bomb, , rocket
  Player 3   G/J move, Y jump, H shoot, Space bomb, B rocket
  P          Pause
  Enter      Play again (after the match)
  Ctrl+S     Save a screenshot
  Esc/Ctrl+C Quit

Examples:
  jumper play duel
  jumper play bot --bot-script sniper
  jumper play trio --map ./arena.yaml --watch
  jumper play duel --preset lowgrav --seed 42`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMap, "map", "", "Map ID in the maps directory, or a map file path")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the map file when it changes")
	playCmd.Flags().StringVar(&flagBotScript, "bot-script", "", "Built-in bot script name or .tengo file (default: chaser)")
}

func runPlay(_ *cobra.Command, args []string) {
	mode, err := match.ParseMode(args[0])
	if err != nil {
		fail("%v\nRun 'jumper list' to see available modes.", err)
	}
	if err := playMode(mode, flagMap, flagBotScript, flagWatch); err != nil {
		fail("%v", err)
	}
}

// playMode runs one interactive session of mode until the player quits.
func playMode(mode match.Mode, mapRef, script string, watch bool) error {
	mp, err := app.mapLoader().Resolve(mapRef)
	if err != nil {
		return err
	}
	newBot, err := botFactory(script, app.sim.Bot, app.tuiLogger())
	if err != nil {
		return err
	}

	// History is best-effort: the game works without it
	store, err := app.openStore()
	if err != nil {
		app.logger.Warn("could not open match history", "err", err)
		store = nil
	}

	game, err := registry.Create(mode.String(), gameSetup(mp, newBot, store))
	if err != nil {
		return fmt.Errorf("cannot create match: %w", err)
	}

	opts := tui.Options{Logger: app.tuiLogger()}
	if watch {
		if mp.FilePath == "" {
			return errors.New("--watch needs a map file, the built-in map cannot change")
		}
		target, err := filepath.Abs(mp.FilePath)
		if err != nil {
			return err
		}
		w, err := maps.NewWatcher(filepath.Dir(target))
		if err != nil {
			return fmt.Errorf("cannot watch map: %w", err)
		}
		defer w.Close()

		opts.Watcher = w
		opts.Reload = func(path string) (registry.Game, error) {
			if abs, err := filepath.Abs(path); err != nil || abs != target {
				return nil, nil
			}
			next, err := app.mapLoader().LoadFile(path)
			if err != nil {
				return nil, err
			}
			return registry.Create(mode.String(), gameSetup(next, newBot, store))
		}
	}

	return tui.Run(game, app.runtimeConfig(), opts)
}

// gameSetup assembles the registry setup shared by play and menu.
func gameSetup(mp *maps.Map, newBot func(core.PlayerID) (bot.Controller, error), store *storage.Store) registry.Setup {
	logger := app.tuiLogger()
	s := registry.Setup{
		Config: app.sim,
		Map:    mp,
		NewBot: newBot,
		OnEvent: func(id match.MatchID, ev world.Event) {
			logEvent(logger, id, ev)
		},
	}
	if store != nil {
		s.Saver = store
	}
	return s
}

// jumper is a terminal platformer for up to three players on one keyboard.
//
// Usage:
//
//	jumper list                 - List match modes, maps and bot scripts
//	jumper play <mode>          - Play a match (duel, trio, bot, brawl)
//	jumper menu                 - Pick modes interactively
//	jumper simulate             - Run bot matches headless
//	jumper history              - Show recent matches
//	jumper leaderboard          - Show wins and kills per player
//	jumper maps validate <file> - Check map files
//	jumper maps convert <a> <b> - Convert maps between text and YAML
//	jumper config               - Print the resolved simulation config
//
// Global flags:
//
//	--fps <rate>      - Rendered frames per second (default: from config)
//	--seed <value>    - RNG seed for reproducible matches
//	--config <path>   - Simulation tuning YAML
//	--preset <name>   - Physics preset: classic, lowgrav, arcade
//	--data-dir <path> - Where history, maps and settings live (default: ~/.jumper)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import modes to register them
	_ "github.com/vovakirdan/tui-jumper/internal/games/jumper"
)

var (
	// Global flags
	flagFPS      int
	flagConfig   string
	flagSettings string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jumper",
	Short: "Jumper - a local multiplayer platformer in your terminal",
	Long: `Jumper is a 2D platformer shooter for the terminal. Up to three
players share one keyboard, or fight computer-controlled bots.

Available commands:
  list         - Show modes, maps and bot scripts
  play         - Play a specific mode directly
  menu         - Interactive mode picker
  simulate     - Run bot-only matches without a terminal
  history      - Show recent matches
  leaderboard  - Show the best players
  maps         - Validate and convert map files
  config       - Print the resolved simulation config

Examples:
  jumper list
  jumper play duel
  jumper play bot --map ./arena.yaml --watch
  jumper simulate --matches 10 --seed 1
  jumper leaderboard --mode duel`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadApp(cmd)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		app.close()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 0, "Rendered frames per second (0 = from config)")
	pf.StringVar(&flagConfig, "config", "", "Path to simulation config YAML")
	pf.StringVar(&flagSettings, "settings", "", "Path to settings YAML (default: <data-dir>/settings.yaml)")

	// Bound to settings; defaults live in the settings loader
	pf.Int64("seed", 0, "RNG seed (0 = random based on time)")
	pf.String("preset", "", "Physics preset: classic, lowgrav, arcade")
	pf.String("data-dir", "", "Data directory (default: ~/.jumper)")
	pf.String("db-path", "", "Match history database (default: <data-dir>/jumper.db)")
	pf.String("maps-dir", "", "Directory with custom maps (default: <data-dir>/maps)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-file", "", "Write logs to this file instead of stderr")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(mapsCmd)
}

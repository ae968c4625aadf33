package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jumper/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a match mode interactively",
	Long: `Start jumper in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode.
After a match session ends, you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select mode
  Tab          - Match history and leaderboard
  Q            - Quit

Examples:
  jumper menu
  jumper menu --preset arcade
  jumper menu --bot-script sniper`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagMap, "map", "", "Map ID in the maps directory, or a map file path")
	menuCmd.Flags().StringVar(&flagBotScript, "bot-script", "", "Built-in bot script name or .tengo file (default: chaser)")
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg := app.runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fail("%v", err)
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			var source tui.HistorySource
			if store, err := app.openStore(); err == nil {
				source = store
			} else {
				app.logger.Warn("could not open match history", "err", err)
			}
			goBack, err := tui.RunScoreboard(source, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if goBack {
				continue
			}
			return
		}

		if err := playMode(menuResult.Mode, flagMap, flagBotScript, false); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
}

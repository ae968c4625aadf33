package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/match"
	"github.com/vovakirdan/tui-jumper/internal/world"
)

var (
	flagSimMode    string
	flagSimMatches int
	flagMaxSeconds float64
	flagNoSave     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run bot-only matches without a terminal",
	Long: `Run matches headless with every seat driven by a bot. Results are
printed and saved to the match history unless --no-save is given.

The same seed, map, config and bot script always produce the same
result, which makes simulate useful for tuning presets and testing
bot scripts.

Examples:
  jumper simulate
  jumper simulate --mode duel --matches 20 --seed 7
  jumper simulate --bot-script ./aggressive.tengo --log-level debug
  jumper simulate --preset lowgrav --max-seconds 60 --no-save`,
	Run: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagSimMode, "mode", "brawl", "Mode whose seats to fill with bots")
	simulateCmd.Flags().IntVar(&flagSimMatches, "matches", 1, "Number of matches; match i uses seed+i")
	simulateCmd.Flags().Float64Var(&flagMaxSeconds, "max-seconds", 120, "Simulated seconds before a match is called (0 = no limit)")
	simulateCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record results in the match history")
	simulateCmd.Flags().StringVar(&flagMap, "map", "", "Map ID in the maps directory, or a map file path")
	simulateCmd.Flags().StringVar(&flagBotScript, "bot-script", "", "Built-in bot script name or .tengo file (default: chaser)")
}

func runSimulate(_ *cobra.Command, _ []string) {
	mode, err := match.ParseMode(flagSimMode)
	if err != nil {
		fail("%v", err)
	}
	if flagSimMatches < 1 {
		fail("--matches must be at least 1")
	}
	mp, err := app.mapLoader().Resolve(flagMap)
	if err != nil {
		fail("%v", err)
	}
	newBot, err := botFactory(flagBotScript, app.sim.Bot, app.logger)
	if err != nil {
		fail("%v", err)
	}

	var saver match.ResultSaver
	if !flagNoSave {
		store, err := app.openStore()
		if err != nil {
			app.logger.Warn("could not open match history, results will not be saved", "err", err)
		} else {
			saver = store
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var maxTicks uint64
	if flagMaxSeconds > 0 {
		maxTicks = uint64(flagMaxSeconds * float64(app.sim.Tick.UPS))
	}

	wins := make(map[string]int)
	base := app.seed()
	for i := 0; i < flagSimMatches; i++ {
		seats := mode.Seats(app.sim.Players)
		for j := range seats {
			seats[j].Bot = true
		}
		m := match.New(mode, mp.ID, base+int64(i), seats)

		w, err := match.NewWorld(app.sim, mp, m)
		if err != nil {
			fail("%v", err)
		}
		controllers, err := match.Controllers(m, newBot)
		if err != nil {
			fail("%v", err)
		}

		runner := &match.Runner{
			Match:       m,
			World:       w,
			Controllers: controllers,
			Source:      core.FixedRate(app.sim.Tick.UPS),
			MaxTicks:    maxTicks,
			OnEvent: func(ev world.Event) {
				logEvent(app.logger, m.ID(), ev)
			},
		}

		app.logger.Debug("match started", "match", m.ID(), "mode", mode, "map", mp.ID, "seed", m.Seed)
		res, runErr := runner.Run(ctx)
		printResult(i+1, res)

		if saver != nil && res.Reason != match.EndAborted {
			if err := saver.SaveResult(ctx, res); err != nil {
				app.logger.Error("failed to save result", "match", res.MatchID, "err", err)
			}
		}
		if runErr != nil {
			if errors.Is(runErr, context.Canceled) {
				app.logger.Warn("interrupted", "completed", i)
				break
			}
			fail("%v", runErr)
		}

		winner := res.Winner
		if winner == "" {
			winner = "(draw)"
		}
		wins[winner]++
	}

	if flagSimMatches > 1 {
		fmt.Println()
		fmt.Println("Wins:")
		for _, name := range sortedKeys(wins) {
			fmt.Printf("  %-10s  %d\n", name, wins[name])
		}
	}
}

// printResult prints a one-line summary of a finished match.
func printResult(n int, r match.Result) {
	winner := r.Winner
	if winner == "" {
		winner = "draw"
	}
	var kills []string
	for _, p := range r.Players {
		kills = append(kills, fmt.Sprintf("%s:%d", p.Name, p.Kills))
	}
	fmt.Printf("#%-3d %s  seed %-20d  %-8s  %7.2fs  %-10s  kills %s\n",
		n, r.MatchID, r.Seed, winner, r.Duration, r.Reason, strings.Join(kills, " "))
}

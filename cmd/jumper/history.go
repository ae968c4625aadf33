package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jumper/internal/match"
	"github.com/vovakirdan/tui-jumper/internal/platform/tui"
)

var (
	flagHistoryMode  string
	flagHistoryLimit int
	flagLeaderLimit  int
	flagInteractive  bool
)

var historyCmd = &cobra.Command{
	Use:   "history [match-id]",
	Short: "Show recent matches",
	Long: `List the most recent matches, or show the players and kills of one
match when its ID is given.

Examples:
  jumper history
  jumper history --mode duel --limit 5
  jumper history 5d1f6c9e-8a3b-4f5e-9c1d-2b7a4e6f8d10
  jumper history --interactive`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete recorded matches",
	Long: `Delete all recorded matches, or only those of one mode.

Examples:
  jumper history clear
  jumper history clear --mode bot`,
	Args: cobra.NoArgs,
	Run:  runHistoryClear,
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the best players",
	Long: `Rank players by wins, then kills, over all recorded matches or
those of one mode.

Examples:
  jumper leaderboard
  jumper leaderboard --mode trio`,
	Args: cobra.NoArgs,
	Run:  runLeaderboard,
}

func init() {
	for _, c := range []*cobra.Command{historyCmd, historyClearCmd, leaderboardCmd} {
		c.Flags().StringVar(&flagHistoryMode, "mode", "", "Only this mode (default: all)")
	}
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of matches to show")
	historyCmd.Flags().BoolVar(&flagInteractive, "interactive", false, "Browse history in the terminal UI")
	leaderboardCmd.Flags().IntVar(&flagLeaderLimit, "limit", 10, "Number of players to show")
	historyCmd.AddCommand(historyClearCmd)
}

// historyMode validates --mode and returns its stored name.
func historyMode() string {
	if flagHistoryMode == "" {
		return ""
	}
	mode, err := match.ParseMode(flagHistoryMode)
	if err != nil {
		fail("%v", err)
	}
	return mode.String()
}

func runHistory(_ *cobra.Command, args []string) {
	mode := historyMode()
	store, err := app.openStore()
	if err != nil {
		fail("opening match history: %v", err)
	}
	ctx := context.Background()

	if flagInteractive {
		cfg := app.runtimeConfig()
		if _, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH); err != nil {
			fail("%v", err)
		}
		return
	}

	if len(args) == 1 {
		showMatch(ctx, args[0])
		return
	}

	matches, err := store.RecentMatches(ctx, mode, flagHistoryLimit)
	if err != nil {
		fail("retrieving matches: %v", err)
	}
	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Play 'jumper play duel' or run 'jumper simulate' to record one!")
		return
	}

	fmt.Printf("  %-36s  %-16s  %-5s  %-10s  %-10s  %s\n", "Match", "Date", "Mode", "Map", "Winner", "Time")
	fmt.Printf("  %-36s  %-16s  %-5s  %-10s  %-10s  %s\n", "-----", "----", "----", "---", "------", "----")
	for _, m := range matches {
		winner := m.Winner
		if winner == "" {
			winner = "draw"
		}
		fmt.Printf("  %-36s  %-16s  %-5s  %-10s  %-10s  %.1fs\n",
			m.MatchID, m.StartedAt.Format("2006-01-02 15:04"), m.Mode, m.MapID, winner, m.Duration)
	}
}

// showMatch prints the seats and kills of one match.
func showMatch(ctx context.Context, id string) {
	m, err := app.store.MatchByID(ctx, id)
	if err != nil {
		fail("retrieving match: %v", err)
	}
	if m == nil {
		fail("no match with ID %q", id)
	}
	kills, err := app.store.KillsForMatch(ctx, id)
	if err != nil {
		fail("retrieving kills: %v", err)
	}

	winner := m.Winner
	if winner == "" {
		winner = "draw"
	}
	fmt.Printf("Match %s\n", m.MatchID)
	fmt.Printf("  Mode:    %s\n", m.Mode)
	fmt.Printf("  Map:     %s\n", m.MapID)
	fmt.Printf("  Seed:    %d\n", m.Seed)
	fmt.Printf("  Started: %s\n", m.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Result:  %s (%s) after %d ticks, %.2fs\n", winner, m.EndReason, m.Ticks, m.Duration)
	fmt.Println()

	fmt.Printf("  %-4s  %-10s  %-5s  %-5s  %s\n", "Slot", "Player", "Bot", "Kills", "Status")
	for _, p := range m.Players {
		status := "alive"
		if !p.Alive {
			status = fmt.Sprintf("died at tick %d", p.DiedAt)
		}
		botMark := ""
		if p.Bot {
			botMark = "yes"
		}
		fmt.Printf("  %-4d  %-10s  %-5s  %-5d  %s\n", p.Slot, p.Name, botMark, p.Kills, status)
	}

	if len(kills) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("  Kills:")
	for _, k := range kills {
		killer := k.Killer
		if killer == "" {
			killer = k.Victim + " (self)"
		}
		fmt.Printf("    tick %-7d  %-16s  %-8s  %s\n", k.Tick, killer, k.Weapon, k.Victim)
	}
}

func runHistoryClear(_ *cobra.Command, _ []string) {
	mode := historyMode()
	store, err := app.openStore()
	if err != nil {
		fail("opening match history: %v", err)
	}
	n, err := store.ClearMatches(context.Background(), mode)
	if err != nil {
		fail("clearing matches: %v", err)
	}
	fmt.Printf("Deleted %d matches.\n", n)
}

func runLeaderboard(_ *cobra.Command, _ []string) {
	mode := historyMode()
	store, err := app.openStore()
	if err != nil {
		fail("opening match history: %v", err)
	}

	entries, err := store.Leaderboard(context.Background(), mode, flagLeaderLimit)
	if err != nil {
		fail("retrieving leaderboard: %v", err)
	}

	title := "all modes"
	if mode != "" {
		title = mode
	}
	fmt.Printf("Leaderboard - %s\n", title)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No matches recorded yet.")
		return
	}

	fmt.Printf("  %-4s  %-12s  %-5s  %-5s  %s\n", "Rank", "Player", "Wins", "Kills", "Played")
	fmt.Printf("  %-4s  %-12s  %-5s  %-5s  %s\n", "----", "------", "----", "-----", "------")
	for i, e := range entries {
		fmt.Printf("  %-4d  %-12s  %-5d  %-5d  %d\n", i+1, e.Name, e.Wins, e.Kills, e.Matches)
	}
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

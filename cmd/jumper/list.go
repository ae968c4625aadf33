package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jumper/internal/bot"
	"github.com/vovakirdan/tui-jumper/internal/maps"
	"github.com/vovakirdan/tui-jumper/internal/match"
	"github.com/vovakirdan/tui-jumper/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List match modes, maps and bot scripts",
	Long:  `Shows every registered match mode, the maps found in the maps directory and the built-in bot scripts.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	modes := registry.List()

	fmt.Println("Modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, m := range modes {
		if len(m.ID) > maxIDLen {
			maxIDLen = len(m.ID)
		}
	}

	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "ID", "Title", "Seats")
	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "--", "-----", "-----")
	for _, info := range modes {
		seats := ""
		if mode, err := match.ParseMode(info.ID); err == nil {
			for i, s := range mode.Seats(app.sim.Players) {
				if i > 0 {
					seats += ", "
				}
				seats += s.Name
				if s.Bot {
					seats += " (bot)"
				}
			}
		}
		fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, info.ID, info.Title, seats)
	}

	fmt.Println()
	fmt.Println("Maps:")
	fmt.Println()
	fmt.Printf("  %s (built in)\n", maps.DefaultID)

	found, err := app.mapLoader().LoadAll()
	if err != nil {
		app.logger.Debug("no custom maps", "dir", app.settings.MapsDir, "err", err)
	}
	for _, m := range found {
		fmt.Printf("  %-12s  %s\n", m.ID, m.FilePath)
	}

	fmt.Println()
	fmt.Println("Bot scripts:")
	fmt.Println()
	for _, name := range bot.BuiltinScripts() {
		fmt.Printf("  %s\n", name)
	}

	fmt.Println()
	fmt.Println("Run 'jumper play <mode>' to start a match.")
}

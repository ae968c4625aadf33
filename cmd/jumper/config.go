package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jumper/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved simulation config",
	Long: `Print the simulation config after the search path, --config and
--preset have been applied. The output is valid input for --config.

Examples:
  jumper config > my-jumper.yaml
  jumper config --preset lowgrav`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) {
	data, err := config.Marshal(app.sim)
	if err != nil {
		fail("%v", err)
	}
	fmt.Print(string(data))
}

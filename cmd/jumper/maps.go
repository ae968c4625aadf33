package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/maps"
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "Work with map files",
}

var mapsValidateCmd = &cobra.Command{
	Use:   "validate [file-or-dir...]",
	Short: "Check map files against the current config",
	Long: `Parse each map and check that its platforms lie inside the world and
that a player fits at every spawn point. Directories are searched for
.map, .txt, .yaml and .yml files. With no arguments the maps directory
is checked.

Examples:
  jumper maps validate ./arena.yaml
  jumper maps validate ~/.jumper/maps
  jumper maps validate --preset lowgrav ./levels`,
	Run: runMapsValidate,
}

var mapsConvertCmd = &cobra.Command{
	Use:   "convert <map> <output>",
	Short: "Convert a map between the text and YAML formats",
	Long: `Load a map (an ID, a file, or "default" for the built-in map) and
write it in the format chosen by the output extension: .yaml/.yml for YAML,
.map/.txt for a text grid laid out with the configured cell size.

Examples:
  jumper maps convert default ./default.yaml
  jumper maps convert ./arena.yaml ./arena.map`,
	Args: cobra.ExactArgs(2),
	Run:  runMapsConvert,
}

func init() {
	mapsCmd.AddCommand(mapsValidateCmd)
	mapsCmd.AddCommand(mapsConvertCmd)
}

func runMapsConvert(_ *cobra.Command, args []string) {
	m, err := app.mapLoader().Resolve(args[0])
	if err != nil {
		fail("%v", err)
	}
	out := args[1]

	var data []byte
	switch ext := strings.ToLower(filepath.Ext(out)); ext {
	case ".yaml", ".yml":
		data, err = maps.MarshalYAML(m)
		if err != nil {
			fail("%v", err)
		}
	case ".map", ".txt":
		cell := app.sim.Map
		cols := int(math.Ceil(app.sim.World.Width / cell.CellW))
		rows := int(math.Ceil(app.sim.World.Height / cell.CellH))
		data = []byte(maps.FormatText(m, cell, cols, rows))
	default:
		fail("unsupported output extension %q (use .yaml, .yml, .map or .txt)", ext)
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Wrote %s (%d platforms, %d spawns).\n", out, len(m.Platforms), len(m.Spawns))
}

func runMapsValidate(_ *cobra.Command, args []string) {
	if len(args) == 0 {
		args = []string{app.settings.MapsDir}
	}

	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			fail("%v", err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && maps.IsMapFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			fail("%v", err)
		}
	}
	if len(files) == 0 {
		fmt.Println("No map files found.")
		return
	}

	loader := app.mapLoader()
	bounds := app.sim.Bounds()
	player := core.V(app.sim.Player.Width, app.sim.Player.Height)

	failed := 0
	for _, path := range files {
		m, err := loader.LoadFile(path)
		if err == nil {
			err = m.Validate(bounds, player)
		}
		if err != nil {
			failed++
			fmt.Printf("  FAIL  %s: %v\n", path, err)
			continue
		}
		ext := m.Extent()
		fmt.Printf("  ok    %s (%s: %d platforms spanning %.0fx%.0f, %d spawns)\n",
			path, m.ID, len(m.Platforms), ext.Size.X, ext.Size.Y, len(m.Spawns))
	}

	fmt.Println()
	if failed > 0 {
		fail("%d of %d maps are invalid", failed, len(files))
	}
	fmt.Printf("All %d maps are valid.\n", len(files))
}

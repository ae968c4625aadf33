package maps

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
)

// ParseText parses a text grid map.
//
// Each rune is one cell of cfg.CellW x cfg.CellH world units. The marker
// glyph places a platform of width CellW and height PlatformHeight at the
// cell's top-left corner. Digits 1-9 place the spawn point of that player
// slot at the cell's top-left corner. Every other glyph is empty space.
func ParseText(data []byte, cfg config.MapConfig) (*Map, error) {
	marker := []rune(cfg.Marker)
	if len(marker) != 1 {
		return nil, fmt.Errorf("maps: marker must be one character, got %q", cfg.Marker)
	}

	m := &Map{Spawns: make(map[core.PlayerID]core.Vec2)}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	row := 0
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		col := 0
		for _, r := range line {
			origin := core.V(float64(col)*cfg.CellW, float64(row)*cfg.CellH)
			switch {
			case r == marker[0]:
				m.Platforms = append(m.Platforms, core.AABB{
					Pos:  origin,
					Size: core.V(cfg.CellW, cfg.PlatformHeight),
				})
			case r >= '1' && r <= '9':
				slot := core.PlayerID(r - '0')
				if _, dup := m.Spawns[slot]; dup {
					return nil, fmt.Errorf("maps: duplicate spawn %d at row %d col %d", slot, row+1, col+1)
				}
				m.Spawns[slot] = origin
			}
			col++
		}
		row++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("maps: reading grid: %w", err)
	}
	return m, nil
}

// FormatText renders platforms and spawns back into a text grid with the
// given cell geometry. Platforms that do not start on a cell corner are
// snapped to the cell containing their top-left point.
func FormatText(m *Map, cfg config.MapConfig, cols, rows int) string {
	grid := make([][]rune, rows)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(".", cols))
	}
	put := func(p core.Vec2, r rune) {
		x := int(p.X / cfg.CellW)
		y := int(p.Y / cfg.CellH)
		if x >= 0 && x < cols && y >= 0 && y < rows {
			grid[y][x] = r
		}
	}
	marker := []rune(cfg.Marker)[0]
	for _, p := range m.Platforms {
		put(p.Pos, marker)
	}
	for slot, p := range m.Spawns {
		put(p, rune('0'+int(slot)))
	}

	var sb strings.Builder
	for _, line := range grid {
		sb.WriteString(string(line))
		sb.WriteByte('\n')
	}
	return sb.String()
}

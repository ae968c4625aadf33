package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-jumper/internal/core"
)

// solidRune is drawn as a background-colored space so player sprites stay
// solid in fonts where full blocks leave gaps between rows.
const solidRune = '█'

// palette maps core.Color to a terminal color.
var palette = map[core.Color]lipgloss.Color{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// runKey identifies cells that can share one styled run.
type runKey struct {
	color core.Color
	solid bool
}

func (k runKey) style() lipgloss.Style {
	c, ok := palette[k.color]
	switch {
	case !ok:
		return lipgloss.NewStyle()
	case k.solid:
		return lipgloss.NewStyle().Background(c)
	default:
		return lipgloss.NewStyle().Foreground(c)
	}
}

// styleRun is a stretch of one row drawn with a single style.
type styleRun struct {
	key  runKey
	text string
}

func keyOf(c core.Cell) runKey {
	_, colored := palette[c.Color]
	return runKey{color: c.Color, solid: colored && c.Rune == solidRune}
}

// rowRuns splits row y into runs of cells that render with the same style.
func rowRuns(s *core.Screen, y int) []styleRun {
	var runs []styleRun
	x := 0
	for x < s.Width() {
		key := keyOf(s.GetCell(x, y))
		var text strings.Builder
		for ; x < s.Width(); x++ {
			cell := s.GetCell(x, y)
			if keyOf(cell) != key {
				break
			}
			if key.solid {
				text.WriteRune(' ')
			} else {
				text.WriteRune(cell.Rune)
			}
		}
		runs = append(runs, styleRun{key: key, text: text.String()})
	}
	return runs
}

// RenderScreen converts a Screen buffer to a styled string for display.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	styles := make(map[runKey]lipgloss.Style)
	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for _, r := range rowRuns(s, y) {
			style, ok := styles[r.key]
			if !ok {
				style = r.key.style()
				styles[r.key] = style
			}
			sb.WriteString(style.Render(r.text))
		}
	}
	return sb.String()
}

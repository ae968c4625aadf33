package jumper

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
	"github.com/vovakirdan/tui-jumper/internal/world"
)

// Visual characters for rendering
const (
	PlatformChar = '▀'
	PlayerChar   = '█'
	BulletChar   = '•'
	BombChar     = '●'
	RocketChar   = '◆'
	ParticleChar = '·'
	DeadMark     = '✗'
)

// hudRows is the number of screen rows above the arena.
const hudRows = 1

// viewport maps world coordinates onto screen cells.
type viewport struct {
	sx, sy     float64
	cols, rows int
}

func newViewport(bounds core.AABB, cols, rows int) viewport {
	return viewport{
		sx:   float64(cols) / bounds.Size.X,
		sy:   float64(rows) / bounds.Size.Y,
		cols: cols,
		rows: rows,
	}
}

// rect covers every cell the box touches, at least one cell in each direction.
func (v viewport) rect(b core.AABB) core.Rect {
	x0 := core.Clamp(int(math.Floor(b.Left()*v.sx)), 0, v.cols-1)
	y0 := core.Clamp(int(math.Floor(b.Top()*v.sy)), 0, v.rows-1)
	x1 := core.Clamp(int(math.Ceil(b.Right()*v.sx)), x0+1, v.cols)
	y1 := core.Clamp(int(math.Ceil(b.Bottom()*v.sy)), y0+1, v.rows)
	return core.NewRect(x0, y0+hudRows, x1-x0, y1-y0)
}

// cell returns the screen cell under p.
func (v viewport) cell(p core.Vec2) (int, int) {
	x := core.Clamp(int(p.X*v.sx), 0, v.cols-1)
	y := core.Clamp(int(p.Y*v.sy), 0, v.rows-1)
	return x, y + hudRows
}

// Render draws the current match to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		drawCenteredMessage(dst, "CANNOT START MATCH", g.err.Error())
		return
	}

	snap := g.world.Snapshot()
	v := newViewport(snap.Bounds, dst.Width(), dst.Height()-hudRows)

	platformColor := config.ColorOf(g.setup.Config.Map.Color)
	for _, p := range snap.Platforms {
		dst.DrawRect(v.rect(p), PlatformChar, platformColor)
	}

	for _, s := range snap.Sprites {
		box := core.AABB{Pos: s.Pos, Size: s.Size}
		if s.Kind == world.KindPlayer {
			dst.DrawRect(v.rect(box), PlayerChar, s.Color)
			continue
		}
		x, y := v.cell(box.Center())
		dst.SetColored(x, y, projectileChar(s.Kind), s.Color)
	}

	g.drawHUD(dst)

	switch {
	case g.paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case snap.Over:
		title := "DRAW!"
		if snap.Winner != world.NoEntity {
			title = fmt.Sprintf("%s WINS!", g.world.PlayerName(snap.Winner))
		}
		drawCenteredMessage(dst, title, "Enter to play again  |  Esc to quit")
	}
}

func projectileChar(k world.Kind) rune {
	switch k {
	case world.KindBullet:
		return BulletChar
	case world.KindBomb:
		return BombChar
	case world.KindRocket:
		return RocketChar
	default:
		return ParticleChar
	}
}

// drawHUD writes each player's name and kill count on the top row.
func (g *Game) drawHUD(dst *core.Screen) {
	x := 1
	for _, p := range g.world.Roster() {
		label := fmt.Sprintf("%s %d", p.Name, p.Kills)
		color := p.Color
		if !p.Alive {
			label = fmt.Sprintf("%s %c", label, DeadMark)
			color = core.ColorGray
		}
		if seat, ok := g.match.Seat(p.Slot); ok && seat.Bot {
			label += " (bot)"
		}
		dst.DrawTextColored(x, 0, label, color)
		x += len([]rune(label)) + 3
	}

	title := fmt.Sprintf("%s · %s", g.mode.Title(), g.setup.Map.ID)
	dst.DrawText(dst.Width()-len([]rune(title))-1, 0, title)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len([]rune(title)))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}

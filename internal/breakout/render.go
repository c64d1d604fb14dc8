package breakout

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/brickstorm/internal/core"
)

// Visual characters for rendering
const (
	PaddleChar     = '═'
	BallChar       = '●'
	LaserChar      = '┃'
	BrickGlyph     = '█'
	DamagedGlyph   = '▒'
	BossGlyph      = '▓'
	DecorGlyph     = '·'
	SeparatorGlyph = '─'
	playTop        = 2 // HUD and separator rows
)

// levelThemes picks brick colors for the upper and lower halves.
var levelThemes = [][2]core.Color{
	{core.ColorCyan, core.ColorBlue},
	{core.ColorMagenta, core.ColorPink},
	{core.ColorGreen, core.ColorYellow},
}

// viewport maps world coordinates onto the play area of a screen.
type viewport struct {
	worldW, worldH float64
	cols, rows     int
}

func (g *Game) viewport(dst *core.Screen) viewport {
	return viewport{
		worldW: g.opts.Config.World.Width,
		worldH: g.opts.Config.World.Height,
		cols:   dst.Width(),
		rows:   dst.Height() - playTop,
	}
}

func (v viewport) col(x float64) int {
	return core.Clamp(int(x*float64(v.cols)/v.worldW), 0, v.cols-1)
}

func (v viewport) row(y float64) int {
	return playTop + core.Clamp(int(y*float64(v.rows)/v.worldH), 0, v.rows-1)
}

// span returns the inclusive cell range covered by [lo, hi) on one axis.
func span(lo, hi int) (int, int) {
	if hi <= lo {
		return lo, lo
	}
	return lo, hi - 1
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall || g.session == nil {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	v := g.viewport(dst)
	g.renderHUD(dst)
	g.renderBricks(dst, v)
	g.renderPowerups(dst, v)
	g.renderLasers(dst, v)
	g.renderPaddle(dst, v)
	g.renderBalls(dst, v)
	g.renderMessage(dst)
}

// renderHUD draws score, lives and level, then the status row.
func (g *Game) renderHUD(dst *core.Screen) {
	s := g.session

	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", s.Score))
	dst.DrawTextCentered(0, fmt.Sprintf("Lives: %d", s.Lives))

	levelText := fmt.Sprintf("Level %d/%d %s", s.Level, LevelCount(), LevelName(s.Level))
	dst.DrawText(dst.Width()-utf8.RuneCountInString(levelText)-1, 0, levelText)

	for x := range dst.Width() {
		dst.SetColored(x, 1, SeparatorGlyph, core.ColorGray)
	}

	var status []string
	if s.ExplosionNextHit {
		status = append(status, "EXPLOSION ARMED")
	}
	if n := s.ActiveBalls(); n > 1 {
		status = append(status, fmt.Sprintf("BALLS x%d", n))
	}
	if len(status) > 0 {
		dst.DrawTextColored(1, 1, " "+strings.Join(status, " | ")+" ", core.ColorOrange)
	}
}

func (g *Game) renderBricks(dst *core.Screen, v viewport) {
	s := g.session
	theme := levelThemes[(s.Level-1)%len(levelThemes)]

	// Decoration first so bricks draw over it.
	for _, b := range s.Bricks {
		if !b.Decor {
			continue
		}
		r := b.Rect()
		x0, x1 := span(v.col(r.Left()), v.col(r.Right()))
		y0, y1 := span(v.row(r.Top()), v.row(r.Bottom()))
		for y := y0 - 1; y <= y1+1; y++ {
			for x := x0 - 1; x <= x1+1; x++ {
				if y >= playTop {
					dst.SetColored(x, y, DecorGlyph, core.ColorGray)
				}
			}
		}
	}

	for _, b := range s.Bricks {
		if !b.Active {
			continue
		}

		glyph, color := BrickGlyph, theme[1]
		if b.Upper {
			color = theme[0]
		}
		switch {
		case b.Boss:
			glyph, color = BossGlyph, core.ColorGold
			if b.Damaged {
				color = core.ColorOrange
			}
		case b.Damaged:
			glyph = DamagedGlyph
		}

		r := b.Rect()
		x0, x1 := span(v.col(r.Left()), v.col(r.Right()))
		y0, y1 := span(v.row(r.Top()), v.row(r.Bottom()))
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				dst.SetColored(x, y, glyph, color)
			}
		}

		if b.Boss {
			hp := fmt.Sprintf("%d", b.Health)
			dst.DrawTextColored((x0+x1+1-len(hp))/2, y0, hp, core.ColorRed)
		}
	}
}

func (g *Game) renderPowerups(dst *core.Screen, v viewport) {
	for _, p := range g.session.Powerups {
		if !p.Active {
			continue
		}
		dst.SetColored(v.col(p.X), v.row(p.Y), p.Type.Glyph(), p.Type.Color())
	}
}

func (g *Game) renderLasers(dst *core.Screen, v viewport) {
	for _, l := range g.session.Lasers {
		if l.Done || l.Y < 0 {
			continue
		}
		x, y := v.col(l.X), v.row(l.Y)
		dst.SetColored(x, y, LaserChar, core.ColorRed)
		dst.SetColored(x, y+1, LaserChar, core.ColorRed)
	}
}

func (g *Game) renderPaddle(dst *core.Screen, v viewport) {
	r := g.session.Paddle.Rect()
	x0, x1 := span(v.col(r.Left()), v.col(r.Right()))
	y := v.row(g.session.Paddle.Y)
	for x := x0; x <= x1; x++ {
		dst.SetColored(x, y, PaddleChar, core.ColorWhite)
	}
}

func (g *Game) renderBalls(dst *core.Screen, v viewport) {
	for _, b := range g.session.Balls {
		if !b.Active {
			continue
		}
		color := core.ColorWhite
		if !b.Main {
			color = core.ColorCyan
		}
		dst.SetColored(v.col(b.X), v.row(b.Y), BallChar, color)
	}
}

// renderMessage shows the serve hint on the bottom row and every other
// message in a centered box.
func (g *Game) renderMessage(dst *core.Screen) {
	s := g.session
	if !s.ShowMessage {
		return
	}
	if s.State == StateServe {
		dst.DrawTextCentered(dst.Height()-1, s.Message)
		return
	}
	drawCenteredBox(dst, strings.Split(s.Message, "\n"))
}

// drawCenteredBox draws a framed box with one blank row between lines.
func drawCenteredBox(dst *core.Screen, lines []string) {
	widest := 0
	for _, l := range lines {
		widest = max(widest, utf8.RuneCountInString(l))
	}

	boxW := widest + 4
	boxH := len(lines)*2 + 1
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, l := range lines {
		x := boxX + (boxW-utf8.RuneCountInString(l))/2
		dst.DrawText(x, boxY+1+2*i, l)
	}
}

package blockbreak

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/blockbreak/internal/core"
)

// Minimum terminal size the renderer supports.
const (
	MinScreenW = 40
	MinScreenH = 20
)

const hudRows = 2

// Glyphs
const (
	glyphBall      = '●'
	glyphPaddle    = '▀'
	glyphSolid     = '█'
	glyphDamaged   = '▓'
	glyphSteel     = '▒'
	glyphSeparator = '─'
)

var rowPalette = []core.Color{
	core.ColorRed,
	core.ColorMagenta,
	core.ColorBlue,
	core.ColorCyan,
	core.ColorGreen,
	core.ColorYellow,
	core.ColorOrange,
}

// view maps arena units onto the screen area below the HUD.
type view struct {
	top    int
	sx, sy float64
}

func newView(dst *core.Screen, a Arena) view {
	return view{
		top: hudRows,
		sx:  float64(dst.Width()) / a.Width,
		sy:  float64(dst.Height()-hudRows) / a.Height,
	}
}

func (v view) point(p core.Vec2) (int, int) {
	return int(math.Floor(p.X * v.sx)), v.top + int(math.Floor(p.Y*v.sy))
}

// rect converts a box to cells. Boxes thinner than a cell still get one.
func (v view) rect(b core.AABB) core.Rect {
	lo, hi := b.Min(), b.Max()
	x0, x1 := int(math.Floor(lo.X*v.sx)), int(math.Floor(hi.X*v.sx))
	y0, y1 := int(math.Floor(lo.Y*v.sy)), int(math.Floor(hi.Y*v.sy))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y0 = int(math.Floor(b.Center.Y * v.sy))
		y1 = y0 + 1
	}
	return core.NewRect(x0, v.top+y0, x1-x0, y1-y0)
}

// Render draws the current mode.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH))
		return
	}

	switch g.mode {
	case ModeMenu:
		g.renderMenu(dst)
	case ModeEditor:
		g.renderEditor(dst)
	default:
		if g.world == nil {
			return
		}
		g.renderHUD(dst)
		renderWorld(dst, g.world)
		g.renderOverlay(dst)
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	w := g.world
	if g.mode == ModeTestPlay {
		dst.DrawTextColor(1, 0, "TEST PLAY", core.ColorBrightYellow)
	} else {
		dst.DrawText(1, 0, fmt.Sprintf("Score: %d", g.session.Score))
	}
	dst.DrawTextCentered(0, fmt.Sprintf("Level %d: %s", w.Level, LevelName(w.Level)))
	balls := fmt.Sprintf("Balls: %d", len(w.Balls))
	dst.DrawText(dst.Width()-len(balls)-1, 0, balls)

	var parts []string
	for _, e := range w.PowerUps.Effects.List() {
		if e.Permanent {
			parts = append(parts, e.Kind.String())
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %.0fs", e.Kind, math.Ceil(e.Remaining)))
	}
	if w.Combo.Count > 1 {
		parts = append(parts, fmt.Sprintf("Combo x%d", w.Combo.Multiplier))
	}
	if len(parts) == 0 {
		dst.DrawHLine(0, 1, dst.Width(), glyphSeparator)
		return
	}
	dst.DrawTextColor(1, 1, strings.Join(parts, "  "), core.ColorBrightCyan)
}

// fadeWarning is how long before expiry a timed effect starts blinking.
const fadeWarning = 1.5

// fading reports whether a timed effect about to run out is in the off
// phase of its blink.
func fading(w *World, kind PowerUpKind) bool {
	left := w.PowerUps.Effects.Remaining(kind)
	if left <= 0 || left > fadeWarning {
		return false
	}
	return int(left*6)%2 == 1
}

func renderWorld(dst *core.Screen, w *World) {
	v := newView(dst, w.Arena)

	for _, blk := range w.Blocks {
		if blk.Alive() {
			drawBlock(dst, v, blk)
		}
	}

	for _, d := range w.PowerUps.Drops {
		x, y := v.point(d.Pos)
		dst.SetColor(x, y, d.Kind.Glyph(), d.Kind.Color())
	}

	pr := v.rect(w.Paddle.Box())
	paddleColor := core.ColorBrightCyan
	if w.PowerUps.Effects.Has(PowerWide) && !fading(w, PowerWide) {
		paddleColor = core.ColorBrightGreen
	}
	dst.FillRect(core.NewRect(pr.X, pr.Y, pr.W, 1), glyphPaddle, paddleColor)

	ballColor := core.ColorBrightWhite
	switch {
	case w.PowerUps.Effects.Has(PowerFire) && !fading(w, PowerFire):
		ballColor = core.ColorOrange
	case w.PowerUps.Effects.Has(PowerSlow) && !fading(w, PowerSlow):
		ballColor = core.ColorBrightBlue
	}
	for _, b := range w.Balls {
		x, y := v.point(b.Pos)
		dst.SetColor(x, y, glyphBall, ballColor)
	}

	if p := w.Combo.Popup; p.Visible() {
		color := core.ColorBrightYellow
		if p.Alpha() < 0.5 {
			color = core.ColorGray
		}
		dst.DrawTextCenteredColor(hudRows, fmt.Sprintf("x%d  +%d", p.Multiplier, p.Points), color)
	}
}

func drawBlock(dst *core.Screen, v view, blk *Block) {
	r := v.rect(blk.Box)
	glyph := glyphSolid
	color := rowPalette[blk.Row%len(rowPalette)]
	switch blk.Kind {
	case BlockDurable:
		color = core.ColorMagenta
		if blk.HP < blk.MaxHP {
			glyph = glyphDamaged
		}
	case BlockSteel:
		glyph, color = glyphSteel, core.ColorGray
	case BlockExplosive:
		color = core.ColorRed
	}
	if blk.Flash > 0 {
		color = color.Brighten()
	}
	dst.FillRect(r, glyph, color)

	cx := r.X + r.W/2
	cy := r.Y + r.H/2
	switch blk.Kind {
	case BlockDurable:
		dst.SetColor(cx, cy, rune('0'+blk.HP), core.ColorBrightWhite)
	case BlockExplosive:
		dst.SetColor(cx, cy, '*', core.ColorBrightYellow)
	}
}

func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.mode {
	case ModePaused:
		drawCenteredBox(dst, core.ColorBrightWhite, "PAUSED", "P: resume   Esc: menu")
	case ModeGameOver:
		drawCenteredBox(dst, core.ColorBrightRed, "GAME OVER",
			fmt.Sprintf("Score: %d   Level: %d", g.session.Score, g.session.Level),
			"Enter: back to menu")
	case ModeLevelClear:
		s := g.session.LastLevel
		drawCenteredBox(dst, core.ColorBrightGreen,
			fmt.Sprintf("LEVEL %d CLEAR", g.session.Level),
			fmt.Sprintf("Blocks: %d   Best combo: %d", s.BlocksDestroyed, s.BestCombo),
			fmt.Sprintf("Level score: %d   Time: %.1fs", s.Score, s.Time),
			fmt.Sprintf("Total: %d", g.session.Score),
			"Enter: next level")
	case ModeTestPlay:
		dst.DrawTextCenteredColor(dst.Height()-1, "Esc: back to editor", core.ColorGray)
	}
}

var title = []string{
	"█▀▄ █   █▀█ █▀▀ █▄▀",
	"█▀▄ █   █ █ █   █▀▄",
	"▀▀  ▀▀▀ ▀▀▀ ▀▀▀ ▀ ▀",
	"",
	"B R E A K E R",
}

func (g *Game) renderMenu(dst *core.Screen) {
	y := dst.Height()/2 - len(title) - 2
	for i, line := range title {
		dst.DrawTextCenteredColor(y+i, line, rowPalette[i%len(rowPalette)])
	}
	y += len(title) + 2
	dst.DrawTextCentered(y, "Enter  play")
	dst.DrawTextCentered(y+1, "E      stage editor")
	dst.DrawTextCentered(y+2, "Q      quit")
	dst.DrawTextCenteredColor(dst.Height()-2, "←/→ or mouse: move paddle   P: pause", core.ColorGray)
}

const editorCellW = 4

func (g *Game) renderEditor(dst *core.Screen) {
	e := g.editor
	dst.DrawTextCenteredColor(0, "STAGE EDITOR", core.ColorBrightYellow)

	gridW := StageCols*editorCellW + 2
	gridH := StageRows + 2
	ox := (dst.Width() - gridW) / 2
	oy := 2
	dst.DrawBoxColor(core.NewRect(ox, oy, gridW, gridH), core.ColorGray)

	for r := 0; r < StageRows; r++ {
		for c := 0; c < StageCols; c++ {
			cell := e.Stage.At(r, c)
			x := ox + 1 + c*editorCellW
			y := oy + 1 + r
			if cell == CellEmpty {
				dst.SetColor(x+1, y, '·', core.ColorGray)
			} else {
				for i := 0; i < editorCellW-1; i++ {
					dst.SetColor(x+i, y, cell.Glyph(), cell.Color())
				}
			}
			if r == e.Row && c == e.Col {
				dst.SetColor(x-1+editorCellW, y, '◂', core.ColorBrightWhite)
			}
		}
	}

	y := oy + gridH + 1
	dst.DrawText(ox, y, fmt.Sprintf("Tool: %s (%c)", e.Tool, e.Tool.Cell().Glyph()))
	dst.DrawText(ox, y+1, fmt.Sprintf("Blocks: %d", e.Stage.Count()))
	if e.Status != "" {
		dst.DrawTextColor(ox, y+2, e.Status, core.ColorBrightGreen)
	}
	if e.LastCode != "" {
		dst.DrawTextColor(0, y+4, "Code: "+e.LastCode, core.ColorBrightCyan)
	}

	help := []string{
		"arrows: move  Enter: paint  x: erase  Tab: tool",
		"c: share code  t: test play  Ctrl+X: clear  Esc: menu",
	}
	for i, line := range help {
		dst.DrawTextCenteredColor(dst.Height()-len(help)+i, line, core.ColorGray)
	}
}

// drawCenteredBox draws a bordered message box in the middle of the screen.
func drawCenteredBox(dst *core.Screen, color core.Color, titleText string, lines ...string) {
	width := len([]rune(titleText))
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	boxW := width + 4
	boxH := len(lines) + 4
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBoxColor(box, color)
	dst.DrawTextCenteredColor(box.Y+1, titleText, color)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+3+i, l)
	}
}

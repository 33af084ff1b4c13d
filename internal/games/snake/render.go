package snake

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// hudHeight is the number of screen rows above the board.
const hudHeight = 2

// cellCols is how many terminal columns one board cell takes.
// Terminal glyphs are about twice as tall as wide.
const cellCols = 2

// HUD carries the values drawn around the board that do not come from the
// simulation snapshot.
type HUD struct {
	Elapsed string // MM:SS
	Help    string // Optional key hint line at the bottom
}

// RequiredSize returns the smallest screen that fits the board and HUD.
// The help line below the board is dropped when it does not fit.
func RequiredSize(b core.Bounds) (w, h int) {
	return b.W*cellCols + 2, b.H + 2 + hudHeight
}

// Render draws a snapshot to the screen.
func Render(dst *core.Screen, snap Snapshot, hud HUD) {
	dst.Clear()
	renderHUD(dst, snap, hud)

	needW, needH := RequiredSize(snap.Bounds)
	if dst.Width() < needW || dst.Height() < needH {
		renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", needW, needH))
		return
	}

	boardW := snap.Bounds.W*cellCols + 2
	box := core.NewRect((dst.Width()-boardW)/2, hudHeight, boardW, snap.Bounds.H+2)
	dst.DrawBox(box, core.ColorBorder)

	// Board origin inside the border
	ox, oy := box.X+1, box.Y+1

	if snap.State != StateIdle {
		renderParticles(dst, snap, ox, oy)
		renderFood(dst, snap, ox, oy)
		renderSnake(dst, snap, ox, oy)
	}

	if hud.Help != "" {
		dst.DrawTextCentered(box.Bottom(), hud.Help, core.ColorHUD)
	}

	switch snap.State {
	case StateIdle:
		renderOverlay(dst, "S N A K E", "Press Enter to start")
	case StateOver:
		renderOverlay(dst, "Game Over!",
			fmt.Sprintf("Final Score: %d  Time: %s", snap.Score, hud.Elapsed),
			"Press Enter to play again")
	}
}

// renderHUD draws the top status bar.
func renderHUD(dst *core.Screen, snap Snapshot, hud HUD) {
	elapsed := hud.Elapsed
	if elapsed == "" {
		elapsed = FormatElapsed(0)
	}
	line := fmt.Sprintf(" Snake — Score: %d  Best: %d  Speed: %dms  Time: %s",
		snap.Score, snap.HighScore, snap.Interval.Milliseconds(), elapsed)
	dst.DrawTextColored(0, 0, line, core.ColorHUD)

	for x := range dst.Width() {
		dst.SetColored(x, 1, '─', core.ColorBorder)
	}
}

func renderSnake(dst *core.Screen, snap Snapshot, ox, oy int) {
	// Draw tail first so the head wins if anything overlaps
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		seg := snap.Snake[i]
		r, color := '▓', core.ColorSnakeBody
		if i == 0 {
			r, color = '█', core.ColorSnakeHead
		}
		setCell(dst, ox, oy, seg, r, r, color)
	}
}

func renderFood(dst *core.Screen, snap Snapshot, ox, oy int) {
	// Pulse between a plain and a glowing glyph
	if math.Sin(snap.FoodPulse) > 0.5 {
		setCell(dst, ox, oy, snap.Food, '◉', ' ', core.ColorFoodGlow)
		return
	}
	setCell(dst, ox, oy, snap.Food, '●', ' ', core.ColorFood)
}

func renderParticles(dst *core.Screen, snap Snapshot, ox, oy int) {
	for _, p := range snap.Particles {
		c := snap.Grid.PixelToCell(p.X, p.Y)
		if !snap.Bounds.Contains(c) {
			continue
		}
		color := core.ColorParticle
		if p.Alpha < 0.5 {
			color = core.ColorParticleFaint
		}
		dst.SetColored(ox+c.X*cellCols, oy+c.Y, '·', color)
	}
}

// setCell draws one board cell as two terminal columns.
func setCell(dst *core.Screen, ox, oy int, c core.Cell, left, right rune, color core.Color) {
	x := ox + c.X*cellCols
	dst.SetColored(x, oy+c.Y, left, color)
	dst.SetColored(x+1, oy+c.Y, right, color)
}

// renderOverlay draws a centered box with one or more lines of text.
func renderOverlay(dst *core.Screen, lines ...string) {
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len([]rune(l)))
	}
	boxW := maxLen + 4
	boxH := len(lines)*2 + 1
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorOverlay)
	dst.DrawBox(box, core.ColorOverlay)

	for i, l := range lines {
		color := core.ColorOverlay
		if i == 0 {
			color = core.ColorAlert
		}
		dst.DrawTextCentered(box.Y+1+i*2, l, color)
	}
}

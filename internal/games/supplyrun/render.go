package supplyrun

import (
	"fmt"
	"math"

	"github.com/vovakirdan/supplyrun/internal/anim"
	"github.com/vovakirdan/supplyrun/internal/collision"
	"github.com/vovakirdan/supplyrun/internal/core"
)

// Visual characters for rendering
const (
	RunnerHead   = '◆'
	RunnerBody   = '█'
	RunnerLeg1   = '╱'
	RunnerLeg2   = '╲'
	ObstacleChar = '▓'
	SupplyChar   = '●'
	GroundChar   = '═'
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.sched == nil || dst.Width() == 0 || dst.Height() == 0 {
		return
	}

	f := g.Frame()
	groundY := g.groundY(dst)

	dst.DrawHLine(0, groundY, dst.Width(), GroundChar, core.ColorGray)

	if f.SupplyVisible && !f.GameOver {
		g.drawSupply(dst, groundY, f.Supply)
	}
	g.drawObstacle(dst, groundY, f.Obstacle)
	g.drawRunner(dst, groundY, f)

	// HUD
	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", f.Score), core.ColorBrightYellow)
	label := g.title
	if g.mode == collision.SamplingPass {
		label += " · pass sampling"
	}
	label = " " + label + " "
	dst.DrawTextColored(dst.Width()-len([]rune(label))-2, 0, label, core.ColorCyan)

	if f.Paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if f.GameOver {
		g.drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Your score is %d", f.Score),
			"Press R to restart",
		)
	}
}

// groundY returns the row of the ground line.
func (g *Game) groundY(dst *core.Screen) int {
	return core.Clamp(dst.Height()-g.cfg.World.GroundOffset, 1, dst.Height()-1)
}

// column maps a world x offset onto a screen column.
func (g *Game) column(x float64, width int) int {
	w := g.cfg.World
	return int(math.Floor((x - w.ViewLeft) / (w.Width - w.ViewLeft) * float64(width)))
}

// spanCols returns how many columns an entity of the configured size covers.
func (g *Game) spanCols(width int) int {
	w := g.cfg.World
	return core.Max(2, int(math.Round(w.EntitySize/(w.Width-w.ViewLeft)*float64(width))))
}

// rows converts a vertical distance in world units into screen rows.
func (g *Game) rows(units float64) int {
	if g.cfg.Jump.Peak == 0 {
		return 0
	}
	return int(math.Round(units / math.Abs(g.cfg.Jump.Peak) * float64(g.cfg.Jump.Rows)))
}

// drawRunner renders the runner, two rows tall, lifted by the jump offset.
func (g *Game) drawRunner(dst *core.Screen, groundY int, f Frame) {
	x := g.column(g.cfg.Collision.BandMin, dst.Width())
	w := g.spanCols(dst.Width())
	feetY := groundY - 1 - g.rows(-f.Jump)
	color := core.ColorYellow
	if f.GameOver {
		color = core.ColorRed
	}

	// Head row
	for dx := 0; dx < w; dx++ {
		dst.SetColored(x+dx, feetY-1, RunnerBody, color)
	}
	dst.SetColored(x+w-1, feetY-1, RunnerHead, color)

	// Legs: stride while grounded, tucked while airborne
	for dx := 0; dx < w; dx++ {
		r := ' '
		switch {
		case f.Phase != anim.JumpIdle:
			if dx%2 == 0 {
				r = RunnerLeg2
			}
		case (g.frames/5)%2 == 0:
			if dx == 0 {
				r = RunnerLeg1
			} else if dx == w-1 {
				r = RunnerLeg2
			}
		default:
			if dx == w/2 {
				r = RunnerLeg1
			} else if dx == w/2+1 {
				r = RunnerLeg2
			}
		}
		dst.SetColored(x+dx, feetY, r, color)
	}
}

// drawObstacle renders the obstacle as a two-row block sitting on the ground.
func (g *Game) drawObstacle(dst *core.Screen, groundY int, offset float64) {
	x := g.column(offset, dst.Width())
	w := g.spanCols(dst.Width())
	for dy := 1; dy <= 2; dy++ {
		for dx := 0; dx < w; dx++ {
			dst.SetColored(x+dx, groundY-dy, ObstacleChar, core.ColorBrown)
		}
	}
}

// drawSupply renders the supply item at its elevation.
func (g *Game) drawSupply(dst *core.Screen, groundY int, offset float64) {
	x := g.column(offset, dst.Width())
	w := g.spanCols(dst.Width())
	y := groundY - 1 - g.rows(g.cfg.Supply.Elevation)
	dst.SetColored(x+w/2, y, SupplyChar, core.ColorGreen)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title string, lines ...string) {
	w := dst.Width()
	h := dst.Height()

	boxW := len([]rune(title))
	for _, l := range lines {
		boxW = core.Max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := 4 + len(lines)
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextColored(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorBrightYellow)
	for i, l := range lines {
		dst.DrawText(boxX+(boxW-len([]rune(l)))/2, boxY+3+i, l)
	}
}

package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"rocketsim/game"
)

var (
	hudColor      = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
	cursorColor   = color.NRGBA{R: 255, G: 200, A: 255}
	bandColor     = color.NRGBA{R: 0, G: 160, B: 0, A: 200}
	thresholdClr  = color.NRGBA{R: 160, G: 160, B: 160, A: 120}
	gridColor     = color.NRGBA{R: 60, G: 60, B: 90, A: 255}
	windRoseColor = color.NRGBA{R: 120, G: 170, B: 255, A: 255}
)

const (
	lineHeight     = 16
	windRoseRadius = 30
)

// Overlay draws everything that is not an entity: menu, band, wind rose, HUD
// and the debug grid
func (s *Screen) Overlay(dst *ebiten.Image, sim *game.Simulation, fps float64) {
	s.dst = dst
	cfg := sim.Context().Config

	if sim.Debug().ShowGrid {
		drawGrid(dst, cfg.Bounds(), sim.Scene().GridCellSize())
	}
	if sim.Mode() == game.ModeMenu {
		s.drawMenu(sim, float64(cfg.ScreenWidth), float64(cfg.ScreenHeight))
		return
	}
	if sim.Mode() == game.ModeStatic {
		drawBand(dst, sim.Band(), sim.LaunchPoint(), float64(cfg.ScreenWidth))
	}

	cx, cy := float64(cfg.ScreenWidth)-2*windRoseRadius, 2*float64(windRoseRadius)
	drawWindRose(dst, sim.Context().Wind(), cfg.Wind.Max, cx, cy)
	r, deg := sim.Context().Wind().Polar()
	s.drawText(fmt.Sprintf("wind %3.0f px/s %3.0f deg", r, deg), cx-80, cy+windRoseRadius+6, windRoseColor, false)

	for i, line := range hudLines(sim, fps) {
		s.drawText(line, 8, float64(8+i*lineHeight), hudColor, false)
	}
}

func (s *Screen) drawMenu(sim *game.Simulation, w, h float64) {
	lines := menuLines(sim)
	y := h/2 - float64(len(lines)*lineHeight*2)/2
	for i, line := range lines {
		clr := hudColor
		if i == sim.Cursor() {
			clr = cursorColor
		}
		s.drawText(line, w/2, y+float64(i*lineHeight*2), clr, true)
	}
	s.drawText("Up/Down to choose, Enter to start, Esc to quit", w/2, h-40, hudColor, true)
}

// menuLines returns the menu entries with the cursor marked
func menuLines(sim *game.Simulation) []string {
	lines := make([]string, len(game.MenuItems))
	for i, item := range game.MenuItems {
		if i == sim.Cursor() {
			lines[i] = "> " + item + " <"
		} else {
			lines[i] = item
		}
	}
	return lines
}

// hudLines returns the status text shown in a scenario
func hudLines(sim *game.Simulation, fps float64) []string {
	st := sim.Stats()
	rec := "off"
	if sim.Context().Recording() {
		rec = "on"
	}
	lines := []string{
		fmt.Sprintf("%s  %.0f fps  %.0fs", sim.Mode(), fps, sim.Elapsed()),
		fmt.Sprintf("launched %d  hits %d  misses %d  discarded %d", st.Launched, st.Hits, st.Misses, st.Discarded),
		fmt.Sprintf("recording %s (%d rows)", rec, st.Recorded),
	}
	switch sim.Mode() {
	case game.ModeStatic:
		lines = append(lines, "Space salvo  A predicted hits  B predicted misses  T tumbling  L beam  R record  Esc menu")
	case game.ModeMoving:
		lines = append(lines, "Click fire at pointer  V fire at prediction  R record  Esc menu")
	}
	return lines
}

// drawBand marks the static-target band at the threshold line
func drawBand(dst *ebiten.Image, band game.TargetBand, launch game.Vector2, width float64) {
	x := float32(band.ThresholdX)
	vector.StrokeLine(dst, x, 0, x, float32(dst.Bounds().Dy()), 1, thresholdClr, false)
	vector.StrokeLine(dst, x, float32(band.Low), x, float32(band.High), 4, bandColor, false)
	for _, y := range []float64{band.Low, band.High} {
		vector.StrokeLine(dst, x-10, float32(y), float32(width), float32(y), 1, bandColor, false)
	}
	vector.DrawFilledCircle(dst, float32(launch.X), float32(launch.Y), 4, thresholdClr, true)
}

// drawWindRose draws a circle with a needle pointing downwind, scaled by the
// wind strength relative to maxWind
func drawWindRose(dst *ebiten.Image, wind game.Vector2, maxWind, cx, cy float64) {
	vector.StrokeCircle(dst, float32(cx), float32(cy), windRoseRadius, 1, windRoseColor, true)
	tx, ty := windTip(wind, maxWind, cx, cy, windRoseRadius)
	vector.StrokeLine(dst, float32(cx), float32(cy), float32(tx), float32(ty), 2, windRoseColor, true)
	vector.DrawFilledCircle(dst, float32(tx), float32(ty), 3, windRoseColor, true)
}

// windTip returns the needle end of the wind rose
func windTip(wind game.Vector2, maxWind, cx, cy, radius float64) (float64, float64) {
	if maxWind <= 0 {
		return cx, cy
	}
	scale := math.Min(wind.Length()/maxWind, 1) * radius
	d := wind.Normalize().Scale(scale)
	return cx + d.X, cy + d.Y
}

func drawGrid(dst *ebiten.Image, bounds game.Rect, cell float64) {
	if cell <= 0 {
		return
	}
	for x := bounds.Left(); x <= bounds.Right(); x += cell {
		vector.StrokeLine(dst, float32(x), float32(bounds.Top()), float32(x), float32(bounds.Bottom()), 1, gridColor, false)
	}
	for y := bounds.Top(); y <= bounds.Bottom(); y += cell {
		vector.StrokeLine(dst, float32(bounds.Left()), float32(y), float32(bounds.Right()), float32(y), 1, gridColor, false)
	}
}

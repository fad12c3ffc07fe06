// Package termview draws a simulation into a terminal with tcell and turns
// terminal input into simulation events
package termview

import (
	"fmt"
	"image"
	"math"

	"github.com/gdamore/tcell/v2"

	"rocketsim/game"
)

// hudRows are the terminal rows below the play area used for status text
const hudRows = 2

var (
	styleDefault = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleHUD     = styleDefault.Foreground(tcell.ColorSilver)
	styleCursor  = styleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleBand    = styleDefault.Foreground(tcell.ColorGreen)
	styleGrid    = styleDefault.Foreground(tcell.ColorDarkSlateGray)
)

// arrows index by heading in 45 degree steps, clockwise from east
var arrows = []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// View is a game.DrawSink scaling the play area onto a tcell screen
type View struct {
	screen tcell.Screen
	world  game.Rect
	cols   int
	rows   int

	buttons tcell.ButtonMask
}

// New creates a view of world on screen
func New(screen tcell.Screen, world game.Rect) *View {
	v := &View{screen: screen, world: world}
	v.Resize()
	return v
}

// Resize picks up the current terminal size
func (v *View) Resize() {
	w, h := v.screen.Size()
	v.cols = max(w, 1)
	v.rows = max(h-hudRows, 1)
}

// Cell maps a world position to a terminal cell
func (v *View) Cell(x, y float64) (int, int) {
	col := int(math.Floor((x - v.world.X) / v.world.Width * float64(v.cols)))
	row := int(math.Floor((y - v.world.Y) / v.world.Height * float64(v.rows)))
	return col, row
}

// World maps the centre of a terminal cell back to a world position
func (v *View) World(col, row int) game.Vector2 {
	return game.Vec(
		v.world.X+(float64(col)+0.5)*v.world.Width/float64(v.cols),
		v.world.Y+(float64(row)+0.5)*v.world.Height/float64(v.rows),
	)
}

func (v *View) inside(col, row int) bool {
	return col >= 0 && col < v.cols && row >= 0 && row < v.rows
}

func (v *View) set(col, row int, r rune, style tcell.Style) {
	if v.inside(col, row) {
		v.screen.SetContent(col, row, r, nil, style)
	}
}

func (v *View) print(col, row int, s string, style tcell.Style) {
	for _, r := range s {
		if col >= 0 && col < v.cols && row >= 0 && row < v.rows+hudRows {
			v.screen.SetContent(col, row, r, nil, style)
		}
		col++
	}
}

// Begin clears the screen for a new frame
func (v *View) Begin() {
	v.screen.Clear()
	v.screen.Fill(' ', styleDefault)
}

// Show flushes the frame to the terminal
func (v *View) Show() { v.screen.Show() }

// DrawSprite draws one entity frame as terminal cells
func (v *View) DrawSprite(sp game.Sprite, pos image.Point) {
	col, row := v.Cell(float64(pos.X), float64(pos.Y))
	style := styleDefault.Foreground(spriteColor(sp))

	switch sp.Kind {
	case game.KindRocket:
		v.set(col, row, Arrow(sp.Angle), style)
	case game.KindBeam:
		v.set(col, row, '•', style)
	case game.KindSmoke:
		if sp.Alpha > 0 {
			v.set(col, row, '░', style)
		}
	case game.KindSpark:
		v.set(col, row, '*', style)
	case game.KindTarget:
		c0, r0 := v.Cell(float64(pos.X)-sp.Width/2, float64(pos.Y)-sp.Height/2)
		c1, r1 := v.Cell(float64(pos.X)+sp.Width/2, float64(pos.Y)+sp.Height/2)
		for r := r0; r <= r1; r++ {
			for c := c0; c <= c1; c++ {
				v.set(c, r, '█', style)
			}
		}
	case game.KindCrosshair:
		v.set(col, row, '+', style.Bold(true))
	case game.KindPredictedCrosshair:
		v.set(col, row, '⊕', style.Bold(true))
	case game.KindText:
		v.print(col-len([]rune(sp.Text))/2, row, sp.Text, style.Bold(true))
	}
}

// Overlay draws the menu, the band, the grid and the status rows
func (v *View) Overlay(sim *game.Simulation) {
	if sim.Debug().ShowGrid {
		v.drawGrid(sim.Scene().GridCellSize())
	}
	if sim.Mode() == game.ModeMenu {
		v.drawMenu(sim)
		return
	}
	if sim.Mode() == game.ModeStatic {
		band := sim.Band()
		col, low := v.Cell(band.ThresholdX, band.Low)
		_, high := v.Cell(band.ThresholdX, band.High)
		for r := low; r <= high; r++ {
			v.set(col, r, '│', styleBand)
		}
	}

	st := sim.Stats()
	r, deg := sim.Context().Wind().Polar()
	rec := "off"
	if sim.Context().Recording() {
		rec = "on"
	}
	v.print(0, v.rows, fmt.Sprintf("%s  launched %d hits %d misses %d discarded %d  rec %s  wind %.0f@%.0f",
		sim.Mode(), st.Launched, st.Hits, st.Misses, st.Discarded, rec, r, deg), styleHUD)
	help := "space salvo  a/b hits/misses  t tumble  l beam  r record  esc menu"
	if sim.Mode() == game.ModeMoving {
		help = "click fire  v fire at prediction  r record  esc menu"
	}
	v.print(0, v.rows+1, help, styleHUD)
}

func (v *View) drawMenu(sim *game.Simulation) {
	top := v.rows/2 - len(game.MenuItems)
	for i, item := range game.MenuItems {
		style := styleHUD
		if i == sim.Cursor() {
			item = "> " + item + " <"
			style = styleCursor
		}
		v.print(v.cols/2-len(item)/2, top+2*i, item, style)
	}
	v.print(0, v.rows+1, "up/down choose  enter start  esc quit", styleHUD)
}

func (v *View) drawGrid(cell float64) {
	if cell <= 0 {
		return
	}
	for x := v.world.Left(); x < v.world.Right(); x += cell {
		col, _ := v.Cell(x, 0)
		for r := 0; r < v.rows; r++ {
			v.set(col, r, '┊', styleGrid)
		}
	}
}

// Arrow returns the arrow rune closest to a heading in degrees
func Arrow(degrees float64) rune {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	return arrows[int(math.Round(d/45))%len(arrows)]
}

// spriteColor scales the sprite colour by its fade alpha toward black
func spriteColor(sp game.Sprite) tcell.Color {
	k := float64(sp.Alpha) / 255
	return tcell.NewRGBColor(
		int32(float64(sp.Color.R)*k),
		int32(float64(sp.Color.G)*k),
		int32(float64(sp.Color.B)*k),
	)
}

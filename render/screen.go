// Package render draws a simulation into an ebiten image
package render

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"rocketsim/game"
)

// shapeColor outlines collision shapes in the debug overlay
var shapeColor = color.NRGBA{R: 0, G: 255, B: 255, A: 160}

// Screen is a game.DrawSink targeting one ebiten image per frame
type Screen struct {
	dst   *ebiten.Image
	atlas *Atlas
	face  text.Face

	// ShowShapes outlines every sprite's collision shape and prints its id
	ShowShapes bool
}

// NewScreen creates a sink drawing with atlas sprites and the basic bitmap font
func NewScreen(atlas *Atlas) *Screen {
	return &Screen{
		atlas: atlas,
		face:  text.NewGoXFace(basicfont.Face7x13),
	}
}

// Face returns the font used for captions and the HUD
func (s *Screen) Face() text.Face { return s.face }

// Begin sets the image the following DrawSprite calls paint on
func (s *Screen) Begin(dst *ebiten.Image) { s.dst = dst }

// DrawSprite draws one entity frame centred on pos
func (s *Screen) DrawSprite(sp game.Sprite, pos image.Point) {
	if s.dst == nil {
		return
	}
	x, y := float32(pos.X), float32(pos.Y)
	clr := tint(sp)

	switch sp.Kind {
	case game.KindRocket:
		s.drawImage(s.atlas.Rocket, sp, pos)
	case game.KindBeam:
		x0, y0, x1, y1 := beamEnds(pos, sp.Angle, sp.Width)
		vector.StrokeLine(s.dst, x0, y0, x1, y1, float32(max(sp.Height, 1)), clr, true)
	case game.KindSmoke:
		if sp.Radius > 0 {
			vector.DrawFilledCircle(s.dst, x, y, float32(sp.Radius), clr, true)
		}
	case game.KindSpark:
		vector.DrawFilledRect(s.dst, x-1, y-1, 2, 2, clr, false)
	case game.KindTarget:
		s.drawImage(s.atlas.Target, sp, pos)
	case game.KindCrosshair, game.KindPredictedCrosshair:
		r := float32(sp.Radius)
		vector.StrokeCircle(s.dst, x, y, r, 2, clr, true)
		vector.StrokeLine(s.dst, x-r-5, y, x+r+5, y, 1, clr, true)
		vector.StrokeLine(s.dst, x, y-r-5, x, y+r+5, 1, clr, true)
	case game.KindText:
		s.drawText(sp.Text, float64(pos.X), float64(pos.Y), clr, true)
	}

	if s.ShowShapes {
		s.drawShape(sp, pos)
	}
}

func (s *Screen) drawImage(img *ebiten.Image, sp game.Sprite, pos image.Point) {
	if img == nil {
		return
	}
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	sw, sh := sp.Width, sp.Height
	if sw <= 0 || sh <= 0 {
		sw, sh = 2*sp.Radius, 2*sp.Radius
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Scale(sw/w, sh/h)
	op.GeoM.Rotate(sp.Angle * math.Pi / 180)
	op.GeoM.Translate(float64(pos.X), float64(pos.Y))
	op.ColorScale.ScaleWithColor(tint(sp))
	op.Filter = ebiten.FilterLinear
	s.dst.DrawImage(img, op)
}

func (s *Screen) drawText(str string, x, y float64, clr color.Color, centred bool) {
	op := &text.DrawOptions{}
	if centred {
		w, h := text.Measure(str, s.face, 0)
		x -= w / 2
		y -= h / 2
	}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(s.dst, str, s.face, op)
}

func (s *Screen) drawShape(sp game.Sprite, pos image.Point) {
	x, y := float32(pos.X), float32(pos.Y)
	if sp.Width > 0 && sp.Height > 0 {
		w, h := float32(sp.Width), float32(sp.Height)
		vector.StrokeRect(s.dst, x-w/2, y-h/2, w, h, 1, shapeColor, false)
	} else if sp.Radius > 0 {
		vector.StrokeCircle(s.dst, x, y, float32(sp.Radius), 1, shapeColor, false)
	}
	if sp.Kind != game.KindSmoke && sp.Kind != game.KindSpark {
		s.drawText(strconv.FormatUint(sp.ID, 10), float64(pos.X)+6, float64(pos.Y)+6, shapeColor, false)
	}
}

// tint combines the sprite colour with its fade alpha
func tint(sp game.Sprite) color.NRGBA {
	a := uint16(sp.Color.A) * uint16(sp.Alpha) / 255
	return color.NRGBA{R: sp.Color.R, G: sp.Color.G, B: sp.Color.B, A: uint8(a)}
}

// beamEnds returns the end points of a segment of the given length centred on
// pos and pointing along angle (degrees)
func beamEnds(pos image.Point, angle, length float64) (x0, y0, x1, y1 float32) {
	half := game.FromPolar(length/2, angle)
	cx, cy := float64(pos.X), float64(pos.Y)
	return float32(cx - half.X), float32(cy - half.Y), float32(cx + half.X), float32(cy + half.Y)
}

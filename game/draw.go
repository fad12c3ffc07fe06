package game

import (
	"image"
	"image/color"
)

// Kind selects how an entity looks. Behaviour is carried separately.
type Kind int

const (
	KindBeam Kind = iota
	KindRocket
	KindSmoke
	KindSpark
	KindTarget
	KindCrosshair
	KindPredictedCrosshair
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindBeam:
		return "beam"
	case KindRocket:
		return "rocket"
	case KindSmoke:
		return "smoke"
	case KindSpark:
		return "spark"
	case KindTarget:
		return "target"
	case KindCrosshair:
		return "crosshair"
	case KindPredictedCrosshair:
		return "predicted-crosshair"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Sprite is the visual frame of an entity, enough for a back-end to draw it
type Sprite struct {
	ID     uint64
	Kind   Kind
	Layer  int
	Angle  float64 // degrees, clockwise on screen
	Radius float64
	Width  float64
	Height float64
	Color  color.RGBA
	Alpha  uint8
	Text   string
}

// DrawSink draws a sprite centred on pos. The core never composes pixels itself.
type DrawSink interface {
	DrawSprite(s Sprite, pos image.Point)
}

// Sprite returns the current visual frame of the entity
func (e *Entity) Sprite() Sprite {
	a := e.Alpha
	if a < 0 {
		a = 0
	} else if a > 255 {
		a = 255
	}
	return Sprite{
		ID:     e.ID,
		Kind:   e.Kind,
		Layer:  e.layer,
		Angle:  e.Angle,
		Radius: e.Radius,
		Width:  e.Width,
		Height: e.Height,
		Color:  e.Color,
		Alpha:  uint8(a),
		Text:   e.Text,
	}
}

// DrawPos is the entity position rounded to whole pixels at the end of its last update
func (e *Entity) DrawPos() image.Point {
	return image.Pt(e.drawX, e.drawY)
}

package game

import "image/color"

var (
	targetColor    = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	crosshairColor = color.RGBA{R: 200, A: 255}
	predictedColor = color.RGBA{G: 255, A: 255}
	missColor      = color.RGBA{R: 255, A: 255}
)

// NewTarget creates a passive square target bouncing off every edge
func NewTarget(ctx *Context, pos, vel Vector2, size float64) *Entity {
	return NewEntity(ctx, EntityConfig{
		Kind:     KindTarget,
		Pos:      pos,
		Vel:      vel,
		Boundary: BoundaryBounce,
		Width:    size,
		Height:   size,
		Color:    targetColor,
	})
}

// NewCrosshair creates a marker that follows the pointer
func NewCrosshair(ctx *Context, at Vector2) *Entity {
	return NewEntity(ctx, EntityConfig{
		Kind:     KindCrosshair,
		Pos:      at,
		Radius:   35,
		Color:    crosshairColor,
		Behavior: &Pointer{At: at},
	})
}

// NewPredictedCrosshair creates a marker placed each frame at the predicted
// interception point of target on the vertical line x = axisX
func NewPredictedCrosshair(ctx *Context, p Predictor, target *Entity, axisX, observerSpeed, targetSpeed float64) *Entity {
	return NewEntity(ctx, EntityConfig{
		Kind:   KindPredictedCrosshair,
		Pos:    Vec(axisX, target.Pos.Y),
		Radius: 35,
		Color:  predictedColor,
		Behavior: &Prediction{
			Predictor:     p,
			Target:        target.Handle(),
			ObserverSpeed: observerSpeed,
			TargetSpeed:   targetSpeed,
			AxisX:         axisX,
		},
	})
}

// SpawnCaption adds a short-lived text rising from pos
func SpawnCaption(s *Scene, pos Vector2, text string, c color.RGBA) *Entity {
	e := NewEntity(s.ctx, EntityConfig{
		Kind:   KindText,
		Pos:    pos,
		Vel:    Vec(0, -50),
		MaxAge: 0.5,
		Color:  c,
		Text:   text,
		Behavior: &Caption{
			Acceleration: 1.0,
			AlphaStart:   255,
			AlphaEnd:     64,
		},
	})
	return s.Add(e, LayerText)
}

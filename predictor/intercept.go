package predictor

import (
	"math"

	"rocketsim/game"
)

// Intercept is the analytic aim predictor. It solves for the point on the
// vertical line x = AxisX where a shot fired from Origin meets a target moving
// straight up or down, and folds the answer into [Low, High] the way the target
// bounces off the screen edges.
type Intercept struct {
	Origin game.Vector2
	AxisX  float64
	Low    float64
	High   float64
}

// NewIntercept creates the aim predictor for the moving-target scenario of cfg
func NewIntercept(cfg game.Config) *Intercept {
	b := cfg.Bounds()
	return &Intercept{
		Origin: cfg.Scenario.Launch(),
		AxisX:  cfg.Scenario.ThresholdX,
		Low:    b.Top(),
		High:   b.Bottom(),
	}
}

// Predict takes [targetSpeed, projectileSpeed, targetY, direction] and returns the aim y
func (p *Intercept) Predict(features []float64) float64 {
	if len(features) < 4 {
		return math.NaN()
	}
	speed, shot, y := features[0], features[1], features[2]
	vy := -speed
	if features[3] == 1 {
		vy = speed
	}

	aim := game.PredictiveAim(p.Origin, game.Vec(p.AxisX, y), game.Vec(0, vy), shot)
	return game.FoldInto(aim.Y, p.Low, p.High)
}

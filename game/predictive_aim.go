package game

import "math"

//go:generate go tool mockgen -destination=./mocks/predictor_mock.go -package=mocks . Predictor

// Predictor maps observed features to a single value. Implementations are
// external; their output is used as is.
type Predictor interface {
	Predict(features []float64) float64
}

// PredictorFunc adapts a plain function to Predictor
type PredictorFunc func(features []float64) float64

// Predict calls f(features)
func (f PredictorFunc) Predict(features []float64) float64 { return f(features) }

// TargetingSample is what the aim predictor observes about a moving target in one frame
type TargetingSample struct {
	TargetPos       Vector2
	TargetDirection int // 1 when the target moves down the screen
	ObserverSpeed   float64
	TargetSpeed     float64
}

// Features returns [targetSpeed, observerSpeed, targetY, direction] with the
// speeds rounded and the y position truncated to whole pixels
func (s TargetingSample) Features() []float64 {
	return []float64{
		math.Round(s.TargetSpeed),
		math.Round(s.ObserverSpeed),
		math.Trunc(s.TargetPos.Y),
		float64(s.TargetDirection),
	}
}

// PredictiveAim calculates the predicted target position accounting for target velocity and projectile speed
// Returns the position where the shooter should aim
func PredictiveAim(shooter, target, targetVel Vector2, projectileSpeed float64) Vector2 {
	// If target is not moving, just return current position
	if math.Abs(targetVel.X) < 0.1 && math.Abs(targetVel.Y) < 0.1 {
		return target
	}

	distance := target.Distance(shooter)
	if distance < 1.0 || projectileSpeed <= 0 {
		return target
	}

	// Find time t such that:
	// distance(shooter, target + targetVel * t) = projectileSpeed * t
	// starting from the time to reach the current target position
	t := distance / projectileSpeed
	for i := 0; i < 8; i++ {
		predicted := target.Add(targetVel.Scale(t))
		newT := predicted.Distance(shooter) / projectileSpeed
		if math.Abs(newT-t) < 0.001 {
			t = newT
			break
		}
		t = newT
	}

	return target.Add(targetVel.Scale(t))
}

// FoldInto reflects v back into [lo, hi] the way a bouncing target travels
func FoldInto(v, lo, hi float64) float64 {
	span := hi - lo
	if span <= 0 {
		return lo
	}
	d := math.Mod(v-lo, 2*span)
	if d < 0 {
		d += 2 * span
	}
	if d > span {
		d = 2*span - d
	}
	return lo + d
}

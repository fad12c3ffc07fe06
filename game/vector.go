package game

import "math"

// Vector2 is a 2D vector in screen space (y grows downwards).
// Angles are in degrees, matching Entity.Angle.
type Vector2 struct {
	X float64
	Y float64
}

// Vec is shorthand for Vector2{X: x, Y: y}.
func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add returns the sum of two vectors
func (v Vector2) Add(other Vector2) Vector2 {
	return Vector2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference between two vectors
func (v Vector2) Sub(other Vector2) Vector2 {
	return Vector2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Scale multiplies the vector by a scalar value
func (v Vector2) Scale(factor float64) Vector2 {
	return Vector2{X: v.X * factor, Y: v.Y * factor}
}

// Length returns the magnitude of the vector
func (v Vector2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// LengthSquared returns magnitude squared (for comparisons)
func (v Vector2) LengthSquared() float64 {
	return v.Dot(v)
}

// Normalize returns a unit vector in the same direction.
// The zero vector is returned unchanged.
func (v Vector2) Normalize() Vector2 {
	length := v.Length()
	if length == 0 {
		return v
	}
	return Vector2{X: v.X / length, Y: v.Y / length}
}

// Rotate rotates the vector by the given angle in degrees
func (v Vector2) Rotate(degrees float64) Vector2 {
	rad := degrees * math.Pi / 180
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	return Vector2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Angle returns the direction of the vector in degrees, in (-180, 180]
func (v Vector2) Angle() float64 {
	return math.Atan2(v.Y, v.X) * 180 / math.Pi
}

// AngleTo returns the signed angle in degrees needed to rotate v onto other.
// The result is in (-180, 180].
func (v Vector2) AngleTo(other Vector2) float64 {
	return wrapSigned(other.Angle() - v.Angle())
}

// Dot returns the dot product of two vectors
func (v Vector2) Dot(other Vector2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Distance returns the distance between two points
func (v Vector2) Distance(other Vector2) float64 {
	return v.Sub(other).Length()
}

// Polar returns the length and direction (degrees, [0,360)) of the vector
func (v Vector2) Polar() (radius, degrees float64) {
	return v.Length(), wrapDegrees(v.Angle())
}

// FromPolar creates a vector from a length and a direction in degrees
func FromPolar(radius, degrees float64) Vector2 {
	return Vector2{X: radius, Y: 0}.Rotate(degrees)
}

// Round returns the vector rounded to the nearest integer pixel
func (v Vector2) Round() (int, int) {
	return int(math.Round(v.X)), int(math.Round(v.Y))
}

// wrapDegrees maps any angle into [0, 360)
func wrapDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}

// wrapSigned maps any angle into (-180, 180]
func wrapSigned(a float64) float64 {
	a = wrapDegrees(a)
	if a > 180 {
		a -= 360
	}
	return a
}

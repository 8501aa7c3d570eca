// Package angular provides the angle math used to orient the globe.
package angular

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Angles is a globe orientation expressed as two rotations in radians.
// X is the rotation about the tilted axis (latitude-like), Y the rotation
// about the vertical axis (longitude-like).
type Angles struct {
	X, Y float64
}

// TiltAxis is the fixed axis X rotations are applied about.
var TiltAxis = mgl32.Vec3{1, 0, -0.8}.Normalize()

// UpAxis is the vertical axis Y rotations are applied about.
var UpAxis = mgl32.Vec3{0, 1, 0}

// GreatCircleDistance returns the haversine central angle between a and b,
// treating X as latitude and Y as longitude. The result is in [0, π].
// Angles are not normalized modulo 2π.
func GreatCircleDistance(a, b Angles) float64 {
	// Evaluate in a canonical order so the result is bit-for-bit symmetric.
	if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
		a, b = b, a
	}
	return latLng(a).Distance(latLng(b)).Radians()
}

func latLng(a Angles) s2.LatLng {
	return s2.LatLng{Lat: s1.Angle(a.X) * s1.Radian, Lng: s1.Angle(a.Y) * s1.Radian}
}

// Compose builds the rotation for an orientation: x radians about TiltAxis
// composed with y radians about UpAxis.
func Compose(a Angles) mgl32.Quat {
	tilt := mgl32.QuatRotate(float32(a.X), TiltAxis)
	spin := mgl32.QuatRotate(float32(a.Y), UpAxis)
	return tilt.Mul(spin).Normalize()
}

// Blend moves from toward to along the shortest arc, closing the fraction t
// of the remaining angular gap.
func Blend(from, to mgl32.Quat, t float64) mgl32.Quat {
	if t <= 0 {
		return from
	}
	if t >= 1 {
		return to
	}
	if from.Dot(to) < 0 {
		to = to.Scale(-1)
	}
	return mgl32.QuatSlerp(from, to, float32(t)).Normalize()
}

// Gap returns the rotation angle in radians separating two orientations.
func Gap(a, b mgl32.Quat) float64 {
	a, b = a.Normalize(), b.Normalize()
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	dw := float64(a.W - b.W)
	dv := a.V.Sub(b.V)
	chord := math.Sqrt(dw*dw + float64(dv.Dot(dv)))
	return 4 * math.Asin(math.Min(1, chord/2))
}

// WrapPi maps an angle into [-π, π).
func WrapPi(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

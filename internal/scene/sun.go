package scene

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
)

// SubsolarPoint returns the point on the globe directly beneath the sun at t.
func SubsolarPoint(t time.Time) s2.Point {
	jd := julian.TimeToJD(t.UTC())

	// Apparent right ascension and declination of the sun.
	ra, dec := solar.ApparentEquatorial(jd)
	x := dec.Cos() * ra.Cos()
	y := dec.Cos() * ra.Sin()
	z := dec.Sin()

	// Rotate from the inertial frame into the rotating Earth frame.
	gst := sidereal.Apparent(jd).Angle()
	cosG, sinG := gst.Cos(), gst.Sin()

	return s2.Point{Vector: r3.Vector{
		X: x*cosG + y*sinG,
		Y: -x*sinG + y*cosG,
		Z: z,
	}.Normalize()}
}

// SunDirection is the unit direction toward the sun at t in globe-local
// space.
func SunDirection(t time.Time) mgl32.Vec3 {
	return LocalDirection(SubsolarPoint(t))
}

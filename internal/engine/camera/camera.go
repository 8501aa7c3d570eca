// Package camera provides the globe viewer camera.
package camera

import "github.com/go-gl/mathgl/mgl32"

// GlobeCamera looks at the globe center from a fixed direction. Only its
// distance changes at runtime; the globe itself rotates.
type GlobeCamera struct {
	// Direction points from the globe center toward the camera.
	Direction mgl32.Vec3
	Up        mgl32.Vec3

	Distance float32
	FOV      float32 // vertical, degrees
	Aspect   float32
	Near     float32
	Far      float32
}

// NewGlobeCamera creates a camera on the +Z axis.
func NewGlobeCamera(fov, near, far, distance float32) *GlobeCamera {
	return &GlobeCamera{
		Direction: mgl32.Vec3{0, 0, 1},
		Up:        mgl32.Vec3{0, 1, 0},
		Distance:  distance,
		FOV:       fov,
		Aspect:    16.0 / 9.0,
		Near:      near,
		Far:       far,
	}
}

// Position returns the camera position in world space.
func (c *GlobeCamera) Position() mgl32.Vec3 {
	return c.Direction.Normalize().Mul(c.Distance)
}

// ViewMatrix returns the view matrix for this camera.
func (c *GlobeCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), mgl32.Vec3{}, c.Up)
}

// ProjectionMatrix returns the perspective projection.
func (c *GlobeCamera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// SetDistance moves the camera along its direction. Non-positive values are
// ignored.
func (c *GlobeCamera) SetDistance(d float32) {
	if d > 0 {
		c.Distance = d
	}
}

// Resize updates the aspect ratio for a viewport of w×h pixels.
func (c *GlobeCamera) Resize(w, h int) {
	if w > 0 && h > 0 {
		c.Aspect = float32(w) / float32(h)
	}
}

// Package picking casts rays from the camera into the globe scene and
// resolves which selectable mesh lies under the pointer.
package picking

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// NormalizePointer converts pixel coordinates on a w×h surface to normalized
// device coordinates: [-1, 1] on both axes, origin at the center, y up.
func NormalizePointer(px, py float32, w, h int) (mgl32.Vec2, bool) {
	if w <= 0 || h <= 0 {
		return mgl32.Vec2{}, false
	}
	return mgl32.Vec2{
		2*px/float32(w) - 1,
		1 - 2*py/float32(h), // Flip Y
	}, true
}

// RayFromCamera builds the world-space ray through a normalized pointer
// position by unprojecting it at the near and far planes.
func RayFromCamera(ndc mgl32.Vec2, view, proj mgl32.Mat4) Ray {
	inv := proj.Mul4(view).Inv()

	near := unproject(inv, mgl32.Vec4{ndc.X(), ndc.Y(), -1, 1})
	far := unproject(inv, mgl32.Vec4{ndc.X(), ndc.Y(), 1, 1})

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

func unproject(inv mgl32.Mat4, p mgl32.Vec4) mgl32.Vec3 {
	w := inv.Mul4x1(p)
	if w.W() != 0 {
		return w.Vec3().Mul(1 / w.W())
	}
	return w.Vec3()
}

// Transform maps the ray through m, e.g. from world into a model's local
// space using the inverse model matrix. The direction is renormalized, so
// distances along the result are in the target space's units.
func (r Ray) Transform(m mgl32.Mat4) Ray {
	o := m.Mul4x1(r.Origin.Vec4(1)).Vec3()
	d := m.Mul4x1(r.Direction.Vec4(0)).Vec3()
	return Ray{Origin: o, Direction: d.Normalize()}
}

// IntersectSphere returns the nearest non-negative distance at which the ray
// meets the sphere. If the ray starts inside, the exit distance is returned.
func (r Ray) IntersectSphere(center mgl32.Vec3, radius float32) (t float32, hit bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := float32(math.Sqrt(float64(disc)))
	t0, t1 := -b-sq, -b+sq
	if t0 >= 0 {
		return t0, true
	}
	if t1 >= 0 {
		return t1, true
	}
	return 0, false
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box
// using the slab method. If the ray starts inside the box, the exit distance
// is returned.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-math.MaxFloat32)
	tmax := float32(math.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		o, d := r.Origin[axis], r.Direction[axis]
		if d == 0 {
			if o < box.Min[axis] || o > box.Max[axis] {
				return 0, false
			}
			continue
		}
		t1 := (box.Min[axis] - o) / d
		t2 := (box.Max[axis] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectTriangle implements the Möller–Trumbore test and returns the
// distance to the triangle (a, b, c), hit from either side.
func (r Ray) IntersectTriangle(a, b, c mgl32.Vec3) (t float32, hit bool) {
	const eps = 1e-7
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if det > -eps && det < eps {
		return 0, false // Ray parallel to triangle
	}
	inv := 1 / det
	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t = e2.Dot(q) * inv
	if t < 0 {
		return 0, false // Intersection behind ray origin
	}
	return t, true
}

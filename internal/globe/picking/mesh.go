package picking

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is a named piece of selectable geometry in globe-local space.
type Mesh interface {
	Name() string
	// Intersect returns the nearest distance along r at which it meets the
	// mesh.
	Intersect(r Ray) (t float32, hit bool)
}

// Sphere is a full sphere, e.g. the ocean.
type Sphere struct {
	Label  string
	Center mgl32.Vec3
	Radius float32
}

func (s *Sphere) Name() string { return s.Label }

func (s *Sphere) Intersect(r Ray) (float32, bool) {
	return r.IntersectSphere(s.Center, s.Radius)
}

// Cap is the patch of a sphere centered at the origin that lies within
// Angle radians of the unit direction Axis.
type Cap struct {
	Label  string
	Axis   mgl32.Vec3
	Angle  float32
	Radius float32
}

func (c *Cap) Name() string { return c.Label }

// Contains reports whether the unit direction d falls inside the cap.
func (c *Cap) Contains(d mgl32.Vec3) bool {
	return d.Dot(c.Axis) >= float32(math.Cos(float64(c.Angle)))
}

// Intersect returns the first point on the cap's sphere along r that lies
// within the cap, so the far side of the globe is tried when the near side
// misses.
func (c *Cap) Intersect(r Ray) (float32, bool) {
	oc := r.Origin
	b := oc.Dot(r.Direction)
	cc := oc.Dot(oc) - c.Radius*c.Radius
	disc := b*b - cc
	if disc < 0 {
		return 0, false
	}
	sq := float32(math.Sqrt(float64(disc)))
	for _, t := range [2]float32{-b - sq, -b + sq} {
		if t < 0 {
			continue
		}
		if c.Contains(r.At(t).Normalize()) {
			return t, true
		}
	}
	return 0, false
}

// TriangleMesh is an arbitrary triangle soup with a bounding box used to
// reject rays early.
type TriangleMesh struct {
	Label     string
	Triangles [][3]mgl32.Vec3
	Bounds    AABB
}

// NewTriangleMesh creates a mesh and computes its bounds.
func NewTriangleMesh(label string, tris [][3]mgl32.Vec3) *TriangleMesh {
	m := &TriangleMesh{Label: label, Triangles: tris}
	if len(tris) == 0 {
		return m
	}
	lo, hi := tris[0][0], tris[0][0]
	for _, tri := range tris {
		for _, v := range tri {
			for i := 0; i < 3; i++ {
				lo[i] = min(lo[i], v[i])
				hi[i] = max(hi[i], v[i])
			}
		}
	}
	m.Bounds = AABB{Min: lo, Max: hi}
	return m
}

func (m *TriangleMesh) Name() string { return m.Label }

func (m *TriangleMesh) Intersect(r Ray) (float32, bool) {
	if len(m.Triangles) == 0 {
		return 0, false
	}
	if _, ok := r.IntersectAABB(m.Bounds); !ok {
		return 0, false
	}
	best := float32(math.MaxFloat32)
	found := false
	for _, tri := range m.Triangles {
		if t, ok := r.IntersectTriangle(tri[0], tri[1], tri[2]); ok && t < best {
			best, found = t, true
		}
	}
	return best, found
}

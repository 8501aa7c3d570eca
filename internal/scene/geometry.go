package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Geometry is an indexed triangle list on a sphere centered at the origin.
// Vertex positions double as normals once normalized.
type Geometry struct {
	Name     string
	Vertices []mgl32.Vec3
	Indices  []uint32
}

// Triangles expands the index list.
func (g Geometry) Triangles() [][3]mgl32.Vec3 {
	out := make([][3]mgl32.Vec3, 0, len(g.Indices)/3)
	for i := 0; i+2 < len(g.Indices); i += 3 {
		out = append(out, [3]mgl32.Vec3{
			g.Vertices[g.Indices[i]],
			g.Vertices[g.Indices[i+1]],
			g.Vertices[g.Indices[i+2]],
		})
	}
	return out
}

// UVSphere tessellates a full sphere into stacks×slices quads.
func UVSphere(name string, radius float32, stacks, slices int) Geometry {
	g := Geometry{Name: name}
	for i := 0; i <= stacks; i++ {
		phi := math.Pi * float64(i) / float64(stacks) // from +Y down
		y := math.Cos(phi)
		r := math.Sin(phi)
		for j := 0; j <= slices; j++ {
			theta := 2 * math.Pi * float64(j) / float64(slices)
			g.Vertices = append(g.Vertices, mgl32.Vec3{
				float32(r * math.Sin(theta)),
				float32(y),
				float32(r * math.Cos(theta)),
			}.Mul(radius))
		}
	}
	row := uint32(slices + 1)
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a := uint32(i)*row + uint32(j)
			b := a + row
			g.Indices = append(g.Indices, a, b, a+1, a+1, b, b+1)
		}
	}
	return g
}

// CapGeometry tessellates the part of a sphere within angle radians of the
// unit direction axis as a fan of rings.
func CapGeometry(name string, axis mgl32.Vec3, angle, radius float32, rings, segments int) Geometry {
	g := Geometry{Name: name}
	orient := mgl32.QuatBetweenVectors(mgl32.Vec3{0, 1, 0}, axis.Normalize())

	g.Vertices = append(g.Vertices, orient.Rotate(mgl32.Vec3{0, radius, 0}))
	for i := 1; i <= rings; i++ {
		phi := float64(angle) * float64(i) / float64(rings)
		y := math.Cos(phi)
		r := math.Sin(phi)
		for j := 0; j < segments; j++ {
			theta := 2 * math.Pi * float64(j) / float64(segments)
			v := mgl32.Vec3{float32(r * math.Sin(theta)), float32(y), float32(r * math.Cos(theta))}
			g.Vertices = append(g.Vertices, orient.Rotate(v.Mul(radius)))
		}
	}

	seg := uint32(segments)
	ring := func(i, j int) uint32 { return 1 + uint32(i-1)*seg + uint32(j)%seg }
	for j := 0; j < segments; j++ {
		g.Indices = append(g.Indices, 0, ring(1, j), ring(1, j+1))
	}
	for i := 1; i < rings; i++ {
		for j := 0; j < segments; j++ {
			a, b := ring(i, j), ring(i, j+1)
			c, d := ring(i+1, j), ring(i+1, j+1)
			g.Indices = append(g.Indices, a, c, b, b, c, d)
		}
	}
	return g
}

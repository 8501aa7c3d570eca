package picking

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Hit is one intersection of a pick ray with a mesh.
type Hit struct {
	Name     string
	Distance float32 // world-space distance from the ray origin
}

// Outcome is what a pick means for the selection.
type Outcome int

const (
	// Nothing leaves the selection unchanged.
	Nothing Outcome = iota
	// Select makes Result.ID the selection.
	Select
	// Clear removes the current selection.
	Clear
)

// Result is the classified outcome of a pick.
type Result struct {
	Outcome Outcome
	ID      string
}

// Walker enumerates selectable meshes; returning false stops the walk.
type Walker func(visit func(Mesh) bool)

// HitTester resolves pointer positions to entity ids.
type HitTester struct {
	background string
	known      func(name string) bool
}

// NewHitTester creates a tester. background names the non-selectable
// backdrop mesh; known reports whether a mesh name is an entity id.
func NewHitTester(background string, known func(name string) bool) *HitTester {
	return &HitTester{background: background, known: known}
}

// Intersections returns every mesh hit by the world-space ray, nearest
// first. model places the globe-local meshes in the world.
func (h *HitTester) Intersections(ray Ray, model mgl32.Mat4, walk Walker) []Hit {
	local := ray.Transform(model.Inv())

	var hits []Hit
	walk(func(m Mesh) bool {
		t, ok := m.Intersect(local)
		if !ok {
			return true
		}
		world := model.Mul4x1(local.At(t).Vec4(1)).Vec3()
		hits = append(hits, Hit{Name: m.Name(), Distance: world.Sub(ray.Origin).Len()})
		return true
	})

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

// Classify applies the selection rule to hits ordered nearest first: a
// nearest background hit clears an existing selection, otherwise the
// nearest hit naming a known entity in front of the background is selected.
func (h *HitTester) Classify(hits []Hit, hasSelection bool) Result {
	if len(hits) == 0 {
		return Result{Outcome: Nothing}
	}
	if hits[0].Name == h.background {
		if hasSelection {
			return Result{Outcome: Clear}
		}
		return Result{Outcome: Nothing}
	}
	for _, hit := range hits {
		if hit.Name == h.background {
			break // occluded by the backdrop
		}
		if h.known(hit.Name) {
			return Result{Outcome: Select, ID: hit.Name}
		}
	}
	return Result{Outcome: Nothing}
}

// Pick casts a ray through the normalized pointer position and classifies
// what it hits.
func (h *HitTester) Pick(ndc mgl32.Vec2, view, proj, model mgl32.Mat4, walk Walker, hasSelection bool) Result {
	ray := RayFromCamera(ndc, view, proj)
	return h.Classify(h.Intersections(ray, model, walk), hasSelection)
}

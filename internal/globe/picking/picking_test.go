package picking

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func testCamera() (view, proj mgl32.Mat4) {
	view = mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	proj = mgl32.Perspective(mgl32.DegToRad(50), 1, 0.1, 100)
	return view, proj
}

func TestNormalizePointer(t *testing.T) {
	tests := []struct {
		px, py float32
		want   mgl32.Vec2
	}{
		{400, 300, mgl32.Vec2{0, 0}},
		{0, 0, mgl32.Vec2{-1, 1}},
		{800, 600, mgl32.Vec2{1, -1}},
	}
	for _, tt := range tests {
		got, ok := NormalizePointer(tt.px, tt.py, 800, 600)
		if !ok || got.Sub(tt.want).Len() > 1e-6 {
			t.Errorf("NormalizePointer(%v,%v) = %v, want %v", tt.px, tt.py, got, tt.want)
		}
	}
	if _, ok := NormalizePointer(1, 1, 0, 600); ok {
		t.Error("zero-sized surface should fail")
	}
}

func TestRayFromCameraCenter(t *testing.T) {
	view, proj := testCamera()
	r := RayFromCamera(mgl32.Vec2{0, 0}, view, proj)
	if !near(r.Direction, mgl32.Vec3{0, 0, -1}, 1e-4) {
		t.Errorf("center ray should point down -Z, got %v", r.Direction)
	}
	if abs(r.Origin.X()) > 1e-4 || abs(r.Origin.Y()) > 1e-4 {
		t.Errorf("center ray should start on the axis, got %v", r.Origin)
	}
}

func TestIntersectSphere(t *testing.T) {
	r := Ray{Origin: mgl32.Vec3{0, 0, 5}, Direction: mgl32.Vec3{0, 0, -1}}
	d, ok := r.IntersectSphere(mgl32.Vec3{}, 1)
	if !ok || abs(d-4) > 1e-5 {
		t.Errorf("expected hit at 4, got %v %v", d, ok)
	}

	inside := Ray{Origin: mgl32.Vec3{}, Direction: mgl32.Vec3{1, 0, 0}}
	d, ok = inside.IntersectSphere(mgl32.Vec3{}, 2)
	if !ok || abs(d-2) > 1e-5 {
		t.Errorf("ray from inside should exit at 2, got %v %v", d, ok)
	}

	miss := Ray{Origin: mgl32.Vec3{0, 3, 5}, Direction: mgl32.Vec3{0, 0, -1}}
	if _, ok := miss.IntersectSphere(mgl32.Vec3{}, 1); ok {
		t.Error("ray above the sphere should miss")
	}

	behind := Ray{Origin: mgl32.Vec3{0, 0, 5}, Direction: mgl32.Vec3{0, 0, 1}}
	if _, ok := behind.IntersectSphere(mgl32.Vec3{}, 1); ok {
		t.Error("sphere behind the ray should miss")
	}
}

func TestIntersectAABB(t *testing.T) {
	box := AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	r := Ray{Origin: mgl32.Vec3{0, 0, 5}, Direction: mgl32.Vec3{0, 0, -1}}
	if d, ok := r.IntersectAABB(box); !ok || abs(d-4) > 1e-5 {
		t.Errorf("expected hit at 4, got %v %v", d, ok)
	}
	miss := Ray{Origin: mgl32.Vec3{2, 0, 5}, Direction: mgl32.Vec3{0, 0, -1}}
	if _, ok := miss.IntersectAABB(box); ok {
		t.Error("parallel ray outside the slab should miss")
	}
}

func TestIntersectTriangle(t *testing.T) {
	a, b, c := mgl32.Vec3{-1, -1, 0}, mgl32.Vec3{1, -1, 0}, mgl32.Vec3{0, 1, 0}
	r := Ray{Origin: mgl32.Vec3{0, 0, 3}, Direction: mgl32.Vec3{0, 0, -1}}
	if d, ok := r.IntersectTriangle(a, b, c); !ok || abs(d-3) > 1e-5 {
		t.Errorf("expected hit at 3, got %v %v", d, ok)
	}
	off := Ray{Origin: mgl32.Vec3{5, 0, 3}, Direction: mgl32.Vec3{0, 0, -1}}
	if _, ok := off.IntersectTriangle(a, b, c); ok {
		t.Error("ray beside the triangle should miss")
	}

	mesh := NewTriangleMesh("tri", [][3]mgl32.Vec3{{a, b, c}})
	if mesh.Bounds.Min != (mgl32.Vec3{-1, -1, 0}) || mesh.Bounds.Max != (mgl32.Vec3{1, 1, 0}) {
		t.Errorf("unexpected bounds %+v", mesh.Bounds)
	}
	if _, ok := mesh.Intersect(r); !ok {
		t.Error("mesh should be hit")
	}
}

func TestCapIntersect(t *testing.T) {
	c := &Cap{Label: "north", Axis: mgl32.Vec3{0, 1, 0}, Angle: float32(math.Pi / 6), Radius: 1}
	down := Ray{Origin: mgl32.Vec3{0, 5, 0}, Direction: mgl32.Vec3{0, -1, 0}}
	if d, ok := c.Intersect(down); !ok || abs(d-4) > 1e-5 {
		t.Errorf("expected hit at 4, got %v %v", d, ok)
	}

	// A ray through the equator misses the polar cap.
	side := Ray{Origin: mgl32.Vec3{5, 0, 0}, Direction: mgl32.Vec3{-1, 0, 0}}
	if _, ok := c.Intersect(side); ok {
		t.Error("equatorial ray should miss the polar cap")
	}

	// From below, the near side is the south pole; the cap is found on the
	// far side.
	up := Ray{Origin: mgl32.Vec3{0, -5, 0}, Direction: mgl32.Vec3{0, 1, 0}}
	if d, ok := c.Intersect(up); !ok || abs(d-6) > 1e-5 {
		t.Errorf("expected far-side hit at 6, got %v %v", d, ok)
	}
}

func scene(meshes ...Mesh) Walker {
	return func(visit func(Mesh) bool) {
		for _, m := range meshes {
			if !visit(m) {
				return
			}
		}
	}
}

func knownSet(ids ...string) func(string) bool {
	set := map[string]bool{}
	for _, id := range ids {
		set[id] = true
	}
	return func(name string) bool { return set[name] }
}

func TestIntersectionsNearestFirst(t *testing.T) {
	view, proj := testCamera()
	ocean := &Sphere{Label: "Ocean", Radius: 1}
	land := &Cap{Label: "Front", Axis: mgl32.Vec3{0, 0, 1}, Angle: 0.5, Radius: 1.01}
	back := &Cap{Label: "Back", Axis: mgl32.Vec3{0, 0, -1}, Angle: 0.5, Radius: 1.01}

	h := NewHitTester("Ocean", knownSet("Front", "Back"))
	ray := RayFromCamera(mgl32.Vec2{0, 0}, view, proj)
	hits := h.Intersections(ray, mgl32.Ident4(), scene(ocean, back, land))

	if len(hits) != 3 {
		t.Fatalf("expected 3 hits, got %v", hits)
	}
	names := []string{hits[0].Name, hits[1].Name, hits[2].Name}
	want := []string{"Front", "Ocean", "Back"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("hit order %v, want %v", names, want)
		}
	}
}

func TestIntersectionsUseModelTransform(t *testing.T) {
	view, proj := testCamera()
	// The region faces +X locally; rotating the globe by -90° about Y turns
	// it toward the camera on +Z.
	region := &Cap{Label: "East", Axis: mgl32.Vec3{1, 0, 0}, Angle: 0.3, Radius: 1.01}
	ocean := &Sphere{Label: "Ocean", Radius: 1}
	h := NewHitTester("Ocean", knownSet("East"))

	ray := RayFromCamera(mgl32.Vec2{0, 0}, view, proj)
	if got := h.Classify(h.Intersections(ray, mgl32.Ident4(), scene(ocean, region)), false); got.Outcome != Nothing {
		t.Fatalf("unrotated globe shows ocean at the center, got %+v", got)
	}

	model := mgl32.QuatRotate(-math.Pi/2, mgl32.Vec3{0, 1, 0}).Mat4()
	got := h.Classify(h.Intersections(ray, model, scene(ocean, region)), false)
	if got.Outcome != Select || got.ID != "East" {
		t.Errorf("rotated globe should bring East under the pointer, got %+v", got)
	}

	scaled := mgl32.Scale3D(1.5, 1.5, 1.5)
	hits := h.Intersections(ray, scaled, scene(ocean))
	// The ray starts on the near plane at z=4.9.
	if len(hits) != 1 || abs(hits[0].Distance-3.4) > 1e-3 {
		t.Errorf("scaled ocean should be hit at world distance 3.4, got %v", hits)
	}
}

func TestClassify(t *testing.T) {
	h := NewHitTester("Ocean", knownSet("France", "Spain"))
	tests := []struct {
		name     string
		hits     []Hit
		selected bool
		want     Result
	}{
		{"no hits", nil, true, Result{Outcome: Nothing}},
		{"ocean while selected", []Hit{{"Ocean", 1}}, true, Result{Outcome: Clear}},
		{"ocean while idle", []Hit{{"Ocean", 1}}, false, Result{Outcome: Nothing}},
		{"entity", []Hit{{"France", 1}, {"Ocean", 2}}, false, Result{Outcome: Select, ID: "France"}},
		{"skips unknown decoration", []Hit{{"Clouds", 0.5}, {"Spain", 1}}, true, Result{Outcome: Select, ID: "Spain"}},
		{"entity behind ocean is occluded", []Hit{{"Clouds", 0.5}, {"Ocean", 1}, {"Spain", 2}}, true, Result{Outcome: Nothing}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.Classify(tt.hits, tt.selected); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

// near compares vectors by absolute distance.
func near(a, b mgl32.Vec3, eps float32) bool {
	return a.Sub(b).Len() < eps
}

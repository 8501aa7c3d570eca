package globe

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-globe/internal/catalog"
	"github.com/Faultbox/midgard-globe/internal/globe/gesture"
	"github.com/Faultbox/midgard-globe/internal/globe/orientation"
	"github.com/Faultbox/midgard-globe/internal/globe/picking"
)

type fakeScene struct {
	loaded   bool
	rot      mgl32.Quat
	dist     float32
	updates  int
	meshes   []picking.Mesh
	view     mgl32.Mat4
	proj     mgl32.Mat4
	rotation bool // apply rot to the model
}

func newFakeScene(meshes ...picking.Mesh) *fakeScene {
	return &fakeScene{
		loaded: true,
		rot:    mgl32.QuatIdent(),
		meshes: meshes,
		view:   mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}),
		proj:   mgl32.Perspective(mgl32.DegToRad(50), 800.0/600.0, 0.1, 100),
	}
}

func (s *fakeScene) Loaded() bool { return s.loaded }

func (s *fakeScene) SetOrientation(q mgl32.Quat) {
	s.rot = q
	s.updates++
}

func (s *fakeScene) SetCameraDistance(d float32) { s.dist = d }

func (s *fakeScene) ViewProjection() (mgl32.Mat4, mgl32.Mat4) { return s.view, s.proj }

func (s *fakeScene) Model() mgl32.Mat4 {
	if s.rotation {
		return s.rot.Mat4()
	}
	return mgl32.Ident4()
}

func (s *fakeScene) Walk(visit func(picking.Mesh) bool) {
	for _, m := range s.meshes {
		if !visit(m) {
			return
		}
	}
}

type fixedSurface struct{ w, h int }

func (s fixedSurface) Size() (int, int) { return s.w, s.h }

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.Entity{
		{ID: "France", TargetLat: 0.5, TargetLon: -0.1, Zoom: 1.2},
		{ID: "Japan", TargetLat: 0.6, TargetLon: 2.4, Zoom: 1.0},
		{ID: "Chile", TargetLat: -0.5, TargetLon: -1.2, Zoom: 1.3},
	})
	if err != nil {
		t.Fatal(err)
	}
	return cat
}

// frontScene places France under the center of the screen.
func frontScene() *fakeScene {
	return newFakeScene(
		&picking.Sphere{Label: "Ocean", Radius: 1},
		&picking.Cap{Label: "France", Axis: mgl32.Vec3{0, 0, 1}, Angle: 0.3, Radius: 1.01},
	)
}

// backScene hides France on the far side, so the center shows ocean.
func backScene() *fakeScene {
	return newFakeScene(
		&picking.Sphere{Label: "Ocean", Radius: 1},
		&picking.Cap{Label: "France", Axis: mgl32.Vec3{0, 0, -1}, Angle: 0.3, Radius: 1.01},
	)
}

func newController(t *testing.T, scene Scene) (*Controller, *[]string) {
	t.Helper()
	var changes []string
	c := New(DefaultConfig(), testCatalog(t), scene, fixedSurface{800, 600},
		WithSelectionListener(func(id string) { changes = append(changes, id) }))
	return c, &changes
}

func mouse(x, y float32, ms int) gesture.Pointer {
	return gesture.Pointer{X: x, Y: y, Time: time.Duration(ms) * time.Millisecond, Source: gesture.SourceMouse}
}

func TestTapSelectsEntity(t *testing.T) {
	c, changes := newController(t, frontScene())

	c.PointerDown(mouse(400, 300, 0))
	c.PointerUp(mouse(402, 301, 120))

	if c.Selected() != "France" {
		t.Fatalf("tap should select France, got %q", c.Selected())
	}
	if c.Snapshot().Mode != orientation.Selected {
		t.Errorf("mode = %v, want selected", c.Snapshot().Mode)
	}
	if len(*changes) != 1 || (*changes)[0] != "France" {
		t.Errorf("listener calls = %v", *changes)
	}
}

func TestDragNeverSelects(t *testing.T) {
	c, changes := newController(t, frontScene())

	c.PointerDown(mouse(400, 300, 0))
	c.PointerMove(mouse(410, 300, 30))
	if c.Snapshot().Mode != orientation.ManualDragging {
		t.Fatalf("mode = %v, want manual-dragging", c.Snapshot().Mode)
	}
	c.PointerUp(mouse(400, 300, 60))

	if c.Selected() != "" || len(*changes) != 0 {
		t.Errorf("drag must not select, got %q %v", c.Selected(), *changes)
	}
	if c.Snapshot().Mode != orientation.AutoRotating {
		t.Errorf("mode after drag = %v, want auto-rotating", c.Snapshot().Mode)
	}
	if c.Snapshot().Current.Y == 0 {
		t.Error("drag should have rotated the globe")
	}
}

func TestDragOutlivesClearedSelection(t *testing.T) {
	c, _ := newController(t, frontScene())
	c.Select("France")

	c.PointerDown(mouse(400, 300, 0))
	c.PointerMove(mouse(410, 300, 30))
	if c.Snapshot().Mode != orientation.Selected {
		t.Fatalf("mode = %v, drag must not override a selection", c.Snapshot().Mode)
	}

	c.ClearSelection()
	before := c.Snapshot().Current.Y
	c.PointerMove(mouse(430, 300, 60))
	s := c.Snapshot()
	if s.Mode != orientation.ManualDragging {
		t.Fatalf("mode after clearing mid-drag = %v, want manual-dragging", s.Mode)
	}
	if s.Current.Y == before {
		t.Error("the rest of the drag should rotate the globe")
	}

	// No auto-rotation under the held pointer.
	c.Update(1)
	if got := c.Snapshot().Current.Y; got != s.Current.Y {
		t.Errorf("globe spun during the drag: %v -> %v", s.Current.Y, got)
	}

	c.PointerUp(mouse(430, 300, 90))
	if c.Snapshot().Mode != orientation.AutoRotating {
		t.Errorf("mode after release = %v, want auto-rotating", c.Snapshot().Mode)
	}
}

func TestLongPressDoesNotSelect(t *testing.T) {
	c, _ := newController(t, frontScene())
	c.PointerDown(mouse(400, 300, 0))
	c.PointerUp(mouse(400, 300, 250))
	if c.Selected() != "" {
		t.Errorf("long press selected %q", c.Selected())
	}
}

func TestBackgroundTapClearsOnlyWhenSelected(t *testing.T) {
	c, changes := newController(t, backScene())

	c.PointerDown(mouse(400, 300, 0))
	c.PointerUp(mouse(400, 300, 50))
	if len(*changes) != 0 {
		t.Fatalf("ocean tap with nothing selected must be a no-op, got %v", *changes)
	}

	c.Select("Japan")
	c.PointerDown(mouse(400, 300, 1000))
	c.PointerUp(mouse(400, 300, 1050))

	if c.Selected() != "" {
		t.Errorf("ocean tap should clear, still %q", c.Selected())
	}
	want := []string{"Japan", ""}
	if len(*changes) != len(want) || (*changes)[0] != want[0] || (*changes)[1] != want[1] {
		t.Errorf("listener calls = %q, want %q", *changes, want)
	}
}

func TestSelectUnknownAndRepeat(t *testing.T) {
	c, changes := newController(t, frontScene())

	c.Select("Atlantis")
	c.Select("")
	c.ClearSelection()
	if len(*changes) != 0 {
		t.Fatalf("no-ops must not notify, got %v", *changes)
	}

	c.Select("Japan")
	before := c.Snapshot()
	c.Select("Japan")
	if c.Snapshot() != before {
		t.Error("reselecting the current entity must not restart the transition")
	}
	if len(*changes) != 1 {
		t.Errorf("listener calls = %v", *changes)
	}
}

func TestSelectFromSelectedPlansTransition(t *testing.T) {
	c, _ := newController(t, frontScene())
	c.Select("France")
	c.Select("Japan")

	france, _ := testCatalog(t).Get("France")
	japan, _ := testCatalog(t).Get("Japan")
	want := orientation.PlanTransition(orientation.DefaultParams(), france.Target(), japan.Target())

	s := c.Snapshot()
	if math.Abs(s.TransitionSpeed-want.Speed) > 1e-12 || math.Abs(s.MaxZoomOutFactor-want.MaxZoomOutFactor) > 1e-12 {
		t.Errorf("got speed %v arc %v, want %+v", s.TransitionSpeed, s.MaxZoomOutFactor, want)
	}
}

func TestUpdateDrivesScene(t *testing.T) {
	scene := frontScene()
	c, _ := newController(t, scene)

	c.Select("Japan")
	for i := 0; i < 600; i++ {
		c.Update(1.0 / 60)
	}
	s := c.Snapshot()
	if s.Progress != 1 {
		t.Fatalf("transition should finish, progress %v", s.Progress)
	}
	if scene.updates != 600 {
		t.Errorf("scene updated %d times, want 600", scene.updates)
	}
	if scene.rot != s.Rotation {
		t.Error("scene orientation should match the controller")
	}
	want := DefaultConfig().BaseDistance * float32(s.CurrentZoom)
	if math.Abs(float64(scene.dist-want)) > 1e-6 {
		t.Errorf("camera distance %v, want %v", scene.dist, want)
	}
	if math.Abs(s.CurrentZoom-1.0) > 1e-3 {
		t.Errorf("zoom should converge to Japan's 1.0, got %v", s.CurrentZoom)
	}
}

func TestUpdateWaitsForScene(t *testing.T) {
	scene := frontScene()
	scene.loaded = false
	c, changes := newController(t, scene)

	c.Update(1.0 / 60)
	c.PointerDown(mouse(400, 300, 0))
	c.PointerUp(mouse(400, 300, 50))

	if scene.updates != 0 {
		t.Error("unloaded scene must not be written")
	}
	if len(*changes) != 0 {
		t.Error("taps must not pick before the scene loads")
	}
	if c.Snapshot().Current.Y != 0 {
		t.Error("auto-rotation must not advance before the scene loads")
	}
}

func TestPinchZoomsMonotonically(t *testing.T) {
	c, _ := newController(t, frontScene())
	p := orientation.DefaultParams()

	c.TouchDown(gesture.Touch{ID: 1, X: 300, Y: 300})
	c.TouchDown(gesture.Touch{ID: 2, X: 400, Y: 300})

	prev := c.Snapshot().CurrentZoom
	for x := float32(405); x <= 450; x += 5 {
		c.TouchMove(gesture.Touch{ID: 2, X: x, Y: 300})
		z := c.Snapshot().CurrentZoom
		if z <= prev {
			t.Fatalf("zoom did not increase at spread %v: %v -> %v", x-300, prev, z)
		}
		prev = z
	}
	if math.Abs(prev-(p.DefaultZoom+0.5)) > 1e-6 {
		t.Errorf("spreading 100 -> 150 px should add 0.5, got %v", prev)
	}

	c.TouchMove(gesture.Touch{ID: 2, X: 800, Y: 300})
	if z := c.Snapshot().CurrentZoom; z != p.MaxZoom {
		t.Errorf("zoom should clamp at %v, got %v", p.MaxZoom, z)
	}

	c.TouchUp(gesture.Touch{ID: 2, X: 800, Y: 300})
	c.TouchUp(gesture.Touch{ID: 1, X: 300, Y: 300})
	if c.Selected() != "" {
		t.Error("a pinch must never select")
	}
}

func TestWheelZoom(t *testing.T) {
	c, _ := newController(t, frontScene())
	c.Wheel(gesture.Wheel{DeltaY: 2})
	if z := c.Snapshot().CurrentZoom; math.Abs(z-1.7) > 1e-9 {
		t.Errorf("zoom = %v, want 1.7", z)
	}
	c.Wheel(gesture.Wheel{DeltaY: -100})
	if z := c.Snapshot().CurrentZoom; z != orientation.DefaultParams().MinZoom {
		t.Errorf("zoom should clamp at min, got %v", z)
	}
}

func TestPickFollowsRenderedOrientation(t *testing.T) {
	// France faces +X locally and is only under the pointer once the globe
	// is turned a quarter turn.
	scene := newFakeScene(
		&picking.Sphere{Label: "Ocean", Radius: 1},
		&picking.Cap{Label: "France", Axis: mgl32.Vec3{1, 0, 0}, Angle: 0.3, Radius: 1.01},
	)
	scene.rotation = true
	c, _ := newController(t, scene)

	c.PointerDown(mouse(400, 300, 0))
	c.PointerUp(mouse(400, 300, 50))
	if c.Selected() != "" {
		t.Fatalf("France is not visible yet, selected %q", c.Selected())
	}

	scene.rot = mgl32.QuatRotate(-math.Pi/2, mgl32.Vec3{0, 1, 0})
	c.PointerDown(mouse(400, 300, 100))
	c.PointerUp(mouse(400, 300, 150))
	if c.Selected() != "France" {
		t.Errorf("rotated globe should select France, got %q", c.Selected())
	}
}

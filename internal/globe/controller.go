// Package globe drives an interactive globe: it owns the orientation
// animation, turns raw pointer and touch input into gestures, and resolves
// taps to entity selections.
package globe

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-globe/internal/catalog"
	"github.com/Faultbox/midgard-globe/internal/globe/gesture"
	"github.com/Faultbox/midgard-globe/internal/globe/orientation"
	"github.com/Faultbox/midgard-globe/internal/globe/picking"
)

// Scene is the rendered globe the controller drives.
type Scene interface {
	// Loaded reports whether the scene graph is ready. Until it is, the
	// controller does not touch the scene.
	Loaded() bool
	SetOrientation(q mgl32.Quat)
	SetCameraDistance(d float32)
	ViewProjection() (view, proj mgl32.Mat4)
	// Model is the globe's current local-to-world transform.
	Model() mgl32.Mat4
	// Walk visits the selectable meshes in globe-local space.
	Walk(visit func(picking.Mesh) bool)
}

// Surface is the interactive area input coordinates refer to.
type Surface interface {
	Size() (w, h int)
}

// Controller is the globe's interaction and animation state. Its methods
// must be called from the frame loop goroutine.
type Controller struct {
	cfg     Config
	cat     *catalog.Catalog
	scene   Scene
	surface Surface
	log     *zap.Logger

	state     *orientation.State
	gestures  *gesture.Recognizer
	hits      *picking.HitTester
	listeners []func(id string)
}

// New creates a controller for the entities in cat.
func New(cfg Config, cat *catalog.Catalog, scene Scene, surface Surface, opts ...Option) *Controller {
	c := &Controller{
		cfg:     cfg,
		cat:     cat,
		scene:   scene,
		surface: surface,
		log:     zap.NewNop(),
		state:   orientation.New(cfg.Orientation),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.hits = picking.NewHitTester(cfg.Background, cat.Has)
	c.gestures = gesture.NewRecognizer(cfg.Gesture, sink{c}, c.log.Named("gesture"))
	return c
}

// OnSelectionChange registers fn to be called with the new selection
// whenever it changes. An empty id means nothing is selected.
func (c *Controller) OnSelectionChange(fn func(id string)) {
	if fn != nil {
		c.listeners = append(c.listeners, fn)
	}
}

// Select starts a transition to the entity id. Unknown ids and the current
// selection are ignored.
func (c *Controller) Select(id string) {
	e, ok := c.cat.Get(id)
	if !ok {
		c.log.Debug("select: unknown entity", zap.String("id", id))
		return
	}
	prev := c.Selected()
	if !c.state.Select(orientation.Target{ID: e.ID, Angles: e.Target(), Zoom: e.Zoom}) {
		return
	}
	s := c.state.Snapshot()
	c.log.Info("entity selected",
		zap.String("id", e.ID),
		zap.String("previous", prev),
		zap.Float64("speed", s.TransitionSpeed),
		zap.Float64("arc", s.MaxZoomOutFactor))
	c.notify(e.ID)
}

// ClearSelection returns to auto-rotation.
func (c *Controller) ClearSelection() {
	prev := c.Selected()
	if !c.state.Deselect() {
		return
	}
	c.log.Info("selection cleared", zap.String("previous", prev))
	c.notify("")
}

// Selected returns the selected entity id, or "" if none.
func (c *Controller) Selected() string {
	id, _ := c.state.SelectedID()
	return id
}

// Snapshot returns a copy of the orientation state.
func (c *Controller) Snapshot() orientation.Snapshot {
	return c.state.Snapshot()
}

// Update advances the animation by dt seconds and pushes the result to the
// scene.
func (c *Controller) Update(dt float64) {
	if !c.scene.Loaded() {
		return
	}
	c.state.Advance(dt)
	c.scene.SetOrientation(c.state.Rotation())
	c.scene.SetCameraDistance(c.cfg.BaseDistance * float32(c.state.Zoom()))
}

func (c *Controller) PointerDown(p gesture.Pointer)   { c.gestures.PointerDown(p) }
func (c *Controller) PointerMove(p gesture.Pointer)   { c.gestures.PointerMove(p) }
func (c *Controller) PointerUp(p gesture.Pointer)     { c.gestures.PointerUp(p) }
func (c *Controller) PointerCancel(p gesture.Pointer) { c.gestures.PointerCancel(p) }
func (c *Controller) Wheel(w gesture.Wheel)           { c.gestures.Wheel(w) }
func (c *Controller) TouchDown(t gesture.Touch)       { c.gestures.TouchDown(t) }
func (c *Controller) TouchMove(t gesture.Touch)       { c.gestures.TouchMove(t) }
func (c *Controller) TouchUp(t gesture.Touch)         { c.gestures.TouchUp(t) }

// pick resolves a tap at pixel (x, y).
func (c *Controller) pick(x, y float32) {
	if !c.scene.Loaded() {
		return
	}
	w, h := c.surface.Size()
	ndc, ok := picking.NormalizePointer(x, y, w, h)
	if !ok {
		return
	}
	view, proj := c.scene.ViewProjection()
	res := c.hits.Pick(ndc, view, proj, c.scene.Model(), c.scene.Walk, c.Selected() != "")
	switch res.Outcome {
	case picking.Select:
		c.Select(res.ID)
	case picking.Clear:
		c.ClearSelection()
	}
}

func (c *Controller) notify(id string) {
	for _, fn := range c.listeners {
		fn(id)
	}
}

// sink adapts gestures to the orientation state.
type sink struct{ c *Controller }

func (s sink) BeginDrag() {
	if !s.c.state.BeginDrag() {
		s.c.log.Debug("drag ignored while selected")
	}
}

// Rotate takes over a drag that started while an entity was selected once
// the selection is cleared.
func (s sink) Rotate(dx, dy float64) {
	if s.c.state.Mode() == orientation.AutoRotating {
		s.c.state.BeginDrag()
	}
	s.c.state.Rotate(dx, dy)
}

func (s sink) EndDrag()           { s.c.state.EndDrag() }
func (s sink) Zoom(delta float64) { s.c.state.ApplyZoom(delta) }
func (s sink) Tap(x, y float32)   { s.c.pick(x, y) }

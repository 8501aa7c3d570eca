// Package orientation holds the globe's animated orientation and camera
// zoom, and schedules transitions between selected entities.
package orientation

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-globe/pkg/angular"
)

// Mode is the controller's animation mode.
type Mode int

const (
	// AutoRotating spins the globe about its vertical axis at a constant rate.
	AutoRotating Mode = iota
	// Selected converges toward the selected entity's authored orientation.
	Selected
	// ManualDragging follows pointer drag deltas.
	ManualDragging
)

func (m Mode) String() string {
	switch m {
	case AutoRotating:
		return "auto-rotating"
	case Selected:
		return "selected"
	case ManualDragging:
		return "manual-dragging"
	default:
		return "unknown"
	}
}

// Params are the tuning constants for orientation and zoom animation.
type Params struct {
	MinSpeed   float64 // lower bound of the per-frame transition blend
	MaxSpeed   float64 // upper bound of the per-frame transition blend
	ResetSpeed float64 // blend used to settle back after a deselect
	ZoomRelax  float64 // per-frame zoom blend outside of transitions

	DefaultZoom float64
	MinZoom     float64
	MaxZoom     float64

	// AutoRotatePeriod is the duration of one full revolution.
	AutoRotatePeriod time.Duration
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		MinSpeed:         0.025,
		MaxSpeed:         0.1,
		ResetSpeed:       0.15,
		ZoomRelax:        0.1,
		DefaultZoom:      1.5,
		MinZoom:          0.6,
		MaxZoom:          3.0,
		AutoRotatePeriod: 3 * time.Minute,
	}
}

// settleEpsilon is the orientation gap (radians) under which a post-deselect
// settle is considered finished.
const settleEpsilon = 1e-3

// progressEpsilon absorbs rounding when summing per-frame speeds.
const progressEpsilon = 1e-9

// State is the orientation and zoom of the globe. It is owned by a single
// controller and is not safe for concurrent use.
type State struct {
	params Params

	current angular.Angles
	target  angular.Angles
	rot     mgl32.Quat // rendered orientation

	currentZoom float64
	targetZoom  float64
	startZoom   float64

	speed      float64
	progress   float64
	maxZoomOut float64

	mode     Mode
	selected string // id whose authored target is being converged to
	settling bool
}

// New creates a State in AutoRotating mode at the default zoom.
func New(p Params) *State {
	return &State{
		params:      p,
		rot:         angular.Compose(angular.Angles{}),
		currentZoom: p.DefaultZoom,
		targetZoom:  p.DefaultZoom,
		startZoom:   p.DefaultZoom,
		speed:       p.MaxSpeed,
		maxZoomOut:  1,
		mode:        AutoRotating,
	}
}

// Params returns the tuning the state was created with.
func (s *State) Params() Params { return s.params }

// Mode returns the current animation mode.
func (s *State) Mode() Mode { return s.mode }

// SelectedID returns the id of the entity being converged to, if any.
func (s *State) SelectedID() (string, bool) {
	return s.selected, s.selected != ""
}

// Rotation returns the rendered orientation.
func (s *State) Rotation() mgl32.Quat { return s.rot }

// Zoom returns the current camera-distance multiplier.
func (s *State) Zoom() float64 { return s.currentZoom }

// Snapshot is a read-only copy of the state.
type Snapshot struct {
	Mode             Mode
	SelectedID       string
	Current          angular.Angles
	Target           angular.Angles
	Rotation         mgl32.Quat
	CurrentZoom      float64
	TargetZoom       float64
	StartZoom        float64
	TransitionSpeed  float64
	Progress         float64
	MaxZoomOutFactor float64
}

// Snapshot copies the current state.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Mode:             s.mode,
		SelectedID:       s.selected,
		Current:          s.current,
		Target:           s.target,
		Rotation:         s.rot,
		CurrentZoom:      s.currentZoom,
		TargetZoom:       s.targetZoom,
		StartZoom:        s.startZoom,
		TransitionSpeed:  s.speed,
		Progress:         s.progress,
		MaxZoomOutFactor: s.maxZoomOut,
	}
}

// BeginDrag switches to ManualDragging. It is refused while an entity is
// selected.
func (s *State) BeginDrag() bool {
	if s.mode == Selected {
		return false
	}
	s.mode = ManualDragging
	return true
}

// EndDrag returns from ManualDragging to AutoRotating.
func (s *State) EndDrag() {
	if s.mode == ManualDragging {
		s.mode = AutoRotating
	}
}

// Rotate applies a manual rotation delta in radians. It is ignored while an
// entity is selected.
func (s *State) Rotate(dx, dy float64) bool {
	if s.mode == Selected {
		return false
	}
	s.current.X += dx
	s.current.Y += dy
	return true
}

// ApplyZoom applies a zoom delta to both the current and resting zoom, clamped
// to [MinZoom, MaxZoom].
func (s *State) ApplyZoom(delta float64) {
	s.currentZoom = angular.Clamp(s.currentZoom+delta, s.params.MinZoom, s.params.MaxZoom)
	s.targetZoom = angular.Clamp(s.targetZoom+delta, s.params.MinZoom, s.params.MaxZoom)
}

// Advance moves the animation forward by one frame of dt seconds.
func (s *State) Advance(dt float64) {
	switch s.mode {
	case Selected:
		s.advanceTransition()
	case ManualDragging:
		s.follow()
		s.relaxZoom()
	default:
		if s.params.AutoRotatePeriod > 0 {
			s.current.Y += 2 * math.Pi * dt / s.params.AutoRotatePeriod.Seconds()
		}
		s.follow()
		s.relaxZoom()
	}
}

// follow tracks the nominal angles, settling with ResetSpeed after a
// deselect and directly otherwise.
func (s *State) follow() {
	want := angular.Compose(s.current)
	if !s.settling {
		s.rot = want
		return
	}
	s.rot = angular.Blend(s.rot, want, s.params.ResetSpeed)
	if angular.Gap(s.rot, want) < settleEpsilon {
		s.rot = want
		s.settling = false
	}
}

func (s *State) relaxZoom() {
	s.currentZoom = angular.Lerp(s.currentZoom, s.targetZoom, s.params.ZoomRelax)
}

func (s *State) advanceTransition() {
	s.progress = math.Min(1, s.progress+s.speed)
	if s.progress > 1-progressEpsilon {
		s.progress = 1
	}

	s.rot = angular.Blend(s.rot, angular.Compose(s.target), s.speed)
	s.current.X = angular.Lerp(s.current.X, s.target.X, s.speed)
	s.current.Y = angular.Lerp(s.current.Y, s.target.Y, s.speed)

	arc := 1 + math.Sin(s.progress*math.Pi)*(s.maxZoomOut-1)
	want := angular.Lerp(s.startZoom, s.targetZoom, s.progress) * arc
	s.currentZoom = angular.Lerp(s.currentZoom, want, s.speed)
}

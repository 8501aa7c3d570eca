package orientation

import (
	"math"

	"github.com/Faultbox/midgard-globe/pkg/angular"
)

// Target is an entity's authored orientation and zoom.
type Target struct {
	ID     string
	Angles angular.Angles
	Zoom   float64
}

// Plan is the timing of a transition between two targets.
type Plan struct {
	Distance         float64
	Speed            float64
	MaxZoomOutFactor float64
}

// PlanTransition computes the transition speed and camera arc for a trip
// between two authored targets. Nearby targets transition fast, distant
// ones slowly and with a wider outward arc.
func PlanTransition(p Params, from, to angular.Angles) Plan {
	d := angular.GreatCircleDistance(to, from)
	return Plan{
		Distance:         d,
		Speed:            angular.Clamp(p.MaxSpeed/(1+d), p.MinSpeed, p.MaxSpeed),
		MaxZoomOutFactor: 1 + math.Min(d, math.Pi)/math.Pi,
	}
}

// Select starts a transition toward t. Re-selecting the target already
// being converged to is a no-op; the return value reports whether a new
// transition started.
//
// When another target was selected, speed and arc are measured from that
// target's authored orientation, not from the currently rendered one.
func (s *State) Select(t Target) bool {
	if t.ID == "" || t.ID == s.selected {
		return false
	}

	plan := Plan{Speed: s.params.MaxSpeed, MaxZoomOutFactor: 1}
	if s.selected != "" {
		plan = PlanTransition(s.params, s.target, t.Angles)
	}

	s.startZoom = s.currentZoom
	s.target = t.Angles
	s.targetZoom = t.Zoom
	s.progress = 0
	s.speed = plan.Speed
	s.maxZoomOut = plan.MaxZoomOutFactor
	s.selected = t.ID
	s.mode = Selected
	s.settling = false

	// Keep the nominal angles within half a turn of the target so the
	// bookkeeping blend does not unwind accumulated auto-rotation.
	s.current.X = s.target.X + angular.WrapPi(s.current.X-s.target.X)
	s.current.Y = s.target.Y + angular.WrapPi(s.current.Y-s.target.Y)
	return true
}

// Deselect returns to AutoRotating, keeping the last selected orientation as
// the starting point and settling into it with ResetSpeed. It reports
// whether anything was selected.
func (s *State) Deselect() bool {
	if s.selected == "" {
		return false
	}
	s.selected = ""
	s.progress = 0
	s.maxZoomOut = 1
	s.current = s.target
	s.targetZoom = s.params.DefaultZoom
	s.mode = AutoRotating
	s.settling = true
	return true
}

// Done reports whether the running transition has reached its target.
func (s *State) Done() bool {
	return s.progress >= 1
}

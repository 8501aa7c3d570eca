package gesture

import (
	"math"
	"time"

	"go.uber.org/zap"
)

// session is the state of one press, from down to up or cancel.
type session struct {
	source   Source
	originX  float32
	originY  float32
	lastX    float32
	lastY    float32
	start    time.Duration
	dragging bool
	multi    bool // a second finger joined; never a tap
}

type finger struct {
	id   int64
	x, y float32
}

// Recognizer turns raw input into gestures for a Sink. All methods must be
// called from the goroutine that drives the frame loop.
type Recognizer struct {
	cfg  Config
	sink Sink
	log  *zap.Logger

	cur *session

	fingers   []finger
	pinchDist float32

	lastTouchUp time.Duration
	touchSeen   bool
}

// NewRecognizer creates a recognizer feeding sink.
func NewRecognizer(cfg Config, sink Sink, log *zap.Logger) *Recognizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recognizer{cfg: cfg, sink: sink, log: log}
}

// Dragging reports whether the active press has become a drag.
func (r *Recognizer) Dragging() bool {
	return r.cur != nil && r.cur.dragging
}

// Active reports whether a press is in progress.
func (r *Recognizer) Active() bool {
	return r.cur != nil
}

// PointerDown starts a press.
func (r *Recognizer) PointerDown(p Pointer) {
	if p.Synthetic || !r.cfg.Modality.accepts(p.Source) {
		return
	}
	if r.cur != nil {
		// One session at a time; the other device waits.
		return
	}
	if p.Source == SourceMouse && r.touchSeen && p.Time-r.lastTouchUp < r.cfg.GhostClickWindow {
		r.log.Debug("ignoring mouse press after touch", zap.Duration("since_touch", p.Time-r.lastTouchUp))
		return
	}
	r.cur = &session{
		source:  p.Source,
		originX: p.X,
		originY: p.Y,
		lastX:   p.X,
		lastY:   p.Y,
		start:   p.Time,
	}
}

// PointerMove updates the active press, promoting it to a drag once it
// leaves the threshold and emitting incremental rotation afterwards.
func (r *Recognizer) PointerMove(p Pointer) {
	s := r.owned(p)
	if s == nil || s.multi {
		return
	}
	if !s.dragging && distance(p.X, p.Y, s.originX, s.originY) > r.cfg.DragThreshold {
		s.dragging = true
		r.log.Debug("drag started", zap.Stringer("source", s.source))
		r.sink.BeginDrag()
	}
	if s.dragging {
		dx := float64(p.X - s.lastX)
		dy := float64(p.Y - s.lastY)
		if dx != 0 || dy != 0 {
			r.sink.Rotate(dy*r.cfg.RotateScale, dx*r.cfg.RotateScale)
		}
	}
	s.lastX, s.lastY = p.X, p.Y
}

// PointerUp ends the active press. A drag ends the manual rotation; a short
// press that stayed within the threshold is reported as a tap.
func (r *Recognizer) PointerUp(p Pointer) {
	s := r.owned(p)
	if s == nil {
		return
	}
	r.cur = nil
	if s.source == SourceTouch {
		r.lastTouchUp = p.Time
		r.touchSeen = true
	}

	switch {
	case s.dragging:
		r.log.Debug("drag ended")
		r.sink.EndDrag()
	case s.multi:
	case p.Time-s.start >= r.cfg.TapMaxDuration:
		r.log.Debug("press too long for a tap", zap.Duration("held", p.Time-s.start))
	case distance(p.X, p.Y, s.originX, s.originY) > r.cfg.DragThreshold:
	default:
		r.log.Debug("tap", zap.Float32("x", p.X), zap.Float32("y", p.Y))
		r.sink.Tap(p.X, p.Y)
	}
}

// PointerCancel abandons the active press without a tap.
func (r *Recognizer) PointerCancel(p Pointer) {
	s := r.owned(p)
	if s == nil {
		return
	}
	r.cur = nil
	r.fingers = r.fingers[:0]
	if s.dragging {
		r.sink.EndDrag()
	}
}

// Wheel converts a scroll step into a zoom delta.
func (r *Recognizer) Wheel(w Wheel) {
	if r.cfg.Modality == TouchOnly || w.DeltaY == 0 {
		return
	}
	r.sink.Zoom(float64(w.DeltaY) * r.cfg.WheelScale)
}

// owned returns the active session if p belongs to it.
func (r *Recognizer) owned(p Pointer) *session {
	if p.Synthetic || r.cur == nil || r.cur.source != p.Source {
		return nil
	}
	return r.cur
}

func distance(x1, y1, x2, y2 float32) float32 {
	dx := float64(x1 - x2)
	dy := float64(y1 - y2)
	return float32(math.Sqrt(dx*dx + dy*dy))
}

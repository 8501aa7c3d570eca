package gesture

// TouchDown registers a finger. The first finger starts a touch press; the
// second turns the press into a pinch.
func (r *Recognizer) TouchDown(t Touch) {
	if !r.cfg.Modality.accepts(SourceTouch) {
		return
	}
	if r.cur != nil && r.cur.source != SourceTouch {
		return
	}
	for _, f := range r.fingers {
		if f.id == t.ID {
			return
		}
	}
	r.fingers = append(r.fingers, finger{id: t.ID, x: t.X, y: t.Y})

	switch len(r.fingers) {
	case 1:
		r.PointerDown(Pointer{X: t.X, Y: t.Y, Time: t.Time, Source: SourceTouch})
	case 2:
		if s := r.cur; s != nil && s.source == SourceTouch {
			if s.dragging {
				s.dragging = false
				r.sink.EndDrag()
			}
			s.multi = true
		}
		r.pinchDist = r.spread()
	}
}

// TouchMove updates a finger. With two or more fingers down the change in
// spread between the first two becomes a zoom delta.
func (r *Recognizer) TouchMove(t Touch) {
	i := r.finger(t.ID)
	if i < 0 {
		return
	}
	r.fingers[i].x, r.fingers[i].y = t.X, t.Y

	if len(r.fingers) >= 2 {
		if i > 1 {
			return
		}
		d := r.spread()
		if delta := d - r.pinchDist; delta != 0 {
			r.sink.Zoom(float64(delta) * r.cfg.PinchScale)
		}
		r.pinchDist = d
		return
	}
	r.PointerMove(Pointer{X: t.X, Y: t.Y, Time: t.Time, Source: SourceTouch})
}

// TouchUp releases a finger. The press ends when the last finger lifts.
func (r *Recognizer) TouchUp(t Touch) {
	i := r.finger(t.ID)
	if i < 0 {
		return
	}
	r.fingers = append(r.fingers[:i], r.fingers[i+1:]...)

	switch len(r.fingers) {
	case 0:
		r.PointerUp(Pointer{X: t.X, Y: t.Y, Time: t.Time, Source: SourceTouch})
	case 1:
		// Pinch over; the remaining finger cannot produce a tap or drag.
		r.pinchDist = 0
	default:
		r.pinchDist = r.spread()
	}
}

func (r *Recognizer) finger(id int64) int {
	for i, f := range r.fingers {
		if f.id == id {
			return i
		}
	}
	return -1
}

// spread is the distance between the first two fingers.
func (r *Recognizer) spread() float32 {
	if len(r.fingers) < 2 {
		return 0
	}
	a, b := r.fingers[0], r.fingers[1]
	return distance(a.x, a.y, b.x, b.y)
}

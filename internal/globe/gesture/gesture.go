// Package gesture classifies raw pointer, wheel and touch input into
// rotate, zoom and tap gestures.
package gesture

import (
	"fmt"
	"strings"
	"time"
)

// Source identifies the device class that produced a pointer event.
type Source int

const (
	SourceMouse Source = iota
	SourceTouch
)

func (s Source) String() string {
	if s == SourceTouch {
		return "touch"
	}
	return "mouse"
}

// Modality is the set of input devices the recognizer accepts. It is
// resolved once at startup.
type Modality int

const (
	// Hybrid accepts mouse and touch, one session at a time.
	Hybrid Modality = iota
	// PointerOnly ignores touch input.
	PointerOnly
	// TouchOnly ignores mouse and wheel input.
	TouchOnly
)

func (m Modality) String() string {
	switch m {
	case PointerOnly:
		return "pointer"
	case TouchOnly:
		return "touch"
	default:
		return "hybrid"
	}
}

// ParseModality parses "pointer", "touch" or "hybrid".
func ParseModality(s string) (Modality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "hybrid":
		return Hybrid, nil
	case "pointer", "mouse":
		return PointerOnly, nil
	case "touch":
		return TouchOnly, nil
	default:
		return Hybrid, fmt.Errorf("unknown input modality %q", s)
	}
}

func (m Modality) accepts(src Source) bool {
	switch m {
	case PointerOnly:
		return src == SourceMouse
	case TouchOnly:
		return src == SourceTouch
	default:
		return true
	}
}

// Pointer is a press, move or release at a screen position in pixels.
// Time is a monotonic timestamp. Synthetic marks mouse events the platform
// emulated from touch input.
type Pointer struct {
	X, Y      float32
	Time      time.Duration
	Source    Source
	Synthetic bool
}

// Wheel is a scroll step. Positive DeltaY moves the camera away.
type Wheel struct {
	DeltaY float32
}

// Touch is a single finger event.
type Touch struct {
	ID   int64
	X, Y float32
	Time time.Duration
}

// Config holds gesture thresholds and scales.
type Config struct {
	Modality Modality

	// DragThreshold is the displacement in pixels beyond which a press
	// becomes a drag.
	DragThreshold float32
	// TapMaxDuration is the longest press still treated as a tap.
	TapMaxDuration time.Duration
	// GhostClickWindow suppresses mouse presses that follow a touch release
	// this closely.
	GhostClickWindow time.Duration

	RotateScale float64 // radians per pixel of drag
	WheelScale  float64 // zoom per wheel step
	PinchScale  float64 // zoom per pixel of finger spread
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		Modality:         Hybrid,
		DragThreshold:    5,
		TapMaxDuration:   200 * time.Millisecond,
		GhostClickWindow: 500 * time.Millisecond,
		RotateScale:      0.005,
		WheelScale:       0.1,
		PinchScale:       0.01,
	}
}

// Sink receives classified gestures.
type Sink interface {
	BeginDrag()
	// Rotate applies a rotation delta in radians about the tilt axis (dx)
	// and the vertical axis (dy).
	Rotate(dx, dy float64)
	EndDrag()
	Zoom(delta float64)
	// Tap reports a press that was neither a drag nor a long hold, at the
	// release position in pixels.
	Tap(x, y float32)
}

// Package input handles SDL2 input events.
package input

import (
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/midgard-globe/internal/globe/gesture"
)

// Event types for viewer use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventPointerDown
	EventPointerMove
	EventPointerUp
	EventWheel
	EventTouchDown
	EventTouchMove
	EventTouchUp
)

// Event represents a processed input event.
type Event struct {
	Type    EventType
	Key     sdl.Scancode
	Width   int
	Height  int
	Pointer gesture.Pointer
	Wheel   gesture.Wheel
	Touch   gesture.Touch
}

// Input handles all input processing.
type Input struct {
	events []Event

	// Finger positions arrive normalized; they are scaled to this size.
	width, height int
}

// New creates a new input handler for a window of w×h pixels.
func New(w, h int) *Input {
	return &Input{
		events: make([]Event, 0, 16),
		width:  w,
		height: h,
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0] // Clear previous events

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.width, i.height = int(e.Data1), int(e.Data2)
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  i.width,
					Height: i.height,
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				i.events = append(i.events, Event{
					Type: EventKeyDown,
					Key:  e.Keysym.Scancode,
				})
			}

		case *sdl.MouseMotionEvent:
			i.events = append(i.events, Event{
				Type:    EventPointerMove,
				Pointer: mousePointer(float32(e.X), float32(e.Y), e.Timestamp, e.Which),
			})

		case *sdl.MouseButtonEvent:
			if e.Button != sdl.BUTTON_LEFT {
				continue
			}
			typ := EventPointerDown
			if e.Type == sdl.MOUSEBUTTONUP {
				typ = EventPointerUp
			}
			i.events = append(i.events, Event{
				Type:    typ,
				Pointer: mousePointer(float32(e.X), float32(e.Y), e.Timestamp, e.Which),
			})

		case *sdl.MouseWheelEvent:
			if e.Which == sdl.TOUCH_MOUSEID || e.Y == 0 {
				continue
			}
			// Scrolling up brings the camera closer.
			dy := -float32(e.Y)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				dy = -dy
			}
			i.events = append(i.events, Event{Type: EventWheel, Wheel: gesture.Wheel{DeltaY: dy}})

		case *sdl.TouchFingerEvent:
			t := gesture.Touch{
				ID:   int64(e.FingerID),
				X:    e.X * float32(i.width),
				Y:    e.Y * float32(i.height),
				Time: timestamp(e.Timestamp),
			}
			switch e.Type {
			case sdl.FINGERDOWN:
				i.events = append(i.events, Event{Type: EventTouchDown, Touch: t})
			case sdl.FINGERMOTION:
				i.events = append(i.events, Event{Type: EventTouchMove, Touch: t})
			case sdl.FINGERUP:
				i.events = append(i.events, Event{Type: EventTouchUp, Touch: t})
			}
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// mousePointer builds a pointer event. SDL reports mouse events it emulated
// from touch with the TOUCH_MOUSEID device; those are marked synthetic so
// the real finger events win.
func mousePointer(x, y float32, ts, which uint32) gesture.Pointer {
	return gesture.Pointer{
		X:         x,
		Y:         y,
		Time:      timestamp(ts),
		Source:    gesture.SourceMouse,
		Synthetic: which == sdl.TOUCH_MOUSEID,
	}
}

func timestamp(ms uint32) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

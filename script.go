package spacedit

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in an input script. Coordinates are
// device pixels, the same space hosts report pointer events in.
type scriptStep struct {
	Action string  `json:"action"`
	Touch  bool    `json:"touch,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// scriptFile is the top-level JSON structure for an input script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script is a parsed input script expanded into host events. Supported
// actions are down, move, up, leave, cancel, click and drag; set "touch" to
// emit touch events instead of mouse events.
type Script struct {
	events []PointerEvent
}

// LoadScript parses a JSON input script.
func LoadScript(jsonData []byte) (*Script, error) {
	var file scriptFile
	if err := json.Unmarshal(jsonData, &file); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(file.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	s := &Script{}
	for i, st := range file.Steps {
		switch st.Action {
		case "down":
			s.events = append(s.events, pointerAt(EventPointerDown, st.Touch, st.X, st.Y))
		case "move":
			s.events = append(s.events, pointerAt(EventPointerMove, st.Touch, st.X, st.Y))
		case "up":
			s.events = append(s.events, pointerAt(EventPointerUp, st.Touch, st.X, st.Y))
		case "leave":
			s.events = append(s.events, MouseEvent(EventPointerLeave, st.X, st.Y))
		case "cancel":
			s.events = append(s.events, TouchEvent(EventTouchCancel))
		case "click":
			s.events = append(s.events,
				pointerAt(EventPointerDown, st.Touch, st.X, st.Y),
				pointerAt(EventPointerUp, st.Touch, st.X, st.Y))
		case "drag":
			s.events = append(s.events, DragEvents(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames, st.Touch)...)
		default:
			return nil, fmt.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
	}
	return s, nil
}

// Events returns the expanded event sequence. The slice MUST NOT be mutated.
func (s *Script) Events() []PointerEvent {
	return s.events
}

// Play delivers every event to h in order and returns how many were sent.
func (s *Script) Play(h EventHandler) int {
	for _, ev := range s.events {
		h.HandleEvent(ev)
	}
	return len(s.events)
}

// DragEvents builds a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate steps, a move onto
// (toX, toY), and release there. Minimum frames is 2.
func DragEvents(fromX, fromY, toX, toY float64, frames int, touch bool) []PointerEvent {
	if frames < 2 {
		frames = 2
	}
	events := make([]PointerEvent, 0, frames+1)
	events = append(events, pointerAt(EventPointerDown, touch, fromX, fromY))
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		events = append(events, pointerAt(EventPointerMove, touch, x, y))
	}
	events = append(events,
		pointerAt(EventPointerMove, touch, toX, toY),
		pointerAt(EventPointerUp, touch, toX, toY))
	return events
}

// pointerAt builds a mouse event or the equivalent touch event. Touch
// releases carry no contacts, as hosts report them.
func pointerAt(typ EventType, touch bool, x, y float64) PointerEvent {
	if !touch {
		return MouseEvent(typ, x, y)
	}
	switch typ {
	case EventPointerDown:
		return TouchEvent(EventTouchStart, TouchPoint{ClientX: x, ClientY: y})
	case EventPointerMove:
		return TouchEvent(EventTouchMove, TouchPoint{ClientX: x, ClientY: y})
	default:
		return TouchEvent(EventTouchEnd)
	}
}

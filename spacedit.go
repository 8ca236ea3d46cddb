package spacedit

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 is a 2D vector. Normalized pointer positions and outline points in a
// surface's local plane both use it.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in device pixels. The origin is the
// top-left corner with Y increasing downward, matching a viewport element's
// client bounding box.
type Rect struct {
	X, Y, Width, Height float64
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Empty reports whether the rectangle has zero width or height.
func (r Rect) Empty() bool {
	return r.Width == 0 || r.Height == 0
}

// --- Host input events ---

// EventType identifies a host input event delivered to Engine.HandleEvent.
type EventType uint8

const (
	EventPointerDown  EventType = iota // mouse button pressed
	EventPointerMove                   // mouse moved
	EventPointerUp                     // mouse button released
	EventPointerLeave                  // mouse left the viewport element
	EventTouchStart                    // finger touched down
	EventTouchMove                     // finger moved
	EventTouchEnd                      // finger lifted
	EventTouchCancel                   // touch interrupted by the host
)

var eventTypeNames = [...]string{
	EventPointerDown:  "pointerdown",
	EventPointerMove:  "pointermove",
	EventPointerUp:    "pointerup",
	EventPointerLeave: "pointerleave",
	EventTouchStart:   "touchstart",
	EventTouchMove:    "touchmove",
	EventTouchEnd:     "touchend",
	EventTouchCancel:  "touchcancel",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// PointerSource tells the tracker where to read coordinates from.
type PointerSource uint8

const (
	SourceNone  PointerSource = iota // no usable coordinates
	SourceMouse                      // ClientX/ClientY
	SourceTouch                      // Touches[0]
)

// TouchPoint is one active contact of a touch event in device pixels.
type TouchPoint struct {
	ID               int
	ClientX, ClientY float64
}

// PointerEvent is a host-agnostic input event. Mouse events carry their
// position in ClientX/ClientY; touch events carry the active contacts in
// Touches, of which only the first is used.
type PointerEvent struct {
	Type    EventType
	Source  PointerSource
	ClientX float64
	ClientY float64
	Touches []TouchPoint
}

// MouseEvent builds a mouse-sourced PointerEvent at (x, y).
func MouseEvent(typ EventType, x, y float64) PointerEvent {
	return PointerEvent{Type: typ, Source: SourceMouse, ClientX: x, ClientY: y}
}

// TouchEvent builds a touch-sourced PointerEvent. With no touches the event
// carries no coordinates, which is what hosts report on touchend.
func TouchEvent(typ EventType, touches ...TouchPoint) PointerEvent {
	return PointerEvent{Type: typ, Source: SourceTouch, Touches: touches}
}

// EventHandler consumes PointerEvents. Engine implements it.
type EventHandler interface {
	HandleEvent(ev PointerEvent)
}

// --- Axes ---

// Axis is a bitmask of world axes.
type Axis uint8

const (
	AxisX Axis = 1 << iota
	AxisY
	AxisZ

	AxisNone Axis = 0
	AxisAll       = AxisX | AxisY | AxisZ
)

// Has reports whether every axis in other is set in a.
func (a Axis) Has(other Axis) bool {
	return a&other == other
}

func (a Axis) String() string {
	if a == AxisNone {
		return "none"
	}
	var b strings.Builder
	if a.Has(AxisX) {
		b.WriteByte('x')
	}
	if a.Has(AxisY) {
		b.WriteByte('y')
	}
	if a.Has(AxisZ) {
		b.WriteByte('z')
	}
	return b.String()
}

// ParseAxis parses a string such as "xy" or "z" into an Axis mask.
// Letters are case-insensitive and may repeat; "none" and "" yield AxisNone.
func ParseAxis(s string) (Axis, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" {
		return AxisNone, nil
	}
	var a Axis
	for _, r := range s {
		switch r {
		case 'x':
			a |= AxisX
		case 'y':
			a |= AxisY
		case 'z':
			a |= AxisZ
		default:
			return AxisNone, fmt.Errorf("spacedit: unknown axis %q in %q", r, s)
		}
	}
	return a, nil
}

// --- Rounding ---

// RoundVec rounds each component of v to the given number of decimal places,
// half away from zero.
func RoundVec(v mgl64.Vec3, places int) mgl64.Vec3 {
	scale := math.Pow(10, float64(places))
	return mgl64.Vec3{
		math.Round(v[0]*scale) / scale,
		math.Round(v[1]*scale) / scale,
		math.Round(v[2]*scale) / scale,
	}
}

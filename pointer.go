package spacedit

import "errors"

// ErrNoViewport is returned when a tracker or engine is built without a
// viewport to measure pointer positions against.
var ErrNoViewport = errors.New("spacedit: viewport is required")

// Viewport reports the current client bounding rectangle of the element
// pointer events are measured against. It is queried on every update so
// resizes and scrolling are picked up without notification.
type Viewport interface {
	Bounds() Rect
}

// StaticViewport is a Viewport with a fixed rectangle.
type StaticViewport Rect

// Bounds returns the fixed rectangle.
func (v StaticViewport) Bounds() Rect { return Rect(v) }

// PointerTracker converts raw device coordinates into normalized device
// coordinates relative to a viewport: X is -1 at the left edge and +1 at the
// right edge, Y is +1 at the top edge and -1 at the bottom edge. Positions
// outside the viewport are not clamped.
type PointerTracker struct {
	viewport Viewport
	position Vec2
}

// NewPointerTracker creates a tracker for the given viewport. The initial
// position is the viewport center.
func NewPointerTracker(viewport Viewport) (*PointerTracker, error) {
	if viewport == nil {
		return nil, ErrNoViewport
	}
	return &PointerTracker{viewport: viewport}, nil
}

// Position returns the last normalized position.
func (t *PointerTracker) Position() Vec2 {
	return t.position
}

// Update reads the event's coordinates and stores the normalized position.
// Mouse events use ClientX/ClientY and touch events use the first contact.
// Events without coordinates, and viewports with zero width or height, leave
// the position unchanged and report false.
func (t *PointerTracker) Update(ev PointerEvent) (Vec2, bool) {
	var cx, cy float64
	switch {
	case ev.Source == SourceMouse:
		cx, cy = ev.ClientX, ev.ClientY
	case ev.Source == SourceTouch && len(ev.Touches) > 0:
		cx, cy = ev.Touches[0].ClientX, ev.Touches[0].ClientY
	default:
		return t.position, false
	}

	bounds := t.viewport.Bounds()
	if bounds.Empty() {
		return t.position, false
	}
	t.position = Normalize(cx, cy, bounds)
	return t.position, true
}

// Normalize maps a device-pixel position to normalized device coordinates
// relative to r. The result is only meaningful for non-empty rectangles.
func Normalize(clientX, clientY float64, r Rect) Vec2 {
	return Vec2{
		X: (clientX-r.X)/(r.Right()-r.X)*2 - 1,
		Y: -((clientY-r.Y)/(r.Bottom()-r.Y))*2 + 1,
	}
}

// Denormalize is the inverse of Normalize: it maps normalized device
// coordinates back to device pixels inside r.
func Denormalize(p Vec2, r Rect) (clientX, clientY float64) {
	return r.X + (p.X+1)/2*r.Width, r.Y + (1-p.Y)/2*r.Height
}

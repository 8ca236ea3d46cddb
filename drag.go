package spacedit

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultSnapUnit is the grid spacing applied to dragged positions.
const DefaultSnapUnit = 12.0

// DragState is the lifecycle state of a DragSession.
type DragState uint8

const (
	DragIdle     DragState = iota // no object selected
	DragArmed                     // object selected, not moved yet
	DragDragging                  // at least one move applied
)

func (s DragState) String() string {
	switch s {
	case DragIdle:
		return "idle"
	case DragArmed:
		return "armed"
	case DragDragging:
		return "dragging"
	}
	return "unknown"
}

// Placement is what a drag needs to know about an object when it is armed:
// its position in its parent's space and the parent's world matrix.
type Placement struct {
	Local       mgl64.Vec3
	ParentWorld mgl64.Mat4
}

// SnapValue rounds v to the nearest multiple of unit. Halves round toward
// positive infinity, so -6 snaps to 0 and 6 snaps to 12 with a unit of 12.
func SnapValue(v, unit float64) float64 {
	if unit <= 0 {
		return v
	}
	return math.Floor(v/unit+0.5) * unit
}

// Snapper snaps the selected axes of a vector to a grid. A zero Unit or an
// empty Axes mask leaves vectors unchanged.
type Snapper struct {
	Unit float64
	Axes Axis
}

// Snap returns v with the selected components snapped.
func (s Snapper) Snap(v mgl64.Vec3) mgl64.Vec3 {
	for i, a := range [3]Axis{AxisX, AxisY, AxisZ} {
		if s.Axes.Has(a) {
			v[i] = SnapValue(v[i], s.Unit)
		}
	}
	return v
}

// PlanarAxes returns the two axes spanning the plane with the given normal:
// every axis except the normal's dominant one.
func PlanarAxes(normal mgl64.Vec3) Axis {
	ax, ay, az := math.Abs(normal[0]), math.Abs(normal[1]), math.Abs(normal[2])
	switch {
	case az >= ax && az >= ay:
		return AxisX | AxisY
	case ay >= ax:
		return AxisX | AxisZ
	default:
		return AxisY | AxisZ
	}
}

// DragSession moves one object along a reference plane. Arm captures the
// object's placement and the plane point under the pointer; each Move
// converts the pointer's plane displacement into a snapped position in the
// object's parent space.
type DragSession struct {
	plane    Plane
	snap     Snapper
	deadZone float64

	state     DragState
	objectID  int
	anchor    mgl64.Vec3
	origin    mgl64.Vec3
	parent    mgl64.Mat4
	parentInv mgl64.Mat4
	last      mgl64.Vec3
	current   mgl64.Vec3
}

// NewDragSession creates an idle session on plane. Moves whose plane
// displacement from the anchor stays within deadZone world units are
// ignored until the drag starts.
func NewDragSession(plane Plane, snap Snapper, deadZone float64) *DragSession {
	return &DragSession{plane: plane, snap: snap, deadZone: deadZone}
}

// State returns the session state.
func (d *DragSession) State() DragState { return d.state }

// Active reports whether an object is selected for dragging.
func (d *DragSession) Active() bool { return d.state != DragIdle }

// ObjectID returns the armed object's id. Zero when idle.
func (d *DragSession) ObjectID() int { return d.objectID }

// Anchor returns the plane point captured by Arm.
func (d *DragSession) Anchor() mgl64.Vec3 { return d.anchor }

// Current returns the plane point of the last applied move.
func (d *DragSession) Current() mgl64.Vec3 { return d.current }

// Last returns the last position produced by Move, or the armed origin.
func (d *DragSession) Last() mgl64.Vec3 { return d.last }

// Plane returns the reference plane.
func (d *DragSession) Plane() Plane { return d.plane }

// Arm selects objectID for dragging. A session that is already armed or
// dragging is replaced. A zero ParentWorld is treated as the identity.
func (d *DragSession) Arm(objectID int, anchor mgl64.Vec3, p Placement) {
	if p.ParentWorld == (mgl64.Mat4{}) {
		p.ParentWorld = identityTransform
	}
	d.state = DragArmed
	d.objectID = objectID
	d.anchor = anchor
	d.current = anchor
	d.origin = p.Local
	d.last = p.Local
	d.parent = p.ParentWorld
	d.parentInv = invertTransform(p.ParentWorld)
}

// Move intersects r with the reference plane and returns the new local
// position for the armed object. It reports false when idle, when the ray
// misses the plane, or while inside the dead zone.
func (d *DragSession) Move(r Ray) (mgl64.Vec3, bool) {
	if d.state == DragIdle {
		return mgl64.Vec3{}, false
	}
	current, _, ok := r.IntersectPlane(d.plane)
	if !ok {
		return mgl64.Vec3{}, false
	}
	if d.state == DragArmed && d.deadZone > 0 && current.Sub(d.anchor).Len() <= d.deadZone {
		return mgl64.Vec3{}, false
	}
	pos := d.Target(current)
	d.current = current
	d.last = pos
	d.state = DragDragging
	return pos, true
}

// Target computes the snapped local position for a plane point without
// changing the session. The armed origin is lifted to world space, offset by
// the world displacement from the anchor, and brought back to parent space.
// Only the snapper's axes are snapped; the others pass through.
func (d *DragSession) Target(current mgl64.Vec3) mgl64.Vec3 {
	delta := current.Sub(d.anchor)
	world := transformPoint(d.parent, d.origin).Add(delta)
	return d.snap.Snap(transformPoint(d.parentInv, world))
}

// End finalizes the session, clears every per-drag field and returns the
// state it was in.
func (d *DragSession) End() DragState {
	prev := d.state
	*d = DragSession{plane: d.plane, snap: d.snap, deadZone: d.deadZone}
	return prev
}

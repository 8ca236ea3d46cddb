package spacedit

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrNoCamera is returned by NewEngine without a RayCaster.
	ErrNoCamera = errors.New("spacedit: camera is required")
	// ErrNoScene is returned by NewEngine without a SceneSource.
	ErrNoScene = errors.New("spacedit: scene is required")
)

// SceneSource is the engine's view of the scene being edited.
type SceneSource interface {
	// Surfaces returns the top-level candidates for picking with up-to-date
	// transforms. Children are searched recursively.
	Surfaces() []Surface
	// Placement reports an object's local position and its parent's world
	// matrix. False if the object is unknown.
	Placement(objectID int) (Placement, bool)
	// ApplyLocalPosition moves an object within its parent's space.
	ApplyLocalPosition(objectID int, pos mgl64.Vec3)
}

// Engine turns host pointer events into selections and plane-constrained
// drags. It is single-threaded: call HandleEvent from the host's input loop.
type Engine struct {
	cfg       Config
	tracker   *PointerTracker
	camera    RayCaster
	scene     SceneSource
	picker    *Picker
	plane     Plane
	session   *DragSession
	selection *SelectionBroadcaster
	handlers  handlerRegistry
	store     EventStore
	debug     debugLog

	activated        bool
	selectionEnabled bool
	movementEnabled  bool
}

// NewEngine wires an engine to its collaborators. cfg is completed with
// defaults and validated. The engine starts activated with selection and
// movement enabled.
func NewEngine(cfg Config, viewport Viewport, camera RayCaster, scene SceneSource) (*Engine, error) {
	tracker, err := NewPointerTracker(viewport)
	if err != nil {
		return nil, err
	}
	if camera == nil {
		return nil, ErrNoCamera
	}
	if scene == nil {
		return nil, ErrNoScene
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	plane := cfg.Plane()
	e := &Engine{
		cfg:              cfg,
		tracker:          tracker,
		camera:           camera,
		scene:            scene,
		picker:           NewPicker(NewPrecedence(cfg.Precedence...)),
		plane:            plane,
		session:          NewDragSession(plane, cfg.Snapper(), cfg.DragDeadZone),
		selection:        NewSelectionBroadcaster(),
		debug:            debugLog{opts: cfg.Debug},
		activated:        true,
		selectionEnabled: true,
		movementEnabled:  true,
	}
	return e, nil
}

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// Selection returns the selection broadcaster hosts subscribe to.
func (e *Engine) Selection() *SelectionBroadcaster { return e.selection }

// Session returns the drag session.
func (e *Engine) Session() *DragSession { return e.session }

// Picker returns the picker.
func (e *Engine) Picker() *Picker { return e.picker }

// Pointer returns the last normalized pointer position.
func (e *Engine) Pointer() Vec2 { return e.tracker.Position() }

// SetDebugMode toggles every debug category and node tree checks.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug.opts.Enabled = enabled
	e.debug.opts.PointerLog = enabled
	e.debug.opts.PickLog = enabled
	e.debug.opts.DragLog = enabled
	globalDebug = enabled
}

// Activate enables drag move and finalize handling. Repeated calls are
// no-ops.
func (e *Engine) Activate() {
	if e.activated {
		return
	}
	e.activated = true
	e.debug.dragf("activated")
}

// Deactivate stops drag move and finalize handling and ends any session.
// Repeated calls are no-ops.
func (e *Engine) Deactivate() {
	if !e.activated {
		return
	}
	e.activated = false
	e.endSession(EventPointerLeave)
	e.debug.dragf("deactivated")
}

// Activated reports whether drag handling is active.
func (e *Engine) Activated() bool { return e.activated }

// EnableSelection resumes picking on pointer-down.
func (e *Engine) EnableSelection() { e.selectionEnabled = true }

// DisableSelection ignores pointer-down events.
func (e *Engine) DisableSelection() { e.selectionEnabled = false }

// EnableMovement resumes applying drag moves.
func (e *Engine) EnableMovement() { e.movementEnabled = true }

// DisableMovement ignores drag moves. Selection and finalize still run.
func (e *Engine) DisableMovement() { e.movementEnabled = false }

// HandleEvent dispatches one host event.
func (e *Engine) HandleEvent(ev PointerEvent) {
	switch ev.Type {
	case EventPointerDown, EventTouchStart:
		e.pointerDown(ev)
	case EventPointerMove, EventTouchMove:
		if e.activated {
			e.pointerMove(ev)
		}
	case EventPointerUp, EventPointerLeave, EventTouchEnd, EventTouchCancel:
		if e.activated {
			e.endSession(ev.Type)
		}
	}
}

// pointerDown picks the surface under the pointer, publishes the selection
// and arms a drag. A miss ends any stale session and publishes nothing.
func (e *Engine) pointerDown(ev PointerEvent) {
	if !e.selectionEnabled {
		return
	}
	p, ok := e.tracker.Update(ev)
	if !ok {
		e.debug.pointerf("%s without usable coordinates", ev.Type)
		return
	}
	e.debug.pointerf("%s at (%.4f, %.4f)", ev.Type, p.X, p.Y)

	ray := e.camera.RayFromNDC(p)
	hit, found := e.picker.Pick(ray, e.scene.Surfaces())
	if !found {
		e.debug.pickf("no selectable surface")
		e.endSession(ev.Type)
		return
	}
	e.debug.pickf("object %d %q at distance %.3f", hit.ObjectID, hit.Name, hit.Distance)

	anchor, _, onPlane := ray.IntersectPlane(e.plane)
	if !onPlane {
		anchor = hit.Point
	}

	// A drag still in progress finalizes before the new pick takes over.
	e.endSession(ev.Type)
	placement, ok := e.scene.Placement(hit.ObjectID)
	if ok {
		e.session.Arm(hit.ObjectID, anchor, placement)
		e.debug.dragf("armed object %d from %v", hit.ObjectID, placement.Local)
	} else {
		e.debug.dragf("object %d has no placement", hit.ObjectID)
	}

	sel := SelectionEvent{ObjectID: hit.ObjectID, Point: RoundVec(anchor, e.cfg.DecimalPrecision)}
	e.selection.Publish(sel)
	e.fireSelect(sel)
}

// pointerMove applies one drag step to the armed object.
func (e *Engine) pointerMove(ev PointerEvent) {
	if !e.movementEnabled || !e.session.Active() {
		return
	}
	p, ok := e.tracker.Update(ev)
	if !ok {
		return
	}
	ray := e.camera.RayFromNDC(p)
	wasArmed := e.session.State() == DragArmed
	pos, ok := e.session.Move(ray)
	if !ok {
		return
	}

	id := e.session.ObjectID()
	ctx := e.dragContext(ev.Type)
	if wasArmed {
		e.debug.dragf("start object %d", id)
		e.fireDragStart(ctx)
	}
	e.scene.ApplyLocalPosition(id, pos)
	e.debug.dragf("object %d -> %v", id, pos)
	e.fireDrag(ctx)
}

// endSession finalizes the drag session. Drag end callbacks fire only when
// the object actually moved.
func (e *Engine) endSession(cause EventType) {
	if !e.session.Active() {
		return
	}
	ctx := e.dragContext(cause)
	if e.session.End() == DragDragging {
		e.debug.dragf("end object %d at %v (%s)", ctx.ObjectID, ctx.Position, cause)
		e.fireDragEnd(ctx)
	}
}

func (e *Engine) dragContext(cause EventType) DragContext {
	s := e.session
	return DragContext{
		ObjectID: s.ObjectID(),
		Position: s.Last(),
		Anchor:   s.Anchor(),
		Current:  s.Current(),
		Delta:    s.Current().Sub(s.Anchor()),
		Pointer:  e.tracker.Position(),
		Cause:    cause,
	}
}

// String describes the engine state for debug output.
func (e *Engine) String() string {
	return fmt.Sprintf("Engine{activated:%v selection:%v movement:%v session:%s object:%d}",
		e.activated, e.selectionEnabled, e.movementEnabled, e.session.State(), e.session.ObjectID())
}

package spacedit

import (
	"github.com/go-gl/mathgl/mgl64"
)

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a simple polygon hit area in local coordinates. Concave
// outlines are supported; winding order does not matter.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside the polygon using the even-odd
// crossing rule.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := p.Points[i], p.Points[j]
		if (a.Y > y) != (b.Y > y) &&
			x < (b.X-a.X)*(y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// --- Drag callbacks ---

// DragContext describes one step of a drag on the engine's reference plane.
type DragContext struct {
	ObjectID int
	// Position is the snapped local position applied to the object.
	Position mgl64.Vec3
	// Anchor is the plane point captured at pointer-down.
	Anchor mgl64.Vec3
	// Current is the plane point under the pointer.
	Current mgl64.Vec3
	// Delta is Current - Anchor in world space.
	Delta   mgl64.Vec3
	Pointer Vec2
	// Cause is the host event that produced this step.
	Cause EventType
}

type dragHandler struct {
	id uint32
	fn func(DragContext)
}

type selectHandler struct {
	id uint32
	fn func(SelectionEvent)
}

type callbackKind uint8

const (
	callbackSelect callbackKind = iota
	callbackDragStart
	callbackDrag
	callbackDragEnd
)

type handlerRegistry struct {
	selected  []selectHandler
	dragStart []dragHandler
	drag      []dragHandler
	dragEnd   []dragHandler
	nextID    uint32
}

// CallbackHandle allows removing a registered engine-level callback.
type CallbackHandle struct {
	id   uint32
	reg  *handlerRegistry
	kind callbackKind
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.kind {
	case callbackSelect:
		h.reg.selected = removeSelectHandler(h.reg.selected, h.id)
	case callbackDragStart:
		h.reg.dragStart = removeDragHandler(h.reg.dragStart, h.id)
	case callbackDrag:
		h.reg.drag = removeDragHandler(h.reg.drag, h.id)
	case callbackDragEnd:
		h.reg.dragEnd = removeDragHandler(h.reg.dragEnd, h.id)
	}
}

func removeDragHandler(s []dragHandler, id uint32) []dragHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = dragHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeSelectHandler(s []selectHandler, id uint32) []selectHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = selectHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Engine-level event registration ---

// OnSelect registers a callback fired after each published selection. Unlike
// the selection broadcaster it does not replay past selections.
func (e *Engine) OnSelect(fn func(SelectionEvent)) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.selected = append(e.handlers.selected, selectHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers, kind: callbackSelect}
}

// OnDragStart registers a callback fired on the first move of a drag.
func (e *Engine) OnDragStart(fn func(DragContext)) CallbackHandle {
	return e.addDragHandler(&e.handlers.dragStart, fn, callbackDragStart)
}

// OnDrag registers a callback fired on every move of a drag.
func (e *Engine) OnDrag(fn func(DragContext)) CallbackHandle {
	return e.addDragHandler(&e.handlers.drag, fn, callbackDrag)
}

// OnDragEnd registers a callback fired when a drag that moved ends.
func (e *Engine) OnDragEnd(fn func(DragContext)) CallbackHandle {
	return e.addDragHandler(&e.handlers.dragEnd, fn, callbackDragEnd)
}

func (e *Engine) addDragHandler(list *[]dragHandler, fn func(DragContext), kind callbackKind) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	*list = append(*list, dragHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers, kind: kind}
}

func (e *Engine) fireSelect(ev SelectionEvent) {
	for _, h := range e.handlers.selected {
		h.fn(ev)
	}
	e.emitInteractionEvent(InteractionSelect, ev.ObjectID, ev.Point, mgl64.Vec3{}, mgl64.Vec3{})
}

func (e *Engine) fireDragStart(ctx DragContext) {
	for _, h := range e.handlers.dragStart {
		h.fn(ctx)
	}
	e.emitInteractionEvent(InteractionDragStart, ctx.ObjectID, ctx.Current, ctx.Position, ctx.Delta)
}

func (e *Engine) fireDrag(ctx DragContext) {
	for _, h := range e.handlers.drag {
		h.fn(ctx)
	}
	e.emitInteractionEvent(InteractionDrag, ctx.ObjectID, ctx.Current, ctx.Position, ctx.Delta)
}

func (e *Engine) fireDragEnd(ctx DragContext) {
	for _, h := range e.handlers.dragEnd {
		h.fn(ctx)
	}
	e.emitInteractionEvent(InteractionDragEnd, ctx.ObjectID, ctx.Current, ctx.Position, ctx.Delta)
}

// --- ECS bridge ---

// EventStore is the interface for optional ECS integration.
// When set on an Engine, interaction events are forwarded to it.
type EventStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionType identifies an InteractionEvent.
type InteractionType uint8

const (
	InteractionSelect    InteractionType = iota // object picked on pointer-down
	InteractionDragStart                        // first move of a drag
	InteractionDrag                             // any move of a drag
	InteractionDragEnd                          // drag finalized
)

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type     InteractionType
	ObjectID int
	// Point is the world plane point: the rounded anchor for selections,
	// the pointer's plane point for drags.
	Point mgl64.Vec3
	// Drag fields (zero for InteractionSelect)
	Position mgl64.Vec3
	Delta    mgl64.Vec3
}

// SetEventStore sets the optional ECS bridge. Pass nil to disable.
func (e *Engine) SetEventStore(store EventStore) {
	e.store = store
}

func (e *Engine) emitInteractionEvent(typ InteractionType, objectID int, point, position, delta mgl64.Vec3) {
	if e.store == nil {
		return
	}
	e.store.EmitEvent(InteractionEvent{
		Type:     typ,
		ObjectID: objectID,
		Point:    point,
		Position: position,
		Delta:    delta,
	})
}

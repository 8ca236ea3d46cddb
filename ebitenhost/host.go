// Package ebitenhost feeds Ebitengine mouse and touch input into a spacedit
// engine and reports the window as its viewport.
package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/spacedit"
)

type touchState struct {
	id   ebiten.TouchID
	x, y int
}

// frameInput is the raw pointer state polled for one tick.
type frameInput struct {
	cursorX, cursorY int
	mouseDown        bool
	touches          []touchState
}

// Host translates polled Ebitengine input into spacedit pointer events.
// Call Update from the game's Update and Layout from the game's Layout.
// Only the first active touch contact drives the engine.
type Host struct {
	handler spacedit.EventHandler
	width   int
	height  int

	queue []spacedit.PointerEvent

	mouseDown    bool
	lastX, lastY int
	hasLast      bool
	inside       bool

	touching     bool
	touch        touchState
	touchIDs     []ebiten.TouchID
	touchScratch []touchState
	out          []spacedit.PointerEvent
}

// New creates a host delivering events to handler. The handler may be nil
// and set later with SetHandler, since an engine needs its viewport first.
func New(handler spacedit.EventHandler) *Host {
	return &Host{handler: handler}
}

// SetHandler replaces the event receiver.
func (h *Host) SetHandler(handler spacedit.EventHandler) {
	h.handler = handler
}

// Bounds implements spacedit.Viewport. The viewport is the logical screen
// set by the last Layout call.
func (h *Host) Bounds() spacedit.Rect {
	return spacedit.Rect{Width: float64(h.width), Height: float64(h.height)}
}

// Layout records the logical screen size and returns it unchanged.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	h.width, h.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Inject queues synthetic events. While the queue is non-empty each Update
// delivers one queued event instead of polling real input.
func (h *Host) Inject(events ...spacedit.PointerEvent) {
	h.queue = append(h.queue, events...)
}

// Pending returns the number of queued synthetic events.
func (h *Host) Pending() int {
	return len(h.queue)
}

// Update delivers one injected event or the events derived from this tick's
// real input.
func (h *Host) Update() error {
	if len(h.queue) > 0 {
		ev := h.queue[0]
		h.queue[0] = spacedit.PointerEvent{}
		h.queue = h.queue[1:]
		h.deliver(ev)
		return nil
	}
	for _, ev := range h.translate(h.poll()) {
		h.deliver(ev)
	}
	return nil
}

func (h *Host) deliver(ev spacedit.PointerEvent) {
	if h.handler != nil {
		h.handler.HandleEvent(ev)
	}
}

// poll reads the current mouse and touch state.
func (h *Host) poll() frameInput {
	mx, my := ebiten.CursorPosition()
	in := frameInput{
		cursorX:   mx,
		cursorY:   my,
		mouseDown: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	}
	// A press and release within one tick still counts as a press.
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		in.mouseDown = true
	}

	h.touchIDs = ebiten.AppendTouchIDs(h.touchIDs[:0])
	h.touchScratch = h.touchScratch[:0]
	for _, id := range h.touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		h.touchScratch = append(h.touchScratch, touchState{id: id, x: tx, y: ty})
	}
	in.touches = h.touchScratch
	return in
}

// translate diffs in against the previous tick and returns the resulting
// events. The returned slice is reused by the next call.
func (h *Host) translate(in frameInput) []spacedit.PointerEvent {
	h.out = h.out[:0]
	x, y := float64(in.cursorX), float64(in.cursorY)
	inside := in.cursorX >= 0 && in.cursorY >= 0 && in.cursorX < h.width && in.cursorY < h.height
	moved := !h.hasLast || in.cursorX != h.lastX || in.cursorY != h.lastY

	switch {
	case in.mouseDown && !h.mouseDown:
		if inside {
			h.out = append(h.out, spacedit.MouseEvent(spacedit.EventPointerDown, x, y))
			h.mouseDown = true
		}
	case !in.mouseDown && h.mouseDown:
		h.out = append(h.out, spacedit.MouseEvent(spacedit.EventPointerUp, x, y))
		h.mouseDown = false
	case moved && h.hasLast && inside:
		h.out = append(h.out, spacedit.MouseEvent(spacedit.EventPointerMove, x, y))
	}
	if h.inside && !inside {
		h.out = append(h.out, spacedit.MouseEvent(spacedit.EventPointerLeave, x, y))
	}
	h.inside = inside
	h.lastX, h.lastY, h.hasLast = in.cursorX, in.cursorY, true

	h.translateTouch(in.touches)
	return h.out
}

func (h *Host) translateTouch(touches []touchState) {
	if !h.touching {
		if len(touches) == 0 {
			return
		}
		h.touch = touches[0]
		h.touching = true
		h.out = append(h.out, spacedit.TouchEvent(spacedit.EventTouchStart, touchPoint(h.touch)))
		return
	}
	for _, t := range touches {
		if t.id != h.touch.id {
			continue
		}
		if t.x != h.touch.x || t.y != h.touch.y {
			h.touch = t
			h.out = append(h.out, spacedit.TouchEvent(spacedit.EventTouchMove, touchPoint(t)))
		}
		return
	}
	h.touching = false
	h.out = append(h.out, spacedit.TouchEvent(spacedit.EventTouchEnd))
}

func touchPoint(t touchState) spacedit.TouchPoint {
	return spacedit.TouchPoint{ID: int(t.id), ClientX: float64(t.x), ClientY: float64(t.y)}
}

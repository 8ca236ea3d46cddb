package ebitenhost

import (
	"testing"

	"github.com/phanxgames/spacedit"
)

type recorder struct {
	events []spacedit.PointerEvent
}

func (r *recorder) HandleEvent(ev spacedit.PointerEvent) {
	r.events = append(r.events, ev)
}

func newHost() (*Host, *recorder) {
	rec := &recorder{}
	h := New(rec)
	h.Layout(800, 600)
	return h, rec
}

func types(events []spacedit.PointerEvent) []spacedit.EventType {
	out := make([]spacedit.EventType, len(events))
	for i, ev := range events {
		out[i] = ev.Type
	}
	return out
}

func assertTypes(t *testing.T, got []spacedit.PointerEvent, want ...spacedit.EventType) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", types(got), want)
	}
	for i := range want {
		if got[i].Type != want[i] {
			t.Errorf("events[%d] = %s, want %s", i, got[i].Type, want[i])
		}
	}
}

func TestLayoutSetsBounds(t *testing.T) {
	h, _ := newHost()
	if w, hh := h.Layout(1024, 768); w != 1024 || hh != 768 {
		t.Errorf("Layout = (%d, %d)", w, hh)
	}
	if b := h.Bounds(); b.Width != 1024 || b.Height != 768 {
		t.Errorf("Bounds = %+v", b)
	}
	var _ spacedit.Viewport = h
}

func TestInjectDeliversOnePerUpdate(t *testing.T) {
	h, rec := newHost()
	h.Inject(
		spacedit.MouseEvent(spacedit.EventPointerDown, 10, 10),
		spacedit.MouseEvent(spacedit.EventPointerUp, 10, 10),
	)
	if h.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", h.Pending())
	}
	if err := h.Update(); err != nil {
		t.Fatal(err)
	}
	assertTypes(t, rec.events, spacedit.EventPointerDown)
	if err := h.Update(); err != nil {
		t.Fatal(err)
	}
	assertTypes(t, rec.events, spacedit.EventPointerDown, spacedit.EventPointerUp)
	if h.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", h.Pending())
	}
}

func TestTranslateMouseSequence(t *testing.T) {
	h, _ := newHost()

	// First frame only records the cursor.
	assertTypes(t, h.translate(frameInput{cursorX: 100, cursorY: 100}))

	evs := h.translate(frameInput{cursorX: 100, cursorY: 100, mouseDown: true})
	assertTypes(t, evs, spacedit.EventPointerDown)
	if evs[0].ClientX != 100 || evs[0].Source != spacedit.SourceMouse {
		t.Errorf("down = %+v", evs[0])
	}

	assertTypes(t, h.translate(frameInput{cursorX: 100, cursorY: 100, mouseDown: true}))
	assertTypes(t, h.translate(frameInput{cursorX: 120, cursorY: 90, mouseDown: true}), spacedit.EventPointerMove)
	assertTypes(t, h.translate(frameInput{cursorX: 120, cursorY: 90}), spacedit.EventPointerUp)
	assertTypes(t, h.translate(frameInput{cursorX: 130, cursorY: 90}), spacedit.EventPointerMove)
}

func TestTranslateLeave(t *testing.T) {
	h, _ := newHost()
	h.translate(frameInput{cursorX: 10, cursorY: 10})
	assertTypes(t, h.translate(frameInput{cursorX: -5, cursorY: 10}), spacedit.EventPointerLeave)
	// Staying outside reports nothing further.
	assertTypes(t, h.translate(frameInput{cursorX: -8, cursorY: 10}))
}

func TestTranslatePressOutsideIgnored(t *testing.T) {
	h, _ := newHost()
	h.translate(frameInput{cursorX: 900, cursorY: 10})
	assertTypes(t, h.translate(frameInput{cursorX: 900, cursorY: 10, mouseDown: true}))
}

func TestTranslateTouch(t *testing.T) {
	h, _ := newHost()
	h.translate(frameInput{})

	evs := h.translate(frameInput{touches: []touchState{{id: 3, x: 50, y: 60}, {id: 4, x: 1, y: 1}}})
	assertTypes(t, evs, spacedit.EventTouchStart)
	if len(evs[0].Touches) != 1 || evs[0].Touches[0].ID != 3 || evs[0].Touches[0].ClientY != 60 {
		t.Errorf("touchstart = %+v", evs[0])
	}

	// Secondary contacts are ignored.
	assertTypes(t, h.translate(frameInput{touches: []touchState{{id: 3, x: 50, y: 60}, {id: 4, x: 9, y: 9}}}))
	assertTypes(t, h.translate(frameInput{touches: []touchState{{id: 3, x: 70, y: 60}}}), spacedit.EventTouchMove)

	evs = h.translate(frameInput{touches: []touchState{{id: 4, x: 9, y: 9}}})
	assertTypes(t, evs, spacedit.EventTouchEnd)
	if len(evs[0].Touches) != 0 {
		t.Error("touchend should carry no contacts")
	}
}

func TestHostDrivesEngine(t *testing.T) {
	scene := spacedit.NewScene()
	shape := spacedit.NewShape([]spacedit.Vec2{{X: -12, Y: -12}, {X: 12, Y: -12}, {X: 12, Y: 12}, {X: -12, Y: 12}})
	scene.Root().AddChild(shape)

	host := New(nil)
	host.Layout(800, 600)
	engine, err := spacedit.NewEngine(spacedit.Config{}, host, spacedit.NewOrthographicCamera(800, 600), scene)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	host.SetHandler(engine)

	var selected int
	engine.Selection().SubscribeObject(func(id int) { selected = id })
	host.Inject(spacedit.DragEvents(400, 300, 424, 300, 3, false)...)
	for host.Pending() > 0 {
		if err := host.Update(); err != nil {
			t.Fatal(err)
		}
	}
	if selected != shape.ID {
		t.Errorf("selected = %d, want %d", selected, shape.ID)
	}
	if shape.Position[0] != 24 {
		t.Errorf("X = %v, want 24", shape.Position[0])
	}
}

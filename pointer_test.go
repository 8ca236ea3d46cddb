package spacedit

import (
	"errors"
	"testing"
)

// movingViewport is a Viewport whose rectangle tests change in place.
type movingViewport struct {
	r Rect
}

func (v *movingViewport) Bounds() Rect { return v.r }

func TestNewPointerTrackerRequiresViewport(t *testing.T) {
	if _, err := NewPointerTracker(nil); !errors.Is(err, ErrNoViewport) {
		t.Errorf("err = %v, want ErrNoViewport", err)
	}
}

func TestPointerTrackerCorners(t *testing.T) {
	vp := StaticViewport{X: 100, Y: 50, Width: 800, Height: 600}
	tr, err := NewPointerTracker(vp)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		x, y   float64
		wx, wy float64
	}{
		{"top-left", 100, 50, -1, 1},
		{"top-right", 900, 50, 1, 1},
		{"bottom-left", 100, 650, -1, -1},
		{"bottom-right", 900, 650, 1, -1},
		{"center", 500, 350, 0, 0},
		{"outside left not clamped", -300, 350, -2, 0},
		{"outside below not clamped", 500, 950, 0, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := tr.Update(MouseEvent(EventPointerMove, tt.x, tt.y))
			if !ok {
				t.Fatal("Update reported no change")
			}
			assertNear(t, "x", p.X, tt.wx)
			assertNear(t, "y", p.Y, tt.wy)
		})
	}
}

func TestPointerTrackerInsideRange(t *testing.T) {
	tr, _ := NewPointerTracker(StaticViewport{Width: 640, Height: 480})
	for x := 0.0; x <= 640; x += 37 {
		for y := 0.0; y <= 480; y += 29 {
			p, _ := tr.Update(MouseEvent(EventPointerMove, x, y))
			if p.X < -1 || p.X > 1 || p.Y < -1 || p.Y > 1 {
				t.Fatalf("(%v, %v) -> %v outside [-1, 1]", x, y, p)
			}
		}
	}
}

func TestPointerTrackerTouchUsesFirstContact(t *testing.T) {
	tr, _ := NewPointerTracker(StaticViewport{Width: 200, Height: 100})
	p, ok := tr.Update(TouchEvent(EventTouchStart,
		TouchPoint{ID: 3, ClientX: 150, ClientY: 25},
		TouchPoint{ID: 4, ClientX: 0, ClientY: 0},
	))
	if !ok {
		t.Fatal("touch update reported no change")
	}
	assertNear(t, "x", p.X, 0.5)
	assertNear(t, "y", p.Y, 0.5)
}

func TestPointerTrackerInvalidEventIsNoOp(t *testing.T) {
	tr, _ := NewPointerTracker(StaticViewport{Width: 200, Height: 100})
	tr.Update(MouseEvent(EventPointerMove, 200, 0))

	tests := []struct {
		name string
		ev   PointerEvent
	}{
		{"no source", PointerEvent{Type: EventPointerMove, ClientX: 10, ClientY: 10}},
		{"touch without contacts", TouchEvent(EventTouchEnd)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := tr.Update(tt.ev)
			if ok {
				t.Error("Update should report no change")
			}
			if p != (Vec2{1, 1}) || tr.Position() != (Vec2{1, 1}) {
				t.Errorf("position = %v, want unchanged (1, 1)", tr.Position())
			}
		})
	}
}

func TestPointerTrackerZeroSizeViewport(t *testing.T) {
	vp := &movingViewport{r: Rect{Width: 100, Height: 100}}
	tr, _ := NewPointerTracker(vp)
	tr.Update(MouseEvent(EventPointerMove, 100, 100))

	vp.r = Rect{Width: 0, Height: 100}
	if _, ok := tr.Update(MouseEvent(EventPointerMove, 0, 0)); ok {
		t.Error("zero-width viewport should not update")
	}
	if tr.Position() != (Vec2{1, -1}) {
		t.Errorf("position = %v, want unchanged (1, -1)", tr.Position())
	}
}

func TestPointerTrackerFollowsViewportChanges(t *testing.T) {
	vp := &movingViewport{r: Rect{Width: 100, Height: 100}}
	tr, _ := NewPointerTracker(vp)

	p, _ := tr.Update(MouseEvent(EventPointerMove, 100, 50))
	assertNear(t, "x before scroll", p.X, 1)

	// The element scrolled 50px to the right.
	vp.r.X = 50
	p, _ = tr.Update(MouseEvent(EventPointerMove, 100, 50))
	assertNear(t, "x after scroll", p.X, 0)
}

func TestDenormalizeInvertsNormalize(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 300, Height: 200}
	for _, p := range []Vec2{{0, 0}, {-1, 1}, {0.25, -0.75}, {1.5, 2}} {
		x, y := Denormalize(p, r)
		got := Normalize(x, y, r)
		assertNear(t, "x", got.X, p.X)
		assertNear(t, "y", got.Y, p.Y)
	}
}

package spacedit

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestReplayNoValueBeforePublish(t *testing.T) {
	r := NewReplay[int]()
	var calls int
	r.Subscribe(func(int) { calls++ })
	if calls != 0 {
		t.Errorf("calls = %d before any publish, want 0", calls)
	}
	if _, ok := r.Latest(); ok {
		t.Error("Latest should report no value")
	}
}

func TestReplayDeliversLatestOnSubscribe(t *testing.T) {
	r := NewReplay[string]()
	r.Publish("a")
	r.Publish("b")

	var got []string
	r.Subscribe(func(s string) { got = append(got, s) })
	if len(got) != 1 || got[0] != "b" {
		t.Fatalf("got = %v, want [b]", got)
	}

	r.Publish("c")
	if len(got) != 2 || got[1] != "c" {
		t.Errorf("got = %v, want [b c]", got)
	}
}

func TestReplayObserversRunInOrder(t *testing.T) {
	r := NewReplay[int]()
	var order []int
	r.Subscribe(func(int) { order = append(order, 1) })
	r.Subscribe(func(int) { order = append(order, 2) })
	r.Publish(0)
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("order = %v, want [1 2]", order)
	}
}

func TestReplaySubscriptionRemove(t *testing.T) {
	r := NewReplay[int]()
	var calls int
	sub := r.Subscribe(func(int) { calls++ })
	r.Publish(1)
	sub.Remove()
	sub.Remove()
	r.Publish(2)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
	Subscription{}.Remove()
}

func TestReplayRemoveDuringPublish(t *testing.T) {
	r := NewReplay[int]()
	var a, b int
	var subA Subscription
	subA = r.Subscribe(func(int) {
		a++
		subA.Remove()
	})
	r.Subscribe(func(int) { b++ })

	r.Publish(1)
	r.Publish(2)
	if a != 1 || b != 2 {
		t.Errorf("a = %d, b = %d, want 1, 2", a, b)
	}
}

func TestReplaySubscribeDuringPublish(t *testing.T) {
	r := NewReplay[int]()
	var inner []int
	var added bool
	r.Subscribe(func(v int) {
		if !added {
			added = true
			r.Subscribe(func(v int) { inner = append(inner, v) })
		}
	})
	r.Publish(1)
	// The new observer sees the replayed value immediately, then later ones.
	r.Publish(2)
	if len(inner) != 2 || inner[0] != 1 || inner[1] != 2 {
		t.Errorf("inner = %v, want [1 2]", inner)
	}
}

func TestSelectionBroadcasterChannels(t *testing.T) {
	b := NewSelectionBroadcaster()
	ev := SelectionEvent{ObjectID: 42, Point: mgl64.Vec3{80, 90, 0}}
	b.Publish(ev)

	var id int
	var point mgl64.Vec3
	var full SelectionEvent
	b.SubscribeObject(func(v int) { id = v })
	b.SubscribePoint(func(v mgl64.Vec3) { point = v })
	b.Subscribe(func(v SelectionEvent) { full = v })

	if id != 42 || point != ev.Point || full != ev {
		t.Errorf("replayed (%d, %v, %+v), want %+v", id, point, full, ev)
	}
	if latest, ok := b.Latest(); !ok || latest != ev {
		t.Errorf("Latest = %+v, %v", latest, ok)
	}
}

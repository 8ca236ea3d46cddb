package spacedit

import "github.com/go-gl/mathgl/mgl64"

// unsubscriber is implemented by every Replay instantiation so a
// non-generic Subscription can refer to it.
type unsubscriber interface {
	unsubscribe(id uint32)
}

// Subscription allows removing a registered observer.
type Subscription struct {
	id    uint32
	owner unsubscriber
}

// Remove unregisters the observer. Removing twice is a no-op.
func (s Subscription) Remove() {
	if s.owner == nil {
		return
	}
	s.owner.unsubscribe(s.id)
}

type replayObserver[T any] struct {
	id uint32
	fn func(T)
}

// Replay is a single-producer channel that remembers the latest value. A new
// observer is immediately called with that value, if any, and then with
// every later publication. Observers run synchronously in registration order.
type Replay[T any] struct {
	observers []replayObserver[T]
	nextID    uint32
	latest    T
	has       bool
}

// NewReplay creates an empty channel.
func NewReplay[T any]() *Replay[T] {
	return &Replay[T]{}
}

// Publish stores v as the latest value and delivers it to every observer.
// Observers added or removed during delivery take effect from the next
// publication.
func (r *Replay[T]) Publish(v T) {
	r.latest = v
	r.has = true
	for _, o := range r.observers {
		o.fn(v)
	}
}

// Subscribe registers fn. If a value was published before, fn is called with
// the latest one before Subscribe returns.
func (r *Replay[T]) Subscribe(fn func(T)) Subscription {
	r.nextID++
	id := r.nextID
	r.observers = append(r.observers, replayObserver[T]{id: id, fn: fn})
	if r.has {
		fn(r.latest)
	}
	return Subscription{id: id, owner: r}
}

// Latest returns the most recently published value.
func (r *Replay[T]) Latest() (T, bool) {
	return r.latest, r.has
}

// Len returns the number of registered observers.
func (r *Replay[T]) Len() int {
	return len(r.observers)
}

// unsubscribe rebuilds the observer slice so a Publish in progress keeps
// iterating its own copy.
func (r *Replay[T]) unsubscribe(id uint32) {
	for i := range r.observers {
		if r.observers[i].id == id {
			kept := make([]replayObserver[T], 0, len(r.observers)-1)
			kept = append(kept, r.observers[:i]...)
			r.observers = append(kept, r.observers[i+1:]...)
			return
		}
	}
}

// SelectionEvent is published on pointer-down over a selectable surface.
type SelectionEvent struct {
	ObjectID int
	// Point is the anchor on the reference plane rounded to the configured
	// decimal precision.
	Point mgl64.Vec3
}

// SelectionBroadcaster publishes selections on three replaying channels:
// the object id, the click point, and the pair. All three are updated by
// each Publish.
type SelectionBroadcaster struct {
	objects *Replay[int]
	points  *Replay[mgl64.Vec3]
	events  *Replay[SelectionEvent]
}

// NewSelectionBroadcaster creates a broadcaster with no selection.
func NewSelectionBroadcaster() *SelectionBroadcaster {
	return &SelectionBroadcaster{
		objects: NewReplay[int](),
		points:  NewReplay[mgl64.Vec3](),
		events:  NewReplay[SelectionEvent](),
	}
}

// Publish delivers ev on all channels.
func (b *SelectionBroadcaster) Publish(ev SelectionEvent) {
	b.objects.Publish(ev.ObjectID)
	b.points.Publish(ev.Point)
	b.events.Publish(ev)
}

// SubscribeObject observes selected object ids.
func (b *SelectionBroadcaster) SubscribeObject(fn func(int)) Subscription {
	return b.objects.Subscribe(fn)
}

// SubscribePoint observes selection points.
func (b *SelectionBroadcaster) SubscribePoint(fn func(mgl64.Vec3)) Subscription {
	return b.points.Subscribe(fn)
}

// Subscribe observes complete selection events.
func (b *SelectionBroadcaster) Subscribe(fn func(SelectionEvent)) Subscription {
	return b.events.Subscribe(fn)
}

// Latest returns the most recent selection.
func (b *SelectionBroadcaster) Latest() (SelectionEvent, bool) {
	return b.events.Latest()
}

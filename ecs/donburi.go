package ecs

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/phanxgames/spacedit"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for spacedit interaction
// events. Subscribe to this in your ECS systems to receive selection and
// drag events.
var InteractionEventType = events.NewEventType[spacedit.InteractionEvent]()

// SelectionData mirrors the engine's current selection and drag state.
type SelectionData struct {
	ObjectID int
	// Point is the last reported plane point.
	Point mgl64.Vec3
	// Position is the last applied local position while dragging.
	Position mgl64.Vec3
	Dragging bool
}

// Selection is the component stored on the entity created by
// NewDonburiStore. It is updated as events are emitted, before they are
// processed.
var Selection = donburi.NewComponentType[SelectionData]()

type donburiStore struct {
	world  donburi.World
	entity donburi.Entity
}

// NewDonburiStore creates an EventStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents. The store also creates
// one entity carrying the Selection component.
func NewDonburiStore(world donburi.World) spacedit.EventStore {
	return &donburiStore{
		world:  world,
		entity: world.Create(Selection),
	}
}

// SelectionEntity returns the entity holding the Selection component of a
// store created by NewDonburiStore.
func SelectionEntity(store spacedit.EventStore) (donburi.Entity, bool) {
	s, ok := store.(*donburiStore)
	if !ok {
		return donburi.Null, false
	}
	return s.entity, true
}

func (s *donburiStore) EmitEvent(event spacedit.InteractionEvent) {
	if s.world.Valid(s.entity) {
		entry := s.world.Entry(s.entity)
		state := *Selection.Get(entry)
		state.ObjectID = event.ObjectID
		state.Point = event.Point
		switch event.Type {
		case spacedit.InteractionSelect:
			state.Dragging = false
		case spacedit.InteractionDragStart, spacedit.InteractionDrag:
			state.Position = event.Position
			state.Dragging = true
		case spacedit.InteractionDragEnd:
			state.Position = event.Position
			state.Dragging = false
		}
		Selection.SetValue(entry, state)
	}
	InteractionEventType.Publish(s.world, event)
}

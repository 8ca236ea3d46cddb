// Package ecs provides ECS adapters for spacedit's interaction events.
//
// The primary adapter is [NewDonburiStore], which bridges spacedit
// interaction events (select, drag start, drag, drag end) into a [Donburi]
// world as typed events, and keeps a [Selection] component current on a
// dedicated entity. Subscribe to [InteractionEventType] in your ECS systems
// to receive the events.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	engine.SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs

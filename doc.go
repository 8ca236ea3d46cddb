// Package spacedit is the pointer-interaction engine of an editor that places
// flat 2D shapes in 3D space.
//
// It turns raw pointer events from a host (mouse or touch) into three things:
// a normalized pointer position, a selection of the scene element under the
// pointer, and a plane-constrained, grid-snapped drag of that element.
//
// # Quick start
//
// Build a [Scene], a [Camera] and an [Engine], then feed host events to
// [Engine.HandleEvent]:
//
//	scene := spacedit.NewScene()
//	shape := spacedit.NewShape([]spacedit.Vec2{{-12, -12}, {12, -12}, {12, 12}, {-12, 12}})
//	scene.Root().AddChild(shape)
//
//	cam := spacedit.NewOrthographicCamera(800, 600)
//	viewport := spacedit.StaticViewport{Width: 800, Height: 600}
//	engine, err := spacedit.NewEngine(spacedit.DefaultConfig(), viewport, cam, scene)
//	if err != nil {
//		log.Fatal(err)
//	}
//	engine.Selection().Subscribe(func(ev spacedit.SelectionEvent) {
//		fmt.Println("selected", ev.ObjectID, "at", ev.Point)
//	})
//	engine.HandleEvent(spacedit.MouseEvent(spacedit.EventPointerDown, 400, 300))
//
// The spacedit/ebitenhost package polls Ebitengine input and produces these
// events; spacedit/ecs forwards interaction events into a Donburi world.
//
// # Pointer tracking
//
// [PointerTracker] maps device pixels to normalized device coordinates: X is
// -1 at the left edge and +1 at the right, Y is +1 at the top and -1 at the
// bottom. Mouse events use the event position; touch events use the first
// contact. Positions outside the viewport are not clamped.
//
// # Picking
//
// A [RayCaster] (usually a [Camera]) turns the normalized position into a
// world ray. [Picker] intersects the ray with every visible [Surface],
// recursively, sorts hits nearest first and lets a [Precedence] list decide:
// the best-ranked name wins regardless of distance, the nearest hit wins
// among equal ranks, and unlisted names are never selected. The default list
// is "shape" then "backgroundMesh".
//
// # Selection
//
// Each qualifying pointer-down publishes a [SelectionEvent] on the engine's
// [SelectionBroadcaster]. Its channels replay the latest value to late
// subscribers, so a panel opened after a click still sees the current
// selection.
//
// # Dragging
//
// Pointer-down also arms a [DragSession] for the selected object. Moves
// intersect the pointer ray with the reference plane (z = 0 by default), add
// the displacement from the anchor to the object's original world position,
// convert back to the parent's space and snap to a 12-unit grid. Pointer up,
// leave, touch end and touch cancel finalize the drag.
//
// The engine is single-threaded. Call every method from the host's input
// loop.
package spacedit

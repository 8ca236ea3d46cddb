package spacedit

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// downRay looks straight down -Z at (x, y).
func downRay(x, y float64) Ray {
	return NewRay(mgl64.Vec3{x, y, 100}, mgl64.Vec3{0, 0, -1})
}

// surfacesOf refreshes transforms under a throwaway root and returns the
// nodes as surfaces.
func surfacesOf(nodes ...*Node) []Surface {
	root := NewContainer("root")
	out := make([]Surface, len(nodes))
	for i, n := range nodes {
		root.AddChild(n)
		out[i] = n
	}
	updateWorldTransform(root, identityTransform, false)
	return out
}

func shapeAt(x, y, z float64) *Node {
	n := NewShape(square(10))
	n.SetPosition(x, y, z)
	return n
}

func TestNewPrecedence(t *testing.T) {
	p := NewPrecedence("shape", "backgroundMesh", "shape")
	if tags := p.Tags(); len(tags) != 2 {
		t.Fatalf("Tags = %v, want duplicates dropped", tags)
	}
	if r, ok := p.Rank("shape"); !ok || r != 0 {
		t.Errorf("Rank(shape) = %d, %v", r, ok)
	}
	if r, ok := p.Rank("backgroundMesh"); !ok || r != 1 {
		t.Errorf("Rank(backgroundMesh) = %d, %v", r, ok)
	}
	if _, ok := p.Rank("other"); ok {
		t.Error("unlisted name should have no rank")
	}
}

func TestPickSingleMatchRegardlessOfDistance(t *testing.T) {
	far := shapeAt(0, 0, -50)
	pk := NewPicker(NewPrecedence(NameShape, NameBackground))

	hit, ok := pk.Pick(downRay(0, 0), surfacesOf(far))
	if !ok || hit.ObjectID != far.ID {
		t.Fatalf("Pick = %+v, %v; want shape %d", hit, ok, far.ID)
	}
	assertVec(t, "point", hit.Point, mgl64.Vec3{0, 0, -50}, 1e-9)
	assertNear(t, "distance", hit.Distance, 150)
}

func TestPickPrecedenceBeatsDistance(t *testing.T) {
	bg := NewBackground(200, 200)
	bg.SetPosition(0, 0, 10)
	shape := shapeAt(0, 0, 0)
	pk := NewPicker(NewPrecedence(NameShape, NameBackground))

	surfaces := surfacesOf(bg, shape)
	hits := pk.Intersect(downRay(0, 0), surfaces)
	if len(hits) != 2 || hits[0].Name != NameBackground {
		t.Fatalf("hits = %+v, want background nearest", hits)
	}

	hit, ok := pk.Pick(downRay(0, 0), surfaces)
	if !ok || hit.ObjectID != shape.ID {
		t.Errorf("Pick = %+v, want shape", hit)
	}
}

func TestPickNearestAmongEqualRank(t *testing.T) {
	low := shapeAt(0, 0, 0)
	high := shapeAt(0, 0, 20)
	pk := NewPicker(NewPrecedence(NameShape))

	hit, ok := pk.Pick(downRay(0, 0), surfacesOf(low, high))
	if !ok || hit.ObjectID != high.ID {
		t.Errorf("Pick = %+v, want nearer shape %d", hit, high.ID)
	}
}

func TestPickEqualDistanceKeepsTraversalOrder(t *testing.T) {
	a := shapeAt(0, 0, 0)
	b := shapeAt(0, 0, 0)
	pk := NewPicker(NewPrecedence(NameShape))

	hit, _ := pk.Pick(downRay(0, 0), surfacesOf(a, b))
	if hit.ObjectID != a.ID {
		t.Errorf("Pick = %d, want first in traversal order %d", hit.ObjectID, a.ID)
	}
}

func TestPickUnlistedNamesNeverSelected(t *testing.T) {
	other := NewContainer("gizmo")
	other.HitShape = HitCircle{Radius: 50}
	pk := NewPicker(NewPrecedence(NameShape))

	if hit, ok := pk.Pick(downRay(0, 0), surfacesOf(other)); ok {
		t.Errorf("Pick = %+v, want no selection", hit)
	}
	if hits := pk.Intersect(downRay(0, 0), surfacesOf(other)); len(hits) != 1 {
		t.Errorf("Intersect returned %d hits, want 1", len(hits))
	}
}

func TestPickMiss(t *testing.T) {
	pk := NewPicker(NewPrecedence(NameShape))
	if _, ok := pk.Pick(downRay(500, 500), surfacesOf(shapeAt(0, 0, 0))); ok {
		t.Error("expected miss")
	}
	if _, ok := pk.Pick(downRay(0, 0), nil); ok {
		t.Error("expected miss with no surfaces")
	}
}

func TestPickIsIdempotent(t *testing.T) {
	surfaces := surfacesOf(shapeAt(0, 0, 0), NewBackground(100, 100))
	pk := NewPicker(NewPrecedence(NameShape, NameBackground))

	first, ok1 := pk.Pick(downRay(3, 4), surfaces)
	second, ok2 := pk.Pick(downRay(3, 4), surfaces)
	if ok1 != ok2 || first.ObjectID != second.ObjectID || first.Point != second.Point {
		t.Errorf("picks differ: %+v vs %+v", first, second)
	}
}

func TestPickRecursesIntoChildren(t *testing.T) {
	group := NewContainer("group")
	group.SetPosition(100, 0, 0)
	child := shapeAt(0, 0, 0)
	group.AddChild(child)
	pk := NewPicker(NewPrecedence(NameShape))

	hit, ok := pk.Pick(downRay(100, 0), surfacesOf(group))
	if !ok || hit.ObjectID != child.ID {
		t.Fatalf("Pick = %+v, want nested child %d", hit, child.ID)
	}
	assertNear(t, "local.X", hit.Local.X, 0)
}

func TestPickSkipsInvisibleSubtree(t *testing.T) {
	group := NewContainer("group")
	child := shapeAt(0, 0, 0)
	group.AddChild(child)
	group.Visible = false
	pk := NewPicker(NewPrecedence(NameShape))

	if _, ok := pk.Pick(downRay(0, 0), surfacesOf(group)); ok {
		t.Error("invisible parent should hide its children")
	}
}

func TestPickRotatedSurface(t *testing.T) {
	// Tilted 60 degrees about X; still facing the ray enough to be hit.
	n := NewShape(square(10))
	n.SetRotation(mgl64.QuatRotate(math.Pi/3, mgl64.Vec3{1, 0, 0}))
	pk := NewPicker(NewPrecedence(NameShape))
	surfaces := surfacesOf(n)

	// Local y of 8 lies at world y = 4, z = sin(60)*8.
	hit, ok := pk.Pick(downRay(0, 4), surfaces)
	if !ok {
		t.Fatal("expected hit on tilted surface")
	}
	assertNear(t, "local.Y", hit.Local.Y, 8)
	if !approxEqual(hit.Point[2], math.Sin(math.Pi/3)*8, 1e-9) {
		t.Errorf("Point.Z = %v", hit.Point[2])
	}

	// World y = 6 maps to local y = 12, outside the square.
	if _, ok := pk.Pick(downRay(0, 6), surfaces); ok {
		t.Error("expected miss outside the tilted outline")
	}
}

func TestPickEdgeOnSurfaceIsMissed(t *testing.T) {
	n := NewShape(square(10))
	n.SetRotation(mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{1, 0, 0}))
	pk := NewPicker(NewPrecedence(NameShape))
	if _, ok := pk.Pick(downRay(0, 0), surfacesOf(n)); ok {
		t.Error("edge-on surface should not be hit")
	}
}

func TestPickSurfaceBehindRayOrigin(t *testing.T) {
	n := shapeAt(0, 0, 200) // above the ray origin at z = 100
	pk := NewPicker(NewPrecedence(NameShape))
	if _, ok := pk.Pick(downRay(0, 0), surfacesOf(n)); ok {
		t.Error("surface behind the ray should not be hit")
	}
}

func TestResolve(t *testing.T) {
	p := NewPrecedence("a", "b")
	hits := []Hit{
		{ObjectID: 1, Name: "x", Distance: 1},
		{ObjectID: 2, Name: "b", Distance: 2},
		{ObjectID: 3, Name: "a", Distance: 3},
		{ObjectID: 4, Name: "a", Distance: 4},
	}
	got, ok := Resolve(hits, p)
	if !ok || got.ObjectID != 3 {
		t.Errorf("Resolve = %+v, want object 3", got)
	}
	if _, ok := Resolve(hits[:1], p); ok {
		t.Error("Resolve with only unlisted names should fail")
	}
	if _, ok := Resolve(nil, p); ok {
		t.Error("Resolve(nil) should fail")
	}
}

func BenchmarkPick1000Surfaces(b *testing.B) {
	nodes := make([]*Node, 1000)
	for i := range nodes {
		nodes[i] = shapeAt(float64(i%40)*25, float64(i/40)*25, 0)
	}
	surfaces := surfacesOf(nodes...)
	pk := NewPicker(NewPrecedence(NameShape, NameBackground))
	r := downRay(500, 300)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pk.Pick(r, surfaces)
	}
}

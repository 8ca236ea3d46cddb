package spacedit

import "github.com/go-gl/mathgl/mgl64"

// HitShape defines a custom hit testing region in a node's local plane (z = 0).
type HitShape interface {
	// Contains reports whether the local point (x, y) is inside the shape.
	Contains(x, y float64) bool
}

// Names given to nodes by the constructors. Precedence lists refer to these.
const (
	NameShape      = "shape"
	NameBackground = "backgroundMesh"
)

// nodeIDCounter is a plain counter (no atomic, spacedit is single-threaded).
var nodeIDCounter int

func nextNodeID() int {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is a scene element: a flat 2D outline placed in 3D space by a local
// transform relative to its parent. A single struct is used for containers,
// shapes and backgrounds.
type Node struct {
	// Identity
	ID   int
	Name string
	// OwnerID, when non-zero, is reported as the selected object id instead
	// of ID. Sub-meshes of a composite object set it to the object's id.
	OwnerID int

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3

	worldTransform mgl64.Mat4
	transformDirty bool

	Visible bool

	// Outline in the local plane, used by hosts for drawing.
	Points []Vec2

	// Hit testing. Nodes without a shape are never hit themselves.
	HitShape HitShape

	// Metadata
	UserData any

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Rotation = mgl64.QuatIdent()
	n.Scale = mgl64.Vec3{1, 1, 1}
	n.worldTransform = identityTransform
	n.Visible = true
	n.transformDirty = true
}

// NewContainer creates a grouping node with no hit area.
func NewContainer(name string) *Node {
	n := &Node{Name: name}
	nodeDefaults(n)
	return n
}

// NewShape creates a node named "shape" whose outline and hit area are the
// given polygon.
func NewShape(points []Vec2) *Node {
	pts := make([]Vec2, len(points))
	copy(pts, points)
	n := &Node{Name: NameShape, Points: pts, HitShape: HitPolygon{Points: pts}}
	nodeDefaults(n)
	return n
}

// NewBackground creates a node named "backgroundMesh" covering a w by h
// rectangle centered on its origin.
func NewBackground(w, h float64) *Node {
	hw, hh := w/2, h/2
	n := &Node{
		Name:     NameBackground,
		Points:   []Vec2{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}},
		HitShape: HitRect{X: -hw, Y: -hh, Width: w, Height: h},
	}
	nodeDefaults(n)
	return n
}

// ObjectID returns the id reported when this node is picked.
func (n *Node) ObjectID() int {
	if n.OwnerID != 0 {
		return n.OwnerID
	}
	return n.ID
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("spacedit: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("spacedit: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("spacedit: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// Find returns the first node in this subtree, depth first and including n
// itself, whose ID matches id.
func (n *Node) Find(id int) *Node {
	if n.ID == id {
		return n
	}
	for _, child := range n.children {
		if found := child.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// --- Surface ---

// SurfaceID implements Surface.
func (n *Node) SurfaceID() int { return n.ObjectID() }

// SurfaceName implements Surface.
func (n *Node) SurfaceName() string { return n.Name }

// SurfaceTransform implements Surface. The caller is expected to have
// refreshed transforms, as Scene.Surfaces does.
func (n *Node) SurfaceTransform() mgl64.Mat4 { return n.worldTransform }

// SurfaceShape implements Surface.
func (n *Node) SurfaceShape() HitShape { return n.HitShape }

// SurfaceVisible implements Surface.
func (n *Node) SurfaceVisible() bool { return n.Visible }

// NumSurfaceChildren implements Surface.
func (n *Node) NumSurfaceChildren() int { return len(n.children) }

// SurfaceChild implements Surface.
func (n *Node) SurfaceChild(i int) Surface { return n.children[i] }

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.HitShape = nil
	n.Points = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}

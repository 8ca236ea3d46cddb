package spacedit

import "github.com/go-gl/mathgl/mgl64"

// identityTransform is the identity 4x4 matrix.
var identityTransform = mgl64.Ident4()

// computeLocalTransform computes the local matrix from the node's transform
// properties.
//
// Composition order:
//
//	Scale -> Rotate -> Translate(Position)
func computeLocalTransform(n *Node) mgl64.Mat4 {
	t := mgl64.Translate3D(n.Position[0], n.Position[1], n.Position[2])
	r := n.Rotation.Normalize().Mat4()
	s := mgl64.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2])
	return t.Mul4(r).Mul4(s)
}

// invertTransform computes the inverse of m.
// Returns the identity matrix if m is singular (determinant ≈ 0).
func invertTransform(m mgl64.Mat4) mgl64.Mat4 {
	det := m.Det()
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	return m.Inv()
}

// transformPoint applies m to a point (w = 1) with perspective divide.
func transformPoint(m mgl64.Mat4, v mgl64.Vec3) mgl64.Vec3 {
	h := m.Mul4x1(v.Vec4(1))
	if w := h.W(); w != 0 && w != 1 {
		return h.Vec3().Mul(1 / w)
	}
	return h.Vec3()
}

// transformDirection applies m to a direction (w = 0), ignoring translation.
func transformDirection(m mgl64.Mat4, v mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(v.Vec4(0)).Vec3()
}

// updateWorldTransform recomputes a node's worldTransform.
// parentRecomputed indicates whether the parent was recomputed in this pass,
// which forces recomputation of this node even if it's not dirty.
func updateWorldTransform(n *Node, parentTransform mgl64.Mat4, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = parentTransform.Mul4(computeLocalTransform(n))
		n.transformDirty = false
	}

	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, recompute)
	}
}

// refreshTransforms brings n's world transform up to date, walking up to the
// topmost ancestor so dirty parents are accounted for.
func refreshTransforms(n *Node) {
	top := n
	for top.Parent != nil {
		top = top.Parent
	}
	updateWorldTransform(top, identityTransform, false)
}

// --- Transform property setters ---

// SetPosition sets the node's local position and marks it dirty.
func (n *Node) SetPosition(x, y, z float64) {
	n.Position = mgl64.Vec3{x, y, z}
	n.transformDirty = true
}

// SetScale sets the node's scale and marks it dirty.
func (n *Node) SetScale(sx, sy, sz float64) {
	n.Scale = mgl64.Vec3{sx, sy, sz}
	n.transformDirty = true
}

// SetRotation sets the node's orientation and marks it dirty.
func (n *Node) SetRotation(q mgl64.Quat) {
	n.Rotation = q
	n.transformDirty = true
}

// SetRotationZ sets an in-plane rotation (radians about +Z) and marks the
// node dirty.
func (n *Node) SetRotationZ(angle float64) {
	n.SetRotation(mgl64.QuatRotate(angle, mgl64.Vec3{0, 0, 1}))
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next refresh. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// --- Coordinate conversion ---

// WorldTransform returns the node's up-to-date world matrix.
func (n *Node) WorldTransform() mgl64.Mat4 {
	refreshTransforms(n)
	return n.worldTransform
}

// WorldToLocal converts a world-space point to this node's local coordinate space.
func (n *Node) WorldToLocal(v mgl64.Vec3) mgl64.Vec3 {
	return transformPoint(invertTransform(n.WorldTransform()), v)
}

// LocalToWorld converts a local-space point to world-space.
func (n *Node) LocalToWorld(v mgl64.Vec3) mgl64.Vec3 {
	return transformPoint(n.WorldTransform(), v)
}

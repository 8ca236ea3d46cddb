package spacedit

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween/ease"
)

// Scene owns a node tree and implements SceneSource over it. Top-level
// children of the root are the picking candidates.
type Scene struct {
	root   *Node
	tweens []*TweenGroup

	// Glide, when positive, animates applied positions over that many
	// seconds instead of setting them at once. Advance with Update.
	Glide float32
	// Ease is the glide easing; nil selects ease.OutQuad.
	Ease ease.TweenFunc
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	return &Scene{root: NewContainer("root")}
}

// Root returns the root container.
func (s *Scene) Root() *Node {
	return s.root
}

// Find returns the node with the given ID, or nil.
func (s *Scene) Find(id int) *Node {
	if id == 0 {
		return nil
	}
	return s.root.Find(id)
}

// Surfaces implements SceneSource.
func (s *Scene) Surfaces() []Surface {
	updateWorldTransform(s.root, identityTransform, false)
	out := make([]Surface, len(s.root.children))
	for i, c := range s.root.children {
		out[i] = c
	}
	return out
}

// Placement implements SceneSource.
func (s *Scene) Placement(objectID int) (Placement, bool) {
	n := s.Find(objectID)
	if n == nil {
		return Placement{}, false
	}
	updateWorldTransform(s.root, identityTransform, false)
	parent := identityTransform
	if n.Parent != nil {
		parent = n.Parent.worldTransform
	}
	return Placement{Local: n.Position, ParentWorld: parent}, true
}

// ApplyLocalPosition implements SceneSource. With Glide set, the node is
// animated from its current position and any earlier glide is replaced.
func (s *Scene) ApplyLocalPosition(objectID int, pos mgl64.Vec3) {
	n := s.Find(objectID)
	if n == nil {
		return
	}
	if s.Glide <= 0 {
		n.SetPosition(pos[0], pos[1], pos[2])
		return
	}
	fn := s.Ease
	if fn == nil {
		fn = ease.OutQuad
	}
	g := TweenPosition(n, pos, s.Glide, fn)
	for i, t := range s.tweens {
		if t.Target() == n {
			s.tweens[i] = g
			return
		}
	}
	s.tweens = append(s.tweens, g)
}

// Update advances running glides by dt seconds and drops finished ones.
func (s *Scene) Update(dt float32) {
	kept := s.tweens[:0]
	for _, t := range s.tweens {
		t.Update(dt)
		if !t.Done {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(s.tweens); i++ {
		s.tweens[i] = nil
	}
	s.tweens = kept
}

// Gliding reports whether any glide is running.
func (s *Scene) Gliding() bool {
	return len(s.tweens) > 0
}

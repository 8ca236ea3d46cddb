package spacedit

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates a node's position components simultaneously. Create
// one with TweenPosition and call Update(dt) each frame. The group writes
// values into the node and marks it dirty. If the target node is disposed,
// the group stops immediately.
type TweenGroup struct {
	tweens [3]*gween.Tween
	fields [3]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds, writes values to the target fields,
// and marks the node dirty. If the target node has been disposed, Done is set
// to true and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := range g.tweens {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

// Target returns the animated node.
func (g *TweenGroup) Target() *Node {
	return g.target
}

// TweenPosition creates a TweenGroup that animates node.Position to the given
// target over the specified duration using the easing function.
func TweenPosition(node *Node, to mgl64.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	if fn == nil {
		fn = ease.Linear
	}
	g := &TweenGroup{target: node}
	for i := range g.tweens {
		g.tweens[i] = gween.New(float32(node.Position[i]), float32(to[i]), duration, fn)
		g.fields[i] = &node.Position[i]
	}
	return g
}

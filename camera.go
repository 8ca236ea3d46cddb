package spacedit

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// RayCaster turns a normalized pointer position into a world-space ray.
// Camera implements it; tests and hosts with their own projection can
// supply another implementation.
type RayCaster interface {
	RayFromNDC(p Vec2) Ray
}

// Projection selects how a Camera maps the view volume.
type Projection uint8

const (
	ProjectionOrthographic Projection = iota
	ProjectionPerspective
)

// Default camera placement. The camera sits on +Z looking at the origin with
// +Y up, so the z = 0 plane faces it.
const (
	defaultCameraDistance = 1000.0
	defaultNear           = 1.0
	defaultFar            = 5000.0
	defaultFovY           = 35.0
)

// panAnim tracks an in-progress PanTo animation.
type panAnim struct {
	tweenX, tweenY *gween.Tween
	offset         mgl64.Vec3 // Position - Target at start
}

// Camera is a look-at camera with an orthographic or perspective projection.
// Fields may be set directly; call MarkDirty afterwards.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3

	Projection Projection

	// Orthographic frustum in world units.
	Left, Right, Bottom, Top float64

	// Perspective vertical field of view in degrees and aspect ratio.
	FovY   float64
	Aspect float64

	Near, Far float64

	view        mgl64.Mat4
	proj        mgl64.Mat4
	invViewProj mgl64.Mat4
	dirty       bool

	pan *panAnim
}

func newCamera(p Projection) *Camera {
	return &Camera{
		Position:   mgl64.Vec3{0, 0, defaultCameraDistance},
		Up:         mgl64.Vec3{0, 1, 0},
		Projection: p,
		Near:       defaultNear,
		Far:        defaultFar,
		FovY:       defaultFovY,
		Aspect:     1,
		dirty:      true,
	}
}

// NewOrthographicCamera creates an orthographic camera whose frustum spans
// width by height world units centered on the view axis.
func NewOrthographicCamera(width, height float64) *Camera {
	c := newCamera(ProjectionOrthographic)
	c.Resize(width, height)
	return c
}

// NewPerspectiveCamera creates a perspective camera with the given vertical
// field of view in degrees and aspect ratio.
func NewPerspectiveCamera(fovY, aspect float64) *Camera {
	c := newCamera(ProjectionPerspective)
	c.FovY = fovY
	c.Aspect = aspect
	return c
}

// Resize adapts the projection to a viewport of width by height. For an
// orthographic camera this sets the frustum to one world unit per pixel;
// for a perspective camera it sets the aspect ratio.
func (c *Camera) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	switch c.Projection {
	case ProjectionOrthographic:
		c.Left, c.Right = -width/2, width/2
		c.Bottom, c.Top = -height/2, height/2
	case ProjectionPerspective:
		c.Aspect = width / height
	}
	c.dirty = true
}

// LookAt moves the camera to eye and points it at target.
func (c *Camera) LookAt(eye, target mgl64.Vec3) {
	c.Position = eye
	c.Target = target
	c.dirty = true
}

// MarkDirty forces matrix recomputation on the next query.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// PanTo animates the camera parallel to the view plane so that it looks at
// (x, y) on z = 0 after duration seconds. Call Update each frame to advance
// the animation.
func (c *Camera) PanTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.Linear
	}
	c.pan = &panAnim{
		tweenX: gween.New(float32(c.Target[0]), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Target[1]), float32(y), duration, easeFn),
		offset: c.Position.Sub(c.Target),
	}
}

// Panning reports whether a PanTo animation is in progress.
func (c *Camera) Panning() bool {
	return c.pan != nil
}

// Update advances a PanTo animation by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.pan == nil {
		return
	}
	x, doneX := c.pan.tweenX.Update(dt)
	y, doneY := c.pan.tweenY.Update(dt)
	c.Target = mgl64.Vec3{float64(x), float64(y), c.Target[2]}
	c.Position = c.Target.Add(c.pan.offset)
	c.dirty = true
	if doneX && doneY {
		c.pan = nil
	}
}

func (c *Camera) computeMatrices() {
	if !c.dirty {
		return
	}
	c.view = mgl64.LookAtV(c.Position, c.Target, c.Up)
	switch c.Projection {
	case ProjectionPerspective:
		c.proj = mgl64.Perspective(mgl64.DegToRad(c.FovY), c.Aspect, c.Near, c.Far)
	default:
		c.proj = mgl64.Ortho(c.Left, c.Right, c.Bottom, c.Top, c.Near, c.Far)
	}
	c.invViewProj = invertTransform(c.proj.Mul4(c.view))
	c.dirty = false
}

// ViewProjection returns the combined projection * view matrix.
func (c *Camera) ViewProjection() mgl64.Mat4 {
	c.computeMatrices()
	return c.proj.Mul4(c.view)
}

// Unproject maps a point in normalized device coordinates (z in [-1, 1],
// near to far) to world space.
func (c *Camera) Unproject(ndc mgl64.Vec3) mgl64.Vec3 {
	c.computeMatrices()
	return transformPoint(c.invViewProj, ndc)
}

// Project maps a world point to normalized device coordinates.
func (c *Camera) Project(world mgl64.Vec3) mgl64.Vec3 {
	return transformPoint(c.ViewProjection(), world)
}

// RayFromNDC returns the ray from the near plane through the far plane at
// the given normalized pointer position.
func (c *Camera) RayFromNDC(p Vec2) Ray {
	near := c.Unproject(mgl64.Vec3{p.X, p.Y, -1})
	far := c.Unproject(mgl64.Vec3{p.X, p.Y, 1})
	return NewRay(near, far.Sub(near))
}

// WorldToScreen maps a world point to device pixels inside viewport.
func (c *Camera) WorldToScreen(world mgl64.Vec3, viewport Rect) (sx, sy float64) {
	ndc := c.Project(world)
	return Denormalize(Vec2{ndc[0], ndc[1]}, viewport)
}

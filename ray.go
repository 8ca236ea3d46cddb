package spacedit

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// parallelEpsilon is the smallest |normal·direction| treated as a crossing.
const parallelEpsilon = 1e-9

// Ray is a half-line in world space.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// NewRay returns a ray with a unit-length direction.
func NewRay(origin, direction mgl64.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Plane is the set of points p with Normal·p + Constant = 0.
type Plane struct {
	Normal   mgl64.Vec3
	Constant float64
}

// NewPlane returns the plane with the given normal passing through point.
// The normal is normalized.
func NewPlane(normal, point mgl64.Vec3) Plane {
	n := normal.Normalize()
	return Plane{Normal: n, Constant: -n.Dot(point)}
}

// DistanceToPoint returns the signed distance from the plane to p.
func (p Plane) DistanceToPoint(v mgl64.Vec3) float64 {
	return p.Normal.Dot(v) + p.Constant
}

// IntersectPlane returns the point where the ray crosses p and the ray
// parameter at that point. A ray parallel to the plane only intersects when
// its origin lies on the plane. Crossings behind the origin are misses.
func (r Ray) IntersectPlane(p Plane) (mgl64.Vec3, float64, bool) {
	denom := p.Normal.Dot(r.Direction)
	if math.Abs(denom) < parallelEpsilon {
		if math.Abs(p.DistanceToPoint(r.Origin)) < parallelEpsilon {
			return r.Origin, 0, true
		}
		return mgl64.Vec3{}, 0, false
	}
	t := -p.DistanceToPoint(r.Origin) / denom
	if t < 0 {
		return mgl64.Vec3{}, 0, false
	}
	return r.At(t), t, true
}

// Transform returns the ray mapped through m. The direction is not
// renormalized, so parameters along the result match the input ray's.
func (r Ray) Transform(m mgl64.Mat4) Ray {
	return Ray{
		Origin:    transformPoint(m, r.Origin),
		Direction: transformDirection(m, r.Direction),
	}
}

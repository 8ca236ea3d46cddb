package spacedit

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Surface is a pickable scene element. Each surface is a flat region on its
// local z = 0 plane, placed in the world by its transform. Children are
// searched recursively; an invisible surface hides its whole subtree.
type Surface interface {
	// SurfaceID is the id reported when this surface is picked.
	SurfaceID() int
	// SurfaceName is matched against the precedence list.
	SurfaceName() string
	// SurfaceTransform is the local-to-world matrix.
	SurfaceTransform() mgl64.Mat4
	// SurfaceShape is the hit area on the local plane; nil is never hit.
	SurfaceShape() HitShape
	SurfaceVisible() bool
	NumSurfaceChildren() int
	SurfaceChild(i int) Surface
}

// Hit is one ray/surface intersection.
type Hit struct {
	ObjectID int
	Name     string
	// Point is the world-space intersection.
	Point mgl64.Vec3
	// Local is the intersection on the surface's own plane.
	Local    Vec2
	Distance float64
	Surface  Surface
}

// Precedence ranks surface names. Lower ranks win; names not in the list are
// never selected.
type Precedence struct {
	tags  []string
	ranks map[string]int
}

// NewPrecedence builds a precedence list from tags, highest priority first.
// A repeated tag keeps its first rank.
func NewPrecedence(tags ...string) Precedence {
	p := Precedence{ranks: make(map[string]int, len(tags))}
	for _, tag := range tags {
		if _, dup := p.ranks[tag]; dup {
			continue
		}
		p.ranks[tag] = len(p.tags)
		p.tags = append(p.tags, tag)
	}
	return p
}

// Rank returns the rank of name and whether it is listed.
func (p Precedence) Rank(name string) (int, bool) {
	r, ok := p.ranks[name]
	return r, ok
}

// Tags returns the listed names in rank order.
func (p Precedence) Tags() []string {
	return p.tags
}

// Picker finds the surface under a ray and resolves overlapping hits by
// name precedence.
type Picker struct {
	precedence Precedence
	hitBuf     []Hit
}

// NewPicker creates a picker with the given precedence.
func NewPicker(precedence Precedence) *Picker {
	return &Picker{precedence: precedence}
}

// Precedence returns the picker's precedence list.
func (pk *Picker) Precedence() Precedence {
	return pk.precedence
}

// Intersect returns every visible surface hit by r, nearest first. Hits at
// equal distance keep traversal order. The returned slice is reused by the
// next call.
func (pk *Picker) Intersect(r Ray, surfaces []Surface) []Hit {
	pk.hitBuf = pk.hitBuf[:0]
	for _, s := range surfaces {
		pk.hitBuf = collectHits(r, s, pk.hitBuf)
	}
	sort.SliceStable(pk.hitBuf, func(i, j int) bool {
		return pk.hitBuf[i].Distance < pk.hitBuf[j].Distance
	})
	return pk.hitBuf
}

// Pick returns the winning hit for r among surfaces.
func (pk *Picker) Pick(r Ray, surfaces []Surface) (Hit, bool) {
	return Resolve(pk.Intersect(r, surfaces), pk.precedence)
}

// Resolve selects from distance-ordered hits the one whose name has the best
// rank. Among equally ranked hits the nearest wins. Hits with unlisted names
// are ignored.
func Resolve(hits []Hit, p Precedence) (Hit, bool) {
	best := -1
	bestRank := 0
	for i := range hits {
		rank, ok := p.Rank(hits[i].Name)
		if !ok {
			continue
		}
		if best < 0 || rank < bestRank {
			best, bestRank = i, rank
		}
	}
	if best < 0 {
		return Hit{}, false
	}
	return hits[best], true
}

// collectHits appends the hits for s and its visible descendants to buf.
func collectHits(r Ray, s Surface, buf []Hit) []Hit {
	if !s.SurfaceVisible() {
		return buf
	}
	if h, ok := intersectSurface(r, s); ok {
		buf = append(buf, h)
	}
	for i, n := 0, s.NumSurfaceChildren(); i < n; i++ {
		buf = collectHits(r, s.SurfaceChild(i), buf)
	}
	return buf
}

// intersectSurface intersects r with the local z = 0 plane of s and tests
// the crossing against its hit shape. Edge-on surfaces are never hit.
func intersectSurface(r Ray, s Surface) (Hit, bool) {
	shape := s.SurfaceShape()
	if shape == nil {
		return Hit{}, false
	}
	world := s.SurfaceTransform()
	local := r.Transform(invertTransform(world))
	dz := local.Direction[2]
	if math.Abs(dz) < parallelEpsilon {
		return Hit{}, false
	}
	t := -local.Origin[2] / dz
	if t < 0 {
		return Hit{}, false
	}
	lp := local.At(t)
	if !shape.Contains(lp[0], lp[1]) {
		return Hit{}, false
	}
	wp := transformPoint(world, lp)
	return Hit{
		ObjectID: s.SurfaceID(),
		Name:     s.SurfaceName(),
		Point:    wp,
		Local:    Vec2{lp[0], lp[1]},
		Distance: wp.Sub(r.Origin).Len(),
		Surface:  s,
	}, true
}

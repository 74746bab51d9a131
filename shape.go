// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package phys2

import (
	"math"

	"github.com/CipherJon/phys2/math2d"
)

// ShapeKind identifies which variant of the Shape tagged union a value
// holds. Narrowphase and inertia/AABB computation dispatch on this
// rather than on a type switch, matching the teacher's shape type enum.
type ShapeKind int

const (
	// CircleKind is a circular shape: {center, radius}.
	CircleKind ShapeKind = iota
	// PolygonKind is a convex counter-clockwise polygon, |V| >= 3.
	PolygonKind
)

// circleVertexSamples is the number of angles a Circle is sampled at
// when a caller needs a polygonal vertex approximation (the SAT
// fallback path; an analytic circle-vs-polygon path is preferred and
// used directly by the narrowphase).
const circleVertexSamples = 16

// Shape is a tagged variant over {Circle, Polygon}. World-space
// vertices are never stored on a Shape: the narrowphase always
// recomputes them from (local shape, body transform).
type Shape interface {
	// Kind returns which variant this Shape is.
	Kind() ShapeKind
	// AABB returns the world-space axis-aligned bounds of the shape
	// posed by xf, expanded by margin on every side.
	AABB(xf *math2d.Transform, margin float64) AABB
	// Inertia returns the moment of inertia about the body centroid
	// for the given mass.
	Inertia(mass float64) float64
	// Vertices returns the shape's local-space vertex ring, used by
	// SAT. For a Circle this is the circleVertexSamples-gon
	// approximation, used only when SAT falls back to a polygonal
	// approximation instead of the analytic circle path.
	Vertices() []math2d.Vec2
}

// validateShape reports whether shape satisfies its documented
// construction invariants: a Polygon must have at least 3 vertices,
// be wound counter-clockwise, and be convex; a Circle must have a
// positive radius.
func validateShape(shape Shape) error {
	switch s := shape.(type) {
	case *Circle:
		if s.Radius <= 0 {
			return errShapeInvalid
		}
	case *Polygon:
		n := len(s.verts)
		if n < 3 {
			return errShapeInvalid
		}
		_, area := s.centroidAndArea()
		if area <= 0 {
			return errShapeInvalid // must be wound counter-clockwise
		}
		for i := 0; i < n; i++ {
			a := s.verts[i]
			b := s.verts[(i+1)%n]
			c := s.verts[(i+2)%n]
			e1, e2 := math2d.Vec2{}, math2d.Vec2{}
			e1.Sub(&b, &a)
			e2.Sub(&c, &b)
			if e1.Cross(&e2) < 0 {
				return errShapeInvalid // reflex vertex: not convex
			}
		}
	}
	return nil
}

// Circle is a circular shape centered on the body origin.
type Circle struct {
	Radius float64
}

// NewCircle returns a new Circle shape. radius must be positive; a
// non-positive radius is a caller error surfaced by Body construction
// (see body.go), not here, since a bare Shape has no World to report
// through.
func NewCircle(radius float64) *Circle { return &Circle{Radius: radius} }

func (c *Circle) Kind() ShapeKind { return CircleKind }

func (c *Circle) AABB(xf *math2d.Transform, margin float64) AABB {
	r := c.Radius + margin
	return AABB{
		Lower: math2d.Vec2{X: xf.Position.X - r, Y: xf.Position.Y - r},
		Upper: math2d.Vec2{X: xf.Position.X + r, Y: xf.Position.Y + r},
	}
}

// Inertia uses the solid-disc formula I = 0.5*m*r^2.
func (c *Circle) Inertia(mass float64) float64 {
	return 0.5 * mass * c.Radius * c.Radius
}

func (c *Circle) Vertices() []math2d.Vec2 {
	verts := make([]math2d.Vec2, circleVertexSamples)
	for i := 0; i < circleVertexSamples; i++ {
		angle := 2 * math.Pi * float64(i) / float64(circleVertexSamples)
		verts[i] = math2d.Vec2{X: c.Radius * math.Cos(angle), Y: c.Radius * math.Sin(angle)}
	}
	return verts
}

// Polygon is a convex, counter-clockwise local-space vertex ring.
// Vertices are expected to be given relative to the shape's centroid
// so that the body origin coincides with the center of mass; Inertia
// re-centers defensively if they are not.
type Polygon struct {
	verts   []math2d.Vec2
	normals []math2d.Vec2 // outward edge normals, one per edge, precomputed
}

// NewPolygon returns a new Polygon from a counter-clockwise vertex
// ring. Validation (|V| >= 3, convexity) is the caller's (Body
// construction's) responsibility so it can be reported through a
// World-scoped error.
func NewPolygon(verts []math2d.Vec2) *Polygon {
	p := &Polygon{verts: append([]math2d.Vec2(nil), verts...)}
	p.normals = make([]math2d.Vec2, len(p.verts))
	n := len(p.verts)
	for i := 0; i < n; i++ {
		a, b := p.verts[i], p.verts[(i+1)%n]
		edge := math2d.Vec2{}
		edge.Sub(&b, &a)
		// outward normal of a CCW edge is the edge rotated -90°
		normal := math2d.Vec2{}
		normal.SetS(edge.Y, -edge.X)
		normal.Unit(&normal)
		p.normals[i] = normal
	}
	return p
}

func (p *Polygon) Kind() ShapeKind { return PolygonKind }

func (p *Polygon) Vertices() []math2d.Vec2 { return p.verts }

// Normals returns the polygon's precomputed outward edge normals, one
// per edge, in local space. Consumed directly by the narrowphase's SAT
// axis list.
func (p *Polygon) Normals() []math2d.Vec2 { return p.normals }

func (p *Polygon) AABB(xf *math2d.Transform, margin float64) AABB {
	world := math2d.Vec2{}
	xf.App(&world, &p.verts[0])
	lower, upper := world, world
	for i := 1; i < len(p.verts); i++ {
		xf.App(&world, &p.verts[i])
		lower.Min(&lower, &world)
		upper.Max(&upper, &world)
	}
	lower.SetS(lower.X-margin, lower.Y-margin)
	upper.SetS(upper.X+margin, upper.Y+margin)
	return AABB{Lower: lower, Upper: upper}
}

// centroidAndArea returns the signed area and centroid of the polygon
// using the standard shoelace-based formula.
func (p *Polygon) centroidAndArea() (centroid math2d.Vec2, area float64) {
	n := len(p.verts)
	for i := 0; i < n; i++ {
		a, b := p.verts[i], p.verts[(i+1)%n]
		cross := a.Cross(&b)
		area += cross
		centroid.X += (a.X + b.X) * cross
		centroid.Y += (a.Y + b.Y) * cross
	}
	area *= 0.5
	if math.Abs(area) > math2d.Epsilon {
		centroid.X /= (6 * area)
		centroid.Y /= (6 * area)
	}
	return centroid, area
}

// Inertia computes the moment of inertia about the polygon's own
// centroid for the given mass, using the standard polygon second-
// moment-of-area formula and the parallel axis theorem to recenter
// when the vertex ring isn't already centroid-local.
func (p *Polygon) Inertia(mass float64) float64 {
	centroid, area := p.centroidAndArea()
	if math.Abs(area) < math2d.Epsilon {
		return 0
	}
	n := len(p.verts)
	var numer, denom float64
	for i := 0; i < n; i++ {
		a, b := p.verts[i], p.verts[(i+1)%n]
		cross := a.Cross(&b)
		numer += cross * (a.Dot(&a) + a.Dot(&b) + b.Dot(&b))
		denom += cross
	}
	if denom < math2d.Epsilon {
		return 0
	}
	// inertia about the origin of the local frame the vertices are
	// expressed in, per-unit-density, then scaled by density = mass/area.
	density := mass / math.Abs(area)
	inertiaAboutOrigin := (density * numer) / 12
	// shift from origin to centroid via the parallel axis theorem:
	// I_origin = I_centroid + mass*d^2  =>  I_centroid = I_origin - mass*d^2
	d2 := centroid.LenSqr()
	inertiaAboutCentroid := inertiaAboutOrigin - mass*d2
	if inertiaAboutCentroid < 0 {
		inertiaAboutCentroid = 0
	}
	return inertiaAboutCentroid
}

// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package phys2

import (
	"math"

	"github.com/CipherJon/phys2/math2d"
)

// separationTolerance is the SAT "still separated" threshold: an axis
// whose overlap is below -separationTolerance proves the shapes are
// disjoint on that axis.
const separationTolerance = 5e-3

// penetrationTolerance is the "touching" threshold below which a
// synthetic minimum penetration is substituted so the solver can still
// produce a stabilizing impulse for a zero-gap contact.
const penetrationTolerance = 1e-2

// maxManifoldPoints bounds a Manifold's contact point count at 2, the
// maximum 2D polygon-polygon clipping can produce.
const maxManifoldPoints = 2

// Manifold is the result of a narrowphase test between two shapes: a
// unit normal pointing from body A into body B, a non-negative
// penetration depth, and 1 or 2 world-space contact points. An empty
// Manifold (PointCount == 0) means no collision.
type Manifold struct {
	Normal     math2d.Vec2
	Depth      float64
	Points     [maxManifoldPoints]math2d.Vec2
	PointCount int
}

// Collide runs the narrowphase SAT test between bodies a and b and
// returns their contact Manifold. The returned normal always points
// from a into b; callers must apply equal-and-opposite impulses
// respecting that orientation.
func Collide(a, b *Body) (Manifold, bool) {
	switch {
	case a.shape.Kind() == CircleKind && b.shape.Kind() == CircleKind:
		return collideCircles(a, b)
	case a.shape.Kind() == CircleKind && b.shape.Kind() == PolygonKind:
		m, hit := collidePolygonCircle(b, a)
		return flipManifold(m), hit
	case a.shape.Kind() == PolygonKind && b.shape.Kind() == CircleKind:
		return collidePolygonCircle(a, b)
	default:
		return collidePolygons(a, b)
	}
}

func flipManifold(m Manifold) Manifold {
	m.Normal.Neg(&m.Normal)
	return m
}

// synthesizeTouching clamps a manifold whose true overlap is below
// penetrationTolerance up to exactly penetrationTolerance, per spec.md
// §4.3's "touching" edge case.
func synthesizeTouching(depth float64) float64 {
	if depth < penetrationTolerance {
		return penetrationTolerance
	}
	return depth
}

// collideCircles is the analytic circle-vs-circle path.
func collideCircles(a, b *Body) (Manifold, bool) {
	ca, cb := a.shape.(*Circle), b.shape.(*Circle)
	d := math2d.Vec2{}
	d.Sub(&b.xf.Position, &a.xf.Position)
	dist := d.Len()
	radiusSum := ca.Radius + cb.Radius
	overlap := radiusSum - dist
	if overlap < -separationTolerance {
		return Manifold{}, false
	}
	normal := math2d.Vec2{}
	if dist > math2d.Epsilon {
		normal.Scale(&d, 1/dist)
	} else {
		normal.SetS(1, 0)
	}
	depth := synthesizeTouching(overlap)
	point := math2d.Vec2{}
	point.AddScaled(&a.xf.Position, &normal, ca.Radius-depth*0.5)
	return Manifold{Normal: normal, Depth: depth, Points: [2]math2d.Vec2{point}, PointCount: 1}, true
}

// collidePolygonCircle is the analytic polygon-vs-circle path: a is
// the polygon body, b is the circle body. Candidate axes are the
// polygon's face normals plus, in the vertex-region case, the axis
// from the circle center to the closest polygon vertex, per spec.md
// §4.3.
func collidePolygonCircle(a, b *Body) (Manifold, bool) {
	poly := a.shape.(*Polygon)
	circle := b.shape.(*Circle)
	verts := poly.Vertices()
	normals := poly.Normals()

	// circle center in polygon-local space
	center := math2d.Vec2{}
	a.xf.Inv(&center, &b.xf.Position)

	bestSep := -math.MaxFloat64
	bestEdge := 0
	for i, n := range normals {
		s := n.Dot(localSub(center, verts[i]))
		if s > circle.Radius+separationTolerance {
			return Manifold{}, false
		}
		if s > bestSep {
			bestSep = s
			bestEdge = i
		}
	}

	v1 := verts[bestEdge]
	v2 := verts[(bestEdge+1)%len(verts)]

	var localNormal, localPoint math2d.Vec2
	var depth float64

	if bestSep < math2d.Epsilon {
		// center is inside the polygon: face region, reference face normal.
		localNormal = normals[bestEdge]
		depth = synthesizeTouching(circle.Radius - bestSep)
		mid := math2d.Vec2{}
		mid.Add(&v1, &v2)
		mid.Scale(&mid, 0.5)
		localPoint = mid
	} else {
		u1 := localSub(center, v1).Dot(localSub(v2, v1))
		u2 := localSub(center, v2).Dot(localSub(v1, v2))
		switch {
		case u1 <= 0:
			dist := center.Dist(&v1)
			if dist > circle.Radius+separationTolerance {
				return Manifold{}, false
			}
			localNormal = *math2d.NewVec2().Unit(localSub(center, v1))
			depth = synthesizeTouching(circle.Radius - dist)
			localPoint = v1
		case u2 <= 0:
			dist := center.Dist(&v2)
			if dist > circle.Radius+separationTolerance {
				return Manifold{}, false
			}
			localNormal = *math2d.NewVec2().Unit(localSub(center, v2))
			depth = synthesizeTouching(circle.Radius - dist)
			localPoint = v2
		default:
			localNormal = normals[bestEdge]
			depth = synthesizeTouching(circle.Radius - bestSep)
			mid := math2d.Vec2{}
			mid.Add(&v1, &v2)
			mid.Scale(&mid, 0.5)
			localPoint = mid
		}
	}

	worldNormal := math2d.Vec2{}
	a.xf.AppR(&worldNormal, &localNormal)
	worldPoint := math2d.Vec2{}
	a.xf.App(&worldPoint, &localPoint)
	return Manifold{Normal: worldNormal, Depth: depth, Points: [2]math2d.Vec2{worldPoint}, PointCount: 1}, true
}

func localSub(a, b math2d.Vec2) *math2d.Vec2 {
	r := math2d.Vec2{}
	r.Sub(&a, &b)
	return &r
}

// findMaxSeparation returns the index of polyA's edge with the largest
// separation from polyB and that separation value, both measured in
// world space. A positive return means the shapes are separated along
// that axis by that distance.
func findMaxSeparation(a, b *Body) (bestEdge int, bestSep float64) {
	polyA := a.shape.(*Polygon)
	polyB := b.shape.(*Polygon)
	vertsA, normalsA := polyA.Vertices(), polyA.Normals()
	vertsB := polyB.Vertices()

	bestSep = -math.MaxFloat64
	for i, localN := range normalsA {
		n := math2d.Vec2{}
		a.xf.AppR(&n, &localN)
		v := math2d.Vec2{}
		a.xf.App(&v, &vertsA[i])

		minB := math.MaxFloat64
		for _, lv := range vertsB {
			wv := math2d.Vec2{}
			b.xf.App(&wv, &lv)
			d := n.Dot(localSub(wv, v))
			if d < minB {
				minB = d
			}
		}
		if minB > bestSep {
			bestSep = minB
			bestEdge = i
		}
	}
	return bestEdge, bestSep
}

// clipSegmentToLine clips the 2-point segment `in` against the half
// plane {x : dot(normal, x) - offset <= 0}, à la Sutherland-Hodgman
// reduced to a single plane and two input points. This is the 2D,
// 2-plane analogue of the teacher's physics/clipping.go
// sutherland_hodgman, which clips an N-gon against an N-plane
// boundary; here the "polygon" is always the 2-point incident edge and
// there are always exactly two clip planes (the reference edge's two
// side planes), so the general polygon-clip loop collapses to this
// fixed-size routine.
func clipSegmentToLine(in [2]math2d.Vec2, count int, normal math2d.Vec2, offset float64) (out [2]math2d.Vec2, outCount int) {
	if count < 2 {
		return out, 0
	}
	d0 := normal.Dot(&in[0]) - offset
	d1 := normal.Dot(&in[1]) - offset

	if d0 <= 0 {
		out[outCount] = in[0]
		outCount++
	}
	if d1 <= 0 {
		out[outCount] = in[1]
		outCount++
	}
	if d0*d1 < 0 {
		t := d0 / (d0 - d1)
		mid := math2d.Vec2{}
		mid.Sub(&in[1], &in[0])
		mid.Scale(&mid, t)
		mid.Add(&mid, &in[0])
		out[outCount] = mid
		outCount++
	}
	return out, outCount
}

// collidePolygons is the polygon-vs-polygon SAT + reference/incident
// edge clipping path.
func collidePolygons(a, b *Body) (Manifold, bool) {
	edgeA, sepA := findMaxSeparation(a, b)
	if sepA > separationTolerance {
		return Manifold{}, false
	}
	edgeB, sepB := findMaxSeparation(b, a)
	if sepB > separationTolerance {
		return Manifold{}, false
	}

	var ref, inc *Body
	var refEdge int
	flip := false
	const tolerance = 1e-3
	if sepB > sepA+tolerance {
		ref, inc, refEdge, flip = b, a, edgeB, true
	} else {
		ref, inc, refEdge, flip = a, b, edgeA, false
	}

	refPoly := ref.shape.(*Polygon)
	refVerts := refPoly.Vertices()
	refNormalsLocal := refPoly.Normals()
	n := len(refVerts)

	v1l := refVerts[refEdge]
	v2l := refVerts[(refEdge+1)%n]
	v1 := math2d.Vec2{}
	ref.xf.App(&v1, &v1l)
	v2 := math2d.Vec2{}
	ref.xf.App(&v2, &v2l)

	refNormal := math2d.Vec2{}
	ref.xf.AppR(&refNormal, &refNormalsLocal[refEdge])

	incPoly := inc.shape.(*Polygon)
	incVertsLocal := incPoly.Vertices()
	incNormalsLocal := incPoly.Normals()
	m := len(incVertsLocal)

	// incident edge: the edge on inc whose normal is most anti-parallel
	// to the reference normal.
	incEdge := 0
	minDot := math.MaxFloat64
	refNormalInIncLocal := math2d.Vec2{}
	inc.xf.InvR(&refNormalInIncLocal, &refNormal)
	for i, ln := range incNormalsLocal {
		d := refNormalInIncLocal.Dot(&ln)
		if d < minDot {
			minDot = d
			incEdge = i
		}
	}
	i1l := incVertsLocal[incEdge]
	i2l := incVertsLocal[(incEdge+1)%m]
	i1 := math2d.Vec2{}
	inc.xf.App(&i1, &i1l)
	i2 := math2d.Vec2{}
	inc.xf.App(&i2, &i2l)

	tangent := math2d.Vec2{}
	tangent.Sub(&v2, &v1)
	tangent.Unit(&tangent)

	// side planes at v1 (pointing back along -tangent) and v2 (along tangent)
	negSideOffset := -tangent.Dot(&v1)
	posSideOffset := tangent.Dot(&v2)
	negTangent := math2d.Vec2{}
	negTangent.Neg(&tangent)

	clipped, count := clipSegmentToLine([2]math2d.Vec2{i1, i2}, 2, negTangent, negSideOffset)
	if count < 2 {
		return Manifold{}, false
	}
	clipped, count = clipSegmentToLine(clipped, count, tangent, posSideOffset)
	if count < 2 {
		return Manifold{}, false
	}

	var manifold Manifold
	normal := refNormal
	if flip {
		normal.Neg(&normal)
	}
	manifold.Normal = normal

	for i := 0; i < count; i++ {
		sep := refNormal.Dot(localSub(clipped[i], v1))
		if sep <= separationTolerance {
			manifold.Points[manifold.PointCount] = clipped[i]
			manifold.PointCount++
		}
	}
	if manifold.PointCount == 0 {
		return Manifold{}, false
	}

	worst := math.MaxFloat64
	for i := 0; i < manifold.PointCount; i++ {
		sep := refNormal.Dot(localSub(manifold.Points[i], v1))
		if sep < worst {
			worst = sep
		}
	}
	manifold.Depth = synthesizeTouching(-worst)
	return manifold, true
}

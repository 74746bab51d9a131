// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package phys2

import "github.com/CipherJon/phys2/math2d"

// contactBreakingDistance is how far a stored contact point may drift
// from a fresh manifold point before the two are no longer considered
// the same point for warm-start purposes. Adapted from the teacher's
// physics/contact.go breakingLimit.
const contactBreakingDistance = 0.02

// ContactPoint is one point of a persistent Contact's manifold,
// carrying the accumulated impulses that survive across frames to
// warm-start the solver.
type ContactPoint struct {
	Position math2d.Vec2
	Jn, Jt   float64 // accumulated normal / tangent impulse

	rA, rB math2d.Vec2 // contact point relative to each body's COM, refreshed every step
}

// Contact is the persistent record for a colliding body pair: created
// the first step the pair collides, looked up by its order-independent
// pair key in subsequent steps, and discarded once the pair is absent
// from the narrowphase output. Grounded on the teacher's
// physics/contact.go contactPair, with the manifold's closest-point
// matching (mergeContacts/closestPoint) simplified to direct nearest-
// neighbor matching since this spec caps manifolds at 2 points rather
// than the teacher's 4.
type Contact struct {
	A, B BodyHandle
	pid  uint64

	Normal math2d.Vec2
	Depth  float64
	Points [maxManifoldPoints]ContactPoint
	Count  int

	Restitution, Friction float64
}

// refreshFromManifold updates a Contact's geometry from a fresh
// Manifold, matching each new point against the closest existing
// point (within contactBreakingDistance) so its accumulated impulse
// carries over; unmatched existing points are dropped and unmatched
// new points start with zero accumulated impulse. When there are no
// new points for the pair at all, the caller (World) drops the Contact
// entirely instead of calling this.
func (c *Contact) refreshFromManifold(m Manifold) {
	var merged [maxManifoldPoints]ContactPoint
	used := [maxManifoldPoints]bool{}

	for i := 0; i < m.PointCount; i++ {
		newPoint := m.Points[i]
		best := -1
		bestDist := contactBreakingDistance * contactBreakingDistance
		for j := 0; j < c.Count; j++ {
			if used[j] {
				continue
			}
			d := newPoint.DistSqr(&c.Points[j].Position)
			if d < bestDist {
				bestDist = d
				best = j
			}
		}
		merged[i].Position = newPoint
		if best >= 0 {
			used[best] = true
			merged[i].Jn = c.Points[best].Jn
			merged[i].Jt = c.Points[best].Jt
		}
	}

	c.Normal = m.Normal
	c.Depth = m.Depth
	c.Points = merged
	c.Count = m.PointCount
}

// newContact creates a fresh Contact for a newly-colliding pair, with
// zero accumulated impulses (nothing to warm start from yet).
func newContact(a, b BodyHandle, m Manifold, restitution, friction float64) *Contact {
	c := &Contact{A: a, B: b, pid: pairID(a, b), Restitution: restitution, Friction: friction}
	c.refreshFromManifold(m)
	return c
}

// updateAnchors recomputes each point's position relative to each
// body's center of mass, done once per step before the solver runs so
// the r x n cross-product terms reflect the current pose.
func (c *Contact) updateAnchors(bodyA, bodyB *Body) {
	for i := 0; i < c.Count; i++ {
		p := &c.Points[i]
		p.rA.Sub(&p.Position, &bodyA.xf.Position)
		p.rB.Sub(&p.Position, &bodyB.xf.Position)
	}
}

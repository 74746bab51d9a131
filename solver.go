// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package phys2

import (
	"math"

	"github.com/CipherJon/phys2/math2d"
)

// convergenceThreshold is the total-impulse-change-per-pass below
// which a velocity iteration loop may break early, per spec.md §4.4.
const convergenceThreshold = 1e-3

// staticPairInvMassFloor: inverse mass sums below this are treated as
// "both effectively static" and the pair is skipped rather than
// divided through, per spec.md §4.4's numerical safeguards.
const staticPairInvMassFloor = 1e-6

// relativePointVelocity returns the velocity of the material point at
// relative position r on a body with linear velocity v and angular
// velocity w: v + w x r (2D cross of scalar w with vector r).
func relativePointVelocity(v math2d.Vec2, w float64, r math2d.Vec2) math2d.Vec2 {
	cross := math2d.Vec2{}
	cross.CrossScalar(w, &r)
	out := math2d.Vec2{}
	out.Add(&v, &cross)
	return out
}

// effectiveMass returns the effective mass K for a unit axis n acting
// at relative positions rA, rB: (1/mA + 1/mB) + (rA x n)^2/IA + (rB x n)^2/IB.
func effectiveMass(a, b *Body, n, rA, rB math2d.Vec2) float64 {
	rAxn := rA.Cross(&n)
	rBxn := rB.Cross(&n)
	return a.invMass + b.invMass + rAxn*rAxn*a.invInertia + rBxn*rBxn*b.invInertia
}

// warmStartContacts immediately applies every contact point's stored
// (Jn, Jt) as impulses before the iterative phase, per spec.md §4.4's
// warm-start rule: a single apply, with subsequent iterations adding
// only deltas. Grounded on the teacher's physics/solver.go
// setupContactConstraint, which applies
// `poc.sp.warmImpulse * info.warmstartingFactor` up front; this spec
// applies the full stored impulse (no damping factor) since the
// accumulated impulses here are already clamped exactly to their
// physical bounds rather than relying on a damping factor to control
// divergence.
func warmStartContacts(contacts []*Contact, bodyOf func(BodyHandle) *Body) {
	for _, c := range contacts {
		bodyA, bodyB := bodyOf(c.A), bodyOf(c.B)
		if bodyA == nil || bodyB == nil {
			continue
		}
		n := c.Normal
		t := math2d.Vec2{}
		t.Perp(&n)
		for i := 0; i < c.Count; i++ {
			p := &c.Points[i]
			impulse := math2d.Vec2{}
			along := math2d.Vec2{}
			along.Scale(&n, p.Jn)
			tangential := math2d.Vec2{}
			tangential.Scale(&t, p.Jt)
			impulse.Add(&along, &tangential)

			neg := math2d.Vec2{}
			neg.Neg(&impulse)
			bodyA.applyImpulse(neg, p.rA)
			bodyB.applyImpulse(impulse, p.rB)
		}
	}
}

// solveVelocityContacts runs one velocity-iteration pass over every
// contact: normal impulse first (clamped Jn >= 0), then the Coulomb-
// capped tangent impulse, per spec.md §4.4. Returns the total absolute
// change in accumulated impulse across the pass, used by the caller to
// decide early termination.
func solveVelocityContacts(contacts []*Contact, bodyOf func(BodyHandle) *Body, dt, beta, slop float64) float64 {
	totalChange := 0.0
	for _, c := range contacts {
		bodyA, bodyB := bodyOf(c.A), bodyOf(c.B)
		if bodyA == nil || bodyB == nil {
			continue
		}
		if bodyA.invMass+bodyB.invMass < staticPairInvMassFloor {
			continue
		}
		n := c.Normal
		t := math2d.Vec2{}
		t.Perp(&n)
		restitution := c.Restitution
		friction := c.Friction

		for i := 0; i < c.Count; i++ {
			p := &c.Points[i]

			// normal constraint
			relVel := relativeVelocityAt(bodyA, bodyB, p.rA, p.rB)
			vn := relVel.Dot(&n)
			bias := (beta / dt) * math.Max(0, c.Depth-slop)
			kn := effectiveMass(bodyA, bodyB, n, p.rA, p.rB)
			if kn < math2d.Epsilon {
				continue
			}
			dJn := (-(1+restitution)*vn + bias) / kn
			newJn := math.Max(0, p.Jn+dJn)
			dJnApplied := newJn - p.Jn
			p.Jn = newJn
			totalChange += math.Abs(dJnApplied)

			impulseN := math2d.Vec2{}
			impulseN.Scale(&n, dJnApplied)
			negN := math2d.Vec2{}
			negN.Neg(&impulseN)
			bodyA.applyImpulse(negN, p.rA)
			bodyB.applyImpulse(impulseN, p.rB)

			// friction constraint, immediately after, same iteration
			relVel = relativeVelocityAt(bodyA, bodyB, p.rA, p.rB)
			vt := relVel.Dot(&t)
			kt := effectiveMass(bodyA, bodyB, t, p.rA, p.rB)
			if kt < math2d.Epsilon {
				continue
			}
			dJt := -vt / kt
			maxJt := friction * newJn
			newJt := math2d.Clamp(p.Jt+dJt, -maxJt, maxJt)
			dJtApplied := newJt - p.Jt
			p.Jt = newJt
			totalChange += math.Abs(dJtApplied)

			impulseT := math2d.Vec2{}
			impulseT.Scale(&t, dJtApplied)
			negT := math2d.Vec2{}
			negT.Neg(&impulseT)
			bodyA.applyImpulse(negT, p.rA)
			bodyB.applyImpulse(impulseT, p.rB)
		}
	}
	return totalChange
}

func relativeVelocityAt(a, b *Body, rA, rB math2d.Vec2) math2d.Vec2 {
	vAtA := relativePointVelocity(a.vel, a.angVel, rA)
	vAtB := relativePointVelocity(b.vel, b.angVel, rB)
	out := math2d.Vec2{}
	out.Sub(&vAtB, &vAtA)
	return out
}

// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package phys2

import (
	"testing"

	"github.com/CipherJon/phys2/math2d"
)

func TestNewRevoluteComputesLocalAnchors(t *testing.T) {
	a, _ := NewDynamicBody(NewCircle(1), math2d.Vec2{X: 0, Y: 0}, 0, 1, 0, 0)
	b, _ := NewDynamicBody(NewCircle(1), math2d.Vec2{X: 2, Y: 0}, 0, 1, 0, 0)
	r := NewRevolute(a, b, math2d.Vec2{X: 1, Y: 0}, 0.2)

	wantA := math2d.Vec2{X: 1, Y: 0}
	wantB := math2d.Vec2{X: -1, Y: 0}
	if !r.localAnchorA.Aeq(&wantA) {
		t.Errorf("expected local anchor A %v, got %v", wantA, r.localAnchorA)
	}
	if !r.localAnchorB.Aeq(&wantB) {
		t.Errorf("expected local anchor B %v, got %v", wantB, r.localAnchorB)
	}
}

func TestRevoluteSolveVelocityPullsBodiesTogether(t *testing.T) {
	a, _ := NewDynamicBody(NewCircle(1), math2d.Vec2{X: 0, Y: 0}, 0, 1, 0, 0)
	b, _ := NewDynamicBody(NewCircle(1), math2d.Vec2{X: 2, Y: 0}, 0, 1, 0, 0)
	a.handle, b.handle = BodyHandle{index: 0}, BodyHandle{index: 1}
	b.vel = math2d.Vec2{X: 0, Y: 1} // drifting apart at the shared anchor

	r := NewRevolute(a, b, math2d.Vec2{X: 1, Y: 0}, 0.2)
	bodyOf := func(h BodyHandle) *Body {
		if h == a.handle {
			return a
		}
		return b
	}

	r.preSolve(1.0/60, bodyOf)
	r.solveVelocity(1.0/60, bodyOf)

	relVel := relativeVelocityAt(a, b, r.rA, r.rB)
	if relVel.LenSqr() > 1 {
		t.Errorf("expected one velocity iteration to reduce relative anchor velocity, got %v", relVel)
	}
}

func TestDistanceJointPreSolveComputesUnitDirection(t *testing.T) {
	a, _ := NewDynamicBody(NewCircle(1), math2d.Vec2{X: 0, Y: 0}, 0, 1, 0, 0)
	b, _ := NewDynamicBody(NewCircle(1), math2d.Vec2{X: 0, Y: -5}, 0, 1, 0, 0)
	a.handle, b.handle = BodyHandle{index: 0}, BodyHandle{index: 1}
	d := NewDistance(a, b, math2d.Vec2{X: 0, Y: 0}, math2d.Vec2{X: 0, Y: -5}, 5, 0.1)

	bodyOf := func(h BodyHandle) *Body {
		if h == a.handle {
			return a
		}
		return b
	}
	d.preSolve(1.0/60, bodyOf)

	want := math2d.Vec2{X: 0, Y: -1}
	if !d.n.Aeq(&want) {
		t.Errorf("expected unit direction %v from a to b, got %v", want, d.n)
	}
	if d.k <= 0 {
		t.Errorf("expected positive effective mass, got %v", d.k)
	}
}

func TestStubJointHooksAreNoOps(t *testing.T) {
	a, _ := NewDynamicBody(NewCircle(1), math2d.Vec2{}, 0, 1, 0, 0)
	b, _ := NewDynamicBody(NewCircle(1), math2d.Vec2{X: 3, Y: 0}, 0, 1, 0, 0)
	a.handle, b.handle = BodyHandle{index: 0}, BodyHandle{index: 1}
	j := NewPrismatic(a, b)
	bodyOf := func(h BodyHandle) *Body {
		if h == a.handle {
			return a
		}
		return b
	}
	velBefore := a.vel
	j.preSolve(1.0/60, bodyOf)
	j.solveVelocity(1.0/60, bodyOf)
	j.solvePosition(bodyOf)
	if a.vel != velBefore {
		t.Errorf("expected a stub joint's hooks to leave body state untouched")
	}
	if j.Kind() != PrismaticJoint {
		t.Errorf("expected Kind() to report PrismaticJoint")
	}
}

func TestSignHelper(t *testing.T) {
	if sign(5) != 1 {
		t.Errorf("expected sign(5) == 1")
	}
	if sign(-5) != -1 {
		t.Errorf("expected sign(-5) == -1")
	}
	if sign(0) != 1 {
		t.Errorf("expected sign(0) == 1 (non-negative convention)")
	}
}

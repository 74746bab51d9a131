// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package phys2

import (
	"math"

	"github.com/CipherJon/phys2/math2d"
)

// JointKind identifies which variant of the Joint tagged union a value
// holds.
type JointKind int

const (
	RevoluteJoint JointKind = iota
	DistanceJoint
	PrismaticJoint
	WeldJoint
	PulleyJoint
	GearJoint
	MouseJoint
)

// JointHandle is a stable reference to a Joint owned by a World,
// mirroring BodyHandle.
type JointHandle struct {
	index uint32
	gen   uint32
}

// jointMaxImpulse bounds a joint's accumulated impulse magnitude as a
// last-resort safety clamp against runaway configurations. It keeps the
// teacher's physics/solver.go cap value (~200) as a fixed package
// constant; it is not a World or Tuning setting. Contact impulses are
// bounded by the mathematical clamps (Jn >= 0, |Jt| <= mu*Jn) instead —
// see DESIGN.md.
const jointMaxImpulse = 200.0

// Joint is a tagged variant over {Revolute, Distance, Prismatic, Weld,
// Pulley, Gear, Mouse}. Every kind exposes the same three hooks; only
// Revolute and Distance have non-trivial implementations.
type Joint interface {
	Kind() JointKind
	Bodies() (BodyHandle, BodyHandle)
	preSolve(dt float64, bodyOf func(BodyHandle) *Body)
	solveVelocity(dt float64, bodyOf func(BodyHandle) *Body)
	solvePosition(bodyOf func(BodyHandle) *Body)
}

// --- Revolute -----------------------------------------------------

// Revolute pins two bodies at a common world anchor, allowing relative
// rotation. Grounded in idiom on the teacher's Bullet-style
// accumulated-impulse constraint objects (2x2 effective-mass K with a
// diagonal fallback when singular), not on physics/pbd_base_constraints.go's
// XPBD formulation — see DESIGN.md.
type Revolute struct {
	A, B                       BodyHandle
	localAnchorA, localAnchorB math2d.Vec2
	beta                       float64

	// per-step cached state, recomputed in preSolve
	rA, rB  math2d.Vec2
	k       math2d.Mat22
	bias    math2d.Vec2
	impulse math2d.Vec2
}

// NewRevolute builds a Revolute joint pinning bodyA and bodyB at the
// given world anchor. beta is the Baumgarte factor for positional
// bias (spec.md default 0.2).
func NewRevolute(bodyA, bodyB *Body, worldAnchor math2d.Vec2, beta float64) *Revolute {
	r := &Revolute{A: bodyA.handle, B: bodyB.handle, beta: beta}
	bodyA.xf.Inv(&r.localAnchorA, &worldAnchor)
	bodyB.xf.Inv(&r.localAnchorB, &worldAnchor)
	return r
}

func (r *Revolute) Kind() JointKind                  { return RevoluteJoint }
func (r *Revolute) Bodies() (BodyHandle, BodyHandle) { return r.A, r.B }

func (r *Revolute) preSolve(dt float64, bodyOf func(BodyHandle) *Body) {
	a, b := bodyOf(r.A), bodyOf(r.B)
	if a == nil || b == nil {
		return
	}
	anchorAw, anchorBw := math2d.Vec2{}, math2d.Vec2{}
	a.xf.App(&anchorAw, &r.localAnchorA)
	b.xf.App(&anchorBw, &r.localAnchorB)
	r.rA.Sub(&anchorAw, &a.xf.Position)
	r.rB.Sub(&anchorBw, &b.xf.Position)

	k11 := a.invMass + b.invMass + r.rA.Y*r.rA.Y*a.invInertia + r.rB.Y*r.rB.Y*b.invInertia
	k12 := -r.rA.X*r.rA.Y*a.invInertia - r.rB.X*r.rB.Y*b.invInertia
	k22 := a.invMass + b.invMass + r.rA.X*r.rA.X*a.invInertia + r.rB.X*r.rB.X*b.invInertia
	r.k.SetS(k11, k12, k12, k22)

	diff := math2d.Vec2{}
	diff.Sub(&anchorBw, &anchorAw)
	r.bias.Scale(&diff, -(r.beta / dt))
}

func (r *Revolute) solveVelocity(dt float64, bodyOf func(BodyHandle) *Body) {
	a, b := bodyOf(r.A), bodyOf(r.B)
	if a == nil || b == nil {
		return
	}
	relVel := relativeVelocityAt(a, b, r.rA, r.rB)
	rhs := math2d.Vec2{}
	rhs.Add(&relVel, &r.bias)
	rhs.Neg(&rhs)

	dJ := math2d.Vec2{}
	if det := r.k.Det(); math.Abs(det) < math2d.Epsilon {
		// singular: fall back to the averaged diagonal per spec.md §4.5
		avg := (r.k.Xx + r.k.Yy) / 2
		if avg < math2d.Epsilon {
			return
		}
		dJ.Scale(&rhs, 1/avg)
	} else {
		r.k.Solve(&dJ, &rhs)
	}

	newImpulse := math2d.Vec2{}
	newImpulse.Add(&r.impulse, &dJ)
	if mag := newImpulse.Len(); mag > jointMaxImpulse {
		newImpulse.Scale(&newImpulse, jointMaxImpulse/mag)
	}
	applied := math2d.Vec2{}
	applied.Sub(&newImpulse, &r.impulse)
	r.impulse = newImpulse

	negApplied := math2d.Vec2{}
	negApplied.Neg(&applied)
	a.applyImpulse(negApplied, r.rA)
	b.applyImpulse(applied, r.rB)
}

func (r *Revolute) solvePosition(bodyOf func(BodyHandle) *Body) {
	a, b := bodyOf(r.A), bodyOf(r.B)
	if a == nil || b == nil {
		return
	}
	anchorAw, anchorBw := math2d.Vec2{}, math2d.Vec2{}
	a.xf.App(&anchorAw, &r.localAnchorA)
	b.xf.App(&anchorBw, &r.localAnchorB)
	errVec := math2d.Vec2{}
	errVec.Sub(&anchorBw, &anchorAw)
	if errVec.Len() <= 5e-3 {
		return
	}
	correction := math2d.Vec2{}
	correction.Scale(&errVec, -0.5)

	invSum := a.invMass + b.invMass
	if invSum < math2d.Epsilon {
		return
	}
	deltaA := math2d.Vec2{}
	deltaA.Scale(&correction, -a.invMass/invSum)
	deltaB := math2d.Vec2{}
	deltaB.Scale(&correction, b.invMass/invSum)
	a.xf.Position.Add(&a.xf.Position, &deltaA)
	b.xf.Position.Add(&b.xf.Position, &deltaB)
}

// --- Distance -------------------------------------------------------

// Distance fixes a target distance L between two anchor points.
type Distance struct {
	A, B                       BodyHandle
	localAnchorA, localAnchorB math2d.Vec2
	length                     float64
	damping                    float64
	impulse                    float64

	n      math2d.Vec2
	rA, rB math2d.Vec2
	k      float64
}

// NewDistance builds a Distance joint between the world anchors on
// bodyA and bodyB, with target length length.
func NewDistance(bodyA, bodyB *Body, anchorA, anchorB math2d.Vec2, length, damping float64) *Distance {
	d := &Distance{A: bodyA.handle, B: bodyB.handle, length: length, damping: damping}
	bodyA.xf.Inv(&d.localAnchorA, &anchorA)
	bodyB.xf.Inv(&d.localAnchorB, &anchorB)
	return d
}

func (d *Distance) Kind() JointKind                  { return DistanceJoint }
func (d *Distance) Bodies() (BodyHandle, BodyHandle) { return d.A, d.B }

func (d *Distance) preSolve(dt float64, bodyOf func(BodyHandle) *Body) {
	a, b := bodyOf(d.A), bodyOf(d.B)
	if a == nil || b == nil {
		return
	}
	anchorAw, anchorBw := math2d.Vec2{}, math2d.Vec2{}
	a.xf.App(&anchorAw, &d.localAnchorA)
	b.xf.App(&anchorBw, &d.localAnchorB)
	d.rA.Sub(&anchorAw, &a.xf.Position)
	d.rB.Sub(&anchorBw, &b.xf.Position)

	diff := math2d.Vec2{}
	diff.Sub(&anchorBw, &anchorAw)
	dist := diff.Len()
	if dist > math2d.Epsilon {
		d.n.Scale(&diff, 1/dist)
	} else {
		d.n.SetS(1, 0)
	}
	d.k = effectiveMass(a, b, d.n, d.rA, d.rB)
}

func (d *Distance) solveVelocity(dt float64, bodyOf func(BodyHandle) *Body) {
	a, b := bodyOf(d.A), bodyOf(d.B)
	if a == nil || b == nil || d.k < math2d.Epsilon {
		return
	}
	anchorAw, anchorBw := math2d.Vec2{}, math2d.Vec2{}
	a.xf.App(&anchorAw, &d.localAnchorA)
	b.xf.App(&anchorBw, &d.localAnchorB)
	diff := math2d.Vec2{}
	diff.Sub(&anchorBw, &anchorAw)
	c := diff.Len() - d.length

	relVel := relativeVelocityAt(a, b, d.rA, d.rB)
	cDot := relVel.Dot(&d.n)
	bias := (d.damping * c) / dt

	dImpulse := -(cDot + bias) / d.k
	newImpulse := d.impulse + dImpulse
	if mag := math.Abs(newImpulse); mag > jointMaxImpulse {
		newImpulse = jointMaxImpulse * sign(newImpulse)
	}
	applied := newImpulse - d.impulse
	d.impulse = newImpulse

	impulseVec := math2d.Vec2{}
	impulseVec.Scale(&d.n, applied)
	negImpulse := math2d.Vec2{}
	negImpulse.Neg(&impulseVec)
	a.applyImpulse(negImpulse, d.rA)
	b.applyImpulse(impulseVec, d.rB)
}

func (d *Distance) solvePosition(bodyOf func(BodyHandle) *Body) {
	// Positional drift is corrected via the velocity-bias damping term
	// above; no separate NGS position pass is needed for a scalar
	// distance constraint in this spec.
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

// --- stub joints ------------------------------------------------------

// stubJoint implements Joint for the kinds this spec names but does
// not fully specify: Prismatic, Weld, Pulley, Gear, Mouse. Its hooks
// are no-ops so a Joint value always exists for every JointKind, but
// World.AddJoint rejects a *stubJoint outright with Unsupported
// rather than admitting a joint whose solve step silently does
// nothing (see world.go).
type stubJoint struct {
	kind JointKind
	a, b BodyHandle
}

func newStubJoint(kind JointKind, a, b BodyHandle) *stubJoint {
	return &stubJoint{kind: kind, a: a, b: b}
}

func (s *stubJoint) Kind() JointKind                  { return s.kind }
func (s *stubJoint) Bodies() (BodyHandle, BodyHandle) { return s.a, s.b }
func (s *stubJoint) preSolve(dt float64, bodyOf func(BodyHandle) *Body)      {}
func (s *stubJoint) solveVelocity(dt float64, bodyOf func(BodyHandle) *Body) {}
func (s *stubJoint) solvePosition(bodyOf func(BodyHandle) *Body)             {}

// NewPrismatic, NewWeld, NewPulley, NewGear, NewMouse construct
// placeholder joints of their respective kinds, per spec.md §3/§4.5.
// The Joint value they return is usable standalone (Kind, Bodies,
// the no-op solve hooks), but World.AddJoint refuses to admit it into
// a World, since a joint that never applies an impulse would solve
// silently and successfully every step.
func NewPrismatic(bodyA, bodyB *Body) Joint { return newStubJoint(PrismaticJoint, bodyA.handle, bodyB.handle) }
func NewWeld(bodyA, bodyB *Body) Joint      { return newStubJoint(WeldJoint, bodyA.handle, bodyB.handle) }
func NewPulley(bodyA, bodyB *Body) Joint    { return newStubJoint(PulleyJoint, bodyA.handle, bodyB.handle) }
func NewGear(bodyA, bodyB *Body) Joint      { return newStubJoint(GearJoint, bodyA.handle, bodyB.handle) }
func NewMouse(bodyA, bodyB *Body) Joint     { return newStubJoint(MouseJoint, bodyA.handle, bodyB.handle) }

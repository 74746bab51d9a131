// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package phys2

import (
	"log/slog"
	"math"
	"sort"

	"github.com/CipherJon/phys2/math2d"
)

// sleepLinearThreshold, sleepAngularThreshold, sleepStepsRequired:
// a dynamic body is put to sleep once its linear speed squared and
// angular speed squared both stay below these thresholds for this many
// consecutive steps, per the sleeping design recorded in DESIGN.md.
// Grounded on original_source/src/dynamics/world.py, whose Body
// carries an analogous (unused-in-the-distilled-spec) sleep flag.
const (
	sleepLinearThreshold  = 0.01 * 0.01
	sleepAngularThreshold = 0.02 * 0.02
	sleepStepsRequired    = 30
)

// World owns every Body, Joint, and persistent Contact in a
// simulation, and advances them with Step. Grounded in orchestration
// shape on the teacher's physics/physics.go Physics.Simulate, replaced
// wholesale with the sequential-impulse pipeline of spec.md §4.7: a
// stable-handle arena (see body.go's BodyHandle) stands in for the
// teacher's bodies component manager.
type World struct {
	gravity math2d.Vec2
	tuning  Tuning

	bodies    map[uint32]*Body
	nextBody  uint32
	bodyGen   map[uint32]uint32
	joints    map[uint32]Joint
	nextJoint uint32
	jointGen  map[uint32]uint32

	contacts map[uint64]*Contact

	stepping bool
	log      *slog.Logger
}

// NewWorld constructs a World with the given gravity vector and
// default Tuning, modified by any supplied Options.
func NewWorld(gravity math2d.Vec2, opts ...Option) *World {
	t := defaultTuning
	for _, opt := range opts {
		opt(&t)
	}
	return &World{
		gravity:  gravity,
		tuning:   t,
		bodies:   map[uint32]*Body{},
		bodyGen:  map[uint32]uint32{},
		joints:   map[uint32]Joint{},
		jointGen: map[uint32]uint32{},
		contacts: map[uint64]*Contact{},
		log:      slog.Default(),
	}
}

// Gravity returns the World's current gravity vector.
func (w *World) Gravity() math2d.Vec2 { return w.gravity }

// SetGravity replaces the World's gravity vector.
func (w *World) SetGravity(g math2d.Vec2) { w.gravity = g }

// Tuning returns a copy of the World's current solver tuning.
func (w *World) Tuning() Tuning { return w.tuning }

// AddBody takes ownership of b, assigning it a stable handle.
func (w *World) AddBody(b *Body) (BodyHandle, error) {
	if b == nil {
		return BodyHandle{}, newErr("AddBody", InvalidArgument, nil)
	}
	idx := w.nextBody
	w.nextBody++
	gen := w.bodyGen[idx] + 1
	w.bodyGen[idx] = gen
	h := BodyHandle{index: idx, gen: gen}
	b.handle = h
	w.bodies[idx] = b
	return h, nil
}

// RemoveBody removes the body h refers to, along with every contact
// that touches it. Returns NotFound if h does not refer to a body
// currently owned by w.
func (w *World) RemoveBody(h BodyHandle) error {
	b, ok := w.bodies[h.index]
	if !ok || w.bodyGen[h.index] != h.gen {
		return newErr("RemoveBody", NotFound, nil)
	}
	_ = b
	delete(w.bodies, h.index)
	for pid, c := range w.contacts {
		if c.A == h || c.B == h {
			delete(w.contacts, pid)
		}
	}
	return nil
}

// bodyOf resolves a BodyHandle to its live *Body, returning nil if the
// handle is stale or unknown. Used as the closure passed down into the
// solver and joint hooks, which operate purely on handles.
func (w *World) bodyOf(h BodyHandle) *Body {
	b, ok := w.bodies[h.index]
	if !ok || w.bodyGen[h.index] != h.gen {
		return nil
	}
	return b
}

// Body returns the live body referred to by h, or NotFound if h is
// stale or unknown to w.
func (w *World) Body(h BodyHandle) (*Body, error) {
	if b := w.bodyOf(h); b != nil {
		return b, nil
	}
	return nil, newErr("Body", NotFound, nil)
}

// AddJoint takes ownership of j, assigning it a stable handle. Both
// bodies j.Bodies() names must already belong to w.
func (w *World) AddJoint(j Joint) (JointHandle, error) {
	if j == nil {
		return JointHandle{}, newErr("AddJoint", InvalidArgument, nil)
	}
	if _, stub := j.(*stubJoint); stub {
		return JointHandle{}, newErr("AddJoint", Unsupported, nil)
	}
	a, b := j.Bodies()
	if w.bodyOf(a) == nil || w.bodyOf(b) == nil {
		return JointHandle{}, newErr("AddJoint", NotFound, nil)
	}
	idx := w.nextJoint
	w.nextJoint++
	gen := w.jointGen[idx] + 1
	w.jointGen[idx] = gen
	w.joints[idx] = j
	return JointHandle{index: idx, gen: gen}, nil
}

// RemoveJoint removes the joint h refers to. Returns NotFound if h
// does not refer to a joint currently owned by w.
func (w *World) RemoveJoint(h JointHandle) error {
	if _, ok := w.joints[h.index]; !ok || w.jointGen[h.index] != h.gen {
		return newErr("RemoveJoint", NotFound, nil)
	}
	delete(w.joints, h.index)
	return nil
}

// IterateBodies calls fn for every body currently owned by w, in
// unspecified order. fn must not add or remove bodies.
func (w *World) IterateBodies(fn func(*Body)) {
	for _, b := range w.bodies {
		fn(b)
	}
}

// IterateJoints calls fn for every joint currently owned by w, in
// unspecified order.
func (w *World) IterateJoints(fn func(Joint)) {
	for _, j := range w.joints {
		fn(j)
	}
}

// IterateContacts calls fn for every persistent contact currently
// tracked by w, in unspecified order.
func (w *World) IterateContacts(fn func(*Contact)) {
	for _, c := range w.contacts {
		fn(c)
	}
}

// Step advances the simulation by dt seconds using the World's
// configured velocity/position iteration counts.
func (w *World) Step(dt float64) error {
	return w.StepN(dt, w.tuning.VelocityIterations, w.tuning.PositionIterations)
}

// StepN advances the simulation by dt seconds using exactly velIters
// velocity iterations and posIters position iterations, overriding the
// World's configured Tuning for this call only. Implements the 8-stage
// pipeline of spec.md §4.7:
//
//  1. apply external forces (already accumulated via ApplyForceAtPoint)
//  2. integrate velocities
//  3. broadphase
//  4. narrowphase + persistent contact refresh
//  5. build islands
//  6. per island: joint/contact pre-solve, velocity iterate, position iterate
//  7. integrate positions
//  8. clear accumulators, apply sleeping
//
// Grounded in stage ordering on the teacher's physics/physics.go
// Simulate, generalized from its single flat body list to the island
// partition spec.md §4.6 requires.
func (w *World) StepN(dt float64, velIters, posIters int) error {
	if dt <= 0 {
		return newErr("StepN", InvalidArgument, nil)
	}
	if velIters <= 0 || posIters < 0 {
		return newErr("StepN", InvalidArgument, nil)
	}
	if w.stepping {
		return newErr("StepN", Unsupported, nil)
	}
	w.stepping = true
	defer func() { w.stepping = false }()

	snapshot := w.snapshotBodies()

	for _, b := range w.bodies {
		b.integrateVelocity(dt, w.gravity)
	}

	boxes := make([]AABB, 0, len(w.bodies))
	for _, b := range w.bodies {
		boxes = append(boxes, b.worldAABB())
	}
	pairs := sweepAndPrune(boxes, w.bodies)

	live := map[uint64]bool{}
	for _, pair := range pairs {
		bodyA, bodyB := w.bodies[pair.a.index], w.bodies[pair.b.index]
		if bodyA == nil || bodyB == nil {
			continue
		}
		m, hit := Collide(bodyA, bodyB)
		if !hit {
			continue
		}
		// a sleeping dynamic body touched by a moving dynamic body wakes,
		// per the sleeping design recorded in SPEC_FULL.md/DESIGN.md; a
		// resting contact against a static body or another sleeping body
		// is not itself a wake signal.
		if !bodyA.static && !bodyB.static {
			if bodyA.sleeping && !bodyB.sleeping {
				bodyA.wake()
			} else if bodyB.sleeping && !bodyA.sleeping {
				bodyB.wake()
			}
		}

		pid := pairID(pair.a, pair.b)
		live[pid] = true
		if c, ok := w.contacts[pid]; ok {
			c.refreshFromManifold(m)
			c.Restitution = combinedRestitution(bodyA, bodyB)
			c.Friction = combinedFriction(bodyA, bodyB)
		} else {
			w.contacts[pid] = newContact(pair.a, pair.b, m, combinedRestitution(bodyA, bodyB), combinedFriction(bodyA, bodyB))
		}
	}
	for pid := range w.contacts {
		if !live[pid] {
			delete(w.contacts, pid)
		}
	}

	// Contacts and joints are gathered from Go maps, whose iteration
	// order is randomized per process; sorted here by a stable key
	// (contact pair id, joint arena index) so the sequential-impulse
	// solve visits them in the same order on every run for the same
	// input sequence, per spec.md §5/§8's reproducibility requirement.
	contactList := make([]*Contact, 0, len(w.contacts))
	for _, c := range w.contacts {
		bodyA, bodyB := w.bodies[c.A.index], w.bodies[c.B.index]
		if bodyA == nil || bodyB == nil {
			continue
		}
		c.updateAnchors(bodyA, bodyB)
		contactList = append(contactList, c)
	}
	sort.Slice(contactList, func(i, j int) bool { return contactList[i].pid < contactList[j].pid })

	jointIdx := make([]uint32, 0, len(w.joints))
	for idx := range w.joints {
		jointIdx = append(jointIdx, idx)
	}
	sort.Slice(jointIdx, func(i, j int) bool { return jointIdx[i] < jointIdx[j] })
	jointList := make([]Joint, 0, len(jointIdx))
	for _, idx := range jointIdx {
		jointList = append(jointList, w.joints[idx])
	}

	islands := buildIslands(w.bodies, contactList, jointList)

	for _, isl := range islands {
		awake := false
		for _, h := range isl.Bodies {
			if b := w.bodyOf(h); b != nil && !b.static && !b.sleeping {
				awake = true
				break
			}
		}
		if !awake {
			continue // an all-asleep island keeps its contacts and impulses untouched
		}
		w.solveIsland(isl, dt, velIters, posIters)
	}

	for _, b := range w.bodies {
		b.integratePosition(dt)
	}

	if bad := w.firstNonFiniteBody(); bad != nil {
		// Roll back: a non-finite pose or velocity must not survive past
		// this Step into the next one, per spec.md §7. The whole body set
		// is restored rather than just the offending body, since its
		// contacts/joints may have already propagated bad impulses to
		// neighbors earlier in this same solve pass.
		w.log.Warn("phys2: non-finite body state detected, rolling back step", "body", bad.handle.index)
		w.restoreBodies(snapshot)
		return newErr("StepN", NumericalFailure, nil)
	}

	for _, b := range w.bodies {
		b.clearAccumulators()
	}

	w.applySleeping()

	return nil
}

// solveIsland runs the pre-solve/velocity-iterate/position-iterate
// sequence for a single island, per spec.md §4.6-4.7: warm start once,
// then up to velIters passes breaking early on convergence, then up to
// posIters positional correction passes.
func (w *World) solveIsland(isl *Island, dt float64, velIters, posIters int) {
	bodyOf := w.bodyOf

	for _, j := range isl.Joints {
		j.preSolve(dt, bodyOf)
	}

	warmStartContacts(isl.Contacts, bodyOf)

	for i := 0; i < velIters; i++ {
		change := 0.0
		for _, j := range isl.Joints {
			j.solveVelocity(dt, bodyOf)
		}
		change += solveVelocityContacts(isl.Contacts, bodyOf, dt, w.tuning.Beta, w.tuning.Slop)
		if change < convergenceThreshold {
			break
		}
	}

	for i := 0; i < posIters; i++ {
		for _, j := range isl.Joints {
			j.solvePosition(bodyOf)
		}
	}
}

// bodySnapshot captures the subset of Body state StepN mutates, so a
// step that produces a non-finite result can be rolled back atomically
// instead of letting NaN/Inf leak into the next Step, per spec.md §7
// ("must not silently propagate NaN into subsequent steps").
type bodySnapshot struct {
	xf     math2d.Transform
	vel    math2d.Vec2
	angVel float64
}

// snapshotBodies records every body's pre-step pose and velocity,
// taken before StepN mutates anything.
func (w *World) snapshotBodies() map[uint32]bodySnapshot {
	snap := make(map[uint32]bodySnapshot, len(w.bodies))
	for idx, b := range w.bodies {
		snap[idx] = bodySnapshot{xf: b.xf, vel: b.vel, angVel: b.angVel}
	}
	return snap
}

// restoreBodies resets every still-present body to its recorded
// snapshot and clears its accumulators and sleep streak, undoing a
// step whose integration produced a non-finite result.
func (w *World) restoreBodies(snap map[uint32]bodySnapshot) {
	for idx, s := range snap {
		b, ok := w.bodies[idx]
		if !ok {
			continue
		}
		b.xf = s.xf
		b.vel = s.vel
		b.angVel = s.angVel
		b.clearAccumulators()
		b.sleepStreak = 0
	}
}

// firstNonFiniteBody returns the first body (in arbitrary order) whose
// pose or velocity went NaN or Inf, or nil if every body is finite.
func (w *World) firstNonFiniteBody() *Body {
	for _, b := range w.bodies {
		if !finiteVec(b.xf.Position) || !finiteVec(b.vel) || math.IsNaN(b.angVel) || math.IsInf(b.angVel, 0) {
			return b
		}
	}
	return nil
}

func finiteVec(v math2d.Vec2) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// applySleeping advances each dynamic body's sleep streak and puts it
// to sleep once both its linear and angular speed have stayed below
// threshold for sleepStepsRequired consecutive steps. A body attached
// to any joint is never put to sleep.
func (w *World) applySleeping() {
	jointed := map[uint32]bool{}
	for _, j := range w.joints {
		a, b := j.Bodies()
		jointed[a.index] = true
		jointed[b.index] = true
	}
	for idx, b := range w.bodies {
		if b.static || jointed[idx] {
			continue
		}
		slow := b.vel.LenSqr() < sleepLinearThreshold && b.angVel*b.angVel < sleepAngularThreshold
		if slow {
			b.sleepStreak++
			if b.sleepStreak >= sleepStepsRequired {
				b.sleeping = true
				b.vel.Zero()
				b.angVel = 0
			}
		} else {
			b.sleepStreak = 0
		}
	}
}

// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package phys2

import (
	"testing"

	"github.com/CipherJon/phys2/math2d"
)

func squareVerts(half float64) []math2d.Vec2 {
	return []math2d.Vec2{
		{X: -half, Y: -half},
		{X: half, Y: -half},
		{X: half, Y: half},
		{X: -half, Y: half},
	}
}

func TestValidateShapeAcceptsUnitSquare(t *testing.T) {
	if err := validateShape(NewPolygon(squareVerts(1))); err != nil {
		t.Errorf("expected a CCW unit square to validate, got %v", err)
	}
}

func TestValidateShapeRejectsTooFewVertices(t *testing.T) {
	p := NewPolygon([]math2d.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err := validateShape(p); err == nil {
		t.Errorf("expected a 2-vertex polygon to be rejected")
	}
}

func TestValidateShapeRejectsClockwiseWinding(t *testing.T) {
	cw := []math2d.Vec2{
		{X: -1, Y: -1},
		{X: -1, Y: 1},
		{X: 1, Y: 1},
		{X: 1, Y: -1},
	}
	if err := validateShape(NewPolygon(cw)); err == nil {
		t.Errorf("expected a clockwise-wound polygon to be rejected")
	}
}

func TestValidateShapeRejectsNonConvex(t *testing.T) {
	// an "L" shape: reflex vertex at (0.5, 0.5)
	concave := []math2d.Vec2{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 1, Y: 1},
		{X: 0.5, Y: 0.5},
		{X: 0, Y: 1},
	}
	if err := validateShape(NewPolygon(concave)); err == nil {
		t.Errorf("expected a non-convex polygon to be rejected")
	}
}

func TestValidateShapeRejectsNonPositiveRadius(t *testing.T) {
	if err := validateShape(NewCircle(0)); err == nil {
		t.Errorf("expected a zero-radius circle to be rejected")
	}
	if err := validateShape(NewCircle(-1)); err == nil {
		t.Errorf("expected a negative-radius circle to be rejected")
	}
}

func TestCircleInertia(t *testing.T) {
	c := NewCircle(2)
	got := c.Inertia(3)
	want := 0.5 * 3 * 2 * 2
	if !math2d.Aeq(got, want) {
		t.Errorf("expected inertia %v, got %v", want, got)
	}
}

func TestPolygonAABBMatchesSquareExtent(t *testing.T) {
	p := NewPolygon(squareVerts(1))
	xf := math2d.Transform{Position: math2d.Vec2{X: 5, Y: 5}}
	box := p.AABB(&xf, 0)
	wantLower := math2d.Vec2{X: 4, Y: 4}
	wantUpper := math2d.Vec2{X: 6, Y: 6}
	if !box.Lower.Aeq(&wantLower) || !box.Upper.Aeq(&wantUpper) {
		t.Errorf("expected AABB [%v, %v], got [%v, %v]", wantLower, wantUpper, box.Lower, box.Upper)
	}
}

func TestPolygonInertiaPositiveForUnitSquareUnitMass(t *testing.T) {
	p := NewPolygon(squareVerts(0.5))
	got := p.Inertia(1)
	if got <= 0 {
		t.Errorf("expected positive inertia for a unit square, got %v", got)
	}
	// I = m*(w^2+h^2)/12 for a rectangle of side 1 about its centroid = 1/6
	want := 1.0 / 6.0
	if got < want-1e-6 || got > want+1e-6 {
		t.Errorf("expected inertia ~= %v for a unit square, got %v", want, got)
	}
}

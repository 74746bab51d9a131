// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package math2d

import (
	"math"
	"testing"
)

func TestAddVec2(t *testing.T) {
	v, a, b, want := &Vec2{}, &Vec2{1, 2}, &Vec2{3, 4}, &Vec2{4, 6}
	if !v.Add(a, b).Eq(want) {
		t.Errorf("got %v want %v", v, want)
	}
}

func TestSubVec2(t *testing.T) {
	v, a, b, want := &Vec2{}, &Vec2{3, 4}, &Vec2{1, 2}, &Vec2{2, 2}
	if !v.Sub(a, b).Eq(want) {
		t.Errorf("got %v want %v", v, want)
	}
}

func TestDotVec2(t *testing.T) {
	a, b := &Vec2{1, 0}, &Vec2{0, 1}
	if got := a.Dot(b); got != 0 {
		t.Errorf("got %v want 0", got)
	}
	if got := a.Dot(a); got != 1 {
		t.Errorf("got %v want 1", got)
	}
}

func TestCrossVec2(t *testing.T) {
	a, b := &Vec2{1, 0}, &Vec2{0, 1}
	if got := a.Cross(b); got != 1 {
		t.Errorf("got %v want 1", got)
	}
	if got := b.Cross(a); got != -1 {
		t.Errorf("got %v want -1", got)
	}
}

func TestUnitZeroLength(t *testing.T) {
	v, a := &Vec2{}, &Vec2{0, 0}
	v.Unit(a)
	if v.X != 0 || v.Y != 0 {
		t.Errorf("zero vector should normalize to zero, got %v", v)
	}
}

func TestUnit(t *testing.T) {
	v, a := &Vec2{}, &Vec2{3, 4}
	v.Unit(a)
	if !Aeq(v.Len(), 1) {
		t.Errorf("got length %v want 1", v.Len())
	}
}

func TestPerp(t *testing.T) {
	v, a := &Vec2{}, &Vec2{1, 0}
	v.Perp(a)
	if !v.Aeq(&Vec2{0, 1}) {
		t.Errorf("got %v want (0,1)", v)
	}
	// perpendicular tangent to a normal must be orthogonal to it
	if !Aeq(v.Dot(a), 0) {
		t.Errorf("perp not orthogonal to source: dot=%v", v.Dot(a))
	}
}

func TestRotateQuarterTurn(t *testing.T) {
	v, a := &Vec2{}, &Vec2{1, 0}
	v.Rotate(a, math.Pi/2)
	if !v.Aeq(&Vec2{0, 1}) {
		t.Errorf("got %v want (0,1)", v)
	}
}

func TestClampVec2(t *testing.T) {
	v, a, lo, hi := &Vec2{}, &Vec2{-5, 5}, &Vec2{0, 0}, &Vec2{1, 1}
	v.Clamp(a, lo, hi)
	if !v.Eq(&Vec2{0, 1}) {
		t.Errorf("got %v want (0,1)", v)
	}
}

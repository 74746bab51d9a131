// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package math2d

import (
	"math"
	"testing"
)

func TestTransformRoundTrip(t *testing.T) {
	tr := &Transform{Position: Vec2{3, -2}, Rotation: math.Pi / 6}
	p := &Vec2{5, 7}
	world, local := &Vec2{}, &Vec2{}
	tr.App(world, p)
	tr.Inv(local, world)
	if !local.Aeq(p) {
		t.Errorf("round trip: got %v want %v", local, p)
	}
}

func TestTransformAppliesRotateThenTranslate(t *testing.T) {
	tr := &Transform{Position: Vec2{10, 0}, Rotation: math.Pi / 2}
	out := &Vec2{}
	tr.App(out, &Vec2{1, 0})
	want := &Vec2{10, 1}
	if !out.Aeq(want) {
		t.Errorf("got %v want %v", out, want)
	}
}

func TestMat22Inverse(t *testing.T) {
	m := &Mat22{Xx: 4, Xy: 7, Yx: 2, Yy: 6}
	inv, ok := NewMat22().Inv(m)
	if !ok {
		t.Fatalf("expected non-singular matrix")
	}
	identity := NewMat22().SetS(
		m.Xx*inv.Xx+m.Xy*inv.Yx, m.Xx*inv.Xy+m.Xy*inv.Yy,
		m.Yx*inv.Xx+m.Yy*inv.Yx, m.Yx*inv.Xy+m.Yy*inv.Yy,
	)
	want := NewMat22I()
	if !Aeq(identity.Xx, want.Xx) || !Aeq(identity.Xy, want.Xy) ||
		!Aeq(identity.Yx, want.Yx) || !Aeq(identity.Yy, want.Yy) {
		t.Errorf("m*inv(m) got %v want identity", identity)
	}
}

func TestMat22SingularFallsBackToDiagonal(t *testing.T) {
	m := &Mat22{Xx: 2, Xy: 4, Yx: 1, Yy: 2} // det = 0
	inv, ok := NewMat22().Inv(m)
	if ok {
		t.Fatalf("expected singular matrix to report ok=false")
	}
	if inv.Xx != m.Xx || inv.Yy != m.Yy || inv.Xy != 0 || inv.Yx != 0 {
		t.Errorf("singular fallback should keep the diagonal, got %v", inv)
	}
}

// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package phys2

import (
	"testing"

	"github.com/CipherJon/phys2/math2d"
)

func TestCollideCirclesOverlap(t *testing.T) {
	a, _ := NewDynamicBody(NewCircle(1), math2d.Vec2{}, 0, 1, 0, 0)
	b, _ := NewDynamicBody(NewCircle(1), math2d.Vec2{X: 1.5, Y: 0}, 0, 1, 0, 0)
	m, hit := Collide(a, b)
	if !hit {
		t.Fatalf("expected overlapping circles (radius sum 2, dist 1.5) to collide")
	}
	want := math2d.Vec2{X: 1, Y: 0}
	if !m.Normal.Aeq(&want) {
		t.Errorf("expected normal %v pointing from a into b, got %v", want, m.Normal)
	}
	if m.Depth <= 0 {
		t.Errorf("expected positive penetration depth, got %v", m.Depth)
	}
}

func TestCollideCirclesSeparated(t *testing.T) {
	a, _ := NewDynamicBody(NewCircle(1), math2d.Vec2{}, 0, 1, 0, 0)
	b, _ := NewDynamicBody(NewCircle(1), math2d.Vec2{X: 10, Y: 0}, 0, 1, 0, 0)
	if _, hit := Collide(a, b); hit {
		t.Errorf("expected distant circles not to collide")
	}
}

func TestCollidePolygonCircleFaceRegion(t *testing.T) {
	poly, _ := NewDynamicBody(NewPolygon(squareVerts(1)), math2d.Vec2{}, 0, 1, 0, 0)
	circle, _ := NewDynamicBody(NewCircle(0.5), math2d.Vec2{X: 1.2, Y: 0}, 0, 1, 0, 0)
	m, hit := Collide(poly, circle)
	if !hit {
		t.Fatalf("expected the circle resting against the square's right face to collide")
	}
	want := math2d.Vec2{X: 1, Y: 0}
	if !m.Normal.Aeq(&want) {
		t.Errorf("expected face normal %v, got %v", want, m.Normal)
	}
}

func TestCollidePolygonCircleVertexRegion(t *testing.T) {
	poly, _ := NewDynamicBody(NewPolygon(squareVerts(1)), math2d.Vec2{}, 0, 1, 0, 0)
	// place the circle diagonally off the square's corner at (1,1)
	circle, _ := NewDynamicBody(NewCircle(0.5), math2d.Vec2{X: 1.3, Y: 1.3}, 0, 1, 0, 0)
	m, hit := Collide(poly, circle)
	if !hit {
		t.Fatalf("expected the circle near the square's corner to collide")
	}
	if m.PointCount != 1 {
		t.Errorf("expected exactly one contact point, got %d", m.PointCount)
	}
}

func TestCollidePolygonsGeneratesTwoPointManifold(t *testing.T) {
	a, _ := NewDynamicBody(NewPolygon(squareVerts(1)), math2d.Vec2{}, 0, 1, 0, 0)
	b, _ := NewDynamicBody(NewPolygon(squareVerts(1)), math2d.Vec2{X: 1.8, Y: 0}, 0, 1, 0, 0)
	m, hit := Collide(a, b)
	if !hit {
		t.Fatalf("expected two overlapping unit squares to collide")
	}
	if m.PointCount != 2 {
		t.Errorf("expected a 2-point manifold for face-face overlap, got %d", m.PointCount)
	}
	if m.Depth <= 0 || m.Depth > 0.3 {
		t.Errorf("expected a small positive depth near 0.2, got %v", m.Depth)
	}
}

func TestClipSegmentToLineDropsOutsidePoints(t *testing.T) {
	in := [2]math2d.Vec2{{X: -1, Y: 0}, {X: 1, Y: 0}}
	normal := math2d.Vec2{X: 1, Y: 0}
	out, count := clipSegmentToLine(in, 2, normal, 0)
	if count != 2 {
		t.Fatalf("expected clipping against x<=0 to keep exactly 1 of the original 2 points plus the intersection, got %d", count)
	}
	if out[0].X > 1e-9 {
		t.Errorf("expected the surviving point to satisfy x<=0, got %v", out[0])
	}
}

func TestSynthesizeTouchingClampsSmallDepth(t *testing.T) {
	got := synthesizeTouching(0)
	if got < penetrationTolerance {
		t.Errorf("expected a zero-gap depth to be clamped up to penetrationTolerance, got %v", got)
	}
	got = synthesizeTouching(1)
	if got != 1 {
		t.Errorf("expected a depth already above tolerance to pass through unchanged, got %v", got)
	}
}

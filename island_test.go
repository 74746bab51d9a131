// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package phys2

import (
	"testing"

	"github.com/CipherJon/phys2/math2d"
)

func TestBuildIslandsSplitsUnconnectedBodies(t *testing.T) {
	a, _ := NewDynamicBody(NewCircle(1), math2d.Vec2{X: 0, Y: 0}, 0, 1, 0, 0)
	b, _ := NewDynamicBody(NewCircle(1), math2d.Vec2{X: 100, Y: 0}, 0, 1, 0, 0)
	bodies := map[uint32]*Body{0: a, 1: b}
	a.handle, b.handle = BodyHandle{index: 0}, BodyHandle{index: 1}

	islands := buildIslands(bodies, nil, nil)
	if len(islands) != 2 {
		t.Fatalf("expected 2 islands for 2 unconnected dynamic bodies, got %d", len(islands))
	}
}

func TestBuildIslandsMergesContactConnectedBodies(t *testing.T) {
	a, _ := NewDynamicBody(NewCircle(1), math2d.Vec2{X: 0, Y: 0}, 0, 1, 0, 0)
	b, _ := NewDynamicBody(NewCircle(1), math2d.Vec2{X: 1, Y: 0}, 0, 1, 0, 0)
	a.handle, b.handle = BodyHandle{index: 0}, BodyHandle{index: 1}
	bodies := map[uint32]*Body{0: a, 1: b}

	contacts := []*Contact{{A: a.handle, B: b.handle}}
	islands := buildIslands(bodies, contacts, nil)
	if len(islands) != 1 {
		t.Fatalf("expected 1 island for 2 contact-connected bodies, got %d", len(islands))
	}
	if len(islands[0].Bodies) != 2 {
		t.Errorf("expected both bodies in the merged island, got %d", len(islands[0].Bodies))
	}
}

func TestBuildIslandsDoesNotMergeThroughAStaticBody(t *testing.T) {
	floor, _ := NewStaticBody(NewPolygon(squareVerts(50)), math2d.Vec2{X: 0, Y: -50}, 0)
	a, _ := NewDynamicBody(NewCircle(1), math2d.Vec2{X: -10, Y: 0}, 0, 1, 0, 0)
	b, _ := NewDynamicBody(NewCircle(1), math2d.Vec2{X: 10, Y: 0}, 0, 1, 0, 0)
	floor.handle = BodyHandle{index: 0}
	a.handle = BodyHandle{index: 1}
	b.handle = BodyHandle{index: 2}
	bodies := map[uint32]*Body{0: floor, 1: a, 2: b}

	contacts := []*Contact{
		{A: a.handle, B: floor.handle},
		{A: b.handle, B: floor.handle},
	}
	islands := buildIslands(bodies, contacts, nil)
	if len(islands) != 2 {
		t.Errorf("expected 2 islands: two dynamic bodies sharing only a static floor must not merge, got %d", len(islands))
	}
}

func TestUnionFindBasic(t *testing.T) {
	parent := map[uint32]uint32{0: 0, 1: 1, 2: 2}
	ufUnion(parent, 0, 1)
	if ufFind(parent, 0) != ufFind(parent, 1) {
		t.Errorf("expected 0 and 1 to share a root after union")
	}
	if ufFind(parent, 2) == ufFind(parent, 0) {
		t.Errorf("expected 2 to remain its own root")
	}
}

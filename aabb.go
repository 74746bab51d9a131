// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package phys2

import "github.com/CipherJon/phys2/math2d"

// aabbMargin is added to every AABB so a body doesn't need rebroadphasing
// every frame for a contact that's merely resting close to separation.
const aabbMargin = 0.05

// AABB is an axis-aligned bounding box in world space, lower <= upper
// componentwise.
type AABB struct {
	Lower, Upper math2d.Vec2
	Body         BodyHandle
}

// Overlaps reports whether a and b intersect or touch. Touching boxes
// (shared edge, zero gap) count as overlapping so the broadphase
// surfaces the "touching" narrowphase path instead of silently
// dropping the pair.
func (a AABB) Overlaps(b AABB) bool {
	if a.Upper.X < b.Lower.X || b.Upper.X < a.Lower.X {
		return false
	}
	if a.Upper.Y < b.Lower.Y || b.Upper.Y < a.Lower.Y {
		return false
	}
	return true
}

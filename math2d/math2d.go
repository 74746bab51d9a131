// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package math2d provides the 2D vector, matrix, and transform math
// used by the physics core. It follows the conventions of the 3D
// math/lin package this module is derived from:
//   - avoid instantiating new structures in hot loops
//   - use pointers to structures
//   - methods mutate the receiver and return it, so a call reads as
//     an assignment: v.Add(a, b) sets v = a+b and returns v
package math2d

import "math"

// Epsilon is used to distinguish when a float is close enough to a number.
const Epsilon float64 = 0.000001

// AeqZ (~=) almost-equals returns true if x is close enough to zero
// that it doesn't matter.
func AeqZ(x float64) bool { return math.Abs(x) < Epsilon }

// Aeq (~=) almost-equals returns true if a and b are close enough
// that the difference doesn't matter.
func Aeq(a, b float64) bool { return math.Abs(a-b) < Epsilon }

// Clamp returns s restricted to the range [lb, ub].
func Clamp(s, lb, ub float64) float64 {
	switch {
	case s < lb:
		return lb
	case s > ub:
		return ub
	}
	return s
}

// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package math2d

import "math"

// Vec2 is a 2D vector or point with X and Y components.
type Vec2 struct {
	X, Y float64
}

// NewVec2 returns a new zero-ed Vec2.
func NewVec2() *Vec2 { return &Vec2{} }

// NewVec2S returns a new Vec2 with the given x, y components.
func NewVec2S(x, y float64) *Vec2 { return &Vec2{X: x, Y: y} }

// Eq returns true if v and a have identical components.
func (v *Vec2) Eq(a *Vec2) bool { return v.X == a.X && v.Y == a.Y }

// Aeq (~=) returns true if v and a are equal within Epsilon.
func (v *Vec2) Aeq(a *Vec2) bool { return Aeq(v.X, a.X) && Aeq(v.Y, a.Y) }

// Set sets v to a's components and returns v.
func (v *Vec2) Set(a *Vec2) *Vec2 { v.X, v.Y = a.X, a.Y; return v }

// SetS sets v's components directly and returns v.
func (v *Vec2) SetS(x, y float64) *Vec2 { v.X, v.Y = x, y; return v }

// Zero sets v to (0, 0) and returns v.
func (v *Vec2) Zero() *Vec2 { v.X, v.Y = 0, 0; return v }

// Add sets v = a+b and returns v.
func (v *Vec2) Add(a, b *Vec2) *Vec2 { v.X, v.Y = a.X+b.X, a.Y+b.Y; return v }

// Sub sets v = a-b and returns v.
func (v *Vec2) Sub(a, b *Vec2) *Vec2 { v.X, v.Y = a.X-b.X, a.Y-b.Y; return v }

// Mult sets v to the componentwise product of a and b, and returns v.
func (v *Vec2) Mult(a, b *Vec2) *Vec2 { v.X, v.Y = a.X*b.X, a.Y*b.Y; return v }

// Scale sets v = a*s and returns v.
func (v *Vec2) Scale(a *Vec2, s float64) *Vec2 { v.X, v.Y = a.X*s, a.Y*s; return v }

// Neg sets v = -a and returns v.
func (v *Vec2) Neg(a *Vec2) *Vec2 { v.X, v.Y = -a.X, -a.Y; return v }

// AddScaled sets v = a + b*s and returns v. Used throughout the
// integrator to avoid allocating a scratch vector per accumulation.
func (v *Vec2) AddScaled(a, b *Vec2, s float64) *Vec2 {
	v.X, v.Y = a.X+b.X*s, a.Y+b.Y*s
	return v
}

// Dot returns the dot product of v and a.
func (v *Vec2) Dot(a *Vec2) float64 { return v.X*a.X + v.Y*a.Y }

// Cross returns the 2D scalar cross product v.X*a.Y - v.Y*a.X.
func (v *Vec2) Cross(a *Vec2) float64 { return v.X*a.Y - v.Y*a.X }

// CrossScalar sets v to the vector s×a, i.e. (-s*a.Y, s*a.X), the 2D
// analogue of a scalar angular velocity crossed with a position vector.
func (v *Vec2) CrossScalar(s float64, a *Vec2) *Vec2 {
	v.X, v.Y = -s*a.Y, s*a.X
	return v
}

// LenSqr returns the squared length of v.
func (v *Vec2) LenSqr() float64 { return v.X*v.X + v.Y*v.Y }

// Len returns the length of v.
func (v *Vec2) Len() float64 { return math.Sqrt(v.LenSqr()) }

// Unit sets v to a normalized. A zero-length vector normalizes to
// zero rather than producing NaN.
func (v *Vec2) Unit(a *Vec2) *Vec2 {
	length := a.Len()
	if length < Epsilon {
		v.X, v.Y = 0, 0
		return v
	}
	inv := 1 / length
	v.X, v.Y = a.X*inv, a.Y*inv
	return v
}

// Perp sets v to the right-hand perpendicular of a (90° counter-clockwise
// rotation: (x, y) -> (-y, x)). Used to turn a contact normal into a
// friction tangent.
func (v *Vec2) Perp(a *Vec2) *Vec2 {
	v.X, v.Y = -a.Y, a.X
	return v
}

// Rotate sets v to a rotated by angle radians about the origin.
func (v *Vec2) Rotate(a *Vec2, angle float64) *Vec2 {
	s, c := math.Sin(angle), math.Cos(angle)
	x, y := a.X, a.Y
	v.X, v.Y = x*c-y*s, x*s+y*c
	return v
}

// Clamp sets v's components to lie within [lo, hi] componentwise and
// returns v. Assumes lo <= hi component-wise.
func (v *Vec2) Clamp(a, lo, hi *Vec2) *Vec2 {
	v.X = Clamp(a.X, lo.X, hi.X)
	v.Y = Clamp(a.Y, lo.Y, hi.Y)
	return v
}

// Min sets v to the componentwise minimum of a and b.
func (v *Vec2) Min(a, b *Vec2) *Vec2 {
	v.X, v.Y = math.Min(a.X, b.X), math.Min(a.Y, b.Y)
	return v
}

// Max sets v to the componentwise maximum of a and b.
func (v *Vec2) Max(a, b *Vec2) *Vec2 {
	v.X, v.Y = math.Max(a.X, b.X), math.Max(a.Y, b.Y)
	return v
}

// Dist returns the distance between v and a.
func (v *Vec2) Dist(a *Vec2) float64 { return math.Sqrt(v.DistSqr(a)) }

// DistSqr returns the squared distance between v and a.
func (v *Vec2) DistSqr(a *Vec2) float64 {
	dx, dy := v.X-a.X, v.Y-a.Y
	return dx*dx + dy*dy
}

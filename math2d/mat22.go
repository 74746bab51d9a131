// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package math2d

import "math"

// Mat22 is a 2x2 matrix, row-major:
//
//	[Xx, Xy]
//	[Yx, Yy]
type Mat22 struct {
	Xx, Xy float64
	Yx, Yy float64
}

// NewMat22 returns a new zero Mat22.
func NewMat22() *Mat22 { return &Mat22{} }

// NewMat22I returns a new identity Mat22.
func NewMat22I() *Mat22 { return &Mat22{Xx: 1, Yy: 1} }

// SetS sets m's elements directly and returns m.
func (m *Mat22) SetS(xx, xy, yx, yy float64) *Mat22 {
	m.Xx, m.Xy, m.Yx, m.Yy = xx, xy, yx, yy
	return m
}

// Set sets m to a's elements and returns m.
func (m *Mat22) Set(a *Mat22) *Mat22 {
	*m = *a
	return m
}

// Add sets m = a+b and returns m.
func (m *Mat22) Add(a, b *Mat22) *Mat22 {
	m.Xx, m.Xy = a.Xx+b.Xx, a.Xy+b.Xy
	m.Yx, m.Yy = a.Yx+b.Yx, a.Yy+b.Yy
	return m
}

// Transpose sets m = aᵀ and returns m.
func (m *Mat22) Transpose(a *Mat22) *Mat22 {
	xy := a.Yx
	m.Yx = a.Xy
	m.Xy = xy
	m.Xx, m.Yy = a.Xx, a.Yy
	return m
}

// Det returns the determinant of m.
func (m *Mat22) Det() float64 { return m.Xx*m.Yy - m.Xy*m.Yx }

// Inv sets m to the inverse of a and returns m, ok. When |det(a)| < Epsilon
// the matrix is singular: m is left as a's diagonal (the off-diagonal
// cross terms dropped), matching the documented caller contract of
// falling back to a diagonal approximation, and ok is false.
func (m *Mat22) Inv(a *Mat22) (inv *Mat22, ok bool) {
	det := a.Det()
	if math.Abs(det) < Epsilon {
		m.Xx, m.Xy = a.Xx, 0
		m.Yx, m.Yy = 0, a.Yy
		return m, false
	}
	invDet := 1 / det
	xx, xy := a.Yy*invDet, -a.Xy*invDet
	yx, yy := -a.Yx*invDet, a.Xx*invDet
	m.Xx, m.Xy, m.Yx, m.Yy = xx, xy, yx, yy
	return m, true
}

// MultV sets v = m·a (matrix-vector product) and returns v.
func (m *Mat22) MultV(v, a *Vec2) *Vec2 {
	x, y := a.X, a.Y
	v.X = m.Xx*x + m.Xy*y
	v.Y = m.Yx*x + m.Yy*y
	return v
}

// Solve returns x such that m·x = b, using the closed-form 2x2 inverse.
// When m is singular, the diagonal-fallback inverse is used instead
// (see Inv), which callers rely on rather than a zero or NaN result.
func (m *Mat22) Solve(x *Vec2, b *Vec2) *Vec2 {
	inv, ok := NewMat22().Inv(m)
	if !ok {
		// Inv left m's diagonal; invert its non-zero entries.
		if !AeqZ(inv.Xx) {
			inv.Xx = 1 / inv.Xx
		}
		if !AeqZ(inv.Yy) {
			inv.Yy = 1 / inv.Yy
		}
	}
	return inv.MultV(x, b)
}

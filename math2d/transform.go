// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package math2d

// Transform is a 2D position plus a rotation in radians. It applies
// as "rotate then translate": App(p) = Rotate(p, Rotation) + Position.
type Transform struct {
	Position Vec2
	Rotation float64
}

// NewTransform returns a new identity Transform.
func NewTransform() *Transform { return &Transform{} }

// Set sets t to a's position and rotation and returns t.
func (t *Transform) Set(a *Transform) *Transform {
	t.Position.Set(&a.Position)
	t.Rotation = a.Rotation
	return t
}

// SetS sets t's position and rotation directly and returns t.
func (t *Transform) SetS(pos *Vec2, rotation float64) *Transform {
	t.Position.Set(pos)
	t.Rotation = rotation
	return t
}

// App applies t to local point p, returning the world point: rotate
// p by t.Rotation, then translate by t.Position.
func (t *Transform) App(out, p *Vec2) *Vec2 {
	out.Rotate(p, t.Rotation)
	out.Add(out, &t.Position)
	return out
}

// AppR applies only t's rotation to local vector p (no translation).
// Used for direction vectors, e.g. shape edge normals.
func (t *Transform) AppR(out, p *Vec2) *Vec2 {
	return out.Rotate(p, t.Rotation)
}

// Inv applies the inverse of t to world point p, returning the local
// point: translate by -t.Position, then rotate by -t.Rotation.
func (t *Transform) Inv(out, p *Vec2) *Vec2 {
	out.Sub(p, &t.Position)
	out.Rotate(out, -t.Rotation)
	return out
}

// InvR applies only the inverse of t's rotation to world vector p.
func (t *Transform) InvR(out, p *Vec2) *Vec2 {
	return out.Rotate(p, -t.Rotation)
}

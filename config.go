// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package phys2

// config.go reduces the NewWorld API footprint using functional options.
// See: http://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis
//      https://commandcenter.blogspot.ca/2014/01/self-referential-functions-and-design.html

// Option configures a World at construction time.
//
//	w := phys2.NewWorld(math2d.Vec2{Y: -9.81},
//	   phys2.WithVelocityIterations(10),
//	   phys2.WithBaumgarte(0.2),
//	)
type Option func(*Tuning)

// WithVelocityIterations sets the number of velocity-constraint solve
// passes per step. Values outside [1, 128] are ignored.
func WithVelocityIterations(n int) Option {
	return func(t *Tuning) {
		if n >= 1 && n <= 128 {
			t.VelocityIterations = n
		}
	}
}

// WithPositionIterations sets the number of positional-correction
// passes per step. Values outside [0, 128] are ignored.
func WithPositionIterations(n int) Option {
	return func(t *Tuning) {
		if n >= 0 && n <= 128 {
			t.PositionIterations = n
		}
	}
}

// WithBaumgarte sets the Baumgarte stabilization factor β used as a
// velocity bias against residual penetration. Values outside (0, 1]
// are ignored.
func WithBaumgarte(beta float64) Option {
	return func(t *Tuning) {
		if beta > 0 && beta <= 1 {
			t.Beta = beta
		}
	}
}

// WithSlop sets the penetration slop below which no positional
// correction bias is applied. Negative values are ignored.
func WithSlop(slop float64) Option {
	return func(t *Tuning) {
		if slop >= 0 {
			t.Slop = slop
		}
	}
}

// WithTuning applies every field of a pre-loaded Tuning in one call,
// e.g. one returned by LoadTuning.
func WithTuning(loaded Tuning) Option {
	return func(t *Tuning) { *t = loaded }
}

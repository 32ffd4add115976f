// Package fmath contains small numeric helpers shared by the curve code.
package fmath

import "golang.org/x/exp/constraints"

// invPhi is 1/φ, the golden section ratio.
const invPhi = 0.6180339887498949

// Clamp limits v to [lo, hi].
func Clamp[T constraints.Float](v, lo, hi T) T {
	return min(max(v, lo), hi)
}

// GoldenMin returns the x in [a, b] that minimizes f, assuming f is unimodal
// on the interval. The search stops once the bracket is narrower than tol.
func GoldenMin[T constraints.Float](f func(T) T, a, b, tol T) T {
	if a > b {
		a, b = b, a
	}
	c := b - (b-a)*invPhi
	d := a + (b-a)*invPhi
	fc, fd := f(c), f(d)
	// Every step shrinks the bracket by 1/φ; 200 steps exhaust float64.
	for i := 0; i < 200 && b-a > tol; i++ {
		if fc < fd {
			b, d, fd = d, c, fc
			c = b - (b-a)*invPhi
			fc = f(c)
		} else {
			a, c, fc = c, d, fd
			d = a + (b-a)*invPhi
			fd = f(d)
		}
	}
	return (a + b) / 2
}

// GoldenMax returns the x in [a, b] that maximizes f. See [GoldenMin].
func GoldenMax[T constraints.Float](f func(T) T, a, b, tol T) T {
	return GoldenMin(func(x T) T { return -f(x) }, a, b, tol)
}

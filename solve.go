package pathcurve

import (
	"math"
	"slices"
)

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}

// SolveQuadratic returns the real roots of c0 + c1·x + c2·x² = 0 in
// increasing order, and their number.
//
// If c2 is too small for the equation to be normalized, it is solved as a
// linear equation instead. When all coefficients are zero, every x is a
// root, and a single 0 is returned. A double root is returned once.
func SolveQuadratic(c0, c1, c2 float64) ([2]float64, int) {
	b, c := c1/c2, c0/c2
	if !finite(b, c) {
		if root := -c0 / c1; finite(root) {
			return [2]float64{root}, 1
		}
		if c0 == 0 && c1 == 0 {
			return [2]float64{0}, 1
		}
		return [2]float64{}, 0
	}

	// x² + bx + c = 0 has the roots h ± √(h² − c).
	h := -b / 2
	d := h*h - c
	var r1 float64
	switch {
	case math.IsInf(d, 0):
		// h² overflowed; the large root is close to 2h.
		r1 = 2 * h
	case d < 0:
		return [2]float64{}, 0
	case d == 0:
		return [2]float64{h}, 1
	default:
		// The root whose terms have the same sign doesn't cancel. The other
		// one follows from r1·r2 = c.
		r1 = h + math.Copysign(math.Sqrt(d), h)
	}
	r2 := c / r1
	if !finite(r2) {
		return [2]float64{r1}, 1
	}
	return [2]float64{min(r1, r2), max(r1, r2)}, 2
}

// SolveCubic returns the real roots of c0 + c1·x + c2·x² + c3·x³ = 0 in
// increasing order, and their number. If c3 is too small for the equation
// to be normalized, the quadratic is solved instead. A double root is
// returned once.
func SolveCubic(c0, c1, c2, c3 float64) ([3]float64, int) {
	a, b, c := c2/c3, c1/c3, c0/c3
	if !finite(a, b, c) {
		roots, n := SolveQuadratic(c0, c1, c2)
		return [3]float64{roots[0], roots[1]}, n
	}

	// Substituting x = y − a/3 gives the depressed cubic y³ + py + q = 0.
	a3 := a / 3
	p := b - a*a3
	q := c - b*a3 + 2*a3*a3*a3
	q2, p3 := q/2, p/3
	disc := q2*q2 + p3*p3*p3

	var roots [3]float64
	var n int
	switch {
	case disc > 0:
		// One real root, by Cardano's formula.
		u := math.Cbrt(-q2 - math.Copysign(math.Sqrt(disc), q2))
		roots[0] = u - p3/u
		n = 1
	case disc == 0:
		u := math.Cbrt(-q2)
		if u == 0 {
			roots[0] = 0
			n = 1
		} else {
			roots[0], roots[1] = 2*u, -u
			n = 2
		}
	default:
		// Three real roots, from the trigonometric form.
		r := math.Sqrt(-p3)
		phi := math.Acos(max(-1, min(1, -q2/(r*r*r)))) / 3
		for k := range 3 {
			roots[k] = 2 * r * math.Cos(phi-2*math.Pi*float64(k)/3)
		}
		n = 3
	}

	f := func(x float64) float64 { return ((x+a)*x+b)*x + c }
	for i := range roots[:n] {
		x := roots[i] - a3
		// One Newton step recovers most of the precision lost to the
		// substitution. It is only taken if it improves the residual.
		if fp := (3*x+2*a)*x + b; fp != 0 {
			if nx := x - f(x)/fp; math.Abs(f(nx)) < math.Abs(f(x)) {
				x = nx
			}
		}
		roots[i] = x
	}
	slices.Sort(roots[:n])
	return roots, n
}

type option[T any] struct {
	isSet bool
	value T
}

func (opt *option[T]) set(v T) {
	opt.isSet = true
	opt.value = v
}

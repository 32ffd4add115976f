package pathcurve

import (
	"math"
	"slices"

	"honnef.co/go/pathcurve/internal/fmath"
)

// Number of samples used to bracket curvature and speed extrema before
// refining them.
const analysisSamples = 64

// Curvature returns the signed curvature at t, the reciprocal of the radius
// of the osculating circle. It is positive where the curve turns towards
// [Curve.Normal]. Lines have zero curvature everywhere. Where the derivative
// vanishes, the curvature is undefined and reported as 0.
func (c Curve) Curvature(t float64) float64 {
	if c.kind == LineKind {
		return 0
	}
	d1, d2 := c.Deriv2(t)
	l := d1.Hypot()
	if l <= c.degenerateLength() {
		return 0
	}
	return d1.Cross(d2) / (l * l * l)
}

// CurvatureCenter returns the center of the osculating circle at t. It
// returns false where the curvature is zero.
func (c Curve) CurvatureCenter(t float64) (Point, bool) {
	k := c.Curvature(t)
	if k == 0 || math.IsNaN(k) {
		return Point{}, false
	}
	return c.Eval(t).Translate(c.Normal(t).Mul(1 / k)), true
}

// CurvaturePoints returns up to three parameters in (0, 1), in increasing
// order, at which the curvature is locally extremal: inflections and
// points of maximum curvature. Lines have none. A quadratic has at most
// one, its vertex.
func (c Curve) CurvaturePoints() ([3]float64, int) {
	var out [3]float64
	switch c.kind {
	case LineKind:
		return out, 0
	case QuadKind:
		q := c.Quad()
		d0 := q.P1.Sub(q.P0)
		dd := q.P2.Sub(q.P1).Sub(d0)
		l2 := dd.Hypot2()
		if l2 == 0 {
			return out, 0
		}
		// The derivative is perpendicular to the (constant) second derivative
		// at the vertex.
		t := -d0.Dot(dd) / l2
		if t > 0 && t < 1 {
			out[0] = t
			return out, 1
		}
		return out, 0
	}

	var ts []float64
	if c.kind == CubicKind {
		infl, n := c.Cubic().Inflections()
		for _, t := range infl[:n] {
			if t > 0 && t < 1 {
				ts = append(ts, t)
			}
		}
	}
	absK := func(t float64) float64 { return math.Abs(c.Curvature(t)) }
	var ks [analysisSamples + 1]float64
	for i := range ks {
		ks[i] = absK(float64(i) / analysisSamples)
	}
	for i := 1; i < analysisSamples; i++ {
		if ks[i] > ks[i-1] && ks[i] >= ks[i+1] {
			t := fmath.GoldenMax(absK,
				float64(i-1)/analysisSamples,
				float64(i+1)/analysisSamples,
				1e-10)
			if t > 0 && t < 1 {
				ts = append(ts, t)
			}
		}
	}
	slices.Sort(ts)
	var n int
	for _, t := range ts {
		if n > 0 && t-out[n-1] < 1e-6 {
			continue
		}
		out[n] = t
		n++
		if n == len(out) {
			break
		}
	}
	return out, n
}

// Cusps returns up to two parameters in (0, 1) at which the derivative of
// the curve vanishes, in increasing order. At these points the curve can
// reverse direction and [Curve.Tangent] falls back to a secant.
func (c Curve) Cusps() ([2]float64, int) {
	var out [2]float64
	if c.kind == LineKind {
		return out, 0
	}
	speed2 := func(t float64) float64 { return c.Deriv(t).Hypot2() }
	var ss [analysisSamples + 1]float64
	var maxSpeed2 float64
	for i := range ss {
		ss[i] = speed2(float64(i) / analysisSamples)
		maxSpeed2 = max(maxSpeed2, ss[i])
	}
	if maxSpeed2 == 0 {
		// The curve is a single point.
		return out, 0
	}
	// A speed of 1e-6 of the maximum speed is treated as zero.
	const rel2 = 1e-12
	var n int
	for i := 1; i < analysisSamples && n < len(out); i++ {
		if !(ss[i] <= ss[i-1] && ss[i] < ss[i+1]) {
			continue
		}
		t := fmath.GoldenMin(speed2,
			float64(i-1)/analysisSamples,
			float64(i+1)/analysisSamples,
			1e-12)
		if t <= 0 || t >= 1 || speed2(t) > rel2*maxSpeed2 {
			continue
		}
		if n > 0 && t-out[n-1] < 1e-6 {
			continue
		}
		out[n] = t
		n++
	}
	return out, n
}

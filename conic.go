package pathcurve

import (
	"math"
	"sort"

	"honnef.co/go/pathcurve/internal/fmath"
)

// Conic is a rational quadratic Bézier segment. With weights 1, W and 1 for
// P0, P1 and P2, it can represent sections of circles, ellipses, parabolas
// and hyperbolas exactly. W must be positive. A weight of 1 describes a
// parabola, the same curve as the [QuadBez] with the same control points.
type Conic struct {
	P0 Point
	P1 Point
	P2 Point
	W  float64
}

// Eval evaluates the conic at t as the quotient of its weighted numerator
// and denominator.
func (c Conic) Eval(t float64) Point {
	mt := 1.0 - t
	a := mt * mt
	b := 2.0 * mt * t * c.W
	d := t * t
	den := a + b + d
	return Point{
		X: (a*c.P0.X + b*c.P1.X + d*c.P2.X) / den,
		Y: (a*c.P0.Y + b*c.P1.Y + d*c.P2.Y) / den,
	}
}

// homogeneous returns the numerator N(t) and denominator D(t) of the conic
// as well as their first and second derivatives.
func (c Conic) homogeneous(t float64) (n, dn, ddn Vec2, d, dd, ddd float64) {
	mt := 1.0 - t
	wp1 := Vec2(c.P1).Mul(c.W)
	p0 := Vec2(c.P0)
	p2 := Vec2(c.P2)
	n = p0.Mul(mt * mt).Add(wp1.Mul(2 * mt * t)).Add(p2.Mul(t * t))
	dn = wp1.Sub(p0).Mul(2 * mt).Add(p2.Sub(wp1).Mul(2 * t))
	ddn = p0.Sub(wp1.Mul(2)).Add(p2).Mul(2)
	d = mt*mt + 2*mt*t*c.W + t*t
	dd = 2 * (c.W - 1) * (1 - 2*t)
	ddd = 4 * (1 - c.W)
	return n, dn, ddn, d, dd, ddd
}

// Deriv returns the derivative of the conic at t, using the quotient rule.
func (c Conic) Deriv(t float64) Vec2 {
	n, dn, _, d, dd, _ := c.homogeneous(t)
	return dn.Mul(d).Sub(n.Mul(dd)).Div(d * d)
}

// Deriv2 returns the first and second derivative of the conic at t.
func (c Conic) Deriv2(t float64) (Vec2, Vec2) {
	n, dn, ddn, d, dd, ddd := c.homogeneous(t)
	p := n.Div(d)
	d1 := dn.Sub(p.Mul(dd)).Div(d)
	d2 := ddn.Sub(d1.Mul(2 * dd)).Sub(p.Mul(ddd)).Div(d)
	return d1, d2
}

// hpt is a point in homogeneous coordinates (x·w, y·w, w).
type hpt struct{ x, y, w float64 }

func (p hpt) point() Point {
	return Point{p.x / p.w, p.y / p.w}
}

func (p hpt) lerp(o hpt, t float64) hpt {
	return hpt{
		p.x + (o.x-p.x)*t,
		p.y + (o.y-p.y)*t,
		p.w + (o.w-p.w)*t,
	}
}

// hconic is a conic with arbitrary weights on all three control points.
// Unlike [Conic], its pieces keep the parametrization of the whole: the
// halves of a split at t are the whole over [0, t] and [t, 1], linearly
// mapped to [0, 1].
type hconic [3]hpt

func (c Conic) weighted() hconic {
	return hconic{
		{c.P0.X, c.P0.Y, 1},
		{c.P1.X * c.W, c.P1.Y * c.W, c.W},
		{c.P2.X, c.P2.Y, 1},
	}
}

// split splits the conic at t, using de Casteljau.
func (h hconic) split(t float64) (hconic, hconic) {
	b01 := h[0].lerp(h[1], t)
	b12 := h[1].lerp(h[2], t)
	m := b01.lerp(b12, t)
	return hconic{h[0], b01, m}, hconic{m, b12, h[2]}
}

// conic returns the conic in standard form, with end weights of 1. This
// describes the same curve, but changes its parametrization.
func (h hconic) conic() Conic {
	return Conic{
		h[0].point(),
		h[1].point(),
		h[2].point(),
		h[1].w / math.Sqrt(h[0].w*h[2].w),
	}
}

// Split splits the conic at t, using de Casteljau in homogeneous
// coordinates. Both halves share the same split point and are returned in
// standard form, with end weights of 1. As a consequence, the halves are
// parametrized differently from the conic: the halves' midpoints are not
// generally the conic's points at t/2 and (1+t)/2.
func (c Conic) Split(t float64) (Conic, Conic) {
	l, r := c.weighted().split(t)
	left, right := l.conic(), r.conic()
	switch t {
	case 0:
		left.P2, right.P0 = c.P0, c.P0
	case 1:
		left.P2, right.P0 = c.P2, c.P2
	}
	left.P0 = c.P0
	right.P2 = c.P2
	return left, right
}

// Subsegment returns the part of the conic between t0 and t1, in standard
// form.
func (c Conic) Subsegment(t0, t1 float64) Conic {
	if t1 == 0 {
		return Conic{c.P0, c.P0, c.P0, 1}
	}
	left, _ := c.weighted().split(t1)
	if t0 == 0 {
		return left.conic()
	}
	_, mid := left.split(t0 / t1)
	return mid.conic()
}

func (c Conic) Reverse() Conic {
	return Conic{c.P2, c.P1, c.P0, c.W}
}

// coefficients returns the power-basis coefficients of the numerator and
// denominator.
func (c Conic) coefficients() (n [3]Vec2, d [3]float64) {
	wp1 := Vec2(c.P1).Mul(c.W)
	p0 := Vec2(c.P0)
	n[0] = p0
	n[1] = wp1.Sub(p0).Mul(2)
	n[2] = p0.Sub(wp1.Mul(2)).Add(Vec2(c.P2))
	d[0] = 1
	d[1] = 2 * (c.W - 1)
	d[2] = 2 * (1 - c.W)
	return n, d
}

// derivNumerator returns, per coordinate, the power-basis coefficients of
// N′D − ND′, the numerator of the derivative. The cubic terms cancel.
func (c Conic) derivNumerator() (x, y [3]float64) {
	n, d := c.coefficients()
	one := func(n0, n1, n2 float64) [3]float64 {
		return [3]float64{
			n1*d[0] - n0*d[1],
			2 * (n2*d[0] - n0*d[2]),
			n2*d[1] - n1*d[2],
		}
	}
	return one(n[0].X, n[1].X, n[2].X), one(n[0].Y, n[1].Y, n[2].Y)
}

func (c Conic) Extrema() ([MaxExtrema]float64, int) {
	var out [MaxExtrema]float64
	var outN int
	dx, dy := c.derivNumerator()
	for _, cs := range [2][3]float64{dx, dy} {
		roots, n := SolveQuadratic(cs[0], cs[1], cs[2])
		for _, t := range roots[:n] {
			if t > 0.0 && t < 1.0 {
				out[outN] = t
				outN++
			}
		}
	}
	sort.Float64s(out[:outN])
	return out, outN
}

// Nearest finds the nearest point by sampling the conic and refining the
// best sample with a golden section search.
func (c Conic) Nearest(pt Point, accuracy float64) (distSq, t float64) {
	const samples = 16
	best := 0
	bestD := math.Inf(1)
	for i := 0; i <= samples; i++ {
		d := c.Eval(float64(i) / samples).DistanceSquared(pt)
		if d < bestD {
			best, bestD = i, d
		}
	}
	lo := float64(max(best-1, 0)) / samples
	hi := float64(min(best+1, samples)) / samples
	t = fmath.GoldenMin(func(t float64) float64 {
		return c.Eval(t).DistanceSquared(pt)
	}, lo, hi, max(accuracy, 1e-12))
	if d := c.Eval(t).DistanceSquared(pt); d < bestD {
		return d, t
	}
	return bestD, float64(best) / samples
}

// QuadError returns the distance between the conic and the quadratic Bézier
// with the same control points at the parameter midpoint. It is an estimate
// of how far apart the two curves are, not a bound.
func (c Conic) QuadError() float64 {
	a := c.W - 1
	k := a / (4 * (2 + a))
	return math.Abs(k) * Vec2(c.P0).Sub(Vec2(c.P1).Mul(2)).Add(Vec2(c.P2)).Hypot()
}

// Curve returns the conic as a [Curve]. It panics if the weight isn't
// positive.
func (c Conic) Curve() Curve {
	return NewConic(c.P0, c.P1, c.P2, c.W)
}

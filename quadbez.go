package pathcurve

import "slices"

// QuadBez is a quadratic Bézier curve.
type QuadBez struct {
	P0, P1, P2 Point
}

// Curve returns the quadratic as a [Curve].
func (q QuadBez) Curve() Curve {
	return NewQuad(q.P0, q.P1, q.P2)
}

// Eval evaluates the quadratic at t, using the Bernstein form.
func (q QuadBez) Eval(t float64) Point {
	mt := 1 - t
	v := Vec2(q.P0).Mul(mt * mt).
		Add(Vec2(q.P1).Mul(2 * mt * t)).
		Add(Vec2(q.P2).Mul(t * t))
	return Point(v)
}

// Deriv returns the first derivative at t.
func (q QuadBez) Deriv(t float64) Vec2 {
	return q.P1.Sub(q.P0).Lerp(q.P2.Sub(q.P1), t).Mul(2)
}

// Deriv2 returns the second derivative, which is constant.
func (q QuadBez) Deriv2() Vec2 {
	return q.P2.Sub(q.P1).Sub(q.P1.Sub(q.P0)).Mul(2)
}

// blossom returns the polar form of the quadratic. blossom(t, t) is the
// point at t, and blossom(u, v) is the control point of the piece between u
// and v.
func (q QuadBez) blossom(u, v float64) Point {
	return q.P0.Lerp(q.P1, u).Lerp(q.P1.Lerp(q.P2, u), v)
}

// Split splits the quadratic at t, using de Casteljau. Both halves share the
// same split point.
func (q QuadBez) Split(t float64) (QuadBez, QuadBez) {
	a := q.P0.Lerp(q.P1, t)
	b := q.P1.Lerp(q.P2, t)
	m := a.Lerp(b, t)
	return QuadBez{q.P0, a, m}, QuadBez{m, b, q.P2}
}

// Subsegment returns the piece of the quadratic between t0 and t1.
func (q QuadBez) Subsegment(t0, t1 float64) QuadBez {
	return QuadBez{q.blossom(t0, t0), q.blossom(t0, t1), q.blossom(t1, t1)}
}

func (q QuadBez) Reverse() QuadBez {
	return QuadBez{q.P2, q.P1, q.P0}
}

// Raise returns the cubic Bézier that traces the same points as the
// quadratic, at the same parameters.
func (q QuadBez) Raise() CubicBez {
	return CubicBez{q.P0, q.P0.Lerp(q.P1, 2.0/3), q.P2.Lerp(q.P1, 2.0/3), q.P2}
}

// Extrema returns the parameters in (0, 1) where the derivative of x or y
// vanishes. The derivative is linear, so there is at most one per
// coordinate.
func (q QuadBez) Extrema() ([MaxExtrema]float64, int) {
	var out [MaxExtrema]float64
	n := 0
	d0 := q.P1.Sub(q.P0)
	dd := q.P2.Sub(q.P1).Sub(d0)
	for _, c := range [2][2]float64{{d0.X, dd.X}, {d0.Y, dd.Y}} {
		if c[1] == 0 {
			continue
		}
		if t := -c[0] / c[1]; t > 0 && t < 1 {
			out[n] = t
			n++
		}
	}
	slices.Sort(out[:n])
	return out, n
}

// Nearest finds the nearest point exactly, by solving for the roots of the
// derivative of the squared distance, which is a cubic. The accuracy is
// ignored.
func (q QuadBez) Nearest(pt Point, _ float64) (distSq, t float64) {
	// q(t) − pt = d + 2ta + t²b
	a := q.P1.Sub(q.P0)
	b := q.P2.Sub(q.P1).Sub(a)
	d := q.P0.Sub(pt)
	roots, n := SolveCubic(d.Dot(a), d.Dot(b)+2*a.Hypot2(), 3*a.Dot(b), b.Hypot2())

	distSq, t = pt.DistanceSquared(q.P0), 0
	if d := pt.DistanceSquared(q.P2); d < distSq {
		distSq, t = d, 1
	}
	for _, r := range roots[:n] {
		if !(r > 0 && r < 1) {
			continue
		}
		if d := pt.DistanceSquared(q.Eval(r)); d < distSq {
			distSq, t = d, r
		}
	}
	return distSq, t
}

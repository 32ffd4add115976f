package pathcurve

import (
	"iter"
	"math"
	"slices"

	"honnef.co/go/pathcurve/internal/fmath"
)

// CubicBez is a cubic Bézier curve.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Curve returns the cubic as a [Curve].
func (c CubicBez) Curve() Curve {
	return NewCubic(c.P0, c.P1, c.P2, c.P3)
}

// Eval evaluates the cubic at t, using the Bernstein form.
func (c CubicBez) Eval(t float64) Point {
	mt := 1 - t
	v := Vec2(c.P0).Mul(mt * mt * mt).
		Add(Vec2(c.P1).Mul(3 * mt * mt * t)).
		Add(Vec2(c.P2).Mul(3 * mt * t * t)).
		Add(Vec2(c.P3).Mul(t * t * t))
	return Point(v)
}

// hodograph returns the differences of consecutive control points. The
// derivative is three times the quadratic they span.
func (c CubicBez) hodograph() QuadBez {
	return QuadBez{Point(c.P1.Sub(c.P0)), Point(c.P2.Sub(c.P1)), Point(c.P3.Sub(c.P2))}
}

// Deriv returns the first derivative at t.
func (c CubicBez) Deriv(t float64) Vec2 {
	return Vec2(c.hodograph().Eval(t)).Mul(3)
}

// Deriv2 returns the second derivative at t.
func (c CubicBez) Deriv2(t float64) Vec2 {
	return c.hodograph().Deriv(t).Mul(3)
}

// blossom returns the polar form of the cubic. blossom(t, t, t) is the
// point at t; the control points of the piece between u and v are
// blossom(u, u, u), blossom(u, u, v), blossom(u, v, v) and blossom(v, v, v).
func (c CubicBez) blossom(u, v, w float64) Point {
	a := c.P0.Lerp(c.P1, u)
	b := c.P1.Lerp(c.P2, u)
	d := c.P2.Lerp(c.P3, u)
	return a.Lerp(b, v).Lerp(b.Lerp(d, v), w)
}

// Split splits the cubic at t, using de Casteljau. Both halves share the same
// split point.
func (c CubicBez) Split(t float64) (CubicBez, CubicBez) {
	a := c.P0.Lerp(c.P1, t)
	b := c.P1.Lerp(c.P2, t)
	d := c.P2.Lerp(c.P3, t)
	ab := a.Lerp(b, t)
	bd := b.Lerp(d, t)
	m := ab.Lerp(bd, t)
	return CubicBez{c.P0, a, ab, m}, CubicBez{m, bd, d, c.P3}
}

// Subsegment returns the piece of the cubic between t0 and t1.
func (c CubicBez) Subsegment(t0, t1 float64) CubicBez {
	return CubicBez{
		c.blossom(t0, t0, t0),
		c.blossom(t0, t0, t1),
		c.blossom(t0, t1, t1),
		c.blossom(t1, t1, t1),
	}
}

func (c CubicBez) Reverse() CubicBez {
	return CubicBez{c.P3, c.P2, c.P1, c.P0}
}

// QuadApprox is one piece of the approximation of a cubic by quadratics:
// Segment approximates the cubic between the parameters Start and End.
type QuadApprox struct {
	Start, End float64
	Segment    QuadBez
}

// Quadratics approximates the cubic by quadratic Béziers, each within
// accuracy of the piece of the cubic it replaces. The pieces split the
// cubic at evenly spaced parameters and are continuous, but not in general
// G1 continuous. At least one piece is produced.
func (c CubicBez) Quadratics(accuracy float64) iter.Seq[QuadApprox] {
	return func(yield func(QuadApprox) bool) {
		// The quadratic through a cubic's end points, with its control point
		// at (3P1 + 3P2 − P0 − P3)/4, deviates from the cubic by at most
		// √3/36·|P3 − 3P2 + 3P1 − P0|. That term shrinks with the cube of the
		// number of pieces.
		third := c.P3.Sub(c.P0).Add(c.P1.Sub(c.P2).Mul(3))
		bound := math.Sqrt(3) / 36 * third.Hypot()
		n := 1
		// NaN for a quadratic at zero accuracy, which needs a single piece.
		if nf := math.Ceil(math.Cbrt(bound / accuracy)); nf > 1 {
			n = int(min(nf, 1<<MaxSubdivisions))
		}

		for i := range n {
			t0 := float64(i) / float64(n)
			t1 := float64(i+1) / float64(n)
			seg := c.Subsegment(t0, t1)
			if i == 0 {
				seg.P0 = c.P0
			}
			if i == n-1 {
				seg.P3 = c.P3
			}
			ctrl := Vec2(seg.P1).Add(Vec2(seg.P2)).Mul(0.75).
				Sub(Vec2(seg.P0).Add(Vec2(seg.P3)).Mul(0.25))
			if !yield(QuadApprox{t0, t1, QuadBez{seg.P0, Point(ctrl), seg.P3}}) {
				return
			}
		}
	}
}

// Extrema returns the parameters in (0, 1) where the derivative of x or y
// vanishes, in increasing order.
func (c CubicBez) Extrema() ([MaxExtrema]float64, int) {
	var out [MaxExtrema]float64
	n := 0
	h := c.hodograph()
	// Each coordinate of the hodograph is a quadratic in Bernstein form.
	roots := func(a, b, d float64) {
		rs, rn := SolveQuadratic(a, 2*(b-a), a-2*b+d)
		for _, t := range rs[:rn] {
			if t > 0 && t < 1 {
				out[n] = t
				n++
			}
		}
	}
	roots(h.P0.X, h.P1.X, h.P2.X)
	roots(h.P0.Y, h.P1.Y, h.P2.Y)
	slices.Sort(out[:n])
	return out, n
}

// Inflections returns the parameters in [0, 1] where the curvature changes
// sign, which are the roots of P′(t) × P″(t).
func (c CubicBez) Inflections() ([2]float64, int) {
	// P′/3 = a + 2bt + ct² and P″/6 = b + ct, so that their cross product
	// is a×b + (a×c)t + (b×c)t².
	a := c.P1.Sub(c.P0)
	b := c.P2.Sub(c.P1).Sub(a)
	cc := c.P3.Sub(c.P2).Sub(c.P2.Sub(c.P1)).Sub(b)
	roots, rn := SolveQuadratic(a.Cross(b), a.Cross(cc), b.Cross(cc))
	var out [2]float64
	n := 0
	for _, t := range roots[:rn] {
		if t >= 0 && t <= 1 {
			out[n] = t
			n++
		}
	}
	return out, n
}

// Nearest finds the nearest point. The quadratic approximations of the cubic
// provide starting points, which are refined on the cubic itself.
func (c CubicBez) Nearest(pt Point, accuracy float64) (distSq, t float64) {
	var best option[float64]
	for qa := range c.Quadratics(accuracy) {
		_, qt := qa.Segment.Nearest(pt, accuracy)
		ct := c.refineNearest(pt, qa.Start+qt*(qa.End-qa.Start))
		if d := pt.DistanceSquared(c.Eval(ct)); !best.isSet || d < best.value {
			best.set(d)
			t = ct
		}
	}
	return best.value, t
}

// refineNearest minimizes the distance between pt and the cubic with
// Newton's method on the derivative of the squared distance, starting at t.
func (c CubicBez) refineNearest(pt Point, t float64) float64 {
	best := pt.DistanceSquared(c.Eval(t))
	for range 8 {
		v := c.Eval(t).Sub(pt)
		d1 := c.Deriv(t)
		g := v.Dot(d1)
		gp := d1.Hypot2() + v.Dot(c.Deriv2(t))
		if g == 0 || !(gp > 0) {
			break
		}
		nt := fmath.Clamp(t-g/gp, 0, 1)
		nd := pt.DistanceSquared(c.Eval(nt))
		if !(nd < best) {
			break
		}
		t, best = nt, nd
	}
	return t
}

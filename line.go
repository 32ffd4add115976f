package pathcurve

import "honnef.co/go/pathcurve/internal/fmath"

// Line is a line segment from P0 to P1.
type Line struct {
	P0, P1 Point
}

// Curve returns the line as a [Curve].
func (l Line) Curve() Curve {
	return NewLine(l.P0, l.P1)
}

func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Deriv returns the derivative of the line, which is constant.
func (l Line) Deriv() Vec2 {
	return l.P1.Sub(l.P0)
}

// Split splits the line at t. Both halves share the same split point.
func (l Line) Split(t float64) (Line, Line) {
	m := l.Eval(t)
	return Line{l.P0, m}, Line{m, l.P1}
}

func (l Line) Subsegment(t0, t1 float64) Line {
	return Line{l.Eval(t0), l.Eval(t1)}
}

func (l Line) Reverse() Line {
	return Line{l.P1, l.P0}
}

// Raise returns a quadratic Bézier with its control point at the midpoint of
// the line. It traces the same points as the line, at the same parameters.
func (l Line) Raise() QuadBez {
	return QuadBez{l.P0, l.P0.Midpoint(l.P1), l.P1}
}

// Extrema returns no extrema; a line is monotonic in both coordinates.
func (l Line) Extrema() ([MaxExtrema]float64, int) {
	return [MaxExtrema]float64{}, 0
}

// Nearest projects pt onto the line, clamped to its end points. The result
// is exact, so the accuracy is ignored.
func (l Line) Nearest(pt Point, _ float64) (distSq, t float64) {
	d := l.Deriv()
	if dd := d.Hypot2(); dd > 0 {
		t = fmath.Clamp(pt.Sub(l.P0).Dot(d)/dd, 0, 1)
	}
	return pt.DistanceSquared(l.Eval(t)), t
}

// CrossingPoint returns the point where the infinite extensions of l and o
// meet. It reports false for parallel lines.
func (l Line) CrossingPoint(o Line) (Point, bool) {
	d1, d2 := l.Deriv(), o.Deriv()
	den := d1.Cross(d2)
	if den == 0 {
		return Point{}, false
	}
	s := o.P0.Sub(l.P0).Cross(d2) / den
	return l.P0.Translate(d1.Mul(s)), true
}

package pathcurve

import (
	"iter"
	"math"
	"slices"
)

// Maximum bisection depth of [Curve.OffsetPath].
const maxOffsetDepth = 10

// Offset approximates the curve at distance d, as a single curve of the same
// kind. Positive distances offset in the direction of [Curve.Normal].
//
// The control polygon's edges are moved along their normals by d, and
// adjacent moved edges are intersected to find the new control points. This
// is exact for lines and for conics that are circular arcs, whose weight is
// kept. For other curves the error is unbounded: it grows with the curvature
// and with |d|, and nothing checks it against a tolerance. Use
// [Curve.OffsetPath] when the error has to stay within a tolerance; it splits
// the curve until Offset of every piece is close enough.
//
// Offset returns the curve unchanged if d is zero or the curve is a single
// point.
func (c Curve) Offset(d float64) Curve {
	if d == 0 {
		return c
	}
	n := c.kind.Arity()
	eps := c.degenerateLength()

	var normals [3]Vec2
	var valid [3]bool
	anyValid := false
	for i := range n - 1 {
		if v := c.pts[i+1].Sub(c.pts[i]); v.Hypot() > eps {
			normals[i] = v.Normalize().Turn90()
			valid[i] = true
			anyValid = true
		}
	}
	if !anyValid {
		return c
	}
	// Degenerate edges take the normal of the closest edge before them, or
	// failing that, after them.
	for i := range n - 1 {
		if valid[i] {
			continue
		}
		for j := i - 1; j >= 0; j-- {
			if valid[j] {
				normals[i] = normals[j]
				break
			}
		}
		if normals[i] == (Vec2{}) {
			for j := i + 1; j < n-1; j++ {
				if valid[j] {
					normals[i] = normals[j]
					break
				}
			}
		}
	}

	out := c
	out.coeffs = coefficients{}
	out.pts[0] = c.pts[0].Translate(normals[0].Mul(d))
	out.pts[n-1] = c.pts[n-1].Translate(normals[n-2].Mul(d))
	for i := 1; i < n-1; i++ {
		n0, n1 := normals[i-1], normals[i]
		fallback := c.pts[i].Translate(n1.Mul(d))
		if math.Abs(n0.Cross(n1)) < 1e-9 {
			out.pts[i] = fallback
			continue
		}
		prev := Line{c.pts[i-1].Translate(n0.Mul(d)), c.pts[i].Translate(n0.Mul(d))}
		next := Line{c.pts[i].Translate(n1.Mul(d)), c.pts[i+1].Translate(n1.Mul(d))}
		if pt, ok := prev.CrossingPoint(next); ok {
			out.pts[i] = pt
		} else {
			out.pts[i] = fallback
		}
	}
	return out
}

// OffsetPath approximates the curve at distance d with a sequence of curves
// of the same kind, each of which is within tolerance of the true offset.
//
// The curve is split at its cusps and inflections, and the pieces are
// bisected until [Curve.Offset] of every piece is close enough to points
// offset along the exact normal. Consecutive curves are connected; where the
// offset jumps, such as at a cusp, they are joined by a line.
func (c Curve) OffsetPath(d, tolerance float64) iter.Seq[Curve] {
	return func(yield func(Curve) bool) {
		if d == 0 || c.kind == LineKind {
			yield(c.Offset(d))
			return
		}

		splits := []float64{0}
		cusps, n := c.Cusps()
		splits = append(splits, cusps[:n]...)
		if c.kind == CubicKind {
			infl, n := c.Cubic().Inflections()
			for _, t := range infl[:n] {
				if t > 0 && t < 1 {
					splits = append(splits, t)
				}
			}
		}
		splits = append(splits, 1)
		slices.Sort(splits)
		splits = slices.Compact(splits)

		var prevEnd option[Point]
		emit := func(o Curve) bool {
			if prevEnd.isSet && prevEnd.value != o.Start() {
				if prevEnd.value.Distance(o.Start()) <= tolerance {
					o.pts[0] = prevEnd.value
				} else if !yield(NewLine(prevEnd.value, o.Start())) {
					return false
				}
			}
			prevEnd.set(o.End())
			return yield(o)
		}

		sampleTol := min(tolerance/2, math.Abs(d)/8)
		type piece struct {
			t0, t1 float64
			depth  int
		}
		limited := false
		for i := 1; i < len(splits); i++ {
			stack := []piece{{splits[i-1], splits[i], 0}}
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				seg := c.Segment(p.t0, p.t1)
				cand := seg.Offset(d)
				if p.depth < maxOffsetDepth && offsetError(seg, cand, d, sampleTol) > tolerance {
					tm := 0.5 * (p.t0 + p.t1)
					stack = append(stack, piece{tm, p.t1, p.depth + 1}, piece{p.t0, tm, p.depth + 1})
					continue
				}
				if p.depth >= maxOffsetDepth {
					limited = true
				}
				if !emit(cand) {
					return
				}
			}
		}
		if limited {
			logLimit("offset", c, maxOffsetDepth)
		}
	}
}

// offsetError measures the largest distance between cand and points of seg
// offset by d along the exact normal. The points are taken at the vertices
// and midpoints of the flattened seg.
func offsetError(seg, cand Curve, d, sampleTol float64) float64 {
	var worst float64
	acc := sampleTol / 4
	check := func(t float64) {
		want := seg.Eval(t).Translate(seg.Normal(t).Mul(d))
		distSq, _ := cand.Nearest(want, acc)
		worst = max(worst, math.Sqrt(distSq))
	}
	seg.Decompose(sampleTol, func(l FlatLine) bool {
		check(l.FromProgress)
		check(0.5 * (l.FromProgress + l.ToProgress))
		return true
	})
	check(1)
	return worst
}

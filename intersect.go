package pathcurve

import (
	"cmp"
	"math"
	"slices"

	"honnef.co/go/pathcurve/internal/fmath"
)

// MaxIntersections is the number of intersections two cubics can have
// without overlapping. A buffer of this size holds the intersections of any
// two curves in general position.
const MaxIntersections = 9

const (
	// Maximum bisection depth of a pair of curves.
	maxIntersectDepth = 48
	// Maximum number of curve pairs examined.
	maxIntersectWork = 1 << 14
	// Tangential contacts closer than this in both parameters to another
	// intersection are merged with it.
	mergeParam = 1e-3
)

// Intersection describes a point shared by two curves. T1 and T2 are the
// parameters of the point on the first and second curve.
//
// Tangent is set when the curves touch without crossing, or cross at a
// vanishing angle. Overlap is set when the curves coincide over a range;
// such ranges are reported as two intersections, one at either end.
type Intersection struct {
	T1, T2  float64
	Point   Point
	Tangent bool
	Overlap bool
}

// Intersect computes the intersections of c1 and c2, storing them in dst in
// order of increasing T1. It returns the number of intersections stored and
// whether there were more intersections than fit in dst.
//
// A tangential contact is reported once. Collinear lines and coincident
// curves are reported as the end points of the shared range.
func Intersect(c1, c2 Curve, dst []Intersection) (n int, more bool) {
	all := c1.Intersections(c2)
	n = copy(dst, all)
	return n, len(all) > n
}

// Intersections returns all intersections of c and o. See [Intersect].
func (c Curve) Intersections(o Curve) []Intersection {
	scale := max(1, c.ControlBounds().extent(), o.ControlBounds().extent())
	eps := 1e-9 * scale
	if !c.ControlBounds().Inflate(eps, eps).Overlaps(o.ControlBounds()) {
		return nil
	}

	var res []Intersection
	switch {
	case c.kind == LineKind && o.kind == LineKind:
		res = intersectLines(c.Line(), o.Line(), eps)
	default:
		if ov := overlapIntersections(c, o, scale); ov != nil {
			return ov
		}
		switch {
		case c.kind == LineKind:
			res = intersectLineCurve(c.Line(), o, eps, false)
		case o.kind == LineKind:
			res = intersectLineCurve(o.Line(), c, eps, true)
		default:
			res = intersectCurves(c, o, scale)
		}
	}
	return finishIntersections(c, o, res, scale)
}

// finishIntersections snaps parameters to the end points, merges nearly
// coincident intersections, classifies tangents and sorts the result.
func finishIntersections(c1, c2 Curve, res []Intersection, scale float64) []Intersection {
	snap := func(t float64) float64 {
		switch {
		case t < 1e-9:
			return 0
		case t > 1-1e-9:
			return 1
		default:
			return t
		}
	}
	for i := range res {
		if res[i].Overlap {
			continue
		}
		res[i].T1 = snap(res[i].T1)
		res[i].T2 = snap(res[i].T2)
		res[i].Point = c1.Eval(res[i].T1)
	}
	slices.SortFunc(res, func(a, b Intersection) int {
		return cmp.Or(cmp.Compare(a.T1, b.T1), cmp.Compare(a.T2, b.T2))
	})

	mergeDist := 1e-6 * scale
	out := res[:0]
	for _, x := range res {
		if len(out) > 0 && !x.Overlap {
			prev := &out[len(out)-1]
			// Contacts are only known approximately and are merged with
			// anything nearby in parameter space. Crossings have to coincide.
			near := math.Abs(prev.T1-x.T1) <= mergeParam && math.Abs(prev.T2-x.T2) <= mergeParam
			contact := near && (prev.Tangent || x.Tangent)
			if !prev.Overlap && (contact || prev.Point.Distance(x.Point) <= mergeDist) {
				// Keep the better of the two.
				if c2.Eval(x.T2).Distance(x.Point) < c2.Eval(prev.T2).Distance(prev.Point) {
					*prev = x
				}
				continue
			}
		}
		out = append(out, x)
	}
	for i := range out {
		if out[i].Overlap || out[i].Tangent {
			continue
		}
		cross := c1.Tangent(out[i].T1).Cross(c2.Tangent(out[i].T2))
		out[i].Tangent = math.Abs(cross) < 1e-3
	}
	return out
}

func intersectLines(a, b Line, eps float64) []Intersection {
	d1 := a.P1.Sub(a.P0)
	d2 := b.P1.Sub(b.P0)
	r := b.P0.Sub(a.P0)
	l1 := d1.Hypot()
	l2 := d2.Hypot()
	if l1 == 0 || l2 == 0 {
		return intersectDegenerateLine(a, b, eps)
	}
	den := d1.Cross(d2)
	if math.Abs(den) <= 1e-12*l1*l2 {
		if math.Abs(r.Cross(d1)) > eps*l1 {
			// Parallel, not collinear.
			return nil
		}
		// Collinear: project b onto a.
		s0 := r.Dot(d1) / (l1 * l1)
		s1 := b.P1.Sub(a.P0).Dot(d1) / (l1 * l1)
		lo := max(0, min(s0, s1))
		hi := min(1, max(s0, s1))
		pe := eps / l1
		if lo > hi+pe {
			return nil
		}
		onB := func(s float64) float64 {
			return fmath.Clamp(a.Eval(s).Sub(b.P0).Dot(d2)/(l2*l2), 0, 1)
		}
		if hi-lo <= pe {
			return []Intersection{{T1: lo, T2: onB(lo)}}
		}
		return []Intersection{
			{T1: lo, T2: onB(lo), Point: a.Eval(lo), Overlap: true},
			{T1: hi, T2: onB(hi), Point: a.Eval(hi), Overlap: true},
		}
	}
	t1 := r.Cross(d2) / den
	t2 := r.Cross(d1) / den
	pe1 := eps / l1
	pe2 := eps / l2
	if t1 < -pe1 || t1 > 1+pe1 || t2 < -pe2 || t2 > 1+pe2 {
		return nil
	}
	return []Intersection{{T1: fmath.Clamp(t1, 0, 1), T2: fmath.Clamp(t2, 0, 1)}}
}

// intersectDegenerateLine handles lines of zero length, which are points.
func intersectDegenerateLine(a, b Line, eps float64) []Intersection {
	if a.P0 == a.P1 {
		d, t := b.Nearest(a.P0, 0)
		if math.Sqrt(d) <= eps {
			return []Intersection{{T1: 0, T2: t}}
		}
		return nil
	}
	d, t := a.Nearest(b.P0, 0)
	if math.Sqrt(d) <= eps {
		return []Intersection{{T1: t, T2: 0}}
	}
	return nil
}

// intersectLineCurve intersects a line with a curve by substituting the
// curve into the implicit equation of the line, and solving the resulting
// polynomial, the signed distance from the line, for roots. Its extrema
// catch tangential contacts that the root finder may miss. With swap set,
// the curve's parameter is reported as T1.
func intersectLineCurve(l Line, c Curve, eps float64, swap bool) []Intersection {
	d := l.P1.Sub(l.P0)
	ll := d.Hypot()
	if ll == 0 {
		distSq, t := c.Nearest(l.P0, eps)
		if math.Sqrt(distSq) > eps {
			return nil
		}
		if swap {
			return []Intersection{{T1: t, T2: 0}}
		}
		return []Intersection{{T1: 0, T2: t}}
	}
	n := d.Turn90().Div(ll)
	num, den := c.Coefficients()
	var f [4]float64
	for i := range f {
		var dk float64
		if i < len(den) {
			dk = den[i]
		}
		f[i] = n.Dot(num[i].Sub(Vec2(l.P0).Mul(dk)))
	}
	dist := func(t float64) float64 {
		v := ((f[3]*t+f[2])*t+f[1])*t + f[0]
		w := (den[2]*t+den[1])*t + den[0]
		return v / w
	}

	var cands []float64
	roots, rn := SolveCubic(f[0], f[1], f[2], f[3])
	cands = append(cands, roots[:rn]...)
	nroots := len(cands)
	ext, en := SolveQuadratic(f[1], 2*f[2], 3*f[3])
	for _, t := range ext[:en] {
		if t >= 0 && t <= 1 && math.Abs(dist(t)) <= eps {
			cands = append(cands, t)
		}
	}
	ncontacts := len(cands)
	// End points touching the line are roots as well, but may be lost to
	// rounding in the solvers.
	for _, t := range [2]float64{0, 1} {
		if math.Abs(dist(t)) <= eps {
			cands = append(cands, t)
		}
	}

	pe := 1e-9
	ue := eps / ll
	var out []Intersection
	for i, t := range cands {
		if math.IsNaN(t) || t < -pe || t > 1+pe {
			continue
		}
		t = fmath.Clamp(t, 0, 1)
		u := c.Eval(t).Sub(l.P0).Dot(d) / (ll * ll)
		if u < -ue || u > 1+ue {
			continue
		}
		u = fmath.Clamp(u, 0, 1)
		// Extrema of the distance within eps of the line are contacts.
		contact := i >= nroots && i < ncontacts
		if swap {
			out = append(out, Intersection{T1: t, T2: u, Tangent: contact})
		} else {
			out = append(out, Intersection{T1: u, T2: t, Tangent: contact})
		}
	}
	return out
}

// overlapIntersections reports the end points of the range over which c1
// and c2 coincide, or nil if they don't.
func overlapIntersections(c1, c2 Curve, scale float64) []Intersection {
	tol := 1e-7 * scale
	acc := 1e-9 * scale
	type cand struct{ t1, t2 float64 }
	var cands []cand
	for _, t1 := range [2]float64{0, 1} {
		if d, t2 := c2.Nearest(c1.Eval(t1), acc); math.Sqrt(d) <= tol {
			cands = append(cands, cand{t1, t2})
		}
	}
	for _, t2 := range [2]float64{0, 1} {
		if d, t1 := c1.Nearest(c2.Eval(t2), acc); math.Sqrt(d) <= tol {
			cands = append(cands, cand{t1, t2})
		}
	}
	if len(cands) < 2 {
		return nil
	}
	lo := slices.MinFunc(cands, func(a, b cand) int { return cmp.Compare(a.t1, b.t1) })
	hi := slices.MaxFunc(cands, func(a, b cand) int { return cmp.Compare(a.t1, b.t1) })
	if hi.t1-lo.t1 < 1e-6 {
		return nil
	}
	const samples = 8
	for i := 1; i < samples; i++ {
		t := lo.t1 + (hi.t1-lo.t1)*float64(i)/samples
		if d, _ := c2.Nearest(c1.Eval(t), acc); math.Sqrt(d) > tol {
			return nil
		}
	}
	Logger().Debug("curves overlap", "t0", lo.t1, "t1", hi.t1)
	return []Intersection{
		{T1: lo.t1, T2: lo.t2, Point: c1.Eval(lo.t1), Overlap: true},
		{T1: hi.t1, T2: hi.t2, Point: c1.Eval(hi.t1), Overlap: true},
	}
}

// intersectCurves finds the intersections of two curves by recursively
// splitting both, discarding pairs whose bounding boxes are disjoint, until
// the pieces are flat. The crossings of the pieces' chords are then
// refined on the original curves.
func intersectCurves(c1, c2 Curve, scale float64) []Intersection {
	eps := 1e-9 * scale
	type pair struct {
		a, b           Curve
		a0, a1, b0, b1 float64
		depth          int
	}
	stack := []pair{{c1, c2, 0, 1, 0, 1, 0}}
	var out []Intersection
	work := 0
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if work++; work > maxIntersectWork {
			logLimit("intersect", c1, maxIntersectWork)
			break
		}
		ba := p.a.ControlBounds()
		bb := p.b.ControlBounds()
		if !ba.Inflate(eps, eps).Overlaps(bb) {
			continue
		}
		flatA := p.a.isFlat(eps) || p.depth >= maxIntersectDepth
		flatB := p.b.isFlat(eps) || p.depth >= maxIntersectDepth
		if flatA && flatB {
			s, u, ok := chordIntersection(
				Line{p.a.Start(), p.a.End()},
				Line{p.b.Start(), p.b.End()},
				4*eps)
			if !ok {
				continue
			}
			t1, t2, singular := refineIntersection(c1, c2,
				p.a0+s*(p.a1-p.a0),
				p.b0+u*(p.b1-p.b0))
			if c1.Eval(t1).Distance(c2.Eval(t2)) <= 1e-6*scale {
				out = append(out, Intersection{T1: t1, T2: t2, Tangent: singular})
			}
			continue
		}
		splitA := !flatA && (flatB || ba.Width()+ba.Height() >= bb.Width()+bb.Height())
		if splitA {
			am := 0.5 * (p.a0 + p.a1)
			l, r := halves(c1, p.a, p.a0, am, p.a1)
			stack = append(stack,
				pair{r, p.b, am, p.a1, p.b0, p.b1, p.depth + 1},
				pair{l, p.b, p.a0, am, p.b0, p.b1, p.depth + 1})
		} else {
			bm := 0.5 * (p.b0 + p.b1)
			l, r := halves(c2, p.b, p.b0, bm, p.b1)
			stack = append(stack,
				pair{p.a, r, p.a0, p.a1, bm, p.b1, p.depth + 1},
				pair{p.a, l, p.a0, p.a1, p.b0, bm, p.depth + 1})
		}
	}
	return out
}

// halves splits piece, which spans [t0, t1] of whole, at tm. Halves of
// polynomial curves are parametrized like the whole; conic halves in standard
// form aren't, so they are cut from the whole instead.
func halves(whole, piece Curve, t0, tm, t1 float64) (Curve, Curve) {
	if whole.kind != ConicKind {
		return piece.Subdivide()
	}
	return whole.Segment(t0, tm), whole.Segment(tm, t1)
}

// chordIntersection intersects two line segments. Segments that don't
// cross but come within tol of each other, as happens for tangential
// contacts, are reported at their closest approach.
func chordIntersection(a, b Line, tol float64) (s, u float64, ok bool) {
	d1 := a.P1.Sub(a.P0)
	d2 := b.P1.Sub(b.P0)
	r := b.P0.Sub(a.P0)
	if den := d1.Cross(d2); den != 0 {
		s = r.Cross(d2) / den
		u = r.Cross(d1) / den
		if s >= 0 && s <= 1 && u >= 0 && u <= 1 {
			return s, u, true
		}
	}

	best := math.Inf(1)
	try := func(distSq, s0, u0 float64) {
		if distSq < best {
			best, s, u = distSq, s0, u0
		}
	}
	{
		d, t := a.Nearest(b.P0, 0)
		try(d, t, 0)
		d, t = a.Nearest(b.P1, 0)
		try(d, t, 1)
		d, t = b.Nearest(a.P0, 0)
		try(d, 0, t)
		d, t = b.Nearest(a.P1, 0)
		try(d, 1, t)
	}
	return s, u, math.Sqrt(best) <= tol
}

// refineIntersection improves an approximate intersection with Newton's
// method on c1(t1) − c2(t2) = 0. It reports whether the curves were found
// to be parallel at the intersection, which leaves it unrefined.
func refineIntersection(c1, c2 Curve, t1, t2 float64) (float64, float64, bool) {
	c1.EnsureCoefficients()
	c2.EnsureCoefficients()
	f := c1.Eval(t1).Sub(c2.Eval(t2))
	for range 8 {
		fl := f.Hypot()
		if fl == 0 {
			break
		}
		d1 := c1.Deriv(t1)
		d2 := c2.Deriv(t2)
		det := d1.Cross(d2)
		if math.Abs(det) <= 1e-12*d1.Hypot()*d2.Hypot() {
			// Tangential; the Jacobian is singular.
			return t1, t2, true
		}
		nt1 := fmath.Clamp(t1-f.Cross(d2)/det, 0, 1)
		nt2 := fmath.Clamp(t2+d1.Cross(f)/det, 0, 1)
		nf := c1.Eval(nt1).Sub(c2.Eval(nt2))
		if nf.Hypot() >= fl {
			break
		}
		t1, t2, f = nt1, nt2, nf
	}
	return t1, t2, false
}

package pathcurve

import (
	"math"
	"sort"
	"testing"
)

func checkRoots(t *testing.T, roots, expected []float64) {
	t.Helper()
	checkRootsNear(t, roots, expected, 1e-12)
}

func checkRootsNear(t *testing.T, roots, expected []float64, epsilon float64) {
	t.Helper()
	if len(roots) != len(expected) {
		t.Fatalf("got %d roots, expected %d", len(roots), len(expected))
	}
	sort.Float64s(roots)
	sort.Float64s(expected)
	for i := range roots {
		if math.Abs(roots[i]-expected[i]) > epsilon {
			t.Errorf("root %d is %v but we expected %v", i, roots[i], expected[i])
		}
	}
}

func TestSolveCubic(t *testing.T) {
	slice := func(roots [3]float64, n int) []float64 {
		return roots[:n]
	}
	checkRoots(t, slice(SolveCubic(-5, 0, 0, 1)), []float64{math.Cbrt(5)})
	checkRoots(t, slice(SolveCubic(-5.0, -1.0, 0.0, 1.0)), []float64{1.90416085913492})
	checkRoots(t, slice(SolveCubic(0.0, -1.0, 0.0, 1.0)), []float64{-1.0, 0.0, 1.0})
	checkRoots(t, slice(SolveCubic(-2.0, -3.0, 0.0, 1.0)), []float64{-1.0, 2.0})
	checkRoots(t, slice(SolveCubic(2.0, -3.0, 0.0, 1.0)), []float64{-2.0, 1.0})
	// (x+1)²(x+2) ∓ 1e-12. The double root splits into two roots about
	// 1e-6 apart, which are sensitive to rounding of the coefficients.
	checkRootsNear(t, slice(SolveCubic(2.0-1e-12, 5.0, 4.0, 1.0)),
		[]float64{-2, -1 - 1e-6, -1 + 1e-6},
		1e-9,
	)
	checkRoots(t, slice(SolveCubic(2.0+1e-12, 5.0, 4.0, 1.0)), []float64{-2.0})
	checkRoots(t, slice(SolveCubic(0, 0, 0, 1)), []float64{0})
	checkRoots(t, slice(SolveCubic(6, -5, 1, 0)), []float64{2, 3})
}

func TestSolveQuadratic(t *testing.T) {
	slice := func(roots [2]float64, n int) []float64 {
		return roots[:n]
	}
	checkRoots(t, slice(SolveQuadratic(-5.0, 0.0, 1.0)), []float64{-math.Sqrt(5), math.Sqrt(5)})
	checkRoots(t, slice(SolveQuadratic(5.0, 0.0, 1.0)), []float64{})
	checkRoots(t, slice(SolveQuadratic(5.0, 1.0, 0.0)), []float64{-5.0})
	checkRoots(t, slice(SolveQuadratic(1.0, 2.0, 1.0)), []float64{-1.0})
	checkRoots(t, slice(SolveQuadratic(0, 0, 0)), []float64{0})
	checkRoots(t, slice(SolveQuadratic(1, 0, 0)), []float64{})
	checkRoots(t, slice(SolveQuadratic(1, -1e200, 1)), []float64{1e-200, 1e200})
}

func TestKind(t *testing.T) {
	tests := []struct {
		kind  Kind
		name  string
		arity int
	}{
		{LineKind, "line", 2},
		{QuadKind, "quad", 3},
		{CubicKind, "cubic", 4},
		{ConicKind, "conic", 3},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.name {
			t.Errorf("got name %q, want %q", got, tt.name)
		}
		if got := tt.kind.Arity(); got != tt.arity {
			t.Errorf("%v: got arity %d, want %d", tt.kind, got, tt.arity)
		}
	}
	if got := Kind(0).String(); got != "Kind(0)" {
		t.Errorf("got %q for invalid kind", got)
	}
}

func TestFromPoints(t *testing.T) {
	for _, c := range testCurves() {
		got := FromPoints(c.Kind(), c.Points(), c.Weight())
		diff(t, c, got)
	}

	c := NewCubic(Pt(0, 0), Pt(1, 1), Pt(2, 1), Pt(3, 0))
	pts := c.Points()
	pts[0] = Pt(10, 10)
	if c.Start() != Pt(0, 0) {
		t.Errorf("modifying the result of Points changed the curve")
	}
	if w := c.Weight(); w != 1 {
		t.Errorf("got weight %g for cubic, want 1", w)
	}
}

func TestCurveEndPoints(t *testing.T) {
	for _, c := range testCurves() {
		pts := c.Points()
		if got := c.Eval(0); got != pts[0] {
			t.Errorf("%v: Eval(0) = %v, want %v", c, got, pts[0])
		}
		if got := c.Eval(1); got != pts[len(pts)-1] {
			t.Errorf("%v: Eval(1) = %v, want %v", c, got, pts[len(pts)-1])
		}

		c.EnsureCoefficients()
		if got := c.Eval(0); got != pts[0] {
			t.Errorf("%v: cached Eval(0) = %v, want %v", c, got, pts[0])
		}
		if got := c.Eval(1); got != pts[len(pts)-1] {
			t.Errorf("%v: cached Eval(1) = %v, want %v", c, got, pts[len(pts)-1])
		}
	}
}

func TestCurveCoefficients(t *testing.T) {
	for _, c := range testCurves() {
		cached := c
		cached.EnsureCoefficients()
		diff(t, c, cached)
		for i := range 21 {
			tt := float64(i) / 20
			assertNear(t, cached.Eval(tt), c.Eval(tt), 1e-9)
			if d := cached.Deriv(tt).Sub(c.Deriv(tt)).Hypot(); d > 1e-9 {
				t.Errorf("%v: cached derivative at %g differs by %g", c, tt, d)
			}
		}
	}
}

func TestCurveSetPoint(t *testing.T) {
	c := NewQuad(Pt(0, 0), Pt(1, 2), Pt(2, 0))
	c.EnsureCoefficients()
	c.SetPoint(1, Pt(1, -2))
	assertNear(t, c.Eval(0.5), Pt(1, -1), 1e-12)

	k := NewConic(Pt(1, 0), Pt(1, 1), Pt(0, 1), 1)
	k.EnsureCoefficients()
	k.SetWeight(math.Sqrt2 / 2)
	assertNear(t, k.Eval(0.5), Pt(math.Sqrt2/2, math.Sqrt2/2), 1e-12)
}

func TestCurveDeriv(t *testing.T) {
	for _, c := range testCurves() {
		const delta = 1e-6
		for i := 1; i < 10; i++ {
			tt := float64(i) / 10
			approx := c.Eval(tt + delta).Sub(c.Eval(tt - delta)).Mul(0.5 / delta)
			d := c.Deriv(tt)
			if err := d.Sub(approx).Hypot(); err > 1e-6*max(1, d.Hypot()) {
				t.Errorf("%v: derivative at %g is %v, numerically %v", c, tt, d, approx)
			}

			d1, d2 := c.Deriv2(tt)
			if err := d1.Sub(d).Hypot(); err > 1e-9*max(1, d.Hypot()) {
				t.Errorf("%v: Deriv2 first derivative at %g is %v, want %v", c, tt, d1, d)
			}
			approx2 := c.Deriv(tt + delta).Sub(c.Deriv(tt - delta)).Mul(0.5 / delta)
			if err := d2.Sub(approx2).Hypot(); err > 1e-6*max(1, d2.Hypot()) {
				t.Errorf("%v: second derivative at %g is %v, numerically %v", c, tt, d2, approx2)
			}
		}
	}
}

func TestCurveTangent(t *testing.T) {
	l := NewLine(Pt(0, 0), Pt(3, 0))
	diff(t, Vec(1, 0), l.Tangent(0.5))
	diff(t, Vec(0, 1), l.Normal(0.5))

	// The derivative vanishes at the start, where the control point
	// coincides with the end point.
	q := NewQuad(Pt(0, 0), Pt(0, 0), Pt(1, 1))
	if q.Deriv(0).Hypot() != 0 {
		t.Fatalf("expected zero derivative, got %v", q.Deriv(0))
	}
	want := Vec(1, 1).Normalize()
	if d := q.Tangent(0).Sub(want).Hypot(); d > 1e-6 {
		t.Errorf("got tangent %v, want %v", q.Tangent(0), want)
	}
	if d := q.StartTangent().Sub(want).Hypot(); d > 1e-12 {
		t.Errorf("got start tangent %v, want %v", q.StartTangent(), want)
	}

	dot := NewCubic(Pt(2, 2), Pt(2, 2), Pt(2, 2), Pt(2, 2))
	diff(t, Vec(1, 0), dot.Tangent(0.3))
	diff(t, Vec(1, 0), dot.StartTangent())

	for _, c := range testCurves() {
		for i := range 11 {
			tt := float64(i) / 10
			if l := c.Tangent(tt).Hypot(); math.Abs(l-1) > 1e-12 {
				t.Errorf("%v: tangent at %g has length %g", c, tt, l)
			}
		}
	}
}

func TestCurveSplit(t *testing.T) {
	for _, c := range testCurves() {
		for _, ts := range []float64{0.25, 0.5, 0.8} {
			a, b := c.Split(ts)
			if a.Kind() != c.Kind() || b.Kind() != c.Kind() {
				t.Fatalf("%v: split into %v and %v", c, a.Kind(), b.Kind())
			}
			if a.End() != b.Start() {
				t.Errorf("%v: halves don't share the split point: %v and %v", c, a.End(), b.Start())
			}
			if a.Start() != c.Start() || b.End() != c.End() {
				t.Errorf("%v: halves don't keep the end points", c)
			}
			assertNear(t, a.End(), c.Eval(ts), 1e-9)

			for i := range 11 {
				u := float64(i) / 10
				if c.Kind() == ConicKind {
					// Conic halves describe the same curve, with a different
					// parametrization.
					for _, p := range []Point{a.Eval(u), b.Eval(u)} {
						if d, _ := c.Nearest(p, 1e-12); math.Sqrt(d) > 1e-6 {
							t.Errorf("%v: %v is %g away from the curve", c, p, math.Sqrt(d))
						}
					}
					continue
				}
				assertNear(t, a.Eval(u), c.Eval(u*ts), 1e-9)
				assertNear(t, b.Eval(u), c.Eval(ts+u*(1-ts)), 1e-9)
			}
		}
	}
}

func TestCurveSplitEnds(t *testing.T) {
	for _, c := range testCurves() {
		a, b := c.Split(0)
		if a.Start() != c.Start() || a.End() != c.Start() {
			t.Errorf("%v: Split(0) left half is %v", c, a)
		}
		diff(t, c.Start(), b.Start())
		diff(t, c.End(), b.End())

		a, b = c.Split(1)
		if b.Start() != c.End() || b.End() != c.End() {
			t.Errorf("%v: Split(1) right half is %v", c, b)
		}
		diff(t, c.End(), a.End())
	}
}

func TestCurveSegment(t *testing.T) {
	for _, c := range testCurves() {
		diff(t, c, c.Segment(0, 1))

		const t0, t1 = 0.2, 0.7
		s := c.Segment(t0, t1)
		assertNear(t, s.Start(), c.Eval(t0), 1e-9)
		assertNear(t, s.End(), c.Eval(t1), 1e-9)
		for i := range 11 {
			u := float64(i) / 10
			if c.Kind() == ConicKind {
				if d, _ := c.Nearest(s.Eval(u), 1e-12); math.Sqrt(d) > 1e-6 {
					t.Errorf("%v: segment point %v is off the curve", c, s.Eval(u))
				}
				continue
			}
			assertNear(t, s.Eval(u), c.Eval(t0+u*(t1-t0)), 1e-9)
		}

		if got := c.Segment(0, 0.5).Start(); got != c.Start() {
			t.Errorf("%v: segment from 0 starts at %v", c, got)
		}
		if got := c.Segment(0.5, 1).End(); got != c.End() {
			t.Errorf("%v: segment to 1 ends at %v", c, got)
		}
	}
}

func TestCurveReverse(t *testing.T) {
	for _, c := range testCurves() {
		r := c.Reverse()
		diff(t, c, r.Reverse())
		diff(t, c.Start(), r.End())
		diff(t, c.End(), r.Start())
		for i := range 11 {
			tt := float64(i) / 10
			assertNear(t, r.Eval(tt), c.Eval(1-tt), 1e-9)
		}
	}
}

func TestCurveRaise(t *testing.T) {
	for _, c := range testCurves() {
		r := c.Raise()
		switch c.Kind() {
		case LineKind:
			diff(t, QuadKind, r.Kind())
		case QuadKind:
			diff(t, CubicKind, r.Kind())
		default:
			diff(t, c, r)
		}
		for i := range 11 {
			tt := float64(i) / 10
			assertNear(t, r.Eval(tt), c.Eval(tt), 1e-9)
		}
	}
}

func TestCurveBounds(t *testing.T) {
	for _, c := range testCurves() {
		b := c.Bounds()
		cb := c.ControlBounds()
		outer := cb.Inflate(1e-9, 1e-9)
		if !outer.Contains(Pt(b.X0, b.Y0)) || !outer.Contains(Pt(b.X1, b.Y1)) {
			t.Errorf("%v: bounds %v not inside control bounds %v", c, b, cb)
		}
		inflated := b.Inflate(1e-9, 1e-9)
		for i := range 101 {
			p := c.Eval(float64(i) / 100)
			if !inflated.Contains(p) {
				t.Errorf("%v: %v is outside of bounds %v", c, p, b)
			}
		}
	}

	// The top of the arch is an extremum in y.
	q := NewQuad(Pt(0, 0), Pt(1, 2), Pt(2, 0))
	diff(t, Rect{0, 0, 2, 1}, q.Bounds())
	diff(t, Rect{0, 0, 2, 2}, q.ControlBounds())
}

func TestCurveExtrema(t *testing.T) {
	for _, c := range testCurves() {
		ex, n := c.Extrema()
		for i, tt := range ex[:n] {
			if !(tt > 0 && tt < 1) {
				t.Errorf("%v: extremum %g out of range", c, tt)
			}
			if i > 0 && ex[i-1] > tt {
				t.Errorf("%v: extrema out of order: %v", c, ex[:n])
			}
			d := c.Deriv(tt)
			if min(math.Abs(d.X), math.Abs(d.Y)) > 1e-9*max(1, d.Hypot()) {
				t.Errorf("%v: derivative at extremum %g is %v", c, tt, d)
			}
		}

		ranges, rn := c.ExtremaRanges()
		if ranges[0][0] != 0 || ranges[rn-1][1] != 1 {
			t.Errorf("%v: ranges %v don't cover the curve", c, ranges[:rn])
		}
		if rn != n+1 {
			t.Errorf("%v: got %d ranges for %d extrema", c, rn, n)
		}
	}
}

func TestCurveTransformWeight(t *testing.T) {
	// Only the control points move; a conic keeps its weight.
	aff := Rotate(0.3).ThenScale(2, 3).ThenTranslate(Vec(5, -1))
	for _, c := range testCurves() {
		tc := c.Transform(aff)
		diff(t, c.Weight(), tc.Weight())
		for i, p := range c.Points() {
			assertNear(t, tc.Point(i), p.Transform(aff), 1e-12)
		}
	}
}

func TestCurveIsInfNaN(t *testing.T) {
	for _, c := range testCurves() {
		if c.IsInf() || c.IsNaN() {
			t.Errorf("%v isn't finite", c)
		}
		for i := range c.Points() {
			inf := c
			inf.SetPoint(i, Pt(math.Inf(1), 1))
			if !inf.IsInf() || inf.IsNaN() {
				t.Errorf("%v: infinite point %d not reported", c, i)
			}
			nan := c
			nan.SetPoint(i, Pt(0, math.NaN()))
			if !nan.IsNaN() || nan.IsInf() {
				t.Errorf("%v: NaN point %d not reported", c, i)
			}
		}
	}
}

func TestCurveNearest(t *testing.T) {
	for _, c := range testCurves() {
		for _, tt := range []float64{0, 0.3, 0.6, 1} {
			p := c.Eval(tt)
			d, got := c.Nearest(p, 1e-9)
			if math.Sqrt(d) > 1e-6 {
				t.Errorf("%v: point at %g is %g away from the curve", c, tt, math.Sqrt(d))
			}
			assertNear(t, c.Eval(got), p, 1e-5)
		}
	}
}

func TestCurvePanics(t *testing.T) {
	c := NewCubic(Pt(0, 0), Pt(1, 1), Pt(2, 1), Pt(3, 0))
	tests := []struct {
		name string
		fn   func()
	}{
		{"split below zero", func() { c.Split(-0.1) }},
		{"split above one", func() { c.Split(1.5) }},
		{"split NaN", func() { c.Split(math.NaN()) }},
		{"inverted segment", func() { c.Segment(0.6, 0.4) }},
		{"zero weight", func() { NewConic(Pt(0, 0), Pt(1, 1), Pt(2, 0), 0) }},
		{"negative weight", func() { NewConic(Pt(0, 0), Pt(1, 1), Pt(2, 0), -1) }},
		{"infinite weight", func() { NewConic(Pt(0, 0), Pt(1, 1), Pt(2, 0), math.Inf(1)) }},
		{"wrong point count", func() { FromPoints(QuadKind, []Point{{0, 0}, {1, 1}}, 0) }},
		{"point index", func() { c.Point(4) }},
		{"wrong kind", func() { c.Line() }},
		{"conic as cubic", func() { NewConic(Pt(0, 0), Pt(1, 1), Pt(2, 0), 2).Cubic() }},
		{"weight of cubic", func() { c.SetWeight(2) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("expected a panic")
				}
			}()
			tt.fn()
		})
	}
}

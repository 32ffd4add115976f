package pathcurve

import (
	"fmt"
	"math"
	"slices"
)

// MaxExtrema is the maximum number of extrema that can be reported by
// [Curve.Extrema].
//
// This is 4 to support cubic Béziers.
const MaxExtrema = 4

// DefaultAccuracy is a default value for methods that take an accuracy
// argument. It is suitable for general-purpose use, such as 2D graphics.
const DefaultAccuracy = 1e-6

// DefaultTolerance is a flattening tolerance suitable for drawing, in the
// units of the curve's coordinates.
const DefaultTolerance = 0.1

// Kind identifies the type of a [Curve].
type Kind int

const (
	LineKind Kind = iota + 1
	QuadKind
	CubicKind
	ConicKind
)

func (k Kind) String() string {
	switch k {
	case LineKind:
		return "line"
	case QuadKind:
		return "quad"
	case CubicKind:
		return "cubic"
	case ConicKind:
		return "conic"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Arity returns the number of control points of curves of this kind,
// including the end points.
func (k Kind) Arity() int {
	switch k {
	case LineKind:
		return 2
	case QuadKind, ConicKind:
		return 3
	case CubicKind:
		return 4
	default:
		panic(fmt.Sprintf("pathcurve: invalid curve kind %v", k))
	}
}

// Curve is a single path segment: a line, a quadratic or cubic Bézier, or a
// conic. It is a small value type and is meant to be copied.
//
// The zero value is not a valid curve. Curves are created with [NewLine],
// [NewQuad], [NewCubic], [NewConic], [FromPoints] or [FromOp].
//
// All parameters are in [0, 1]. Evaluating at 0 and 1 returns the start and
// end points exactly.
type Curve struct {
	kind   Kind
	pts    [4]Point
	weight float64
	coeffs coefficients
}

// NewLine returns a line from p0 to p1.
func NewLine(p0, p1 Point) Curve {
	return Curve{kind: LineKind, pts: [4]Point{p0, p1}}
}

// NewQuad returns a quadratic Bézier.
func NewQuad(p0, p1, p2 Point) Curve {
	return Curve{kind: QuadKind, pts: [4]Point{p0, p1, p2}}
}

// NewCubic returns a cubic Bézier.
func NewCubic(p0, p1, p2, p3 Point) Curve {
	return Curve{kind: CubicKind, pts: [4]Point{p0, p1, p2, p3}}
}

// NewConic returns a conic with control point p1 of weight w. It panics if w
// isn't positive.
func NewConic(p0, p1, p2 Point, w float64) Curve {
	checkWeight(w)
	return Curve{kind: ConicKind, pts: [4]Point{p0, p1, p2}, weight: w}
}

func checkWeight(w float64) {
	if !(w > 0) || math.IsInf(w, 1) {
		panic(fmt.Sprintf("pathcurve: conic weight must be positive and finite, got %g", w))
	}
}

// FromPoints builds a curve of the given kind from its control points. The
// weight is only used for conics. It panics if the number of points doesn't
// match the kind.
func FromPoints(kind Kind, pts []Point, weight float64) Curve {
	if n := kind.Arity(); len(pts) != n {
		panic(fmt.Sprintf("pathcurve: %v needs %d points, got %d", kind, n, len(pts)))
	}
	c := Curve{kind: kind}
	copy(c.pts[:], pts)
	if kind == ConicKind {
		checkWeight(weight)
		c.weight = weight
	}
	return c
}

// Kind returns the kind of the curve.
func (c Curve) Kind() Kind {
	return c.kind
}

// Points returns a copy of the curve's control points.
func (c Curve) Points() []Point {
	return slices.Clone(c.pts[:c.kind.Arity()])
}

// Point returns the i-th control point.
func (c Curve) Point(i int) Point {
	if i < 0 || i >= c.kind.Arity() {
		panic(fmt.Sprintf("pathcurve: point index %d out of range for %v", i, c.kind))
	}
	return c.pts[i]
}

// Weight returns the weight of a conic's control point. It returns 1 for
// other kinds of curves.
func (c Curve) Weight() float64 {
	if c.kind == ConicKind {
		return c.weight
	}
	return 1
}

// SetPoint replaces the i-th control point.
func (c *Curve) SetPoint(i int, pt Point) {
	if i < 0 || i >= c.kind.Arity() {
		panic(fmt.Sprintf("pathcurve: point index %d out of range for %v", i, c.kind))
	}
	c.pts[i] = pt
	c.coeffs = coefficients{}
}

// SetWeight replaces a conic's weight. It panics for other kinds of curves or
// if w isn't positive.
func (c *Curve) SetWeight(w float64) {
	if c.kind != ConicKind {
		panic(fmt.Sprintf("pathcurve: cannot set weight of %v", c.kind))
	}
	checkWeight(w)
	c.weight = w
	c.coeffs = coefficients{}
}

// Start returns the curve's start point.
func (c Curve) Start() Point {
	return c.pts[0]
}

// End returns the curve's end point.
func (c Curve) End() Point {
	return c.pts[c.kind.Arity()-1]
}

// Equal reports whether two curves have the same kind, control points and
// weight.
func (c Curve) Equal(o Curve) bool {
	if c.kind != o.kind {
		return false
	}
	n := c.kind.Arity()
	return slices.Equal(c.pts[:n], o.pts[:n]) &&
		(c.kind != ConicKind || c.weight == o.weight)
}

// Line returns the curve as a [Line]. It panics if the curve isn't a line.
func (c Curve) Line() Line {
	c.mustBe(LineKind)
	return Line{c.pts[0], c.pts[1]}
}

// Quad returns the curve as a [QuadBez]. Lines are raised. It panics for
// other kinds.
func (c Curve) Quad() QuadBez {
	switch c.kind {
	case LineKind:
		return c.Line().Raise()
	case QuadKind:
		return QuadBez{c.pts[0], c.pts[1], c.pts[2]}
	default:
		panic(fmt.Sprintf("pathcurve: cannot represent %v as quad", c.kind))
	}
}

// Cubic returns the curve as a [CubicBez]. Lines and quadratics are raised.
// It panics for conics.
func (c Curve) Cubic() CubicBez {
	switch c.kind {
	case LineKind, QuadKind:
		return c.Quad().Raise()
	case CubicKind:
		return CubicBez{c.pts[0], c.pts[1], c.pts[2], c.pts[3]}
	default:
		panic(fmt.Sprintf("pathcurve: cannot represent %v as cubic", c.kind))
	}
}

// Conic returns the curve as a [Conic]. It panics if the curve isn't a
// conic.
func (c Curve) Conic() Conic {
	c.mustBe(ConicKind)
	return Conic{c.pts[0], c.pts[1], c.pts[2], c.weight}
}

func (c Curve) mustBe(k Kind) {
	if c.kind != k {
		panic(fmt.Sprintf("pathcurve: curve is a %v, not a %v", c.kind, k))
	}
}

func checkParam(t float64) {
	if !(t >= 0 && t <= 1) {
		panic(fmt.Sprintf("pathcurve: parameter %g out of range [0, 1]", t))
	}
}

// IsInf reports whether any control point of the curve has an infinite
// coordinate.
func (c Curve) IsInf() bool {
	for _, pt := range c.pts[:c.kind.Arity()] {
		if pt.IsInf() {
			return true
		}
	}
	return false
}

// IsNaN reports whether any control point of the curve has a NaN
// coordinate.
func (c Curve) IsNaN() bool {
	for _, pt := range c.pts[:c.kind.Arity()] {
		if pt.IsNaN() {
			return true
		}
	}
	return false
}

// Eval evaluates the curve at t.
func (c Curve) Eval(t float64) Point {
	switch t {
	case 0:
		return c.Start()
	case 1:
		return c.End()
	}
	if c.coeffs.valid {
		return c.coeffs.eval(t)
	}
	switch c.kind {
	case LineKind:
		return c.Line().Eval(t)
	case QuadKind:
		return c.Quad().Eval(t)
	case CubicKind:
		return c.Cubic().Eval(t)
	case ConicKind:
		return c.Conic().Eval(t)
	default:
		panic(fmt.Sprintf("pathcurve: invalid curve kind %v", c.kind))
	}
}

// Deriv returns the first derivative of the curve at t. Its magnitude is
// the parametric speed and may be zero.
func (c Curve) Deriv(t float64) Vec2 {
	if c.coeffs.valid {
		return c.coeffs.deriv(t)
	}
	switch c.kind {
	case LineKind:
		return c.Line().Deriv()
	case QuadKind:
		return c.Quad().Deriv(t)
	case CubicKind:
		return c.Cubic().Deriv(t)
	case ConicKind:
		return c.Conic().Deriv(t)
	default:
		panic(fmt.Sprintf("pathcurve: invalid curve kind %v", c.kind))
	}
}

// Deriv2 returns the first and second derivatives of the curve at t.
func (c Curve) Deriv2(t float64) (Vec2, Vec2) {
	switch c.kind {
	case LineKind:
		return c.Line().Deriv(), Vec2{}
	case QuadKind:
		q := c.Quad()
		return q.Deriv(t), q.Deriv2()
	case CubicKind:
		cb := c.Cubic()
		return cb.Deriv(t), cb.Deriv2(t)
	case ConicKind:
		return c.Conic().Deriv2(t)
	default:
		panic(fmt.Sprintf("pathcurve: invalid curve kind %v", c.kind))
	}
}

// degenerateLength is the length below which a derivative is treated as
// zero, relative to the size of the curve.
func (c Curve) degenerateLength() float64 {
	return 1e-12 * max(1, c.ControlBounds().extent())
}

// Tangent returns the unit tangent at t.
//
// Where the derivative vanishes, such as at a cusp or at an end point that
// coincides with its control point, the direction of a short secant
// following t is used instead (preceding t, at t = 1). Curves that collapse
// to a single point have the tangent ⟨1, 0⟩.
func (c Curve) Tangent(t float64) Vec2 {
	eps := c.degenerateLength()
	if d := c.Deriv(t); d.Hypot() > eps {
		return d.Normalize()
	}
	return c.secant(t, eps)
}

func (c Curve) secant(t, eps float64) Vec2 {
	p := c.Eval(t)
	for h := 1e-6; h <= 1; h *= 16 {
		var v Vec2
		if t < 1 {
			v = c.Eval(min(t+h, 1)).Sub(p)
		} else {
			v = p.Sub(c.Eval(max(t-h, 0)))
		}
		if v.Hypot() > eps {
			return v.Normalize()
		}
	}
	if v := c.End().Sub(c.Start()); v.Hypot() > eps {
		return v.Normalize()
	}
	return Vec(1, 0)
}

// Normal returns the unit normal at t, which is the tangent rotated by 90°
// as by [Vec2.Turn90].
func (c Curve) Normal(t float64) Vec2 {
	return c.Tangent(t).Turn90()
}

// Tangents returns the (unnormalized) start and end tangents, derived from
// the control polygon and skipping coincident control points. A curve whose
// control points all coincide has zero tangents.
func (c Curve) Tangents() (Vec2, Vec2) {
	const epsilon = 1e-12
	pts := c.pts[:c.kind.Arity()]
	last := len(pts) - 1
	var d0, d1 Vec2
	for _, p := range pts[1:] {
		if d := p.Sub(pts[0]); d.Hypot2() > epsilon {
			d0 = d
			break
		}
	}
	for i := last - 1; i >= 0; i-- {
		if d := pts[last].Sub(pts[i]); d.Hypot2() > epsilon {
			d1 = d
			break
		}
	}
	return d0, d1
}

// StartTangent returns the unit tangent at the start of the curve.
func (c Curve) StartTangent() Vec2 {
	d, _ := c.Tangents()
	if d.Hypot2() == 0 {
		return Vec(1, 0)
	}
	return d.Normalize()
}

// EndTangent returns the unit tangent at the end of the curve.
func (c Curve) EndTangent() Vec2 {
	_, d := c.Tangents()
	if d.Hypot2() == 0 {
		return Vec(1, 0)
	}
	return d.Normalize()
}

// Split splits the curve at t into two curves of the same kind. The end of
// the first curve and the start of the second are the same point. Split
// panics if t is outside [0, 1].
func (c Curve) Split(t float64) (Curve, Curve) {
	checkParam(t)
	switch c.kind {
	case LineKind:
		l, r := c.Line().Split(t)
		return l.Curve(), r.Curve()
	case QuadKind:
		l, r := c.Quad().Split(t)
		return l.Curve(), r.Curve()
	case CubicKind:
		l, r := c.Cubic().Split(t)
		return l.Curve(), r.Curve()
	case ConicKind:
		l, r := c.Conic().Split(t)
		return l.Curve(), r.Curve()
	default:
		panic(fmt.Sprintf("pathcurve: invalid curve kind %v", c.kind))
	}
}

// Subdivide splits the curve into halves.
func (c Curve) Subdivide() (Curve, Curve) {
	return c.Split(0.5)
}

// Segment returns the part of the curve between t0 and t1, as a curve of
// the same kind. It panics unless 0 ≤ t0 ≤ t1 ≤ 1.
func (c Curve) Segment(t0, t1 float64) Curve {
	checkParam(t0)
	checkParam(t1)
	if t0 > t1 {
		panic(fmt.Sprintf("pathcurve: inverted segment range [%g, %g]", t0, t1))
	}
	if t0 == 0 && t1 == 1 {
		return c
	}
	var out Curve
	switch c.kind {
	case LineKind:
		out = c.Line().Subsegment(t0, t1).Curve()
	case QuadKind:
		out = c.Quad().Subsegment(t0, t1).Curve()
	case CubicKind:
		out = c.Cubic().Subsegment(t0, t1).Curve()
	case ConicKind:
		out = c.Conic().Subsegment(t0, t1).Curve()
	default:
		panic(fmt.Sprintf("pathcurve: invalid curve kind %v", c.kind))
	}
	if t0 == 0 {
		out.pts[0] = c.Start()
	}
	if t1 == 1 {
		out.pts[out.kind.Arity()-1] = c.End()
	}
	return out
}

// Reverse returns the curve traversed in the opposite direction.
func (c Curve) Reverse() Curve {
	switch c.kind {
	case LineKind:
		return c.Line().Reverse().Curve()
	case QuadKind:
		return c.Quad().Reverse().Curve()
	case CubicKind:
		return c.Cubic().Reverse().Curve()
	case ConicKind:
		return c.Conic().Reverse().Curve()
	default:
		panic(fmt.Sprintf("pathcurve: invalid curve kind %v", c.kind))
	}
}

// Raise elevates the degree of the curve by one, without changing its
// shape: lines become quadratics and quadratics become cubics. Cubics and
// conics have no higher kind and are returned unchanged.
func (c Curve) Raise() Curve {
	switch c.kind {
	case LineKind:
		return c.Line().Raise().Curve()
	case QuadKind:
		return c.Quad().Raise().Curve()
	case CubicKind, ConicKind:
		return c
	default:
		panic(fmt.Sprintf("pathcurve: invalid curve kind %v", c.kind))
	}
}

// Transform applies an affine transformation to the curve.
func (c Curve) Transform(aff Affine) Curve {
	out := Curve{kind: c.kind, weight: c.weight}
	for i, pt := range c.pts[:c.kind.Arity()] {
		out.pts[i] = pt.Transform(aff)
	}
	return out
}

// Extrema returns the parameters in (0, 1) at which the curve has a local
// extremum in x or y, in increasing order.
func (c Curve) Extrema() ([MaxExtrema]float64, int) {
	switch c.kind {
	case LineKind:
		return c.Line().Extrema()
	case QuadKind:
		return c.Quad().Extrema()
	case CubicKind:
		return c.Cubic().Extrema()
	case ConicKind:
		return c.Conic().Extrema()
	default:
		panic(fmt.Sprintf("pathcurve: invalid curve kind %v", c.kind))
	}
}

// ExtremaRanges returns parameter ranges, each of which is monotonic within the
// range.
func (c Curve) ExtremaRanges() ([MaxExtrema + 1][2]float64, int) {
	var ret [MaxExtrema + 1][2]float64
	var retN int
	var t0 float64

	ex, n := c.Extrema()
	for _, t := range ex[:n] {
		if t <= t0 {
			continue
		}
		ret[retN] = [2]float64{t0, t}
		retN++
		t0 = t
	}
	ret[retN] = [2]float64{t0, 1}
	retN++
	return ret, retN
}

// Nearest returns the squared distance to the point on the curve closest to
// pt, and its parameter.
func (c Curve) Nearest(pt Point, accuracy float64) (distSq, t float64) {
	switch c.kind {
	case LineKind:
		distSq, t = c.Line().Nearest(pt, accuracy)
	case QuadKind:
		distSq, t = c.Quad().Nearest(pt, accuracy)
	case CubicKind:
		distSq, t = c.Cubic().Nearest(pt, accuracy)
	case ConicKind:
		distSq, t = c.Conic().Nearest(pt, accuracy)
	default:
		panic(fmt.Sprintf("pathcurve: invalid curve kind %v", c.kind))
	}
	if d := c.Start().DistanceSquared(pt); d < distSq {
		distSq, t = d, 0
	}
	if d := c.End().DistanceSquared(pt); d < distSq {
		distSq, t = d, 1
	}
	return distSq, t
}

// ControlBounds returns the bounding box of the control points. It encloses
// the curve, but is not necessarily tight.
func (c Curve) ControlBounds() Rect {
	r := NewRectFromPoints(c.pts[0], c.pts[1])
	for _, pt := range c.pts[2:c.kind.Arity()] {
		r = r.UnionPoint(pt)
	}
	return r
}

// Bounds returns the smallest axis-aligned rectangle that encloses the
// curve.
func (c Curve) Bounds() Rect {
	bbox := NewRectFromPoints(c.Start(), c.End())
	ex, n := c.Extrema()
	for _, t := range ex[:n] {
		bbox = bbox.UnionPoint(c.Eval(t))
	}
	return bbox
}

// AddBounds adds the curve's control point bounds to b.
func (c Curve) AddBounds(b *BoundingBox) {
	b.AddRect(c.ControlBounds())
}

// AddTightBounds adds the curve's exact bounds to b.
func (c Curve) AddTightBounds(b *BoundingBox) {
	b.AddRect(c.Bounds())
}

// controlLength returns the length of the control polygon.
func (c Curve) controlLength() float64 {
	var l float64
	n := c.kind.Arity()
	for i := 1; i < n; i++ {
		l += c.pts[i].Distance(c.pts[i-1])
	}
	return l
}

package pathcurve

import (
	"fmt"
	"iter"
)

// MaxSubdivisions is the maximum bisection depth of [Curve.Decompose] and
// [Curve.DecomposeCurve]. A single curve is never split into more than
// 2^MaxSubdivisions pieces.
const MaxSubdivisions = 16

// LineReason explains why [Curve.Decompose] emitted a line.
type LineReason int

const (
	// The piece of the curve is within the tolerance of the line.
	ReasonStraight LineReason = iota + 1
	// The piece of the curve was too small to subdivide any further. The line
	// may deviate from the curve by more than the tolerance.
	ReasonShort
)

func (r LineReason) String() string {
	switch r {
	case ReasonStraight:
		return "straight"
	case ReasonShort:
		return "short"
	default:
		return fmt.Sprintf("LineReason(%d)", int(r))
	}
}

// FlatLine is one line of a flattened curve. FromProgress and ToProgress
// are the curve parameters of From and To.
type FlatLine struct {
	From, To     Point
	FromProgress float64
	ToProgress   float64
	Reason       LineReason
}

// isFlat reports whether all control points lie within tolerance of the
// chord. By the convex hull property, so does the curve.
func (c Curve) isFlat(tolerance float64) bool {
	n := c.kind.Arity()
	a, b := c.pts[0], c.pts[n-1]
	for _, pt := range c.pts[1 : n-1] {
		if !(segmentDistance(pt, a, b) <= tolerance) {
			return false
		}
	}
	return true
}

// Decompose approximates the curve with lines that deviate from it by at
// most tolerance, calling fn for each line in order. The lines are
// connected and their progress ranges cover [0, 1] without gaps.
//
// Lines are always emitted as a single line. Other curves are bisected until
// the pieces are flat. Pieces that cannot be split further are emitted with
// [ReasonShort].
//
// If fn returns false, Decompose stops immediately and returns false.
func (c Curve) Decompose(tolerance float64, fn func(FlatLine) bool) bool {
	if c.kind == LineKind {
		return fn(FlatLine{c.pts[0], c.pts[1], 0, 1, ReasonStraight})
	}

	short := 1e-9 * max(1, c.ControlBounds().extent())
	type piece struct {
		c Curve
		// Conics are split in homogeneous form, so that the pieces'
		// parameters stay proportional to the curve's.
		h      hconic
		t0, t1 float64
		depth  int
	}
	first := piece{c: c, t0: 0, t1: 1}
	if c.kind == ConicKind {
		first.h = c.Conic().weighted()
	}
	// Depth-first, so the stack never holds more than one pending sibling per
	// level.
	var stackBuf [MaxSubdivisions + 2]piece
	stack := append(stackBuf[:0], first)
	limited := false
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var reason LineReason
		switch {
		case p.c.isFlat(tolerance):
			reason = ReasonStraight
		case p.c.controlLength() <= short:
			reason = ReasonShort
		case p.depth >= MaxSubdivisions:
			reason = ReasonShort
			limited = true
		}
		if reason != 0 {
			if !fn(FlatLine{p.c.Start(), p.c.End(), p.t0, p.t1, reason}) {
				return false
			}
			continue
		}

		tm := 0.5 * (p.t0 + p.t1)
		l := piece{t0: p.t0, t1: tm, depth: p.depth + 1}
		r := piece{t0: tm, t1: p.t1, depth: p.depth + 1}
		if c.kind == ConicKind {
			l.h, r.h = p.h.split(0.5)
			l.c, r.c = l.h.conic().Curve(), r.h.conic().Curve()
		} else {
			l.c, r.c = p.c.Subdivide()
		}
		stack = append(stack, r, l)
	}
	if limited {
		logLimit("decompose", c, MaxSubdivisions)
	}
	return true
}

// Lines returns an iterator over the lines produced by [Curve.Decompose].
func (c Curve) Lines(tolerance float64) iter.Seq[FlatLine] {
	return func(yield func(FlatLine) bool) {
		c.Decompose(tolerance, yield)
	}
}

// CurveFlags select the kinds of curves [Curve.DecomposeCurve] may emit.
// Lines are always allowed.
type CurveFlags uint

const (
	AllowQuad CurveFlags = 1 << iota
	AllowCubic
	AllowConic
	// SplitMonotonic additionally splits every emitted curve at its x and y
	// extrema, so that each curve is monotonic in both coordinates.
	SplitMonotonic
)

// DecomposeCurve rewrites the curve in terms of the kinds of curves allowed
// by flags, calling fn for each resulting curve in order.
//
// Curves of an allowed kind are passed through. Quadratics are raised to
// cubics when only cubics are allowed. Cubics are approximated by
// quadratics when only those are allowed. Conics are approximated by
// quadratics, or by raised quadratics, within tolerance. Everything else is
// flattened to lines as by [Curve.Decompose].
//
// If fn returns false, DecomposeCurve stops immediately and returns false.
func (c Curve) DecomposeCurve(flags CurveFlags, tolerance float64, fn func(Curve) bool) bool {
	emit := fn
	if flags&SplitMonotonic != 0 {
		emit = func(piece Curve) bool {
			ranges, n := piece.ExtremaRanges()
			if n == 1 {
				return fn(piece)
			}
			for _, r := range ranges[:n] {
				if !fn(piece.Segment(r[0], r[1])) {
					return false
				}
			}
			return true
		}
	}

	switch c.kind {
	case LineKind:
		return emit(c)
	case QuadKind:
		switch {
		case flags&AllowQuad != 0:
			return emit(c)
		case flags&AllowCubic != 0:
			return emit(c.Raise())
		}
	case CubicKind:
		switch {
		case flags&AllowCubic != 0:
			return emit(c)
		case flags&AllowQuad != 0:
			for q := range c.Cubic().Quadratics(tolerance) {
				if !emit(q.Segment.Curve()) {
					return false
				}
			}
			return true
		}
	case ConicKind:
		switch {
		case flags&AllowConic != 0:
			return emit(c)
		case flags&(AllowQuad|AllowCubic) != 0:
			raise := flags&AllowQuad == 0
			return c.Conic().quadratics(tolerance, func(q QuadBez) bool {
				if raise {
					return emit(q.Raise().Curve())
				}
				return emit(q.Curve())
			})
		}
	}
	return c.Decompose(tolerance, func(l FlatLine) bool {
		return emit(NewLine(l.From, l.To))
	})
}

// Curves returns an iterator over the curves produced by
// [Curve.DecomposeCurve].
func (c Curve) Curves(flags CurveFlags, tolerance float64) iter.Seq[Curve] {
	return func(yield func(Curve) bool) {
		c.DecomposeCurve(flags, tolerance, yield)
	}
}

// quadratics bisects the conic until every piece is within tolerance of the
// quadratic with the same control points, calling fn for each quadratic.
func (c Conic) quadratics(tolerance float64, fn func(QuadBez) bool) bool {
	type piece struct {
		c     Conic
		depth int
	}
	var stackBuf [MaxSubdivisions + 2]piece
	stack := append(stackBuf[:0], piece{c, 0})
	limited := false
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !(p.c.QuadError() <= tolerance) {
			if p.depth < MaxSubdivisions {
				l, r := p.c.Split(0.5)
				stack = append(stack, piece{r, p.depth + 1}, piece{l, p.depth + 1})
				continue
			}
			limited = true
		}
		if !fn(QuadBez{p.c.P0, p.c.P1, p.c.P2}) {
			return false
		}
	}
	if limited {
		logLimit("conic to quadratics", c.Curve(), MaxSubdivisions)
	}
	return true
}

// Package vectorpath connects curves to the path consumers of
// golang.org/x/image: the [vector.Rasterizer] and [sfnt.Segment] outlines.
// Neither knows about conics; they are approximated by quadratic Béziers.
package vectorpath

import (
	"iter"
	"math"

	"honnef.co/go/pathcurve"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Kinds of curves both consumers understand natively.
const native = pathcurve.AllowQuad | pathcurve.AllowCubic

// Builder adds curves and path operations to a rasterizer's path.
type Builder struct {
	r         *vector.Rasterizer
	tolerance float64

	open       bool
	start, cur pathcurve.Point
}

// NewBuilder returns a builder drawing into r. Conics are approximated by
// quadratics within tolerance.
func NewBuilder(r *vector.Rasterizer, tolerance float64) *Builder {
	return &Builder{r: r, tolerance: tolerance}
}

func (b *Builder) moveTo(pt pathcurve.Point) {
	b.r.MoveTo(float32(pt.X), float32(pt.Y))
	b.open = true
	b.start = pt
	b.cur = pt
}

// AddCurve appends c to the path. A new contour is started if c doesn't
// begin at the current point.
func (b *Builder) AddCurve(c pathcurve.Curve) {
	if !b.open || b.cur != c.Start() {
		b.moveTo(c.Start())
	}
	for piece := range c.Curves(native, b.tolerance) {
		pts := piece.Points()
		switch piece.Kind() {
		case pathcurve.LineKind:
			b.r.LineTo(float32(pts[1].X), float32(pts[1].Y))
		case pathcurve.QuadKind:
			b.r.QuadTo(
				float32(pts[1].X), float32(pts[1].Y),
				float32(pts[2].X), float32(pts[2].Y))
		case pathcurve.CubicKind:
			b.r.CubeTo(
				float32(pts[1].X), float32(pts[1].Y),
				float32(pts[2].X), float32(pts[2].Y),
				float32(pts[3].X), float32(pts[3].Y))
		}
	}
	b.cur = c.End()
}

// AddOp applies a single path operation.
func (b *Builder) AddOp(op pathcurve.Op) {
	switch op.Kind {
	case pathcurve.MoveOp:
		b.moveTo(op.Points[0])
	case pathcurve.CloseOp:
		b.Close()
	default:
		b.AddCurve(pathcurve.FromOp(op))
	}
}

// AddOps applies a sequence of path operations, such as the one returned by
// [pathcurve.Ops].
func (b *Builder) AddOps(seq iter.Seq[pathcurve.Op]) {
	for op := range seq {
		b.AddOp(op)
	}
}

// Close closes the current contour. It does nothing if no contour is open.
func (b *Builder) Close() {
	if !b.open {
		return
	}
	b.r.ClosePath()
	b.cur = b.start
}

// AppendSegments appends c to dst as glyph outline segments, and returns
// the extended slice. A move is emitted first unless dst already ends at the
// start of c.
func AppendSegments(dst []sfnt.Segment, c pathcurve.Curve, tolerance float64) []sfnt.Segment {
	start := Fixed(c.Start())
	if n := len(dst); n == 0 || segmentEnd(dst[n-1]) != start {
		dst = append(dst, sfnt.Segment{
			Op:   sfnt.SegmentOpMoveTo,
			Args: [3]fixed.Point26_6{start},
		})
	}
	for piece := range c.Curves(native, tolerance) {
		pts := piece.Points()
		switch piece.Kind() {
		case pathcurve.LineKind:
			dst = append(dst, sfnt.Segment{
				Op:   sfnt.SegmentOpLineTo,
				Args: [3]fixed.Point26_6{Fixed(pts[1])},
			})
		case pathcurve.QuadKind:
			dst = append(dst, sfnt.Segment{
				Op:   sfnt.SegmentOpQuadTo,
				Args: [3]fixed.Point26_6{Fixed(pts[1]), Fixed(pts[2])},
			})
		case pathcurve.CubicKind:
			dst = append(dst, sfnt.Segment{
				Op:   sfnt.SegmentOpCubeTo,
				Args: [3]fixed.Point26_6{Fixed(pts[1]), Fixed(pts[2]), Fixed(pts[3])},
			})
		}
	}
	return dst
}

func segmentEnd(seg sfnt.Segment) fixed.Point26_6 {
	switch seg.Op {
	case sfnt.SegmentOpQuadTo:
		return seg.Args[1]
	case sfnt.SegmentOpCubeTo:
		return seg.Args[2]
	default:
		return seg.Args[0]
	}
}

// Fixed rounds pt to 26.6 fixed point.
func Fixed(pt pathcurve.Point) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(math.Round(pt.X * 64)),
		Y: fixed.Int26_6(math.Round(pt.Y * 64)),
	}
}

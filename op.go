package pathcurve

import (
	"fmt"
	"iter"
)

type OpKind int

const (
	// Start a new contour at the point.
	MoveOp OpKind = iota + 1
	// Close the contour with a line back to its start.
	CloseOp
	// A line.
	LineOp
	// A quadratic Bézier.
	QuadOp
	// A cubic Bézier.
	CubicOp
	// A conic.
	ConicOp
)

func (k OpKind) String() string {
	switch k {
	case MoveOp:
		return "move"
	case CloseOp:
		return "close"
	case LineOp:
		return "line"
	case QuadOp:
		return "quad"
	case CubicOp:
		return "cubic"
	case ConicOp:
		return "conic"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

// Op is the compact form in which path collectors exchange segments.
//
// Points includes the start point of the operation: one point for MoveOp,
// two for CloseOp and LineOp (from and to), three for QuadOp and ConicOp and
// four for CubicOp. Weight is only meaningful for ConicOp.
type Op struct {
	Kind   OpKind
	Points []Point
	Weight float64
}

func (op Op) String() string {
	return fmt.Sprintf("%v%v", op.Kind, op.Points)
}

// Op returns the curve as an [Op]. The op's points alias the curve's
// storage; they remain valid as long as c does and must not be modified.
func (c *Curve) Op() Op {
	n := c.kind.Arity()
	op := Op{Points: c.pts[:n:n]}
	switch c.kind {
	case LineKind:
		op.Kind = LineOp
	case QuadKind:
		op.Kind = QuadOp
	case CubicKind:
		op.Kind = CubicOp
	case ConicKind:
		op.Kind = ConicOp
		op.Weight = c.weight
	}
	return op
}

// FromOp builds a curve from a path operation. Close operations become
// lines. FromOp panics for move operations and if the number of points
// doesn't match the operation.
func FromOp(op Op) Curve {
	switch op.Kind {
	case LineOp, CloseOp:
		if len(op.Points) != 2 {
			panic(fmt.Sprintf("pathcurve: %v op needs 2 points, got %d", op.Kind, len(op.Points)))
		}
		return FromPoints(LineKind, op.Points, 0)
	case QuadOp:
		return FromPoints(QuadKind, op.Points, 0)
	case CubicOp:
		return FromPoints(CubicKind, op.Points, 0)
	case ConicOp:
		return FromPoints(ConicKind, op.Points, op.Weight)
	case MoveOp:
		panic("pathcurve: cannot build a curve from a move op")
	default:
		panic(fmt.Sprintf("pathcurve: invalid op kind %v", op.Kind))
	}
}

// Ops converts a sequence of curves to a sequence of path operations,
// inserting a move whenever a curve doesn't start where the previous one
// ended.
func Ops(seq iter.Seq[Curve]) iter.Seq[Op] {
	return func(yield func(Op) bool) {
		var currentPos option[Point]
		for c := range seq {
			start := c.Start()
			if !currentPos.isSet || currentPos.value != start {
				if !yield(Op{Kind: MoveOp, Points: []Point{start}}) {
					return
				}
			}
			if !yield(c.Op()) {
				return
			}
			currentPos.set(c.End())
		}
	}
}

// CurvesFromOps converts a sequence of path operations to a sequence of
// curves. Moves are dropped and closing lines of zero length are skipped.
func CurvesFromOps(seq iter.Seq[Op]) iter.Seq[Curve] {
	return func(yield func(Curve) bool) {
		for op := range seq {
			switch op.Kind {
			case MoveOp:
				continue
			case CloseOp:
				if len(op.Points) == 2 && op.Points[0] == op.Points[1] {
					continue
				}
			}
			if !yield(FromOp(op)) {
				return
			}
		}
	}
}

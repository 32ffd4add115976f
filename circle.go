package pathcurve

import (
	"iter"
	"math"
)

type Circle struct {
	Center Point
	Radius float64
}

// Conics returns the circle as four quarter-circle conics, starting at the
// rightmost point and running towards positive y. The conics represent the
// circle exactly and form a closed contour.
func (c Circle) Conics() iter.Seq[Curve] {
	return func(yield func(Curve) bool) {
		x, y := c.Center.Splat()
		r := c.Radius
		w := math.Sqrt2 / 2
		pts := [...]Point{
			Pt(x+r, y), Pt(x+r, y+r),
			Pt(x, y+r), Pt(x-r, y+r),
			Pt(x-r, y), Pt(x-r, y-r),
			Pt(x, y-r), Pt(x+r, y-r),
		}
		for i := 0; i < len(pts); i += 2 {
			if !yield(NewConic(pts[i], pts[i+1], pts[(i+2)%len(pts)], w)) {
				return
			}
		}
	}
}

// Ops returns the circle as a closed contour of path operations.
func (c Circle) Ops() iter.Seq[Op] {
	return func(yield func(Op) bool) {
		for op := range Ops(c.Conics()) {
			if !yield(op) {
				return
			}
		}
		start := Pt(c.Center.X+c.Radius, c.Center.Y)
		yield(Op{Kind: CloseOp, Points: []Point{start, start}})
	}
}

func (c Circle) Bounds() Rect {
	r := math.Abs(c.Radius)
	x := c.Center.X
	y := c.Center.Y
	return Rect{
		X0: x - r,
		Y0: y - r,
		X1: x + r,
		Y1: y + r,
	}
}

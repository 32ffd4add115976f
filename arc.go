package pathcurve

import (
	"iter"
	"math"
)

// Arc is a segment of an ellipse. The ellipse is stretched by Radii along
// the x and y axes, rotated by XRotation and centered at Center. Angles are
// in radians; a positive sweep goes from the x axis towards the y axis.
type Arc struct {
	Center     Point
	Radii      Vec2
	StartAngle float64
	SweepAngle float64
	XRotation  float64
}

// Conics returns the arc as a sequence of conics, each spanning at most a
// quarter of the ellipse. Unlike Bézier approximations, the conics lie on
// the ellipse exactly. An arc with a zero sweep has no conics.
func (a Arc) Conics() iter.Seq[Curve] {
	return func(yield func(Curve) bool) {
		if a.SweepAngle == 0 {
			return
		}
		n := max(math.Ceil(math.Abs(a.SweepAngle)/(math.Pi/2)), 1)
		step := a.SweepAngle / n
		// The conic spanning an angle of 2h on the unit circle has its control
		// point at distance 1/cos(h) on the bisector, and weight cos(h). Both
		// are unchanged by the linear map onto the ellipse.
		w := math.Cos(0.5 * step)
		angle0 := a.StartAngle
		p0 := a.Center.Translate(sampleEllipse(a.Radii, a.XRotation, angle0))
		for i := range int(n) {
			angle1 := a.StartAngle + float64(i+1)*step
			p1 := a.Center.Translate(sampleEllipse(a.Radii, a.XRotation, angle0+0.5*step).Div(w))
			p2 := a.Center.Translate(sampleEllipse(a.Radii, a.XRotation, angle1))
			if !yield(NewConic(p0, p1, p2, w)) {
				return
			}
			angle0 = angle1
			p0 = p2
		}
	}
}

// Start returns the arc's start point.
func (a Arc) Start() Point {
	return a.Center.Translate(sampleEllipse(a.Radii, a.XRotation, a.StartAngle))
}

// End returns the arc's end point.
func (a Arc) End() Point {
	return a.Center.Translate(sampleEllipse(a.Radii, a.XRotation, a.StartAngle+a.SweepAngle))
}

// Bounds returns the smallest rectangle enclosing the arc.
func (a Arc) Bounds() Rect {
	var bbox BoundingBox
	bbox.AddPoint(a.Start())
	for c := range a.Conics() {
		c.AddTightBounds(&bbox)
	}
	return bbox.Rect()
}

// sampleEllipse returns the point at angle on an ellipse centered at the
// origin.
func sampleEllipse(radii Vec2, xRotation float64, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	u := radii.X * cos
	v := radii.Y * sin
	return rotatePt(Vec2{u, v}, xRotation)
}

// rotatePt rotates pt about the origin by angle radians.
func rotatePt(pt Vec2, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{
		X: pt.X*cos - pt.Y*sin,
		Y: pt.X*sin + pt.Y*cos,
	}
}

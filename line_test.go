package pathcurve

import "testing"

func TestLineRaise(t *testing.T) {
	l := Line{Pt(1, 2), Pt(7, -3)}
	q := l.Raise()
	const epsilon = 1e-12
	for i := range 11 {
		ts := float64(i) / 10
		assertNear(t, q.Eval(ts), l.Eval(ts), epsilon)
	}
}

func TestLineSplit(t *testing.T) {
	l := Line{Pt(0, 0), Pt(10, 5)}
	a, b := l.Split(0.3)
	if a.P1 != b.P0 {
		t.Errorf("halves don't share the split point: %v and %v", a.P1, b.P0)
	}
	assertNear(t, a.P1, Pt(3, 1.5), 1e-12)
	diff(t, l, Line{a.P0, b.P1})
}

func TestLineNearest(t *testing.T) {
	l := Line{Pt(0, 0), Pt(10, 0)}
	distSq, ts := l.Nearest(Pt(4, 3), 0)
	if distSq != 9 || ts != 0.4 {
		t.Errorf("got (%v, %v), want (9, 0.4)", distSq, ts)
	}
	distSq, ts = l.Nearest(Pt(-3, 4), 0)
	if distSq != 25 || ts != 0 {
		t.Errorf("got (%v, %v), want (25, 0)", distSq, ts)
	}
}

func TestLineCrossingPoint(t *testing.T) {
	a := Line{Pt(0, 0), Pt(1, 1)}
	b := Line{Pt(0, 4), Pt(0.5, 3.5)}
	// Only the extensions of the segments cross.
	p, ok := a.CrossingPoint(b)
	if !ok {
		t.Fatal("no crossing point")
	}
	assertNear(t, p, Pt(2, 2), 1e-12)

	if _, ok := a.CrossingPoint(Line{Pt(1, 0), Pt(3, 2)}); ok {
		t.Error("parallel lines cross")
	}
}

package pathcurve

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func assertNear(t *testing.T, p0 Point, p1 Point, epsilon float64) {
	t.Helper()
	if d := p1.Sub(p0).Hypot(); d > epsilon {
		t.Fatalf("got %s, expected %s", p0, p1)
	}
}

// testCurves returns one curve of every kind, with no special symmetries.
func testCurves() []Curve {
	return []Curve{
		NewLine(Pt(1, 2), Pt(7, -3)),
		NewQuad(Pt(3.1, 4.1), Pt(5.9, 2.6), Pt(5.3, 5.8)),
		NewCubic(Pt(20, 40), Pt(40, 80), Pt(-40, 40), Pt(42, 62)),
		NewConic(Pt(0, 0), Pt(4, 6), Pt(9, 1), 0.6),
		NewConic(Pt(0, 0), Pt(4, 6), Pt(9, 1), 3),
	}
}

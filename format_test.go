package pathcurve

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestCurveString(t *testing.T) {
	tests := []struct {
		c    Curve
		want string
	}{
		{NewLine(Pt(0, 0), Pt(1, 2)), "M 0 0 L 1 2"},
		{NewQuad(Pt(0, 0), Pt(1, 2), Pt(3, -4)), "M 0 0 Q 1 2, 3 -4"},
		{NewCubic(Pt(0.5, 0), Pt(1, 2), Pt(3, 4), Pt(5, 6)), "M 0.5 0 C 1 2, 3 4, 5 6"},
		{NewConic(Pt(1, 0), Pt(1, 1), Pt(0, 1), 0.25), "M 1 0 O 1 1, 0 1, 0.25"},
		{NewLine(Pt(1e-20, 0), Pt(1.5e20, 0)), "M 1e-20 0 L 1.5e+20 0"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestCurvePrint(t *testing.T) {
	var sb strings.Builder
	c := NewQuad(Pt(0, 0), Pt(1, 2), Pt(3, -4))
	if err := c.Print(&sb); err != nil {
		t.Fatal(err)
	}
	diff(t, c.String(), sb.String())
}

func TestParseCurve(t *testing.T) {
	curves := append(testCurves(),
		NewConic(Pt(1, 0), Pt(1, 1), Pt(0, 1), math.Sqrt2/2),
		NewCubic(Pt(0.1, 0.2), Pt(1.0/3, 2.0/3), Pt(-1e-300, 1e300), Pt(math.Pi, math.E)),
	)
	for _, c := range curves {
		got, err := ParseCurve(c.String())
		if err != nil {
			t.Errorf("%v: %s", c, err)
			continue
		}
		diff(t, c, got)

		var u Curve
		text, _ := c.MarshalText()
		if err := u.UnmarshalText(text); err != nil {
			t.Errorf("%v: %s", c, err)
		}
		diff(t, c, u)
	}

	// White space and commas are interchangeable.
	got, err := ParseCurve("  M 1,2\tQ 3 4\n5,6  ")
	if err != nil {
		t.Fatal(err)
	}
	diff(t, NewQuad(Pt(1, 2), Pt(3, 4), Pt(5, 6)), got)
}

func TestParseCurveErrors(t *testing.T) {
	tests := []string{
		"",
		"L 0 0 1 1",
		"M 0 0",
		"M 0 0 X 1 1",
		"M 0 0 L 1",
		"M 0 0 L 1 1 2",
		"M 0 zero L 1 1",
		"M 0 0 Q 1 1, 2 2, 3 3",
		"M 0 0 O 1 1, 2 2",
		"M 0 0 O 1 1, 2 2, 0",
		"M 0 0 O 1 1, 2 2, -1",
		"M 0 0 O 1 1, 2 2, NaN",
		"M 0 0 O 1 1, 2 2, Inf",
	}
	for _, s := range tests {
		_, err := ParseCurve(s)
		if !errors.Is(err, ErrSyntax) {
			t.Errorf("%q: got error %v, want %v", s, err, ErrSyntax)
		}
	}

	c := NewLine(Pt(1, 2), Pt(3, 4))
	if err := c.UnmarshalText([]byte("M 1 2")); !errors.Is(err, ErrSyntax) {
		t.Errorf("got error %v, want %v", err, ErrSyntax)
	}
	diff(t, NewLine(Pt(1, 2), Pt(3, 4)), c)
}

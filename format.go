package pathcurve

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ErrSyntax is returned, wrapped, by [ParseCurve] for malformed input.
var ErrSyntax = errors.New("invalid curve syntax")

// String formats the curve in a path-like syntax:
//
//	M x0 y0 L x1 y1
//	M x0 y0 Q x1 y1, x2 y2
//	M x0 y0 C x1 y1, x2 y2, x3 y3
//	M x0 y0 O x1 y1, x2 y2, w
//
// Numbers use the shortest representation that parses back to the same
// value, so [ParseCurve] recovers the curve exactly.
func (c Curve) String() string {
	b, _ := c.AppendText(nil)
	return string(b)
}

// AppendText appends the result of [Curve.String] to b. It implements
// [encoding.TextAppender] and never returns an error.
func (c Curve) AppendText(b []byte) ([]byte, error) {
	num := func(v float64) {
		b = strconv.AppendFloat(b, v, 'g', -1, 64)
	}
	pt := func(p Point) {
		num(p.X)
		b = append(b, ' ')
		num(p.Y)
	}

	b = append(b, "M "...)
	pt(c.pts[0])
	switch c.kind {
	case LineKind:
		b = append(b, " L "...)
	case QuadKind:
		b = append(b, " Q "...)
	case CubicKind:
		b = append(b, " C "...)
	case ConicKind:
		b = append(b, " O "...)
	default:
		panic(fmt.Sprintf("pathcurve: invalid curve kind %v", c.kind))
	}
	for i, p := range c.pts[1:c.kind.Arity()] {
		if i > 0 {
			b = append(b, ", "...)
		}
		pt(p)
	}
	if c.kind == ConicKind {
		b = append(b, ", "...)
		num(c.weight)
	}
	return b, nil
}

// MarshalText implements [encoding.TextMarshaler].
func (c Curve) MarshalText() ([]byte, error) {
	return c.AppendText(nil)
}

// UnmarshalText implements [encoding.TextUnmarshaler], using [ParseCurve].
func (c *Curve) UnmarshalText(text []byte) error {
	out, err := ParseCurve(string(text))
	if err != nil {
		return err
	}
	*c = out
	return nil
}

// Print writes the result of [Curve.String] to w.
func (c Curve) Print(w io.Writer) error {
	b, _ := c.AppendText(make([]byte, 0, 64))
	_, err := w.Write(b)
	return err
}

// ParseCurve parses a curve in the syntax produced by [Curve.String]. Commas
// and any amount of white space separate numbers. Errors wrap [ErrSyntax].
func ParseCurve(s string) (Curve, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', '\r', ',':
			return true
		default:
			return false
		}
	})
	if len(fields) == 0 {
		return Curve{}, fmt.Errorf("pathcurve: empty curve: %w", ErrSyntax)
	}
	if fields[0] != "M" {
		return Curve{}, fmt.Errorf("pathcurve: curve must start with M, found %q: %w", fields[0], ErrSyntax)
	}
	if len(fields) < 4 {
		return Curve{}, fmt.Errorf("pathcurve: truncated curve %q: %w", s, ErrSyntax)
	}

	var kind Kind
	switch fields[3] {
	case "L":
		kind = LineKind
	case "Q":
		kind = QuadKind
	case "C":
		kind = CubicKind
	case "O":
		kind = ConicKind
	default:
		return Curve{}, fmt.Errorf("pathcurve: unknown curve command %q: %w", fields[3], ErrSyntax)
	}
	n := kind.Arity()
	want := 2 * n
	if kind == ConicKind {
		want++
	}
	nums := make([]float64, 0, want)
	for _, f := range append(fields[1:3:3], fields[4:]...) {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Curve{}, fmt.Errorf("pathcurve: invalid number %q: %w", f, ErrSyntax)
		}
		nums = append(nums, v)
	}
	if len(nums) != want {
		return Curve{}, fmt.Errorf("pathcurve: %v needs %d numbers, found %d: %w", kind, want, len(nums), ErrSyntax)
	}

	c := Curve{kind: kind}
	for i := range n {
		c.pts[i] = Pt(nums[2*i], nums[2*i+1])
	}
	if kind == ConicKind {
		w := nums[2*n]
		if !(w > 0) || math.IsInf(w, 1) {
			return Curve{}, fmt.Errorf("pathcurve: invalid conic weight %g: %w", w, ErrSyntax)
		}
		c.weight = w
	}
	return c, nil
}

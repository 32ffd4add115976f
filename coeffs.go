package pathcurve

// coefficients caches the power-basis form of a curve. For polynomial
// curves, the position is num[0] + num[1]·t + num[2]·t² + num[3]·t³ and the
// denominator is 1. For conics, the position is the quotient of the
// quadratic numerator and the quadratic denominator.
type coefficients struct {
	valid bool
	num   [4]Vec2
	den   [3]float64
}

// EnsureCoefficients computes and caches the power-basis coefficients of
// the curve, speeding up repeated calls to [Curve.Eval] and [Curve.Deriv].
// Changing the curve with [Curve.SetPoint] or [Curve.SetWeight] discards
// the cache.
func (c *Curve) EnsureCoefficients() {
	if c.coeffs.valid {
		return
	}
	c.coeffs = c.computeCoefficients()
}

// Coefficients returns the power-basis coefficients of the curve's
// numerator and denominator. The denominator is 1 for everything but
// conics.
func (c Curve) Coefficients() (num [4]Vec2, den [3]float64) {
	if c.coeffs.valid {
		return c.coeffs.num, c.coeffs.den
	}
	cs := c.computeCoefficients()
	return cs.num, cs.den
}

func (c Curve) computeCoefficients() coefficients {
	out := coefficients{valid: true, den: [3]float64{1, 0, 0}}
	p := c.pts
	switch c.kind {
	case LineKind:
		out.num[0] = Vec2(p[0])
		out.num[1] = p[1].Sub(p[0])
	case QuadKind:
		a := p[1].Sub(p[0])
		out.num[0] = Vec2(p[0])
		out.num[1] = a.Mul(2)
		out.num[2] = p[2].Sub(p[1]).Sub(a)
	case CubicKind:
		a := p[1].Sub(p[0])
		b := p[2].Sub(p[1]).Sub(a)
		out.num[0] = Vec2(p[0])
		out.num[1] = a.Mul(3)
		out.num[2] = b.Mul(3)
		out.num[3] = p[3].Sub(p[2]).Sub(p[2].Sub(p[1])).Sub(b)
	case ConicKind:
		n, d := c.Conic().coefficients()
		out.num = [4]Vec2{n[0], n[1], n[2]}
		out.den = d
	default:
		panic("pathcurve: invalid curve kind")
	}
	return out
}

func (cs *coefficients) eval(t float64) Point {
	n := cs.num[3].Mul(t).Add(cs.num[2]).Mul(t).Add(cs.num[1]).Mul(t).Add(cs.num[0])
	d := (cs.den[2]*t+cs.den[1])*t + cs.den[0]
	return Point(n.Div(d))
}

func (cs *coefficients) deriv(t float64) Vec2 {
	n := cs.num[3].Mul(t).Add(cs.num[2]).Mul(t).Add(cs.num[1]).Mul(t).Add(cs.num[0])
	dn := cs.num[3].Mul(3 * t).Add(cs.num[2].Mul(2)).Mul(t).Add(cs.num[1])
	d := (cs.den[2]*t+cs.den[1])*t + cs.den[0]
	dd := 2*cs.den[2]*t + cs.den[1]
	return dn.Mul(d).Sub(n.Mul(dd)).Div(d * d)
}

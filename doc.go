// Package pathcurve implements the algebra of single 2D path segments: lines,
// quadratic and cubic Béziers, and conics (rational quadratic Béziers).
//
// # Curves
//
// [Curve] is a small value type holding any of the four kinds of segments,
// identified by [Kind]. Curves are created from their control points with
// [NewLine], [NewQuad], [NewCubic] and [NewConic], or generically with
// [FromPoints] and [FromOp]. The concrete types [Line], [QuadBez], [CubicBez]
// and [Conic] are available for code that knows what it is working with.
//
// All curves are parametrized over t ∈ [0, 1]. Evaluating a curve at 0 and 1
// returns its end points exactly, and splitting a curve produces two halves
// that share the split point exactly, so that pieces of a path stay
// connected.
//
// A conic is defined by three control points and the weight of the middle
// one. A weight of 1 is a quadratic Bézier, weights below 1 are elliptical
// arcs and weights above 1 are hyperbolic. Circular arcs, as produced by
// [Arc.Conics], are represented exactly.
//
// # Operations
//
// Besides evaluation, curves can be split ([Curve.Split], [Curve.Segment]),
// reversed, raised to a higher degree, transformed ([Affine]) and bounded.
//
// [Curve.Decompose] flattens a curve into lines within a tolerance, and
// [Curve.DecomposeCurve] rewrites it in terms of the kinds of curves a
// consumer supports. [Intersect] finds the points two curves have in common,
// including tangential contacts and overlaps. [Curve.Offset] and
// [Curve.OffsetPath] compute parallel curves, and [Curve.Curvature],
// [Curve.CurvaturePoints] and [Curve.Cusps] analyze a curve's shape.
//
// # Iterators and callbacks
//
// Operations that produce a stream of results take a callback that returns
// false to stop early, and have an iterator counterpart: [Curve.Lines] for
// [Curve.Decompose], [Curve.Curves] for [Curve.DecomposeCurve].
//
// # Errors and logging
//
// Violations of a function's contract, such as parameters outside [0, 1] or
// non-positive conic weights, cause panics. Numerical degeneracies don't:
// where a derivative vanishes, tangents fall back to secants, and when a
// subdivision limit is reached the best approximation found so far is used.
// The latter is logged at debug level to the logger set with [SetLogger].
package pathcurve

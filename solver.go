package svgbox

import "math"

// Root finding for the derivative of a Bezier coordinate polynomial.
// A cubic segment has a quadratic derivative, so solving ax^2 + bx + c = 0
// is all that curve extrema need.

// SolveQuadratic finds real roots of ax^2 + bx + c = 0 in ascending order.
//
// A vanishing leading coefficient degrades to the linear equation. When all
// coefficients are zero every t is a root and 0 is returned as the
// representative, which keeps the segment's start point in the bounds.
func SolveQuadratic(a, b, c float64) []float64 {
	sc0 := c / a
	sc1 := b / a
	if !isFinite(sc0) || !isFinite(sc1) {
		root := -c / b
		if isFinite(root) {
			return []float64{root}
		}
		if b == 0 && c == 0 {
			return []float64{0}
		}
		return nil
	}

	disc := sc1*sc1 - 4*sc0
	var r0, r1 float64
	switch {
	case !isFinite(disc):
		// Discriminant overflow: x^2 + sc1*x ~ 0 gives one root.
		r0 = -sc1
	case disc < 0:
		return nil
	case disc == 0:
		return []float64{-0.5 * sc1}
	default:
		// Citardauq form keeps the smaller root accurate.
		r0 = -0.5 * (sc1 + math.Copysign(math.Sqrt(disc), sc1))
	}
	r1 = sc0 / r0
	if !isFinite(r1) {
		return []float64{r0}
	}
	if r0 > r1 {
		r0, r1 = r1, r0
	}
	return []float64{r0, r1}
}

// SolveQuadraticInUnitInterval returns roots of ax^2 + bx + c = 0 in [0, 1].
// Roots within 1e-12 outside the interval are clamped onto it.
func SolveQuadraticInUnitInterval(a, b, c float64) []float64 {
	const eps = 1e-12
	var out []float64
	for _, r := range SolveQuadratic(a, b, c) {
		if r < -eps || r > 1+eps {
			continue
		}
		out = append(out, math.Min(math.Max(r, 0), 1))
	}
	return out
}

func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}

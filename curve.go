package svgbox

// Curve types for exact Bezier bounds.
// Based on kurbo's ParamCurveExtrema: extrema are found by solving the
// derivative for zero instead of sampling, so bounds are never undersized.

// QuadBez represents a quadratic Bezier curve with control points P0, P1, P2.
// P0 is the start point, P1 is the control point, P2 is the end point.
type QuadBez struct {
	P0, P1, P2 Point
}

// Eval evaluates the curve at parameter t (0 to 1).
func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	// (1-t)^2 * P0 + 2(1-t)t * P1 + t^2 * P2
	return Point{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// Raise elevates the quadratic to the cubic tracing the identical curve.
func (q QuadBez) Raise() CubicBez {
	// C1 = P0 + 2/3 (P1 - P0), C2 = P2 + 2/3 (P1 - P2)
	return CubicBez{
		P0: q.P0,
		P1: q.P0.Lerp(q.P1, 2.0/3.0),
		P2: q.P2.Lerp(q.P1, 2.0/3.0),
		P3: q.P2,
	}
}

// Promote returns the cubic with the quadratic's control point used twice.
// It is not the same curve: it bulges further toward the control point.
func (q QuadBez) Promote() CubicBez {
	return CubicBez{P0: q.P0, P1: q.P1, P2: q.P1, P3: q.P2}
}

// BoundingBox returns the tight axis-aligned bounding box of the curve.
func (q QuadBez) BoundingBox() Rect {
	return q.Raise().BoundingBox()
}

// CubicBez represents a cubic Bezier curve with control points P0, P1, P2, P3.
// P0 is the start point, P1 and P2 are control points, P3 is the end point.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Eval evaluates the curve at parameter t (0 to 1).
func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	mt2 := mt * mt
	t2 := t * t

	// (1-t)^3 * P0 + 3(1-t)^2*t * P1 + 3(1-t)*t^2 * P2 + t^3 * P3
	return Point{
		X: mt2*mt*c.P0.X + 3*mt2*t*c.P1.X + 3*mt*t2*c.P2.X + t2*t*c.P3.X,
		Y: mt2*mt*c.P0.Y + 3*mt2*t*c.P1.Y + 3*mt*t2*c.P2.Y + t2*t*c.P3.Y,
	}
}

// Extrema returns the parameter values in [0, 1] where either coordinate's
// derivative vanishes. There are at most four: two per axis.
func (c CubicBez) Extrema() []float64 {
	result := make([]float64, 0, 4)

	// B'(t)/3 = a*t^2 + b*t + c over the control polygon deltas.
	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)

	result = append(result, SolveQuadraticInUnitInterval(d0.X-2*d1.X+d2.X, 2*(d1.X-d0.X), d0.X)...)
	result = append(result, SolveQuadraticInUnitInterval(d0.Y-2*d1.Y+d2.Y, 2*(d1.Y-d0.Y), d0.Y)...)
	return result
}

// BoundingBox returns the tight axis-aligned bounding box of the curve.
func (c CubicBez) BoundingBox() Rect {
	bbox := NewRect(c.P0, c.P3)
	for _, t := range c.Extrema() {
		p := c.Eval(t)
		bbox = bbox.Union(Rect{Min: p, Max: p})
	}
	return bbox
}

// Transform maps every control point through m. Affine maps commute with
// the Bernstein basis, so the result traces the transformed curve exactly.
func (c CubicBez) Transform(m Matrix) CubicBez {
	return CubicBez{
		P0: m.TransformPoint(c.P0),
		P1: m.TransformPoint(c.P1),
		P2: m.TransformPoint(c.P2),
		P3: m.TransformPoint(c.P3),
	}
}

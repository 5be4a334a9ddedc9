package stroke

import "math"

// Point represents a 2D point. The package keeps its own geometry types so
// that the root package can depend on it without an import cycle.
type Point struct {
	X, Y float64
}

// Add returns the point displaced by v.
func (p Point) Add(v Vec2) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Vec2 {
	return Vec2{X: p.X - q.X, Y: p.Y - q.Y}
}

// Lerp performs linear interpolation between two points.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Vec2 represents a 2D vector.
type Vec2 struct {
	X, Y float64
}

// Scale returns the vector scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Neg returns the negated vector.
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Dot returns the dot product of two vectors.
func (v Vec2) Dot(w Vec2) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Cross returns the z-component of the 3D cross product.
func (v Vec2) Cross(w Vec2) float64 {
	return v.X*w.Y - v.Y*w.X
}

// Length returns the length of the vector.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Perp returns the vector rotated 90 degrees counter-clockwise.
func (v Vec2) Perp() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// Angle returns the angle of the vector in radians.
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Element is one segment of a path consumed or produced by the expander.
type Element interface {
	isElement()
}

// MoveTo starts a subpath.
type MoveTo struct{ Point Point }

// LineTo draws a line.
type LineTo struct{ Point Point }

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct{ Control, Point Point }

// CubicTo draws a cubic Bezier curve.
type CubicTo struct{ Control1, Control2, Point Point }

// Close closes the subpath.
type Close struct{}

func (MoveTo) isElement()  {}
func (LineTo) isElement()  {}
func (QuadTo) isElement()  {}
func (CubicTo) isElement() {}
func (Close) isElement()   {}

// endPoint returns the point an element ends at. Close has none.
func endPoint(el Element) Point {
	switch e := el.(type) {
	case MoveTo:
		return e.Point
	case LineTo:
		return e.Point
	case QuadTo:
		return e.Point
	case CubicTo:
		return e.Point
	default:
		return Point{}
	}
}

// builder accumulates elements.
type builder struct {
	elements []Element
}

func newBuilder() *builder {
	return &builder{elements: make([]Element, 0, 64)}
}

func (b *builder) empty() bool             { return len(b.elements) == 0 }
func (b *builder) moveTo(p Point)          { b.elements = append(b.elements, MoveTo{Point: p}) }
func (b *builder) lineTo(p Point)          { b.elements = append(b.elements, LineTo{Point: p}) }
func (b *builder) quadTo(c, p Point)       { b.elements = append(b.elements, QuadTo{Control: c, Point: p}) }
func (b *builder) cubicTo(c1, c2, p Point) { b.elements = append(b.elements, CubicTo{Control1: c1, Control2: c2, Point: p}) }
func (b *builder) close()                  { b.elements = append(b.elements, Close{}) }
func (b *builder) extend(other *builder)   { b.elements = append(b.elements, other.elements...) }
func (b *builder) reset()                  { b.elements = b.elements[:0] }

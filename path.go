package svgbox

// PathElement is one segment of a path node's geometry. The concrete types
// are MoveTo, LineTo, QuadTo, CubicTo and Close.
type PathElement interface {
	isPathElement()
}

// MoveTo begins a subpath.
type MoveTo struct {
	Point Point
}

// LineTo is a straight segment ending at Point.
type LineTo struct {
	Point Point
}

// QuadTo is a quadratic Bézier segment.
type QuadTo struct {
	Control Point
	Point   Point
}

// CubicTo is a cubic Bézier segment.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

// Close ends the subpath with a segment back to its first point.
type Close struct{}

func (MoveTo) isPathElement()  {}
func (LineTo) isPathElement()  {}
func (QuadTo) isPathElement()  {}
func (CubicTo) isPathElement() {}
func (Close) isPathElement()   {}

// Path is the segment stream of a PathNode in user units.
type Path struct {
	elements []PathElement
	start    Point
	current  Point
}

// NewPath returns an empty path.
func NewPath() *Path {
	return &Path{elements: make([]PathElement, 0, 16)}
}

func (p *Path) push(e PathElement, end Point) {
	p.elements = append(p.elements, e)
	p.current = end
}

// MoveTo begins a subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	p.start = Pt(x, y)
	p.push(MoveTo{Point: p.start}, p.start)
}

// LineTo appends a straight segment.
func (p *Path) LineTo(x, y float64) {
	p.push(LineTo{Point: Pt(x, y)}, Pt(x, y))
}

// QuadraticTo appends a quadratic segment with control point (cx, cy).
func (p *Path) QuadraticTo(cx, cy, x, y float64) {
	p.push(QuadTo{Control: Pt(cx, cy), Point: Pt(x, y)}, Pt(x, y))
}

// CubicTo appends a cubic segment.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.push(CubicTo{Control1: Pt(c1x, c1y), Control2: Pt(c2x, c2y), Point: Pt(x, y)}, Pt(x, y))
}

// Close ends the current subpath.
func (p *Path) Close() {
	p.push(Close{}, p.start)
}

// Elements returns the segment stream. The slice must not be modified.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// Len returns the number of segments.
func (p *Path) Len() int {
	return len(p.elements)
}

// CurrentPoint returns the end point of the last segment.
func (p *Path) CurrentPoint() Point {
	return p.current
}

// Transform returns a new path with every point mapped through m.
func (p *Path) Transform(m Matrix) *Path {
	out := &Path{
		elements: make([]PathElement, len(p.elements)),
		start:    m.TransformPoint(p.start),
		current:  m.TransformPoint(p.current),
	}
	for i, e := range p.elements {
		out.elements[i] = transformElement(e, m)
	}
	return out
}

func transformElement(e PathElement, m Matrix) PathElement {
	switch e := e.(type) {
	case MoveTo:
		return MoveTo{Point: m.TransformPoint(e.Point)}
	case LineTo:
		return LineTo{Point: m.TransformPoint(e.Point)}
	case QuadTo:
		return QuadTo{Control: m.TransformPoint(e.Control), Point: m.TransformPoint(e.Point)}
	case CubicTo:
		return CubicTo{
			Control1: m.TransformPoint(e.Control1),
			Control2: m.TransformPoint(e.Control2),
			Point:    m.TransformPoint(e.Point),
		}
	}
	return e
}

// Rectangle appends a closed axis-aligned rectangle.
func (p *Path) Rectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// Ellipse appends a closed ellipse approximated by four cubic quarter arcs.
func (p *Path) Ellipse(cx, cy, rx, ry float64) {
	const kappa = 0.5522847498307936
	kx, ky := rx*kappa, ry*kappa
	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	p.CubicTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	p.CubicTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	p.CubicTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	p.Close()
}

// Circle appends a closed circle.
func (p *Path) Circle(cx, cy, r float64) {
	p.Ellipse(cx, cy, r, r)
}

package svgbox

import "github.com/gogpu/svgbox/internal/stroke"

// closeSnapDistSq is the squared distance under which a LineTo right before
// Close is treated as a duplicate of the contour's first point.
const closeSnapDistSq = 1.0

// strokeTolerance is the flattening tolerance used when expanding strokes
// for bounds.
const strokeTolerance = 0.05

// Contour is one subpath of an Outline. Segments always begin with a MoveTo.
type Contour struct {
	Segments []PathElement
	Closed   bool
}

// IsEmpty reports whether the contour has no points.
func (c *Contour) IsEmpty() bool {
	return len(c.Segments) == 0
}

// first returns the contour's first point.
func (c *Contour) first() Point {
	return c.Segments[0].(MoveTo).Point
}

// Outline is an ordered set of contours. Outlines are built per query and
// not retained.
type Outline struct {
	Contours []Contour
}

// BuildOutline converts the segment stream of p into an outline.
// Curves are kept as curves so their bounds stay exact.
func BuildOutline(p *Path) Outline {
	var o Outline
	if p == nil {
		return o
	}

	var contour Contour
	var current Point
	push := func() {
		if !contour.IsEmpty() {
			o.Contours = append(o.Contours, contour)
		}
		contour = Contour{}
	}
	// ensureStart opens a contour at the current point for drawing
	// commands that follow a Close without a MoveTo.
	ensureStart := func() {
		if contour.IsEmpty() {
			contour.Segments = append(contour.Segments, MoveTo{Point: current})
		}
	}

	elems := p.Elements()
	for i, el := range elems {
		switch e := el.(type) {
		case MoveTo:
			push()
			contour.Segments = append(contour.Segments, e)
			current = e.Point
		case LineTo:
			if i+1 < len(elems) && !contour.IsEmpty() {
				if _, ok := elems[i+1].(Close); ok && contour.first().Sub(e.Point).LengthSquared() < closeSnapDistSq {
					continue
				}
			}
			ensureStart()
			contour.Segments = append(contour.Segments, e)
			current = e.Point
		case QuadTo:
			ensureStart()
			contour.Segments = append(contour.Segments, e)
			current = e.Point
		case CubicTo:
			ensureStart()
			contour.Segments = append(contour.Segments, e)
			current = e.Point
		case Close:
			if contour.IsEmpty() {
				continue
			}
			current = contour.first()
			contour.Closed = true
			push()
		}
	}
	push()
	return o
}

// Bounds returns the exact bounding box of the outline, or false when it
// holds no points.
func (o Outline) Bounds() (Rect, bool) {
	var b bounds
	for i := range o.Contours {
		addSegmentBounds(&b, o.Contours[i].Segments, false)
	}
	return b.rect()
}

// Stroke returns the fill outline covered by stroking o with s.
// Curves in the result are the flattened offsets and round-cap arcs.
func (o Outline) Stroke(s Stroke) Outline {
	e := stroke.NewExpander(stroke.Style{
		Width:      s.Width,
		Cap:        stroke.LineCap(s.Cap),
		Join:       stroke.LineJoin(s.Join),
		MiterLimit: s.MiterLimit,
	})
	e.SetTolerance(strokeTolerance)
	return outlineFromStroke(e.Expand(o.strokeElements()))
}

func (o Outline) strokeElements() []stroke.Element {
	var out []stroke.Element
	for _, c := range o.Contours {
		for _, seg := range c.Segments {
			switch e := seg.(type) {
			case MoveTo:
				out = append(out, stroke.MoveTo{Point: toStrokePoint(e.Point)})
			case LineTo:
				out = append(out, stroke.LineTo{Point: toStrokePoint(e.Point)})
			case QuadTo:
				out = append(out, stroke.QuadTo{
					Control: toStrokePoint(e.Control),
					Point:   toStrokePoint(e.Point),
				})
			case CubicTo:
				out = append(out, stroke.CubicTo{
					Control1: toStrokePoint(e.Control1),
					Control2: toStrokePoint(e.Control2),
					Point:    toStrokePoint(e.Point),
				})
			}
		}
		if c.Closed {
			out = append(out, stroke.Close{})
		}
	}
	return out
}

func outlineFromStroke(elems []stroke.Element) Outline {
	var o Outline
	var contour Contour
	for _, el := range elems {
		switch e := el.(type) {
		case stroke.MoveTo:
			if !contour.IsEmpty() {
				o.Contours = append(o.Contours, contour)
			}
			contour = Contour{Segments: []PathElement{MoveTo{Point: fromStrokePoint(e.Point)}}}
		case stroke.LineTo:
			contour.Segments = append(contour.Segments, LineTo{Point: fromStrokePoint(e.Point)})
		case stroke.QuadTo:
			contour.Segments = append(contour.Segments, QuadTo{
				Control: fromStrokePoint(e.Control),
				Point:   fromStrokePoint(e.Point),
			})
		case stroke.CubicTo:
			contour.Segments = append(contour.Segments, CubicTo{
				Control1: fromStrokePoint(e.Control1),
				Control2: fromStrokePoint(e.Control2),
				Point:    fromStrokePoint(e.Point),
			})
		case stroke.Close:
			contour.Closed = true
			o.Contours = append(o.Contours, contour)
			contour = Contour{}
		}
	}
	if !contour.IsEmpty() {
		o.Contours = append(o.Contours, contour)
	}
	return o
}

func toStrokePoint(p Point) stroke.Point   { return stroke.Point{X: p.X, Y: p.Y} }
func fromStrokePoint(p stroke.Point) Point { return Point{X: p.X, Y: p.Y} }

// PathOutline returns the outline that bounds the visible ink of n: the
// stroke expansion when n has an active stroke, else its fill outline.
// It reports false when neither fill nor stroke paints anything.
//
// Strokes are expanded with miter joins limited to the line width and the
// node's own cap.
func PathOutline(n *PathNode) (Outline, bool) {
	fill := fillVisible(n.Fill)
	strk := strokeVisible(n.Stroke)
	if !fill && !strk {
		return Outline{}, false
	}
	o := BuildOutline(n.Data)
	if strk {
		s := *n.Stroke
		s.Join = LineJoinMiter
		s.MiterLimit = s.Width
		o = o.Stroke(s)
	}
	return o, true
}

// addSegmentBounds adds the extents of a segment stream to b. Quadratics
// are bounded exactly, or as their promoted cubic when promote is set.
func addSegmentBounds(b *bounds, elems []PathElement, promote bool) {
	var current, start Point
	for _, el := range elems {
		switch e := el.(type) {
		case MoveTo:
			b.addPoint(e.Point)
			current, start = e.Point, e.Point
		case LineTo:
			b.addPoint(e.Point)
			current = e.Point
		case QuadTo:
			q := QuadBez{P0: current, P1: e.Control, P2: e.Point}
			if promote {
				b.addRect(q.Promote().BoundingBox())
			} else {
				b.addRect(q.BoundingBox())
			}
			current = e.Point
		case CubicTo:
			b.addRect(CubicBez{P0: current, P1: e.Control1, P2: e.Control2, P3: e.Point}.BoundingBox())
			current = e.Point
		case Close:
			current = start
		}
	}
}

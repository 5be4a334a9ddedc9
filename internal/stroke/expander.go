package stroke

import "math"

// LineCap specifies the shape of line endpoints.
type LineCap int

const (
	// LineCapButt ends the stroke exactly at the endpoint.
	LineCapButt LineCap = iota
	// LineCapRound adds a semicircle of radius width/2.
	LineCapRound
	// LineCapSquare extends the stroke by width/2 beyond the endpoint.
	LineCapSquare
)

// LineJoin specifies the shape of line joins.
type LineJoin int

const (
	// LineJoinMiter extends the outer edges until they meet, within MiterLimit.
	LineJoinMiter LineJoin = iota
	// LineJoinRound adds a circular arc at the corner.
	LineJoinRound
	// LineJoinBevel cuts the corner with a straight line.
	LineJoinBevel
)

// Style defines the stroke geometry.
type Style struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
}

// DefaultTolerance is the flattening tolerance used by NewExpander.
const DefaultTolerance = 0.25

// Expander converts stroked paths to fill paths. An Expander is not safe
// for concurrent use; it may be reused sequentially.
type Expander struct {
	style     Style
	tolerance float64

	forward  *builder
	backward *builder
	output   *builder

	startPt   Point
	startNorm Vec2
	startTan  Vec2
	lastPt    Point
	lastTan   Vec2
	lastNorm  Vec2 // normal at lastPt scaled to width/2, used for the end cap

	// drawn is set once the current subpath has a drawing command, even a
	// zero-length one.
	drawn bool

	// joins whose turn is below this threshold are skipped
	joinThresh float64
}

// NewExpander creates an expander for style.
func NewExpander(style Style) *Expander {
	return &Expander{
		style:     style,
		tolerance: DefaultTolerance,
		forward:   newBuilder(),
		backward:  newBuilder(),
		output:    newBuilder(),
	}
}

// SetTolerance sets the curve flattening tolerance. Non-positive values are
// ignored.
func (e *Expander) SetTolerance(tolerance float64) {
	if tolerance > 0 {
		e.tolerance = tolerance
	}
}

// Tolerance returns the curve flattening tolerance.
func (e *Expander) Tolerance() float64 {
	return e.tolerance
}

// Expand returns the fill path covered by stroking elements.
// A non-positive or non-finite width yields nil.
func (e *Expander) Expand(elements []Element) []Element {
	w := e.style.Width
	if !(w > 0) || math.IsInf(w, 0) {
		return nil
	}
	e.forward.reset()
	e.backward.reset()
	e.drawn = false
	e.joinThresh = 2.0 * e.tolerance / w

	for _, el := range elements {
		switch el := el.(type) {
		case MoveTo:
			e.finishOpen()
			e.startPt = el.Point
			e.lastPt = el.Point
		case LineTo:
			e.drawn = true
			e.lineTo(el.Point)
		case QuadTo:
			e.drawn = true
			e.polyline(e.flattenQuad(e.lastPt, el.Control, el.Point))
		case CubicTo:
			e.drawn = true
			e.polyline(e.flattenCubic(e.lastPt, el.Control1, el.Control2, el.Point))
		case Close:
			e.drawn = true
			e.lineTo(e.startPt)
			e.finishClosed()
			e.lastPt = e.startPt
		}
	}
	e.finishOpen()

	out := e.output.elements
	e.output = newBuilder()
	return out
}

// lineTo offsets a straight segment ending at p. Zero-length segments are
// skipped.
func (e *Expander) lineTo(p Point) {
	if p == e.lastPt {
		return
	}
	tangent := p.Sub(e.lastPt)
	e.join(tangent)
	e.lastTan = tangent
	e.offsetLine(tangent, p)
}

// polyline offsets the flattened points of a curve; pts[0] is the current point.
func (e *Expander) polyline(pts []Point) {
	for _, p := range pts[1:] {
		if p.Sub(e.lastPt).Dot(p.Sub(e.lastPt)) > 1e-10 {
			e.lineTo(p)
		}
	}
}

func (e *Expander) normal(tangent Vec2) Vec2 {
	return tangent.Perp().Scale(0.5 * e.style.Width / tangent.Length())
}

// join connects the segment starting at lastPt with direction tan0 to the
// previous one, or opens both offset paths for the first segment.
func (e *Expander) join(tan0 Vec2) {
	norm := e.normal(tan0)
	p0 := e.lastPt

	if e.forward.empty() {
		e.forward.moveTo(p0.Add(norm.Neg()))
		e.backward.moveTo(p0.Add(norm))
		e.startTan = tan0
		e.startNorm = norm
		return
	}

	ab := e.lastTan
	cd := tan0
	cross := ab.Cross(cd)
	dot := ab.Dot(cd)
	hypot := math.Hypot(cross, dot)

	// Nearly collinear: connect both sides without a join so the offset
	// paths stay continuous.
	if dot > 0.0 && math.Abs(cross) < hypot*e.joinThresh {
		e.forward.lineTo(p0.Add(norm.Neg()))
		e.backward.lineTo(p0.Add(norm))
		return
	}

	switch e.style.Join {
	case LineJoinMiter:
		limit := e.style.MiterLimit
		if 2.0*hypot < (hypot+dot)*limit*limit {
			e.miter(p0, norm, ab, cd, cross)
		}
		e.forward.lineTo(p0.Add(norm.Neg()))
		e.backward.lineTo(p0.Add(norm))
	case LineJoinRound:
		lastNorm := e.normal(e.lastTan)
		angle := math.Atan2(cross, dot)
		if angle > 0.0 {
			e.backward.lineTo(p0.Add(norm))
			e.arc(e.forward, p0, lastNorm.Neg(), angle)
		} else {
			e.forward.lineTo(p0.Add(norm.Neg()))
			e.arc(e.backward, p0, lastNorm, angle)
		}
	default:
		e.forward.lineTo(p0.Add(norm.Neg()))
		e.backward.lineTo(p0.Add(norm))
	}
}

// miter adds the miter tip on the outer side of the turn.
func (e *Expander) miter(p0 Point, norm, ab, cd Vec2, cross float64) {
	lastNorm := e.normal(ab)
	outer, inner := e.forward, e.backward
	sign := -1.0
	if cross < 0.0 {
		outer, inner = e.backward, e.forward
		sign = 1.0
	} else if cross == 0.0 {
		return
	}
	fpLast := p0.Add(lastNorm.Scale(sign))
	fpThis := p0.Add(norm.Scale(sign))
	h := ab.Cross(fpThis.Sub(fpLast)) / cross
	outer.lineTo(fpThis.Add(cd.Scale(-h)))
	inner.lineTo(p0)
}

func (e *Expander) offsetLine(tangent Vec2, p1 Point) {
	norm := e.normal(tangent)
	e.forward.lineTo(p1.Add(norm.Neg()))
	e.backward.lineTo(p1.Add(norm))
	e.lastPt = p1
	e.lastNorm = norm
}

// finishOpen emits the pending open subpath with caps on both ends.
func (e *Expander) finishOpen() {
	if e.forward.empty() {
		e.dot()
		return
	}

	e.output.extend(e.forward)
	e.cap(e.lastPt, e.lastNorm.Neg(), false)
	e.appendReversed(e.backward)
	e.cap(e.startPt, e.startNorm, true)

	e.forward.reset()
	e.backward.reset()
	e.drawn = false
}

// finishClosed emits the pending closed subpath as two loops.
func (e *Expander) finishClosed() {
	if e.forward.empty() {
		e.dot()
		return
	}

	e.join(e.startTan)

	e.output.extend(e.forward)
	e.output.close()

	back := e.backward.elements
	e.output.moveTo(endPoint(back[len(back)-1]))
	e.appendReversed(e.backward)
	e.output.close()

	e.forward.reset()
	e.backward.reset()
	e.drawn = false
}

// dot paints a zero-length subpath according to the cap style.
func (e *Expander) dot() {
	if !e.drawn {
		return
	}
	e.drawn = false
	r := 0.5 * e.style.Width
	c := e.startPt
	switch e.style.Cap {
	case LineCapRound:
		e.output.moveTo(Point{X: c.X + r, Y: c.Y})
		e.arc(e.output, c, Vec2{X: r}, 2*math.Pi)
		e.output.close()
	case LineCapSquare:
		e.output.moveTo(Point{X: c.X - r, Y: c.Y - r})
		e.output.lineTo(Point{X: c.X + r, Y: c.Y - r})
		e.output.lineTo(Point{X: c.X + r, Y: c.Y + r})
		e.output.lineTo(Point{X: c.X - r, Y: c.Y + r})
		e.output.close()
	}
}

// cap adds a line cap at center. norm points from center toward the side
// the output is currently on.
func (e *Expander) cap(center Point, norm Vec2, closePath bool) {
	switch e.style.Cap {
	case LineCapRound:
		e.arc(e.output, center, norm, math.Pi)
		if closePath {
			e.output.close()
		}
	case LineCapSquare:
		// Corners of the unit square in the frame (norm, norm.Perp()).
		frame := func(x, y float64) Point {
			return Point{
				X: norm.X*x - norm.Y*y + center.X,
				Y: norm.Y*x + norm.X*y + center.Y,
			}
		}
		e.output.lineTo(frame(1, 1))
		e.output.lineTo(frame(-1, 1))
		if closePath {
			e.output.close()
		} else {
			e.output.lineTo(frame(-1, 0))
		}
	default:
		if closePath {
			e.output.close()
		} else {
			e.output.lineTo(center.Add(norm.Neg()))
		}
	}
}

// arc appends a circular arc around center starting at center+norm and
// sweeping angle radians, as cubic segments of at most 90 degrees.
func (e *Expander) arc(out *builder, center Point, norm Vec2, angle float64) {
	n := int(math.Ceil(math.Abs(angle) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	step := angle / float64(n)
	a0 := norm.Angle()
	radius := norm.Length()

	for i := 0; i < n; i++ {
		a1 := a0 + step
		alpha := math.Sin(step) * (math.Sqrt(4+3*math.Tan(step/2)*math.Tan(step/2)) - 1) / 3
		sin0, cos0 := math.Sincos(a0)
		sin1, cos1 := math.Sincos(a1)
		p2 := Point{X: center.X + radius*cos1, Y: center.Y + radius*sin1}
		c1 := Point{X: center.X + radius*(cos0-alpha*sin0), Y: center.Y + radius*(sin0+alpha*cos0)}
		c2 := Point{X: p2.X + alpha*radius*sin1, Y: p2.Y - alpha*radius*cos1}
		out.cubicTo(c1, c2, p2)
		a0 = a1
	}
}

// appendReversed appends b to the output in reverse, skipping its MoveTo.
func (e *Expander) appendReversed(b *builder) {
	elems := b.elements
	for i := len(elems) - 1; i >= 1; i-- {
		to := endPoint(elems[i-1])
		switch el := elems[i].(type) {
		case LineTo:
			e.output.lineTo(to)
		case QuadTo:
			e.output.quadTo(el.Control, to)
		case CubicTo:
			e.output.cubicTo(el.Control2, el.Control1, to)
		}
	}
}

func (e *Expander) flattenQuad(p0, p1, p2 Point) []Point {
	pts := []Point{p0}
	var rec func(p0, p1, p2 Point, depth int)
	rec = func(p0, p1, p2 Point, depth int) {
		if depth >= maxDepth || distanceToLine(p1, p0, p2) < e.tolerance {
			pts = append(pts, p2)
			return
		}
		q0 := p0.Lerp(p1, 0.5)
		q1 := p1.Lerp(p2, 0.5)
		m := q0.Lerp(q1, 0.5)
		rec(p0, q0, m, depth+1)
		rec(m, q1, p2, depth+1)
	}
	rec(p0, p1, p2, 0)
	return pts
}

func (e *Expander) flattenCubic(p0, p1, p2, p3 Point) []Point {
	pts := []Point{p0}
	var rec func(p0, p1, p2, p3 Point, depth int)
	rec = func(p0, p1, p2, p3 Point, depth int) {
		d := math.Max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3))
		if depth >= maxDepth || d < e.tolerance {
			pts = append(pts, p3)
			return
		}
		q0 := p0.Lerp(p1, 0.5)
		q1 := p1.Lerp(p2, 0.5)
		q2 := p2.Lerp(p3, 0.5)
		r0 := q0.Lerp(q1, 0.5)
		r1 := q1.Lerp(q2, 0.5)
		s := r0.Lerp(r1, 0.5)
		rec(p0, q0, r0, s, depth+1)
		rec(s, r1, q2, p3, depth+1)
	}
	rec(p0, p1, p2, p3, 0)
	return pts
}

// maxDepth bounds curve subdivision for huge or non-finite coordinates.
const maxDepth = 16

// distanceToLine returns the distance from p to the segment ab.
func distanceToLine(p, a, b Point) float64 {
	ab := b.Sub(a)
	abLen2 := ab.Dot(ab)
	if abLen2 < 1e-20 {
		return p.Sub(a).Length()
	}
	t := p.Sub(a).Dot(ab) / abLen2
	t = math.Max(0, math.Min(1, t))
	return p.Sub(a.Add(ab.Scale(t))).Length()
}

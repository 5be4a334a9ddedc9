package svgbox

import "math"

// Rect represents an axis-aligned rectangle.
// Min is the top-left corner (minimum coordinates).
// Max is the bottom-right corner (maximum coordinates).
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle from two points.
// The points are normalized so Min <= Max.
func NewRect(p1, p2 Point) Rect {
	return Rect{
		Min: Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Max: Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

// RectXYWH creates a rectangle from its origin and size.
func RectXYWH(x, y, w, h float64) Rect {
	return NewRect(Pt(x, y), Pt(x+w, y+h))
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return r.Min.Lerp(r.Max, 0.5)
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return !(r.Max.X > r.Min.X && r.Max.Y > r.Min.Y)
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, other.Min.X), Y: math.Min(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, other.Max.X), Y: math.Max(r.Max.Y, other.Max.Y)},
	}
}

// Intersect returns the overlap of r and other. The second result is false
// when the rectangles do not overlap with a positive area.
func (r Rect) Intersect(other Rect) (Rect, bool) {
	out := Rect{
		Min: Point{X: math.Max(r.Min.X, other.Min.X), Y: math.Max(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Min(r.Max.X, other.Max.X), Y: math.Min(r.Max.Y, other.Max.Y)},
	}
	if out.IsEmpty() {
		return Rect{}, false
	}
	return out, true
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// BBox is an axis-aligned box in user-space units, the value type exchanged
// with callers of the bounding box and crop operations.
type BBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// BBoxFromRect converts a Rect into a BBox.
func BBoxFromRect(r Rect) BBox {
	return BBox{X: r.Min.X, Y: r.Min.Y, Width: r.Width(), Height: r.Height()}
}

// Rect converts the box into a Rect.
func (b BBox) Rect() Rect {
	return Rect{Min: Pt(b.X, b.Y), Max: Pt(b.X+b.Width, b.Y+b.Height)}
}

// IsValid reports whether every field is finite and the size is non-negative.
func (b BBox) IsValid() bool {
	return isFinite(b.X) && isFinite(b.Y) && isFinite(b.Width) && isFinite(b.Height) &&
		b.Width >= 0 && b.Height >= 0
}

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// bounds accumulates extents as explicit min/max coordinates. The zero
// value holds nothing; rect reports false until something was added.
type bounds struct {
	minX, minY, maxX, maxY float64
	set                    bool
}

func (b *bounds) addPoint(p Point) {
	if !b.set {
		b.minX, b.maxX = p.X, p.X
		b.minY, b.maxY = p.Y, p.Y
		b.set = true
		return
	}
	b.minX = math.Min(b.minX, p.X)
	b.minY = math.Min(b.minY, p.Y)
	b.maxX = math.Max(b.maxX, p.X)
	b.maxY = math.Max(b.maxY, p.Y)
}

func (b *bounds) addRect(r Rect) {
	b.addPoint(r.Min)
	b.addPoint(r.Max)
}

// inflate grows the extents by dx horizontally and dy vertically on each side.
func (b *bounds) inflate(dx, dy float64) {
	if !b.set {
		return
	}
	b.minX -= dx
	b.maxX += dx
	b.minY -= dy
	b.maxY += dy
}

func (b *bounds) rect() (Rect, bool) {
	if !b.set {
		return Rect{}, false
	}
	return Rect{Min: Pt(b.minX, b.minY), Max: Pt(b.maxX, b.maxY)}, true
}

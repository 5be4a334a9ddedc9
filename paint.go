package svgbox

// LineCap specifies the shape of line endpoints.
type LineCap int

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

// LineJoin specifies the shape of line joins.
type LineJoin int

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

// FillRule specifies how to determine which areas are inside a path.
type FillRule int

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// Fill describes how the interior of a path is painted.
type Fill struct {
	Color   RGBA
	Opacity float64
	Rule    FillRule
}

// Stroke describes how the outline of a path is painted.
type Stroke struct {
	Color RGBA

	// Width is the line width in user units.
	Width float64

	Cap  LineCap
	Join LineJoin

	// MiterLimit is the limit for miter joins before they become bevels.
	MiterLimit float64

	Opacity float64
}

// DefaultStroke returns a solid opaque black 1-unit stroke with butt caps
// and miter joins, matching the SVG initial values.
func DefaultStroke() Stroke {
	return Stroke{
		Color:      Black,
		Width:      1.0,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: 4.0,
		Opacity:    1.0,
	}
}

// fillVisible reports whether f paints anything.
func fillVisible(f *Fill) bool {
	return f != nil && f.Opacity != 0
}

// strokeVisible reports whether s paints anything. A stroke without a
// positive width covers no area.
func strokeVisible(s *Stroke) bool {
	return s != nil && s.Opacity != 0 && s.Width > 0
}

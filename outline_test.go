package svgbox

import "testing"

func rectPath(x, y, w, h float64) *Path {
	p := NewPath()
	p.Rectangle(x, y, w, h)
	return p
}

func solidFill() *Fill {
	return &Fill{Color: Black, Opacity: 1}
}

func solidStroke(width float64, lineCap LineCap) *Stroke {
	s := DefaultStroke()
	s.Width = width
	s.Cap = lineCap
	return &s
}

func TestBuildOutline_Contours(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.LineTo(10, 10)
	p.Close()
	p.MoveTo(20, 20)
	p.CubicTo(25, 30, 35, 30, 40, 20)
	p.MoveTo(50, 50) // single point contour
	p.QuadraticTo(60, 60, 70, 50)

	o := BuildOutline(p)
	if len(o.Contours) != 3 {
		t.Fatalf("contours = %d, want 3", len(o.Contours))
	}
	if !o.Contours[0].Closed || o.Contours[1].Closed || o.Contours[2].Closed {
		t.Errorf("closed flags = %v %v %v, want true false false",
			o.Contours[0].Closed, o.Contours[1].Closed, o.Contours[2].Closed)
	}
	if _, ok := o.Contours[1].Segments[1].(CubicTo); !ok {
		t.Errorf("curve flattened: got %T", o.Contours[1].Segments[1])
	}
	if _, ok := o.Contours[2].Segments[1].(QuadTo); !ok {
		t.Errorf("quadratic flattened: got %T", o.Contours[2].Segments[1])
	}
}

func TestBuildOutline_DropsClosingDuplicate(t *testing.T) {
	tests := []struct {
		name     string
		x, y     float64
		segments int
	}{
		{"exact duplicate", 0, 0, 3},
		{"within snap distance", 0.5, 0.5, 3},
		{"outside snap distance", 1, 0.5, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPath()
			p.MoveTo(0, 0)
			p.LineTo(10, 0)
			p.LineTo(10, 10)
			p.LineTo(tt.x, tt.y)
			p.Close()

			o := BuildOutline(p)
			if len(o.Contours) != 1 {
				t.Fatalf("contours = %d, want 1", len(o.Contours))
			}
			if got := len(o.Contours[0].Segments); got != tt.segments {
				t.Errorf("segments = %d, want %d", got, tt.segments)
			}
		})
	}
}

func TestBuildOutline_KeepsLineNotFollowedByClose(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.LineTo(0.1, 0)

	o := BuildOutline(p)
	if got := len(o.Contours[0].Segments); got != 3 {
		t.Errorf("segments = %d, want 3", got)
	}
}

func TestBuildOutline_DrawAfterClose(t *testing.T) {
	p := NewPath()
	p.MoveTo(5, 5)
	p.LineTo(10, 5)
	p.LineTo(10, 10)
	p.Close()
	p.LineTo(0, 20)

	o := BuildOutline(p)
	if len(o.Contours) != 2 {
		t.Fatalf("contours = %d, want 2", len(o.Contours))
	}
	start, ok := o.Contours[1].Segments[0].(MoveTo)
	if !ok || start.Point != Pt(5, 5) {
		t.Errorf("second contour starts with %v, want MoveTo (5,5)", o.Contours[1].Segments[0])
	}
}

func TestOutline_BoundsExactCurves(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.CubicTo(0, 40, 100, 40, 100, 0)

	r, ok := BuildOutline(p).Bounds()
	if !ok {
		t.Fatal("Bounds reported empty")
	}
	// Peak of the curve is at t=0.5: 0.75 * 40 = 30, below the control points.
	want := Rect{Min: Pt(0, 0), Max: Pt(100, 30)}
	if !rectsEqual(r, want, 1e-9) {
		t.Errorf("Bounds = %v, want %v", r, want)
	}

	if _, ok := (Outline{}).Bounds(); ok {
		t.Error("empty outline reported bounds")
	}
}

func TestOutline_Stroke(t *testing.T) {
	tests := []struct {
		name string
		cap  LineCap
		want Rect
	}{
		{"butt", LineCapButt, Rect{Min: Pt(0, -2), Max: Pt(10, 2)}},
		{"square", LineCapSquare, Rect{Min: Pt(-2, -2), Max: Pt(12, 2)}},
		{"round", LineCapRound, Rect{Min: Pt(-2, -2), Max: Pt(12, 2)}},
	}

	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultStroke()
			s.Width = 4
			s.Cap = tt.cap
			r, ok := BuildOutline(p).Stroke(s).Bounds()
			if !ok {
				t.Fatal("stroked outline is empty")
			}
			if !rectsEqual(r, tt.want, 1e-3) {
				t.Errorf("Bounds = %v, want %v", r, tt.want)
			}
		})
	}
}

func TestPathOutline_Visibility(t *testing.T) {
	tests := []struct {
		name    string
		fill    *Fill
		stroke  *Stroke
		visible bool
	}{
		{"no paint", nil, nil, false},
		{"transparent fill", &Fill{Opacity: 0}, nil, false},
		{"transparent both", &Fill{Opacity: 0}, &Stroke{Width: 2, Opacity: 0}, false},
		{"zero width stroke", nil, &Stroke{Width: 0, Opacity: 1}, false},
		{"fill", solidFill(), nil, true},
		{"stroke", nil, solidStroke(2, LineCapButt), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &PathNode{Transform: Identity(), Data: rectPath(0, 0, 10, 10), Fill: tt.fill, Stroke: tt.stroke}
			_, ok := PathOutline(n)
			if ok != tt.visible {
				t.Errorf("PathOutline visible = %v, want %v", ok, tt.visible)
			}
		})
	}
}

func TestPathOutline_StrokeReplacesFill(t *testing.T) {
	n := &PathNode{
		Transform: Identity(),
		Data:      rectPath(0, 0, 10, 10),
		Fill:      solidFill(),
		Stroke:    solidStroke(2, LineCapButt),
	}
	o, ok := PathOutline(n)
	if !ok {
		t.Fatal("PathOutline reported invisible")
	}
	r, _ := o.Bounds()
	want := Rect{Min: Pt(-1, -1), Max: Pt(11, 11)}
	if !rectsEqual(r, want, 1e-9) {
		t.Errorf("Bounds = %v, want %v", r, want)
	}
}

func TestPathOutline_MiterLimitIsWidth(t *testing.T) {
	// The hairpin below needs a miter ratio of about 10.2: a width of 2
	// bevels the corner, a width of 20 keeps the long miter tip.
	hairpin := func() *Path {
		p := NewPath()
		p.MoveTo(0, 0)
		p.LineTo(10, 0)
		p.LineTo(0, 2)
		return p
	}

	tests := []struct {
		width   float64
		mitered bool
	}{
		{2, false},
		{20, true},
	}
	for _, tt := range tests {
		n := &PathNode{Transform: Identity(), Data: hairpin(), Stroke: solidStroke(tt.width, LineCapButt)}
		o, ok := PathOutline(n)
		if !ok {
			t.Fatalf("width %v: PathOutline reported invisible", tt.width)
		}
		r, _ := o.Bounds()
		if tt.mitered && r.Max.X < 60 {
			t.Errorf("width %v: maxX = %v, want a miter tip beyond 60", tt.width, r.Max.X)
		}
		if !tt.mitered && r.Max.X > 10+tt.width/2 {
			t.Errorf("width %v: maxX = %v, want a bevel within %v", tt.width, r.Max.X, 10+tt.width/2)
		}
	}
}

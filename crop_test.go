package svgbox

import (
	"math"
	"testing"
)

// failingResolver always fails.
type failingResolver struct{}

func (failingResolver) Resolve(FitTo, Size) (int, int, Matrix, error) {
	return 0, 0, Matrix{}, ErrInvalidSize
}

func TestComputeViewport_InvalidBBoxIsNoop(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)
	tests := []struct {
		name string
		bbox BBox
	}{
		{"zero width", BBox{Width: 0, Height: 10}},
		{"zero height", BBox{Width: 10, Height: 0}},
		{"negative", BBox{Width: -1, Height: 10}},
		{"nan width", BBox{Width: nan, Height: 10}},
		{"infinite height", BBox{Width: 10, Height: inf}},
		{"nan origin", BBox{X: nan, Width: 10, Height: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, ok := ComputeViewport(CropContext{BBox: tt.bbox}, false, Original(), nil); ok {
				t.Errorf("ComputeViewport = %+v, want no-op", got)
			}
		})
	}
}

func TestComputeViewport(t *testing.T) {
	tests := []struct {
		name    string
		bbox    BBox
		padding float64
		square  bool
		fit     FitTo
		want    CropResult
	}{
		{
			name: "original round trip",
			bbox: BBox{X: 10, Y: 20, Width: 30, Height: 40},
			fit:  Original(),
			want: CropResult{View: BBox{X: 10, Y: 20, Width: 30, Height: 40}, Size: Size{Width: 30, Height: 40}},
		},
		{
			name:    "original ignores padding",
			bbox:    BBox{X: 10, Y: 20, Width: 30, Height: 40},
			padding: 5,
			fit:     Original(),
			want:    CropResult{View: BBox{X: 10, Y: 20, Width: 30, Height: 40}, Size: Size{Width: 30, Height: 40}},
		},
		{
			name:   "square tall",
			bbox:   BBox{X: 0, Y: 0, Width: 10, Height: 20},
			square: true,
			fit:    Original(),
			want:   CropResult{View: BBox{X: -5, Y: 0, Width: 20, Height: 20}, Size: Size{Width: 20, Height: 20}},
		},
		{
			name:   "square wide",
			bbox:   BBox{X: 0, Y: 0, Width: 20, Height: 10},
			square: true,
			fit:    Original(),
			want:   CropResult{View: BBox{X: 0, Y: -5, Width: 20, Height: 20}, Size: Size{Width: 20, Height: 20}},
		},
		{
			name:    "width with padding",
			bbox:    BBox{X: 10, Y: 10, Width: 100, Height: 50},
			padding: 5,
			fit:     Width(200),
			want: CropResult{
				View: BBox{X: 60 - 100*200.0/190/2, Y: 35 - 50*100.0/90/2, Width: 100 * 200.0 / 190, Height: 50 * 100.0 / 90},
				Size: Size{Width: 200, Height: 100},
			},
		},
		{
			name: "width without padding keeps the box",
			bbox: BBox{X: 10, Y: 10, Width: 100, Height: 50},
			fit:  Width(300),
			want: CropResult{View: BBox{X: 10, Y: 10, Width: 100, Height: 50}, Size: Size{Width: 300, Height: 150}},
		},
		{
			name:    "height with padding",
			bbox:    BBox{X: 0, Y: 0, Width: 100, Height: 50},
			padding: 10,
			fit:     Height(100),
			want: CropResult{
				View: BBox{X: 50 - 100*200.0/180/2, Y: 25 - 50*100.0/80/2, Width: 100 * 200.0 / 180, Height: 50 * 100.0 / 80},
				Size: Size{Width: 200, Height: 100},
			},
		},
		{
			name: "zoom reports unscaled size",
			bbox: BBox{X: 0, Y: 0, Width: 180, Height: 80},
			fit:  Zoom(0.5),
			want: CropResult{View: BBox{X: 0, Y: 0, Width: 180, Height: 80}, Size: Size{Width: 180, Height: 80}},
		},
		{
			name:   "zoom square uses the larger side",
			bbox:   BBox{X: 0, Y: 0, Width: 180, Height: 80},
			square: true,
			fit:    Zoom(2),
			want:   CropResult{View: BBox{X: 0, Y: -50, Width: 180, Height: 180}, Size: Size{Width: 180, Height: 180}},
		},
		{
			name:   "width square uses the resolved width",
			bbox:   BBox{X: 0, Y: 0, Width: 100, Height: 50},
			square: true,
			fit:    Width(300),
			want:   CropResult{View: BBox{X: 0, Y: -25, Width: 100, Height: 100}, Size: Size{Width: 300, Height: 300}},
		},
		{
			name:    "padding leaves no content",
			bbox:    BBox{X: 10, Y: 10, Width: 100, Height: 50},
			padding: 100,
			fit:     Width(200),
			want:    CropResult{View: BBox{X: 110, Y: 60, Width: 1, Height: 1}, Size: Size{Width: 200, Height: 100}, Empty: true},
		},
		{
			name:    "content just under one unit",
			bbox:    BBox{X: 0, Y: 0, Width: 100, Height: 100},
			padding: 49.75,
			fit:     Width(100),
			want:    CropResult{View: BBox{X: 100, Y: 100, Width: 1, Height: 1}, Size: Size{Width: 100, Height: 100}, Empty: true},
		},
		{
			name:    "invalid zoom falls back to the raw box",
			bbox:    BBox{X: 1, Y: 2, Width: 30, Height: 40},
			padding: 3,
			fit:     Zoom(0),
			want:    CropResult{View: BBox{X: 1, Y: 2, Width: 30, Height: 40}, Size: Size{Width: 30, Height: 40}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ComputeViewport(CropContext{BBox: tt.bbox, Padding: tt.padding}, tt.square, tt.fit, nil)
			if !ok {
				t.Fatal("ComputeViewport reported no-op")
			}
			if !bboxEqual(got.View, tt.want.View, 1e-9) {
				t.Errorf("View = %+v, want %+v", got.View, tt.want.View)
			}
			if math.Abs(got.Size.Width-tt.want.Size.Width) > 1e-9 || math.Abs(got.Size.Height-tt.want.Size.Height) > 1e-9 {
				t.Errorf("Size = %+v, want %+v", got.Size, tt.want.Size)
			}
			if got.Empty != tt.want.Empty {
				t.Errorf("Empty = %v, want %v", got.Empty, tt.want.Empty)
			}
		})
	}
}

func TestComputeViewport_WidthScenario(t *testing.T) {
	got, ok := ComputeViewport(CropContext{BBox: BBox{X: 10, Y: 10, Width: 100, Height: 50}, Padding: 5}, false, Width(200), nil)
	if !ok {
		t.Fatal("ComputeViewport reported no-op")
	}
	if math.Abs(got.View.Width-105.26) > 0.01 {
		t.Errorf("view width = %v, want ~105.26", got.View.Width)
	}
	c := got.View.Rect().Center()
	if !pointsEqual(c, Pt(60, 35), 1e-9) {
		t.Errorf("view center = %v, want (60, 35)", c)
	}
}

func TestComputeViewport_InvalidPadding(t *testing.T) {
	box := BBox{X: 10, Y: 10, Width: 100, Height: 50}
	for _, p := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -3} {
		got, ok := ComputeViewport(CropContext{BBox: box, Padding: p}, false, Width(200), nil)
		if !ok || !bboxEqual(got.View, box, 1e-9) || got.Empty {
			t.Errorf("padding %v: ComputeViewport = %+v, %v, want the box unpadded", p, got, ok)
		}
	}
}

func TestComputeViewport_ResolverFailure(t *testing.T) {
	box := BBox{X: 10, Y: 10, Width: 100, Height: 50}
	want := CropResult{View: box, Size: Size{Width: 100, Height: 50}}
	for _, square := range []bool{false, true} {
		got, ok := ComputeViewport(CropContext{BBox: box, Padding: 5}, square, Width(200), failingResolver{})
		if !ok {
			t.Fatalf("square=%v: ComputeViewport reported no-op", square)
		}
		if got != want {
			t.Errorf("square=%v: ComputeViewport = %+v, want %+v", square, got, want)
		}
	}
}

func TestTree_ApplyCrop(t *testing.T) {
	tree := NewTree(100, 100)

	tree.ApplyCrop(CropResult{View: BBox{X: 110, Y: 60, Width: 1, Height: 1}, Size: Size{Width: 200, Height: 100}, Empty: true})
	if !tree.SkipRender {
		t.Error("SkipRender not set for an empty crop")
	}
	if want := RectXYWH(110, 60, 1, 1); tree.ViewBox != want {
		t.Errorf("ViewBox = %v, want %v", tree.ViewBox, want)
	}

	tree.ApplyCrop(CropResult{View: BBox{X: 1, Y: 2, Width: 3, Height: 4}, Size: Size{Width: 3, Height: 4}})
	if tree.SkipRender {
		t.Error("SkipRender still set after a non-empty crop")
	}
	if want := (Size{Width: 3, Height: 4}); tree.Size != want {
		t.Errorf("Size = %v, want %v", tree.Size, want)
	}
}

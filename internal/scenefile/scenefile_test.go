package scenefile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/svgbox"
)

const sampleScene = `
width: 200
height: 100
viewbox: [0, 0, 400, 200]
nodes:
  - kind: group
    id: layer
    opacity: 0.5
    clip:
      - kind: path
        d: M0 0 H50 V50 H0 Z
        fill: {color: black}
    children:
      - kind: path
        id: box
        d: M10 10 H30 V30 H10 Z
        fill: {color: "#ff0000", rule: evenodd}
        stroke: {color: "#00f", width: 2, cap: round, join: bevel}
  - kind: path
    transform: [1, 0, 0, 1, 100, 0]
    d: M0 0 L10 10
    stroke: {color: "#000000"}
  - kind: image
    href: logo.png
    rect: [0, 60, 32, 32]
  - kind: text
    content: Hello
    size: 16
    x: 10
    y: 90
`

func TestDecode(t *testing.T) {
	tree, err := Decode(strings.NewReader(sampleScene))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if tree.Size != (svgbox.Size{Width: 200, Height: 100}) {
		t.Errorf("Size = %v, want 200x100", tree.Size)
	}
	if want := svgbox.RectXYWH(0, 0, 400, 200); tree.ViewBox != want {
		t.Errorf("ViewBox = %v, want %v", tree.ViewBox, want)
	}

	root := tree.RootGroup()
	if len(root.Children) != 4 {
		t.Fatalf("root has %d children, want 4", len(root.Children))
	}

	layer := tree.Group(root.Children[0])
	if layer == nil || layer.ID != "layer" || layer.Opacity != 0.5 {
		t.Fatalf("layer = %+v", layer)
	}
	if tree.FirstChild(layer.ClipPath) == svgbox.NoNode {
		t.Error("layer clip path has no child")
	}
	box, ok := tree.Node(layer.Children[0]).(*svgbox.PathNode)
	if !ok {
		t.Fatalf("layer child is %T, want *PathNode", tree.Node(layer.Children[0]))
	}
	if box.Fill == nil || box.Fill.Color != svgbox.RGB(1, 0, 0) || box.Fill.Rule != svgbox.FillRuleEvenOdd {
		t.Errorf("box fill = %+v", box.Fill)
	}
	if box.Stroke == nil || box.Stroke.Width != 2 || box.Stroke.Cap != svgbox.LineCapRound ||
		box.Stroke.Join != svgbox.LineJoinBevel || box.Stroke.Color != svgbox.RGB(0, 0, 1) {
		t.Errorf("box stroke = %+v", box.Stroke)
	}

	wrap := tree.Group(root.Children[1])
	if wrap == nil {
		t.Fatalf("transformed path not wrapped in a group: %T", tree.Node(root.Children[1]))
	}
	if wrap.Transform != svgbox.Translate(100, 0) {
		t.Errorf("wrapper transform = %v, want translate(100, 0)", wrap.Transform)
	}
	if leaf := tree.Node(wrap.Children[0]); !leaf.LocalTransform().IsIdentity() {
		t.Errorf("wrapped leaf transform = %v, want identity", leaf.LocalTransform())
	}

	img, ok := tree.Node(root.Children[2]).(*svgbox.ImageNode)
	if !ok || img.Href != "logo.png" || img.ViewRect != svgbox.RectXYWH(0, 60, 32, 32) {
		t.Errorf("image = %+v", tree.Node(root.Children[2]))
	}
	txt, ok := tree.Node(root.Children[3]).(*svgbox.TextNode)
	if !ok || txt.Content != "Hello" || txt.FontSize != 16 || txt.X != 10 || txt.Y != 90 {
		t.Errorf("text = %+v", tree.Node(root.Children[3]))
	}
}

func TestDecode_BBoxes(t *testing.T) {
	tree, err := Decode(strings.NewReader(`
width: 100
height: 100
nodes:
  - kind: path
    transform: [2, 0, 0, 2, 0, 0]
    d: M10 10 h10 v10 h-10 z
    fill: {color: red}
`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := svgbox.BBox{X: 20, Y: 20, Width: 20, Height: 20}
	if got, ok := tree.InnerBBox(); !ok || got != want {
		t.Errorf("InnerBBox = %v, %v, want %v", got, ok, want)
	}
	if got, ok := tree.GetBBox(); !ok || got != want {
		t.Errorf("GetBBox = %v, %v, want %v", got, ok, want)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"no size", "nodes: []", ErrNode},
		{"bad viewbox", "width: 1\nheight: 1\nviewbox: [0, 0, 1]", ErrNode},
		{"unknown kind", "width: 1\nheight: 1\nnodes: [{kind: circle}]", ErrNode},
		{"bad transform", "width: 1\nheight: 1\nnodes: [{kind: path, d: M0 0, transform: [1, 2]}]", ErrNode},
		{"bad path", "width: 1\nheight: 1\nnodes: [{kind: path, d: L0 0 0}]", ErrPathData},
		{"bad color", "width: 1\nheight: 1\nnodes: [{kind: path, d: M0 0, fill: {color: '#12'}}]", ErrColor},
		{"bad cap", "width: 1\nheight: 1\nnodes: [{kind: path, d: M0 0, stroke: {color: red, cap: pointy}}]", ErrNode},
		{"bad image rect", "width: 1\nheight: 1\nnodes: [{kind: image, href: a.png}]", ErrNode},
		{"nested error", "width: 1\nheight: 1\nnodes: [{kind: group, children: [{kind: blob}]}]", ErrNode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.yaml))
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := Decode(strings.NewReader("width: 1\nheight: 1\ncolour: red")); err == nil {
		t.Error("Decode accepted an unknown field")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(sampleScene), 0o600); err != nil {
		t.Fatal(err)
	}
	tree, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tree.Size.Width != 200 {
		t.Errorf("Size.Width = %v, want 200", tree.Size.Width)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) = nil error")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    svgbox.RGBA
		wantErr bool
	}{
		{in: "#ff0000", want: svgbox.RGB(1, 0, 0)},
		{in: "#0F0", want: svgbox.RGB(0, 1, 0)},
		{in: " Black ", want: svgbox.Black},
		{in: "transparent", want: svgbox.Transparent},
		{in: "#12", wantErr: true},
		{in: "chartreuse", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrColor) {
				t.Errorf("ParseColor(%q) error = %v, want ErrColor", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseColor(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
}

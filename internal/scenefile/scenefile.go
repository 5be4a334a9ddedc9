// Package scenefile decodes YAML scene descriptions into svgbox trees.
//
// A scene is a canvas size, an optional view box and a list of nodes:
//
//	width: 200
//	height: 100
//	viewbox: [0, 0, 200, 100]
//	nodes:
//	  - kind: group
//	    transform: [1, 0, 0, 1, 10, 20]
//	    clip:
//	      - kind: path
//	        d: M0 0 H50 V50 H0 Z
//	        fill: {color: "#000"}
//	    children:
//	      - kind: path
//	        d: M0 0 L100 100
//	        stroke: {color: "#ff0000", width: 4, cap: round}
//	  - kind: image
//	    href: logo.png
//	    rect: [0, 0, 32, 32]
//	  - kind: text
//	    content: Hello
//	    size: 16
//	    x: 10
//	    y: 90
//
// Transforms use the SVG matrix(a b c d e f) order. A transform on a leaf
// node is moved onto a wrapping group, so only groups carry transforms in
// the decoded tree.
package scenefile

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/svgbox"
)

// Scene is the YAML document.
type Scene struct {
	Width   float64   `yaml:"width"`
	Height  float64   `yaml:"height"`
	ViewBox []float64 `yaml:"viewbox,omitempty"`
	Nodes   []Node    `yaml:"nodes"`
}

// Node is one scene node. Kind selects which of the other fields apply.
type Node struct {
	Kind      string    `yaml:"kind"`
	ID        string    `yaml:"id,omitempty"`
	Transform []float64 `yaml:"transform,omitempty"`

	// group
	Opacity  *float64 `yaml:"opacity,omitempty"`
	Children []Node   `yaml:"children,omitempty"`
	Clip     []Node   `yaml:"clip,omitempty"`
	Mask     []Node   `yaml:"mask,omitempty"`

	// path
	D      string  `yaml:"d,omitempty"`
	Fill   *Paint  `yaml:"fill,omitempty"`
	Stroke *Stroke `yaml:"stroke,omitempty"`

	// image
	Href string    `yaml:"href,omitempty"`
	Rect []float64 `yaml:"rect,omitempty"`

	// text
	Content string  `yaml:"content,omitempty"`
	Size    float64 `yaml:"size,omitempty"`
	X       float64 `yaml:"x,omitempty"`
	Y       float64 `yaml:"y,omitempty"`
}

// Paint is a fill.
type Paint struct {
	Color   string   `yaml:"color"`
	Opacity *float64 `yaml:"opacity,omitempty"`
	Rule    string   `yaml:"rule,omitempty"`
}

// Stroke is a stroke paint with its geometry.
type Stroke struct {
	Color      string   `yaml:"color"`
	Opacity    *float64 `yaml:"opacity,omitempty"`
	Width      *float64 `yaml:"width,omitempty"`
	Cap        string   `yaml:"cap,omitempty"`
	Join       string   `yaml:"join,omitempty"`
	MiterLimit *float64 `yaml:"miterlimit,omitempty"`
}

// Load reads and decodes the scene file at path.
func Load(path string) (*svgbox.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scenefile: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a YAML scene from r and builds its tree. Unknown fields
// are rejected.
func Decode(r io.Reader) (*svgbox.Tree, error) {
	var sc Scene
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("scenefile: decode: %w", err)
	}
	return sc.Build()
}

// Build converts the scene into a tree.
func (sc *Scene) Build() (*svgbox.Tree, error) {
	if !(sc.Width > 0) || !(sc.Height > 0) {
		return nil, fmt.Errorf("%w: size %vx%v", ErrNode, sc.Width, sc.Height)
	}
	tree := svgbox.NewTree(sc.Width, sc.Height)
	if sc.ViewBox != nil {
		if len(sc.ViewBox) != 4 || !(sc.ViewBox[2] > 0) || !(sc.ViewBox[3] > 0) {
			return nil, fmt.Errorf("%w: viewbox %v", ErrNode, sc.ViewBox)
		}
		tree.ViewBox = svgbox.RectXYWH(sc.ViewBox[0], sc.ViewBox[1], sc.ViewBox[2], sc.ViewBox[3])
	}
	b := builder{tree: tree}
	for i := range sc.Nodes {
		if err := b.add(tree.Root(), &sc.Nodes[i], "nodes"); err != nil {
			return nil, err
		}
	}
	return tree, nil
}

type builder struct {
	tree *svgbox.Tree
}

// add builds n under parent. Transformed leaves get a wrapping group.
func (b *builder) add(parent svgbox.NodeID, n *Node, where string) error {
	where = fmt.Sprintf("%s/%s", where, n.label())
	ts, err := parseTransform(n.Transform)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNode, where, err)
	}

	if strings.ToLower(n.Kind) == "group" {
		g := svgbox.NewGroup()
		g.ID = n.ID
		g.Transform = ts
		if n.Opacity != nil {
			g.Opacity = *n.Opacity
		}
		if g.ClipPath, err = b.detached(n.Clip, where+"/clip"); err != nil {
			return err
		}
		if g.Mask, err = b.detached(n.Mask, where+"/mask"); err != nil {
			return err
		}
		id := b.tree.Add(parent, g)
		for i := range n.Children {
			if err := b.add(id, &n.Children[i], where); err != nil {
				return err
			}
		}
		return nil
	}

	leaf, err := b.leaf(n, where)
	if err != nil {
		return err
	}
	if !ts.IsIdentity() {
		g := svgbox.NewGroup()
		g.Transform = ts
		parent = b.tree.Add(parent, g)
	}
	b.tree.Add(parent, leaf)
	return nil
}

// detached builds a clip or mask group from nodes. No nodes means none.
func (b *builder) detached(nodes []Node, where string) (svgbox.NodeID, error) {
	if len(nodes) == 0 {
		return svgbox.NoNode, nil
	}
	id := b.tree.AddDetached(svgbox.NewGroup())
	for i := range nodes {
		if err := b.add(id, &nodes[i], where); err != nil {
			return svgbox.NoNode, err
		}
	}
	return id, nil
}

func (b *builder) leaf(n *Node, where string) (svgbox.Node, error) {
	switch strings.ToLower(n.Kind) {
	case "path":
		data, err := ParsePathData(n.D)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", where, err)
		}
		pn := &svgbox.PathNode{ID: n.ID, Data: data}
		if pn.Fill, err = n.Fill.build(); err != nil {
			return nil, fmt.Errorf("%s: fill: %w", where, err)
		}
		if pn.Stroke, err = n.Stroke.build(); err != nil {
			return nil, fmt.Errorf("%s: stroke: %w", where, err)
		}
		return pn, nil
	case "image":
		if len(n.Rect) != 4 {
			return nil, fmt.Errorf("%w: %s: rect needs 4 numbers", ErrNode, where)
		}
		return &svgbox.ImageNode{
			ID:       n.ID,
			Href:     n.Href,
			ViewRect: svgbox.RectXYWH(n.Rect[0], n.Rect[1], n.Rect[2], n.Rect[3]),
		}, nil
	case "text":
		return &svgbox.TextNode{
			ID:       n.ID,
			Content:  n.Content,
			FontSize: n.Size,
			X:        n.X,
			Y:        n.Y,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s: unknown kind %q", ErrNode, where, n.Kind)
	}
}

func (n *Node) label() string {
	if n.ID != "" {
		return n.ID
	}
	return n.Kind
}

// parseTransform reads matrix(a b c d e f). No values is the identity.
func parseTransform(v []float64) (svgbox.Matrix, error) {
	switch len(v) {
	case 0:
		return svgbox.Identity(), nil
	case 6:
		return svgbox.Matrix{A: v[0], B: v[2], C: v[4], D: v[1], E: v[3], F: v[5]}, nil
	default:
		return svgbox.Matrix{}, fmt.Errorf("transform needs 6 numbers, got %d", len(v))
	}
}

// build converts the fill. A nil fill or the color "none" paints nothing.
func (p *Paint) build() (*svgbox.Fill, error) {
	if p == nil || strings.EqualFold(strings.TrimSpace(p.Color), "none") {
		return nil, nil
	}
	c, err := ParseColor(p.Color)
	if err != nil {
		return nil, err
	}
	f := &svgbox.Fill{Color: c, Opacity: 1}
	if p.Opacity != nil {
		f.Opacity = *p.Opacity
	}
	switch strings.ToLower(p.Rule) {
	case "", "nonzero":
	case "evenodd":
		f.Rule = svgbox.FillRuleEvenOdd
	default:
		return nil, fmt.Errorf("%w: fill rule %q", ErrNode, p.Rule)
	}
	return f, nil
}

// build converts the stroke, starting from the SVG initial values.
func (s *Stroke) build() (*svgbox.Stroke, error) {
	if s == nil || strings.EqualFold(strings.TrimSpace(s.Color), "none") {
		return nil, nil
	}
	c, err := ParseColor(s.Color)
	if err != nil {
		return nil, err
	}
	st := svgbox.DefaultStroke()
	st.Color = c
	if s.Opacity != nil {
		st.Opacity = *s.Opacity
	}
	if s.Width != nil {
		st.Width = *s.Width
	}
	if s.MiterLimit != nil {
		st.MiterLimit = *s.MiterLimit
	}
	switch strings.ToLower(s.Cap) {
	case "", "butt":
	case "round":
		st.Cap = svgbox.LineCapRound
	case "square":
		st.Cap = svgbox.LineCapSquare
	default:
		return nil, fmt.Errorf("%w: line cap %q", ErrNode, s.Cap)
	}
	switch strings.ToLower(s.Join) {
	case "", "miter":
	case "round":
		st.Join = svgbox.LineJoinRound
	case "bevel":
		st.Join = svgbox.LineJoinBevel
	default:
		return nil, fmt.Errorf("%w: line join %q", ErrNode, s.Join)
	}
	return &st, nil
}

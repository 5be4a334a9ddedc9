// Package raster is the CPU rasterizer for svgbox trees. Paths are filled
// with golang.org/x/image/vector and images are resampled with
// golang.org/x/image/draw.
//
// Importing the package registers it as the default rasterizer:
//
//	import _ "github.com/gogpu/svgbox/raster"
//
// Fills use the non-zero winding rule. Clip paths and masks are applied
// as coverage of their geometry, and text nodes are not drawn.
package raster

import (
	"errors"
	"image"
	"image/color"
	"log/slog"
	"sync/atomic"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"

	"github.com/gogpu/svgbox"
)

// Name is the name the rasterizer registers under.
const Name = "software"

var errNilTarget = errors.New("raster: nil tree or pixmap")

func init() {
	if err := svgbox.RegisterRasterizer(New()); err != nil {
		panic(err)
	}
}

// Rasterizer draws trees into pixmaps. It is safe for concurrent use.
type Rasterizer struct {
	logger atomic.Pointer[slog.Logger]
}

// New returns a rasterizer logging through svgbox.Logger.
func New() *Rasterizer {
	r := &Rasterizer{}
	r.logger.Store(svgbox.Logger())
	return r
}

// Name implements svgbox.Rasterizer.
func (r *Rasterizer) Name() string {
	return Name
}

// SetLogger replaces the rasterizer's logger. Nil discards output.
func (r *Rasterizer) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	r.logger.Store(l)
}

// Render draws tree into dst, mapping user units to pixels with ts.
func (r *Rasterizer) Render(tree *svgbox.Tree, ts svgbox.Matrix, dst *svgbox.Pixmap) error {
	if tree == nil || dst == nil {
		return errNilTarget
	}
	size := image.Pt(dst.Width(), dst.Height())
	if size.X == 0 || size.Y == 0 {
		return nil
	}
	c := &canvas{
		tree: tree,
		log:  r.logger.Load(),
		size: size,
		z:    vector.NewRasterizer(size.X, size.Y),
	}
	c.node(tree.Root(), ts, dst.RGBA())
	return nil
}

// canvas is the state of one Render call.
type canvas struct {
	tree *svgbox.Tree
	log  *slog.Logger
	size image.Point
	z    *vector.Rasterizer
}

func (c *canvas) node(id svgbox.NodeID, ts svgbox.Matrix, dst draw.Image) {
	n := c.tree.Node(id)
	if n == nil {
		return
	}
	ts = ts.Multiply(n.LocalTransform())
	switch n := n.(type) {
	case *svgbox.Group:
		c.group(n, ts, dst)
	case *svgbox.PathNode:
		c.path(n, ts, dst)
	case *svgbox.ImageNode:
		c.drawImage(n, ts, dst)
	case *svgbox.TextNode:
		c.log.Debug("raster: text node not drawn", "id", n.ID)
	}
}

// group draws the children of g. Children of a translucent or clipped
// group are drawn into a layer first and composited through the clip
// coverage scaled by the group opacity.
func (c *canvas) group(g *svgbox.Group, ts svgbox.Matrix, dst draw.Image) {
	if g.Opacity <= 0 {
		return
	}
	clip := c.clipMask(g, ts)
	if clip == nil && g.Opacity >= 1 {
		for _, ch := range g.Children {
			c.node(ch, ts, dst)
		}
		return
	}

	layer := image.NewRGBA(image.Rectangle{Max: c.size})
	for _, ch := range g.Children {
		c.node(ch, ts, layer)
	}

	var mask image.Image = image.NewUniform(color.Alpha{A: alpha8(g.Opacity)})
	if clip != nil {
		if g.Opacity < 1 {
			for i, a := range clip.Pix {
				clip.Pix[i] = uint8(float64(a)*g.Opacity + 0.5)
			}
		}
		mask = clip
	}
	draw.DrawMask(dst, layer.Rect, layer, image.Point{}, mask, image.Point{}, draw.Over)
}

// clipMask rasterizes the clip path of g, or its mask when there is no
// clip path, into a coverage mask. It returns nil when g has neither.
func (c *canvas) clipMask(g *svgbox.Group, ts svgbox.Matrix) *image.Alpha {
	ref := g.ClipPath
	if ref == svgbox.NoNode {
		ref = g.Mask
	}
	if ref == svgbox.NoNode {
		return nil
	}
	mask := image.NewAlpha(image.Rectangle{Max: c.size})
	c.cover(ref, ts, mask)
	return mask
}

// cover adds the geometry of id to mask regardless of paint.
func (c *canvas) cover(id svgbox.NodeID, ts svgbox.Matrix, mask *image.Alpha) {
	n := c.tree.Node(id)
	if n == nil {
		return
	}
	ts = ts.Multiply(n.LocalTransform())
	switch n := n.(type) {
	case *svgbox.Group:
		for _, ch := range n.Children {
			c.cover(ch, ts, mask)
		}
	case *svgbox.PathNode:
		c.fill(svgbox.BuildOutline(n.Data), ts, mask, image.Opaque)
	case *svgbox.ImageNode:
		p := svgbox.NewPath()
		r := n.ViewRect
		p.Rectangle(r.Min.X, r.Min.Y, r.Width(), r.Height())
		c.fill(svgbox.BuildOutline(p), ts, mask, image.Opaque)
	}
}

func (c *canvas) path(n *svgbox.PathNode, ts svgbox.Matrix, dst draw.Image) {
	o := svgbox.BuildOutline(n.Data)
	if f := n.Fill; f != nil && f.Opacity != 0 {
		c.fill(o, ts, dst, image.NewUniform(f.Color.WithOpacity(f.Opacity).Color()))
	}
	if s := n.Stroke; s != nil && s.Opacity != 0 && s.Width > 0 {
		c.fill(o.Stroke(*s), ts, dst, image.NewUniform(s.Color.WithOpacity(s.Opacity).Color()))
	}
}

// fill composites src over dst inside the area of o mapped through ts.
// Open contours are closed implicitly.
func (c *canvas) fill(o svgbox.Outline, ts svgbox.Matrix, dst draw.Image, src image.Image) {
	if len(o.Contours) == 0 {
		return
	}
	c.z.Reset(c.size.X, c.size.Y)
	for _, ct := range o.Contours {
		for _, seg := range ct.Segments {
			switch e := seg.(type) {
			case svgbox.MoveTo:
				p := ts.TransformPoint(e.Point)
				c.z.MoveTo(float32(p.X), float32(p.Y))
			case svgbox.LineTo:
				p := ts.TransformPoint(e.Point)
				c.z.LineTo(float32(p.X), float32(p.Y))
			case svgbox.QuadTo:
				b := ts.TransformPoint(e.Control)
				p := ts.TransformPoint(e.Point)
				c.z.QuadTo(float32(b.X), float32(b.Y), float32(p.X), float32(p.Y))
			case svgbox.CubicTo:
				b := ts.TransformPoint(e.Control1)
				d := ts.TransformPoint(e.Control2)
				p := ts.TransformPoint(e.Point)
				c.z.CubeTo(float32(b.X), float32(b.Y), float32(d.X), float32(d.Y), float32(p.X), float32(p.Y))
			}
		}
		c.z.ClosePath()
	}
	c.z.Draw(dst, image.Rectangle{Max: c.size}, src, image.Point{})
}

// drawImage resamples a resolved image into its view rectangle.
func (c *canvas) drawImage(n *svgbox.ImageNode, ts svgbox.Matrix, dst draw.Image) {
	if !n.Resolved() {
		c.log.Warn("raster: unresolved image not drawn", "href", n.Href)
		return
	}
	sb := n.Image.Bounds()
	vr := n.ViewRect
	if sb.Empty() || vr.IsEmpty() {
		return
	}
	m := ts.Multiply(svgbox.Translate(vr.Min.X, vr.Min.Y)).
		Multiply(svgbox.Scale(vr.Width()/float64(sb.Dx()), vr.Height()/float64(sb.Dy()))).
		Multiply(svgbox.Translate(-float64(sb.Min.X), -float64(sb.Min.Y)))
	s2d := f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
	draw.BiLinear.Transform(dst, s2d, n.Image, sb, draw.Over, nil)
}

func alpha8(opacity float64) uint8 {
	if opacity >= 1 {
		return 0xff
	}
	return uint8(opacity*0xff + 0.5)
}

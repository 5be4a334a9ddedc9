package svgbox

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/gogpu/svgbox/media"
)

// Document couples a scene tree with its render configuration and exposes
// the bounding box, crop, render and image resolution operations.
//
// Queries may run concurrently. CropByBBox and ResolveImage mutate the tree
// and must not overlap with any other call.
type Document struct {
	tree *Tree
	opts options
}

// NewDocument wraps tree.
func NewDocument(tree *Tree, opts ...Option) *Document {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Document{tree: tree, opts: o}
}

// Tree returns the underlying scene tree.
func (d *Document) Tree() *Tree {
	return d.tree
}

// Width returns the declared output width.
func (d *Document) Width() float64 {
	return d.tree.Size.Width
}

// Height returns the declared output height.
func (d *Document) Height() float64 {
	return d.tree.Size.Height
}

// InnerBBox returns the pixel-snapped box of visible ink. See Tree.InnerBBox.
func (d *Document) InnerBBox() (BBox, bool) {
	return d.tree.InnerBBox()
}

// GetBBox returns the transformed content box. See Tree.GetBBox.
func (d *Document) GetBBox() (BBox, bool) {
	return d.tree.GetBBox()
}

// CropByBBox reframes the document around b by rewriting the view box and
// size; nodes are not moved. The fit policy is the document's. Boxes that
// are not finite or have no area leave the document unchanged and report
// false.
func (d *Document) CropByBBox(b BBox, opts ...CropOption) (CropResult, bool) {
	var o cropOptions
	for _, opt := range opts {
		opt(&o)
	}
	res, ok := ComputeViewport(CropContext{BBox: b, Padding: o.padding}, o.square, d.opts.fitTo, d.opts.resolver)
	if !ok {
		return CropResult{}, false
	}
	d.tree.ApplyCrop(res)
	return res, true
}

// Render paints the document into a new pixmap sized by the fit policy
// and cleared to the background color. When the last crop left nothing to
// draw the cleared pixmap is returned as is. A configured pixel crop is
// applied last and ignored if it does not overlap the pixmap.
func (d *Document) Render() (*Pixmap, error) {
	w, h, fit, err := d.opts.resolver.Resolve(d.opts.fitTo, d.tree.Size)
	if err != nil {
		return nil, fmt.Errorf("svgbox: render: %w", err)
	}
	if !pixmapFits(w, h) {
		return nil, fmt.Errorf("svgbox: render: %w: %dx%d pixmap too large", ErrInvalidSize, w, h)
	}
	log := Logger()

	pm := NewPixmap(w, h)
	pm.Clear(d.opts.background)

	if d.tree.SkipRender {
		log.Debug("svgbox: render skipped", "width", w, "height", h)
	} else {
		r := d.opts.rasterizer
		if r == nil {
			r = DefaultRasterizer()
		}
		if r == nil {
			return nil, ErrNoRasterizer
		}
		ts := fit.Multiply(viewBoxTransform(d.tree.ViewBox, d.tree.Size))
		log.Debug("svgbox: render", "rasterizer", r.Name(), "width", w, "height", h)
		if err := r.Render(d.tree, ts, pm); err != nil {
			return nil, fmt.Errorf("svgbox: render with %s: %w", r.Name(), err)
		}
	}

	return d.applyPixelCrop(pm), nil
}

func (d *Document) applyPixelCrop(pm *Pixmap) *Pixmap {
	c := d.opts.crop
	if c == (PixelCrop{}) {
		return pm
	}
	right, bottom := c.Right, c.Bottom
	if right <= 0 {
		right = pm.Width()
	}
	if bottom <= 0 {
		bottom = pm.Height()
	}
	if right <= c.Left || bottom <= c.Top {
		Logger().Warn("svgbox: empty pixel crop ignored",
			"left", c.Left, "top", c.Top, "right", right, "bottom", bottom)
		return pm
	}
	rect := image.Rect(c.Left, c.Top, right, bottom)
	cropped, ok := pm.Crop(rect)
	if !ok {
		Logger().Warn("svgbox: pixel crop outside the image ignored", "crop", rect)
		return pm
	}
	return cropped
}

// viewBoxTransform maps vb onto a size viewport, scaling uniformly to fit
// and centering on both axes.
func viewBoxTransform(vb Rect, size Size) Matrix {
	if vb.IsEmpty() || !(size.Width > 0) || !(size.Height > 0) {
		return Identity()
	}
	s := math.Min(size.Width/vb.Width(), size.Height/vb.Height())
	tx := (size.Width-vb.Width()*s)/2 - vb.Min.X*s
	ty := (size.Height-vb.Height()*s)/2 - vb.Min.Y*s
	return Translate(tx, ty).Multiply(Scale(s, s))
}

// ImagesToResolve lists the hrefs of image nodes still waiting for data.
// Inline data: URLs are never listed.
func (d *Document) ImagesToResolve() []string {
	var hrefs []string
	d.tree.Walk(func(_ NodeID, n Node) bool {
		if img, ok := n.(*ImageNode); ok && needsData(img) {
			hrefs = append(hrefs, img.Href)
		}
		return true
	})
	return hrefs
}

// ResolveImage decodes data and attaches it to every unresolved image node
// referencing href. An empty href resolves all of them. The error is an
// *ImageError wrapping media.ErrUnsupportedImage, a decode failure or
// ErrImageNotFound.
func (d *Document) ResolveImage(href string, data []byte) error {
	img, mime, err := media.Decode(data)
	if err != nil {
		return &ImageError{Href: href, Err: err}
	}

	n := 0
	d.tree.Walk(func(_ NodeID, node Node) bool {
		in, ok := node.(*ImageNode)
		if !ok || in.Resolved() || (href != "" && in.Href != href) {
			return true
		}
		in.Image = img
		in.MIME = mime
		n++
		return true
	})
	if n == 0 {
		return &ImageError{Href: href, Err: ErrImageNotFound}
	}
	Logger().Debug("svgbox: image resolved", "href", href, "mime", mime, "nodes", n)
	return nil
}

func needsData(n *ImageNode) bool {
	return !n.Resolved() && n.Href != "" && !strings.HasPrefix(n.Href, "data:")
}

package svgbox

import "math"

// minContentSide is the smallest content extent, after padding, that still
// gets a scaled view. Anything smaller produces an empty crop.
const minContentSide = 1.0

// CropContext is the input of a crop: the box to frame and the padding to
// keep around it in output units.
type CropContext struct {
	BBox    BBox
	Padding float64
}

// CropResult is a computed crop: the new view box, the output size and
// whether nothing remains to be drawn.
type CropResult struct {
	View  BBox
	Size  Size
	Empty bool
}

// ComputeViewport derives the view box and output size that frame
// ctx.BBox. It reports false, meaning the tree must be left untouched, when
// the box is not finite or has no area.
//
// Invalid padding counts as zero. With square set the shorter side of the
// box grows to match the longer one around the same center. Under
// FitOriginal the box is used as is. Other policies are resolved by res
// (DefaultResolver when nil) and the box is widened so that, once scaled to
// the target size, padding remains on every side. If padding leaves less
// than one unit of content the result is a 1x1 view just outside the box
// with Empty set. If res fails the box as given, neither squared nor
// padded, is used as view and size.
func ComputeViewport(ctx CropContext, square bool, fit FitTo, res Resolver) (CropResult, bool) {
	b := ctx.BBox
	if !isFinite(b.X) || !isFinite(b.Y) || !isFinite(b.Width) || !isFinite(b.Height) ||
		b.Width <= 0 || b.Height <= 0 {
		return CropResult{}, false
	}
	unsquared := CropResult{View: b, Size: Size{Width: b.Width, Height: b.Height}}
	padding := ctx.Padding
	if !isFinite(padding) || padding < 0 {
		padding = 0
	}

	if square && b.Width != b.Height {
		if b.Width < b.Height {
			b.X -= (b.Height - b.Width) / 2
			b.Width = b.Height
		} else {
			b.Y -= (b.Width - b.Height) / 2
			b.Height = b.Width
		}
	}
	raw := CropResult{View: b, Size: Size{Width: b.Width, Height: b.Height}}

	if fit.Mode == FitOriginal {
		return raw, true
	}
	if res == nil {
		res = DefaultResolver{}
	}
	w, h, _, err := res.Resolve(fit, raw.Size)
	if err != nil {
		return unsquared, true
	}
	target := Size{Width: float64(w), Height: float64(h)}
	if square {
		side := math.Max(target.Width, target.Height)
		switch fit.Mode {
		case FitWidth:
			side = target.Width
		case FitHeight:
			side = target.Height
		}
		target = Size{Width: side, Height: side}
	}

	size := target
	if fit.Mode == FitZoom && fit.Value > 0 {
		size = Size{Width: target.Width / fit.Value, Height: target.Height / fit.Value}
	}

	contentW := math.Max(target.Width-2*padding, 0)
	contentH := math.Max(target.Height-2*padding, 0)
	if contentW < minContentSide || contentH < minContentSide {
		return CropResult{
			View:  BBox{X: b.X + b.Width, Y: b.Y + b.Height, Width: 1, Height: 1},
			Size:  size,
			Empty: true,
		}, true
	}

	vw := b.Width * target.Width / contentW
	vh := b.Height * target.Height / contentH
	c := b.Rect().Center()
	return CropResult{
		View: BBox{X: c.X - vw/2, Y: c.Y - vh/2, Width: vw, Height: vh},
		Size: size,
	}, true
}

// ApplyCrop writes the crop's view box and size to t. SkipRender follows
// the result's Empty flag.
func (t *Tree) ApplyCrop(r CropResult) {
	t.ViewBox = r.View.Rect()
	t.Size = r.Size
	t.SkipRender = r.Empty
}

package svgbox

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
)

// maxPixmapBytes caps the pixel buffer of a single pixmap.
const maxPixmapBytes = math.MaxInt32

// pixmapFits reports whether a width x height pixmap stays within
// maxPixmapBytes.
func pixmapFits(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	return int64(width)*int64(height) <= maxPixmapBytes/4
}

// Pixmap is a rectangular pixel buffer in premultiplied RGBA, 4 bytes per
// pixel, laid out row by row.
type Pixmap struct {
	img *image.RGBA
}

// NewPixmap creates a transparent pixmap. Negative sizes are treated as 0.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{img: image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.img.Rect.Dx()
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.img.Rect.Dy()
}

// Data returns the raw premultiplied pixel data.
func (p *Pixmap) Data() []uint8 {
	return p.img.Pix
}

// RGBA returns an image sharing the pixmap's memory. Drawing into it
// draws into the pixmap.
func (p *Pixmap) RGBA() *image.RGBA {
	return p.img
}

// SetPixel sets the color of a single pixel.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	p.img.Set(x, y, c.Color())
}

// GetPixel returns the color of a single pixel, or Transparent outside
// the pixmap.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if !(image.Point{X: x, Y: y}).In(p.img.Rect) {
		return Transparent
	}
	c := color.NRGBAModel.Convert(p.img.RGBAAt(x, y)).(color.NRGBA)
	return RGBA{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGBA) {
	pc := color.RGBAModel.Convert(c.Color()).(color.RGBA)
	pix := p.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i+0] = pc.R
		pix[i+1] = pc.G
		pix[i+2] = pc.B
		pix[i+3] = pc.A
	}
}

// Crop returns a copy of the pixels inside r. It reports false when r
// does not overlap the pixmap.
func (p *Pixmap) Crop(r image.Rectangle) (*Pixmap, bool) {
	r = r.Intersect(p.img.Rect)
	if r.Empty() {
		return nil, false
	}
	out := NewPixmap(r.Dx(), r.Dy())
	for y := 0; y < r.Dy(); y++ {
		src := p.img.PixOffset(r.Min.X, r.Min.Y+y)
		dst := out.img.PixOffset(0, y)
		copy(out.img.Pix[dst:dst+4*r.Dx()], p.img.Pix[src:src+4*r.Dx()])
	}
	return out, true
}

// EncodePNG writes the pixmap to w as PNG.
func (p *Pixmap) EncodePNG(w io.Writer) error {
	return png.Encode(w, p.img)
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := p.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.img.At(x, y)
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return p.img.Rect
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.RGBAModel
}

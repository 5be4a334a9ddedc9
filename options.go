package svgbox

// Option configures a Document during creation.
//
// Example:
//
//	doc := svgbox.NewDocument(tree,
//	    svgbox.WithFitTo(svgbox.Width(512)),
//	    svgbox.WithBackground(svgbox.White),
//	)
type Option func(*options)

// options holds optional configuration for a Document.
type options struct {
	fitTo      FitTo
	background RGBA
	crop       PixelCrop
	rasterizer Rasterizer
	resolver   Resolver
}

// defaultOptions returns the default document options.
func defaultOptions() options {
	return options{
		fitTo:      Original(),
		background: Transparent,
		resolver:   DefaultResolver{}, // rasterizer falls back to the registry
	}
}

// WithFitTo sets the policy that maps the declared size to the rendered
// pixel size. It also drives CropByBBox.
func WithFitTo(fit FitTo) Option {
	return func(o *options) {
		o.fitTo = fit
	}
}

// WithBackground sets the color rendered pixmaps are cleared to.
func WithBackground(c RGBA) Option {
	return func(o *options) {
		o.background = c
	}
}

// WithPixelCrop cuts rendered pixmaps down to c.
func WithPixelCrop(c PixelCrop) Option {
	return func(o *options) {
		o.crop = c
	}
}

// WithRasterizer sets the rasterizer used by Render instead of the
// registered one.
func WithRasterizer(r Rasterizer) Option {
	return func(o *options) {
		o.rasterizer = r
	}
}

// WithResolver replaces the fit policy resolver.
func WithResolver(r Resolver) Option {
	return func(o *options) {
		if r != nil {
			o.resolver = r
		}
	}
}

// PixelCrop is a rectangle in output pixels. Right and Bottom default to
// the pixmap edges when zero or negative.
type PixelCrop struct {
	Left, Top     int
	Right, Bottom int
}

// CropOption configures a CropByBBox call.
type CropOption func(*cropOptions)

type cropOptions struct {
	padding float64
	square  bool
}

// WithPadding keeps p output units of space around the cropped box.
func WithPadding(p float64) CropOption {
	return func(o *cropOptions) {
		o.padding = p
	}
}

// WithSquare forces the cropped view to be square.
func WithSquare(square bool) CropOption {
	return func(o *cropOptions) {
		o.square = square
	}
}

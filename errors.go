package svgbox

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize is returned when a fit policy cannot produce a
	// positive, finite pixel size.
	ErrInvalidSize = errors.New("svgbox: invalid size")

	// ErrNoRasterizer is returned by Render when no rasterizer was
	// configured or registered.
	ErrNoRasterizer = errors.New("svgbox: no rasterizer registered")

	// ErrImageNotFound is returned by ResolveImage when no unresolved
	// image node references the given href.
	ErrImageNotFound = errors.New("svgbox: no unresolved image with this href")
)

// ImageError records a failure to resolve the image data for an href.
type ImageError struct {
	Href string
	Err  error
}

func (e *ImageError) Error() string {
	return fmt.Sprintf("svgbox: resolve image %q: %v", e.Href, e.Err)
}

func (e *ImageError) Unwrap() error {
	return e.Err
}

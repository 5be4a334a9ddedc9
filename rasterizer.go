package svgbox

import (
	"errors"
	"sync"
)

// Rasterizer paints a scene tree into a pixmap.
//
// Implementations are provided by separate packages and registered from
// their init function. Users opt in with a blank import:
//
//	import _ "github.com/gogpu/svgbox/raster" // software rasterizer
type Rasterizer interface {
	// Name identifies the implementation in logs.
	Name() string

	// Render paints the root of tree into dst. transform maps root
	// coordinates to pixmap pixels; the view box mapping is already in it.
	Render(tree *Tree, transform Matrix, dst *Pixmap) error
}

var (
	rasterMu   sync.RWMutex
	rasterizer Rasterizer
)

// RegisterRasterizer makes r the default rasterizer. Subsequent calls
// replace the previous one.
func RegisterRasterizer(r Rasterizer) error {
	if r == nil {
		return errors.New("svgbox: rasterizer must not be nil")
	}
	rasterMu.Lock()
	rasterizer = r
	rasterMu.Unlock()

	if ls, ok := r.(loggerSetter); ok {
		ls.SetLogger(Logger())
	}
	return nil
}

// DefaultRasterizer returns the registered rasterizer, or nil if none.
func DefaultRasterizer() Rasterizer {
	rasterMu.RLock()
	r := rasterizer
	rasterMu.RUnlock()
	return r
}

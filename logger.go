package svgbox

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for svgbox and its sub-packages.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Bounding box and crop computations never log. Rendering, image
// resolution and the registered rasterizer do:
//   - [slog.LevelDebug]: render sizes, skipped renders, resolved images
//   - [slog.LevelWarn]: ignored pixel crops, unresolved image nodes
//
// Example:
//
//	svgbox.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
//
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	if r := DefaultRasterizer(); r != nil {
		if ls, ok := r.(loggerSetter); ok {
			ls.SetLogger(l)
		}
	}
}

// Logger returns the current logger. Sub-packages call this to share the
// same configuration without an import cycle.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by rasterizers that keep their own logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

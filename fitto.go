package svgbox

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FitMode selects how a source size maps to an output pixel size.
type FitMode int

const (
	// FitOriginal keeps the source size.
	FitOriginal FitMode = iota
	// FitWidth scales to Value pixels wide, keeping the aspect ratio.
	FitWidth
	// FitHeight scales to Value pixels high, keeping the aspect ratio.
	FitHeight
	// FitZoom scales both sides by Value.
	FitZoom
)

// String returns the mode name used by ParseFitTo.
func (m FitMode) String() string {
	switch m {
	case FitOriginal:
		return "original"
	case FitWidth:
		return "width"
	case FitHeight:
		return "height"
	case FitZoom:
		return "zoom"
	default:
		return fmt.Sprintf("FitMode(%d)", int(m))
	}
}

// FitTo is a fit policy. The zero value keeps the original size.
type FitTo struct {
	Mode  FitMode
	Value float64
}

// Original returns the policy that keeps the source size.
func Original() FitTo { return FitTo{Mode: FitOriginal} }

// Width returns the policy that scales to px pixels wide.
func Width(px float64) FitTo { return FitTo{Mode: FitWidth, Value: px} }

// Height returns the policy that scales to px pixels high.
func Height(px float64) FitTo { return FitTo{Mode: FitHeight, Value: px} }

// Zoom returns the policy that scales both sides by scale.
func Zoom(scale float64) FitTo { return FitTo{Mode: FitZoom, Value: scale} }

// String formats f in the syntax accepted by ParseFitTo.
func (f FitTo) String() string {
	if f.Mode == FitOriginal {
		return f.Mode.String()
	}
	return f.Mode.String() + "=" + strconv.FormatFloat(f.Value, 'g', -1, 64)
}

// ParseFitTo parses "original", "width=N", "height=N" or "zoom=N".
func ParseFitTo(s string) (FitTo, error) {
	name, value, hasValue := strings.Cut(strings.TrimSpace(s), "=")
	name = strings.ToLower(name)
	if name == "original" || name == "" {
		if hasValue {
			return FitTo{}, fmt.Errorf("svgbox: fit policy %q takes no value", s)
		}
		return Original(), nil
	}

	var mode FitMode
	switch name {
	case "width":
		mode = FitWidth
	case "height":
		mode = FitHeight
	case "zoom":
		mode = FitZoom
	default:
		return FitTo{}, fmt.Errorf("svgbox: unknown fit policy %q", s)
	}
	if !hasValue {
		return FitTo{}, fmt.Errorf("svgbox: fit policy %q needs a value", s)
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return FitTo{}, fmt.Errorf("svgbox: fit policy %q: %w", s, err)
	}
	return FitTo{Mode: mode, Value: v}, nil
}

// Resolver maps a source size and a fit policy to an output pixel size and
// the transform that scales the source onto it.
type Resolver interface {
	Resolve(fit FitTo, size Size) (width, height int, transform Matrix, err error)
}

// DefaultResolver rounds the source size up to whole pixels and scales it
// according to the policy. Width and Height keep the aspect ratio, rounding
// the derived side up; Zoom rounds both sides to the nearest pixel.
type DefaultResolver struct{}

// Resolve implements Resolver. It returns ErrInvalidSize when the source
// size, the policy value or the result is not positive and finite.
func (DefaultResolver) Resolve(fit FitTo, size Size) (int, int, Matrix, error) {
	w, h, ok := intSize(size.Width, size.Height, math.Ceil)
	if !ok {
		return 0, 0, Matrix{}, fmt.Errorf("%w: source %gx%g", ErrInvalidSize, size.Width, size.Height)
	}

	var tw, th int
	switch fit.Mode {
	case FitOriginal:
		return w, h, Identity(), nil
	case FitWidth:
		tw, th, ok = intSize(math.Ceil(fit.Value), math.Ceil(fit.Value*float64(h)/float64(w)), math.Ceil)
	case FitHeight:
		tw, th, ok = intSize(math.Ceil(fit.Value*float64(w)/float64(h)), math.Ceil(fit.Value), math.Ceil)
	case FitZoom:
		tw, th, ok = intSize(float64(w)*fit.Value, float64(h)*fit.Value, math.Round)
		if ok {
			return tw, th, Scale(fit.Value, fit.Value), nil
		}
	default:
		ok = false
	}
	if !ok || !(fit.Value > 0) {
		return 0, 0, Matrix{}, fmt.Errorf("%w: %v of %gx%g", ErrInvalidSize, fit, size.Width, size.Height)
	}
	return tw, th, Scale(float64(tw)/size.Width, float64(th)/size.Height), nil
}

// maxPixelSide bounds resolved sizes so they always fit in an int.
const maxPixelSide = 1 << 24

func intSize(w, h float64, round func(float64) float64) (int, int, bool) {
	w, h = round(w), round(h)
	if !(w >= 1 && h >= 1 && w <= maxPixelSide && h <= maxPixelSide) {
		return 0, 0, false
	}
	return int(w), int(h), true
}

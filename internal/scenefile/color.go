package scenefile

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/svgbox"
)

// namedColors holds the few keywords scene files use besides hex values.
var namedColors = map[string]svgbox.RGBA{
	"black":       svgbox.Black,
	"white":       svgbox.White,
	"transparent": svgbox.Transparent,
	"red":         svgbox.RGB(1, 0, 0),
	"green":       svgbox.RGB(0, 128.0/255, 0),
	"blue":        svgbox.RGB(0, 0, 1),
}

// ParseColor parses "#rgb", "#rrggbb" or one of a few color keywords.
func ParseColor(s string) (svgbox.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return svgbox.RGBA{}, fmt.Errorf("%w: %q", ErrColor, s)
	}
	r, g, b := c.Clamped().RGB255()
	return svgbox.RGB(float64(r)/255, float64(g)/255, float64(b)/255), nil
}

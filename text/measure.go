package text

import (
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/svgbox"
	"github.com/gogpu/svgbox/internal/cache"
)

// advanceCacheSize bounds the number of shaped runs a Measurer remembers.
const advanceCacheSize = 1024

// Direction is the paragraph direction of a run.
type Direction int

const (
	// DirectionLTR is left-to-right text.
	DirectionLTR Direction = iota
	// DirectionRTL is right-to-left text.
	DirectionRTL
)

// String returns the direction name.
func (d Direction) String() string {
	if d == DirectionRTL {
		return "rtl"
	}
	return "ltr"
}

// Extents are the measured dimensions of a run at a given size.
type Extents struct {
	// Advance is the horizontal pen advance of the whole run.
	Advance float64

	// Ascent and Descent are the font's distances above and below the
	// baseline, both positive.
	Ascent  float64
	Descent float64

	Direction Direction
}

// Height returns Ascent + Descent.
func (e Extents) Height() float64 {
	return e.Ascent + e.Descent
}

// Measurer shapes and measures runs of one font. Shaped advances are
// cached per run and size. It is safe for concurrent use.
type Measurer struct {
	source   *FontSource
	advances *cache.LRU[runKey, float64]
}

type runKey struct {
	text string
	size float64
}

// NewMeasurer returns a measurer for source.
func NewMeasurer(source *FontSource) (*Measurer, error) {
	if source == nil {
		return nil, ErrNilSource
	}
	return &Measurer{
		source:   source,
		advances: cache.New[runKey, float64](advanceCacheSize),
	}, nil
}

// Measure shapes s at size pixels per em. An empty run or a non-positive
// size measures zero.
func (m *Measurer) Measure(s string, size float64) Extents {
	runes := []rune(s)
	if len(runes) == 0 || !(size > 0) {
		return Extents{}
	}
	dir := DetectDirection(s)
	e := Extents{
		Advance: m.advances.GetOrCreate(runKey{text: s, size: size}, func() float64 {
			return m.shape(runes, dir, size)
		}),
		Direction: dir,
	}

	var buf sfnt.Buffer
	if metrics, err := m.source.metrics.Metrics(&buf, toFixed(size), xfont.HintingNone); err == nil {
		e.Ascent = fromFixed(metrics.Ascent)
		e.Descent = fromFixed(metrics.Descent)
	}
	return e
}

// shape returns the absolute advance of runes shaped at size.
func (m *Measurer) shape(runes []rune, dir Direction, size float64) float64 {
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: shapingDirection(dir),
		Face:      font.NewFace(m.source.shapeFont),
		Size:      toFixed(size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}
	hb := m.source.shapers.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	m.source.shapers.Put(hb)

	adv := fromFixed(out.Advance)
	if adv < 0 {
		adv = -adv
	}
	return adv
}

// Box returns the layout box of n in its own user space: Advance wide and
// Ascent + Descent tall, on the baseline at (X, Y). Right-to-left runs end
// at X. It reports false for empty runs or a non-positive font size.
func (m *Measurer) Box(n *svgbox.TextNode) (svgbox.Rect, bool) {
	e := m.Measure(n.Content, n.FontSize)
	if e.Advance <= 0 || e.Height() <= 0 {
		return svgbox.Rect{}, false
	}
	x := n.X
	if e.Direction == DirectionRTL {
		x -= e.Advance
	}
	return svgbox.RectXYWH(x, n.Y-e.Ascent, e.Advance, e.Height()), true
}

// Annotate sets BBox on every text node of tree that can be measured and
// returns how many were set. Boxes already present are replaced.
func Annotate(tree *svgbox.Tree, m *Measurer) int {
	count := 0
	tree.Walk(func(_ svgbox.NodeID, n svgbox.Node) bool {
		tn, ok := n.(*svgbox.TextNode)
		if !ok {
			return true
		}
		if r, ok := m.Box(tn); ok {
			tn.BBox = &r
			count++
		} else {
			tn.BBox = nil
		}
		return true
	})
	svgbox.Logger().Debug("text: annotated", "nodes", count)
	return count
}

// DetectDirection returns the direction of the first strong character of
// s, or DirectionLTR when there is none.
func DetectDirection(s string) Direction {
	for _, r := range s {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			return DirectionLTR
		case bidi.R, bidi.AL:
			return DirectionRTL
		}
	}
	return DirectionLTR
}

func shapingDirection(d Direction) di.Direction {
	if d == DirectionRTL {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

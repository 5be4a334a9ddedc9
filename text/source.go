package text

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// FontSource is a parsed font file. It is heavyweight, immutable once
// created and safe for concurrent use.
type FontSource struct {
	name string

	// shapeFont is read-only and shared by all shaping calls. Faces built
	// from it are not safe for concurrent use and are created per call.
	shapeFont *font.Font

	// metrics serves vertical metrics. sfnt.Font is safe for concurrent
	// use when every call brings its own buffer.
	metrics *sfnt.Font

	shapers sync.Pool
}

// NewFontSource parses TTF or OTF data. The data slice is not retained.
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	data = bytes.Clone(data)

	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	metrics, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: parse font metrics: %w", err)
	}

	s := &FontSource{
		shapeFont: face.Font,
		metrics:   metrics,
	}
	s.shapers.New = func() any { return &shaping.HarfbuzzShaper{} }
	if name, err := metrics.Name(nil, sfnt.NameIDFamily); err == nil {
		s.name = name
	}
	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string) (*FontSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: read font: %w", err)
	}
	return NewFontSource(data)
}

// Name returns the font family name, or "" when the font has none.
func (s *FontSource) Name() string {
	return s.name
}

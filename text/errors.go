package text

import "errors"

var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrNilSource is returned when a measurer is built without a font.
	ErrNilSource = errors.New("text: nil font source")
)

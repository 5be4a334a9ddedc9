package scenefile

import "errors"

var (
	// ErrPathData is returned for malformed path data.
	ErrPathData = errors.New("scenefile: bad path data")

	// ErrColor is returned for colors that cannot be parsed.
	ErrColor = errors.New("scenefile: bad color")

	// ErrNode is returned for nodes with an unknown kind or bad fields.
	ErrNode = errors.New("scenefile: bad node")
)

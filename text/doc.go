// Package text measures text runs so text nodes can take part in bounding
// box computations.
//
// A FontSource parses a TrueType or OpenType font once and is shared.
// A Measurer shapes runs with go-text/typesetting's HarfBuzz port and reads
// vertical metrics from golang.org/x/image/font/sfnt:
//
//	source, err := text.NewFontSource(goregular.TTF)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m, err := text.NewMeasurer(source)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	n := text.Annotate(tree, m) // fills TextNode.BBox
//
// The paragraph direction of a run follows the first strong character, as
// classified by golang.org/x/text/unicode/bidi. Right-to-left runs end at
// the anchor instead of starting there.
package text

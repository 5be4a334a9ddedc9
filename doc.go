// Package svgbox computes bounding boxes of SVG scene trees and reframes
// documents around them.
//
// # Overview
//
// A Tree holds an already-parsed SVG document: groups, paths, raster images
// and text runs, each with its own local transform. Two box queries are
// offered on top of it:
//
//   - InnerBBox reports the visible ink in pixel units, honoring clip paths
//     and masks, clamped to the canvas and snapped outward to whole pixels.
//   - GetBBox reports the transformed geometry in user units, the way a
//     browser's getBBox does, ignoring clipping.
//
// # Quick Start
//
//	tree := svgbox.NewTree(200, 100)
//	tree.Add(tree.Root(), &svgbox.PathNode{
//		Data: path,
//		Fill: &svgbox.Fill{Color: svgbox.Black, Opacity: 1},
//	})
//
//	doc := svgbox.NewDocument(tree, svgbox.WithFitTo(svgbox.Width(512)))
//	if b, ok := doc.InnerBBox(); ok {
//		doc.CropByBBox(b, svgbox.WithPadding(8))
//	}
//	pm, err := doc.Render()
//
// # Cropping
//
// CropByBBox never moves nodes. It rewrites the view box and output size so
// the box fills the output with the requested padding, following the
// document's fit policy (original, width, height or zoom).
//
// # Rendering
//
// Render delegates drawing to a Rasterizer, either passed with
// WithRasterizer or registered globally by importing a rasterizer package:
//
//	import _ "github.com/gogpu/svgbox/raster"
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
package svgbox

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)

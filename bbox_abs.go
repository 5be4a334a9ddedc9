package svgbox

import "math"

// GetBBox returns the box covering all content in root coordinates, with
// every transform applied before extents are taken, like the DOM getBBox.
// Clip paths and masks are ignored and no rounding is applied.
//
// Stroke extents are approximate: the half width is scaled by
// sqrt(|det|) of the accumulated transform and added on both axes, which
// is exact only for similarity transforms. Quadratic segments are bounded
// as cubics with the control point doubled, which can exceed the curve.
//
// Text contributes through TextNode.BBox. It reports false when nothing
// contributes.
func (t *Tree) GetBBox() (BBox, bool) {
	r, ok := t.nodeAbsBounds(t.root, t.RootGroup().Transform)
	if !ok {
		return BBox{}, false
	}
	return BBoxFromRect(r), true
}

// nodeAbsBounds returns the bounds of id in root coordinates. ts already
// includes the node's own transform.
func (t *Tree) nodeAbsBounds(id NodeID, ts Matrix) (Rect, bool) {
	switch n := t.Node(id).(type) {
	case *PathNode:
		return pathAbsBounds(n, ts)
	case *Group:
		var acc bounds
		for _, c := range n.Children {
			child := t.Node(c)
			if child == nil {
				continue
			}
			if r, ok := t.nodeAbsBounds(c, childTransform(ts, child)); ok {
				acc.addRect(r)
			}
		}
		return acc.rect()
	case *ImageNode:
		return ts.TransformRect(n.ViewRect), true
	case *TextNode:
		if n.BBox == nil {
			return Rect{}, false
		}
		return ts.TransformRect(*n.BBox), true
	default:
		return Rect{}, false
	}
}

// childTransform composes the parent transform with the child's own.
func childTransform(parent Matrix, child Node) Matrix {
	m := child.LocalTransform()
	if m.IsIdentity() {
		return parent
	}
	return parent.PreConcat(m)
}

// pathAbsBounds maps the path into ts space first and then takes segment
// extents. Quadratics are bounded as cubics with a doubled control point.
func pathAbsBounds(n *PathNode, ts Matrix) (Rect, bool) {
	strk := strokeVisible(n.Stroke)
	if !fillVisible(n.Fill) && !strk {
		return Rect{}, false
	}
	if n.Data == nil || n.Data.Len() == 0 {
		return Rect{}, false
	}

	var acc bounds
	addSegmentBounds(&acc, n.Data.Transform(ts).Elements(), true)
	if strk {
		w := strokeHalfWidth(n.Stroke.Width, ts)
		acc.inflate(w, w)
	}
	return acc.rect()
}

// strokeHalfWidth approximates half the stroke width after ts.
func strokeHalfWidth(width float64, ts Matrix) float64 {
	if ts.IsIdentity() {
		return width / 2
	}
	return width / (2 / math.Sqrt(math.Abs(ts.Determinant())))
}

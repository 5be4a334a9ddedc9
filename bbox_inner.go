package svgbox

import "math"

// InnerBBox returns the box covering all visible ink under the root,
// clipped to the view box. Clip paths and masks restrict their groups.
// The result is snapped outward to whole units: the minimum corner is
// floored and the maximum corner ceiled.
//
// Text nodes do not contribute. It reports false when nothing is visible.
func (t *Tree) InnerBBox() (BBox, bool) {
	var acc bounds
	for _, c := range t.RootGroup().Children {
		r, ok := t.nodeInnerBounds(c)
		if !ok {
			continue
		}
		if r, ok = r.Intersect(t.ViewBox); ok {
			acc.addRect(r)
		}
	}
	r, ok := acc.rect()
	if !ok {
		return BBox{}, false
	}
	minX, minY := math.Floor(r.Min.X), math.Floor(r.Min.Y)
	return BBox{
		X:      minX,
		Y:      minY,
		Width:  math.Ceil(r.Max.X) - minX,
		Height: math.Ceil(r.Max.Y) - minY,
	}, true
}

// nodeInnerBounds returns the bounds of id in its parent's space: the
// local bounds mapped through the node's own transform.
func (t *Tree) nodeInnerBounds(id NodeID) (Rect, bool) {
	var (
		r  Rect
		ok bool
	)
	n := t.Node(id)
	switch n := n.(type) {
	case *PathNode:
		o, visible := PathOutline(n)
		if !visible {
			return Rect{}, false
		}
		r, ok = o.Bounds()
	case *Group:
		r, ok = t.groupInnerBounds(n)
	case *ImageNode:
		r, ok = n.ViewRect, true
	case *TextNode:
		return Rect{}, false
	default:
		return Rect{}, false
	}
	if !ok {
		return Rect{}, false
	}
	if m := n.LocalTransform(); !m.IsIdentity() {
		r = m.TransformRect(r)
	}
	return r, true
}

func (t *Tree) groupInnerBounds(g *Group) (Rect, bool) {
	clip, ok := t.groupClipRect(g)
	if !ok {
		return Rect{}, false
	}

	var acc bounds
	for _, c := range g.Children {
		r, ok := t.nodeInnerBounds(c)
		if !ok {
			continue
		}
		if r, ok = r.Intersect(clip); ok {
			acc.addRect(r)
		}
	}
	r, ok := acc.rect()
	if !ok {
		return Rect{}, false
	}
	return r.Intersect(t.sizeRect())
}

// groupClipRect returns the region children of g are restricted to: the
// bounds of the clip path's first child, else of the mask's first child,
// else the whole canvas. A clip or mask whose region is invisible leaves
// nothing.
func (t *Tree) groupClipRect(g *Group) (Rect, bool) {
	if first := t.FirstChild(g.ClipPath); first != NoNode {
		return t.nodeInnerBounds(first)
	}
	if first := t.FirstChild(g.Mask); first != NoNode {
		return t.nodeInnerBounds(first)
	}
	return t.sizeRect(), true
}

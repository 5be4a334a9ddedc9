package svgbox

import (
	"fmt"
	"image"
)

// NodeID addresses a node inside a Tree. The zero value is NoNode.
type NodeID int

// NoNode is the absent node reference.
const NoNode NodeID = 0

// Node is one of *Group, *PathNode, *ImageNode or *TextNode.
type Node interface {
	// LocalTransform returns the node's own transform.
	LocalTransform() Matrix

	isNode()
}

// Group is a container node. ClipPath and Mask reference detached groups
// whose first child approximates the clip or mask region.
type Group struct {
	ID        string
	Transform Matrix
	Opacity   float64
	Children  []NodeID
	ClipPath  NodeID
	Mask      NodeID
}

// PathNode is a vector path with optional fill and stroke paints.
type PathNode struct {
	ID        string
	Transform Matrix
	Data      *Path
	Fill      *Fill
	Stroke    *Stroke
}

// ImageNode is a raster image placed into ViewRect. Image is nil until the
// referenced data has been decoded.
type ImageNode struct {
	ID        string
	Transform Matrix
	ViewRect  Rect
	Href      string
	MIME      string
	Image     image.Image
}

// Resolved reports whether the image has decoded pixel data.
func (n *ImageNode) Resolved() bool {
	return n.Image != nil
}

// TextNode is a run of text anchored at the baseline point (X, Y). Its
// bounds are supplied by a text layout stage through BBox.
type TextNode struct {
	ID        string
	Transform Matrix
	Content   string
	FontSize  float64
	X, Y      float64
	BBox      *Rect
}

func (g *Group) LocalTransform() Matrix     { return g.Transform }
func (n *PathNode) LocalTransform() Matrix  { return n.Transform }
func (n *ImageNode) LocalTransform() Matrix { return n.Transform }
func (n *TextNode) LocalTransform() Matrix  { return n.Transform }

func (*Group) isNode()     {}
func (*PathNode) isNode()  {}
func (*ImageNode) isNode() {}
func (*TextNode) isNode()  {}

// NewGroup returns an empty group with an identity transform and full
// opacity.
func NewGroup() *Group {
	return &Group{Transform: Identity(), Opacity: 1}
}

// Tree is a scene graph stored as an arena of nodes. Children are kept as
// index lists; nodes never reference their parents.
//
// A Tree is safe for concurrent reads. Mutations such as Add, ApplyCrop or
// image resolution must not overlap with any other access.
type Tree struct {
	nodes []Node
	root  NodeID

	// ViewBox is the visible region in user units.
	ViewBox Rect

	// Size is the declared output size.
	Size Size

	// SkipRender is set when the last crop left nothing to draw.
	SkipRender bool
}

// NewTree creates a tree with an empty root group, a view box of
// (0, 0, width, height) and a size of width x height.
func NewTree(width, height float64) *Tree {
	t := &Tree{
		ViewBox: RectXYWH(0, 0, width, height),
		Size:    Size{Width: width, Height: height},
	}
	t.root = t.AddDetached(NewGroup())
	return t
}

// Root returns the id of the root group.
func (t *Tree) Root() NodeID {
	return t.root
}

// RootGroup returns the root group.
func (t *Tree) RootGroup() *Group {
	return t.nodes[t.root-1].(*Group)
}

// Len returns the number of nodes in the arena, detached ones included.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the node for id, or nil if id does not address a node.
func (t *Tree) Node(id NodeID) Node {
	if id <= NoNode || int(id) > len(t.nodes) {
		return nil
	}
	return t.nodes[id-1]
}

// Group returns the group for id, or nil if id is not a group.
func (t *Tree) Group(id NodeID) *Group {
	g, _ := t.Node(id).(*Group)
	return g
}

// Add appends n as the last child of parent and returns its id.
// It panics if parent is not a group, like an out of range index would.
func (t *Tree) Add(parent NodeID, n Node) NodeID {
	g := t.Group(parent)
	if g == nil {
		panic(fmt.Sprintf("svgbox: Add to node %d which is not a group", parent))
	}
	id := t.AddDetached(n)
	g.Children = append(g.Children, id)
	return id
}

// AddDetached stores n without attaching it to any parent. Clip paths and
// masks are built this way and referenced from a Group.
//
// A zero Transform on n is replaced by the identity.
func (t *Tree) AddDetached(n Node) NodeID {
	switch n := n.(type) {
	case *Group:
		identityIfZero(&n.Transform)
	case *PathNode:
		identityIfZero(&n.Transform)
	case *ImageNode:
		identityIfZero(&n.Transform)
	case *TextNode:
		identityIfZero(&n.Transform)
	}
	t.nodes = append(t.nodes, n)
	return NodeID(len(t.nodes))
}

// FirstChild returns the first child of the group id, or NoNode.
func (t *Tree) FirstChild(id NodeID) NodeID {
	g := t.Group(id)
	if g == nil || len(g.Children) == 0 {
		return NoNode
	}
	return g.Children[0]
}

// Walk visits every node reachable from the root through group children in
// depth-first order, the root first. Returning false from fn skips the
// node's children. Clip and mask groups are not visited.
func (t *Tree) Walk(fn func(id NodeID, n Node) bool) {
	t.walk(t.root, fn)
}

func (t *Tree) walk(id NodeID, fn func(NodeID, Node) bool) {
	n := t.Node(id)
	if n == nil || !fn(id, n) {
		return
	}
	if g, ok := n.(*Group); ok {
		for _, c := range g.Children {
			t.walk(c, fn)
		}
	}
}

func identityIfZero(m *Matrix) {
	if *m == (Matrix{}) {
		*m = Identity()
	}
}

// sizeRect is the (0, 0, Size) rectangle groups are clamped to.
func (t *Tree) sizeRect() Rect {
	return RectXYWH(0, 0, t.Size.Width, t.Size.Height)
}

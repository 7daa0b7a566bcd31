package graphview

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// HitShape is used for custom hit testing regions in local coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// EdgeGeometry is the pair of endpoint positions an edge visual was built from.
type EdgeGeometry struct {
	Source, Target Vec2
}

// Midpoint returns the point halfway between the endpoints.
func (g EdgeGeometry) Midpoint() Vec2 {
	return g.Source.Lerp(g.Target, 0.5)
}

// nodeIDCounter is a plain counter; the scene is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the fundamental scene element and the visual handle of a graph
// entity. A single flat struct is used for all node types to avoid interface
// dispatch on the hot path.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// EntityID and Kind tag the handle of a graph entity. Both are zero for
	// structural nodes (layers, stage) and style sub-parts.
	EntityID string
	Kind     EntityKind

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Visibility
	Alpha   float64
	Visible bool
	Color   Color

	// Sprite fields (NodeTypeSprite)
	Image *ebiten.Image

	// Mesh fields (NodeTypeMesh)
	Vertices         []ebiten.Vertex
	Indices          []uint16
	transformedVerts []ebiten.Vertex

	// Text fields (NodeTypeText)
	Label *Label

	// Interaction
	Interactable bool
	Draggable    bool
	Selectable   bool
	HitShape     HitShape

	// Filters applied to the rendered subtree.
	Filters []Filter

	// Size is the content extent of an entity handle, centered on X/Y.
	Size Vec2
	// Geometry is set on edge handles.
	Geometry *EdgeGeometry
	// Decal and Arrow are the optional midpoint marker and head of an edge.
	Decal *Node
	Arrow *Node

	UserData any

	disposed bool
}

func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.worldTransform = identityTransform
	n.worldAlpha = 1
	n.transformDirty = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewSprite creates a sprite node drawing img (WhitePixel when nil).
func NewSprite(name string, img *ebiten.Image) *Node {
	if img == nil {
		img = WhitePixel
	}
	n := &Node{Name: name, Type: NodeTypeSprite, Image: img}
	nodeDefaults(n)
	return n
}

// NewMesh creates a mesh node that uses DrawTriangles for rendering.
func NewMesh(name string, vertices []ebiten.Vertex, indices []uint16) *Node {
	n := &Node{
		Name:     name,
		Type:     NodeTypeMesh,
		Vertices: vertices,
		Indices:  indices,
	}
	nodeDefaults(n)
	return n
}

// NewText creates a text node for the given label.
func NewText(name string, label *Label) *Node {
	n := &Node{Name: name, Type: NodeTypeText, Label: label}
	nodeDefaults(n)
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("graphview: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("graphview: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("graphview: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	clear(n.children)
	n.children = n.children[:0]
}

// MoveToTop re-appends this node at the end of its parent's children so it
// draws above its siblings. No-op without a parent.
func (n *Node) MoveToTop() {
	p := n.Parent
	if p == nil {
		return
	}
	if len(p.children) > 0 && p.children[len(p.children)-1] == n {
		return
	}
	p.removeChildByPtr(n)
	p.children = append(p.children, n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// IndexOf returns the position of child among n's children, or -1.
func (n *Node) IndexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.HitShape = nil
	n.Filters = nil
	n.Image = nil
	n.Vertices = nil
	n.Indices = nil
	n.transformedVerts = nil
	n.Label = nil
	n.Decal = nil
	n.Arrow = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}

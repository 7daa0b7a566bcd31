package graphview

// Layer is an ordered container of entity handles. Child order is draw
// order; a handle belongs to exactly one layer at a time.
type Layer struct {
	node     *Node
	kind     EntityKind
	selected bool
}

func newLayer(name string, kind EntityKind, selected bool) *Layer {
	return &Layer{node: NewContainer(name), kind: kind, selected: selected}
}

// Node returns the container node backing the layer.
func (l *Layer) Node() *Node { return l.node }

// Kind returns the entity kind the layer holds.
func (l *Layer) Kind() EntityKind { return l.kind }

// Selected reports whether this is a selection overlay layer.
func (l *Layer) Selected() bool { return l.selected }

// Len returns the number of handles in the layer.
func (l *Layer) Len() int { return l.node.NumChildren() }

// Contains reports whether h is a direct member of the layer.
func (l *Layer) Contains(h *Node) bool { return h != nil && h.Parent == l.node }

// Attach appends h to the layer, detaching it from any previous parent.
// A handle already in this layer keeps its position.
func (l *Layer) Attach(h *Node) {
	if h.Parent == l.node {
		return
	}
	l.node.AddChild(h)
}

// Detach removes h if it is a member. No-op otherwise.
func (l *Layer) Detach(h *Node) {
	if h.Parent == l.node {
		l.node.RemoveChild(h)
	}
}

// Replace puts h in old's place in the draw order. If old is not a member,
// h is appended instead.
func (l *Layer) Replace(old, h *Node) {
	if old == h {
		return
	}
	h.RemoveFromParent()
	i := l.node.IndexOf(old)
	if i < 0 {
		l.Attach(h)
		return
	}
	old.Parent = nil
	markSubtreeDirty(old)
	l.node.children[i] = h
	h.Parent = l.node
	markSubtreeDirty(h)
}

// IDs returns the entity ids of the layer's handles in draw order.
func (l *Layer) IDs() []string {
	ids := make([]string, 0, l.node.NumChildren())
	for _, c := range l.node.children {
		ids = append(ids, c.EntityID)
	}
	return ids
}

// layerSet holds the normal and selected layer for one kind.
type layerSet struct {
	normal   *Layer
	selected *Layer
}

func (s layerSet) pick(selected bool) *Layer {
	if selected {
		return s.selected
	}
	return s.normal
}

// detach removes h from both candidate layers.
func (s layerSet) detach(h *Node) {
	s.normal.Detach(h)
	s.selected.Detach(h)
}

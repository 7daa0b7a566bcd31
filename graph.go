package graphview

import (
	"errors"
	"fmt"
	"iter"
)

// NodeRef is a graph vertex as seen by the view.
type NodeRef interface {
	ID() string
}

// EdgeRef is a graph edge as seen by the view.
type EdgeRef interface {
	ID() string
	SourceID() string
	TargetID() string
}

// Graph is the read-only graph model the view mirrors. The view never
// mutates it; callers mutate their graph and then tell the view.
type Graph interface {
	Nodes() iter.Seq[NodeRef]
	Edges() iter.Seq[EdgeRef]
	Node(id string) (NodeRef, bool)
	Edge(id string) (EdgeRef, bool)
	// IncidentEdges yields the ids of edges with nodeID as an endpoint.
	IncidentEdges(nodeID string) iter.Seq[string]
}

// Layout supplies node positions. Layouts are computed elsewhere.
type Layout interface {
	Positions() iter.Seq2[string, Vec2]
	Position(id string) (Vec2, bool)
}

var (
	// ErrNodeExists is returned by MemGraph.AddNode for a duplicate id.
	ErrNodeExists = errors.New("graphview: node already exists")
	// ErrEdgeExists is returned by MemGraph.AddEdge for a duplicate id.
	ErrEdgeExists = errors.New("graphview: edge already exists")
	// ErrMissingEndpoint is returned by MemGraph.AddEdge when an endpoint
	// node is not in the graph.
	ErrMissingEndpoint = errors.New("graphview: edge endpoint not in graph")
)

type memNode struct {
	id string
}

func (n memNode) ID() string { return n.id }

type memEdge struct {
	id, source, target string
}

func (e memEdge) ID() string       { return e.id }
func (e memEdge) SourceID() string { return e.source }
func (e memEdge) TargetID() string { return e.target }

// MemGraph is an in-memory Graph keeping insertion order.
type MemGraph struct {
	nodeOrder []string
	nodes     map[string]memNode
	edgeOrder []string
	edges     map[string]memEdge
	incident  map[string][]string
}

// NewMemGraph creates an empty graph.
func NewMemGraph() *MemGraph {
	return &MemGraph{
		nodes:    make(map[string]memNode),
		edges:    make(map[string]memEdge),
		incident: make(map[string][]string),
	}
}

// AddNode adds a vertex.
func (g *MemGraph) AddNode(id string) error {
	if _, ok := g.nodes[id]; ok {
		return fmt.Errorf("%w: %q", ErrNodeExists, id)
	}
	g.nodes[id] = memNode{id: id}
	g.nodeOrder = append(g.nodeOrder, id)
	return nil
}

// AddEdge adds an edge between two existing vertices.
func (g *MemGraph) AddEdge(id, source, target string) error {
	if _, ok := g.edges[id]; ok {
		return fmt.Errorf("%w: %q", ErrEdgeExists, id)
	}
	for _, end := range [2]string{source, target} {
		if _, ok := g.nodes[end]; !ok {
			return fmt.Errorf("%w: edge %q node %q", ErrMissingEndpoint, id, end)
		}
	}
	g.edges[id] = memEdge{id: id, source: source, target: target}
	g.edgeOrder = append(g.edgeOrder, id)
	g.incident[source] = append(g.incident[source], id)
	if target != source {
		g.incident[target] = append(g.incident[target], id)
	}
	return nil
}

// RemoveNode deletes a vertex and every edge touching it.
func (g *MemGraph) RemoveNode(id string) {
	if _, ok := g.nodes[id]; !ok {
		return
	}
	for _, eid := range append([]string(nil), g.incident[id]...) {
		g.RemoveEdge(eid)
	}
	delete(g.nodes, id)
	delete(g.incident, id)
	g.nodeOrder = removeString(g.nodeOrder, id)
}

// RemoveEdge deletes an edge. Unknown ids are ignored.
func (g *MemGraph) RemoveEdge(id string) {
	e, ok := g.edges[id]
	if !ok {
		return
	}
	delete(g.edges, id)
	g.edgeOrder = removeString(g.edgeOrder, id)
	g.incident[e.source] = removeString(g.incident[e.source], id)
	g.incident[e.target] = removeString(g.incident[e.target], id)
}

// NodeCount returns the number of vertices.
func (g *MemGraph) NodeCount() int { return len(g.nodeOrder) }

// EdgeCount returns the number of edges.
func (g *MemGraph) EdgeCount() int { return len(g.edgeOrder) }

// Nodes yields vertices in insertion order.
func (g *MemGraph) Nodes() iter.Seq[NodeRef] {
	return func(yield func(NodeRef) bool) {
		for _, id := range g.nodeOrder {
			if !yield(g.nodes[id]) {
				return
			}
		}
	}
}

// Edges yields edges in insertion order.
func (g *MemGraph) Edges() iter.Seq[EdgeRef] {
	return func(yield func(EdgeRef) bool) {
		for _, id := range g.edgeOrder {
			if !yield(g.edges[id]) {
				return
			}
		}
	}
}

// Node looks up a vertex.
func (g *MemGraph) Node(id string) (NodeRef, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, false
	}
	return n, true
}

// Edge looks up an edge.
func (g *MemGraph) Edge(id string) (EdgeRef, bool) {
	e, ok := g.edges[id]
	if !ok {
		return nil, false
	}
	return e, true
}

// IncidentEdges yields edge ids touching nodeID in insertion order.
func (g *MemGraph) IncidentEdges(nodeID string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, id := range g.incident[nodeID] {
			if !yield(id) {
				return
			}
		}
	}
}

func removeString(s []string, v string) []string {
	for i, x := range s {
		if x == v {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

// MapLayout is a Layout backed by a map, iterated in insertion order.
type MapLayout struct {
	order []string
	pos   map[string]Vec2
}

// NewMapLayout creates an empty layout.
func NewMapLayout() *MapLayout {
	return &MapLayout{pos: make(map[string]Vec2)}
}

// Set places id at p.
func (l *MapLayout) Set(id string, p Vec2) {
	if _, ok := l.pos[id]; !ok {
		l.order = append(l.order, id)
	}
	l.pos[id] = p
}

// Delete removes id from the layout.
func (l *MapLayout) Delete(id string) {
	if _, ok := l.pos[id]; !ok {
		return
	}
	delete(l.pos, id)
	l.order = removeString(l.order, id)
}

// Len returns the number of placed ids.
func (l *MapLayout) Len() int { return len(l.order) }

// Positions yields placed ids in insertion order.
func (l *MapLayout) Positions() iter.Seq2[string, Vec2] {
	return func(yield func(string, Vec2) bool) {
		for _, id := range l.order {
			if !yield(id, l.pos[id]) {
				return
			}
		}
	}
}

// Position looks up id.
func (l *MapLayout) Position(id string) (Vec2, bool) {
	p, ok := l.pos[id]
	return p, ok
}

package graphview

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
)

// Document is a graph, its layout and its styles as read from a TOML file:
//
//	[graph]
//	background = "#101418"
//	[graph.default_node]
//	fill = "#e0e8f0"
//
//	[[nodes]]
//	id = "a"
//	x = 100
//	y = 80
//	[nodes.style.label]
//	text = "A"
//
//	[[edges]]
//	source = "a"
//	target = "b"
//
// Every table is decoded onto the defaults, so a key left out keeps its
// default value. Per-entity styles are decoded onto the document's default
// node or edge style.
type Document struct {
	Graph   GraphConfig
	Filters FilterConfig
	Nodes   []DocumentNode
	Edges   []DocumentEdge
}

// DocumentNode is one [[nodes]] entry.
type DocumentNode struct {
	ID string
	// Position is nil when the entry has no x/y.
	Position *Vec2
	Style    NodeStyle
}

// DocumentEdge is one [[edges]] entry. Edges without an id get a random
// UUID.
type DocumentEdge struct {
	ID     string
	Source string
	Target string
	Style  EdgeStyle
}

type rawDocument struct {
	Graph   GraphConfig  `toml:"graph"`
	Filters FilterConfig `toml:"filters"`
	Nodes   []rawNode    `toml:"nodes"`
	Edges   []rawEdge    `toml:"edges"`
}

type rawNode struct {
	ID    string         `toml:"id"`
	X     *float64       `toml:"x"`
	Y     *float64       `toml:"y"`
	Style map[string]any `toml:"style"`
}

type rawEdge struct {
	ID     string         `toml:"id"`
	Source string         `toml:"source"`
	Target string         `toml:"target"`
	Style  map[string]any `toml:"style"`
}

// overlay decodes a style table onto a copy of base.
func overlay[T any](base T, table map[string]any) (T, error) {
	if len(table) == 0 {
		return base, nil
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(table); err != nil {
		return base, err
	}
	out := base
	if _, err := toml.Decode(buf.String(), &out); err != nil {
		return base, err
	}
	return out, nil
}

// ParseDocument decodes a TOML document.
func ParseDocument(data []byte) (*Document, error) {
	raw := rawDocument{Graph: DefaultGraphConfig()}
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	doc := &Document{Graph: raw.Graph, Filters: raw.Filters}
	for i, n := range raw.Nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("parse document: node %d: missing id", i)
		}
		style, err := overlay(raw.Graph.DefaultNode, n.Style)
		if err != nil {
			return nil, fmt.Errorf("parse document: node %q style: %w", n.ID, err)
		}
		dn := DocumentNode{ID: n.ID, Style: style}
		if n.X != nil || n.Y != nil {
			var p Vec2
			if n.X != nil {
				p.X = *n.X
			}
			if n.Y != nil {
				p.Y = *n.Y
			}
			dn.Position = &p
		}
		doc.Nodes = append(doc.Nodes, dn)
	}
	for i, e := range raw.Edges {
		if e.Source == "" || e.Target == "" {
			return nil, fmt.Errorf("parse document: edge %d: missing source or target", i)
		}
		id := e.ID
		if id == "" {
			id = uuid.NewString()
		}
		style, err := overlay(raw.Graph.DefaultEdge, e.Style)
		if err != nil {
			return nil, fmt.Errorf("parse document: edge %q style: %w", id, err)
		}
		doc.Edges = append(doc.Edges, DocumentEdge{ID: id, Source: e.Source, Target: e.Target, Style: style})
	}
	return doc, nil
}

// LoadDocument reads and decodes a TOML document file.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	return ParseDocument(data)
}

// Build returns the document's graph and a config carrying its settings,
// styles and layout. Collaborators (renderer-side scheduler, logger,
// metrics) are left for the caller to fill in.
func (d *Document) Build() (*MemGraph, Config, error) {
	g := NewMemGraph()
	layout := NewMapLayout()
	cfg := DefaultConfig()
	cfg.Graph = d.Graph
	cfg.Filters = d.Filters
	cfg.Layout = layout
	cfg.NodeStyles = make(map[string]NodeStyle, len(d.Nodes))
	cfg.EdgeStyles = make(map[string]EdgeStyle, len(d.Edges))

	for _, n := range d.Nodes {
		if err := g.AddNode(n.ID); err != nil {
			return nil, Config{}, err
		}
		if n.Position != nil {
			layout.Set(n.ID, *n.Position)
		}
		cfg.NodeStyles[n.ID] = n.Style
	}
	for _, e := range d.Edges {
		if err := g.AddEdge(e.ID, e.Source, e.Target); err != nil {
			return nil, Config{}, err
		}
		cfg.EdgeStyles[e.ID] = e.Style
	}
	if err := cfg.Validate(); err != nil {
		return nil, Config{}, err
	}
	return g, cfg, nil
}

package graph

import (
	"fmt"
)

// =============================================================================
// Serialization - Node-Link Format
// =============================================================================

// Document is the canonical serialization format for graphs: a node-link
// structure with per-node and per-edge attributes. Used for files, API
// request bodies, caching, and storage.
//
// The format is human-readable and round-trips: import -> export -> re-import
// produces an identical graph, including node and edge order.
type Document struct {
	Directed bool      `json:"directed,omitempty" bson:"directed,omitempty"`
	Nodes    []NodeDoc `json:"nodes" bson:"nodes"`
	Edges    []EdgeDoc `json:"edges" bson:"edges"`
}

// NodeDoc is a serialized node.
type NodeDoc struct {
	ID    string `json:"id" bson:"id"`
	Attrs Attrs  `json:"attrs,omitempty" bson:"attrs,omitempty"`
}

// EdgeDoc is a serialized edge. Parallel edges appear once per occurrence.
type EdgeDoc struct {
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
	Attrs  Attrs  `json:"attrs,omitempty" bson:"attrs,omitempty"`
}

// Export converts a graph to its serialization format, preserving insertion
// order for nodes and edges.
func Export(g *Graph) Document {
	doc := Document{
		Directed: g.Directed(),
		Nodes:    make([]NodeDoc, 0, g.NodeCount()),
		Edges:    make([]EdgeDoc, 0, g.EdgeCount()),
	}
	for _, id := range g.Nodes() {
		attrs := g.NodeAttrs(id)
		if len(attrs) == 0 {
			attrs = nil
		}
		doc.Nodes = append(doc.Nodes, NodeDoc{ID: id, Attrs: attrs})
	}
	for _, e := range g.Edges() {
		attrs := e.Attrs
		if len(attrs) == 0 {
			attrs = nil
		}
		doc.Edges = append(doc.Edges, EdgeDoc{Source: e.From, Target: e.To, Attrs: attrs})
	}
	return doc
}

// Build converts a serialized document back into a graph.
func Build(doc Document) (*Graph, error) {
	g := New()
	if doc.Directed {
		g = NewDirected()
	}
	for _, n := range doc.Nodes {
		if err := g.AddNode(n.ID, n.Attrs); err != nil {
			return nil, fmt.Errorf("add node %s: %w", n.ID, err)
		}
	}
	for _, e := range doc.Edges {
		if err := g.AddEdge(e.Source, e.Target, e.Attrs); err != nil {
			return nil, fmt.Errorf("add edge %s-%s: %w", e.Source, e.Target, err)
		}
	}
	return g, nil
}

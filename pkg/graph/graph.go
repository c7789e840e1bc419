package graph

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] and [Graph.AddEdge]
	// when a node ID is empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists. Node IDs are unique; edges are not.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownNode is returned by attribute accessors when the node does
	// not exist in the graph.
	ErrUnknownNode = errors.New("unknown node")
)

// Attrs stores arbitrary key-value pairs attached to a node or an edge.
// Attribute values round-trip through JSON, so numeric values read back
// from a file arrive as float64. Attrs maps are never nil after AddNode
// or AddEdge.
type Attrs map[string]any

// Keys returns the attribute names in sorted order, so consumers that
// format attributes stay deterministic.
func (a Attrs) Keys() []string {
	return slices.Sorted(maps.Keys(a))
}

// Edge is a single connection between two nodes. In an undirected graph
// From/To carry no orientation beyond insertion order. Parallel edges are
// allowed: the same endpoint pair may appear any number of times, each
// occurrence with its own attributes.
type Edge struct {
	From  string
	To    string
	Attrs Attrs
}

// Graph is an attributed multigraph with stable insertion order.
//
// Nodes and edges iterate in the order they were added, which makes every
// derived artifact (layouts, traces, serialized files) deterministic for a
// fixed construction sequence. Self-loops and parallel edges are permitted.
//
// The zero value is not usable - use New or NewDirected.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	directed bool
	order    []string
	attrs    map[string]Attrs
	edges    []Edge
	degree   map[string]int
}

// New creates an empty undirected graph.
func New() *Graph {
	return &Graph{
		attrs:  make(map[string]Attrs),
		degree: make(map[string]int),
	}
}

// NewDirected creates an empty directed graph.
func NewDirected() *Graph {
	g := New()
	g.directed = true
	return g
}

// Directed reports whether edges carry direction.
func (g *Graph) Directed() bool { return g.directed }

// AddNode adds a node with optional attributes.
// Returns ErrInvalidNodeID for an empty ID and ErrDuplicateNodeID if the
// node already exists.
func (g *Graph) AddNode(id string, attrs Attrs) error {
	if id == "" {
		return ErrInvalidNodeID
	}
	if _, ok := g.attrs[id]; ok {
		return ErrDuplicateNodeID
	}
	if attrs == nil {
		attrs = Attrs{}
	}
	g.order = append(g.order, id)
	g.attrs[id] = attrs
	return nil
}

// AddEdge adds an edge with optional attributes. Endpoints that are not in
// the graph yet are created on the fly with empty attributes, so edge lists
// can be ingested without a separate node pass.
func (g *Graph) AddEdge(from, to string, attrs Attrs) error {
	if from == "" || to == "" {
		return ErrInvalidNodeID
	}
	for _, id := range []string{from, to} {
		if !g.HasNode(id) {
			if err := g.AddNode(id, nil); err != nil {
				return err
			}
		}
	}
	if attrs == nil {
		attrs = Attrs{}
	}
	g.edges = append(g.edges, Edge{From: from, To: to, Attrs: attrs})
	// A self-loop contributes 2 to the node's degree.
	g.degree[from]++
	g.degree[to]++
	return nil
}

// HasNode reports whether the node exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.attrs[id]
	return ok
}

// Nodes returns node IDs in insertion order. The slice is a copy.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Edges returns all edges in insertion order. The slice is a copy; the
// attribute maps are shared.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges, counting parallel edges
// individually.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Degree returns the number of edge endpoints incident to the node.
// Self-loops count twice; for directed graphs this is in-degree plus
// out-degree. Unknown nodes have degree 0.
func (g *Graph) Degree(id string) int { return g.degree[id] }

// Attr returns a single node attribute value.
func (g *Graph) Attr(id, key string) (any, bool) {
	a, ok := g.attrs[id]
	if !ok {
		return nil, false
	}
	v, ok := a[key]
	return v, ok
}

// SetAttr sets a single node attribute. Returns ErrUnknownNode if the node
// does not exist.
func (g *Graph) SetAttr(id, key string, value any) error {
	a, ok := g.attrs[id]
	if !ok {
		return ErrUnknownNode
	}
	a[key] = value
	return nil
}

// NodeAttrs returns the attribute map for a node, or nil if the node does
// not exist. The map is shared, not copied.
func (g *Graph) NodeAttrs(id string) Attrs {
	return g.attrs[id]
}

// Clone returns a deep copy of the graph. Attribute values are copied
// shallowly (the maps themselves are fresh).
func (g *Graph) Clone() *Graph {
	out := &Graph{
		directed: g.directed,
		order:    make([]string, len(g.order)),
		attrs:    make(map[string]Attrs, len(g.attrs)),
		edges:    make([]Edge, len(g.edges)),
		degree:   make(map[string]int, len(g.degree)),
	}
	copy(out.order, g.order)
	for id, a := range g.attrs {
		out.attrs[id] = maps.Clone(a)
	}
	for i, e := range g.edges {
		out.edges[i] = Edge{From: e.From, To: e.To, Attrs: maps.Clone(e.Attrs)}
	}
	maps.Copy(out.degree, g.degree)
	return out
}

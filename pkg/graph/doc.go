// Package graph provides the attributed multigraph that netplot plots.
//
// A [Graph] is a set of nodes and edges with arbitrary key-value attributes
// on both. Graphs may be directed or undirected and allow self-loops and
// parallel edges. Iteration order is insertion order, which keeps layouts
// and serialized output deterministic.
//
// # Serialization
//
// Graphs serialize to a node-link JSON document:
//
//	{
//	  "directed": true,
//	  "nodes": [{"id": "A", "attrs": {"mass": 4}}, {"id": "B"}],
//	  "edges": [{"source": "A", "target": "B", "attrs": {"weight": 1}}]
//	}
//
// Use [ReadFile]/[WriteFile] for files and [Marshal]/[Unmarshal] for bytes.
// The same document shape is accepted by the netplot HTTP API and stored by
// the figure store, so the struct types carry bson tags as well.
//
// # Positions
//
// Layout algorithms never write to the graph. A caller that already has
// coordinates can attach them as a "pos" node attribute (a two-element
// array); pkg/layout picks those up and skips recomputation.
package graph

// Package pkg provides the core libraries for netplot graph visualization.
//
// # Overview
//
// Netplot turns attributed graphs into interactive Plotly figures. The pkg
// directory is organized along the pipeline:
//
//	Node-link JSON document
//	         ↓
//	    [graph] package (attributed multigraph + serialization)
//	         ↓
//	    [layout] package (2D position computation)
//	         ↓
//	    [plot] package (Plotly trace building + figure assembly)
//	         ↓
//	    JSON / HTML / DOT / SVG / PNG output
//
// # Quick Start
//
// Load a graph and plot it:
//
//	import (
//	    "github.com/fleckenm/netplot/pkg/graph"
//	    "github.com/fleckenm/netplot/pkg/plot"
//	)
//
//	g, _ := graph.ReadFile("network.json")
//	fig, _ := plot.Plot(g, plot.Options{Layout: "spring"})
//	data, _ := fig.MarshalIndent()
//
// # Main Packages
//
// [graph] - Attributed multigraph with stable insertion order, node and edge
// attribute maps, and node-link JSON (de)serialization.
//
// [layout] - Layout algorithms: random, circular, spring, spectral,
// kamada, planar, and spiral. All layouts return positions without touching
// the input graph.
//
// [plot] - Trace building (edge lines, node markers, hover markers) and
// figure assembly with sizing and coloring policies.
//
// [figure] - Typed Plotly figure schema with JSON marshaling and a
// standalone HTML page writer.
//
// [render] - Graphviz-based DOT, SVG, and PNG output with pinned positions.
//
// [pipeline] - The complete load → layout → figure → render pipeline with
// per-stage caching, used by the CLI and the HTTP API.
//
// [cache] - File, Redis, and null cache backends with content-hash keys.
//
// [store] - Saved-graph persistence (memory, MongoDB) for the HTTP API.
//
// [graph]: https://pkg.go.dev/github.com/fleckenm/netplot/pkg/graph
// [layout]: https://pkg.go.dev/github.com/fleckenm/netplot/pkg/layout
// [plot]: https://pkg.go.dev/github.com/fleckenm/netplot/pkg/plot
// [figure]: https://pkg.go.dev/github.com/fleckenm/netplot/pkg/figure
// [render]: https://pkg.go.dev/github.com/fleckenm/netplot/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/fleckenm/netplot/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/fleckenm/netplot/pkg/cache
// [store]: https://pkg.go.dev/github.com/fleckenm/netplot/pkg/store
package pkg

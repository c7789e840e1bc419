// Package plot turns an attributed graph plus a layout choice into a
// Plotly figure: an edge line trace, a node marker trace, and an invisible
// midpoint trace carrying edge hover text.
package plot

import (
	"fmt"

	"github.com/fleckenm/netplot/pkg/figure"
	"github.com/fleckenm/netplot/pkg/graph"
	"github.com/fleckenm/netplot/pkg/layout"
)

// Plot renders the graph into a complete figure. Positions come from the
// layout named in opts, from the nodes' "pos" attributes, or from the
// random layout, in that order of preference; the input graph is never
// modified. Directed graphs additionally get one arrow annotation per
// edge pointing from source to target.
func Plot(g *graph.Graph, opts Options) (*figure.Figure, error) {
	opts = opts.withDefaults()
	if err := validateValueLists(g, opts); err != nil {
		return nil, err
	}

	pos, err := layout.Apply(g, opts.Layout, layout.Options{Seed: opts.Seed, Iterations: opts.Iterations})
	if err != nil {
		return nil, fmt.Errorf("apply layout: %w", err)
	}

	edge, node, middle, err := BuildTraces(g, pos, opts)
	if err != nil {
		return nil, fmt.Errorf("build traces: %w", err)
	}

	return Assemble(g, pos, edge, node, middle, opts), nil
}

// validateValueLists rejects explicit size or color lists whose length
// does not match the node count, instead of emitting a malformed trace.
func validateValueLists(g *graph.Graph, opts Options) error {
	n := g.NodeCount()
	if s, ok := opts.Sizing.(sizeValues); ok && len(s.values) != n {
		return fmt.Errorf("sizes: got %d values for %d nodes: %w", len(s.values), n, ErrValueCount)
	}
	if c, ok := opts.Coloring.(colorValues); ok && len(c.values) != n {
		return fmt.Errorf("colors: got %d values for %d nodes: %w", len(c.values), n, ErrValueCount)
	}
	return nil
}

// Assemble wraps the three traces and the display settings into the final
// figure. Pure data composition, no error paths.
func Assemble(g *graph.Graph, pos layout.Positions, edge, node, middle figure.Trace, opts Options) *figure.Figure {
	annotations := []figure.Annotation{{
		Text:      opts.AnnotationText,
		ShowArrow: false,
		XRef:      "paper",
		YRef:      "paper",
		X:         0.005,
		Y:         -0.002,
	}}

	if g.Directed() {
		for _, e := range g.Edges() {
			from, to := pos[e.From], pos[e.To]
			ax, ay := from.X, from.Y
			annotations = append(annotations, figure.Annotation{
				ShowArrow: true,
				ArrowHead: 1,
				XRef:      "x",
				YRef:      "y",
				X:         to.X,
				Y:         to.Y,
				AXRef:     "x",
				AYRef:     "y",
				AX:        &ax,
				AY:        &ay,
			})
		}
	}

	return &figure.Figure{
		Data: []figure.Trace{edge, node, middle},
		Layout: figure.Layout{
			Title:       &figure.Title{Text: opts.Title, Font: &figure.Font{Size: opts.TitleFontSize}},
			ShowLegend:  opts.ShowLegend,
			HoverMode:   "closest",
			Margin:      &figure.Margin{B: 20, L: 5, R: 5, T: 40},
			Annotations: annotations,
			XAxis:       figure.HiddenAxis(),
			YAxis:       figure.HiddenAxis(),
		},
	}
}

// Package render converts graphs to Graphviz DOT and rasterized outputs.
//
// The primary interactive output of netplot is the Plotly figure produced
// by the plot package; this package covers the static export path: DOT
// text for interop with Graphviz tooling, and SVG/PNG files rendered
// through the Graphviz engine.
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/fleckenm/netplot/pkg/graph"
	"github.com/fleckenm/netplot/pkg/layout"
)

// Options configures DOT generation.
type Options struct {
	// Positions pins nodes to precomputed coordinates. When nil, Graphviz
	// runs its own placement.
	Positions layout.Positions

	// Detailed includes node attributes in labels.
	// When false, only the node ID is shown.
	Detailed bool
}

// ToDOT converts a graph to Graphviz DOT format. Undirected graphs emit
// "graph" blocks with "--" edges, directed graphs "digraph" with "->".
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
func ToDOT(g *graph.Graph, opts Options) string {
	kind, connector := "graph", "--"
	if g.Directed() {
		kind, connector = "digraph", "->"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s G {\n", kind)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for _, id := range g.Nodes() {
		attrs := fmtNodeAttrs(g, id, opts)
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q %s %q;\n", e.From, connector, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtNodeAttrs(g *graph.Graph, id string, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(g, id, opts.Detailed))}
	if opts.Positions != nil {
		if p, ok := opts.Positions[id]; ok {
			// Trailing ! pins the node for neato-compatible engines.
			attrs = append(attrs, fmt.Sprintf("pos=\"%.4f,%.4f!\"", p.X, p.Y))
		}
	}
	return attrs
}

func fmtLabel(g *graph.Graph, id string, detailed bool) string {
	if !detailed {
		return id
	}
	parts := []string{fmt.Sprintf("degree: %d", g.Degree(id))}
	na := g.NodeAttrs(id)
	for _, k := range na.Keys() {
		if k == layout.PosAttr {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %v", k, na[k]))
	}
	return id + "\n" + strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display.
func RenderSVG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG)
}

func renderFormat(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if format == graphviz.SVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg tag so the image scales to its
// container instead of keeping Graphviz's absolute point sizes.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

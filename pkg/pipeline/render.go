package pipeline

import (
	"fmt"

	"github.com/fleckenm/netplot/pkg/figure"
	"github.com/fleckenm/netplot/pkg/graph"
	"github.com/fleckenm/netplot/pkg/layout"
	"github.com/fleckenm/netplot/pkg/render"
)

// Render generates one output artifact in the requested format.
//
// The JSON and HTML formats serialize the Plotly figure; the DOT, SVG, and
// PNG formats go through Graphviz with the computed positions pinned, so
// all formats show the same drawing.
func Render(g *graph.Graph, pos layout.Positions, fig *figure.Figure, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return fig.MarshalIndent()
	case FormatHTML:
		return figure.RenderHTML(fig)
	case FormatDOT:
		return []byte(render.ToDOT(g, render.Options{Positions: pos, Detailed: opts.Detailed})), nil
	case FormatSVG:
		dot := render.ToDOT(g, render.Options{Positions: pos, Detailed: opts.Detailed})
		return render.RenderSVG(dot)
	case FormatPNG:
		dot := render.ToDOT(g, render.Options{Positions: pos, Detailed: opts.Detailed})
		return render.RenderPNG(dot)
	default:
		return nil, fmt.Errorf("invalid format: %q", format)
	}
}

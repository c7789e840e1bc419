package plot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fleckenm/netplot/pkg/figure"
	"github.com/fleckenm/netplot/pkg/graph"
	"github.com/fleckenm/netplot/pkg/layout"
)

// Sentinel errors for trace building.
var (
	// ErrMissingPosition is returned when a node has no computed or
	// caller-supplied coordinate.
	ErrMissingPosition = errors.New("node has no position")

	// ErrMissingAttribute is returned when a sizing, coloring, or hover
	// policy names an attribute a node does not carry.
	ErrMissingAttribute = errors.New("node attribute missing")

	// ErrValueCount is returned when an explicit size or color list does
	// not have one entry per node.
	ErrValueCount = errors.New("value list length does not match node count")
)

// BuildTraces walks the graph once per node and once per edge, producing
// the three scatter traces of a node-link drawing:
//
//   - the edge trace, one continuous line series with a null gap after each
//     edge's endpoint pair
//   - the node trace, one marker per node with hover text, size, and color
//     per the configured policies
//   - the middle trace, one invisible marker per connected node pair
//     carrying the aggregated edge attributes as hover text
//
// The middle trace stays empty unless Options.ShowEdgeText is set.
func BuildTraces(g *graph.Graph, pos layout.Positions, opts Options) (edge, node, middle figure.Trace, err error) {
	edge = figure.Trace{
		Type:      "scatter",
		Mode:      "lines",
		Line:      &figure.Line{Width: 2, Color: "#888"},
		HoverInfo: "text",
		X:         []*figure.Coord{},
		Y:         []*figure.Coord{},
	}
	opacity := 0.0
	middle = figure.Trace{
		Type:      "scatter",
		Mode:      "markers",
		HoverInfo: "text",
		Marker:    &figure.Marker{Opacity: &opacity},
		X:         []*figure.Coord{},
		Y:         []*figure.Coord{},
	}

	// Aggregated attributes per unordered node pair, insertion ordered so
	// hover entries track first sight of each pair and each key.
	props := make(map[string]*pairProps)
	var pairOrder []string

	for _, e := range g.Edges() {
		from, ok := pos[e.From]
		if !ok {
			return edge, node, middle, fmt.Errorf("edge %s-%s: %q: %w", e.From, e.To, e.From, ErrMissingPosition)
		}
		to, ok := pos[e.To]
		if !ok {
			return edge, node, middle, fmt.Errorf("edge %s-%s: %q: %w", e.From, e.To, e.To, ErrMissingPosition)
		}

		edge.X = append(edge.X, figure.F(from.X), figure.F(to.X), nil)
		edge.Y = append(edge.Y, figure.F(from.Y), figure.F(to.Y), nil)

		if !opts.ShowEdgeText {
			continue
		}
		key := pairID(e.From, e.To)
		pp, seen := props[key]
		if !seen {
			pp = &pairProps{values: make(map[string][]any)}
			props[key] = pp
			pairOrder = append(pairOrder, key)
			middle.X = append(middle.X, figure.F((from.X+to.X)/2))
			middle.Y = append(middle.Y, figure.F((from.Y+to.Y)/2))
		}
		for _, k := range e.Attrs.Keys() {
			if _, tracked := pp.values[k]; !tracked {
				pp.keys = append(pp.keys, k)
			}
			pp.values[k] = append(pp.values[k], e.Attrs[k])
		}
	}

	if opts.ShowEdgeText {
		middle.Text = make([]string, 0, len(pairOrder))
		for _, key := range pairOrder {
			middle.Text = append(middle.Text, formatPairText(props[key]))
		}
	}

	node, err = buildNodeTrace(g, pos, opts)
	return edge, node, middle, err
}

func buildNodeTrace(g *graph.Graph, pos layout.Positions, opts Options) (figure.Trace, error) {
	nodes := g.Nodes()
	node := figure.Trace{
		Type:      "scatter",
		Mode:      "markers",
		HoverInfo: "text",
		X:         make([]*figure.Coord, 0, len(nodes)),
		Y:         make([]*figure.Coord, 0, len(nodes)),
		Text:      make([]string, 0, len(nodes)),
	}

	for _, id := range nodes {
		p, ok := pos[id]
		if !ok {
			return node, fmt.Errorf("node %q: %w", id, ErrMissingPosition)
		}
		node.X = append(node.X, figure.F(p.X))
		node.Y = append(node.Y, figure.F(p.Y))

		text := fmt.Sprintf("Node: %s<br>Degree: %d", id, g.Degree(id))
		for _, attr := range opts.NodeText {
			v, ok := g.Attr(id, attr)
			if !ok {
				return node, fmt.Errorf("node %q: hover attribute %q: %w", id, attr, ErrMissingAttribute)
			}
			text += fmt.Sprintf("<br>%s: %v", attr, v)
		}
		node.Text = append(node.Text, text)
	}

	sizes, err := nodeSizes(g, nodes, opts.Sizing)
	if err != nil {
		return node, err
	}
	colors, err := nodeColors(g, nodes, opts.Coloring)
	if err != nil {
		return node, err
	}

	node.Marker = &figure.Marker{
		Size:         sizes,
		Color:        colors,
		Colorscale:   opts.Colorscale,
		ShowScale:    true,
		ReverseScale: true,
		ColorBar: &figure.ColorBar{
			Thickness: 15,
			Title:     &figure.Title{Text: opts.ColorbarTitle},
			XAnchor:   "left",
		},
		Line: &figure.Line{Width: 2},
	}
	return node, nil
}

func nodeSizes(g *graph.Graph, nodes []string, policy Sizing) (any, error) {
	switch s := policy.(type) {
	case sizeValues:
		return s.values, nil
	case sizeByDegree:
		sizes := make([]float64, len(nodes))
		for i, id := range nodes {
			sizes[i] = float64(g.Degree(id)) + s.base
		}
		return sizes, nil
	case sizeStatic:
		sizes := make([]float64, len(nodes))
		for i := range sizes {
			sizes[i] = s.value
		}
		return sizes, nil
	case sizeByAttr:
		sizes := make([]float64, len(nodes))
		for i, id := range nodes {
			v, ok := g.Attr(id, s.name)
			if !ok {
				return nil, fmt.Errorf("node %q: size attribute %q: %w", id, s.name, ErrMissingAttribute)
			}
			f, ok := numeric(v)
			if !ok {
				return nil, fmt.Errorf("node %q: size attribute %q: value %v is not numeric", id, s.name, v)
			}
			sizes[i] = f
		}
		return sizes, nil
	default:
		return nil, fmt.Errorf("unsupported sizing policy %T", policy)
	}
}

func nodeColors(g *graph.Graph, nodes []string, policy Coloring) (any, error) {
	switch c := policy.(type) {
	case colorValues:
		return c.values, nil
	case colorLiteral:
		return c.color, nil
	case colorByDegree:
		colors := make([]float64, len(nodes))
		for i, id := range nodes {
			colors[i] = float64(g.Degree(id))
		}
		return colors, nil
	case colorByAttr:
		colors := make([]any, len(nodes))
		for i, id := range nodes {
			if v, ok := g.Attr(id, c.name); ok {
				colors[i] = v
			} else {
				// No such attribute on this node: the name itself acts as
				// a literal color, so hex codes double as defaults.
				colors[i] = c.name
			}
		}
		return colors, nil
	default:
		return nil, fmt.Errorf("unsupported coloring policy %T", policy)
	}
}

// pairProps accumulates the attributes of all parallel edges between one
// unordered node pair, keeping key arrival order.
type pairProps struct {
	keys   []string
	values map[string][]any
}

// pairID keys an unordered node pair.
func pairID(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "\x1f" + b
}

// formatPairText renders the aggregated attributes of one node pair, one
// line per key with all parallel-edge values listed in arrival order.
func formatPairText(p *pairProps) string {
	lines := make([]string, 0, len(p.keys))
	for _, k := range p.keys {
		parts := make([]string, 0, len(p.values[k]))
		for _, v := range p.values[k] {
			parts = append(parts, fmt.Sprintf("%v", v))
		}
		lines = append(lines, fmt.Sprintf("%s: [%s]", k, strings.Join(parts, ", ")))
	}
	return strings.Join(lines, "\n")
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	}
	return 0, false
}

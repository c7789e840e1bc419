package plot

// =============================================================================
// Sizing Policy
// =============================================================================

// Sizing selects how node marker sizes are computed. Construct values with
// [SizeByDegree], [SizeStatic], [SizeByAttr], or [SizeValues].
type Sizing interface {
	sizing()
}

type sizeByDegree struct{ base float64 }
type sizeStatic struct{ value float64 }
type sizeByAttr struct{ name string }
type sizeValues struct{ values []float64 }

func (sizeByDegree) sizing() {}
func (sizeStatic) sizing()   {}
func (sizeByAttr) sizing()   {}
func (sizeValues) sizing()   {}

// degreeSizeBase is added to each node's degree under degree sizing, so
// even isolated nodes stay visible.
const degreeSizeBase = 12

// staticSize is the marker size under static sizing.
const staticSize = 12

// SizeByDegree sizes each node as its degree plus a fixed base, so hubs
// render larger.
func SizeByDegree() Sizing { return sizeByDegree{base: degreeSizeBase} }

// SizeStatic gives every node the same size.
func SizeStatic() Sizing { return sizeStatic{value: staticSize} }

// SizeByAttr reads each node's size from the named attribute. Building
// traces fails if any node lacks the attribute or its value is not numeric.
func SizeByAttr(name string) Sizing { return sizeByAttr{name: name} }

// SizeValues uses the list verbatim as the trace's size sequence. The list
// is not reconciled with the node count here; [Plot] validates the length.
func SizeValues(values []float64) Sizing { return sizeValues{values: values} }

// =============================================================================
// Coloring Policy
// =============================================================================

// Coloring selects how node marker colors are computed. Construct values
// with [ColorByDegree], [ColorByAttr], [ColorLiteral], or [ColorValues].
type Coloring interface {
	coloring()
}

type colorByDegree struct{}
type colorByAttr struct{ name string }
type colorLiteral struct{ color string }
type colorValues struct{ values []any }

func (colorByDegree) coloring() {}
func (colorByAttr) coloring()   {}
func (colorLiteral) coloring()  {}
func (colorValues) coloring()   {}

// ColorByDegree maps each node's degree onto the color scale.
func ColorByDegree() Coloring { return colorByDegree{} }

// ColorByAttr reads each node's color value from the named attribute.
// Nodes without the attribute fall back to the name itself as a literal
// color, so a hex code doubles as a default.
func ColorByAttr(name string) Coloring { return colorByAttr{name: name} }

// ColorLiteral paints every node the same color, for example "#ff6600".
func ColorLiteral(color string) Coloring { return colorLiteral{color: color} }

// ColorValues uses the list verbatim as the trace's color sequence. The
// list is not reconciled with the node count here; [Plot] validates the
// length.
func ColorValues(values []any) Coloring { return colorValues{values: values} }

// =============================================================================
// Options
// =============================================================================

// Options configures a single figure build. The zero value renders a
// degree-sized, degree-colored drawing titled "Graph".
type Options struct {
	// Title is the figure heading.
	Title string

	// TitleFontSize is the heading font size in points.
	TitleFontSize float64

	// Layout names the placement algorithm. Empty keeps caller-supplied
	// positions when present and falls back to the random layout.
	Layout string

	// Seed makes the random and spring layouts reproducible.
	Seed uint64

	// Iterations overrides the refinement budget of the iterative layouts.
	Iterations int

	// Sizing picks the node size policy. Nil means SizeByDegree.
	Sizing Sizing

	// Coloring picks the node color policy. Nil means ColorByDegree.
	Coloring Coloring

	// NodeText lists node attributes appended to each node's hover text.
	// Building traces fails if a listed attribute is missing on any node.
	NodeText []string

	// ShowEdgeText enables hover text on edge midpoints, aggregating the
	// attributes of parallel edges per node pair.
	ShowEdgeText bool

	// ShowLegend toggles the figure legend.
	ShowLegend bool

	// AnnotationText is the caption pinned to the lower-left corner.
	// Empty text still produces the caption annotation.
	AnnotationText string

	// Colorscale names the Plotly color scale for degree and attribute
	// coloring.
	Colorscale string

	// ColorbarTitle labels the color bar axis.
	ColorbarTitle string
}

// withDefaults fills unset fields. The receiver is copied, callers keep
// their literal untouched.
func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "Graph"
	}
	if o.TitleFontSize <= 0 {
		o.TitleFontSize = 16
	}
	if o.Sizing == nil {
		o.Sizing = SizeByDegree()
	}
	if o.Coloring == nil {
		o.Coloring = ColorByDegree()
	}
	if o.Colorscale == "" {
		o.Colorscale = "YlGnBu"
	}
	return o
}

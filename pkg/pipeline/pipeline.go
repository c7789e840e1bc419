// Package pipeline provides the core plotting pipeline for netplot.
//
// This package implements the complete load → layout → figure → render
// pipeline that can be used by CLI and API components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Layout: Compute 2D positions for every node
//  2. Figure: Build the Plotly traces and assemble the figure
//  3. Render: Generate output in various formats (JSON, HTML, DOT, SVG, PNG)
//
// Each stage can be run independently or as part of the complete pipeline,
// and each stage's result is cached keyed by the hash of its inputs.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Layout:  "spring",
//	    Formats: []string{"html"},
//	}
//	result, err := runner.Execute(ctx, g, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	html := result.Artifacts["html"]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fleckenm/netplot/pkg/cache"
	"github.com/fleckenm/netplot/pkg/figure"
	"github.com/fleckenm/netplot/pkg/graph"
	"github.com/fleckenm/netplot/pkg/layout"
	"github.com/fleckenm/netplot/pkg/plot"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultTitle is the figure heading when none is given.
	DefaultTitle = "Graph"

	// DefaultTitleFontSize is the heading font size in points.
	DefaultTitleFontSize = 16.0

	// DefaultColorscale is the Plotly color scale for numeric coloring.
	DefaultColorscale = "YlGnBu"
)

// Sizing and coloring method keywords. Any other non-empty method string
// is treated as a node attribute name.
const (
	MethodDegree = "degree"
	MethodStatic = "static"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatHTML = "html"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatHTML: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the plotting pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Layout     string `json:"layout,omitempty"`
	Seed       uint64 `json:"seed,omitempty"`
	Iterations int    `json:"iterations,omitempty"`

	// Figure options
	Title          string    `json:"title,omitempty"`
	TitleFontSize  float64   `json:"title_font_size,omitempty"`
	SizeMethod     string    `json:"size_method,omitempty"`
	SizeList       []float64 `json:"size_list,omitempty"`
	ColorMethod    string    `json:"color_method,omitempty"`
	ColorList      []any     `json:"color_list,omitempty"`
	NodeText       []string  `json:"node_text,omitempty"`
	ShowEdgeText   bool      `json:"show_edge_text,omitempty"`
	ShowLegend     bool      `json:"show_legend,omitempty"`
	AnnotationText string    `json:"annotation_text,omitempty"`
	Colorscale     string    `json:"colorscale,omitempty"`
	ColorbarTitle  string    `json:"colorbar_title,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // attribute labels in DOT output

	// Refresh bypasses cached stage results.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the input graph.
	Graph *graph.Graph

	// GraphHash is the content hash of the graph document.
	GraphHash string

	// Positions holds the computed node coordinates.
	Positions layout.Positions

	// Figure is the assembled Plotly figure.
	Figure *figure.Figure

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LayoutTime time.Duration
	FigureTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether positions came from cache
	FigureHit bool // Whether the figure came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, html, dot, svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateLayout checks that a layout name is known. Empty is allowed:
// it means "keep stored positions, else random".
func ValidateLayout(name string) error {
	if name == "" {
		return nil
	}
	if !slices.Contains(layout.Names(), name) {
		return fmt.Errorf("invalid layout: %q (must be one of: %v)", name, layout.Names())
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetFigureDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return ValidateLayout(o.Layout)
}

// SetFigureDefaults sets default values for figure assembly.
func (o *Options) SetFigureDefaults() {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.TitleFontSize == 0 {
		o.TitleFontSize = DefaultTitleFontSize
	}
	if o.Colorscale == "" {
		o.Colorscale = DefaultColorscale
	}
	if o.SizeMethod == "" {
		o.SizeMethod = MethodDegree
	}
	if o.ColorMethod == "" {
		o.ColorMethod = MethodDegree
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	return ValidateFormats(o.Formats)
}

// ValidateForGraph checks options that depend on the input graph: explicit
// size and color lists must have one value per node.
func (o *Options) ValidateForGraph(g *graph.Graph) error {
	if len(o.SizeList) > 0 && len(o.SizeList) != g.NodeCount() {
		return fmt.Errorf("size_list has %d values for %d nodes", len(o.SizeList), g.NodeCount())
	}
	if len(o.ColorList) > 0 && len(o.ColorList) != g.NodeCount() {
		return fmt.Errorf("color_list has %d values for %d nodes", len(o.ColorList), g.NodeCount())
	}
	return nil
}

// SizingPolicy converts the string surface into the plot package's tagged
// sizing variant. An explicit list always wins.
func (o *Options) SizingPolicy() plot.Sizing {
	if len(o.SizeList) > 0 {
		return plot.SizeValues(o.SizeList)
	}
	switch o.SizeMethod {
	case "", MethodDegree:
		return plot.SizeByDegree()
	case MethodStatic:
		return plot.SizeStatic()
	default:
		return plot.SizeByAttr(o.SizeMethod)
	}
}

// ColoringPolicy converts the string surface into the plot package's
// tagged coloring variant. An explicit list always wins; unknown method
// strings act as attribute names with literal-color fallback.
func (o *Options) ColoringPolicy() plot.Coloring {
	if len(o.ColorList) > 0 {
		return plot.ColorValues(o.ColorList)
	}
	switch o.ColorMethod {
	case "", MethodDegree:
		return plot.ColorByDegree()
	default:
		return plot.ColorByAttr(o.ColorMethod)
	}
}

// PlotOptions assembles the plot package options from the pipeline surface.
func (o *Options) PlotOptions() plot.Options {
	return plot.Options{
		Title:          o.Title,
		TitleFontSize:  o.TitleFontSize,
		Layout:         o.Layout,
		Seed:           o.Seed,
		Iterations:     o.Iterations,
		Sizing:         o.SizingPolicy(),
		Coloring:       o.ColoringPolicy(),
		NodeText:       o.NodeText,
		ShowEdgeText:   o.ShowEdgeText,
		ShowLegend:     o.ShowLegend,
		AnnotationText: o.AnnotationText,
		Colorscale:     o.Colorscale,
		ColorbarTitle:  o.ColorbarTitle,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Layout:     o.Layout,
		Seed:       o.Seed,
		Iterations: o.Iterations,
	}
}

// FigureKeyOpts returns cache key options for figure assembly.
func (o *Options) FigureKeyOpts() cache.FigureKeyOpts {
	sizing := o.SizeMethod
	if len(o.SizeList) > 0 {
		sizing = fmt.Sprintf("list:%v", o.SizeList)
	}
	coloring := o.ColorMethod
	if len(o.ColorList) > 0 {
		coloring = fmt.Sprintf("list:%v", o.ColorList)
	}
	return cache.FigureKeyOpts{
		Title:          o.Title,
		TitleFontSize:  o.TitleFontSize,
		Sizing:         sizing,
		Coloring:       coloring,
		NodeText:       o.NodeText,
		ShowEdgeText:   o.ShowEdgeText,
		ShowLegend:     o.ShowLegend,
		AnnotationText: o.AnnotationText,
		Colorscale:     o.Colorscale,
		ColorbarTitle:  o.ColorbarTitle,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
	}
}

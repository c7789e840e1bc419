package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fleckenm/netplot/pkg/pipeline"
)

// plotCommand creates the plot command, the main entry point: it reads a
// graph, computes a layout, builds the figure, and writes the requested
// artifacts.
func (c *CLI) plotCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		nodeText   string
		sizeList   []float64
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "plot [graph.json]",
		Short: "Plot a graph as an interactive figure",
		Long: `Plot a graph as an interactive figure.

The plot command reads a node-link JSON file (or stdin with "-"), computes
node positions with the chosen layout, and writes the figure in one or more
formats: json (Plotly figure), html (standalone page), dot, svg, or png.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			opts.NodeText = parseList(nodeText)
			opts.SizeList = sizeList
			c.applyConfigDefaults(&opts)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runPlot(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")

	// Layout flags
	cmd.Flags().StringVarP(&opts.Layout, "layout", "l", "", "layout: random, circular, spring, spectral, kamada, planar, spiral (default: keep stored positions)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed (default 42)")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", 0, "iteration cap for spring and kamada layouts")

	// Figure flags
	cmd.Flags().StringVar(&opts.Title, "title", "", `figure title (default "Graph")`)
	cmd.Flags().Float64Var(&opts.TitleFontSize, "title-size", 0, "title font size in points")
	cmd.Flags().StringVar(&opts.SizeMethod, "size", "", "node sizing: degree (default), static, or an attribute name")
	cmd.Flags().Float64SliceVar(&sizeList, "size-list", nil, "explicit node sizes, one per node")
	cmd.Flags().StringVar(&opts.ColorMethod, "color", "", "node coloring: degree (default), an attribute name, or a literal color")
	cmd.Flags().StringVar(&nodeText, "node-text", "", "node attributes to show on hover (comma-separated)")
	cmd.Flags().BoolVar(&opts.ShowEdgeText, "edge-text", false, "show edge attributes on hover markers")
	cmd.Flags().BoolVar(&opts.ShowLegend, "legend", false, "show the figure legend")
	cmd.Flags().StringVar(&opts.AnnotationText, "annotation", "", "caption text below the figure")
	cmd.Flags().StringVar(&opts.Colorscale, "colorscale", "", `Plotly colorscale for numeric coloring (default "YlGnBu")`)
	cmd.Flags().StringVar(&opts.ColorbarTitle, "colorbar-title", "", "colorbar title")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), html, dot, svg, png (comma-separated)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show degree and attributes in DOT/SVG/PNG labels")

	return cmd
}

// runPlot executes the pipeline and writes the artifacts.
func (c *CLI) runPlot(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	logger := loggerFromContext(ctx)

	g, err := pipeline.Load(ctx, input, nil)
	if err != nil {
		return err
	}
	logger.Debug("graph loaded", "nodes", g.NodeCount(), "edges", g.EdgeCount())

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = logger

	label := opts.Layout
	if label == "" {
		label = "stored"
	}
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Plotting with %s layout...", label))
	spinner.Start()

	result, err := runner.Execute(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Plot failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, input, output)
	if err != nil {
		return err
	}

	printSuccess("Plot complete")
	for _, p := range paths {
		printFile(p)
	}
	cached := result.CacheInfo.LayoutHit && result.CacheInfo.FigureHit && result.CacheInfo.RenderHit
	printStats(g.NodeCount(), g.EdgeCount(), cached)
	if hasFormat(opts.Formats, pipeline.FormatHTML) && len(paths) > 0 {
		printNewline()
		printNextStep("Open", "xdg-open "+htmlPath(paths))
	}

	return nil
}

// hasFormat reports whether format is requested.
func hasFormat(formats []string, format string) bool {
	for _, f := range formats {
		if f == format {
			return true
		}
	}
	return false
}

// htmlPath returns the first .html path, or the first path.
func htmlPath(paths []string) string {
	for _, p := range paths {
		if strings.HasSuffix(p, ".html") {
			return p
		}
	}
	return paths[0]
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input; stdin input falls
// back to "graph". A known format extension on output is stripped.
func basePath(output, input string) string {
	if output == "" {
		if input == pipeline.StdinSource {
			return "graph"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes one file per requested format and returns the paths.
// A single format honors output verbatim; multiple formats share a base path
// and get per-format extensions.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	single := len(formats) == 1
	base := basePath(output, input)

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + "." + format
		if single && output != "" {
			path = output
		}
		out, err := openOutput(path)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", path, err)
		}
		_, werr := out.Write(artifacts[format])
		cerr := out.Close()
		if werr != nil {
			return nil, fmt.Errorf("write %s: %w", path, werr)
		}
		if cerr != nil {
			return nil, fmt.Errorf("close %s: %w", path, cerr)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

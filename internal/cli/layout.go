package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fleckenm/netplot/pkg/cache"
	"github.com/fleckenm/netplot/pkg/graph"
	"github.com/fleckenm/netplot/pkg/pipeline"
)

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		embed   bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute node positions for a graph",
		Long: `Compute node positions for a graph.

The layout command reads a node-link JSON file and computes 2D coordinates
for every node. By default it writes a positions file mapping node IDs to
[x, y] pairs. With --embed it writes the graph back out with the computed
coordinates stored in each node's "pos" attribute, so later plot runs can
skip the layout step.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfigDefaults(&opts)
			if err := opts.ValidateForLayout(); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache, embed)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().BoolVar(&embed, "embed", false, `write the graph with positions stored in "pos" attributes`)

	cmd.Flags().StringVarP(&opts.Layout, "layout", "l", "", "layout: random, circular, spring, spectral, kamada, planar, spiral (default: keep stored positions)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed (default 42)")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", 0, "iteration cap for spring and kamada layouts")

	return cmd
}

// runLayout loads the graph, computes positions, and writes the output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache, embed bool) error {
	g, err := pipeline.Load(ctx, input, nil)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)

	doc, err := graph.Marshal(g)
	if err != nil {
		return fmt.Errorf("hash graph: %w", err)
	}

	label := opts.Layout
	if label == "" {
		label = "stored"
	}
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", label))
	spinner.Start()

	pos, cacheHit, err := runner.LayoutWithCacheInfo(ctx, g, cache.Hash(doc), opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		if input == pipeline.StdinSource {
			base = "graph"
		}
		outputPath = base + ".layout.json"
	}

	if embed {
		embedded := g.Clone()
		for id, p := range pos {
			if err := embedded.SetAttr(id, "pos", []float64{p.X, p.Y}); err != nil {
				return fmt.Errorf("store position for %s: %w", id, err)
			}
		}
		if err := graph.WriteFile(embedded, outputPath); err != nil {
			return fmt.Errorf("write output %s: %w", outputPath, err)
		}
	} else {
		coords := make(map[string][2]float64, len(pos))
		for id, p := range pos {
			coords[id] = [2]float64{p.X, p.Y}
		}
		data, err := json.MarshalIndent(coords, "", "  ")
		if err != nil {
			return fmt.Errorf("encode positions: %w", err)
		}
		out, err := openOutput(outputPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outputPath, err)
		}
		_, werr := out.Write(append(data, '\n'))
		cerr := out.Close()
		if werr != nil {
			return fmt.Errorf("write output %s: %w", outputPath, werr)
		}
		if cerr != nil {
			return fmt.Errorf("close output %s: %w", outputPath, cerr)
		}
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(g.NodeCount(), g.EdgeCount(), cacheHit)
	printNewline()
	printNextStep("Plot", "netplot plot "+input+" -f html")

	return nil
}

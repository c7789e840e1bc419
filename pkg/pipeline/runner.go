package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/fleckenm/netplot/pkg/cache"
	"github.com/fleckenm/netplot/pkg/figure"
	"github.com/fleckenm/netplot/pkg/graph"
	"github.com/fleckenm/netplot/pkg/layout"
	"github.com/fleckenm/netplot/pkg/observability"
	"github.com/fleckenm/netplot/pkg/plot"
)

// =============================================================================
// Runner - Pipeline Execution
// =============================================================================

// Runner executes the plotting pipeline with caching support.
type Runner struct {
	// Cache for storing intermediate results.
	Cache cache.Cache

	// Keyer for generating cache keys.
	Keyer cache.Keyer

	// Logger for structured output.
	Logger *log.Logger
}

// NewRunner creates a pipeline runner.
// If cache is nil, a null cache is used (no caching).
// If keyer is nil, the default keyer is used.
// If logger is nil, a discard logger is used.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete pipeline: layout → figure → render.
func (r *Runner) Execute(ctx context.Context, g *graph.Graph, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := opts.ValidateForGraph(g); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	opts = r.applyLogger(opts)

	result := &Result{
		Graph:     g,
		Artifacts: make(map[string][]byte),
		Stats: Stats{
			NodeCount: g.NodeCount(),
			EdgeCount: g.EdgeCount(),
		},
	}

	doc, err := graph.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("hash graph: %w", err)
	}
	result.GraphHash = cache.Hash(doc)

	// Stage 1: Layout
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, opts.Layout, g.NodeCount())
	pos, layoutHit, err := r.LayoutWithCacheInfo(ctx, g, result.GraphHash, opts)
	result.Stats.LayoutTime = time.Since(layoutStart)
	observability.Pipeline().OnLayoutComplete(ctx, opts.Layout, result.Stats.LayoutTime, err)
	if err != nil {
		return nil, fmt.Errorf("layout failed: %w", err)
	}
	result.Positions = pos
	result.CacheInfo.LayoutHit = layoutHit
	r.Logger.Debug("layout complete",
		"layout", opts.Layout,
		"nodes", g.NodeCount(),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	posData, err := encodePositions(pos)
	if err != nil {
		return nil, fmt.Errorf("hash positions: %w", err)
	}
	layoutHash := cache.Hash(posData)

	// Stage 2: Figure
	figureStart := time.Now()
	observability.Pipeline().OnBuildStart(ctx, g.NodeCount(), g.EdgeCount())
	fig, figureHit, err := r.FigureWithCacheInfo(ctx, g, pos, layoutHash, opts)
	result.Stats.FigureTime = time.Since(figureStart)
	observability.Pipeline().OnBuildComplete(ctx, result.Stats.FigureTime, err)
	if err != nil {
		return nil, fmt.Errorf("figure build failed: %w", err)
	}
	result.Figure = fig
	result.CacheInfo.FigureHit = figureHit
	r.Logger.Debug("figure complete",
		"traces", len(fig.Data),
		"cached", figureHit,
		"duration", result.Stats.FigureTime)

	figData, err := fig.Marshal()
	if err != nil {
		return nil, fmt.Errorf("hash figure: %w", err)
	}
	figureHash := cache.Hash(figData)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, g, pos, fig, figureHash, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render failed: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit
	r.Logger.Debug("render complete",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo computes node positions with caching.
// Returns the positions and whether they came from cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, g *graph.Graph, graphHash string, opts Options) (layout.Positions, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}
	opts = r.applyLogger(opts)

	key := r.Keyer.LayoutKey(graphHash, opts.LayoutKeyOpts())
	if !opts.Refresh {
		if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
			pos, err := decodePositions(data)
			if err == nil && complete(pos, g) {
				observability.Cache().OnCacheHit(ctx, "layout")
				r.Logger.Debug("layout cache hit", "key", key)
				return pos, true, nil
			}
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	pos, err := layout.Apply(g, opts.Layout, layout.Options{
		Seed:       opts.Seed,
		Iterations: opts.Iterations,
	})
	if err != nil {
		return nil, false, err
	}

	if data, err := encodePositions(pos); err == nil {
		if err := r.cacheSet(ctx, key, data, cache.TTLLayout); err != nil {
			r.Logger.Warn("layout cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return pos, false, nil
}

// FigureWithCacheInfo builds the figure with caching.
// Returns the figure and whether it came from cache.
func (r *Runner) FigureWithCacheInfo(ctx context.Context, g *graph.Graph, pos layout.Positions, layoutHash string, opts Options) (*figure.Figure, bool, error) {
	opts.SetFigureDefaults()
	opts = r.applyLogger(opts)

	key := r.Keyer.FigureKey(layoutHash, opts.FigureKeyOpts())
	if !opts.Refresh {
		if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
			var fig figure.Figure
			if err := json.Unmarshal(data, &fig); err == nil {
				observability.Cache().OnCacheHit(ctx, "figure")
				r.Logger.Debug("figure cache hit", "key", key)
				return &fig, true, nil
			}
		}
	}
	observability.Cache().OnCacheMiss(ctx, "figure")

	popts := opts.PlotOptions()
	edge, node, middle, err := plot.BuildTraces(g, pos, popts)
	if err != nil {
		return nil, false, err
	}
	fig := plot.Assemble(g, pos, edge, node, middle, popts)

	if data, err := fig.Marshal(); err == nil {
		if err := r.cacheSet(ctx, key, data, cache.TTLFigure); err != nil {
			r.Logger.Warn("figure cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "figure", len(data))
		}
	}
	return fig, false, nil
}

// RenderWithCacheInfo renders output artifacts with caching.
// Returns the artifacts and whether all of them came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *graph.Graph, pos layout.Positions, fig *figure.Figure, figureHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	opts = r.applyLogger(opts)

	artifacts := make(map[string][]byte, len(opts.Formats))
	allHit := true
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(figureHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
				observability.Cache().OnCacheHit(ctx, "artifact")
				r.Logger.Debug("artifact cache hit", "format", format, "key", key)
				artifacts[format] = data
				continue
			}
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
		allHit = false

		data, err := Render(g, pos, fig, format, opts)
		if err != nil {
			return nil, false, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data

		if err := r.cacheSet(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("artifact cache write failed", "format", format, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return artifacts, allHit, nil
}

// cacheSet writes a cache entry, retrying transient backend failures.
// Redis marks network errors retryable; the file and null backends never do.
func (r *Runner) cacheSet(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return cache.RetryWithBackoff(ctx, func() error {
		return r.Cache.Set(ctx, key, data, ttl)
	})
}

// Close releases runner resources.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger ensures options carry the runner's logger.
func (r *Runner) applyLogger(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	return opts
}

// =============================================================================
// Position Serialization
// =============================================================================

// encodePositions serializes positions as JSON. Map keys serialize in
// sorted order, so equal positions always hash equally.
func encodePositions(pos layout.Positions) ([]byte, error) {
	doc := make(map[string][2]float64, len(pos))
	for id, p := range pos {
		doc[id] = [2]float64{p.X, p.Y}
	}
	return json.Marshal(doc)
}

// decodePositions deserializes positions from JSON.
func decodePositions(data []byte) (layout.Positions, error) {
	var doc map[string][2]float64
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	pos := make(layout.Positions, len(doc))
	for id, p := range doc {
		pos[id] = r2.Vec{X: p[0], Y: p[1]}
	}
	return pos, nil
}

// complete reports whether cached positions cover every node of the graph.
// A stale entry for a since-modified graph fails this check and is recomputed.
func complete(pos layout.Positions, g *graph.Graph) bool {
	if len(pos) < g.NodeCount() {
		return false
	}
	for _, id := range g.Nodes() {
		if _, ok := pos[id]; !ok {
			return false
		}
	}
	return true
}

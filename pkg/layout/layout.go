package layout

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/fleckenm/netplot/pkg/graph"
)

// Sentinel errors for layout computation.
var (
	// ErrUnknownLayout is returned by [Compute] for a name that is not in
	// the registry.
	ErrUnknownLayout = errors.New("unknown layout")

	// ErrNotPlanar is returned by the planar layout when the graph cannot
	// be drawn without edge crossings.
	ErrNotPlanar = errors.New("graph is not planar")
)

// PosAttr is the node attribute read for caller-supplied coordinates.
// The value must be a two-element numeric array.
const PosAttr = "pos"

// Positions maps node IDs to 2D coordinates. Layouts return a fresh map
// and never write to the input graph.
type Positions map[string]r2.Vec

// Options tunes the iterative layouts. The zero value selects defaults.
type Options struct {
	// Seed drives the random layout and the spring layout's initial state.
	// The same seed reproduces the same positions.
	Seed uint64

	// Iterations caps the iterative refinement of the spring and kamada
	// layouts. 0 means the per-layout default.
	Iterations int
}

// Func computes positions for every node of a graph.
type Func func(*graph.Graph, Options) (Positions, error)

// Registered layout names.
const (
	Random   = "random"
	Circular = "circular"
	Spring   = "spring"
	Spectral = "spectral"
	Kamada   = "kamada"
	Planar   = "planar"
	Spiral   = "spiral"
)

var registry = map[string]Func{
	Random:   RandomLayout,
	Circular: CircularLayout,
	Spring:   SpringLayout,
	Spectral: SpectralLayout,
	Kamada:   KamadaLayout,
	Planar:   PlanarLayout,
	Spiral:   SpiralLayout,
}

// Names returns the registered layout names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Compute runs the named layout. Unrecognized names fail with
// ErrUnknownLayout; algorithm failures (for example a non-planar graph
// passed to the planar layout) propagate unchanged.
func Compute(g *graph.Graph, name string, opts Options) (Positions, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownLayout)
	}
	return fn(g, opts)
}

// Apply guarantees positions for a graph:
//
//   - name given: always recompute with that layout, ignoring any
//     caller-supplied coordinates.
//   - no name, no node carries a "pos" attribute: uniform-random placement
//     in the unit square.
//   - no name, some positions present: return the existing coordinates
//     untouched (idempotent skip). Nodes without a parseable "pos" are
//     absent from the result; downstream trace building reports them.
func Apply(g *graph.Graph, name string, opts Options) (Positions, error) {
	if name != "" {
		return Compute(g, name, opts)
	}
	if existing := FromAttrs(g); len(existing) > 0 {
		return existing, nil
	}
	return RandomLayout(g, opts)
}

// FromAttrs collects caller-supplied coordinates from the "pos" node
// attribute. Nodes without the attribute, or with a value that is not a
// two-element numeric array, are skipped.
func FromAttrs(g *graph.Graph) Positions {
	pos := make(Positions)
	for _, id := range g.Nodes() {
		v, ok := g.Attr(id, PosAttr)
		if !ok {
			continue
		}
		if vec, ok := toVec(v); ok {
			pos[id] = vec
		}
	}
	return pos
}

// toVec coerces the supported "pos" attribute shapes to a vector.
// JSON decoding yields []any of float64; Go callers may use [2]float64,
// []float64, or an r2.Vec directly.
func toVec(v any) (r2.Vec, bool) {
	switch p := v.(type) {
	case r2.Vec:
		return p, true
	case [2]float64:
		return r2.Vec{X: p[0], Y: p[1]}, true
	case []float64:
		if len(p) == 2 {
			return r2.Vec{X: p[0], Y: p[1]}, true
		}
	case []any:
		if len(p) == 2 {
			x, okx := toFloat(p[0])
			y, oky := toFloat(p[1])
			if okx && oky {
				return r2.Vec{X: x, Y: y}, true
			}
		}
	}
	return r2.Vec{}, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// rescale recenters positions on the origin and scales the largest
// absolute coordinate to scale. A single point maps to the origin.
// Summation runs in sorted-ID order: map iteration order would change the
// floating-point accumulation between calls and make repeated layouts
// differ in the last bits.
func rescale(pos Positions, scale float64) {
	if len(pos) == 0 {
		return
	}
	ids := slices.Sorted(maps.Keys(pos))

	var mean r2.Vec
	for _, id := range ids {
		mean = r2.Add(mean, pos[id])
	}
	mean = r2.Scale(1/float64(len(pos)), mean)

	maxAbs := 0.0
	for _, id := range ids {
		p := r2.Sub(pos[id], mean)
		pos[id] = p
		maxAbs = math.Max(maxAbs, math.Max(math.Abs(p.X), math.Abs(p.Y)))
	}
	if maxAbs == 0 {
		return
	}
	for _, id := range ids {
		pos[id] = r2.Scale(scale/maxAbs, pos[id])
	}
}

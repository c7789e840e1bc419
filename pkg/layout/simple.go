package layout

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/fleckenm/netplot/pkg/graph"
)

// spiralResolution controls how tightly the spiral layout winds.
// Lower values spread the chain of nodes further apart per turn.
const spiralResolution = 0.35

// RandomLayout places every node uniformly at random in the unit square
// [0,1) x [0,1). The same Options.Seed reproduces the same placement.
func RandomLayout(g *graph.Graph, opts Options) (Positions, error) {
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	pos := make(Positions, g.NodeCount())
	for _, id := range g.Nodes() {
		pos[id] = r2.Vec{X: rng.Float64(), Y: rng.Float64()}
	}
	return pos, nil
}

// CircularLayout places the nodes on the unit circle in insertion order.
// A single node sits at the origin.
func CircularLayout(g *graph.Graph, opts Options) (Positions, error) {
	nodes := g.Nodes()
	pos := make(Positions, len(nodes))
	if len(nodes) == 1 {
		pos[nodes[0]] = r2.Vec{}
		return pos, nil
	}
	step := 2 * math.Pi / float64(len(nodes))
	for i, id := range nodes {
		theta := step * float64(i)
		pos[id] = r2.Vec{X: math.Cos(theta), Y: math.Sin(theta)}
	}
	return pos, nil
}

// SpiralLayout places the nodes along an Archimedean spiral in insertion
// order, rescaled so the outermost node lands on the unit box.
func SpiralLayout(g *graph.Graph, opts Options) (Positions, error) {
	nodes := g.Nodes()
	pos := make(Positions, len(nodes))
	for i, id := range nodes {
		d := float64(i)
		theta := spiralResolution * d
		pos[id] = r2.Vec{X: d * math.Cos(theta), Y: d * math.Sin(theta)}
	}
	rescale(pos, 1)
	return pos, nil
}

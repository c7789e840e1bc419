package layout

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/fleckenm/netplot/pkg/graph"
)

// defaultSpringIterations is the refinement budget of the force-directed
// layout when Options.Iterations is zero.
const defaultSpringIterations = 50

// SpringLayout positions nodes with the Fruchterman-Reingold force-directed
// model: all node pairs repel, edge endpoints attract, and a cooling
// temperature caps per-step movement. Deterministic per Options.Seed.
func SpringLayout(g *graph.Graph, opts Options) (Positions, error) {
	nodes := g.Nodes()
	n := len(nodes)
	switch n {
	case 0:
		return Positions{}, nil
	case 1:
		return Positions{nodes[0]: {}}, nil
	}

	iterations := opts.Iterations
	if iterations <= 0 {
		iterations = defaultSpringIterations
	}

	index := make(map[string]int, n)
	for i, id := range nodes {
		index[id] = i
	}

	// Edge endpoint index pairs; self-loops exert no force.
	type pair struct{ a, b int }
	var springs []pair
	for _, e := range g.Edges() {
		if e.From == e.To {
			continue
		}
		springs = append(springs, pair{index[e.From], index[e.To]})
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	p := make([]r2.Vec, n)
	for i := range p {
		p[i] = r2.Vec{X: rng.Float64(), Y: rng.Float64()}
	}

	k := math.Sqrt(1 / float64(n)) // ideal pairwise distance
	t := 0.1                       // initial temperature, fraction of the unit frame
	dt := t / float64(iterations+1)
	disp := make([]r2.Vec, n)

	for iter := 0; iter < iterations; iter++ {
		for i := range disp {
			disp[i] = r2.Vec{}
		}

		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				delta := r2.Sub(p[i], p[j])
				dist := math.Max(norm(delta), 0.01)
				push := r2.Scale(k*k/(dist*dist), delta)
				disp[i] = r2.Add(disp[i], push)
				disp[j] = r2.Sub(disp[j], push)
			}
		}

		for _, s := range springs {
			delta := r2.Sub(p[s.a], p[s.b])
			dist := math.Max(norm(delta), 0.01)
			pull := r2.Scale(dist/k, delta)
			disp[s.a] = r2.Sub(disp[s.a], pull)
			disp[s.b] = r2.Add(disp[s.b], pull)
		}

		for i := range p {
			length := norm(disp[i])
			if length == 0 {
				continue
			}
			p[i] = r2.Add(p[i], r2.Scale(math.Min(length, t)/length, disp[i]))
		}
		t -= dt
	}

	pos := make(Positions, n)
	for i, id := range nodes {
		pos[id] = p[i]
	}
	rescale(pos, 1)
	return pos, nil
}

func norm(v r2.Vec) float64 {
	return math.Hypot(v.X, v.Y)
}

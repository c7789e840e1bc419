package layout

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/fleckenm/netplot/pkg/graph"
)

// eigZeroTol separates structural zero eigenvalues of the Laplacian (one
// per connected component) from the informative spectrum.
const eigZeroTol = 1e-9

// SpectralLayout positions nodes using the eigenvectors of the graph
// Laplacian: the two eigenvectors with the smallest non-zero eigenvalues
// become the x and y coordinates. Parallel edges add weight; self-loops and
// direction are ignored. Deterministic for a fixed graph.
func SpectralLayout(g *graph.Graph, opts Options) (Positions, error) {
	nodes := g.Nodes()
	n := len(nodes)
	switch n {
	case 0:
		return Positions{}, nil
	case 1:
		return Positions{nodes[0]: {}}, nil
	case 2:
		return Positions{nodes[0]: {X: -1}, nodes[1]: {X: 1}}, nil
	}

	index := make(map[string]int, n)
	for i, id := range nodes {
		index[id] = i
	}

	// Laplacian L = D - A over the undirected weighted view.
	lap := mat.NewSymDense(n, nil)
	for _, e := range g.Edges() {
		if e.From == e.To {
			continue
		}
		i, j := index[e.From], index[e.To]
		lap.SetSym(i, j, lap.At(i, j)-1)
		lap.SetSym(i, i, lap.At(i, i)+1)
		lap.SetSym(j, j, lap.At(j, j)+1)
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(lap, true); !ok {
		return nil, fmt.Errorf("spectral layout: eigendecomposition failed")
	}
	values := eig.Values(nil) // ascending
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	// Pick the two smallest informative eigenvectors. A graph with no
	// edges has none; fall back to the circle.
	var cols []int
	for i, v := range values {
		if v > eigZeroTol {
			cols = append(cols, i)
		}
		if len(cols) == 2 {
			break
		}
	}
	if len(cols) < 2 {
		return CircularLayout(g, opts)
	}

	pos := make(Positions, n)
	for i, id := range nodes {
		pos[id] = r2.Vec{X: vectors.At(i, cols[0]), Y: vectors.At(i, cols[1])}
	}
	rescale(pos, 1)
	return pos, nil
}

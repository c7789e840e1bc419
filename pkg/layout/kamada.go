package layout

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/fleckenm/netplot/pkg/graph"
)

const (
	// defaultKamadaIterations caps the stress-majorization loop.
	defaultKamadaIterations = 300

	// kamadaEps stops the loop once the largest per-node movement falls
	// below this threshold.
	kamadaEps = 1e-6
)

// KamadaLayout positions nodes by minimizing the Kamada-Kawai stress
// function: the drawn distance between every node pair is pulled toward the
// pair's shortest-path distance, weighted by 1/d². Distances are hop counts
// over the undirected view; nodes in different components are held apart at
// twice the largest finite distance. The optimization runs deterministic
// stress-majorization sweeps from a circular start.
func KamadaLayout(g *graph.Graph, opts Options) (Positions, error) {
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

	iterations := opts.Iterations
	if iterations <= 0 {
		iterations = defaultKamadaIterations
	}

	dist := hopDistances(g, nodes)

	// Start from the circle so the result is reproducible.
	start, _ := CircularLayout(g, opts)
	p := make([]r2.Vec, n)
	for i, id := range nodes {
		p[i] = start[id]
	}

	next := make([]r2.Vec, n)
	for iter := 0; iter < iterations; iter++ {
		moved := 0.0
		for i := 0; i < n; i++ {
			var num r2.Vec
			den := 0.0
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				d := dist[i][j]
				w := 1 / (d * d)
				delta := r2.Sub(p[i], p[j])
				length := math.Max(norm(delta), 1e-9)
				// Guttman transform: target point for i relative to j.
				target := r2.Add(p[j], r2.Scale(d/length, delta))
				num = r2.Add(num, r2.Scale(w, target))
				den += w
			}
			next[i] = r2.Scale(1/den, num)
			moved = math.Max(moved, norm(r2.Sub(next[i], p[i])))
		}
		copy(p, next)
		if moved < kamadaEps {
			break
		}
	}

	pos := make(Positions, n)
	for i, id := range nodes {
		pos[id] = p[i]
	}
	rescale(pos, 1)
	return pos, nil
}

// hopDistances returns the all-pairs BFS distance matrix over the
// undirected simple view of the graph. Unreachable pairs are set to twice
// the largest finite distance so components repel without dominating.
func hopDistances(g *graph.Graph, nodes []string) [][]float64 {
	n := len(nodes)
	index := make(map[string]int, n)
	for i, id := range nodes {
		index[id] = i
	}

	adj := make([][]int, n)
	seen := make(map[[2]int]bool)
	for _, e := range g.Edges() {
		if e.From == e.To {
			continue
		}
		i, j := index[e.From], index[e.To]
		if i > j {
			i, j = j, i
		}
		if seen[[2]int{i, j}] {
			continue
		}
		seen[[2]int{i, j}] = true
		adj[i] = append(adj[i], j)
		adj[j] = append(adj[j], i)
	}

	const unreachable = -1
	dist := make([][]float64, n)
	maxFinite := 1.0
	for s := 0; s < n; s++ {
		row := make([]float64, n)
		for i := range row {
			row[i] = unreachable
		}
		row[s] = 0
		queue := []int{s}
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			for _, v := range adj[u] {
				if row[v] == unreachable {
					row[v] = row[u] + 1
					maxFinite = math.Max(maxFinite, row[v])
					queue = append(queue, v)
				}
			}
		}
		dist[s] = row
	}

	for i := range dist {
		for j := range dist[i] {
			if i != j && dist[i][j] == unreachable {
				dist[i][j] = 2 * maxFinite
			}
		}
	}
	return dist
}

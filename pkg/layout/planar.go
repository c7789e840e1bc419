package layout

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/fleckenm/netplot/pkg/graph"
)

// componentGap separates connected components horizontally before the
// final rescale.
const componentGap = 2.5

// PlanarLayout produces a crossing-free drawing when one exists and fails
// with ErrNotPlanar otherwise. Self-loops and parallel edges are tolerated:
// they never affect planarity and are drawn on top of the simple edge.
// Tree components use a tidy layered drawing; components with cycles use a
// Tutte barycentric embedding with a long cycle fixed on a convex polygon.
func PlanarLayout(g *graph.Graph, opts Options) (Positions, error) {
	s := simplify(g)
	if !s.planar() {
		return nil, fmt.Errorf("planar layout: %w", ErrNotPlanar)
	}

	pos := make(Positions, len(s.order))
	for ci, comp := range s.components() {
		sub := s.induced(comp)
		var cp Positions
		if cycle := sub.findCycle(); cycle == nil {
			cp = drawTree(sub)
		} else {
			cp = drawTutte(sub)
		}
		if len(cp) > 1 {
			rescale(cp, 1)
		}
		dx := componentGap * float64(ci)
		for id, v := range cp {
			pos[id] = r2.Vec{X: v.X + dx, Y: v.Y}
		}
	}
	if len(pos) > 1 {
		rescale(pos, 1)
	}
	return pos, nil
}

// drawTree lays out a tree component: leaves get consecutive x slots,
// internal nodes sit above the mean of their children, depth maps to -y.
func drawTree(s *simpleGraph) Positions {
	pos := make(Positions, len(s.order))
	root := s.order[0]
	leafX := 0.0

	var place func(v, parent string, depth int) float64
	place = func(v, parent string, depth int) float64 {
		var childX []float64
		for _, nbr := range s.adj[v] {
			if nbr != parent {
				childX = append(childX, place(nbr, v, depth+1))
			}
		}
		var x float64
		if len(childX) == 0 {
			x = leafX
			leafX++
		} else {
			sum := 0.0
			for _, cx := range childX {
				sum += cx
			}
			x = sum / float64(len(childX))
		}
		pos[v] = r2.Vec{X: x, Y: -float64(depth)}
		return x
	}
	place(root, "", 0)
	return pos
}

// drawTutte fixes a long cycle on a regular polygon and places every other
// vertex at the barycenter of its neighbors. For 3-connected planar graphs
// this is crossing-free by Tutte's theorem; for the rest it still gives a
// well-spread drawing of the planar structure.
func drawTutte(s *simpleGraph) Positions {
	cycle := s.longestFundamentalCycle()
	pos := polygonPositions(cycle)

	onCycle := make(map[string]bool, len(cycle))
	for _, v := range cycle {
		onCycle[v] = true
	}
	var interior []string
	for _, v := range s.order {
		if !onCycle[v] {
			interior = append(interior, v)
		}
	}
	if len(interior) == 0 {
		return pos
	}

	index := make(map[string]int, len(interior))
	for i, v := range interior {
		index[v] = i
	}

	// deg(v)*p(v) - sum of interior neighbors = sum of fixed neighbors.
	n := len(interior)
	a := mat.NewDense(n, n, nil)
	b := mat.NewDense(n, 2, nil)
	for i, v := range interior {
		a.Set(i, i, float64(len(s.adj[v])))
		for _, nbr := range s.adj[v] {
			if j, ok := index[nbr]; ok {
				a.Set(i, j, a.At(i, j)-1)
			} else {
				fixed := pos[nbr]
				b.Set(i, 0, b.At(i, 0)+fixed.X)
				b.Set(i, 1, b.At(i, 1)+fixed.Y)
			}
		}
	}

	var x mat.Dense
	if err := x.Solve(a, b); err != nil {
		// The system is diagonally dominant and should never be singular;
		// if it is, keep the component usable instead of failing.
		for i, v := range interior {
			theta := 2 * math.Pi * float64(i) / float64(n)
			pos[v] = r2.Vec{X: 0.5 * math.Cos(theta), Y: 0.5 * math.Sin(theta)}
		}
		return pos
	}
	for i, v := range interior {
		pos[v] = r2.Vec{X: x.At(i, 0), Y: x.At(i, 1)}
	}
	return pos
}

// longestFundamentalCycle picks the longest cycle formed by a DFS tree
// path plus one back edge. A long outer cycle leaves fewer vertices to
// crowd the polygon interior.
func (s *simpleGraph) longestFundamentalCycle() []string {
	parent := make(map[string]string)
	depth := make(map[string]int)
	visited := make(map[string]bool)

	var bestU, bestV string
	bestLen := 0

	var dfs func(v, from string, d int)
	dfs = func(v, from string, d int) {
		visited[v] = true
		depth[v] = d
		parent[v] = from
		for _, w := range s.adj[v] {
			if w == from {
				continue
			}
			if !visited[w] {
				dfs(w, v, d+1)
			} else if depth[w] < depth[v] {
				if length := depth[v] - depth[w] + 1; length > bestLen {
					bestLen = length
					bestU, bestV = v, w
				}
			}
		}
	}
	dfs(s.order[0], "", 0)

	cycle := []string{bestU}
	for u := bestU; u != bestV; {
		u = parent[u]
		cycle = append(cycle, u)
	}
	return cycle
}

func polygonPositions(cycle []string) Positions {
	pos := make(Positions, len(cycle))
	step := 2 * math.Pi / float64(len(cycle))
	for i, v := range cycle {
		theta := step * float64(i)
		pos[v] = r2.Vec{X: math.Cos(theta), Y: math.Sin(theta)}
	}
	return pos
}

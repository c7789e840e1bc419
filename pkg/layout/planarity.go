package layout

import (
	"github.com/fleckenm/netplot/pkg/graph"
)

// =============================================================================
// Simple Undirected View
// =============================================================================

// simpleGraph is the undirected simple view used by the planarity check and
// the planar drawing: parallel edges collapse to one, self-loops vanish,
// and neither affects planarity. Adjacency lists keep insertion order so
// every step downstream is deterministic.
type simpleGraph struct {
	order  []string
	adj    map[string][]string
	adjSet map[string]map[string]bool
}

func simplify(g *graph.Graph) *simpleGraph {
	s := &simpleGraph{
		order:  g.Nodes(),
		adj:    make(map[string][]string),
		adjSet: make(map[string]map[string]bool),
	}
	for _, id := range s.order {
		s.adjSet[id] = make(map[string]bool)
	}
	for _, e := range g.Edges() {
		if e.From == e.To || s.adjSet[e.From][e.To] {
			continue
		}
		s.adjSet[e.From][e.To] = true
		s.adjSet[e.To][e.From] = true
		s.adj[e.From] = append(s.adj[e.From], e.To)
		s.adj[e.To] = append(s.adj[e.To], e.From)
	}
	return s
}

func (s *simpleGraph) edgeCount() int {
	total := 0
	for _, nbrs := range s.adj {
		total += len(nbrs)
	}
	return total / 2
}

// components returns the connected components in insertion order.
func (s *simpleGraph) components() [][]string {
	seen := make(map[string]bool, len(s.order))
	var comps [][]string
	for _, start := range s.order {
		if seen[start] {
			continue
		}
		comp := []string{start}
		seen[start] = true
		for i := 0; i < len(comp); i++ {
			for _, nbr := range s.adj[comp[i]] {
				if !seen[nbr] {
					seen[nbr] = true
					comp = append(comp, nbr)
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

// induced returns the subgraph spanned by the given vertices.
func (s *simpleGraph) induced(verts []string) *simpleGraph {
	keep := make(map[string]bool, len(verts))
	for _, v := range verts {
		keep[v] = true
	}
	sub := &simpleGraph{
		order:  verts,
		adj:    make(map[string][]string, len(verts)),
		adjSet: make(map[string]map[string]bool, len(verts)),
	}
	for _, v := range verts {
		sub.adjSet[v] = make(map[string]bool)
		for _, nbr := range s.adj[v] {
			if keep[nbr] {
				sub.adj[v] = append(sub.adj[v], nbr)
				sub.adjSet[v][nbr] = true
			}
		}
	}
	return sub
}

// =============================================================================
// Planarity Check
// =============================================================================

// planar reports whether the graph admits a crossing-free drawing. A graph
// is planar iff every biconnected component is, so the check decomposes
// first and tests each block with Demoucron's incremental embedding after
// the cheap Euler bound E <= 3V-6.
func (s *simpleGraph) planar() bool {
	for _, comp := range s.components() {
		sub := s.induced(comp)
		for _, block := range sub.biconnectedBlocks() {
			if !blockPlanar(block) {
				return false
			}
		}
	}
	return true
}

// biconnectedBlocks returns the biconnected components of a connected
// graph as edge lists (Hopcroft-Tarjan, DFS with an edge stack).
func (s *simpleGraph) biconnectedBlocks() [][][2]string {
	disc := make(map[string]int)
	low := make(map[string]int)
	var stack [][2]string
	var blocks [][][2]string
	timer := 0

	var dfs func(v, parent string)
	dfs = func(v, parent string) {
		timer++
		disc[v] = timer
		low[v] = timer
		for _, w := range s.adj[v] {
			if w == parent {
				continue
			}
			if disc[w] == 0 {
				stack = append(stack, [2]string{v, w})
				dfs(w, v)
				if low[w] < low[v] {
					low[v] = low[w]
				}
				if low[w] >= disc[v] {
					// v is an articulation point (or root): pop the block.
					var block [][2]string
					for {
						e := stack[len(stack)-1]
						stack = stack[:len(stack)-1]
						block = append(block, e)
						if e[0] == v && e[1] == w {
							break
						}
					}
					blocks = append(blocks, block)
				}
			} else if disc[w] < disc[v] {
				stack = append(stack, [2]string{v, w})
				if disc[w] < low[v] {
					low[v] = disc[w]
				}
			}
		}
	}

	for _, v := range s.order {
		if disc[v] == 0 {
			dfs(v, "")
		}
	}
	return blocks
}

// blockPlanar tests a single biconnected block given as an edge list.
func blockPlanar(block [][2]string) bool {
	sub := &simpleGraph{
		adj:    make(map[string][]string),
		adjSet: make(map[string]map[string]bool),
	}
	for _, e := range block {
		for _, v := range []string{e[0], e[1]} {
			if sub.adjSet[v] == nil {
				sub.adjSet[v] = make(map[string]bool)
				sub.order = append(sub.order, v)
			}
		}
		if sub.adjSet[e[0]][e[1]] {
			continue
		}
		sub.adjSet[e[0]][e[1]] = true
		sub.adjSet[e[1]][e[0]] = true
		sub.adj[e[0]] = append(sub.adj[e[0]], e[1])
		sub.adj[e[1]] = append(sub.adj[e[1]], e[0])
	}

	v, e := len(sub.order), sub.edgeCount()
	if v <= 4 {
		return true
	}
	if e > 3*v-6 {
		return false
	}
	return demoucron(sub)
}

// =============================================================================
// Demoucron's Algorithm
// =============================================================================

// bridgePart is a bridge of the embedded subgraph: either a chord (a
// single unembedded edge between embedded vertices) or a connected chunk
// of unembedded vertices plus its attachment edges.
type bridgePart struct {
	attach []string        // embedded attachment vertices, deduplicated
	inner  []string        // unembedded vertices, BFS order (empty for chords)
	innerS map[string]bool // membership view of inner
}

// demoucron incrementally embeds a biconnected graph face by face. At each
// step every bridge must fit into at least one face whose boundary contains
// all of its attachments; if some bridge fits nowhere the graph is
// non-planar. Embedding a path from a minimally-constrained bridge splits
// the chosen face in two.
func demoucron(s *simpleGraph) bool {
	cycle := s.findCycle()
	if cycle == nil {
		return true // no cycle means a tree, trivially planar
	}

	embeddedV := make(map[string]bool)
	embeddedE := make(map[string]bool)
	for i, v := range cycle {
		embeddedV[v] = true
		embeddedE[pairKey(v, cycle[(i+1)%len(cycle)])] = true
	}
	faces := [][]string{cycle, reversed(cycle)}

	total := s.edgeCount()
	for len(embeddedE) < total {
		bridges := s.bridges(embeddedV, embeddedE)
		if len(bridges) == 0 {
			break
		}

		// Pick the bridge with the fewest admissible faces.
		best := -1
		var bestFaces []int
		for bi, b := range bridges {
			var fits []int
			for fi, face := range faces {
				if faceContainsAll(face, b.attach) {
					fits = append(fits, fi)
				}
			}
			if len(fits) == 0 {
				return false
			}
			if best == -1 || len(fits) < len(bestFaces) {
				best, bestFaces = bi, fits
			}
		}

		b := bridges[best]
		path := s.bridgePath(b)
		for _, v := range path {
			embeddedV[v] = true
		}
		for i := 0; i < len(path)-1; i++ {
			embeddedE[pairKey(path[i], path[i+1])] = true
		}

		fi := bestFaces[0]
		f1, f2 := splitFace(faces[fi], path)
		faces[fi] = f1
		faces = append(faces, f2)
	}
	return true
}

// findCycle returns some cycle as a vertex sequence, or nil for a forest.
func (s *simpleGraph) findCycle() []string {
	parent := make(map[string]string)
	state := make(map[string]int) // 0 unseen, 1 active, 2 done

	var cycle []string
	var dfs func(v, from string) bool
	dfs = func(v, from string) bool {
		state[v] = 1
		for _, w := range s.adj[v] {
			if w == from {
				continue
			}
			switch state[w] {
			case 0:
				parent[w] = v
				if dfs(w, v) {
					return true
				}
			case 1:
				// Back edge w..v closes a cycle.
				cycle = []string{v}
				for u := v; u != w; {
					u = parent[u]
					cycle = append(cycle, u)
				}
				return true
			}
		}
		state[v] = 2
		return false
	}

	for _, v := range s.order {
		if state[v] == 0 && dfs(v, "") {
			return cycle
		}
	}
	return nil
}

// bridges computes the bridges of the current embedded subgraph.
func (s *simpleGraph) bridges(embeddedV, embeddedE map[string]bool) []bridgePart {
	var out []bridgePart

	// Chords: unembedded edges between embedded vertices.
	for _, v := range s.order {
		if !embeddedV[v] {
			continue
		}
		for _, w := range s.adj[v] {
			if v < w && embeddedV[w] && !embeddedE[pairKey(v, w)] {
				out = append(out, bridgePart{attach: []string{v, w}})
			}
		}
	}

	// Chunks: components of unembedded vertices plus their attachments.
	seen := make(map[string]bool)
	for _, start := range s.order {
		if embeddedV[start] || seen[start] {
			continue
		}
		inner := []string{start}
		innerS := map[string]bool{start: true}
		seen[start] = true
		attachSet := make(map[string]bool)
		var attach []string
		for i := 0; i < len(inner); i++ {
			for _, nbr := range s.adj[inner[i]] {
				if embeddedV[nbr] {
					if !attachSet[nbr] {
						attachSet[nbr] = true
						attach = append(attach, nbr)
					}
				} else if !seen[nbr] {
					seen[nbr] = true
					innerS[nbr] = true
					inner = append(inner, nbr)
				}
			}
		}
		out = append(out, bridgePart{attach: attach, inner: inner, innerS: innerS})
	}
	return out
}

// bridgePath returns a path between two attachments of the bridge whose
// interior lies inside the bridge. Chords are the path themselves.
func (s *simpleGraph) bridgePath(b bridgePart) []string {
	if len(b.inner) == 0 {
		return []string{b.attach[0], b.attach[1]}
	}

	a1 := b.attach[0]
	goal := make(map[string]bool, len(b.attach)-1)
	for _, a := range b.attach[1:] {
		goal[a] = true
	}

	parent := make(map[string]string)
	var queue []string
	for _, nbr := range s.adj[a1] {
		if b.innerS[nbr] && parent[nbr] == "" {
			parent[nbr] = a1
			queue = append(queue, nbr)
		}
	}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, nbr := range s.adj[u] {
			if goal[nbr] {
				path := []string{nbr, u}
				for v := u; v != a1; {
					v = parent[v]
					path = append(path, v)
				}
				return reversed(path)
			}
			if b.innerS[nbr] && parent[nbr] == "" && nbr != a1 {
				parent[nbr] = u
				queue = append(queue, nbr)
			}
		}
	}
	// Unreachable for bridges of a biconnected graph.
	return []string{a1, b.attach[1]}
}

// splitFace embeds the path into the face, producing the two new faces.
// The path runs between two boundary vertices; its interior is new.
func splitFace(face, path []string) (f1, f2 []string) {
	i := indexOf(face, path[0])
	j := indexOf(face, path[len(path)-1])
	interior := path[1 : len(path)-1]

	for k := i; ; k = (k + 1) % len(face) {
		f1 = append(f1, face[k])
		if k == j {
			break
		}
	}
	f1 = append(f1, reversed(interior)...)

	for k := j; ; k = (k + 1) % len(face) {
		f2 = append(f2, face[k])
		if k == i {
			break
		}
	}
	f2 = append(f2, interior...)
	return f1, f2
}

// =============================================================================
// Small Helpers
// =============================================================================

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "\x1f" + b
}

func faceContainsAll(face, verts []string) bool {
	for _, v := range verts {
		if indexOf(face, v) < 0 {
			return false
		}
	}
	return true
}

func indexOf(seq []string, v string) int {
	for i, s := range seq {
		if s == v {
			return i
		}
	}
	return -1
}

func reversed(seq []string) []string {
	out := make([]string, len(seq))
	for i, s := range seq {
		out[len(seq)-1-i] = s
	}
	return out
}

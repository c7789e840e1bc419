package layout

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fleckenm/netplot/pkg/graph"
)

func completeGraph(t *testing.T, n int) *graph.Graph {
	t.Helper()
	g := graph.New()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			from := fmt.Sprintf("v%d", i)
			to := fmt.Sprintf("v%d", j)
			if err := g.AddEdge(from, to, nil); err != nil {
				t.Fatalf("AddEdge(%q, %q): %v", from, to, err)
			}
		}
	}
	return g
}

func completeBipartite(t *testing.T, left, right int) *graph.Graph {
	t.Helper()
	g := graph.New()
	for i := 0; i < left; i++ {
		for j := 0; j < right; j++ {
			from := fmt.Sprintf("l%d", i)
			to := fmt.Sprintf("r%d", j)
			if err := g.AddEdge(from, to, nil); err != nil {
				t.Fatalf("AddEdge(%q, %q): %v", from, to, err)
			}
		}
	}
	return g
}

func TestPlanarLayoutAcceptsPlanar(t *testing.T) {
	tests := []struct {
		name  string
		graph func(t *testing.T) *graph.Graph
	}{
		{"empty", func(t *testing.T) *graph.Graph { return graph.New() }},
		{"single node", func(t *testing.T) *graph.Graph {
			g := graph.New()
			if err := g.AddNode("only", nil); err != nil {
				t.Fatal(err)
			}
			return g
		}},
		{"path", func(t *testing.T) *graph.Graph { return pathGraph(t, "a", "b", "c", "d") }},
		{"tree", func(t *testing.T) *graph.Graph {
			g := graph.New()
			for _, e := range [][2]string{{"r", "a"}, {"r", "b"}, {"a", "c"}, {"a", "d"}, {"b", "e"}} {
				if err := g.AddEdge(e[0], e[1], nil); err != nil {
					t.Fatal(err)
				}
			}
			return g
		}},
		{"k4", func(t *testing.T) *graph.Graph { return completeGraph(t, 4) }},
		{"cube", func(t *testing.T) *graph.Graph {
			g := graph.New()
			edges := [][2]string{
				{"000", "001"}, {"000", "010"}, {"000", "100"},
				{"001", "011"}, {"001", "101"}, {"010", "011"},
				{"010", "110"}, {"100", "101"}, {"100", "110"},
				{"011", "111"}, {"101", "111"}, {"110", "111"},
			}
			for _, e := range edges {
				if err := g.AddEdge(e[0], e[1], nil); err != nil {
					t.Fatal(err)
				}
			}
			return g
		}},
		{"two components", func(t *testing.T) *graph.Graph {
			g := pathGraph(t, "a", "b", "c")
			if err := g.AddEdge("x", "y", nil); err != nil {
				t.Fatal(err)
			}
			return g
		}},
		{"self loop and parallel edge", func(t *testing.T) *graph.Graph {
			g := pathGraph(t, "a", "b", "c")
			if err := g.AddEdge("a", "a", nil); err != nil {
				t.Fatal(err)
			}
			if err := g.AddEdge("a", "b", nil); err != nil {
				t.Fatal(err)
			}
			return g
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.graph(t)
			pos, err := PlanarLayout(g, Options{})
			if err != nil {
				t.Fatalf("PlanarLayout: %v", err)
			}
			if len(pos) != g.NodeCount() {
				t.Fatalf("got %d positions, want %d", len(pos), g.NodeCount())
			}
		})
	}
}

func TestPlanarLayoutRejectsNonPlanar(t *testing.T) {
	tests := []struct {
		name  string
		graph *graph.Graph
	}{
		{"k5", completeGraph(t, 5)},
		{"k33", completeBipartite(t, 3, 3)},
		{"k6", completeGraph(t, 6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PlanarLayout(tt.graph, Options{})
			if !errors.Is(err, ErrNotPlanar) {
				t.Fatalf("PlanarLayout error = %v, want ErrNotPlanar", err)
			}
		})
	}
}

func TestPlanarLayoutNonPlanarComponent(t *testing.T) {
	// One planar component plus a K5: the whole graph is rejected.
	g := completeGraph(t, 5)
	if err := g.AddEdge("p", "q", nil); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if _, err := PlanarLayout(g, Options{}); !errors.Is(err, ErrNotPlanar) {
		t.Fatalf("PlanarLayout error = %v, want ErrNotPlanar", err)
	}
}

func TestPlanarLayoutK5MinusEdge(t *testing.T) {
	// Removing any single edge from K5 makes it planar (maximal planar).
	g := graph.New()
	for i := 0; i < 5; i++ {
		for j := i + 1; j < 5; j++ {
			if i == 0 && j == 1 {
				continue
			}
			if err := g.AddEdge(fmt.Sprintf("v%d", i), fmt.Sprintf("v%d", j), nil); err != nil {
				t.Fatalf("AddEdge: %v", err)
			}
		}
	}
	pos, err := PlanarLayout(g, Options{})
	if err != nil {
		t.Fatalf("PlanarLayout: %v", err)
	}
	if len(pos) != 5 {
		t.Fatalf("got %d positions, want 5", len(pos))
	}
}

func TestSimplifyCollapsesMultiEdges(t *testing.T) {
	g := graph.New()
	for _, e := range [][2]string{{"a", "b"}, {"a", "b"}, {"b", "a"}, {"a", "a"}, {"b", "c"}} {
		if err := g.AddEdge(e[0], e[1], nil); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	s := simplify(g)
	if got := s.edgeCount(); got != 2 {
		t.Fatalf("simplified edge count = %d, want 2", got)
	}
}

func TestBiconnectedBlocks(t *testing.T) {
	// Two triangles sharing the cut vertex "b".
	g := graph.New()
	for _, e := range [][2]string{
		{"a", "b"}, {"b", "c"}, {"c", "a"},
		{"b", "d"}, {"d", "e"}, {"e", "b"},
	} {
		if err := g.AddEdge(e[0], e[1], nil); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	blocks := simplify(g).biconnectedBlocks()
	if len(blocks) != 2 {
		t.Fatalf("got %d biconnected blocks, want 2", len(blocks))
	}
	for _, block := range blocks {
		if len(block) != 3 {
			t.Fatalf("block has %d edges, want 3: %v", len(block), block)
		}
	}
}

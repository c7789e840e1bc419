package render

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/fleckenm/netplot/pkg/graph"
	"github.com/fleckenm/netplot/pkg/layout"
)

func TestToDOTUndirected(t *testing.T) {
	g := graph.New()
	if err := g.AddEdge("a", "b", nil); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}

	dot := ToDOT(g, Options{})
	if !strings.HasPrefix(dot, "graph G {") {
		t.Fatalf("undirected DOT should start with graph block:\n%s", dot)
	}
	if !strings.Contains(dot, `"a" -- "b";`) {
		t.Fatalf("undirected DOT should use -- connector:\n%s", dot)
	}
}

func TestToDOTDirected(t *testing.T) {
	g := graph.NewDirected()
	if err := g.AddEdge("a", "b", nil); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}

	dot := ToDOT(g, Options{})
	if !strings.HasPrefix(dot, "digraph G {") {
		t.Fatalf("directed DOT should start with digraph block:\n%s", dot)
	}
	if !strings.Contains(dot, `"a" -> "b";`) {
		t.Fatalf("directed DOT should use -> connector:\n%s", dot)
	}
}

func TestToDOTPinsPositions(t *testing.T) {
	g := graph.New()
	if err := g.AddEdge("a", "b", nil); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	pos := layout.Positions{
		"a": r2.Vec{X: 0.5, Y: -1},
		"b": r2.Vec{X: 1, Y: 2},
	}

	dot := ToDOT(g, Options{Positions: pos})
	if !strings.Contains(dot, `pos="0.5000,-1.0000!"`) {
		t.Fatalf("DOT should pin node positions:\n%s", dot)
	}
}

func TestToDOTDetailedLabels(t *testing.T) {
	g := graph.New()
	if err := g.AddNode("a", graph.Attrs{"kind": "router"}); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if err := g.AddEdge("a", "b", nil); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}

	dot := ToDOT(g, Options{Detailed: true})
	if !strings.Contains(dot, "degree: 1") || !strings.Contains(dot, "kind: router") {
		t.Fatalf("detailed DOT should include degree and attributes:\n%s", dot)
	}
}

func TestToDOTQuotesIDs(t *testing.T) {
	g := graph.New()
	if err := g.AddEdge(`node "x"`, "other node", nil); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	dot := ToDOT(g, Options{})
	if !strings.Contains(dot, `"node \"x\""`) {
		t.Fatalf("DOT should escape quotes in IDs:\n%s", dot)
	}
}

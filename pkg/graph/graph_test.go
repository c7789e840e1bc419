package graph

import (
	"errors"
	"reflect"
	"testing"
)

func TestAddNode(t *testing.T) {
	g := New()

	if err := g.AddNode("A", Attrs{"mass": 4}); err != nil {
		t.Fatalf("AddNode(A) = %v", err)
	}
	if err := g.AddNode("A", nil); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("duplicate AddNode error = %v, want ErrDuplicateNodeID", err)
	}
	if err := g.AddNode("", nil); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("empty AddNode error = %v, want ErrInvalidNodeID", err)
	}

	if v, ok := g.Attr("A", "mass"); !ok || v != 4 {
		t.Errorf("Attr(A, mass) = %v, %v", v, ok)
	}
}

func TestAddEdgeCreatesEndpoints(t *testing.T) {
	g := New()
	if err := g.AddEdge("A", "B", nil); err != nil {
		t.Fatalf("AddEdge = %v", err)
	}
	if !g.HasNode("A") || !g.HasNode("B") {
		t.Error("endpoints not auto-created")
	}
	if got := g.NodeCount(); got != 2 {
		t.Errorf("NodeCount = %d, want 2", got)
	}
}

func TestDegree(t *testing.T) {
	g := New()
	mustEdge(t, g, "A", "B")
	mustEdge(t, g, "A", "B") // parallel
	mustEdge(t, g, "A", "C")
	mustEdge(t, g, "D", "D") // self-loop

	tests := []struct {
		node string
		want int
	}{
		{"A", 3},
		{"B", 2},
		{"C", 1},
		{"D", 2}, // self-loop counts twice
		{"Z", 0}, // unknown node
	}
	for _, tt := range tests {
		if got := g.Degree(tt.node); got != tt.want {
			t.Errorf("Degree(%s) = %d, want %d", tt.node, got, tt.want)
		}
	}
}

func TestInsertionOrder(t *testing.T) {
	g := New()
	for _, id := range []string{"C", "A", "B"} {
		if err := g.AddNode(id, nil); err != nil {
			t.Fatal(err)
		}
	}
	if got := g.Nodes(); !reflect.DeepEqual(got, []string{"C", "A", "B"}) {
		t.Errorf("Nodes() = %v, want insertion order", got)
	}
}

func TestRoundTrip(t *testing.T) {
	g := NewDirected()
	if err := g.AddNode("A", Attrs{"mass": 4.0}); err != nil {
		t.Fatal(err)
	}
	mustEdge(t, g, "A", "B")
	if err := g.AddEdge("A", "B", Attrs{"weight": 2.0}); err != nil {
		t.Fatal(err)
	}

	data, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal = %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal = %v", err)
	}

	if !got.Directed() {
		t.Error("directedness lost in round trip")
	}
	if !reflect.DeepEqual(got.Nodes(), g.Nodes()) {
		t.Errorf("nodes = %v, want %v", got.Nodes(), g.Nodes())
	}
	if got.EdgeCount() != 2 {
		t.Errorf("EdgeCount = %d, want 2", got.EdgeCount())
	}
	if v, ok := got.Attr("A", "mass"); !ok || v != 4.0 {
		t.Errorf("Attr(A, mass) after round trip = %v, %v", v, ok)
	}
	if w, ok := got.Edges()[1].Attrs["weight"]; !ok || w != 2.0 {
		t.Errorf("edge weight after round trip = %v, %v", w, ok)
	}
}

func TestClone(t *testing.T) {
	g := New()
	if err := g.AddNode("A", Attrs{"color": "red"}); err != nil {
		t.Fatal(err)
	}
	mustEdge(t, g, "A", "B")

	c := g.Clone()
	if err := c.SetAttr("A", "color", "blue"); err != nil {
		t.Fatal(err)
	}
	if v, _ := g.Attr("A", "color"); v != "red" {
		t.Errorf("clone mutation leaked into original: %v", v)
	}
	if c.Degree("A") != g.Degree("A") {
		t.Error("clone degree mismatch")
	}
}

func mustEdge(t *testing.T, g *Graph, from, to string) {
	t.Helper()
	if err := g.AddEdge(from, to, nil); err != nil {
		t.Fatalf("AddEdge(%s, %s) = %v", from, to, err)
	}
}

package plot_test

import (
	"fmt"

	"github.com/fleckenm/netplot/pkg/graph"
	"github.com/fleckenm/netplot/pkg/plot"
)

func ExamplePlot() {
	// A path graph A - B - C
	g := graph.New()
	_ = g.AddEdge("A", "B", nil)
	_ = g.AddEdge("B", "C", nil)

	fig, err := plot.Plot(g, plot.Options{Layout: "circular"})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println("Traces:", len(fig.Data))
	fmt.Println("Title:", fig.Layout.Title.Text)
	fmt.Println("Hover:", fig.Data[1].Text[1])
	// Output:
	// Traces: 3
	// Title: Graph
	// Hover: Node: B<br>Degree: 2
}

func ExamplePlot_directed() {
	// Directed graphs get one arrow annotation per edge, plus the caption
	g := graph.NewDirected()
	_ = g.AddEdge("ingest", "parse", nil)
	_ = g.AddEdge("parse", "store", nil)

	fig, err := plot.Plot(g, plot.Options{Layout: "circular"})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println("Annotations:", len(fig.Layout.Annotations))
	// Output:
	// Annotations: 3
}

func ExampleSizeStatic() {
	g := graph.New()
	_ = g.AddEdge("A", "B", nil)
	_ = g.AddEdge("B", "C", nil)

	fig, err := plot.Plot(g, plot.Options{Layout: "circular", Sizing: plot.SizeStatic()})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println("Sizes:", fig.Data[1].Marker.Size)
	// Output:
	// Sizes: [12 12 12]
}

func ExampleSizeByDegree() {
	g := graph.New()
	_ = g.AddEdge("A", "B", nil)
	_ = g.AddEdge("B", "C", nil)

	fig, err := plot.Plot(g, plot.Options{Layout: "circular", Sizing: plot.SizeByDegree()})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println("Sizes:", fig.Data[1].Marker.Size)
	// Output:
	// Sizes: [13 14 13]
}

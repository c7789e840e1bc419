package graph_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fleckenm/netplot/pkg/graph"
)

func ExampleNew() {
	// Build a small path graph; endpoints are created on the fly
	g := graph.New()
	_ = g.AddEdge("A", "B", nil)
	_ = g.AddEdge("B", "C", graph.Attrs{"weight": 2})

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Degree of B:", g.Degree("B"))
	// Output:
	// Nodes: 3
	// Edges: 2
	// Degree of B: 2
}

func ExampleMarshal() {
	g := graph.New()
	_ = g.AddNode("app", graph.Attrs{"tier": "web"})
	_ = g.AddEdge("app", "db", graph.Attrs{"weight": 2})

	data, err := graph.Marshal(g)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println(string(data))
	// Output:
	// {
	//   "nodes": [
	//     {
	//       "id": "app",
	//       "attrs": {
	//         "tier": "web"
	//       }
	//     },
	//     {
	//       "id": "db"
	//     }
	//   ],
	//   "edges": [
	//     {
	//       "source": "app",
	//       "target": "db",
	//       "attrs": {
	//         "weight": 2
	//       }
	//     }
	//   ]
	// }
}

func ExampleRead() {
	jsonData := `{
		"directed": true,
		"nodes": [
			{"id": "ingest"},
			{"id": "store", "attrs": {"tier": "storage"}}
		],
		"edges": [
			{"source": "ingest", "target": "store"}
		]
	}`

	g, err := graph.Read(bytes.NewReader([]byte(jsonData)))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	tier, _ := g.Attr("store", "tier")
	fmt.Println("Directed:", g.Directed())
	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Tier of store:", tier)
	// Output:
	// Directed: true
	// Nodes: 2
	// Tier of store: storage
}

func ExampleWriteFile() {
	g := graph.New()
	_ = g.AddEdge("server", "database", nil)

	path := filepath.Join(os.TempDir(), "exported-graph.json")
	defer os.Remove(path)

	if err := graph.WriteFile(g, path); err != nil {
		fmt.Println("Error:", err)
		return
	}

	// Read it back
	g2, err := graph.ReadFile(path)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Round-tripped", g2.NodeCount(), "nodes and", g2.EdgeCount(), "edge")
	// Output:
	// Round-tripped 2 nodes and 1 edge
}

package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fleckenm/netplot/pkg/graph"
	"github.com/fleckenm/netplot/pkg/observability"
)

// StdinSource is the input path that selects standard input.
const StdinSource = "-"

// Load reads a node-link JSON document from a file path or, for
// [StdinSource], from r (typically os.Stdin).
func Load(ctx context.Context, source string, r io.Reader) (*graph.Graph, error) {
	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, source)

	var (
		g   *graph.Graph
		err error
	)
	if source == StdinSource {
		if r == nil {
			r = os.Stdin
		}
		g, err = graph.Read(r)
	} else {
		g, err = graph.ReadFile(source)
	}

	nodes, edges := 0, 0
	if g != nil {
		nodes, edges = g.NodeCount(), g.EdgeCount()
	}
	observability.Pipeline().OnLoadComplete(ctx, source, nodes, edges, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("load graph from %s: %w", source, err)
	}
	return g, nil
}

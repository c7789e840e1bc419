package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fleckenm/netplot/pkg/cache"
	"github.com/fleckenm/netplot/pkg/graph"
)

// testGraph builds a three-node path A-B-C.
func testGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	for _, pair := range [][2]string{{"A", "B"}, {"B", "C"}} {
		if err := g.AddEdge(pair[0], pair[1], nil); err != nil {
			t.Fatalf("AddEdge(%s, %s): %v", pair[0], pair[1], err)
		}
	}
	return g
}

func TestRunnerExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), testGraph(t), Options{
		Layout:  "circular",
		Formats: []string{FormatJSON, FormatDOT, FormatHTML},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.NodeCount != 3 || result.Stats.EdgeCount != 2 {
		t.Errorf("Stats = %+v", result.Stats)
	}
	if len(result.Positions) != 3 {
		t.Errorf("Positions has %d entries, want 3", len(result.Positions))
	}
	if result.Figure == nil || len(result.Figure.Data) != 3 {
		t.Fatalf("Figure should carry three traces, got %+v", result.Figure)
	}
	if result.GraphHash == "" {
		t.Error("GraphHash should be set")
	}

	for _, format := range []string{FormatJSON, FormatDOT, FormatHTML} {
		if len(result.Artifacts[format]) == 0 {
			t.Errorf("missing %s artifact", format)
		}
	}
	if !strings.HasPrefix(string(result.Artifacts[FormatDOT]), "graph G {") {
		t.Error("DOT artifact should declare an undirected graph")
	}
	if !strings.Contains(string(result.Artifacts[FormatHTML]), "Plotly.newPlot") {
		t.Error("HTML artifact should embed a Plotly call")
	}

	if result.CacheInfo.LayoutHit || result.CacheInfo.FigureHit || result.CacheInfo.RenderHit {
		t.Errorf("null cache should never hit: %+v", result.CacheInfo)
	}
}

func TestRunnerExecuteCacheHits(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	opts := Options{Layout: "circular", Formats: []string{FormatJSON}}
	ctx := context.Background()

	first, err := r.Execute(ctx, testGraph(t), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.FigureHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss everywhere: %+v", first.CacheInfo)
	}

	second, err := r.Execute(ctx, testGraph(t), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.FigureHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit everywhere: %+v", second.CacheInfo)
	}
	if string(first.Artifacts[FormatJSON]) != string(second.Artifacts[FormatJSON]) {
		t.Error("cached artifact differs from computed artifact")
	}
}

func TestRunnerExecuteRefreshBypassesCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	opts := Options{Layout: "circular", Formats: []string{FormatJSON}}
	ctx := context.Background()

	if _, err := r.Execute(ctx, testGraph(t), opts); err != nil {
		t.Fatalf("first Execute: %v", err)
	}

	opts.Refresh = true
	result, err := r.Execute(ctx, testGraph(t), opts)
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if result.CacheInfo.LayoutHit || result.CacheInfo.FigureHit || result.CacheInfo.RenderHit {
		t.Errorf("refresh run should miss everywhere: %+v", result.CacheInfo)
	}
}

func TestRunnerExecuteRejectsBadList(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), testGraph(t), Options{
		SizeList: []float64{1, 2},
	})
	if err == nil {
		t.Error("Execute should reject a size list shorter than the node count")
	}
}

func TestLoad(t *testing.T) {
	doc := `{"nodes": [{"id": "A"}, {"id": "B"}], "edges": [{"source": "A", "target": "B"}]}`

	path := filepath.Join(t.TempDir(), "g.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	g, err := Load(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("Load file: %v", err)
	}
	if g.NodeCount() != 2 || g.EdgeCount() != 1 {
		t.Errorf("loaded %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}

	g, err = Load(context.Background(), StdinSource, strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load stdin: %v", err)
	}
	if g.NodeCount() != 2 {
		t.Errorf("stdin load got %d nodes", g.NodeCount())
	}

	if _, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.json"), nil); err == nil {
		t.Error("Load of a missing file should fail")
	}
}

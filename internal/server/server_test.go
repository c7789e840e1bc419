package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fleckenm/netplot/pkg/graph"
	"github.com/fleckenm/netplot/pkg/pipeline"
	"github.com/fleckenm/netplot/pkg/store"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	s := New(store.NewMemoryStore(), nil, nil)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func pathDoc() graph.Document {
	return graph.Document{
		Nodes: []graph.NodeDoc{{ID: "A"}, {ID: "B"}, {ID: "C"}},
		Edges: []graph.EdgeDoc{
			{Source: "A", Target: "B"},
			{Source: "B", Target: "C"},
		},
	}
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestPlotEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/v1/plot", plotRequest{
		Graph:   ptr(pathDoc()),
		Options: optionsWith("circular"),
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var fig struct {
		Data []json.RawMessage `json:"data"`
		Layout struct {
			Title struct {
				Text string `json:"text"`
			} `json:"title"`
		} `json:"layout"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&fig); err != nil {
		t.Fatalf("decode figure: %v", err)
	}
	if len(fig.Data) != 3 {
		t.Errorf("figure has %d traces, want 3", len(fig.Data))
	}
	if fig.Layout.Title.Text != "Graph" {
		t.Errorf("title = %q, want Graph", fig.Layout.Title.Text)
	}
}

func TestPlotEndpointHTMLFormat(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/v1/plot?format=html", plotRequest{
		Graph:   ptr(pathDoc()),
		Options: optionsWith("circular"),
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestPlotEndpointErrors(t *testing.T) {
	_, ts := newTestServer(t)

	// Missing graph
	resp := postJSON(t, ts.URL+"/api/v1/plot", plotRequest{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing graph: status = %d, want 400", resp.StatusCode)
	}

	// Unknown layout
	resp = postJSON(t, ts.URL+"/api/v1/plot", plotRequest{
		Graph:   ptr(pathDoc()),
		Options: optionsWith("warp"),
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown layout: status = %d, want 400", resp.StatusCode)
	}

	// Non-planar graph through the planar layout
	resp = postJSON(t, ts.URL+"/api/v1/plot", plotRequest{
		Graph:   ptr(completeDoc(5)),
		Options: optionsWith("planar"),
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("non-planar: status = %d, want 422", resp.StatusCode)
	}
}

func TestGraphCRUD(t *testing.T) {
	_, ts := newTestServer(t)

	// Create
	resp := postJSON(t, ts.URL+"/api/v1/graphs", graphRequest{Name: "path", Graph: pathDoc()})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status = %d, want 201", resp.StatusCode)
	}
	var rec store.Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if rec.ID == "" || rec.Name != "path" {
		t.Fatalf("record = %+v", rec)
	}

	// List
	listResp, err := http.Get(ts.URL + "/api/v1/graphs")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	defer listResp.Body.Close()
	var recs []store.Record
	if err := json.NewDecoder(listResp.Body).Decode(&recs); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("list has %d records, want 1", len(recs))
	}

	// Get
	getResp, err := http.Get(ts.URL + "/api/v1/graphs/" + rec.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer getResp.Body.Close()
	if getResp.StatusCode != http.StatusOK {
		t.Errorf("get: status = %d, want 200", getResp.StatusCode)
	}

	// Plot stored graph
	plotResp := postJSON(t, ts.URL+"/api/v1/graphs/"+rec.ID+"/plot?format=dot", plotRequest{
		Options: optionsWith("circular"),
	})
	if plotResp.StatusCode != http.StatusOK {
		t.Fatalf("plot stored: status = %d, want 200", plotResp.StatusCode)
	}
	var dot bytes.Buffer
	if _, err := dot.ReadFrom(plotResp.Body); err != nil {
		t.Fatalf("read dot: %v", err)
	}
	if !strings.Contains(dot.String(), `"A" -- "B"`) {
		t.Errorf("dot output missing edge: %s", dot.String())
	}

	// Delete
	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/v1/graphs/"+rec.ID, nil)
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	defer delResp.Body.Close()
	if delResp.StatusCode != http.StatusNoContent {
		t.Errorf("delete: status = %d, want 204", delResp.StatusCode)
	}

	// Get after delete
	goneResp, err := http.Get(ts.URL + "/api/v1/graphs/" + rec.ID)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	defer goneResp.Body.Close()
	if goneResp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete: status = %d, want 404", goneResp.StatusCode)
	}
}

func TestCreateGraphRejectsBadName(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/v1/graphs", graphRequest{Name: "", Graph: pathDoc()})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty name: status = %d, want 400", resp.StatusCode)
	}
}

func TestUpdateGraph(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/v1/graphs", graphRequest{Name: "before", Graph: pathDoc()})
	var rec store.Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		t.Fatalf("decode record: %v", err)
	}

	body, _ := json.Marshal(graphRequest{Name: "after"})
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/v1/graphs/"+rec.ID, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	upResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	defer upResp.Body.Close()
	if upResp.StatusCode != http.StatusOK {
		t.Fatalf("update: status = %d, want 200", upResp.StatusCode)
	}
	var updated store.Record
	if err := json.NewDecoder(upResp.Body).Decode(&updated); err != nil {
		t.Fatalf("decode updated: %v", err)
	}
	if updated.Name != "after" {
		t.Errorf("name = %q, want after", updated.Name)
	}
}

// ptr returns a pointer to v.
func ptr(v graph.Document) *graph.Document { return &v }

// optionsWith builds minimal plot options with the given layout.
func optionsWith(layoutName string) pipeline.Options {
	return pipeline.Options{Layout: layoutName}
}

// completeDoc builds K_n.
func completeDoc(n int) graph.Document {
	var doc graph.Document
	for i := 0; i < n; i++ {
		doc.Nodes = append(doc.Nodes, graph.NodeDoc{ID: fmt.Sprintf("n%d", i)})
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			doc.Edges = append(doc.Edges, graph.EdgeDoc{
				Source: fmt.Sprintf("n%d", i),
				Target: fmt.Sprintf("n%d", j),
			})
		}
	}
	return doc
}

package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	neterrors "github.com/fleckenm/netplot/pkg/errors"
	"github.com/fleckenm/netplot/pkg/graph"
	"github.com/fleckenm/netplot/pkg/layout"
	"github.com/fleckenm/netplot/pkg/pipeline"
	"github.com/fleckenm/netplot/pkg/store"
)

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatHTML: "text/html; charset=utf-8",
	pipeline.FormatDOT:  "text/vnd.graphviz",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
}

// plotRequest is the body for the plot endpoints. Graph is omitted when
// plotting a stored graph.
type plotRequest struct {
	Graph   *graph.Document  `json:"graph,omitempty"`
	Options pipeline.Options `json:"options"`
}

// graphRequest is the body for creating or replacing a stored graph.
type graphRequest struct {
	Name  string         `json:"name"`
	Graph graph.Document `json:"graph"`
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Error string         `json:"error"`
	Code  neterrors.Code `json:"code"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePlot(w http.ResponseWriter, r *http.Request) {
	var req plotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, neterrors.ErrCodeInvalidInput, "invalid request body: "+err.Error())
		return
	}
	if req.Graph == nil {
		writeError(w, http.StatusBadRequest, neterrors.ErrCodeInvalidGraph, "request is missing a graph")
		return
	}
	g, err := graph.Build(*req.Graph)
	if err != nil {
		writeError(w, http.StatusBadRequest, neterrors.ErrCodeInvalidGraph, err.Error())
		return
	}
	s.plot(w, r, g, req.Options, "")
}

func (s *Server) handlePlotGraph(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	var req plotRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, neterrors.ErrCodeInvalidInput, "invalid request body: "+err.Error())
			return
		}
	}

	g, err := graph.Build(rec.Graph)
	if err != nil {
		writeError(w, http.StatusInternalServerError, neterrors.ErrCodeInternal, "stored graph is corrupt: "+err.Error())
		return
	}
	s.plot(w, r, g, req.Options, id)
}

// plot runs the pipeline and writes the artifact of the single requested
// format. The "format" query parameter overrides the options.
func (s *Server) plot(w http.ResponseWriter, r *http.Request, g *graph.Graph, opts pipeline.Options, graphID string) {
	if f := r.URL.Query().Get("format"); f != "" {
		opts.Formats = []string{f}
	}
	if len(opts.Formats) == 0 {
		opts.Formats = []string{pipeline.FormatJSON}
	}
	if len(opts.Formats) != 1 {
		writeError(w, http.StatusBadRequest, neterrors.ErrCodeInvalidFormat, "exactly one format per request")
		return
	}
	format := opts.Formats[0]
	opts.Logger = s.logger

	runner := s.newRunner(graphID)
	result, err := runner.Execute(r.Context(), g, opts)
	if err != nil {
		writePlotError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func (s *Server) handleCreateGraph(w http.ResponseWriter, r *http.Request) {
	var req graphRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, neterrors.ErrCodeInvalidInput, "invalid request body: "+err.Error())
		return
	}
	if err := neterrors.ValidateGraphName(req.Name); err != nil {
		writeError(w, http.StatusBadRequest, neterrors.GetCode(err), err.Error())
		return
	}
	if _, err := graph.Build(req.Graph); err != nil {
		writeError(w, http.StatusBadRequest, neterrors.ErrCodeInvalidGraph, err.Error())
		return
	}

	rec := store.NewRecord(req.Name, req.Graph)
	if err := s.store.Put(r.Context(), rec); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleListGraphs(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleUpdateGraph(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	var req graphRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, neterrors.ErrCodeInvalidInput, "invalid request body: "+err.Error())
		return
	}
	if req.Name != "" {
		if err := neterrors.ValidateGraphName(req.Name); err != nil {
			writeError(w, http.StatusBadRequest, neterrors.GetCode(err), err.Error())
			return
		}
		rec.Name = req.Name
	}
	if len(req.Graph.Nodes) > 0 || len(req.Graph.Edges) > 0 {
		if _, err := graph.Build(req.Graph); err != nil {
			writeError(w, http.StatusBadRequest, neterrors.ErrCodeInvalidGraph, err.Error())
			return
		}
		rec.Graph = req.Graph
	}
	rec.Touch()

	if err := s.store.Update(r.Context(), rec); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteGraph(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Response Helpers
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code neterrors.Code, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

// writeStoreError maps store sentinel errors to HTTP statuses.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, neterrors.ErrCodeGraphNotFound, err.Error())
	case errors.Is(err, store.ErrDuplicateID):
		writeError(w, http.StatusConflict, neterrors.ErrCodeInvalidInput, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, neterrors.ErrCodeInternal, err.Error())
	}
}

// writePlotError maps pipeline failures to HTTP statuses.
func writePlotError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, layout.ErrUnknownLayout):
		writeError(w, http.StatusBadRequest, neterrors.ErrCodeInvalidLayout, err.Error())
	case errors.Is(err, layout.ErrNotPlanar):
		writeError(w, http.StatusUnprocessableEntity, neterrors.ErrCodeNotPlanar, err.Error())
	default:
		writeError(w, http.StatusBadRequest, neterrors.ErrCodeInvalidInput, err.Error())
	}
}

// Package server implements the netplot HTTP API.
//
// The API exposes the plotting pipeline and a saved-graph store:
//
//	GET    /healthz                   liveness probe
//	POST   /api/v1/plot               plot a graph from the request body
//	POST   /api/v1/graphs             save a graph
//	GET    /api/v1/graphs             list saved graphs
//	GET    /api/v1/graphs/{id}        fetch a saved graph
//	PUT    /api/v1/graphs/{id}        replace a saved graph
//	DELETE /api/v1/graphs/{id}        delete a saved graph
//	POST   /api/v1/graphs/{id}/plot   plot a saved graph
//
// Plot responses carry the artifact of the requested format (json, html,
// dot, svg, png) with a matching Content-Type. Saved graphs get per-graph
// cache namespaces so edits invalidate only their own entries.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fleckenm/netplot/pkg/cache"
	"github.com/fleckenm/netplot/pkg/observability"
	"github.com/fleckenm/netplot/pkg/pipeline"
	"github.com/fleckenm/netplot/pkg/store"
)

// Server serves the netplot HTTP API.
type Server struct {
	store  store.Store
	cache  cache.Cache
	logger *log.Logger
}

// New creates a server. A nil store defaults to in-memory storage and a
// nil cache disables caching.
func New(st store.Store, c cache.Cache, logger *log.Logger) *Server {
	if st == nil {
		st = store.NewMemoryStore()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{store: st, cache: c, logger: logger}
}

// Handler builds the chi router with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/plot", s.handlePlot)
		r.Route("/graphs", func(r chi.Router) {
			r.Post("/", s.handleCreateGraph)
			r.Get("/", s.handleListGraphs)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetGraph)
				r.Put("/", s.handleUpdateGraph)
				r.Delete("/", s.handleDeleteGraph)
				r.Post("/plot", s.handlePlotGraph)
			})
		})
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// Close releases the store and cache.
func (s *Server) Close(ctx context.Context) error {
	cerr := s.cache.Close()
	if err := s.store.Close(ctx); err != nil {
		return err
	}
	return cerr
}

// newRunner builds a pipeline runner, optionally namespaced to one stored
// graph so its cache entries can be reasoned about independently.
func (s *Server) newRunner(graphID string) *pipeline.Runner {
	var keyer cache.Keyer
	if graphID != "" {
		keyer = cache.NewScopedKeyer(nil, "graph:"+graphID+":")
	}
	return pipeline.NewRunner(s.cache, keyer, s.logger)
}

// observe is middleware reporting requests to the observability hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.Server().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		observability.Server().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}

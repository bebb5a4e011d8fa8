// Package server exposes a loaded graph snapshot over HTTP for
// debugging and tooling integration.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sceneforge/depsgraph/pkg/deg"
	"github.com/sceneforge/depsgraph/pkg/graphio"
	"github.com/sceneforge/depsgraph/pkg/render"
)

// shutdownTimeout bounds graceful shutdown after the context is
// cancelled.
const shutdownTimeout = 10 * time.Second

// Server serves a single graph snapshot over HTTP.
type Server struct {
	graph  *deg.Graph
	snap   graphio.Snapshot
	logger *log.Logger
}

// New creates a server for the given graph and its snapshot.
func New(g *deg.Graph, snap graphio.Snapshot, logger *log.Logger) *Server {
	return &Server{graph: g, snap: snap, logger: logger}
}

// Router builds the HTTP route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/graph", s.handleGraphJSON)
		r.Get("/graph.dot", s.handleGraphDOT)
		r.Get("/graph.svg", s.handleGraphSVG)
	})

	return r
}

// ListenAndServe runs the server until the context is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleGraphJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.snap); err != nil {
		s.logger.Errorf("encode snapshot: %v", err)
	}
}

func (s *Server) handleGraphDOT(w http.ResponseWriter, r *http.Request) {
	dot := render.ToDOT(s.graph, render.Options{Detailed: detailed(r)})
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	_, _ = w.Write([]byte(dot))
}

func (s *Server) handleGraphSVG(w http.ResponseWriter, r *http.Request) {
	svg, err := render.Render(r.Context(), s.graph, render.FormatSVG, render.Options{Detailed: detailed(r)})
	if err != nil {
		s.logger.Errorf("render svg: %v", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

func detailed(r *http.Request) bool {
	return r.URL.Query().Get("detailed") == "true"
}

// logRequests logs each request with method, path, status, and
// duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debugf("%s %s %d (%s)",
			r.Method, r.URL.Path, ww.Status(), time.Since(start).Round(time.Millisecond))
	})
}

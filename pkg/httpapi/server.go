// Package httpapi is a thin demo HTTP front-end over a single open
// query.Query: one read-only search endpoint, wired with the same
// router and middleware stack the rest of the example pack reaches
// for. The core engine has no HTTP dependency; this package is purely
// a convenience wrapper for serving queries over a socket.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mnohosten/yomu/pkg/engine"
	"github.com/mnohosten/yomu/pkg/query"
)

// Server exposes a query.Query over HTTP.
type Server struct {
	q       *query.Query
	router  *chi.Mux
	httpSrv *http.Server
}

// Config holds the listen address; the query index itself is opened
// by the caller and handed to New.
type Config struct {
	Addr string
}

// New builds a Server around an already-open Query. The Server does
// not own q's lifetime; the caller closes it after Shutdown returns.
func New(cfg Config, q *query.Query) *Server {
	s := &Server{q: q, router: chi.NewRouter()}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Timeout(10 * time.Second))

	s.router.Get("/_health", s.handleHealth)
	s.router.Get("/search", s.handleSearch)

	s.httpSrv = &http.Server{Addr: cfg.Addr, Handler: s.router}
	return s
}

// ListenAndServe blocks serving requests until the server is shut
// down or a fatal listener error occurs.
func (s *Server) ListenAndServe() error {
	return s.httpSrv.ListenAndServe()
}

// Shutdown gracefully stops the HTTP listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type searchResponse struct {
	Query   string   `json:"query"`
	Results []uint32 `json:"results"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing required query parameter \"q\""})
		return
	}

	start := parseIntOr(r.URL.Query().Get("start"), 0)
	end := parseIntOr(r.URL.Query().Get("end"), 10)

	factory := query.DefaultAutomatonFactory
	if r.URL.Query().Get("fuzzy") == "false" {
		factory = query.ExactAutomatonFactory
	}
	mode := query.ModeUnion
	if r.URL.Query().Get("mode") == "intersect" {
		mode = query.ModeIntersect
	}

	ids, err := s.q.Search(q, factory, mode, engine.Range{Start: start, End: end})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{Query: q, Results: ids})
}

func parseIntOr(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		fmt.Printf("Error encoding JSON response: %v\n", err)
	}
}

// Package server exposes the persisted reports over a read-only JSON API
// plus static file access to the raw documents. Handlers are fail-soft:
// a month or site with no data yields an empty result, never an error.
package server

import (
	"log"
	"net/http"

	"github.com/govscope/govscope/pkg/store"
)

type Server struct {
	Store *store.Store
}

func New(st *store.Store) *Server {
	return &Server{Store: st}
}

func (s *Server) Start(addr string) error {
	mux := http.NewServeMux()

	// API Group
	mux.HandleFunc("GET /api/manifest", s.handleManifest)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/rank", s.handleRank)
	mux.HandleFunc("GET /api/history", s.handleHistory)
	mux.HandleFunc("GET /api/stats", s.handleStats)

	// Raw report documents
	mux.Handle("/reports/", http.StripPrefix("/reports/", http.FileServer(http.Dir(s.Store.ReportsDir()))))

	log.Printf("Starting server on %s", addr)
	return http.ListenAndServe(addr, mux)
}

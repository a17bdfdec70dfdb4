// Package server exposes the suggestion list over HTTP so editors can
// fetch it the way the HTTP source does.
package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"
)

// Loader is satisfied by *suggest.Cache.
type Loader interface {
	Load(ctx context.Context) []string
}

type Server struct {
	srv    *http.Server
	loader Loader
	logf   func(string, ...any)
}

// New builds a server answering path with the loaded candidates as a JSON
// array, plus /healthz.
func New(addr, path string, loader Loader, logf func(string, ...any)) *Server {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	s := &Server{loader: loader, logf: logf}
	mux := http.NewServeMux()
	mux.HandleFunc(path, s.suggestions)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routing handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

func (s *Server) suggestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	list := s.loader.Load(r.Context())
	if len(list) == 0 {
		http.Error(w, "no suggestions available", http.StatusServiceUnavailable)
		return
	}
	data, err := json.Marshal(list)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.logf("%s %s -> %d candidates", r.Method, r.URL.Path, len(list))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=300")
	_, _ = w.Write(data)
}

// Serve listens on the configured address until Close.
func (s *Server) Serve() error { return s.srv.ListenAndServe() }

// ServeListener serves on an already bound listener.
func (s *Server) ServeListener(ln net.Listener) error { return s.srv.Serve(ln) }

func (s *Server) Close(ctx context.Context) error { return s.srv.Shutdown(ctx) }

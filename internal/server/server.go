package server

import (
	"context"
	"net/http"
	"time"

	"github.com/oggyb/smsdev/internal/middleware"
	routes "github.com/oggyb/smsdev/internal/router"
)

// Server owns the underlying http.Server instance.
type Server struct {
	http *http.Server
}

// New builds the relay's HTTP server on addr. obs may be nil.
func New(addr string, deps routes.AppDeps, obs middleware.HTTPObserver) *Server {
	mux := http.NewServeMux()
	routes.Register(mux, deps)

	chain := []Middleware{
		middleware.Recoverer(),
		middleware.RequestLogger(),
	}
	if obs != nil {
		chain = append(chain, middleware.Metrics(obs))
	}

	root := Chain(mux, chain...)

	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           root,
			ReadHeaderTimeout: 5 * time.Second,
			// /messages and /balance wait on the gateway.
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Handler exposes the fully wrapped handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start blocks until ListenAndServe returns.
func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

// Shutdown waits for in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

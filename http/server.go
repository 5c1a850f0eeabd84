package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type Server struct {
	log    *slog.Logger
	port   int
	r      *Router
	routes func(r *Router)
	server *http.Server
}

type NewServerOptions struct {
	Log  *slog.Logger
	Port int
	// Routes registers the app's handlers, after the common middleware.
	Routes func(r *Router)
}

func NewServer(opts NewServerOptions) *Server {
	if opts.Log == nil {
		opts.Log = slog.New(slog.DiscardHandler)
	}

	if opts.Port == 0 {
		opts.Port = 8080
	}

	mux := chi.NewRouter()

	s := &Server{
		log:    opts.Log,
		port:   opts.Port,
		r:      &Router{Mux: mux, log: opts.Log},
		routes: opts.Routes,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           mux,
			IdleTimeout:       time.Minute,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
		},
	}
	s.setupRoutes()

	return s
}

// Start the server, listening on the configured port until [Server.Stop] is called.
func (s *Server) Start() error {
	s.log.Info("Starting server", "address", fmt.Sprintf("http://localhost:%d", s.port))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Stop the Server gracefully, waiting for existing HTTP connections to finish.
func (s *Server) Stop() error {
	s.log.Info("Stopping server")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}

	s.log.Info("Stopped server")

	return nil
}

// ServeHTTP through the server's routes, so it can be tested without listening.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}

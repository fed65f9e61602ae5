package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/poiesic/gitkb/config"
	"github.com/poiesic/gitkb/knowledge"
	"github.com/poiesic/gitkb/responder"
	"github.com/rs/cors"
)

// Service is what the HTTP surface needs from an assistant.
// *gitkb.Assistant satisfies it.
type Service interface {
	GenerateResponse(query string) responder.Result
	AvailableTopics() []string
	Knowledge() *knowledge.Set
}

// Server serves a Service over HTTP.
type Server struct {
	cfg        config.ServerConfig
	svc        Service
	router     *mux.Router
	handler    http.Handler
	httpServer *http.Server
	logger     *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// New creates a server for svc. It does not start listening.
func New(cfg config.ServerConfig, svc Service, opts ...Option) (*Server, error) {
	if svc == nil {
		return nil, ErrServiceRequired
	}

	s := &Server{
		cfg:    cfg,
		svc:    svc,
		router: mux.NewRouter(),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if err := s.setupRoutes(); err != nil {
		return nil, err
	}
	s.handler = s.setupMiddleware(s.router)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s, nil
}

func (s *Server) setupRoutes() error {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/agent", s.handleAgent).Methods(http.MethodPost)
	api.HandleFunc("/topics", s.handleTopics).Methods(http.MethodGet)
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.NotFoundHandler = http.HandlerFunc(handleNotFound)
	api.MethodNotAllowedHandler = http.HandlerFunc(handleNotFound)

	if s.cfg.StaticDir != "" {
		info, err := os.Stat(s.cfg.StaticDir)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrStaticDir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%w: %s", ErrStaticDir, s.cfg.StaticDir)
		}
		s.router.PathPrefix("/").
			Handler(staticFiles(s.cfg.StaticDir)).
			Methods(http.MethodGet, http.MethodHead)
	}

	s.router.NotFoundHandler = http.HandlerFunc(handleNotFound)
	s.router.MethodNotAllowedHandler = http.HandlerFunc(handleNotFound)
	return nil
}

// staticFiles serves dir without directory listings. Anything that does not
// resolve to a file, or to a directory holding index.html, gets the JSON 404.
func staticFiles(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
		info, err := os.Stat(name)
		if err == nil && info.IsDir() {
			_, err = os.Stat(filepath.Join(name, "index.html"))
		}
		if err != nil {
			handleNotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

// setupMiddleware wraps the router. Recovery sits inside the access log so a
// panicking request is still logged with its 500.
func (s *Server) setupMiddleware(h http.Handler) http.Handler {
	h = limitBody(h, s.cfg.MaxRequestSize)
	if s.cfg.EnableCORS {
		h = s.setupCORS().Handler(h)
	}
	h = s.recoverPanics(h)
	h = s.accessLog(h)
	return requestID(h)
}

func (s *Server) setupCORS() *cors.Cors {
	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
	})
}

// Handler returns the fully wrapped handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start listens and serves until Shutdown is called. It returns nil after a
// graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr, "static_dir", s.cfg.StaticDir)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

package server

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/acharan-13-05/Share-of-Voice-Analyzer/config"
)

const (
	REQUEST_TIMEOUT = 120 * time.Second
	READ_TIMEOUT    = 15 * time.Second
	WRITE_TIMEOUT   = REQUEST_TIMEOUT + 5*time.Second
)

type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer wires the HTTP API. cacheHealthy may be nil when no cache is
// configured.
func NewServer(cfg config.ServerConfig, analyzer Analyzer, cacheHealthy *atomic.Bool) *Server {
	router := NewRouter(cfg.CORSOrigins, analyzer, cacheHealthy)

	return &Server{
		server: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      router,
			ReadTimeout:  READ_TIMEOUT,
			WriteTimeout: WRITE_TIMEOUT,
		},
		router: router,
	}
}

func NewRouter(corsOrigins []string, analyzer Analyzer, cacheHealthy *atomic.Bool) *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(REQUEST_TIMEOUT))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	h := NewAnalysisHandler(analyzer, cacheHealthy)

	router.Get("/", h.GetDefaults)
	router.Get("/health", h.Health)
	router.Post("/analyze", h.Analyze)

	return router
}

func (s *Server) Addr() string {
	return s.server.Addr
}

func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

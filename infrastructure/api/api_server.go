package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/helixml/almanac"
	apimiddleware "github.com/helixml/almanac/infrastructure/api/middleware"
	v1 "github.com/helixml/almanac/infrastructure/api/v1"
	"github.com/helixml/almanac/internal/config"
)

// shutdownGrace is added to the request timeout for the server's write
// deadline so timed-out solves can still report their error.
const shutdownGrace = 10 * time.Second

// APIServer provides the HTTP API backed by an almanac Client.
type APIServer struct {
	client  *almanac.Client
	cfg     config.AppConfig
	handler http.Handler

	mu     sync.Mutex
	server *Server
}

// NewAPIServer creates a new APIServer wired to the given Client.
func NewAPIServer(client *almanac.Client, cfg config.AppConfig) *APIServer {
	return &APIServer{
		client: client,
		cfg:    cfg,
	}
}

// mountRoutes wires up the API routes on router.
func (a *APIServer) mountRoutes(router chi.Router) {
	logger := a.client.Logger()

	router.Use(apimiddleware.CorrelationID)
	router.Use(apimiddleware.Logging(logger))
	if origins := a.cfg.CORSAllowedOrigins(); len(origins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", apimiddleware.CorrelationIDHeader},
			ExposedHeaders: []string{apimiddleware.CorrelationIDHeader},
			MaxAge:         300,
		}))
	}

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		apimiddleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	router.Handle("/metrics", a.client.Metrics().Handler())

	solveRouter := v1.NewSolveRouter(a.client, a.cfg.CacheTTL())
	projectRouter := v1.NewProjectRouter(a.client)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(a.cfg.RequestTimeout()))
		r.Mount("/solve", solveRouter.Routes())
		r.Mount("/project", projectRouter.Routes())
	})
}

// Handler returns the API as an http.Handler for use with custom servers.
func (a *APIServer) Handler() http.Handler {
	if a.handler == nil {
		router := chi.NewRouter()
		router.Use(chimiddleware.RequestID)
		router.Use(chimiddleware.Recoverer)
		a.mountRoutes(router)
		a.handler = router
	}
	return a.handler
}

// ListenAndServe starts the HTTP server on the configured address.
func (a *APIServer) ListenAndServe() error {
	server := NewServer(a.cfg.Addr(), a.cfg.RequestTimeout()+shutdownGrace, a.client.Logger())
	a.mountRoutes(server.Router())

	a.mu.Lock()
	a.server = server
	a.mu.Unlock()

	return server.Start()
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	server := a.server
	a.mu.Unlock()

	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

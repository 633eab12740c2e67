package server

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-catalog/backend/config"
	"github.com/pageza/recipe-catalog/backend/internal/middleware"
	"github.com/pageza/recipe-catalog/backend/internal/router"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
}

// New creates a new server instance listening on the configured address.
// deps.CORSOrigins is taken from cfg.
func New(cfg *config.Config, deps router.Dependencies) *Server {
	deps.CORSOrigins = cfg.CORSAllowedOrigins
	r := router.SetupRouter(deps)

	return &Server{
		router: r,
		http: &http.Server{
			Addr:    cfg.Addr(),
			Handler: middleware.ErrorHandler(r),
		},
	}
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start serves requests until Shutdown is called. It returns nil after a clean shutdown.
func (s *Server) Start() error {
	log.Printf("Server listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server, waiting at most config.DefaultShutdownGracePeriod
// for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultShutdownGracePeriod)
	defer cancel()
	return s.http.Shutdown(ctx)
}

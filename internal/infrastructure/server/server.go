// Package server hosts the HTTP API.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/michalkratky/slovicka/internal/infrastructure/config"
)

// Server wraps the gin engine in CORS handling and an http.Server with
// graceful shutdown.
type Server struct {
	httpServer *http.Server
	logger     *logrus.Logger
}

// NewServer builds the HTTP server around the router.
func NewServer(cfg *config.Config, router *gin.Engine, logger *logrus.Logger) *Server {
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-Id"},
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    cfg.Server.Addr(),
			Handler: corsHandler.Handler(router),
		},
		logger: logger,
	}
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Infof("HTTP server starting on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("Server shutdown complete")
	return nil
}

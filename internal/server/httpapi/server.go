// Package httpapi exposes the server's HTTP surface: registration, login,
// the current-user endpoint, and the product catalog. It owns cookie
// handling; everything below it works with verified subjects only.
package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dzavadskis/minimart/internal/logging"
	"github.com/dzavadskis/minimart/internal/server/config"
	"github.com/dzavadskis/minimart/internal/server/services"
)

// Server wires the gin engine, services and configuration together.
type Server struct {
	cfg      *config.Config
	logger   logging.Logger
	users    *services.UserService
	products *services.ProductService
	engine   *gin.Engine
}

// NewServer builds the router with CORS and all routes registered.
func NewServer(cfg *config.Config, l logging.Logger, us *services.UserService, ps *services.ProductService) *Server {
	gin.SetMode(cfg.GinMode)

	engine := gin.New()
	engine.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.CORSAllowedOrigins, ",")
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	s := &Server{
		cfg:      cfg,
		logger:   l.With("module", "httpapi"),
		users:    us,
		products: ps,
		engine:   engine,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/health", s.handleHealth)
	s.engine.POST("/register", s.handleRegister)
	s.engine.POST("/login", s.handleLogin)
	s.engine.GET("/products", s.handleListProducts)

	protected := s.engine.Group("", s.requireAuth())
	protected.GET("/me", s.handleMe)
	protected.POST("/products", s.handleCreateProduct)
	protected.POST("/upload-image", s.handleUploadImage)
	protected.POST("/upload-images", s.handleUploadImages)
}

// Engine exposes the router, mostly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.EndpointAddrHTTP,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.cfg.EndpointAddrHTTP)

	select {
	case <-ctx.Done():
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "minimart-api",
	})
}

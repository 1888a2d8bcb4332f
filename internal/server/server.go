package server

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BrunoCesarAngst/crypto-candlestick/internal/config"
	"github.com/BrunoCesarAngst/crypto-candlestick/internal/scheduler"
)

// Server serves the dashboard page, the embedded chart document and the
// JSON snapshot API.
type Server struct {
	cfg       *config.Config
	refresher *scheduler.Refresher
	engine    *gin.Engine
	http      *http.Server
}

// New builds the route tree and the underlying HTTP server.
func New(cfg *config.Config, refresher *scheduler.Refresher) *Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLog())

	s := &Server{
		cfg:       cfg,
		refresher: refresher,
		engine:    r,
	}

	r.SetHTMLTemplate(template.Must(template.New("dashboard").Parse(dashboardPage)))

	r.GET("/", s.handleIndex)
	r.GET("/chart", s.handleChart)
	r.GET("/api/v1/snapshot", s.handleSnapshot)
	r.GET("/healthz", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.http = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
	}
	return s
}

// Run blocks serving HTTP until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	log.Printf("[INFO] dashboard listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Handler exposes the route tree, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// requestLog writes one [INFO] line per request.
func requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("[INFO] %s %s -> %d (%s)",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(),
			time.Since(start).Round(time.Millisecond))
	}
}

// Package server exposes A2DP negotiation and LE audio matching over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/ugparu/btaudio/a2dp"
	"github.com/ugparu/btaudio/leaudio"
	"github.com/ugparu/btaudio/metrics"
	"github.com/ugparu/btaudio/utils/lifecycle"
	"github.com/ugparu/btaudio/utils/logger"
)

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	Addr        string
	EnablePprof bool
}

// Server is the HTTP front of a codec factory and an LE audio provider.
type Server struct {
	lifecycle.Manager[*Server]
	server   *http.Server
	router   *gin.Engine
	factory  *a2dp.Factory
	provider *leaudio.Provider
	metrics  *metrics.Metrics
}

// New returns a server. Nothing listens until Start.
func New(opts Options, factory *a2dp.Factory, provider *leaudio.Provider, m *metrics.Metrics) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	s := &Server{
		server: &http.Server{
			Addr:              opts.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second, //nolint:mnd
		},
		router:   router,
		factory:  factory,
		provider: provider,
		metrics:  m,
	}
	s.Manager = lifecycle.NewDefaultManager(s)

	router.Use(cors, s.observe, gin.Recovery())
	if opts.EnablePprof {
		pprof.Register(router)
	}
	s.setupRoutes()

	logger.Debug(s, "Initialized and set up")
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	a2dpGroup := s.router.Group("/a2dp")
	{
		a2dpGroup.GET("/codecs", s.handleCodecs)
		a2dpGroup.POST("/parse", s.handleParse)
		a2dpGroup.POST("/configuration", s.handleConfiguration)
	}

	le := s.router.Group("/leaudio")
	{
		le.GET("/scenarios", s.handleScenarios)
		le.POST("/ase", s.handleAse)
		le.POST("/qos", s.handleQos)
		le.GET("/broadcast", s.handleBroadcastSettings)
		le.POST("/broadcast", s.handleBroadcast)
		le.PUT("/priority", s.handlePriority)
	}
}

func (s *Server) String() string {
	return fmt.Sprintf("HTTP_SERVER addr=%s", s.server.Addr)
}

// Handler returns the router, for embedding or tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens and serves until Close. It returns nil once the server has been closed.
func (s *Server) Start() error {
	return s.Manager.Start(func(s *Server) error {
		logger.Info(s, "Starting listening")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}

// Close_ shuts the listener down, waiting for in-flight requests.
func (s *Server) Close_() { //nolint:revive
	logger.Warning(s, "Stopping and closing")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		logger.Errorf(s, "Shutdown failed: %v", err)
		_ = s.server.Close()
	}
}

func cors(c *gin.Context) {
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
	c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
	c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")
	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusOK)
		return
	}
	c.Next()
}

func (s *Server) observe(c *gin.Context) {
	start := time.Now()
	c.Next()

	path := c.FullPath()
	if path == "" {
		path = "unmatched"
	}
	s.metrics.HTTPRequests.WithLabelValues(c.Request.Method, path, fmt.Sprint(c.Writer.Status())).Inc()
	s.metrics.HTTPDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	logger.Tracef(s, "%s %s %d", c.Request.Method, c.Request.URL.Path, c.Writer.Status())
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "factory": s.factory.Name()})
}

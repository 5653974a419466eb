// Package server wires the status engine to its HTTP surface.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"fdrstatusd/internal/config"
	"fdrstatusd/internal/container"
	"fdrstatusd/internal/health"
	"fdrstatusd/internal/ports"
	"fdrstatusd/internal/services"
)

const serviceName = "fdrstatusd"

// Server holds the core components behind the HTTP surface. Everything it
// references is immutable after New; per-request state lives on the stack.
type Server struct {
	cfg        config.Config
	router     *gin.Engine
	aggregator *health.Aggregator
	probe      ports.ProbeFunc
	resolver   *services.Resolver
	containers container.Lister
	version    string
	startedAt  time.Time

	srv *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithVersion sets the version reported by the health endpoints.
func WithVersion(version string) Option {
	return func(s *Server) { s.version = version }
}

// WithLister substitutes the container runtime integration.
func WithLister(l container.Lister) Option {
	return func(s *Server) { s.containers = l }
}

// New builds the server and all its components.
func New(cfg config.Config, opts ...Option) (*Server, error) {
	table, err := services.LoadTable(cfg.ServiceTableFile)
	if err != nil {
		return nil, fmt.Errorf("service table: %w", err)
	}

	probe := ports.Prober(ports.DefaultProbeTimeout)
	s := &Server{
		cfg:        cfg,
		probe:      probe,
		resolver:   services.NewResolver(table, probe),
		containers: container.NewDockerCLI(),
		aggregator: health.NewAggregator(
			health.NewDatabaseChecker(health.DatabaseConfig{
				Host:       cfg.DBHost,
				Port:       cfg.DBPort,
				Name:       cfg.DBName,
				User:       cfg.DBUser,
				Password:   cfg.DBPassword,
				SQLitePath: cfg.SQLitePath,
			}),
			health.NewSystemChecker(),
			health.NewExternalChecker(cfg.ExternalAPIKeys),
			health.NewDiskChecker(),
			health.NewMemoryChecker(),
		),
		version:   "dev",
		startedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// The dashboard may be served from any of the deployment's hosts.
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowMethods = []string{"GET", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type"}
	r.Use(cors.New(corsCfg))

	// cors answers only requests that carry an Origin header; Origin-less
	// clients (curl, scrapers) must get the wildcard too.
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
	})

	r.GET("/health", s.handleHealth)
	r.GET("/health/detailed", s.handleHealthDetailed)
	r.GET("/health/database", s.handleComponent("database"))
	r.GET("/health/system", s.handleComponent("system"))
	r.GET("/health/services", s.handleComponent("services"))
	r.GET("/metrics", s.handleMetrics)
	r.GET("/ports", s.handlePorts)
	r.GET("/services", s.handleServices)
	r.GET("/containers", s.handleContainers)
	r.GET("/", s.handleDashboard)

	r.NoRoute(func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	s.router = r
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Start runs the HTTP server until Stop or a listen error.
func (s *Server) Start() error {
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("INFO: Starting %s on http://localhost:%d", serviceName, s.cfg.Port)
	log.Printf("INFO: Dashboard: http://localhost:%d/", s.cfg.Port)
	log.Printf("INFO: Health check: http://localhost:%d/health", s.cfg.Port)

	if sent, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		log.Printf("WARN: Failed to notify systemd of readiness: %v", err)
	} else if sent {
		log.Printf("INFO: Notified systemd that service is ready")
	}

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

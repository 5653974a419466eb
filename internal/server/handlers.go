package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	webassets "fdrstatusd"
	"fdrstatusd/internal/container"
	"fdrstatusd/internal/metrics"
	"fdrstatusd/internal/ports"
	"fdrstatusd/internal/services"
	"fdrstatusd/internal/system"
)

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func (s *Server) uptime() float64 {
	return time.Since(s.startedAt).Seconds()
}

// writeError emits the structured error body shared by every endpoint.
func writeError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"status":    "error",
		"message":   message,
		"timestamp": nowUTC(),
	})
}

// handleHealth is the basic liveness probe: reaching it at all is the check.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   serviceName,
		"timestamp": nowUTC(),
		"version":   s.version,
		"uptime":    s.uptime(),
	})
}

func (s *Server) handleHealthDetailed(c *gin.Context) {
	agg := s.aggregator.Check(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"status":     agg.Status,
		"service":    serviceName,
		"timestamp":  agg.Timestamp.Format(time.RFC3339),
		"version":    s.version,
		"uptime":     s.uptime(),
		"components": agg.Components,
	})
}

// handleComponent serves a single checker's report.
func (s *Server) handleComponent(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rep, ok := s.aggregator.Component(c.Request.Context(), name)
		if !ok {
			writeError(c, http.StatusInternalServerError, "unknown health component: "+name)
			return
		}
		c.JSON(http.StatusOK, rep)
	}
}

func (s *Server) handleMetrics(c *gin.Context) {
	snap, err := system.Read(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "metrics generation failed: "+err.Error())
		return
	}
	agg := s.aggregator.Check(c.Request.Context())

	doc, err := metrics.Render(agg.Status, snap, time.Since(s.startedAt))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "metrics generation failed: "+err.Error())
		return
	}
	c.Data(http.StatusOK, metrics.ContentType, []byte(doc))
}

func (s *Server) handlePorts(c *gin.Context) {
	registry := ports.ReadRegistry(s.cfg.RegistryFile)

	statuses := make(map[string]ports.Status, len(registry))
	inUse := 0
	for key, port := range registry {
		available := s.probe(port)
		st := ports.Status{Port: port, Available: available, State: "free"}
		if !available {
			st.State = "in_use"
			st.URL = fmt.Sprintf("http://localhost:%d", port)
			inUse++
		}
		statuses[key] = st
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"timestamp":    nowUTC(),
		"ports":        statuses,
		"total_ports":  len(statuses),
		"ports_in_use": inUse,
	})
}

func (s *Server) handleServices(c *gin.Context) {
	registry := ports.ReadRegistry(s.cfg.RegistryFile)
	entries := s.resolver.Resolve(registry)

	running := make(map[string]services.Running, len(entries))
	for _, e := range entries {
		running[e.Key] = e.Running
	}

	c.JSON(http.StatusOK, gin.H{
		"status":           "success",
		"timestamp":        nowUTC(),
		"services":         running,
		"total_services":   len(running),
		"running_services": len(running),
	})
}

func (s *Server) handleContainers(c *gin.Context) {
	records := s.containers.List(c.Request.Context(), s.cfg.ContainerFilter)

	c.JSON(http.StatusOK, gin.H{
		"status":             "success",
		"timestamp":          nowUTC(),
		"containers":         records,
		"total_containers":   len(records),
		"running_containers": container.RunningCount(records),
	})
}

func (s *Server) handleDashboard(c *gin.Context) {
	c.FileFromFS("web/dashboard.html", http.FS(webassets.FS))
}

// Package services maps registered ports onto the named services of the
// deployment and reports which of them are currently reachable.
package services

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"fdrstatusd/internal/ports"
)

// Descriptor is one entry of the service-metadata table: the registry key a
// service is assigned under plus how the dashboard should present it.
type Descriptor struct {
	Key      string `yaml:"key"`
	Name     string `yaml:"name"`
	Icon     string `yaml:"icon"`
	RootPath string `yaml:"path"`
}

// DefaultTable mirrors the docker-compose service set this daemon observes.
func DefaultTable() []Descriptor {
	return []Descriptor{
		{Key: "FRONTEND_PORT", Name: "Frontend", Icon: "🌐", RootPath: "/"},
		{Key: "BACKEND_PORT", Name: "Backend API", Icon: "🔧", RootPath: "/health"},
		{Key: "GRAFANA_PORT", Name: "Grafana", Icon: "📈", RootPath: "/"},
		{Key: "PROMETHEUS_PORT", Name: "Prometheus", Icon: "📊", RootPath: "/"},
		{Key: "ADMINER_PORT", Name: "Database Admin", Icon: "🗄️", RootPath: "/"},
		{Key: "REDIS_COMMANDER_PORT", Name: "Redis Commander", Icon: "🔴", RootPath: "/"},
		{Key: "MAILHOG_WEB_PORT", Name: "Mailhog", Icon: "📧", RootPath: "/"},
		{Key: "DEV_DASHBOARD_PORT", Name: "Dev Dashboard", Icon: "🛠️", RootPath: "/"},
	}
}

// LoadTable reads a YAML descriptor table, falling back to the built-in one
// when no path is configured. The table is loaded once at startup and treated
// as immutable afterwards.
func LoadTable(path string) ([]Descriptor, error) {
	if path == "" {
		return DefaultTable(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read service table: %w", err)
	}
	var table []Descriptor
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse service table: %w", err)
	}
	if len(table) == 0 {
		return DefaultTable(), nil
	}
	return table, nil
}

// ShortKey reduces a registry key to its dashboard identifier,
// e.g. FRONTEND_PORT -> frontend.
func ShortKey(key string) string {
	return strings.ToLower(strings.TrimSuffix(key, ports.PortSuffix))
}

// Running describes a service observed listening on its assigned port.
type Running struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Port        int    `json:"port"`
	URL         string `json:"url"`
	Status      string `json:"status"`
	HealthCheck string `json:"health_check"`
}

// Entry pairs a short service key with its running-state record. Entries keep
// descriptor-table order so output is stable across calls.
type Entry struct {
	Key string
	Running
}

// Resolver joins the descriptor table with registry assignments and live
// port probes.
type Resolver struct {
	table []Descriptor
	probe ports.ProbeFunc
}

func NewResolver(table []Descriptor, probe ports.ProbeFunc) *Resolver {
	return &Resolver{table: table, probe: probe}
}

// Resolve returns the currently-running services: descriptors whose key is
// present in the registry and whose assigned port has a listener. A service
// whose port is free is omitted entirely. Occupancy is taken as evidence the
// service owns the port; nothing verifies the listener's identity.
func (r *Resolver) Resolve(registry map[string]int) []Entry {
	out := make([]Entry, 0, len(r.table))
	for _, d := range r.table {
		port, ok := registry[d.Key]
		if !ok {
			continue
		}
		if r.probe(port) {
			continue
		}
		out = append(out, Entry{
			Key: ShortKey(d.Key),
			Running: Running{
				Name:        d.Name,
				Icon:        d.Icon,
				Port:        port,
				URL:         fmt.Sprintf("http://localhost:%d%s", port, d.RootPath),
				Status:      "running",
				HealthCheck: fmt.Sprintf("http://localhost:%d/health", port),
			},
		})
	}
	return out
}

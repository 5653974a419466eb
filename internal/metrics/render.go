// Package metrics projects health and system readings into the plain-text
// exposition format consumed by scrapers.
package metrics

import (
	"bytes"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"fdrstatusd/internal/health"
	"fdrstatusd/internal/system"
)

// ContentType is the MIME type of the rendered document.
var ContentType = string(expfmt.NewFormat(expfmt.TypeTextPlain))

// Render produces the exposition document for one scrape. A fresh registry is
// built per call so the engine stays stateless between requests; the encoder
// emits metric families in lexicographic name order, which keeps line order
// stable across consecutive scrapes.
func Render(overall health.Verdict, snap system.Snapshot, uptime time.Duration) (string, error) {
	reg := prometheus.NewPedanticRegistry()

	cpu := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fdr_cpu_usage_percent",
		Help: "CPU usage percentage",
	})
	memory := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fdr_memory_usage_percent",
		Help: "Memory usage percentage",
	})
	disk := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fdr_disk_usage_percent",
		Help: "Disk usage percentage",
	})
	up := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fdr_uptime_seconds",
		Help: "Process uptime in seconds",
	})
	healthFlag := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fdr_health_status",
		Help: "Health status (1=healthy, 0=unhealthy)",
	})

	for _, c := range []prometheus.Collector{cpu, memory, disk, up, healthFlag} {
		if err := reg.Register(c); err != nil {
			return "", fmt.Errorf("register metric: %w", err)
		}
	}

	cpu.Set(snap.CPUPercent)
	memory.Set(snap.MemoryPercent)
	disk.Set(snap.DiskPercent)
	up.Add(uptime.Seconds())
	if overall == health.Healthy {
		healthFlag.Set(1)
	}

	families, err := reg.Gather()
	if err != nil {
		return "", fmt.Errorf("gather metrics: %w", err)
	}

	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return "", fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return buf.String(), nil
}

package health

import (
	"context"

	"fdrstatusd/internal/system"
)

// Thresholds holds the warning/critical classification bounds for one
// resource, as utilization percentages.
type Thresholds struct {
	Warning  float64
	Critical float64
}

// Default thresholds per resource.
var (
	DefaultCPUThresholds    = Thresholds{Warning: 70, Critical: 90}
	DefaultMemoryThresholds = Thresholds{Warning: 70, Critical: 90}
	DefaultDiskThresholds   = Thresholds{Warning: 85, Critical: 95}
)

// Classify maps a utilization percentage onto a verdict.
func (t Thresholds) Classify(percent float64) Verdict {
	switch {
	case percent > t.Critical:
		return Unhealthy
	case percent > t.Warning:
		return Warning
	default:
		return Healthy
	}
}

// readFunc lets tests substitute the host sampler.
type readFunc func(context.Context) (system.Snapshot, error)

// SystemChecker classifies the combined CPU/memory/disk picture; the worst
// individual resource sets the component verdict.
type SystemChecker struct {
	read   readFunc
	cpu    Thresholds
	memory Thresholds
	disk   Thresholds
}

func NewSystemChecker() *SystemChecker {
	return &SystemChecker{
		read:   system.Read,
		cpu:    DefaultCPUThresholds,
		memory: DefaultMemoryThresholds,
		disk:   DefaultDiskThresholds,
	}
}

func (s *SystemChecker) Name() string { return "system" }

func (s *SystemChecker) Check(ctx context.Context) Report {
	snap, err := s.read(ctx)
	if err != nil {
		return newReport(s.Name(), Unhealthy, map[string]any{"error": err.Error()})
	}

	status := s.cpu.Classify(snap.CPUPercent)
	if v := s.memory.Classify(snap.MemoryPercent); v > status {
		status = v
	}
	if v := s.disk.Classify(snap.DiskPercent); v > status {
		status = v
	}

	return newReport(s.Name(), status, map[string]any{
		"cpu_percent":      snap.CPUPercent,
		"memory_percent":   snap.MemoryPercent,
		"memory_available": snap.MemoryAvailable,
		"disk_percent":     snap.DiskPercent,
		"disk_free":        snap.DiskFree,
		"load_average":     []float64{snap.Load1, snap.Load5, snap.Load15},
	})
}

// DiskChecker classifies disk usage on its own, with the disk thresholds.
type DiskChecker struct {
	read       readFunc
	thresholds Thresholds
}

func NewDiskChecker() *DiskChecker {
	return &DiskChecker{read: system.Read, thresholds: DefaultDiskThresholds}
}

func (d *DiskChecker) Name() string { return "disk" }

func (d *DiskChecker) Check(ctx context.Context) Report {
	snap, err := d.read(ctx)
	if err != nil {
		return newReport(d.Name(), Unhealthy, map[string]any{"error": err.Error()})
	}
	return newReport(d.Name(), d.thresholds.Classify(snap.DiskPercent), map[string]any{
		"usage_percent": snap.DiskPercent,
		"free_bytes":    snap.DiskFree,
		"total_bytes":   snap.DiskTotal,
		"used_bytes":    snap.DiskUsed,
	})
}

// MemoryChecker classifies memory usage on its own.
type MemoryChecker struct {
	read       readFunc
	thresholds Thresholds
}

func NewMemoryChecker() *MemoryChecker {
	return &MemoryChecker{read: system.Read, thresholds: DefaultMemoryThresholds}
}

func (m *MemoryChecker) Name() string { return "memory" }

func (m *MemoryChecker) Check(ctx context.Context) Report {
	snap, err := m.read(ctx)
	if err != nil {
		return newReport(m.Name(), Unhealthy, map[string]any{"error": err.Error()})
	}
	return newReport(m.Name(), m.thresholds.Classify(snap.MemoryPercent), map[string]any{
		"usage_percent":   snap.MemoryPercent,
		"available_bytes": snap.MemoryAvailable,
		"total_bytes":     snap.MemoryTotal,
		"used_bytes":      snap.MemoryUsed,
	})
}

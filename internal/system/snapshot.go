// Package system samples instantaneous host resource utilization.
package system

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

// Snapshot is one reading of CPU, memory and disk utilization. It is built
// fresh for every request and never cached.
type Snapshot struct {
	CPUPercent float64

	MemoryPercent   float64
	MemoryAvailable uint64
	MemoryTotal     uint64
	MemoryUsed      uint64

	DiskPercent float64
	DiskFree    uint64
	DiskTotal   uint64
	DiskUsed    uint64

	Load1  float64
	Load5  float64
	Load15 float64
}

// diskRoot is the mount point whose usage stands in for "the disk".
const diskRoot = "/"

// Read samples the host. CPU is measured against the previous call rather
// than over a blocking interval so the request is never delayed by sampling.
// Load averages are best-effort; a failure there does not fail the snapshot.
func Read(ctx context.Context) (Snapshot, error) {
	var snap Snapshot

	cpuPercents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return snap, fmt.Errorf("sample cpu: %w", err)
	}
	if len(cpuPercents) > 0 {
		snap.CPUPercent = cpuPercents[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return snap, fmt.Errorf("sample memory: %w", err)
	}
	snap.MemoryPercent = vm.UsedPercent
	snap.MemoryAvailable = vm.Available
	snap.MemoryTotal = vm.Total
	snap.MemoryUsed = vm.Used

	du, err := disk.UsageWithContext(ctx, diskRoot)
	if err != nil {
		return snap, fmt.Errorf("sample disk: %w", err)
	}
	snap.DiskPercent = du.UsedPercent
	snap.DiskFree = du.Free
	snap.DiskTotal = du.Total
	snap.DiskUsed = du.Used

	if avg, err := load.AvgWithContext(ctx); err == nil {
		snap.Load1 = avg.Load1
		snap.Load5 = avg.Load5
		snap.Load15 = avg.Load15
	}

	return snap, nil
}

// Package sysmon provides system-wide CPU and memory usage sampling.
package sysmon

import (
	"context"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// HostInfo describes the machine the integration runs on.
type HostInfo struct {
	CPUModel      string
	LogicalCPUs   int
	PhysicalCores int
	TotalMemory   uint64
}

// Host reads static host information. Fields that cannot be read are left
// at their zero value.
func Host() HostInfo {
	var h HostInfo
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		h.CPUModel = infos[0].ModelName
	}
	if n, err := cpu.Counts(true); err == nil {
		h.LogicalCPUs = n
	}
	if n, err := cpu.Counts(false); err == nil {
		h.PhysicalCores = n
	}
	if vmem, err := mem.VirtualMemory(); err == nil && vmem != nil {
		h.TotalMemory = vmem.Total
	}
	return h
}

// Summary is the peak usage observed by a Monitor.
type Summary struct {
	PeakCPUPercent float64
	PeakMemPercent float64
	Samples        int
}

// Add folds one sample into the peaks.
func (s *Summary) Add(st Stats) {
	s.Samples++
	s.PeakCPUPercent = max(s.PeakCPUPercent, st.CPUPercent)
	s.PeakMemPercent = max(s.PeakMemPercent, st.MemPercent)
}

// Monitor samples system usage in the background until stopped.
type Monitor struct {
	mu      sync.Mutex
	summary Summary
	sample  func() Stats
	cancel  context.CancelFunc
	done    chan struct{}
}

// StartMonitor starts sampling every interval until ctx is done or Stop is
// called.
func StartMonitor(ctx context.Context, interval time.Duration) *Monitor {
	return startMonitor(ctx, interval, Sample)
}

func startMonitor(ctx context.Context, interval time.Duration, sample func() Stats) *Monitor {
	ctx, cancel := context.WithCancel(ctx)
	m := &Monitor{sample: sample, cancel: cancel, done: make(chan struct{})}
	sample() // prime the CPU delta
	go m.loop(ctx, interval)
	return m
}

func (m *Monitor) loop(ctx context.Context, interval time.Duration) {
	defer close(m.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s := m.sample()
			m.mu.Lock()
			m.summary.Add(s)
			m.mu.Unlock()
		}
	}
}

// Stop ends sampling and returns the peaks. It is safe to call more than once.
func (m *Monitor) Stop() Summary {
	m.cancel()
	<-m.done
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.summary
}

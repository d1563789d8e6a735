package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "riemann"

// Calculation status labels.
const (
	StatusSuccess  = "success"
	StatusError    = "error"
	StatusTimeout  = "timeout"
	StatusCanceled = "canceled"
)

// RunMetrics holds the Prometheus collectors of one driver run. Each instance
// owns its registry, so several runs in one process do not collide.
type RunMetrics struct {
	registry     *prometheus.Registry
	calculations *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	partitions   prometheus.Gauge
	threads      prometheus.Gauge
	heapAlloc    prometheus.Gauge
	gcCycles     prometheus.Gauge
}

// NewRunMetrics creates the collectors and registers them, along with the Go
// runtime collector, on a fresh registry.
func NewRunMetrics() *RunMetrics {
	m := &RunMetrics{
		registry: prometheus.NewRegistry(),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Number of Riemann sum calculations by calculator and status.",
		}, []string{"calculator", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "calculation_duration_seconds",
			Help:      "Wall-clock duration of Riemann sum calculations.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"calculator"}),
		partitions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "partitions",
			Help:      "Number of rectangles of the last problem.",
		}),
		threads: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "threads",
			Help:      "Worker count of the parallel accumulator.",
		}),
		heapAlloc: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "heap_alloc_bytes",
			Help:      "Heap bytes in use after the run.",
		}),
		gcCycles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "gc_cycles",
			Help:      "GC cycles completed during the run.",
		}),
	}
	m.registry.MustRegister(
		m.calculations, m.duration, m.partitions, m.threads, m.heapAlloc, m.gcCycles,
		collectors.NewGoCollector(),
	)
	return m
}

// Registry returns the registry holding the run's collectors.
func (m *RunMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// SetProblem records the size of the problem being evaluated.
func (m *RunMetrics) SetProblem(n, threads int) {
	m.partitions.Set(float64(n))
	m.threads.Set(float64(threads))
}

// ObserveCalculation records one finished calculation.
func (m *RunMetrics) ObserveCalculation(calculator string, d time.Duration, err error) {
	status := StatusOf(err)
	m.calculations.WithLabelValues(calculator, status).Inc()
	if status == StatusSuccess {
		m.duration.WithLabelValues(calculator).Observe(d.Seconds())
	}
}

// RecordMemory stores the memory reading taken after the run.
func (m *RunMetrics) RecordMemory(before, after MemorySnapshot) {
	m.heapAlloc.Set(float64(after.HeapAlloc))
	m.gcCycles.Set(float64(after.GCSince(before)))
}

// WriteToTextfile writes the registry in the text exposition format, for
// collection by node_exporter's textfile collector.
func (m *RunMetrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// StatusOf maps a calculation error to a status label.
func StatusOf(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return StatusTimeout
	case errors.Is(err, context.Canceled):
		return StatusCanceled
	default:
		return StatusError
	}
}

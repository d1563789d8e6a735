// Package metrics collects run statistics: runtime memory snapshots and
// Prometheus collectors for calculation counts and durations, which can be
// exported to a node_exporter textfile.
package metrics

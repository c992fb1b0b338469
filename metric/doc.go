// Package metric provides Prometheus metrics for the wiring core.
//
// MetricsRegistry owns a private prometheus.Registry preloaded with the core
// wiring metrics (proxy dispatch, interception, injection, instantiation) and
// offers owner-scoped registration for caller-specific collectors.
//
// Metrics collection is optional throughout wirekit: a nil
// *metric.MetricsRegistry in component.Dependencies disables it.
//
// Example:
//
//	registry := metric.NewMetricsRegistry()
//	deps := component.Dependencies{MetricsRegistry: registry}
//	...
//	// expose registry.PrometheusRegistry() through the host application
package metric

package component

import (
	"log/slog"

	"github.com/c360/wirekit/metric"
	"github.com/c360/wirekit/reflection"
)

// Dependencies provides all external dependencies needed by components.
// Components receive properly structured dependencies rather than individual
// fields; every field may be nil, in which case a safe default applies.
type Dependencies struct {
	MetricsRegistry *metric.MetricsRegistry // Metrics registry for Prometheus (can be nil)
	Logger          *slog.Logger            // Structured logger (can be nil, defaults to slog.Default())
	Reflection      *reflection.Context     // Shared instantiation context (can be nil)
}

// GetLogger returns the configured logger or a default logger if none is provided
func (d *Dependencies) GetLogger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

// GetLoggerWithComponent returns a logger configured with component context
func (d *Dependencies) GetLoggerWithComponent(componentName string) *slog.Logger {
	return d.GetLogger().With("component", componentName)
}

// coreMetrics returns the shared wiring metrics, or nil when metrics are
// not configured.
func (d *Dependencies) coreMetrics() *metric.Metrics {
	if d.MetricsRegistry == nil {
		return nil
	}
	return d.MetricsRegistry.CoreMetrics()
}

package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains all wiring-level metrics (not application-specific)
type Metrics struct {
	// Proxy and dispatch metrics
	ProxyCalls       *prometheus.CounterVec
	InterceptedCalls *prometheus.CounterVec
	DispatchErrors   *prometheus.CounterVec
	DispatchDuration *prometheus.HistogramVec
	ProxiesCreated   *prometheus.CounterVec

	// Injection metrics
	PropertyInjections  *prometheus.CounterVec
	ReferenceInjections *prometheus.CounterVec
	ListenersRegistered *prometheus.CounterVec

	// Instantiation metrics
	Instantiations *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all wiring metrics
func NewMetrics() *Metrics {
	return &Metrics{
		ProxyCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "wirekit",
				Subsystem: "dispatch",
				Name:      "proxy_calls_total",
				Help:      "Total number of calls mediated through capability proxies",
			},
			[]string{"component", "capability"},
		),

		InterceptedCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "wirekit",
				Subsystem: "dispatch",
				Name:      "intercepted_calls_total",
				Help:      "Total number of mediated calls handled by an interceptor",
			},
			[]string{"component", "capability"},
		),

		DispatchErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "wirekit",
				Subsystem: "dispatch",
				Name:      "errors_total",
				Help:      "Total number of mediated calls that returned an error",
			},
			[]string{"component", "capability"},
		),

		DispatchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "wirekit",
				Subsystem: "dispatch",
				Name:      "duration_seconds",
				Help:      "Duration of mediated calls",
				Buckets:   prometheus.ExponentialBuckets(0.000001, 10, 8),
			},
			[]string{"component"},
		),

		ProxiesCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "wirekit",
				Subsystem: "proxy",
				Name:      "created_total",
				Help:      "Total number of capability proxies generated",
			},
			[]string{"component", "capability"},
		),

		PropertyInjections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "wirekit",
				Subsystem: "injection",
				Name:      "properties_total",
				Help:      "Total number of property values injected through setters",
			},
			[]string{"component"},
		),

		ReferenceInjections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "wirekit",
				Subsystem: "injection",
				Name:      "references_total",
				Help:      "Total number of peer capability proxies injected through setters",
			},
			[]string{"component", "capability"},
		),

		ListenersRegistered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "wirekit",
				Subsystem: "injection",
				Name:      "listeners_total",
				Help:      "Total number of listener proxies handed to register hooks",
			},
			[]string{"component", "capability"},
		),

		Instantiations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "wirekit",
				Subsystem: "instantiation",
				Name:      "total",
				Help:      "Total number of constructor resolutions by outcome (cached, exact, coerced, failed)",
			},
			[]string{"type", "outcome"},
		),
	}
}

// ObserveDispatch records a mediated call with its duration and outcome.
func (m *Metrics) ObserveDispatch(component, capability string, start time.Time, intercepted bool, err error) {
	m.ProxyCalls.WithLabelValues(component, capability).Inc()
	m.DispatchDuration.WithLabelValues(component).Observe(time.Since(start).Seconds())
	if intercepted {
		m.InterceptedCalls.WithLabelValues(component, capability).Inc()
	}
	if err != nil {
		m.DispatchErrors.WithLabelValues(component, capability).Inc()
	}
}

// collectors returns every core metric for bulk registration.
func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.ProxyCalls,
		m.InterceptedCalls,
		m.DispatchErrors,
		m.DispatchDuration,
		m.ProxiesCreated,
		m.PropertyInjections,
		m.ReferenceInjections,
		m.ListenersRegistered,
		m.Instantiations,
	}
}
